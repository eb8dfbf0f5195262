package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var hidIdlePattern = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

func parseIdleMillis(output string) (time.Duration, error) {
	value := strings.TrimSpace(output)
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds %q: %w", value, err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

// parseHIDIdleTime extracts the IOHIDSystem idle counter, reported in
// nanoseconds, from ioreg output.
func parseHIDIdleTime(output string) (time.Duration, error) {
	match := hidIdlePattern.FindStringSubmatch(output)
	if match == nil {
		return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
	}
	nanos, err := strconv.ParseUint(match[1], 10, 63)
	if err != nil {
		return 0, fmt.Errorf("parse HIDIdleTime: %w", err)
	}
	return time.Duration(nanos), nil
}
