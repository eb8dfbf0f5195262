package platform

import (
	"fmt"
	"os/exec"
	"time"

	"breakreminder/internal/core/timekeeper"
)

type ioregProvider struct {
	path string
}

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("ioreg")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &ioregProvider{path: path}
}

func (provider *ioregProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path, "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseHIDIdleTime(string(output))
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, timekeeper.ErrIdleUnsupported
}
