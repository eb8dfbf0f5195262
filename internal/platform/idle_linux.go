package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"breakreminder/internal/core/timekeeper"
)

type xprintidleProvider struct {
	path string
}

func newIdleProvider() IdleProvider {
	// xprintidle reports zero under pure Wayland sessions.
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") && os.Getenv("DISPLAY") == "" {
		return unsupportedIdleProvider{}
	}
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &xprintidleProvider{path: path}
}

func (provider *xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(string(output))
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, timekeeper.ErrIdleUnsupported
}
