package platform

import "time"

// IdleProvider returns the duration since the last keyboard or mouse input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// NewIdleProvider returns the idle provider for the current OS. Providers
// that cannot measure idle time return timekeeper.ErrIdleUnsupported.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

type unsupportedIdleProvider struct{}
