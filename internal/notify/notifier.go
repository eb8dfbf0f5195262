package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoNotifiers is returned by New when every transport is disabled.
var ErrNoNotifiers = errors.New("no notifiers configured")

// Notifier delivers a single notification.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Options selects and configures the notification transports.
type Options struct {
	AppName string
	Desktop bool
	Sound   bool
	Icon    string

	NtfyURL      string
	NtfyTimeout  time.Duration
	NtfyPriority string
	NtfyTags     []string
}

// New builds the notifier described by opts. When more than one transport
// is enabled the result delivers to all of them.
func New(opts Options) (Notifier, error) {
	var notifiers []Notifier
	if opts.Desktop {
		notifiers = append(notifiers, NewDesktop(opts.AppName, opts.Icon, opts.Sound))
	}
	if url := strings.TrimSpace(opts.NtfyURL); url != "" {
		notifiers = append(notifiers, NewNtfy(url, NtfyOptions{
			Timeout:  opts.NtfyTimeout,
			Priority: opts.NtfyPriority,
			Tags:     opts.NtfyTags,
		}))
	}

	switch len(notifiers) {
	case 0:
		return nil, ErrNoNotifiers
	case 1:
		return notifiers[0], nil
	default:
		return Multi(notifiers), nil
	}
}

// Multi delivers to every notifier, even after one of them fails.
type Multi []Notifier

// Notify returns the joined errors of the notifiers that failed.
func (multi Multi) Notify(ctx context.Context, title, message string) error {
	var errs []error
	for _, notifier := range multi {
		if err := notifier.Notify(ctx, title, message); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", nameOf(notifier), err))
		}
	}
	return errors.Join(errs...)
}

func nameOf(notifier Notifier) string {
	switch notifier.(type) {
	case *Desktop:
		return "desktop"
	case *Ntfy:
		return "ntfy"
	default:
		return fmt.Sprintf("%T", notifier)
	}
}
