package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

type sendFunc func(title, message string, icon any) error

// Desktop shows reminders through the session notification service.
type Desktop struct {
	icon string
	send sendFunc
}

// NewDesktop returns a desktop notifier. With sound enabled the reminder is
// raised as an alert, which plays the platform's default sound.
func NewDesktop(appName, icon string, sound bool) *Desktop {
	if appName != "" {
		beeep.AppName = appName
	}
	send := beeep.Notify
	if sound {
		send = beeep.Alert
	}
	return &Desktop{icon: icon, send: send}
}

// Notify delivers one desktop notification.
func (desktop *Desktop) Notify(ctx context.Context, title, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := desktop.send(title, message, desktop.icon); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}
