package model

import "time"

// Notification is the fixed text of a reminder.
type Notification struct {
	Title          string
	Message        string
	StartupMessage string
}

// WorkHours defines the daily local-time window in which reminders fire.
// Start and End are offsets from midnight.
type WorkHours struct {
	Enabled bool
	Start   time.Duration
	End     time.Duration
}

// ReminderConfig contains runtime settings for the TimeKeeper loop.
type ReminderConfig struct {
	Interval     time.Duration
	Notification Notification
	WorkHours    WorkHours

	IdleResetEnabled  bool
	IdleResetAfter    time.Duration
	IdleCheckInterval time.Duration
}
