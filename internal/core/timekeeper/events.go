package timekeeper

import "time"

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStartup        EventType = "startup"
	EventReminder       EventType = "reminder"
	EventDeliveryFailed EventType = "delivery_failed"
	EventOffHours       EventType = "off_hours"
	EventIdleReset      EventType = "idle_reset"
	EventIdleError      EventType = "idle_error"
	EventReloaded       EventType = "reloaded"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type    EventType
	Elapsed time.Duration
	Wait    time.Duration
	Message string
	Err     error
	At      time.Time
}
