package schedule

import (
	"fmt"
	"strings"
	"time"

	"breakreminder/internal/core/model"
)

const clockLayout = "15:04"

// previewHorizon bounds Preview when the interval never fits inside the window.
const previewHorizon = 14 * 24 * time.Hour

// Window is a daily time-of-day range. It is evaluated in the location of
// the time passed to it, so local work hours follow the host timezone.
type Window struct {
	Start  time.Duration
	End    time.Duration
	Always bool
}

// FromWorkHours builds a window from configuration. Disabled work hours
// produce a window that always contains every instant.
func FromWorkHours(hours model.WorkHours) Window {
	if !hours.Enabled {
		return Window{Always: true}
	}
	return Window{Start: hours.Start, End: hours.End}
}

// ParseClock parses an HH:MM string into an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	parsed, err := time.Parse(clockLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: expected HH:MM", value)
	}
	return time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute, nil
}

// FormatClock renders an offset from midnight as HH:MM.
func FormatClock(offset time.Duration) string {
	offset = offset % (24 * time.Hour)
	if offset < 0 {
		offset += 24 * time.Hour
	}
	hours := int(offset / time.Hour)
	minutes := int((offset % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// Contains reports whether t falls inside the window. Both bounds are
// inclusive. A window whose start is after its end wraps midnight.
func (window Window) Contains(t time.Time) bool {
	if window.Always {
		return true
	}
	offset := sinceMidnight(t)
	if window.Start <= window.End {
		return offset >= window.Start && offset <= window.End
	}
	return offset >= window.Start || offset <= window.End
}

// NextStart returns the first window start strictly after t.
func (window Window) NextStart(t time.Time) time.Time {
	if window.Always {
		return t
	}
	start := atOffset(t, window.Start)
	if !start.After(t) {
		start = atOffset(t.AddDate(0, 0, 1), window.Start)
	}
	return start
}

// UntilStart returns how long to wait from t until the window opens again.
func (window Window) UntilStart(t time.Time) time.Duration {
	wait := window.NextStart(t).Sub(t)
	if wait < 0 {
		return 0
	}
	return wait
}

// String renders the window for logs.
func (window Window) String() string {
	if window.Always {
		return "always"
	}
	return FormatClock(window.Start) + "-" + FormatClock(window.End)
}

// Preview lists the next count reminder times for a loop started at now.
// Entering the window restarts the interval, the same way the loop does.
func Preview(now time.Time, interval time.Duration, window Window, count int) []time.Time {
	if interval <= 0 || count <= 0 {
		return nil
	}

	limit := now.Add(previewHorizon)
	cursor := now
	if !window.Contains(cursor) {
		cursor = window.NextStart(cursor)
	}

	reminders := make([]time.Time, 0, count)
	for len(reminders) < count && !cursor.After(limit) {
		next := cursor.Add(interval)
		if window.Contains(next) {
			reminders = append(reminders, next)
			cursor = next
			continue
		}
		cursor = window.NextStart(next)
	}
	return reminders
}

func sinceMidnight(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}

func atOffset(day time.Time, offset time.Duration) time.Time {
	hours := int(offset / time.Hour)
	minutes := int((offset % time.Hour) / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), hours, minutes, 0, 0, day.Location())
}
