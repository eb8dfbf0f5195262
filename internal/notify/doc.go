// Package notify delivers break reminders through pluggable notifiers.
//
// The desktop notifier talks to the session's notification service via
// beeep (D-Bus on Linux, osascript on macOS, toast on Windows). An optional
// ntfy notifier pushes the same reminder to a topic so it reaches a phone
// when the desktop is locked. Multi fans a reminder out to every configured
// notifier and reports the joined failures; callers decide whether a failure
// matters.
package notify
