// Package logging assembles the structured slog loggers used by the daemon
// and the CLI.
//
// It owns the console and JSON handlers and the level/output plumbing. The
// "auto" format picks the human-readable console layout when stderr is a
// terminal and JSON otherwise, so the same binary reads well interactively
// and under journald. Every logger carries the process session_id.
package logging
