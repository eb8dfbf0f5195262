// Command breakreminder is a background daemon that periodically sends a
// desktop notification reminding the user to take a break.
//
// The daemon is meant to run under a user service manager; `breakreminder
// autostart enable` installs the unit. Other subcommands validate and
// preview the configuration or send a one-off notification.
package main
