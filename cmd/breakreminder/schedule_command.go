package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"breakreminder/internal/core/schedule"
)

const reminderTimeLayout = "Mon 2006-01-02 15:04"

func newScheduleCommand(ctx *commandContext) *cobra.Command {
	var count int
	var atFlag string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Preview upcoming reminder times",
		Long: "Print when the next reminders would fire if the daemon started now,\n" +
			"honouring work hours. Idle resets are not simulated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be greater than zero")
			}
			now := time.Now()
			if value := strings.TrimSpace(atFlag); value != "" {
				parsed, err := time.Parse(time.RFC3339, value)
				if err != nil {
					return fmt.Errorf("parse --at: %w", err)
				}
				now = parsed
			}

			settings, _, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			config, err := settings.ReminderConfig()
			if err != nil {
				return err
			}

			window := schedule.FromWorkHours(config.WorkHours)
			reminders := schedule.Preview(now, config.Interval, window, count)

			out := cmd.OutOrStdout()
			interval := strings.TrimSpace(humanize.RelTime(now, now.Add(config.Interval), "", ""))
			fmt.Fprintf(out, "Interval: %s  Work hours: %s\n", interval, window.String())
			if len(reminders) == 0 {
				fmt.Fprintln(out, "No reminders fit inside the work hours window.")
				return nil
			}

			rows := make([][]string, 0, len(reminders))
			for i, at := range reminders {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					at.Format(reminderTimeLayout),
					humanize.RelTime(at, now, "ago", "from now"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Time", "Relative"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "Number of reminders to list")
	cmd.Flags().StringVar(&atFlag, "at", "", "Start time in RFC3339 (defaults to now)")
	return cmd
}
