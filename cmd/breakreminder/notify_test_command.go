package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"breakreminder/internal/notify"
)

func newNotifyTestCommand(ctx *commandContext) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "notify-test",
		Short: "Send one notification through the configured transports",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			notifier, err := notify.New(settings.NotifyOptions(appName))
			if err != nil {
				return fmt.Errorf("build notifier: %w", err)
			}

			text := strings.TrimSpace(message)
			if text == "" {
				text = settings.Message
			}

			sendCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := notifier.Notify(sendCtx, settings.Title, text); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Notification not sent")
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Message body (defaults to the configured reminder text)")
	return cmd
}
