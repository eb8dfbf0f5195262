package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
)

func newAutostartCommand(ctx *commandContext) *cobra.Command {
	autostartCmd := &cobra.Command{
		Use:         "autostart",
		Short:       "Install or remove the login service",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Start the daemon automatically at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			execPath, err := executablePath()
			if err != nil {
				return err
			}
			location, err := ctx.service.EnableAutostart(appName, execPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Autostart installed at %s\n", location)
			if runtime.GOOS == "linux" {
				fmt.Fprintln(out, "Activate it with: systemctl --user daemon-reload && systemctl --user enable --now break-reminder.service")
			}
			return nil
		},
	})

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop starting the daemon at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			location, err := ctx.service.DisableAutostart(appName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Autostart removed from %s\n", location)
			return nil
		},
	})

	return autostartCmd
}

func executablePath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return execPath, nil
}
