package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"breakreminder/internal/storage"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = ctx.explicitConfigPath()
			}
			if target == "" {
				defaultPath, err := storage.DefaultPath(ctx.service)
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := storage.WriteSample(target, overwrite); err != nil {
				if errors.Is(err, storage.ErrConfigExists) {
					return fmt.Errorf("create sample config: %w (use --overwrite to replace it)", err)
				}
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, path, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config source: %s\n", describeSource(path))
			if err := settings.Validate(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			format := storage.Format(strings.ToLower(strings.TrimSpace(formatFlag)))
			return storage.Encode(cmd.OutOrStdout(), format, settings)
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(storage.FormatYAML), "Output format (yaml or toml)")
	return cmd
}
