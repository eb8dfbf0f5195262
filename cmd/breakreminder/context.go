package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"breakreminder/internal/logging"
	"breakreminder/internal/platform"
	"breakreminder/internal/preferences"
	"breakreminder/internal/storage"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	service      platform.Service

	settingsOnce sync.Once
	settings     preferences.Settings
	settingsPath string
	settingsErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		service:      platform.NewService(),
	}
}

// ensureSettings resolves and loads the config file once per process. The
// returned path is empty when built-in defaults are in use.
func (c *commandContext) ensureSettings() (preferences.Settings, string, error) {
	c.settingsOnce.Do(func() {
		c.settings, c.settingsPath, c.settingsErr = c.loadSettings()
	})
	return c.settings, c.settingsPath, c.settingsErr
}

func (c *commandContext) loadSettings() (preferences.Settings, string, error) {
	path, err := storage.Resolve(c.service, c.explicitConfigPath())
	if err != nil {
		return preferences.Settings{}, "", fmt.Errorf("resolve config: %w", err)
	}
	settings, err := storage.Load(path)
	if err != nil {
		return preferences.Settings{}, path, fmt.Errorf("load config: %w", err)
	}
	return settings, path, nil
}

func (c *commandContext) explicitConfigPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) logLevelOverride() string {
	if c.logLevelFlag == nil {
		return ""
	}
	return *c.logLevelFlag
}

func (c *commandContext) newLogger(settings preferences.Settings) (*slog.Logger, error) {
	logger, err := logging.New(settings.LoggingOptions(c.logLevelOverride()))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func describeSource(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}
