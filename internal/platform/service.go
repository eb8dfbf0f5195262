package platform

import (
	"fmt"
	"os"
)

// Service defines OS-specific helpers needed by the daemon.
type Service interface {
	GetConfigDir() (string, error)
	SystemConfigDirs() []string
	RuntimeDir() string
	EnableAutostart(appName, execPath string) (string, error)
	DisableAutostart(appName string) (string, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard per-user configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// SystemConfigDirs lists machine-wide configuration directories, most
// preferred first.
func (service *platformService) SystemConfigDirs() []string {
	return systemConfigDirs()
}

// RuntimeDir returns the directory for lock files.
func (service *platformService) RuntimeDir() string {
	return runtimeDir()
}
