//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnableAutostart installs a systemd user unit that runs the daemon for the
// graphical session. The service manager still has to enable it.
func (service *platformService) EnableAutostart(appName, execPath string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return "", fmt.Errorf("enable autostart: exec path is empty")
	}

	unitDir, err := service.unitDir()
	if err != nil {
		return "", fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(unitDir, 0o755); err != nil {
		return "", fmt.Errorf("enable autostart: create unit dir: %w", err)
	}

	unitPath := filepath.Join(unitDir, unitFileName(appName))
	if err := os.WriteFile(unitPath, []byte(buildUnit(appName, execPath)), 0o644); err != nil {
		return "", fmt.Errorf("enable autostart: write unit: %w", err)
	}

	return unitPath, nil
}

// DisableAutostart removes the systemd user unit. A missing unit is not an error.
func (service *platformService) DisableAutostart(appName string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("disable autostart: app name is empty")
	}

	unitDir, err := service.unitDir()
	if err != nil {
		return "", fmt.Errorf("disable autostart: %w", err)
	}

	unitPath := filepath.Join(unitDir, unitFileName(appName))
	if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("disable autostart: remove unit: %w", err)
	}

	return unitPath, nil
}

func (service *platformService) unitDir() (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "systemd", "user"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func systemConfigDirs() []string {
	raw := os.Getenv("XDG_CONFIG_DIRS")
	if strings.TrimSpace(raw) == "" {
		return []string{"/etc/xdg"}
	}
	var dirs []string
	for _, dir := range filepath.SplitList(raw) {
		if dir = strings.TrimSpace(dir); filepath.IsAbs(dir) {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return []string{"/etc/xdg"}
	}
	return dirs
}

func runtimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

func unitFileName(appName string) string {
	return serviceName(appName) + ".service"
}

func serviceName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "break-reminder"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func buildUnit(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(
		`[Unit]
Description=%s desktop break reminders
PartOf=graphical-session.target
After=graphical-session.target

[Service]
Type=simple
ExecStart=%s run
ExecReload=/bin/kill -HUP $MAINPID
Restart=on-failure
RestartSec=10

[Install]
WantedBy=graphical-session.target
`,
		appName,
		execLine,
	)
}
