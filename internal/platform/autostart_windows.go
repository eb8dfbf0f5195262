//go:build windows

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// EnableAutostart registers the daemon under the current user's Run key.
func (service *platformService) EnableAutostart(appName, execPath string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return "", fmt.Errorf("enable autostart: exec path is empty")
	}

	command := exec.Command(
		"reg", "add", registryRunKey,
		"/v", appName,
		"/t", "REG_SZ",
		"/d", quoteWindowsPath(execPath)+" run",
		"/f",
	)
	output, err := command.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("enable autostart: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return registryRunKey + `\` + appName, nil
}

// DisableAutostart removes the Run value.
func (service *platformService) DisableAutostart(appName string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("disable autostart: app name is empty")
	}

	command := exec.Command("reg", "delete", registryRunKey, "/v", appName, "/f")
	output, err := command.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("disable autostart: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return registryRunKey + `\` + appName, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func systemConfigDirs() []string {
	if dir := os.Getenv("ProgramData"); dir != "" {
		return []string{dir}
	}
	return []string{`C:\ProgramData`}
}

func runtimeDir() string {
	return os.TempDir()
}

func quoteWindowsPath(execPath string) string {
	trimmed := strings.Trim(execPath, `"`)
	return fmt.Sprintf(`"%s"`, trimmed)
}
