//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnableAutostart installs a LaunchAgent that runs the daemon at login.
func (service *platformService) EnableAutostart(appName, execPath string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return "", fmt.Errorf("enable autostart: exec path is empty")
	}

	launchAgentsDir, err := launchAgentsDir()
	if err != nil {
		return "", fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(launchAgentsDir, 0o755); err != nil {
		return "", fmt.Errorf("enable autostart: create LaunchAgents dir: %w", err)
	}

	label := launchAgentLabel(appName)
	plistPath := filepath.Join(launchAgentsDir, label+".plist")
	if err := os.WriteFile(plistPath, []byte(buildLaunchAgentPlist(label, execPath)), 0o644); err != nil {
		return "", fmt.Errorf("enable autostart: write plist: %w", err)
	}

	return plistPath, nil
}

// DisableAutostart removes the LaunchAgent plist.
func (service *platformService) DisableAutostart(appName string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("disable autostart: app name is empty")
	}

	launchAgentsDir, err := launchAgentsDir()
	if err != nil {
		return "", fmt.Errorf("disable autostart: %w", err)
	}

	plistPath := filepath.Join(launchAgentsDir, launchAgentLabel(appName)+".plist")
	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("disable autostart: remove plist: %w", err)
	}

	return plistPath, nil
}

func launchAgentsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func systemConfigDirs() []string {
	return []string{"/Library/Application Support"}
}

func runtimeDir() string {
	return os.TempDir()
}

func launchAgentLabel(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "break-reminder"
	}
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	return "io.breakreminder." + name
}

func buildLaunchAgentPlist(label, execPath string) string {
	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>run</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<dict>
		<key>SuccessfulExit</key>
		<false/>
	</dict>
</dict>
</plist>
`,
		xmlEscape(label),
		xmlEscape(execPath),
	)
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
