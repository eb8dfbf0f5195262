//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableAutostartWritesUserUnit(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	service := NewService()
	unitPath, err := service.EnableAutostart("Break Reminder", "/opt/break reminder/bin/breakreminder")
	if err != nil {
		t.Fatalf("EnableAutostart: %v", err)
	}
	if want := filepath.Join(configHome, "systemd", "user", "break-reminder.service"); unitPath != want {
		t.Fatalf("unit path %q, want %q", unitPath, want)
	}

	content, err := os.ReadFile(unitPath)
	if err != nil {
		t.Fatalf("read unit: %v", err)
	}
	for _, line := range []string{
		`ExecStart="/opt/break reminder/bin/breakreminder" run`,
		"Restart=on-failure",
		"WantedBy=graphical-session.target",
	} {
		if !strings.Contains(string(content), line) {
			t.Fatalf("unit missing %q:\n%s", line, content)
		}
	}

	if _, err := service.DisableAutostart("Break Reminder"); err != nil {
		t.Fatalf("DisableAutostart: %v", err)
	}
	if _, err := os.Stat(unitPath); !os.IsNotExist(err) {
		t.Fatalf("expected unit removed, stat err %v", err)
	}
	if _, err := service.DisableAutostart("Break Reminder"); err != nil {
		t.Fatalf("second DisableAutostart should be a no-op, got %v", err)
	}
}

func TestSystemConfigDirsHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_DIRS", "/etc/site:relative:/usr/local/etc")
	dirs := NewService().SystemConfigDirs()
	if len(dirs) != 2 || dirs[0] != "/etc/site" || dirs[1] != "/usr/local/etc" {
		t.Fatalf("unexpected dirs %v", dirs)
	}

	t.Setenv("XDG_CONFIG_DIRS", "")
	if dirs := NewService().SystemConfigDirs(); len(dirs) != 1 || dirs[0] != "/etc/xdg" {
		t.Fatalf("unexpected default dirs %v", dirs)
	}
}
