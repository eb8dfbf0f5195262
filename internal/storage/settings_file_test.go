package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"breakreminder/internal/preferences"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	settings, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(settings, preferences.DefaultSettings()) {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestLoadYAMLOverridesOnlyPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
schedule:
  interval_seconds: 1500
workhours:
  start: "08:30"
notification:
  message: Look away from the screen.
`)

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Interval != 1500*time.Second {
		t.Fatalf("unexpected interval %v", settings.Interval)
	}
	if settings.WorkStart != "08:30" || settings.WorkEnd != "17:00" {
		t.Fatalf("unexpected work hours %s-%s", settings.WorkStart, settings.WorkEnd)
	}
	if settings.Message != "Look away from the screen." {
		t.Fatalf("unexpected message %q", settings.Message)
	}
	if settings.Title != "Break Reminder" || !settings.WorkHoursEnabled || !settings.Desktop {
		t.Fatalf("expected untouched keys to keep defaults, got %+v", settings)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[schedule]
interval_seconds = 900

[workhours]
enabled = false

[ntfy]
url = "https://ntfy.sh/breaks"
tags = ["coffee"]
`)

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Interval != 15*time.Minute {
		t.Fatalf("unexpected interval %v", settings.Interval)
	}
	if settings.WorkHoursEnabled {
		t.Fatal("expected work hours disabled")
	}
	if settings.NtfyURL != "https://ntfy.sh/breaks" || len(settings.NtfyTags) != 1 || settings.NtfyTags[0] != "coffee" {
		t.Fatalf("unexpected ntfy settings %+v", settings)
	}
	if settings.NtfyTimeout != 10*time.Second {
		t.Fatalf("expected default ntfy timeout, got %v", settings.NtfyTimeout)
	}
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "config.yaml")
	writeFile(t, badYAML, "schedule: [unterminated")
	if _, err := Load(badYAML); err == nil || !strings.Contains(err.Error(), "parse yaml config") {
		t.Fatalf("expected yaml parse error, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "config.ini")); err == nil {
		t.Fatal("expected unsupported extension error")
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("expected read error for missing file")
	}
}

func TestSaveRoundTripsThroughBothFormats(t *testing.T) {
	settings := preferences.DefaultSettings()
	settings.Interval = 45 * time.Minute
	settings.WorkStart = "22:00"
	settings.WorkEnd = "06:00"
	settings.NtfyURL = "https://ntfy.example/topic"
	settings.NtfyTags = []string{"stretch", "water"}
	settings.LogFile = "/var/tmp/breaks.log"

	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := Save(path, settings); err != nil {
				t.Fatalf("Save: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(loaded, settings) {
				t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, settings)
			}
		})
	}
}

func TestEmbeddedSampleMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteSample(path, false); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, preferences.DefaultSettings()) {
		t.Fatalf("sample drifted from defaults: %+v", loaded)
	}

	if err := WriteSample(path, false); !errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
	if err := WriteSample(filepath.Join(t.TempDir(), "config.ini"), false); err == nil || errors.Is(err, ErrConfigExists) {
		t.Fatalf("expected extension error distinct from ErrConfigExists, got %v", err)
	}
	if err := WriteSample(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestEncodeYAMLUsesSectionKeys(t *testing.T) {
	var buffer bytes.Buffer
	if err := Encode(&buffer, FormatYAML, preferences.DefaultSettings()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, key := range []string{"schedule:", "interval_seconds: 3600", "workhours:", "startup_message: Starting work."} {
		if !strings.Contains(buffer.String(), key) {
			t.Fatalf("encoded yaml missing %q:\n%s", key, buffer.String())
		}
	}
	if err := Encode(&buffer, Format("ini"), preferences.DefaultSettings()); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestLoadRejectsDurationsThatOverflow(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"schedule.interval_seconds": "schedule:\n  interval_seconds: 18446744074\n",
		"idle.reset_after_seconds":  "idle:\n  reset_after_seconds: 9223372037\n",
		"ntfy.timeout_seconds":      "ntfy:\n  timeout_seconds: -9223372037\n",
	}
	for key, content := range cases {
		path := filepath.Join(dir, strings.ReplaceAll(key, ".", "_")+".yaml")
		writeFile(t, path, content)
		if _, err := Load(path); err == nil || !strings.Contains(err.Error(), key) {
			t.Fatalf("expected out-of-range error naming %s, got %v", key, err)
		}
	}

	path := filepath.Join(dir, "largest.yaml")
	writeFile(t, path, "schedule:\n  interval_seconds: 9223372036\n")
	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Interval != 9223372036*time.Second {
		t.Fatalf("unexpected interval %v", settings.Interval)
	}
}
