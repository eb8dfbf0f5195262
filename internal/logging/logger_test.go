package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"breakreminder/internal/logging"
)

func TestJSONLoggerWritesStructuredRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "breakreminder.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{logPath},
		SessionID:   "session-1",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With("component", "timekeeper").Info("notification sent", "event", "reminder")
	logger.Debug("hidden")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single info record, got %d: %q", len(lines), content)
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if record["msg"] != "notification sent" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if record[logging.FieldSessionID] != "session-1" {
		t.Fatalf("unexpected session id: %v", record[logging.FieldSessionID])
	}
	if record["component"] != "timekeeper" || record["event"] != "reminder" {
		t.Fatalf("missing attributes: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With("component", "timekeeper").Warn("notification delivery failed", "error", errors.New("no dbus session"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "WARN timekeeper: notification delivery failed") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, `error="no dbus session"`) {
		t.Fatalf("expected quoted error attr, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", line)
	}
}

func TestAutoFormatUsesJSONForFiles(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "auto.log")

	logger, err := logging.New(logging.Options{Format: "auto", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(content)), "{") {
		t.Fatalf("expected JSON output for non-terminal writer, got %q", content)
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := logging.New(logging.Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}
