package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"breakreminder/internal/core/model"
	"breakreminder/internal/core/timekeeper"
	"breakreminder/internal/preferences"
)

type stubService struct {
	configDir string
}

func (s stubService) GetConfigDir() (string, error) { return s.configDir, nil }
func (s stubService) SystemConfigDirs() []string    { return nil }
func (s stubService) RuntimeDir() string            { return s.configDir }
func (s stubService) EnableAutostart(string, string) (string, error) {
	return "", errors.New("not supported in tests")
}
func (s stubService) DisableAutostart(string) (string, error) {
	return "", errors.New("not supported in tests")
}

type recordingReloader struct {
	configs []model.ReminderConfig
}

func (r *recordingReloader) Reload(config model.ReminderConfig) {
	r.configs = append(r.configs, config)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type quietNotifier struct{}

func (quietNotifier) Notify(context.Context, string, string) error { return nil }

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestReloadIntoResolvesConfigCreatedAfterStartup(t *testing.T) {
	configDir := t.TempDir()
	cmdCtx := &commandContext{service: stubService{configDir: configDir}}
	reloader := &recordingReloader{}

	path, err := cmdCtx.reloadInto(reloader, "")
	if err != nil {
		t.Fatalf("reload without config file: %v", err)
	}
	if path != "" || len(reloader.configs) != 1 || reloader.configs[0].Interval != time.Hour {
		t.Fatalf("expected defaults to be applied, got path %q configs %+v", path, reloader.configs)
	}

	created := writeConfig(t, configDir, filepath.Join("break-reminder", "config.yaml"), "schedule:\n  interval_seconds: 600\n")
	path, err = cmdCtx.reloadInto(reloader, "")
	if err != nil {
		t.Fatalf("reload after file creation: %v", err)
	}
	if path != created {
		t.Fatalf("expected resolved path %q, got %q", created, path)
	}
	if got := reloader.configs[len(reloader.configs)-1].Interval; got != 10*time.Minute {
		t.Fatalf("expected 10m interval from new file, got %v", got)
	}
}

func TestReloadIntoRejectsInvalidFile(t *testing.T) {
	cmdCtx := &commandContext{service: stubService{configDir: t.TempDir()}}
	reloader := &recordingReloader{}
	path := writeConfig(t, t.TempDir(), "config.yaml", "schedule:\n  interval_seconds: 0\n")

	if _, err := cmdCtx.reloadInto(reloader, path); !errors.Is(err, preferences.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if len(reloader.configs) != 0 {
		t.Fatalf("expected running config to be kept, got %+v", reloader.configs)
	}
}

func TestWatchReloadAppliesOnlyValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "config.yaml", "workhours:\n  enabled: false\nnotification:\n  startup_message: \"\"\n")
	cmdCtx := &commandContext{service: stubService{configDir: dir}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	keeper := timekeeper.New(model.ReminderConfig{Interval: time.Hour}, quietNotifier{}, timekeeper.Config{
		TickInterval: 10 * time.Millisecond,
	})
	events := keeper.Subscribe(64)

	loopDone := make(chan error, 1)
	go func() { loopDone <- keeper.Run(ctx) }()

	hangup := make(chan os.Signal, 1)
	go watchReload(ctx, hangup, cmdCtx, path, keeper, logger)

	writeConfig(t, dir, "config.yaml", "schedule:\n  interval_seconds: -5\nworkhours:\n  enabled: false\n")
	hangup <- syscall.SIGHUP
	waitFor(t, 2*time.Second, func() bool { return strings.Contains(logs.String(), "reload skipped") })

	writeConfig(t, dir, "config.yaml", "schedule:\n  interval_seconds: 1\nworkhours:\n  enabled: false\nnotification:\n  startup_message: \"\"\n")
	hangup <- syscall.SIGHUP

	var reloadedAt time.Time
	reloads := 0
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event := <-events:
			switch event.Type {
			case timekeeper.EventReloaded:
				reloads++
				reloadedAt = event.At
			case timekeeper.EventReminder:
				if reloads != 1 {
					t.Fatalf("expected exactly one applied reload before the reminder, got %d", reloads)
				}
				if gap := event.At.Sub(reloadedAt); gap < 900*time.Millisecond {
					t.Fatalf("reminder fired %v after reload, want about 1s", gap)
				}
				cancel()
				if err := <-loopDone; !errors.Is(err, context.Canceled) {
					t.Fatalf("expected context.Canceled, got %v", err)
				}
				if !strings.Contains(logs.String(), "reload requested") {
					t.Fatalf("expected applied reload to be logged:\n%s", logs.String())
				}
				return
			}
		case <-timeout:
			t.Fatalf("no reminder after reload; logs:\n%s", logs.String())
		}
	}
}

func TestDeliveryStatsConsumesUntilClosed(t *testing.T) {
	events := make(chan timekeeper.Event, 8)
	for _, eventType := range []timekeeper.EventType{
		timekeeper.EventStartup,
		timekeeper.EventReminder,
		timekeeper.EventReminder,
		timekeeper.EventDeliveryFailed,
		timekeeper.EventIdleReset,
		timekeeper.EventReloaded,
		timekeeper.EventOffHours,
	} {
		events <- timekeeper.Event{Type: eventType}
	}
	close(events)

	var stats deliveryStats
	stats.consume(events)
	if stats.startups != 1 || stats.reminders != 2 || stats.failures != 1 || stats.idleResets != 1 || stats.reloads != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
