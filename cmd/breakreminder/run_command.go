package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"breakreminder/internal/core/model"
	"breakreminder/internal/core/timekeeper"
	"breakreminder/internal/notify"
	"breakreminder/internal/platform"
	"breakreminder/internal/storage"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the reminder daemon in the foreground",
		Long: "Run the reminder loop until SIGINT or SIGTERM. SIGHUP reloads the\n" +
			"configuration file and restarts the current interval.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd.Context(), ctx)
		},
	}
}

func runDaemon(cmdCtx context.Context, ctx *commandContext) error {
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}
	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	settings, path, err := ctx.ensureSettings()
	if err != nil {
		return err
	}
	reminderConfig, err := settings.ReminderConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.newLogger(settings)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(ctx.service.RuntimeDir(), appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Error("another instance is running", "error", err)
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	notifier, err := notify.New(settings.NotifyOptions(appName))
	if err != nil {
		return fmt.Errorf("build notifier: %w", err)
	}

	keeper := timekeeper.New(reminderConfig, notifier, timekeeper.Config{
		TickInterval: time.Second,
		Logger:       logger,
	})
	keeper.SetIdleChecker(platform.NewIdleProvider())

	logger.Info("break reminder starting",
		"config", describeSource(path),
		"lock", guard.Path(),
		"pid", os.Getpid(),
	)

	var stats deliveryStats
	events := keeper.Subscribe(32)
	tallied := make(chan struct{})
	go func() {
		defer close(tallied)
		stats.consume(events)
	}()

	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)
	go watchReload(signalCtx, hangup, ctx, path, keeper, logger)

	runErr := keeper.Run(signalCtx)
	<-tallied
	if runErr != nil && signalCtx.Err() == nil {
		return runErr
	}
	logger.Info("break reminder stopped",
		"reminders_sent", stats.reminders,
		"delivery_failures", stats.failures,
		"idle_resets", stats.idleResets,
		"reloads", stats.reloads,
	)
	return nil
}

// deliveryStats summarises one daemon run from the keeper's event stream.
type deliveryStats struct {
	reminders  int
	startups   int
	failures   int
	idleResets int
	reloads    int
}

// consume tallies events until the channel is closed when the loop exits.
func (stats *deliveryStats) consume(events <-chan timekeeper.Event) {
	for event := range events {
		switch event.Type {
		case timekeeper.EventReminder:
			stats.reminders++
		case timekeeper.EventStartup:
			stats.startups++
		case timekeeper.EventDeliveryFailed:
			stats.failures++
		case timekeeper.EventIdleReset:
			stats.idleResets++
		case timekeeper.EventReloaded:
			stats.reloads++
		}
	}
}

type reminderReloader interface {
	Reload(config model.ReminderConfig)
}

// watchReload re-reads the config file on every SIGHUP. Invalid files are
// rejected and the running configuration is kept.
func watchReload(ctx context.Context, hangup <-chan os.Signal, cmdCtx *commandContext, path string, keeper reminderReloader, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hangup:
		}

		resolved, err := cmdCtx.reloadInto(keeper, path)
		if err != nil {
			logger.Warn("reload skipped", "error", err)
			continue
		}
		path = resolved
		logger.Info("reload requested", "config", describeSource(path))
	}
}

// reloadInto loads the config at path and hands it to keeper. An empty path
// is resolved again so a file created after startup is picked up.
func (c *commandContext) reloadInto(keeper reminderReloader, path string) (string, error) {
	if path == "" {
		resolved, err := storage.Resolve(c.service, c.explicitConfigPath())
		if err != nil {
			return "", fmt.Errorf("resolve config: %w", err)
		}
		path = resolved
	}
	settings, err := storage.Load(path)
	if err != nil {
		return "", err
	}
	reminderConfig, err := settings.ReminderConfig()
	if err != nil {
		return "", err
	}
	keeper.Reload(reminderConfig)
	return path, nil
}
