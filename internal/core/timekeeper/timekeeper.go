package timekeeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"breakreminder/internal/core/model"
	"breakreminder/internal/core/schedule"
)

const (
	defaultInterval          = time.Hour
	defaultIdleCheckInterval = 5 * time.Second
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// ErrRunning is returned when Run is called on a TimeKeeper whose loop is active.
var ErrRunning = errors.New("timekeeper already running")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Notifier delivers a single desktop notification.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Clock        Clock
	Logger       *slog.Logger
}

// TimeKeeper runs the reminder loop. The elapsed counter and the active
// configuration belong to the goroutine executing Run; other goroutines
// interact with it only through Reload and Subscribe.
type TimeKeeper struct {
	options  Config
	notifier Notifier
	logger   *slog.Logger
	running  atomic.Bool
	reloadCh chan struct{}

	mu          sync.Mutex
	pending     *model.ReminderConfig
	idleChecker IdleChecker
	events      []chan Event

	// loop-owned
	config        model.ReminderConfig
	window        schedule.Window
	elapsed       time.Duration
	working       bool
	offHours      bool
	idle          bool
	idleDisabled  bool
	lastIdleCheck time.Time
}

// New creates a TimeKeeper with the provided configuration.
func New(config model.ReminderConfig, notifier Notifier, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = RealClock{}
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	keeper := &TimeKeeper{
		options:  options,
		notifier: notifier,
		logger:   options.Logger.With("component", "timekeeper"),
		reloadCh: make(chan struct{}, 1),
	}
	keeper.applyConfig(config)
	return keeper
}

// SetIdleChecker injects an idle checker.
func (keeper *TimeKeeper) SetIdleChecker(checker IdleChecker) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.idleChecker = checker
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than stall the loop. Channels are closed when Run returns.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Reload hands a new configuration to the loop. The loop applies it on its
// next wake-up and restarts the interval from zero.
func (keeper *TimeKeeper) Reload(config model.ReminderConfig) {
	keeper.mu.Lock()
	keeper.pending = &config
	keeper.mu.Unlock()

	select {
	case keeper.reloadCh <- struct{}{}:
	default:
	}
}

// Run executes the reminder loop until ctx is cancelled. Notification
// failures are logged and never stop the loop; the only return value is
// ctx.Err() or ErrRunning.
func (keeper *TimeKeeper) Run(ctx context.Context) error {
	if !keeper.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer keeper.running.Store(false)
	defer keeper.closeSubscribers()

	keeper.logger.Info("reminder loop started",
		"interval", keeper.config.Interval,
		"work_hours", keeper.window.String(),
		"tick", keeper.options.TickInterval,
	)

	for {
		now := keeper.options.Clock.Now()
		if !keeper.window.Contains(now) {
			wait := keeper.window.UntilStart(now)
			keeper.enterOffHours(now, wait)
			if _, _, err := keeper.sleep(ctx, wait); err != nil {
				return err
			}
			continue
		}

		if !keeper.working {
			keeper.startWork(ctx, now)
		}

		tickTime, fired, err := keeper.sleep(ctx, keeper.options.TickInterval)
		if err != nil {
			return err
		}
		if fired {
			keeper.tick(ctx, tickTime)
		}
	}
}

func (keeper *TimeKeeper) sleep(ctx context.Context, d time.Duration) (time.Time, bool, error) {
	select {
	case <-keeper.reloadCh:
		keeper.applyPending()
		return time.Time{}, false, nil
	default:
	}

	select {
	case <-ctx.Done():
		keeper.logger.Info("reminder loop stopped", "reason", ctx.Err())
		return time.Time{}, false, ctx.Err()
	case <-keeper.reloadCh:
		keeper.applyPending()
		return time.Time{}, false, nil
	case tickTime := <-keeper.options.Clock.After(d):
		return tickTime, true, nil
	}
}

func (keeper *TimeKeeper) tick(ctx context.Context, tickTime time.Time) {
	keeper.handleIdleCheck(tickTime)
	keeper.elapsed += keeper.options.TickInterval
	if keeper.elapsed < keeper.config.Interval {
		return
	}

	keeper.deliver(ctx, EventReminder, keeper.config.Notification.Message, tickTime)
	keeper.elapsed = 0
}

func (keeper *TimeKeeper) startWork(ctx context.Context, now time.Time) {
	keeper.working = true
	keeper.offHours = false
	keeper.elapsed = 0

	if keeper.config.Notification.StartupMessage != "" {
		keeper.deliver(ctx, EventStartup, keeper.config.Notification.StartupMessage, now)
	}
	keeper.logger.Info("work period started", "next_reminder_in", keeper.config.Interval)
}

func (keeper *TimeKeeper) enterOffHours(now time.Time, wait time.Duration) {
	keeper.working = false
	keeper.elapsed = 0
	if keeper.offHours {
		return
	}
	keeper.offHours = true

	keeper.logger.Info("outside work hours",
		"work_hours", keeper.window.String(),
		"resume_in", wait.Round(time.Second),
	)
	keeper.emit(Event{
		Type: EventOffHours,
		Wait: wait,
		At:   now,
	})
}

func (keeper *TimeKeeper) deliver(ctx context.Context, eventType EventType, message string, now time.Time) {
	title := keeper.config.Notification.Title
	if err := keeper.notifier.Notify(ctx, title, message); err != nil {
		keeper.logger.Warn("notification delivery failed",
			"error", err,
			"event", string(eventType),
		)
		keeper.emit(Event{
			Type:    EventDeliveryFailed,
			Elapsed: keeper.elapsed,
			Message: message,
			Err:     err,
			At:      now,
		})
		return
	}

	keeper.logger.Info("notification sent", "event", string(eventType), "message", message)
	keeper.emit(Event{
		Type:    eventType,
		Elapsed: keeper.elapsed,
		Message: message,
		At:      now,
	})
}

func (keeper *TimeKeeper) handleIdleCheck(now time.Time) {
	if !keeper.config.IdleResetEnabled || keeper.idleDisabled {
		return
	}
	keeper.mu.Lock()
	checker := keeper.idleChecker
	keeper.mu.Unlock()
	if checker == nil {
		return
	}
	if !keeper.lastIdleCheck.IsZero() && now.Sub(keeper.lastIdleCheck) < keeper.config.IdleCheckInterval {
		return
	}
	keeper.lastIdleCheck = now

	idleDuration, err := checker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			keeper.idleDisabled = true
			keeper.logger.Warn("idle detection disabled", "error", err)
		} else {
			keeper.logger.Debug("idle check failed", "error", err)
		}
		keeper.emit(Event{
			Type:    EventIdleError,
			Message: err.Error(),
			Err:     err,
			At:      now,
		})
		return
	}

	if idleDuration < keeper.config.IdleResetAfter {
		keeper.idle = false
		return
	}

	keeper.elapsed = 0
	if !keeper.idle {
		keeper.idle = true
		keeper.logger.Info("idle reset", "idle", idleDuration.Round(time.Second))
		keeper.emit(Event{
			Type:    EventIdleReset,
			Message: "idle reset",
			At:      now,
		})
	}
}

func (keeper *TimeKeeper) applyPending() {
	keeper.mu.Lock()
	pending := keeper.pending
	keeper.pending = nil
	keeper.mu.Unlock()
	if pending == nil {
		return
	}

	keeper.applyConfig(*pending)
	keeper.logger.Info("configuration reloaded",
		"interval", keeper.config.Interval,
		"work_hours", keeper.window.String(),
	)
	keeper.emit(Event{
		Type: EventReloaded,
		At:   keeper.options.Clock.Now(),
	})
}

func (keeper *TimeKeeper) applyConfig(config model.ReminderConfig) {
	if config.Interval <= 0 {
		config.Interval = defaultInterval
	}
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = defaultIdleCheckInterval
	}
	keeper.config = config
	keeper.window = schedule.FromWorkHours(config.WorkHours)
	keeper.elapsed = 0
	keeper.idle = false
	keeper.idleDisabled = false
	keeper.lastIdleCheck = time.Time{}
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (keeper *TimeKeeper) closeSubscribers() {
	keeper.mu.Lock()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}
