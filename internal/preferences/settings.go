package preferences

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"breakreminder/internal/core/model"
	"breakreminder/internal/core/schedule"
	"breakreminder/internal/logging"
	"breakreminder/internal/notify"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid settings")

// Settings defines the user-editable configuration.
type Settings struct {
	Interval time.Duration

	Title          string
	Message        string
	StartupMessage string
	Desktop        bool
	Sound          bool
	Icon           string

	WorkHoursEnabled bool
	WorkStart        string
	WorkEnd          string

	IdleEnabled    bool
	IdleResetAfter time.Duration

	NtfyURL      string
	NtfyPriority string
	NtfyTags     []string
	NtfyTimeout  time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Interval:         time.Hour,
		Title:            "Break Reminder",
		Message:          "It's time to take a break and stretch!",
		StartupMessage:   "Starting work.",
		Desktop:          true,
		WorkHoursEnabled: true,
		WorkStart:        "09:00",
		WorkEnd:          "17:00",
		IdleEnabled:      true,
		IdleResetAfter:   5 * time.Minute,
		NtfyTimeout:      10 * time.Second,
		LogLevel:         "info",
		LogFormat:        "auto",
	}
}

// Validate reports every problem at once, wrapped in ErrInvalid.
func (settings Settings) Validate() error {
	var problems []string

	if settings.Interval <= 0 {
		problems = append(problems, "schedule interval must be greater than zero")
	}
	if strings.TrimSpace(settings.Title) == "" && strings.TrimSpace(settings.Message) == "" {
		problems = append(problems, "notification title and message cannot both be empty")
	}
	if !settings.Desktop && strings.TrimSpace(settings.NtfyURL) == "" {
		problems = append(problems, "enable desktop notifications or set an ntfy url")
	}

	if settings.WorkHoursEnabled {
		start, startErr := schedule.ParseClock(settings.WorkStart)
		if startErr != nil {
			problems = append(problems, "workhours start: "+startErr.Error())
		}
		end, endErr := schedule.ParseClock(settings.WorkEnd)
		if endErr != nil {
			problems = append(problems, "workhours end: "+endErr.Error())
		}
		if startErr == nil && endErr == nil && start == end {
			problems = append(problems, "workhours start and end must differ")
		}
	}

	if settings.IdleEnabled && settings.IdleResetAfter <= 0 {
		problems = append(problems, "idle reset_after must be greater than zero")
	}
	if settings.NtfyTimeout < 0 {
		problems = append(problems, "ntfy timeout cannot be negative")
	}
	switch strings.ToLower(strings.TrimSpace(settings.NtfyPriority)) {
	case "", "min", "low", "default", "high", "max", "urgent", "1", "2", "3", "4", "5":
	default:
		problems = append(problems, fmt.Sprintf("ntfy priority %q is not recognised", settings.NtfyPriority))
	}

	if _, err := logging.ParseLevel(settings.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	switch strings.ToLower(strings.TrimSpace(settings.LogFormat)) {
	case "", "auto", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("log format %q is not one of auto, console, json", settings.LogFormat))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}

// ReminderConfig converts settings to the loop configuration.
func (settings Settings) ReminderConfig() (model.ReminderConfig, error) {
	if err := settings.Validate(); err != nil {
		return model.ReminderConfig{}, err
	}

	hours := model.WorkHours{Enabled: settings.WorkHoursEnabled}
	if hours.Enabled {
		hours.Start, _ = schedule.ParseClock(settings.WorkStart)
		hours.End, _ = schedule.ParseClock(settings.WorkEnd)
	}

	return model.ReminderConfig{
		Interval: settings.Interval,
		Notification: model.Notification{
			Title:          settings.Title,
			Message:        settings.Message,
			StartupMessage: settings.StartupMessage,
		},
		WorkHours:         hours,
		IdleResetEnabled:  settings.IdleEnabled,
		IdleResetAfter:    settings.IdleResetAfter,
		IdleCheckInterval: 5 * time.Second,
	}, nil
}

// NotifyOptions converts settings to notifier construction options.
func (settings Settings) NotifyOptions(appName string) notify.Options {
	return notify.Options{
		AppName:      appName,
		Desktop:      settings.Desktop,
		Sound:        settings.Sound,
		Icon:         settings.Icon,
		NtfyURL:      settings.NtfyURL,
		NtfyTimeout:  settings.NtfyTimeout,
		NtfyPriority: settings.NtfyPriority,
		NtfyTags:     settings.NtfyTags,
	}
}

// LoggingOptions converts settings to logger options. A non-empty override
// wins over the configured level. A configured log file is written in
// addition to stderr.
func (settings Settings) LoggingOptions(levelOverride string) logging.Options {
	level := settings.LogLevel
	if strings.TrimSpace(levelOverride) != "" {
		level = levelOverride
	}
	outputs := []string{"stderr"}
	if file := strings.TrimSpace(settings.LogFile); file != "" {
		outputs = append(outputs, file)
	}
	return logging.Options{Level: level, Format: settings.LogFormat, OutputPaths: outputs}
}
