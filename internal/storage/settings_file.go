package storage

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"breakreminder/internal/preferences"
)

// Format identifies a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrConfigExists is returned by WriteSample when it would replace a file.
var ErrConfigExists = errors.New("config file already exists")

const maxSeconds = math.MaxInt64 / int64(time.Second)

//go:embed sample_config.yaml
var sampleConfig []byte

type fileSettings struct {
	Schedule     scheduleSection     `yaml:"schedule" toml:"schedule"`
	WorkHours    workHoursSection    `yaml:"workhours" toml:"workhours"`
	Notification notificationSection `yaml:"notification" toml:"notification"`
	Idle         idleSection         `yaml:"idle" toml:"idle"`
	Ntfy         ntfySection         `yaml:"ntfy" toml:"ntfy"`
	Logging      loggingSection      `yaml:"logging" toml:"logging"`
}

type scheduleSection struct {
	IntervalSeconds int64 `yaml:"interval_seconds" toml:"interval_seconds"`
}

type workHoursSection struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Start   string `yaml:"start" toml:"start"`
	End     string `yaml:"end" toml:"end"`
}

type notificationSection struct {
	Title          string `yaml:"title" toml:"title"`
	Message        string `yaml:"message" toml:"message"`
	StartupMessage string `yaml:"startup_message" toml:"startup_message"`
	Desktop        bool   `yaml:"desktop" toml:"desktop"`
	Sound          bool   `yaml:"sound" toml:"sound"`
	Icon           string `yaml:"icon,omitempty" toml:"icon,omitempty"`
}

type idleSection struct {
	Enabled           bool  `yaml:"enabled" toml:"enabled"`
	ResetAfterSeconds int64 `yaml:"reset_after_seconds" toml:"reset_after_seconds"`
}

type ntfySection struct {
	URL            string   `yaml:"url,omitempty" toml:"url,omitempty"`
	Priority       string   `yaml:"priority,omitempty" toml:"priority,omitempty"`
	Tags           []string `yaml:"tags,omitempty" toml:"tags,omitempty"`
	TimeoutSeconds int64    `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

type loggingSection struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// FormatFor picks the encoding from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Load reads settings from path. Keys missing from the file keep their
// default values. An empty path returns the defaults.
func Load(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	if path == "" {
		return settings, nil
	}

	format, err := FormatFor(path)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("read config file: %w", err)
	}

	fileData := toFile(settings)
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(rawData, &fileData)
	default:
		err = yaml.Unmarshal(rawData, &fileData)
	}
	if err != nil {
		return settings, fmt.Errorf("parse %s config %s: %w", format, path, err)
	}

	settings, err = fromFile(fileData)
	if err != nil {
		return preferences.DefaultSettings(), fmt.Errorf("config %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to path in the format implied by its extension.
func Save(path string, settings preferences.Settings) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buffer bytes.Buffer
	if err := Encode(&buffer, format, settings); err != nil {
		return err
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Encode serializes settings in the given format.
func Encode(w io.Writer, format Format, settings preferences.Settings) error {
	fileData := toFile(settings)
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(fileData); err != nil {
			return fmt.Errorf("marshal config yaml: %w", err)
		}
		return encoder.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(fileData); err != nil {
			return fmt.Errorf("marshal config toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q", format)
	}
}

// WriteSample creates a commented starter config at path. YAML targets get
// the annotated sample; TOML targets get the defaults. Existing files are
// only replaced when overwrite is set.
func WriteSample(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if format == FormatTOML {
		return Save(path, preferences.DefaultSettings())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, sampleConfig, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func toFile(settings preferences.Settings) fileSettings {
	return fileSettings{
		Schedule: scheduleSection{IntervalSeconds: seconds(settings.Interval)},
		WorkHours: workHoursSection{
			Enabled: settings.WorkHoursEnabled,
			Start:   settings.WorkStart,
			End:     settings.WorkEnd,
		},
		Notification: notificationSection{
			Title:          settings.Title,
			Message:        settings.Message,
			StartupMessage: settings.StartupMessage,
			Desktop:        settings.Desktop,
			Sound:          settings.Sound,
			Icon:           settings.Icon,
		},
		Idle: idleSection{
			Enabled:           settings.IdleEnabled,
			ResetAfterSeconds: seconds(settings.IdleResetAfter),
		},
		Ntfy: ntfySection{
			URL:            settings.NtfyURL,
			Priority:       settings.NtfyPriority,
			Tags:           settings.NtfyTags,
			TimeoutSeconds: seconds(settings.NtfyTimeout),
		},
		Logging: loggingSection{
			Level:  settings.LogLevel,
			Format: settings.LogFormat,
			File:   settings.LogFile,
		},
	}
}

func fromFile(fileData fileSettings) (preferences.Settings, error) {
	interval, err := toDuration("schedule.interval_seconds", fileData.Schedule.IntervalSeconds)
	if err != nil {
		return preferences.Settings{}, err
	}
	resetAfter, err := toDuration("idle.reset_after_seconds", fileData.Idle.ResetAfterSeconds)
	if err != nil {
		return preferences.Settings{}, err
	}
	timeout, err := toDuration("ntfy.timeout_seconds", fileData.Ntfy.TimeoutSeconds)
	if err != nil {
		return preferences.Settings{}, err
	}

	return preferences.Settings{
		Interval:         interval,
		Title:            fileData.Notification.Title,
		Message:          fileData.Notification.Message,
		StartupMessage:   fileData.Notification.StartupMessage,
		Desktop:          fileData.Notification.Desktop,
		Sound:            fileData.Notification.Sound,
		Icon:             fileData.Notification.Icon,
		WorkHoursEnabled: fileData.WorkHours.Enabled,
		WorkStart:        strings.TrimSpace(fileData.WorkHours.Start),
		WorkEnd:          strings.TrimSpace(fileData.WorkHours.End),
		IdleEnabled:      fileData.Idle.Enabled,
		IdleResetAfter:   resetAfter,
		NtfyURL:          strings.TrimSpace(fileData.Ntfy.URL),
		NtfyPriority:     fileData.Ntfy.Priority,
		NtfyTags:         fileData.Ntfy.Tags,
		NtfyTimeout:      timeout,
		LogLevel:         fileData.Logging.Level,
		LogFormat:        fileData.Logging.Format,
		LogFile:          strings.TrimSpace(fileData.Logging.File),
	}, nil
}

// toDuration converts a seconds field, rejecting values time.Duration
// cannot hold. Negative values pass through for Validate to report.
func toDuration(key string, value int64) (time.Duration, error) {
	if value > maxSeconds || value < -maxSeconds {
		return 0, fmt.Errorf("%s: %d seconds is out of range", key, value)
	}
	return time.Duration(value) * time.Second, nil
}

func seconds(value time.Duration) int64 {
	return int64(value / time.Second)
}
