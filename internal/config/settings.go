package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings is the optional user-editable configuration loaded from
// settings.yaml in the application data directory. Every field falls back to
// the compiled-in default when absent.
type Settings struct {
	// CalendarName is the display name of the target Google calendar.
	// Matched by exact equality; created with this name when absent.
	CalendarName string `yaml:"calendar_name"`

	// TimeZone is the IANA time zone assigned to a newly created calendar.
	TimeZone string `yaml:"time_zone"`

	// ReminderMinutes is the default popup reminder applied to the target
	// calendar on every run.
	ReminderMinutes int64 `yaml:"reminder_minutes"`

	// ColorID is the Google Calendar color enum used for created events.
	ColorID string `yaml:"color_id"`

	// Language selects the UI locale ("en", "pl").
	Language string `yaml:"language"`

	// ServerPort is the localhost port used by the `serve` command.
	ServerPort string `yaml:"server_port"`
}

// DefaultSettings returns the compiled-in configuration.
func DefaultSettings() Settings {
	return Settings{
		CalendarName:    DefaultCalendarName,
		TimeZone:        DefaultTimeZone,
		ReminderMinutes: DefaultReminderMinutes,
		ColorID:         DefaultColorID,
		Language:        DefaultLanguage,
		ServerPort:      DefaultServerPort,
	}
}

// LoadSettings reads the settings file at path. A missing file is not an
// error: defaults are returned so first runs need no setup.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("%s: %w", ErrSettingsLoad, err)
	}

	// Re-apply defaults for fields the file left empty.
	d := DefaultSettings()
	if s.CalendarName == "" {
		s.CalendarName = d.CalendarName
	}
	if s.TimeZone == "" {
		s.TimeZone = d.TimeZone
	}
	if s.ReminderMinutes <= 0 {
		s.ReminderMinutes = d.ReminderMinutes
	}
	if s.ColorID == "" {
		s.ColorID = d.ColorID
	}
	if s.Language == "" {
		s.Language = d.Language
	}
	if s.ServerPort == "" {
		s.ServerPort = d.ServerPort
	}
	return s, nil
}

// DataDir returns the per-user application data directory, creating it with
// restricted permissions when missing.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrDataDir, err)
	}
	dir := filepath.Join(base, AppID)
	if err := os.MkdirAll(dir, DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", ErrCreateDir, err)
	}
	return dir, nil
}
