package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"KeyringService", config.KeyringService},
		{"DefaultCalendarName", config.DefaultCalendarName},
		{"DefaultTimeZone", config.DefaultTimeZone},
		{"DefaultColorID", config.DefaultColorID},
		{"FallbackSummary", config.FallbackSummary},
		{"ICalProdid", config.ICalProdid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 2500, config.EventPageSize, "Page size is fixed by the Calendar API maximum")
	assert.Equal(t, 3, config.ProgressOverheadSteps)
	assert.Equal(t, 1900, config.MinBirthYear)
	assert.Greater(t, int64(config.DefaultReminderMinutes), int64(0))
	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
}

// TestSummaryTemplate_Shape ensures the identity-bearing template keeps both
// the name and the birth-year placeholders; duplicate detection depends on it.
func TestSummaryTemplate_Shape(t *testing.T) {
	assert.Equal(t, 2, strings.Count(config.FallbackSummary, "%s"))
}

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	s, err := config.LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)
}

func TestLoadSettings_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	content := "calendar_name: Rodzina\nlanguage: pl\n"
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))

	s, err := config.LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "Rodzina", s.CalendarName)
	assert.Equal(t, "pl", s.Language)
	assert.Equal(t, config.DefaultTimeZone, s.TimeZone, "Unset fields fall back to defaults")
	assert.Equal(t, int64(config.DefaultReminderMinutes), s.ReminderMinutes)
}

func TestLoadSettings_MalformedFileFailsWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), config.FilePermUserRW))

	s, err := config.LoadSettings(path)
	assert.Error(t, err)
	assert.Equal(t, config.DefaultSettings(), s, "Defaults are still usable after a parse error")
}
