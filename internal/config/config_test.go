package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/store"
)

func TestNewDefault_IsValid(t *testing.T) {
	cfg := NewDefault()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "09:00", cfg.ScheduleTime().String())
	assert.Equal(t, "12:00", cfg.Center().String())
	assert.Equal(t, store.MoveKeep, cfg.MovePolicy())
	assert.Equal(t, calendar.Day, cfg.View())
	assert.Equal(t, time.Monday, cfg.WeekStart())

	l, err := cfg.ZoomLevel("")
	require.NoError(t, err)
	assert.Equal(t, "day", l.Name)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"version", func(c *Config) { c.Version = 99 }},
		{"driver", func(c *Config) { c.Storage.Driver = "redis" }},
		{"key", func(c *Config) { c.Storage.Key = "" }},
		{"no zoom levels", func(c *Config) { c.Grid.ZoomLevels = nil }},
		{"bad zoom level", func(c *Config) { c.Grid.ZoomLevels[0].IntervalMinutes = 0 }},
		{"duplicate zoom", func(c *Config) { c.Grid.ZoomLevels[1].Name = "day" }},
		{"default zoom", func(c *Config) { c.Grid.DefaultZoom = "micro" }},
		{"center", func(c *Config) { c.Grid.Center = "25:00" }},
		{"schedule time", func(c *Config) { c.Defaults.ScheduleTime = "9am" }},
		{"move policy", func(c *Config) { c.Defaults.MovePolicy = "teleport" }},
		{"view", func(c *Config) { c.Defaults.View = "year" }},
		{"week start", func(c *Config) { c.Calendar.WeekStart = "funday" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)

	cfg, err := Init(dir)
	require.NoError(t, err)
	assert.FileExists(t, cfg.ConfigPath())

	cfg.Defaults.MovePolicy = "schedule"
	require.NoError(t, cfg.Save())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, store.MoveSchedule, loaded.MovePolicy())
	assert.Equal(t, cfg.Grid.ZoomLevels, loaded.Grid.ZoomLevels)
	assert.Equal(t, dir, loaded.Dir())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_MigratesV1(t *testing.T) {
	dir := t.TempDir()
	v1 := "version: 1\nstorage:\n  driver: sqlite\n  key: tasks\ndefaults:\n  schedule_time: \"08:30\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "tasks", cfg.Storage.Key)
	assert.Equal(t, "08:30", cfg.ScheduleTime().String())
	assert.Equal(t, DefaultZoom, cfg.Grid.DefaultZoom)
	assert.Len(t, cfg.Grid.ZoomLevels, 3)
	assert.Equal(t, DefaultWeekStart, cfg.Calendar.WeekStart)

	// The migrated config is written back.
	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, again.Version)
}

func TestLoad_RejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 42\n"), 0o600))

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	_, err := Init(filepath.Join(root, DefaultDir))
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, err := FindDir(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultDir), found)

	found, err = FindDir(filepath.Join(root, DefaultDir))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultDir), found)
}

func TestFindDir_NotFound(t *testing.T) {
	_, err := FindDir(t.TempDir())
	if err == nil {
		t.Skip("a planner exists above the temp dir")
	}
	assert.Equal(t, clierr.StoreNotFound, clierr.CodeOf(err))
}
