package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/grid"
	"github.com/twiced-technology-gmbh/dayplan/internal/kv"
	"github.com/twiced-technology-gmbh/dayplan/internal/logging"
	"github.com/twiced-technology-gmbh/dayplan/internal/store"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no planner found (run 'dayplan init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the planner configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Storage  StorageConfig  `yaml:"storage"`
	Grid     GridConfig     `yaml:"grid"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Calendar CalendarConfig `yaml:"calendar"`
	Log      LogConfig      `yaml:"log"`

	// dir is the absolute path to the planner directory (not serialized).
	dir string `yaml:"-"`
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path,omitempty"` // relative to the planner directory
	Key    string `yaml:"key"`
}

// GridConfig holds the day grid zoom settings.
type GridConfig struct {
	ZoomLevels  []grid.Level `yaml:"zoom_levels"`
	DefaultZoom string       `yaml:"default_zoom"`
	Center      string       `yaml:"center"`
}

// DefaultsConfig holds defaults applied by commands.
type DefaultsConfig struct {
	ScheduleTime string `yaml:"schedule_time"`
	MovePolicy   string `yaml:"move_policy"`
	View         string `yaml:"view"`
}

// CalendarConfig holds calendar view settings.
type CalendarConfig struct {
	WeekStart string `yaml:"week_start"`
}

// LogConfig holds stderr logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Dir returns the absolute path to the planner directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the planner directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version: CurrentVersion,
		Storage: StorageConfig{Driver: DefaultDriver, Key: DefaultKey},
		Grid: GridConfig{
			ZoomLevels:  DefaultZoomLevels(),
			DefaultZoom: DefaultZoom,
			Center:      DefaultCenter,
		},
		Defaults: DefaultsConfig{
			ScheduleTime: DefaultScheduleTime,
			MovePolicy:   DefaultMovePolicy,
			View:         DefaultView,
		},
		Calendar: CalendarConfig{WeekStart: DefaultWeekStart},
		Log:      LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateGrid(); err != nil {
		return err
	}
	if _, err := clock.Parse(c.Defaults.ScheduleTime); err != nil {
		return fmt.Errorf("%w: defaults.schedule_time: %w", ErrInvalid, err)
	}
	if _, err := store.ParseMovePolicy(c.Defaults.MovePolicy); err != nil {
		return fmt.Errorf("%w: defaults.move_policy: %w", ErrInvalid, err)
	}
	if _, err := calendar.ParseGranularity(c.Defaults.View); err != nil {
		return fmt.Errorf("%w: defaults.view: %w", ErrInvalid, err)
	}
	if _, err := calendar.ParseWeekday(c.Calendar.WeekStart); err != nil {
		return fmt.Errorf("%w: calendar.week_start: %w", ErrInvalid, err)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: invalid log.level %q", ErrInvalid, c.Log.Level)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("%w: invalid log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if !contains(kv.Drivers, c.Storage.Driver) {
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalid, c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("%w: storage.key is required", ErrInvalid)
	}
	return nil
}

func (c *Config) validateGrid() error {
	if len(c.Grid.ZoomLevels) == 0 {
		return fmt.Errorf("%w: at least 1 zoom level is required", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Grid.ZoomLevels))
	for i, l := range c.Grid.ZoomLevels {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("%w: grid.zoom_levels[%d]: %w", ErrInvalid, i, err)
		}
		if seen[l.Name] {
			return fmt.Errorf("%w: duplicate zoom level %q", ErrInvalid, l.Name)
		}
		seen[l.Name] = true
	}
	if !seen[c.Grid.DefaultZoom] {
		return fmt.Errorf("%w: grid.default_zoom %q not in zoom_levels", ErrInvalid, c.Grid.DefaultZoom)
	}
	if _, err := clock.Parse(c.Grid.Center); err != nil {
		return fmt.Errorf("%w: grid.center: %w", ErrInvalid, err)
	}
	return nil
}

// ScheduleTime returns defaults.schedule_time, or 09:00 if it does not parse.
func (c *Config) ScheduleTime() clock.Time {
	if t, err := clock.Parse(c.Defaults.ScheduleTime); err == nil {
		return t
	}
	return clock.MustParse(DefaultScheduleTime)
}

// Center returns grid.center, or noon if it does not parse.
func (c *Config) Center() clock.Time {
	if t, err := clock.Parse(c.Grid.Center); err == nil {
		return t
	}
	return clock.MustParse(DefaultCenter)
}

// MovePolicy returns defaults.move_policy, or keep if it does not parse.
func (c *Config) MovePolicy() store.MovePolicy {
	if p, err := store.ParseMovePolicy(c.Defaults.MovePolicy); err == nil {
		return p
	}
	return store.MoveKeep
}

// View returns defaults.view, or the day view if it does not parse.
func (c *Config) View() calendar.Granularity {
	if g, err := calendar.ParseGranularity(c.Defaults.View); err == nil {
		return g
	}
	return calendar.Day
}

// WeekStart returns calendar.week_start, or Monday if it does not parse.
func (c *Config) WeekStart() time.Weekday {
	if d, err := calendar.ParseWeekday(c.Calendar.WeekStart); err == nil {
		return d
	}
	return time.Monday
}

// ZoomLevel returns the named zoom level, or the default zoom for "".
func (c *Config) ZoomLevel(name string) (grid.Level, error) {
	if name == "" {
		name = c.Grid.DefaultZoom
	}
	return grid.FindLevel(c.Grid.ZoomLevels, name)
}

// Init creates a new planner in dir with default settings.
func Init(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating planner directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads, migrates and validates the config in dir.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	// Persist migrated config so future loads skip re-migration.
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a planner directory
// containing config.yml. Returns the absolute path to the planner directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the planner directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.StoreNotFound,
				"no planner found (run 'dayplan init' to create one)")
		}
		dir = parent
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
