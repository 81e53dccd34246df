package config

import "fmt"

// migrate upgrades a config from its current version to CurrentVersion.
// Each migration function transforms the config one version forward.
// Returns an error if the config version is newer than what this binary supports.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade dayplan)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}

	return nil
}

// migrations maps each version to the function that migrates it to the next version.
// The migration function must increment cfg.Version after a successful migration.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
	2: migrateV2ToV3,
}

// migrateV1ToV2 adds the grid section. Version 1 only knew the full-day grid.
func migrateV1ToV2(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if len(cfg.Grid.ZoomLevels) == 0 {
		cfg.Grid.ZoomLevels = DefaultZoomLevels()
	}
	if cfg.Grid.DefaultZoom == "" {
		cfg.Grid.DefaultZoom = DefaultZoom
	}
	if cfg.Grid.Center == "" {
		cfg.Grid.Center = DefaultCenter
	}
	cfg.Version = 2
	return nil
}

// migrateV2ToV3 adds defaults.move_policy, defaults.view, calendar.week_start
// and the log section, and fills a storage driver if one was never written.
func migrateV2ToV3(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DefaultDriver
	}
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = DefaultKey
	}
	if cfg.Defaults.ScheduleTime == "" {
		cfg.Defaults.ScheduleTime = DefaultScheduleTime
	}
	if cfg.Defaults.MovePolicy == "" {
		cfg.Defaults.MovePolicy = DefaultMovePolicy
	}
	if cfg.Defaults.View == "" {
		cfg.Defaults.View = DefaultView
	}
	if cfg.Calendar.WeekStart == "" {
		cfg.Calendar.WeekStart = DefaultWeekStart
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	cfg.Version = 3
	return nil
}
