// Package config handles planner configuration.
package config

import (
	"github.com/twiced-technology-gmbh/dayplan/internal/grid"
	"github.com/twiced-technology-gmbh/dayplan/internal/kv"
	"github.com/twiced-technology-gmbh/dayplan/internal/persist"
)

const (
	// DefaultDir is the default planner directory name.
	DefaultDir = ".dayplan"
	// HomeDir is the per-user fallback directory relative to the home directory.
	HomeDir = ".config/dayplan"

	// DefaultDriver is the default storage backend.
	DefaultDriver = kv.DriverFile
	// DefaultKey is the default storage slot.
	DefaultKey = persist.DefaultKey

	// DefaultZoom is the zoom level the day grid opens at.
	DefaultZoom = "day"
	// DefaultCenter is the default center of a zoomed grid.
	DefaultCenter = "12:00"
	// DefaultScheduleTime is used when a move forces a task to be scheduled.
	DefaultScheduleTime = "09:00"
	// DefaultMovePolicy is the default treatment of an existing time on move.
	DefaultMovePolicy = "keep"
	// DefaultView is the calendar view opened first.
	DefaultView = "day"
	// DefaultWeekStart is the first day of a week view.
	DefaultWeekStart = "monday"

	// DefaultLogLevel is the default stderr log level.
	DefaultLogLevel = "warn"
	// DefaultLogFormat is the default stderr log format.
	DefaultLogFormat = "text"

	// ConfigFileName is the name of the config file within the planner directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 3
)

// DefaultZoomLevels returns the zoom levels a new config starts with.
func DefaultZoomLevels() []grid.Level {
	return grid.DefaultLevels()
}
