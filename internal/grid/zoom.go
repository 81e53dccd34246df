package grid

import (
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
)

// Level is a named zoom setting.
type Level struct {
	Name            string `yaml:"name" json:"name"`
	WidthMinutes    int    `yaml:"width_minutes" json:"width_minutes"`
	IntervalMinutes int    `yaml:"interval_minutes" json:"interval_minutes"`
}

// DefaultLevels runs from the whole day down to a four-hour focus window.
func DefaultLevels() []Level {
	return []Level{
		{Name: "day", WidthMinutes: clock.MinutesPerDay, IntervalMinutes: clock.MinutesPerHour},
		{Name: "half", WidthMinutes: 12 * clock.MinutesPerHour, IntervalMinutes: 30},
		{Name: "focus", WidthMinutes: 4 * clock.MinutesPerHour, IntervalMinutes: 15},
	}
}

// Config returns the grid configuration for this level centered on center.
func (l Level) Config(center clock.Time) Config {
	return Config{
		IntervalMinutes: l.IntervalMinutes,
		Zoomed:          l.WidthMinutes < clock.MinutesPerDay,
		WidthMinutes:    l.WidthMinutes,
		CenterMinutes:   center.Minutes(),
	}
}

// Validate checks that the level yields a valid configuration.
func (l Level) Validate() error {
	if l.Name == "" {
		return invalidZoom("zoom level name is required")
	}
	return l.Config(clock.Time{}).Validate()
}

// FindLevel returns the level called name.
func FindLevel(levels []Level, name string) (Level, error) {
	for _, l := range levels {
		if l.Name == name {
			return l, nil
		}
	}
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.Name
	}
	return Level{}, invalidZoom("unknown zoom level %q", name).
		WithDetails(map[string]any{"level": name, "allowed": names})
}

// Step moves delta levels from current (positive zooms in), clamped to the
// ends of levels. An unknown current starts from the first level.
func Step(levels []Level, current string, delta int) Level {
	if len(levels) == 0 {
		return DefaultLevels()[0]
	}
	idx := 0
	for i, l := range levels {
		if l.Name == current {
			idx = i
			break
		}
	}
	idx = max(0, min(len(levels)-1, idx+delta))
	return levels[idx]
}
