// Package grid builds the time slots of a day view and places scheduled tasks
// into them.
package grid

import (
	"fmt"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// Slot is one contiguous span of the day's timeline.
type Slot struct {
	Start           clock.Time `json:"start"`
	DurationMinutes int        `json:"duration_minutes"`
}

// StartMinutes returns the slot start as minutes since midnight.
func (s Slot) StartMinutes() int { return s.Start.Minutes() }

// EndMinutes returns the exclusive end as minutes since midnight (up to 1440).
func (s Slot) EndMinutes() int { return s.Start.Minutes() + s.DurationMinutes }

// Contains reports whether start <= t < end.
func (s Slot) Contains(t clock.Time) bool {
	m := t.Minutes()
	return s.StartMinutes() <= m && m < s.EndMinutes()
}

// String renders the slot as "HH:MM-HH:MM"; the end of the day prints as 24:00.
func (s Slot) String() string {
	end := s.EndMinutes()
	return fmt.Sprintf("%s-%02d:%02d", s.Start, end/clock.MinutesPerHour, end%clock.MinutesPerHour)
}

// Config selects the covered range and slot width.
type Config struct {
	IntervalMinutes int  `json:"interval_minutes"`
	Zoomed          bool `json:"zoomed"`
	WidthMinutes    int  `json:"width_minutes"`
	CenterMinutes   int  `json:"center_minutes"`
}

// FullDay is the unzoomed hourly configuration.
func FullDay() Config {
	return Config{IntervalMinutes: clock.MinutesPerHour}
}

// Validate reports configuration errors as INVALID_ZOOM.
func (c Config) Validate() error {
	if c.IntervalMinutes <= 0 || c.IntervalMinutes > clock.MinutesPerDay {
		return invalidZoom("interval must be between 1 and %d minutes, got %d", clock.MinutesPerDay, c.IntervalMinutes)
	}
	if !c.Zoomed {
		return nil
	}
	if c.WidthMinutes <= 0 {
		return invalidZoom("zoom width must be positive, got %d", c.WidthMinutes)
	}
	if c.CenterMinutes < 0 || c.CenterMinutes > clock.MinutesPerDay {
		return invalidZoom("zoom center must be between 00:00 and 24:00, got %d minutes", c.CenterMinutes)
	}
	return nil
}

func invalidZoom(format string, args ...any) *clierr.Error {
	return clierr.Newf(clierr.InvalidZoom, format, args...)
}

// Window returns the covered range [start, end) in minutes since midnight.
// A zoomed window is centered on CenterMinutes; when that would cross
// midnight on either side it is shifted back inside the day so the requested
// width is kept.
func Window(c Config) (start, end int, err error) {
	if err := c.Validate(); err != nil {
		return 0, 0, err
	}
	if !c.Zoomed || c.WidthMinutes >= clock.MinutesPerDay {
		return 0, clock.MinutesPerDay, nil
	}
	start = c.CenterMinutes - c.WidthMinutes/2
	if start < 0 {
		start = 0
	}
	end = start + c.WidthMinutes
	if end > clock.MinutesPerDay {
		end = clock.MinutesPerDay
		start = end - c.WidthMinutes
	}
	return start, end, nil
}

// BuildIntervals tiles the configured window with IntervalMinutes slots in
// ascending order. The last slot is shortened when the window is not a
// multiple of the interval, so slots never overlap or leave a gap.
func BuildIntervals(c Config) ([]Slot, error) {
	start, end, err := Window(c)
	if err != nil {
		return nil, err
	}
	slots := make([]Slot, 0, (end-start+c.IntervalMinutes-1)/c.IntervalMinutes)
	for m := start; m < end; m += c.IntervalMinutes {
		slots = append(slots, Slot{
			Start:           clock.FromMinutes(m),
			DurationMinutes: min(c.IntervalMinutes, end-m),
		})
	}
	return slots, nil
}

// AssignTask returns the index of the slot a scheduled task belongs to: the
// slot containing its time, or failing that the slot with the latest start not
// after its time. ok is false when the task is not scheduled or its time
// precedes every slot.
func AssignTask(t *task.Task, slots []Slot) (int, bool) {
	if t.Type != task.TypeScheduled || t.Time == nil {
		return -1, false
	}
	at := *t.Time
	fallback := -1
	for i, s := range slots {
		if s.Contains(at) {
			return i, true
		}
		if s.StartMinutes() <= at.Minutes() &&
			(fallback < 0 || s.StartMinutes() > slots[fallback].StartMinutes()) {
			fallback = i
		}
	}
	return fallback, fallback >= 0
}

// Cell is a slot with the tasks placed in it.
type Cell struct {
	Slot  Slot         `json:"slot"`
	Tasks []*task.Task `json:"tasks"`
}

// Layout is the result of placing a day's tasks onto slots.
type Layout struct {
	Cells    []Cell       `json:"cells"`
	Unplaced []*task.Task `json:"unplaced"`
}

// Lay places each task with AssignTask. Tasks inside a cell are ordered by
// time; tasks that cannot be placed are returned in input order.
func Lay(tasks []*task.Task, slots []Slot) Layout {
	l := Layout{Cells: make([]Cell, len(slots))}
	for i, s := range slots {
		l.Cells[i].Slot = s
	}
	for _, t := range tasks {
		i, ok := AssignTask(t, slots)
		if !ok {
			l.Unplaced = append(l.Unplaced, t)
			continue
		}
		l.Cells[i].Tasks = append(l.Cells[i].Tasks, t)
	}
	for i := range l.Cells {
		task.SortByTime(l.Cells[i].Tasks)
	}
	return l
}
