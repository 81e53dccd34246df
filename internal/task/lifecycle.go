package task

import (
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
)

// Every transition below re-derives Type before returning, so a task that
// only changes through these functions always satisfies Check.
//
//	todo --(assign date)--> daily --(assign time)--> scheduled
//	todo --(assign date+time)--> scheduled
//	scheduled --(clear time)--> daily --(clear date)--> todo

// AssignTime sets the time of day. A dateless task is stamped with ref first,
// since a time-only task cannot exist.
func AssignTime(t *Task, at clock.Time, ref date.Date) {
	if t.Date == nil {
		t.Date = ref.Ptr()
	}
	t.Time = at.Ptr()
	t.Type = Derive(t.Date, t.Time)
}

// ClearTime drops the time, leaving a daily task (or a todo if undated).
func ClearTime(t *Task) {
	t.Time = nil
	t.Type = Derive(t.Date, t.Time)
}

// AssignDate sets the date and keeps any existing time.
func AssignDate(t *Task, d date.Date) {
	t.Date = d.Ptr()
	t.Type = Derive(t.Date, t.Time)
}

// ClearDate turns the task back into a todo. The time goes with the date.
func ClearDate(t *Task) {
	t.Date = nil
	t.Time = nil
	t.Type = Derive(t.Date, t.Time)
}

// Normalize re-derives Type from Date and Time, dropping a time that has no
// date. It reports whether anything changed.
func Normalize(t *Task) bool {
	changed := false
	if t.Date == nil && t.Time != nil {
		t.Time = nil
		changed = true
	}
	if want := Derive(t.Date, t.Time); t.Type != want {
		t.Type = want
		changed = true
	}
	return changed
}
