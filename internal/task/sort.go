package task

import "sort"

// SortByTime orders tasks ascending by time of day. Untimed tasks sort after
// all timed ones; ties keep insertion order.
func SortByTime(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return compareTime(tasks[i], tasks[j])
	})
}

// SortByDate orders tasks by date then time. Undated tasks sort last.
func SortByDate(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Date == nil || b.Date == nil {
			return a.Date != nil && b.Date == nil // nil sorts last
		}
		if !a.Date.Equal(*b.Date) {
			return a.Date.Before(*b.Date)
		}
		return compareTime(a, b)
	})
}

func compareTime(a, b *Task) bool {
	if a.Time == nil && b.Time == nil {
		return false
	}
	if a.Time == nil {
		return false // nil sorts last
	}
	if b.Time == nil {
		return true
	}
	return a.Time.Before(*b.Time)
}
