// Package board provides planner-wide operations on task collections:
// filtering, summaries and the activity log.
package board

import (
	"strings"

	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Types  []task.Type
	Date   *date.Date // exact date
	From   *date.Date // inclusive lower bound; excludes undated tasks
	To     *date.Date // inclusive upper bound; excludes undated tasks
	Search string     // case-insensitive substring match on text
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []*task.Task, opts FilterOptions) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *task.Task, opts FilterOptions) bool {
	if len(opts.Types) > 0 && !containsType(opts.Types, t.Type) {
		return false
	}
	if !matchesDates(t, opts) {
		return false
	}
	if opts.Search != "" && !strings.Contains(strings.ToLower(t.Text), strings.ToLower(opts.Search)) {
		return false
	}
	return true
}

func matchesDates(t *task.Task, opts FilterOptions) bool {
	if opts.Date == nil && opts.From == nil && opts.To == nil {
		return true
	}
	if t.Date == nil {
		return false
	}
	if opts.Date != nil && !t.Date.Equal(*opts.Date) {
		return false
	}
	if opts.From != nil && t.Date.Before(*opts.From) {
		return false
	}
	if opts.To != nil && t.Date.After(*opts.To) {
		return false
	}
	return true
}

func containsType(types []task.Type, typ task.Type) bool {
	for _, t := range types {
		if t == typ {
			return true
		}
	}
	return false
}
