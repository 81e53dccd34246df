package board

import (
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// Sort orders accepted by List.
const (
	SortInsertion = "insertion"
	SortDate      = "date"
)

// ListOptions controls how tasks are listed.
type ListOptions struct {
	Filter FilterOptions
	SortBy string
	Limit  int
}

// List filters and sorts tasks. Insertion order is kept unless SortBy is date.
func List(tasks []*task.Task, opts ListOptions) ([]*task.Task, error) {
	out := Filter(tasks, opts.Filter)

	switch opts.SortBy {
	case "", SortInsertion:
	case SortDate:
		task.SortByDate(out)
	default:
		return nil, clierr.Newf(clierr.InvalidInput, "invalid sort field %q", opts.SortBy).
			WithDetails(map[string]any{
				"sort":    opts.SortBy,
				"allowed": []string{SortInsertion, SortDate},
			})
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// TypeCount holds the number of tasks of one type.
type TypeCount struct {
	Type  task.Type `json:"type"`
	Count int       `json:"count"`
}

// DayCount summarizes one date.
type DayCount struct {
	Date      date.Date `json:"date"`
	Daily     int       `json:"daily"`
	Scheduled int       `json:"scheduled"`
}

// Overview is the aggregate planner overview.
type Overview struct {
	TotalTasks int         `json:"total_tasks"`
	Types      []TypeCount `json:"types"`
	Today      DayCount    `json:"today"`
	Overdue    int         `json:"overdue"`
	Next       *task.Task  `json:"next,omitempty"`
}

// Summary computes counts per type, today's load, the number of dated tasks
// before today and the next scheduled task at or after now.
func Summary(tasks []*task.Task, now time.Time) Overview {
	today := date.Of(now)
	nowAt := clock.FromTime(now)
	counts := make(map[task.Type]int, len(task.Types))
	o := Overview{TotalTasks: len(tasks), Today: DayCount{Date: today}}

	for _, t := range tasks {
		counts[t.Type]++
		if t.Date == nil {
			continue
		}
		switch {
		case t.Date.Equal(today):
			if t.Type == task.TypeScheduled {
				o.Today.Scheduled++
			} else {
				o.Today.Daily++
			}
		case t.Date.Before(today):
			o.Overdue++
		}
		if t.Type == task.TypeScheduled && isUpcoming(t, today, nowAt) && earlier(t, o.Next) {
			o.Next = t
		}
	}

	for _, typ := range task.Types {
		o.Types = append(o.Types, TypeCount{Type: typ, Count: counts[typ]})
	}
	return o
}

func isUpcoming(t *task.Task, today date.Date, nowAt clock.Time) bool {
	if t.Date.After(today) {
		return true
	}
	return t.Date.Equal(today) && !t.Time.Before(nowAt)
}

func earlier(t, than *task.Task) bool {
	if than == nil {
		return true
	}
	if !t.Date.Equal(*than.Date) {
		return t.Date.Before(*than.Date)
	}
	return t.Time.Before(*than.Time)
}

// ParseIDs splits a comma-separated list of task references, dropping blanks
// and duplicates.
func ParseIDs(arg string) ([]string, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[string]bool, len(parts))
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		ids = append(ids, p)
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidInput, "no task IDs provided")
	}
	return ids, nil
}
