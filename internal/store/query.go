package store

import (
	"strings"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// All returns copies of every task in insertion order.
func (s *Store) All() []*task.Task {
	out := make([]*task.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (*task.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.tasks[i].Clone(), true
}

// ListByType returns the tasks of type typ in insertion order.
func (s *Store) ListByType(typ task.Type) []*task.Task {
	var out []*task.Task
	for _, t := range s.tasks {
		if t.Type == typ {
			out = append(out, t.Clone())
		}
	}
	return out
}

// ListForDate returns the tasks on d whose type is one of types, in insertion
// order. With no types every dated type matches.
func (s *Store) ListForDate(d date.Date, types ...task.Type) []*task.Task {
	if len(types) == 0 {
		types = task.DatedTypes
	}
	var out []*task.Task
	for _, t := range s.tasks {
		if t.HasDate(d) && containsType(types, t.Type) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// LastTodo returns the most recently added task still on the todo list.
func (s *Store) LastTodo() (*task.Task, bool) {
	for i := len(s.tasks) - 1; i >= 0; i-- {
		if s.tasks[i].Type == task.TypeTodo {
			return s.tasks[i].Clone(), true
		}
	}
	return nil, false
}

// Resolve maps a full id or a unique id prefix to a task id.
func (s *Store) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if s.indexOf(ref) >= 0 {
		return ref, nil
	}
	if len(ref) < minPrefixLen {
		return "", task.NotFound(ref)
	}
	var matches []string
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", task.NotFound(ref)
	case 1:
		return matches[0], nil
	default:
		return "", task.Ambiguous(ref, matches)
	}
}

// MovePolicy selects how a move treats the task's time.
type MovePolicy string

// Move policies.
const (
	MoveKeep     MovePolicy = "keep"      // keep any existing time
	MoveSchedule MovePolicy = "schedule"  // force scheduled
	MoveDropTime MovePolicy = "drop-time" // always land as daily
)

// MovePolicies lists the accepted policies.
var MovePolicies = []MovePolicy{MoveKeep, MoveSchedule, MoveDropTime}

// ParseMovePolicy parses a policy name.
func ParseMovePolicy(s string) (MovePolicy, error) {
	for _, p := range MovePolicies {
		if string(p) == s {
			return p, nil
		}
	}
	return "", clierr.Newf(clierr.InvalidInput, "invalid move policy %q", s).
		WithDetails(map[string]any{
			"policy":  s,
			"allowed": MovePolicies,
		})
}

// Move dispatches to the move operation for policy. at is only used by
// MoveSchedule.
func (s *Store) Move(id string, d date.Date, policy MovePolicy, at *clock.Time) (*task.Task, error) {
	switch policy {
	case MoveSchedule:
		return s.MoveToDateScheduled(id, d, at)
	case MoveDropTime:
		return s.MoveToDateUnscheduled(id, d)
	case MoveKeep, "":
		return s.MoveToDate(id, d)
	default:
		return nil, clierr.Newf(clierr.InvalidInput, "invalid move policy %q", policy)
	}
}

func containsType(types []task.Type, typ task.Type) bool {
	for _, t := range types {
		if t == typ {
			return true
		}
	}
	return false
}
