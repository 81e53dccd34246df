// Package task defines the planner task record and the rules that derive its
// type from its date and time.
package task

import (
	"strings"

	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
)

// Type is the derived kind of a task.
type Type string

// Task types.
const (
	TypeTodo      Type = "todo"
	TypeDaily     Type = "daily"
	TypeScheduled Type = "scheduled"
)

// Types lists every task type in display order.
var Types = []Type{TypeTodo, TypeDaily, TypeScheduled}

// DatedTypes are the types that carry a date.
var DatedTypes = []Type{TypeDaily, TypeScheduled}

// ParseType parses a type name.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeTodo:
		return TypeTodo, nil
	case TypeDaily:
		return TypeDaily, nil
	case TypeScheduled:
		return TypeScheduled, nil
	}
	return "", clierr.Newf(clierr.InvalidInput, "invalid task type %q", s).
		WithDetails(map[string]any{
			"type":    s,
			"allowed": Types,
		})
}

// Task is a single planner entry. Type is derived from Date and Time and must
// never be assigned directly; use the lifecycle functions.
type Task struct {
	ID   string      `yaml:"id" json:"id"`
	Text string      `yaml:"text" json:"text"`
	Date *date.Date  `yaml:"date" json:"date"`
	Time *clock.Time `yaml:"time" json:"time"`
	Type Type        `yaml:"type" json:"type"`
}

// NewID returns a fresh task identifier.
func NewID() string {
	return uuid.NewString()
}

// Derive returns the type implied by the presence of a date and a time.
// A time without a date has no valid type and derives to todo; Check rejects it.
func Derive(d *date.Date, t *clock.Time) Type {
	switch {
	case d == nil:
		return TypeTodo
	case t == nil:
		return TypeDaily
	default:
		return TypeScheduled
	}
}

// Check verifies the type invariant.
func (t *Task) Check() error {
	if t.Date == nil && t.Time != nil {
		return clierr.Newf(clierr.InvalidInput, "task %s has a time but no date", t.ID).
			WithDetails(map[string]any{"id": t.ID})
	}
	if want := Derive(t.Date, t.Time); t.Type != want {
		return clierr.Newf(clierr.InvalidInput, "task %s has type %q, expected %q", t.ID, t.Type, want).
			WithDetails(map[string]any{
				"id":       t.ID,
				"type":     t.Type,
				"expected": want,
			})
	}
	return nil
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	c := *t
	if t.Date != nil {
		c.Date = t.Date.Ptr()
	}
	if t.Time != nil {
		c.Time = t.Time.Ptr()
	}
	return &c
}

// HasDate reports whether the task falls on d.
func (t *Task) HasDate(d date.Date) bool {
	return t.Date != nil && t.Date.Equal(d)
}

// ShortID returns the first eight characters of the id.
func (t *Task) ShortID() string {
	const n = 8
	if len(t.ID) <= n {
		return t.ID
	}
	return t.ID[:n]
}
