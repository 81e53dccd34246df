// Package store owns the planner's task list. Every mutation goes through a
// Store method, which re-derives the task type, persists the full list and
// reports the change.
package store

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// minPrefixLen is the shortest id prefix Resolve accepts.
const minPrefixLen = 4

// Persister loads and saves the whole task list.
type Persister interface {
	Load() ([]*task.Task, error)
	Save(tasks []*task.Task) error
}

// Mutation describes a successful change to the list.
type Mutation struct {
	Action string
	TaskID string
	Detail string
}

// Mutation actions.
const (
	ActionAdd       = "add"
	ActionSetTime   = "set-time"
	ActionClearTime = "clear-time"
	ActionMove      = "move"
	ActionClearDate = "clear-date"
	ActionDelete    = "delete"
	ActionEditText  = "edit"
)

const defaultTimeOfDay = "09:00"

// Store is the single source of truth for tasks. It is not safe for
// concurrent use; it belongs to whichever goroutine handles user input.
type Store struct {
	p           Persister
	tasks       []*task.Task
	now         func() time.Time
	defaultTime clock.Time
	logger      *log.Logger
	observer    func(Mutation)
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithDefaultTime sets the time used when a move forces a task to be scheduled.
func WithDefaultTime(t clock.Time) Option {
	return func(s *Store) { s.defaultTime = t }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers fn to be called after every successful mutation.
func WithObserver(fn func(Mutation)) Option {
	return func(s *Store) { s.observer = fn }
}

// New loads the task list from p.
func New(p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		p:           p,
		now:         time.Now,
		defaultTime: clock.MustParse(defaultTimeOfDay),
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory list with the persisted one.
func (s *Store) Reload() error {
	tasks, err := s.p.Load()
	if err != nil {
		return persistenceErr(err)
	}
	for _, t := range tasks {
		task.Normalize(t)
	}
	s.tasks = tasks
	s.logger.Debug("tasks loaded", "count", len(tasks))
	return nil
}

// Today returns the store clock's current date.
func (s *Store) Today() date.Date {
	return date.Of(s.now())
}

// DefaultTime returns the time used by MoveToDateScheduled when none is known.
func (s *Store) DefaultTime() clock.Time {
	return s.defaultTime
}

// AddTodo appends an undated task.
func (s *Store) AddTodo(text string) (*task.Task, error) {
	return s.add(text, nil)
}

// AddDaily appends a task on d without a time.
func (s *Store) AddDaily(text string, d date.Date) (*task.Task, error) {
	return s.add(text, &d)
}

func (s *Store) add(text string, d *date.Date) (*task.Task, error) {
	trimmed, err := task.ValidateText(text)
	if err != nil {
		return nil, err
	}
	t := &task.Task{ID: s.freshID(), Text: trimmed, Date: d}
	task.Normalize(t)

	s.tasks = append(s.tasks, t)
	return t.Clone(), s.commit(Mutation{Action: ActionAdd, TaskID: t.ID, Detail: t.Text})
}

// freshID returns an id not used by any current task.
func (s *Store) freshID() string {
	for {
		id := task.NewID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

// SetTime assigns or, with a nil time, clears the task's time. Assigning a
// time to an undated task also dates it ref.
func (s *Store) SetTime(id string, at *clock.Time, ref date.Date) (*task.Task, error) {
	if at == nil {
		return s.mutate(id, ActionClearTime, func(t *task.Task) (string, error) {
			task.ClearTime(t)
			return "", nil
		})
	}
	v := *at
	return s.mutate(id, ActionSetTime, func(t *task.Task) (string, error) {
		task.AssignTime(t, v, ref)
		return t.Date.String() + " " + v.String(), nil
	})
}

// SetTimeString parses raw as HH:MM and calls SetTime. An empty or blank raw
// clears the time. A malformed raw leaves the task unchanged.
func (s *Store) SetTimeString(id, raw string, ref date.Date) (*task.Task, error) {
	if s.indexOf(id) < 0 {
		return nil, task.NotFound(id)
	}
	if strings.TrimSpace(raw) == "" {
		return s.SetTime(id, nil, ref)
	}
	at, err := clock.Parse(raw)
	if err != nil {
		return nil, err
	}
	return s.SetTime(id, &at, ref)
}

// MoveToDate sets the date and keeps any existing time, so the type follows
// from whether the task was already timed.
func (s *Store) MoveToDate(id string, d date.Date) (*task.Task, error) {
	return s.mutate(id, ActionMove, func(t *task.Task) (string, error) {
		task.AssignDate(t, d)
		return d.String(), nil
	})
}

// MoveToDateScheduled sets the date and forces the task to be scheduled. The
// time is at if given, else the task's existing time, else the default time.
func (s *Store) MoveToDateScheduled(id string, d date.Date, at *clock.Time) (*task.Task, error) {
	return s.mutate(id, ActionMove, func(t *task.Task) (string, error) {
		tm := s.defaultTime
		switch {
		case at != nil:
			tm = *at
		case t.Time != nil:
			tm = *t.Time
		}
		task.AssignDate(t, d)
		task.AssignTime(t, tm, d)
		return d.String() + " " + tm.String(), nil
	})
}

// MoveToDateUnscheduled sets the date and drops any time.
func (s *Store) MoveToDateUnscheduled(id string, d date.Date) (*task.Task, error) {
	return s.mutate(id, ActionMove, func(t *task.Task) (string, error) {
		task.AssignDate(t, d)
		task.ClearTime(t)
		return d.String(), nil
	})
}

// ClearDate returns the task to the todo list.
func (s *Store) ClearDate(id string) (*task.Task, error) {
	return s.mutate(id, ActionClearDate, func(t *task.Task) (string, error) {
		task.ClearDate(t)
		return "", nil
	})
}

// EditText replaces the task's label.
func (s *Store) EditText(id, text string) (*task.Task, error) {
	trimmed, err := task.ValidateText(text)
	if err != nil {
		return nil, err
	}
	return s.mutate(id, ActionEditText, func(t *task.Task) (string, error) {
		t.Text = trimmed
		return trimmed, nil
	})
}

// Delete removes the task. An unknown id is a no-op that reports false and
// does not touch the persisted list.
func (s *Store) Delete(id string) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	removed := s.tasks[i]
	next := make([]*task.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	s.tasks = next
	return true, s.commit(Mutation{Action: ActionDelete, TaskID: id, Detail: removed.Text})
}

// mutate applies fn to a copy of the task and swaps the copy in only when fn
// succeeds and the result satisfies the type invariant.
func (s *Store) mutate(id, action string, fn func(*task.Task) (string, error)) (*task.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, task.NotFound(id)
	}
	next := s.tasks[i].Clone()
	detail, err := fn(next)
	if err != nil {
		return nil, err
	}
	task.Normalize(next)
	if err := next.Check(); err != nil {
		return nil, clierr.Wrap(clierr.InternalError, err, "task invariant violated")
	}
	s.tasks[i] = next
	return next.Clone(), s.commit(Mutation{Action: action, TaskID: id, Detail: detail})
}

// commit persists the list and then notifies the observer. A failed save is
// reported, and noted in the mutation detail, but the in-memory change stands.
func (s *Store) commit(m Mutation) error {
	s.logger.Debug("task mutated", "action", m.Action, "id", m.TaskID, "detail", m.Detail)
	saveErr := s.p.Save(s.tasks)
	if saveErr != nil {
		s.logger.Warn("saving tasks failed", "action", m.Action, "id", m.TaskID, "err", saveErr)
		m.Detail = strings.TrimSpace(m.Detail + " (not saved: " + saveErr.Error() + ")")
	}
	if s.observer != nil {
		s.observer(m)
	}
	if saveErr != nil {
		return persistenceErr(saveErr)
	}
	return nil
}

func persistenceErr(err error) error {
	if clierr.CodeOf(err) == clierr.PersistenceFailure {
		return err
	}
	return clierr.Wrap(clierr.PersistenceFailure, err, "changes may not survive a reload")
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
