// Package persist implements the load/save contract for the task list: the
// whole list is serialized into one named slot of a string-keyed store.
package persist

import (
	"github.com/twiced-technology-gmbh/dayplan/internal/kv"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// DefaultKey is the slot the task list lives in.
const DefaultKey = "timeManagementTasks"

// Repo reads and writes the task list in a single slot.
type Repo struct {
	store  kv.Store
	key    string
	onWarn func(Warning)
}

// New returns a Repo over store. An empty key selects DefaultKey.
func New(store kv.Store, key string) *Repo {
	if key == "" {
		key = DefaultKey
	}
	return &Repo{store: store, key: key}
}

// OnWarning registers fn to receive the warnings of every Load.
func (r *Repo) OnWarning(fn func(Warning)) *Repo {
	r.onWarn = fn
	return r
}

// Key returns the slot name.
func (r *Repo) Key() string { return r.key }

// Load returns the stored tasks in order. A missing or unparsable slot is an
// empty list; only a failing store is an error.
func (r *Repo) Load() ([]*task.Task, error) {
	tasks, warnings, err := r.LoadLenient()
	if r.onWarn != nil {
		for _, w := range warnings {
			r.onWarn(w)
		}
	}
	return tasks, err
}

// LoadLenient is Load that also reports the records it repaired or skipped.
func (r *Repo) LoadLenient() ([]*task.Task, []Warning, error) {
	data, ok, err := r.store.Get(r.key)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, nil
	}
	tasks, warnings := Decode(data)
	return tasks, warnings, nil
}

// Save replaces the stored list with tasks.
func (r *Repo) Save(tasks []*task.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	return r.store.Set(r.key, data)
}
