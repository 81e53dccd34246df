package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_FiltersByName(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New([]string{dir}, []string{"tasks.json"}, func() { calls.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("x"), 0o600))
	time.Sleep(3 * debounceDelay)
	assert.Zero(t, calls.Load())

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte{byte('a' + i)}, 0o600))
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)
}

func TestRelevant(t *testing.T) {
	w := &Watcher{names: map[string]bool{"config.yml": true}}

	assert.True(t, w.relevant(fsnotify.Event{Name: "/a/config.yml", Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/a/config.yml", Op: fsnotify.Chmod}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/a/other", Op: fsnotify.Create}))

	all := &Watcher{}
	assert.True(t, all.relevant(fsnotify.Event{Name: "/a/other", Op: fsnotify.Remove}))
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, nil, func() {})
	assert.Error(t, err)
}
