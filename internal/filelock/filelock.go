// Package filelock provides advisory file locking so a CLI command and a
// running TUI never interleave writes to the same planner slot.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	lockFileMode = 0o600
	pollInterval = 10 * time.Millisecond
)

// ErrTimeout is returned when a lock is still held by someone else after
// the caller's timeout.
var ErrTimeout = errors.New("timed out waiting for lock")

// Lock acquires an exclusive advisory lock on the file at path,
// creating it if it does not exist. The returned function releases
// the lock and must be called when the critical section is done.
//
// Only one process can hold the lock at a time; other callers block
// until the lock is available.
func Lock(path string) (unlock func() error, err error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return release(f), nil
}

// LockTimeout is Lock that gives up with ErrTimeout once timeout has passed.
func LockTimeout(path string, timeout time.Duration) (unlock func() error, err error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(timeout)
	for {
		ok, err := tryLockFile(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if ok {
			return release(f), nil
		}
		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, ErrTimeout
		}
		time.Sleep(pollInterval)
	}
}

// With runs fn while holding the lock at path.
func With(path string, fn func() error) error {
	unlock, err := Lock(path)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit
	return fn()
}

// WithTimeout runs fn while holding the lock at path, waiting at most
// timeout for it.
func WithTimeout(path string, timeout time.Duration, fn func() error) error {
	unlock, err := LockTimeout(path, timeout)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit
	return fn()
}

func open(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path from trusted source
}

func release(f *os.File) func() error {
	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}
}
