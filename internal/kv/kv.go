// Package kv provides string-keyed byte stores that back the planner's
// persistence slot.
package kv

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
)

// Store drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Drivers lists the accepted driver names.
var Drivers = []string{DriverFile, DriverSQLite, DriverMemory}

// Store is a string-keyed blob store. Get reports ok=false for a missing key.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// StoreCloser is a Store holding resources that must be released.
type StoreCloser interface {
	Store
	io.Closer
}

// Open returns the store for driver rooted at path. Relative paths resolve
// against base.
func Open(driver, base, path string, logger *log.Logger) (StoreCloser, error) {
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	switch driver {
	case DriverFile, "":
		if path == "" {
			path = base
		}
		return NewFile(path)
	case DriverSQLite:
		if path == "" {
			path = filepath.Join(base, DefaultSQLiteFile)
		}
		return NewSQLite(path, logger)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, clierr.Newf(clierr.InvalidInput, "unknown storage driver %q", driver).
			WithDetails(map[string]any{
				"driver":  driver,
				"allowed": Drivers,
			})
	}
}

func wrapErr(op, key string, err error) error {
	return clierr.Wrap(clierr.PersistenceFailure, err, fmt.Sprintf("%s slot %q", op, key)).
		WithDetails(map[string]any{"key": key, "op": op})
}
