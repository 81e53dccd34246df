package kv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/twiced-technology-gmbh/dayplan/internal/filelock"
)

const (
	fileMode     = 0o600
	dirMode      = 0o750
	fileExt      = ".json"
	lockFileName = ".lock"
)

// File stores each key as <dir>/<key>.json. Writes go to a temp file that is
// renamed into place while holding <dir>/.lock.
type File struct {
	dir string
}

// NewFile returns a File store rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the directory holding the slot files.
func (f *File) Dir() string { return f.dir }

// Path returns the file that holds key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, key+fileExt)
}

// Get implements Store.
func (f *File) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.Path(key)) //nolint:gosec // slot path from trusted config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, wrapErr("read", key, err)
	}
	return data, true, nil
}

// Set implements Store.
func (f *File) Set(key string, value []byte) error {
	err := filelock.With(filepath.Join(f.dir, lockFileName), func() error {
		tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
		if err != nil {
			return err
		}
		tmpName := tmp.Name()
		if _, err := tmp.Write(value); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
			return err
		}
		if err := tmp.Close(); err != nil {
			_ = os.Remove(tmpName)
			return err
		}
		if err := os.Chmod(tmpName, fileMode); err != nil {
			_ = os.Remove(tmpName)
			return err
		}
		return os.Rename(tmpName, f.Path(key))
	})
	if err != nil {
		return wrapErr("write", key, err)
	}
	return nil
}

// Close implements io.Closer.
func (f *File) Close() error { return nil }
