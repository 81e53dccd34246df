package kv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("slot", []byte(`[1]`)))
	got, ok, err := s.Get("slot")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1]`, string(got))

	require.NoError(t, s.Set("slot", []byte(`[1,2]`)))
	got, _, err = s.Get("slot")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemory_FailWrites(t *testing.T) {
	m := NewMemory()
	m.FailWrites = errors.New("disk full")

	err := m.Set("slot", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, clierr.PersistenceFailure, clierr.CodeOf(err))
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	f, err := NewFile(dir)
	require.NoError(t, err)
	exerciseStore(t, f)

	data, err := os.ReadFile(filepath.Join(dir, "slot.json"))
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "db", "plan.db"), nil)
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	base := t.TempDir()

	s, err := Open(DriverFile, base, "data", nil)
	require.NoError(t, err)
	f, ok := s.(*File)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(base, "data"), f.Dir())

	s, err = Open(DriverMemory, base, "", nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open("redis", base, "", nil)
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
}
