package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dayplan/internal/board"
	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/config"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/kv"
	"github.com/twiced-technology-gmbh/dayplan/internal/store"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

func initPlanner(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Init(dir)
	require.NoError(t, err)

	old := flagDir
	flagDir = dir
	t.Cleanup(func() { flagDir = old })
	return cfg
}

func TestWatchTargets_FileDriver(t *testing.T) {
	cfg := config.NewDefault()
	cfg.SetDir("/plans")

	dirs, names := watchTargets(cfg)
	assert.Equal(t, []string{"/plans"}, dirs)
	assert.Equal(t, []string{config.ConfigFileName, "timeManagementTasks.json"}, names)
}

func TestWatchTargets_SQLiteElsewhere(t *testing.T) {
	cfg := config.NewDefault()
	cfg.SetDir("/plans")
	cfg.Storage.Driver = kv.DriverSQLite
	cfg.Storage.Path = "db/plan.db"

	dirs, names := watchTargets(cfg)
	assert.Equal(t, []string{"/plans", filepath.Join("/plans", "db")}, dirs)
	assert.Contains(t, names, "plan.db")
	assert.Contains(t, names, "plan.db-wal")
}

func TestWatchTargets_Memory(t *testing.T) {
	cfg := config.NewDefault()
	cfg.SetDir("/plans")
	cfg.Storage.Driver = kv.DriverMemory

	dirs, names := watchTargets(cfg)
	assert.Equal(t, []string{"/plans"}, dirs)
	assert.Equal(t, []string{config.ConfigFileName}, names)
}

func TestParseDate(t *testing.T) {
	today := date.MustParse("2024-03-01")

	d, err := parseDate("target", "tomorrow", today)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", d.String())

	_, err = parseDate("target", "2024-02-30", today)
	assert.True(t, clierr.Is(err, clierr.InvalidDate))
}

func TestMutate_PersistsAndLogs(t *testing.T) {
	cfg := initPlanner(t)

	var id string
	require.NoError(t, mutate(func(sess *session) error {
		added, err := sess.store.AddTodo("Write report")
		if err != nil {
			return err
		}
		id = added.ID
		_, err = sess.store.Move(id, date.MustParse("2024-03-01"), store.MoveSchedule, nil)
		return err
	}))

	require.NoError(t, withStore(func(sess *session) error {
		got, err := resolveTask(sess.store, id[:6])
		require.NoError(t, err)
		assert.Equal(t, task.TypeScheduled, got.Type)
		assert.Equal(t, "09:00", got.Time.String())
		return nil
	}))

	entries, err := board.ReadLog(cfg.Dir(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, store.ActionAdd, entries[0].Action)
	assert.Equal(t, store.ActionMove, entries[1].Action)
	assert.Equal(t, id, entries[1].TaskID)
}

func TestExecuteDelete_UnknownIsNoop(t *testing.T) {
	initPlanner(t)

	require.NoError(t, mutate(func(sess *session) error {
		_, err := sess.store.AddTodo("keep me")
		require.NoError(t, err)

		got, removed, err := executeDelete(sess.store, "ffffffff")
		assert.NoError(t, err)
		assert.False(t, removed)
		assert.Nil(t, got)
		assert.Equal(t, 1, sess.store.Len())
		return nil
	}))
}

func TestExecuteMove_ReportsPreviousDate(t *testing.T) {
	initPlanner(t)

	require.NoError(t, mutate(func(sess *session) error {
		d := date.MustParse("2024-03-01")
		added, err := sess.store.AddDaily("Dentist", d)
		require.NoError(t, err)

		moved, from, err := executeMove(sess.store, added.ID, d.AddDays(2), store.MoveDropTime, nil)
		require.NoError(t, err)
		require.NotNil(t, from)
		assert.Equal(t, "2024-03-01", from.String())
		assert.Equal(t, "2024-03-03", moved.Date.String())
		assert.Equal(t, task.TypeDaily, moved.Type)
		return nil
	}))
}

func TestConfigAccessors_CoverDisplayKeys(t *testing.T) {
	accessors := configAccessors()
	for _, key := range allConfigKeys() {
		_, ok := accessors[key]
		assert.True(t, ok, key)
	}
	assert.Len(t, accessors, len(allConfigKeys()))
}

func TestConfigAccessors_SetValidates(t *testing.T) {
	cfg := config.NewDefault()
	acc := configAccessors()

	require.NoError(t, acc["defaults.move_policy"].set(cfg, "drop-time"))
	assert.Equal(t, store.MoveDropTime, cfg.MovePolicy())

	require.NoError(t, acc["calendar.week_start"].set(cfg, "sun"))
	assert.Equal(t, "sunday", cfg.Calendar.WeekStart)

	assert.Error(t, acc["storage.driver"].set(cfg, "postgres"))
	assert.Error(t, acc["grid.default_zoom"].set(cfg, "micro"))
	assert.True(t, clierr.Is(acc["grid.center"].set(cfg, "7pm"), clierr.MalformedTime))
}

func TestFlagAliases(t *testing.T) {
	norm := flagAliases(map[string]string{"on": "date"})
	assert.Equal(t, "date", string(norm(nil, "on")))
	assert.Equal(t, "json", string(norm(nil, "json")))
}
