package board

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

func mk(id, text, day, at string) *task.Task {
	t := &task.Task{ID: id, Text: text}
	if day != "" {
		task.AssignDate(t, date.MustParse(day))
	}
	if at != "" {
		task.AssignTime(t, clock.MustParse(at), date.MustParse(day))
	}
	task.Normalize(t)
	return t
}

func fixture() []*task.Task {
	return []*task.Task{
		mk("t1", "Buy milk", "", ""),
		mk("d1", "Water plants", "2024-03-01", ""),
		mk("s1", "Standup", "2024-03-01", "09:00"),
		mk("s2", "Dentist", "2024-03-01", "15:30"),
		mk("s3", "Review", "2024-02-28", "10:00"),
		mk("s4", "Flight", "2024-03-04", "07:15"),
		mk("d2", "Taxes", "2024-02-20", ""),
	}
}

func TestFilter(t *testing.T) {
	tasks := fixture()

	got := Filter(tasks, FilterOptions{Types: []task.Type{task.TypeDaily}})
	assert.Equal(t, []string{"d1", "d2"}, ids(got))

	day := date.MustParse("2024-03-01")
	got = Filter(tasks, FilterOptions{Date: &day})
	assert.Equal(t, []string{"d1", "s1", "s2"}, ids(got))

	from, to := date.MustParse("2024-02-28"), date.MustParse("2024-03-01")
	got = Filter(tasks, FilterOptions{From: &from, To: &to, Types: []task.Type{task.TypeScheduled}})
	assert.Equal(t, []string{"s1", "s2", "s3"}, ids(got))

	got = Filter(tasks, FilterOptions{Search: "MILK"})
	assert.Equal(t, []string{"t1"}, ids(got))

	assert.Len(t, Filter(tasks, FilterOptions{}), len(tasks))
}

func TestList(t *testing.T) {
	tasks := fixture()

	got, err := List(tasks, ListOptions{SortBy: SortDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"d2", "s3", "s1", "s2", "d1", "s4", "t1"}, ids(got))

	got, err = List(tasks, ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "d1"}, ids(got))

	_, err = List(tasks, ListOptions{SortBy: "priority"})
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
}

func TestSummary(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	o := Summary(fixture(), now)

	assert.Equal(t, 7, o.TotalTasks)
	assert.Equal(t, []TypeCount{
		{Type: task.TypeTodo, Count: 1},
		{Type: task.TypeDaily, Count: 2},
		{Type: task.TypeScheduled, Count: 4},
	}, o.Types)
	assert.Equal(t, 1, o.Today.Daily)
	assert.Equal(t, 2, o.Today.Scheduled)
	assert.Equal(t, 2, o.Overdue)
	require.NotNil(t, o.Next)
	assert.Equal(t, "s2", o.Next.ID)

	late := time.Date(2024, 3, 1, 16, 0, 0, 0, time.Local)
	o = Summary(fixture(), late)
	require.NotNil(t, o.Next)
	assert.Equal(t, "s4", o.Next.ID)

	o = Summary(nil, now)
	assert.Nil(t, o.Next)
	assert.Zero(t, o.TotalTasks)
}

func TestParseIDs(t *testing.T) {
	got, err := ParseIDs("abcd, ef01,abcd,,")
	require.NoError(t, err)
	assert.Equal(t, []string{"abcd", "ef01"}, got)

	_, err = ParseIDs(" , ")
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
}

func TestActivityLog(t *testing.T) {
	dir := t.TempDir()

	entries, err := ReadLog(dir, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	LogMutation(dir, "add", "abc", "Buy milk")
	LogMutation(dir, "set-time", "abc", "09:30")
	LogMutation(dir, "delete", "abc", "")

	entries, err = ReadLog(dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "add", entries[0].Action)
	assert.Equal(t, "abc", entries[0].TaskID)

	entries, err = ReadLog(dir, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "set-time", entries[0].Action)
	assert.Equal(t, "delete", entries[1].Action)
}

func TestReadLog_SkipsGarbage(t *testing.T) {
	dir := t.TempDir()
	data := `{"action":"add","task_id":"x"}` + "\nnot json\n\n"
	require.NoError(t, os.WriteFile(LogPath(dir), []byte(data), 0o600))

	entries, err := ReadLog(dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x", entries[0].TaskID)
}

func TestAppendLog_Truncates(t *testing.T) {
	dir := t.TempDir()

	var b strings.Builder
	for i := 0; i < maxLogEntries; i++ {
		line, err := json.Marshal(LogEntry{Action: "add", TaskID: fmt.Sprint(i)})
		require.NoError(t, err)
		b.Write(line)
		b.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(LogPath(dir), []byte(b.String()), 0o600))

	require.NoError(t, AppendLog(dir, LogEntry{Action: "delete", TaskID: "last"}))

	entries, err := ReadLog(dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, maxLogEntries)
	assert.Equal(t, "1", entries[0].TaskID)
	assert.Equal(t, "last", entries[len(entries)-1].TaskID)
}

func ids(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
