package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/kv"
	"github.com/twiced-technology-gmbh/dayplan/internal/persist"
	"github.com/twiced-technology-gmbh/dayplan/internal/store"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

var fixedNow = time.Date(2024, time.March, 1, 9, 15, 0, 0, time.Local)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newPlanner(t *testing.T) (*Planner, *store.Store) {
	t.Helper()
	s, err := store.New(persist.New(kv.NewMemory(), ""),
		store.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	p := NewPlanner(s, Options{Center: clock.MustParse("12:00"), WeekStart: time.Monday})
	p.SetNow(func() time.Time { return fixedNow })
	p.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return p, s
}

func press(p *Planner, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		p.Update(msg)
	}
}

func TestAddTodoAndPromoteWithDoubleEnter(t *testing.T) {
	p, s := newPlanner(t)

	press(p, "a", "Buy milk", "enter")
	require.Equal(t, viewInput, p.view)
	require.Len(t, s.ListByType(task.TypeTodo), 1)

	press(p, "enter")
	assert.Equal(t, viewPlanner, p.view)
	assert.Empty(t, s.ListByType(task.TypeTodo))
	daily := s.ListForDate(date.MustParse("2024-03-01"), task.TypeDaily)
	require.Len(t, daily, 1)
	assert.Equal(t, "Buy milk", daily[0].Text)
}

func TestAddTodo_EmptyEnterWithoutAddJustCloses(t *testing.T) {
	p, s := newPlanner(t)

	press(p, "a", "enter")
	assert.Equal(t, viewPlanner, p.view)
	assert.Zero(t, s.Len())
}

func TestAddDailyOnAnchor(t *testing.T) {
	p, s := newPlanner(t)

	press(p, "l", "A", "Water plants", "enter")
	assert.Equal(t, viewPlanner, p.view)
	daily := s.ListForDate(date.MustParse("2024-03-02"), task.TypeDaily)
	require.Len(t, daily, 1)
}

func TestSetTimeOnTodo(t *testing.T) {
	p, s := newPlanner(t)
	_, err := s.AddTodo("Call Bob")
	require.NoError(t, err)

	press(p, "t", "09:30", "enter")

	got := s.ListForDate(date.MustParse("2024-03-01"), task.TypeScheduled)
	require.Len(t, got, 1)
	assert.Equal(t, "09:30", got[0].Time.String())
	assert.NoError(t, p.err)
}

func TestSetTime_MalformedShowsError(t *testing.T) {
	p, s := newPlanner(t)
	_, err := s.AddTodo("Call Bob")
	require.NoError(t, err)

	press(p, "t", "25:61", "enter")

	assert.Error(t, p.err)
	assert.Len(t, s.ListByType(task.TypeTodo), 1)
}

func TestScheduleMoveAndUnschedule(t *testing.T) {
	p, s := newPlanner(t)
	tk, err := s.AddTodo("Report")
	require.NoError(t, err)

	press(p, "s", "enter")
	got, ok := s.Get(tk.ID)
	require.True(t, ok)
	assert.Equal(t, task.TypeScheduled, got.Type)
	assert.Equal(t, "09:00", got.Time.String())

	press(p, "tab")
	require.NotNil(t, p.selectedTask())
	press(p, "u")
	got, _ = s.Get(tk.ID)
	assert.Equal(t, task.TypeTodo, got.Type)
	assert.Nil(t, got.Time)
}

func TestMove_BadDateKeepsInputOpen(t *testing.T) {
	p, s := newPlanner(t)
	_, err := s.AddTodo("Report")
	require.NoError(t, err)

	press(p, "m")
	p.input.SetValue("someday")
	press(p, "enter")

	assert.Equal(t, viewInput, p.view)
	assert.Error(t, p.err)

	press(p, "esc")
	assert.Equal(t, viewPlanner, p.view)
}

func TestDeleteWithConfirm(t *testing.T) {
	p, s := newPlanner(t)
	_, err := s.AddTodo("Report")
	require.NoError(t, err)

	press(p, "d", "n")
	assert.Equal(t, 1, s.Len())

	press(p, "d")
	assert.Contains(t, p.View(), "Delete task?")
	press(p, "y")
	assert.Zero(t, s.Len())
	assert.Equal(t, viewPlanner, p.view)
}

func TestZoomViewAndNavigation(t *testing.T) {
	p, _ := newPlanner(t)

	assert.Equal(t, "day", p.Zoom())
	press(p, "+")
	assert.Equal(t, "half", p.Zoom())
	press(p, "+", "+")
	assert.Equal(t, "focus", p.Zoom())
	press(p, "-")
	assert.Equal(t, "half", p.Zoom())

	press(p, "v")
	assert.Equal(t, calendar.Week, p.Granularity())
	press(p, "l")
	assert.Equal(t, "2024-03-08", p.Anchor().String())
	press(p, "T")
	assert.Equal(t, "2024-03-01", p.Anchor().String())
}

func TestView_RendersDayGrid(t *testing.T) {
	p, s := newPlanner(t)
	d := date.MustParse("2024-03-01")
	tk, err := s.AddDaily("Standup", d)
	require.NoError(t, err)
	_, err = s.SetTime(tk.ID, clock.MustParse("10:15").Ptr(), d)
	require.NoError(t, err)
	_, err = s.AddTodo("Buy milk")
	require.NoError(t, err)

	out := p.View()
	assert.Contains(t, out, "Friday, March 1, 2024")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "10:15 Standup")
	assert.Contains(t, out, "23:00")

	press(p, "v", "v")
	out = p.View()
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "Standup")
}

func TestReloadPicksUpExternalChanges(t *testing.T) {
	mem := kv.NewMemory()
	s, err := store.New(persist.New(mem, ""))
	require.NoError(t, err)
	p := NewPlanner(s, Options{})

	other, err := store.New(persist.New(mem, ""))
	require.NoError(t, err)
	_, err = other.AddTodo("from the CLI")
	require.NoError(t, err)

	assert.Zero(t, s.Len())
	p.Update(ReloadMsg{})
	assert.Equal(t, 1, s.Len())
}

func TestScrollWindow(t *testing.T) {
	rows := []string{"0", "1", "2", "3", "4"}
	assert.Equal(t, rows, scrollWindow(rows, 0, 10))
	assert.Equal(t, []string{"0", "1"}, scrollWindow(rows, 1, 2))
	assert.Equal(t, []string{"3", "4"}, scrollWindow(rows, 4, 2))
}
