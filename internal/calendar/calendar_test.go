package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("Weekly")
	require.NoError(t, err)
	assert.Equal(t, Week, g)

	g, err = ParseGranularity("30")
	require.NoError(t, err)
	assert.Equal(t, Thirty, g)

	_, err = ParseGranularity("year")
	assert.Equal(t, clierr.InvalidView, clierr.CodeOf(err))
}

func TestNext(t *testing.T) {
	assert.Equal(t, Week, Day.Next())
	assert.Equal(t, Day, Thirty.Next())
}

func TestNavigate(t *testing.T) {
	anchor := date.MustParse("2024-01-31")

	assert.Equal(t, "2024-02-01", Navigate(anchor, 1, Day).String())
	assert.Equal(t, "2024-01-24", Navigate(anchor, -1, Week).String())
	assert.Equal(t, "2024-03-01", Navigate(anchor, 1, Thirty).String())
	assert.Equal(t, "2024-02-29", Navigate(anchor, 1, Month).String())
	assert.Equal(t, "2023-12-31", Navigate(anchor, -1, Month).String())
	assert.Equal(t, "2025-01-31", Navigate(anchor, 12, Month).String())
}

func TestRange(t *testing.T) {
	anchor := date.MustParse("2024-03-06") // Wednesday

	assert.Len(t, Range(anchor, Day, time.Monday), 1)

	week := Range(anchor, Week, time.Monday)
	require.Len(t, week, 7)
	assert.Equal(t, "2024-03-04", week[0].String())
	assert.Equal(t, "2024-03-10", week[6].String())

	week = Range(anchor, Week, time.Sunday)
	assert.Equal(t, "2024-03-03", week[0].String())

	month := Range(anchor, Month, time.Monday)
	require.Len(t, month, 31)
	assert.Equal(t, "2024-03-01", month[0].String())

	thirty := Range(anchor, Thirty, time.Monday)
	require.Len(t, thirty, 30)
	assert.Equal(t, "2024-04-04", thirty[29].String())
}

func TestMonthGrid(t *testing.T) {
	rows := MonthGrid(date.MustParse("2024-02-15"), time.Monday)
	require.Len(t, rows, 5)
	assert.Equal(t, "2024-01-29", rows[0][0].Date.String())
	assert.False(t, rows[0][0].InMonth)
	assert.True(t, rows[0][3].InMonth)
	assert.Equal(t, "2024-03-03", rows[4][6].Date.String())

	inMonth := 0
	for _, row := range rows {
		require.Len(t, row, 7)
		for _, c := range row {
			if c.InMonth {
				inMonth++
			}
		}
	}
	assert.Equal(t, 29, inMonth)
}

func TestTitle(t *testing.T) {
	d := date.MustParse("2024-03-01")
	assert.Equal(t, "Friday, March 1, 2024", Title(d, Day, time.Monday))
	assert.Equal(t, "March 2024", Title(d, Month, time.Monday))
	assert.Equal(t, "Week of February 26 - March 3, 2024", Title(d, Week, time.Monday))
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Mon")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("xy")
	assert.Error(t, err)
}

type fakeLister []*task.Task

func (f fakeLister) ListForDate(d date.Date, types ...task.Type) []*task.Task {
	var out []*task.Task
	for _, t := range f {
		if !t.HasDate(d) {
			continue
		}
		for _, typ := range types {
			if t.Type == typ {
				out = append(out, t)
			}
		}
	}
	return out
}

func TestAgenda(t *testing.T) {
	d := date.MustParse("2024-03-01")
	mk := func(id string, day date.Date, at string) *task.Task {
		tk := &task.Task{ID: id, Text: id}
		task.AssignDate(tk, day)
		if at != "" {
			task.AssignTime(tk, clock.MustParse(at), day)
		}
		return tk
	}
	l := fakeLister{
		mk("late", d, "18:00"),
		mk("daily", d, ""),
		mk("early", d, "07:00"),
		mk("tomorrow", d.AddDays(1), "09:00"),
	}

	days := Agenda(l, d, Day, time.Monday)
	require.Len(t, days, 1)
	require.Len(t, days[0].Scheduled, 2)
	assert.Equal(t, "early", days[0].Scheduled[0].ID)
	assert.Equal(t, "late", days[0].Scheduled[1].ID)
	require.Len(t, days[0].Daily, 1)

	days = Agenda(l, d, Week, time.Monday)
	require.Len(t, days, 7)
	assert.True(t, days[0].Empty())
	assert.False(t, days[5].Empty())
}
