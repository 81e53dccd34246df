// Package calendar computes the date ranges behind the day, week, month and
// 30-day views and groups tasks into per-day agendas.
package calendar

import (
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/dayplan/internal/clierr"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// Granularity is a calendar view size.
type Granularity string

// View granularities.
const (
	Day    Granularity = "day"
	Week   Granularity = "week"
	Month  Granularity = "month"
	Thirty Granularity = "30d"
)

// Granularities lists every view in toggle order.
var Granularities = []Granularity{Day, Week, Month, Thirty}

const (
	daysPerWeek   = 7
	thirtyDaySpan = 30
)

// ParseGranularity parses a view name.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily":
		return Day, nil
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "30d", "30", "thirty":
		return Thirty, nil
	}
	return "", clierr.Newf(clierr.InvalidView, "invalid view %q", s).
		WithDetails(map[string]any{
			"view":    s,
			"allowed": Granularities,
		})
}

// Next returns the granularity after g in toggle order, wrapping around.
func (g Granularity) Next() Granularity {
	for i, v := range Granularities {
		if v == g {
			return Granularities[(i+1)%len(Granularities)]
		}
	}
	return Day
}

// ParseWeekday parses an English weekday name such as "monday" or "sun".
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return time.Sunday, clierr.Newf(clierr.InvalidInput, "invalid weekday %q", s)
}

// Navigate moves the anchor one view in direction (negative is backwards).
// Months step by calendar month with the day clamped to the target month.
func Navigate(anchor date.Date, direction int, g Granularity) date.Date {
	switch g {
	case Week:
		return anchor.AddDays(direction * daysPerWeek)
	case Thirty:
		return anchor.AddDays(direction * thirtyDaySpan)
	case Month:
		first := date.New(anchor.Year(), anchor.Month()+time.Month(direction), 1)
		return date.New(first.Year(), first.Month(), min(anchor.Day(), first.DaysIn()))
	default:
		return anchor.AddDays(direction)
	}
}

// WeekStart returns the first day of the week containing d.
func WeekStart(d date.Date, weekStart time.Weekday) date.Date {
	offset := (int(d.Weekday()) - int(weekStart) + daysPerWeek) % daysPerWeek
	return d.AddDays(-offset)
}

// Range returns every date shown by view g around anchor, ascending.
func Range(anchor date.Date, g Granularity, weekStart time.Weekday) []date.Date {
	var start date.Date
	var n int
	switch g {
	case Week:
		start, n = WeekStart(anchor, weekStart), daysPerWeek
	case Month:
		start, n = date.New(anchor.Year(), anchor.Month(), 1), anchor.DaysIn()
	case Thirty:
		start, n = anchor, thirtyDaySpan
	default:
		start, n = anchor, 1
	}
	days := make([]date.Date, n)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// Cell is one square of a month grid.
type Cell struct {
	Date    date.Date `json:"date"`
	InMonth bool      `json:"in_month"`
}

// MonthGrid lays anchor's month out as full weeks, padding the first and last
// rows with days from the neighbouring months.
func MonthGrid(anchor date.Date, weekStart time.Weekday) [][]Cell {
	first := date.New(anchor.Year(), anchor.Month(), 1)
	last := date.New(anchor.Year(), anchor.Month(), anchor.DaysIn())
	cur := WeekStart(first, weekStart)

	var rows [][]Cell
	for !cur.After(last) {
		row := make([]Cell, daysPerWeek)
		for i := range row {
			row[i] = Cell{Date: cur, InMonth: cur.Month() == anchor.Month()}
			cur = cur.AddDays(1)
		}
		rows = append(rows, row)
	}
	return rows
}

// Title returns a human heading for the view.
func Title(anchor date.Date, g Granularity, weekStart time.Weekday) string {
	switch g {
	case Week:
		days := Range(anchor, Week, weekStart)
		return "Week of " + days[0].Format("January 2") + " - " + days[len(days)-1].Format("January 2, 2006")
	case Month:
		return anchor.Format("January 2006")
	case Thirty:
		return anchor.Format("January 2") + " - " + anchor.AddDays(thirtyDaySpan-1).Format("January 2, 2006")
	default:
		return anchor.Format("Monday, January 2, 2006")
	}
}

// Lister is the subset of the task store an agenda needs.
type Lister interface {
	ListForDate(d date.Date, types ...task.Type) []*task.Task
}

// AgendaDay holds one date's tasks. Scheduled is ordered by time.
type AgendaDay struct {
	Date      date.Date    `json:"date"`
	Daily     []*task.Task `json:"daily"`
	Scheduled []*task.Task `json:"scheduled"`
}

// Empty reports whether the day has no tasks.
func (a AgendaDay) Empty() bool {
	return len(a.Daily) == 0 && len(a.Scheduled) == 0
}

// Agenda returns one AgendaDay per date of the view.
func Agenda(l Lister, anchor date.Date, g Granularity, weekStart time.Weekday) []AgendaDay {
	days := Range(anchor, g, weekStart)
	out := make([]AgendaDay, len(days))
	for i, d := range days {
		scheduled := l.ListForDate(d, task.TypeScheduled)
		task.SortByTime(scheduled)
		out[i] = AgendaDay{
			Date:      d,
			Daily:     l.ListForDate(d, task.TypeDaily),
			Scheduled: scheduled,
		}
	}
	return out
}
