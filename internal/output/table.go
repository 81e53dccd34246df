package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/dayplan/internal/board"
	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/grid"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	// Type colors aligned with the TUI palette.
	typeStyles = map[string]lipgloss.Style{
		string(task.TypeTodo):      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		string(task.TypeDaily):     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		string(task.TypeScheduled): lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}

	colorEnabled = true
)

const maxText = 48

// DisableColor strips all styling from table output and forces lipgloss to
// the ASCII profile so nested renderers stay plain.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	timeStyle = lipgloss.NewStyle()
	warnStyle = lipgloss.NewStyle()
	typeStyles = map[string]lipgloss.Style{}
	colorEnabled = false
}

// ColorEnabled reports whether DisableColor has not been called.
func ColorEnabled() bool {
	return colorEnabled
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	idW, typeW, dateW, timeW := 10, 11, 12, 7

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		idW, "ID", typeW, "TYPE", dateW, "DATE", timeW, "TIME", "TEXT")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		row := fmt.Sprintf("%-*s %s %s %s %s",
			idW, t.ShortID(),
			padRight(styledValue(string(t.Type), typeStyles), typeW),
			padRight(dateOrDash(t.Date), dateW),
			padRight(timeOrDash(t), timeW),
			truncate(t.Text, maxText))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t *task.Task) {
	titleLine := "Task " + t.ShortID() + ": " + t.Text
	fmt.Fprintln(w, titleStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "ID", t.ID)
	printField(w, "Type", styledValue(string(t.Type), typeStyles))
	printField(w, "Date", dateOrDash(t.Date))
	printField(w, "Time", timeOrDash(t))
}

// OverviewTable renders the planner summary as a dashboard.
func OverviewTable(w io.Writer, o board.Overview) {
	fmt.Fprintln(w, titleStyle.Render("Planner summary"))
	fmt.Fprintf(w, "Total: %d tasks\n\n", o.TotalTasks)

	const typeColW = 12
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %6s", typeColW, "TYPE", "COUNT")))
	for _, tc := range o.Types {
		fmt.Fprintf(w, "%s %6d\n", padRight(styledValue(string(tc.Type), typeStyles), typeColW), tc.Count)
	}

	fmt.Fprintln(w)
	printField(w, "Today", fmt.Sprintf("%s: %d daily, %d scheduled", o.Today.Date, o.Today.Daily, o.Today.Scheduled))
	overdue := strconv.Itoa(o.Overdue)
	if o.Overdue > 0 {
		overdue = warnStyle.Render(overdue)
	}
	printField(w, "Overdue", overdue)
	if o.Next != nil {
		printField(w, "Next", o.Next.Date.String()+" "+timeStyle.Render(o.Next.Time.String())+" "+o.Next.Text)
	} else {
		printField(w, "Next", dimStyle.Render("--"))
	}
}

// DayGrid renders a day's time grid: one line per slot, tasks listed next
// to the slot they fall in, unplaced and daily tasks after the grid.
func DayGrid(w io.Writer, d date.Date, level string, layout grid.Layout, daily []*task.Task) {
	fmt.Fprintln(w, titleStyle.Render(d.Format("Monday, January 2, 2006")+" ("+level+")"))

	const slotW = 12
	for _, c := range layout.Cells {
		label := padRight(dimStyle.Render(c.Slot.String()), slotW)
		if len(c.Tasks) == 0 {
			fmt.Fprintln(w, strings.TrimRight(label, " "))
			continue
		}
		for i, t := range c.Tasks {
			if i > 0 {
				label = strings.Repeat(" ", slotW)
			}
			fmt.Fprintf(w, "%s %s %s [%s]\n", label, timeStyle.Render(t.Time.String()), truncate(t.Text, maxText), t.ShortID())
		}
	}

	if len(layout.Unplaced) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Outside window"))
		for _, t := range layout.Unplaced {
			fmt.Fprintf(w, "  %s %s [%s]\n", timeStyle.Render(t.Time.String()), truncate(t.Text, maxText), t.ShortID())
		}
	}

	if len(daily) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("All day"))
		for _, t := range daily {
			fmt.Fprintf(w, "  %s [%s]\n", truncate(t.Text, maxText), t.ShortID())
		}
	}
}

// AgendaTable renders agenda days under a heading. Empty days are skipped
// unless every day is empty.
func AgendaTable(w io.Writer, title string, days []calendar.AgendaDay) {
	fmt.Fprintln(w, titleStyle.Render(title))

	printed := 0
	for _, d := range days {
		if d.Empty() {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(d.Date.Format("Mon Jan 2")))
		for _, t := range d.Daily {
			fmt.Fprintf(w, "  %s %s [%s]\n", dimStyle.Render("all-day"), truncate(t.Text, maxText), t.ShortID())
		}
		for _, t := range d.Scheduled {
			fmt.Fprintf(w, "  %s %s [%s]\n", padRight(timeStyle.Render(t.Time.String()), len("all-day")), truncate(t.Text, maxText), t.ShortID())
		}
		printed++
	}
	if printed == 0 {
		fmt.Fprintln(w, dimStyle.Render("Nothing planned."))
	}
}

// LogTable renders activity log entries.
func LogTable(w io.Writer, entries []board.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}

	header := fmt.Sprintf("%-16s %-11s %-10s %s", "TIME", "ACTION", "TASK", "DETAIL")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, e := range entries {
		id := e.TaskID
		if len(id) > 8 { //nolint:mnd // short id width
			id = id[:8]
		}
		row := fmt.Sprintf("%-16s %-11s %-10s %s",
			e.Timestamp.Format("2006-01-02 15:04"), e.Action, id, truncate(e.Detail, maxText))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-10s %s\n", label+":", value)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func dateOrDash(d *date.Date) string {
	if d == nil {
		return dimStyle.Render("--")
	}
	return d.String()
}

func timeOrDash(t *task.Task) string {
	if t.Time == nil {
		return dimStyle.Render("--")
	}
	return timeStyle.Render(t.Time.String())
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
