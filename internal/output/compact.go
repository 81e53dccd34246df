package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/dayplan/internal/board"
	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with its full id.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))
	fmt.Fprintln(w, "  id:"+t.ID)
}

// OverviewCompact renders the planner summary in compact format.
func OverviewCompact(w io.Writer, o board.Overview) {
	parts := make([]string, 0, len(o.Types))
	for _, tc := range o.Types {
		parts = append(parts, string(tc.Type)+"="+strconv.Itoa(tc.Count))
	}
	fmt.Fprintf(w, "%d tasks (%s)\n", o.TotalTasks, strings.Join(parts, " "))
	fmt.Fprintf(w, "today %s: daily=%d scheduled=%d overdue=%d\n",
		o.Today.Date, o.Today.Daily, o.Today.Scheduled, o.Overdue)
	if o.Next != nil {
		fmt.Fprintln(w, "next: "+formatTaskLine(o.Next))
	}
}

// AgendaCompact renders one line per task, prefixed by its date.
func AgendaCompact(w io.Writer, days []calendar.AgendaDay) {
	for _, d := range days {
		for _, t := range d.Daily {
			fmt.Fprintln(w, d.Date.String()+" all-day "+t.Text+" #"+t.ShortID())
		}
		for _, t := range d.Scheduled {
			fmt.Fprintln(w, d.Date.String()+" "+t.Time.String()+" "+t.Text+" #"+t.ShortID())
		}
	}
}

// LogCompact renders activity entries one per line.
func LogCompact(w io.Writer, entries []board.LogEntry) {
	for _, e := range entries {
		line := e.Timestamp.Format("2006-01-02T15:04:05") + " " + e.Action + " " + e.TaskID
		if e.Detail != "" {
			line += " " + strconv.Quote(e.Detail)
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	line := "#" + t.ShortID() + " [" + string(t.Type) + "] " + t.Text
	if t.Date != nil {
		line += " date:" + t.Date.String()
	}
	if t.Time != nil {
		line += " at:" + t.Time.String()
	}
	return line
}
