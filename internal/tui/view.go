package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

const (
	chromeLines   = 4 // title, blank line, status bar, error/notice line
	todoPaneShare = 3 // the todo pane gets 1/N of the width
	minPaneWidth  = 20
	slotLabelW    = 6
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	paneHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	activePaneHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	nowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)

	dailyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2) //nolint:mnd // dialog padding
)

// line is one rendered row of a pane. task is set for selectable rows.
type line struct {
	text string
	task *task.Task
}

func (p *Planner) viewPlanner() string {
	header := p.renderTitle()

	todoW := max(minPaneWidth, p.width/todoPaneShare)
	calW := max(minPaneWidth, p.width-todoW-1)
	bodyH := max(1, p.height-chromeLines)

	todos := p.renderPane("Todos", paneTodos, p.todoLines(), todoW, bodyH)
	cal := p.renderPane(p.calendarHeading(), paneCalendar, p.calendarLines(), calW, bodyH)
	body := lipgloss.JoinHorizontal(lipgloss.Top, todos, " ", cal)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, p.renderFooter())
}

func (p *Planner) renderTitle() string {
	title := calendar.Title(p.anchor, p.gran, p.opts.WeekStart)
	if p.gran == calendar.Day {
		title += "  [" + p.zoom + "]"
	}
	return titleStyle.Render(truncate(title, p.width-2)) //nolint:mnd // title padding
}

func (p *Planner) calendarHeading() string {
	if p.gran == calendar.Day {
		return "Day"
	}
	return strings.ToUpper(string(p.gran[:1])) + string(p.gran[1:])
}

// renderPane draws a header and rows, scrolling so the selection stays visible.
func (p *Planner) renderPane(heading string, which pane, lines []line, width, height int) string {
	style := paneHeaderStyle
	if p.pane == which {
		style = activePaneHeaderStyle
	}

	selected := -1
	if p.pane == which {
		sel := p.selectedTask()
		for i, l := range lines {
			if l.task != nil && sel != nil && l.task.ID == sel.ID {
				selected = i
				break
			}
		}
	}

	rows := make([]string, 0, len(lines))
	for i, l := range lines {
		text := clip(l.text, width)
		if i == selected {
			text = selectedStyle.Render(clip("> "+l.text, width))
		}
		rows = append(rows, text)
	}
	rows = scrollWindow(rows, selected, height-1)

	out := append([]string{style.Render(truncate(heading, width-2))}, rows...) //nolint:mnd // header padding
	return lipgloss.NewStyle().Width(width).Render(strings.Join(out, "\n"))
}

func (p *Planner) todoLines() []line {
	todos := p.store.ListByType(task.TypeTodo)
	if len(todos) == 0 {
		return []line{{text: dimStyle.Render("no todos (a to add)")}}
	}
	lines := make([]line, len(todos))
	for i, t := range todos {
		lines[i] = line{text: "• " + t.Text, task: t}
	}
	return lines
}

func (p *Planner) calendarLines() []line {
	switch p.gran {
	case calendar.Day:
		return p.dayLines()
	case calendar.Month:
		return append(p.monthGridLines(), p.agendaLines()...)
	default:
		return p.agendaLines()
	}
}

func (p *Planner) dayLines() []line {
	daily, layout := p.dayLayout()
	var lines []line

	for _, t := range daily {
		lines = append(lines, line{text: dailyStyle.Render("all day") + " " + t.Text, task: t})
	}

	now := p.now()
	isToday := p.anchor.Equal(date.Of(now))
	nowAt := clock.FromTime(now)

	for _, c := range layout.Cells {
		label := c.Slot.Start.String()
		if isToday && c.Slot.Contains(nowAt) {
			label = nowStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		label = padRight(label, slotLabelW) + "│ "
		if len(c.Tasks) == 0 {
			lines = append(lines, line{text: label})
			continue
		}
		for i, t := range c.Tasks {
			if i > 0 {
				label = strings.Repeat(" ", slotLabelW) + "│ "
			}
			lines = append(lines, line{text: label + timeStyle.Render(t.Time.String()) + " " + t.Text, task: t})
		}
	}

	if len(layout.Unplaced) > 0 {
		lines = append(lines, line{text: dimStyle.Render("outside window:")})
		for _, t := range layout.Unplaced {
			lines = append(lines, line{text: "  " + timeStyle.Render(t.Time.String()) + " " + t.Text, task: t})
		}
	}
	return lines
}

func (p *Planner) agendaLines() []line {
	var lines []line
	for _, d := range calendar.Agenda(p.store, p.anchor, p.gran, p.opts.WeekStart) {
		if d.Empty() {
			continue
		}
		lines = append(lines, line{text: dimStyle.Render(d.Date.Format("Mon Jan 2"))})
		for _, t := range d.Daily {
			lines = append(lines, line{text: "  " + dailyStyle.Render("all day") + " " + t.Text, task: t})
		}
		for _, t := range d.Scheduled {
			lines = append(lines, line{text: "  " + timeStyle.Render(t.Time.String()) + "   " + t.Text, task: t})
		}
	}
	if len(lines) == 0 {
		lines = append(lines, line{text: dimStyle.Render("nothing planned")})
	}
	return lines
}

// monthGridLines renders the anchor's month as a compact calendar with a
// task count per day.
func (p *Planner) monthGridLines() []line {
	const cellW = 6
	var header strings.Builder
	first := calendar.WeekStart(p.anchor, p.opts.WeekStart)
	for i := 0; i < 7; i++ {
		header.WriteString(padRight(first.AddDays(i).Format("Mon"), cellW))
	}
	lines := []line{{text: dimStyle.Render(header.String())}}

	today := date.Of(p.now())
	for _, row := range calendar.MonthGrid(p.anchor, p.opts.WeekStart) {
		var b strings.Builder
		for _, c := range row {
			cell := fmt.Sprintf("%2d", c.Date.Day())
			if n := len(p.store.ListForDate(c.Date)); n > 0 && c.InMonth {
				cell += "·" + strconv.Itoa(n)
			}
			switch {
			case !c.InMonth:
				cell = dimStyle.Render(cell)
			case c.Date.Equal(today):
				cell = nowStyle.Render(cell)
			}
			b.WriteString(padRight(cell, cellW))
		}
		lines = append(lines, line{text: b.String()})
	}
	return append(lines, line{})
}

func (p *Planner) renderFooter() string {
	if p.view == viewInput {
		return p.input.View() + "\n" + statusBarStyle.Render("enter:save  esc:cancel")
	}

	parts := make([]string, 0, len(p.keys.shortHelp()))
	for _, b := range p.keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+":"+h.Desc)
	}
	status := fmt.Sprintf(" %d tasks | %s", p.store.Len(), strings.Join(parts, " "))
	status = statusBarStyle.Render(truncate(status, p.width))

	switch {
	case p.err != nil:
		return errorStyle.Render(truncate("Error: "+p.err.Error(), p.width)) + "\n" + status
	case p.notice != "":
		return noticeStyle.Render(truncate(p.notice, p.width)) + "\n" + status
	default:
		return "\n" + status
	}
}

func (p *Planner) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		"  " + truncate(p.deleteText, 60) + "\n\n" + //nolint:mnd // dialog text width
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

// scrollWindow returns at most height rows, positioned so focus is visible.
func scrollWindow(rows []string, focus, height int) []string {
	if height <= 0 || len(rows) <= height {
		return rows
	}
	start := 0
	if focus >= height {
		start = focus - height + 1
	}
	return rows[start : start+height]
}

// clip cuts styled text to width cells without breaking escape sequences.
func clip(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// padRight pads s with spaces to the given visible width.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
