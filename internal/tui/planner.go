// Package tui implements the interactive day planner.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/twiced-technology-gmbh/dayplan/internal/calendar"
	"github.com/twiced-technology-gmbh/dayplan/internal/clock"
	"github.com/twiced-technology-gmbh/dayplan/internal/date"
	"github.com/twiced-technology-gmbh/dayplan/internal/grid"
	"github.com/twiced-technology-gmbh/dayplan/internal/store"
	"github.com/twiced-technology-gmbh/dayplan/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewPlanner view = iota
	viewInput
	viewConfirmDelete
)

// pane is the list that owns the selection.
type pane int

const (
	paneTodos pane = iota
	paneCalendar
)

// inputMode is what the text input is collecting.
type inputMode int

const (
	inputTodo inputMode = iota
	inputDaily
	inputTime
	inputMove
	inputSchedule
)

const (
	tickInterval = time.Minute
	inputLimit   = 200
	centerStep   = clock.MinutesPerHour
)

// Options configures a Planner.
type Options struct {
	Levels     []grid.Level
	Zoom       string
	Center     clock.Time
	View       calendar.Granularity
	WeekStart  time.Weekday
	MovePolicy store.MovePolicy
}

// Planner is the top-level bubbletea model.
type Planner struct {
	store  *store.Store
	opts   Options
	keys   keyMap
	anchor date.Date
	gran   calendar.Granularity
	zoom   string
	center clock.Time

	view   view
	pane   pane
	row    int
	width  int
	height int
	err    error
	notice string
	now    func() time.Time

	input     textinput.Model
	mode      inputMode
	targetID  string
	justAdded bool

	deleteID   string
	deleteText string
}

// NewPlanner creates a Planner over s.
func NewPlanner(s *store.Store, opts Options) *Planner {
	if len(opts.Levels) == 0 {
		opts.Levels = grid.DefaultLevels()
	}
	if opts.View == "" {
		opts.View = calendar.Day
	}
	if opts.MovePolicy == "" {
		opts.MovePolicy = store.MoveKeep
	}
	zoom := opts.Zoom
	if _, err := grid.FindLevel(opts.Levels, zoom); err != nil {
		zoom = opts.Levels[0].Name
	}

	ti := textinput.New()
	ti.CharLimit = inputLimit

	return &Planner{
		store:  s,
		opts:   opts,
		keys:   defaultKeyMap(),
		anchor: s.Today(),
		gran:   opts.View,
		zoom:   zoom,
		center: opts.Center,
		input:  ti,
		now:    time.Now,
	}
}

// SetNow overrides the clock used to mark the current slot (for testing).
func (p *Planner) SetNow(fn func() time.Time) {
	p.now = fn
}

// Anchor returns the date the calendar pane is showing.
func (p *Planner) Anchor() date.Date { return p.anchor }

// Granularity returns the calendar pane's view.
func (p *Planner) Granularity() calendar.Granularity { return p.gran }

// Zoom returns the current zoom level name.
func (p *Planner) Zoom() string { return p.zoom }

// Init implements tea.Model.
func (p *Planner) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (p *Planner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil
	case ReloadMsg:
		p.err = p.store.Reload()
		p.clampRow()
		return p, nil
	case TickMsg:
		return p, tickCmd()
	}
	return p, nil
}

// View implements tea.Model.
func (p *Planner) View() string {
	if p.width == 0 {
		return "Loading..."
	}
	if p.view == viewConfirmDelete {
		return p.viewDeleteConfirm()
	}
	return p.viewPlanner()
}

func (p *Planner) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, p.keys.ForceQuit) {
		return p, tea.Quit
	}

	switch p.view {
	case viewInput:
		return p.handleInputKey(msg)
	case viewConfirmDelete:
		return p.handleDeleteKey(msg)
	default:
		return p.handlePlannerKey(msg)
	}
}

func (p *Planner) handlePlannerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p.notice = ""
	k := p.keys
	switch {
	case key.Matches(msg, k.Quit):
		return p, tea.Quit
	case key.Matches(msg, k.Up):
		if p.row > 0 {
			p.row--
		}
	case key.Matches(msg, k.Down):
		if p.row < len(p.selectable())-1 {
			p.row++
		}
	case key.Matches(msg, k.Pane):
		p.pane = 1 - p.pane
		p.row = 0
	case key.Matches(msg, k.AddTodo):
		return p, p.openInput(inputTodo, "", "New todo: ", "")
	case key.Matches(msg, k.AddDaily):
		return p, p.openInput(inputDaily, "", "Daily on "+p.anchor.String()+": ", "")
	case key.Matches(msg, k.SetTime):
		if t := p.selectedTask(); t != nil {
			current := ""
			if t.Time != nil {
				current = t.Time.String()
			}
			return p, p.openInput(inputTime, t.ID, "Time (HH:MM, empty clears): ", current)
		}
	case key.Matches(msg, k.Move):
		if t := p.selectedTask(); t != nil {
			return p, p.openInput(inputMove, t.ID, "Move to date: ", p.anchor.String())
		}
	case key.Matches(msg, k.Schedule):
		if t := p.selectedTask(); t != nil {
			return p, p.openInput(inputSchedule, t.ID, "Schedule on date: ", p.anchor.String())
		}
	case key.Matches(msg, k.Unsched):
		if t := p.selectedTask(); t != nil {
			_, err := p.store.ClearDate(t.ID)
			p.afterMutation(err, "Unscheduled "+t.ShortID())
		}
	case key.Matches(msg, k.Delete):
		if t := p.selectedTask(); t != nil {
			p.deleteID = t.ID
			p.deleteText = t.Text
			p.view = viewConfirmDelete
		}
	case key.Matches(msg, k.ZoomIn):
		p.zoom = grid.Step(p.opts.Levels, p.zoom, 1).Name
	case key.Matches(msg, k.ZoomOut):
		p.zoom = grid.Step(p.opts.Levels, p.zoom, -1).Name
	case key.Matches(msg, k.Earlier):
		p.shiftCenter(-centerStep)
	case key.Matches(msg, k.Later):
		p.shiftCenter(centerStep)
	case key.Matches(msg, k.Prev):
		p.navigate(-1)
	case key.Matches(msg, k.Next):
		p.navigate(1)
	case key.Matches(msg, k.View):
		p.gran = p.gran.Next()
		p.clampRow()
	case key.Matches(msg, k.Today):
		p.anchor = p.store.Today()
		p.clampRow()
	}
	return p, nil
}

func (p *Planner) navigate(direction int) {
	p.anchor = calendar.Navigate(p.anchor, direction, p.gran)
	p.clampRow()
}

func (p *Planner) shiftCenter(delta int) {
	m := max(0, min(clock.MinutesPerDay-1, p.center.Minutes()+delta))
	p.center = clock.FromMinutes(m)
}

func (p *Planner) openInput(mode inputMode, id, prompt, value string) tea.Cmd {
	p.mode = mode
	p.targetID = id
	p.justAdded = false
	p.input.Prompt = prompt
	p.input.SetValue(value)
	p.input.CursorEnd()
	p.view = viewInput
	return p.input.Focus()
}

func (p *Planner) closeInput() {
	p.input.Blur()
	p.input.Reset()
	p.view = viewPlanner
	p.justAdded = false
}

func (p *Planner) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		p.closeInput()
		return p, nil
	case tea.KeyEnter:
		p.submitInput(strings.TrimSpace(p.input.Value()))
		return p, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// submitInput applies the collected value. Adding a todo keeps the input
// open for the next one; pressing Enter on an empty line straight after an
// add promotes that todo to a daily task on the anchor date.
func (p *Planner) submitInput(value string) {
	switch p.mode {
	case inputTodo:
		if value == "" {
			if p.justAdded {
				p.promoteLastTodo()
			}
			p.closeInput()
			return
		}
		t, err := p.store.AddTodo(value)
		p.afterMutation(err, "Added "+shortOf(t))
		p.input.Reset()
		p.justAdded = t != nil
		return
	case inputDaily:
		if value != "" {
			t, err := p.store.AddDaily(value, p.anchor)
			p.afterMutation(err, "Added "+shortOf(t))
		}
	case inputTime:
		_, err := p.store.SetTimeString(p.targetID, value, p.anchor)
		p.afterMutation(err, "Time updated")
	case inputMove, inputSchedule:
		d, err := date.ParseRelative(value, p.store.Today())
		if err != nil {
			p.err = err
			return
		}
		policy := p.opts.MovePolicy
		if p.mode == inputSchedule {
			policy = store.MoveSchedule
		}
		_, err = p.store.Move(p.targetID, d, policy, nil)
		p.afterMutation(err, "Moved to "+d.String())
	}
	p.closeInput()
}

func (p *Planner) promoteLastTodo() {
	t, ok := p.store.LastTodo()
	if !ok {
		return
	}
	_, err := p.store.MoveToDate(t.ID, p.anchor)
	p.afterMutation(err, "Promoted "+t.ShortID()+" to "+p.anchor.String())
}

func (p *Planner) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Confirm):
		_, err := p.store.Delete(p.deleteID)
		p.afterMutation(err, "Deleted "+truncate(p.deleteText, 30)) //nolint:mnd // notice width
		p.view = viewPlanner
	case key.Matches(msg, p.keys.Cancel):
		p.view = viewPlanner
	}
	return p, nil
}

// afterMutation records the outcome of a store call. A persistence failure
// still leaves the change visible, so the notice is replaced by the error.
func (p *Planner) afterMutation(err error, notice string) {
	p.err = err
	if err == nil {
		p.notice = notice
	}
	p.clampRow()
}

func shortOf(t *task.Task) string {
	if t == nil {
		return ""
	}
	return t.ShortID()
}

// selectable returns the tasks of the focused pane in display order.
func (p *Planner) selectable() []*task.Task {
	if p.pane == paneTodos {
		return p.store.ListByType(task.TypeTodo)
	}
	if p.gran == calendar.Day {
		daily, layout := p.dayLayout()
		out := append([]*task.Task{}, daily...)
		for _, c := range layout.Cells {
			out = append(out, c.Tasks...)
		}
		return append(out, layout.Unplaced...)
	}
	var out []*task.Task
	for _, d := range calendar.Agenda(p.store, p.anchor, p.gran, p.opts.WeekStart) {
		out = append(out, d.Daily...)
		out = append(out, d.Scheduled...)
	}
	return out
}

func (p *Planner) selectedTask() *task.Task {
	tasks := p.selectable()
	if p.row >= 0 && p.row < len(tasks) {
		return tasks[p.row]
	}
	return nil
}

func (p *Planner) clampRow() {
	n := len(p.selectable())
	if p.row >= n {
		p.row = n - 1
	}
	if p.row < 0 {
		p.row = 0
	}
}

// dayLayout returns the anchor's daily tasks and its scheduled tasks laid
// onto the current zoom level's grid.
func (p *Planner) dayLayout() ([]*task.Task, grid.Layout) {
	level := grid.Step(p.opts.Levels, p.zoom, 0)
	slots, err := grid.BuildIntervals(level.Config(p.center))
	if err != nil {
		slots, _ = grid.BuildIntervals(grid.FullDay())
	}
	daily := p.store.ListForDate(p.anchor, task.TypeDaily)
	scheduled := p.store.ListForDate(p.anchor, task.TypeScheduled)
	return daily, grid.Lay(scheduled, slots)
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a reload from storage.
type ReloadMsg struct{}

// TickMsg is sent periodically to move the current-time marker.
type TickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}
