package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the planner key bindings.
type keyMap struct {
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Pane      key.Binding
	AddTodo   key.Binding
	AddDaily  key.Binding
	SetTime   key.Binding
	Move      key.Binding
	Schedule  key.Binding
	Unsched   key.Binding
	Delete    key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Earlier   key.Binding
	Later     key.Binding
	Prev      key.Binding
	Next      key.Binding
	View      key.Binding
	Today     key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Up:        key.NewBinding(key.WithKeys("k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down")),
		Pane:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pane")),
		AddTodo:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "todo")),
		AddDaily:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "daily")),
		SetTime:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "time")),
		Move:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Schedule:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "schedule")),
		Unsched:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unschedule")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "del")),
		ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:   key.NewBinding(key.WithKeys("-")),
		Earlier:   key.NewBinding(key.WithKeys("[")),
		Later:     key.NewBinding(key.WithKeys("]")),
		Prev:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "date")),
		Next:      key.NewBinding(key.WithKeys("l", "right")),
		View:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		Today:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "today")),
		Confirm:   key.NewBinding(key.WithKeys("y", "Y")),
		Cancel:    key.NewBinding(key.WithKeys("n", "N", "esc", "q")),
	}
}

// shortHelp lists the bindings shown in the status bar.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{
		k.AddTodo, k.AddDaily, k.SetTime, k.Move, k.Schedule, k.Unsched,
		k.Delete, k.ZoomIn, k.Prev, k.View, k.Pane, k.Quit,
	}
}
