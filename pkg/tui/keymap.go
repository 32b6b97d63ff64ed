package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings for both views. Canvas-only bindings are
// inert in the list view and vice versa.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Back    key.Binding
	Quit    key.Binding
	New     key.Binding
	Refresh key.Binding

	AddTrigger   key.Binding
	AddCondition key.Binding
	AddAction    key.Binding
	AddDelay     key.Binding
	Cycle        key.Binding
	LinkEdge     key.Binding
	Configure    key.Binding
	Delete       key.Binding
	Save         key.Binding
	Test         key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/confirm")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new workflow")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),

		AddTrigger:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "add trigger")),
		AddCondition: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "add condition")),
		AddAction:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "add action")),
		AddDelay:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "add delay")),
		Cycle:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next node")),
		LinkEdge:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "link from node")),
		Configure:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "configure node")),
		Delete:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete node")),
		Save:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Test:         key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "test run")),
	}
}

func (k KeyMap) listHelp() string {
	return "↑/↓ move | enter open | n new | r refresh | q quit"
}

func (k KeyMap) canvasHelp() string {
	return "tab select | ←↑↓→ move | 1-4 add | e link | c configure | x delete | s save | t test | esc back"
}
