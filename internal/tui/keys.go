package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Tab     key.Binding
	Enter   key.Binding
	Add     key.Binding
	Edit    key.Binding
	Tag     key.Binding
	Pin     key.Binding
	Star    key.Binding
	Color   key.Binding
	Delete  key.Binding
	Restore key.Binding
	Empty   key.Binding
	Search  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left pane")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right pane")),
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add note")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
	Tag:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new tag")),
	Pin:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "toggle pin")),
	Star:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "toggle star")),
	Color:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle color")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "trash/purge")),
	Restore: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore")),
	Empty:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "empty trash")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
