package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings shared by the views
type KeyMap struct {
	Quit           key.Binding
	Back           key.Binding
	Enter          key.Binding
	Tab            key.Binding
	ShiftTab       key.Binding
	Save           key.Binding
	New            key.Binding
	Edit           key.Binding
	Delete         key.Binding
	Complete       key.Binding
	Search         key.Binding
	ToggleFinished key.Binding
	Help           key.Binding
	PrevKind       key.Binding
	NextKind       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "del"),
		),
		Complete: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "done"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ToggleFinished: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "hide done"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		PrevKind: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "type"),
		),
		NextKind: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "type"),
		),
	}
}
