package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Focus    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// helpFor returns the bindings shown in the help line of a view.
func (k keyMap) helpFor(state ViewState) []key.Binding {
	switch state {
	case ViewMenu, ViewSort:
		return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
	case ViewPicker:
		return []key.Binding{k.Up, k.Down, k.Select, k.Back}
	case ViewBrowse:
		return []key.Binding{k.Up, k.Down, k.Select, k.Focus, k.PageUp, k.PageDown, k.Back}
	case ViewEditor:
		return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Back}
	case ViewCreate, ViewForm:
		return []key.Binding{k.Select, k.Back}
	}
	return nil
}
