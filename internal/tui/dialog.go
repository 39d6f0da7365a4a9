package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// dialog is a modal box with one or more buttons. While open it receives
// every key; the view underneath stays as it was.
type dialog struct {
	text    string
	options []string
	cursor  int
	isError bool
	// yesNo enables the y and n shortcuts.
	yesNo bool
	// onDone runs with the chosen button index, or -1 when dismissed with
	// esc.
	onDone func(m Model, choice int) (Model, tea.Cmd)
}

func notify(text string, isError bool) *dialog {
	return &dialog{
		text:    text,
		options: []string{"OK"},
		isError: isError,
	}
}

// confirm asks a yes/no question and runs onYes only on OK.
func confirm(text string, onYes func(m Model) (Model, tea.Cmd)) *dialog {
	return &dialog{
		text:    text,
		options: []string{"OK", "CANCEL"},
		yesNo:   true,
		onDone: func(m Model, choice int) (Model, tea.Cmd) {
			if choice != 0 {
				return m, nil
			}
			return onYes(m)
		},
	}
}

func choose(text string, options []string, onDone func(m Model, choice int) (Model, tea.Cmd)) *dialog {
	return &dialog{text: text, options: options, onDone: onDone}
}

// update moves the button cursor. It returns the chosen index once the
// dialog closes; done is false while it stays open.
func (d *dialog) update(msg tea.KeyMsg) (choice int, done bool) {
	switch msg.String() {
	case "left", "h", "shift+tab", "up", "k":
		d.cursor = (d.cursor + len(d.options) - 1) % len(d.options)
	case "right", "l", "tab", "down", "j":
		d.cursor = (d.cursor + 1) % len(d.options)
	case "enter", " ":
		return d.cursor, true
	case "y":
		if d.yesNo {
			return 0, true
		}
	case "n":
		if d.yesNo {
			return 1, true
		}
	case "esc":
		return -1, true
	}
	return 0, false
}

func (d *dialog) View(bool) string {
	buttons := make([]string, len(d.options))
	for i, o := range d.options {
		if i == d.cursor {
			buttons[i] = activeButtonStyle.Render(o)
		} else {
			buttons[i] = buttonStyle.Render(o)
		}
	}
	text := d.text
	if d.isError {
		text = errorStyle.Render(text)
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Width(min(50, max(lipgloss.Width(text), 20))).Align(lipgloss.Center).Render(text),
		"",
		strings.Join(buttons, "  "),
	)
	if d.isError {
		return errorDialogStyle.Render(body)
	}
	return dialogStyle.Render(body)
}
