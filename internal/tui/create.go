package tui

import (
	"fmt"
	"strings"

	"studentdb/internal/records"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// createModel reads a new file name. Characters outside the allowed
// alphabet never reach the input.
type createModel struct {
	input   textinput.Model
	warning string
}

func newCreateModel() createModel {
	ti := textinput.New()
	ti.Placeholder = "file name"
	ti.CharLimit = records.MaxNameLength
	ti.Width = records.MaxNameLength + 1
	ti.Focus()
	return createModel{input: ti}
}

// Value is the name typed so far.
func (c createModel) Value() string { return c.input.Value() }

func (c createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes {
		for _, r := range k.Runes {
			if !records.ValidAlphabet(r) {
				c.warning = fmt.Sprintf("%q is not allowed: use letters, digits, spaces and underscores", r)
				return c, nil
			}
		}
		if len([]rune(c.input.Value()))+len(k.Runes) > records.MaxNameLength {
			c.warning = fmt.Sprintf("Maximum name length is %d characters", records.MaxNameLength)
			return c, nil
		}
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type != tea.KeyEnter {
		c.warning = ""
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c createModel) View(bool) string {
	var b strings.Builder
	b.WriteString("  Enter the name of the new file:\n\n")
	b.WriteString("  " + c.input.View() + dimStyle.Render(records.FileSuffix) + "\n")
	if c.warning != "" {
		b.WriteString("\n" + warnStyle.Render("  "+c.warning) + "\n")
	}
	return b.String()
}
