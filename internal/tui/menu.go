package tui

import (
	"strings"

	"studentdb/internal/student"
)

type menuItem int

const (
	itemCreate menuItem = iota
	itemView
	itemAdd
	itemTask
	itemEdit
	itemRemove
	itemSort
	itemQuit
)

var mainMenuItems = []string{
	"CREATE FILE",
	"VIEW FILE",
	"ADD STUDENT",
	"INDIVIDUAL TASK",
	"EDIT FILE",
	"REMOVE FILE",
	"SORT FILE",
	"QUIT",
}

func sortMenuItems() []string {
	items := make([]string, 0, len(student.SortFields)+1)
	for _, f := range student.SortFields {
		items = append(items, "BY "+strings.ToUpper(sortLabel(f)))
	}
	return append(items, "BACK")
}

func sortLabel(f student.SortField) string {
	switch f {
	case student.BySurname:
		return "surname"
	case student.ByGPA:
		return "GPA"
	case student.ByPhysicsAvg:
		return "physics average"
	case student.ByMathAvg:
		return "math average"
	case student.ByCSAvg:
		return "cs average"
	}
	return f.String()
}

// menuModel is a vertical list of buttons, one per row.
type menuModel struct {
	items  []string
	cursor int
	chosen bool
}

func newMenu(items []string) menuModel {
	return menuModel{items: items}
}

func (m *menuModel) Up() {
	m.cursor = (m.cursor + len(m.items) - 1) % len(m.items)
}

func (m *menuModel) Down() {
	m.cursor = (m.cursor + 1) % len(m.items)
}

// Click activates the item on row.
func (m *menuModel) Click(row int) bool {
	if row < 0 || row >= len(m.items) {
		return false
	}
	m.cursor = row
	m.chosen = true
	return true
}

func (m *menuModel) Chosen() bool {
	c := m.chosen
	m.chosen = false
	return c
}

func (m *menuModel) View(bool) string {
	var b strings.Builder
	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("  ▸ " + item))
		} else {
			b.WriteString(listItemStyle.Render("    " + item))
		}
		if i < len(m.items)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
