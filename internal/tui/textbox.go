package tui

import "studentdb/internal/window"

const (
	textBoxRows  = 13
	textBoxWidth = 47
)

// textBox is a read-only scrolling view of lines.
type textBox struct {
	title string
	lines []string
	win   *window.Window
}

func newTextBox(title string, lines []string) textBox {
	return textBox{
		title: title,
		lines: lines,
		win:   window.New(len(lines), textBoxRows),
	}
}

func (t *textBox) ScrollUp() bool   { return t.win.ScrollUp() }
func (t *textBox) ScrollDown() bool { return t.win.ScrollDown() }

func (t *textBox) PageUp() {
	for range textBoxRows - 1 {
		t.win.ScrollUp()
	}
}

func (t *textBox) PageDown() {
	for range textBoxRows - 1 {
		t.win.ScrollDown()
	}
}

func (t *textBox) Click(row int) bool {
	return scrollClick(t, row, textBoxRows)
}

func (t *textBox) View(focused bool) string {
	rows := make([]string, textBoxRows)
	visible := window.Visible(t.win, t.lines)
	for i := range rows {
		line := ""
		if i < len(visible) {
			line = visible[i]
		}
		rows[i] = listItemStyle.Render(fit(line, textBoxWidth))
	}
	if len(t.lines) == 0 {
		rows[0] = dimStyle.Render(fit("(empty)", textBoxWidth))
	}
	return frame(t.title, rows, textBoxWidth, t.win.CanScrollUp(), t.win.CanScrollDown(), focused)
}
