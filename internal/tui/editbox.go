package tui

import (
	"slices"

	"studentdb/internal/window"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	editRows  = 21
	editWidth = 60
)

// editBox is a plain text editor over the raw lines of a file. Lines never
// grow past editWidth columns.
type editBox struct {
	file    string
	lines   [][]rune
	win     *window.Window
	row     int
	col     int
	changed bool
}

func newEditBox(file string, lines []string) editBox {
	e := editBox{file: file}
	for _, l := range lines {
		r := []rune(l)
		if len(r) > editWidth {
			r = r[:editWidth]
		}
		e.lines = append(e.lines, r)
	}
	if len(e.lines) == 0 {
		e.lines = [][]rune{nil}
	}
	e.win = window.New(len(e.lines), editRows)
	return e
}

// Lines returns the edited text.
func (e editBox) Lines() []string {
	out := make([]string, len(e.lines))
	for i, l := range e.lines {
		out[i] = string(l)
	}
	return out
}

func (e *editBox) ScrollUp() bool {
	if !e.win.ScrollUp() {
		return false
	}
	e.row = min(e.row, e.win.First()+e.win.Size()-1)
	e.clampCol()
	return true
}

func (e *editBox) ScrollDown() bool {
	if !e.win.ScrollDown() {
		return false
	}
	e.row = max(e.row, e.win.First())
	e.clampCol()
	return true
}

// Click places the cursor on the clicked line.
func (e *editBox) Click(row int) bool {
	if scrollClick(e, row, editRows) {
		return true
	}
	idx, ok := e.win.At(row - frameFirstRow)
	if !ok {
		return false
	}
	e.row = idx
	e.clampCol()
	return true
}

func (e *editBox) clampCol() {
	e.col = max(0, min(e.col, len(e.lines[e.row])))
}

func (e *editBox) move(dRow int) {
	e.row = max(0, min(e.row+dRow, len(e.lines)-1))
	e.win.Reveal(e.row)
	e.clampCol()
}

// Update applies an editing key. It reports whether the key was consumed.
func (e *editBox) Update(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		e.move(-1)
	case tea.KeyDown:
		e.move(1)
	case tea.KeyPgUp:
		e.move(-(editRows - 1))
	case tea.KeyPgDown:
		e.move(editRows - 1)
	case tea.KeyLeft:
		if e.col > 0 {
			e.col--
		} else if e.row > 0 {
			e.move(-1)
			e.col = len(e.lines[e.row])
		}
	case tea.KeyRight:
		if e.col < len(e.lines[e.row]) {
			e.col++
		} else if e.row < len(e.lines)-1 {
			e.move(1)
			e.col = 0
		}
	case tea.KeyHome:
		e.col = 0
	case tea.KeyEnd:
		e.col = len(e.lines[e.row])
	case tea.KeyBackspace:
		e.backspace()
	case tea.KeyDelete:
		e.deleteForward()
	case tea.KeyEnter:
		e.splitLine()
	case tea.KeySpace:
		e.insert(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			e.insert(r)
		}
	default:
		return false
	}
	return true
}

func (e *editBox) insert(r rune) {
	line := e.lines[e.row]
	if len(line) >= editWidth || r < ' ' {
		return
	}
	e.lines[e.row] = slices.Insert(line, e.col, r)
	e.col++
	e.changed = true
}

func (e *editBox) backspace() {
	if e.col > 0 {
		e.lines[e.row] = slices.Delete(e.lines[e.row], e.col-1, e.col)
		e.col--
		e.changed = true
		return
	}
	if e.row == 0 {
		return
	}
	prev := e.lines[e.row-1]
	cur := e.lines[e.row]
	if len(prev)+len(cur) > editWidth {
		return
	}
	e.lines[e.row-1] = append(prev, cur...)
	e.lines = slices.Delete(e.lines, e.row, e.row+1)
	e.win.Resize(len(e.lines))
	e.move(-1)
	e.col = len(prev)
	e.changed = true
}

func (e *editBox) deleteForward() {
	line := e.lines[e.row]
	if e.col < len(line) {
		e.lines[e.row] = slices.Delete(line, e.col, e.col+1)
		e.changed = true
		return
	}
	if e.row == len(e.lines)-1 || len(line)+len(e.lines[e.row+1]) > editWidth {
		return
	}
	e.lines[e.row] = append(line, e.lines[e.row+1]...)
	e.lines = slices.Delete(e.lines, e.row+1, e.row+2)
	e.win.Resize(len(e.lines))
	e.changed = true
}

func (e *editBox) splitLine() {
	line := e.lines[e.row]
	head := slices.Clone(line[:e.col])
	tail := slices.Clone(line[e.col:])
	e.lines[e.row] = head
	e.lines = slices.Insert(e.lines, e.row+1, tail)
	e.win.Resize(len(e.lines))
	e.move(1)
	e.col = 0
	e.changed = true
}

func (e *editBox) View(focused bool) string {
	rows := make([]string, editRows)
	for slot := range rows {
		idx, ok := e.win.At(slot)
		if !ok {
			rows[slot] = fit("", editWidth)
			continue
		}
		line := fit(string(e.lines[idx]), editWidth)
		if idx != e.row || !focused {
			rows[slot] = listItemStyle.Render(line)
			continue
		}
		r := []rune(line)
		col := min(e.col, editWidth-1)
		rows[slot] = listItemStyle.Render(string(r[:col])) +
			cursorStyle.Render(string(r[col])) +
			listItemStyle.Render(string(r[col+1:]))
	}
	title := "EDIT " + e.file
	if e.changed {
		title += " *"
	}
	return frame(title, rows, editWidth, e.win.CanScrollUp(), e.win.CanScrollDown(), focused)
}
