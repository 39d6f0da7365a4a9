package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Capabilities a view element may have. Views compose them freely: the
// file slider renders, scrolls and takes clicks, the dialog only renders.

type renderable interface {
	View(focused bool) string
}

type scrollable interface {
	ScrollUp() bool
	ScrollDown() bool
}

// clickable handles a left click at row, counted from the element's top
// border. It reports whether the click hit something.
type clickable interface {
	Click(row int) bool
}

// Rows of a framed list: border, title, up arrow, content..., down arrow, border.
const (
	frameUpRow    = 2
	frameFirstRow = 3
)

// fit pads or truncates s to exactly w columns.
func fit(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w])
	}
	return s + strings.Repeat(" ", w-len(r))
}

func arrow(glyph string, active bool, width int) string {
	line := fit(strings.Repeat(" ", (width-1)/2)+glyph, width)
	if active {
		return arrowStyle.Render(line)
	}
	return dimStyle.Render(line)
}

// frame draws the common scrollable box: title, up arrow, rows, down arrow.
func frame(title string, rows []string, width int, canUp, canDown, focused bool) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render(fit(title, width)))
	b.WriteByte('\n')
	b.WriteString(arrow("▲", canUp, width))
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	b.WriteString(arrow("▼", canDown, width))

	style := boxStyle
	if focused {
		style = focusedBoxStyle
	}
	return style.Render(b.String())
}

// scrollClick handles clicks on a frame's arrows. rows is the number of
// content rows.
func scrollClick(s scrollable, row, rows int) bool {
	switch row {
	case frameUpRow:
		s.ScrollUp()
		return true
	case frameFirstRow + rows:
		s.ScrollDown()
		return true
	}
	return false
}

func centered(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
