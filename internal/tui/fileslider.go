package tui

import (
	"fmt"

	"studentdb/internal/window"
)

const (
	sliderRows  = 5
	sliderWidth = 20
)

// fileSlider lists the managed files five at a time with a highlighted
// cursor that drags the window along.
type fileSlider struct {
	files  []string
	win    *window.Window
	cursor int
	chosen bool
}

func newFileSlider(files []string) fileSlider {
	return fileSlider{
		files: files,
		win:   window.New(len(files), sliderRows),
	}
}

// SetFiles replaces the list after a create or delete, keeping the cursor
// in range.
func (s *fileSlider) SetFiles(files []string) {
	s.files = files
	s.win.Resize(len(files))
	s.cursor = max(0, min(s.cursor, len(files)-1))
	s.win.Reveal(s.cursor)
}

// Selected is the file under the cursor.
func (s fileSlider) Selected() (string, bool) {
	if s.cursor < 0 || s.cursor >= len(s.files) {
		return "", false
	}
	return s.files[s.cursor], true
}

// Select moves the cursor to name if present.
func (s *fileSlider) Select(name string) {
	for i, f := range s.files {
		if f == name {
			s.cursor = i
			s.win.Reveal(i)
			return
		}
	}
}

func (s *fileSlider) Up() {
	if s.cursor > 0 {
		s.cursor--
		s.win.Reveal(s.cursor)
	}
}

func (s *fileSlider) Down() {
	if s.cursor < len(s.files)-1 {
		s.cursor++
		s.win.Reveal(s.cursor)
	}
}

// ScrollUp moves the window, dragging the cursor if it would fall out.
func (s *fileSlider) ScrollUp() bool {
	if !s.win.ScrollUp() {
		return false
	}
	s.cursor = min(s.cursor, s.win.First()+s.win.Size()-1)
	return true
}

func (s *fileSlider) ScrollDown() bool {
	if !s.win.ScrollDown() {
		return false
	}
	s.cursor = max(s.cursor, s.win.First())
	return true
}

// Click selects the entry under row. Taking the selection is signalled via
// Chosen so the owning view can act on it.
func (s *fileSlider) Click(row int) bool {
	if scrollClick(s, row, sliderRows) {
		return true
	}
	idx, ok := s.win.At(row - frameFirstRow)
	if !ok {
		return false
	}
	s.cursor = idx
	s.chosen = true
	return true
}

// Chosen reports and clears a pending click selection.
func (s *fileSlider) Chosen() bool {
	c := s.chosen
	s.chosen = false
	return c
}

func (s *fileSlider) View(focused bool) string {
	rows := make([]string, sliderRows)
	for slot := range rows {
		idx, ok := s.win.At(slot)
		switch {
		case !ok:
			rows[slot] = fit("", sliderWidth)
		case idx == s.cursor && focused:
			rows[slot] = selectedStyle.Render(fit("▸ "+s.files[idx], sliderWidth))
		case idx == s.cursor:
			rows[slot] = listItemStyle.Render(fit("› "+s.files[idx], sliderWidth))
		default:
			rows[slot] = listItemStyle.Render(fit("  "+s.files[idx], sliderWidth))
		}
	}
	if len(s.files) == 0 {
		rows[0] = dimStyle.Render(fit("  (no files)", sliderWidth))
	}
	return frame(fmt.Sprintf("FILES (%d)", len(s.files)), rows, sliderWidth, s.win.CanScrollUp(), s.win.CanScrollDown(), focused)
}
