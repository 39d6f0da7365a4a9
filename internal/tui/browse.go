package tui

import (
	"strings"

	"studentdb/internal/student"

	"github.com/charmbracelet/lipgloss"
)

type browseMode int

const (
	browseView browseMode = iota
	browseTask
)

// browseModel shows the file slider next to a viewer holding either the
// raw text of the selected file or its individual task result.
type browseModel struct {
	mode   browseMode
	slider fileSlider
	box    textBox
	focus  int
}

func newBrowseModel(mode browseMode, files []string) browseModel {
	b := browseModel{
		mode:   mode,
		slider: newFileSlider(files),
	}
	b.box = newTextBox(b.boxTitle(""), nil)
	return b
}

func (b browseModel) boxTitle(file string) string {
	if file == "" {
		return "Select a file"
	}
	if b.mode == browseTask {
		return "No failing math or cs marks: " + file
	}
	return file
}

func (b *browseModel) show(file string, lines []string) {
	b.box = newTextBox(b.boxTitle(file), lines)
}

func (b *browseModel) panes() []renderable {
	return []renderable{&b.slider, &b.box}
}

// Up and Down move the slider cursor or scroll the viewer, whichever has
// focus.
func (b *browseModel) Up() {
	if b.focus == 1 {
		b.box.ScrollUp()
		return
	}
	b.slider.Up()
}

func (b *browseModel) Down() {
	if b.focus == 1 {
		b.box.ScrollDown()
		return
	}
	b.slider.Down()
}

// target maps an x coordinate to the pane under it.
func (b *browseModel) target(x int) interface {
	scrollable
	clickable
} {
	if x < lipgloss.Width(b.slider.View(false)) {
		return &b.slider
	}
	return &b.box
}

func (b *browseModel) View(bool) string {
	panes := b.panes()
	views := make([]string, 0, len(panes)*2)
	for i, p := range panes {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, p.View(i == b.focus))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// encodeLines renders students as file text, one slice element per line.
func encodeLines(students []student.Student) []string {
	text := strings.TrimSuffix(student.EncodeAll(students), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

type pickPurpose int

const (
	pickAdd pickPurpose = iota
	pickEdit
	pickRemove
	pickSort
)

func (p pickPurpose) title() string {
	switch p {
	case pickAdd:
		return "Choose the file to add a student to"
	case pickEdit:
		return "Choose the file to edit"
	case pickRemove:
		return "Choose the file to remove"
	case pickSort:
		return "Choose the file to sort"
	}
	return ""
}

// pickerModel is a file slider whose selection starts another view.
type pickerModel struct {
	purpose pickPurpose
	slider  fileSlider
}

func newPickerModel(purpose pickPurpose, files []string) pickerModel {
	return pickerModel{purpose: purpose, slider: newFileSlider(files)}
}

func (p *pickerModel) View(focused bool) string {
	return "  " + p.purpose.title() + "\n\n" + p.slider.View(focused)
}

// pickerTitleRows is the height of the title above the slider.
const pickerTitleRows = 2

func (p *pickerModel) ScrollUp() bool   { return p.slider.ScrollUp() }
func (p *pickerModel) ScrollDown() bool { return p.slider.ScrollDown() }

func (p *pickerModel) Click(row int) bool {
	return p.slider.Click(row - pickerTitleRows)
}
