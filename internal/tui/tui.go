package tui

import (
	"errors"
	"fmt"

	"studentdb/internal/records"
	"studentdb/internal/store"
	"studentdb/internal/student"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewState represents which screen is active.
type ViewState int

const (
	ViewMenu ViewState = iota
	ViewCreate
	ViewPicker
	ViewBrowse
	ViewForm
	ViewEditor
	ViewSort
)

// Config holds configuration passed from the CLI layer.
type Config struct {
	Manager *records.Manager
}

// Model is the top-level Bubble Tea model.
type Model struct {
	state  ViewState
	mgr    *records.Manager
	width  int
	height int
	keys   keyMap
	help   help.Model

	menu      menuModel
	sortMenu  menuModel
	sortField student.SortField
	create    createModel
	picker    pickerModel
	browse    browseModel
	form      formModel
	editor    editBox
	dialog    *dialog
	err       error
}

// New creates a new TUI model on top of an opened manager.
func New(cfg Config) Model {
	return Model{
		state: ViewMenu,
		mgr:   cfg.Manager,
		keys:  newKeyMap(),
		help:  help.New(),
		menu:  newMenu(mainMenuItems),
	}
}

// Err is the fatal error that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// Global quit.
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		if m.dialog != nil {
			return m, nil
		}
		return m.updateMouse(msg)
	}

	switch m.state {
	case ViewCreate:
		var cmd tea.Cmd
		m.create, cmd = m.create.Update(msg)
		return m, cmd
	case ViewForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choice, done := m.dialog.update(msg)
	if !done {
		return m, nil
	}
	d := m.dialog
	m.dialog = nil
	if d.onDone == nil {
		return m, nil
	}
	return d.onDone(m, choice)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case ViewMenu:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.menu.Up()
		case key.Matches(msg, m.keys.Down):
			m.menu.Down()
		case key.Matches(msg, m.keys.Select):
			return m.activateMenu()
		case key.Matches(msg, m.keys.Back):
			return m.askQuit()
		}

	case ViewSort:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.sortMenu.Up()
		case key.Matches(msg, m.keys.Down):
			m.sortMenu.Down()
		case key.Matches(msg, m.keys.Select):
			return m.activateSortMenu()
		case key.Matches(msg, m.keys.Back):
			m.state = ViewMenu
		}

	case ViewCreate:
		switch msg.Type {
		case tea.KeyEsc:
			m.state = ViewMenu
			return m, nil
		case tea.KeyEnter:
			return m.createFile()
		}
		var cmd tea.Cmd
		m.create, cmd = m.create.Update(msg)
		return m, cmd

	case ViewPicker:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.picker.slider.Up()
		case key.Matches(msg, m.keys.Down):
			m.picker.slider.Down()
		case key.Matches(msg, m.keys.Select):
			return m.pick()
		case key.Matches(msg, m.keys.Back):
			if m.picker.purpose == pickSort {
				m.state = ViewSort
			} else {
				m.state = ViewMenu
			}
		}

	case ViewBrowse:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.state = ViewMenu
		case key.Matches(msg, m.keys.Focus):
			m.browse.focus = 1 - m.browse.focus
		case key.Matches(msg, m.keys.PageUp):
			m.browse.box.PageUp()
		case key.Matches(msg, m.keys.PageDown):
			m.browse.box.PageDown()
		case key.Matches(msg, m.keys.Up):
			m.browse.Up()
		case key.Matches(msg, m.keys.Down):
			m.browse.Down()
		case key.Matches(msg, m.keys.Select):
			return m.loadBrowse()
		}

	case ViewForm:
		if msg.Type == tea.KeyEsc {
			m.state = ViewPicker
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		if m.form.Done() {
			return m.addStudent()
		}
		return m, cmd

	case ViewEditor:
		if msg.Type == tea.KeyEsc {
			return m.leaveEditor()
		}
		m.editor.Update(msg)
	}
	return m, nil
}

// mouseTarget returns the element under (x, y) and y relative to its top.
func (m *Model) mouseTarget(x, y int) (interface {
	scrollable
	clickable
}, int) {
	row := y - lipgloss.Height(m.header())
	switch m.state {
	case ViewPicker:
		return &m.picker, row
	case ViewBrowse:
		return m.browse.target(x), row
	case ViewEditor:
		return &m.editor, row
	}
	return nil, row
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	target, row := m.mouseTarget(msg.X, msg.Y)

	if m.state == ViewMenu || m.state == ViewSort {
		menu := &m.menu
		if m.state == ViewSort {
			menu = &m.sortMenu
		}
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			menu.Up()
		case msg.Button == tea.MouseButtonWheelDown:
			menu.Down()
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if menu.Click(row) && menu.Chosen() {
				if m.state == ViewSort {
					return m.activateSortMenu()
				}
				return m.activateMenu()
			}
		}
		return m, nil
	}

	if target == nil {
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		target.ScrollUp()
	case msg.Button == tea.MouseButtonWheelDown:
		target.ScrollDown()
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		target.Click(row)
		switch m.state {
		case ViewPicker:
			if m.picker.slider.Chosen() {
				return m.pick()
			}
		case ViewBrowse:
			if target == &m.browse.slider {
				m.browse.focus = 0
			} else {
				m.browse.focus = 1
			}
			if m.browse.slider.Chosen() {
				return m.loadBrowse()
			}
		}
	}
	return m, nil
}

func (m Model) activateMenu() (tea.Model, tea.Cmd) {
	switch menuItem(m.menu.cursor) {
	case itemCreate:
		m.create = newCreateModel()
		m.state = ViewCreate
		return m, nil
	case itemView:
		m.browse = newBrowseModel(browseView, m.mgr.Files())
		m.browse.slider.Select(m.mgr.Active())
		m.state = ViewBrowse
	case itemTask:
		m.browse = newBrowseModel(browseTask, m.mgr.Files())
		m.browse.slider.Select(m.mgr.Active())
		m.state = ViewBrowse
	case itemAdd:
		m.openPicker(pickAdd)
	case itemEdit:
		m.openPicker(pickEdit)
	case itemRemove:
		m.openPicker(pickRemove)
	case itemSort:
		m.sortMenu = newMenu(sortMenuItems())
		m.state = ViewSort
	case itemQuit:
		return m.askQuit()
	}
	return m, nil
}

func (m Model) activateSortMenu() (tea.Model, tea.Cmd) {
	if m.sortMenu.cursor >= len(student.SortFields) {
		m.state = ViewMenu
		return m, nil
	}
	m.sortField = student.SortFields[m.sortMenu.cursor]
	m.openPicker(pickSort)
	return m, nil
}

func (m *Model) openPicker(p pickPurpose) {
	m.picker = newPickerModel(p, m.mgr.Files())
	m.picker.slider.Select(m.mgr.Active())
	m.state = ViewPicker
}

func (m Model) askQuit() (tea.Model, tea.Cmd) {
	m.dialog = confirm("Do you want to exit?", func(m Model) (Model, tea.Cmd) {
		return m.quitModel()
	})
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	return m.quitModel()
}

func (m Model) quitModel() (Model, tea.Cmd) {
	if err := m.mgr.Save(); err != nil {
		m.err = err
	}
	return m, tea.Quit
}

// report shows err in a notification. Fatal errors end the program.
func (m Model) report(err error) (Model, tea.Cmd) {
	if records.IsFatal(err) {
		m.err = err
		return m, tea.Quit
	}
	m.dialog = notify(records.Message(err), true)
	return m, nil
}

func (m Model) createFile() (tea.Model, tea.Cmd) {
	name, err := m.mgr.CreateFile(m.create.Value())
	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			m.create = newCreateModel()
		}
		return m.report(err)
	}
	m.state = ViewMenu
	m.dialog = notify(fmt.Sprintf("File %q created", name), false)
	return m, nil
}

func (m Model) pick() (tea.Model, tea.Cmd) {
	file, ok := m.picker.slider.Selected()
	if !ok {
		return m, nil
	}
	switch m.picker.purpose {
	case pickAdd:
		m.form = newFormModel(file)
		m.state = ViewForm
		return m, nil

	case pickEdit:
		lines, err := m.mgr.Lines(file)
		if err != nil {
			return m.report(err)
		}
		m.editor = newEditBox(file, lines)
		m.state = ViewEditor
		return m, nil

	case pickRemove:
		m.dialog = confirm(fmt.Sprintf("Delete the file %q?", file), func(m Model) (Model, tea.Cmd) {
			if err := m.mgr.RemoveFile(file); err != nil {
				return m.report(err)
			}
			m.picker.slider.SetFiles(m.mgr.Files())
			m.dialog = notify("File successfully deleted", false)
			return m, nil
		})
		return m, nil

	case pickSort:
		field := m.sortField
		m.dialog = choose("Sort "+file+" by "+sortLabel(field)+":", []string{"ASCENDING", "DESCENDING"},
			func(m Model, choice int) (Model, tea.Cmd) {
				if choice < 0 {
					return m, nil
				}
				dir := student.Ascending
				if choice == 1 {
					dir = student.Descending
				}
				sorted, err := m.mgr.SortFile(file, field, dir)
				if err != nil {
					return m.report(err)
				}
				m.dialog = notify(fmt.Sprintf("Sorted %d students by %s", len(sorted), sortLabel(field)), false)
				return m, nil
			})
		return m, nil
	}
	return m, nil
}

func (m Model) loadBrowse() (tea.Model, tea.Cmd) {
	file, ok := m.browse.slider.Selected()
	if !ok {
		return m, nil
	}
	var lines []string
	switch m.browse.mode {
	case browseView:
		l, err := m.mgr.Lines(file)
		if err != nil {
			return m.report(err)
		}
		lines = l
	case browseTask:
		students, err := m.mgr.IndividualTask(file)
		if err != nil {
			return m.report(err)
		}
		lines = encodeLines(students)
	}
	m.browse.show(file, lines)
	m.browse.focus = 1
	return m, nil
}

func (m Model) addStudent() (tea.Model, tea.Cmd) {
	file := m.form.file
	s := m.form.Student()
	m.state = ViewPicker
	if err := m.mgr.AddStudent(file, s); err != nil {
		return m.report(err)
	}
	m.dialog = notify(fmt.Sprintf("%s added to %s", s.Surname, file), false)
	return m, nil
}

func (m Model) leaveEditor() (tea.Model, tea.Cmd) {
	if !m.editor.changed {
		m.state = ViewPicker
		return m, nil
	}
	m.dialog = choose("Save the changes?", []string{"YES", "NO", "CANCEL"}, func(m Model, choice int) (Model, tea.Cmd) {
		switch choice {
		case 0:
			if err := m.mgr.SaveLines(m.editor.file, m.editor.Lines()); err != nil {
				return m.report(err)
			}
			m.state = ViewPicker
			m.dialog = notify("Changes saved", false)
		case 1:
			m.state = ViewPicker
		}
		return m, nil
	})
	return m, nil
}

func (m Model) header() string {
	s := "\n" + titleStyle.Render("  ◆ Student records") + "\n"
	info := "  " + m.mgr.StorageDir()
	if a := m.mgr.Active(); a != "" {
		info += "  ·  active: " + a
	}
	return s + subtitleStyle.Render(info) + "\n"
}

func (m Model) body() string {
	switch m.state {
	case ViewMenu:
		return m.menu.View(true)
	case ViewSort:
		return m.sortMenu.View(true)
	case ViewCreate:
		return m.create.View(true)
	case ViewPicker:
		return m.picker.View(true)
	case ViewBrowse:
		return m.browse.View(true)
	case ViewForm:
		return m.form.View(true)
	case ViewEditor:
		return m.editor.View(true)
	}
	return ""
}

func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	header := m.header()
	if m.dialog != nil {
		h := max(0, m.height-lipgloss.Height(header))
		return header + "\n" + centered(m.width, h, m.dialog.View(true))
	}
	footer := statusBarStyle.Render(m.help.ShortHelpView(m.keys.helpFor(m.state)))
	return header + "\n" + m.body() + "\n\n" + footer
}

// Run starts the TUI program. It returns the error that forced it to stop,
// if any.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
