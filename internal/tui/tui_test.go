package tui

import (
	"path/filepath"
	"testing"

	"studentdb/internal/records"
	"studentdb/internal/student"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *records.Manager) {
	t.Helper()
	mgr, err := records.New(records.Config{StorageDir: filepath.Join(t.TempDir(), "storage")})
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return New(Config{Manager: mgr}), mgr
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"tab":       tea.KeyTab,
	"backspace": tea.KeyBackspace,
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// press sends named keys, or the text itself for anything else.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		if kt, ok := namedKeys[k]; ok {
			msg = tea.KeyMsg{Type: kt}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = send(t, m, msg)
	}
	return m
}

func click(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	m, _ = send(t, m, tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	return m
}

func wheelDown(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: 10, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	return m
}

func addStudent(t *testing.T, mgr *records.Manager, file, surname string, physics, maths, cs []uint16) {
	t.Helper()
	require.NoError(t, mgr.AddStudent(file, student.New(surname, 7, physics, maths, cs)))
}

func TestCreateFile(t *testing.T) {
	m, mgr := newTestModel(t)

	m = press(t, m, "enter")
	require.Equal(t, ViewCreate, m.state)

	m = press(t, m, "group 1", "enter")
	require.NotNil(t, m.dialog)
	assert.False(t, m.dialog.isError)
	assert.Equal(t, []string{"group 1.txt"}, mgr.Files())
	assert.Equal(t, ViewMenu, m.state)

	m = press(t, m, "enter")
	assert.Nil(t, m.dialog)
}

func TestCreateFile_Duplicate(t *testing.T) {
	m, mgr := newTestModel(t)
	_, err := mgr.CreateFile("g")
	require.NoError(t, err)

	m = press(t, m, "enter", "g", "enter")
	require.NotNil(t, m.dialog)
	assert.True(t, m.dialog.isError)
	assert.Contains(t, m.dialog.text, "already exists")
	assert.Equal(t, ViewCreate, m.state)
	assert.Empty(t, m.create.Value())
}

func TestCreateFile_FiltersInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "enter", "ab", "/", ".")
	assert.Equal(t, "ab", m.create.Value())
	assert.Contains(t, m.create.warning, "not allowed")

	m = press(t, m, "cdefghijklmn")
	assert.Equal(t, "abcdefghijklmn", m.create.Value())
	m = press(t, m, "o")
	assert.Equal(t, "abcdefghijklmn", m.create.Value())
	assert.Contains(t, m.create.warning, "Maximum name length")
}

func TestAddStudentForm(t *testing.T) {
	m, mgr := newTestModel(t)
	file, err := mgr.CreateFile("g")
	require.NoError(t, err)

	m = press(t, m, "down", "down", "enter")
	require.Equal(t, ViewPicker, m.state)
	m = press(t, m, "enter")
	require.Equal(t, ViewForm, m.state)

	m = press(t, m, "ivanov", "enter", "x", "enter")
	assert.Contains(t, m.form.warning, "group number")
	m = press(t, m, "backspace", "101", "enter")
	m = press(t, m, "0", "enter")
	assert.Contains(t, m.form.warning, "from 1")
	m = press(t, m, "backspace", "1", "enter", "5", "enter")
	m = press(t, m, "2", "enter", "4", "enter", "5", "enter")
	m = press(t, m, "1", "enter", "3", "enter")

	require.NotNil(t, m.dialog)
	assert.False(t, m.dialog.isError)
	assert.Equal(t, ViewPicker, m.state)

	students, failures, err := mgr.Students(file)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, students, 1)
	got := students[0]
	assert.Equal(t, "ivanov", got.Surname)
	assert.Equal(t, uint64(101), got.Group)
	assert.Equal(t, []uint16{5}, got.PhysicsScores)
	assert.Equal(t, []uint16{4, 5}, got.MathScores)
	assert.Equal(t, []uint16{3}, got.CSScores)
}

func TestViewAndTask(t *testing.T) {
	m, mgr := newTestModel(t)
	file, err := mgr.CreateFile("g")
	require.NoError(t, err)
	addStudent(t, mgr, file, "pass", []uint16{2}, []uint16{4}, []uint16{5})
	addStudent(t, mgr, file, "fail", []uint16{5}, []uint16{3}, []uint16{5})

	m = press(t, m, "down", "enter")
	require.Equal(t, ViewBrowse, m.state)
	m = press(t, m, "enter")
	assert.Len(t, m.browse.box.lines, 2*student.RecordLines)
	assert.Equal(t, 1, m.browse.focus)

	m = press(t, m, "esc", "down", "down", "enter")
	require.Equal(t, ViewBrowse, m.state)
	require.Equal(t, browseTask, m.browse.mode)
	m = press(t, m, "enter")
	require.Len(t, m.browse.box.lines, student.RecordLines)
	assert.Equal(t, student.LabelName+" pass", m.browse.box.lines[0])
}

func TestBrowse_ArrowsFollowFocus(t *testing.T) {
	m, mgr := newTestModel(t)
	_, err := mgr.CreateFile("a")
	require.NoError(t, err)
	file, err := mgr.CreateFile("b")
	require.NoError(t, err)
	addStudent(t, mgr, file, "x", []uint16{5}, []uint16{5}, []uint16{5})
	addStudent(t, mgr, file, "y", []uint16{4}, []uint16{4}, []uint16{4})

	m = press(t, m, "down", "enter")
	require.Equal(t, ViewBrowse, m.state)
	m = press(t, m, "down", "enter")
	require.Equal(t, 1, m.browse.focus)
	assert.Equal(t, 1, m.browse.slider.cursor)

	m = press(t, m, "down")
	assert.Equal(t, 1, m.browse.box.win.First())
	assert.Equal(t, 1, m.browse.slider.cursor)

	m = press(t, m, "tab", "up")
	assert.Equal(t, 0, m.browse.focus)
	assert.Equal(t, 0, m.browse.slider.cursor)
	assert.Equal(t, 1, m.browse.box.win.First())
}

func TestEditAndSave(t *testing.T) {
	m, mgr := newTestModel(t)
	file, err := mgr.CreateFile("notes")
	require.NoError(t, err)
	require.NoError(t, mgr.SaveLines(file, []string{"one", "two"}))

	m = press(t, m, "down", "down", "down", "down", "enter")
	require.Equal(t, ViewPicker, m.state)
	m = press(t, m, "enter")
	require.Equal(t, ViewEditor, m.state)

	m = press(t, m, "x", "down", "backspace", "esc")
	require.NotNil(t, m.dialog)
	m = press(t, m, "enter")
	require.NotNil(t, m.dialog)
	assert.Equal(t, ViewPicker, m.state)

	lines, err := mgr.Lines(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"xone", "wo"}, lines)
}

func TestEdit_DiscardChanges(t *testing.T) {
	m, mgr := newTestModel(t)
	file, err := mgr.CreateFile("notes")
	require.NoError(t, err)
	require.NoError(t, mgr.SaveLines(file, []string{"keep"}))

	m = press(t, m, "down", "down", "down", "down", "enter", "enter", "zz", "esc", "right", "enter")
	assert.Nil(t, m.dialog)
	assert.Equal(t, ViewPicker, m.state)

	lines, err := mgr.Lines(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, lines)
}

func TestRemoveFile(t *testing.T) {
	m, mgr := newTestModel(t)
	_, err := mgr.CreateFile("a")
	require.NoError(t, err)
	_, err = mgr.CreateFile("b")
	require.NoError(t, err)

	m = press(t, m, "down", "down", "down", "down", "down", "enter")
	require.Equal(t, ViewPicker, m.state)
	m = press(t, m, "down", "enter")
	require.NotNil(t, m.dialog)
	assert.Contains(t, m.dialog.text, "b.txt")

	m = press(t, m, "enter")
	assert.Equal(t, []string{"a.txt"}, mgr.Files())
	assert.Equal(t, []string{"a.txt"}, m.picker.slider.files)
	require.NotNil(t, m.dialog)
	assert.False(t, m.dialog.isError)
}

func TestRemoveFile_Cancel(t *testing.T) {
	m, mgr := newTestModel(t)
	_, err := mgr.CreateFile("a")
	require.NoError(t, err)

	m = press(t, m, "down", "down", "down", "down", "down", "enter", "enter", "n")
	assert.Nil(t, m.dialog)
	assert.Equal(t, []string{"a.txt"}, mgr.Files())
}

func TestSortFile(t *testing.T) {
	m, mgr := newTestModel(t)
	file, err := mgr.CreateFile("g")
	require.NoError(t, err)
	addStudent(t, mgr, file, "b", []uint16{3}, []uint16{3}, []uint16{3})
	addStudent(t, mgr, file, "a", []uint16{5}, []uint16{5}, []uint16{5})
	addStudent(t, mgr, file, "c", []uint16{4}, []uint16{4}, []uint16{4})

	m = press(t, m, "up", "up", "enter")
	require.Equal(t, ViewSort, m.state)
	m = press(t, m, "down", "enter")
	require.Equal(t, ViewPicker, m.state)
	assert.Equal(t, student.ByGPA, m.sortField)

	m = press(t, m, "enter", "right", "enter")
	require.NotNil(t, m.dialog)
	assert.False(t, m.dialog.isError)

	students, _, err := mgr.Students(file)
	require.NoError(t, err)
	var names []string
	for _, s := range students {
		names = append(names, s.Surname)
	}
	assert.Equal(t, []string{"a", "c", "b"}, names)

	m = press(t, m, "enter", "esc")
	assert.Equal(t, ViewSort, m.state)
	m = press(t, m, "up", "up", "enter")
	assert.Equal(t, ViewMenu, m.state)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "esc")
	require.NotNil(t, m.dialog)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.NoError(t, m.Err())
}

func TestMouse(t *testing.T) {
	m, mgr := newTestModel(t)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		_, err := mgr.CreateFile(name)
		require.NoError(t, err)
	}

	// Menu rows start below the four header lines.
	m = click(t, m, 6, 4+int(itemEdit))
	require.Equal(t, ViewPicker, m.state)
	assert.Equal(t, pickEdit, m.picker.purpose)

	m = wheelDown(t, m)
	assert.Equal(t, 1, m.picker.slider.win.First())
	assert.Equal(t, 1, m.picker.slider.cursor)

	// Picker: four header lines, the title, then the slider frame.
	m = click(t, m, 6, 4+pickerTitleRows+frameFirstRow+2)
	require.Equal(t, ViewEditor, m.state)
	assert.Equal(t, "d.txt", m.editor.file)
}

func TestFileSlider(t *testing.T) {
	s := newFileSlider([]string{"a", "b", "c", "d", "e", "f", "g"})

	for range 6 {
		s.Down()
	}
	assert.Equal(t, 6, s.cursor)
	assert.Equal(t, 2, s.win.First())

	assert.True(t, s.Click(frameUpRow))
	assert.Equal(t, 1, s.win.First())
	assert.Equal(t, 5, s.cursor)
	assert.False(t, s.Chosen())

	assert.True(t, s.Click(frameFirstRow))
	assert.True(t, s.Chosen())
	name, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "b", name)

	s.SetFiles([]string{"a"})
	name, ok = s.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", name)
	assert.False(t, s.Click(frameFirstRow+1))

	s.SetFiles(nil)
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestEditBox(t *testing.T) {
	e := newEditBox("f", []string{"ab", "cd"})
	key := func(kt tea.KeyType) { e.Update(tea.KeyMsg{Type: kt}) }

	key(tea.KeyRight)
	key(tea.KeyEnter)
	assert.Equal(t, []string{"a", "b", "cd"}, e.Lines())
	assert.Equal(t, 1, e.row)
	assert.Equal(t, 0, e.col)

	key(tea.KeyBackspace)
	assert.Equal(t, []string{"ab", "cd"}, e.Lines())
	assert.Equal(t, 1, e.col)

	key(tea.KeyEnd)
	key(tea.KeyDelete)
	assert.Equal(t, []string{"abcd"}, e.Lines())

	long := make([]rune, editWidth)
	for i := range long {
		long[i] = 'x'
	}
	e = newEditBox("f", []string{string(long)})
	e.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Equal(t, string(long), e.Lines()[0])
	assert.False(t, e.changed)
}

func TestEditBox_ScrollsWithCursor(t *testing.T) {
	lines := make([]string, 30)
	e := newEditBox("f", lines)
	for range editRows {
		e.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, editRows, e.row)
	assert.Equal(t, 1, e.win.First())

	e.ScrollUp()
	assert.Equal(t, 0, e.win.First())
	assert.Equal(t, editRows-1, e.row)
}

func TestDialog(t *testing.T) {
	d := choose("?", []string{"A", "B", "C"}, nil)
	_, done := d.update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, done)
	assert.Equal(t, 2, d.cursor)

	choice, done := d.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, done)
	assert.Equal(t, 2, choice)

	choice, done = d.update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, done)
	assert.Equal(t, -1, choice)
}

func TestDialog_YesNoOnlyForConfirm(t *testing.T) {
	yes := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}
	no := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}

	order := choose("Order?", []string{"ASCENDING", "DESCENDING"}, nil)
	_, done := order.update(yes)
	assert.False(t, done)
	_, done = order.update(no)
	assert.False(t, done)

	choice, done := confirm("Delete?", nil).update(yes)
	assert.True(t, done)
	assert.Equal(t, 0, choice)

	choice, done = confirm("Delete?", nil).update(no)
	assert.True(t, done)
	assert.Equal(t, 1, choice)
}
