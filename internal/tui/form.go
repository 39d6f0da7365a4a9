package tui

import (
	"fmt"
	"strconv"
	"strings"

	"studentdb/internal/student"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formStep int

const (
	stepSurname formStep = iota
	stepGroup
	stepCount
	stepMark
	stepDone
)

// maxMarks bounds the number of marks per subject a user can enter.
const maxMarks = 50

var subjects = []student.Subject{student.Physics, student.Math, student.CS}

// formModel collects one student through a sequence of prompts: surname,
// group, then for each subject the number of marks and every mark.
type formModel struct {
	file    string
	input   textinput.Model
	step    formStep
	subject int
	count   int
	surname string
	group   uint64
	marks   [3][]uint16
	warning string
}

func newFormModel(file string) formModel {
	ti := textinput.New()
	ti.CharLimit = 40
	ti.Width = 40
	ti.Focus()
	return formModel{file: file, input: ti}
}

// Done reports whether every prompt has been answered.
func (f formModel) Done() bool { return f.step == stepDone }

// Student builds the entered student.
func (f formModel) Student() student.Student {
	return student.New(f.surname, f.group, f.marks[0], f.marks[1], f.marks[2])
}

func (f formModel) prompt() string {
	switch f.step {
	case stepSurname:
		return "Enter the student's surname:"
	case stepGroup:
		return "Enter the group number:"
	case stepCount:
		return fmt.Sprintf("Enter the number of %s marks:", subjects[f.subject])
	case stepMark:
		return fmt.Sprintf("Enter %s mark %d of %d:", subjects[f.subject], len(f.marks[f.subject])+1, f.count)
	}
	return ""
}

func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		f.submit(strings.TrimSpace(f.input.Value()))
		return f, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *formModel) submit(value string) {
	f.warning = ""
	switch f.step {
	case stepSurname:
		if value == "" {
			f.warning = "The surname cannot be empty"
			return
		}
		f.surname = value
		f.step = stepGroup

	case stepGroup:
		g, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			f.warning = "The group number must be a non-negative integer"
			return
		}
		f.group = g
		f.step = stepCount

	case stepCount:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > maxMarks {
			f.warning = fmt.Sprintf("Enter a number from 1 to %d", maxMarks)
			return
		}
		f.count = n
		f.step = stepMark

	case stepMark:
		v, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			f.warning = "A mark must be an integer from 0 to 65535"
			return
		}
		f.marks[f.subject] = append(f.marks[f.subject], uint16(v))
		if len(f.marks[f.subject]) < f.count {
			break
		}
		f.subject++
		if f.subject == len(subjects) {
			f.step = stepDone
		} else {
			f.step = stepCount
		}
	}
	f.input.Reset()
}

func (f formModel) View(bool) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("  File: "+f.file) + "\n\n")
	if f.step > stepGroup {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s, group %d", f.surname, f.group)) + "\n")
	}
	for i, sub := range subjects {
		if len(f.marks[i]) > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %-8s %s", sub.String()+":", student.FormatScores(f.marks[i]))) + "\n")
		}
	}
	b.WriteString("\n  " + f.prompt() + "\n")
	b.WriteString("  " + f.input.View() + "\n")
	if f.warning != "" {
		b.WriteString("\n" + warnStyle.Render("  "+f.warning) + "\n")
	}
	return b.String()
}
