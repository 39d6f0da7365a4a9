package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"studentdb/internal/report"
	"studentdb/internal/student"

	"github.com/spf13/cobra"
)

var (
	flagSurname string
	flagGroup   string
	flagPhysics string
	flagMath    string
	flagCS      string
	flagSortBy  string
	flagDesc    bool
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Append a student to a record file, prompting for missing fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			file := resolveFile(s.mgr, args[0])
			p := prompter{in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}
			st, err := p.student()
			if err != nil {
				return err
			}
			if err := s.mgr.AddStudent(file, st); err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (GPA %s)\n", st.Surname, file, student.FormatAverage(st.GPA))
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the students of a record file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			file := resolveFile(s.mgr, args[0])
			students, failures, err := s.mgr.Students(file)
			if err != nil {
				return userError(err)
			}
			return printMarkdown(cmd.OutOrStdout(), report.Students(file, students, failures))
		})
	},
}

var sortCmd = &cobra.Command{
	Use:   "sort <file>",
	Short: "Sort a record file in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := student.ParseSortField(flagSortBy)
		if err != nil {
			return err
		}
		dir := student.Ascending
		if flagDesc {
			dir = student.Descending
		}
		return withSession(func(s *session) error {
			file := resolveFile(s.mgr, args[0])
			sorted, err := s.mgr.SortFile(file, field, dir)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sorted %d students in %s by %s (%s)\n", len(sorted), file, field, dir)
			return nil
		})
	},
}

var taskCmd = &cobra.Command{
	Use:   "task <file>",
	Short: "List students with no math or cs mark below " + strconv.Itoa(student.PassingMark),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *session) error {
			file := resolveFile(s.mgr, args[0])
			students, err := s.mgr.IndividualTask(file)
			if err != nil {
				return userError(err)
			}
			return printMarkdown(cmd.OutOrStdout(), report.Students(file+": no failing math or cs marks", students, nil))
		})
	},
}

func init() {
	addCmd.Flags().StringVar(&flagSurname, "surname", "", "student's surname")
	addCmd.Flags().StringVar(&flagGroup, "group", "", "group number")
	addCmd.Flags().StringVar(&flagPhysics, "physics", "", `physics marks, e.g. "5 4 3"`)
	addCmd.Flags().StringVar(&flagMath, "math", "", "math marks")
	addCmd.Flags().StringVar(&flagCS, "cs", "", "cs marks")
	sortCmd.Flags().StringVar(&flagSortBy, "by", student.BySurname.String(), "sort key: surname, gpa, physics, math, cs")
	sortCmd.Flags().BoolVar(&flagDesc, "desc", false, "sort in descending order")
	rootCmd.AddCommand(addCmd, showCmd, sortCmd, taskCmd)
}

// prompter asks for every student field not given on the command line.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

var errNoInput = errors.New("input ended before the student was complete")

// ask returns preset if set, otherwise reads lines until valid accepts one.
func (p prompter) ask(question, preset string, valid func(string) error) (string, error) {
	if preset != "" {
		if err := valid(preset); err != nil {
			return "", fmt.Errorf("%s: %w", question, err)
		}
		return preset, nil
	}
	for {
		fmt.Fprintf(p.out, "%s: ", question)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return "", err
			}
			return "", errNoInput
		}
		answer := strings.TrimSpace(p.in.Text())
		if err := valid(answer); err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		return answer, nil
	}
}

func (p prompter) student() (student.Student, error) {
	surname, err := p.ask("Surname", flagSurname, func(s string) error {
		if s == "" {
			return errors.New("the surname cannot be empty")
		}
		return nil
	})
	if err != nil {
		return student.Student{}, err
	}

	var group uint64
	if _, err := p.ask("Group number", flagGroup, func(s string) error {
		g, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return errors.New("the group number must be a non-negative integer")
		}
		group = g
		return nil
	}); err != nil {
		return student.Student{}, err
	}

	presets := []string{flagPhysics, flagMath, flagCS}
	var marks [3][]uint16
	for i, sub := range []student.Subject{student.Physics, student.Math, student.CS} {
		if _, err := p.ask(fmt.Sprintf("%s marks (space separated)", sub), presets[i], func(s string) error {
			m, err := student.ParseScores(s)
			if err != nil {
				return err
			}
			if len(m) == 0 {
				return errors.New("at least one mark is required")
			}
			marks[i] = m
			return nil
		}); err != nil {
			return student.Student{}, err
		}
	}
	return student.New(surname, group, marks[0], marks[1], marks[2]), nil
}
