// Package report formats record files as Markdown for the terminal and for
// MCP clients.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"studentdb/internal/journal"
	"studentdb/internal/student"

	"github.com/charmbracelet/glamour"
)

// Students renders a table with one row per student. Corrupt records are
// listed after the table.
func Students(title string, students []student.Student, failures []*student.ParseError) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s (%d students)\n\n", title, len(students))

	if len(students) == 0 {
		sb.WriteString("No students.\n")
	} else {
		sb.WriteString("| # | Surname | Group | Physics | Math | CS | GPA |\n")
		sb.WriteString("|---|---|---|---|---|---|---|\n")
		for i, s := range students {
			fmt.Fprintf(&sb, "| %d | %s | %d | %s | %s | %s | %s |\n",
				i+1, escape(s.Surname), s.Group,
				subject(s, student.Physics), subject(s, student.Math), subject(s, student.CS),
				average(s.GPA))
		}
	}

	if len(failures) > 0 {
		fmt.Fprintf(&sb, "\n**%d corrupt record(s) skipped:**\n\n", len(failures))
		for _, f := range failures {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}
	return sb.String()
}

func subject(s student.Student, sub student.Subject) string {
	return fmt.Sprintf("%s (%s)", student.FormatScores(s.Scores(sub)), average(s.Avg(sub)))
}

// average rounds for display; the stored value is untouched.
func average(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Files renders the list of managed files.
func Files(files []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Record files (%d)\n\n", len(files))
	if len(files) == 0 {
		sb.WriteString("No files yet.\n")
	}
	for _, f := range files {
		fmt.Fprintf(&sb, "- %s\n", f)
	}
	return sb.String()
}

// History renders journal entries, newest first.
func History(entries []journal.Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## History (%d)\n\n", len(entries))
	if len(entries) == 0 {
		sb.WriteString("Nothing recorded yet.\n")
		return sb.String()
	}
	sb.WriteString("| When | Operation | File | Detail |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			e.At.Local().Format(time.DateTime), e.Op, escape(e.File), escape(e.Detail))
	}
	return sb.String()
}

// Render formats Markdown for a terminal of the given width.
func Render(md string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
