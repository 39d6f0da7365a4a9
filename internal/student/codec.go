package student

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Field labels in record order. A record is exactly one line per label.
const (
	LabelName       = "STUDENT'S NAME:"
	LabelGroup      = "GROUP NUMBER:"
	LabelPhysics    = "PHYSICS SCORE:"
	LabelPhysicsAvg = "PHISICS GPA:"
	LabelMath       = "MATH SCORE:"
	LabelMathAvg    = "MATH GPA:"
	LabelCS         = "CS SCORE:"
	LabelCSAvg      = "CS GPA:"
	LabelGPA        = "GPA:"
)

// RecordLines is the number of lines a single encoded record occupies.
const RecordLines = 9

var labels = [RecordLines]string{
	LabelName, LabelGroup,
	LabelPhysics, LabelPhysicsAvg,
	LabelMath, LabelMathAvg,
	LabelCS, LabelCSAvg,
	LabelGPA,
}

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("parse failure")

// ParseError describes one record that could not be decoded. Line is
// 1-based and points at the offending line of the scanned input.
type ParseError struct {
	Line   int
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// Encode renders s as a record block, one labeled line per field, each
// terminated by a newline.
func Encode(s Student) string {
	var b strings.Builder
	writeLine := func(label, value string) {
		b.WriteString(label)
		b.WriteByte(' ')
		b.WriteString(value)
		b.WriteByte('\n')
	}
	writeLine(LabelName, s.Surname)
	writeLine(LabelGroup, strconv.FormatUint(s.Group, 10))
	writeLine(LabelPhysics, FormatScores(s.PhysicsScores))
	writeLine(LabelPhysicsAvg, FormatAverage(s.PhysicsAvg))
	writeLine(LabelMath, FormatScores(s.MathScores))
	writeLine(LabelMathAvg, FormatAverage(s.MathAvg))
	writeLine(LabelCS, FormatScores(s.CSScores))
	writeLine(LabelCSAvg, FormatAverage(s.CSAvg))
	writeLine(LabelGPA, FormatAverage(s.GPA))
	return b.String()
}

// EncodeAll concatenates the records of students.
func EncodeAll(students []Student) string {
	var b strings.Builder
	for _, s := range students {
		b.WriteString(Encode(s))
	}
	return b.String()
}

// FormatScores joins marks with single spaces.
func FormatScores(marks []uint16) string {
	parts := make([]string, len(marks))
	for i, m := range marks {
		parts[i] = strconv.FormatUint(uint64(m), 10)
	}
	return strings.Join(parts, " ")
}

// FormatAverage uses the shortest representation that parses back to v.
func FormatAverage(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// IsBoundary reports whether line opens a record.
func IsBoundary(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), LabelName)
}

// DecodeRecord decodes the record starting at lines[0]. first is the
// 1-based line number of lines[0] in the surrounding input, used only for
// error positions.
func DecodeRecord(lines []string, first int) (Student, error) {
	var s Student
	if len(lines) == 0 || !IsBoundary(lines[0]) {
		return s, &ParseError{Line: first, Field: LabelName, Reason: "missing record boundary"}
	}
	// The record ends early when input runs out or the next one begins.
	n := min(len(lines), RecordLines)
	for i := 1; i < n; i++ {
		if IsBoundary(lines[i]) {
			n = i
			break
		}
	}
	if n < RecordLines {
		return s, &ParseError{
			Line:   first,
			Reason: fmt.Sprintf("truncated record: %d of %d lines", n, RecordLines),
		}
	}

	var values [RecordLines]string
	for i, label := range labels {
		v, ok := fieldValue(lines[i], label)
		if !ok {
			return s, &ParseError{Line: first + i, Field: label, Reason: "label not found"}
		}
		values[i] = v
	}

	var err error
	fail := func(i int, reason error) error {
		return &ParseError{Line: first + i, Field: labels[i], Reason: reason.Error()}
	}

	s.Surname = values[0]
	if s.Group, err = strconv.ParseUint(values[1], 10, 64); err != nil {
		return Student{}, fail(1, err)
	}
	if s.PhysicsScores, err = ParseScores(values[2]); err != nil {
		return Student{}, fail(2, err)
	}
	if s.PhysicsAvg, err = ParseAverage(values[3]); err != nil {
		return Student{}, fail(3, err)
	}
	if s.MathScores, err = ParseScores(values[4]); err != nil {
		return Student{}, fail(4, err)
	}
	if s.MathAvg, err = ParseAverage(values[5]); err != nil {
		return Student{}, fail(5, err)
	}
	if s.CSScores, err = ParseScores(values[6]); err != nil {
		return Student{}, fail(6, err)
	}
	if s.CSAvg, err = ParseAverage(values[7]); err != nil {
		return Student{}, fail(7, err)
	}
	if s.GPA, err = ParseAverage(values[8]); err != nil {
		return Student{}, fail(8, err)
	}
	return s, nil
}

// fieldValue strips label from the start of line and returns the rest.
// The surname keeps everything after the single separator space; other
// values are trimmed.
func fieldValue(line, label string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimLeft(line, " \t"), label)
	if !ok {
		return "", false
	}
	if label == LabelName {
		return strings.TrimPrefix(rest, " "), true
	}
	return strings.TrimSpace(rest), true
}

// ParseScores splits a score line on whitespace into marks.
func ParseScores(s string) ([]uint16, error) {
	fields := strings.Fields(s)
	marks := make([]uint16, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 16)
		if err != nil {
			return nil, err
		}
		marks = append(marks, uint16(v))
	}
	return marks, nil
}

// ParseAverage parses an average independently of the process locale.
// Undefined averages written as "nan", "-nan" or "-nan(ind)" decode to NaN.
func ParseAverage(s string) (float64, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(strings.TrimPrefix(lower, "-"), "nan") {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(lower, 64)
}

// Decoder scans a sequence of lines for records. A corrupt record is
// reported as a *ParseError and scanning resumes on the line after its
// boundary, so later records in the same input are still found.
type Decoder struct {
	lines []string
	pos   int
}

// NewDecoder decodes records from lines.
func NewDecoder(lines []string) *Decoder {
	return &Decoder{lines: lines}
}

// Next returns the next record. It returns io.EOF once no further boundary
// exists. Any other error is a *ParseError and the caller may call Next again.
func (d *Decoder) Next() (Student, error) {
	for d.pos < len(d.lines) {
		i := d.pos
		if !IsBoundary(d.lines[i]) {
			d.pos++
			continue
		}
		end := min(i+RecordLines, len(d.lines))
		s, err := DecodeRecord(d.lines[i:end], i+1)
		if err != nil {
			d.pos = i + 1
			return Student{}, err
		}
		d.pos = i + RecordLines
		return s, nil
	}
	return Student{}, io.EOF
}

// DecodeAll decodes every record of lines, collecting failures instead of
// stopping at them.
func DecodeAll(lines []string) ([]Student, []*ParseError) {
	var (
		students []Student
		failures []*ParseError
	)
	d := NewDecoder(lines)
	for {
		s, err := d.Next()
		if errors.Is(err, io.EOF) {
			return students, failures
		}
		var pe *ParseError
		if errors.As(err, &pe) {
			failures = append(failures, pe)
			continue
		}
		students = append(students, s)
	}
}

// ReadLines splits r into lines without their terminators. A trailing
// carriage return is dropped so files written on Windows decode too.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}
