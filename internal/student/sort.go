package student

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortField selects the comparison key of Sort.
type SortField int

const (
	BySurname SortField = iota
	ByGPA
	ByPhysicsAvg
	ByMathAvg
	ByCSAvg
)

// SortFields lists every field in menu order.
var SortFields = []SortField{BySurname, ByGPA, ByPhysicsAvg, ByMathAvg, ByCSAvg}

func (f SortField) String() string {
	switch f {
	case BySurname:
		return "surname"
	case ByGPA:
		return "gpa"
	case ByPhysicsAvg:
		return "physics"
	case ByMathAvg:
		return "math"
	case ByCSAvg:
		return "cs"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// ParseSortField accepts the names produced by SortField.String.
func ParseSortField(s string) (SortField, error) {
	for _, f := range SortFields {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown sort field %q (want surname, gpa, physics, math or cs)", s)
}

// Direction is the sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

func compareBy(f SortField) func(a, b Student) int {
	switch f {
	case ByGPA:
		return func(a, b Student) int { return cmp.Compare(a.GPA, b.GPA) }
	case ByPhysicsAvg:
		return func(a, b Student) int { return cmp.Compare(a.PhysicsAvg, b.PhysicsAvg) }
	case ByMathAvg:
		return func(a, b Student) int { return cmp.Compare(a.MathAvg, b.MathAvg) }
	case ByCSAvg:
		return func(a, b Student) int { return cmp.Compare(a.CSAvg, b.CSAvg) }
	}
	return func(a, b Student) int { return strings.Compare(a.Surname, b.Surname) }
}

// Sort returns a stably sorted copy of students. Records with equal keys
// keep their relative order in either direction.
func Sort(students []Student, f SortField, dir Direction) []Student {
	out := slices.Clone(students)
	compare := compareBy(f)
	if dir == Descending {
		asc := compare
		compare = func(a, b Student) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}
