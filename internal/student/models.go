package student

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Subject identifies one of the three graded subjects.
type Subject int

const (
	Physics Subject = iota
	Math
	CS
)

func (s Subject) String() string {
	switch s {
	case Physics:
		return "physics"
	case Math:
		return "math"
	case CS:
		return "cs"
	}
	return fmt.Sprintf("subject(%d)", int(s))
}

// Student is one record of a record file.
type Student struct {
	Surname string
	Group   uint64

	PhysicsScores []uint16
	MathScores    []uint16
	CSScores      []uint16

	PhysicsAvg float64
	MathAvg    float64
	CSAvg      float64

	// GPA is the mean of the three rounded subject averages.
	GPA float64
}

// New builds a Student and computes every average from the scores.
func New(surname string, group uint64, physics, maths, cs []uint16) Student {
	s := Student{
		Surname:       surname,
		Group:         group,
		PhysicsScores: physics,
		MathScores:    maths,
		CSScores:      cs,
	}
	s.Recalculate()
	return s
}

// Recalculate refreshes the subject averages and the GPA from the score lists.
func (s *Student) Recalculate() {
	s.PhysicsAvg = Average(s.PhysicsScores)
	s.MathAvg = Average(s.MathScores)
	s.CSAvg = Average(s.CSScores)
	s.GPA = OverallAverage(s.PhysicsAvg, s.MathAvg, s.CSAvg)
}

// Scores returns the score list of a subject.
func (s Student) Scores(sub Subject) []uint16 {
	switch sub {
	case Physics:
		return s.PhysicsScores
	case Math:
		return s.MathScores
	case CS:
		return s.CSScores
	}
	return nil
}

// Avg returns the stored average of a subject.
func (s Student) Avg(sub Subject) float64 {
	switch sub {
	case Physics:
		return s.PhysicsAvg
	case Math:
		return s.MathAvg
	case CS:
		return s.CSAvg
	}
	return math.NaN()
}

// Average returns sum/count of the marks, or NaN for an empty list.
func Average(marks []uint16) float64 {
	if len(marks) == 0 {
		return math.NaN()
	}
	var sum uint64
	for _, m := range marks {
		sum += uint64(m)
	}
	return float64(sum) / float64(len(marks))
}

// OverallAverage rounds each subject average half away from zero and
// returns their mean. Any NaN input yields NaN.
func OverallAverage(physics, maths, cs float64) float64 {
	return (math.Round(physics) + math.Round(maths) + math.Round(cs)) / 3
}

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid student")

// Validate rejects records that cannot be written: an empty surname or a
// subject without marks (its average would be undefined).
func (s Student) Validate() error {
	if strings.TrimSpace(s.Surname) == "" {
		return fmt.Errorf("%w: surname is empty", ErrInvalid)
	}
	if strings.ContainsAny(s.Surname, "\r\n") {
		return fmt.Errorf("%w: surname contains a line break", ErrInvalid)
	}
	for _, sub := range []Subject{Physics, Math, CS} {
		if len(s.Scores(sub)) == 0 {
			return fmt.Errorf("%w: no %s marks", ErrInvalid, sub)
		}
	}
	return nil
}
