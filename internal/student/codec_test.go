package student

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alice() Student {
	return New("alice", 1201, []uint16{5, 4}, []uint16{5, 5}, []uint16{3, 5})
}

func TestNew_Averages(t *testing.T) {
	s := alice()
	assert.Equal(t, 4.5, s.PhysicsAvg)
	assert.Equal(t, 5.0, s.MathAvg)
	assert.Equal(t, 4.0, s.CSAvg)
	// (round(4.5) + round(5.0) + round(4.0)) / 3 = (5 + 5 + 4) / 3
	assert.InDelta(t, 14.0/3.0, s.GPA, 1e-12)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 3.0, Average([]uint16{3}))
	assert.Equal(t, 2.5, Average([]uint16{2, 3}))
	assert.Equal(t, 65535.0, Average([]uint16{65535, 65535}))
	assert.True(t, math.IsNaN(Average(nil)))
}

func TestValidate(t *testing.T) {
	require.NoError(t, alice().Validate())

	s := New("bob", 1, []uint16{5}, nil, []uint16{4})
	assert.True(t, math.IsNaN(s.MathAvg))
	assert.ErrorIs(t, s.Validate(), ErrInvalid)

	s = New("  ", 1, []uint16{5}, []uint16{5}, []uint16{4})
	assert.ErrorIs(t, s.Validate(), ErrInvalid)
}

func TestEncode(t *testing.T) {
	got := Encode(alice())
	want := "STUDENT'S NAME: alice\n" +
		"GROUP NUMBER: 1201\n" +
		"PHYSICS SCORE: 5 4\n" +
		"PHISICS GPA: 4.5\n" +
		"MATH SCORE: 5 5\n" +
		"MATH GPA: 5\n" +
		"CS SCORE: 3 5\n" +
		"CS GPA: 4\n" +
		"GPA: 4.666666666666667\n"
	assert.Equal(t, want, got)
}

func TestRoundTrip(t *testing.T) {
	students := []Student{
		alice(),
		New("O'Neil Smith", 0, []uint16{2, 3, 4, 5}, []uint16{1}, []uint16{5, 5, 5}),
		New("x", math.MaxUint64, []uint16{65535}, []uint16{0, 0}, []uint16{3, 4}),
		New(" van Dijk ", 3, []uint16{5}, []uint16{4}, []uint16{3}),
	}
	for _, want := range students {
		t.Run(want.Surname, func(t *testing.T) {
			lines, err := ReadLines(strings.NewReader(Encode(want)))
			require.NoError(t, err)
			require.Len(t, lines, RecordLines)

			got, err := DecodeRecord(lines, 1)
			require.NoError(t, err)
			assert.Equal(t, want.Surname, got.Surname)
			assert.Equal(t, want.Group, got.Group)
			assert.Equal(t, want.PhysicsScores, got.PhysicsScores)
			assert.Equal(t, want.MathScores, got.MathScores)
			assert.Equal(t, want.CSScores, got.CSScores)
			assert.InDelta(t, want.PhysicsAvg, got.PhysicsAvg, 1e-9)
			assert.InDelta(t, want.MathAvg, got.MathAvg, 1e-9)
			assert.InDelta(t, want.CSAvg, got.CSAvg, 1e-9)
			assert.InDelta(t, want.GPA, got.GPA, 1e-9)
		})
	}
}

func TestDecodeRecord_LegacyFormatting(t *testing.T) {
	lines := []string{
		"STUDENT'S NAME: ivanov",
		"GROUP NUMBER: 7",
		"PHYSICS SCORE: 4 5",
		"PHISICS GPA: 4.5",
		"MATH SCORE: ",
		"MATH GPA: -nan(ind)",
		"CS SCORE: 5",
		"CS GPA: 5",
		"GPA: 4.66667",
	}
	s, err := DecodeRecord(lines, 1)
	require.NoError(t, err)
	assert.Empty(t, s.MathScores)
	assert.True(t, math.IsNaN(s.MathAvg))
	assert.Equal(t, 4.66667, s.GPA)
}

func TestDecodeRecord_Failures(t *testing.T) {
	good := strings.Split(strings.TrimSuffix(Encode(alice()), "\n"), "\n")

	_, err := DecodeRecord(good[:5], 10)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 10, pe.Line)
	assert.Contains(t, pe.Reason, "truncated")

	bad := append([]string(nil), good...)
	bad[2] = "PHYSICS SCORE: 5 four"
	_, err = DecodeRecord(bad, 1)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, LabelPhysics, pe.Field)
	assert.ErrorIs(t, err, ErrParse)

	bad = append([]string(nil), good...)
	bad[6] = "CHEMISTRY SCORE: 5"
	_, err = DecodeRecord(bad, 1)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, LabelCS, pe.Field)

	bad = append([]string(nil), good...)
	bad[8] = "GPA: 4,67"
	_, err = DecodeRecord(bad, 1)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, LabelGPA, pe.Field)
}

func TestDecoder_ResyncAfterCorruptRecord(t *testing.T) {
	bob := New("bob", 2, []uint16{3}, []uint16{4}, []uint16{5})
	carol := New("carol", 3, []uint16{5}, []uint16{5}, []uint16{5})

	corrupt := strings.Replace(Encode(bob), "GROUP NUMBER: 2", "GROUP NUMBER: two", 1)
	truncated := strings.Join(strings.SplitN(Encode(alice()), "\n", 4)[:3], "\n") + "\n"
	input := Encode(alice()) + corrupt + truncated + Encode(carol)

	lines, err := ReadLines(strings.NewReader(input))
	require.NoError(t, err)

	d := NewDecoder(lines)

	s, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, "alice", s.Surname)

	_, err = d.Next()
	assert.ErrorIs(t, err, ErrParse)

	_, err = d.Next()
	assert.ErrorIs(t, err, ErrParse)

	s, err = d.Next()
	require.NoError(t, err)
	assert.Equal(t, "carol", s.Surname)

	_, err = d.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestDecodeAll(t *testing.T) {
	input := "garbage before\n" + Encode(alice()) + "STUDENT'S NAME: half\nGROUP NUMBER: 1\n"
	lines, err := ReadLines(strings.NewReader(input))
	require.NoError(t, err)

	students, failures := DecodeAll(lines)
	require.Len(t, students, 1)
	assert.Equal(t, "alice", students[0].Surname)
	require.Len(t, failures, 1)
	assert.Equal(t, 11, failures[0].Line)

	students, failures = DecodeAll(nil)
	assert.Empty(t, students)
	assert.Empty(t, failures)
}

func TestReadLines_CRLF(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("a\r\nb\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}
