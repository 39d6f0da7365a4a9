package student

// PassingMark is the lowest mark that does not count as a failing grade.
const PassingMark = 4

// NoFailingGrades reports whether none of the marks in subjects is below threshold.
func NoFailingGrades(s Student, threshold uint16, subjects ...Subject) bool {
	for _, sub := range subjects {
		for _, m := range s.Scores(sub) {
			if m < threshold {
				return false
			}
		}
	}
	return true
}

// IndividualTask keeps the students with no math or cs mark below
// PassingMark. Physics marks are not considered.
func IndividualTask(students []Student) []Student {
	var out []Student
	for _, s := range students {
		if NoFailingGrades(s, PassingMark, Math, CS) {
			out = append(out, s)
		}
	}
	return out
}
