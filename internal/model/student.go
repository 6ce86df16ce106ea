// Package model defines the core record types.
package model

// Grade bounds, inclusive.
const (
	MinGrade = 0
	MaxGrade = 100
)

// Student is one roster entry. Grades are kept in the order they were recorded.
type Student struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Grades []int  `json:"grades" yaml:"grades"`
}

// HasGrades reports whether at least one grade has been recorded.
func (s Student) HasGrades() bool {
	return len(s.Grades) > 0
}

// Clone returns a copy that shares no memory with s.
func (s Student) Clone() Student {
	c := s
	c.Grades = make([]int, len(s.Grades))
	copy(c.Grades, s.Grades)
	return c
}

// ValidGrade reports whether g lies within [MinGrade, MaxGrade].
func ValidGrade(g int) bool {
	return g >= MinGrade && g <= MaxGrade
}
