// Package store provides the roster storage interface and its in-memory implementation.
package store

import (
	"errors"
	"fmt"

	"github.com/rcliao/grade-analyzer/internal/model"
)

var (
	// ErrValidation is the parent of every rejected-input error.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when no student matches a name.
	ErrNotFound = errors.New("student not found")

	ErrEmptyName       = fmt.Errorf("%w: name is empty", ErrValidation)
	ErrDuplicateName   = fmt.Errorf("%w: student already exists", ErrValidation)
	ErrGradeOutOfRange = fmt.Errorf("%w: grade must be between %d and %d", ErrValidation, model.MinGrade, model.MaxGrade)
)

// Store defines the roster storage interface.
type Store interface {
	// Find looks up a student by name, ignoring case.
	Find(name string) (model.Student, bool)

	// Exists reports whether Find would succeed.
	Exists(name string) bool

	// Add appends a new student with no grades. Returns the created student.
	Add(name string) (*model.Student, error)

	// AppendGrade records a grade for the named student.
	AppendGrade(name string, grade int) error

	// List returns every student in insertion order.
	List() []model.Student

	// Stats returns roster counts.
	Stats() Stats
}
