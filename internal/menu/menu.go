// Package menu runs the Student Grade Analyzer's interactive menu.
//
// The analyzer is a two-state machine: it stays Running while the user picks
// actions and moves to Exiting only through the exit choice. Invalid input at
// any prompt is reported and asked for again; only a failing input stream ends
// the loop early.
package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/grade-analyzer/internal/console"
	"github.com/rcliao/grade-analyzer/internal/model"
	"github.com/rcliao/grade-analyzer/internal/report"
	"github.com/rcliao/grade-analyzer/internal/store"
)

// State is the analyzer's lifecycle state.
type State int

const (
	Running State = iota
	Exiting
)

func (s State) String() string {
	if s == Exiting {
		return "exiting"
	}
	return "running"
}

// Choice is a menu selection.
type Choice int

const (
	AddStudent Choice = iota + 1
	AddGrades
	GenerateReport
	FindTopStudent
	Exit
)

var labels = map[Choice]string{
	AddStudent:     "Add a new student",
	AddGrades:      "Add grades for a student",
	GenerateReport: "Generate report for all students",
	FindTopStudent: "Find the top student",
	Exit:           "Exit program",
}

func (c Choice) String() string {
	return labels[c]
}

const (
	promptChoice = "Enter your choice: "
	promptName   = "Enter student name: "
	promptGrade  = "Enter a grade (or 'done' to finish): "
	doneToken    = "done"
)

// Analyzer owns the roster for one run and drives the menu.
type Analyzer struct {
	store  store.Store
	in     console.LineReader
	out    io.Writer
	format report.Format
	logger *zap.Logger
	state  State
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFormat sets the report format.
func WithFormat(f report.Format) Option {
	return func(a *Analyzer) { a.format = f }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns an Analyzer in the Running state.
func New(s store.Store, in console.LineReader, out io.Writer, opts ...Option) *Analyzer {
	a := &Analyzer{
		store:  s,
		in:     in,
		out:    out,
		format: report.FormatText,
		logger: zap.NewNop(),
		state:  Running,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// State returns the current state.
func (a *Analyzer) State() State {
	return a.state
}

// Run loops until the exit choice is made or input fails.
func (a *Analyzer) Run() error {
	fmt.Fprintln(a.out, "Welcome to Student Grade Analyzer!")

	for a.state == Running {
		a.printMenu()
		line, err := a.in.Prompt(promptChoice)
		if err != nil {
			return fmt.Errorf("read choice: %w", err)
		}

		n, err := console.ParseInt(line)
		if err != nil {
			a.logger.Debug("rejected menu input", zap.String("input", line))
			fmt.Fprintln(a.out, "Please input a valid number (1-5)!")
			continue
		}
		if err := a.Dispatch(Choice(n)); err != nil {
			return err
		}
	}

	st := a.store.Stats()
	a.logger.Info("session finished",
		zap.Int("students", st.Students),
		zap.Int("graded", st.Graded),
		zap.Int("grades", st.Grades))
	return nil
}

func (a *Analyzer) printMenu() {
	fmt.Fprintln(a.out, "\n--- Student Grade Analyzer ---")
	for c := AddStudent; c <= Exit; c++ {
		fmt.Fprintf(a.out, "%d. %s\n", c, c)
	}
}

// Dispatch performs one menu action. The returned error is always an I/O
// failure; user mistakes are handled at the prompt.
func (a *Analyzer) Dispatch(c Choice) error {
	switch c {
	case AddStudent:
		return a.addStudent()
	case AddGrades:
		return a.addGrades()
	case GenerateReport:
		return a.generateReport()
	case FindTopStudent:
		// Not implemented yet; the option only announces itself.
		fmt.Fprintf(a.out, "%d. %s\n", c, c)
		return nil
	case Exit:
		fmt.Fprintln(a.out, "Exiting program.")
		a.state = Exiting
		return nil
	}
	a.logger.Debug("rejected menu choice", zap.Int("choice", int(c)))
	fmt.Fprintln(a.out, "Invalid choice! Please select 1-5.")
	return nil
}

func (a *Analyzer) addStudent() error {
	for {
		name, err := a.in.Prompt(promptName)
		if err != nil {
			return fmt.Errorf("read student name: %w", err)
		}

		st, err := a.store.Add(name)
		switch {
		case err == nil:
			a.logger.Debug("student added", zap.String("id", st.ID), zap.String("name", st.Name))
			return nil
		case errors.Is(err, store.ErrEmptyName):
			fmt.Fprintln(a.out, "Name cannot be empty. Please try again.")
		case errors.Is(err, store.ErrDuplicateName):
			fmt.Fprintf(a.out, "Student %q already exists. Please enter a different name.\n", strings.TrimSpace(name))
		default:
			return err
		}
		a.logger.Debug("rejected student name", zap.String("name", name), zap.Error(err))
	}
}

func (a *Analyzer) addGrades() error {
	var stu model.Student
	for {
		name, err := a.in.Prompt(promptName)
		if err != nil {
			return fmt.Errorf("read student name: %w", err)
		}
		var ok bool
		if stu, ok = a.store.Find(name); ok {
			break
		}
		fmt.Fprintf(a.out, "Student %q not found. Please try again.\n", strings.TrimSpace(name))
	}

	for {
		line, err := a.in.Prompt(promptGrade)
		if err != nil {
			return fmt.Errorf("read grade: %w", err)
		}
		if console.IsToken(line, doneToken) {
			return nil
		}

		g, err := console.ParseInt(line)
		if err != nil {
			fmt.Fprintln(a.out, "Invalid input. Please enter a number.")
			continue
		}
		err = a.store.AppendGrade(stu.Name, g)
		switch {
		case err == nil:
			a.logger.Debug("grade appended", zap.String("name", stu.Name), zap.Int("grade", g))
		case errors.Is(err, store.ErrGradeOutOfRange):
			fmt.Fprintf(a.out, "Grade must be between %d and %d.\n", model.MinGrade, model.MaxGrade)
		default:
			return err
		}
	}
}

func (a *Analyzer) generateReport() error {
	r := report.Build(a.store.List())
	a.logger.Debug("report generated",
		zap.Int("students", len(r.Students)),
		zap.Bool("summary", r.Summary != nil))
	return report.Write(a.out, r, a.format)
}
