// Package verify checks a school database and its SQL script against
// expected contents.
package verify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrFailed is returned by callers that turn a failing Result into an error.
var ErrFailed = errors.New("verification failed")

// SubjectGrade is one (subject, grade) row.
type SubjectGrade struct {
	Subject string `toml:"subject" json:"subject"`
	Grade   int    `toml:"grade" json:"grade"`
}

// SizeWindow bounds a file size in bytes, inclusive.
type SizeWindow struct {
	Min int64 `toml:"min" json:"min"`
	Max int64 `toml:"max" json:"max"`
}

// Expectations describes what a correct submission contains.
type Expectations struct {
	Dir                string         `toml:"dir" json:"dir"`
	DBFile             string         `toml:"db_file" json:"db_file"`
	QueriesFile        string         `toml:"queries_file" json:"queries_file"`
	Tables             []string       `toml:"tables" json:"tables"`
	StudentCount       int            `toml:"student_count" json:"student_count"`
	GradeCount         int            `toml:"grade_count" json:"grade_count"`
	FirstStudent       string         `toml:"first_student" json:"first_student"`
	FirstStudentGrades []SubjectGrade `toml:"first_student_grades" json:"first_student_grades"`
	RequiredSections   []string       `toml:"required_sections" json:"required_sections"`
	DBSize             SizeWindow     `toml:"db_size" json:"db_size"`
	QueriesSize        SizeWindow     `toml:"queries_size" json:"queries_size"`
}

// DefaultExpectations returns the lecture's fixed expected values.
func DefaultExpectations() Expectations {
	return Expectations{
		Dir:          ".",
		DBFile:       "school.db",
		QueriesFile:  "queries.sql",
		Tables:       []string{"students", "grades"},
		StudentCount: 9,
		GradeCount:   26,
		FirstStudent: "Alice Johnson",
		FirstStudentGrades: []SubjectGrade{
			{Subject: "English", Grade: 92},
			{Subject: "Math", Grade: 88},
			{Subject: "Science", Grade: 85},
		},
		RequiredSections: []string{
			"CREATE TABLE students",
			"CREATE TABLE grades",
			"INSERT INTO students",
			"INSERT INTO grades",
			"Alice Johnson",
			"AVG(g.grade)",
			"birth_year > 2004",
			"GROUP BY subject",
			"LIMIT 3",
			"grade < 80",
		},
		DBSize:      SizeWindow{Min: 5000, Max: 100000},
		QueriesSize: SizeWindow{Min: 1000, Max: 10000},
	}
}

// DBPath returns the database file path.
func (e Expectations) DBPath() string { return filepath.Join(e.Dir, e.DBFile) }

// QueriesPath returns the SQL script path.
func (e Expectations) QueriesPath() string { return filepath.Join(e.Dir, e.QueriesFile) }

// Status is the outcome of one check.
type Status string

const (
	Pass Status = "pass"
	Fail Status = "fail"
	Warn Status = "warn"
)

// Check is one verification step's outcome.
type Check struct {
	Step   string `json:"step"`
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail"`
}

// Result collects every check that ran.
type Result struct {
	Checks []Check `json:"checks"`
	OK     bool    `json:"ok"`
}

// Failed returns the failing checks.
func (r *Result) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if c.Status == Fail {
			out = append(out, c)
		}
	}
	return out
}

// Verifier runs the checks.
type Verifier struct {
	exp    Expectations
	logger *zap.Logger
	res    *Result
}

// New returns a Verifier. A nil logger disables logging.
func New(exp Expectations, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{exp: exp, logger: logger}
}

// Run performs all steps. Missing files stop the run early; size checks
// never fail it.
func (v *Verifier) Run(ctx context.Context) (*Result, error) {
	v.res = &Result{OK: true}

	if !v.checkFilesExist() {
		return v.res, nil
	}
	if err := v.checkDatabase(ctx); err != nil {
		return v.res, err
	}
	v.checkQueriesFile()
	v.checkFileSizes()

	return v.res, nil
}

func (v *Verifier) record(step, name string, st Status, format string, args ...any) bool {
	c := Check{Step: step, Name: name, Status: st, Detail: fmt.Sprintf(format, args...)}
	v.res.Checks = append(v.res.Checks, c)
	if st == Fail {
		v.res.OK = false
	}
	v.logger.Debug("check", zap.String("step", step), zap.String("name", name),
		zap.String("status", string(st)), zap.String("detail", c.Detail))
	return st != Fail
}

func (v *Verifier) checkFilesExist() bool {
	ok := true
	for _, p := range []string{v.exp.DBPath(), v.exp.QueriesPath()} {
		if _, err := os.Stat(p); err != nil {
			v.record("files", filepath.Base(p), Fail, "%s is missing", p)
			ok = false
			continue
		}
		v.record("files", filepath.Base(p), Pass, "%s exists", p)
	}
	return ok
}

func (v *Verifier) checkDatabase(ctx context.Context) error {
	db, err := sql.Open("sqlite", v.exp.DBPath()+"?_pragma=query_only(1)")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	tables, err := listTables(ctx, db)
	if err != nil {
		v.record("database", "tables", Fail, "database error: %v", err)
		return nil
	}
	if !sameSet(tables, v.exp.Tables) {
		v.record("database", "tables", Fail, "found %v, expected %v", tables, v.exp.Tables)
		return nil
	}
	v.record("database", "tables", Pass, "%v", tables)

	checks := []func(context.Context, *sql.DB) bool{
		v.countCheck("students", v.exp.StudentCount),
		v.countCheck("grades", v.exp.GradeCount),
		v.checkFirstStudent,
		v.checkFirstStudentGrades,
	}
	// stop at the first failing check
	for _, c := range checks {
		if !c(ctx, db) {
			break
		}
	}
	return nil
}

func (v *Verifier) countCheck(table string, want int) func(context.Context, *sql.DB) bool {
	return func(ctx context.Context, db *sql.DB) bool {
		var n int
		// table comes from a fixed list, not user input
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return v.record("database", table+" count", Fail, "database error: %v", err)
		}
		if n != want {
			return v.record("database", table+" count", Fail, "wrong count %d, expected %d", n, want)
		}
		return v.record("database", table+" count", Pass, "%d/%d", n, want)
	}
}

func (v *Verifier) checkFirstStudent(ctx context.Context, db *sql.DB) bool {
	var name string
	err := db.QueryRowContext(ctx, `SELECT full_name FROM students WHERE id = 1`).Scan(&name)
	if err != nil {
		return v.record("database", "first student", Fail, "database error: %v", err)
	}
	if name != v.exp.FirstStudent {
		return v.record("database", "first student", Fail, "wrong first student %q", name)
	}
	return v.record("database", "first student", Pass, "%s", name)
}

func (v *Verifier) checkFirstStudentGrades(ctx context.Context, db *sql.DB) bool {
	rows, err := db.QueryContext(ctx,
		`SELECT g.subject, g.grade
		 FROM grades g
		 JOIN students s ON g.student_id = s.id
		 WHERE s.full_name = ?
		 ORDER BY g.subject`, v.exp.FirstStudent)
	if err != nil {
		return v.record("database", "first student grades", Fail, "database error: %v", err)
	}
	defer rows.Close()

	var got []SubjectGrade
	for rows.Next() {
		var sg SubjectGrade
		if err := rows.Scan(&sg.Subject, &sg.Grade); err != nil {
			return v.record("database", "first student grades", Fail, "database error: %v", err)
		}
		got = append(got, sg)
	}
	if err := rows.Err(); err != nil {
		return v.record("database", "first student grades", Fail, "database error: %v", err)
	}

	if !slices.Equal(got, v.exp.FirstStudentGrades) {
		return v.record("database", "first student grades", Fail, "mismatch: %v", got)
	}
	return v.record("database", "first student grades", Pass, "%v", got)
}

func (v *Verifier) checkQueriesFile() {
	b, err := os.ReadFile(v.exp.QueriesPath())
	if err != nil {
		v.record("queries", "required sections", Fail, "cannot read %s: %v", v.exp.QueriesPath(), err)
		return
	}
	content := string(b)

	var missing []string
	for _, s := range v.exp.RequiredSections {
		if !strings.Contains(content, s) {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		v.record("queries", "required sections", Fail, "missing %q", missing)
		return
	}
	v.record("queries", "required sections", Pass, "all %d required queries found", len(v.exp.RequiredSections))
}

func (v *Verifier) checkFileSizes() {
	files := []struct {
		path string
		win  SizeWindow
	}{
		{v.exp.DBPath(), v.exp.DBSize},
		{v.exp.QueriesPath(), v.exp.QueriesSize},
	}
	for _, f := range files {
		name := filepath.Base(f.path)
		info, err := os.Stat(f.path)
		if err != nil {
			v.record("sizes", name, Warn, "cannot stat: %v", err)
			continue
		}
		size := info.Size()
		if size >= f.win.Min && size <= f.win.Max {
			v.record("sizes", name, Pass, "%s (reasonable size)", humanize.Bytes(uint64(size)))
			continue
		}
		v.record("sizes", name, Warn, "%s (expected %s to %s)", humanize.Bytes(uint64(size)),
			humanize.Bytes(uint64(f.win.Min)), humanize.Bytes(uint64(f.win.Max)))
	}
}

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master
		 WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func sameSet(a, b []string) bool {
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(slices.Compact(x), slices.Compact(y))
}
