package verify

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureQueries = `-- school database
CREATE TABLE students (id INTEGER PRIMARY KEY, full_name TEXT NOT NULL, birth_year INTEGER);
CREATE TABLE grades (id INTEGER PRIMARY KEY, student_id INTEGER REFERENCES students(id), subject TEXT, grade INTEGER);
INSERT INTO students (full_name, birth_year) VALUES ('Alice Johnson', 2005);
INSERT INTO grades (student_id, subject, grade) VALUES (1, 'Math', 88);
SELECT s.full_name, AVG(g.grade) FROM students s JOIN grades g ON g.student_id = s.id GROUP BY s.id;
SELECT * FROM students WHERE birth_year > 2004;
SELECT subject, AVG(grade) FROM grades GROUP BY subject;
SELECT * FROM students LIMIT 3;
SELECT * FROM grades WHERE grade < 80;
`

// newFixture writes a school.db and queries.sql matching the default
// expectations, with students and grades counts overridable.
func newFixture(t *testing.T, students, grades int) Expectations {
	t.Helper()
	dir := t.TempDir()

	db, err := sql.Open("sqlite", filepath.Join(dir, "school.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
	CREATE TABLE students (id INTEGER PRIMARY KEY, full_name TEXT NOT NULL, birth_year INTEGER);
	CREATE TABLE grades (
		id         INTEGER PRIMARY KEY,
		student_id INTEGER NOT NULL REFERENCES students(id),
		subject    TEXT NOT NULL,
		grade      INTEGER NOT NULL
	);`)
	require.NoError(t, err)

	names := []string{"Alice Johnson", "Brian Smith", "Carla Diaz", "Daniel Kim", "Eva Petrova",
		"Farid Khan", "Grace Lee", "Hugo Martin", "Ines Costa", "Jon Snow"}
	for i := 0; i < students; i++ {
		_, err := db.Exec(`INSERT INTO students (full_name, birth_year) VALUES (?, ?)`, names[i], 2003+i%4)
		require.NoError(t, err)
	}

	alice := []struct {
		subject string
		grade   int
	}{{"Math", 88}, {"English", 92}, {"Science", 85}}
	n := 0
	for _, g := range alice {
		if n == grades {
			break
		}
		_, err := db.Exec(`INSERT INTO grades (student_id, subject, grade) VALUES (1, ?, ?)`, g.subject, g.grade)
		require.NoError(t, err)
		n++
	}
	subjects := []string{"Math", "English", "Science"}
	for i := 0; n < grades; i++ {
		sid := 2 + i%(students-1)
		_, err := db.Exec(`INSERT INTO grades (student_id, subject, grade) VALUES (?, ?, ?)`,
			sid, subjects[i%3], 60+i%40)
		require.NoError(t, err)
		n++
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "queries.sql"), []byte(fixtureQueries), 0o644))

	exp := DefaultExpectations()
	exp.Dir = dir
	return exp
}

func TestVerifyPasses(t *testing.T) {
	exp := newFixture(t, 9, 26)

	res, err := New(exp, nil).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK, "failed: %+v", res.Failed())
	assert.Empty(t, res.Failed())

	names := make([]string, 0, len(res.Checks))
	for _, c := range res.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"school.db", "queries.sql",
		"tables", "students count", "grades count", "first student", "first student grades",
		"required sections",
		"school.db", "queries.sql",
	}, names)
}

func TestVerifyMissingFilesStops(t *testing.T) {
	exp := DefaultExpectations()
	exp.Dir = t.TempDir()

	res, err := New(exp, nil).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.OK)
	require.Len(t, res.Checks, 2)
	for _, c := range res.Checks {
		assert.Equal(t, Fail, c.Status)
		assert.Equal(t, "files", c.Step)
	}
}

func TestVerifyWrongStudentCountStopsDatabaseChecks(t *testing.T) {
	exp := newFixture(t, 8, 26)

	res, err := New(exp, nil).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.OK)

	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "students count", failed[0].Name)
	assert.Contains(t, failed[0].Detail, "wrong count 8, expected 9")

	for _, c := range res.Checks {
		assert.NotEqual(t, "grades count", c.Name, "database checks should stop at first failure")
	}
	// Queries and size steps still run.
	assert.Equal(t, "sizes", res.Checks[len(res.Checks)-1].Step)
}

func TestVerifyWrongGrades(t *testing.T) {
	exp := newFixture(t, 9, 26)
	exp.FirstStudentGrades[0].Grade = 91

	res, err := New(exp, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Failed(), 1)
	assert.Equal(t, "first student grades", res.Failed()[0].Name)
}

func TestVerifyWrongTables(t *testing.T) {
	exp := newFixture(t, 9, 26)
	exp.Tables = []string{"students", "grades", "teachers"}

	res, err := New(exp, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Failed(), 1)
	assert.Equal(t, "tables", res.Failed()[0].Name)
}

func TestVerifyMissingSections(t *testing.T) {
	exp := newFixture(t, 9, 26)
	script := strings.Replace(fixtureQueries, "LIMIT 3", "LIMIT 5", 1)
	require.NoError(t, os.WriteFile(exp.QueriesPath(), []byte(script), 0o644))

	res, err := New(exp, nil).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Failed(), 1)
	assert.Equal(t, "required sections", res.Failed()[0].Name)
	assert.Contains(t, res.Failed()[0].Detail, fmt.Sprintf("%q", "LIMIT 3"))
}

func TestVerifySizeOnlyWarns(t *testing.T) {
	exp := newFixture(t, 9, 26)
	exp.QueriesSize = SizeWindow{Min: 1 << 20, Max: 2 << 20}

	res, err := New(exp, nil).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK)

	last := res.Checks[len(res.Checks)-1]
	assert.Equal(t, "queries.sql", last.Name)
	assert.Equal(t, Warn, last.Status)
	assert.Contains(t, last.Detail, "expected 1.0 MB to 2.1 MB")
}

func TestSameSet(t *testing.T) {
	assert.True(t, sameSet([]string{"grades", "students"}, []string{"students", "grades"}))
	assert.False(t, sameSet([]string{"grades"}, []string{"students", "grades"}))
}
