package cli

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rcliao/grade-analyzer/internal/verify"
)

// execute runs the root command with args and stdin, isolated from the
// user's config and history.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GRADE_ANALYZER_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("GRADE_ANALYZER_NO_HISTORY", "true")

	configPath, formatFlag, verbose = "", "", false
	t.Cleanup(func() { configPath, formatFlag, verbose = "", "", false })

	var out bytes.Buffer
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	if args == nil {
		args = []string{} // nil would make cobra read os.Args
	}
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestAnalyzeScripted(t *testing.T) {
	out, err := execute(t, "1\nAlice Johnson\n2\nAlice Johnson\n88\n92\n85\ndone\n3\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Johnson's average grade is 88.3.")
	assert.Contains(t, out, "Exiting program.")
}

func TestAnalyzeEOFIsCleanExit(t *testing.T) {
	_, err := execute(t, "1\nBob\n", "analyze")
	assert.NoError(t, err)
}

func TestAnalyzeJSONReport(t *testing.T) {
	out, err := execute(t, "1\nAlice\n3\n5\n", "analyze", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"summary": null`)
}

func TestRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "", "analyze", "--format", "xml")
	assert.Error(t, err)
}

func TestProfileCommand(t *testing.T) {
	out, err := execute(t, "Sam Doe\n2001\nreading\nstop\n", "profile", "--year", "2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Name: Sam Doe")
	assert.Contains(t, out, "Age: 24")
	assert.Contains(t, out, "Life Stage: Adult")
	assert.Contains(t, out, "- reading")
}

func TestVerifyCommandMissingFiles(t *testing.T) {
	out, err := execute(t, "", "verify", "--dir", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, verify.ErrFailed))
	assert.Contains(t, out, "school.db is missing")
	assert.Contains(t, out, "Some checks failed.")
}

func TestVerifyCommandBadDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := sql.Open("sqlite", filepath.Join(dir, "school.db"))
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE teachers (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "queries.sql"), []byte("SELECT 1;"), 0o644))

	out, err := execute(t, "", "verify", "--dir", dir, "--format", "json")
	require.Error(t, err)
	assert.Contains(t, out, `"name": "tables"`)
	assert.Contains(t, out, `"ok": false`)
}
