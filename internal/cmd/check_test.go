package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpec = `title: Rail Fare Prices
number: 1
year: 2024
structure:
  compulsory:
    - main.py
  data:
    data-file-types:
      - "*.csv"
    optional-directory: true
`

// runCommand executes the root command with the given arguments and returns
// the captured stdout and the command error.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

// writeSpec writes the standard test specification and returns its path along
// with a --config argument pointing at a nonexistent file, so each test runs
// on default configuration regardless of the invoking user's home directory.
func writeSpec(t *testing.T) (specPath, configPath string) {
	t.Helper()
	dir := t.TempDir()
	specPath = filepath.Join(dir, "assignment.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(testSpec), 0644))
	return specPath, filepath.Join(dir, "no-such-config.yaml")
}

func TestCheckCleanSubmission(t *testing.T) {
	specPath, configPath := writeSpec(t)

	submission := filepath.Join(t.TempDir(), "12345678")
	require.NoError(t, os.MkdirAll(submission, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(submission, "main.py"), nil, 0644))

	out, err := runCommand(t, "--config", configPath, "check", "--spec", specPath, "--no-history", submission)

	require.NoError(t, err)
	assert.Contains(t, out, "Checking "+submission+" against Assignment 01, 2024-2025: Rail Fare Prices")
	assert.Contains(t, out, "✓ Submission matches the expected structure.")
	assert.NotContains(t, out, "! Warning")
}

func TestCheckFailingSubmission(t *testing.T) {
	specPath, configPath := writeSpec(t)

	submission := filepath.Join(t.TempDir(), "12345678")
	require.NoError(t, os.MkdirAll(submission, 0755))

	out, err := runCommand(t, "--config", configPath, "check", "--spec", specPath, "--no-history", submission)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 submission(s) failed validation")
	assert.Contains(t, out, "WARNING")
	assert.Contains(t, out, `compulsory file "main.py" not found`)
}

func TestCheckMultipleSubmissions(t *testing.T) {
	specPath, configPath := writeSpec(t)

	base := t.TempDir()
	good := filepath.Join(base, "11111111")
	bad := filepath.Join(base, "22222222")
	require.NoError(t, os.MkdirAll(good, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(good, "main.py"), nil, 0644))
	require.NoError(t, os.MkdirAll(bad, 0755))

	out, err := runCommand(t, "--config", configPath, "check", "--spec", specPath, "--no-history", good, bad)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 submission(s) failed validation")
	assert.Contains(t, out, "Checking "+good)
	assert.Contains(t, out, "Checking "+bad)
}

func TestCheckIgnoreExtraFiles(t *testing.T) {
	specPath, configPath := writeSpec(t)

	submission := filepath.Join(t.TempDir(), "12345678")
	require.NoError(t, os.MkdirAll(submission, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(submission, "main.py"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(submission, "scratch.txt"), nil, 0644))

	out, err := runCommand(t, "--config", configPath, "check", "--spec", specPath, "--no-history",
		"--ignore-extra-files", submission)

	require.NoError(t, err, "information findings alone do not fail a submission")
	assert.NotContains(t, out, "INFORMATION")
	assert.NotContains(t, out, "scratch.txt")
}

func TestCheckBadSubmissionName(t *testing.T) {
	specPath, configPath := writeSpec(t)

	submission := filepath.Join(t.TempDir(), "student-jane")
	require.NoError(t, os.MkdirAll(submission, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(submission, "main.py"), nil, 0644))

	out, err := runCommand(t, "--config", configPath, "check", "--spec", specPath, "--no-history", submission)

	require.NoError(t, err, "name notices are advisory, not findings")
	assert.Contains(t, out, `! Warning: submission is named "student-jane": this is not an 8-digit number`)
}

func TestCheckRequiresSpec(t *testing.T) {
	_, configPath := writeSpec(t)

	submission := t.TempDir()
	_, err := runCommand(t, "--config", configPath, "check", "--no-history", submission)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no specification document given")
}

func TestCheckRequiresArgs(t *testing.T) {
	_, err := runCommand(t, "check")
	require.Error(t, err)
}

func TestCheckRecordsHistory(t *testing.T) {
	specPath, _ := writeSpec(t)

	dbPath := filepath.Join(t.TempDir(), "history.db")
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("history:\n  enabled: true\n  db_path: "+dbPath+"\n"), 0644))

	submission := filepath.Join(t.TempDir(), "12345678")
	require.NoError(t, os.MkdirAll(submission, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(submission, "main.py"), nil, 0644))

	_, err := runCommand(t, "--config", configPath, "check", "--spec", specPath, submission)
	require.NoError(t, err)

	out, err := runCommand(t, "--config", configPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, submission)
	assert.Contains(t, out, "fatal=0 warnings=0")
}

func TestCandidateNotices(t *testing.T) {
	assert.Nil(t, candidateNotices("/submissions/12345678", ""))
	assert.Nil(t, candidateNotices("/submissions/12345678", "12345678"))
	assert.Nil(t, candidateNotices("/submissions/12345678.tar.gz", ""), "archive-derived names keep the leading number")

	notices := candidateNotices("/submissions/1234567", "")
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0].Title, "not an 8-digit number")

	notices = candidateNotices("/submissions/12345678", "87654321")
	require.Len(t, notices, 1)
	assert.Equal(t, "submission name and candidate number do not match", notices[0].Title)
}

func TestAllDigits(t *testing.T) {
	assert.True(t, allDigits("12345678"))
	assert.False(t, allDigits("1234567a"))
	assert.False(t, allDigits(""))
}

func TestHistoryEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("history:\n  enabled: true\n  db_path: "+dbPath+"\n"), 0644))

	out, err := runCommand(t, "--config", configPath, "history")
	require.NoError(t, err)
	assert.Equal(t, "No recorded runs.\n", out)
}
