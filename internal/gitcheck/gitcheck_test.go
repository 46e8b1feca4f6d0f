package gitcheck

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptRunner answers git invocations from a canned table keyed by the first
// subcommand.
type scriptRunner struct {
	responses map[string]string
	errors    map[string]error
	calls     []string
}

func (s *scriptRunner) Run(dir string, args ...string) (string, error) {
	key := args[0]
	s.calls = append(s.calls, strings.Join(args, " "))
	if err, ok := s.errors[key]; ok {
		return "", err
	}
	return s.responses[key], nil
}

func TestCheckNotRepository(t *testing.T) {
	runner := &scriptRunner{errors: map[string]error{
		"rev-parse": errors.New("git rev-parse --show-toplevel: fatal: not a git repository"),
	}}
	status, err := NewCheckerWithRunner(runner).Check("/tmp/submission")

	require.NoError(t, err)
	assert.Equal(t, StateNotRepository, status.State)
	// No further git commands once the repository is ruled out.
	assert.Equal(t, []string{"rev-parse --show-toplevel"}, runner.calls)
}

func TestCheckWrongRoot(t *testing.T) {
	dir := t.TempDir()
	runner := &scriptRunner{responses: map[string]string{
		"rev-parse": dir + "\n",
	}}
	status, err := NewCheckerWithRunner(runner).Check(dir + "/nested")

	require.NoError(t, err)
	assert.Equal(t, StateWrongRoot, status.State)
}

func TestCheckClean(t *testing.T) {
	dir := t.TempDir()
	runner := &scriptRunner{responses: map[string]string{
		"rev-parse": dir + "\n",
		"branch":    "main\n",
		"status":    "",
	}}
	status, err := NewCheckerWithRunner(runner).Check(dir)

	require.NoError(t, err)
	assert.Equal(t, StateClean, status.State)
	assert.Equal(t, "main", status.Branch)
	assert.Empty(t, status.Untracked)
	assert.Empty(t, status.Unstaged)
	assert.Empty(t, status.Uncommitted)
}

func TestCheckUnclean(t *testing.T) {
	dir := t.TempDir()
	porcelain := strings.Join([]string{
		"?? scratch.py",
		" M main.py",
		"M  report.md",
		"MM both.py",
	}, "\n") + "\n"

	runner := &scriptRunner{responses: map[string]string{
		"rev-parse": dir + "\n",
		"branch":    "main\n",
		"status":    porcelain,
	}}
	status, err := NewCheckerWithRunner(runner).Check(dir)

	require.NoError(t, err)
	assert.Equal(t, StateUnclean, status.State)
	assert.Equal(t, []string{"scratch.py"}, status.Untracked)
	assert.Equal(t, []string{"main.py", "both.py"}, status.Unstaged)
	assert.Equal(t, []string{"report.md", "both.py"}, status.Uncommitted)
}

func TestCheckDetachedHead(t *testing.T) {
	dir := t.TempDir()
	runner := &scriptRunner{responses: map[string]string{
		"rev-parse": dir + "\n",
		"branch":    "\n",
		"status":    "",
	}}
	status, err := NewCheckerWithRunner(runner).Check(dir)

	require.NoError(t, err)
	assert.Equal(t, StateClean, status.State)
	assert.Empty(t, status.Branch)
}

func TestCheckStatusFailure(t *testing.T) {
	dir := t.TempDir()
	runner := &scriptRunner{
		responses: map[string]string{"rev-parse": dir + "\n", "branch": "main\n"},
		errors:    map[string]error{"status": errors.New("git status: boom")},
	}
	_, err := NewCheckerWithRunner(runner).Check(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read git status")
}

func TestParsePorcelainSkipsShortLines(t *testing.T) {
	status := &Status{}
	parsePorcelain("\n \n??\n?? ok.txt\n", status)
	assert.Equal(t, []string{"ok.txt"}, status.Untracked)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "clean", StateClean.String())
	assert.Equal(t, "not a repository", StateNotRepository.String())
	assert.Equal(t, "rooted elsewhere", StateWrongRoot.String())
	assert.Equal(t, "not clean", StateUnclean.String())
}
