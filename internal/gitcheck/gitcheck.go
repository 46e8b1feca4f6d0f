// Package gitcheck verifies that a directory anchors a clean git working
// tree.
//
// The matcher consumes the StatusProvider interface only; the production
// implementation shells out to the git CLI. Nothing in the checker parses
// repository internals itself.
package gitcheck

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// State classifies the condition of a declared git root.
type State int

const (
	// StateClean means a repository is rooted at the directory and its
	// working tree has no untracked, unstaged or uncommitted changes.
	StateClean State = iota
	// StateNotRepository means no git repository was found at the directory.
	StateNotRepository
	// StateWrongRoot means the directory is inside a repository whose top
	// level is a different directory.
	StateWrongRoot
	// StateUnclean means a repository is present but its working tree has
	// local changes.
	StateUnclean
)

// String returns a short description of the state.
func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateNotRepository:
		return "not a repository"
	case StateWrongRoot:
		return "rooted elsewhere"
	case StateUnclean:
		return "not clean"
	default:
		return "unknown"
	}
}

// Status describes a declared git root after inspection.
type Status struct {
	State State

	// Branch is the currently checked-out branch, empty on detached HEAD or
	// when no repository is present.
	Branch string

	// Untracked, Unstaged and Uncommitted list the offending paths when
	// State is StateUnclean. Uncommitted holds staged-but-not-committed
	// changes.
	Untracked   []string
	Unstaged    []string
	Uncommitted []string
}

// StatusProvider is the capability the matcher consumes to check declared
// git roots. It is injected at construction time so tests substitute fakes.
type StatusProvider interface {
	Check(path string) (*Status, error)
}

// CommandRunner executes a git command in a directory and returns its
// standard output. It exists so tests can fake git without a real
// repository.
type CommandRunner interface {
	Run(dir string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

// Checker implements StatusProvider using git commands.
type Checker struct {
	// Runner executes git commands. Defaults to the real git CLI.
	Runner CommandRunner
}

// NewChecker creates a Checker that runs the installed git binary.
func NewChecker() *Checker {
	return &Checker{Runner: execRunner{}}
}

// NewCheckerWithRunner creates a Checker with a custom command runner.
// Useful for testing.
func NewCheckerWithRunner(runner CommandRunner) *Checker {
	return &Checker{Runner: runner}
}

// Check inspects the directory at path and classifies it. A missing or
// unreadable repository is reported through Status, not an error: errors are
// reserved for the checker itself failing (for example git being absent).
func (c *Checker) Check(path string) (*Status, error) {
	top, err := c.Runner.Run(path, "rev-parse", "--show-toplevel")
	if err != nil {
		// git exits non-zero when there is no repository anywhere above
		// path; treat every rev-parse failure as "no repository here".
		return &Status{State: StateNotRepository}, nil
	}

	if !sameDir(strings.TrimSpace(top), path) {
		return &Status{State: StateWrongRoot}, nil
	}

	status := &Status{State: StateClean}

	if branch, err := c.Runner.Run(path, "branch", "--show-current"); err == nil {
		status.Branch = strings.TrimSpace(branch)
	}

	porcelain, err := c.Runner.Run(path, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to read git status for %s: %w", path, err)
	}
	parsePorcelain(porcelain, status)

	if len(status.Untracked)+len(status.Unstaged)+len(status.Uncommitted) > 0 {
		status.State = StateUnclean
	}
	return status, nil
}

// parsePorcelain fills the change lists from `git status --porcelain`
// output. Each line is "XY path": X is the index state, Y the working-tree
// state. A single path can be both staged and unstaged.
func parsePorcelain(out string, status *Status) {
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		x, y := line[0], line[1]
		name := strings.TrimSpace(line[3:])

		if x == '?' && y == '?' {
			status.Untracked = append(status.Untracked, name)
			continue
		}
		if x != ' ' {
			status.Uncommitted = append(status.Uncommitted, name)
		}
		if y != ' ' {
			status.Unstaged = append(status.Unstaged, name)
		}
	}
}

// sameDir reports whether two paths refer to the same directory, tolerating
// relative paths and symlinked locations (macOS /tmp resolves under
// /private).
func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	if absA == absB {
		return true
	}
	realA, errA := filepath.EvalSymlinks(absA)
	realB, errB := filepath.EvalSymlinks(absB)
	return errA == nil && errB == nil && realA == realB
}
