// Package matcher implements the directory-structure matching engine.
//
// A Matcher recursively walks a real directory tree alongside a spec.Node
// tree, classifying every filesystem entry and every spec requirement into a
// report.Report. Matching fails soft: only a missing directory, an ambiguous
// wildcard match, or an unusable git root stop descent into a subtree. Every
// other mismatch is recorded and checking continues, so a single run reports
// as much as possible.
package matcher

import (
	"path/filepath"
	"strings"

	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/fileutil"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/gitcheck"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/pattern"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/report"
	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/spec"
)

// Matcher validates real directory trees against an expected structure. The
// zero value is not usable; construct with New. A single Matcher is safe to
// reuse across runs since each run builds its own report.
type Matcher struct {
	// FS lists directory contents. Defaults to the real filesystem.
	FS fileutil.Lister

	// Git checks declared git roots.
	Git gitcheck.StatusProvider

	// MarkingBranch, when set, is the branch a clean git root is expected to
	// be on; a clean repository on another branch draws a warning.
	MarkingBranch string
}

// New creates a Matcher that reads the real filesystem and checks git roots
// through the provided status provider.
func New(git gitcheck.StatusProvider) *Matcher {
	return &Matcher{FS: fileutil.OSLister{}, Git: git}
}

// Match validates the directory at root against the expected structure and
// returns the report tree. It never returns an error: every outcome,
// including a missing root, is a finding in the report.
func (m *Matcher) Match(node *spec.Node, root string) *report.Report {
	return m.match(node, root, ".", false)
}

// match checks one directory level. structureOnly suppresses per-file
// accounting below an unusable git root; subdirectory existence is still
// verified so structural problems surface exactly once.
func (m *Matcher) match(node *spec.Node, dir, rel string, structureOnly bool) *report.Report {
	rep := report.New(rel)

	entries, err := m.FS.ListDir(dir)
	if err != nil {
		rep.AddFatal("is not a directory, or could not be read")
		return rep
	}
	files, dirs := fileutil.Partition(entries)

	if node.GitRoot && !structureOnly {
		if unusable := m.checkGitRoot(dir, rep); unusable {
			structureOnly = true
		}
	}

	if !structureOnly {
		m.checkFiles(node, files, rep)
	}

	m.checkSubdirs(node, dir, rel, dirs, rep, structureOnly)
	return rep
}

// checkGitRoot verifies a declared git root and reports whether it is
// unusable. A broken git root is fatal once; the priority order of the
// cleanliness complaints mirrors what a submitter should fix first.
func (m *Matcher) checkGitRoot(dir string, rep *report.Report) bool {
	status, err := m.Git.Check(dir)
	if err != nil {
		rep.AddFatal("could not determine git status: %v", err)
		return true
	}

	switch status.State {
	case gitcheck.StateNotRepository:
		rep.AddFatal("not a git repository")
		return true
	case gitcheck.StateWrongRoot:
		rep.AddFatal("expected a git repository rooted here, but this directory is inside a repository rooted elsewhere")
		return true
	case gitcheck.StateUnclean:
		switch {
		case len(status.Untracked) > 0:
			rep.AddFatal("untracked changes present in git repository: %s", strings.Join(status.Untracked, ", "))
		case len(status.Unstaged) > 0:
			rep.AddFatal("unstaged changes present in git repository: %s", strings.Join(status.Unstaged, ", "))
		default:
			rep.AddFatal("uncommitted changes present in git repository: %s", strings.Join(status.Uncommitted, ", "))
		}
		return true
	}

	if m.MarkingBranch != "" && status.Branch != "" && status.Branch != m.MarkingBranch {
		rep.AddWarning("repository is on branch %q, not the marking branch %q", status.Branch, m.MarkingBranch)
	}
	return false
}

// checkFiles accounts for the direct-child files of one directory:
// compulsory names in sorted order, then everything else classified as
// optional, data, or unexpected.
func (m *Matcher) checkFiles(node *spec.Node, files []fileutil.Entry, rep *report.Report) {
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.Name] = true
	}

	for _, want := range node.Compulsory {
		if present[want] {
			continue
		}
		if actual := nearMatch(want, files); actual != "" {
			rep.AddWarning("compulsory file %q not found: did you mean %q (same name, different casing)?", want, actual)
		} else {
			rep.AddWarning("compulsory file %q not found", want)
		}
	}

	var foundOptional []string
	for _, f := range files {
		switch {
		case containsName(node.Compulsory, f.Name):
		case containsName(node.Optional, f.Name):
			foundOptional = append(foundOptional, f.Name)
		case matchesAny(node.DataPatterns, f.Name):
			foundOptional = append(foundOptional, f.Name)
		default:
			rep.AddInformation("unexpected file %q", f.Name)
		}
	}
	if len(foundOptional) > 0 {
		rep.AddInformation("found optional files: %s", strings.Join(foundOptional, ", "))
	}
}

// checkSubdirs matches real subdirectories to spec children, literal names
// first and then the (at most one) variable-named child, recursing into
// every match. Real directories no spec child claims are reported but never
// descended into.
func (m *Matcher) checkSubdirs(node *spec.Node, dir, rel string, dirs []fileutil.Entry, rep *report.Report, structureOnly bool) {
	consumed := make(map[string]bool)

	for _, child := range node.Children {
		if child.VariableName() {
			continue
		}
		if hasDir(dirs, child.Name) {
			consumed[child.Name] = true
			rep.AddChild(m.match(child, filepath.Join(dir, child.Name), joinRel(rel, child.Name), structureOnly))
		} else if child.OptionalSubtree {
			rep.AddInformation("optional subdirectory %q not found", child.Name)
		} else {
			rep.AddWarning("required subdirectory %q not found", child.Name)
		}
	}

	if wildcard := node.WildcardChild(); wildcard != nil {
		var matches []string
		for _, d := range dirs {
			if !consumed[d.Name] && pattern.Matches(wildcard.NamePattern, d.Name) {
				matches = append(matches, d.Name)
			}
		}

		switch {
		case len(matches) > 1:
			// Submission layouts assume a single variable-named directory
			// per level; picking one silently would validate the wrong tree.
			rep.AddFatal("directories %s all match pattern %q; cannot identify which one is intended",
				strings.Join(matches, ", "), wildcard.NamePattern)
			for _, name := range matches {
				consumed[name] = true
			}
		case len(matches) == 1:
			name := matches[0]
			consumed[name] = true
			rep.AddInformation("matched directory %q to pattern %q", name, wildcard.NamePattern)
			rep.AddChild(m.match(wildcard, filepath.Join(dir, name), joinRel(rel, name), structureOnly))
		case wildcard.OptionalSubtree:
			rep.AddInformation("no subdirectory matching optional pattern %q found", wildcard.NamePattern)
		default:
			rep.AddWarning("no subdirectory matching pattern %q found", wildcard.NamePattern)
		}
	}

	for _, d := range dirs {
		if !consumed[d.Name] {
			rep.AddInformation("unexpected directory %q", d.Name)
		}
	}
}

// nearMatch returns the name of a file differing from want only by casing,
// or "" when none exists.
func nearMatch(want string, files []fileutil.Entry) string {
	for _, f := range files {
		if strings.EqualFold(f.Name, want) {
			return f.Name
		}
	}
	return ""
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func matchesAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if pattern.Matches(p, name) {
			return true
		}
	}
	return false
}

func hasDir(dirs []fileutil.Entry, name string) bool {
	for _, d := range dirs {
		if d.Name == name {
			return true
		}
	}
	return false
}

// joinRel extends a report-relative path, keeping "." for the root and
// forward slashes everywhere else so reports render identically across
// platforms.
func joinRel(rel, name string) string {
	if rel == "." || rel == "" {
		return name
	}
	return rel + "/" + name
}
