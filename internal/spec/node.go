// Package spec loads and models the declarative description of an expected
// submission layout.
//
// A specification document is a tree of directory descriptions. Each level
// carries metadata (compulsory files, optional files, data-file patterns, a
// git-root flag, a variable-name pattern) and arbitrarily named child
// directories. The tree is built once per document and never mutated, so it
// is safe to share across concurrent validation runs.
package spec

import (
	"fmt"
	"sort"
	"strings"
)

// Node describes one directory level of the expected submission structure.
type Node struct {
	// Name is the literal directory name. Empty when NamePattern is set.
	Name string

	// NamePattern is a shell wildcard the directory name must match (the
	// variable-name case, e.g. a candidate-number folder). Exactly one of
	// Name and NamePattern applies per node.
	NamePattern string

	// Compulsory lists files that must be present as direct children.
	// Sorted, so diagnostics are emitted in a fixed order.
	Compulsory []string

	// Optional lists files that may be present; absence is never reported.
	Optional []string

	// DataPatterns lists wildcard patterns for student-named data files,
	// which are exempt from unexpected-file reporting.
	DataPatterns []string

	// GitRoot marks a directory that must anchor a clean git working tree.
	GitRoot bool

	// OptionalSubtree marks a directory whose absence is reported as
	// information rather than a warning. Set explicitly with the
	// `optional-directory` key; when the key is absent the loader infers it
	// the way the checker always has (a subtree with no compulsory files
	// anywhere beneath it is optional).
	OptionalSubtree bool

	// Children holds the expected subdirectories in declaration order.
	Children []*Node
}

// VariableName reports whether this node matches directory names by pattern.
func (n *Node) VariableName() bool {
	return n.NamePattern != ""
}

// DisplayName is the literal name, or the pattern for variable-named nodes.
func (n *Node) DisplayName() string {
	if n.VariableName() {
		return n.NamePattern
	}
	return n.Name
}

// Child returns the literal-named child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if !c.VariableName() && c.Name == name {
			return c
		}
	}
	return nil
}

// WildcardChild returns the variable-named child of this node, or nil.
// Well-formed specs have at most one per level.
func (n *Node) WildcardChild() *Node {
	for _, c := range n.Children {
		if c.VariableName() {
			return c
		}
	}
	return nil
}

// HasCompulsoryContent reports whether the subtree rooted at n declares any
// compulsory files. Used to infer optionality when a spec document does not
// declare it explicitly.
func (n *Node) HasCompulsoryContent() bool {
	if len(n.Compulsory) > 0 {
		return true
	}
	for _, c := range n.Children {
		if c.HasCompulsoryContent() {
			return true
		}
	}
	return false
}

// String renders the expected layout as an indented tree: files first (with
// an [opt] marker for optional ones), then data patterns, then
// subdirectories.
func (n *Node) String() string {
	var b strings.Builder
	b.WriteString(n.DisplayName())

	files := make([]string, 0, len(n.Compulsory)+len(n.Optional))
	files = append(files, n.Compulsory...)
	for _, f := range n.Optional {
		files = append(files, f+" [opt]")
	}
	sort.Strings(files)
	for _, f := range files {
		fmt.Fprintf(&b, "\n\t%s", f)
	}
	for _, p := range n.DataPatterns {
		fmt.Fprintf(&b, "\n\t%s", p)
	}
	for _, c := range n.Children {
		b.WriteString("\n\t")
		b.WriteString(strings.ReplaceAll(c.String(), "\n", "\n\t"))
	}
	return b.String()
}
