// Package pattern matches literal names and shell-style wildcard patterns
// against filesystem entry names.
package pattern

import (
	"fmt"
	"path"
	"strings"
)

// Matches reports whether name matches pattern. A pattern without glob
// metacharacters must equal name exactly; otherwise shell-style matching
// applies ('*' any run, '?' single character, '[...]' character class). The
// whole name must match the whole pattern, and matching is case-sensitive:
// submissions are graded on Linux-family filesystems.
func Matches(pattern, name string) bool {
	if !IsPattern(pattern) {
		return pattern == name
	}
	ok, err := path.Match(pattern, name)
	if err != nil {
		// Malformed patterns are rejected at spec-load time; a pattern that
		// slips through matches nothing.
		return false
	}
	return ok
}

// IsPattern reports whether s contains glob metacharacters.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?[\\")
}

// Validate checks that a glob pattern is well formed, so malformed
// specs fail at load time rather than silently matching nothing.
func Validate(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("pattern is empty")
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("malformed pattern %q: %w", pattern, err)
	}
	// path.Match stops scanning at the first mismatch, so probe the syntax
	// directly for the two malformed cases it can miss.
	if strings.HasSuffix(pattern, "\\") {
		return fmt.Errorf("malformed pattern %q: trailing backslash", pattern)
	}
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[':
			if !inClass {
				inClass = true
			}
		case ']':
			inClass = false
		}
	}
	if inClass {
		return fmt.Errorf("malformed pattern %q: unclosed character class", pattern)
	}
	return nil
}
