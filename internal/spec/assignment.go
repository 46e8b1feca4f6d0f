package spec

import "fmt"

// defaultMarkingBranch is the branch submissions are marked on when the
// specification does not name one.
const defaultMarkingBranch = "main"

// Assignment is a loaded specification document: the expected directory
// structure plus the header metadata describing which assignment it is for.
type Assignment struct {
	// Title is the human-readable assignment title.
	Title string

	// ID is the assignment number, zero-padded to two digits.
	ID string

	// Year is the calendar year the academic year starts in.
	Year int

	// MarkingBranch is the branch declared git roots are expected to be on.
	// Empty means the default, "main".
	MarkingBranch string

	// Structure is the root of the expected directory tree.
	Structure *Node
}

// AcademicYear renders the assignment's academic year, e.g. "2024-2025".
func (a *Assignment) AcademicYear() string {
	return fmt.Sprintf("%d-%d", a.Year, a.Year+1)
}

// Name renders the full assignment name:
// "Assignment 01, 2024-2025: Rail Fare Prices".
func (a *Assignment) Name() string {
	return fmt.Sprintf("Assignment %s, %s: %s", a.ID, a.AcademicYear(), a.Title)
}

// Branch returns the marking branch, defaulting to "main".
func (a *Assignment) Branch() string {
	if a.MarkingBranch == "" {
		return defaultMarkingBranch
	}
	return a.MarkingBranch
}
