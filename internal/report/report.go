// Package report holds the findings produced by a validation run.
//
// A Report is built per directory level and owns the reports of its
// subdirectories. Findings are data, never errors: the matcher records every
// mismatch it sees and keeps going wherever it can.
package report

import "fmt"

// Severity classifies a finding.
type Severity int

const (
	// Fatal findings are structural problems that block further checking of
	// the affected subtree (missing submission root, unusable git root,
	// wildcard ambiguity).
	Fatal Severity = iota
	// Warning findings are submission problems that do not stop the checker
	// (missing compulsory files, missing required subdirectories).
	Warning
	// Information findings are notices the submitter may want to review
	// (unexpected files or directories, matched name patterns).
	Information
)

// String returns the section header used when rendering the severity.
func (s Severity) String() string {
	switch s {
	case Fatal:
		return "FATAL"
	case Warning:
		return "WARNING"
	case Information:
		return "INFORMATION"
	default:
		return "UNKNOWN"
	}
}

// Finding is a single validation outcome, located by the path of the
// directory it was recorded in, relative to the submission root.
type Finding struct {
	Severity Severity
	Path     string
	Message  string
}

// String renders the finding as "path: message". The submission root renders
// without a path prefix.
func (f Finding) String() string {
	if f.Path == "" || f.Path == "." {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.Path, f.Message)
}

// Report collects the findings for one expected directory and the reports of
// its subdirectories. A Report is built fresh per validation run and is not
// modified once the run returns it.
type Report struct {
	// Path is the directory this report describes, relative to the
	// submission root ("." for the root itself).
	Path string

	Fatal       []Finding
	Warnings    []Finding
	Information []Finding

	// Children are the reports of subdirectories, in the order they were
	// visited.
	Children []*Report
}

// New creates an empty report for the directory at the given relative path.
func New(path string) *Report {
	return &Report{Path: path}
}

// AddFatal records a fatal finding at this report's path.
func (r *Report) AddFatal(format string, args ...interface{}) {
	r.Fatal = append(r.Fatal, Finding{Severity: Fatal, Path: r.Path, Message: fmt.Sprintf(format, args...)})
}

// AddWarning records a warning finding at this report's path.
func (r *Report) AddWarning(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Finding{Severity: Warning, Path: r.Path, Message: fmt.Sprintf(format, args...)})
}

// AddInformation records an information finding at this report's path.
func (r *Report) AddInformation(format string, args ...interface{}) {
	r.Information = append(r.Information, Finding{Severity: Information, Path: r.Path, Message: fmt.Sprintf(format, args...)})
}

// AddChild nests a subdirectory report under this one.
func (r *Report) AddChild(child *Report) {
	r.Children = append(r.Children, child)
}
