// Package display renders validation results and user-facing notices as
// text.
//
// Rendering is a presentation concern only: suppressing information findings
// here never changes what the matcher computed. All output goes through an
// injected io.Writer so tests capture it directly.
package display
