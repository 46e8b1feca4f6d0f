// Package fileutil provides filesystem access for the submission checker.
//
// The matcher never touches the filesystem directly; it lists directory
// contents through the Lister interface so tests can substitute in-memory
// trees and so a single stable root path is the only thing a validation run
// requires.
package fileutil
