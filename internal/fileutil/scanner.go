package fileutil

import (
	"fmt"
	"os"
	"sort"
)

// Entry is a single child of a directory encountered during a scan.
type Entry struct {
	// Name is the base name of the entry.
	Name string
	// Dir reports whether the entry is a directory.
	Dir bool
}

// Lister lists the direct children of a directory.
type Lister interface {
	// ListDir returns the direct children of path, sorted by name.
	// It returns an error if path does not exist or is not a directory.
	ListDir(path string) ([]Entry, error)
}

// OSLister implements Lister against the real filesystem.
type OSLister struct{}

// ListDir returns the direct children of path, sorted by name.
func (OSLister) ListDir(path string) ([]Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{Name: de.Name(), Dir: de.IsDir()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Partition splits entries into files and directories, preserving order.
func Partition(entries []Entry) (files, dirs []Entry) {
	for _, e := range entries {
		if e.Dir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	return files, dirs
}

// Names returns the names of the given entries, preserving order.
func Names(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
