package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestListDirSorted verifies children are returned sorted with their kinds.
func TestListDirSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}

	entries, err := OSLister{}.ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}

	want := []Entry{
		{Name: "a.txt", Dir: false},
		{Name: "b.txt", Dir: false},
		{Name: "sub", Dir: true},
	}
	if len(entries) != len(want) {
		t.Fatalf("ListDir() returned %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, e, want[i])
		}
	}
}

// TestListDirMissing verifies a missing path is an error.
func TestListDirMissing(t *testing.T) {
	if _, err := (OSLister{}).ListDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ListDir() on missing path should error")
	}
}

// TestListDirOnFile verifies a file path is an error.
func TestListDirOnFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := (OSLister{}).ListDir(file); err == nil {
		t.Error("ListDir() on a file should error")
	}
}

// TestPartition verifies files and directories split without reordering.
func TestPartition(t *testing.T) {
	entries := []Entry{
		{Name: "a", Dir: false},
		{Name: "b", Dir: true},
		{Name: "c", Dir: false},
	}
	files, dirs := Partition(entries)
	if len(files) != 2 || files[0].Name != "a" || files[1].Name != "c" {
		t.Errorf("files = %+v, want a and c", files)
	}
	if len(dirs) != 1 || dirs[0].Name != "b" {
		t.Errorf("dirs = %+v, want b", dirs)
	}
}

// TestNames verifies name extraction preserves order.
func TestNames(t *testing.T) {
	names := Names([]Entry{{Name: "x"}, {Name: "y"}})
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("Names() = %v, want [x y]", names)
	}
}
