package walker

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkListsEveryRegularFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main")
	writeFile(t, filepath.Join(root, "README.md"), "# hi")
	writeFile(t, filepath.Join(root, "sub", "util.py"), "x = 1")
	writeFile(t, filepath.Join(root, "data.bin"), "\x00\x01")

	records, err := Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("records=%d: %+v", len(records), records)
	}

	byName := map[string]FileRecord{}
	for _, r := range records {
		byName[r.Filename] = r
		if !filepath.IsAbs(r.Path) {
			t.Fatalf("path not absolute: %s", r.Path)
		}
	}
	if byName["main.go"].Ext != ".go" {
		t.Fatalf("ext=%q", byName["main.go"].Ext)
	}
	if byName["README.md"].Ext != ".md" {
		t.Fatalf("ext=%q", byName["README.md"].Ext)
	}
	// Files outside both routing tables still get a record.
	if _, ok := byName["data.bin"]; !ok {
		t.Fatal("binary file missing from symbol table")
	}
}

func TestWalkSkipsVersionControlDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.go"), "package app")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main")
	writeFile(t, filepath.Join(root, ".git", "objects", "aa", "bb"), "blob")
	writeFile(t, filepath.Join(root, ".hg", "dirstate"), "x")

	records, err := Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(records) != 1 || records[0].Filename != "app.go" {
		t.Fatalf("records=%+v", records)
	}
}

func TestWalkOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		writeFile(t, filepath.Join(root, name), name)
	}

	first, err := Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	second, err := Walk(root)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	names := make([]string, len(first))
	for i := range first {
		names[i] = first[i].Filename
		if first[i] != second[i] {
			t.Fatalf("walk not deterministic at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("names not lexically ordered: %v", names)
	}
}

func TestWalkMissingRootFailsWithoutPartialResults(t *testing.T) {
	t.Parallel()

	records, err := Walk(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error")
	}
	if records != nil {
		t.Fatalf("partial results returned: %+v", records)
	}
	var accessErr *RepositoryAccessError
	if !errors.As(err, &accessErr) {
		t.Fatalf("err=%T %v", err, err)
	}
}

func TestWalkFileRootIsRejected(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "only.txt")
	writeFile(t, file, "x")

	if _, err := Walk(file); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}
