package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTextLoaderDropsInvalidUTF8(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("ok\xff\xfe bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := TextLoader{}.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "ok bytes" {
		t.Fatalf("got=%q", got)
	}
}

func TestNotebookLoaderExtractsCells(t *testing.T) {
	t.Parallel()

	nb := `{
		"cells": [
			{"cell_type": "markdown", "source": ["# Title\n", "intro"]},
			{"cell_type": "code", "source": "print('hi')"},
			{"cell_type": "code", "source": ["   \n"]}
		]
	}`
	path := filepath.Join(t.TempDir(), "demo.ipynb")
	if err := os.WriteFile(path, []byte(nb), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NotebookLoader{}.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(got, "[markdown]\n# Title\nintro") {
		t.Fatalf("markdown cell missing: %q", got)
	}
	if !strings.Contains(got, "[code]\nprint('hi')") {
		t.Fatalf("code cell missing: %q", got)
	}
	if strings.Count(got, "[code]") != 1 {
		t.Fatalf("blank cell not skipped: %q", got)
	}
}

func TestNotebookLoaderFallsBackToRawText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.ipynb")
	if err := os.WriteFile(path, []byte("not json at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NotebookLoader{}.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "not json at all" {
		t.Fatalf("got=%q", got)
	}
}

func TestReadUnregisteredExtensionUsesRawText(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte("print(1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path, ".lua")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != "print(1)" {
		t.Fatalf("got=%q", got)
	}
}

func TestSupportedIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	if !Supported(".MD") {
		t.Fatal(".MD not supported")
	}
	if Supported(".go") {
		t.Fatal(".go must not be in the document table")
	}
}
