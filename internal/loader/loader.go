// Package loader is the document-loader registry: it maps non-code file
// extensions to text extractors and decides which files contribute chunks to
// the non-code collection.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Loader extracts plain text from one file on disk.
type Loader interface {
	Load(path string) (string, error)
}

// TextLoader reads a file as UTF-8, dropping undecodable bytes instead of
// failing.
type TextLoader struct{}

func (TextLoader) Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.ToValidUTF8(string(b), ""), nil
}

// NotebookLoader extracts cell sources from a Jupyter notebook. Notebooks
// that fail to parse are loaded as raw text.
type NotebookLoader struct{}

type notebook struct {
	Cells []struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
	} `json:"cells"`
}

func (NotebookLoader) Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	var nb notebook
	if err := json.Unmarshal(b, &nb); err != nil || len(nb.Cells) == 0 {
		return strings.ToValidUTF8(string(b), ""), nil
	}

	var parts []string
	for _, cell := range nb.Cells {
		// Source is either a string or a list of line strings.
		var joined string
		var lines []string
		if err := json.Unmarshal(cell.Source, &lines); err == nil {
			joined = strings.Join(lines, "")
		} else if err := json.Unmarshal(cell.Source, &joined); err != nil {
			continue
		}
		if strings.TrimSpace(joined) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s]\n%s", cell.CellType, joined))
	}
	return strings.Join(parts, "\n\n"), nil
}

// registry maps lowercase extensions (with dot) to their loader. Extensions
// here route a file's chunks to the non-code collection; the set is disjoint
// from the recognized-programming-language table.
var registry = map[string]Loader{
	".md":        TextLoader{},
	".txt":       TextLoader{},
	".log":       TextLoader{},
	".gitignore": TextLoader{},
	".rst":       TextLoader{},
	".ipynb":     NotebookLoader{},
	".yml":       TextLoader{},
	".yaml":      TextLoader{},
	".json":      TextLoader{},
	".toml":      TextLoader{},
	".xml":       TextLoader{},
	".tex":       TextLoader{},
}

// For returns the registered loader for an extension.
func For(ext string) (Loader, bool) {
	l, ok := registry[strings.ToLower(ext)]
	return l, ok
}

// Supported reports whether the extension is in the document-loader table.
func Supported(ext string) bool {
	_, ok := For(ext)
	return ok
}

// Extensions returns the set of registered extensions.
func Extensions() map[string]bool {
	exts := make(map[string]bool, len(registry))
	for ext := range registry {
		exts[ext] = true
	}
	return exts
}

// Read extracts a file's text for whole-file context assembly: the
// registered loader when the extension has one, a tolerant raw-text read
// otherwise.
func Read(path, ext string) (string, error) {
	if l, ok := For(ext); ok {
		return l.Load(path)
	}
	return TextLoader{}.Load(path)
}
