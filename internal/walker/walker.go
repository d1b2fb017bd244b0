package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileRecord is one entry in the repository's file symbol table. Records are
// ordered by traversal; a record's 1-based position in the slice is the index
// the selection strategies resolve against.
type FileRecord struct {
	Path     string // absolute path
	Ext      string // lowercase extension including the dot, "" if none
	Filename string
}

// RepositoryAccessError reports that a repository root could not be
// enumerated. The walk never returns partial results alongside it.
type RepositoryAccessError struct {
	Root string
	Err  error
}

func (e *RepositoryAccessError) Error() string {
	return fmt.Sprintf("repository access %s: %v", e.Root, e.Err)
}

func (e *RepositoryAccessError) Unwrap() error { return e.Err }

// Version-control metadata directories excluded from the walk.
var vcsDirs = map[string]bool{
	".git": true,
	".svn": true,
	".hg":  true,
}

// Walk enumerates every regular file under root, skipping version-control
// metadata directories, and returns the ordered file symbol table.
// filepath.WalkDir visits entries in lexical order, so the result is
// deterministic for a given tree.
func Walk(root string) ([]FileRecord, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &RepositoryAccessError{Root: root, Err: err}
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, &RepositoryAccessError{Root: absRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, &RepositoryAccessError{Root: absRoot, Err: fmt.Errorf("not a directory")}
	}

	var records []FileRecord
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != absRoot && vcsDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		records = append(records, FileRecord{
			Path:     path,
			Ext:      strings.ToLower(filepath.Ext(path)),
			Filename: d.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, &RepositoryAccessError{Root: absRoot, Err: err}
	}
	return records, nil
}
