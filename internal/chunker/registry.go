package chunker

import (
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// LanguageSpec describes one recognized programming language. Language and
// Query are optional: an entry without a grammar still marks its extensions
// as code (routing them to the code collection), and such files fall back to
// the generic splitter.
type LanguageSpec struct {
	// Language is the tree-sitter grammar, or nil when only extension
	// recognition is wanted.
	Language *sitter.Language
	// Query is a tree-sitter S-expression query capturing top-level
	// definitions. It must bind @chunk to the outer node and may bind
	// @name to the identifier.
	Query string
	// Extensions are lowercase and include the leading dot.
	Extensions []string
}

// Registry is the recognized-programming-language table: it maps file
// extensions to language specs and decides which files contribute chunks to
// the code collection.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]*LanguageSpec
	names map[*LanguageSpec]string
}

func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]*LanguageSpec),
		names: make(map[*LanguageSpec]string),
	}
}

// Register adds a language spec under the given name.
func (r *Registry) Register(name string, spec *LanguageSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[spec] = name
	for _, ext := range spec.Extensions {
		r.byExt[strings.ToLower(ext)] = spec
	}
}

// Lookup returns the spec and language name for an extension, or nil.
func (r *Registry) Lookup(ext string) (*LanguageSpec, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.byExt[strings.ToLower(ext)]
	if !ok {
		return nil, ""
	}
	return spec, r.names[spec]
}

// Recognizes reports whether the extension belongs to a recognized
// programming language.
func (r *Registry) Recognizes(ext string) bool {
	spec, _ := r.Lookup(ext)
	return spec != nil
}

// LanguageName returns the registered language name for an extension, or "".
func (r *Registry) LanguageName(ext string) string {
	_, name := r.Lookup(ext)
	return name
}

// Extensions returns the set of all registered extensions.
func (r *Registry) Extensions() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make(map[string]bool, len(r.byExt))
	for ext := range r.byExt {
		exts[ext] = true
	}
	return exts
}
