// Package index populates and queries the two chunk collections: code
// chunks from recognized-language files and document chunks from
// loader-table files. A file whose extension is in neither table is never
// indexed, though it stays in the symbol table.
package index

import (
	"context"
	"fmt"

	"github.com/aditya22034/CodeWhisper/internal/chunker"
	"github.com/aditya22034/CodeWhisper/internal/chunker/languages"
	"github.com/aditya22034/CodeWhisper/internal/store"
	"github.com/aditya22034/CodeWhisper/internal/walker"
)

// Embedder turns texts into vectors. The OpenAI client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
}

// IndexError reports an embedding or storage failure during ingestion or
// search.
type IndexError struct {
	Op  string
	Err error
}

func (e *IndexError) Error() string { return fmt.Sprintf("index %s: %v", e.Op, e.Err) }
func (e *IndexError) Unwrap() error { return e.Err }

// Config locates the two collection directories and sizes the pipeline.
type Config struct {
	CodeDir string
	DocsDir string
	// Dim is the embedding dimension of both collections.
	Dim int
	// Workers is the chunking worker count; defaults to GOMAXPROCS.
	Workers int
}

// Ingestor builds the dual index for a repository tree.
type Ingestor struct {
	registry *chunker.Registry
	ast      *chunker.ASTChunker
	splitter *chunker.Splitter
	emb      Embedder
	cfg      Config
}

// NewIngestor creates an ingestor with every recognized language registered.
func NewIngestor(emb Embedder, cfg Config) *Ingestor {
	reg := chunker.NewRegistry()
	languages.RegisterAll(reg)
	return &Ingestor{
		registry: reg,
		ast:      chunker.NewASTChunker(reg),
		splitter: chunker.NewSplitter(),
		emb:      emb,
		cfg:      cfg,
	}
}

// Stats reports ingestion results.
type Stats struct {
	Files      int
	CodeChunks int
	DocChunks  int
}

// Result is a completed (or partially completed, on error) ingestion. Files
// is always populated once the walk succeeds, even when indexing fails
// partway; the collections may then lag behind it.
type Result struct {
	Files []walker.FileRecord
	Stats Stats
	Dual  *Dual
}

// Dual bundles the two open collections with the embedding service, so
// callers search by query text and the embedding happens inside.
type Dual struct {
	Code *store.Collection
	Docs *store.Collection
	emb  Embedder
}

func NewDual(code, docs *store.Collection, emb Embedder) *Dual {
	return &Dual{Code: code, Docs: docs, emb: emb}
}

// SearchCode returns the top-k code chunks for the query.
func (d *Dual) SearchCode(ctx context.Context, query string, k int) ([]store.SearchResult, error) {
	return d.search(ctx, d.Code, query, k)
}

// SearchDocs returns the top-k non-code chunks for the query.
func (d *Dual) SearchDocs(ctx context.Context, query string, k int) ([]store.SearchResult, error) {
	return d.search(ctx, d.Docs, query, k)
}

func (d *Dual) search(ctx context.Context, c *store.Collection, query string, k int) ([]store.SearchResult, error) {
	vec, err := d.emb.EmbedSingle(ctx, query)
	if err != nil {
		return nil, &IndexError{Op: "embed query", Err: err}
	}
	results, err := c.Search(vec, k)
	if err != nil {
		return nil, &IndexError{Op: "search", Err: err}
	}
	return results, nil
}

// Close releases both collections.
func (d *Dual) Close() error {
	var firstErr error
	if err := d.Code.Close(); err != nil {
		firstErr = err
	}
	if err := d.Docs.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
