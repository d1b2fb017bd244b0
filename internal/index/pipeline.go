package index

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/aditya22034/CodeWhisper/internal/loader"
	"github.com/aditya22034/CodeWhisper/internal/store"
	"github.com/aditya22034/CodeWhisper/internal/walker"
)

// embedBatchSize is how many chunk texts are embedded per API call.
const embedBatchSize = 32

// fileChunks is the output of the chunking stage for one file.
type fileChunks struct {
	code   bool // true → code collection, false → non-code collection
	chunks []store.Chunk
}

// Ingest walks root, chunks every file whose extension is in one of the two
// routing tables, embeds the chunks, and stores them in freshly opened
// collections. The returned Result carries the full symbol table even when
// embedding or storage fails partway.
func (ig *Ingestor) Ingest(ctx context.Context, root string) (*Result, error) {
	records, err := walker.Walk(root)
	if err != nil {
		return nil, err
	}

	code, err := store.Open(ig.cfg.CodeDir, ig.cfg.Dim)
	if err != nil {
		return nil, &IndexError{Op: "open code collection", Err: err}
	}
	docs, err := store.Open(ig.cfg.DocsDir, ig.cfg.Dim)
	if err != nil {
		code.Close()
		return nil, &IndexError{Op: "open non-code collection", Err: err}
	}

	result := &Result{
		Files: records,
		Dual:  NewDual(code, docs, ig.emb),
	}
	result.Stats.Files = len(records)

	workers := ig.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Stage 1: chunk (N workers).
	recordCh := make(chan walker.FileRecord, workers)
	chunkCh := make(chan fileChunks, workers)

	var chunkWg sync.WaitGroup
	for range workers {
		chunkWg.Add(1)
		go func() {
			defer chunkWg.Done()
			for rec := range recordCh {
				fc, ok := ig.chunkFile(rec)
				if ok {
					chunkCh <- fc
				}
			}
		}()
	}
	go func() {
		defer close(recordCh)
		for _, rec := range records {
			select {
			case recordCh <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		chunkWg.Wait()
		close(chunkCh)
	}()

	// Stage 2: embed + store (single worker; the API call dominates).
	var indexErr error
	for fc := range chunkCh {
		if indexErr != nil {
			continue // drain
		}
		if err := ig.embedAndStore(ctx, fc, result); err != nil {
			indexErr = err
		}
	}

	if indexErr != nil {
		return result, indexErr
	}
	if err := ctx.Err(); err != nil {
		return result, &IndexError{Op: "ingest", Err: err}
	}
	return result, nil
}

// chunkFile routes one file by extension: recognized language → code
// chunks, loader table → document chunks, neither → nothing.
func (ig *Ingestor) chunkFile(rec walker.FileRecord) (fileChunks, bool) {
	switch {
	case ig.registry.Recognizes(rec.Ext):
		texts := ig.codeChunkTexts(rec)
		return fileChunks{code: true, chunks: toChunks(texts, rec.Path, ig.registry.LanguageName(rec.Ext))}, len(texts) > 0
	case loader.Supported(rec.Ext):
		text, err := loader.Read(rec.Path, rec.Ext)
		if err != nil {
			log.Printf("[INGEST] skip %s: %v", rec.Path, err)
			return fileChunks{}, false
		}
		texts := ig.splitter.Split(text)
		return fileChunks{code: false, chunks: toChunks(texts, rec.Path, rec.Ext)}, len(texts) > 0
	}
	return fileChunks{}, false
}

// codeChunkTexts chunks a recognized-language file at syntactic boundaries,
// falling back to the generic splitter when the language has no grammar or
// the parse captures nothing.
func (ig *Ingestor) codeChunkTexts(rec walker.FileRecord) []string {
	src, err := os.ReadFile(rec.Path)
	if err != nil {
		log.Printf("[INGEST] skip %s: %v", rec.Path, err)
		return nil
	}
	text := strings.ToValidUTF8(string(src), "")

	segs, err := ig.ast.Chunk(rec.Ext, []byte(text))
	if err != nil {
		log.Printf("[INGEST] %s: %v (falling back to generic split)", rec.Path, err)
		segs = nil
	}
	if len(segs) == 0 {
		return ig.splitter.Split(text)
	}
	texts := make([]string, len(segs))
	for i, seg := range segs {
		texts[i] = seg.Text
	}
	return texts
}

func toChunks(texts []string, path, language string) []store.Chunk {
	chunks := make([]store.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = store.Chunk{Text: t, SourcePath: path, Language: language, Seq: i}
	}
	return chunks
}

// embedAndStore embeds one file's chunks in sub-batches and upserts them
// into the routed collection.
func (ig *Ingestor) embedAndStore(ctx context.Context, fc fileChunks, result *Result) error {
	texts := make([]string, len(fc.chunks))
	for i, ch := range fc.chunks {
		texts[i] = ch.Text
	}

	embeddings := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += embedBatchSize {
		end := min(i+embedBatchSize, len(texts))
		vecs, err := ig.emb.Embed(ctx, texts[i:end])
		if err != nil {
			return &IndexError{Op: fmt.Sprintf("embed %s", fc.chunks[0].SourcePath), Err: err}
		}
		embeddings = append(embeddings, vecs...)
	}

	target := result.Dual.Docs
	if fc.code {
		target = result.Dual.Code
	}
	if err := target.Upsert(fc.chunks, embeddings); err != nil {
		return &IndexError{Op: fmt.Sprintf("store %s", fc.chunks[0].SourcePath), Err: err}
	}

	if fc.code {
		result.Stats.CodeChunks += len(fc.chunks)
	} else {
		result.Stats.DocChunks += len(fc.chunks)
	}
	return nil
}
