// Package store persists embedded chunks in sqlite-vec collections. Each
// collection lives in its own on-disk directory and is replaced wholesale on
// re-ingestion by deleting that directory.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	sqlite_vec.Auto()
}

// Chunk is one embedded text segment with its originating-file metadata.
type Chunk struct {
	Text       string
	SourcePath string
	Language   string
	Seq        int // position of the chunk within its file, 0-based
}

// SearchResult is a chunk ranked by embedding similarity (ascending
// distance).
type SearchResult struct {
	Chunk    Chunk
	Distance float64
}

// Collection is one similarity-search collection backed by SQLite +
// sqlite-vec.
type Collection struct {
	db  *sql.DB
	dim int
}

// Open creates or opens the collection stored under dir. The embedding
// dimension is fixed per collection.
func Open(dir string, dim int) (*Collection, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create collection dir: %w", err)
	}
	dbPath := filepath.Join(dir, "index.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open collection db: %w", err)
	}

	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS chunks (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    source_path TEXT NOT NULL,
    language    TEXT NOT NULL DEFAULT '',
    seq         INTEGER NOT NULL,
    content     TEXT NOT NULL
);

CREATE VIRTUAL TABLE IF NOT EXISTS vec_chunks USING vec0(
    chunk_id INTEGER PRIMARY KEY,
    embedding float[%d]
);
`, dim)
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("init collection schema: %w", err)
	}
	return &Collection{db: db, dim: dim}, nil
}

// Upsert stores chunks with their embeddings. There is no uniqueness
// constraint: ingesting the same chunk twice duplicates it, and later
// searches will return both copies.
func (c *Collection) Upsert(chunks []Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("mismatched chunks (%d) and embeddings (%d)", len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	chunkStmt, err := tx.Prepare(
		"INSERT INTO chunks (source_path, language, seq, content) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer chunkStmt.Close()

	vecStmt, err := tx.Prepare("INSERT INTO vec_chunks (chunk_id, embedding) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer vecStmt.Close()

	for i, ch := range chunks {
		res, err := chunkStmt.Exec(ch.SourcePath, ch.Language, ch.Seq, ch.Text)
		if err != nil {
			return fmt.Errorf("insert chunk %s[%d]: %w", ch.SourcePath, ch.Seq, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		blob, err := sqlite_vec.SerializeFloat32(embeddings[i])
		if err != nil {
			return fmt.Errorf("serialize embedding %s[%d]: %w", ch.SourcePath, ch.Seq, err)
		}
		if _, err := vecStmt.Exec(id, blob); err != nil {
			return fmt.Errorf("insert embedding %s[%d]: %w", ch.SourcePath, ch.Seq, err)
		}
	}
	return tx.Commit()
}

// Search returns up to k chunks closest to the query embedding. An empty
// collection yields an empty result, not an error.
func (c *Collection) Search(embedding []float32, k int) ([]SearchResult, error) {
	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return nil, fmt.Errorf("serialize query embedding: %w", err)
	}
	// vec0 knn queries need the k constraint in the WHERE clause; a plain
	// LIMIT is not pushed down through the join.
	rows, err := c.db.Query(`
		SELECT v.distance, ch.source_path, ch.language, ch.seq, ch.content
		FROM vec_chunks v
		JOIN chunks ch ON ch.id = v.chunk_id
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance
	`, blob, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Distance, &r.Chunk.SourcePath, &r.Chunk.Language, &r.Chunk.Seq, &r.Chunk.Text); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Count returns the number of stored chunks.
func (c *Collection) Count() (int, error) {
	var n int
	err := c.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&n)
	return n, err
}

func (c *Collection) Close() error {
	return c.db.Close()
}
