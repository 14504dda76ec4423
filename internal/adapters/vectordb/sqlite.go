package vectordb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteIndex implements ports.VectorIndex with SQLite-based persistence.
// It is meant for single-node development deployments: vectors survive a
// restart, and similarity scoring is brute-force cosine in Go.
type SQLiteIndex struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteIndex opens (or creates) the vector database at dataPath.
func NewSQLiteIndex(dataPath string) (*SQLiteIndex, error) {
	if dataPath == "" {
		dataPath = "./data"
	}
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataPath, "vectors.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &SQLiteIndex{db: db}
	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return idx, nil
}

// initSchema creates the necessary tables.
func (s *SQLiteIndex) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS indexes (
		name TEXT PRIMARY KEY,
		dimension INTEGER NOT NULL,
		metric TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS vectors (
		index_name TEXT NOT NULL,
		id TEXT NOT NULL,
		embedding BLOB NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (index_name, id)
	);
	CREATE INDEX IF NOT EXISTS idx_vectors_index_name ON vectors(index_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// EnsureIndex registers the named index if missing.
func (s *SQLiteIndex) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO indexes (name, dimension, metric) VALUES (?, ?, ?)`,
		name, dimension, metric,
	)
	if err != nil {
		return fmt.Errorf("registering index: %w", err)
	}
	return nil
}

// Stats reports the vector count for the named index.
func (s *SQLiteIndex) Stats(ctx context.Context, name string) (entities.IndexStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM vectors WHERE index_name = ?`, name,
	).Scan(&count)
	if err != nil {
		return entities.IndexStats{}, fmt.Errorf("counting vectors: %w", err)
	}
	return entities.IndexStats{TotalVectorCount: count}, nil
}

// Upsert writes vectors within a single transaction.
func (s *SQLiteIndex) Upsert(ctx context.Context, name string, vectors []entities.Vector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO vectors (index_name, id, embedding, text)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, v := range vectors {
		embeddingJSON, err := json.Marshal(v.Values)
		if err != nil {
			return fmt.Errorf("encoding embedding: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, name, v.ID, embeddingJSON, v.Metadata.Text); err != nil {
			return fmt.Errorf("inserting vector %s: %w", v.ID, err)
		}
	}

	return tx.Commit()
}

// Query loads all vectors of the index and scores them by cosine similarity.
func (s *SQLiteIndex) Query(ctx context.Context, name string, vector []float32, topK int) ([]entities.QueryMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT embedding, text FROM vectors WHERE index_name = ?`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var matches []entities.QueryMatch
	for rows.Next() {
		var embeddingJSON []byte
		var text string
		if err := rows.Scan(&embeddingJSON, &text); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}

		var embedding []float32
		if err := json.Unmarshal(embeddingJSON, &embedding); err != nil {
			return nil, fmt.Errorf("decoding embedding: %w", err)
		}

		matches = append(matches, entities.QueryMatch{
			Score:    cosineSimilarity(vector, embedding),
			Metadata: &entities.Metadata{Text: text},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading vectors: %w", err)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Close releases the underlying database handle.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}
