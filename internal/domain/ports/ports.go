// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

// EmbeddingService maps text into the fixed-dimension embedding space shared
// by ingestion and retrieval.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndex is the external vector index capability. Durable ownership of
// upserted vectors lives behind this interface; the core never caches them.
type VectorIndex interface {
	// EnsureIndex creates the named index with the given dimensionality and
	// similarity metric if it does not exist yet. Existing indexes are left
	// untouched.
	EnsureIndex(ctx context.Context, name string, dimension int, metric string) error

	// Stats reports the current vector count for the named index.
	Stats(ctx context.Context, name string) (entities.IndexStats, error)

	// Upsert writes vectors into the named index, replacing any with the same id.
	Upsert(ctx context.Context, name string, vectors []entities.Vector) error

	// Query returns the topK nearest matches with metadata included.
	Query(ctx context.Context, name string, vector []float32, topK int) ([]entities.QueryMatch, error)
}

// DocumentStore is a listable, downloadable blob store holding the source
// document corpus.
type DocumentStore interface {
	// List enumerates all objects available in the store.
	List(ctx context.Context) ([]entities.ObjectInfo, error)

	// Download fetches the raw bytes of a named object.
	Download(ctx context.Context, name string) ([]byte, error)
}

// PageExtractor extracts plain text from a raw document, one entry per page.
// Pages from which no text could be recovered are omitted.
type PageExtractor interface {
	ExtractPages(ctx context.Context, data []byte) ([]string, error)
}

// LLMService is the language-model capability used for answer generation.
type LLMService interface {
	// Complete sends a system message plus a user message and returns the
	// generated text.
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error)
}

// FormStore persists contact-form submissions.
type FormStore interface {
	Submit(ctx context.Context, form entities.ContactForm) error
}

// DocumentWatcher monitors a local document directory for changes.
type DocumentWatcher interface {
	// Watch starts monitoring the directory and emits an event per new or
	// rewritten document.
	Watch(ctx context.Context, dir string) (<-chan DocumentEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// DocumentEvent names a document that appeared or changed on disk.
type DocumentEvent struct {
	Name string
}
