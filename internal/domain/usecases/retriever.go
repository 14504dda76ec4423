package usecases

import (
	"context"
	"log"

	"github.com/lawpal/lawpal-go/internal/domain/ports"
)

// DefaultTopK is the number of context chunks fetched per query.
const DefaultTopK = 3

// Retriever answers a query with the most semantically similar stored chunks.
// Index-layer failures degrade to "no context" rather than propagating; the
// caller always gets a usable (possibly empty) context list.
type Retriever struct {
	embedder ports.EmbeddingService
	index    ports.VectorIndex
	topK     int
}

// NewRetriever creates a Retriever with injected dependencies.
func NewRetriever(embedder ports.EmbeddingService, index ports.VectorIndex, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
	}
}

// Retrieve returns the text of up to topK nearest chunks. Matches without
// metadata are dropped; vectors written by this system always carry it.
func (r *Retriever) Retrieve(ctx context.Context, indexName, query string) []string {
	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("[ERROR] embedding query: %v", err)
		return nil
	}

	matches, err := r.index.Query(ctx, indexName, embedding, r.topK)
	if err != nil {
		log.Printf("[ERROR] retrieving from index %q: %v", indexName, err)
		return nil
	}

	var contexts []string
	for _, m := range matches {
		if m.Metadata == nil {
			continue
		}
		contexts = append(contexts, m.Metadata.Text)
	}
	return contexts
}
