// Package vectordb provides vector index adapters.
// Clean Architecture: Adapters implementing ports.VectorIndex.
package vectordb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

// InMemoryIndex is an in-process vector index for tests and ephemeral
// development runs.
type InMemoryIndex struct {
	mu      sync.RWMutex
	indexes map[string]*memIndex
}

type memIndex struct {
	dimension int
	vectors   map[string]entities.Vector
}

// NewInMemoryIndex creates an empty in-memory vector index.
func NewInMemoryIndex() *InMemoryIndex {
	return &InMemoryIndex{
		indexes: make(map[string]*memIndex),
	}
}

// EnsureIndex creates the named index if missing.
func (s *InMemoryIndex) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[name]; !ok {
		s.indexes[name] = &memIndex{
			dimension: dimension,
			vectors:   make(map[string]entities.Vector),
		}
	}
	return nil
}

// Stats reports the vector count for the named index.
func (s *InMemoryIndex) Stats(ctx context.Context, name string) (entities.IndexStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indexes[name]
	if !ok {
		return entities.IndexStats{}, fmt.Errorf("index %q does not exist", name)
	}
	return entities.IndexStats{TotalVectorCount: len(idx.vectors)}, nil
}

// Upsert writes vectors, replacing any with the same id.
func (s *InMemoryIndex) Upsert(ctx context.Context, name string, vectors []entities.Vector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.indexes[name]
	if !ok {
		return fmt.Errorf("index %q does not exist", name)
	}
	for _, v := range vectors {
		idx.vectors[v.ID] = v
	}
	return nil
}

// Query scores every stored vector by cosine similarity and returns the topK.
func (s *InMemoryIndex) Query(ctx context.Context, name string, vector []float32, topK int) ([]entities.QueryMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.indexes[name]
	if !ok {
		return nil, fmt.Errorf("index %q does not exist", name)
	}

	matches := make([]entities.QueryMatch, 0, len(idx.vectors))
	for _, v := range idx.vectors {
		meta := v.Metadata
		matches = append(matches, entities.QueryMatch{
			Score:    cosineSimilarity(vector, v.Values),
			Metadata: &meta,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// cosineSimilarity computes similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
