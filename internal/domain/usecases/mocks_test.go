package usecases

import (
	"context"
	"fmt"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

// mockExtractor implements ports.PageExtractor for testing.
type mockExtractor struct {
	pages []string
	err   error
	calls int
}

func (m *mockExtractor) ExtractPages(ctx context.Context, data []byte) ([]string, error) {
	m.calls++
	return m.pages, m.err
}

// mockEmbedder implements ports.EmbeddingService for testing.
type mockEmbedder struct {
	embedFn    func(text string) ([]float32, error)
	batchCalls int
	embedCalls int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedFn != nil {
		return m.embedFn(text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	result := make([][]float32, len(texts))
	for i := range texts {
		if m.embedFn != nil {
			emb, err := m.embedFn(texts[i])
			if err != nil {
				return nil, err
			}
			result[i] = emb
			continue
		}
		result[i] = []float32{0.1, 0.2, 0.3}
	}
	return result, nil
}

// mockIndex implements ports.VectorIndex for testing.
type mockIndex struct {
	stats       entities.IndexStats
	statsErr    error
	ensureErr   error
	upsertErr   error
	queryErr    error
	matches     []entities.QueryMatch
	upserted    [][]entities.Vector
	ensureCalls int
	queryCalls  int
}

func (m *mockIndex) EnsureIndex(ctx context.Context, name string, dimension int, metric string) error {
	m.ensureCalls++
	return m.ensureErr
}

func (m *mockIndex) Stats(ctx context.Context, name string) (entities.IndexStats, error) {
	return m.stats, m.statsErr
}

func (m *mockIndex) Upsert(ctx context.Context, name string, vectors []entities.Vector) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	batch := make([]entities.Vector, len(vectors))
	copy(batch, vectors)
	m.upserted = append(m.upserted, batch)
	return nil
}

func (m *mockIndex) Query(ctx context.Context, name string, vector []float32, topK int) ([]entities.QueryMatch, error) {
	m.queryCalls++
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if len(m.matches) > topK {
		return m.matches[:topK], nil
	}
	return m.matches, nil
}

func (m *mockIndex) totalUpserted() int {
	total := 0
	for _, batch := range m.upserted {
		total += len(batch)
	}
	return total
}

// mockDocs implements ports.DocumentStore for testing.
type mockDocs struct {
	objects   []entities.ObjectInfo
	listErr   error
	contents  map[string][]byte
	downloads []string
}

func (m *mockDocs) List(ctx context.Context) ([]entities.ObjectInfo, error) {
	return m.objects, m.listErr
}

func (m *mockDocs) Download(ctx context.Context, name string) ([]byte, error) {
	m.downloads = append(m.downloads, name)
	data, ok := m.contents[name]
	if !ok {
		return nil, fmt.Errorf("object %s not found", name)
	}
	return data, nil
}

// mockLLM implements ports.LLMService for testing.
type mockLLM struct {
	answer  string
	err     error
	calls   int
	prompts []string
	systems []string
}

func (m *mockLLM) Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	m.calls++
	m.systems = append(m.systems, system)
	m.prompts = append(m.prompts, user)
	if m.err != nil {
		return "", m.err
	}
	if m.answer != "" {
		return m.answer, nil
	}
	return fmt.Sprintf("answer %d", m.calls), nil
}
