package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

func newTestIndexer(index *mockIndex, embedder *mockEmbedder, docs *mockDocs, pages []string) *Indexer {
	chunker := NewChunker(&mockExtractor{pages: pages}, 1000)
	return NewIndexer(index, embedder, docs, chunker, 384)
}

func TestIndexer_PopulatedIndexSkipsIngestion(t *testing.T) {
	index := &mockIndex{stats: entities.IndexStats{TotalVectorCount: 42}}
	embedder := &mockEmbedder{}
	docs := &mockDocs{objects: []entities.ObjectInfo{{Name: "doc.pdf"}}}

	ix := newTestIndexer(index, embedder, docs, []string{"text"})
	err := ix.EnsureIndexed(context.Background(), "lawpal")
	require.NoError(t, err)

	assert.Equal(t, 1, index.ensureCalls)
	assert.Zero(t, embedder.batchCalls)
	assert.Empty(t, index.upserted)
	assert.Empty(t, docs.downloads)
}

func TestIndexer_Idempotent(t *testing.T) {
	index := &mockIndex{}
	embedder := &mockEmbedder{}
	docs := &mockDocs{
		objects:  []entities.ObjectInfo{{Name: "doc.pdf"}},
		contents: map[string][]byte{"doc.pdf": []byte("raw")},
	}

	ix := newTestIndexer(index, embedder, docs, []string{"some page text"})
	require.NoError(t, ix.EnsureIndexed(context.Background(), "lawpal"))
	assert.Equal(t, 1, index.totalUpserted())

	// A populated index makes the second call a no-op.
	index.stats = entities.IndexStats{TotalVectorCount: index.totalUpserted()}
	firstBatches := embedder.batchCalls
	require.NoError(t, ix.EnsureIndexed(context.Background(), "lawpal"))

	assert.Equal(t, firstBatches, embedder.batchCalls)
	assert.Equal(t, 1, index.totalUpserted())
}

func TestIndexer_SingleDocumentEndToEnd(t *testing.T) {
	// One page of 2500 characters with chunkSize 1000 yields 3 vectors with
	// the expected ids.
	page := strings.TrimSpace(strings.Repeat("abcdefghi ", 250))
	index := &mockIndex{}
	docs := &mockDocs{
		objects:  []entities.ObjectInfo{{Name: "doc.pdf"}},
		contents: map[string][]byte{"doc.pdf": []byte("raw")},
	}

	ix := newTestIndexer(index, &mockEmbedder{}, docs, []string{page})
	require.NoError(t, ix.EnsureIndexed(context.Background(), "lawpal"))

	require.Equal(t, 3, index.totalUpserted())
	ids := []string{}
	for _, v := range index.upserted[0] {
		ids = append(ids, v.ID)
		assert.NotEmpty(t, v.Metadata.Text)
	}
	assert.Equal(t, []string{"doc.pdf_chunk_0", "doc.pdf_chunk_1", "doc.pdf_chunk_2"}, ids)
}

func TestIndexer_BatchSizes(t *testing.T) {
	// 150 short pages produce 150 chunks: 5 embedding batches of up to 32
	// and 2 upsert batches of up to 100.
	pages := make([]string, 150)
	for i := range pages {
		pages[i] = "page content"
	}
	index := &mockIndex{}
	embedder := &mockEmbedder{}
	docs := &mockDocs{
		objects:  []entities.ObjectInfo{{Name: "doc.pdf"}},
		contents: map[string][]byte{"doc.pdf": []byte("raw")},
	}

	ix := newTestIndexer(index, embedder, docs, pages)
	require.NoError(t, ix.EnsureIndexed(context.Background(), "lawpal"))

	assert.Equal(t, 5, embedder.batchCalls)
	require.Len(t, index.upserted, 2)
	assert.Len(t, index.upserted[0], 100)
	assert.Len(t, index.upserted[1], 50)
}

func TestIndexer_SkipsUnrecognizedExtensions(t *testing.T) {
	index := &mockIndex{}
	docs := &mockDocs{
		objects: []entities.ObjectInfo{
			{Name: "notes.txt"},
			{Name: "image.png"},
			{Name: "doc.pdf"},
		},
		contents: map[string][]byte{"doc.pdf": []byte("raw")},
	}

	ix := newTestIndexer(index, &mockEmbedder{}, docs, []string{"text"})
	require.NoError(t, ix.EnsureIndexed(context.Background(), "lawpal"))

	assert.Equal(t, []string{"doc.pdf"}, docs.downloads)
}

func TestIndexer_DownloadFailureSkipsDocument(t *testing.T) {
	index := &mockIndex{}
	docs := &mockDocs{
		objects: []entities.ObjectInfo{
			{Name: "broken.pdf"},
			{Name: "good.pdf"},
		},
		contents: map[string][]byte{"good.pdf": []byte("raw")},
	}

	ix := newTestIndexer(index, &mockEmbedder{}, docs, []string{"text"})
	require.NoError(t, ix.EnsureIndexed(context.Background(), "lawpal"))

	// broken.pdf is skipped but good.pdf still lands in the index.
	assert.Equal(t, 1, index.totalUpserted())
}

func TestIndexer_EmptyCorpusFails(t *testing.T) {
	index := &mockIndex{}
	docs := &mockDocs{}

	ix := newTestIndexer(index, &mockEmbedder{}, docs, nil)
	err := ix.EnsureIndexed(context.Background(), "lawpal")
	assert.ErrorIs(t, err, ErrNoDocuments)
	assert.Empty(t, index.upserted)
}

func TestIndexer_EmbeddingFailureAborts(t *testing.T) {
	index := &mockIndex{}
	embedder := &mockEmbedder{embedFn: func(string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}}
	docs := &mockDocs{
		objects:  []entities.ObjectInfo{{Name: "doc.pdf"}},
		contents: map[string][]byte{"doc.pdf": []byte("raw")},
	}

	ix := newTestIndexer(index, embedder, docs, []string{"text"})
	err := ix.EnsureIndexed(context.Background(), "lawpal")
	assert.Error(t, err)
	assert.Empty(t, index.upserted)
}

func TestIndexer_IndexDocument(t *testing.T) {
	index := &mockIndex{}
	docs := &mockDocs{contents: map[string][]byte{"new.pdf": []byte("raw")}}

	ix := newTestIndexer(index, &mockEmbedder{}, docs, []string{"fresh text"})
	require.NoError(t, ix.IndexDocument(context.Background(), "lawpal", "new.pdf"))
	assert.Equal(t, 1, index.totalUpserted())

	// Non-document names are ignored without touching the store.
	require.NoError(t, ix.IndexDocument(context.Background(), "lawpal", "notes.txt"))
	assert.Equal(t, []string{"new.pdf"}, docs.downloads)
}
