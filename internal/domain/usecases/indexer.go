package usecases

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
	"github.com/lawpal/lawpal-go/internal/domain/ports"
)

// Batch limits differ because the embedding and index APIs have different
// practical request limits.
const (
	DefaultEmbedBatchSize  = 32
	DefaultUpsertBatchSize = 100

	// DefaultDimension matches the embedding model of the reference deployment.
	DefaultDimension = 384

	indexMetric = "cosine"
	documentExt = ".pdf"
)

// Indexer drives index creation and one-shot corpus ingestion:
// chunk, embed in batches, upsert in batches.
type Indexer struct {
	index       ports.VectorIndex
	embedder    ports.EmbeddingService
	docs        ports.DocumentStore
	chunker     *Chunker
	dimension   int
	embedBatch  int
	upsertBatch int
	progress    bool
}

// NewIndexer creates an Indexer with injected dependencies.
func NewIndexer(
	index ports.VectorIndex,
	embedder ports.EmbeddingService,
	docs ports.DocumentStore,
	chunker *Chunker,
	dimension int,
) *Indexer {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Indexer{
		index:       index,
		embedder:    embedder,
		docs:        docs,
		chunker:     chunker,
		dimension:   dimension,
		embedBatch:  DefaultEmbedBatchSize,
		upsertBatch: DefaultUpsertBatchSize,
	}
}

// ShowProgress enables a progress bar over the corpus during ingestion.
func (ix *Indexer) ShowProgress(on bool) {
	ix.progress = on
}

// EnsureIndexed makes sure the named index exists and holds the corpus.
// The populated check is deliberately coarse: any vector at all means the
// index is treated as fully populated and the call is a no-op. It does not
// detect a changed or appended corpus.
func (ix *Indexer) EnsureIndexed(ctx context.Context, indexName string) error {
	if err := ix.index.EnsureIndex(ctx, indexName, ix.dimension, indexMetric); err != nil {
		return fmt.Errorf("ensuring index %q: %w", indexName, err)
	}

	stats, err := ix.index.Stats(ctx, indexName)
	if err != nil {
		return fmt.Errorf("describing index %q: %w", indexName, err)
	}
	if stats.TotalVectorCount > 0 {
		log.Printf("[INFO] index %q already has %d vectors, skipping ingestion", indexName, stats.TotalVectorCount)
		return nil
	}

	chunks, err := ix.chunkCorpus(ctx)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return ErrNoDocuments
	}

	return ix.embedAndUpsert(ctx, indexName, chunks)
}

// IndexDocument ingests a single document by name. Used by the development
// file watcher; it bypasses the populated check.
func (ix *Indexer) IndexDocument(ctx context.Context, indexName, name string) error {
	if !isDocument(name) {
		return nil
	}

	data, err := ix.docs.Download(ctx, name)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", name, err)
	}

	chunks, err := ix.chunker.Chunk(ctx, name, data)
	if err != nil {
		return fmt.Errorf("chunking %s: %w", name, err)
	}
	if len(chunks) == 0 {
		log.Printf("[WARN] no text extracted from %s", name)
		return nil
	}

	return ix.embedAndUpsert(ctx, indexName, chunks)
}

// chunkCorpus enumerates the document store and chunks every recognized
// document. A document that fails to download or parse is logged and skipped;
// it never aborts the batch.
func (ix *Indexer) chunkCorpus(ctx context.Context) ([]entities.Chunk, error) {
	objects, err := ix.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	var docs []string
	for _, obj := range objects {
		if isDocument(obj.Name) {
			docs = append(docs, obj.Name)
		}
	}

	var bar *progressbar.ProgressBar
	if ix.progress {
		bar = progressbar.Default(int64(len(docs)), "processing documents")
	}

	var chunks []entities.Chunk
	for _, name := range docs {
		if bar != nil {
			bar.Add(1)
		}

		data, err := ix.docs.Download(ctx, name)
		if err != nil {
			log.Printf("[ERROR] downloading %s: %v", name, err)
			continue
		}

		docChunks, err := ix.chunker.Chunk(ctx, name, data)
		if err != nil {
			log.Printf("[ERROR] processing %s: %v", name, err)
			continue
		}
		chunks = append(chunks, docChunks...)
	}
	return chunks, nil
}

// embedAndUpsert turns chunks into vectors and writes them to the index.
func (ix *Indexer) embedAndUpsert(ctx context.Context, indexName string, chunks []entities.Chunk) error {
	vectors := make([]entities.Vector, 0, len(chunks))

	for start := 0; start < len(chunks); start += ix.embedBatch {
		end := start + ix.embedBatch
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		embeddings, err := ix.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch at %d: %w", start, err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedding batch at %d: got %d embeddings for %d texts", start, len(embeddings), len(batch))
		}

		for i, chunk := range batch {
			vectors = append(vectors, entities.Vector{
				ID:       chunk.ID(),
				Values:   embeddings[i],
				Metadata: entities.Metadata{Text: chunk.Text},
			})
		}
	}

	for start := 0; start < len(vectors); start += ix.upsertBatch {
		end := start + ix.upsertBatch
		if end > len(vectors) {
			end = len(vectors)
		}
		if err := ix.index.Upsert(ctx, indexName, vectors[start:end]); err != nil {
			return fmt.Errorf("upserting batch at %d: %w", start, err)
		}
	}

	log.Printf("[INFO] indexed %d vectors into %q", len(vectors), indexName)
	return nil
}

func isDocument(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), documentExt)
}
