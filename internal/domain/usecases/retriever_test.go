package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

func meta(text string) *entities.Metadata {
	return &entities.Metadata{Text: text}
}

func TestRetriever_ReturnsMatchText(t *testing.T) {
	index := &mockIndex{matches: []entities.QueryMatch{
		{Score: 0.9, Metadata: meta("first")},
		{Score: 0.8, Metadata: meta("second")},
	}}

	r := NewRetriever(&mockEmbedder{}, index, 3)
	contexts := r.Retrieve(context.Background(), "lawpal", "What is the filing deadline?")

	assert.Equal(t, []string{"first", "second"}, contexts)
}

func TestRetriever_RespectsTopK(t *testing.T) {
	index := &mockIndex{matches: []entities.QueryMatch{
		{Score: 0.9, Metadata: meta("a")},
		{Score: 0.8, Metadata: meta("b")},
		{Score: 0.7, Metadata: meta("c")},
		{Score: 0.6, Metadata: meta("d")},
	}}

	r := NewRetriever(&mockEmbedder{}, index, 3)
	contexts := r.Retrieve(context.Background(), "lawpal", "query")

	assert.LessOrEqual(t, len(contexts), 3)
}

func TestRetriever_DropsMatchesWithoutMetadata(t *testing.T) {
	index := &mockIndex{matches: []entities.QueryMatch{
		{Score: 0.9, Metadata: nil},
		{Score: 0.8, Metadata: meta("kept")},
	}}

	r := NewRetriever(&mockEmbedder{}, index, 3)
	contexts := r.Retrieve(context.Background(), "lawpal", "query")

	assert.Equal(t, []string{"kept"}, contexts)
}

func TestRetriever_IndexErrorDegradesToEmpty(t *testing.T) {
	index := &mockIndex{queryErr: errors.New("index unavailable")}

	r := NewRetriever(&mockEmbedder{}, index, 3)
	contexts := r.Retrieve(context.Background(), "lawpal", "query")

	assert.Empty(t, contexts)
}

func TestRetriever_EmbeddingErrorDegradesToEmpty(t *testing.T) {
	embedder := &mockEmbedder{embedFn: func(string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}}
	index := &mockIndex{matches: []entities.QueryMatch{{Score: 0.9, Metadata: meta("a")}}}

	r := NewRetriever(embedder, index, 3)
	contexts := r.Retrieve(context.Background(), "lawpal", "query")

	assert.Empty(t, contexts)
	assert.Zero(t, index.queryCalls)
}
