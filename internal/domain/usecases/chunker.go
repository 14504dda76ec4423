// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
package usecases

import (
	"context"
	"strings"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
	"github.com/lawpal/lawpal-go/internal/domain/ports"
)

// DefaultChunkSize is the maximum characters per chunk.
const DefaultChunkSize = 1000

// Chunker splits a raw document into fixed-size text chunks. Text is
// extracted per page and each page is wrapped independently; chunks never
// span a page boundary and never overlap.
type Chunker struct {
	extractor ports.PageExtractor
	chunkSize int
}

// NewChunker creates a Chunker with injected dependencies.
func NewChunker(extractor ports.PageExtractor, chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Chunker{
		extractor: extractor,
		chunkSize: chunkSize,
	}
}

// Chunk extracts text from the document bytes and wraps it into chunks.
// Sequence numbers are assigned only after whitespace-only chunks have been
// discarded, so they are contiguous per source.
func (c *Chunker) Chunk(ctx context.Context, sourceID string, data []byte) ([]entities.Chunk, error) {
	pages, err := c.extractor.ExtractPages(ctx, data)
	if err != nil {
		return nil, err
	}

	var chunks []entities.Chunk
	seq := 0
	for _, page := range pages {
		for _, text := range wrap(page, c.chunkSize) {
			if strings.TrimSpace(text) == "" {
				continue
			}
			chunks = append(chunks, entities.Chunk{
				SourceID: sourceID,
				Sequence: seq,
				Text:     text,
			})
			seq++
		}
	}
	return chunks, nil
}

// wrap greedily packs whitespace-separated words into lines of at most width
// characters. A single word longer than width is hard-cut. Whitespace runs
// collapse to single spaces.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var line strings.Builder
	for _, word := range words {
		for len(word) > width {
			if line.Len() > 0 {
				lines = append(lines, line.String())
				line.Reset()
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		if word == "" {
			continue
		}
		switch {
		case line.Len() == 0:
			line.WriteString(word)
		case line.Len()+1+len(word) <= width:
			line.WriteByte(' ')
			line.WriteString(word)
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
