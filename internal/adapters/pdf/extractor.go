// Package pdf provides the text-extraction adapter.
// Clean Architecture: Adapter implementing ports.PageExtractor.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

// strategy extracts the text of one page. Strategies differ in how much PDF
// structure they rely on; later ones recover text from documents the earlier
// ones return nothing for.
type strategy struct {
	name    string
	extract func(page pdf.Page) (string, error)
}

// Extractor extracts per-page plain text from PDF bytes. Each page runs
// through an ordered list of strategies; the first non-empty result wins, and
// a page where every strategy comes up empty is skipped rather than failing
// the document.
type Extractor struct {
	strategies []strategy
}

// NewExtractor creates an Extractor with the default strategy chain:
// structured plain text, then row-grouped text, then raw content items.
func NewExtractor() *Extractor {
	return &Extractor{
		strategies: []strategy{
			{name: "plain", extract: plainText},
			{name: "rows", extract: rowText},
			{name: "raw", extract: rawText},
		},
	}
}

// ExtractPages returns the extracted text of each page with recoverable
// content, in page order.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text := e.extractPage(page, i)
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// extractPage runs the strategy chain for a single page.
func (e *Extractor) extractPage(page pdf.Page, pageNum int) string {
	for _, s := range e.strategies {
		text, err := safeExtract(s, page)
		if err != nil {
			log.Printf("[DEBUG] page %d: %s extraction failed: %v", pageNum, s.name, err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

// safeExtract converts parser panics into errors. The PDF library panics on
// some malformed content streams, and a single bad page must not take down
// the whole ingestion batch.
func safeExtract(s strategy, page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s extraction panicked: %v", s.name, r)
		}
	}()
	return s.extract(page)
}

func plainText(page pdf.Page) (string, error) {
	return page.GetPlainText(nil)
}

func rowText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, row := range rows {
		for _, word := range row.Content {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(word.S)
		}
	}
	return sb.String(), nil
}

func rawText(page pdf.Page) (string, error) {
	content := page.Content()

	var sb strings.Builder
	for _, item := range content.Text {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(item.S)
	}
	return sb.String(), nil
}
