package usecases

import "errors"

// Sentinel errors surfaced to callers. Retrieval and generation failures are
// absorbed inside their usecases and never reach this level.
var (
	// ErrUnknownService rejects a service category outside the registered set.
	ErrUnknownService = errors.New("invalid service category")

	// ErrEmptyQuery rejects a chat turn with no query text.
	ErrEmptyQuery = errors.New("no query provided")

	// ErrNoDocuments aborts ingestion when the whole corpus yielded zero
	// usable chunks.
	ErrNoDocuments = errors.New("no documents extracted from the corpus")
)
