// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

import (
	"fmt"
	"strings"
)

// ServiceCategory identifies one of the legal-assistance domains the service
// answers for. It partitions conversation history and parameterizes the
// generation prompt. The set is closed; unregistered categories are rejected.
type ServiceCategory string

const (
	ServicePersonalFamily   ServiceCategory = "personal-and-family-legal-assistance"
	ServiceBusinessCriminal ServiceCategory = "business-consumer-and-criminal-legal-assistance"
	ServiceConsultation     ServiceCategory = "consultation"
)

var serviceCategories = map[ServiceCategory]bool{
	ServicePersonalFamily:   true,
	ServiceBusinessCriminal: true,
	ServiceConsultation:     true,
}

// ParseService validates a raw category string against the registered set.
func ParseService(s string) (ServiceCategory, bool) {
	svc := ServiceCategory(s)
	return svc, serviceCategories[svc]
}

// DisplayName renders the category for prompt text: hyphens become spaces
// and each word is title-cased.
func (s ServiceCategory) DisplayName() string {
	words := strings.Split(string(s), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Roles for conversation turns.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// TurnRecord is a single conversation turn. Records are immutable once
// appended; the orchestrator appends one user and one bot record per turn.
type TurnRecord struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chunk is a bounded slice of a document's extracted text, the atomic unit
// of embedding and retrieval.
type Chunk struct {
	SourceID string // derived from the originating document name
	Sequence int    // monotonic per document
	Text     string
}

// ID builds the globally unique chunk identifier.
func (c Chunk) ID() string {
	return fmt.Sprintf("%s_chunk_%d", c.SourceID, c.Sequence)
}

// Metadata travels with a vector into the index. Text must equal the original
// chunk text verbatim; retrieval returns this text, not the embedding.
type Metadata struct {
	Text string `json:"text"`
}

// Vector pairs a chunk id with its embedding and metadata for upsert.
type Vector struct {
	ID       string    `json:"id"`
	Values   []float32 `json:"values"`
	Metadata Metadata  `json:"metadata"`
}

// QueryMatch is a nearest-neighbor result from the vector index. Metadata is
// nil when the stored vector carried none.
type QueryMatch struct {
	Score    float64
	Metadata *Metadata
}

// IndexStats reports the current state of a vector index.
type IndexStats struct {
	TotalVectorCount int
}

// ObjectInfo describes a document available in the document store.
type ObjectInfo struct {
	Name string `json:"name"`
}

// ContactForm is a contact-us submission. All fields are required.
type ContactForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

// Validate reports whether every required field is present and non-empty.
func (f ContactForm) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"email", f.Email},
		{"subject", f.Subject},
		{"message", f.Message},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("missing or empty required field: %s", field.name)
		}
	}
	return nil
}
