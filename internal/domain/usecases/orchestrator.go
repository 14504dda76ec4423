package usecases

import (
	"context"
	"strings"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
	"github.com/lawpal/lawpal-go/internal/session"
)

// Orchestrator is the single entry point for a chat turn: validate input,
// read history, retrieve context, generate, then record the turn.
type Orchestrator struct {
	retriever *Retriever
	generator *Generator
	sessions  *session.Store
	indexName string
}

// NewOrchestrator creates an Orchestrator with injected dependencies.
// indexName is the single deployed index all retrieval goes against.
func NewOrchestrator(retriever *Retriever, generator *Generator, sessions *session.Store, indexName string) *Orchestrator {
	return &Orchestrator{
		retriever: retriever,
		generator: generator,
		sessions:  sessions,
		indexName: indexName,
	}
}

// HandleQuery runs one chat turn. Validation failures return
// ErrUnknownService or ErrEmptyQuery before any retrieval, generation, or
// history mutation happens. The user and bot records of a turn are appended
// atomically, so a history never holds a half-applied turn.
func (o *Orchestrator) HandleQuery(ctx context.Context, service, userID, query string) (string, error) {
	svc, ok := entities.ParseService(service)
	if !ok {
		return "", ErrUnknownService
	}
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	history := o.sessions.History(svc, userID)
	contexts := o.retriever.Retrieve(ctx, o.indexName, query)
	answer := o.generator.Generate(ctx, query, contexts, history, svc)

	o.sessions.AppendTurn(svc, userID,
		entities.TurnRecord{Role: entities.RoleUser, Content: query},
		entities.TurnRecord{Role: entities.RoleBot, Content: answer},
	)
	return answer, nil
}

// History returns the stored conversation for a session, validating the
// service category the same way HandleQuery does.
func (o *Orchestrator) History(service, userID string) ([]entities.TurnRecord, error) {
	svc, ok := entities.ParseService(service)
	if !ok {
		return nil, ErrUnknownService
	}
	return o.sessions.History(svc, userID), nil
}
