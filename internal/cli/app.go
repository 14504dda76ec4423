package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/lawpal/lawpal-go/internal/adapters/embedding"
	"github.com/lawpal/lawpal-go/internal/adapters/llm"
	"github.com/lawpal/lawpal-go/internal/adapters/pdf"
	"github.com/lawpal/lawpal-go/internal/adapters/storage"
	"github.com/lawpal/lawpal-go/internal/adapters/vectordb"
	"github.com/lawpal/lawpal-go/internal/config"
	"github.com/lawpal/lawpal-go/internal/domain/entities"
	"github.com/lawpal/lawpal-go/internal/domain/ports"
	"github.com/lawpal/lawpal-go/internal/domain/usecases"
	"github.com/lawpal/lawpal-go/internal/session"
)

// app holds the fully wired service graph.
type app struct {
	cfg          *config.Config
	indexer      *usecases.Indexer
	orchestrator *usecases.Orchestrator
	forms        ports.FormStore
	watchDir     string // non-empty when the local source should be watched
}

// buildApp constructs every adapter and usecase from configuration. Each
// capability is created once here and injected down.
func buildApp(cfg *config.Config) (*app, error) {
	docs, forms, watchDir, err := buildStorage(cfg)
	if err != nil {
		return nil, err
	}

	index, err := buildVectorIndex(cfg)
	if err != nil {
		return nil, err
	}

	embedder := embedding.NewOpenAIAdapter(
		cfg.Embedding.BaseURL,
		os.Getenv(cfg.Embedding.APIKeyEnv),
		cfg.Embedding.Model,
	)

	llmKey, err := config.Secret(cfg.LLM.APIKeyEnv)
	if err != nil {
		return nil, err
	}
	model := llm.NewGroqAdapter(cfg.LLM.BaseURL, llmKey, cfg.LLM.Model)

	chunker := usecases.NewChunker(pdf.NewExtractor(), cfg.Ingestion.ChunkSize)
	indexer := usecases.NewIndexer(index, embedder, docs, chunker, cfg.Embedding.Dimension)

	retriever := usecases.NewRetriever(embedder, index, cfg.Chat.TopK)
	generator := usecases.NewGenerator(model, cfg.LLM.MaxTokens, cfg.LLM.Temperature)
	sessions := session.NewStore(cfg.Chat.HistoryLimit)
	orchestrator := usecases.NewOrchestrator(retriever, generator, sessions, cfg.VectorIndex.Name)

	return &app{
		cfg:          cfg,
		indexer:      indexer,
		orchestrator: orchestrator,
		forms:        forms,
		watchDir:     watchDir,
	}, nil
}

func buildStorage(cfg *config.Config) (ports.DocumentStore, ports.FormStore, string, error) {
	switch cfg.Storage.Type {
	case "supabase":
		sb := cfg.Storage.Supabase
		url := sb.URL
		if url == "" {
			var err error
			url, err = config.Secret("SUPABASE_URL")
			if err != nil {
				return nil, nil, "", err
			}
		}
		key, err := config.Secret(sb.APIKeyEnv)
		if err != nil {
			return nil, nil, "", err
		}
		return storage.NewSupabaseStore(url, key, sb.Bucket), storage.NewSupabaseForms(url, key), "", nil

	case "local":
		local := storage.NewLocalStore(cfg.Storage.Local.Dir)
		watchDir := ""
		if cfg.Storage.Local.Watch {
			watchDir = local.Dir()
		}
		return local, discardForms{}, watchDir, nil

	default:
		return nil, nil, "", fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}

func buildVectorIndex(cfg *config.Config) (ports.VectorIndex, error) {
	switch cfg.VectorIndex.Type {
	case "pinecone":
		key, err := config.Secret(cfg.VectorIndex.Pinecone.APIKeyEnv)
		if err != nil {
			return nil, err
		}
		return vectordb.NewPineconeIndex("", key, cfg.VectorIndex.Pinecone.Cloud, cfg.VectorIndex.Pinecone.Region), nil

	case "sqlite":
		return vectordb.NewSQLiteIndex(cfg.VectorIndex.SQLite.Path)

	case "memory":
		return vectordb.NewInMemoryIndex(), nil

	default:
		return nil, fmt.Errorf("unknown vector index type %q", cfg.VectorIndex.Type)
	}
}

// discardForms stands in for a form store when no backing table is
// configured. Submissions are logged and accepted.
type discardForms struct{}

func (discardForms) Submit(_ context.Context, form entities.ContactForm) error {
	log.Printf("[INFO] contact form from %s %s <%s> discarded (no form store configured)", form.FirstName, form.LastName, form.Email)
	return nil
}
