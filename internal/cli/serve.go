package cli

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lawpal/lawpal-go/internal/adapters/filewatcher"
	"github.com/lawpal/lawpal-go/internal/config"
	"github.com/lawpal/lawpal-go/internal/domain/usecases"
	httpserver "github.com/lawpal/lawpal-go/internal/infrastructure/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Ingest the corpus if needed, then serve the chat API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		application, err := buildApp(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Ingestion runs to completion before queries are served. A corpus
		// that yields nothing is reported but does not stop the server; it
		// answers without grounding until documents arrive.
		application.indexer.ShowProgress(true)
		if err := application.indexer.EnsureIndexed(ctx, cfg.VectorIndex.Name); err != nil {
			if !errors.Is(err, usecases.ErrNoDocuments) {
				return err
			}
			log.Printf("[ERROR] ingestion: %v", err)
		}

		if application.watchDir != "" {
			if err := watchDocuments(ctx, application, cfg.VectorIndex.Name); err != nil {
				return err
			}
		}

		server := httpserver.NewServer(
			application.orchestrator,
			application.forms,
			cfg.Server.Addr,
			cfg.Server.AllowedOrigin,
		)
		return server.Start(ctx)
	},
}

// watchDocuments re-ingests documents dropped into the local source directory.
func watchDocuments(ctx context.Context, application *app, indexName string) error {
	watcher, err := filewatcher.NewFSNotifyWatcher(nil)
	if err != nil {
		return err
	}

	events, err := watcher.Watch(ctx, application.watchDir)
	if err != nil {
		watcher.Stop()
		return err
	}
	log.Printf("[INFO] watching %s for new documents", application.watchDir)

	go func() {
		defer watcher.Stop()
		for event := range events {
			if err := application.indexer.IndexDocument(ctx, indexName, event.Name); err != nil {
				log.Printf("[ERROR] indexing %s: %v", event.Name, err)
			}
		}
	}()
	return nil
}
