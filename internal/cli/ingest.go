package cli

import (
	"github.com/spf13/cobra"

	"github.com/lawpal/lawpal-go/internal/config"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Populate the vector index from the document corpus and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		application, err := buildApp(cfg)
		if err != nil {
			return err
		}

		application.indexer.ShowProgress(true)
		return application.indexer.EnsureIndexed(cmd.Context(), cfg.VectorIndex.Name)
	},
}
