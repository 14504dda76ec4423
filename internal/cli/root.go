// Package cli wires configuration and adapters into the lawpal commands.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "lawpal",
	Short: "Retrieval-augmented legal-assistance chat service",
	Long: `lawpal ingests a PDF corpus into a vector index and serves a
conversation-aware question-answering API grounded in that corpus.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
