package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:5173", cfg.Server.AllowedOrigin)

	assert.Equal(t, "supabase", cfg.Storage.Type)
	require.NotNil(t, cfg.Storage.Supabase)
	assert.Equal(t, "pdfs", cfg.Storage.Supabase.Bucket)

	assert.Equal(t, "pinecone", cfg.VectorIndex.Type)
	assert.Equal(t, "lawpal", cfg.VectorIndex.Name)
	require.NotNil(t, cfg.VectorIndex.Pinecone)
	assert.Equal(t, "aws", cfg.VectorIndex.Pinecone.Cloud)
	assert.Equal(t, "us-east-1", cfg.VectorIndex.Pinecone.Region)

	assert.Equal(t, 384, cfg.Embedding.Dimension)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, 700, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.5, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 1000, cfg.Ingestion.ChunkSize)
	assert.Equal(t, 3, cfg.Chat.TopK)
	assert.Equal(t, 15, cfg.Chat.HistoryLimit)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":8080"
storage:
  type: local
  local:
    dir: ./testdocs
    watch: true
chat:
  top_k: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "local", cfg.Storage.Type)
	require.NotNil(t, cfg.Storage.Local)
	assert.Equal(t, "./testdocs", cfg.Storage.Local.Dir)
	assert.True(t, cfg.Storage.Local.Watch)
	assert.Equal(t, 5, cfg.Chat.TopK)

	// Everything the file left out keeps its default.
	assert.Equal(t, "http://localhost:5173", cfg.Server.AllowedOrigin)
	assert.Equal(t, "pinecone", cfg.VectorIndex.Type)
	assert.Equal(t, 15, cfg.Chat.HistoryLimit)
	assert.Equal(t, 700, cfg.LLM.MaxTokens)
}

func TestLoad_BackendSubsectionsGetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  type: local
vector_index:
  type: sqlite
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Storage.Local)
	assert.Equal(t, "./documents", cfg.Storage.Local.Dir)
	require.NotNil(t, cfg.VectorIndex.SQLite)
	assert.Equal(t, "./data", cfg.VectorIndex.SQLite.Path)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: a: mapping"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSecret(t *testing.T) {
	t.Setenv("LAWPAL_TEST_SECRET", "s3cret")

	value, err := Secret("LAWPAL_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)

	_, err = Secret("LAWPAL_TEST_SECRET_UNSET")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAWPAL_TEST_SECRET_UNSET")
}
