// Package config loads service configuration from YAML with sane defaults.
// Secrets are never stored in the file; config names the environment
// variables they come from.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	VectorIndex VectorIndexConfig `yaml:"vector_index"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	LLM         LLMConfig         `yaml:"llm"`
	Ingestion   IngestionConfig   `yaml:"ingestion"`
	Chat        ChatConfig        `yaml:"chat"`
}

// ServerConfig holds HTTP transport settings.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	AllowedOrigin string `yaml:"allowed_origin"`
}

// StorageConfig selects and configures the document source.
type StorageConfig struct {
	Type     string          `yaml:"type"` // "supabase" or "local"
	Supabase *SupabaseConfig `yaml:"supabase,omitempty"`
	Local    *LocalConfig    `yaml:"local,omitempty"`
}

// SupabaseConfig holds Supabase project connection settings.
type SupabaseConfig struct {
	URL       string `yaml:"url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Bucket    string `yaml:"bucket"`
}

// LocalConfig holds the directory-backed document source settings.
type LocalConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// VectorIndexConfig selects and configures the vector index backend.
type VectorIndexConfig struct {
	Type     string          `yaml:"type"` // "pinecone", "sqlite", or "memory"
	Name     string          `yaml:"name"`
	Pinecone *PineconeConfig `yaml:"pinecone,omitempty"`
	SQLite   *SQLiteConfig   `yaml:"sqlite,omitempty"`
}

// PineconeConfig holds Pinecone connection settings.
type PineconeConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	Cloud     string `yaml:"cloud"`
	Region    string `yaml:"region"`
}

// SQLiteConfig holds the local persistent index settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig configures the OpenAI-compatible embedding endpoint.
type EmbeddingConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
}

// LLMConfig configures the chat completion endpoint.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// IngestionConfig configures document chunking.
type IngestionConfig struct {
	ChunkSize int `yaml:"chunk_size"`
}

// ChatConfig configures query-time behavior.
type ChatConfig struct {
	TopK         int `yaml:"top_k"`
	HistoryLimit int `yaml:"history_limit"`
}

// Default returns the default configuration, matching the reference
// deployment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          ":5000",
			AllowedOrigin: "http://localhost:5173",
		},
		Storage: StorageConfig{
			Type: "supabase",
			Supabase: &SupabaseConfig{
				APIKeyEnv: "SUPABASE_ANON_KEY",
				Bucket:    "pdfs",
			},
		},
		VectorIndex: VectorIndexConfig{
			Type: "pinecone",
			Name: "lawpal",
			Pinecone: &PineconeConfig{
				APIKeyEnv: "PINECONE_API",
				Cloud:     "aws",
				Region:    "us-east-1",
			},
		},
		Embedding: EmbeddingConfig{
			APIKeyEnv: "EMBEDDING_API_KEY",
			Model:     "all-minilm",
			Dimension: 384,
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.groq.com/openai/v1",
			APIKeyEnv:   "GROQ_API",
			Model:       "llama-3.3-70b-versatile",
			MaxTokens:   700,
			Temperature: 0.5,
		},
		Ingestion: IngestionConfig{
			ChunkSize: 1000,
		},
		Chat: ChatConfig{
			TopK:         3,
			HistoryLimit: 15,
		},
	}
}

// Load reads a config file, merging it over the defaults. A missing file
// yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills gaps a partial config file leaves behind.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.AllowedOrigin == "" {
		cfg.Server.AllowedOrigin = def.Server.AllowedOrigin
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = def.Storage.Type
	}
	if cfg.Storage.Type == "supabase" && cfg.Storage.Supabase == nil {
		cfg.Storage.Supabase = def.Storage.Supabase
	}
	if cfg.Storage.Type == "local" && cfg.Storage.Local == nil {
		cfg.Storage.Local = &LocalConfig{Dir: "./documents"}
	}
	if cfg.VectorIndex.Type == "" {
		cfg.VectorIndex.Type = def.VectorIndex.Type
	}
	if cfg.VectorIndex.Name == "" {
		cfg.VectorIndex.Name = def.VectorIndex.Name
	}
	if cfg.VectorIndex.Type == "pinecone" && cfg.VectorIndex.Pinecone == nil {
		cfg.VectorIndex.Pinecone = def.VectorIndex.Pinecone
	}
	if cfg.VectorIndex.Type == "sqlite" && cfg.VectorIndex.SQLite == nil {
		cfg.VectorIndex.SQLite = &SQLiteConfig{Path: "./data"}
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = def.Embedding.APIKeyEnv
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = def.Embedding.Model
	}
	if cfg.Embedding.Dimension == 0 {
		cfg.Embedding.Dimension = def.Embedding.Dimension
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = def.LLM.BaseURL
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = def.LLM.APIKeyEnv
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = def.LLM.Model
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = def.LLM.Temperature
	}
	if cfg.Ingestion.ChunkSize == 0 {
		cfg.Ingestion.ChunkSize = def.Ingestion.ChunkSize
	}
	if cfg.Chat.TopK == 0 {
		cfg.Chat.TopK = def.Chat.TopK
	}
	if cfg.Chat.HistoryLimit == 0 {
		cfg.Chat.HistoryLimit = def.Chat.HistoryLimit
	}
}

// Secret resolves a named environment variable, erroring when it is unset.
func Secret(envName string) (string, error) {
	value := os.Getenv(envName)
	if value == "" {
		return "", fmt.Errorf("missing required environment variable %s", envName)
	}
	return value, nil
}
