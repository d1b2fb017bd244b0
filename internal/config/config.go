// Package config loads application settings from a config file and the
// CODEWHISPER_* environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all settings for the server, indexer, and model clients.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// WorkspaceConfig locates cloned repositories and the index data on disk.
type WorkspaceConfig struct {
	// Dir is where repositories are cloned, one subdirectory per repo.
	Dir string `mapstructure:"dir"`
	// DataDir holds the two collection directories.
	DataDir string `mapstructure:"data_dir"`
	// Workers is the chunking worker count; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers"`
}

// OpenAIConfig selects the models used for chat and embeddings.
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	ChatModel      string `mapstructure:"chat_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	// EmbeddingDim must match the model's output dimension; both
	// collections are created with it.
	EmbeddingDim int `mapstructure:"embedding_dim"`
}

// RetrievalConfig tunes the searches run for question answering.
type RetrievalConfig struct {
	// K is the chunk count fetched per collection.
	K int `mapstructure:"k"`
}

// CodeIndexDir is the code collection directory under DataDir.
func (w WorkspaceConfig) CodeIndexDir() string { return filepath.Join(w.DataDir, "code") }

// DocsIndexDir is the non-code collection directory under DataDir.
func (w WorkspaceConfig) DocsIndexDir() string { return filepath.Join(w.DataDir, "docs") }

// Load reads settings from the given file (or from codewhisper.yaml in the
// working directory when path is empty) and the environment. A missing
// config file is fine; the defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.address", ":8000")
	v.SetDefault("workspace.dir", "workspace")
	v.SetDefault("workspace.data_dir", "data")
	v.SetDefault("workspace.workers", 0)
	// The key default makes viper bind the env variable during Unmarshal.
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.chat_model", "gpt-4.1-nano")
	v.SetDefault("openai.embedding_model", "text-embedding-3-small")
	v.SetDefault("openai.embedding_dim", 1536)
	v.SetDefault("retrieval.k", 3)

	if path == "" {
		v.SetConfigName("codewhisper")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("CODEWHISPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Retrieval.K <= 0 {
		cfg.Retrieval.K = 3
	}
	return &cfg, nil
}
