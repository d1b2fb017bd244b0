package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":8000" {
		t.Fatalf("address=%q", cfg.Server.Address)
	}
	if cfg.OpenAI.ChatModel != "gpt-4.1-nano" {
		t.Fatalf("chat model=%q", cfg.OpenAI.ChatModel)
	}
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-small" {
		t.Fatalf("embedding model=%q", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.OpenAI.EmbeddingDim != 1536 {
		t.Fatalf("dim=%d", cfg.OpenAI.EmbeddingDim)
	}
	if cfg.Retrieval.K != 3 {
		t.Fatalf("k=%d", cfg.Retrieval.K)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CODEWHISPER_OPENAI_API_KEY", "sk-test")
	t.Setenv("CODEWHISPER_SERVER_ADDRESS", ":9999")
	t.Setenv("CODEWHISPER_RETRIEVAL_K", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Fatalf("api key=%q", cfg.OpenAI.APIKey)
	}
	if cfg.Server.Address != ":9999" {
		t.Fatalf("address=%q", cfg.Server.Address)
	}
	if cfg.Retrieval.K != 5 {
		t.Fatalf("k=%d", cfg.Retrieval.K)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cw.yaml")
	content := "server:\n  address: \":7777\"\nworkspace:\n  dir: /tmp/ws\n  data_dir: /tmp/data\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":7777" {
		t.Fatalf("address=%q", cfg.Server.Address)
	}
	if cfg.Workspace.CodeIndexDir() != filepath.Join("/tmp/data", "code") {
		t.Fatalf("code dir=%q", cfg.Workspace.CodeIndexDir())
	}
	if cfg.Workspace.DocsIndexDir() != filepath.Join("/tmp/data", "docs") {
		t.Fatalf("docs dir=%q", cfg.Workspace.DocsIndexDir())
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
