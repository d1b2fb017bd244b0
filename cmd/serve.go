package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/aditya22034/CodeWhisper/internal/chat"
	"github.com/aditya22034/CodeWhisper/internal/config"
	"github.com/aditya22034/CodeWhisper/internal/index"
	"github.com/aditya22034/CodeWhisper/internal/llm"
	"github.com/aditya22034/CodeWhisper/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for chatting with a repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		engine, ingestor := buildEngine(cfg)
		handler := server.NewChatHandler(cfg, engine, ingestor)

		log.Printf("[SERVER] listening on %s", cfg.Server.Address)
		return server.Run(cfg, handler)
	},
}

// buildEngine wires the OpenAI client into a chat engine and an ingestor.
// The engine has no retriever until a repository is indexed.
func buildEngine(cfg *config.Config) (*chat.Engine, *index.Ingestor) {
	client := llm.New(cfg.OpenAI.APIKey, cfg.OpenAI.ChatModel, cfg.OpenAI.EmbeddingModel)
	engine := &chat.Engine{
		Completer: client,
		Selector:  client,
		K:         cfg.Retrieval.K,
		Logf:      log.New(log.Writer(), "[CHAT] ", log.LstdFlags).Printf,
	}
	ingestor := index.NewIngestor(client, index.Config{
		CodeDir: cfg.Workspace.CodeIndexDir(),
		DocsDir: cfg.Workspace.DocsIndexDir(),
		Dim:     cfg.OpenAI.EmbeddingDim,
		Workers: cfg.Workspace.Workers,
	})
	return engine, ingestor
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
