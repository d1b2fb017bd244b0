package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aditya22034/CodeWhisper/internal/config"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "codewhisper",
	Short: "Chat with any public GitHub repository using RAG",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ./codewhisper.yaml)")
}

// loadConfig reads the config and checks the one setting nothing can
// default: the OpenAI key.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured (set CODEWHISPER_OPENAI_API_KEY)")
	}
	return cfg, nil
}
