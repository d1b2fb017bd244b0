package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>",
	Short: "Index a local repository for chat",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		root, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		_, ingestor := buildEngine(cfg)

		fmt.Printf("Indexing %s...\n", root)
		start := time.Now()

		result, err := ingestor.Ingest(cmd.Context(), root)
		elapsed := time.Since(start)

		if result != nil {
			if result.Dual != nil {
				defer result.Dual.Close()
			}
			fmt.Printf("\nDone in %s\n", elapsed.Round(time.Millisecond))
			fmt.Printf("  Files:       %d\n", result.Stats.Files)
			fmt.Printf("  Code chunks: %d\n", result.Stats.CodeChunks)
			fmt.Printf("  Doc chunks:  %d\n", result.Stats.DocChunks)
		}

		return err
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
