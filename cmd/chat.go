package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aditya22034/CodeWhisper/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat <path>",
	Short: "Index a local repository and question it interactively",
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

		engine, ingestor := buildEngine(cfg)

		fmt.Println(dimStyle.Render("[Indexing " + root + "...]"))
		result, err := ingestor.Ingest(cmd.Context(), root)
		if err != nil {
			if result != nil && result.Dual != nil {
				result.Dual.Close()
			}
			return err
		}
		defer result.Dual.Close()

		engine.Retriever = result.Dual
		session := chat.NewSession()
		session.Reset(result.Files)

		fmt.Println(titleStyle.Render("codewhisper chat") + dimStyle.Render(" (type /help for commands, /exit to quit)"))
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(userMsgStyle.Render("> "))
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}

			switch question {
			case "/exit", "/quit":
				fmt.Println("Goodbye.")
				return nil
			case "/clear":
				session.Reset(result.Files)
				fmt.Println("Conversation cleared.")
				continue
			case "/help":
				fmt.Println("Commands:")
				fmt.Println("  /clear  - clear conversation history")
				fmt.Println("  /exit   - quit chat")
				fmt.Println("  /help   - show this help")
				continue
			}

			answer, err := engine.Answer(cmd.Context(), session, question)
			if err != nil {
				fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("error: %v", err)))
				continue
			}

			fmt.Println()
			fmt.Println(assistantMsgStyle.Render(answer))
			fmt.Println()
		}

		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
