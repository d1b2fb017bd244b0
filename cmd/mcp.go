package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/aditya22034/CodeWhisper/internal/chat"
	"github.com/aditya22034/CodeWhisper/internal/index"
	"github.com/aditya22034/CodeWhisper/internal/walker"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing repository chat tools",
	RunE:  runMCP,
}

// mcpState is the one indexed repository the MCP tools operate on.
// ingest_repo replaces it wholesale.
type mcpState struct {
	mu      sync.Mutex
	dual    *index.Dual
	files   []walker.FileRecord
	session *chat.Session
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, ingestor := buildEngine(cfg)
	state := &mcpState{session: chat.NewSession()}

	s := mcpserver.NewMCPServer("codewhisper", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(ingestRepoTool(), makeIngestHandler(state, engine, ingestor))
	s.AddTool(askRepoTool(), makeAskHandler(state, engine))
	s.AddTool(listRepoFilesTool(), makeListFilesHandler(state))

	return mcpserver.ServeStdio(s)
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func ingestRepoTool() mcp.Tool {
	return mcp.NewTool("ingest_repo",
		mcp.WithDescription("Index a local repository so its code and documents can be questioned. Replaces any previously indexed repository and resets the conversation."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Local filesystem path of the repository to index"),
		),
	)
}

func askRepoTool() mcp.Tool {
	return mcp.NewTool("ask_repo",
		mcp.WithDescription("Ask a question about the indexed repository. The question is classified and answered with retrieved code chunks, document chunks, or whole files as context. Conversation history accumulates across calls."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language question about the repository"),
		),
	)
}

func listRepoFilesTool() mcp.Tool {
	return mcp.NewTool("list_repo_files",
		mcp.WithDescription("List every file of the indexed repository with its position in the file table."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
	)
}

// --- Handler factories ---

func makeIngestHandler(state *mcpState, engine *chat.Engine, ingestor *index.Ingestor) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		if path == "" {
			return mcp.NewToolResultError("path is required"), nil
		}
		root, err := filepath.Abs(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		state.mu.Lock()
		defer state.mu.Unlock()

		if state.dual != nil {
			state.dual.Close()
			state.dual = nil
		}

		result, err := ingestor.Ingest(ctx, root)
		if err != nil {
			if result != nil && result.Dual != nil {
				result.Dual.Close()
			}
			return mcp.NewToolResultError(fmt.Sprintf("ingest failed: %v", err)), nil
		}

		state.dual = result.Dual
		state.files = result.Files
		state.session.Reset(result.Files)
		engine.Retriever = result.Dual

		return mcp.NewToolResultText(fmt.Sprintf(
			"Indexed %s: %d files, %d code chunks, %d document chunks",
			root, result.Stats.Files, result.Stats.CodeChunks, result.Stats.DocChunks)), nil
	}
}

func makeAskHandler(state *mcpState, engine *chat.Engine) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		state.mu.Lock()
		defer state.mu.Unlock()

		if state.dual == nil {
			return mcp.NewToolResultError("no repository indexed — call ingest_repo first"), nil
		}

		answer, err := engine.Answer(ctx, state.session, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("answer failed: %v", err)), nil
		}
		return mcp.NewToolResultText(answer), nil
	}
}

func makeListFilesHandler(state *mcpState) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		state.mu.Lock()
		defer state.mu.Unlock()

		if len(state.files) == 0 {
			return mcp.NewToolResultError("no repository indexed — call ingest_repo first"), nil
		}

		var b strings.Builder
		for i, f := range state.files {
			fmt.Fprintf(&b, "%d. %s\n", i+1, f.Path)
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}
