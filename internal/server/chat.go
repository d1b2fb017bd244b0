package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/aditya22034/CodeWhisper/internal/chat"
	"github.com/aditya22034/CodeWhisper/internal/config"
	"github.com/aditya22034/CodeWhisper/internal/gitclone"
	"github.com/aditya22034/CodeWhisper/internal/index"
)

type initChatRequest struct {
	RepoURL string `json:"repo_url"`
}

type chatRequest struct {
	Query string `json:"query"`
}

// ChatHandler owns the single active chat: one indexed repository, one
// session. Its mutex serializes /init-chat and /start-chat so re-indexing
// never races an in-flight answer.
type ChatHandler struct {
	mu      sync.Mutex
	cfg     *config.Config
	engine  *chat.Engine
	session *chat.Session
	dual    *index.Dual

	// Clone and Ingest default to the real implementations; tests swap
	// them out.
	Clone  func(ctx context.Context, url, dest string) error
	Ingest func(ctx context.Context, root string) (*index.Result, error)
}

// NewChatHandler wires the handler to the embedding service through the
// ingestor and to the chat engine. The engine starts with no retriever;
// /init-chat installs one.
func NewChatHandler(cfg *config.Config, engine *chat.Engine, ingestor *index.Ingestor) *ChatHandler {
	return &ChatHandler{
		cfg:     cfg,
		engine:  engine,
		session: chat.NewSession(),
		Clone:   gitclone.Clone,
		Ingest: func(ctx context.Context, root string) (*index.Result, error) {
			return ingestor.Ingest(ctx, root)
		},
	}
}

func (h *ChatHandler) Register(e *echo.Echo) {
	e.POST("/init-chat", h.initChat)
	e.POST("/start-chat", h.startChat)
}

// validateRepoURL accepts only https://github.com/<owner>/<repo> style URLs.
func validateRepoURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if !strings.HasPrefix(u.Scheme, "http") {
		return errors.New("Only HTTPS URLs are allowed")
	}
	if u.Host != "github.com" {
		return errors.New("Only 'github.com' URLs are allowed")
	}
	if len(strings.Split(strings.Trim(u.Path, "/"), "/")) < 2 {
		return errors.New("Invalid GitHub repo URL format. Must be like 'https://github.com/user/repo'")
	}
	return nil
}

func (h *ChatHandler) initChat(c echo.Context) error {
	var req initChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := validateRepoURL(req.RepoURL); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.cleanup(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Internal error: %v", err))
	}

	repoName := gitclone.RepoName(req.RepoURL)
	repoPath, err := filepath.Abs(filepath.Join(h.cfg.Workspace.Dir, repoName))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Internal error: %v", err))
	}

	ctx := c.Request().Context()
	if err := h.Clone(ctx, req.RepoURL, repoPath); err != nil {
		switch {
		case errors.Is(err, gitclone.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Repository not found or private")
		case errors.Is(err, gitclone.ErrAuthFailed):
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed")
		default:
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Git error: %v", err))
		}
	}

	result, err := h.Ingest(ctx, repoPath)
	if err != nil {
		if result != nil && result.Dual != nil {
			result.Dual.Close()
		}
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Internal error: %v", err))
	}

	h.dual = result.Dual
	h.engine.Retriever = result.Dual
	h.session.Reset(result.Files)

	return c.JSON(http.StatusOK, map[string]string{
		"message":    "Repository cloned successfully",
		"local_path": repoPath,
	})
}

func (h *ChatHandler) startChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	answer, err := h.engine.Answer(c.Request().Context(), h.session, req.Query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Internal error: %v", err))
	}
	return c.JSON(http.StatusOK, map[string]string{"message": answer})
}

// cleanup drops the previous repository and both collections wholesale so
// every /init-chat starts from an empty index.
func (h *ChatHandler) cleanup() error {
	if h.dual != nil {
		h.dual.Close()
		h.dual = nil
		h.engine.Retriever = nil
	}
	for _, dir := range []string{
		h.cfg.Workspace.Dir,
		h.cfg.Workspace.CodeIndexDir(),
		h.cfg.Workspace.DocsIndexDir(),
	} {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		if err := os.RemoveAll(abs); err != nil {
			return err
		}
	}
	return nil
}
