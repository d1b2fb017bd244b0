package chat

import (
	"context"
	"fmt"

	"github.com/aditya22034/CodeWhisper/internal/llm"
	"github.com/aditya22034/CodeWhisper/internal/loader"
	"github.com/aditya22034/CodeWhisper/internal/store"
)

// Completer generates the final answer from an ordered message history.
type Completer interface {
	Complete(ctx context.Context, msgs []llm.Message) (string, error)
}

// StructuredCompleter answers a single prompt constrained to a JSON schema.
// Classification and file selection go through it.
type StructuredCompleter interface {
	CompleteStructured(ctx context.Context, prompt, schemaName string, schema map[string]any, out any) error
}

// Retriever searches the two chunk collections. Implementations embed the
// query themselves.
type Retriever interface {
	SearchCode(ctx context.Context, query string, k int) ([]store.SearchResult, error)
	SearchDocs(ctx context.Context, query string, k int) ([]store.SearchResult, error)
}

// Engine answers one question per call: classify, run the strategy for the
// label, fold the context into the user turn, and complete over the full
// history.
type Engine struct {
	Completer Completer
	Selector  StructuredCompleter
	Retriever Retriever

	// ReadFile overrides whole-file reading for the FILE/GENERAL
	// strategies; defaults to the loader registry.
	ReadFile func(path, ext string) (string, error)
	// K is the per-collection result count for dual search; defaults to 3.
	K int
	// Logf receives degradation notices; nil silences them.
	Logf func(format string, args ...any)
}

const userTurnFmt = `USER QUESTION: %s

---:RELEVANT CONTEXT:---
%s
`

// Answer runs the full pipeline for one question and returns the
// assistant's reply, appending both the user turn and the reply to the
// session history. The user turn is appended before the completion call and
// is intentionally not rolled back if that call fails.
func (e *Engine) Answer(ctx context.Context, s *Session, query string) (string, error) {
	label, err := e.Classify(ctx, query)
	if err != nil {
		return "", &InternalError{Err: err}
	}

	contextBlock, err := e.contextFor(ctx, label, query, s)
	if err != nil {
		return "", &InternalError{Err: err}
	}

	s.History = append(s.History, llm.HumanMessage(fmt.Sprintf(userTurnFmt, query, contextBlock)))

	reply, err := e.Completer.Complete(ctx, s.History)
	if err != nil {
		return "", &InternalError{Err: err}
	}
	s.History = append(s.History, llm.AIMessage(reply))
	return reply, nil
}

// contextFor dispatches to exactly one retrieval strategy per label.
func (e *Engine) contextFor(ctx context.Context, label Label, query string, s *Session) (string, error) {
	switch label {
	case LabelFunctionOrClass:
		return e.dualSearchContext(ctx, query), nil
	case LabelFollowUp:
		return FollowUpSentinel, nil
	case LabelFile:
		return e.singleFileContext(ctx, query, s)
	case LabelGeneral:
		return e.multiFileContext(ctx, query, s)
	}
	return NoContextSentinel, nil
}

func (e *Engine) readFile(path, ext string) (string, error) {
	if e.ReadFile != nil {
		return e.ReadFile(path, ext)
	}
	return loader.Read(path, ext)
}

func (e *Engine) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}
