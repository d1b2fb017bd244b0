// Package chat implements the retrieval/routing core: question
// classification, the four context-assembly strategies, and the
// conversation engine that folds retrieved context into an accumulating
// message history.
package chat

import (
	"fmt"

	"github.com/aditya22034/CodeWhisper/internal/llm"
	"github.com/aditya22034/CodeWhisper/internal/walker"
)

const systemPrompt = `You are an expert AI assistant specialized in answering questions about a GitHub code repository.
Your tasks include:
- Answering questions related to files, code, functions, classes, documentation, or any technical details in the repository.
- Handling questions that are general or conceptual about the codebase, its purpose, design, or structure.
- Generating new code snippets, suggestions, or explanations if the user asks for help beyond the provided code (e.g. improvements, examples, refactoring).
- Using relevant context provided to you, which may include:
    - Code snippets
    - Non-code snippets
    - Complete file contents

Guidelines:
- Always use the provided context first to answer the user's question if it is relevant.
- If the user asks an open-ended question that goes beyond the context, feel free to answer using your own knowledge, but also try to incorporate the context if it's helpful.
- If the context provided does not contain sufficient information to answer the specific question, and the question is not open-ended, reply:
    > "The provided context is not sufficient to answer this question."
- Never fabricate details about specific code or files if the context does not mention them.
Be precise, technical, and helpful in your answers.`

// Session holds the per-repository conversation state: the ordered message
// history and the file symbol table of the currently ingested repository.
// It is replaced wholesale on each new ingestion, never merged.
type Session struct {
	History   []llm.Message
	Files     []walker.FileRecord
	FileTable string
}

// NewSession returns a session seeded with the system prompt.
func NewSession() *Session {
	s := &Session{}
	s.Reset(nil)
	return s
}

// Reset clears the history, re-seeds the system prompt, and installs the
// symbol table of a freshly ingested repository. The system prompt is always
// the first history entry.
func (s *Session) Reset(files []walker.FileRecord) {
	s.History = s.History[:0]
	s.History = append(s.History, llm.SystemMessage(systemPrompt))
	s.Files = files
	s.FileTable = FormatFileTable(files)
}

// FormatFileTable renders the symbol table as the numbered listing embedded
// in selection prompts. Indices are 1-based.
func FormatFileTable(files []walker.FileRecord) string {
	var out string
	for i, f := range files {
		out += fmt.Sprintf("%d.  Path: %s   Filename: %s\n", i+1, f.Path, f.Filename)
	}
	return out
}
