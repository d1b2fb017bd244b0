package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/aditya22034/CodeWhisper/internal/llm"
	"github.com/aditya22034/CodeWhisper/internal/store"
)

// Sentinels signalling that a query needs no retrieved context.
const (
	// NoContextSentinel is returned by the selection strategies when no
	// file matches.
	NoContextSentinel = "No Context Needed."
	// FollowUpSentinel is the fixed context for follow-up questions.
	FollowUpSentinel = "A follow-up question is asked, No context Needed."
)

// defaultSearchK is how many chunks each collection contributes to
// dual-search context.
const defaultSearchK = 3

type singleFileSelection struct {
	FileIndex int `json:"file_index" jsonschema:"description=The 1-based index of the single matched file from the file list. Return -1 if no matching file is found."`
}

type multiFileSelection struct {
	FileIndices []int `json:"file_indices" jsonschema:"description=List of file indices (1-based) relevant to answering the user's question. Return [-1] if no files are relevant."`
}

var (
	singleFileSchema = llm.GenerateSchema[singleFileSelection]()
	multiFileSchema  = llm.GenerateSchema[multiFileSelection]()
)

const singleFilePromptFmt = `You are an expert software engineering assistant helping analyze a GitHub code repository.
A user has asked the following question:
%s

Below is a numbered list of all available files in the repository:
%s

The user has explicitly mentioned a filename in their question.
Your task is to:
- Identify exactly which single file they are referring to from the list above.
- If the filename mentioned in the question does NOT match any file in the list, return -1.
- Return ONLY a JSON object in this exact format:
{ "file_index": 3 }     OR    { "file_index": -1 }
- Do NOT include any explanation or extra text. Only the JSON object with an integer value.`

const multiFilePromptFmt = `You are an expert software engineering assistant helping analyze a GitHub code repository.
A user has asked the following question:
%s

Your task is to decide which specific files from the repository are relevant to answering this question.
Below is the list of all available files in the repository, each assigned a unique index:

%s

Instructions:
- If the user's question requires examining specific files to answer, return a list of the indices of those relevant files, using the numbers shown before each file above.
- If the user's question does NOT require referring to any specific files (e.g. it's a follow-up question, a general conversational reply, or does not depend on repository contents), return [-1].
- Return ONLY a JSON object in this exact format:
    { "file_indices": [1, 5, 8] }    OR    { "file_indices": [-1] }
- Do NOT include any explanation or extra text. Only the JSON object with numeric values.`

// dualSearchContext assembles similarity-search context from both
// collections. A failed or empty search renders its section's placeholder
// instead of aborting: retrieved context is advisory.
func (e *Engine) dualSearchContext(ctx context.Context, query string) string {
	k := e.K
	if k <= 0 {
		k = defaultSearchK
	}

	// A nil retriever means no repository has been indexed yet; both
	// sections render their placeholders.
	var codeResults, docResults []store.SearchResult
	if e.Retriever != nil {
		var err error
		codeResults, err = e.Retriever.SearchCode(ctx, query, k)
		if err != nil {
			e.logf("code search degraded to empty: %v", err)
			codeResults = nil
		}
		docResults, err = e.Retriever.SearchDocs(ctx, query, k)
		if err != nil {
			e.logf("non-code search degraded to empty: %v", err)
			docResults = nil
		}
	}

	var b strings.Builder
	b.WriteString("CODE RELATED CONTEXT:-----\n")
	writeSearchSection(&b, codeResults, "No Code Files Are There\n")
	b.WriteString("\nNON CODE RELATED CONTEXT:-----\n")
	writeSearchSection(&b, docResults, "No Non-Code Files Are There\n")
	return b.String()
}

func writeSearchSection(b *strings.Builder, results []store.SearchResult, placeholder string) {
	if len(results) == 0 {
		b.WriteString(placeholder)
		return
	}
	for i, r := range results {
		fmt.Fprintf(b, "%d.  File: %s\n Content:-\n%s\n", i+1, r.Chunk.SourcePath, r.Chunk.Text)
	}
}

// singleFileContext asks the model to resolve the one file the question
// names and returns its whole content. A -1 answer, an out-of-range index,
// or an unreadable file all degrade to the no-context sentinel.
func (e *Engine) singleFileContext(ctx context.Context, query string, s *Session) (string, error) {
	var out singleFileSelection
	prompt := fmt.Sprintf(singleFilePromptFmt, query, s.FileTable)
	if err := e.Selector.CompleteStructured(ctx, prompt, "SingleFileSelection", singleFileSchema, &out); err != nil {
		return "", &SelectionError{Err: err}
	}

	content, filename, ok := e.openFile(s, out.FileIndex)
	if !ok {
		return NoContextSentinel, nil
	}
	return fmt.Sprintf("1.  Filename: %s \nContents:-\n%s\n", filename, content), nil
}

// multiFileContext asks the model for every relevant file and concatenates
// their whole contents. Invalid indices are skipped; duplicates produce
// duplicate sections.
func (e *Engine) multiFileContext(ctx context.Context, query string, s *Session) (string, error) {
	var out multiFileSelection
	prompt := fmt.Sprintf(multiFilePromptFmt, query, s.FileTable)
	if err := e.Selector.CompleteStructured(ctx, prompt, "MultipleFilesSelection", multiFileSchema, &out); err != nil {
		return "", &SelectionError{Err: err}
	}

	if len(out.FileIndices) == 0 || out.FileIndices[0] == -1 {
		return NoContextSentinel, nil
	}

	var b strings.Builder
	n := 1
	for _, idx := range out.FileIndices {
		content, filename, ok := e.openFile(s, idx)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%d.  Filename: %s \nContents:-\n%s\n", n, filename, content)
		n++
	}
	if b.Len() == 0 {
		return NoContextSentinel, nil
	}
	return b.String(), nil
}

// openFile resolves a 1-based symbol-table index against the session's
// current file list and reads the whole file fresh from disk. Indices are
// validated at lookup time, not at selection time.
func (e *Engine) openFile(s *Session, index int) (content, filename string, ok bool) {
	if index < 1 || index > len(s.Files) {
		return "", "", false
	}
	record := s.Files[index-1]
	text, err := e.readFile(record.Path, record.Ext)
	if err != nil {
		e.logf("read %s degraded to no content: %v", record.Path, err)
		return "", "", false
	}
	return text, record.Filename, true
}
