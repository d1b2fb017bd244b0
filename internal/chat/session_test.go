package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aditya22034/CodeWhisper/internal/chat"
	"github.com/aditya22034/CodeWhisper/internal/llm"
	"github.com/aditya22034/CodeWhisper/internal/walker"
)

func TestResetSeedsSystemPromptFirst(t *testing.T) {
	t.Parallel()

	s := chat.NewSession()
	if len(s.History) != 1 || s.History[0].Role != llm.RoleSystem {
		t.Fatalf("history=%+v", s.History)
	}

	s.History = append(s.History, llm.HumanMessage("hi"), llm.AIMessage("hello"))
	s.Reset(testFiles())

	if len(s.History) != 1 {
		t.Fatalf("history=%d after reset", len(s.History))
	}
	if s.History[0].Role != llm.RoleSystem {
		t.Fatalf("first role=%s", s.History[0].Role)
	}
	if len(s.Files) != 3 {
		t.Fatalf("files=%d", len(s.Files))
	}
}

func TestFormatFileTableNumbersFromOne(t *testing.T) {
	t.Parallel()

	got := chat.FormatFileTable([]walker.FileRecord{
		{Path: "/repo/a.go", Filename: "a.go"},
		{Path: "/repo/docs/b.md", Filename: "b.md"},
	})
	want := "1.  Path: /repo/a.go   Filename: a.go\n" +
		"2.  Path: /repo/docs/b.md   Filename: b.md\n"
	if got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
}

func TestFormatFileTableEmpty(t *testing.T) {
	t.Parallel()

	if got := chat.FormatFileTable(nil); got != "" {
		t.Fatalf("got=%q", got)
	}
}

func TestMultiFileDuplicateIndicesDuplicateSections(t *testing.T) {
	t.Parallel()

	sel := &fakeSelector{byName: map[string]string{
		"QuestionClassification": classify("GENERAL"),
		"MultipleFilesSelection": `{"file_indices":[2,2]}`,
	}}
	comp := &fakeCompleter{reply: "ok"}
	e := testEngine(sel, comp, &fakeRetriever{})
	s := chat.NewSession()
	s.Reset(testFiles())

	if _, err := e.Answer(context.Background(), s, "Show the readme twice"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	userTurn := s.History[1].Content
	if strings.Count(userTurn, "Filename: README.md") != 2 {
		t.Fatalf("duplicate sections missing: %q", userTurn)
	}
	if !strings.Contains(userTurn, "1.  Filename: README.md") || !strings.Contains(userTurn, "2.  Filename: README.md") {
		t.Fatalf("sections not numbered sequentially: %q", userTurn)
	}
}

func TestMultiFileInvalidIndicesSkippedWithoutError(t *testing.T) {
	t.Parallel()

	sel := &fakeSelector{byName: map[string]string{
		"QuestionClassification": classify("GENERAL"),
		"MultipleFilesSelection": `{"file_indices":[99,1,0]}`,
	}}
	comp := &fakeCompleter{reply: "ok"}
	e := testEngine(sel, comp, &fakeRetriever{})
	s := chat.NewSession()
	s.Reset(testFiles())

	if _, err := e.Answer(context.Background(), s, "Which files matter?"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	userTurn := s.History[1].Content
	// The one valid index survives and numbering restarts at 1.
	if !strings.Contains(userTurn, "1.  Filename: app.py") {
		t.Fatalf("valid file missing: %q", userTurn)
	}
	if strings.Contains(userTurn, "99") {
		t.Fatalf("invalid index leaked: %q", userTurn)
	}
}

func TestMultiFileAllInvalidDegradesToSentinel(t *testing.T) {
	t.Parallel()

	sel := &fakeSelector{byName: map[string]string{
		"QuestionClassification": classify("GENERAL"),
		"MultipleFilesSelection": `{"file_indices":[99,100]}`,
	}}
	comp := &fakeCompleter{reply: "ok"}
	e := testEngine(sel, comp, &fakeRetriever{})
	s := chat.NewSession()
	s.Reset(testFiles())

	if _, err := e.Answer(context.Background(), s, "Anything?"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(s.History[1].Content, chat.NoContextSentinel) {
		t.Fatalf("sentinel missing: %q", s.History[1].Content)
	}
}

func TestMultiFileMinusOneDegradesToSentinel(t *testing.T) {
	t.Parallel()

	sel := &fakeSelector{byName: map[string]string{
		"QuestionClassification": classify("GENERAL"),
		"MultipleFilesSelection": `{"file_indices":[-1]}`,
	}}
	comp := &fakeCompleter{reply: "ok"}
	e := testEngine(sel, comp, &fakeRetriever{})
	s := chat.NewSession()
	s.Reset(testFiles())

	if _, err := e.Answer(context.Background(), s, "chit chat"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !strings.Contains(s.History[1].Content, chat.NoContextSentinel) {
		t.Fatalf("sentinel missing: %q", s.History[1].Content)
	}
}

func TestHistoryAccumulatesAcrossTurns(t *testing.T) {
	t.Parallel()

	sel := &fakeSelector{byName: map[string]string{
		"QuestionClassification": classify("FOLLOWUP"),
	}}
	comp := &fakeCompleter{reply: "again"}
	e := testEngine(sel, comp, &fakeRetriever{})
	s := chat.NewSession()
	s.Reset(testFiles())

	for i := 0; i < 3; i++ {
		if _, err := e.Answer(context.Background(), s, "more?"); err != nil {
			t.Fatalf("Answer %d: %v", i, err)
		}
	}
	// system + 3 * (user, assistant)
	if len(s.History) != 7 {
		t.Fatalf("history=%d", len(s.History))
	}
	// The completer saw the full accumulated history on the last call.
	if len(comp.msgs) != 6 {
		t.Fatalf("completer saw %d messages", len(comp.msgs))
	}
}
