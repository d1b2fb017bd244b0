package chunker_test

import (
	"strings"
	"testing"

	"github.com/aditya22034/CodeWhisper/internal/chunker"
	"github.com/aditya22034/CodeWhisper/internal/chunker/languages"
)

func newChunker(t *testing.T) *chunker.ASTChunker {
	t.Helper()
	r := chunker.NewRegistry()
	languages.RegisterAll(r)
	return chunker.NewASTChunker(r)
}

func TestChunkGoSourceAtDefinitions(t *testing.T) {
	t.Parallel()

	src := `package demo

import "fmt"

func Hello() {
	fmt.Println("hello")
}

type Greeter struct {
	Name string
}

func (g Greeter) Greet() string {
	return "hi " + g.Name
}
`
	segs, err := newChunker(t).Chunk(".go", []byte(src))
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if len(segs) < 3 {
		t.Fatalf("segments=%d, want at least 3", len(segs))
	}

	symbols := map[string]bool{}
	for _, s := range segs {
		symbols[s.Symbol] = true
	}
	for _, want := range []string{"Hello", "Greeter", "Greet"} {
		if !symbols[want] {
			t.Fatalf("symbol %q not captured; got %v", want, symbols)
		}
	}
}

func TestChunkSegmentsInFileOrder(t *testing.T) {
	t.Parallel()

	src := "package demo\n\nfunc A() {}\n\nfunc B() {}\n\nfunc C() {}\n"
	segs, err := newChunker(t).Chunk(".go", []byte(src))
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	last := 0
	for _, s := range segs {
		if s.StartLine < last {
			t.Fatalf("segments out of order: %d after %d", s.StartLine, last)
		}
		last = s.StartLine
	}
}

func TestChunkPythonClassSwallowsMethods(t *testing.T) {
	t.Parallel()

	src := `class Greeter:
    def greet(self):
        return "hi"

    def wave(self):
        return "wave"

def standalone():
    return 1
`
	segs, err := newChunker(t).Chunk(".py", []byte(src))
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("segments=%d, want 2 (class + standalone): %+v", len(segs), segs)
	}
	if segs[0].Symbol != "Greeter" {
		t.Fatalf("first symbol=%q", segs[0].Symbol)
	}
	if !strings.Contains(segs[0].Text, "def wave") {
		t.Fatal("class segment missing nested method")
	}
	if segs[1].Symbol != "standalone" {
		t.Fatalf("second symbol=%q", segs[1].Symbol)
	}
}

func TestChunkNoGrammarReturnsNil(t *testing.T) {
	t.Parallel()

	// Registered extension-only: recognized but no grammar.
	segs, err := newChunker(t).Chunk(".php", []byte("<?php echo 1;"))
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if segs != nil {
		t.Fatalf("segments=%v, want nil", segs)
	}
}

func TestChunkUnknownExtensionReturnsNil(t *testing.T) {
	t.Parallel()

	segs, err := newChunker(t).Chunk(".bin", []byte{0x00, 0x01})
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	if segs != nil {
		t.Fatalf("segments=%v, want nil", segs)
	}
}
