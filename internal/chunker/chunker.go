package chunker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// maxSegmentBytes caps the size of a single AST segment before it is split
// at line boundaries.
const maxSegmentBytes = 8192

// Segment is one chunk of a source file, in top-to-bottom file order.
type Segment struct {
	Text      string
	Symbol    string // function/class/type name when the grammar captured one
	Kind      string
	StartLine int
	EndLine   int
}

// ASTChunker splits source files at syntactic boundaries using the
// tree-sitter grammar registered for the file's extension.
type ASTChunker struct {
	registry *Registry
}

func NewASTChunker(r *Registry) *ASTChunker {
	return &ASTChunker{registry: r}
}

// Chunk parses src and returns segments for each captured definition, in
// file order. It returns nil (no error) when no grammar is registered for
// the extension; callers fall back to the generic splitter.
func (c *ASTChunker) Chunk(ext string, src []byte) ([]Segment, error) {
	spec, lang := c.registry.Lookup(ext)
	if spec == nil || spec.Language == nil {
		return nil, nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(spec.Language)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s source: %w", lang, err)
	}
	defer tree.Close()

	q, err := sitter.NewQuery([]byte(spec.Query), spec.Language)
	if err != nil {
		return nil, fmt.Errorf("compile %s query: %w", lang, err)
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, tree.RootNode())

	var spans []span
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		var node *sitter.Node
		var symbol string
		for _, cap := range m.Captures {
			switch q.CaptureNameForId(cap.Index) {
			case "chunk":
				node = cap.Node
			case "name":
				symbol = cap.Node.Content(src)
			}
		}
		if node == nil {
			continue
		}
		spans = append(spans, span{
			symbol:    symbol,
			kind:      node.Type(),
			startLine: int(node.StartPoint().Row) + 1,
			endLine:   int(node.EndPoint().Row) + 1,
			startByte: node.StartByte(),
			endByte:   node.EndByte(),
		})
	}

	spans = dropNested(spans)

	lines := strings.Split(string(src), "\n")
	var segs []Segment
	for _, sp := range spans {
		text := sliceLines(lines, sp.startLine, sp.endLine)
		if len(text) > maxSegmentBytes {
			segs = append(segs, splitOversized(text, sp)...)
			continue
		}
		segs = append(segs, Segment{
			Text:      text,
			Symbol:    sp.symbol,
			Kind:      sp.kind,
			StartLine: sp.startLine,
			EndLine:   sp.endLine,
		})
	}
	return segs, nil
}

type span struct {
	symbol    string
	kind      string
	startLine int
	endLine   int
	startByte uint32
	endByte   uint32
}

// dropNested removes captures fully contained within a larger capture, so a
// method inside a captured class does not produce a duplicate segment. The
// result is sorted by start byte, preserving file order.
func dropNested(spans []span) []span {
	if len(spans) <= 1 {
		return spans
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].startByte != spans[j].startByte {
			return spans[i].startByte < spans[j].startByte
		}
		return (spans[i].endByte - spans[i].startByte) > (spans[j].endByte - spans[j].startByte)
	})

	var kept []span
	var lastEnd uint32
	for _, sp := range spans {
		if sp.startByte >= lastEnd || lastEnd == 0 {
			kept = append(kept, sp)
			if sp.endByte > lastEnd {
				lastEnd = sp.endByte
			}
		}
	}
	return kept
}

// sliceLines joins lines start..end (1-indexed, inclusive).
func sliceLines(lines []string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start-1:end], "\n")
}

// splitOversized breaks an oversized segment into line windows with overlap,
// keeping the symbol and kind of the original definition.
func splitOversized(text string, sp span) []Segment {
	const windowLines = 40
	const overlapLines = 10

	lines := strings.Split(text, "\n")
	var segs []Segment
	for i := 0; i < len(lines); {
		end := i + windowLines
		if end > len(lines) {
			end = len(lines)
		}
		segs = append(segs, Segment{
			Text:      strings.Join(lines[i:end], "\n"),
			Symbol:    sp.symbol,
			Kind:      sp.kind,
			StartLine: sp.startLine + i,
			EndLine:   sp.startLine + end - 1,
		})
		if end >= len(lines) {
			break
		}
		i += windowLines - overlapLines
	}
	return segs
}
