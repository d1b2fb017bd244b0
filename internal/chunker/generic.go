package chunker

import "strings"

// Splitter produces overlapping fixed-size segments from plain text,
// preferring paragraph and line boundaries as split points. It is used for
// document files and for code files whose language has no grammar.
type Splitter struct {
	ChunkSize int // target segment size in bytes
	Overlap   int // bytes carried over from the previous segment
}

// NewSplitter returns a splitter with the default 1000/100 sizing.
func NewSplitter() *Splitter {
	return &Splitter{ChunkSize: 1000, Overlap: 100}
}

// Split returns the segments of text in original order. Whitespace-only
// input yields no segments.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if len(text) <= s.ChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + s.ChunkSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = s.breakAt(text, start, end)
		}
		if chunk := text[start:end]; strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(text) {
			break
		}
		next := end - s.Overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// breakAt picks the split point within text[start:limit], preferring the
// last paragraph break, then the last line break, then the last space.
func (s *Splitter) breakAt(text string, start, limit int) int {
	window := text[start:limit]
	if i := strings.LastIndex(window, "\n\n"); i > 0 {
		return start + i + 2
	}
	if i := strings.LastIndexByte(window, '\n'); i > 0 {
		return start + i + 1
	}
	if i := strings.LastIndexByte(window, ' '); i > 0 {
		return start + i + 1
	}
	return limit
}
