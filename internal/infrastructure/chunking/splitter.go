package chunking

import "strings"

// Splitter cuts extracted text into overlapping chunks. Cuts are snapped back
// to the nearest whitespace so words are never split across chunks, which
// keeps key terms like "HEA 01" intact for retrieval.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}
}

func (s *Splitter) Split(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	step := s.ChunkSize - s.Overlap
	if step <= 0 {
		step = s.ChunkSize
	}

	out := make([]string, 0, len(runes)/step+1)
	start := 0
	for start < len(runes) {
		end := start + s.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = snapToWordBoundary(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}

		next := end - s.Overlap
		for next > start && !isSpace(runes[next-1]) {
			next--
		}
		if next <= start {
			next = start + step
		}
		start = next
	}
	return out
}

// snapToWordBoundary walks end backwards to the last whitespace inside the
// chunk. If the chunk contains no whitespace at all (one giant token) the
// original cut is kept.
func snapToWordBoundary(runes []rune, start, end int) int {
	for i := end; i > start; i-- {
		if isSpace(runes[i-1]) {
			return i
		}
	}
	return end
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
