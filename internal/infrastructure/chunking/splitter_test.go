package chunking

import (
	"strings"
	"testing"
)

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(100, 20)
	if got := s.Split("   \n  "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(1000, 200)
	got := s.Split("ENE 02 requires sub-metering of energy uses.")
	if len(got) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(got))
	}
	if got[0] != "ENE 02 requires sub-metering of energy uses." {
		t.Fatalf("unexpected chunk: %q", got[0])
	}
}

func TestSplitNeverBreaksWords(t *testing.T) {
	words := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		words = append(words, "consumption")
	}
	text := strings.Join(words, " ")

	s := NewSplitter(100, 20)
	for i, chunk := range s.Split(text) {
		for _, w := range strings.Fields(chunk) {
			if w != "consumption" {
				t.Fatalf("chunk %d contains split word %q", i, w)
			}
		}
	}
}

func TestSplitOverlapRepeatsTrailingWords(t *testing.T) {
	words := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		words = append(words, "alpha")
	}
	text := strings.Join(words, " ")

	s := NewSplitter(120, 30)
	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	// Each chunk after the first starts inside the previous chunk's tail.
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total <= len(text) {
		t.Fatalf("expected overlap to duplicate text: chunks %d vs input %d", total, len(text))
	}
}

func TestSplitUnbrokenTokenFallsBackToHardCut(t *testing.T) {
	s := NewSplitter(50, 10)
	chunks := s.Split(strings.Repeat("x", 130))
	if len(chunks) < 2 {
		t.Fatalf("expected hard cuts for unbroken token, got %d chunks", len(chunks))
	}
	if len(chunks[0]) != 50 {
		t.Fatalf("expected first hard cut at 50, got %d", len(chunks[0]))
	}
}

func TestNewSplitterClampsBadConfig(t *testing.T) {
	s := NewSplitter(0, -5)
	if s.ChunkSize != 1000 || s.Overlap != 0 {
		t.Fatalf("unexpected defaults: size=%d overlap=%d", s.ChunkSize, s.Overlap)
	}
	s = NewSplitter(100, 100)
	if s.Overlap != 20 {
		t.Fatalf("expected overlap clamp to 20, got %d", s.Overlap)
	}
}
