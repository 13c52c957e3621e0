package qdrant

import (
	"context"
	"testing"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

func seedMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore("docs")
	doc := &domain.Document{ID: "doc-1", Filename: "ene.pdf", Category: "ene_2", DocumentType: "requirement"}
	chunks := []domain.EnrichedChunk{
		{Content: "energy targets", Meta: domain.ChunkMeta{SectionType: "requirement_section", TechnicalContent: true, ChunkLength: 14}},
		{Content: "site access", Meta: domain.ChunkMeta{SectionType: "content_section", ChunkLength: 11}},
	}
	vectors := [][]float32{{1, 0}, {0, 1}}
	if err := store.IndexChunks(context.Background(), doc, chunks, vectors); err != nil {
		t.Fatalf("IndexChunks() error = %v", err)
	}
	return store
}

func TestMemoryStoreSearchRanksByCosine(t *testing.T) {
	store := seedMemoryStore(t)

	got, err := store.Search(context.Background(), []float32{1, 0.1}, 10, 0, domain.SearchFilter{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Content != "energy targets" {
		t.Fatalf("expected closest vector first, got %q", got[0].Content)
	}
	if got[0].BaseScore <= got[1].BaseScore {
		t.Fatalf("expected descending scores: %f vs %f", got[0].BaseScore, got[1].BaseScore)
	}
}

func TestMemoryStoreSearchAppliesThresholdAndFilter(t *testing.T) {
	store := seedMemoryStore(t)

	got, err := store.Search(context.Background(), []float32{1, 0}, 10, 0.5, domain.SearchFilter{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected threshold to drop orthogonal vector, got %d results", len(got))
	}

	got, err = store.Search(context.Background(), []float32{1, 0}, 10, 0, domain.SearchFilter{SectionType: "content_section"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Content != "site access" {
		t.Fatalf("expected section filter to select content chunk, got %+v", got)
	}
}

func TestMemoryStoreScrollAndStatus(t *testing.T) {
	store := seedMemoryStore(t)

	batch, err := store.Scroll(context.Background(), domain.SearchFilter{Categories: []string{"ene_2"}}, 10)
	if err != nil {
		t.Fatalf("Scroll() error = %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("expected 2 scrolled points, got %d", len(batch))
	}

	status, err := store.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.PointsCount != 2 || status.Status != "green" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.SectionTypes["requirement_section"] != 1 {
		t.Fatalf("unexpected section distribution: %v", status.SectionTypes)
	}
}

func TestMemoryStoreIndexMismatch(t *testing.T) {
	store := NewMemoryStore("docs")
	err := store.IndexChunks(context.Background(), &domain.Document{}, []domain.EnrichedChunk{{Content: "a"}}, nil)
	if err == nil {
		t.Fatalf("expected mismatch error")
	}
}
