package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

type embedderFake struct {
	queries []string
	err     error
}

func (f *embedderFake) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

func (f *embedderFake) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.queries = append(f.queries, text)
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type vectorStoreFake struct {
	limit     int
	threshold float64
	filter    domain.SearchFilter
	results   []domain.Candidate
	searchErr error

	scrollResults []domain.Candidate
	scrollErr     error

	status    domain.CollectionStatus
	statusErr error

	indexed  []domain.EnrichedChunk
	indexErr error
}

func (f *vectorStoreFake) IndexChunks(_ context.Context, _ *domain.Document, chunks []domain.EnrichedChunk, _ [][]float32) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = chunks
	return nil
}

func (f *vectorStoreFake) Search(_ context.Context, _ []float32, limit int, threshold float64, filter domain.SearchFilter) ([]domain.Candidate, error) {
	f.limit = limit
	f.threshold = threshold
	f.filter = filter
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results, nil
}

func (f *vectorStoreFake) Scroll(context.Context, domain.SearchFilter, int) ([]domain.Candidate, error) {
	if f.scrollErr != nil {
		return nil, f.scrollErr
	}
	return f.scrollResults, nil
}

func (f *vectorStoreFake) Status(context.Context) (domain.CollectionStatus, error) {
	if f.statusErr != nil {
		return domain.CollectionStatus{}, f.statusErr
	}
	return f.status, nil
}

func newTestRetriever(embedder *embedderFake, store *vectorStoreFake) *Retriever {
	return NewRetriever(
		embedder,
		store,
		NewQueryAnalyzer(),
		NewFilterBuilder(),
		RetrievalConfig{},
		slog.New(slog.DiscardHandler),
	)
}

func TestSemanticSearchOverFetchAndRescore(t *testing.T) {
	store := &vectorStoreFake{results: []domain.Candidate{
		{Content: "weak", BaseScore: 0.5, ChunkLength: 400},
		{Content: "boosted", BaseScore: 0.5, SectionType: "requirement_section", ChunkLength: 400},
	}}
	retriever := newTestRetriever(&embedderFake{}, store)

	got := retriever.SemanticSearch(context.Background(), "what requirement applies?", 6)

	if store.limit != 12 {
		t.Fatalf("expected over-fetch limit 12, got %d", store.limit)
	}
	if store.threshold != 0.3 {
		t.Fatalf("expected threshold 0.3, got %f", store.threshold)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Content != "boosted" {
		t.Fatalf("expected rescored order, got %q first", got[0].Content)
	}
	if got[0].EnhancedScore <= got[0].BaseScore {
		t.Fatalf("expected boosted enhanced score, got %f", got[0].EnhancedScore)
	}
}

func TestSemanticSearchEmbedFailureDegradesToEmpty(t *testing.T) {
	retriever := newTestRetriever(&embedderFake{err: errors.New("embedder down")}, &vectorStoreFake{})

	got := retriever.SemanticSearch(context.Background(), "question", 6)
	if len(got) != 0 {
		t.Fatalf("expected empty result on embed failure, got %d", len(got))
	}
}

func TestSemanticSearchStoreFailureDegradesToEmpty(t *testing.T) {
	retriever := newTestRetriever(&embedderFake{}, &vectorStoreFake{searchErr: errors.New("store down")})

	got := retriever.SemanticSearch(context.Background(), "question", 6)
	if len(got) != 0 {
		t.Fatalf("expected empty result on store failure, got %d", len(got))
	}
}

func TestSemanticSearchTruncatesToLimit(t *testing.T) {
	results := make([]domain.Candidate, 6)
	for i := range results {
		results[i] = domain.Candidate{BaseScore: 0.5, ChunkLength: 400}
	}
	store := &vectorStoreFake{results: results}
	retriever := newTestRetriever(&embedderFake{}, store)

	got := retriever.SemanticSearch(context.Background(), "question", 3)
	if len(got) != 3 {
		t.Fatalf("expected truncation to 3, got %d", len(got))
	}
}

func TestSemanticSearchDerivedFilter(t *testing.T) {
	store := &vectorStoreFake{}
	retriever := newTestRetriever(&embedderFake{}, store)

	retriever.SemanticSearch(context.Background(), "HEA requirement for ventilation", 6)

	if store.filter.Category != "hea_*" {
		t.Fatalf("expected category filter hea_*, got %q", store.filter.Category)
	}
	if store.filter.SectionType != "requirement_section" {
		t.Fatalf("expected requirement section filter, got %q", store.filter.SectionType)
	}
}

func TestMetadataSearchAutoFilter(t *testing.T) {
	store := &vectorStoreFake{results: []domain.Candidate{
		{Content: "energy efficiency details", Category: "ene_2", BaseScore: 0.6},
		{Content: "unrelated", Category: "hea_1", BaseScore: 0.6},
	}}
	retriever := newTestRetriever(&embedderFake{}, store)

	got := retriever.MetadataSearch(context.Background(), "energy efficiency heating hvac", 10, true, nil, nil)

	if len(store.filter.Categories) == 0 || store.filter.Categories[0] != "ene_2" {
		t.Fatalf("expected auto-detected ene_2 filter, got %v", store.filter.Categories)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	// Category match multiplies the matching candidate above the other.
	if got[0].Category != "ene_2" {
		t.Fatalf("expected ene_2 candidate first, got %s", got[0].Category)
	}
	if got[0].EnhancedScore <= got[1].EnhancedScore {
		t.Fatalf("expected multiplicative boost, got %f vs %f", got[0].EnhancedScore, got[1].EnhancedScore)
	}
}

func TestMetadataSearchExplicitCategoriesSkipDetection(t *testing.T) {
	store := &vectorStoreFake{}
	retriever := newTestRetriever(&embedderFake{}, store)

	retriever.MetadataSearch(context.Background(), "energy question", 10, true, []string{"wat_4"}, nil)

	if len(store.filter.Categories) != 1 || store.filter.Categories[0] != "wat_4" {
		t.Fatalf("explicit categories must win, got %v", store.filter.Categories)
	}
}

func TestCategorySummaryCountsSample(t *testing.T) {
	store := &vectorStoreFake{scrollResults: []domain.Candidate{
		{Category: "ene_2"},
		{Category: "ene_2"},
		{Category: "hea_1"},
		{},
	}}
	retriever := newTestRetriever(&embedderFake{}, store)

	summary := retriever.CategorySummary(context.Background())
	if summary["ene_2"] != 2 || summary["hea_1"] != 1 || summary["unknown"] != 1 {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestCategorySummaryScrollFailure(t *testing.T) {
	store := &vectorStoreFake{scrollErr: errors.New("scroll down")}
	retriever := newTestRetriever(&embedderFake{}, store)

	summary := retriever.CategorySummary(context.Background())
	if len(summary) != 0 {
		t.Fatalf("expected empty summary, got %v", summary)
	}
}

func TestCollectionStatusFailure(t *testing.T) {
	store := &vectorStoreFake{statusErr: errors.New("status down")}
	retriever := newTestRetriever(&embedderFake{}, store)

	status := retriever.CollectionStatus(context.Background())
	if status.Status != "error" {
		t.Fatalf("expected error status, got %q", status.Status)
	}
}
