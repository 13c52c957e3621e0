package usecase

import (
	"math"
	"testing"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEnhancedScoreCapAtOne(t *testing.T) {
	// 0.5 base + 0.20 section + 0.30 category + 0.10 units would be 1.1,
	// capped to 1.0.
	analysis := domain.QueryAnalysis{
		QueryType:    domain.QueryTypeCalculation,
		CategoryHint: "ene_*",
	}
	candidate := domain.Candidate{
		BaseScore:     0.5,
		SectionType:   "calculation_section",
		Category:      "ene_2",
		ContainsUnits: true,
		ChunkLength:   400,
	}

	if got := enhancedScore(candidate, analysis); got != 1.0 {
		t.Fatalf("expected capped score 1.0, got %f", got)
	}
}

func TestEnhancedScoreSectionGroupIsExclusive(t *testing.T) {
	// An energy query against a requirement section with technical content
	// gets the technical boost only, not both.
	analysis := domain.QueryAnalysis{QueryType: domain.QueryTypeEnergy}
	candidate := domain.Candidate{
		BaseScore:        0.4,
		SectionType:      "content_section",
		TechnicalContent: true,
		ChunkLength:      400,
	}

	if got := enhancedScore(candidate, analysis); !almostEqual(got, 0.55) {
		t.Fatalf("expected 0.55, got %f", got)
	}
}

func TestEnhancedScoreChunkLengthAdjustments(t *testing.T) {
	analysis := domain.QueryAnalysis{QueryType: domain.QueryTypeGeneral}

	short := domain.Candidate{BaseScore: 0.5, ChunkLength: 100}
	if got := enhancedScore(short, analysis); !almostEqual(got, 0.45) {
		t.Fatalf("short chunk: expected 0.45, got %f", got)
	}

	long := domain.Candidate{BaseScore: 0.5, ChunkLength: 900}
	if got := enhancedScore(long, analysis); !almostEqual(got, 0.55) {
		t.Fatalf("long chunk: expected 0.55, got %f", got)
	}

	// No floor: a short chunk can push the score below the retrieval cutoff.
	weak := domain.Candidate{BaseScore: 0.31, ChunkLength: 50}
	if got := enhancedScore(weak, analysis); !almostEqual(got, 0.26) {
		t.Fatalf("weak chunk: expected 0.26, got %f", got)
	}
}

func TestEnhancedScoreCategoryPrefix(t *testing.T) {
	analysis := domain.QueryAnalysis{
		QueryType:    domain.QueryTypeGeneral,
		CategoryHint: "wat_*",
	}
	match := domain.Candidate{BaseScore: 0.5, Category: "wat_4", ChunkLength: 400}
	if got := enhancedScore(match, analysis); !almostEqual(got, 0.8) {
		t.Fatalf("matching category: expected 0.8, got %f", got)
	}

	miss := domain.Candidate{BaseScore: 0.5, Category: "ene_2", ChunkLength: 400}
	if got := enhancedScore(miss, analysis); !almostEqual(got, 0.5) {
		t.Fatalf("non-matching category: expected 0.5, got %f", got)
	}
}

func TestMetadataScoreMultiplicative(t *testing.T) {
	// base 0.6, category matched at confidence 1.0, 2 keyword matches:
	// 0.6 * 1.5 * 1.2 = 1.08, no cap on this path.
	if got := metadataScore(0.6, true, 1.0, 2); !almostEqual(got, 1.08) {
		t.Fatalf("expected 1.08, got %f", got)
	}

	if got := metadataScore(0.6, false, 1.0, 0); !almostEqual(got, 0.6) {
		t.Fatalf("expected unchanged base 0.6, got %f", got)
	}
}
