package usecase

import (
	"strings"
	"testing"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

func TestConsolidateEmptyInput(t *testing.T) {
	c := NewContextConsolidator()

	bundle := c.Consolidate(nil)
	if bundle.ConsolidatedText != "" {
		t.Fatalf("expected empty text, got %q", bundle.ConsolidatedText)
	}
	if bundle.Info.TotalSources != 0 || bundle.Info.ContextLength != 0 || bundle.Info.AvgRelevanceScore != 0 {
		t.Fatalf("expected zero info, got %+v", bundle.Info)
	}
}

func TestConsolidateTiersAndNumbering(t *testing.T) {
	c := NewContextConsolidator()

	bundle := c.Consolidate([]domain.Candidate{
		{Content: "primary one", FileName: "a.pdf", Category: "ene_2", EnhancedScore: 0.9, TechnicalContent: true, DocumentType: "requirement"},
		{Content: "primary two", FileName: "b.pdf", Category: "hea_1", EnhancedScore: 0.8},
		{Content: "supporting", FileName: "c.txt", Category: "ene_2", EnhancedScore: 0.65, DocumentType: "audit"},
		{Content: "reference", FileName: "d.txt", EnhancedScore: 0.4},
	})

	text := bundle.ConsolidatedText
	for _, header := range []string{
		"=== PRIMARY INFORMATION ===",
		"=== SUPPORTING INFORMATION ===",
		"=== REFERENCE INFORMATION ===",
	} {
		if !strings.Contains(text, header) {
			t.Fatalf("missing header %q in:\n%s", header, text)
		}
	}

	// Numbering continues across tiers.
	for _, marker := range []string{"[1] Source: a.pdf", "[2] Source: b.pdf", "[3] Source: c.txt", "[4] Source: d.txt"} {
		if !strings.Contains(text, marker) {
			t.Fatalf("missing segment marker %q in:\n%s", marker, text)
		}
	}

	info := bundle.Info
	if info.PrimarySources != 2 || info.SupportingSources != 1 || info.ReferenceSources != 1 {
		t.Fatalf("tier counts = %d/%d/%d", info.PrimarySources, info.SupportingSources, info.ReferenceSources)
	}
	if info.TotalSources != 4 {
		t.Fatalf("expected 4 total sources, got %d", info.TotalSources)
	}
	if !info.HasTechnicalContent {
		t.Fatalf("expected technical content flag")
	}
	wantAvg := (0.9 + 0.8 + 0.65 + 0.4) / 4
	if diff := info.AvgRelevanceScore - wantAvg; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("avg score = %f, want %f", info.AvgRelevanceScore, wantAvg)
	}
	if len(info.CategoriesCovered) != 2 {
		t.Fatalf("expected 2 categories covered, got %v", info.CategoriesCovered)
	}
	if info.ContextLength != len(text) {
		t.Fatalf("context length %d != rendered length %d", info.ContextLength, len(text))
	}
}

func TestConsolidateReferenceTruncationAndLimit(t *testing.T) {
	c := NewContextConsolidator()

	long := strings.Repeat("x", 500)
	bundle := c.Consolidate([]domain.Candidate{
		{Content: long, FileName: "r1.txt", EnhancedScore: 0.4},
		{Content: "short ref", FileName: "r2.txt", EnhancedScore: 0.35},
		{Content: "dropped ref", FileName: "r3.txt", EnhancedScore: 0.3},
	})

	text := bundle.ConsolidatedText
	if !strings.Contains(text, strings.Repeat("x", 300)+"...") {
		t.Fatalf("expected truncated reference content")
	}
	if strings.Contains(text, strings.Repeat("x", 301)) {
		t.Fatalf("reference content not truncated at 300 chars")
	}
	if strings.Contains(text, "r3.txt") {
		t.Fatalf("expected at most two reference segments")
	}
	// Counts reflect the full tier membership, not what was rendered.
	if bundle.Info.ReferenceSources != 3 {
		t.Fatalf("expected 3 reference sources, got %d", bundle.Info.ReferenceSources)
	}
}

func TestConsolidateReferenceIncludedDespiteLongContext(t *testing.T) {
	c := NewContextConsolidator()

	// The reference gate counts rendered segments, not bytes: a few large
	// primary chunks must not push the reference tier out.
	big := strings.Repeat("y", 900)
	bundle := c.Consolidate([]domain.Candidate{
		{Content: big, FileName: "p1.pdf", EnhancedScore: 0.9},
		{Content: big, FileName: "p2.pdf", EnhancedScore: 0.9},
		{Content: big, FileName: "p3.pdf", EnhancedScore: 0.85},
		{Content: big, FileName: "p4.pdf", EnhancedScore: 0.8},
		{Content: "ref", FileName: "r.txt", EnhancedScore: 0.4},
	})

	if !strings.Contains(bundle.ConsolidatedText, "=== REFERENCE INFORMATION ===") {
		t.Fatalf("reference tier should be rendered for a small segment count")
	}
	if !strings.Contains(bundle.ConsolidatedText, "[5] Source: r.txt") {
		t.Fatalf("reference segment missing:\n%s", bundle.ConsolidatedText)
	}
}

func TestConsolidateReferenceSkippedAtSegmentLimit(t *testing.T) {
	c := NewContextConsolidator()

	candidates := make([]domain.Candidate, 0, 3001)
	for i := 0; i < 3000; i++ {
		candidates = append(candidates, domain.Candidate{
			Content: "p", FileName: "p.pdf", EnhancedScore: 0.9,
		})
	}
	candidates = append(candidates, domain.Candidate{
		Content: "ref", FileName: "r.txt", EnhancedScore: 0.4,
	})

	bundle := c.Consolidate(candidates)
	if strings.Contains(bundle.ConsolidatedText, "=== REFERENCE INFORMATION ===") {
		t.Fatalf("reference tier should be skipped once the segment limit is reached")
	}
	if bundle.Info.ReferenceSources != 1 {
		t.Fatalf("expected reference count 1, got %d", bundle.Info.ReferenceSources)
	}
}

func TestConsolidatePrefersEnhancedContent(t *testing.T) {
	c := NewContextConsolidator()

	bundle := c.Consolidate([]domain.Candidate{
		{Content: "plain", EnhancedContent: "enriched", FileName: "a.txt", EnhancedScore: 0.9},
	})
	if !strings.Contains(bundle.ConsolidatedText, "enriched") {
		t.Fatalf("expected enhanced content to be rendered")
	}
}
