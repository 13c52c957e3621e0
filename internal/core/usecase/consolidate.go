package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

const (
	primaryScoreFloor     = 0.8
	supportingScoreFloor  = 0.6
	referenceSegmentLimit = 3000
	referenceMax          = 2
	referenceTruncateAt   = 300
)

// ContextConsolidator renders scored candidates into the tiered context blob
// handed to the answer prompt. It is stateless and safe for concurrent use.
type ContextConsolidator struct{}

func NewContextConsolidator() *ContextConsolidator {
	return &ContextConsolidator{}
}

// Consolidate groups candidates into primary / supporting / reference tiers
// by enhanced score and renders them as a single numbered text block.
// Reference entries are only appended while the rendered segment count
// (headers included) is still below referenceSegmentLimit, and individually
// truncated. Empty input yields an explicitly empty bundle.
func (c *ContextConsolidator) Consolidate(candidates []domain.Candidate) domain.ContextBundle {
	if len(candidates) == 0 {
		return domain.ContextBundle{}
	}

	var primary, supporting, reference []domain.Candidate
	for _, cand := range candidates {
		switch {
		case cand.EnhancedScore >= primaryScoreFloor:
			primary = append(primary, cand)
		case cand.EnhancedScore >= supportingScoreFloor:
			supporting = append(supporting, cand)
		default:
			reference = append(reference, cand)
		}
	}

	var b strings.Builder
	n := 0
	segments := 0

	if len(primary) > 0 {
		b.WriteString("=== PRIMARY INFORMATION ===\n")
		segments++
		for _, cand := range primary {
			n++
			segments++
			writeSegment(&b, n, cand, cand.BestContent())
		}
	}
	if len(supporting) > 0 {
		b.WriteString("=== SUPPORTING INFORMATION ===\n")
		segments++
		for _, cand := range supporting {
			n++
			segments++
			writeSegment(&b, n, cand, cand.BestContent())
		}
	}
	if len(reference) > 0 && segments < referenceSegmentLimit {
		b.WriteString("=== REFERENCE INFORMATION ===\n")
		for i, cand := range reference {
			if i == referenceMax {
				break
			}
			n++
			content := cand.BestContent()
			if len(content) > referenceTruncateAt {
				content = content[:referenceTruncateAt] + "..."
			}
			writeSegment(&b, n, cand, content)
		}
	}

	text := b.String()
	return domain.ContextBundle{
		ConsolidatedText: text,
		Info:             buildContextInfo(candidates, primary, supporting, reference, len(text)),
	}
}

func writeSegment(b *strings.Builder, n int, cand domain.Candidate, content string) {
	fmt.Fprintf(b, "[%d] Source: %s", n, cand.FileName)
	if cand.Category != "" {
		fmt.Fprintf(b, " (Category: %s)", cand.Category)
	}
	b.WriteString("\n")
	b.WriteString(content)
	b.WriteString("\n\n")
}

func buildContextInfo(all, primary, supporting, reference []domain.Candidate, contextLength int) domain.ContextInfo {
	categories := make(map[string]struct{})
	docTypes := make(map[string]struct{})
	technical := false
	total := 0.0
	for _, cand := range all {
		if cand.Category != "" {
			categories[cand.Category] = struct{}{}
		}
		if cand.DocumentType != "" {
			docTypes[cand.DocumentType] = struct{}{}
		}
		if cand.TechnicalContent {
			technical = true
		}
		total += cand.EnhancedScore
	}

	return domain.ContextInfo{
		TotalSources:        len(all),
		PrimarySources:      len(primary),
		SupportingSources:   len(supporting),
		ReferenceSources:    len(reference),
		CategoriesCovered:   sortedKeys(categories),
		DocumentTypes:       sortedKeys(docTypes),
		HasTechnicalContent: technical,
		AvgRelevanceScore:   total / float64(len(all)),
		ContextLength:       contextLength,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
