package usecase

import (
	"strings"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

// enhancedScore recomputes a candidate's relevance for the general QA path by
// additive adjustments to the base similarity. The result is capped at 1.0;
// the cap is deliberately one-sided, no floor is applied.
func enhancedScore(candidate domain.Candidate, analysis domain.QueryAnalysis) float64 {
	score := candidate.BaseScore
	queryType := analysis.QueryType

	switch {
	case queryType == domain.QueryTypeRequirement && strings.Contains(candidate.SectionType, "requirement"):
		score += 0.20
	case queryType == domain.QueryTypeCalculation && strings.Contains(candidate.SectionType, "calculation"):
		score += 0.20
	case isTechnicalQueryType(queryType) && candidate.TechnicalContent:
		score += 0.15
	}

	switch {
	case queryType == domain.QueryTypeCalculation &&
		(candidate.DocumentType == "calculation" || candidate.DocumentType == "audit"):
		score += 0.10
	case candidate.DocumentType == "report" &&
		containsAny(analysis.NormalizedText, []string{"summary", "overview"}):
		score += 0.10
	}

	if analysis.CategoryHint != "" {
		expected := trimWildcard(analysis.CategoryHint)
		if expected != "" && strings.HasPrefix(candidate.Category, expected) {
			score += 0.30
		}
	}

	if (queryType == domain.QueryTypeEnergy || queryType == domain.QueryTypeCalculation) && candidate.ContainsUnits {
		score += 0.10
	}

	if candidate.ChunkLength > 0 && candidate.ChunkLength < 200 {
		score -= 0.05
	} else if candidate.ChunkLength > 800 {
		score += 0.05
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// metadataScore is the multiplicative scheme used by the metadata-aware
// search entry point. It is intentionally a different formula from
// enhancedScore: the two serve different retrieval products and must not be
// unified.
func metadataScore(baseScore float64, categoryMatched bool, categoryConfidence float64, keywordMatches int) float64 {
	score := baseScore
	if categoryMatched {
		score *= 1 + categoryConfidence*0.5
	}
	if keywordMatches > 0 {
		score *= 1 + float64(keywordMatches)*0.1
	}
	return score
}

func isTechnicalQueryType(t domain.QueryType) bool {
	return t == domain.QueryTypeEnergy || t == domain.QueryTypeWater || t == domain.QueryTypeTransport
}

func trimWildcard(hint string) string {
	const suffix = "_*"
	if len(hint) > len(suffix) && hint[len(hint)-len(suffix):] == suffix {
		return hint[:len(hint)-len(suffix)]
	}
	return hint
}
