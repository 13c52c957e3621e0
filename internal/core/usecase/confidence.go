package usecase

import (
	"strings"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

var uncertaintyWords = []string{
	"may", "might", "possibly", "unclear", "insufficient information",
}

// ConfidenceAssessor grades a generated answer against the context it was
// built from. The score is additive from a 0.5 base with a single penalty for
// hedging language, then mapped to a discrete level.
type ConfidenceAssessor struct {
	analyzer *QueryAnalyzer
}

func NewConfidenceAssessor(analyzer *QueryAnalyzer) *ConfidenceAssessor {
	return &ConfidenceAssessor{analyzer: analyzer}
}

// Assess returns the confidence level and the comma-joined reasoning string.
func (a *ConfidenceAssessor) Assess(question, answer string, info domain.ContextInfo) (domain.ConfidenceLevel, string) {
	score := 0.5
	var reasons []string

	switch {
	case info.PrimarySources >= 2:
		score += 0.20
		reasons = append(reasons, "multiple high-quality sources")
	case info.PrimarySources == 1:
		score += 0.10
		reasons = append(reasons, "one high-quality source")
	}

	switch {
	case info.AvgRelevanceScore >= 0.8:
		score += 0.15
		reasons = append(reasons, "high relevance scores")
	case info.AvgRelevanceScore >= 0.6:
		score += 0.10
		reasons = append(reasons, "good relevance scores")
	}

	intent := a.analyzer.DetectIntent(question)
	if (intent.Domain == "energy" || intent.Domain == "technical") && info.HasTechnicalContent {
		score += 0.10
		reasons = append(reasons, "technical content matches technical query")
	}

	answerLower := strings.ToLower(answer)
	if len(answer) > 500 && strings.Contains(answerLower, "specific") {
		score += 0.05
		reasons = append(reasons, "detailed specific answer")
	}

	for _, word := range uncertaintyWords {
		if strings.Contains(answerLower, word) {
			score -= 0.15
			reasons = append(reasons, "answer contains uncertainty")
			break
		}
	}

	reasoning := "Standard assessment"
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, ", ")
	}
	return levelFor(score), reasoning
}

func levelFor(score float64) domain.ConfidenceLevel {
	switch {
	case score >= 0.8:
		return domain.ConfidenceHigh
	case score >= 0.6:
		return domain.ConfidenceMedium
	case score >= 0.4:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceUncertain
	}
}
