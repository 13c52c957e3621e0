package domain

// QueryType is the coarse classification used by the metadata filter and the
// additive relevance scorer.
type QueryType string

const (
	QueryTypeGeneral     QueryType = "general"
	QueryTypeRequirement QueryType = "requirement"
	QueryTypeCalculation QueryType = "calculation"
	QueryTypeEnergy      QueryType = "energy"
	QueryTypeWater       QueryType = "water"
	QueryTypeTransport   QueryType = "transport"
)

type IntentType string

const (
	IntentDefinition  IntentType = "definition"
	IntentProcedure   IntentType = "procedure"
	IntentExplanation IntentType = "explanation"
	IntentComparison  IntentType = "comparison"
	IntentGeneral     IntentType = "general"
)

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Intent is computed by a classifier independent from QueryType: the two use
// different keyword tables and may legitimately disagree. Prompt and follow-up
// selection read Intent.Domain; the scorer reads QueryType.
type Intent struct {
	Type                   IntentType `json:"type"`
	Domain                 string     `json:"domain"`
	RequiresCalculation    bool       `json:"requires_calculation"`
	RequiresComparison     bool       `json:"requires_comparison"`
	RequiresSpecificValues bool       `json:"requires_specific_values"`
	Complexity             Complexity `json:"complexity"`
}

// NeutralIntent is the explicit degradation value: intent detection never
// fails a request, it falls back to this.
func NeutralIntent() Intent {
	return Intent{
		Type:       IntentGeneral,
		Domain:     "general",
		Complexity: ComplexityMedium,
	}
}

// QueryAnalysis is derived once per incoming question and is immutable after
// construction.
type QueryAnalysis struct {
	OriginalText   string    `json:"original_text"`
	NormalizedText string    `json:"normalized_text"`
	QueryType      QueryType `json:"query_type"`
	KeyTerms       []string  `json:"key_terms"`
	CategoryHint   string    `json:"category_hint,omitempty"`
	ExpansionTerms []string  `json:"expansion_terms,omitempty"`
	Intent         Intent    `json:"intent"`
}

// QuestionRequest is the inbound payload for answer generation.
type QuestionRequest struct {
	Question          string   `json:"question"`
	PreviousQuestions []string `json:"previous_questions,omitempty"`
	SessionID         string   `json:"session_id,omitempty"`
	MaxSources        int      `json:"max_sources,omitempty"`
}
