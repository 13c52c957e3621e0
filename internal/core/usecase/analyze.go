package usecase

import (
	"regexp"
	"strings"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

// queryTypeRule pairs an ordered keyword group with the query type it
// selects. Evaluation is top-down, first match wins, so a question containing
// both "calculation" and "energy" resolves to calculation.
type queryTypeRule struct {
	queryType domain.QueryType
	keywords  []string
}

var queryTypeRules = []queryTypeRule{
	{domain.QueryTypeRequirement, []string{"requirement", "standard", "norm", "regulation"}},
	{domain.QueryTypeCalculation, []string{"calculation", "analysis", "assess", "evaluate"}},
	{domain.QueryTypeEnergy, []string{"energy", "thermal", "hvac", "heating", "cooling", "kwh", "consumption"}},
	{domain.QueryTypeWater, []string{"water", "plumbing", "drainage"}},
	{domain.QueryTypeTransport, []string{"transport", "access", "mobility"}},
}

// keyTermPattern extracts technical terms from the original-case question.
// group selects which submatch is recorded: the unit pattern records only the
// unit token, the others record the whole match.
type keyTermPattern struct {
	re    *regexp.Regexp
	group int
}

var keyTermPatterns = []keyTermPattern{
	{regexp.MustCompile(`(?i)\b(?:\d+\s*)?(kW|MW|kWh|MWh|°C|°F|%|m²|m³)\b`), 1},
	{regexp.MustCompile(`(?i)\b(energy|thermal|efficiency|consumption|performance)\b`), 0},
	{regexp.MustCompile(`(?i)\b(HEA|ENE|TRA|WAT|RSC|RSL|LUE|POL)[\s_-]*\d+\b`), 0},
	{regexp.MustCompile(`(?i)\b(requirement|standard|regulation|compliance|audit)\b`), 0},
}

var categoryCodeRe = regexp.MustCompile(`(?i)\b(HEA|ENE|TRA|WAT|RSC|RSL|LUE|POL)\b`)

var expansionTerms = map[domain.QueryType][]string{
	domain.QueryTypeEnergy:      {"thermal", "heating", "cooling", "efficiency", "consumption", "performance"},
	domain.QueryTypeRequirement: {"standard", "regulation", "compliance", "norm", "criterion"},
	domain.QueryTypeCalculation: {"analysis", "assessment", "evaluation", "computation", "estimate"},
	domain.QueryTypeWater:       {"plumbing", "drainage", "sanitary", "hydraulic"},
	domain.QueryTypeTransport:   {"access", "mobility", "circulation", "traffic"},
}

// intentDomainRule is the second, independent domain table. It deliberately
// differs from queryTypeRules; the two classifiers may disagree and consumers
// pick one consistently (scorer: QueryType, prompts/follow-ups: Intent.Domain).
type intentDomainRule struct {
	domain   string
	keywords []string
}

var intentDomainRules = []intentDomainRule{
	{"energy", []string{"energy", "thermal", "heating", "cooling", "efficiency", "kwh", "consumption"}},
	{"water", []string{"water", "plumbing", "drainage", "sanitary", "hydraulic"}},
	{"transport", []string{"transport", "access", "mobility", "traffic", "parking"}},
	{"regulatory", []string{"requirement", "standard", "regulation", "compliance", "norm"}},
	{"technical", []string{"calculation", "analysis", "assessment", "audit", "evaluation"}},
}

var quantityWords = []string{"value", "number", "amount", "quantity", "rate", "percentage"}

// QueryAnalyzer classifies a raw question and extracts retrieval hints. It is
// stateless: the same text always yields the same analysis.
type QueryAnalyzer struct{}

func NewQueryAnalyzer() *QueryAnalyzer {
	return &QueryAnalyzer{}
}

// Analyze builds the full QueryAnalysis. Empty or whitespace input still
// produces a valid "general" analysis.
func (a *QueryAnalyzer) Analyze(question string) domain.QueryAnalysis {
	normalized := strings.ToLower(strings.TrimSpace(question))

	analysis := domain.QueryAnalysis{
		OriginalText:   question,
		NormalizedText: normalized,
		QueryType:      domain.QueryTypeGeneral,
		KeyTerms:       []string{},
		Intent:         a.DetectIntent(question),
	}

	for _, rule := range queryTypeRules {
		if containsAny(normalized, rule.keywords) {
			analysis.QueryType = rule.queryType
			break
		}
	}

	// Key terms run over the original-case text; matches concatenate across
	// patterns preserving duplicates and insertion order.
	for _, pattern := range keyTermPatterns {
		for _, match := range pattern.re.FindAllStringSubmatch(question, -1) {
			analysis.KeyTerms = append(analysis.KeyTerms, match[pattern.group])
		}
	}

	if m := categoryCodeRe.FindString(question); m != "" {
		analysis.CategoryHint = strings.ToLower(m) + "_*"
	}

	if terms, ok := expansionTerms[analysis.QueryType]; ok {
		analysis.ExpansionTerms = terms
	}

	return analysis
}

// DetectIntent runs the second classifier. It never fails: anything it cannot
// interpret degrades into the neutral default intent.
func (a *QueryAnalyzer) DetectIntent(question string) domain.Intent {
	lower := strings.ToLower(question)
	intent := domain.NeutralIntent()

	switch {
	case containsAny(lower, []string{"what", "which", "define", "explain"}):
		intent.Type = domain.IntentDefinition
	case containsAny(lower, []string{"how", "calculate", "compute", "determine"}):
		intent.Type = domain.IntentProcedure
		intent.RequiresCalculation = true
	case containsAny(lower, []string{"why", "reason", "cause"}):
		intent.Type = domain.IntentExplanation
	case containsAny(lower, []string{"compare", "difference", "versus", "vs"}):
		intent.Type = domain.IntentComparison
		intent.RequiresComparison = true
	}

	for _, rule := range intentDomainRules {
		if containsAny(lower, rule.keywords) {
			intent.Domain = rule.domain
			break
		}
	}

	words := len(strings.Fields(question))
	switch {
	case words > 15 || intent.RequiresCalculation || intent.RequiresComparison:
		intent.Complexity = domain.ComplexityHigh
	case words < 8 && intent.Type == domain.IntentDefinition:
		intent.Complexity = domain.ComplexityLow
	default:
		intent.Complexity = domain.ComplexityMedium
	}

	intent.RequiresSpecificValues = containsAny(lower, quantityWords)

	return intent
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
