package usecase

import "github.com/buildeval/assessment-rag/internal/core/domain"

// FilterBuilder converts analyzer output (or explicit caller-supplied lists)
// into a vector-store filter predicate. All conditions are additive with AND
// semantics.
type FilterBuilder struct{}

func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{}
}

// FromAnalysis derives a filter from the query analysis. An empty filter
// means "search everything".
func (b *FilterBuilder) FromAnalysis(analysis domain.QueryAnalysis) domain.SearchFilter {
	var filter domain.SearchFilter

	if analysis.CategoryHint != "" {
		filter.Category = analysis.CategoryHint
	}

	switch analysis.QueryType {
	case domain.QueryTypeRequirement:
		filter.SectionType = "requirement_section"
	case domain.QueryTypeCalculation:
		filter.SectionType = "calculation_section"
	}

	if analysis.QueryType == domain.QueryTypeEnergy || analysis.QueryType == domain.QueryTypeCalculation {
		technical := true
		filter.TechnicalContent = &technical
	}

	return filter
}

// Explicit builds a filter from caller-supplied lists with any-of semantics
// per field. Used by category/document-type-scoped searches and
// single-document lookups.
func (b *FilterBuilder) Explicit(categories, documentTypes, fileNames []string) domain.SearchFilter {
	return domain.SearchFilter{
		Categories:    categories,
		DocumentTypes: documentTypes,
		FileNames:     fileNames,
	}
}
