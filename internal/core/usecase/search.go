package usecase

import (
	"context"

	"github.com/buildeval/assessment-rag/internal/core/domain"
	"github.com/buildeval/assessment-rag/internal/core/ports"
)

// SearchUseCase exposes retrieval as the public search surface, formatting
// candidates for API responses.
type SearchUseCase struct {
	retriever *Retriever
}

var _ ports.SearchService = (*SearchUseCase)(nil)

func NewSearchUseCase(retriever *Retriever) *SearchUseCase {
	return &SearchUseCase{retriever: retriever}
}

func (s *SearchUseCase) Search(ctx context.Context, query string, limit int) []domain.Source {
	if limit <= 0 {
		limit = 5
	}
	candidates := s.retriever.SemanticSearch(ctx, query, limit)
	sources := make([]domain.Source, 0, len(candidates))
	for _, cand := range candidates {
		sources = append(sources, domain.Source{
			Content:    cand.Content,
			FileName:   cand.FileName,
			SourceType: domain.DetectSourceType(cand.FileName),
			Score:      cand.EnhancedScore,
			Metadata:   cand.Metadata,
		})
	}
	return sources
}

func (s *SearchUseCase) SearchWithMetadata(
	ctx context.Context,
	query string,
	limit int,
	autoFilter bool,
	categories, documentTypes []string,
) []domain.Candidate {
	return s.retriever.MetadataSearch(ctx, query, limit, autoFilter, categories, documentTypes)
}

func (s *SearchUseCase) CategorySummary(ctx context.Context) map[string]int {
	return s.retriever.CategorySummary(ctx)
}

func (s *SearchUseCase) CollectionStatus(ctx context.Context) domain.CollectionStatus {
	return s.retriever.CollectionStatus(ctx)
}
