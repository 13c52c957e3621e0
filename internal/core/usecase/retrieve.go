package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/buildeval/assessment-rag/internal/core/domain"
	"github.com/buildeval/assessment-rag/internal/core/ports"
)

// RetrievalConfig carries the retrieval tunables. Defaults are documented at
// the composition point in bootstrap.
type RetrievalConfig struct {
	// ScoreThreshold is the store-side minimum similarity cutoff.
	ScoreThreshold float64
	// AutoFilterMinConfidence gates category auto-filtering.
	AutoFilterMinConfidence float64
	// ScrollSampleSize bounds category-summary and status sampling.
	ScrollSampleSize int
}

func (c RetrievalConfig) withDefaults() RetrievalConfig {
	if c.ScoreThreshold <= 0 {
		c.ScoreThreshold = 0.3
	}
	if c.AutoFilterMinConfidence <= 0 {
		c.AutoFilterMinConfidence = 0.3
	}
	if c.ScrollSampleSize <= 0 {
		c.ScrollSampleSize = 1000
	}
	return c
}

// Retriever embeds queries and executes filtered similarity search. All
// retrieval failures degrade to an empty result list: a search failure means
// "no results", never a crashed request.
type Retriever struct {
	embedder ports.Embedder
	store    ports.VectorStore
	analyzer *QueryAnalyzer
	filters  *FilterBuilder
	cfg      RetrievalConfig
	logger   *slog.Logger
}

func NewRetriever(
	embedder ports.Embedder,
	store ports.VectorStore,
	analyzer *QueryAnalyzer,
	filters *FilterBuilder,
	cfg RetrievalConfig,
	logger *slog.Logger,
) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		embedder: embedder,
		store:    store,
		analyzer: analyzer,
		filters:  filters,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// SemanticSearch is the general QA retrieval path: analyze, filter, embed
// once, over-fetch 2x, rescore additively, sort, truncate to limit.
func (r *Retriever) SemanticSearch(ctx context.Context, query string, limit int) []domain.Candidate {
	if limit <= 0 {
		limit = 6
	}

	analysis := r.analyzer.Analyze(query)
	filter := r.filters.FromAnalysis(analysis)

	vector, err := r.embedder.EmbedQuery(ctx, analysis.OriginalText)
	if err != nil {
		r.logger.Error("embed query failed", "error", err)
		return nil
	}

	candidates, err := r.store.Search(ctx, vector, limit*2, r.cfg.ScoreThreshold, filter)
	if err != nil {
		r.logger.Error("vector search failed", "error", err)
		return nil
	}

	for i := range candidates {
		candidates[i].EnhancedScore = enhancedScore(candidates[i], analysis)
	}
	sortByEnhancedScore(candidates)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	r.logger.Info("semantic search completed",
		"query_type", analysis.QueryType,
		"key_terms", analysis.KeyTerms,
		"results", len(candidates),
	)
	return candidates
}

// MetadataSearch is the category-aware retrieval entry point. It uses the
// multiplicative scoring variant, not the additive one.
func (r *Retriever) MetadataSearch(
	ctx context.Context,
	query string,
	limit int,
	autoFilter bool,
	categories, documentTypes []string,
) []domain.Candidate {
	if limit <= 0 {
		limit = 10
	}

	detectedConfidence := 0.0
	if autoFilter && len(categories) == 0 {
		detected, confidence := detectCategories(query)
		if len(detected) > 0 && confidence > r.cfg.AutoFilterMinConfidence {
			categories = detected
			detectedConfidence = confidence
			r.logger.Info("auto-detected categories", "categories", detected, "confidence", confidence)
		}
	}

	filter := r.filters.Explicit(categories, documentTypes, nil)

	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		r.logger.Error("embed query failed", "error", err)
		return nil
	}

	candidates, err := r.store.Search(ctx, vector, limit*2, r.cfg.ScoreThreshold, filter)
	if err != nil {
		r.logger.Error("metadata search failed", "error", err)
		return nil
	}

	categorySet := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		categorySet[c] = struct{}{}
	}

	for i := range candidates {
		_, matched := categorySet[candidates[i].Category]
		matches := keywordMatches(query, candidates[i].Content)
		candidates[i].EnhancedScore = metadataScore(
			candidates[i].BaseScore,
			matched && autoFilter,
			detectedConfidence,
			matches,
		)
	}
	sortByEnhancedScore(candidates)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// SearchByDocument retrieves chunks from a single file, scored when a query
// is given and in stored order otherwise.
func (r *Retriever) SearchByDocument(ctx context.Context, fileName, query string, limit int) []domain.Candidate {
	if limit <= 0 {
		limit = 5
	}
	filter := r.filters.Explicit(nil, nil, []string{fileName})

	if strings.TrimSpace(query) != "" {
		vector, err := r.embedder.EmbedQuery(ctx, query)
		if err != nil {
			r.logger.Error("embed query failed", "error", err)
			return nil
		}
		candidates, err := r.store.Search(ctx, vector, limit, r.cfg.ScoreThreshold, filter)
		if err != nil {
			r.logger.Error("document search failed", "error", err)
			return nil
		}
		for i := range candidates {
			candidates[i].EnhancedScore = candidates[i].BaseScore
		}
		return candidates
	}

	candidates, err := r.store.Scroll(ctx, filter, limit)
	if err != nil {
		r.logger.Error("document scroll failed", "error", err)
		return nil
	}
	return candidates
}

// CategorySummary counts indexed documents per category from a scroll
// sample.
func (r *Retriever) CategorySummary(ctx context.Context) map[string]int {
	batch, err := r.store.Scroll(ctx, domain.SearchFilter{}, r.cfg.ScrollSampleSize)
	if err != nil {
		r.logger.Error("category summary scroll failed", "error", err)
		return map[string]int{}
	}

	counts := make(map[string]int)
	for _, c := range batch {
		category := c.Category
		if category == "" {
			category = "unknown"
		}
		counts[category]++
	}
	return counts
}

// CollectionStatus reports collection health and sampled content
// distribution.
func (r *Retriever) CollectionStatus(ctx context.Context) domain.CollectionStatus {
	status, err := r.store.Status(ctx)
	if err != nil {
		r.logger.Error("collection status failed", "error", err)
		return domain.CollectionStatus{Status: "error"}
	}
	return status
}

func sortByEnhancedScore(candidates []domain.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EnhancedScore > candidates[j].EnhancedScore
	})
}

// keywordMatches counts query words longer than 3 characters literally
// present in the candidate content, case-insensitive.
func keywordMatches(query, content string) int {
	contentLower := strings.ToLower(content)
	matches := 0
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) > 3 && strings.Contains(contentLower, word) {
			matches++
		}
	}
	return matches
}
