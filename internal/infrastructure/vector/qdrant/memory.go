package qdrant

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

var errMismatch = errors.New("chunks/vectors mismatch")

type memoryPoint struct {
	vector    []float32
	candidate domain.Candidate
}

// MemoryStore is an in-process vector store with the same contract as the
// HTTP client. It backs local development and the fake-services mode; exact
// cosine similarity, no persistence.
type MemoryStore struct {
	collection string

	mu     sync.RWMutex
	points []memoryPoint
}

func NewMemoryStore(collection string) *MemoryStore {
	return &MemoryStore{collection: collection}
}

func (s *MemoryStore) IndexChunks(_ context.Context, doc *domain.Document, chunks []domain.EnrichedChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return errMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, chunk := range chunks {
		s.points = append(s.points, memoryPoint{
			vector: vectors[i],
			candidate: domain.Candidate{
				Content:          chunk.Content,
				FileName:         doc.Filename,
				Category:         doc.Category,
				DocumentType:     doc.DocumentType,
				SectionType:      chunk.Meta.SectionType,
				TechnicalContent: chunk.Meta.TechnicalContent,
				ContainsUnits:    chunk.Meta.ContainsUnits,
				ChunkLength:      chunk.Meta.ChunkLength,
			},
		})
	}
	return nil
}

func (s *MemoryStore) Search(_ context.Context, queryVector []float32, limit int, scoreThreshold float64, filter domain.SearchFilter) ([]domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Candidate
	for _, p := range s.points {
		if !matchesFilter(p.candidate, filter) {
			continue
		}
		score := cosine(queryVector, p.vector)
		if score < scoreThreshold {
			continue
		}
		c := p.candidate
		c.BaseScore = score
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BaseScore > out[j].BaseScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Scroll(_ context.Context, filter domain.SearchFilter, limit int) ([]domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Candidate
	for _, p := range s.points {
		if !matchesFilter(p.candidate, filter) {
			continue
		}
		out = append(out, p.candidate)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) Status(context.Context) (domain.CollectionStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := domain.CollectionStatus{
		Collection:  s.collection,
		Status:      "green",
		PointsCount: len(s.points),
	}
	if len(s.points) > 0 {
		sample := make([]domain.Candidate, 0, len(s.points))
		for _, p := range s.points {
			sample = append(sample, p.candidate)
		}
		summarizeSample(&status, sample)
	}
	return status, nil
}

func matchesFilter(c domain.Candidate, f domain.SearchFilter) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.SectionType != "" && c.SectionType != f.SectionType {
		return false
	}
	if f.TechnicalContent != nil && c.TechnicalContent != *f.TechnicalContent {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, c.Category) {
		return false
	}
	if len(f.DocumentTypes) > 0 && !containsString(f.DocumentTypes, c.DocumentType) {
		return false
	}
	if len(f.FileNames) > 0 && !containsString(f.FileNames, c.FileName) {
		return false
	}
	return true
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
