package ports

import (
	"context"
	"io"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

// Embedder builds vectors for chunks and query text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore indexes enriched chunks and performs filtered similarity
// search. Search applies scoreThreshold store-side; Scroll returns unscored
// payload batches for analytics.
type VectorStore interface {
	IndexChunks(ctx context.Context, doc *domain.Document, chunks []domain.EnrichedChunk, vectors [][]float32) error
	Search(ctx context.Context, queryVector []float32, limit int, scoreThreshold float64, filter domain.SearchFilter) ([]domain.Candidate, error)
	Scroll(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.Candidate, error)
	Status(ctx context.Context) (domain.CollectionStatus, error)
}

// AnswerGenerator creates the final user-facing answer from a fully built
// prompt. One call per answered question.
type AnswerGenerator interface {
	GenerateFromPrompt(ctx context.Context, prompt string) (string, error)
}

// DocumentRepository persists and reads document ingestion state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveEnrichment(ctx context.Context, id string, category, documentType string, chunkCount int) error
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Chunker splits extracted text into indexable chunks.
type Chunker interface {
	Split(text string) []string
}
