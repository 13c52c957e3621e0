package ports

import (
	"context"
	"io"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

// QuestionService is the inbound contract for RAG question answering. It
// always returns a well-formed answer: failures degrade to an apology
// response with uncertain confidence, never an error.
type QuestionService interface {
	AnswerQuestion(ctx context.Context, req domain.QuestionRequest) *domain.RAGAnswer
}

// SearchService is the inbound contract for document search and collection
// analytics.
type SearchService interface {
	Search(ctx context.Context, query string, limit int) []domain.Source
	SearchWithMetadata(ctx context.Context, query string, limit int, autoFilter bool, categories, documentTypes []string) []domain.Candidate
	CategorySummary(ctx context.Context) map[string]int
	CollectionStatus(ctx context.Context) domain.CollectionStatus
}

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document
// processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}
