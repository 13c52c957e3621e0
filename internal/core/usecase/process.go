package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buildeval/assessment-rag/internal/core/domain"
	"github.com/buildeval/assessment-rag/internal/core/ports"
)

// ProcessUseCase runs the worker side of ingestion: extract text, split and
// enrich chunks, embed, and index into the vector store. It drives the
// document status through processing to ready or failed.
type ProcessUseCase struct {
	repo      ports.DocumentRepository
	extractor ports.TextExtractor
	chunker   ports.Chunker
	embedder  ports.Embedder
	store     ports.VectorStore
	logger    *slog.Logger
}

var _ ports.DocumentProcessor = (*ProcessUseCase)(nil)

func NewProcessUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	chunker ports.Chunker,
	embedder ports.Embedder,
	store ports.VectorStore,
	logger *slog.Logger,
) *ProcessUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessUseCase{
		repo:      repo,
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		logger:    logger,
	}
}

func (u *ProcessUseCase) ProcessByID(ctx context.Context, documentID string) error {
	doc, err := u.repo.GetByID(ctx, documentID)
	if err != nil {
		return domain.WrapError(domain.ErrDocumentNotFound, "process: load document", err)
	}

	if err := u.repo.UpdateStatus(ctx, doc.ID, domain.StatusProcessing, ""); err != nil {
		return domain.WrapError(domain.ErrTemporary, "process: mark processing", err)
	}

	if err := u.process(ctx, doc); err != nil {
		u.logger.Error("document processing failed", "document_id", doc.ID, "error", err)
		if updateErr := u.repo.UpdateStatus(ctx, doc.ID, domain.StatusFailed, err.Error()); updateErr != nil {
			u.logger.Error("mark failed status failed", "document_id", doc.ID, "error", updateErr)
		}
		return err
	}

	if err := u.repo.UpdateStatus(ctx, doc.ID, domain.StatusReady, ""); err != nil {
		return domain.WrapError(domain.ErrTemporary, "process: mark ready", err)
	}
	return nil
}

func (u *ProcessUseCase) process(ctx context.Context, doc *domain.Document) error {
	text, err := u.extractor.Extract(ctx, doc)
	if err != nil {
		return domain.WrapError(domain.ErrTemporary, "process: extract text", err)
	}

	parts := u.chunker.Split(text)
	if len(parts) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "process: split",
			fmt.Errorf("document %s produced no chunks", doc.ID))
	}

	chunks := make([]domain.EnrichedChunk, len(parts))
	texts := make([]string, len(parts))
	for i, part := range parts {
		meta := AnalyzeChunk(part)
		meta.ChunkIndex = i
		meta.TotalChunks = len(parts)
		chunks[i] = domain.EnrichedChunk{Content: part, Meta: meta}
		texts[i] = part
	}

	vectors, err := u.embedder.Embed(ctx, texts)
	if err != nil {
		return domain.WrapError(domain.ErrTemporary, "process: embed chunks", err)
	}
	if len(vectors) != len(chunks) {
		return domain.WrapError(domain.ErrTemporary, "process: embed chunks",
			fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks)))
	}

	if err := u.store.IndexChunks(ctx, doc, chunks, vectors); err != nil {
		return domain.WrapError(domain.ErrTemporary, "process: index chunks", err)
	}

	if err := u.repo.SaveEnrichment(ctx, doc.ID, doc.Category, doc.DocumentType, len(chunks)); err != nil {
		return domain.WrapError(domain.ErrTemporary, "process: save enrichment", err)
	}

	u.logger.Info("document indexed",
		"document_id", doc.ID,
		"filename", doc.Filename,
		"chunks", len(chunks),
		"category", doc.Category,
	)
	return nil
}
