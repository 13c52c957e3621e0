package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/buildeval/assessment-rag/internal/core/domain"
	"github.com/buildeval/assessment-rag/internal/core/ports"
)

var supportedUploadExtensions = map[string]struct{}{
	".pdf":  {},
	".txt":  {},
	".xlsx": {},
	".xls":  {},
	".md":   {},
}

// IngestUseCase accepts document uploads: persist the file, record it, and
// hand processing off to the queue. Extraction and indexing happen in the
// worker.
type IngestUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
	logger  *slog.Logger
}

var _ ports.DocumentIngestor = (*IngestUseCase)(nil)

func NewIngestUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	logger *slog.Logger,
) *IngestUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestUseCase{repo: repo, storage: storage, queue: queue, logger: logger}
}

func (u *IngestUseCase) Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", fmt.Errorf("empty filename"))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := supportedUploadExtensions[ext]; !ok {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload", fmt.Errorf("unsupported file type %q", ext))
	}

	id := uuid.NewString()
	storagePath := id + "/" + filename
	if err := u.storage.Save(ctx, storagePath, body); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "upload: save object", err)
	}

	pathMeta := ExtractPathMetadata(storagePath)
	now := time.Now().UTC()
	doc := &domain.Document{
		ID:           id,
		Filename:     filename,
		MimeType:     mimeType,
		StoragePath:  storagePath,
		Category:     pathMeta.Category,
		DocumentType: pathMeta.DocumentType,
		Status:       domain.StatusUploaded,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.repo.Create(ctx, doc); err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "upload: create record", err)
	}

	if err := u.queue.PublishDocumentIngested(ctx, doc.ID); err != nil {
		// The record exists, so the document can be reprocessed later.
		u.logger.Error("publish ingest event failed", "document_id", doc.ID, "error", err)
		return nil, domain.WrapError(domain.ErrTemporary, "upload: publish event", err)
	}

	u.logger.Info("document uploaded", "document_id", doc.ID, "filename", filename, "document_type", doc.DocumentType)
	return doc, nil
}

// GetByID exposes ingestion state to the API.
func (u *IngestUseCase) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	return u.repo.GetByID(ctx, id)
}
