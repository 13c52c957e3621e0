package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

type repoFake struct {
	created    *domain.Document
	createErr  error
	docs       map[string]*domain.Document
	statuses   []domain.DocumentStatus
	statusErrs []string
	enriched   bool
}

func (f *repoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = doc
	return nil
}

func (f *repoFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return doc, nil
}

func (f *repoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statuses = append(f.statuses, status)
	f.statusErrs = append(f.statusErrs, errMessage)
	return nil
}

func (f *repoFake) SaveEnrichment(_ context.Context, _ string, _, _ string, _ int) error {
	f.enriched = true
	return nil
}

type storageFake struct {
	saved map[string][]byte
	err   error
}

func (f *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	b, _ := io.ReadAll(data)
	f.saved[key] = b
	return nil
}

func (f *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	b, ok := f.saved[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

type queueFake struct {
	published []string
	err       error
}

func (f *queueFake) PublishDocumentIngested(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, documentID)
	return nil
}

func (f *queueFake) SubscribeDocumentIngested(context.Context, func(context.Context, string) error) error {
	return nil
}

func newTestIngest(repo *repoFake, storage *storageFake, queue *queueFake) *IngestUseCase {
	return NewIngestUseCase(repo, storage, queue, slog.New(slog.DiscardHandler))
}

func TestUploadHappyPath(t *testing.T) {
	repo := &repoFake{}
	storage := &storageFake{}
	queue := &queueFake{}
	uc := newTestIngest(repo, storage, queue)

	doc, err := uc.Upload(context.Background(), "energy_requirements.pdf", "application/pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("expected uploaded status, got %s", doc.Status)
	}
	if doc.DocumentType != "requirement" {
		t.Fatalf("expected requirement type from filename, got %q", doc.DocumentType)
	}
	if repo.created == nil || repo.created.ID != doc.ID {
		t.Fatalf("expected record created")
	}
	if len(queue.published) != 1 || queue.published[0] != doc.ID {
		t.Fatalf("expected ingest event for %s, got %v", doc.ID, queue.published)
	}
	if len(storage.saved) != 1 {
		t.Fatalf("expected stored object")
	}
}

func TestUploadCategoryFromFilenameCode(t *testing.T) {
	repo := &repoFake{}
	uc := newTestIngest(repo, &storageFake{}, &queueFake{})

	doc, err := uc.Upload(context.Background(), "HEA_01_daylighting.txt", "text/plain", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.Category != "hea_1" {
		t.Fatalf("expected category hea_1 from filename code, got %q", doc.Category)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	uc := newTestIngest(&repoFake{}, &storageFake{}, &queueFake{})

	_, err := uc.Upload(context.Background(), "malware.exe", "application/octet-stream", strings.NewReader(""))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestUploadRejectsEmptyFilename(t *testing.T) {
	uc := newTestIngest(&repoFake{}, &storageFake{}, &queueFake{})

	_, err := uc.Upload(context.Background(), "   ", "text/plain", strings.NewReader(""))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestUploadStorageFailure(t *testing.T) {
	uc := newTestIngest(&repoFake{}, &storageFake{err: errors.New("disk full")}, &queueFake{})

	_, err := uc.Upload(context.Background(), "a.txt", "text/plain", strings.NewReader("x"))
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
}

func TestUploadPublishFailure(t *testing.T) {
	repo := &repoFake{}
	uc := newTestIngest(repo, &storageFake{}, &queueFake{err: errors.New("nats down")})

	_, err := uc.Upload(context.Background(), "a.txt", "text/plain", strings.NewReader("x"))
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
	// Record stays so the document can be reprocessed.
	if repo.created == nil {
		t.Fatalf("expected record kept after publish failure")
	}
}
