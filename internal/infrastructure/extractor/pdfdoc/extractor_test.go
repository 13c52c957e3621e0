package pdfdoc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

type storageFake struct {
	content []byte
	err     error
}

func (s *storageFake) Save(context.Context, string, io.Reader) error { return nil }

func (s *storageFake) Open(context.Context, string) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(bytes.NewReader(s.content)), nil
}

func TestExtractRejectsMalformedPDF(t *testing.T) {
	e := NewExtractor(&storageFake{content: []byte("%PDF-1.4 but not really")}, nil)

	_, err := e.Extract(context.Background(), &domain.Document{
		ID:          "doc-1",
		Filename:    "broken.pdf",
		StoragePath: "doc-1/broken.pdf",
	})
	if err == nil {
		t.Fatal("expected parse error for malformed pdf")
	}
}

func TestExtractPropagatesStorageError(t *testing.T) {
	want := errors.New("storage down")
	e := NewExtractor(&storageFake{err: want}, nil)

	_, err := e.Extract(context.Background(), &domain.Document{
		ID:          "doc-2",
		StoragePath: "doc-2/x.pdf",
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}
