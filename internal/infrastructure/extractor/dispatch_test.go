package extractor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

type storageFake struct {
	files map[string]string
}

func (s *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	if s.files == nil {
		s.files = map[string]string{}
	}
	s.files[key] = string(raw)
	return nil
}

func (s *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	content, ok := s.files[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func TestDispatchPlainTextByExtension(t *testing.T) {
	storage := &storageFake{files: map[string]string{
		"doc-1/ene_02.txt": "  Sub-metering of major energy uses.  ",
	}}
	d := NewDispatcher(storage, nil)

	text, err := d.Extract(context.Background(), &domain.Document{
		ID:          "doc-1",
		Filename:    "ene_02.txt",
		StoragePath: "doc-1/ene_02.txt",
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "Sub-metering of major energy uses." {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestDispatchIsCaseInsensitive(t *testing.T) {
	storage := &storageFake{files: map[string]string{
		"doc-2/NOTES.MD": "site plan notes",
	}}
	d := NewDispatcher(storage, nil)

	text, err := d.Extract(context.Background(), &domain.Document{
		ID:          "doc-2",
		Filename:    "NOTES.MD",
		StoragePath: "doc-2/NOTES.MD",
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "site plan notes" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestDispatchRejectsUnknownExtension(t *testing.T) {
	d := NewDispatcher(&storageFake{}, nil)

	_, err := d.Extract(context.Background(), &domain.Document{
		ID:          "doc-3",
		Filename:    "photo.png",
		StoragePath: "doc-3/photo.png",
	})
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}
