package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/buildeval/assessment-rag/internal/core/domain"
	"github.com/buildeval/assessment-rag/internal/core/ports"
	"github.com/buildeval/assessment-rag/internal/infrastructure/extractor/pdfdoc"
	"github.com/buildeval/assessment-rag/internal/infrastructure/extractor/plaintext"
	"github.com/buildeval/assessment-rag/internal/infrastructure/extractor/spreadsheet"
)

// Dispatcher routes a document to the extractor matching its file extension.
type Dispatcher struct {
	byExt map[string]ports.TextExtractor
}

// NewDispatcher builds the default extension routing over a single object
// storage: .txt/.md plain text, .pdf, and .xlsx/.xls spreadsheets.
func NewDispatcher(storage ports.ObjectStorage, logger *slog.Logger) *Dispatcher {
	plain := plaintext.NewExtractor(storage)
	pdf := pdfdoc.NewExtractor(storage, logger)
	sheet := spreadsheet.NewExtractor(storage, logger)
	return &Dispatcher{
		byExt: map[string]ports.TextExtractor{
			".txt":  plain,
			".md":   plain,
			".pdf":  pdf,
			".xlsx": sheet,
			".xls":  sheet,
		},
	}
}

var _ ports.TextExtractor = (*Dispatcher)(nil)

func (d *Dispatcher) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	ext := strings.ToLower(filepath.Ext(doc.Filename))
	ex, ok := d.byExt[ext]
	if !ok {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract",
			fmt.Errorf("no extractor for file type %q (%s)", ext, doc.Filename))
	}
	return ex.Extract(ctx, doc)
}
