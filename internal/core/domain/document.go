package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// Document is the ingestion-side record of a source file. Category and
// DocumentType are derived from the file path and name during processing and
// are copied into every indexed chunk payload.
type Document struct {
	ID           string         `json:"id"`
	Filename     string         `json:"filename"`
	MimeType     string         `json:"mime_type"`
	StoragePath  string         `json:"storage_path"`
	Category     string         `json:"category,omitempty"`
	DocumentType string         `json:"document_type,omitempty"`
	Status       DocumentStatus `json:"status"`
	ChunkCount   int            `json:"chunk_count,omitempty"`
	Error        string         `json:"error,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ChunkMeta is the per-chunk metadata derived by content analysis at
// ingestion time. The retrieval core filters and scores on these fields.
type ChunkMeta struct {
	SectionType      string `json:"section_type"`
	TechnicalContent bool   `json:"technical_content"`
	ContainsUnits    bool   `json:"contains_units"`
	ChunkLength      int    `json:"chunk_length"`
	ChunkIndex       int    `json:"chunk_index"`
	TotalChunks      int    `json:"total_chunks"`
}

// EnrichedChunk is one chunk of extracted text plus its derived metadata,
// ready to be embedded and indexed.
type EnrichedChunk struct {
	Content string    `json:"content"`
	Meta    ChunkMeta `json:"meta"`
}
