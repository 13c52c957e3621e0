package domain

import "strings"

// SearchFilter is a conjunction of field-match conditions against the chunk
// payload. The zero value means "no filter". Scalar fields are exact matches,
// slice fields are any-of matches.
type SearchFilter struct {
	Category         string
	SectionType      string
	TechnicalContent *bool

	Categories    []string
	DocumentTypes []string
	FileNames     []string
}

func (f SearchFilter) IsEmpty() bool {
	return f.Category == "" &&
		f.SectionType == "" &&
		f.TechnicalContent == nil &&
		len(f.Categories) == 0 &&
		len(f.DocumentTypes) == 0 &&
		len(f.FileNames) == 0
}

// Candidate is one chunk returned by the vector store for a query; it lives
// only for the duration of one request. EnhancedScore is mutable until the
// candidate list is sorted, then treated as frozen.
type Candidate struct {
	Content          string  `json:"content"`
	EnhancedContent  string  `json:"enhanced_content,omitempty"`
	FileName         string  `json:"file_name"`
	Category         string  `json:"category"`
	DocumentType     string  `json:"document_type"`
	SectionType      string  `json:"section_type"`
	TechnicalContent bool    `json:"technical_content"`
	ContainsUnits    bool    `json:"contains_units"`
	ChunkLength      int     `json:"chunk_length"`
	BaseScore        float64 `json:"original_score"`
	EnhancedScore    float64 `json:"enhanced_score"`

	// Metadata carries the remaining payload fields untouched.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// BestContent returns the enhanced content when present, the plain content
// otherwise.
func (c Candidate) BestContent() string {
	if strings.TrimSpace(c.EnhancedContent) != "" {
		return c.EnhancedContent
	}
	return c.Content
}

// ContextInfo is the context-quality metadata computed during consolidation.
type ContextInfo struct {
	TotalSources        int      `json:"total_sources"`
	PrimarySources      int      `json:"primary_sources"`
	SupportingSources   int      `json:"supporting_sources"`
	ReferenceSources    int      `json:"reference_sources"`
	CategoriesCovered   []string `json:"categories_covered"`
	DocumentTypes       []string `json:"document_types"`
	HasTechnicalContent bool     `json:"has_technical_content"`
	AvgRelevanceScore   float64  `json:"avg_relevance_score"`
	ContextLength       int      `json:"context_length"`
}

// ContextBundle is the rendered context blob plus its quality metadata.
type ContextBundle struct {
	ConsolidatedText string      `json:"consolidated_text"`
	Info             ContextInfo `json:"context_info"`
}

type SourceType string

const (
	SourcePDF   SourceType = "pdf"
	SourceDOCX  SourceType = "docx"
	SourceTXT   SourceType = "txt"
	SourceXLSX  SourceType = "xlsx"
	SourceImage SourceType = "image"
	SourceOther SourceType = "other"
)

// DetectSourceType infers the source type from the file extension.
func DetectSourceType(filename string) SourceType {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return SourceOther
	}
	switch strings.ToLower(filename[idx+1:]) {
	case "pdf":
		return SourcePDF
	case "docx", "doc":
		return SourceDOCX
	case "txt":
		return SourceTXT
	case "xlsx", "xls":
		return SourceXLSX
	case "jpg", "jpeg", "png":
		return SourceImage
	default:
		return SourceOther
	}
}

type ConfidenceLevel string

const (
	ConfidenceHigh      ConfidenceLevel = "high"
	ConfidenceMedium    ConfidenceLevel = "medium"
	ConfidenceLow       ConfidenceLevel = "low"
	ConfidenceUncertain ConfidenceLevel = "uncertain"
)

type Source struct {
	Content    string         `json:"content"`
	FileName   string         `json:"file_name"`
	SourceType SourceType     `json:"source_type"`
	Score      float64        `json:"score"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type FollowUp struct {
	Question  string `json:"question"`
	Reasoning string `json:"reasoning"`
}

type AnswerMetadata struct {
	ProcessingTime  float64         `json:"processing_time"`
	SourcesCount    int             `json:"sources_count"`
	Reasoning       string          `json:"reasoning,omitempty"`
	QueryIntent     *Intent         `json:"query_intent,omitempty"`
	ContextInfo     *ContextInfo    `json:"context_info,omitempty"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
}

// RAGAnswer is the universal response object: callers always receive one,
// never a raw error.
type RAGAnswer struct {
	Answer            string          `json:"answer"`
	Sources           []Source        `json:"sources"`
	Confidence        ConfidenceLevel `json:"confidence"`
	Metadata          AnswerMetadata  `json:"metadata"`
	FollowUpQuestions []FollowUp      `json:"follow_up_questions"`
	SessionID         string          `json:"session_id"`
}

// CollectionStatus summarizes the indexed collection for health and analytics
// endpoints. Distribution fields come from a scroll sample, not a full scan.
type CollectionStatus struct {
	Collection     string         `json:"collection_name"`
	PointsCount    int            `json:"points_count"`
	Status         string         `json:"status"`
	SampleSize     int            `json:"sample_size,omitempty"`
	Categories     map[string]int `json:"categories,omitempty"`
	DocumentTypes  map[string]int `json:"document_types,omitempty"`
	SectionTypes   map[string]int `json:"section_types,omitempty"`
	TechnicalRatio float64        `json:"technical_content_ratio,omitempty"`
	AvgChunkLength float64        `json:"avg_chunk_length,omitempty"`
}
