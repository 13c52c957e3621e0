package usecase

import (
	"path"
	"regexp"
	"strings"

	"github.com/buildeval/assessment-rag/internal/core/domain"
)

var (
	categoryFolderRe = regexp.MustCompile(`^\d+_[A-Z]{3}$`)
	categoryFileRe   = regexp.MustCompile(`(?i)^(HEA|ENE|TRA|WAT|RSC|RSL|LUE|POL)[\s_-]`)
	tableFigureRe    = regexp.MustCompile(`(?i)\b(table|figure)\s+\d+\b`)
	unitValueRe      = regexp.MustCompile(`(?i)\b\d+\s*(kw|mw|kwh|mwh|°c|%|m²|m³|l/day)\b`)
)

var chunkTechnicalKeywords = []string{
	"energy", "thermal", "hvac", "kw", "mw", "kwh", "mwh", "°c", "efficiency",
}

// PathMetadata is what the storage path and filename reveal about a document
// before its content is read.
type PathMetadata struct {
	Category     string
	DocumentType string
	FileName     string
}

// ExtractPathMetadata derives category and document type from the storage
// path. Category comes from an assessment folder segment like "1_HEA",
// stored lowercased; document type from filename keywords.
func ExtractPathMetadata(storagePath string) PathMetadata {
	meta := PathMetadata{
		Category:     "unknown",
		DocumentType: "general",
		FileName:     path.Base(storagePath),
	}

	// Folder names are "<section>_<CODE>" (e.g. 1_HEA); the stored canonical
	// form is "<code>_<section>" so that category filters, auto-detection and
	// the relevance scorer all compare the same values.
	for _, part := range strings.Split(storagePath, "/") {
		if categoryFolderRe.MatchString(part) {
			section, code, _ := strings.Cut(part, "_")
			meta.Category = strings.ToLower(code) + "_" + section
			break
		}
	}

	// Uploaded files land under "<uuid>/<filename>" with no assessment
	// folder in the path; fall back to a leading category code in the
	// filename itself ("HEA_01_daylighting.pdf").
	if meta.Category == "unknown" {
		if m := categoryFileRe.FindStringSubmatch(meta.FileName); m != nil {
			if canonical := canonicalCategoryForCode(strings.ToLower(m[1])); canonical != "" {
				meta.Category = canonical
			}
		}
	}

	filenameLower := strings.ToLower(meta.FileName)
	switch {
	case containsAny(filenameLower, []string{"requirement", "standard", "regulation"}):
		meta.DocumentType = "requirement"
	case containsAny(filenameLower, []string{"calculation", "calcul", "analysis"}):
		meta.DocumentType = "calculation"
	case containsAny(filenameLower, []string{"audit", "assessment", "evaluation"}):
		meta.DocumentType = "audit"
	case containsAny(filenameLower, []string{"plan", "drawing", "schema"}):
		meta.DocumentType = "plan"
	case strings.HasSuffix(filenameLower, ".xlsx"):
		meta.DocumentType = "spreadsheet"
	}

	return meta
}

// canonicalCategoryForCode resolves a bare 3-letter code to its stored
// "<code>_<section>" value via the known category table.
func canonicalCategoryForCode(code string) string {
	prefix := code + "_"
	for key := range categoryKeywords {
		if strings.HasPrefix(key, prefix) {
			return key
		}
	}
	return ""
}

// AnalyzeChunk classifies a chunk's section type and flags technical content
// and measurement units.
func AnalyzeChunk(content string) domain.ChunkMeta {
	contentLower := strings.ToLower(content)
	meta := domain.ChunkMeta{
		SectionType: "content_section",
		ChunkLength: len(content),
	}

	switch {
	case containsAny(contentLower, []string{"requirement", "standard", "must comply", "regulation"}):
		meta.SectionType = "requirement_section"
	case containsAny(contentLower, []string{"calculation", "formula", "analysis", "results"}):
		meta.SectionType = "calculation_section"
	case tableFigureRe.MatchString(contentLower):
		meta.SectionType = "data_section"
	}

	meta.TechnicalContent = containsAny(contentLower, chunkTechnicalKeywords)
	if unitValueRe.MatchString(contentLower) {
		meta.ContainsUnits = true
		meta.TechnicalContent = true
	}

	return meta
}
