package usecase

import "testing"

func TestExtractPathMetadataCategoryFolder(t *testing.T) {
	meta := ExtractPathMetadata("data/2_ENE/energy_requirements.pdf")

	if meta.Category != "ene_2" {
		t.Fatalf("expected category ene_2, got %q", meta.Category)
	}
	if meta.DocumentType != "requirement" {
		t.Fatalf("expected requirement type, got %q", meta.DocumentType)
	}
	if meta.FileName != "energy_requirements.pdf" {
		t.Fatalf("unexpected file name %q", meta.FileName)
	}
}

func TestExtractPathMetadataDefaults(t *testing.T) {
	meta := ExtractPathMetadata("uploads/notes.txt")

	if meta.Category != "unknown" {
		t.Fatalf("expected unknown category, got %q", meta.Category)
	}
	if meta.DocumentType != "general" {
		t.Fatalf("expected general type, got %q", meta.DocumentType)
	}
}

func TestExtractPathMetadataUploadedFilenameCode(t *testing.T) {
	meta := ExtractPathMetadata("3f6c2f1a-9c2d-4a8e-b1d4-0a7e5c9f2b10/ENE_02_energy_monitoring.pdf")

	if meta.Category != "ene_2" {
		t.Fatalf("expected category ene_2, got %q", meta.Category)
	}

	plain := ExtractPathMetadata("3f6c2f1a-9c2d-4a8e-b1d4-0a7e5c9f2b10/meeting_notes.pdf")
	if plain.Category != "unknown" {
		t.Fatalf("expected unknown category, got %q", plain.Category)
	}
}

func TestExtractPathMetadataDocumentTypes(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"1_HEA/thermal_calculation.pdf", "calculation"},
		{"1_HEA/site_audit_2024.pdf", "audit"},
		{"1_HEA/floor_plan.pdf", "plan"},
		{"1_HEA/consumption_data.xlsx", "spreadsheet"},
	}
	for _, tc := range cases {
		if got := ExtractPathMetadata(tc.path).DocumentType; got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.path, tc.want, got)
		}
	}
}

func TestAnalyzeChunkSectionTypes(t *testing.T) {
	requirement := AnalyzeChunk("The building must comply with thermal standards.")
	if requirement.SectionType != "requirement_section" {
		t.Fatalf("expected requirement section, got %q", requirement.SectionType)
	}

	calculation := AnalyzeChunk("The formula below derives annual demand.")
	if calculation.SectionType != "calculation_section" {
		t.Fatalf("expected calculation section, got %q", calculation.SectionType)
	}

	data := AnalyzeChunk("See Table 3 for the measured wind loads.")
	if data.SectionType != "data_section" {
		t.Fatalf("expected data section, got %q", data.SectionType)
	}

	plain := AnalyzeChunk("The site is located near the river.")
	if plain.SectionType != "content_section" {
		t.Fatalf("expected content section, got %q", plain.SectionType)
	}
}

func TestAnalyzeChunkUnitsImplyTechnical(t *testing.T) {
	meta := AnalyzeChunk("Peak demand reaches 120 kW in winter.")

	if !meta.ContainsUnits {
		t.Fatalf("expected units detected")
	}
	if !meta.TechnicalContent {
		t.Fatalf("units imply technical content")
	}
	if meta.ChunkLength != len("Peak demand reaches 120 kW in winter.") {
		t.Fatalf("unexpected chunk length %d", meta.ChunkLength)
	}
}
