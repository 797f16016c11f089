package export

import (
	"testing"

	"github.com/google/uuid"

	"github.com/labrecord/backend/internal/models"
)

func sampleRecord(title string) *models.LabRecord {
	return &models.LabRecord{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Title:     title,
	}
}

func TestBuildDocument_ExcludesHiddenAndSorts(t *testing.T) {
	record := sampleRecord("Pendulum")
	sections := []models.Section{
		{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "Conclusion", Order: 2, SectionType: models.SectionText, Content: "done"},
		{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "Apparatus", Order: 1, IsHidden: true, SectionType: models.SectionText, Content: "secret"},
		{BaseModel: models.BaseModel{ID: uuid.New()}, Title: "Aim", Order: 0, SectionType: models.SectionText, Content: "measure g"},
	}

	doc := BuildDocument(record, sections, nil)

	if doc.Title != "Pendulum" {
		t.Errorf("unexpected title %q", doc.Title)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected hidden section excluded, got %d sections", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Aim" || doc.Sections[1].Title != "Conclusion" {
		t.Errorf("sections out of order: %q, %q", doc.Sections[0].Title, doc.Sections[1].Title)
	}
}

func TestBuildDocument_StudentDetails(t *testing.T) {
	record := sampleRecord("Details")
	sections := []models.Section{
		{
			BaseModel:   models.BaseModel{ID: uuid.New()},
			Title:       "Student Details",
			SectionType: models.SectionStudentDetails,
			Content:     `{"name":"Asha","subject":"Physics"}`,
		},
	}

	doc := BuildDocument(record, sections, nil)
	details := doc.Sections[0].Details
	if len(details) != 2 {
		t.Fatalf("expected 2 non-empty fields, got %d", len(details))
	}
	if details[0].Label != "Name" || details[0].Value != "Asha" {
		t.Errorf("unexpected first field: %+v", details[0])
	}
	if details[1].Label != "Subject" || details[1].Value != "Physics" {
		t.Errorf("unexpected second field: %+v", details[1])
	}
}

func TestBuildDocument_MalformedDetailsRenderNothing(t *testing.T) {
	record := sampleRecord("Broken")
	sections := []models.Section{
		{
			BaseModel:   models.BaseModel{ID: uuid.New()},
			Title:       "Student Details",
			SectionType: models.SectionStudentDetails,
			Content:     "{not json",
		},
	}

	doc := BuildDocument(record, sections, nil)
	if len(doc.Sections) != 1 {
		t.Fatalf("expected section kept, got %d", len(doc.Sections))
	}
	if doc.Sections[0].Title != "Student Details" {
		t.Errorf("expected title kept, got %q", doc.Sections[0].Title)
	}
	if len(doc.Sections[0].Details) != 0 {
		t.Errorf("expected no fields from malformed payload, got %+v", doc.Sections[0].Details)
	}
	if doc.Sections[0].Content != "" {
		t.Errorf("expected no raw content leak, got %q", doc.Sections[0].Content)
	}
}

func TestBuildDocument_AttachesImages(t *testing.T) {
	record := sampleRecord("Imaged")
	sectionID := uuid.New()
	sections := []models.Section{
		{BaseModel: models.BaseModel{ID: sectionID}, Title: "Observations", SectionType: models.SectionText},
	}
	images := map[uuid.UUID][]models.SectionImage{
		sectionID: {{ImageURL: "/uploads/x.png", Alignment: models.AlignCenter, Width: 50}},
	}

	doc := BuildDocument(record, sections, images)
	if len(doc.Sections[0].Images) != 1 {
		t.Fatalf("expected image attached, got %d", len(doc.Sections[0].Images))
	}
}
