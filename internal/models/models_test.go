package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestBaseModel_BeforeCreate(t *testing.T) {
	t.Run("generates UUID if not set", func(t *testing.T) {
		model := &BaseModel{}
		if err := model.BeforeCreate(nil); err != nil {
			t.Fatalf("BeforeCreate returned error: %v", err)
		}
		if model.ID == uuid.Nil {
			t.Error("expected ID to be generated, got nil UUID")
		}
	})

	t.Run("preserves existing UUID", func(t *testing.T) {
		existingID := uuid.New()
		model := &BaseModel{ID: existingID}
		if err := model.BeforeCreate(nil); err != nil {
			t.Fatalf("BeforeCreate returned error: %v", err)
		}
		if model.ID != existingID {
			t.Errorf("expected ID to remain %s, got %s", existingID, model.ID)
		}
	})
}

func TestTemplateType_IsValid(t *testing.T) {
	for _, valid := range []TemplateType{TemplatePhysics, TemplateChemistry, TemplateComputer} {
		if !valid.IsValid() {
			t.Errorf("expected %q to be valid", valid)
		}
	}
	if TemplateType("biology").IsValid() {
		t.Error("expected unknown template type to be invalid")
	}
}

func TestSectionType_IsValid(t *testing.T) {
	for _, valid := range []SectionType{SectionText, SectionCode, SectionStudentDetails} {
		if !valid.IsValid() {
			t.Errorf("expected %q to be valid", valid)
		}
	}
	if SectionType("table").IsValid() {
		t.Error("expected unknown section type to be invalid")
	}
}

func TestImageConstraints(t *testing.T) {
	for _, valid := range []ImageAlignment{AlignLeft, AlignCenter, AlignRight} {
		if !valid.IsValid() {
			t.Errorf("expected alignment %q to be valid", valid)
		}
	}
	if ImageAlignment("justify").IsValid() {
		t.Error("expected unknown alignment to be invalid")
	}

	for _, w := range []int{25, 50, 75, 100} {
		if !IsValidImageWidth(w) {
			t.Errorf("expected width %d to be valid", w)
		}
	}
	for _, w := range []int{0, 10, 33, 101} {
		if IsValidImageWidth(w) {
			t.Errorf("expected width %d to be invalid", w)
		}
	}
}
