package repository

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/models"
)

func TestLabRecords_GetScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	repo := NewLabRecords(db)

	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	record := createTestRecord(t, db, owner.ID, "Pendulum Experiment")

	got, err := repo.Get(record.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if got.Title != "Pendulum Experiment" {
		t.Errorf("expected title %q, got %q", "Pendulum Experiment", got.Title)
	}

	_, err = repo.Get(record.ID, other.ID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for non-owner, got %v", err)
	}
}

func TestLabRecords_UpdatePartial(t *testing.T) {
	db := openTestDB(t)
	repo := NewLabRecords(db)

	user := createTestUser(t, db, "update@example.com")
	record := createTestRecord(t, db, user.ID, "Original Title")

	updated, err := repo.Update(record.ID, user.ID, map[string]interface{}{"title": "Renamed"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("expected renamed title, got %q", updated.Title)
	}
	if updated.TemplateType != models.TemplatePhysics {
		t.Errorf("expected template type untouched, got %q", updated.TemplateType)
	}
}

func TestLabRecords_DeleteReportsOwnership(t *testing.T) {
	db := openTestDB(t)
	repo := NewLabRecords(db)

	owner := createTestUser(t, db, "del-owner@example.com")
	other := createTestUser(t, db, "del-other@example.com")
	record := createTestRecord(t, db, owner.ID, "To Delete")

	deleted, err := repo.Delete(record.ID, other.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted {
		t.Error("expected delete by non-owner to affect no rows")
	}

	deleted, err = repo.Delete(record.ID, owner.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected delete by owner to succeed")
	}
}

func TestLabRecords_Duplicate(t *testing.T) {
	db := openTestDB(t)
	repo := NewLabRecords(db)

	user := createTestUser(t, db, "dup@example.com")
	record := createTestRecord(t, db, user.ID, "Titration")
	first := createTestSection(t, db, record.ID, "Aim", 0)
	createTestSection(t, db, record.ID, "Procedure", 1)

	image := &models.SectionImage{
		SectionID: first.ID,
		ImageURL:  "/uploads/setup.png",
		Alignment: models.AlignCenter,
		Width:     100,
	}
	if err := db.Create(image).Error; err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}

	clone, err := repo.Duplicate(record.ID, user.ID)
	if err != nil {
		t.Fatalf("duplicate failed: %v", err)
	}

	if clone.ID == record.ID {
		t.Error("expected duplicate to get a fresh ID")
	}
	if clone.Title != "Titration (Copy)" {
		t.Errorf("expected copy suffix on title, got %q", clone.Title)
	}

	var sections []models.Section
	if err := db.Where("lab_record_id = ?", clone.ID).Order(`"order" ASC`).Find(&sections).Error; err != nil {
		t.Fatalf("failed to load cloned sections: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 cloned sections, got %d", len(sections))
	}
	if sections[0].Title != "Aim" || sections[1].Title != "Procedure" {
		t.Errorf("cloned section titles wrong: %q, %q", sections[0].Title, sections[1].Title)
	}
	if sections[0].ID == first.ID {
		t.Error("expected cloned sections to get fresh IDs")
	}

	var imageCount int64
	sectionIDs := []uuid.UUID{sections[0].ID, sections[1].ID}
	if err := db.Model(&models.SectionImage{}).Where("section_id IN ?", sectionIDs).Count(&imageCount).Error; err != nil {
		t.Fatalf("failed to count cloned images: %v", err)
	}
	if imageCount != 0 {
		t.Errorf("expected images not to be copied, found %d", imageCount)
	}
}

func TestLabRecords_DuplicateNotOwned(t *testing.T) {
	db := openTestDB(t)
	repo := NewLabRecords(db)

	owner := createTestUser(t, db, "dup-owner@example.com")
	other := createTestUser(t, db, "dup-other@example.com")
	record := createTestRecord(t, db, owner.ID, "Private")

	_, err := repo.Duplicate(record.ID, other.ID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}
