package repository

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestSections_ListOrdered(t *testing.T) {
	db := openTestDB(t)
	repo := NewSections(db)

	user := createTestUser(t, db, "list@example.com")
	record := createTestRecord(t, db, user.ID, "Ordered")
	createTestSection(t, db, record.ID, "Third", 2)
	createTestSection(t, db, record.ID, "First", 0)
	createTestSection(t, db, record.ID, "Second", 1)

	sections, err := repo.ListByRecord(record.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if sections[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, sections[i].Title)
		}
	}
}

func TestSections_Reorder(t *testing.T) {
	db := openTestDB(t)
	repo := NewSections(db)

	user := createTestUser(t, db, "reorder@example.com")
	record := createTestRecord(t, db, user.ID, "Reorder")
	a := createTestSection(t, db, record.ID, "A", 0)
	b := createTestSection(t, db, record.ID, "B", 1)
	c := createTestSection(t, db, record.ID, "C", 2)

	err := repo.Reorder(record.ID, []OrderUpdate{
		{ID: c.ID, Order: 0},
		{ID: a.ID, Order: 1},
		{ID: b.ID, Order: 2},
	})
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	sections, err := repo.ListByRecord(record.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i, want := range []string{"C", "A", "B"} {
		if sections[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, sections[i].Title)
		}
	}
}

func TestSections_ReorderIgnoresForeignSections(t *testing.T) {
	db := openTestDB(t)
	repo := NewSections(db)

	user := createTestUser(t, db, "foreign@example.com")
	record := createTestRecord(t, db, user.ID, "Mine")
	otherRecord := createTestRecord(t, db, user.ID, "Other")
	mine := createTestSection(t, db, record.ID, "Mine", 0)
	foreign := createTestSection(t, db, otherRecord.ID, "Foreign", 0)

	err := repo.Reorder(record.ID, []OrderUpdate{
		{ID: mine.ID, Order: 5},
		{ID: foreign.ID, Order: 9},
	})
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	got, err := repo.Get(foreign.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Order != 0 {
		t.Errorf("expected foreign section order untouched, got %d", got.Order)
	}
}

func TestSections_OwnerOf(t *testing.T) {
	db := openTestDB(t)
	repo := NewSections(db)

	user := createTestUser(t, db, "owner-of@example.com")
	record := createTestRecord(t, db, user.ID, "Owned")
	section := createTestSection(t, db, record.ID, "Aim", 0)

	userID, recordID, err := repo.OwnerOf(section.ID)
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if userID != user.ID {
		t.Errorf("expected owner %s, got %s", user.ID, userID)
	}
	if recordID != record.ID {
		t.Errorf("expected record %s, got %s", record.ID, recordID)
	}

	_, _, err = repo.OwnerOf(uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for unknown section, got %v", err)
	}
}

func TestSections_UpdateLastWriterWins(t *testing.T) {
	db := openTestDB(t)
	repo := NewSections(db)

	user := createTestUser(t, db, "lww@example.com")
	record := createTestRecord(t, db, user.ID, "Race")
	section := createTestSection(t, db, record.ID, "Theory", 0)

	if _, err := repo.Update(section.ID, map[string]interface{}{"content": "first write"}); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	updated, err := repo.Update(section.ID, map[string]interface{}{"content": "second write"})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if updated.Content != "second write" {
		t.Errorf("expected last write to win, got %q", updated.Content)
	}
}
