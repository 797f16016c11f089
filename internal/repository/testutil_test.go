package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/labrecord/backend/internal/database"
	"github.com/labrecord/backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestRecord(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) *models.LabRecord {
	t.Helper()

	record := &models.LabRecord{
		UserID:       userID,
		Title:        title,
		TemplateType: models.TemplatePhysics,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test record: %v", err)
	}
	return record
}

func createTestSection(t *testing.T, db *gorm.DB, recordID uuid.UUID, title string, order int) *models.Section {
	t.Helper()

	section := &models.Section{
		LabRecordID: recordID,
		Title:       title,
		Order:       order,
		SectionType: models.SectionText,
	}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("failed to create test section: %v", err)
	}
	return section
}
