package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/models"
)

// LabRecords owns all lab record queries. Every method is scoped by
// user ID so a caller can never see or touch another user's records.
type LabRecords struct {
	db *gorm.DB
}

func NewLabRecords(db *gorm.DB) *LabRecords {
	return &LabRecords{db: db}
}

func (r *LabRecords) List(userID uuid.UUID) ([]models.LabRecord, error) {
	var records []models.LabRecord
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&records).Error
	return records, err
}

func (r *LabRecords) Get(id, userID uuid.UUID) (*models.LabRecord, error) {
	var record models.LabRecord
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *LabRecords) Create(record *models.LabRecord) error {
	return r.db.Create(record).Error
}

// Update applies a partial update to an owned record and returns the
// fresh row. gorm.ErrRecordNotFound covers both missing and not-owned.
func (r *LabRecords) Update(id, userID uuid.UUID, updates map[string]interface{}) (*models.LabRecord, error) {
	record, err := r.Get(id, userID)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.Model(record).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(id, userID)
}

func (r *LabRecords) Delete(id, userID uuid.UUID) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.LabRecord{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Duplicate clones a record and its sections in a single transaction,
// so a failure partway leaves no half-copied record behind. Section
// images are intentionally not carried over to the copy.
func (r *LabRecords) Duplicate(id, userID uuid.UUID) (*models.LabRecord, error) {
	var copied *models.LabRecord

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var original models.LabRecord
		if err := tx.Preload("Sections").
			Where("id = ? AND user_id = ?", id, userID).
			First(&original).Error; err != nil {
			return err
		}

		clone := models.LabRecord{
			UserID:        userID,
			Title:         original.Title + " (Copy)",
			TemplateType:  original.TemplateType,
			Customization: original.Customization,
		}
		if err := tx.Create(&clone).Error; err != nil {
			return fmt.Errorf("failed to create record copy: %w", err)
		}

		for _, section := range original.Sections {
			sectionCopy := models.Section{
				LabRecordID: clone.ID,
				Title:       section.Title,
				Content:     section.Content,
				Order:       section.Order,
				IsHidden:    section.IsHidden,
				SectionType: section.SectionType,
			}
			if err := tx.Create(&sectionCopy).Error; err != nil {
				return fmt.Errorf("failed to copy section: %w", err)
			}
		}

		copied = &clone
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}
