package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/models"
)

type Sections struct {
	db *gorm.DB
}

func NewSections(db *gorm.DB) *Sections {
	return &Sections{db: db}
}

// OrderUpdate pairs a section ID with its new position for bulk
// reordering.
type OrderUpdate struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}

func (r *Sections) ListByRecord(recordID uuid.UUID) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.Where("lab_record_id = ?", recordID).
		Order(`"order" ASC`).
		Find(&sections).Error
	return sections, err
}

func (r *Sections) Get(id uuid.UUID) (*models.Section, error) {
	var section models.Section
	if err := r.db.First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *Sections) Create(section *models.Section) error {
	return r.db.Create(section).Error
}

// Update applies a partial update. Concurrent updates to the same
// section resolve last-writer-wins at field granularity.
func (r *Sections) Update(id uuid.UUID, updates map[string]interface{}) (*models.Section, error) {
	section, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := r.db.Model(section).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(id)
}

func (r *Sections) Delete(id uuid.UUID) (bool, error) {
	result := r.db.Delete(&models.Section{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Reorder applies the given positions in one transaction. Updates are
// scoped to the record, so IDs belonging to other records are ignored.
func (r *Sections) Reorder(recordID uuid.UUID, updates []OrderUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			err := tx.Model(&models.Section{}).
				Where("id = ? AND lab_record_id = ?", update.ID, recordID).
				Update("order", update.Order).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// OwnerOf resolves a section to the user who owns its parent record.
// Handlers use this to re-check tenancy on every section mutation.
func (r *Sections) OwnerOf(sectionID uuid.UUID) (userID, recordID uuid.UUID, err error) {
	var row struct {
		UserID      uuid.UUID
		LabRecordID uuid.UUID
	}
	err = r.db.Model(&models.Section{}).
		Select("lab_records.user_id AS user_id, sections.lab_record_id AS lab_record_id").
		Joins("JOIN lab_records ON lab_records.id = sections.lab_record_id").
		Where("sections.id = ?", sectionID).
		Take(&row).Error
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return row.UserID, row.LabRecordID, nil
}
