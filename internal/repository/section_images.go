package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/models"
)

type SectionImages struct {
	db *gorm.DB
}

func NewSectionImages(db *gorm.DB) *SectionImages {
	return &SectionImages{db: db}
}

func (r *SectionImages) ListBySection(sectionID uuid.UUID) ([]models.SectionImage, error) {
	var images []models.SectionImage
	err := r.db.Where("section_id = ?", sectionID).
		Order(`"order" ASC`).
		Find(&images).Error
	return images, err
}

func (r *SectionImages) Get(id uuid.UUID) (*models.SectionImage, error) {
	var image models.SectionImage
	if err := r.db.First(&image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *SectionImages) Create(image *models.SectionImage) error {
	return r.db.Create(image).Error
}

func (r *SectionImages) Delete(id uuid.UUID) (bool, error) {
	result := r.db.Delete(&models.SectionImage{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// OwnerOf walks image -> section -> record to find the owning user.
func (r *SectionImages) OwnerOf(imageID uuid.UUID) (uuid.UUID, error) {
	var row struct {
		UserID uuid.UUID
	}
	err := r.db.Model(&models.SectionImage{}).
		Select("lab_records.user_id AS user_id").
		Joins("JOIN sections ON sections.id = section_images.section_id").
		Joins("JOIN lab_records ON lab_records.id = sections.lab_record_id").
		Where("section_images.id = ?", imageID).
		Take(&row).Error
	if err != nil {
		return uuid.Nil, err
	}
	return row.UserID, nil
}
