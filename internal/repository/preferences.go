package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/models"
)

type Preferences struct {
	db *gorm.DB
}

func NewPreferences(db *gorm.DB) *Preferences {
	return &Preferences{db: db}
}

// Get returns stored preferences, or defaults when the user has never
// saved any. Reading defaults does not create a row.
func (r *Preferences) Get(userID uuid.UUID) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := r.db.Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserPreferences{
			UserID:       userID,
			Language:     models.DefaultLanguage,
			DefaultFont:  models.DefaultFont,
			DefaultTheme: models.DefaultTheme,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// Upsert creates the row on first write, merging updates over defaults.
func (r *Preferences) Upsert(userID uuid.UUID, updates map[string]interface{}) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	err := r.db.Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = models.UserPreferences{
			UserID:       userID,
			Language:     models.DefaultLanguage,
			DefaultFont:  models.DefaultFont,
			DefaultTheme: models.DefaultTheme,
		}
		if err := r.db.Create(&prefs).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := r.db.Model(&prefs).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	err = r.db.Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}
