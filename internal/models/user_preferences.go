package models

import "github.com/google/uuid"

const (
	DefaultLanguage = "en"
	DefaultFont     = "Inter"
	DefaultTheme    = "academic"
)

func IsValidLanguage(lang string) bool {
	switch lang {
	case "en", "de", "es":
		return true
	default:
		return false
	}
}

type UserPreferences struct {
	BaseModel
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	Language     string    `json:"language" gorm:"type:varchar(10);not null;default:'en'"`
	DefaultFont  string    `json:"defaultFont" gorm:"type:varchar(50);default:'Inter'"`
	DefaultTheme string    `json:"defaultTheme" gorm:"type:varchar(50);default:'academic'"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
