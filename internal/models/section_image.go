package models

import "github.com/google/uuid"

type ImageAlignment string

const (
	AlignLeft   ImageAlignment = "left"
	AlignCenter ImageAlignment = "center"
	AlignRight  ImageAlignment = "right"
)

func (a ImageAlignment) IsValid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	default:
		return false
	}
}

// IsValidImageWidth accepts the percentage steps the editor offers.
func IsValidImageWidth(width int) bool {
	switch width {
	case 25, 50, 75, 100:
		return true
	default:
		return false
	}
}

type SectionImage struct {
	BaseModel
	SectionID uuid.UUID      `json:"sectionId" gorm:"type:uuid;not null;index"`
	ImageURL  string         `json:"imageUrl" gorm:"type:text;not null"`
	Caption   *string        `json:"caption,omitempty" gorm:"type:text"`
	Alignment ImageAlignment `json:"alignment" gorm:"type:varchar(20);not null;default:'center'"`
	Width     int            `json:"width" gorm:"not null;default:100"`
	Order     int            `json:"order" gorm:"column:order;not null"`

	Section Section `json:"-" gorm:"foreignKey:SectionID"`
}
