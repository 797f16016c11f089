package models

import "github.com/google/uuid"

type TemplateType string

const (
	TemplatePhysics   TemplateType = "physics"
	TemplateChemistry TemplateType = "chemistry"
	TemplateComputer  TemplateType = "computer"
)

func (t TemplateType) IsValid() bool {
	switch t {
	case TemplatePhysics, TemplateChemistry, TemplateComputer:
		return true
	default:
		return false
	}
}

type LabRecord struct {
	BaseModel
	UserID       uuid.UUID              `json:"userId" gorm:"type:uuid;not null;index"`
	Title        string                 `json:"title" gorm:"type:varchar(255);not null"`
	TemplateType TemplateType           `json:"templateType" gorm:"type:varchar(50);not null"`
	Customization map[string]interface{} `json:"customization,omitempty" gorm:"type:jsonb;serializer:json"`

	User     User      `json:"-" gorm:"foreignKey:UserID"`
	Sections []Section `json:"-" gorm:"foreignKey:LabRecordID;constraint:OnDelete:CASCADE"`
}
