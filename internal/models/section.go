package models

import "github.com/google/uuid"

type SectionType string

const (
	SectionText           SectionType = "text"
	SectionCode           SectionType = "code"
	SectionStudentDetails SectionType = "student_details"
)

func (s SectionType) IsValid() bool {
	switch s {
	case SectionText, SectionCode, SectionStudentDetails:
		return true
	default:
		return false
	}
}

// Order is not required to be unique within a record, but reorder
// operations rewrite it to match list position (dense sequence).
type Section struct {
	BaseModel
	LabRecordID uuid.UUID   `json:"labRecordId" gorm:"type:uuid;not null;index"`
	Title       string      `json:"title" gorm:"type:varchar(255);not null"`
	Content     string      `json:"content" gorm:"type:text;not null;default:''"`
	Order       int         `json:"order" gorm:"column:order;not null"`
	IsHidden    bool        `json:"isHidden" gorm:"not null;default:false"`
	SectionType SectionType `json:"sectionType" gorm:"type:varchar(50);not null"`

	LabRecord LabRecord      `json:"-" gorm:"foreignKey:LabRecordID"`
	Images    []SectionImage `json:"-" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}
