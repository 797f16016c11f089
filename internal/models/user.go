package models

type User struct {
	BaseModel
	Email           string  `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    string  `json:"-" gorm:"type:text"`
	FirstName       string  `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName        string  `json:"lastName" gorm:"type:varchar(100);not null"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty" gorm:"type:text"`

	LabRecords  []LabRecord      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Preferences *UserPreferences `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
