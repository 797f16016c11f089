package models

import (
	"time"

	"github.com/google/uuid"
)

// Session backs the cookie-session mechanism. Bearer tokens are
// stateless; logout only removes the session row.
type Session struct {
	SID       string                 `json:"sid" gorm:"column:sid;type:varchar(64);primaryKey"`
	UserID    uuid.UUID              `json:"userId" gorm:"type:uuid;not null;index"`
	Sess      map[string]interface{} `json:"sess" gorm:"type:jsonb;serializer:json"`
	ExpiresAt time.Time              `json:"expire" gorm:"column:expire;not null;index"`
	CreatedAt time.Time              `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Session) TableName() string {
	return "sessions"
}
