package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/models"
)

const sessionTTL = 7 * 24 * time.Hour

// SessionService backs cookie sessions. Expiry is lazy: expired rows
// are removed when next looked up, not by a background job.
type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

func (s *SessionService) Create(userID uuid.UUID) (*models.Session, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	session := &models.Session{
		SID:       hex.EncodeToString(buf),
		UserID:    userID,
		Sess:      map[string]interface{}{"userId": userID.String()},
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Get(sid string) (*models.Session, error) {
	var session models.Session
	if err := s.db.First(&session, "sid = ?", sid).Error; err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		if err := s.Destroy(sid); err != nil {
			return nil, err
		}
		return nil, gorm.ErrRecordNotFound
	}
	return &session, nil
}

func (s *SessionService) Destroy(sid string) error {
	err := s.db.Delete(&models.Session{}, "sid = ?", sid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
