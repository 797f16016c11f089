package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/models"
	"github.com/labrecord/backend/internal/repository"
	"github.com/labrecord/backend/pkg/logger"
	"github.com/labrecord/backend/pkg/utils"
)

var (
	ErrDuplicateUser = errors.New("user with this email already exists")

	// ErrInvalidCredentials covers unknown email, password-less
	// accounts, and wrong password alike so responses never reveal
	// which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	users *repository.Users
	ldap  *LDAPService
}

func NewAuthService(users *repository.Users, ldap *LDAPService) *AuthService {
	return &AuthService{users: users, ldap: ldap}
}

func (s *AuthService) Register(email, password, firstName, lastName string) (*models.User, error) {
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrDuplicateUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	logger.InfoWithUser(user.ID.String(), "user_registered", map[string]interface{}{
		"email": email,
	})
	return user, nil
}

func (s *AuthService) Login(email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user != nil && user.PasswordHash != "" {
		if utils.CheckPassword(password, user.PasswordHash) {
			return user, nil
		}
	}

	if s.ldap != nil && s.ldap.IsEnabled() {
		return s.loginViaLDAP(email, password)
	}

	return nil, ErrInvalidCredentials
}

// loginViaLDAP provisions a local row on first successful directory
// bind. LDAP accounts carry no local password hash.
func (s *AuthService) loginViaLDAP(email, password string) (*models.User, error) {
	profile, err := s.ldap.Authenticate(email, password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(profile.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			Email:     profile.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		}
		if err := s.users.Create(user); err != nil {
			return nil, err
		}
		logger.InfoWithUser(user.ID.String(), "ldap_user_provisioned", map[string]interface{}{
			"email": profile.Email,
		})
	} else if err != nil {
		return nil, err
	}

	return user, nil
}
