package services

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	ldap "github.com/go-ldap/ldap/v3"

	"github.com/labrecord/backend/internal/config"
	"github.com/labrecord/backend/pkg/logger"
)

// LDAPService authenticates against a directory server when enabled.
// It is an optional alternative to local password accounts.
type LDAPService struct {
	Cfg *config.Config
}

func NewLDAPService(cfg *config.Config) *LDAPService {
	return &LDAPService{Cfg: cfg}
}

// LDAPProfile is what a successful directory bind yields; the auth
// service maps it onto a local user row.
type LDAPProfile struct {
	DN        string
	Email     string
	FirstName string
	LastName  string
}

func (s *LDAPService) IsEnabled() bool {
	return s.Cfg != nil && s.Cfg.LDAP.Enabled
}

func (s *LDAPService) Authenticate(email, password string) (*LDAPProfile, error) {
	if !s.IsEnabled() {
		return nil, errors.New("LDAP is not enabled")
	}
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	cfg := s.Cfg.LDAP

	l, err := ldap.DialURL(cfg.URL)
	if err != nil {
		logger.Warn("ldap_dial_failed", map[string]interface{}{
			"url":   cfg.URL,
			"error": err.Error(),
		})
		return nil, errors.New("failed to connect to LDAP server")
	}
	defer l.Close()

	if strings.HasPrefix(strings.ToLower(cfg.URL), "ldaps://") {
		if err := l.StartTLS(&tls.Config{InsecureSkipVerify: true}); err != nil {
			return nil, errors.New("failed to start TLS")
		}
	}

	if cfg.BindDN != "" && cfg.BindPass != "" {
		if err := l.Bind(cfg.BindDN, cfg.BindPass); err != nil {
			logger.Warn("ldap_bind_failed", map[string]interface{}{
				"bind_dn": cfg.BindDN,
				"error":   err.Error(),
			})
			return nil, errors.New("failed to bind to LDAP server")
		}
	}

	emailField := cfg.EmailField
	if emailField == "" {
		emailField = "mail"
	}

	searchRequest := ldap.NewSearchRequest(
		cfg.SearchBase,
		ldap.ScopeWholeSubtree,
		ldap.DerefAlways,
		0,
		0,
		false,
		fmt.Sprintf(cfg.UserFilter, ldap.EscapeFilter(email)),
		[]string{"dn", emailField, "givenName", "sn", "cn"},
		nil,
	)

	sr, err := l.Search(searchRequest)
	if err != nil {
		logger.Warn("ldap_search_failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return nil, errors.New("failed to search for user")
	}
	if len(sr.Entries) == 0 {
		return nil, errors.New("invalid credentials")
	}

	entry := sr.Entries[0]
	if err := l.Bind(entry.DN, password); err != nil {
		logger.Warn("ldap_user_bind_failed", map[string]interface{}{
			"user_dn": entry.DN,
			"error":   err.Error(),
		})
		return nil, errors.New("invalid credentials")
	}

	profile := &LDAPProfile{
		DN:        entry.DN,
		Email:     getAttributeValue(entry, emailField),
		FirstName: getAttributeValue(entry, "givenName"),
		LastName:  getAttributeValue(entry, "sn"),
	}
	if profile.Email == "" {
		profile.Email = email
	}
	if profile.FirstName == "" {
		if cn := getAttributeValue(entry, "cn"); cn != "" {
			parts := strings.SplitN(cn, " ", 2)
			profile.FirstName = parts[0]
			if len(parts) > 1 && profile.LastName == "" {
				profile.LastName = parts[1]
			}
		}
	}

	logger.Info("ldap_auth_success", map[string]interface{}{
		"email":   profile.Email,
		"user_dn": entry.DN,
	})
	return profile, nil
}

func getAttributeValue(entry *ldap.Entry, attr string) string {
	values := entry.GetAttributeValues(attr)
	if len(values) > 0 {
		return values[0]
	}
	return ""
}
