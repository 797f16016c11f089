package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/labrecord/backend/internal/middleware"
	"github.com/labrecord/backend/internal/services"
	"github.com/labrecord/backend/pkg/logger"
	"github.com/labrecord/backend/pkg/utils"
)

const sessionCookieName = "session_id"

type AuthHandler struct {
	Auth     *services.AuthService
	Sessions *services.SessionService
}

func NewAuthHandler(auth *services.AuthService, sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{Auth: auth, Sessions: sessions}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return utils.Error(c, fiber.StatusBadRequest, "a valid email is required")
	}
	if len(req.Password) < 6 {
		return utils.Error(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	}
	if req.FirstName == "" || req.LastName == "" {
		return utils.Error(c, fiber.StatusBadRequest, "first and last name are required")
	}

	user, err := h.Auth.Register(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			return utils.Error(c, fiber.StatusBadRequest, "user with this email already exists")
		}
		logger.Error("register_failed", err, map[string]interface{}{"email": req.Email})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to register user")
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "token_generation_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	h.setSessionCookie(c, user.ID)

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return utils.Error(c, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			logger.Warn("login_failed", map[string]interface{}{
				"email": req.Email,
				"ip":    c.IP(),
			})
			return utils.Error(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		logger.Error("login_error", err, map[string]interface{}{"email": req.Email})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to log in")
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "token_generation_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to generate token")
	}

	h.setSessionCookie(c, user.ID)
	logger.InfoWithUser(user.ID.String(), "login_success", map[string]interface{}{"ip": c.IP()})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Logout removes the cookie session. Bearer tokens stay valid until
// they expire; there is no server-side revocation list.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(sessionCookieName); sid != "" {
		if err := h.Sessions.Destroy(sid); err != nil {
			logger.Error("session_destroy_failed", err, nil)
		}
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
		})
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "logged out"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.Success(c, fiber.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, userID uuid.UUID) {
	session, err := h.Sessions.Create(userID)
	if err != nil {
		logger.ErrorWithUser(userID.String(), "session_create_failed", err, nil)
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    session.SID,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
