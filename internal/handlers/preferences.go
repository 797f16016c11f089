package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/middleware"
	"github.com/labrecord/backend/internal/models"
	"github.com/labrecord/backend/internal/repository"
	"github.com/labrecord/backend/pkg/logger"
	"github.com/labrecord/backend/pkg/utils"
)

type PreferencesHandler struct {
	Prefs *repository.Preferences
}

func NewPreferencesHandler(db *gorm.DB) *PreferencesHandler {
	return &PreferencesHandler{Prefs: repository.NewPreferences(db)}
}

type updatePreferencesRequest struct {
	Language     *string `json:"language"`
	DefaultFont  *string `json:"defaultFont"`
	DefaultTheme *string `json:"defaultTheme"`
}

func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	prefs, err := h.Prefs.Get(user.ID)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "preferences_get_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to load preferences")
	}
	return utils.Success(c, fiber.StatusOK, prefs)
}

func (h *PreferencesHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	var req updatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Language != nil {
		if !models.IsValidLanguage(*req.Language) {
			return utils.Error(c, fiber.StatusBadRequest, "unsupported language")
		}
		updates["language"] = *req.Language
	}
	if req.DefaultFont != nil {
		updates["default_font"] = *req.DefaultFont
	}
	if req.DefaultTheme != nil {
		updates["default_theme"] = *req.DefaultTheme
	}
	if len(updates) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "no preference fields provided")
	}

	prefs, err := h.Prefs.Upsert(user.ID, updates)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "preferences_update_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update preferences")
	}
	return utils.Success(c, fiber.StatusOK, prefs)
}
