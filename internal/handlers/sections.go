package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/middleware"
	"github.com/labrecord/backend/internal/models"
	"github.com/labrecord/backend/internal/repository"
	"github.com/labrecord/backend/pkg/logger"
	"github.com/labrecord/backend/pkg/utils"
)

type SectionHandler struct {
	DB       *gorm.DB
	Records  *repository.LabRecords
	Sections *repository.Sections
}

func NewSectionHandler(db *gorm.DB) *SectionHandler {
	return &SectionHandler{
		DB:       db,
		Records:  repository.NewLabRecords(db),
		Sections: repository.NewSections(db),
	}
}

type createSectionRequest struct {
	Title       string `json:"title"`
	SectionType string `json:"sectionType"`
	Content     string `json:"content"`
	Order       *int   `json:"order"`
}

type updateSectionRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Order    *int    `json:"order"`
	IsHidden *bool   `json:"isHidden"`
}

type reorderRequest struct {
	SectionOrders []repository.OrderUpdate `json:"sectionOrders"`
}

func (h *SectionHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	recordID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	if _, err := h.Records.Get(recordID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "lab record not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed to load lab record")
	}

	sections, err := h.Sections.ListByRecord(recordID)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "sections_list_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to list sections")
	}
	return utils.Success(c, fiber.StatusOK, sections)
}

func (h *SectionHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	recordID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	if _, err := h.Records.Get(recordID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "lab record not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed to load lab record")
	}

	var req createSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return utils.Error(c, fiber.StatusBadRequest, "title is required")
	}
	sectionType := models.SectionType(req.SectionType)
	if !sectionType.IsValid() {
		return utils.Error(c, fiber.StatusBadRequest, "invalid section type")
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		existing, err := h.Sections.ListByRecord(recordID)
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed to determine section order")
		}
		order = len(existing)
	}

	section := models.Section{
		LabRecordID: recordID,
		Title:       req.Title,
		Content:     req.Content,
		Order:       order,
		SectionType: sectionType,
	}
	if err := h.Sections.Create(&section); err != nil {
		logger.ErrorWithUser(user.ID.String(), "section_create_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to create section")
	}
	return utils.Success(c, fiber.StatusCreated, section)
}

// requireSectionOwner re-derives ownership from the section itself, so
// a mutation can never ride on a stale or foreign section ID. Missing
// and not-owned are both reported as not found.
func (h *SectionHandler) requireSectionOwner(c *fiber.Ctx) (uuid.UUID, bool, error) {
	user := middleware.GetCurrentUser(c)

	id, parseErr := parseUUIDParam(c, "id")
	if parseErr != nil {
		return uuid.Nil, false, utils.Error(c, fiber.StatusBadRequest, "invalid section id")
	}

	ownerID, _, lookupErr := h.Sections.OwnerOf(id)
	if lookupErr != nil {
		if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, utils.Error(c, fiber.StatusNotFound, "section not found")
		}
		return uuid.Nil, false, utils.Error(c, fiber.StatusInternalServerError, "failed to load section")
	}
	if ownerID != user.ID {
		return uuid.Nil, false, utils.Error(c, fiber.StatusNotFound, "section not found")
	}
	return id, true, nil
}

func (h *SectionHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	id, ok, err := h.requireSectionOwner(c)
	if !ok {
		return err
	}

	var req updateSectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Order != nil {
		updates["order"] = *req.Order
	}
	if req.IsHidden != nil {
		updates["is_hidden"] = *req.IsHidden
	}

	section, err := h.Sections.Update(id, updates)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "section_update_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update section")
	}
	return utils.Success(c, fiber.StatusOK, section)
}

func (h *SectionHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	id, ok, err := h.requireSectionOwner(c)
	if !ok {
		return err
	}

	deleted, err := h.Sections.Delete(id)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "section_delete_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete section")
	}
	if !deleted {
		return utils.Error(c, fiber.StatusNotFound, "section not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SectionHandler) Reorder(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	recordID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	if _, err := h.Records.Get(recordID, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "lab record not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed to load lab record")
	}

	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.SectionOrders) == 0 {
		return utils.Error(c, fiber.StatusBadRequest, "no section orders provided")
	}

	if err := h.Sections.Reorder(recordID, req.SectionOrders); err != nil {
		logger.ErrorWithUser(user.ID.String(), "sections_reorder_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to reorder sections")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
