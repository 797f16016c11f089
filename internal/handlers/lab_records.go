package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/middleware"
	"github.com/labrecord/backend/internal/models"
	"github.com/labrecord/backend/internal/repository"
	"github.com/labrecord/backend/internal/services"
	"github.com/labrecord/backend/pkg/logger"
	"github.com/labrecord/backend/pkg/utils"
)

type LabRecordHandler struct {
	DB      *gorm.DB
	Records *repository.LabRecords
}

func NewLabRecordHandler(db *gorm.DB) *LabRecordHandler {
	return &LabRecordHandler{DB: db, Records: repository.NewLabRecords(db)}
}

type createRecordRequest struct {
	Title         string                 `json:"title"`
	TemplateType  string                 `json:"templateType"`
	Customization map[string]interface{} `json:"customization"`
}

type updateRecordRequest struct {
	Title         *string                `json:"title"`
	Customization map[string]interface{} `json:"customization"`
}

func (h *LabRecordHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	records, err := h.Records.List(user.ID)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "lab_records_list_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to list lab records")
	}
	return utils.Success(c, fiber.StatusOK, records)
}

func (h *LabRecordHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	record, err := h.Records.Get(id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "lab record not found")
		}
		logger.ErrorWithUser(user.ID.String(), "lab_record_get_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to load lab record")
	}
	return utils.Success(c, fiber.StatusOK, record)
}

// Create makes the record and seeds its template sections in one
// transaction.
func (h *LabRecordHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	var req createRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return utils.Error(c, fiber.StatusBadRequest, "title is required")
	}
	templateType := models.TemplateType(req.TemplateType)
	if !templateType.IsValid() {
		return utils.Error(c, fiber.StatusBadRequest, "invalid template type")
	}

	record := models.LabRecord{
		UserID:        user.ID,
		Title:         req.Title,
		TemplateType:  templateType,
		Customization: req.Customization,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		sections := services.SeedSections(&record)
		for i := range sections {
			if err := tx.Create(&sections[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "lab_record_create_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to create lab record")
	}

	logger.InfoWithUser(user.ID.String(), "lab_record_created", map[string]interface{}{
		"record_id":     record.ID,
		"template_type": templateType,
	})
	return utils.Success(c, fiber.StatusCreated, record)
}

func (h *LabRecordHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	var req updateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return utils.Error(c, fiber.StatusBadRequest, "title cannot be empty")
		}
		updates["title"] = *req.Title
	}
	if req.Customization != nil {
		updates["customization"] = req.Customization
	}

	record, err := h.Records.Update(id, user.ID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "lab record not found")
		}
		logger.ErrorWithUser(user.ID.String(), "lab_record_update_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to update lab record")
	}
	return utils.Success(c, fiber.StatusOK, record)
}

func (h *LabRecordHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	deleted, err := h.Records.Delete(id, user.ID)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "lab_record_delete_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete lab record")
	}
	if !deleted {
		return utils.Error(c, fiber.StatusNotFound, "lab record not found")
	}

	logger.InfoWithUser(user.ID.String(), "lab_record_deleted", map[string]interface{}{"record_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *LabRecordHandler) Duplicate(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	clone, err := h.Records.Duplicate(id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "lab record not found")
		}
		logger.ErrorWithUser(user.ID.String(), "lab_record_duplicate_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to duplicate lab record")
	}

	logger.InfoWithUser(user.ID.String(), "lab_record_duplicated", map[string]interface{}{
		"source_id": id,
		"copy_id":   clone.ID,
	})
	return utils.Success(c, fiber.StatusCreated, clone)
}
