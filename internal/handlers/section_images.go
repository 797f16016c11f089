package handlers

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/middleware"
	"github.com/labrecord/backend/internal/models"
	"github.com/labrecord/backend/internal/repository"
	"github.com/labrecord/backend/internal/storage"
	"github.com/labrecord/backend/pkg/logger"
	"github.com/labrecord/backend/pkg/utils"
)

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".svg":  true,
}

var allowedImageMimes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/svg+xml": true,
}

type SectionImageHandler struct {
	DB       *gorm.DB
	Sections *repository.Sections
	Images   *repository.SectionImages
	Store    storage.ImageStore
	MaxSize  int64
}

func NewSectionImageHandler(db *gorm.DB, store storage.ImageStore, maxSize int64) *SectionImageHandler {
	return &SectionImageHandler{
		DB:       db,
		Sections: repository.NewSections(db),
		Images:   repository.NewSectionImages(db),
		Store:    store,
		MaxSize:  maxSize,
	}
}

func (h *SectionImageHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	sectionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid section id")
	}

	ownerID, _, err := h.Sections.OwnerOf(sectionID)
	if err != nil || ownerID != user.ID {
		return utils.Error(c, fiber.StatusNotFound, "section not found")
	}

	images, err := h.Images.ListBySection(sectionID)
	if err != nil {
		logger.ErrorWithUser(user.ID.String(), "images_list_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to list images")
	}
	return utils.Success(c, fiber.StatusOK, images)
}

// Upload validates size and type before anything touches the store,
// so an oversized or disguised file never lands on disk.
func (h *SectionImageHandler) Upload(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	sectionID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid section id")
	}

	ownerID, _, err := h.Sections.OwnerOf(sectionID)
	if err != nil || ownerID != user.ID {
		return utils.Error(c, fiber.StatusNotFound, "section not found")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "image file is required")
	}

	if fileHeader.Size > h.MaxSize {
		return utils.Error(c, fiber.StatusBadRequest, "image exceeds the 5MB size limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageExts[ext] || !allowedImageMimes[contentType] {
		return utils.Error(c, fiber.StatusBadRequest, "only jpeg, jpg, png, gif and svg images are allowed")
	}

	alignment := models.AlignCenter
	if v := c.FormValue("alignment"); v != "" {
		alignment = models.ImageAlignment(v)
		if !alignment.IsValid() {
			return utils.Error(c, fiber.StatusBadRequest, "invalid alignment")
		}
	}

	width := 100
	if v := c.FormValue("width"); v != "" {
		width, err = strconv.Atoi(v)
		if err != nil || !models.IsValidImageWidth(width) {
			return utils.Error(c, fiber.StatusBadRequest, "width must be 25, 50, 75 or 100")
		}
	}

	var order int
	if v := c.FormValue("order"); v != "" {
		order, err = strconv.Atoi(v)
		if err != nil || order < 0 {
			return utils.Error(c, fiber.StatusBadRequest, "order must be a non-negative integer")
		}
	} else {
		existing, err := h.Images.ListBySection(sectionID)
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed to determine image order")
		}
		order = len(existing)
	}

	filename, err := storage.GenerateFilename(fileHeader.Filename)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to store image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to read upload")
	}
	defer file.Close()

	if err := h.Store.Save(c.Context(), filename, file, fileHeader.Size, contentType); err != nil {
		logger.ErrorWithUser(user.ID.String(), "image_store_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to store image")
	}

	image := models.SectionImage{
		SectionID: sectionID,
		ImageURL:  "/uploads/" + filename,
		Alignment: alignment,
		Width:     width,
		Order:     order,
	}
	if caption := c.FormValue("caption"); caption != "" {
		image.Caption = &caption
	}

	if err := h.Images.Create(&image); err != nil {
		logger.ErrorWithUser(user.ID.String(), "image_create_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to save image")
	}

	logger.InfoWithUser(user.ID.String(), "image_uploaded", map[string]interface{}{
		"section_id": sectionID,
		"filename":   filename,
		"size":       fileHeader.Size,
	})
	return utils.Success(c, fiber.StatusCreated, image)
}

func (h *SectionImageHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)

	imageID, err := parseUUIDParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid image id")
	}

	ownerID, err := h.Images.OwnerOf(imageID)
	if err != nil || ownerID != user.ID {
		return utils.Error(c, fiber.StatusNotFound, "image not found")
	}

	image, err := h.Images.Get(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Error(c, fiber.StatusNotFound, "image not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed to load image")
	}

	if _, err := h.Images.Delete(imageID); err != nil {
		logger.ErrorWithUser(user.ID.String(), "image_delete_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to delete image")
	}

	// best effort: the row is gone either way
	if filename := strings.TrimPrefix(image.ImageURL, "/uploads/"); filename != image.ImageURL {
		if err := h.Store.Delete(c.Context(), filename); err != nil {
			logger.WarnWithUser(user.ID.String(), "image_file_cleanup_failed", map[string]interface{}{
				"filename": filename,
				"error":    err.Error(),
			})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
