package handlers

import (
	"io"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/labrecord/backend/internal/storage"
	"github.com/labrecord/backend/pkg/utils"
)

// UploadsHandler streams stored images back out, regardless of which
// backend holds them.
type UploadsHandler struct {
	Store storage.ImageStore
}

func NewUploadsHandler(store storage.ImageStore) *UploadsHandler {
	return &UploadsHandler{Store: store}
}

func (h *UploadsHandler) Serve(c *fiber.Ctx) error {
	filename := c.Params("filename")

	reader, err := h.Store.Open(c.Context(), filename)
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, "file not found")
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed to read file")
	}

	if contentType := mime.TypeByExtension(filepath.Ext(filename)); contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Send(data)
}
