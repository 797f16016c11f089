package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/labrecord/backend/internal/export"
	"github.com/labrecord/backend/internal/middleware"
	"github.com/labrecord/backend/internal/models"
	"github.com/labrecord/backend/internal/repository"
	"github.com/labrecord/backend/pkg/logger"
	"github.com/labrecord/backend/pkg/utils"
)

type ExportHandler struct {
	Records  *repository.LabRecords
	Sections *repository.Sections
	Images   *repository.SectionImages
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{
		Records:  repository.NewLabRecords(db),
		Sections: repository.NewSections(db),
		Images:   repository.NewSectionImages(db),
	}
}

func (h *ExportHandler) buildDocument(c *fiber.Ctx) (*export.Document, *models.LabRecord, error) {
	user := middleware.GetCurrentUser(c)

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil, nil, utils.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	record, err := h.Records.Get(id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, utils.Error(c, fiber.StatusNotFound, "lab record not found")
		}
		return nil, nil, utils.Error(c, fiber.StatusInternalServerError, "failed to load lab record")
	}

	sections, err := h.Sections.ListByRecord(record.ID)
	if err != nil {
		return nil, nil, utils.Error(c, fiber.StatusInternalServerError, "failed to load sections")
	}

	images := make(map[uuid.UUID][]models.SectionImage, len(sections))
	for _, section := range sections {
		sectionImages, err := h.Images.ListBySection(section.ID)
		if err != nil {
			return nil, nil, utils.Error(c, fiber.StatusInternalServerError, "failed to load images")
		}
		if len(sectionImages) > 0 {
			images[section.ID] = sectionImages
		}
	}

	doc := export.BuildDocument(record, sections, images)
	return &doc, record, nil
}

func (h *ExportHandler) Preview(c *fiber.Ctx) error {
	doc, _, err := h.buildDocument(c)
	if doc == nil {
		return err
	}

	body, err := export.RenderHTML(*doc)
	if err != nil {
		logger.Error("preview_render_failed", err, nil)
		return utils.Error(c, fiber.StatusInternalServerError, "failed to render preview")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body)
}

func (h *ExportHandler) Export(c *fiber.Ctx) error {
	format := c.Query("format", "pdf")
	landscape := c.Query("orientation") == "landscape"

	doc, record, err := h.buildDocument(c)
	if doc == nil {
		return err
	}

	var (
		data        []byte
		contentType string
		extension   string
	)

	switch format {
	case "pdf":
		data, err = export.RenderPDF(*doc, landscape)
		contentType = "application/pdf"
		extension = "pdf"
	case "docx":
		data, err = export.RenderDOCX(*doc)
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		extension = "docx"
	default:
		return utils.Error(c, fiber.StatusBadRequest, "format must be pdf or docx")
	}
	if err != nil {
		logger.Error("export_render_failed", err, map[string]interface{}{
			"record_id": record.ID,
			"format":    format,
		})
		return utils.Error(c, fiber.StatusInternalServerError, "failed to render export")
	}

	filename := fmt.Sprintf("%s.%s", sanitizeFilename(record.Title), extension)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(data)
}

func sanitizeFilename(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		default:
			return r
		}
	}, strings.TrimSpace(title))
	if cleaned == "" {
		return "lab-record"
	}
	return cleaned
}
