package export

import (
	"sort"

	"github.com/google/uuid"

	"github.com/labrecord/backend/internal/models"
)

// Document is the shared intermediate every output format renders
// from. Building it once means the preview, the PDF, and the DOCX all
// agree on which sections appear and in what order.
type Document struct {
	Title    string
	Sections []RenderSection
}

type RenderSection struct {
	Title       string
	SectionType models.SectionType
	Content     string
	Details     []models.DetailField
	Images      []models.SectionImage
}

// BuildDocument selects the visible sections in display order and
// decodes structured content. Hidden sections are dropped here and
// nowhere else. A student-details section with a malformed payload
// keeps its title but renders no fields.
func BuildDocument(record *models.LabRecord, sections []models.Section, images map[uuid.UUID][]models.SectionImage) Document {
	visible := make([]models.Section, 0, len(sections))
	for _, section := range sections {
		if !section.IsHidden {
			visible = append(visible, section)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Order < visible[j].Order
	})

	doc := Document{Title: record.Title}
	for _, section := range visible {
		rendered := RenderSection{
			Title:       section.Title,
			SectionType: section.SectionType,
			Images:      images[section.ID],
		}

		if section.SectionType == models.SectionStudentDetails {
			details, err := models.ParseStudentDetails(section.Content)
			if err == nil {
				for _, field := range details.Fields() {
					if field.Value != "" {
						rendered.Details = append(rendered.Details, field)
					}
				}
			}
		} else {
			rendered.Content = section.Content
		}

		doc.Sections = append(doc.Sections, rendered)
	}
	return doc
}
