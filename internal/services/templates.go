package services

import "github.com/labrecord/backend/internal/models"

// SectionSeed describes one section of a template before it is bound
// to a record.
type SectionSeed struct {
	Title       string
	SectionType models.SectionType
	Content     string
}

// DefaultSections returns the ordered seed sections for a template
// type. The slice index is the section's position.
func DefaultSections(templateType models.TemplateType) []SectionSeed {
	switch templateType {
	case models.TemplateComputer:
		return []SectionSeed{
			{Title: "Student Details", SectionType: models.SectionStudentDetails, Content: "{}"},
			{Title: "Aim", SectionType: models.SectionText},
			{Title: "Theory", SectionType: models.SectionText},
			{Title: "Code", SectionType: models.SectionCode},
			{Title: "Output", SectionType: models.SectionText},
			{Title: "Conclusion", SectionType: models.SectionText},
		}
	default:
		// physics and chemistry share the classic experiment layout
		return []SectionSeed{
			{Title: "Student Details", SectionType: models.SectionStudentDetails, Content: "{}"},
			{Title: "Aim", SectionType: models.SectionText},
			{Title: "Apparatus", SectionType: models.SectionText},
			{Title: "Theory", SectionType: models.SectionText},
			{Title: "Procedure", SectionType: models.SectionText},
			{Title: "Observations", SectionType: models.SectionText},
			{Title: "Results", SectionType: models.SectionText},
			{Title: "Conclusion", SectionType: models.SectionText},
		}
	}
}

// SeedSections materializes the template for a freshly created record.
func SeedSections(record *models.LabRecord) []models.Section {
	seeds := DefaultSections(record.TemplateType)
	sections := make([]models.Section, 0, len(seeds))
	for i, seed := range seeds {
		sections = append(sections, models.Section{
			LabRecordID: record.ID,
			Title:       seed.Title,
			Content:     seed.Content,
			Order:       i,
			SectionType: seed.SectionType,
		})
	}
	return sections
}
