package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
)

// RenderDOCX mirrors the PDF traversal: centered bold title, bold
// section headings, detail fields as bold-label lines. Font sizes are
// given in half-points.
func RenderDOCX(doc Document) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	title := w.AddParagraph().Justification("center")
	title.AddText(doc.Title).Bold().Size("40")
	w.AddParagraph()

	for _, section := range doc.Sections {
		heading := w.AddParagraph()
		heading.AddText(section.Title).Bold().Size("32")

		if len(section.Details) > 0 {
			for _, field := range section.Details {
				para := w.AddParagraph()
				para.AddText(field.Label + ": ").Bold().Size("22")
				para.AddText(field.Value).Size("22")
			}
		} else if section.Content != "" {
			for _, line := range strings.Split(section.Content, "\n") {
				para := w.AddParagraph()
				para.AddText(line).Size("22")
			}
		}

		w.AddParagraph()
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render DOCX: %w", err)
	}
	return buf.Bytes(), nil
}
