package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin        = 20.0
	pdfSectionBreakY = 250.0
	pdfLineBreakY    = 270.0
	pdfIndent        = 5.0
)

// RenderPDF lays the document out with a simple cursor: fonts and
// spacing are fixed, pages break when a section or line would start
// too close to the bottom edge.
func RenderPDF(doc Document, landscape bool) ([]byte, error) {
	orientation := "P"
	if landscape {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	usableWidth := pageWidth - 2*pdfMargin

	y := pdfMargin + 5

	pdf.SetFont("Helvetica", "B", 20)
	titleWidth := pdf.GetStringWidth(doc.Title)
	pdf.Text((pageWidth-titleWidth)/2, y, doc.Title)
	y += 5
	pdf.Line(pdfMargin, y, pageWidth-pdfMargin, y)
	y += 10

	newPage := func() {
		pdf.AddPage()
		y = pdfMargin
	}

	for _, section := range doc.Sections {
		if y > pdfSectionBreakY {
			newPage()
		}

		pdf.SetFont("Helvetica", "B", 16)
		pdf.Text(pdfMargin, y, section.Title)
		y += 8

		pdf.SetFont("Helvetica", "", 11)
		if len(section.Details) > 0 {
			for _, field := range section.Details {
				if y > pdfLineBreakY {
					newPage()
				}
				pdf.Text(pdfMargin+pdfIndent, y, fmt.Sprintf("%s: %s", field.Label, field.Value))
				y += 6
			}
		} else if section.Content != "" {
			for _, line := range pdf.SplitText(section.Content, usableWidth-pdfIndent) {
				if y > pdfLineBreakY {
					newPage()
				}
				pdf.Text(pdfMargin+pdfIndent, y, line)
				y += 5
			}
		}

		y += 8
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
