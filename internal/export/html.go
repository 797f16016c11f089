package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/labrecord/backend/internal/models"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderHTML produces the preview body. Text sections are treated as
// GitHub-flavored markdown; code sections are shown verbatim.
func RenderHTML(doc Document) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`<article class="lab-record">` + "\n")
	fmt.Fprintf(&buf, "<h1>%s</h1>\n<hr>\n", html.EscapeString(doc.Title))

	for _, section := range doc.Sections {
		fmt.Fprintf(&buf, `<section class="record-section">`+"\n")
		fmt.Fprintf(&buf, "<h2>%s</h2>\n", html.EscapeString(section.Title))

		switch {
		case section.SectionType == models.SectionStudentDetails:
			if len(section.Details) > 0 {
				buf.WriteString(`<dl class="student-details">` + "\n")
				for _, field := range section.Details {
					fmt.Fprintf(&buf, "<dt>%s</dt><dd>%s</dd>\n",
						html.EscapeString(field.Label), html.EscapeString(field.Value))
				}
				buf.WriteString("</dl>\n")
			}
		case section.SectionType == models.SectionCode:
			if section.Content != "" {
				fmt.Fprintf(&buf, "<pre><code>%s</code></pre>\n", html.EscapeString(section.Content))
			}
		default:
			if section.Content != "" {
				if err := markdown.Convert([]byte(section.Content), &buf); err != nil {
					return nil, fmt.Errorf("failed to render markdown: %w", err)
				}
			}
		}

		for _, image := range section.Images {
			writeImage(&buf, image)
		}

		buf.WriteString("</section>\n")
	}

	buf.WriteString("</article>\n")
	return buf.Bytes(), nil
}

func writeImage(buf *bytes.Buffer, image models.SectionImage) {
	fmt.Fprintf(buf, `<figure style="text-align:%s">`+"\n", image.Alignment)
	fmt.Fprintf(buf, `<img src="%s" style="width:%d%%" alt="">`+"\n",
		html.EscapeString(image.ImageURL), image.Width)
	if image.Caption != nil && *image.Caption != "" {
		fmt.Fprintf(buf, "<figcaption>%s</figcaption>\n", html.EscapeString(*image.Caption))
	}
	buf.WriteString("</figure>\n")
}
