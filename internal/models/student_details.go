package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StudentDetails is the structured content variant behind
// SectionStudentDetails. The content column stores it JSON-encoded;
// text and code sections store their content verbatim.
type StudentDetails struct {
	Name    string `json:"name,omitempty"`
	RollNo  string `json:"rollNo,omitempty"`
	Class   string `json:"class,omitempty"`
	Date    string `json:"date,omitempty"`
	Subject string `json:"subject,omitempty"`
	Batch   string `json:"batch,omitempty"`
}

// DetailField pairs a display label with its value, in the fixed order
// the preview and exports render them.
type DetailField struct {
	Label string
	Value string
}

func (d StudentDetails) Fields() []DetailField {
	return []DetailField{
		{Label: "Name", Value: d.Name},
		{Label: "Roll No", Value: d.RollNo},
		{Label: "Class", Value: d.Class},
		{Label: "Date", Value: d.Date},
		{Label: "Subject", Value: d.Subject},
		{Label: "Batch", Value: d.Batch},
	}
}

func (d StudentDetails) IsEmpty() bool {
	return d == StudentDetails{}
}

func (d StudentDetails) Encode() (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ParseStudentDetails decodes a student_details content payload. Callers
// that render (preview/export) skip the section on error rather than
// failing the whole document.
func ParseStudentDetails(content string) (StudentDetails, error) {
	var details StudentDetails
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return details, nil
	}
	if err := json.Unmarshal([]byte(trimmed), &details); err != nil {
		return StudentDetails{}, fmt.Errorf("decode student details: %w", err)
	}
	return details, nil
}
