package editor

import (
	"errors"
	"sync"
	"time"
)

// SaveStatus reflects where local edits stand relative to the server.
type SaveStatus string

const (
	StatusSaved   SaveStatus = "saved"
	StatusSaving  SaveStatus = "saving"
	StatusUnsaved SaveStatus = "unsaved"
)

const defaultSaveDelay = 3 * time.Second

var ErrSectionNotFound = errors.New("section not found")

// Editor holds the in-memory working copy of one record. Edits mark
// state dirty and arm a debounce timer; the flush pushes the title and
// every dirty section in one pass, so a burst of keystrokes becomes a
// single round of writes.
type Editor struct {
	client *Client

	mu         sync.Mutex
	record     LabRecord
	sections   []Section
	selectedID string

	titleDirty    bool
	dirtySections map[string]bool
	status        SaveStatus

	saveDelay time.Duration
	timer     *time.Timer
}

// Open loads an existing record into a new editor.
func Open(client *Client, recordID string) (*Editor, error) {
	record, err := client.GetRecord(recordID)
	if err != nil {
		return nil, err
	}
	sections, err := client.ListSections(recordID)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		client:        client,
		record:        *record,
		sections:      sections,
		dirtySections: make(map[string]bool),
		status:        StatusSaved,
		saveDelay:     defaultSaveDelay,
	}
	if len(sections) > 0 {
		e.selectedID = sections[0].ID
	}
	return e, nil
}

// Create makes a new record (the server seeds its template sections)
// and opens it.
func Create(client *Client, title, templateType string) (*Editor, error) {
	record, err := client.CreateRecord(title, templateType)
	if err != nil {
		return nil, err
	}
	return Open(client, record.ID)
}

// SetSaveDelay overrides the debounce interval. Zero restores the
// default.
func (e *Editor) SetSaveDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if d <= 0 {
		d = defaultSaveDelay
	}
	e.saveDelay = d
}

func (e *Editor) Status() SaveStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Editor) Record() LabRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.record
}

func (e *Editor) Sections() []Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Section, len(e.sections))
	copy(out, e.sections)
	return out
}

func (e *Editor) Selected() (Section, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, section := range e.sections {
		if section.ID == e.selectedID {
			return section, true
		}
	}
	return Section{}, false
}

func (e *Editor) Select(sectionID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, section := range e.sections {
		if section.ID == sectionID {
			e.selectedID = sectionID
			return nil
		}
	}
	return ErrSectionNotFound
}

// SetTitle edits the record title locally and schedules a save.
func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.record.Title == title {
		return
	}
	e.record.Title = title
	e.titleDirty = true
	e.markUnsavedLocked()
}

// SetContent edits a section's content locally and schedules a save.
func (e *Editor) SetContent(sectionID, content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.sections {
		if e.sections[i].ID == sectionID {
			if e.sections[i].Content == content {
				return nil
			}
			e.sections[i].Content = content
			e.dirtySections[sectionID] = true
			e.markUnsavedLocked()
			return nil
		}
	}
	return ErrSectionNotFound
}

// SetSectionTitle renames a section locally and schedules a save.
func (e *Editor) SetSectionTitle(sectionID, title string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.sections {
		if e.sections[i].ID == sectionID {
			if e.sections[i].Title == title {
				return nil
			}
			e.sections[i].Title = title
			e.dirtySections[sectionID] = true
			e.markUnsavedLocked()
			return nil
		}
	}
	return ErrSectionNotFound
}

// SetHidden toggles a section's visibility locally and schedules a save.
func (e *Editor) SetHidden(sectionID string, hidden bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.sections {
		if e.sections[i].ID == sectionID {
			if e.sections[i].IsHidden == hidden {
				return nil
			}
			e.sections[i].IsHidden = hidden
			e.dirtySections[sectionID] = true
			e.markUnsavedLocked()
			return nil
		}
	}
	return ErrSectionNotFound
}

// AddSection appends a section at the end of the list. Structural
// changes go to the server immediately rather than through the
// debounce.
func (e *Editor) AddSection(title, sectionType string) (*Section, error) {
	e.mu.Lock()
	recordID := e.record.ID
	order := len(e.sections)
	e.mu.Unlock()

	section, err := e.client.CreateSection(recordID, title, sectionType, order)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.sections = append(e.sections, *section)
	e.selectedID = section.ID
	e.mu.Unlock()
	return section, nil
}

// RemoveSection deletes a section. If it was selected, selection falls
// back to the first remaining section.
func (e *Editor) RemoveSection(sectionID string) error {
	if err := e.client.DeleteSection(sectionID); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.sections[:0]
	for _, section := range e.sections {
		if section.ID != sectionID {
			kept = append(kept, section)
		}
	}
	e.sections = kept
	delete(e.dirtySections, sectionID)

	if e.selectedID == sectionID {
		e.selectedID = ""
		if len(e.sections) > 0 {
			e.selectedID = e.sections[0].ID
		}
	}
	return nil
}

// Move shifts a section to a new list position and persists the full
// dense order immediately.
func (e *Editor) Move(sectionID string, to int) error {
	e.mu.Lock()
	from := -1
	for i, section := range e.sections {
		if section.ID == sectionID {
			from = i
			break
		}
	}
	if from == -1 {
		e.mu.Unlock()
		return ErrSectionNotFound
	}
	if to < 0 {
		to = 0
	}
	if to >= len(e.sections) {
		to = len(e.sections) - 1
	}

	moved := e.sections[from]
	e.sections = append(e.sections[:from], e.sections[from+1:]...)
	e.sections = append(e.sections[:to], append([]Section{moved}, e.sections[to:]...)...)

	updates := make([]OrderUpdate, len(e.sections))
	for i := range e.sections {
		e.sections[i].Order = i
		updates[i] = OrderUpdate{ID: e.sections[i].ID, Order: i}
	}
	recordID := e.record.ID
	e.mu.Unlock()

	return e.client.ReorderSections(recordID, updates)
}

func (e *Editor) markUnsavedLocked() {
	e.status = StatusUnsaved
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.saveDelay, func() {
		_ = e.Flush()
	})
}

// Flush pushes all pending edits now. New edits arriving during the
// flush leave the editor unsaved again.
func (e *Editor) Flush() error {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if !e.titleDirty && len(e.dirtySections) == 0 {
		e.mu.Unlock()
		return nil
	}

	e.status = StatusSaving
	titleDirty := e.titleDirty
	title := e.record.Title
	recordID := e.record.ID

	pending := make([]Section, 0, len(e.dirtySections))
	for i := range e.sections {
		if e.dirtySections[e.sections[i].ID] {
			pending = append(pending, e.sections[i])
		}
	}
	e.titleDirty = false
	e.dirtySections = make(map[string]bool)
	e.mu.Unlock()

	var firstErr error
	if titleDirty {
		if _, err := e.client.UpdateRecordTitle(recordID, title); err != nil {
			firstErr = err
		}
	}
	for _, section := range pending {
		_, err := e.client.UpdateSection(section.ID, map[string]interface{}{
			"title":    section.Title,
			"content":  section.Content,
			"isHidden": section.IsHidden,
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	e.mu.Lock()
	if firstErr != nil {
		// leave the edits marked dirty so the next flush retries
		e.titleDirty = e.titleDirty || titleDirty
		for _, section := range pending {
			e.dirtySections[section.ID] = true
		}
		e.status = StatusUnsaved
	} else if e.status == StatusSaving {
		e.status = StatusSaved
	}
	e.mu.Unlock()

	return firstErr
}
