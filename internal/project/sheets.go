package project

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// CreateSheet appends a new empty sheet and makes it active. A blank name
// is replaced with "Folha N".
func (p *Project) CreateSheet(name string) *Sheet {
	p.sheetSeq++
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Folha %d", p.sheetSeq)
	}

	sheet := &Sheet{ID: uuid.NewString(), Name: name}
	p.sheets = append(p.sheets, sheet)
	p.active = sheet.ID
	return sheet
}

// DeleteSheet removes a sheet and its shapes. The last remaining sheet
// cannot be deleted. When the active sheet is deleted the first remaining
// sheet becomes active.
func (p *Project) DeleteSheet(id string) error {
	i := p.sheetIndex(id)
	if i < 0 {
		return fmt.Errorf("%w %q", ErrUnknownSheet, id)
	}
	if len(p.sheets) == 1 {
		return ErrLastSheet
	}

	p.sheets = slices.Delete(p.sheets, i, i+1)
	if p.active == id {
		p.active = p.sheets[0].ID
	}
	return nil
}

// RenameSheet changes a sheet's name. Blank names are ignored.
func (p *Project) RenameSheet(id, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	sheet := p.Sheet(id)
	if sheet == nil {
		return false
	}
	sheet.Name = name
	return true
}

// SetActive switches the active sheet
func (p *Project) SetActive(id string) error {
	if p.sheetIndex(id) < 0 {
		return fmt.Errorf("%w %q", ErrUnknownSheet, id)
	}
	p.active = id
	return nil
}

// Active returns the active sheet
func (p *Project) Active() *Sheet {
	return p.sheets[p.sheetIndex(p.active)]
}

// ActiveID returns the id of the active sheet
func (p *Project) ActiveID() string {
	return p.active
}

// Sheet returns the sheet with the given id, or nil
func (p *Project) Sheet(id string) *Sheet {
	if i := p.sheetIndex(id); i >= 0 {
		return p.sheets[i]
	}
	return nil
}

// Sheets returns the sheets in creation order
func (p *Project) Sheets() []*Sheet {
	return slices.Clone(p.sheets)
}

func (p *Project) sheetIndex(id string) int {
	return slices.IndexFunc(p.sheets, func(s *Sheet) bool { return s.ID == id })
}
