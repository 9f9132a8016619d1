// Package project stores committed shapes across the sheets of a takeoff.
package project

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/Mecusp/odecamtakeoff/internal/catalog"
)

var (
	// ErrInvalidShape is returned when a shape violates its kind's minimum
	// point count or references an unknown material
	ErrInvalidShape = errors.New("invalid shape")
	// ErrLastSheet is returned when deleting the only remaining sheet
	ErrLastSheet = errors.New("cannot delete the last sheet")
	// ErrUnknownSheet is returned for sheet ids that do not exist
	ErrUnknownSheet = errors.New("unknown sheet")
)

// Scope selects which shapes an aggregation reads
type Scope int

const (
	ScopeProject Scope = iota
	ScopeActiveSheet
)

// String returns the configuration name of the scope
func (s Scope) String() string {
	if s == ScopeActiveSheet {
		return "active"
	}
	return "project"
}

// ParseScope accepts "active" or "project"
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "project":
		return ScopeProject, nil
	case "active", "sheet":
		return ScopeActiveSheet, nil
	}
	return ScopeProject, fmt.Errorf("unknown scope %q (expected active or project)", s)
}

// Entry pairs a shape with the sheet holding it
type Entry struct {
	SheetID string
	Shape   Shape
}

// Project is the set of sheets sharing one catalog and calibration.
// There is always at least one sheet and exactly one active sheet.
type Project struct {
	catalog  *catalog.Catalog
	sheets   []*Sheet
	active   string
	sheetSeq int
}

// New creates a project with one empty default sheet
func New(cat *catalog.Catalog) *Project {
	p := &Project{catalog: cat}
	p.Reset()
	return p
}

// Catalog returns the material catalog shapes are validated against
func (p *Project) Catalog() *catalog.Catalog {
	return p.catalog
}

// Reset discards every sheet and starts over with one empty sheet
func (p *Project) Reset() {
	p.sheets = nil
	p.sheetSeq = 0
	p.CreateSheet("")
}

// Add validates shape and appends it to the active sheet. An empty ID is
// replaced with a fresh one. Nothing is stored when validation fails.
func (p *Project) Add(shape Shape) (Shape, error) {
	m, ok := p.catalog.Find(shape.MaterialID)
	if !ok {
		return Shape{}, fmt.Errorf("%w: %w %q", ErrInvalidShape, catalog.ErrUnknownMaterial, shape.MaterialID)
	}
	if shape.Kind == "" {
		shape.Kind = m.Kind
	}
	if shape.Kind != m.Kind {
		return Shape{}, fmt.Errorf("%w: kind %s does not match material %q (%s)", ErrInvalidShape, shape.Kind, m.ID, m.Kind)
	}
	if len(shape.Points) < shape.Kind.MinPoints() {
		return Shape{}, fmt.Errorf("%w: %s shape needs at least %d points, got %d",
			ErrInvalidShape, shape.Kind, shape.Kind.MinPoints(), len(shape.Points))
	}
	if shape.Closed && shape.Kind != catalog.KindArea {
		return Shape{}, fmt.Errorf("%w: only area shapes can be closed", ErrInvalidShape)
	}
	shape.Closed = shape.Kind == catalog.KindArea

	if shape.ID == "" {
		shape.ID = uuid.NewString()
	}
	if _, _, exists := p.FindShape(shape.ID); exists {
		return Shape{}, fmt.Errorf("%w: duplicate id %q", ErrInvalidShape, shape.ID)
	}

	stored := shape.clone()
	sheet := p.Active()
	sheet.shapes = append(sheet.shapes, stored)
	return stored.clone(), nil
}

// RemoveLast drops the most recent shape on the active sheet
func (p *Project) RemoveLast() (Shape, bool) {
	sheet := p.Active()
	if len(sheet.shapes) == 0 {
		return Shape{}, false
	}
	last := sheet.shapes[len(sheet.shapes)-1]
	sheet.shapes = sheet.shapes[:len(sheet.shapes)-1]
	return last, true
}

// RemoveOne deletes a shape by id from whichever sheet holds it
func (p *Project) RemoveOne(id string) bool {
	for _, sheet := range p.sheets {
		if i := sheet.indexOf(id); i >= 0 {
			sheet.shapes = slices.Delete(sheet.shapes, i, i+1)
			return true
		}
	}
	return false
}

// RemoveByMaterial deletes every shape of a material across all sheets and
// returns how many were removed
func (p *Project) RemoveByMaterial(materialID string) int {
	removed := 0
	for _, sheet := range p.sheets {
		before := len(sheet.shapes)
		sheet.shapes = slices.DeleteFunc(sheet.shapes, func(s Shape) bool { return s.MaterialID == materialID })
		removed += before - len(sheet.shapes)
	}
	return removed
}

// ToggleVisibility flips the hidden flag of one shape, searching all sheets.
// It returns the new hidden state and whether the shape was found.
func (p *Project) ToggleVisibility(id string) (bool, bool) {
	for _, sheet := range p.sheets {
		if i := sheet.indexOf(id); i >= 0 {
			sheet.shapes[i].Hidden = !sheet.shapes[i].Hidden
			return sheet.shapes[i].Hidden, true
		}
	}
	return false, false
}

// ToggleVisibilityForMaterial shows every shape of the material when all of
// them are hidden, and hides all of them otherwise. It returns the resulting
// hidden state and the number of shapes affected.
func (p *Project) ToggleVisibilityForMaterial(materialID string) (bool, int) {
	count := 0
	allHidden := true
	for _, sheet := range p.sheets {
		for _, s := range sheet.shapes {
			if s.MaterialID != materialID {
				continue
			}
			count++
			if !s.Hidden {
				allHidden = false
			}
		}
	}
	if count == 0 {
		return false, 0
	}

	hide := !allHidden
	for _, sheet := range p.sheets {
		for i := range sheet.shapes {
			if sheet.shapes[i].MaterialID == materialID {
				sheet.shapes[i].Hidden = hide
			}
		}
	}
	return hide, count
}

// ClearSheet removes every shape from the active sheet
func (p *Project) ClearSheet() int {
	sheet := p.Active()
	n := len(sheet.shapes)
	sheet.shapes = nil
	return n
}

// FindShape returns a shape by id and the id of the sheet holding it
func (p *Project) FindShape(id string) (Shape, string, bool) {
	for _, sheet := range p.sheets {
		if i := sheet.indexOf(id); i >= 0 {
			return sheet.shapes[i].clone(), sheet.ID, true
		}
	}
	return Shape{}, "", false
}

// Entries lists shapes in sheet order for the requested scope
func (p *Project) Entries(scope Scope) []Entry {
	var entries []Entry
	for _, sheet := range p.sheets {
		if scope == ScopeActiveSheet && sheet.ID != p.active {
			continue
		}
		for _, s := range sheet.shapes {
			entries = append(entries, Entry{SheetID: sheet.ID, Shape: s.clone()})
		}
	}
	return entries
}

// ShapeCount returns the number of shapes across all sheets
func (p *Project) ShapeCount() int {
	n := 0
	for _, sheet := range p.sheets {
		n += len(sheet.shapes)
	}
	return n
}
