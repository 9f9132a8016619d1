// Package quantity converts committed shapes into per-material quantities.
package quantity

import (
	"errors"
	"sort"

	"github.com/Mecusp/odecamtakeoff/internal/calibration"
	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/internal/project"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

// ErrNotCalibrated is returned while the plan has no scale
var ErrNotCalibrated = errors.New("plan is not calibrated")

// Unit of a group's primary value
type Unit string

const (
	UnitMeters       Unit = "m"
	UnitSquareMeters Unit = "m²"
	UnitCount        Unit = "un"
)

// UnitFor returns the unit a geometry kind is measured in
func UnitFor(kind catalog.GeometryKind) Unit {
	switch kind {
	case catalog.KindLinear:
		return UnitMeters
	case catalog.KindArea:
		return UnitSquareMeters
	}
	return UnitCount
}

// Item is one shape's contribution to its group
type Item struct {
	ShapeID string
	SheetID string
	Value   float64
	Hidden  bool
}

// Group holds the quantities of one material
type Group struct {
	Material catalog.Material
	Count    int
	Value    float64 // m, m² or units
	Unit     Unit
	// VerticalArea is Value times the material height; nil unless the
	// material is linear with a height
	VerticalArea *float64
	Items        []Item
}

// Aggregate groups entries by material in first-seen order. Measure
// materials are skipped, hidden shapes are counted.
func Aggregate(entries []project.Entry, cat *catalog.Catalog, calib *calibration.Calibration) ([]Group, error) {
	ppm, ok := calib.PixelsPerMeter()
	if !ok {
		return nil, ErrNotCalibrated
	}

	var groups []Group
	index := make(map[string]int)

	for _, e := range entries {
		mat, ok := cat.Find(e.Shape.MaterialID)
		if !ok || mat.IsMeasure() {
			continue
		}

		i, seen := index[mat.ID]
		if !seen {
			i = len(groups)
			index[mat.ID] = i
			groups = append(groups, Group{Material: mat, Unit: UnitFor(mat.Kind)})
		}

		value := shapeValue(e.Shape, ppm)
		g := &groups[i]
		g.Count++
		g.Value += value
		g.Items = append(g.Items, Item{
			ShapeID: e.Shape.ID,
			SheetID: e.SheetID,
			Value:   value,
			Hidden:  e.Shape.Hidden,
		})
	}

	for i := range groups {
		g := &groups[i]
		if g.Material.Kind != catalog.KindLinear {
			continue
		}
		if h, ok := g.Material.HeightValue(); ok {
			v := g.Value * h
			g.VerticalArea = &v
		}
	}

	return groups, nil
}

// shapeValue converts one shape using its frozen geometry kind
func shapeValue(s project.Shape, ppm float64) float64 {
	switch s.Kind {
	case catalog.KindLinear:
		return geometry.PolylineLength(s.Points) / ppm
	case catalog.KindArea:
		return geometry.PolygonArea(s.Points) / (ppm * ppm)
	}
	return 1
}

// Totals sums every group by unit
type Totals struct {
	Meters       float64
	SquareMeters float64
	Units        int
	VerticalArea float64
}

// Sum adds up the groups
func Sum(groups []Group) Totals {
	var t Totals
	for _, g := range groups {
		switch g.Unit {
		case UnitMeters:
			t.Meters += g.Value
		case UnitSquareMeters:
			t.SquareMeters += g.Value
		default:
			t.Units += g.Count
		}
		if g.VerticalArea != nil {
			t.VerticalArea += *g.VerticalArea
		}
	}
	return t
}

// LargestItems returns the n items of a group with the largest values
func LargestItems(g Group, n int) []Item {
	items := make([]Item, len(g.Items))
	copy(items, g.Items)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})

	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// Find returns the group for a material id
func Find(groups []Group, materialID string) (Group, bool) {
	for _, g := range groups {
		if g.Material.ID == materialID {
			return g, true
		}
	}
	return Group{}, false
}
