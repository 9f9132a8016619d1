package project

import (
	"slices"

	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

// Shape is a committed measurement owned by exactly one sheet. Kind is
// copied from the material when the shape is created and does not follow
// later catalog edits.
type Shape struct {
	ID         string
	MaterialID string
	Points     []geometry.Point
	Closed     bool
	Kind       catalog.GeometryKind
	Hidden     bool
}

// Vertices returns a copy of the shape's points
func (s Shape) Vertices() []geometry.Point {
	return slices.Clone(s.Points)
}

// PixelLength returns the polyline length of the shape's points
func (s Shape) PixelLength() float64 {
	return geometry.PolylineLength(s.Points)
}

// PixelArea returns the enclosed area of a closed shape, 0 otherwise
func (s Shape) PixelArea() float64 {
	if !s.Closed {
		return 0
	}
	return geometry.PolygonArea(s.Points)
}

func (s Shape) clone() Shape {
	s.Points = slices.Clone(s.Points)
	return s
}

// Sheet is an independent drawing surface
type Sheet struct {
	ID     string
	Name   string
	shapes []Shape
}

// Shapes returns copies of the sheet's shapes in insertion order
func (s *Sheet) Shapes() []Shape {
	out := make([]Shape, len(s.shapes))
	for i, shape := range s.shapes {
		out[i] = shape.clone()
	}
	return out
}

// Len returns the number of shapes on the sheet
func (s *Sheet) Len() int {
	return len(s.shapes)
}

func (s *Sheet) indexOf(id string) int {
	return slices.IndexFunc(s.shapes, func(shape Shape) bool { return shape.ID == id })
}
