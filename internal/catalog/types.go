package catalog

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Category groups materials for reporting
type Category string

const (
	CategoryWall      Category = "wall"
	CategoryFloor     Category = "floor"
	CategoryStructure Category = "structure"
	CategoryFinish    Category = "finish"
	CategoryRoof      Category = "roof"
	CategoryMeasure   Category = "measure"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryMeasure,
	CategoryWall,
	CategoryFinish,
	CategoryStructure,
	CategoryFloor,
	CategoryRoof,
}

var categoryLabels = map[Category]string{
	CategoryWall:      "Paredes",
	CategoryFloor:     "Pisos",
	CategoryStructure: "Estrutura",
	CategoryFinish:    "Acabamentos",
	CategoryRoof:      "Cobertura",
	CategoryMeasure:   "Medições",
}

// Label returns the report heading for the category
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Category) UnmarshalText(text []byte) error {
	v := Category(text)
	if !v.Valid() {
		return fmt.Errorf("unknown category %q", text)
	}
	*c = v
	return nil
}

// GeometryKind decides how a material is drawn and measured
type GeometryKind string

const (
	KindPoint  GeometryKind = "point"
	KindLinear GeometryKind = "linear"
	KindArea   GeometryKind = "area"
)

// MinPoints returns the fewest points a committed shape of this kind needs
func (k GeometryKind) MinPoints() int {
	switch k {
	case KindPoint:
		return 1
	case KindLinear:
		return 2
	case KindArea:
		return 3
	}
	return 0
}

// Valid reports whether k is a known kind
func (k GeometryKind) Valid() bool {
	return k.MinPoints() > 0
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *GeometryKind) UnmarshalText(text []byte) error {
	v := GeometryKind(text)
	if !v.Valid() {
		return fmt.Errorf("unknown geometry kind %q", text)
	}
	*k = v
	return nil
}

// Material is a catalog entry. Kind never changes after creation; Height
// is only meaningful for linear materials.
type Material struct {
	ID          string       `toml:"id"`
	Name        string       `toml:"name"`
	Category    Category     `toml:"category"`
	Kind        GeometryKind `toml:"kind"`
	Color       string       `toml:"color"`
	LineWidth   *float64     `toml:"line_width,omitempty"`   // real-world stroke width in meters
	FillOpacity *float64     `toml:"fill_opacity,omitempty"` // 0..1
	Height      *float64     `toml:"height,omitempty"`       // meters
}

// IsMeasure reports whether the material only produces temporary measurements
func (m Material) IsMeasure() bool {
	return m.Category == CategoryMeasure
}

// HeightValue returns the height and whether one is set
func (m Material) HeightValue() (float64, bool) {
	if m.Height == nil || *m.Height <= 0 {
		return 0, false
	}
	return *m.Height, true
}

// RGBA returns the material color with the given alpha. Unparseable colors
// fall back to mid gray.
func (m Material) RGBA(alpha uint8) color.NRGBA {
	c, err := colorful.Hex(m.Color)
	if err != nil {
		return color.NRGBA{R: 128, G: 128, B: 128, A: alpha}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

// FillAlpha converts FillOpacity to an alpha value, defaulting to 25%
func (m Material) FillAlpha() uint8 {
	opacity := 0.25
	if m.FillOpacity != nil {
		opacity = *m.FillOpacity
	}
	opacity = max(0, min(1, opacity))
	return uint8(opacity * 255)
}

func (m Material) clone() Material {
	m.LineWidth = clonePtr(m.LineWidth)
	m.FillOpacity = clonePtr(m.FillOpacity)
	m.Height = clonePtr(m.Height)
	return m
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
