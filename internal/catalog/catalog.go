// Package catalog holds the ordered set of materials shapes are drawn with.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrUnknownMaterial is returned when a material id does not resolve
var ErrUnknownMaterial = errors.New("unknown material")

//go:embed default.toml
var defaultCatalog []byte

// Catalog is the ordered, id-indexed material list shared by the project,
// the drawing machine and the aggregation engine
type Catalog struct {
	materials []*Material
	index     map[string]*Material
}

type document struct {
	Materials []Material `toml:"material"`
}

// New creates a catalog from the given materials, preserving their order
func New(materials ...Material) (*Catalog, error) {
	c := &Catalog{
		materials: make([]*Material, 0, len(materials)),
		index:     make(map[string]*Material, len(materials)),
	}

	for _, m := range materials {
		if err := validate(m); err != nil {
			return nil, err
		}
		if _, exists := c.index[m.ID]; exists {
			return nil, fmt.Errorf("duplicate material id %q", m.ID)
		}
		entry := m.clone()
		c.materials = append(c.materials, &entry)
		c.index[m.ID] = &entry
	}

	return c, nil
}

// Default returns the built-in starter catalog
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Parse decodes a TOML catalog with one [[material]] table per entry
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(doc.Materials) == 0 {
		return nil, fmt.Errorf("catalog has no materials")
	}
	return New(doc.Materials...)
}

// LoadFile reads a TOML catalog from disk
func LoadFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

// List returns copies of all materials in catalog order
func (c *Catalog) List() []Material {
	out := make([]Material, len(c.materials))
	for i, m := range c.materials {
		out[i] = m.clone()
	}
	return out
}

// Len returns the number of materials
func (c *Catalog) Len() int {
	return len(c.materials)
}

// Find looks up a material by id
func (c *Catalog) Find(id string) (Material, bool) {
	m, ok := c.index[id]
	if !ok {
		return Material{}, false
	}
	return m.clone(), true
}

// UpdateHeight sets the height of a linear material. A height <= 0 clears
// it. Non-linear or unknown materials are left untouched. Returns whether
// the material was updated.
func (c *Catalog) UpdateHeight(id string, height float64) bool {
	m, ok := c.index[id]
	if !ok || m.Kind != KindLinear {
		return false
	}
	if height <= 0 {
		m.Height = nil
		return true
	}
	h := height
	m.Height = &h
	return true
}

func validate(m Material) error {
	if m.ID == "" {
		return fmt.Errorf("material %q has no id", m.Name)
	}
	if !m.Category.Valid() {
		return fmt.Errorf("material %q: unknown category %q", m.ID, m.Category)
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("material %q: unknown geometry kind %q", m.ID, m.Kind)
	}
	if m.Height != nil && m.Kind != KindLinear {
		return fmt.Errorf("material %q: only linear materials can have a height", m.ID)
	}
	return nil
}
