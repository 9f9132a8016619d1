package quantity

import (
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

// Row is one formatted report line
type Row struct {
	MaterialID    string
	MaterialName  string
	CategoryLabel string
	Count         int
	Primary       string
	VerticalArea  string
	HasVertical   bool
}

// Report formats groups for a table or document renderer
func Report(groups []Group, f *units.Formatter) []Row {
	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		name := g.Material.Name
		if name == "" {
			name = g.Material.ID
		}

		row := Row{
			MaterialID:    g.Material.ID,
			MaterialName:  name,
			CategoryLabel: g.Material.Category.Label(),
			Count:         g.Count,
			Primary:       FormatValue(f, g.Unit, g.Value),
		}
		if g.VerticalArea != nil {
			row.VerticalArea = f.SquareMeters(*g.VerticalArea)
			row.HasVertical = true
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatValue formats a value in the given unit
func FormatValue(f *units.Formatter, unit Unit, value float64) string {
	switch unit {
	case UnitMeters:
		return f.Meters(value)
	case UnitSquareMeters:
		return f.SquareMeters(value)
	}
	return f.Count(int(value))
}
