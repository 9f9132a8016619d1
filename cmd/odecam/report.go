package main

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Mecusp/odecamtakeoff/internal/quantity"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BFFF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5252"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// renderReport draws the quantities table with a totals footer
func renderReport(rows []quantity.Row, totals quantity.Totals, f *units.Formatter) string {
	data := make([][]string, 0, len(rows)+1)
	for _, r := range rows {
		vertical := "-"
		if r.HasVertical {
			vertical = r.VerticalArea
		}
		data = append(data, []string{r.MaterialName, r.CategoryLabel, strconv.Itoa(r.Count), r.Primary, vertical})
	}
	last := len(data)
	data = append(data, []string{
		"Total", "",
		f.Count(totals.Units),
		f.Meters(totals.Meters) + " / " + f.SquareMeters(totals.SquareMeters),
		f.SquareMeters(totals.VerticalArea),
	})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Material", "Categoria", "Qtd", "Quantitativo", "Área vertical").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == last:
				return totalStyle
			}
			return cellStyle
		})
	return t.Render()
}

// writeCSV writes one line per material with unformatted values
func writeCSV(w io.Writer, groups []quantity.Group) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"material_id", "material", "category", "count", "value", "unit", "vertical_area_m2"}); err != nil {
		return err
	}

	for _, g := range groups {
		vertical := ""
		if g.VerticalArea != nil {
			vertical = formatFloat(*g.VerticalArea)
		}
		record := []string{
			g.Material.ID,
			g.Material.Name,
			string(g.Material.Category),
			strconv.Itoa(g.Count),
			formatFloat(g.Value),
			string(g.Unit),
			vertical,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
