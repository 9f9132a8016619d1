package main

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/Mecusp/odecamtakeoff/internal/quantity"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

var quantityHeaders = []string{"Material", "Qtd", "Quantitativo", "Área vertical"}

// QuantityPanel lists the aggregated quantities per material
type QuantityPanel struct {
	rows  []quantity.Row
	table *widget.Table
}

// NewQuantityPanel creates an empty panel
func NewQuantityPanel() *QuantityPanel {
	p := &QuantityPanel{}
	p.table = widget.NewTable(
		func() (int, int) { return len(p.rows) + 1, len(quantityHeaders) },
		func() fyne.CanvasObject { return widget.NewLabel("Área vertical 000,00") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(p.cell(id.Row, id.Col))
		},
	)
	p.table.SetColumnWidth(0, 180)
	return p
}

// Table returns the widget
func (p *QuantityPanel) Table() *widget.Table {
	return p.table
}

// SetRows replaces the listed rows
func (p *QuantityPanel) SetRows(rows []quantity.Row) {
	p.rows = rows
	p.table.Refresh()
}

func (p *QuantityPanel) cell(row, col int) string {
	if row == 0 {
		return quantityHeaders[col]
	}
	r := p.rows[row-1]
	switch col {
	case 0:
		return r.MaterialName
	case 1:
		return strconv.Itoa(r.Count)
	case 2:
		return r.Primary
	}
	if r.HasVertical {
		return r.VerticalArea
	}
	return "-"
}

func parseHeight(text string) (float64, error) {
	return units.ParseDecimal(text)
}
