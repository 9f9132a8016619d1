package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/internal/config"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the materials available for drawing",
	Long:  "Print the configured material catalog (or the built-in one) with kinds, colors, line widths and heights.",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		if cat, err = catalog.LoadFile(cfg.CatalogFile); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(cat, units.ParseLocale(cfg.Locale)))
	return nil
}

func renderCatalog(cat *catalog.Catalog, f *units.Formatter) string {
	materials := cat.List()
	rows := make([][]string, 0, len(materials))
	for _, m := range materials {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Render("■")
		rows = append(rows, []string{
			m.ID,
			m.Name,
			m.Category.Label(),
			string(m.Kind),
			swatch + " " + m.Color,
			optionalMeters(f, m.LineWidth),
			optionalMeters(f, m.Height),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Nome", "Categoria", "Tipo", "Cor", "Largura", "Altura").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

func optionalMeters(f *units.Formatter, v *float64) string {
	if v == nil {
		return "-"
	}
	return f.Meters(*v)
}
