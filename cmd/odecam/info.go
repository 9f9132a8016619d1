package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mecusp/odecamtakeoff/internal/config"
	"github.com/Mecusp/odecamtakeoff/pkg/plan"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

var infoCmd = &cobra.Command{
	Use:   "info [image]",
	Short: "Display information about a plan image",
	Long:  "Decode a plan image and show its format and pixel size, the coordinate space script events use.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	f := units.ParseLocale(cfg.Locale)

	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	defer p.Release()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Plan Image Information"))
	fmt.Fprintf(out, "File: %s\n", p.Path)
	fmt.Fprintf(out, "Format: %s\n\n", p.Format)
	fmt.Fprintf(out, "Width: %d px\n", p.Width)
	fmt.Fprintf(out, "Height: %d px\n", p.Height)
	fmt.Fprintf(out, "Megapixels: %s\n", f.Number(float64(p.Width*p.Height)/1e6))
	return nil
}
