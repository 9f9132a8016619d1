package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Mecusp/odecamtakeoff/internal/config"
	"github.com/Mecusp/odecamtakeoff/version"
)

var rootCmd = &cobra.Command{
	Use:   "odecam",
	Short: "Quantity takeoff from construction plan images",
	Long: `odecam measures walls, floors, finishes and fixtures drawn over a
calibrated plan image and aggregates the quantities per material.
Sessions are replayed from event scripts; use odecam-gui to draw interactively.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .odecam.yaml)")
	flags.BoolP("verbose", "v", false, "log session events to stderr")
	flags.String("locale", "", "number formatting locale (default pt-BR)")
	flags.String("catalog", "", "material catalog TOML file")
	flags.Float64("snap-threshold", 0, "snap radius in image pixels (default 6)")

	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("locale", flags.Lookup("locale"))
	_ = viper.BindPFlag("catalog_file", flags.Lookup("catalog"))
	_ = viper.BindPFlag("snap_threshold", flags.Lookup("snap-threshold"))
}

func initConfig() {
	cfgFile, _ := rootCmd.Flags().GetString("config")
	if err := config.ReadIn(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
