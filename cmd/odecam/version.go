package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mecusp/odecamtakeoff/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "odecam "+version.GetFullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
