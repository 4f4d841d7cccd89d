// Package cli wires the command-line interface for the trip scheduler.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eldsim",
		Short: "HOS-constrained ELD trip schedule simulator",
		Long: `eldsim simulates a property-carrying CMV trip under federal
hours-of-service rules and produces the driver's complete ELD log:
duty segments, daily summaries, and trip totals.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewSimulateCommand())

	return rootCmd
}
