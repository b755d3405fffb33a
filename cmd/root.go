package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobearing/internal/logging"
	"github.com/alexiusacademia/gobearing/internal/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gobearing",
	Short: "Shaft Bearing Reaction and Selection Tool",
	Long: `gobearing - Go Shaft Bearing Selector

A CLI tool for sizing the two bearings of a shaft that carries a gear
between the bearings and an overhung belt pulley.

This tool helps mechanical designers:
  - Resolve the vertical and horizontal bearing reactions
  - Compute the required dynamic load capacity for a target life
  - Select ball bearing designations from the built-in catalog
  - Export diagrams, PDF reports and XLSX workbooks
  - Serve the calculator over HTTP

Capacities follow the L10 load-life relation for ball bearings (exponent 3).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			return logging.InitDevelopment()
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gobearing v%-45s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Shaft Bearing Selector                               ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the bearing reactions and bearing selection")
		fmt.Fprintln(out, "  of a gear and pulley shaft.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Vertical, horizontal and resultant bearing reactions")
		fmt.Fprintln(out, "    • Required dynamic load capacity for a target life")
		fmt.Fprintln(out, "    • Catalog bearing selection")
		fmt.Fprintln(out, "    • Batch evaluation from XLSX or JSON load cases")
		fmt.Fprintln(out, "    • HTTP service with Prometheus metrics")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gobearing --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Sync()
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log calculation details to stderr")
}
