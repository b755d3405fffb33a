package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gobearing/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gobearing",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		fmt.Fprintln(out, "Shaft Bearing Reaction and Selection Tool")
		fmt.Fprintln(out, "Ball bearing L10 life basis (load-life exponent 3)")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
