package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gobearing/internal/logging"
	"github.com/alexiusacademia/gobearing/internal/report"
	"github.com/alexiusacademia/gobearing/internal/shaft"
)

var (
	batchFile   string
	batchOutput string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate many independent load cases from a file",
	Long: `Evaluate every load case in an XLSX workbook or a JSON file and
print the selected bearings for each.

XLSX: the first sheet's first row names the inputs (rpm, p1, p2, pt, pr,
w, lf, life_hours, distance1, distance2, distance3) in any order; an
optional "case" column names each row.

JSON: an array of objects with the same keys and an optional "name".

Cases with any input not greater than zero are reported and skipped.

Examples:
  gobearing batch -f cases.xlsx
  gobearing batch -f cases.json -o results.xlsx`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "Path to .xlsx or .json load cases [required]")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Write the results to an .xlsx workbook")
	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cases, err := report.LoadCases(batchFile)
	if err != nil {
		return fmt.Errorf("loading cases: %w", err)
	}

	out := cmd.OutOrStdout()

	var valid []report.Case
	var skipped int
	for _, c := range cases {
		if err := c.Input.Validate(); err != nil {
			fmt.Fprintf(out, "  Skipping %s: %v\n", c.Name, err)
			skipped++
			continue
		}
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		return errors.New("no valid load cases")
	}

	report.Evaluate(valid)
	logging.Logger.Debug("batch evaluated",
		zap.String("file", batchFile),
		zap.Int("cases", len(valid)),
		zap.Int("skipped", skipped),
	)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     BATCH BEARING SELECTION")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Case\tR1 (N)\tR2 (N)\tC1 (N)\tC2 (N)\tBearing 1\tBearing 2\n")
	fmt.Fprintf(w, "  ────\t──────\t──────\t──────\t──────\t─────────\t─────────\n")
	for _, c := range valid {
		r := c.Result
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n", c.Name,
			shaft.FormatNumber(r.R1), shaft.FormatNumber(r.R2),
			shaft.FormatNumber(r.C1), shaft.FormatNumber(r.C2),
			r.Bearing1Designation, r.Bearing2Designation)
	}
	w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %d case(s) evaluated, %d skipped\n", len(valid), skipped)

	if batchOutput != "" {
		if err := report.SaveWorkbook(batchOutput, valid); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Fprintf(out, "  Results written to: %s\n", batchOutput)
	}
	fmt.Fprintln(out)
	return nil
}
