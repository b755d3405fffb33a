package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gobearing/internal/diagram"
	"github.com/alexiusacademia/gobearing/internal/logging"
	"github.com/alexiusacademia/gobearing/internal/report"
	"github.com/alexiusacademia/gobearing/internal/shaft"
)

var (
	// Calculation inputs
	calcInput shaft.Input
	calcFile  string

	// Output options
	calcJSON        bool
	calcShowDiagram bool
	calcShowCurve   bool
	calcPlotFile    string
	calcCurveFile   string
	calcPDFFile     string
	calcXLSXFile    string
	calcProject     string
	calcAuthor      string
)

// inputFlags maps calc flag names to input field names
var inputFlags = map[string]string{
	"rpm": "rpm", "life": "life_hours", "lf": "lf",
	"p1": "p1", "p2": "p2", "pt": "pt", "pr": "pr", "w": "w",
	"d1": "distance1", "d2": "distance2", "d3": "distance3",
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate bearing reactions and select bearings",
	Long: `Calculate the reactions at both bearings of a gear and pulley shaft,
the required dynamic load capacity for the target life, and the bearing
designations that cover it.

Layout (distances from bearing 1):
  B1 ──d1── Gear ──d2── B2 ──d3── Pulley

All eleven inputs must be greater than zero.

Examples:
  # Shaft at 1000 rpm, 5000 h life
  gobearing calc --rpm 1000 --p1 200 --p2 100 --pt 150 --pr 80 --w 50 \
    --lf 1.2 --life 5000 --d1 50 --d2 80 --d3 30

  # Read the inputs from a JSON file and export a PDF report
  gobearing calc -f shaft.json --pdf report.pdf

  # Same file, checked at a longer life (flags override the file)
  gobearing calc -f shaft.json --life 20000

  # Show the shaft diagram and capacity curve
  gobearing calc -f shaft.json --diagram --curve`,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	// Speed and life
	calcCmd.Flags().Float64Var(&calcInput.RPM, "rpm", 0, "Shaft speed (rev/min)")
	calcCmd.Flags().Float64Var(&calcInput.LifeHours, "life", 0, "Target bearing life (hours)")
	calcCmd.Flags().Float64Var(&calcInput.LoadFactor, "lf", 0, "Load factor")

	// Load flags
	calcCmd.Flags().Float64Var(&calcInput.P1, "p1", 0, "Belt tension, tight side (N)")
	calcCmd.Flags().Float64Var(&calcInput.P2, "p2", 0, "Belt tension, slack side (N)")
	calcCmd.Flags().Float64Var(&calcInput.Pt, "pt", 0, "Gear tangential force (N)")
	calcCmd.Flags().Float64Var(&calcInput.Pr, "pr", 0, "Gear radial force (N)")
	calcCmd.Flags().Float64Var(&calcInput.W, "w", 0, "Pulley weight (N)")

	// Geometry flags
	calcCmd.Flags().Float64Var(&calcInput.Distance1, "d1", 0, "Bearing 1 to gear (mm)")
	calcCmd.Flags().Float64Var(&calcInput.Distance2, "d2", 0, "Gear to bearing 2 (mm)")
	calcCmd.Flags().Float64Var(&calcInput.Distance3, "d3", 0, "Bearing 2 to pulley (mm)")

	calcCmd.Flags().StringVarP(&calcFile, "file", "f", "", "Read the inputs from a JSON file instead of flags")

	// Output options
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "Print the result as JSON")
	calcCmd.Flags().BoolVar(&calcShowDiagram, "diagram", false, "Show ASCII shaft diagram")
	calcCmd.Flags().BoolVar(&calcShowCurve, "curve", false, "Show required capacity against service life")
	calcCmd.Flags().StringVar(&calcPlotFile, "plot", "", "Export bending moment diagram (png, svg, pdf)")
	calcCmd.Flags().StringVar(&calcCurveFile, "curve-plot", "", "Export capacity curve (png, svg, pdf)")
	calcCmd.Flags().StringVar(&calcPDFFile, "pdf", "", "Write a PDF calculation report")
	calcCmd.Flags().StringVar(&calcXLSXFile, "xlsx", "", "Write the inputs and results to an XLSX workbook")
	calcCmd.Flags().StringVar(&calcProject, "project", "", "Project name for the PDF report")
	calcCmd.Flags().StringVar(&calcAuthor, "author", "", "Author for the PDF report")
}

func runCalc(cmd *cobra.Command, args []string) error {
	in := calcInput
	if calcFile != "" {
		loaded, err := loadInputFile(calcFile)
		if err != nil {
			return err
		}
		if err := overrideFromFlags(cmd.Flags(), &loaded); err != nil {
			return err
		}
		in = loaded
	}

	if err := in.Validate(); err != nil {
		return err
	}

	res := shaft.Calculate(in)
	logging.Logger.Debug("bearing calculation completed",
		zap.Float64("r1", res.R1),
		zap.Float64("r2", res.R2),
		zap.Float64("llr", res.LifeRatio),
		zap.Float64("c1", res.C1),
		zap.Float64("c2", res.C2),
	)

	out := cmd.OutOrStdout()

	if calcJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Input  shaft.Input     `json:"input"`
			Result shaft.Formatted `json:"result"`
		}{in, res.Format()}); err != nil {
			return err
		}
	} else {
		printCalcReport(out, in, res)
	}

	if calcShowDiagram {
		fmt.Fprintln(out, diagram.DrawShaftDiagram(in, res))
	}
	if calcShowCurve {
		lo, hi := diagram.DefaultLifeRange(in.LifeHours)
		fmt.Fprintln(out, diagram.DrawCapacityCurve(diagram.SampleCapacity(in, lo, hi, 60)))
	}

	return exportCalc(out, in, res)
}

// loadInputFile reads a single input object from a JSON file
func loadInputFile(path string) (shaft.Input, error) {
	var in shaft.Input
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read input file: %w", err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parse input file %s: %w", path, err)
	}
	return in, nil
}

// overrideFromFlags applies the input flags given on the command line on
// top of values read from a file
func overrideFromFlags(flags *pflag.FlagSet, in *shaft.Input) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		field, ok := inputFlags[f.Name]
		if !ok || err != nil {
			return
		}
		var v float64
		if v, err = flags.GetFloat64(f.Name); err != nil {
			return
		}
		err = in.Set(field, v)
	})
	return err
}

func exportCalc(out io.Writer, in shaft.Input, res shaft.Result) error {
	if calcPlotFile != "" {
		if err := diagram.ExportMomentDiagram(in, res, calcPlotFile); err != nil {
			return fmt.Errorf("export moment diagram: %w", err)
		}
		fmt.Fprintf(out, "  Moment diagram exported to: %s\n", calcPlotFile)
	}
	if calcCurveFile != "" {
		lo, hi := diagram.DefaultLifeRange(in.LifeHours)
		if err := diagram.ExportCapacityCurve(diagram.SampleCapacity(in, lo, hi, 100), calcCurveFile); err != nil {
			return fmt.Errorf("export capacity curve: %w", err)
		}
		fmt.Fprintf(out, "  Capacity curve exported to: %s\n", calcCurveFile)
	}
	if calcPDFFile != "" {
		meta := report.Meta{Project: calcProject, Author: calcAuthor}
		if err := report.SavePDF(calcPDFFile, meta, in, res); err != nil {
			return fmt.Errorf("write pdf report: %w", err)
		}
		fmt.Fprintf(out, "  PDF report written to: %s\n", calcPDFFile)
	}
	if calcXLSXFile != "" {
		cases := []report.Case{{Name: "Case 1", Input: in, Result: res}}
		if err := report.SaveWorkbook(calcXLSXFile, cases); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		fmt.Fprintf(out, "  Workbook written to: %s\n", calcXLSXFile)
	}
	return nil
}

func printCalcReport(out io.Writer, in shaft.Input, res shaft.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     SHAFT BEARING REACTIONS AND SELECTION")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	// Input summary
	fmt.Fprintln(out, "INPUT DATA:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range in.Fields() {
		fmt.Fprintf(w, "  %s:\t%s %s\n", f.Label, shaft.FormatNumber(f.Value), f.Unit)
	}
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "INTERMEDIATE VALUES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Combined belt pull (P1 + P2):\t%s N\n", shaft.FormatNumber(res.PTotal))
	fmt.Fprintf(w, "  Life (L = 60·n·Lh / 10⁶):\t%s million rev\n", shaft.FormatNumber(res.LifeRatio))
	w.Flush()
	fmt.Fprintln(out)

	for _, g := range res.Groups() {
		fmt.Fprintf(out, "%s:\n", strings.ToUpper(g.Title))
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, item := range g.Items {
			fmt.Fprintf(w, "  %s:\t%s %s\n", item.Label, shaft.FormatNumber(item.Value), item.Unit)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, diagram.DrawSelectionBox(res))
	fmt.Fprintln(out)
}
