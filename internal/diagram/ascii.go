package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/gobearing/internal/shaft"
)

// shaftChars is the width of the drawn shaft in characters
const shaftChars = 48

// DrawShaftDiagram creates an ASCII elevation of the shaft showing the two
// bearings, the gear and the overhung pulley with their spans and loads.
func DrawShaftDiagram(in shaft.Input, res shaft.Result) string {
	var sb strings.Builder

	cols := markerColumns(in)

	// Shaft line with component markers
	line := []rune(strings.Repeat("═", shaftChars+1))
	line[cols[0]] = '╪'
	line[cols[1]] = '╬'
	line[cols[2]] = '╪'
	line[cols[3]] = '█'

	labels := []rune(strings.Repeat(" ", shaftChars+8))
	putLabel(labels, cols[0], "B1")
	putLabel(labels, cols[1], "G")
	putLabel(labels, cols[2], "B2")
	putLabel(labels, cols[3], "P")

	supports := []rune(strings.Repeat(" ", shaftChars+1))
	supports[cols[0]] = '▲'
	supports[cols[2]] = '▲'

	sb.WriteString("\n")
	sb.WriteString("  SHAFT ARRANGEMENT\n")
	sb.WriteString("  ─────────────────\n\n")
	sb.WriteString("    " + strings.TrimRight(string(labels), " ") + "\n")
	sb.WriteString("    " + string(line) + "\n")
	sb.WriteString("    " + strings.TrimRight(string(supports), " ") + "\n")
	sb.WriteString("    " + dimensionLine(cols) + "\n")
	sb.WriteString(fmt.Sprintf("    d1 = %.1f mm   d2 = %.1f mm   d3 = %.1f mm\n",
		in.Distance1, in.Distance2, in.Distance3))
	sb.WriteString("\n")

	sb.WriteString("  LOADS:\n")
	sb.WriteString(fmt.Sprintf("    Gear (G):    Pr = %.1f N (vertical), Pt = %.1f N (horizontal)\n", in.Pr, in.Pt))
	sb.WriteString(fmt.Sprintf("    Pulley (P):  W = %.1f N (vertical), P1+P2 = %.1f N (horizontal)\n", in.W, res.PTotal))
	sb.WriteString("\n")

	sb.WriteString("  REACTIONS:\n")
	sb.WriteString(fmt.Sprintf("    B1:  Rv1 = %s N   Rh1 = %s N   R1 = %s N\n",
		shaft.FormatNumber(res.RV1), shaft.FormatNumber(res.RH1), shaft.FormatNumber(res.R1)))
	sb.WriteString(fmt.Sprintf("    B2:  Rv2 = %s N   Rh2 = %s N   R2 = %s N\n",
		shaft.FormatNumber(res.RV2), shaft.FormatNumber(res.RH2), shaft.FormatNumber(res.R2)))

	// Legend
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ╪ ▲ = Bearing    ╬ = Gear    █ = Pulley\n")

	return sb.String()
}

// markerColumns places bearing 1, the gear, bearing 2 and the pulley on
// the drawn shaft. Spans that are not positive and finite are drawn equal.
func markerColumns(in shaft.Input) [4]int {
	spans := []float64{in.Distance1, in.Distance2, in.Distance3}
	total := 0.0
	for _, s := range spans {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			spans = []float64{1, 1, 1}
			total = 3
			break
		}
		total += s
	}

	var cols [4]int
	x := 0.0
	for i, s := range spans {
		x += s
		cols[i+1] = int(math.Round(x / total * shaftChars))
	}

	// Keep markers distinct on very uneven spans
	for i := 1; i < len(cols); i++ {
		if cols[i] <= cols[i-1] {
			cols[i] = cols[i-1] + 1
		}
	}
	if cols[3] > shaftChars {
		shift := cols[3] - shaftChars
		for i := 1; i < len(cols); i++ {
			cols[i] -= shift
			if cols[i] <= cols[i-1] {
				cols[i] = cols[i-1] + 1
			}
		}
	}
	return cols
}

func putLabel(row []rune, col int, label string) {
	for i, r := range label {
		if col+i < len(row) {
			row[col+i] = r
		}
	}
}

// dimensionLine draws |<-d1->|<-d2->|<-d3->| under the shaft
func dimensionLine(cols [4]int) string {
	var sb strings.Builder
	names := []string{"d1", "d2", "d3"}
	sb.WriteString("├")
	for i := 0; i < 3; i++ {
		width := cols[i+1] - cols[i] - 1
		sb.WriteString(centered(names[i], width, '─'))
		sb.WriteString("┤")
	}
	return sb.String()
}

func centered(text string, width int, pad rune) string {
	if width <= len(text) {
		return strings.Repeat(string(pad), max(width, 0))
	}
	left := (width - len(text)) / 2
	right := width - len(text) - left
	return strings.Repeat(string(pad), left) + text + strings.Repeat(string(pad), right)
}

// DrawSelectionBox creates the boxed bearing selection summary
func DrawSelectionBox(res shaft.Result) string {
	return DrawSummaryBox("BEARING SELECTION", []string{
		fmt.Sprintf("Bearing 1: %-6s (C1 = %s N)", res.Bearing1Designation, shaft.FormatNumber(res.C1)),
		fmt.Sprintf("Bearing 2: %-6s (C2 = %s N)", res.Bearing2Designation, shaft.FormatNumber(res.C2)),
	})
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len(title)
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-2, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
