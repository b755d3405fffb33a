package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gobearing/internal/shaft"
)

// CurvePoint is the required capacity of both bearings at one service life
type CurvePoint struct {
	LifeHours float64
	C1        float64
	C2        float64
}

// SampleCapacity evaluates the required capacities for n service lives
// spread evenly from `from` to `to` hours, keeping every other input.
func SampleCapacity(in shaft.Input, from, to float64, n int) []CurvePoint {
	if n < 2 {
		n = 2
	}
	points := make([]CurvePoint, n)
	step := (to - from) / float64(n-1)
	for i := range points {
		sample := in
		sample.LifeHours = from + step*float64(i)
		res := shaft.Calculate(sample)
		points[i] = CurvePoint{LifeHours: sample.LifeHours, C1: res.C1, C2: res.C2}
	}
	return points
}

// DefaultLifeRange returns the life range drawn around the target life:
// a tenth of it up to four times it.
func DefaultLifeRange(lifeHours float64) (float64, float64) {
	return lifeHours / 10, lifeHours * 4
}

// DrawCapacityCurve plots the required capacities against service life in
// the terminal.
func DrawCapacityCurve(points []CurvePoint) string {
	if len(points) == 0 {
		return ""
	}

	c1 := make([]float64, len(points))
	c2 := make([]float64, len(points))
	for i, p := range points {
		c1[i] = p.C1
		c2[i] = p.C2
	}

	first, last := points[0].LifeHours, points[len(points)-1].LifeHours
	graph := asciigraph.PlotMany([][]float64{c1, c2},
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("required C (N) vs life %.0f h to %.0f h", first, last)),
	)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  REQUIRED CAPACITY vs SERVICE LIFE\n")
	sb.WriteString("  ─────────────────────────────────\n\n")
	sb.WriteString(graph)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("  C1 (bearing 1): %.0f N to %.0f N\n", points[0].C1, points[len(points)-1].C1))
	sb.WriteString(fmt.Sprintf("  C2 (bearing 2): %.0f N to %.0f N\n", points[0].C2, points[len(points)-1].C2))
	return sb.String()
}
