package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gobearing/internal/catalog"
	"github.com/alexiusacademia/gobearing/internal/shaft"
)

var (
	verticalColor   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	horizontalColor = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	resultantColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	thresholdColor  = color.Gray{Y: 150}
)

// ExportMomentDiagram exports the bending moment diagram of the shaft in
// both load planes, with the resultant moment, to an image file.
func ExportMomentDiagram(in shaft.Input, res shaft.Result, filename string) error {
	stations := shaft.Stations(in, res)

	p := plot.New()
	p.Title.Text = "Shaft Bending Moment"
	p.X.Label.Text = "Distance from bearing 1 (mm)"
	p.Y.Label.Text = "Bending moment (N-mm)"
	p.Add(plotter.NewGrid())

	series := []struct {
		name  string
		color color.Color
		value func(shaft.Station) float64
	}{
		{"Vertical plane", verticalColor, func(s shaft.Station) float64 { return s.MomentV }},
		{"Horizontal plane", horizontalColor, func(s shaft.Station) float64 { return s.MomentH }},
		{"Resultant", resultantColor, func(s shaft.Station) float64 { return s.Resultant }},
	}

	for _, s := range series {
		pts := make(plotter.XYs, len(stations))
		for i, st := range stations {
			pts[i] = plotter.XY{X: st.Position, Y: s.value(st)}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("%s moment line: %w", strings.ToLower(s.name), err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = s.color
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	// Zero reference
	zero, err := plotter.NewLine(plotter.XYs{
		{X: stations[0].Position, Y: 0},
		{X: stations[len(stations)-1].Position, Y: 0},
	})
	if err != nil {
		return err
	}
	zero.LineStyle.Width = vg.Points(1)
	zero.LineStyle.Color = color.Black
	p.Add(zero)

	// Mark the bearings, gear and pulley on the shaft axis
	marks := make(plotter.XYs, len(stations))
	names := make([]string, len(stations))
	for i, st := range stations {
		marks[i] = plotter.XY{X: st.Position, Y: 0}
		names[i] = st.Name
	}
	scatter, err := plotter.NewScatter(marks)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(5)
	scatter.GlyphStyle.Shape = draw.TriangleGlyph{}
	p.Add(scatter)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: marks, Labels: names})
	if err != nil {
		return err
	}
	p.Add(labels)

	p.Legend.Top = true
	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportCapacityCurve exports the required capacities against service life
// together with the catalog thresholds for each bearing.
func ExportCapacityCurve(points []CurvePoint, filename string) error {
	if len(points) < 2 {
		return fmt.Errorf("capacity curve needs at least 2 points, got %d", len(points))
	}

	p := plot.New()
	p.Title.Text = "Required Dynamic Capacity vs Service Life"
	p.X.Label.Text = "Service life (h)"
	p.Y.Label.Text = "Required capacity C (N)"
	p.Add(plotter.NewGrid())

	c1 := make(plotter.XYs, len(points))
	c2 := make(plotter.XYs, len(points))
	maxC := 0.0
	for i, pt := range points {
		c1[i] = plotter.XY{X: pt.LifeHours, Y: pt.C1}
		c2[i] = plotter.XY{X: pt.LifeHours, Y: pt.C2}
		maxC = max(maxC, pt.C1, pt.C2)
	}

	for _, s := range []struct {
		name string
		pts  plotter.XYs
		col  color.Color
	}{
		{"C1 (bearing 1)", c1, verticalColor},
		{"C2 (bearing 2)", c2, horizontalColor},
	} {
		line, err := plotter.NewLine(s.pts)
		if err != nil {
			return fmt.Errorf("%s curve: %w", s.name, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = s.col
		p.Add(line)
		p.Legend.Add(s.name, line)
	}

	// Catalog thresholds below the top of the curves
	first, last := points[0].LifeHours, points[len(points)-1].LifeHours
	for _, table := range []catalog.Table{catalog.Bearing1, catalog.Bearing2} {
		for _, r := range table.Ranges {
			if r.Max > maxC*1.1 {
				break
			}
			th, err := plotter.NewLine(plotter.XYs{{X: first, Y: r.Max}, {X: last, Y: r.Max}})
			if err != nil {
				return err
			}
			th.LineStyle.Color = thresholdColor
			th.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
			p.Add(th)

			lbl, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    []plotter.XY{{X: first, Y: r.Max}},
				Labels: []string{fmt.Sprintf("%s < %.0f", r.Designation, r.Max)},
			})
			if err != nil {
				return err
			}
			p.Add(lbl)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = true
	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// save writes the plot in the format given by the file extension
// (.png, .svg or .pdf); any other name gets .png appended.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
