package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gobearing/internal/shaft"
)

// Meta is the title block of a calculation report
type Meta struct {
	Title   string    `json:"title"`
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

func (m Meta) withDefaults() Meta {
	if m.Title == "" {
		m.Title = "Shaft Bearing Selection"
	}
	if m.Date.IsZero() {
		m.Date = time.Now()
	}
	return m
}

// WritePDF renders an A4 calculation report to w
func WritePDF(w io.Writer, meta Meta, in shaft.Input, res shaft.Result) error {
	pdf := render(meta, in, res)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// render lays out the report. Text goes through the core font's cp1252
// translator so accented names print correctly.
func render(meta Meta, in shaft.Input, res shaft.Result) *gofpdf.Fpdf {
	meta = meta.withDefaults()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if meta.Project != "" {
		pdf.Cell(0, 6, tr("Project: "+meta.Project))
		pdf.Ln(6)
	}
	if meta.Author != "" {
		pdf.Cell(0, 6, tr("Author: "+meta.Author))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Input Data")
	for _, f := range in.Fields() {
		row(pdf, tr(f.Label), shaft.FormatNumber(f.Value), tr(f.Unit))
	}
	pdf.Ln(4)

	section(pdf, "Intermediate Values")
	row(pdf, "Combined belt pull (P1 + P2)", shaft.FormatNumber(res.PTotal), "N")
	row(pdf, "Life (millions of revolutions)", shaft.FormatNumber(res.LifeRatio), "")
	pdf.Ln(4)

	for _, g := range res.Groups() {
		section(pdf, g.Title)
		for _, item := range g.Items {
			row(pdf, item.Label, shaft.FormatNumber(item.Value), item.Unit)
		}
		pdf.Ln(4)
	}

	section(pdf, "Bending Moments")
	stations := shaft.Stations(in, res)
	for _, st := range stations {
		row(pdf, fmt.Sprintf("%s (x = %s mm)", st.Name, shaft.FormatNumber(st.Position)), shaft.FormatNumber(st.Resultant), "N-mm")
	}
	peak := shaft.MaxMoment(stations)
	pdf.SetFont("Helvetica", "B", 11)
	row(pdf, "Maximum at "+peak.Name, shaft.FormatNumber(peak.Resultant), "N-mm")
	pdf.Ln(4)

	section(pdf, "Bearing Selection")
	pdf.SetFont("Helvetica", "B", 11)
	row(pdf, "Bearing 1", res.Bearing1Designation, "")
	row(pdf, "Bearing 2", res.Bearing2Designation, "")
	pdf.Ln(4)

	if meta.Notes != "" {
		section(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(meta.Notes), "", "L", false)
	}
	return pdf
}

// SavePDF writes the report to a file
func SavePDF(path string, meta Meta, in shaft.Input, res shaft.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, meta, in, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(0, 7, title, "", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func row(pdf *gofpdf.Fpdf, label, value, unit string) {
	pdf.CellFormat(95, 6, label, "B", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, value, "B", 0, "R", false, 0, "")
	pdf.CellFormat(0, 6, unit, "B", 1, "L", false, 0, "")
}
