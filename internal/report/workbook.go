package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gobearing/internal/shaft"
)

// Case is one independent load case of a batch
type Case struct {
	Name   string       `json:"name"`
	Input  shaft.Input  `json:"input"`
	Result shaft.Result `json:"result"`
}

// caseColumn names the optional first column holding the case name
const caseColumn = "case"

var resultColumns = []string{
	"p_total", "rv1", "rv2", "rh1", "rh2", "r1", "r2", "llr", "c1", "c2",
	"bearing1_designation", "bearing2_designation",
}

// WriteWorkbook writes one row per case with the inputs followed by the
// results. The header row uses the input field names, so the workbook can
// be read back with ReadCases.
func WriteWorkbook(w io.Writer, cases []Case) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := []interface{}{caseColumn}
	for _, name := range shaft.FieldNames {
		header = append(header, name)
	}
	for _, name := range resultColumns {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, c := range cases {
		row := []interface{}{c.Name}
		for _, field := range c.Input.Fields() {
			row = append(row, cellValue(field.Value))
		}
		r := c.Result
		for _, v := range []float64{r.PTotal, r.RV1, r.RV2, r.RH1, r.RH2, r.R1, r.R2, r.LifeRatio, r.C1, r.C2} {
			row = append(row, cellValue(v))
		}
		row = append(row, r.Bearing1Designation, r.Bearing2Designation)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write case %d: %w", i+1, err)
		}
	}

	return f.Write(w)
}

// SaveWorkbook writes the cases to an .xlsx file
func SaveWorkbook(path string, cases []Case) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWorkbook(out, cases); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// cellValue rounds to 4 decimals; non-finite values are written as text
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return shaft.FormatNumber(v)
	}
	rounded, err := strconv.ParseFloat(shaft.FormatNumber(v), 64)
	if err != nil {
		return v
	}
	return rounded
}

// ReadCases reads load cases from the first sheet of an .xlsx workbook.
// The first row must name every input field (any order, any case); a
// "case" column is optional and other columns are ignored. Blank rows
// are skipped.
func ReadCases(r io.Reader) ([]Case, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	// Raw values, so number formats such as "#,##0" do not reach ParseFloat
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("workbook has no load cases")
	}

	columns, nameCol, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var cases []Case
	for i, cells := range rows[1:] {
		rowNum := i + 2
		if blank(cells) {
			continue
		}

		c := Case{Name: fmt.Sprintf("Case %d", len(cases)+1)}
		if nameCol >= 0 && nameCol < len(cells) && strings.TrimSpace(cells[nameCol]) != "" {
			c.Name = strings.TrimSpace(cells[nameCol])
		}

		for _, name := range shaft.FieldNames {
			col := columns[name]
			if col >= len(cells) || strings.TrimSpace(cells[col]) == "" {
				return nil, fmt.Errorf("row %d: missing value for %s", rowNum, name)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cells[col]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowNum, name, err)
			}
			if err := c.Input.Set(name, v); err != nil {
				return nil, err
			}
		}
		cases = append(cases, c)
	}

	if len(cases) == 0 {
		return nil, errors.New("workbook has no load cases")
	}
	return cases, nil
}

func mapHeader(header []string) (map[string]int, int, error) {
	columns := make(map[string]int)
	nameCol := -1
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		switch name {
		case caseColumn, "name":
			nameCol = i
			continue
		case "lifehours":
			name = "life_hours"
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range shaft.FieldNames {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, -1, fmt.Errorf("header is missing columns: %s", strings.Join(missing, ", "))
	}
	return columns, nameCol, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// jsonCase is the JSON form of an input case: the input fields plus an
// optional name, e.g. {"name": "Line shaft", "rpm": 1000, ...}
type jsonCase struct {
	Name string `json:"name"`
	shaft.Input
}

// UnmarshalJSON reads the input fields and the optional name
func (c *jsonCase) UnmarshalJSON(data []byte) error {
	in, extra, err := shaft.DecodeInput(data, "name")
	if err != nil {
		return err
	}
	c.Input = in
	if raw, ok := extra["name"]; ok {
		if err := json.Unmarshal(raw, &c.Name); err != nil {
			return fmt.Errorf("case name: %w", err)
		}
	}
	return nil
}

// DecodeCases reads a JSON array of input cases
func DecodeCases(r io.Reader) ([]Case, error) {
	var raw []jsonCase
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode cases: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no load cases in input")
	}

	cases := make([]Case, len(raw))
	for i, jc := range raw {
		name := jc.Name
		if name == "" {
			name = fmt.Sprintf("Case %d", i+1)
		}
		cases[i] = Case{Name: name, Input: jc.Input}
	}
	return cases, nil
}

// LoadCases reads load cases from an .xlsx or .json file
func LoadCases(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadCases(f)
	case ".json":
		return DecodeCases(f)
	default:
		return nil, fmt.Errorf("unsupported case file %q: use .xlsx or .json", filepath.Base(path))
	}
}

// Evaluate calculates every case in place
func Evaluate(cases []Case) {
	for i := range cases {
		cases[i].Result = shaft.Calculate(cases[i].Input)
	}
}
