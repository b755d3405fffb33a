package catalog

// Range maps an open interval of required dynamic capacity to a bearing
// designation. A capacity matches when Min < c < Max.
type Range struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Designation string  `json:"designation"`
}

// Contains reports whether c lies strictly inside the range.
// Values equal to either bound are not contained.
func (r Range) Contains(c float64) bool {
	return r.Min < c && c < r.Max
}

// Table is an ordered list of ranges scanned top to bottom.
// Fallback is returned when no range matches.
type Table struct {
	Name     string  `json:"name"`
	Ranges   []Range `json:"ranges"`
	Fallback string  `json:"fallback"`
}

// Select returns the designation of the first range containing c.
// Boundary values and NaN fall through to the next row and finally
// to the fallback.
func (t Table) Select(c float64) string {
	for _, r := range t.Ranges {
		if r.Contains(c) {
			return r.Designation
		}
	}
	return t.Fallback
}

// Bearing1 is the selection table for the bearing next to the gear
var Bearing1 = Table{
	Name: "Bearing 1",
	Ranges: []Range{
		{Min: 0, Max: 1480, Designation: "6000"},
		{Min: 1480, Max: 4620, Designation: "61800"},
		{Min: 4620, Max: 5070, Designation: "6200"},
	},
	Fallback: "6300",
}

// Bearing2 is the selection table for the bearing next to the pulley
var Bearing2 = Table{
	Name: "Bearing 2",
	Ranges: []Range{
		{Min: 0, Max: 2700, Designation: "61805"},
		{Min: 2700, Max: 7020, Designation: "16404"},
		{Min: 7020, Max: 9360, Designation: "6004"},
		{Min: 9360, Max: 12700, Designation: "6204"},
		{Min: 12700, Max: 15900, Designation: "6304"},
	},
	Fallback: "6404",
}

// SelectBearing1 picks the bearing 1 designation for capacity c1
func SelectBearing1(c1 float64) string {
	return Bearing1.Select(c1)
}

// SelectBearing2 picks the bearing 2 designation for capacity c2
func SelectBearing2(c2 float64) string {
	return Bearing2.Select(c2)
}
