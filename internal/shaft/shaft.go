package shaft

import (
	"math"
	"strconv"

	"github.com/alexiusacademia/gobearing/internal/catalog"
)

// LifeExponent is the load-life exponent for ball bearings (L10 = (C/P)^3)
const LifeExponent = 3.0

// Calculate finds the bearing reactions, the required dynamic capacity at
// each bearing and the catalog designation that covers it.
//
// No validation is done. Distance1+Distance2 = 0 gives NaN/Inf results, as
// does a negative life ratio under the cube root.
func Calculate(in Input) Result {
	res := Result{}

	res.PTotal = in.P1 + in.P2

	span := in.Distance1 + in.Distance2
	overall := in.Distance1 + in.Distance2 + in.Distance3

	// Vertical plane: moments about bearing 1
	res.RV2 = (in.Pr*in.Distance1 + in.W*overall) / span
	res.RV1 = in.Pr + in.W - res.RV2

	// Horizontal plane: gear tangential force and belt pull
	res.RH2 = (in.Pt*in.Distance1 + res.PTotal*overall) / span
	res.RH1 = res.RH2 - in.Pt - res.PTotal

	res.R1 = hypot(res.RV1, res.RH1)
	res.R2 = hypot(res.RV2, res.RH2)

	res.LifeRatio = LifeRatio(in.RPM, in.LifeHours)
	res.C1 = RequiredCapacity(res.R1, res.LifeRatio, in.LoadFactor)
	res.C2 = RequiredCapacity(res.R2, res.LifeRatio, in.LoadFactor)

	res.Bearing1Designation = catalog.SelectBearing1(res.C1)
	res.Bearing2Designation = catalog.SelectBearing2(res.C2)

	return res
}

// LifeRatio converts a speed and a life in hours to millions of revolutions
func LifeRatio(rpm, lifeHours float64) float64 {
	return (60 * rpm * lifeHours) / 1e6
}

// RequiredCapacity returns C = P * L^(1/3) * lf.
// math.Pow keeps a negative life ratio as NaN.
func RequiredCapacity(load, lifeRatio, loadFactor float64) float64 {
	return load * math.Pow(lifeRatio, 1/LifeExponent) * loadFactor
}

func hypot(a, b float64) float64 {
	return math.Sqrt(a*a + b*b)
}

// FormatNumber renders v fixed to 4 decimal places
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// Item is a single labelled value on a results listing
type Item struct {
	Label string
	Value float64
	Unit  string
}

// Group is a titled set of result items
type Group struct {
	Title string
	Items []Item
}

// Groups arranges the numeric results the way they are presented
func (r Result) Groups() []Group {
	return []Group{
		{Title: "Vertical Reactions", Items: []Item{
			{"Bearing 1 (Rv1)", r.RV1, "N"},
			{"Bearing 2 (Rv2)", r.RV2, "N"},
		}},
		{Title: "Horizontal Reactions", Items: []Item{
			{"Bearing 1 (Rh1)", r.RH1, "N"},
			{"Bearing 2 (Rh2)", r.RH2, "N"},
		}},
		{Title: "Resultant Reactions", Items: []Item{
			{"Bearing 1 (R1)", r.R1, "N"},
			{"Bearing 2 (R2)", r.R2, "N"},
		}},
		{Title: "Dynamic Load Capacities", Items: []Item{
			{"Bearing 1 (C1)", r.C1, "N"},
			{"Bearing 2 (C2)", r.C2, "N"},
		}},
	}
}

// Formatted is a Result with every number rendered to 4 decimals.
// encoding/json cannot carry NaN or Inf, strings can.
type Formatted struct {
	PTotal              string `json:"p_total"`
	RV1                 string `json:"rv1"`
	RV2                 string `json:"rv2"`
	RH1                 string `json:"rh1"`
	RH2                 string `json:"rh2"`
	R1                  string `json:"r1"`
	R2                  string `json:"r2"`
	LifeRatio           string `json:"llr"`
	C1                  string `json:"c1"`
	C2                  string `json:"c2"`
	Bearing1Designation string `json:"bearing1_designation"`
	Bearing2Designation string `json:"bearing2_designation"`
}

// Format renders the result for display
func (r Result) Format() Formatted {
	return Formatted{
		PTotal:              FormatNumber(r.PTotal),
		RV1:                 FormatNumber(r.RV1),
		RV2:                 FormatNumber(r.RV2),
		RH1:                 FormatNumber(r.RH1),
		RH2:                 FormatNumber(r.RH2),
		R1:                  FormatNumber(r.R1),
		R2:                  FormatNumber(r.R2),
		LifeRatio:           FormatNumber(r.LifeRatio),
		C1:                  FormatNumber(r.C1),
		C2:                  FormatNumber(r.C2),
		Bearing1Designation: r.Bearing1Designation,
		Bearing2Designation: r.Bearing2Designation,
	}
}
