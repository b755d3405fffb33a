package shaft

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Input holds the loading, speed and geometry of a shaft carried by two
// bearings with a gear between them and an overhung belt pulley.
//
// Bearing 1 is the origin. The gear sits Distance1 from bearing 1,
// bearing 2 sits Distance2 past the gear and the pulley overhangs
// Distance3 beyond bearing 2.
type Input struct {
	RPM float64 `json:"rpm"` // Shaft speed (rev/min)

	// Belt and gear loads (N)
	P1 float64 `json:"p1"` // Tight side belt tension
	P2 float64 `json:"p2"` // Slack side belt tension
	Pt float64 `json:"pt"` // Gear tangential force
	Pr float64 `json:"pr"` // Gear radial force
	W  float64 `json:"w"`  // Pulley weight

	LoadFactor float64 `json:"lf"`         // Application load factor
	LifeHours  float64 `json:"life_hours"` // Target service life (h)

	// Spans (mm)
	Distance1 float64 `json:"distance1"` // Bearing 1 to gear
	Distance2 float64 `json:"distance2"` // Gear to bearing 2
	Distance3 float64 `json:"distance3"` // Bearing 2 to pulley
}

// Field pairs an input name with its value, in the order the inputs are
// listed on reports and input sheets.
type Field struct {
	Name  string
	Label string
	Unit  string
	Value float64
}

// Fields returns the eleven inputs in display order
func (in Input) Fields() []Field {
	return []Field{
		{"rpm", "Shaft speed", "rpm", in.RPM},
		{"p1", "Belt tension, tight side (P1)", "N", in.P1},
		{"p2", "Belt tension, slack side (P2)", "N", in.P2},
		{"pt", "Gear tangential force (Pt)", "N", in.Pt},
		{"pr", "Gear radial force (Pr)", "N", in.Pr},
		{"w", "Pulley weight (W)", "N", in.W},
		{"lf", "Load factor", "", in.LoadFactor},
		{"life_hours", "Service life", "h", in.LifeHours},
		{"distance1", "Bearing 1 to gear", "mm", in.Distance1},
		{"distance2", "Gear to bearing 2", "mm", in.Distance2},
		{"distance3", "Bearing 2 to pulley", "mm", in.Distance3},
	}
}

// FieldNames lists the input names in display order
var FieldNames = []string{
	"rpm", "p1", "p2", "pt", "pr", "w", "lf", "life_hours", "distance1", "distance2", "distance3",
}

// Set assigns a value by input name. Names are matched case-insensitively
// and "lifehours" is accepted for "life_hours".
func (in *Input) Set(name string, v float64) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rpm":
		in.RPM = v
	case "p1":
		in.P1 = v
	case "p2":
		in.P2 = v
	case "pt":
		in.Pt = v
	case "pr":
		in.Pr = v
	case "w":
		in.W = v
	case "lf":
		in.LoadFactor = v
	case "life_hours", "lifehours":
		in.LifeHours = v
	case "distance1":
		in.Distance1 = v
	case "distance2":
		in.Distance2 = v
	case "distance3":
		in.Distance3 = v
	default:
		return fmt.Errorf("unknown input field %q", name)
	}
	return nil
}

// UnmarshalJSON decodes an input object by field name, with the same
// matching as Set, so "lifeHours" is read as life_hours. Unknown keys are
// rejected.
func (in *Input) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	decoded, _, err := DecodeInput(data)
	if err != nil {
		return err
	}
	*in = decoded
	return nil
}

// DecodeInput decodes an input object that may also carry the named extra
// keys. The raw values of the extra keys present are returned by key.
func DecodeInput(data []byte, extra ...string) (Input, map[string]json.RawMessage, error) {
	var in Input
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return in, nil, err
	}

	found := make(map[string]json.RawMessage)
	for _, key := range extra {
		if v, ok := raw[key]; ok {
			found[key] = v
			delete(raw, key)
		}
	}

	for key, value := range raw {
		var v float64
		if err := json.Unmarshal(value, &v); err != nil {
			return in, nil, fmt.Errorf("input field %q: %w", key, err)
		}
		if err := in.Set(key, v); err != nil {
			return in, nil, err
		}
	}
	return in, found, nil
}

// Validate checks that every input is strictly positive.
// Calculate itself never validates; callers run this first.
func (in Input) Validate() error {
	var bad []string
	for _, f := range in.Fields() {
		if math.IsNaN(f.Value) || f.Value <= 0 {
			bad = append(bad, f.Name)
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}

// ValidationError lists the inputs that are not greater than zero
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("all values must be greater than zero (invalid: %s)", strings.Join(e.Fields, ", "))
}

// Result holds the bearing reactions, required capacities and selection
type Result struct {
	PTotal float64 `json:"p_total"` // Combined belt pull (N)

	// Reactions (N)
	RV1 float64 `json:"rv1"` // Vertical reaction at bearing 1
	RV2 float64 `json:"rv2"` // Vertical reaction at bearing 2
	RH1 float64 `json:"rh1"` // Horizontal reaction at bearing 1
	RH2 float64 `json:"rh2"` // Horizontal reaction at bearing 2
	R1  float64 `json:"r1"`  // Resultant at bearing 1
	R2  float64 `json:"r2"`  // Resultant at bearing 2

	LifeRatio float64 `json:"llr"` // Service life in millions of revolutions

	// Required dynamic load capacity (N)
	C1 float64 `json:"c1"`
	C2 float64 `json:"c2"`

	Bearing1Designation string `json:"bearing1_designation"`
	Bearing2Designation string `json:"bearing2_designation"`
}
