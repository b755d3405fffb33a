package shaft

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func sampleInput() Input {
	return Input{
		RPM:        1000,
		P1:         200,
		P2:         100,
		Pt:         150,
		Pr:         80,
		W:          50,
		LoadFactor: 1.2,
		LifeHours:  5000,
		Distance1:  50,
		Distance2:  80,
		Distance3:  30,
	}
}

func TestCalculateWorkedExample(t *testing.T) {
	res := Calculate(sampleInput())

	got := res.Format()
	want := Formatted{
		PTotal:              "300.0000",
		RV1:                 "37.6923",
		RV2:                 "92.3077",
		RH1:                 "-23.0769",
		RH2:                 "426.9231",
		R1:                  "44.1956",
		R2:                  "436.7883",
		LifeRatio:           "300.0000",
		C1:                  "355.0322",
		C2:                  "3508.8058",
		Bearing1Designation: "6000",
		Bearing2Designation: "16404",
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestCalculateSecondExample(t *testing.T) {
	res := Calculate(Input{
		RPM: 1500, P1: 100, P2: 50, Pt: 200, Pr: 100, W: 50,
		LoadFactor: 1.2, LifeHours: 20000,
		Distance1: 100, Distance2: 150, Distance3: 50,
	})

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"rv1", FormatNumber(res.RV1), "50.0000"},
		{"rv2", FormatNumber(res.RV2), "100.0000"},
		{"rh1", FormatNumber(res.RH1), "-90.0000"},
		{"rh2", FormatNumber(res.RH2), "260.0000"},
		{"r1", FormatNumber(res.R1), "102.9563"},
		{"r2", FormatNumber(res.R2), "278.5678"},
		{"c1", FormatNumber(res.C1), "1502.8825"},
		{"c2", FormatNumber(res.C2), "4066.3330"},
		{"bearing1", res.Bearing1Designation, "61800"},
		{"bearing2", res.Bearing2Designation, "16404"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, c.got)
		}
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	in := sampleInput()
	first := Calculate(in)
	for i := 0; i < 10; i++ {
		if got := Calculate(in); got != first {
			t.Fatalf("run %d: expected %+v, got %+v", i, first, got)
		}
	}
}

func TestCalculateForceBalance(t *testing.T) {
	inputs := []Input{
		sampleInput(),
		{RPM: 1500, P1: 100, P2: 50, Pt: 200, Pr: 100, W: 50, LoadFactor: 1.2, LifeHours: 20000, Distance1: 100, Distance2: 150, Distance3: 50},
		{RPM: 3000, P1: 1200, P2: 400, Pt: 900, Pr: 330, W: 120, LoadFactor: 1.5, LifeHours: 40000, Distance1: 75, Distance2: 75, Distance3: 120},
		{RPM: 10, P1: 1, P2: 1, Pt: 1, Pr: 1, W: 1, LoadFactor: 1, LifeHours: 1, Distance1: -20, Distance2: 5, Distance3: 0},
	}

	for i, in := range inputs {
		res := Calculate(in)

		vertical := res.RV1 + res.RV2
		if math.Abs(vertical-(in.Pr+in.W)) > tolerance*math.Max(1, math.Abs(vertical)) {
			t.Errorf("case %d: expected rv1+rv2 = %v, got %v", i, in.Pr+in.W, vertical)
		}

		// rh1 is reported against the belt pull, so the horizontal
		// balance reads rh2 - rh1 = pt + p1 + p2.
		horizontal := res.RH2 - res.RH1
		want := in.Pt + in.P1 + in.P2
		if math.Abs(horizontal-want) > tolerance*math.Max(1, math.Abs(horizontal)) {
			t.Errorf("case %d: expected rh2-rh1 = %v, got %v", i, want, horizontal)
		}

		if res.R1 < 0 || res.R2 < 0 {
			t.Errorf("case %d: expected non-negative resultants, got r1=%v r2=%v", i, res.R1, res.R2)
		}
	}
}

func TestCalculateZeroSpanPropagatesNonFinite(t *testing.T) {
	in := sampleInput()
	in.Distance1 = 0
	in.Distance2 = 0

	res := Calculate(in)

	for name, v := range map[string]float64{
		"rv2": res.RV2, "rv1": res.RV1, "rh2": res.RH2, "rh1": res.RH1,
		"r1": res.R1, "r2": res.R2, "c1": res.C1, "c2": res.C2,
	} {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			t.Errorf("%s: expected non-finite value, got %v", name, v)
		}
	}
	if res.Bearing1Designation != "6300" || res.Bearing2Designation != "6404" {
		t.Fatalf("expected fallback designations, got %q and %q", res.Bearing1Designation, res.Bearing2Designation)
	}
}

func TestCalculateNegativeLifeRatioIsNaN(t *testing.T) {
	in := sampleInput()
	in.LifeHours = -5000

	res := Calculate(in)
	if !math.IsNaN(res.C1) || !math.IsNaN(res.C2) {
		t.Fatalf("expected NaN capacities, got c1=%v c2=%v", res.C1, res.C2)
	}
}

func TestLifeRatio(t *testing.T) {
	if got := LifeRatio(1000, 5000); got != 300 {
		t.Fatalf("expected 300, got %v", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0.0000"},
		{1.23456, "1.2346"},
		{-23.076923, "-23.0769"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.v); got != tt.want {
			t.Errorf("FormatNumber(%v): expected %q, got %q", tt.v, tt.want, got)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := sampleInput().Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	in := sampleInput()
	in.RPM = 0
	in.Distance2 = -1
	in.W = math.NaN()

	err := in.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	want := []string{"rpm", "w", "distance2"}
	if len(verr.Fields) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, verr.Fields)
	}
	for i := range want {
		if verr.Fields[i] != want[i] {
			t.Fatalf("expected fields %v, got %v", want, verr.Fields)
		}
	}
}

func TestInputSet(t *testing.T) {
	var in Input
	for i, name := range FieldNames {
		if err := in.Set(name, float64(i+1)); err != nil {
			t.Fatalf("Set(%q): %v", name, err)
		}
	}
	for i, f := range in.Fields() {
		if f.Value != float64(i+1) {
			t.Fatalf("field %s: expected %v, got %v", f.Name, i+1, f.Value)
		}
	}
	if err := in.Set("LifeHours", 7); err != nil || in.LifeHours != 7 {
		t.Fatalf("expected LifeHours alias to set 7, got %v (err %v)", in.LifeHours, err)
	}
	if err := in.Set("torque", 1); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestInputUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"snake case", `{"rpm":1000,"p1":200,"p2":100,"pt":150,"pr":80,"w":50,"lf":1.2,"life_hours":5000,"distance1":50,"distance2":80,"distance3":30}`},
		{"camel case life", `{"rpm":1000,"p1":200,"p2":100,"pt":150,"pr":80,"w":50,"lf":1.2,"lifeHours":5000,"distance1":50,"distance2":80,"distance3":30}`},
		{"upper case keys", `{"RPM":1000,"P1":200,"P2":100,"Pt":150,"Pr":80,"W":50,"LF":1.2,"LifeHours":5000,"Distance1":50,"Distance2":80,"Distance3":30}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Input
			if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if in != sampleInput() {
				t.Fatalf("expected %+v, got %+v", sampleInput(), in)
			}
		})
	}
}

func TestInputUnmarshalJSONRejects(t *testing.T) {
	for _, body := range []string{`{"torque":5}`, `{"rpm":"fast"}`, `[1,2]`} {
		var in Input
		if err := json.Unmarshal([]byte(body), &in); err == nil {
			t.Errorf("expected error for %s", body)
		}
	}
}

func TestDecodeInputExtraKeys(t *testing.T) {
	in, extra, err := DecodeInput([]byte(`{"rpm":1000,"name":"Line shaft"}`), "name")
	if err != nil {
		t.Fatalf("DecodeInput: %v", err)
	}
	if in.RPM != 1000 {
		t.Fatalf("expected rpm 1000, got %v", in.RPM)
	}
	if string(extra["name"]) != `"Line shaft"` {
		t.Fatalf("expected raw name, got %s", extra["name"])
	}
}

func TestGroupsCoverEveryReaction(t *testing.T) {
	res := Calculate(sampleInput())
	count := 0
	for _, g := range res.Groups() {
		count += len(g.Items)
	}
	if count != 8 {
		t.Fatalf("expected 8 grouped values, got %d", count)
	}
}
