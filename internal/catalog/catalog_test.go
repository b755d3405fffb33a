package catalog

import (
	"math"
	"testing"
)

func TestSelectBearing1(t *testing.T) {
	tests := []struct {
		c    float64
		want string
	}{
		{1, "6000"},
		{1479.999, "6000"},
		{1480, "6300"},
		{1480.001, "61800"},
		{4619, "61800"},
		{4620, "6300"},
		{4620.5, "6200"},
		{5069.9, "6200"},
		{5070, "6300"},
		{9000, "6300"},
		{0, "6300"},
		{-10, "6300"},
	}

	for _, tt := range tests {
		if got := SelectBearing1(tt.c); got != tt.want {
			t.Errorf("SelectBearing1(%v): expected %q, got %q", tt.c, tt.want, got)
		}
	}
}

func TestSelectBearing1BoundaryFallsThrough(t *testing.T) {
	// Each bearing 1 threshold is excluded from both neighbouring rows.
	for _, c := range []float64{1480, 4620, 5070} {
		got := SelectBearing1(c)
		for _, r := range Bearing1.Ranges {
			if r.Contains(c) {
				t.Fatalf("boundary %v unexpectedly contained in %+v", c, r)
			}
		}
		if got != Bearing1.Fallback {
			t.Fatalf("expected boundary %v to fall back to %q, got %q", c, Bearing1.Fallback, got)
		}
	}
}

func TestSelectBearing2(t *testing.T) {
	tests := []struct {
		c    float64
		want string
	}{
		{100, "61805"},
		{2700, "6404"},
		{3508.8058, "16404"},
		{7020, "6404"},
		{8000, "6004"},
		{10000, "6204"},
		{12700, "6404"},
		{15000, "6304"},
		{15900, "6404"},
		{20000, "6404"},
		{0, "6404"},
	}

	for _, tt := range tests {
		if got := SelectBearing2(tt.c); got != tt.want {
			t.Errorf("SelectBearing2(%v): expected %q, got %q", tt.c, tt.want, got)
		}
	}
}

func TestSelectNaNUsesFallback(t *testing.T) {
	if got := SelectBearing1(math.NaN()); got != "6300" {
		t.Fatalf("expected fallback 6300 for NaN, got %q", got)
	}
	if got := SelectBearing2(math.Inf(1)); got != "6404" {
		t.Fatalf("expected fallback 6404 for +Inf, got %q", got)
	}
}

func TestTablesAreOrderedAndContiguous(t *testing.T) {
	for _, table := range []Table{Bearing1, Bearing2} {
		if table.Ranges[0].Min != 0 {
			t.Fatalf("%s: expected first range to start at 0, got %v", table.Name, table.Ranges[0].Min)
		}
		for i := 1; i < len(table.Ranges); i++ {
			if table.Ranges[i].Min != table.Ranges[i-1].Max {
				t.Fatalf("%s: range %d starts at %v, previous ends at %v",
					table.Name, i, table.Ranges[i].Min, table.Ranges[i-1].Max)
			}
		}
	}
}
