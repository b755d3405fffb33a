package shaft

// Station is a point along the shaft with the shear force and bending
// moment just to its right, in both load planes.
//
// Positions are measured from bearing 1 (mm); forces in N, moments in N-mm.
// The horizontal plane takes the gear tangential force and the belt pull
// as negative; the bearing 1 horizontal reaction then acts as -RH1.
type Station struct {
	Name      string  `json:"name"`
	Position  float64 `json:"position"`
	ShearV    float64 `json:"shear_v"`
	MomentV   float64 `json:"moment_v"`
	ShearH    float64 `json:"shear_h"`
	MomentH   float64 `json:"moment_h"`
	Resultant float64 `json:"moment"` // sqrt(MomentV² + MomentH²)
}

// Stations returns the bearing 1, gear, bearing 2 and pulley stations.
// The moment at the pulley closes to zero for a consistent result.
func Stations(in Input, res Result) []Station {
	positions := []struct {
		name string
		x    float64
		fv   float64 // vertical point force, up positive
		fh   float64 // horizontal point force
	}{
		{"Bearing 1", 0, res.RV1, -res.RH1},
		{"Gear", in.Distance1, -in.Pr, -in.Pt},
		{"Bearing 2", in.Distance1 + in.Distance2, res.RV2, res.RH2},
		{"Pulley", in.Distance1 + in.Distance2 + in.Distance3, -in.W, -res.PTotal},
	}

	stations := make([]Station, 0, len(positions))
	var shearV, shearH, momentV, momentH float64
	for i, p := range positions {
		if i > 0 {
			dx := p.x - positions[i-1].x
			momentV += shearV * dx
			momentH += shearH * dx
		}
		shearV += p.fv
		shearH += p.fh

		stations = append(stations, Station{
			Name:      p.name,
			Position:  p.x,
			ShearV:    shearV,
			MomentV:   momentV,
			ShearH:    shearH,
			MomentH:   momentH,
			Resultant: hypot(momentV, momentH),
		})
	}
	return stations
}

// MaxMoment returns the station with the largest resultant bending moment
func MaxMoment(stations []Station) Station {
	var best Station
	for i, s := range stations {
		if i == 0 || s.Resultant > best.Resultant {
			best = s
		}
	}
	return best
}
