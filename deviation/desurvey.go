package deviation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Method selects the desurveying algorithm used to turn stations into
// positions.
type Method int

const (
	// MinimumCurvature fits a circular arc between consecutive
	// stations. This is the industry default and matches what the
	// usual directional-survey packages compute.
	MinimumCurvature Method = iota
	// BalancedTangential averages the direction vectors of
	// consecutive stations without the arc correction.
	BalancedTangential
)

func (m Method) String() string {
	switch m {
	case MinimumCurvature:
		return "minimum_curvature"
	case BalancedTangential:
		return "balanced_tangential"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Position is a computed point on the borehole path, relative to the
// surface location: TVD is true vertical depth below surface,
// Northing and Easting are horizontal offsets.
type Position struct {
	MD       float64
	TVD      float64
	Northing float64
	Easting  float64
}

// AbsPosition is a Position shifted to absolute coordinates. TVDSS is
// true vertical depth below sea level (elevation minus TVD).
type AbsPosition struct {
	MD       float64
	TVD      float64
	TVDSS    float64
	Northing float64
	Easting  float64
}

// Polar is the plan-view polar form of a position: azimuth from north
// in radians (clockwise positive) and horizontal distance from the
// wellhead.
type Polar struct {
	Azimuth float64
	Radius  float64
}

// Trajectory is the desurveyed borehole path. Positions are ordered
// by measured depth and relative to the surface location.
type Trajectory struct {
	Method    Method
	Positions []Position
}

// Desurvey computes the 3-D trajectory of the survey with the given
// method. The result is deterministic for identical stations and
// method. The first position is always the origin.
func (s *Survey) Desurvey(method Method) (*Trajectory, error) {
	switch method {
	case MinimumCurvature, BalancedTangential:
	default:
		return nil, fmt.Errorf("%w: unknown desurvey method %d", ErrInvalidSurvey, int(method))
	}

	positions := make([]Position, len(s.stations))
	positions[0] = Position{MD: s.stations[0].MD}

	for i := 1; i < len(s.stations); i++ {
		p := s.stations[i-1]
		q := s.stations[i]

		i1 := p.Inclination * math.Pi / 180
		i2 := q.Inclination * math.Pi / 180
		a1 := p.Azimuth * math.Pi / 180
		a2 := q.Azimuth * math.Pi / 180
		dmd := q.MD - p.MD

		rf := 1.0
		if method == MinimumCurvature {
			// Dogleg angle between the two station directions.
			cosb := math.Cos(i2-i1) - math.Sin(i1)*math.Sin(i2)*(1-math.Cos(a2-a1))
			cosb = math.Max(-1, math.Min(1, cosb))
			beta := math.Acos(cosb)
			if beta > 1e-9 {
				rf = 2 / beta * math.Tan(beta/2)
			}
		}

		dn := dmd / 2 * (math.Sin(i1)*math.Cos(a1) + math.Sin(i2)*math.Cos(a2)) * rf
		de := dmd / 2 * (math.Sin(i1)*math.Sin(a1) + math.Sin(i2)*math.Sin(a2)) * rf
		dv := dmd / 2 * (math.Cos(i1) + math.Cos(i2)) * rf

		positions[i] = Position{
			MD:       q.MD,
			TVD:      positions[i-1].TVD + dv,
			Northing: positions[i-1].Northing + dn,
			Easting:  positions[i-1].Easting + de,
		}
	}

	return &Trajectory{Method: method, Positions: positions}, nil
}

// MaxMD returns the measured depth of the last position.
func (t *Trajectory) MaxMD() float64 {
	return t.Positions[len(t.Positions)-1].MD
}

// Polar returns the plan-view polar form of every position.
func (t *Trajectory) Polar() []Polar {
	out := make([]Polar, len(t.Positions))
	for i, p := range t.Positions {
		out[i] = Polar{
			Azimuth: math.Atan2(p.Easting, p.Northing),
			Radius:  math.Hypot(p.Northing, p.Easting),
		}
	}
	return out
}

// Resample interpolates the trajectory at a fixed measured-depth step
// starting from 0, keeping the final station. Step must be positive.
// Interpolation is piecewise linear in MD.
func (t *Trajectory) Resample(step float64) (*Trajectory, error) {
	if step <= 0 {
		return nil, fmt.Errorf("resample step must be positive, got %g", step)
	}
	if len(t.Positions) < 2 {
		return &Trajectory{Method: t.Method, Positions: append([]Position(nil), t.Positions...)}, nil
	}

	n := len(t.Positions)
	mds := make([]float64, n)
	tvds := make([]float64, n)
	norths := make([]float64, n)
	easts := make([]float64, n)
	for i, p := range t.Positions {
		mds[i] = p.MD
		tvds[i] = p.TVD
		norths[i] = p.Northing
		easts[i] = p.Easting
	}

	var tvd, north, east interp.PiecewiseLinear
	if err := tvd.Fit(mds, tvds); err != nil {
		return nil, fmt.Errorf("fit tvd interpolant: %w", err)
	}
	if err := north.Fit(mds, norths); err != nil {
		return nil, fmt.Errorf("fit northing interpolant: %w", err)
	}
	if err := east.Fit(mds, easts); err != nil {
		return nil, fmt.Errorf("fit easting interpolant: %w", err)
	}

	last := mds[n-1]
	var out []Position
	// Integer counter so accumulated float error cannot emit a point
	// within epsilon of the final station.
	for i := 0; ; i++ {
		md := float64(i) * step
		if md >= last {
			break
		}
		out = append(out, Position{
			MD:       md,
			TVD:      tvd.Predict(md),
			Northing: north.Predict(md),
			Easting:  east.Predict(md),
		})
	}
	out = append(out, t.Positions[n-1])

	return &Trajectory{Method: t.Method, Positions: out}, nil
}

// Shift moves the relative trajectory onto absolute coordinates:
// x and y are the surface location (easting, northing) and elevation
// the wellhead altitude above sea level.
func (t *Trajectory) Shift(x, y, elevation float64) []AbsPosition {
	out := make([]AbsPosition, len(t.Positions))
	for i, p := range t.Positions {
		out[i] = AbsPosition{
			MD:       p.MD,
			TVD:      p.TVD,
			TVDSS:    elevation - p.TVD,
			Northing: p.Northing + y,
			Easting:  p.Easting + x,
		}
	}
	return out
}
