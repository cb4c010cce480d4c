package deviation

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func mustSurvey(t *testing.T, stations []Station) *Survey {
	t.Helper()
	s, err := NewSurvey(stations)
	if err != nil {
		t.Fatalf("NewSurvey: %v", err)
	}
	return s
}

func TestDesurveyVerticalWell(t *testing.T) {
	s := mustSurvey(t, []Station{
		{MD: 0}, {MD: 50}, {MD: 100},
	})

	traj, err := s.Desurvey(MinimumCurvature)
	require.NoError(t, err)
	require.Len(t, traj.Positions, 3)

	for _, p := range traj.Positions {
		assert.InDelta(t, p.MD, p.TVD, tol, "vertical well TVD equals MD")
		assert.InDelta(t, 0, p.Northing, tol)
		assert.InDelta(t, 0, p.Easting, tol)
	}
}

func TestDesurveyConstantSlant(t *testing.T) {
	// Constant 30 degree inclination due north. With no direction
	// change both methods reduce to straight-line trigonometry.
	s := mustSurvey(t, []Station{
		{MD: 0, Inclination: 30, Azimuth: 0},
		{MD: 100, Inclination: 30, Azimuth: 0},
		{MD: 200, Inclination: 30, Azimuth: 0},
	})

	for _, method := range []Method{MinimumCurvature, BalancedTangential} {
		traj, err := s.Desurvey(method)
		require.NoError(t, err, method.String())

		last := traj.Positions[2]
		assert.InDelta(t, 200*math.Cos(30*math.Pi/180), last.TVD, 1e-6, method.String())
		assert.InDelta(t, 200*math.Sin(30*math.Pi/180), last.Northing, 1e-6, method.String())
		assert.InDelta(t, 0, last.Easting, 1e-6, method.String())
	}
}

func TestDesurveyEastwardTurn(t *testing.T) {
	s := mustSurvey(t, []Station{
		{MD: 0, Inclination: 0, Azimuth: 0},
		{MD: 100, Inclination: 90, Azimuth: 90},
	})

	traj, err := s.Desurvey(MinimumCurvature)
	require.NoError(t, err)

	// A quarter circle of arc length 100 has radius 200/pi.
	r := 200 / math.Pi
	last := traj.Positions[1]
	assert.InDelta(t, r, last.TVD, 1e-6)
	assert.InDelta(t, r, last.Easting, 1e-6)
	assert.InDelta(t, 0, last.Northing, 1e-6)
}

func TestDesurveyDeterministic(t *testing.T) {
	s := mustSurvey(t, []Station{
		{MD: 0, Inclination: 2, Azimuth: 10},
		{MD: 120, Inclination: 8, Azimuth: 35},
		{MD: 260, Inclination: 15, Azimuth: 70},
	})

	a, err := s.Desurvey(MinimumCurvature)
	require.NoError(t, err)
	b, err := s.Desurvey(MinimumCurvature)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("trajectory not deterministic (-first +second):\n%s", diff)
	}
}

func TestDesurveyUnknownMethod(t *testing.T) {
	s := mustSurvey(t, []Station{{MD: 0}, {MD: 10}})
	_, err := s.Desurvey(Method(42))
	assert.ErrorIs(t, err, ErrInvalidSurvey)
}

func TestResample(t *testing.T) {
	s := mustSurvey(t, []Station{
		{MD: 0}, {MD: 7}, {MD: 23},
	})
	traj, err := s.Desurvey(MinimumCurvature)
	require.NoError(t, err)

	rs, err := traj.Resample(5)
	require.NoError(t, err)

	// 0, 5, 10, 15, 20 plus the final station at 23.
	require.Len(t, rs.Positions, 6)
	assert.Equal(t, 0.0, rs.Positions[0].MD)
	assert.Equal(t, 23.0, rs.Positions[len(rs.Positions)-1].MD)

	for i := 1; i < len(rs.Positions); i++ {
		assert.Greater(t, rs.Positions[i].MD, rs.Positions[i-1].MD)
	}
	// Vertical well: interpolated TVD tracks MD exactly.
	for _, p := range rs.Positions {
		assert.InDelta(t, p.MD, p.TVD, tol)
	}
}

func TestResampleFractionalStep(t *testing.T) {
	// 0.1 does not sum exactly in floating point; a running
	// accumulator leaks a point within epsilon of the final station.
	s := mustSurvey(t, []Station{{MD: 0}, {MD: 30}})
	traj, err := s.Desurvey(MinimumCurvature)
	require.NoError(t, err)

	rs, err := traj.Resample(0.1)
	require.NoError(t, err)

	// 300 generated points plus the final station.
	require.Len(t, rs.Positions, 301)
	assert.Equal(t, 30.0, rs.Positions[300].MD)
	for i := 1; i < len(rs.Positions); i++ {
		assert.Greater(t, rs.Positions[i].MD-rs.Positions[i-1].MD, 0.05)
	}
}

func TestResampleRejectsBadStep(t *testing.T) {
	s := mustSurvey(t, []Station{{MD: 0}, {MD: 10}})
	traj, err := s.Desurvey(MinimumCurvature)
	require.NoError(t, err)

	_, err = traj.Resample(0)
	assert.Error(t, err)
	_, err = traj.Resample(-5)
	assert.Error(t, err)
}

func TestShift(t *testing.T) {
	s := mustSurvey(t, []Station{{MD: 0}, {MD: 100}})
	traj, err := s.Desurvey(MinimumCurvature)
	require.NoError(t, err)

	abs := traj.Shift(1000, 2000, 150)
	require.Len(t, abs, 2)

	assert.InDelta(t, 1000, abs[1].Easting, tol)
	assert.InDelta(t, 2000, abs[1].Northing, tol)
	assert.InDelta(t, 150-100, abs[1].TVDSS, tol)
}

func TestPolar(t *testing.T) {
	s := mustSurvey(t, []Station{
		{MD: 0, Inclination: 90, Azimuth: 90},
		{MD: 100, Inclination: 90, Azimuth: 90},
	})
	traj, err := s.Desurvey(BalancedTangential)
	require.NoError(t, err)

	polar := traj.Polar()
	require.Len(t, polar, 2)
	// Due east: azimuth pi/2, radius equals horizontal displacement.
	assert.InDelta(t, math.Pi/2, polar[1].Azimuth, 1e-9)
	assert.InDelta(t, 100, polar[1].Radius, 1e-6)
}
