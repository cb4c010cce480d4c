// Package deviation models borehole deviation surveys and converts
// measured-depth/inclination/azimuth stations into 3-D trajectories.
package deviation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrInvalidSurvey reports a malformed survey: non-monotonic or
// duplicate measured depths, out-of-range angles, or a survey that
// does not start at measured depth zero.
var ErrInvalidSurvey = errors.New("invalid survey")

// Station is a single deviation survey measurement. MD is the
// measured depth along the borehole path, Inclination the angle from
// vertical in degrees, Azimuth the angle from north in degrees.
type Station struct {
	MD          float64
	Inclination float64
	Azimuth     float64
}

// Survey is an ordered, validated sequence of stations. Surveys are
// immutable after construction; NewSurvey copies its input.
type Survey struct {
	stations []Station
}

// NewSurvey validates the stations and returns a Survey. Measured
// depths must start at 0 and be strictly increasing; inclinations
// must lie in [0, 180) and azimuths in [0, 360). Any violation
// returns ErrInvalidSurvey before any trajectory computation happens.
func NewSurvey(stations []Station) (*Survey, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("%w: no stations", ErrInvalidSurvey)
	}
	if stations[0].MD != 0 {
		return nil, fmt.Errorf("%w: first station at MD %g, want 0", ErrInvalidSurvey, stations[0].MD)
	}
	for i, st := range stations {
		if st.Inclination < 0 || st.Inclination >= 180 {
			return nil, fmt.Errorf("%w: station %d inclination %g out of range [0,180)", ErrInvalidSurvey, i, st.Inclination)
		}
		if st.Azimuth < 0 || st.Azimuth >= 360 {
			return nil, fmt.Errorf("%w: station %d azimuth %g out of range [0,360)", ErrInvalidSurvey, i, st.Azimuth)
		}
		if i == 0 {
			continue
		}
		if st.MD == stations[i-1].MD {
			return nil, fmt.Errorf("%w: duplicate measured depth %g at station %d", ErrInvalidSurvey, st.MD, i)
		}
		if st.MD < stations[i-1].MD {
			return nil, fmt.Errorf("%w: measured depth not increasing at station %d (%g after %g)", ErrInvalidSurvey, i, st.MD, stations[i-1].MD)
		}
	}
	s := &Survey{stations: make([]Station, len(stations))}
	copy(s.stations, stations)
	return s, nil
}

// Stations returns a copy of the survey stations.
func (s *Survey) Stations() []Station {
	out := make([]Station, len(s.stations))
	copy(out, s.stations)
	return out
}

// Len returns the number of stations.
func (s *Survey) Len() int { return len(s.stations) }

// MaxMD returns the measured depth of the deepest station.
func (s *Survey) MaxMD() float64 {
	return s.stations[len(s.stations)-1].MD
}

// CSVOptions control how ReadCSV maps columns onto stations.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// Column headers for measured depth, inclination and azimuth.
	// Empty values default to "MD", "INC" and "AZI".
	MDColumn  string
	IncColumn string
	AziColumn string
}

func (o *CSVOptions) applyDefaults() {
	if o.Comma == 0 {
		o.Comma = ','
	}
	if o.MDColumn == "" {
		o.MDColumn = "MD"
	}
	if o.IncColumn == "" {
		o.IncColumn = "INC"
	}
	if o.AziColumn == "" {
		o.AziColumn = "AZI"
	}
}

// ReadCSV parses a delimited deviation file with a header row into a
// Survey. The caller owns the reader; typical use is open, parse,
// close. Validation is the same as NewSurvey.
func ReadCSV(r io.Reader, opts CSVOptions) (*Survey, error) {
	opts.applyDefaults()

	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read deviation header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	mdIdx, ok := cols[opts.MDColumn]
	if !ok {
		return nil, fmt.Errorf("%w: missing column %q", ErrInvalidSurvey, opts.MDColumn)
	}
	incIdx, ok := cols[opts.IncColumn]
	if !ok {
		return nil, fmt.Errorf("%w: missing column %q", ErrInvalidSurvey, opts.IncColumn)
	}
	aziIdx, ok := cols[opts.AziColumn]
	if !ok {
		return nil, fmt.Errorf("%w: missing column %q", ErrInvalidSurvey, opts.AziColumn)
	}

	var stations []Station
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read deviation line %d: %w", line, err)
		}
		st, err := parseStation(rec, mdIdx, incIdx, aziIdx)
		if err != nil {
			return nil, fmt.Errorf("deviation line %d: %w", line, err)
		}
		stations = append(stations, st)
	}

	return NewSurvey(stations)
}

func parseStation(rec []string, mdIdx, incIdx, aziIdx int) (Station, error) {
	var st Station
	var err error
	if st.MD, err = strconv.ParseFloat(rec[mdIdx], 64); err != nil {
		return st, fmt.Errorf("%w: bad measured depth %q", ErrInvalidSurvey, rec[mdIdx])
	}
	if st.Inclination, err = strconv.ParseFloat(rec[incIdx], 64); err != nil {
		return st, fmt.Errorf("%w: bad inclination %q", ErrInvalidSurvey, rec[incIdx])
	}
	if st.Azimuth, err = strconv.ParseFloat(rec[aziIdx], 64); err != nil {
		return st, fmt.Errorf("%w: bad azimuth %q", ErrInvalidSurvey, rec[aziIdx])
	}
	return st, nil
}
