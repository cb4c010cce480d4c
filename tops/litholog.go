package tops

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Interval is one lithology interval: top and base depth plus the
// lithology description.
type Interval struct {
	Top       float64
	Base      float64
	Lithology string
}

// LithoLog is an ordered sequence of lithology intervals.
type LithoLog struct {
	intervals []Interval
}

// LithoLogOptions control column mapping for ReadLithoLog.
type LithoLogOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// Column headers; empty values default to "Top", "Base" and
	// "Lithology".
	TopColumn       string
	BaseColumn      string
	LithologyColumn string
}

func (o *LithoLogOptions) applyDefaults() {
	if o.Comma == 0 {
		o.Comma = ','
	}
	if o.TopColumn == "" {
		o.TopColumn = "Top"
	}
	if o.BaseColumn == "" {
		o.BaseColumn = "Base"
	}
	if o.LithologyColumn == "" {
		o.LithologyColumn = "Lithology"
	}
}

// ReadLithoLog parses a delimited litholog file with a header row.
// Intervals with base above top are rejected.
func ReadLithoLog(r io.Reader, opts LithoLogOptions) (*LithoLog, error) {
	opts.applyDefaults()

	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read litholog header: %w", err)
	}
	topIdx, baseIdx, lithIdx := -1, -1, -1
	for i, name := range header {
		switch name {
		case opts.TopColumn:
			topIdx = i
		case opts.BaseColumn:
			baseIdx = i
		case opts.LithologyColumn:
			lithIdx = i
		}
	}
	if topIdx < 0 || baseIdx < 0 || lithIdx < 0 {
		return nil, fmt.Errorf("litholog: missing one of columns %q, %q, %q",
			opts.TopColumn, opts.BaseColumn, opts.LithologyColumn)
	}

	var intervals []Interval
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read litholog line %d: %w", line, err)
		}
		top, err := strconv.ParseFloat(rec[topIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("litholog line %d: bad top %q", line, rec[topIdx])
		}
		base, err := strconv.ParseFloat(rec[baseIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("litholog line %d: bad base %q", line, rec[baseIdx])
		}
		if base < top {
			return nil, fmt.Errorf("litholog line %d: base %g above top %g", line, base, top)
		}
		intervals = append(intervals, Interval{Top: top, Base: base, Lithology: rec[lithIdx]})
	}

	return &LithoLog{intervals: intervals}, nil
}

// Intervals returns the intervals in file order.
func (l *LithoLog) Intervals() []Interval {
	out := make([]Interval, len(l.intervals))
	copy(out, l.intervals)
	return out
}

// Len returns the number of intervals.
func (l *LithoLog) Len() int { return len(l.intervals) }

// At returns the interval containing the given depth (top inclusive,
// base exclusive; the last interval includes its base).
func (l *LithoLog) At(depth float64) (Interval, bool) {
	for i, iv := range l.intervals {
		if depth >= iv.Top && (depth < iv.Base || (i == len(l.intervals)-1 && depth == iv.Base)) {
			return iv, true
		}
	}
	return Interval{}, false
}
