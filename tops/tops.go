// Package tops reads well tops and lithology logs from delimited
// text files.
package tops

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/subsurface-tools/gobore/borehole"
	"github.com/subsurface-tools/gobore/units"
)

// Top is one named horizon with its measured depth.
type Top struct {
	Name  string
	Depth float64
	Unit  string
}

// WellTops is a depth-sorted set of named horizons.
type WellTops struct {
	tops []Top
}

// Options control column mapping for ReadWellTops.
type Options struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// TopColumn and DepthColumn name the relevant header columns.
	// Empty values default to "Top" and "MD".
	TopColumn   string
	DepthColumn string
	// Unit is the depth unit recorded on every top. Empty means "m".
	Unit string
}

func (o *Options) applyDefaults() error {
	if o.Comma == 0 {
		o.Comma = ','
	}
	if o.TopColumn == "" {
		o.TopColumn = "Top"
	}
	if o.DepthColumn == "" {
		o.DepthColumn = "MD"
	}
	if o.Unit == "" {
		o.Unit = units.Meter
	}
	if !units.IsValid(o.Unit) {
		return fmt.Errorf("well tops: invalid depth unit %q (valid: %s)", o.Unit, units.ValidUnitsString())
	}
	return nil
}

// ReadWellTops parses a delimited well-tops file with a header row.
// Tops are returned sorted by depth.
func ReadWellTops(r io.Reader, opts Options) (*WellTops, error) {
	if err := opts.applyDefaults(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read well tops header: %w", err)
	}
	topIdx, depthIdx := -1, -1
	for i, name := range header {
		switch name {
		case opts.TopColumn:
			topIdx = i
		case opts.DepthColumn:
			depthIdx = i
		}
	}
	if topIdx < 0 {
		return nil, fmt.Errorf("well tops: missing column %q", opts.TopColumn)
	}
	if depthIdx < 0 {
		return nil, fmt.Errorf("well tops: missing column %q", opts.DepthColumn)
	}

	var tops []Top
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read well tops line %d: %w", line, err)
		}
		depth, err := strconv.ParseFloat(rec[depthIdx], 64)
		if err != nil {
			return nil, fmt.Errorf("well tops line %d: bad depth %q", line, rec[depthIdx])
		}
		tops = append(tops, Top{Name: rec[topIdx], Depth: depth, Unit: opts.Unit})
	}

	sort.SliceStable(tops, func(i, j int) bool { return tops[i].Depth < tops[j].Depth })
	return &WellTops{tops: tops}, nil
}

// Tops returns all tops sorted by depth.
func (w *WellTops) Tops() []Top {
	out := make([]Top, len(w.tops))
	copy(out, w.tops)
	return out
}

// Len returns the number of tops.
func (w *WellTops) Len() int { return len(w.tops) }

// Top returns the named horizon, or borehole.ErrNotFound.
func (w *WellTops) Top(name string) (Top, error) {
	for _, t := range w.tops {
		if t.Name == name {
			return t, nil
		}
	}
	return Top{}, fmt.Errorf("well top %q: %w", name, borehole.ErrNotFound)
}
