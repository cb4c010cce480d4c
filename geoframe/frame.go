// Package geoframe provides a spatial view over borehole records:
// point rows keyed by surface location, with bounding-box and
// proximity queries and GeoJSON export. Distances are Euclidean in
// the records' shared CRS; no coordinate transformation is performed,
// so mixing CRS codes in one frame is rejected.
package geoframe

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/subsurface-tools/gobore/borehole"
)

// ErrCRSMismatch reports records with differing CRS codes offered to
// the same frame.
var ErrCRSMismatch = errors.New("mixed coordinate reference systems")

// ErrEmptyFrame reports a query against a frame with no rows.
var ErrEmptyFrame = errors.New("empty frame")

// Row is one borehole in the frame.
type Row struct {
	ID         string
	Name       string
	X          float64
	Y          float64
	Elevation  float64
	TotalDepth float64
	CRS        string
	Metadata   map[string]string
}

// Frame is an immutable spatial view over a set of records.
type Frame struct {
	crs  string
	rows []Row
}

// New builds a frame from records. All records must share one CRS
// code (empty counts as its own code).
func New(records ...*borehole.Record) (*Frame, error) {
	f := &Frame{}
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("geoframe: nil record at index %d", i)
		}
		if i == 0 {
			f.crs = r.CRS
		} else if r.CRS != f.crs {
			return nil, fmt.Errorf("%w: %q vs %q", ErrCRSMismatch, f.crs, r.CRS)
		}
		var meta map[string]string
		if len(r.Metadata) > 0 {
			meta = make(map[string]string, len(r.Metadata))
			for k, v := range r.Metadata {
				meta[k] = v
			}
		}
		f.rows = append(f.rows, Row{
			ID:         r.ID,
			Name:       r.Name,
			X:          r.X,
			Y:          r.Y,
			Elevation:  r.Elevation,
			TotalDepth: r.TotalDepth,
			CRS:        r.CRS,
			Metadata:   meta,
		})
	}
	return f, nil
}

// FromDataset builds a frame over a whole dataset.
func FromDataset(ds *borehole.Dataset) (*Frame, error) {
	return New(ds.Records()...)
}

// CRS returns the shared CRS code of the frame.
func (f *Frame) CRS() string { return f.crs }

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// Rows returns all rows in insertion order.
func (f *Frame) Rows() []Row {
	out := make([]Row, len(f.rows))
	copy(out, f.rows)
	return out
}

// Bounds returns the min/max X and Y over all rows.
func (f *Frame) Bounds() (minX, minY, maxX, maxY float64, err error) {
	if len(f.rows) == 0 {
		return 0, 0, 0, 0, ErrEmptyFrame
	}
	minX, maxX = f.rows[0].X, f.rows[0].X
	minY, maxY = f.rows[0].Y, f.rows[0].Y
	for _, r := range f.rows[1:] {
		minX = math.Min(minX, r.X)
		maxX = math.Max(maxX, r.X)
		minY = math.Min(minY, r.Y)
		maxY = math.Max(maxY, r.Y)
	}
	return minX, minY, maxX, maxY, nil
}

// Within returns the rows inside the closed bounding box.
func (f *Frame) Within(minX, minY, maxX, maxY float64) []Row {
	var out []Row
	for _, r := range f.rows {
		if r.X >= minX && r.X <= maxX && r.Y >= minY && r.Y <= maxY {
			out = append(out, r)
		}
	}
	return out
}

// Near returns the rows within radius of (x, y), closest first.
func (f *Frame) Near(x, y, radius float64) []Row {
	var (
		hits  []Row
		dists []float64
	)
	for _, r := range f.rows {
		d := math.Hypot(r.X-x, r.Y-y)
		if d <= radius {
			hits = append(hits, r)
			dists = append(dists, d)
		}
	}
	if len(hits) < 2 {
		return hits
	}
	inds := make([]int, len(dists))
	floats.Argsort(dists, inds)
	out := make([]Row, len(hits))
	for i, idx := range inds {
		out[i] = hits[idx]
	}
	return out
}

// Nearest returns the row closest to (x, y).
func (f *Frame) Nearest(x, y float64) (Row, error) {
	if len(f.rows) == 0 {
		return Row{}, ErrEmptyFrame
	}
	best := 0
	bestDist := math.Hypot(f.rows[0].X-x, f.rows[0].Y-y)
	for i, r := range f.rows[1:] {
		if d := math.Hypot(r.X-x, r.Y-y); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}
	return f.rows[best], nil
}

// GeoJSON renders the frame as a FeatureCollection of point features.
func (f *Frame) GeoJSON() ([]byte, error) {
	type geometry struct {
		Type        string     `json:"type"`
		Coordinates [2]float64 `json:"coordinates"`
	}
	type feature struct {
		Type       string         `json:"type"`
		Geometry   geometry       `json:"geometry"`
		Properties map[string]any `json:"properties"`
	}
	type collection struct {
		Type     string    `json:"type"`
		Features []feature `json:"features"`
	}

	coll := collection{Type: "FeatureCollection", Features: []feature{}}
	for _, r := range f.rows {
		props := map[string]any{
			"id":          r.ID,
			"name":        r.Name,
			"elevation":   r.Elevation,
			"total_depth": r.TotalDepth,
		}
		if r.CRS != "" {
			props["crs"] = r.CRS
		}
		for k, v := range r.Metadata {
			props["meta_"+k] = v
		}
		coll.Features = append(coll.Features, feature{
			Type:       "Feature",
			Geometry:   geometry{Type: "Point", Coordinates: [2]float64{r.X, r.Y}},
			Properties: props,
		})
	}
	return json.MarshalIndent(coll, "", "  ")
}
