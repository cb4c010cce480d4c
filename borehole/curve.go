package borehole

import (
	"errors"
	"fmt"
)

// ErrInvalidCurve reports a log curve that violates the depth
// ordering rules: unnamed, empty, or with non-increasing depths.
var ErrInvalidCurve = errors.New("invalid log curve")

// Sample is one depth-indexed measurement of a log curve.
type Sample struct {
	Depth float64
	Value float64
}

// LogCurve is a named, unit-tagged series of depth-indexed samples
// with strictly increasing depths. A curve is owned by exactly one
// Record once attached.
type LogCurve struct {
	Name    string
	Unit    string
	samples []Sample
}

// NewLogCurve validates the samples and returns a LogCurve. Depths
// must be strictly increasing with no duplicates.
func NewLogCurve(name, unit string, samples []Sample) (*LogCurve, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty curve name", ErrInvalidCurve)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: curve %q has no samples", ErrInvalidCurve, name)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Depth <= samples[i-1].Depth {
			return nil, fmt.Errorf("%w: curve %q depth not increasing at sample %d (%g after %g)",
				ErrInvalidCurve, name, i, samples[i].Depth, samples[i-1].Depth)
		}
	}
	c := &LogCurve{Name: name, Unit: unit, samples: make([]Sample, len(samples))}
	copy(c.samples, samples)
	return c, nil
}

// Samples returns a copy of the curve samples in depth order.
func (c *LogCurve) Samples() []Sample {
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	return out
}

// Len returns the number of samples.
func (c *LogCurve) Len() int { return len(c.samples) }

// MinDepth returns the shallowest sample depth.
func (c *LogCurve) MinDepth() float64 { return c.samples[0].Depth }

// MaxDepth returns the deepest sample depth.
func (c *LogCurve) MaxDepth() float64 { return c.samples[len(c.samples)-1].Depth }

// Depths returns the sample depths as a slice.
func (c *LogCurve) Depths() []float64 {
	out := make([]float64, len(c.samples))
	for i, s := range c.samples {
		out[i] = s.Depth
	}
	return out
}

// Values returns the sample values as a slice, index-aligned with
// Depths.
func (c *LogCurve) Values() []float64 {
	out := make([]float64, len(c.samples))
	for i, s := range c.samples {
		out[i] = s.Value
	}
	return out
}
