// Package borehole holds the borehole aggregate: a Record with
// identity, surface location and metadata that owns attached log
// curves and at most one deviation survey. Records are not safe for
// concurrent mutation; callers sharing a Record across goroutines
// must serialise access themselves.
package borehole

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/subsurface-tools/gobore/deviation"
)

// ErrNotFound reports a lookup for a name or ID that is not present.
var ErrNotFound = errors.New("not found")

// Record is one borehole: identity, surface location, total depth and
// free-form metadata, plus owned logs and an optional deviation
// survey.
type Record struct {
	ID   string
	Name string

	// Surface location. CRS is an opaque code such as "EPSG:25832";
	// no coordinate transformation is performed anywhere.
	X         float64
	Y         float64
	CRS       string
	Elevation float64

	// TotalDepth is the drilled depth. Attaching a log or survey that
	// reaches deeper extends it (with a logged warning) rather than
	// failing.
	TotalDepth float64

	Metadata map[string]string

	logs     map[string]*LogCurve
	logOrder []string

	survey *deviation.Survey
	method deviation.Method
	traj   *deviation.Trajectory
}

// New creates a Record. An empty id gets a generated UUID so dataset
// keys are always usable.
func New(id, name string) *Record {
	if id == "" {
		id = uuid.NewString()
	}
	return &Record{
		ID:       id,
		Name:     name,
		Metadata: map[string]string{},
		logs:     map[string]*LogCurve{},
	}
}

// SetLocation sets the surface location and CRS code in one call.
func (r *Record) SetLocation(x, y float64, crs string) {
	r.X = x
	r.Y = y
	r.CRS = crs
}

// AttachLog attaches a curve to the record. The record takes
// ownership of the curve. A curve reaching below TotalDepth extends
// TotalDepth and logs a warning; attaching under an existing curve
// name replaces the previous curve and logs a warning.
func (r *Record) AttachLog(c *LogCurve) error {
	if c == nil {
		return fmt.Errorf("%w: nil curve", ErrInvalidCurve)
	}
	if len(c.samples) == 0 {
		return fmt.Errorf("%w: curve %q has no samples", ErrInvalidCurve, c.Name)
	}

	if max := c.MaxDepth(); max > r.TotalDepth {
		log.Printf("borehole %s: curve %q reaches %.2f below total depth %.2f; extending total depth",
			r.ID, c.Name, max, r.TotalDepth)
		r.TotalDepth = max
	}

	if _, exists := r.logs[c.Name]; exists {
		log.Printf("borehole %s: replacing existing curve %q", r.ID, c.Name)
	} else {
		r.logOrder = append(r.logOrder, c.Name)
	}
	r.logs[c.Name] = c
	return nil
}

// Log returns the attached curve with the given name, or ErrNotFound.
func (r *Record) Log(name string) (*LogCurve, error) {
	c, ok := r.logs[name]
	if !ok {
		return nil, fmt.Errorf("curve %q: %w", name, ErrNotFound)
	}
	return c, nil
}

// LogNames returns attached curve names in attach order.
func (r *Record) LogNames() []string {
	out := make([]string, len(r.logOrder))
	copy(out, r.logOrder)
	return out
}

// Logs returns the attached curves in attach order.
func (r *Record) Logs() []*LogCurve {
	out := make([]*LogCurve, 0, len(r.logOrder))
	for _, name := range r.logOrder {
		out = append(out, r.logs[name])
	}
	return out
}

// AttachDeviation attaches a deviation survey. A record holds at most
// one survey: reattachment replaces the previous survey and discards
// any cached trajectory. A survey reaching below TotalDepth extends
// TotalDepth with a logged warning, mirroring AttachLog.
func (r *Record) AttachDeviation(s *deviation.Survey) error {
	if s == nil {
		return fmt.Errorf("%w: nil survey", deviation.ErrInvalidSurvey)
	}
	if max := s.MaxMD(); max > r.TotalDepth {
		log.Printf("borehole %s: survey reaches MD %.2f below total depth %.2f; extending total depth",
			r.ID, max, r.TotalDepth)
		r.TotalDepth = max
	}
	if r.survey != nil {
		log.Printf("borehole %s: replacing deviation survey", r.ID)
	}
	r.survey = s
	r.traj = nil
	return nil
}

// Survey returns the attached deviation survey, or ErrNotFound when
// none is attached.
func (r *Record) Survey() (*deviation.Survey, error) {
	if r.survey == nil {
		return nil, fmt.Errorf("deviation survey: %w", ErrNotFound)
	}
	return r.survey, nil
}

// HasDeviation reports whether a deviation survey is attached.
func (r *Record) HasDeviation() bool { return r.survey != nil }

// SetDesurveyMethod changes the desurveying method used by
// Trajectory and discards any cached trajectory. The zero value is
// minimum curvature.
func (r *Record) SetDesurveyMethod(m deviation.Method) {
	if m != r.method {
		r.method = m
		r.traj = nil
	}
}

// DesurveyMethod returns the method Trajectory will use.
func (r *Record) DesurveyMethod() deviation.Method { return r.method }

// Trajectory desurveys the attached survey, caching the result until
// the survey or method changes. Returns ErrNotFound when no survey is
// attached.
func (r *Record) Trajectory() (*deviation.Trajectory, error) {
	if r.survey == nil {
		return nil, fmt.Errorf("deviation survey: %w", ErrNotFound)
	}
	if r.traj != nil {
		return r.traj, nil
	}
	t, err := r.survey.Desurvey(r.method)
	if err != nil {
		return nil, fmt.Errorf("desurvey borehole %s: %w", r.ID, err)
	}
	r.traj = t
	return t, nil
}
