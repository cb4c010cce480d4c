// Package welldesign models the casing scheme of a borehole: pipes
// with depth intervals and diameters, optional casing shoes, and
// cement columns filling the annulus between two pipes.
package welldesign

import (
	"errors"
	"fmt"

	"github.com/subsurface-tools/gobore/borehole"
	"github.com/subsurface-tools/gobore/units"
)

// ErrInvalidPipe reports a pipe that fails validation.
var ErrInvalidPipe = errors.New("invalid pipe")

// ErrInvalidCement reports a cement column that fails validation or
// references pipes not in the design.
var ErrInvalidCement = errors.New("invalid cement")

// PipeType names the role of a pipe in the casing scheme.
type PipeType string

const (
	ConductorCasing    PipeType = "conductor casing"
	SurfaceCasing      PipeType = "surface casing"
	IntermediateCasing PipeType = "intermediate casing"
	ProductionCasing   PipeType = "production casing"
	ProductionLiner    PipeType = "production liner"
	OpenHoleSection    PipeType = "open hole section"
)

var pipeTypes = map[PipeType]bool{
	ConductorCasing:    true,
	SurfaceCasing:      true,
	IntermediateCasing: true,
	ProductionCasing:   true,
	ProductionLiner:    true,
	OpenHoleSection:    true,
}

// Shoe is the casing shoe at the base of a pipe.
type Shoe struct {
	Height float64
	Width  float64
	// Unit is the shoe size unit, millimeters or inches.
	Unit string
}

// Pipe is one casing or liner string. Depths grow downward from the
// wellhead, diameters are the pipe bore and body sizes.
type Pipe struct {
	Name string
	Type PipeType

	Top  float64
	Base float64
	// DepthUnit is meters or feet.
	DepthUnit string

	InnerDiameter float64
	OuterDiameter float64
	// DiameterUnit is millimeters or inches.
	DiameterUnit string

	Shoe *Shoe
}

// Length returns the pipe length in its depth unit.
func (p *Pipe) Length() float64 { return p.Base - p.Top }

// Thickness returns the diameter difference in the pipe's diameter
// unit.
func (p *Pipe) Thickness() float64 { return p.OuterDiameter - p.InnerDiameter }

// DepthsIn returns top and base converted to the given depth unit.
func (p *Pipe) DepthsIn(unit string) (top, base float64) {
	return units.ConvertDepth(p.Top, p.DepthUnit, unit), units.ConvertDepth(p.Base, p.DepthUnit, unit)
}

// DiametersIn returns inner and outer diameter converted to the given
// diameter unit.
func (p *Pipe) DiametersIn(unit string) (inner, outer float64) {
	return units.ConvertDiameter(p.InnerDiameter, p.DiameterUnit, unit),
		units.ConvertDiameter(p.OuterDiameter, p.DiameterUnit, unit)
}

func (p *Pipe) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidPipe)
	}
	if !pipeTypes[p.Type] {
		return fmt.Errorf("%w: unknown pipe type %q", ErrInvalidPipe, string(p.Type))
	}
	if p.Base <= p.Top {
		return fmt.Errorf("%w: %s: base %g not below top %g", ErrInvalidPipe, p.Name, p.Base, p.Top)
	}
	if !units.IsValid(p.DepthUnit) {
		return fmt.Errorf("%w: %s: invalid depth unit %q (valid: %s)", ErrInvalidPipe, p.Name, p.DepthUnit, units.ValidUnitsString())
	}
	if p.InnerDiameter <= 0 || p.OuterDiameter <= p.InnerDiameter {
		return fmt.Errorf("%w: %s: diameters %g/%g", ErrInvalidPipe, p.Name, p.InnerDiameter, p.OuterDiameter)
	}
	if !units.IsValidDiameter(p.DiameterUnit) {
		return fmt.Errorf("%w: %s: invalid diameter unit %q (valid: %s)", ErrInvalidPipe, p.Name, p.DiameterUnit, units.ValidDiameterUnitsString())
	}
	if p.Shoe != nil {
		if p.Shoe.Height <= 0 || p.Shoe.Width <= 0 {
			return fmt.Errorf("%w: %s: shoe size %g x %g", ErrInvalidPipe, p.Name, p.Shoe.Width, p.Shoe.Height)
		}
		if !units.IsValidDiameter(p.Shoe.Unit) {
			return fmt.Errorf("%w: %s: invalid shoe unit %q (valid: %s)", ErrInvalidPipe, p.Name, p.Shoe.Unit, units.ValidDiameterUnitsString())
		}
	}
	return nil
}

// Cement is one cement column in the annulus between an inner and an
// outer pipe of the design.
type Cement struct {
	Name string

	Top  float64
	Base float64
	// DepthUnit is meters or feet.
	DepthUnit string

	// InnerPipe and OuterPipe name pipes already added to the design.
	InnerPipe string
	OuterPipe string
}

// Design is the casing scheme of one borehole. Pipes and cements keep
// insertion order and are looked up by name.
type Design struct {
	pipes        []*Pipe
	pipeByName   map[string]*Pipe
	cements      []*Cement
	cementByName map[string]*Cement
}

// New returns an empty design.
func New() *Design {
	return &Design{
		pipeByName:   map[string]*Pipe{},
		cementByName: map[string]*Cement{},
	}
}

// AddPipe validates the pipe and adds it to the design. A pipe with a
// name already in the design replaces the old one in place.
func (d *Design) AddPipe(p Pipe) error {
	if err := p.validate(); err != nil {
		return err
	}
	if p.Shoe != nil {
		shoe := *p.Shoe
		p.Shoe = &shoe
	}
	if old, ok := d.pipeByName[p.Name]; ok {
		*old = p
		return nil
	}
	added := p
	d.pipes = append(d.pipes, &added)
	d.pipeByName[p.Name] = &added
	return nil
}

// Pipe returns the named pipe, or borehole.ErrNotFound.
func (d *Design) Pipe(name string) (*Pipe, error) {
	p, ok := d.pipeByName[name]
	if !ok {
		return nil, fmt.Errorf("pipe %q: %w", name, borehole.ErrNotFound)
	}
	return p, nil
}

// Pipes returns all pipes in insertion order.
func (d *Design) Pipes() []*Pipe {
	out := make([]*Pipe, len(d.pipes))
	copy(out, d.pipes)
	return out
}

// AddCement validates the cement column and adds it. Both referenced
// pipes must already be in the design and the column must lie inside
// the overlap of their intervals, compared in the cement's depth unit.
func (d *Design) AddCement(c Cement) error {
	if c.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCement)
	}
	if c.Base <= c.Top {
		return fmt.Errorf("%w: %s: base %g not below top %g", ErrInvalidCement, c.Name, c.Base, c.Top)
	}
	if !units.IsValid(c.DepthUnit) {
		return fmt.Errorf("%w: %s: invalid depth unit %q (valid: %s)", ErrInvalidCement, c.Name, c.DepthUnit, units.ValidUnitsString())
	}
	inner, ok := d.pipeByName[c.InnerPipe]
	if !ok {
		return fmt.Errorf("%w: %s: inner pipe %q not in design", ErrInvalidCement, c.Name, c.InnerPipe)
	}
	outer, ok := d.pipeByName[c.OuterPipe]
	if !ok {
		return fmt.Errorf("%w: %s: outer pipe %q not in design", ErrInvalidCement, c.Name, c.OuterPipe)
	}
	_, innerBody := inner.DiametersIn(units.Millimeter)
	outerBore, _ := outer.DiametersIn(units.Millimeter)
	if innerBody >= outerBore {
		return fmt.Errorf("%w: %s: pipe %q does not fit inside %q", ErrInvalidCement, c.Name, c.InnerPipe, c.OuterPipe)
	}

	iTop, iBase := inner.DepthsIn(c.DepthUnit)
	oTop, oBase := outer.DepthsIn(c.DepthUnit)
	top := iTop
	if oTop > top {
		top = oTop
	}
	base := iBase
	if oBase < base {
		base = oBase
	}
	if c.Top < top || c.Base > base {
		return fmt.Errorf("%w: %s: interval %g-%g outside pipe overlap %g-%g", ErrInvalidCement, c.Name, c.Top, c.Base, top, base)
	}

	if old, ok := d.cementByName[c.Name]; ok {
		*old = c
		return nil
	}
	added := c
	d.cements = append(d.cements, &added)
	d.cementByName[c.Name] = &added
	return nil
}

// Cement returns the named cement column, or borehole.ErrNotFound.
func (d *Design) Cement(name string) (*Cement, error) {
	c, ok := d.cementByName[name]
	if !ok {
		return nil, fmt.Errorf("cement %q: %w", name, borehole.ErrNotFound)
	}
	return c, nil
}

// Cements returns all cement columns in insertion order.
func (d *Design) Cements() []*Cement {
	out := make([]*Cement, len(d.cements))
	copy(out, d.cements)
	return out
}

// MaxDepth returns the deepest pipe base in the given depth unit, or
// zero for an empty design.
func (d *Design) MaxDepth(unit string) float64 {
	var max float64
	for _, p := range d.pipes {
		if _, base := p.DepthsIn(unit); base > max {
			max = base
		}
	}
	return max
}
