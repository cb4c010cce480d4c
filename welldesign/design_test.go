package welldesign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsurface-tools/gobore/borehole"
	"github.com/subsurface-tools/gobore/units"
)

func conductor() Pipe {
	return Pipe{
		Name:          "Conductor Casing",
		Type:          ConductorCasing,
		Top:           0,
		Base:          35,
		DepthUnit:     units.Meter,
		InnerDiameter: 20,
		OuterDiameter: 21,
		DiameterUnit:  units.Inch,
		Shoe:          &Shoe{Height: 3, Width: 3, Unit: units.Inch},
	}
}

func surface() Pipe {
	return Pipe{
		Name:          "Surface Casing",
		Type:          SurfaceCasing,
		Top:           0,
		Base:          500,
		DepthUnit:     units.Meter,
		InnerDiameter: 13,
		OuterDiameter: 14,
		DiameterUnit:  units.Inch,
	}
}

func TestAddPipeAndLookup(t *testing.T) {
	d := New()
	require.NoError(t, d.AddPipe(conductor()))
	require.NoError(t, d.AddPipe(surface()))

	p, err := d.Pipe("Conductor Casing")
	require.NoError(t, err)
	assert.Equal(t, ConductorCasing, p.Type)
	assert.Equal(t, 35.0, p.Length())
	assert.Equal(t, 1.0, p.Thickness())

	names := []string{}
	for _, p := range d.Pipes() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Conductor Casing", "Surface Casing"}, names)

	_, err = d.Pipe("Production Liner")
	assert.True(t, errors.Is(err, borehole.ErrNotFound))
}

func TestAddPipeValidation(t *testing.T) {
	d := New()

	p := conductor()
	p.Type = "drill string"
	assert.ErrorIs(t, d.AddPipe(p), ErrInvalidPipe)

	p = conductor()
	p.Base = p.Top
	assert.ErrorIs(t, d.AddPipe(p), ErrInvalidPipe)

	p = conductor()
	p.DepthUnit = "furlong"
	assert.ErrorIs(t, d.AddPipe(p), ErrInvalidPipe)

	p = conductor()
	p.OuterDiameter = p.InnerDiameter
	assert.ErrorIs(t, d.AddPipe(p), ErrInvalidPipe)

	p = conductor()
	p.DiameterUnit = units.Meter
	assert.ErrorIs(t, d.AddPipe(p), ErrInvalidPipe)

	p = conductor()
	p.Shoe = &Shoe{Height: 3, Width: 3, Unit: "cm"}
	assert.ErrorIs(t, d.AddPipe(p), ErrInvalidPipe)

	assert.Equal(t, 0, len(d.Pipes()))
}

func TestAddPipeReplacesByName(t *testing.T) {
	d := New()
	require.NoError(t, d.AddPipe(conductor()))

	p := conductor()
	p.Base = 40
	require.NoError(t, d.AddPipe(p))

	assert.Equal(t, 1, len(d.Pipes()))
	got, err := d.Pipe("Conductor Casing")
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.Base)
}

func TestPipeUnitConversions(t *testing.T) {
	p := Pipe{
		Top: 0, Base: 100, DepthUnit: units.Meter,
		InnerDiameter: 254, OuterDiameter: 300, DiameterUnit: units.Millimeter,
	}

	_, base := p.DepthsIn(units.Foot)
	assert.InDelta(t, 328.084, base, 1e-3)

	inner, _ := p.DiametersIn(units.Inch)
	assert.InDelta(t, 10.0, inner, 1e-9)
}

func TestAddCement(t *testing.T) {
	d := New()
	require.NoError(t, d.AddPipe(conductor()))
	require.NoError(t, d.AddPipe(surface()))

	err := d.AddCement(Cement{
		Name:      "Cement 1",
		Top:       5,
		Base:      30,
		DepthUnit: units.Meter,
		InnerPipe: "Surface Casing",
		OuterPipe: "Conductor Casing",
	})
	require.NoError(t, err)

	c, err := d.Cement("Cement 1")
	require.NoError(t, err)
	assert.Equal(t, "Surface Casing", c.InnerPipe)
	assert.Equal(t, 1, len(d.Cements()))

	_, err = d.Cement("Cement 2")
	assert.True(t, errors.Is(err, borehole.ErrNotFound))
}

func TestAddCementValidation(t *testing.T) {
	d := New()
	require.NoError(t, d.AddPipe(conductor()))
	require.NoError(t, d.AddPipe(surface()))

	// Unknown pipe reference.
	err := d.AddCement(Cement{
		Name: "Cement 1", Top: 5, Base: 30, DepthUnit: units.Meter,
		InnerPipe: "Production Casing", OuterPipe: "Conductor Casing",
	})
	assert.ErrorIs(t, err, ErrInvalidCement)

	// Inner pipe wider than the outer pipe's bore.
	err = d.AddCement(Cement{
		Name: "Cement 1", Top: 5, Base: 30, DepthUnit: units.Meter,
		InnerPipe: "Conductor Casing", OuterPipe: "Surface Casing",
	})
	assert.ErrorIs(t, err, ErrInvalidCement)

	// Interval below the overlap of the two pipes.
	err = d.AddCement(Cement{
		Name: "Cement 1", Top: 40, Base: 60, DepthUnit: units.Meter,
		InnerPipe: "Surface Casing", OuterPipe: "Conductor Casing",
	})
	assert.ErrorIs(t, err, ErrInvalidCement)

	// Inverted interval.
	err = d.AddCement(Cement{
		Name: "Cement 1", Top: 30, Base: 5, DepthUnit: units.Meter,
		InnerPipe: "Surface Casing", OuterPipe: "Conductor Casing",
	})
	assert.ErrorIs(t, err, ErrInvalidCement)

	assert.Equal(t, 0, len(d.Cements()))
}

func TestMaxDepth(t *testing.T) {
	d := New()
	assert.Equal(t, 0.0, d.MaxDepth(units.Meter))

	require.NoError(t, d.AddPipe(conductor()))
	require.NoError(t, d.AddPipe(surface()))
	assert.Equal(t, 500.0, d.MaxDepth(units.Meter))
	assert.InDelta(t, 1640.42, d.MaxDepth(units.Foot), 1e-2)
}
