package tops

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subsurface-tools/gobore/borehole"
)

const sampleTops = `Top,MD
Infill,3.0
Base Quaternary,9.5
Sand 1,28.5
Lignite 1,36.0
`

func TestReadWellTops(t *testing.T) {
	w, err := ReadWellTops(strings.NewReader(sampleTops), Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, w.Len())

	all := w.Tops()
	assert.Equal(t, "Infill", all[0].Name)
	assert.Equal(t, "m", all[0].Unit)
	assert.Equal(t, 36.0, all[3].Depth)
}

func TestReadWellTopsSortsByDepth(t *testing.T) {
	unsorted := "Top,MD\nDeep,100\nShallow,10\nMiddle,50\n"
	w, err := ReadWellTops(strings.NewReader(unsorted), Options{})
	require.NoError(t, err)

	names := []string{}
	for _, top := range w.Tops() {
		names = append(names, top.Name)
	}
	assert.Equal(t, []string{"Shallow", "Middle", "Deep"}, names)
}

func TestWellTopsLookup(t *testing.T) {
	w, err := ReadWellTops(strings.NewReader(sampleTops), Options{})
	require.NoError(t, err)

	top, err := w.Top("Sand 1")
	require.NoError(t, err)
	assert.Equal(t, 28.5, top.Depth)

	_, err = w.Top("Sand 99")
	assert.True(t, errors.Is(err, borehole.ErrNotFound))
}

func TestReadWellTopsCustomColumns(t *testing.T) {
	data := "Horizon;Depth\nInfill;3.0\n"
	w, err := ReadWellTops(strings.NewReader(data), Options{
		Comma:       ';',
		TopColumn:   "Horizon",
		DepthColumn: "Depth",
		Unit:        "ft",
	})
	require.NoError(t, err)
	assert.Equal(t, "ft", w.Tops()[0].Unit)
}

func TestReadWellTopsErrors(t *testing.T) {
	_, err := ReadWellTops(strings.NewReader("Top,MD\nInfill,deep\n"), Options{})
	assert.Error(t, err)

	_, err = ReadWellTops(strings.NewReader("Name,Depth\nInfill,3\n"), Options{})
	assert.Error(t, err)

	_, err = ReadWellTops(strings.NewReader(sampleTops), Options{Unit: "furlong"})
	assert.Error(t, err)
}

const sampleLitho = `Top,Base,Lithology
0,3,Infill
3,28.5,Sand
28.5,36,Clay
`

func TestReadLithoLog(t *testing.T) {
	l, err := ReadLithoLog(strings.NewReader(sampleLitho), LithoLogOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, Interval{Top: 3, Base: 28.5, Lithology: "Sand"}, l.Intervals()[1])
}

func TestLithoLogAt(t *testing.T) {
	l, err := ReadLithoLog(strings.NewReader(sampleLitho), LithoLogOptions{})
	require.NoError(t, err)

	iv, ok := l.At(10)
	require.True(t, ok)
	assert.Equal(t, "Sand", iv.Lithology)

	// Base of the last interval is included.
	iv, ok = l.At(36)
	require.True(t, ok)
	assert.Equal(t, "Clay", iv.Lithology)

	_, ok = l.At(50)
	assert.False(t, ok)
}

func TestReadLithoLogRejectsInvertedInterval(t *testing.T) {
	_, err := ReadLithoLog(strings.NewReader("Top,Base,Lithology\n10,5,Sand\n"), LithoLogOptions{})
	assert.Error(t, err)
}
