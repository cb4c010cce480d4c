package borehole

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetAddAndGet(t *testing.T) {
	ds, err := NewDataset(New("a", "Well A"), New("b", "Well B"))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"a", "b"}, ds.IDs())

	r, err := ds.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "Well B", r.Name)
}

func TestDatasetRejectsDuplicateID(t *testing.T) {
	ds, err := NewDataset(New("a", "Well A"))
	require.NoError(t, err)

	err = ds.Add(New("a", "Well A again"))
	assert.True(t, errors.Is(err, ErrDuplicateID))
	assert.Equal(t, 1, ds.Len())
}

func TestDatasetGetNotFound(t *testing.T) {
	ds, err := NewDataset()
	require.NoError(t, err)

	_, err = ds.Get("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDatasetRemove(t *testing.T) {
	ds, err := NewDataset(New("a", ""), New("b", ""), New("c", ""))
	require.NoError(t, err)

	require.NoError(t, ds.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, ds.IDs())

	err = ds.Remove("b")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDatasetRecordsIsACopy(t *testing.T) {
	ds, err := NewDataset(New("a", ""))
	require.NoError(t, err)

	records := ds.Records()
	records[0] = nil
	assert.NotNil(t, ds.Records()[0])
}
