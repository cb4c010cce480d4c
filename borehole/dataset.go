package borehole

import (
	"errors"
	"fmt"
)

// ErrDuplicateID reports an attempt to add a record whose ID is
// already present in a dataset.
var ErrDuplicateID = errors.New("duplicate borehole id")

// Dataset is an ordered collection of Records with unique IDs.
type Dataset struct {
	records []*Record
	byID    map[string]*Record
}

// NewDataset creates a Dataset holding the given records. Duplicate
// IDs are rejected.
func NewDataset(records ...*Record) (*Dataset, error) {
	ds := &Dataset{byID: map[string]*Record{}}
	for _, r := range records {
		if err := ds.Add(r); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Add appends a record, rejecting duplicate IDs.
func (ds *Dataset) Add(r *Record) error {
	if r == nil {
		return fmt.Errorf("add borehole: nil record")
	}
	if _, exists := ds.byID[r.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
	}
	ds.records = append(ds.records, r)
	ds.byID[r.ID] = r
	return nil
}

// Get returns the record with the given ID, or ErrNotFound.
func (ds *Dataset) Get(id string) (*Record, error) {
	r, ok := ds.byID[id]
	if !ok {
		return nil, fmt.Errorf("borehole %q: %w", id, ErrNotFound)
	}
	return r, nil
}

// Remove deletes the record with the given ID, or returns
// ErrNotFound.
func (ds *Dataset) Remove(id string) error {
	if _, ok := ds.byID[id]; !ok {
		return fmt.Errorf("borehole %q: %w", id, ErrNotFound)
	}
	delete(ds.byID, id)
	for i, r := range ds.records {
		if r.ID == id {
			ds.records = append(ds.records[:i], ds.records[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of records.
func (ds *Dataset) Len() int { return len(ds.records) }

// IDs returns record IDs in insertion order.
func (ds *Dataset) IDs() []string {
	out := make([]string, len(ds.records))
	for i, r := range ds.records {
		out[i] = r.ID
	}
	return out
}

// Records returns the records in insertion order. The slice is a
// copy; the records are not.
func (ds *Dataset) Records() []*Record {
	out := make([]*Record, len(ds.records))
	copy(out, ds.records)
	return out
}
