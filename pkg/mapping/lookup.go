package mapping

import (
	"math"

	"github.com/chazu/geoflow/pkg/geomerr"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Lookup3 is a table of vectors indexed by a parameter in [0, 1]. The
// table is filled explicitly or by sampling Source.
type Lookup3 struct {
	Source Vector3

	entries []v3.Vec
}

// NewLookup3 returns a table backed by src. Call Update to fill it.
func NewLookup3(src Vector3) *Lookup3 {
	return &Lookup3{Source: src}
}

// NumEntries returns the table size.
func (l *Lookup3) NumEntries() int {
	return len(l.entries)
}

// Entries returns a copy of the table.
func (l *Lookup3) Entries() []v3.Vec {
	out := make([]v3.Vec, len(l.entries))
	copy(out, l.entries)
	return out
}

// Entry returns entry i.
func (l *Lookup3) Entry(i int) (v3.Vec, error) {
	if i < 0 || i >= len(l.entries) {
		return v3.Vec{}, geomerr.New("mapping.Lookup3", "index %d out of range (%d entries)", i, len(l.entries))
	}
	return l.entries[i], nil
}

// AddEntry appends v.
func (l *Lookup3) AddEntry(v v3.Vec) {
	l.entries = append(l.entries, v)
}

// Clear removes all entries.
func (l *Lookup3) Clear() {
	l.entries = nil
}

// Update replaces the table with n samples of Source taken at evenly
// spaced parameters in [0, 1]. A single entry is sampled at 0.5.
func (l *Lookup3) Update(n int) error {
	if l.Source == nil {
		return geomerr.New("mapping.Lookup3", "source not set")
	}
	if n < 0 {
		return geomerr.New("mapping.Lookup3", "negative entry count %d", n)
	}
	entries := make([]v3.Vec, n)
	for i := range entries {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		v, err := l.Source.Call(t)
		if err != nil {
			return err
		}
		entries[i] = v
	}
	l.entries = entries
	return nil
}

// Call returns the entry covering t. A NaN parameter is an error.
func (l *Lookup3) Call(t float64) (v3.Vec, error) {
	n := len(l.entries)
	if n == 0 {
		return v3.Vec{}, geomerr.New("mapping.Lookup3", "table is empty")
	}
	if math.IsNaN(t) {
		return v3.Vec{}, geomerr.New("mapping.Lookup3", "parameter is NaN")
	}
	idx := int(UnitRange.Clamp(t) * float64(n))
	idx = max(0, min(idx, n-1))
	return l.entries[idx], nil
}
