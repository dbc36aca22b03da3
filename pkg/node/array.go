package node

import (
	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/chazu/geoflow/pkg/transform"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Array lays items out on a row-major grid in the XY plane. The grid is
// centered on the origin and then moved by Offset. Items beyond
// Rows*Columns wrap around to the first row.
type Array struct {
	Rows, Columns         int
	CellWidth, CellHeight float64
	Offset                v3.Vec
}

func (a *Array) Name() string { return "array" }

func (a *Array) validate() error {
	if a.Rows <= 0 || a.Columns <= 0 {
		return geomerr.New("node.Array", "grid must have at least one row and column (got %dx%d)", a.Rows, a.Columns)
	}
	return nil
}

// CellCenter returns the center of the cell that item i is placed in.
func (a *Array) CellCenter(i int) (v3.Vec, error) {
	if err := a.validate(); err != nil {
		return v3.Vec{}, err
	}
	if i < 0 {
		return v3.Vec{}, geomerr.New("node.Array", "negative item index %d", i)
	}
	row := (i / a.Columns) % a.Rows
	col := i % a.Columns
	w := float64(a.Columns) * a.CellWidth
	h := float64(a.Rows) * a.CellHeight
	return v3.Vec{
		X: -w/2 + (float64(col)+0.5)*a.CellWidth,
		Y: h/2 - (float64(row)+0.5)*a.CellHeight,
	}.Add(a.Offset), nil
}

// Apply moves the bounds center of each item onto its cell center.
func (a *Array) Apply(g *transform.Group) error {
	if err := a.validate(); err != nil {
		return err
	}
	for i, it := range g.Items() {
		cell, err := a.CellCenter(i)
		if err != nil {
			return err
		}
		it.Translate(cell.Sub(transform.CenterOf(it, transform.CenterBounds)))
	}
	return nil
}
