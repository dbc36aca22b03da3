package mapping

import (
	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Shape is anything with a point containment test. bounds.BoxItem,
// shape.Mesh, shape.Solid and kernel solids all satisfy it.
type Shape interface {
	Contains(p v3.Vec) bool
}

// SolidShape adapts a signed distance function: points with a
// non-positive distance are inside.
type SolidShape struct {
	SDF sdf.SDF3
}

func (s SolidShape) Contains(p v3.Vec) bool {
	return s.SDF.Evaluate(p) <= 0
}

// Condition decides whether Accept3 keeps a sample.
type Condition interface {
	Check(v v3.Vec) (bool, error)
}

// CondFunc adapts a predicate.
type CondFunc func(v v3.Vec) bool

func (f CondFunc) Check(v v3.Vec) (bool, error) { return f(v), nil }

// LengthCondition accepts vectors whose length lies in Range.
type LengthCondition struct {
	Range Range
}

func (c LengthCondition) Check(v v3.Vec) (bool, error) {
	return c.Range.Contains(v.Length()), nil
}

// VolumeCondition accepts points inside Shape.
type VolumeCondition struct {
	Shape Shape
}

func (c VolumeCondition) Check(v v3.Vec) (bool, error) {
	if c.Shape == nil {
		return false, geomerr.New("mapping.VolumeCondition", "reference shape not set")
	}
	return c.Shape.Contains(v), nil
}
