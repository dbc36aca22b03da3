package mapping

import (
	"github.com/chazu/geoflow/pkg/geomerr"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vector3 maps a parameter to a point.
type Vector3 interface {
	Call(t float64) (v3.Vec, error)
}

// Constant3 always returns Value.
type Constant3 struct {
	Value v3.Vec
}

func (c Constant3) Call(float64) (v3.Vec, error) { return c.Value, nil }

// Lerp3 interpolates linearly from A (t=0) to B (t=1).
type Lerp3 struct {
	A, B v3.Vec
}

func (l Lerp3) Call(t float64) (v3.Vec, error) {
	return l.A.Add(l.B.Sub(l.A).MulScalar(t)), nil
}

// Func3 adapts a plain function.
type Func3 func(t float64) v3.Vec

func (f Func3) Call(t float64) (v3.Vec, error) { return f(t), nil }

// Compose3 builds a vector from one scalar mapping per axis. An unset Y
// repeats the X value and an unset Z repeats the Y value.
type Compose3 struct {
	X, Y, Z Scalar
}

func (c *Compose3) Call(t float64) (v3.Vec, error) {
	if c.X == nil {
		return v3.Vec{}, geomerr.New("mapping.Compose3", "x mapping not set")
	}
	var v v3.Vec
	v.X = c.X.Call(t)
	v.Y = v.X
	if c.Y != nil {
		v.Y = c.Y.Call(t)
	}
	v.Z = v.Y
	if c.Z != nil {
		v.Z = c.Z.Call(t)
	}
	return v, nil
}
