package bounds

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Plane is an oriented plane through P with unit normal N.
type Plane struct {
	P v3.Vec
	N v3.Vec
}

// NewPlane creates a plane through p. The normal is normalized.
func NewPlane(p, normal v3.Vec) Plane {
	return Plane{P: p, N: normal.Normalize()}
}

// SignedDistance is positive on the side the normal points to.
func (pl Plane) SignedDistance(q v3.Vec) float64 {
	return pl.N.Dot(q.Sub(pl.P))
}

// classify returns 1, -1 or 0 (within tol of the plane).
func (pl Plane) classify(q v3.Vec, tol float64) int {
	d := pl.SignedDistance(q)
	switch {
	case d > tol:
		return 1
	case d < -tol:
		return -1
	}
	return 0
}

// Sphere is a ball with center C and radius R.
type Sphere struct {
	C v3.Vec
	R float64
}

// Line is the infinite line through P and Q. Used as a ray it starts at P
// and points towards Q.
type Line struct {
	P v3.Vec
	Q v3.Vec
}

// Direction returns Q - P.
func (l Line) Direction() v3.Vec {
	return l.Q.Sub(l.P)
}

// At returns the point at parameter t.
func (l Line) At(t float64) v3.Vec {
	return l.P.Add(l.Direction().MulScalar(t))
}

// Polygon is a planar convex polygon.
type Polygon struct {
	Vertices []v3.Vec
}

// Normal computes the polygon normal using Newell's method. The result is
// zero for degenerate polygons.
func (pg *Polygon) Normal() v3.Vec {
	var n v3.Vec
	num := len(pg.Vertices)
	for i := 0; i < num; i++ {
		a := pg.Vertices[i]
		b := pg.Vertices[(i+1)%num]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	if n.Length() == 0 {
		return n
	}
	return n.Normalize()
}

// Contains reports whether a point on the polygon's plane lies inside it.
func (pg *Polygon) Contains(p v3.Vec, tol float64) bool {
	n := pg.Normal()
	num := len(pg.Vertices)
	pos, neg := false, false
	for i := 0; i < num; i++ {
		a := pg.Vertices[i]
		b := pg.Vertices[(i+1)%num]
		c := b.Sub(a).Cross(p.Sub(a)).Dot(n)
		if c > tol {
			pos = true
		} else if c < -tol {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}

// Intersect intersects l with the polygon. If ray is set, hits behind l.P
// are ignored.
func (pg *Polygon) Intersect(l Line, ray bool, tol float64) (v3.Vec, bool) {
	if len(pg.Vertices) < 3 {
		return v3.Vec{}, false
	}
	n := pg.Normal()
	if n.Length() == 0 {
		return v3.Vec{}, false
	}
	d := l.Direction()
	denom := n.Dot(d)
	if math.Abs(denom) < 1e-12 {
		return v3.Vec{}, false
	}
	t := n.Dot(pg.Vertices[0].Sub(l.P)) / denom
	if ray && t < -tol {
		return v3.Vec{}, false
	}
	p := l.At(t)
	if !pg.Contains(p, tol) {
		return v3.Vec{}, false
	}
	return p, true
}
