package bounds

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// boxFaceIndices lists the vertex indices of the six box faces. Vertex i
// has the sign of rVec.X in bit 0, rVec.Y in bit 1 and rVec.Z in bit 2;
// each face winds outward.
var boxFaceIndices = [6][4]int{
	{0, 4, 6, 2}, // -x
	{1, 3, 7, 5}, // +x
	{0, 1, 5, 4}, // -y
	{2, 6, 7, 3}, // +y
	{0, 2, 3, 1}, // -z
	{4, 5, 7, 6}, // +z
}

// BoxItem is an axis-aligned bounding volume described by a center and a
// half-extent vector. Vertices and faces are derived lazily and dropped
// whenever the center or extents change.
type BoxItem struct {
	ID string

	center v3.Vec
	rVec   v3.Vec
	radius float64
	bounds sdf.Box3

	vertices []v3.Vec
	faces    []*Polygon
}

// NewBoxItem creates a box item from a center and half-extents.
func NewBoxItem(center, rVec v3.Vec, id string) *BoxItem {
	b := &BoxItem{ID: id, center: center, rVec: rVec.Abs()}
	b.updateBounds()
	return b
}

// NewBoxItemFromBounds creates a box item covering box.
func NewBoxItemFromBounds(box sdf.Box3, id string) *BoxItem {
	return NewBoxItem(box.Center(), Radius(box), id)
}

func (b *BoxItem) String() string {
	return fmt.Sprintf("BoxItem[%s; center=%v rVec=%v]", b.ID, b.center, b.rVec)
}

// updateBounds recomputes the derived radius and AABB and invalidates the
// vertex and face caches.
func (b *BoxItem) updateBounds() {
	b.radius = b.rVec.Length()
	b.bounds = sdf.Box3{Min: b.center.Sub(b.rVec), Max: b.center.Add(b.rVec)}
	b.ClearCache()
}

func (b *BoxItem) Center() v3.Vec   { return b.center }
func (b *BoxItem) RVec() v3.Vec     { return b.rVec }
func (b *BoxItem) Radius() float64  { return b.radius }
func (b *BoxItem) Bounds() sdf.Box3 { return b.bounds }

// SetCenter moves the box.
func (b *BoxItem) SetCenter(c v3.Vec) {
	b.center = c
	b.updateBounds()
}

// SetRVec sets the half-extents.
func (b *BoxItem) SetRVec(r v3.Vec) {
	b.rVec = r.Abs()
	b.updateBounds()
}

// SetBounds resizes the box to cover box.
func (b *BoxItem) SetBounds(box sdf.Box3) {
	b.center = box.Center()
	b.rVec = Radius(box)
	b.updateBounds()
}

// HasCache reports whether vertices or faces are currently cached.
func (b *BoxItem) HasCache() bool {
	return len(b.vertices) > 0 || len(b.faces) > 0
}

// ClearCache drops the cached vertices and faces.
func (b *BoxItem) ClearCache() {
	b.vertices = nil
	b.faces = nil
}

// Vertices returns the eight box corners, generating them on first use.
func (b *BoxItem) Vertices() []v3.Vec {
	if len(b.vertices) > 0 {
		return b.vertices
	}
	b.vertices = make([]v3.Vec, 8)
	for i := 0; i < 8; i++ {
		r := b.rVec
		if i&1 == 0 {
			r.X = -r.X
		}
		if i&2 == 0 {
			r.Y = -r.Y
		}
		if i&4 == 0 {
			r.Z = -r.Z
		}
		b.vertices[i] = b.center.Add(r)
	}
	return b.vertices
}

// Faces returns the six box faces as quads, generating them on first use.
func (b *BoxItem) Faces() []*Polygon {
	if len(b.faces) > 0 {
		return b.faces
	}
	verts := b.Vertices()
	b.faces = make([]*Polygon, 0, len(boxFaceIndices))
	for _, idx := range boxFaceIndices {
		b.faces = append(b.faces, &Polygon{Vertices: []v3.Vec{
			verts[idx[0]], verts[idx[1]], verts[idx[2]], verts[idx[3]],
		}})
	}
	return b.faces
}

// CheckPlane returns 1 if the box lies entirely on the side the plane
// normal points to, -1 if it lies entirely on the other side and 0 if it
// straddles the plane.
func (b *BoxItem) CheckPlane(pl Plane, tol float64) int {
	d := pl.SignedDistance(b.center)
	if d > b.radius {
		return 1
	}
	if d < -b.radius {
		return -1
	}
	side := 0
	for _, v := range b.Vertices() {
		c := pl.classify(v, tol)
		if c == 0 {
			return 0
		}
		if side == 0 {
			side = c
		} else if c != side {
			return 0
		}
	}
	return side
}

// CheckSphere returns 1 if the box is inside the sphere, -1 if it is
// outside and 0 if they intersect.
func (b *BoxItem) CheckSphere(s Sphere, tol float64) int {
	d := b.center.Sub(s.C).Length()
	if d+b.radius <= s.R+tol {
		return 1
	}
	if d-b.radius > s.R+tol {
		return -1
	}
	inside := true
	for _, v := range b.Vertices() {
		if v.Sub(s.C).Length() > s.R+tol {
			inside = false
			break
		}
	}
	if inside {
		return 1
	}
	// Closest point of the box to the sphere center.
	p := s.C.Max(b.bounds.Min).Min(b.bounds.Max)
	if p.Sub(s.C).Length() > s.R+tol {
		return -1
	}
	return 0
}

// CheckBounds returns 1 if the box is inside (or equal to) other, -1 if
// they are disjoint and 0 otherwise.
func (b *BoxItem) CheckBounds(other sdf.Box3, tol float64) int {
	switch Compare(b.bounds, other, tol) {
	case RangeEqual, RangeOtherContains:
		return 1
	case RangeDisjoint:
		return -1
	}
	return 0
}

// CheckBox compares b against another box item. See CheckBounds.
func (b *BoxItem) CheckBox(other *BoxItem, tol float64) int {
	return b.CheckBounds(other.bounds, tol)
}

// CheckLine reports whether the line intersects the box surface. The
// vertex and face caches are released afterwards.
func (b *BoxItem) CheckLine(l Line, tol float64) bool {
	defer b.ClearCache()
	return b.checkFaces(l, false, tol)
}

// CheckRay reports whether the ray intersects the box surface. Boxes
// entirely behind the ray origin are rejected before the face test. The
// vertex and face caches are released afterwards.
func (b *BoxItem) CheckRay(r Line, tol float64) bool {
	defer b.ClearCache()
	if b.CheckPlane(NewPlane(r.P, r.Direction()), tol) < 0 {
		return false
	}
	return b.checkFaces(r, true, tol)
}

func (b *BoxItem) checkFaces(l Line, ray bool, tol float64) bool {
	for _, f := range b.Faces() {
		if _, ok := f.Intersect(l, ray, tol); ok {
			return true
		}
	}
	return false
}

// Contains reports whether p lies inside the box, boundary included.
func (b *BoxItem) Contains(p v3.Vec) bool {
	return ContainsPoint(b.bounds, p, DefaultTolerance)
}
