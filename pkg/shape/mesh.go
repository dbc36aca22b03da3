// Package shape provides the leaf objects of a transform tree: polygon
// meshes whose vertices are realized in place and kernel solids that are
// realized by wrapping them in a matrix transform.
package shape

import (
	"fmt"

	"github.com/chazu/geoflow/pkg/bounds"
	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/chazu/geoflow/pkg/kernel"
	"github.com/chazu/geoflow/pkg/transform"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Mesh is a polygon mesh leaf. Faces index into Vertices and are wound
// counter-clockwise when seen from outside.
type Mesh struct {
	transform.Base
	ID string

	vertices []v3.Vec
	faces    [][]int
}

// NewMesh builds a mesh and checks that every face index is in range and
// every face has at least three vertices.
func NewMesh(id string, vertices []v3.Vec, faces [][]int) (*Mesh, error) {
	for fi, f := range faces {
		if len(f) < 3 {
			return nil, geomerr.New("shape.NewMesh", "face %d has %d vertices", fi, len(f))
		}
		for _, vi := range f {
			if vi < 0 || vi >= len(vertices) {
				return nil, geomerr.New("shape.NewMesh", "face %d references vertex %d (%d vertices)", fi, vi, len(vertices))
			}
		}
	}
	m := &Mesh{ID: id, vertices: make([]v3.Vec, len(vertices)), faces: make([][]int, len(faces))}
	copy(m.vertices, vertices)
	for i, f := range faces {
		m.faces[i] = append([]int(nil), f...)
	}
	return m, nil
}

// NewCuboid returns an axis-aligned box mesh of the given size centered on
// the origin.
func NewCuboid(id string, size v3.Vec) *Mesh {
	h := size.MulScalar(0.5)
	item := bounds.NewBoxItem(v3.Vec{}, h, id)
	m, _ := NewMesh(id, item.Vertices(), cuboidFaces)
	return m
}

// Corner i of a box has bit 0 set for +x, bit 1 for +y, bit 2 for +z.
var cuboidFaces = [][]int{
	{0, 2, 3, 1}, // -z
	{4, 5, 7, 6}, // +z
	{0, 1, 5, 4}, // -y
	{2, 6, 7, 3}, // +y
	{0, 4, 6, 2}, // -x
	{1, 3, 7, 5}, // +x
}

// NewOctahedron returns a regular octahedron with its vertices at distance
// radius from the origin along the axes.
func NewOctahedron(id string, radius float64) *Mesh {
	r := radius
	verts := []v3.Vec{
		{X: r}, {X: -r},
		{Y: r}, {Y: -r},
		{Z: r}, {Z: -r},
	}
	faces := [][]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	}
	m, _ := NewMesh(id, verts, faces)
	return m
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh[%s; %d vertices, %d faces]", m.ID, len(m.vertices), len(m.faces))
}

// NumVertices returns the vertex count.
func (m *Mesh) NumVertices() int {
	return len(m.vertices)
}

// NumFaces returns the face count.
func (m *Mesh) NumFaces() int {
	return len(m.faces)
}

// Vertex returns vertex i with any pending transform applied.
func (m *Mesh) Vertex(i int) (v3.Vec, error) {
	if i < 0 || i >= len(m.vertices) {
		return v3.Vec{}, geomerr.New("shape.Vertex", "index %d out of range (%d vertices)", i, len(m.vertices))
	}
	return m.ApplyToPoint(m.vertices[i]), nil
}

// Vertices returns the stored vertices. Pending transforms are not applied.
func (m *Mesh) Vertices() []v3.Vec {
	out := make([]v3.Vec, len(m.vertices))
	copy(out, m.vertices)
	return out
}

// Bounds returns the bounds of the vertices under the pending transform.
func (m *Mesh) Bounds() sdf.Box3 {
	return m.CachedBounds(func() sdf.Box3 {
		var bb sdf.Box3
		for i, v := range m.vertices {
			bb = bounds.Extend(bb, i > 0, bounds.PointBox(m.ApplyToPoint(v)))
		}
		return bb
	})
}

// Barycenter returns the vertex centroid under the pending transform.
func (m *Mesh) Barycenter() v3.Vec {
	if len(m.vertices) == 0 {
		return v3.Vec{}
	}
	var sum v3.Vec
	for _, v := range m.vertices {
		sum = sum.Add(v)
	}
	return m.ApplyToPoint(sum.DivScalar(float64(len(m.vertices))))
}

// ApplyTransform bakes the pending transform into the vertices.
func (m *Mesh) ApplyTransform(recursive bool) {
	if m.Pending() {
		t := m.Combined()
		for i, v := range m.vertices {
			m.vertices[i] = t.MulPosition(v)
		}
	}
	m.ClearTransform()
}

// Clone returns a deep copy.
func (m *Mesh) Clone() transform.Object {
	c := &Mesh{Base: m.CloneBase(), ID: m.ID, vertices: m.Vertices(), faces: make([][]int, len(m.faces))}
	for i, f := range m.faces {
		c.faces[i] = append([]int(nil), f...)
	}
	return c
}

// Polygons returns one polygon per face with pending transforms applied.
func (m *Mesh) Polygons() []bounds.Polygon {
	polys := make([]bounds.Polygon, len(m.faces))
	for i, f := range m.faces {
		vs := make([]v3.Vec, len(f))
		for j, vi := range f {
			vs[j] = m.ApplyToPoint(m.vertices[vi])
		}
		polys[i] = bounds.Polygon{Vertices: vs}
	}
	return polys
}

// Contains reports whether p lies inside the mesh. The mesh must be
// convex and closed.
func (m *Mesh) Contains(p v3.Vec) bool {
	polys := m.Polygons()
	if len(polys) == 0 {
		return false
	}
	for i := range polys {
		pl := bounds.NewPlane(polys[i].Vertices[0], polys[i].Normal())
		if pl.SignedDistance(p) > bounds.DefaultTolerance {
			return false
		}
	}
	return true
}

// BoxItem returns a bounding box item for the mesh, for intersection
// tests against planes, spheres and rays.
func (m *Mesh) BoxItem() *bounds.BoxItem {
	return bounds.NewBoxItemFromBounds(m.Bounds(), m.ID)
}

// ToKernelMesh triangulates each face as a fan and returns a flat-shaded
// render mesh.
func (m *Mesh) ToKernelMesh() *kernel.Mesh {
	out := &kernel.Mesh{Name: m.ID}
	for _, p := range m.Polygons() {
		n := f32(p.Normal())
		for j := 1; j+1 < len(p.Vertices); j++ {
			out.AppendTriangle(f32(p.Vertices[0]), f32(p.Vertices[j]), f32(p.Vertices[j+1]), n)
		}
	}
	return out
}

func f32(v v3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
