package tessellate_test

import (
	"math"
	"testing"

	"github.com/chazu/geoflow/pkg/kernel"
	"github.com/chazu/geoflow/pkg/kernel/sdfx"
	"github.com/chazu/geoflow/pkg/shape"
	"github.com/chazu/geoflow/pkg/tessellate"
	"github.com/chazu/geoflow/pkg/transform"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newKernel returns a coarse sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.NewWithCells(40)
}

// pointCloud is a leaf that is neither a polygon mesh nor a kernel solid.
type pointCloud struct {
	transform.Base
	pts []v3.Vec
}

func (p *pointCloud) Bounds() sdf.Box3 {
	return p.CachedBounds(func() sdf.Box3 {
		bb := sdf.Box3{Min: p.ApplyToPoint(p.pts[0]), Max: p.ApplyToPoint(p.pts[0])}
		for _, q := range p.pts[1:] {
			q = p.ApplyToPoint(q)
			bb = bb.Extend(sdf.Box3{Min: q, Max: q})
		}
		return bb
	})
}

func (p *pointCloud) Barycenter() v3.Vec {
	var sum v3.Vec
	for _, q := range p.pts {
		sum = sum.Add(q)
	}
	return p.ApplyToPoint(sum.DivScalar(float64(len(p.pts))))
}

func (p *pointCloud) ApplyTransform(recursive bool) {
	for i, q := range p.pts {
		p.pts[i] = p.ApplyToPoint(q)
	}
	p.ClearTransform()
}

func (p *pointCloud) Clone() transform.Object {
	return &pointCloud{Base: p.CloneBase(), pts: append([]v3.Vec(nil), p.pts...)}
}

// extent returns the min and max vertex coordinates of a mesh.
func extent(m *kernel.Mesh) (lo, hi v3.Vec) {
	lo = v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = lo.Neg()
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		p := v3.Vec{X: float64(m.Vertices[i]), Y: float64(m.Vertices[i+1]), Z: float64(m.Vertices[i+2])}
		lo = v3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = v3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return lo, hi
}

func TestNilGroup(t *testing.T) {
	meshes, err := tessellate.Tessellate(nil, newKernel())
	require.NoError(t, err)
	assert.Empty(t, meshes)
}

func TestEmptyGroup(t *testing.T) {
	meshes, err := tessellate.Tessellate(transform.NewGroup("empty"), newKernel())
	require.NoError(t, err)
	assert.Empty(t, meshes)
}

func TestPolygonLeaves(t *testing.T) {
	g := transform.NewGroup("items")
	require.NoError(t, g.AddItems(
		shape.NewCuboid("shelf", v3.Vec{X: 2, Y: 2, Z: 2}),
		shape.NewOctahedron("", 1),
	))

	meshes, err := tessellate.Tessellate(g, newKernel())
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	assert.Equal(t, "shelf", meshes[0].Name)
	assert.Equal(t, 12, meshes[0].TriangleCount())
	assert.Equal(t, "item-1", meshes[1].Name)
	assert.Equal(t, 8, meshes[1].TriangleCount())
}

func TestNestedTransformsAreRealized(t *testing.T) {
	inner := transform.NewGroup("inner")
	c := shape.NewCuboid("c", v3.Vec{X: 2, Y: 2, Z: 2})
	c.Translate(v3.Vec{X: 1})
	require.NoError(t, inner.AddItem(c))
	inner.Translate(v3.Vec{Y: 10})

	outer := transform.NewGroup("outer")
	require.NoError(t, outer.AddItem(inner))
	outer.Translate(v3.Vec{Z: -5})

	meshes, err := tessellate.Tessellate(outer, newKernel())
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	lo, hi := extent(meshes[0])
	assert.InDelta(t, 0, lo.X, 1e-5)
	assert.InDelta(t, 2, hi.X, 1e-5)
	assert.InDelta(t, 9, lo.Y, 1e-5)
	assert.InDelta(t, 11, hi.Y, 1e-5)
	assert.InDelta(t, -6, lo.Z, 1e-5)
	assert.InDelta(t, -4, hi.Z, 1e-5)

	// The input tree keeps its pending transforms.
	assert.True(t, outer.Pending())
	assert.True(t, inner.Pending())
	assert.True(t, c.Pending())
}

func TestSolidLeaf(t *testing.T) {
	k := newKernel()
	s, err := k.Box(v3.Vec{X: 10, Y: 10, Z: 10})
	require.NoError(t, err)
	leaf, err := shape.NewSolid("block", k, s)
	require.NoError(t, err)
	leaf.Translate(v3.Vec{X: 100})

	g := transform.NewGroup("solids")
	require.NoError(t, g.AddItem(leaf))

	meshes, err := tessellate.Tessellate(g, k)
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Equal(t, "block", meshes[0].Name)
	assert.False(t, meshes[0].IsEmpty())

	lo, hi := extent(meshes[0])
	assert.InDelta(t, 95, lo.X, 0.5)
	assert.InDelta(t, 105, hi.X, 0.5)
}

func TestOtherLeavesUseBounds(t *testing.T) {
	p := &pointCloud{pts: []v3.Vec{{X: -5, Y: -5, Z: -5}, {X: 5, Y: 5, Z: 5}}}
	p.Translate(v3.Vec{Z: 20})
	g := transform.NewGroup("points")
	require.NoError(t, g.AddItem(p))

	meshes, err := tessellate.Tessellate(g, newKernel())
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Equal(t, "item-0", meshes[0].Name)
	assert.False(t, meshes[0].IsEmpty())

	lo, hi := extent(meshes[0])
	assert.InDelta(t, 15, lo.Z, 0.5)
	assert.InDelta(t, 25, hi.Z, 0.5)
}

func TestOtherLeavesNeedKernel(t *testing.T) {
	g := transform.NewGroup("points")
	require.NoError(t, g.AddItem(&pointCloud{pts: []v3.Vec{{}, {X: 1, Y: 1, Z: 1}}}))

	_, err := tessellate.Tessellate(g, nil)
	assert.Error(t, err)
}
