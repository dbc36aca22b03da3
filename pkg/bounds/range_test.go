package bounds

import (
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float64) sdf.Box3 {
	return sdf.Box3{Min: v3.Vec{X: minX, Y: minY, Z: minZ}, Max: v3.Vec{X: maxX, Y: maxY, Z: maxZ}}
}

func TestCompare(t *testing.T) {
	a := box(0, 0, 0, 2, 2, 2)
	tests := []struct {
		name string
		b    sdf.Box3
		want Relation
	}{
		{"equal", box(0, 0, 0, 2, 2, 2), RangeEqual},
		{"disjoint", box(3, 0, 0, 4, 2, 2), RangeDisjoint},
		{"first contains", box(0.5, 0.5, 0.5, 1, 1, 1), RangeFirstContains},
		{"other contains", box(-1, -1, -1, 3, 3, 3), RangeOtherContains},
		{"overlap", box(1, 1, 1, 3, 3, 3), RangeOverlap},
		{"touching", box(2, 0, 0, 3, 2, 2), RangeOverlap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(a, tt.b, DefaultTolerance)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestExtendAndRadius(t *testing.T) {
	b := Extend(sdf.Box3{}, false, box(1, 1, 1, 2, 2, 2))
	assert.Equal(t, box(1, 1, 1, 2, 2, 2), b)
	b = Extend(b, true, PointBox(v3.Vec{X: -1}))
	assert.Equal(t, box(-1, 0, 0, 2, 2, 2), b)
	assert.Equal(t, v3.Vec{X: 1.5, Y: 1, Z: 1}, Radius(b))
}

func TestPolygonIntersect(t *testing.T) {
	sq := &Polygon{Vertices: []v3.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}}
	l := Line{P: v3.Vec{X: 0.5, Y: 0.5, Z: 1}, Q: v3.Vec{X: 0.5, Y: 0.5, Z: 2}}

	p, ok := sq.Intersect(l, false, DefaultTolerance)
	assert.True(t, ok)
	assert.InDelta(t, 0.0, p.Z, 1e-12)

	_, ok = sq.Intersect(l, true, DefaultTolerance)
	assert.False(t, ok, "ray points away from the square")

	parallel := Line{P: v3.Vec{Z: 1}, Q: v3.Vec{X: 1, Z: 1}}
	_, ok = sq.Intersect(parallel, false, DefaultTolerance)
	assert.False(t, ok)
}
