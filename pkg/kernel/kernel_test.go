package kernel

import (
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshAppendTriangle(t *testing.T) {
	m := &Mesh{}
	n := [3]float32{0, 0, 1}
	m.AppendTriangle([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}, n)
	m.AppendTriangle([3]float32{1, 0, 0}, [3]float32{1, 1, 0}, [3]float32{0, 1, 0}, n)

	if m.TriangleCount() != 2 || m.VertexCount() != 6 {
		t.Fatalf("got %d triangles / %d vertices, want 2 / 6", m.TriangleCount(), m.VertexCount())
	}
	if m.Indices[3] != 3 {
		t.Errorf("second triangle starts at index %d, want 3", m.Indices[3])
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Errorf("normals length %d != vertices length %d", len(m.Normals), len(m.Vertices))
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	bb sdf.Box3
}

func (s *stubSolid) BoundingBox() sdf.Box3 { return s.bb }

func (s *stubSolid) Contains(p v3.Vec) bool {
	return p.X >= s.bb.Min.X && p.X <= s.bb.Max.X &&
		p.Y >= s.bb.Min.Y && p.Y <= s.bb.Max.Y &&
		p.Z >= s.bb.Min.Z && p.Z <= s.bb.Max.Z
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. All methods return trivial results.
type stubKernel struct{}

func (k *stubKernel) Box(size v3.Vec) (Solid, error) {
	h := size.MulScalar(0.5)
	return &stubSolid{bb: sdf.Box3{Min: h.Neg(), Max: h}}, nil
}

func (k *stubKernel) Sphere(radius float64) (Solid, error) {
	return k.Box(v3.Vec{X: 2 * radius, Y: 2 * radius, Z: 2 * radius})
}

func (k *stubKernel) Cylinder(height, radius float64) (Solid, error) {
	return k.Box(v3.Vec{X: 2 * radius, Y: 2 * radius, Z: height})
}

func (k *stubKernel) Union(a, _ Solid) Solid        { return a }
func (k *stubKernel) Difference(a, _ Solid) Solid   { return a }
func (k *stubKernel) Intersection(a, _ Solid) Solid { return a }

func (k *stubKernel) Transform(s Solid, m sdf.M44) Solid {
	return &stubSolid{bb: m.MulBox(s.BoundingBox())}
}

func (k *stubKernel) ToMesh(_ Solid) (*Mesh, error) {
	return &Mesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelBoxBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, err := k.Box(v3.Vec{X: 10, Y: 20, Z: 30})
	if err != nil {
		t.Fatalf("Box() error = %v", err)
	}
	bb := s.BoundingBox()
	if bb.Min != (v3.Vec{X: -5, Y: -10, Z: -15}) {
		t.Errorf("Box min = %v, want [-5 -10 -15]", bb.Min)
	}
	if bb.Max != (v3.Vec{X: 5, Y: 10, Z: 15}) {
		t.Errorf("Box max = %v, want [5 10 15]", bb.Max)
	}
	if !s.Contains(v3.Vec{}) {
		t.Error("Box should contain its center")
	}
}

func TestStubKernelToMesh(t *testing.T) {
	var k Kernel = &stubKernel{}
	s, _ := k.Box(v3.Vec{X: 1, Y: 1, Z: 1})
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if !m.IsEmpty() {
		t.Error("stub ToMesh() should return empty mesh")
	}
}
