package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/geoflow/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// testCells keeps marching cubes fast in tests.
const testCells = 40

func mustBox(t *testing.T, k *SdfxKernel, x, y, z float64) kernel.Solid {
	t.Helper()
	s, err := k.Box(v3.Vec{X: x, Y: y, Z: z})
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	return s
}

func TestBox(t *testing.T) {
	k := NewWithCells(testCells)
	box, err := k.Box(v3.Vec{X: 100, Y: 50, Z: 25})
	if err != nil {
		t.Fatalf("Box failed: %v", err)
	}
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestBoxInvalidSize(t *testing.T) {
	k := New()
	if _, err := k.Box(v3.Vec{X: -1, Y: 1, Z: 1}); err == nil {
		t.Fatal("expected error for negative box size")
	}
}

func TestSphereContains(t *testing.T) {
	k := New()
	s, err := k.Sphere(2)
	if err != nil {
		t.Fatalf("Sphere failed: %v", err)
	}
	if !s.Contains(v3.Vec{X: 1.9}) {
		t.Error("sphere should contain (1.9,0,0)")
	}
	if s.Contains(v3.Vec{X: 1.5, Y: 1.5}) {
		t.Error("sphere should not contain (1.5,1.5,0)")
	}
}

func TestCylinder(t *testing.T) {
	k := NewWithCells(testCells)
	cyl, err := k.Cylinder(50, 10)
	if err != nil {
		t.Fatalf("Cylinder failed: %v", err)
	}
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	bb := cyl.BoundingBox()
	if math.Abs(bb.Max.Z-25) > 1e-9 {
		t.Errorf("cylinder max z = %f, want 25", bb.Max.Z)
	}
}

func TestBooleans(t *testing.T) {
	k := New()
	a := mustBox(t, k, 2, 2, 2)
	b, _ := k.Box(v3.Vec{X: 2, Y: 2, Z: 2})
	b = k.Transform(b, sdf.Translate3d(v3.Vec{X: 1}))

	u := k.Union(a, b)
	if !u.Contains(v3.Vec{X: -0.9}) || !u.Contains(v3.Vec{X: 1.9}) {
		t.Error("union should contain both operands")
	}

	d := k.Difference(a, b)
	if !d.Contains(v3.Vec{X: -0.9}) {
		t.Error("difference should keep the part of a outside b")
	}
	if d.Contains(v3.Vec{X: 0.5}) {
		t.Error("difference should remove the overlap")
	}

	i := k.Intersection(a, b)
	if !i.Contains(v3.Vec{X: 0.5}) {
		t.Error("intersection should contain the overlap")
	}
	if i.Contains(v3.Vec{X: -0.9}) {
		t.Error("intersection should not contain points only in a")
	}
}

func TestTransformBoundingBox(t *testing.T) {
	k := New()
	box, _ := k.Box(v3.Vec{X: 10, Y: 10, Z: 10})
	moved := k.Transform(box, sdf.Translate3d(v3.Vec{X: 50, Y: 0, Z: 0}))
	bb := moved.BoundingBox()

	if math.Abs(bb.Min.X-45) > 0.01 {
		t.Errorf("translated bbox min X = %f, want 45", bb.Min.X)
	}
	if math.Abs(bb.Max.X-55) > 0.01 {
		t.Errorf("translated bbox max X = %f, want 55", bb.Max.X)
	}
	if !moved.Contains(v3.Vec{X: 50}) {
		t.Error("translated box should contain its new center")
	}
}

func TestTransformRotate(t *testing.T) {
	k := New()
	box, _ := k.Box(v3.Vec{X: 10, Y: 2, Z: 2})
	rot := k.Transform(box, sdf.Rotate3d(v3.Vec{Z: 1}, math.Pi/2))
	// Long axis moves from X to Y.
	if !rot.Contains(v3.Vec{Y: 4.5}) {
		t.Error("rotated box should extend along Y")
	}
	if rot.Contains(v3.Vec{X: 4.5}) {
		t.Error("rotated box should no longer extend along X")
	}
}

func TestSDF(t *testing.T) {
	k := New()
	box, _ := k.Box(v3.Vec{X: 1, Y: 1, Z: 1})
	s, ok := SDF(box)
	if !ok || s == nil {
		t.Fatal("SDF should unwrap solids created by this kernel")
	}
	if s.Evaluate(v3.Vec{}) >= 0 {
		t.Error("center should evaluate negative")
	}
}
