// Package kernel defines the abstract geometry kernel interface used by
// solid leaf objects. Implementations (sdfx) provide primitives, boolean
// operations and matrix transforms behind this interface, plus
// tessellation into render meshes.
package kernel

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() sdf.Box3
	// Contains reports whether p lies inside the solid.
	Contains(p v3.Vec) bool
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives, centered on the origin.
	Box(size v3.Vec) (Solid, error)
	Sphere(radius float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transform maps the solid through m. m must be invertible.
	Transform(s Solid, m sdf.M44) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
