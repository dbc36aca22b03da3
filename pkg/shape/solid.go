package shape

import (
	"fmt"

	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/chazu/geoflow/pkg/kernel"
	"github.com/chazu/geoflow/pkg/transform"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is a leaf wrapping a kernel solid. Realizing a pending transform
// replaces the solid with its transformed version.
type Solid struct {
	transform.Base
	ID string

	k     kernel.Kernel
	solid kernel.Solid
}

// NewSolid wraps s, which must have been created by k.
func NewSolid(id string, k kernel.Kernel, s kernel.Solid) (*Solid, error) {
	if k == nil || s == nil {
		return nil, geomerr.New("shape.NewSolid", "kernel and solid are required")
	}
	return &Solid{ID: id, k: k, solid: s}, nil
}

func (s *Solid) String() string {
	return fmt.Sprintf("Solid[%s]", s.ID)
}

// Kernel returns the kernel that owns the solid.
func (s *Solid) Kernel() kernel.Kernel {
	return s.k
}

// KernelSolid returns the wrapped solid. Pending transforms are not applied.
func (s *Solid) KernelSolid() kernel.Solid {
	return s.solid
}

// Bounds maps the solid's bounding box through the pending transform.
func (s *Solid) Bounds() sdf.Box3 {
	return s.CachedBounds(func() sdf.Box3 {
		bb := s.solid.BoundingBox()
		if !s.Pending() {
			return bb
		}
		return s.Combined().MulBox(bb)
	})
}

// Barycenter returns the center of the untransformed bounding box under
// the pending transform.
func (s *Solid) Barycenter() v3.Vec {
	return s.ApplyToPoint(s.solid.BoundingBox().Center())
}

// Contains reports whether p lies inside the solid under the pending
// transform.
func (s *Solid) Contains(p v3.Vec) bool {
	if s.Pending() {
		p = s.Combined().Inverse().MulPosition(p)
	}
	return s.solid.Contains(p)
}

// ApplyTransform wraps the solid in the pending transform.
func (s *Solid) ApplyTransform(recursive bool) {
	if s.Pending() {
		s.solid = s.k.Transform(s.solid, s.Combined())
	}
	s.ClearTransform()
}

// Clone returns a copy sharing the immutable kernel solid.
func (s *Solid) Clone() transform.Object {
	return &Solid{Base: s.CloneBase(), ID: s.ID, k: s.k, solid: s.solid}
}

// ToKernelMesh tessellates the realized solid.
func (s *Solid) ToKernelMesh() (*kernel.Mesh, error) {
	solid := s.solid
	if s.Pending() {
		solid = s.k.Transform(solid, s.Combined())
	}
	m, err := s.k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("shape: ToMesh failed for solid %s: %w", s.ID, err)
	}
	m.Name = s.ID
	return m, nil
}
