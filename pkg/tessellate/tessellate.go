// Package tessellate turns the leaves of a realized item group into
// triangle meshes. One mesh is produced per leaf.
package tessellate

import (
	"fmt"

	"github.com/chazu/geoflow/pkg/kernel"
	"github.com/chazu/geoflow/pkg/shape"
	"github.com/chazu/geoflow/pkg/transform"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("pkg", "tessellate")

// Tessellate produces one triangle mesh per leaf of g. Pending transforms
// anywhere in the tree are applied to a copy first; g itself is never
// mutated.
//
// Polygon meshes are triangulated directly and kernel solids are meshed by
// their own kernel. Any other leaf is approximated by a box of its bounds
// built with k.
func Tessellate(g *transform.Group, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	realized := g.CloneGroup()
	realized.ApplyTransform(true)

	var meshes []*kernel.Mesh
	for i, leaf := range realized.LeafItems() {
		m, err := tessellateLeaf(k, leaf)
		if err != nil {
			return nil, fmt.Errorf("tessellate: leaf %d: %w", i, err)
		}
		if m.Name == "" {
			m.Name = fmt.Sprintf("item-%d", i)
		}
		meshes = append(meshes, m)
	}

	logger.WithFields(logrus.Fields{
		"meshes":    len(meshes),
		"triangles": lo.SumBy(meshes, (*kernel.Mesh).TriangleCount),
	}).Debug("group tessellated")
	return meshes, nil
}

// tessellateLeaf meshes a single leaf with no pending transform.
func tessellateLeaf(k kernel.Kernel, leaf transform.Object) (*kernel.Mesh, error) {
	switch o := leaf.(type) {
	case *shape.Mesh:
		return o.ToKernelMesh(), nil
	case *shape.Solid:
		return o.ToKernelMesh()
	default:
		return boundsMesh(k, leaf)
	}
}

// boundsMesh meshes the bounding box of an arbitrary leaf.
func boundsMesh(k kernel.Kernel, leaf transform.Object) (*kernel.Mesh, error) {
	if k == nil {
		return nil, fmt.Errorf("no kernel to mesh %T", leaf)
	}
	bb := leaf.Bounds()
	box, err := k.Box(bb.Size())
	if err != nil {
		return nil, fmt.Errorf("bounds of %T: %w", leaf, err)
	}
	solid, err := shape.NewSolid("", k, box)
	if err != nil {
		return nil, err
	}
	solid.Translate(bb.Center())
	return solid.ToKernelMesh()
}
