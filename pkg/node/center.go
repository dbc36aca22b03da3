package node

import (
	"github.com/chazu/geoflow/pkg/transform"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Center moves each item's reference point onto Origin.
type Center struct {
	Method transform.CenteringMethod
	Origin v3.Vec
}

func (c *Center) Name() string { return "center" }

func (c *Center) Apply(g *transform.Group) error {
	for _, it := range g.Items() {
		transform.Center(it, c.Method, c.Origin)
	}
	return nil
}

// Normalize scales each item to unit size.
type Normalize struct{}

func (Normalize) Name() string { return "normalize" }

func (Normalize) Apply(g *transform.Group) error {
	for _, it := range g.Items() {
		transform.Normalize(it)
	}
	return nil
}
