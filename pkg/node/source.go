package node

import (
	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/chazu/geoflow/pkg/transform"
)

// Source feeds a fixed group into a pipeline. Every update emits a fresh
// copy, so repeated runs start from the same geometry.
type Source struct {
	Group *transform.Group
}

func (s *Source) Name() string { return "source" }

// Emit returns a copy of the configured group.
func (s *Source) Emit() (*transform.Group, error) {
	if s.Group == nil {
		return nil, geomerr.New("node.Source", "group not set")
	}
	return s.Group.CloneGroup(), nil
}

// Apply leaves the group unchanged.
func (s *Source) Apply(*transform.Group) error { return nil }
