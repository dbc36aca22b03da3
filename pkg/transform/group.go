package transform

import (
	"fmt"

	"github.com/chazu/geoflow/pkg/bounds"
	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Group is an ordered collection of objects that is itself an object.
// The group exclusively owns its items; groups form a tree.
type Group struct {
	Base
	ID string

	items []Object
	// itemsGen is the sum of item generations the bounds cache was built from.
	itemsGen uint64
}

// NewGroup creates an empty group.
func NewGroup(id string) *Group {
	return &Group{ID: id}
}

func (g *Group) String() string {
	return fmt.Sprintf("Group[%s; %d items]", g.ID, len(g.items))
}

// AsGroup returns g.
func (g *Group) AsGroup() (*Group, bool) {
	return g, true
}

// NumItems returns the number of direct items.
func (g *Group) NumItems() int {
	return len(g.items)
}

// Items returns a copy of the item list.
func (g *Group) Items() []Object {
	items := make([]Object, len(g.items))
	copy(items, g.items)
	return items
}

// Item returns the item at index i.
func (g *Group) Item(i int) (Object, error) {
	if i < 0 || i >= len(g.items) {
		return nil, geomerr.New("group.Item", "index %d out of range (%d items)", i, len(g.items))
	}
	return g.items[i], nil
}

// AddItem appends o. Adding the group to itself, to one of its own
// descendants, or adding an item twice is rejected.
func (g *Group) AddItem(o Object) error {
	if o == nil {
		return geomerr.New("group.AddItem", "nil item")
	}
	for _, it := range g.items {
		if it == o {
			return geomerr.New("group.AddItem", "item already in group %q", g.ID)
		}
	}
	if og, ok := o.AsGroup(); ok {
		if og == g || og.hasDescendant(g) {
			return geomerr.New("group.AddItem", "adding group %q to %q would create a cycle", og.ID, g.ID)
		}
	}
	g.items = append(g.items, o)
	g.InvalidateBounds()
	return nil
}

// AddItems appends each item in order, stopping at the first error.
func (g *Group) AddItems(items ...Object) error {
	for _, o := range items {
		if err := g.AddItem(o); err != nil {
			return err
		}
	}
	return nil
}

// RemoveItem removes o from the group.
func (g *Group) RemoveItem(o Object) error {
	for i, it := range g.items {
		if it == o {
			return g.RemoveItemIndex(i)
		}
	}
	return geomerr.New("group.RemoveItem", "item not found in group %q", g.ID)
}

// RemoveItemIndex removes the item at index i.
func (g *Group) RemoveItemIndex(i int) error {
	if i < 0 || i >= len(g.items) {
		return geomerr.New("group.RemoveItemIndex", "index %d out of range (%d items)", i, len(g.items))
	}
	g.items = append(g.items[:i], g.items[i+1:]...)
	g.InvalidateBounds()
	return nil
}

// Clear removes all items.
func (g *Group) Clear() {
	g.items = nil
	g.InvalidateBounds()
}

func (g *Group) hasDescendant(target *Group) bool {
	for _, it := range g.items {
		if sub, ok := it.AsGroup(); ok {
			if sub == target || sub.hasDescendant(target) {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of the group and all its items.
func (g *Group) Clone() Object {
	return g.CloneGroup()
}

// CloneGroup is Clone with the concrete type.
func (g *Group) CloneGroup() *Group {
	c := &Group{Base: g.CloneBase(), ID: g.ID, itemsGen: g.itemsGen}
	c.items = make([]Object, len(g.items))
	for i, it := range g.items {
		c.items[i] = it.Clone()
	}
	return c
}

// Generation includes the generations of all descendants, so it changes
// when any item in the tree is mutated.
func (g *Group) Generation() uint64 {
	return g.Base.Generation() + g.itemsGeneration()
}

func (g *Group) itemsGeneration() uint64 {
	var n uint64
	for _, it := range g.items {
		n += it.Generation()
	}
	return n
}

// Bounds returns the union of the item bounds under the group's pending
// transform. Items can be mutated directly, so the cache is rebuilt when
// the item generations move.
func (g *Group) Bounds() sdf.Box3 {
	if n := g.itemsGeneration(); n != g.itemsGen {
		g.itemsGen = n
		// Reading bounds must not bump the group's own generation.
		g.boundsCache = nil
	}
	return g.CachedBounds(g.recalculateBounds)
}

// realized returns g itself when nothing is pending, otherwise a copy with
// the group's own pending state pushed down to its items. g keeps its
// pending state.
func (g *Group) realized() *Group {
	if !g.Pending() {
		return g
	}
	c := g.CloneGroup()
	c.ApplyTransform(false)
	return c
}

func (g *Group) recalculateBounds() sdf.Box3 {
	src := g.realized()
	var bb sdf.Box3
	for i, it := range src.items {
		bb = bounds.Extend(bb, i > 0, it.Bounds())
	}
	return bb
}

// Barycenter averages the item barycenters after pushing the group's
// pending state down on a copy, so it agrees with the barycenter once
// ApplyTransform has run.
func (g *Group) Barycenter() v3.Vec {
	if len(g.items) == 0 {
		return v3.Vec{}
	}
	var sum v3.Vec
	src := g.realized()
	for _, it := range src.items {
		sum = sum.Add(it.Barycenter())
	}
	return sum.DivScalar(float64(len(src.items)))
}

// ApplyTransform pushes the group's pending state down to its items. If
// recursive is set, every item then realizes its own pending state, all
// the way down to the leaves.
func (g *Group) ApplyTransform(recursive bool) {
	PushDown(&g.Base, g.items, false)
	if recursive {
		for _, it := range g.items {
			it.ApplyTransform(true)
		}
	}
	g.InvalidateBounds()
}

// LeafItems returns all non-group descendants in depth-first order.
func (g *Group) LeafItems() []Object {
	var leaves []Object
	for _, it := range g.items {
		if sub, ok := it.AsGroup(); ok {
			leaves = append(leaves, sub.LeafItems()...)
			continue
		}
		leaves = append(leaves, it)
	}
	return leaves
}

// Flatten replaces the item tree with its leaves. All pending transforms
// in the tree are realized on a copy first, so the realized geometry is
// unchanged.
func (g *Group) Flatten() {
	tmp := g.CloneGroup()
	tmp.ApplyTransform(true)
	g.items = tmp.LeafItems()
	g.ClearTransform()
}
