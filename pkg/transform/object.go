package transform

import (
	"github.com/chazu/geoflow/pkg/bounds"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Transformable is anything a pending transform can be pushed down to.
type Transformable interface {
	Transform(m sdf.M44)
	TransformVI(view sdf.M44, image *sdf.M44)
	ApplyTransform(recursive bool)
}

// Object is a transformable 3D object. Items of a Group are Objects and
// may themselves be groups.
type Object interface {
	Transformable

	Scale(s v3.Vec)
	Translate(v v3.Vec)
	Rotate(angle float64, axis v3.Vec)

	// Bounds returns the axis-aligned bounds of the object with any
	// pending transform taken into account.
	Bounds() sdf.Box3
	// Barycenter returns the centroid of the object with any pending
	// transform taken into account.
	Barycenter() v3.Vec

	// Generation changes whenever the object's bounds may have moved.
	Generation() uint64

	Deferred() *Deferred
	Clone() Object
	AsGroup() (*Group, bool)
}

// Base carries the deferred transform and bounds cache shared by all
// objects. Concrete objects embed it and supply Bounds, Barycenter,
// ApplyTransform and Clone.
type Base struct {
	deferred    *Deferred
	boundsCache *sdf.Box3
	gen         uint64
}

func (b *Base) ensure() *Deferred {
	if b.deferred == nil {
		b.deferred = NewDeferred()
	}
	return b.deferred
}

// Deferred returns the deferred transform, or nil if the object has never
// been transformed.
func (b *Base) Deferred() *Deferred {
	return b.deferred
}

// Generation counts transforms, realizations and invalidations.
func (b *Base) Generation() uint64 {
	return b.gen
}

// Transform composes m into the pending transform.
func (b *Base) Transform(m sdf.M44) {
	b.ensure().Transform(m)
	b.gen++
}

// TransformVI composes a view/image pair into the pending state.
func (b *Base) TransformVI(view sdf.M44, image *sdf.M44) {
	b.ensure().TransformVI(view, image)
	b.gen++
}

// Scale requests a scale about the origin.
func (b *Base) Scale(s v3.Vec) {
	b.Transform(sdf.Scale3d(s))
}

// Translate requests a translation.
func (b *Base) Translate(v v3.Vec) {
	b.Transform(sdf.Translate3d(v))
}

// Rotate requests a rotation by angle (radians) about axis.
func (b *Base) Rotate(angle float64, axis v3.Vec) {
	b.Transform(sdf.Rotate3d(axis, angle))
}

// UseTransform reports whether a transform is pending.
func (b *Base) UseTransform() bool {
	return b.deferred != nil && b.deferred.UseTransform()
}

// UseVI reports whether a view/image pair is pending.
func (b *Base) UseVI() bool {
	return b.deferred != nil && b.deferred.UseVI()
}

// Pending reports whether anything is pending.
func (b *Base) Pending() bool {
	return b.UseTransform() || b.UseVI()
}

// ApplyToPoint maps p through the pending state.
func (b *Base) ApplyToPoint(p v3.Vec) v3.Vec {
	if b.deferred == nil {
		return p
	}
	return b.deferred.Apply(p)
}

// Combined returns the full pending matrix.
func (b *Base) Combined() sdf.M44 {
	if b.deferred == nil {
		return sdf.Identity3d()
	}
	return b.deferred.Combined()
}

// ClearTransform discards the pending state once it has been realized.
func (b *Base) ClearTransform() {
	if b.deferred != nil {
		b.deferred.Reset()
	}
	b.boundsCache = nil
	b.gen++
}

// InvalidateBounds drops the bounds cache. Objects whose geometry changes
// outside Transform and ApplyTransform must call it.
func (b *Base) InvalidateBounds() {
	b.boundsCache = nil
	b.gen++
}

// CachedBounds returns the cached bounds, calling recalc first if the
// cache is absent or a transform or view/image change was recorded.
func (b *Base) CachedBounds(recalc func() sdf.Box3) sdf.Box3 {
	stale := b.boundsCache == nil
	if b.deferred != nil {
		if b.deferred.CheckTransform() {
			stale = true
		}
		if b.deferred.CheckVI() {
			stale = true
		}
	}
	if stale {
		bb := recalc()
		b.boundsCache = &bb
	}
	return *b.boundsCache
}

// CloneBase returns a copy with an independent deferred transform.
func (b *Base) CloneBase() Base {
	c := Base{gen: b.gen}
	if b.deferred != nil {
		c.deferred = b.deferred.Clone()
	}
	if b.boundsCache != nil {
		bb := *b.boundsCache
		c.boundsCache = &bb
	}
	return c
}

// AsGroup reports that the object is not a group.
func (b *Base) AsGroup() (*Group, bool) {
	return nil, false
}

// CenteringMethod selects the reference point used when centering.
type CenteringMethod int

const (
	CenterBarycenter CenteringMethod = iota // centroid of the object
	CenterBounds                            // center of the bounding box
	CenterOrigin                            // the origin; only the offset applies
)

func (m CenteringMethod) String() string {
	switch m {
	case CenterBarycenter:
		return "barycenter"
	case CenterBounds:
		return "bounds"
	case CenterOrigin:
		return "origin"
	default:
		return "unknown"
	}
}

// ParseCenteringMethod converts a name produced by String back.
func ParseCenteringMethod(s string) (CenteringMethod, bool) {
	for _, m := range []CenteringMethod{CenterBarycenter, CenterBounds, CenterOrigin} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// CenterOf returns the reference point of o for method.
func CenterOf(o Object, method CenteringMethod) v3.Vec {
	switch method {
	case CenterBarycenter:
		return o.Barycenter()
	case CenterBounds:
		return o.Bounds().Center()
	}
	return v3.Vec{}
}

// Center translates o so that its reference point lands on origin.
func Center(o Object, method CenteringMethod, origin v3.Vec) {
	o.Translate(origin.Sub(CenterOf(o, method)))
}

// Normalize scales o uniformly so that its bounding box diagonal becomes
// unit length. Objects with empty extent are left alone.
func Normalize(o Object) {
	r := bounds.Radius(o.Bounds()).Length()
	if r == 0 {
		return
	}
	s := 0.5 / r
	o.Scale(v3.Vec{X: s, Y: s, Z: s})
}

// ScaleAbout scales o by s about the point c.
func ScaleAbout(o Object, s, c v3.Vec) {
	m := sdf.Translate3d(c).Mul(sdf.Scale3d(s)).Mul(sdf.Translate3d(c.Neg()))
	o.Transform(m)
}
