// Package transform implements deferred transforms on 3D objects and
// groups of objects. Mutating calls only compose matrices; geometry is
// touched when a pending transform is realized by ApplyTransform.
package transform

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// State records which kinds of transform are pending.
type State uint8

const (
	Clean            State = 0
	TransformPending State = 1 << 0
	VIPending        State = 1 << 1
	BothPending            = TransformPending | VIPending
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case TransformPending:
		return "transform-pending"
	case VIPending:
		return "vi-pending"
	case BothPending:
		return "both-pending"
	default:
		return "unknown"
	}
}

// Deferred accumulates a pending affine transform and an optional
// view/image matrix pair.
//
// Composition contract: each call to Transform(m) sets the pending matrix
// to m·pending, so the most recent call is applied last to geometry. The
// effective view/image matrix is image·view; a later TransformVI folds the
// previous image into the new view. On realization the pending transform
// is applied first, then the view/image matrix. Pushing an owner's state
// down to a child that has its own pending state yields the transform
// T_owner·T_child and the view/image VI_owner·VI_child. The child's own
// view/image therefore follows the owner's transform.
//
// A pending matrix that composes to the identity is dropped, so UseTransform
// and UseVI only report work that would move geometry.
//
// Besides the pending state, two change flags record that a transform or
// view/image update happened since the owner last looked. They are read
// and cleared by CheckTransform and CheckVI.
type Deferred struct {
	matrix   sdf.M44
	view     sdf.M44
	image    sdf.M44
	hasImage bool

	pending State
	changed State
}

// identityTolerance is the per-element tolerance below which a composed
// matrix counts as the identity.
const identityTolerance = 1e-12

func isIdentity(m sdf.M44) bool {
	return m.Equals(sdf.Identity3d(), identityTolerance)
}

// NewDeferred returns a deferred transform with nothing pending.
func NewDeferred() *Deferred {
	return &Deferred{
		matrix: sdf.Identity3d(),
		view:   sdf.Identity3d(),
		image:  sdf.Identity3d(),
	}
}

// State returns the pending state.
func (d *Deferred) State() State {
	return d.pending
}

// Transform composes m into the pending transform.
func (d *Deferred) Transform(m sdf.M44) {
	if d.pending&TransformPending == 0 {
		d.matrix = m
	} else {
		d.matrix = m.Mul(d.matrix)
	}
	d.changed |= TransformPending
	if isIdentity(d.matrix) {
		d.matrix = sdf.Identity3d()
		d.pending &^= TransformPending
		return
	}
	d.pending |= TransformPending
}

// TransformVI composes a view matrix and an optional image matrix into
// the pending view/image pair.
func (d *Deferred) TransformVI(view sdf.M44, image *sdf.M44) {
	if d.pending&VIPending == 0 {
		d.view = view
	} else {
		d.view = view.Mul(d.imageMatrix().Mul(d.view))
	}
	if image != nil {
		d.image = *image
		d.hasImage = true
	} else {
		d.image = sdf.Identity3d()
		d.hasImage = false
	}
	d.changed |= VIPending
	if isIdentity(d.imageMatrix().Mul(d.view)) {
		d.view = sdf.Identity3d()
		d.image = sdf.Identity3d()
		d.hasImage = false
		d.pending &^= VIPending
		return
	}
	d.pending |= VIPending
}

// CheckTransform reports whether the transform changed since the last
// check and clears the flag.
func (d *Deferred) CheckTransform() bool {
	c := d.changed&TransformPending != 0
	d.changed &^= TransformPending
	return c
}

// CheckVI reports whether the view/image pair changed since the last
// check and clears the flag.
func (d *Deferred) CheckVI() bool {
	c := d.changed&VIPending != 0
	d.changed &^= VIPending
	return c
}

// TransformChanged reports the transform change flag without clearing it.
func (d *Deferred) TransformChanged() bool {
	return d.changed&TransformPending != 0
}

// VIChanged reports the view/image change flag without clearing it.
func (d *Deferred) VIChanged() bool {
	return d.changed&VIPending != 0
}

// UseTransform reports whether a non-identity transform is pending.
func (d *Deferred) UseTransform() bool {
	return d.pending&TransformPending != 0
}

// UseVI reports whether a non-identity view/image pair is pending.
func (d *Deferred) UseVI() bool {
	return d.pending&VIPending != 0
}

// Matrix returns the pending transform, or the identity.
func (d *Deferred) Matrix() sdf.M44 {
	if !d.UseTransform() {
		return sdf.Identity3d()
	}
	return d.matrix
}

// View returns the pending view matrix, or the identity.
func (d *Deferred) View() sdf.M44 {
	if !d.UseVI() {
		return sdf.Identity3d()
	}
	return d.view
}

// Image returns the pending image matrix, if one was set.
func (d *Deferred) Image() (sdf.M44, bool) {
	if !d.UseVI() || !d.hasImage {
		return sdf.Identity3d(), false
	}
	return d.image, true
}

func (d *Deferred) imageMatrix() sdf.M44 {
	if d.hasImage {
		return d.image
	}
	return sdf.Identity3d()
}

// VIMatrix returns the effective view/image matrix image·view.
func (d *Deferred) VIMatrix() sdf.M44 {
	if !d.UseVI() {
		return sdf.Identity3d()
	}
	return d.imageMatrix().Mul(d.view)
}

// Combined returns the full pending matrix VI·T.
func (d *Deferred) Combined() sdf.M44 {
	switch d.pending {
	case Clean:
		return sdf.Identity3d()
	case TransformPending:
		return d.matrix
	case VIPending:
		return d.VIMatrix()
	}
	return d.VIMatrix().Mul(d.matrix)
}

// Apply maps p through the pending transform and view/image pair.
func (d *Deferred) Apply(p v3.Vec) v3.Vec {
	if d.UseTransform() {
		p = d.matrix.MulPosition(p)
	}
	if d.UseVI() {
		p = d.VIMatrix().MulPosition(p)
	}
	return p
}

// Reset discards the pending matrices. This is the only transition back
// to Clean; the change flags are left for the owner to consume.
func (d *Deferred) Reset() {
	d.matrix = sdf.Identity3d()
	d.view = sdf.Identity3d()
	d.image = sdf.Identity3d()
	d.hasImage = false
	d.pending = Clean
}

// Clone returns an independent copy.
func (d *Deferred) Clone() *Deferred {
	c := *d
	return &c
}
