package transform

import "github.com/deadsy/sdfx/sdf"

// PushDown propagates the owner's pending transform and view/image pair
// to each child, fetching the matrices once. If recursive is set every
// child is also asked to realize its own pending state. The owner's
// pending state is cleared afterwards.
func PushDown[T Transformable](owner *Base, children []T, recursive bool) {
	if !owner.Pending() {
		owner.ClearTransform()
		return
	}
	d := owner.deferred
	useT, useVI := d.UseTransform(), d.UseVI()
	m := d.Matrix()
	view := d.View()
	var image *sdf.M44
	if img, ok := d.Image(); ok {
		image = &img
	}
	for _, c := range children {
		if useT {
			c.Transform(m)
		}
		if useVI {
			c.TransformVI(view, image)
		}
		if recursive {
			c.ApplyTransform(true)
		}
	}
	owner.ClearTransform()
}
