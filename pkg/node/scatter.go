package node

import (
	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/chazu/geoflow/pkg/mapping"
	"github.com/chazu/geoflow/pkg/transform"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

var unitVec = v3.Vec{X: 1, Y: 1, Z: 1}

// Scatter moves and scales items along parametric curves.
//
// For item i of n, the index parameter is
//
//	i0 = wrap(i/(n-1)*OffsetIndexScale + OffsetIndexOffset, [0,1])
//
// optionally remapped by OffsetIndexFunc. The item is translated by
//
//	OffsetFunc(i0) * (OffsetScaleFactor + i*OffsetDeltaScaleFactor) * OffsetScale + Offset
//
// and then scaled about its center by
//
//	(ElementScaleFactor + i*ElementDeltaScaleFactor) * ElementScale
//
// multiplied per axis by ElementScaleIndexFunc(i0) and by
// ElementScaleDistanceFunc(|center|*DistanceScale) when those are set.
// Use NewScatter for neutral defaults.
type Scatter struct {
	Offset                 v3.Vec
	OffsetScale            v3.Vec
	OffsetScaleFactor      float64
	OffsetDeltaScaleFactor float64
	OffsetIndexScale       float64
	OffsetIndexOffset      float64
	OffsetIndexFunc        mapping.Scalar
	OffsetFunc             mapping.Vector3

	ElementScale             v3.Vec
	ElementScaleFactor       float64
	ElementDeltaScaleFactor  float64
	ElementScaleIndexFunc    mapping.Vector3
	ElementScaleDistanceFunc mapping.Vector3
	DistanceScale            float64

	CenteringMethod transform.CenteringMethod
}

// NewScatter returns a scatter stage with unit scales around offsetFunc.
func NewScatter(offsetFunc mapping.Vector3) *Scatter {
	return &Scatter{
		OffsetScale:        unitVec,
		OffsetScaleFactor:  1,
		OffsetIndexScale:   1,
		OffsetFunc:         offsetFunc,
		ElementScale:       unitVec,
		ElementScaleFactor: 1,
		DistanceScale:      1,
		CenteringMethod:    transform.CenterBarycenter,
	}
}

func (s *Scatter) Name() string { return "scatter" }

// IndexParam returns the wrapped index parameter of item i of n, before
// OffsetIndexFunc is applied.
func (s *Scatter) IndexParam(i, n int) float64 {
	t := 0.0
	if n > 1 {
		t = float64(i) / float64(n-1)
	}
	return mapping.UnitRange.Wrap(t*s.OffsetIndexScale + s.OffsetIndexOffset)
}

func (s *Scatter) Apply(g *transform.Group) error {
	if s.OffsetFunc == nil {
		return geomerr.New("node.Scatter", "offset mapping not set")
	}
	items := g.Items()
	n := len(items)
	for i, it := range items {
		fi := float64(i)
		i0 := s.IndexParam(i, n)
		if s.OffsetIndexFunc != nil {
			i0 = s.OffsetIndexFunc.Call(i0)
		}
		off, err := s.OffsetFunc.Call(i0)
		if err != nil {
			return err
		}
		off = off.MulScalar(s.OffsetScaleFactor + fi*s.OffsetDeltaScaleFactor).
			Mul(s.OffsetScale).
			Add(s.Offset)
		it.Translate(off)

		es := s.ElementScale.MulScalar(s.ElementScaleFactor + fi*s.ElementDeltaScaleFactor)
		c := transform.CenterOf(it, s.CenteringMethod)
		if s.ElementScaleIndexFunc != nil {
			f, err := s.ElementScaleIndexFunc.Call(i0)
			if err != nil {
				return err
			}
			es = es.Mul(f)
		}
		if s.ElementScaleDistanceFunc != nil {
			f, err := s.ElementScaleDistanceFunc.Call(c.Length() * s.DistanceScale)
			if err != nil {
				return err
			}
			es = es.Mul(f)
		}
		transform.ScaleAbout(it, es, c)
	}
	return nil
}
