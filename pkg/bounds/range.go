package bounds

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultTolerance is the comparison tolerance used when callers have no
// better value.
const DefaultTolerance = 1e-6

// Relation is the result of comparing two ranges.
type Relation int

const (
	RangeEqual         Relation = iota // both ranges coincide
	RangeDisjoint                      // no common point
	RangeFirstContains                 // the first range contains the second
	RangeOtherContains                 // the second range contains the first
	RangeOverlap                       // partial overlap
)

func (r Relation) String() string {
	switch r {
	case RangeEqual:
		return "equal"
	case RangeDisjoint:
		return "disjoint"
	case RangeFirstContains:
		return "first-contains"
	case RangeOtherContains:
		return "other-contains"
	case RangeOverlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// components returns the vector as an indexable array.
func components(v v3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Compare classifies how a relates to b, axis by axis, within tol.
func Compare(a, b sdf.Box3, tol float64) Relation {
	aMin, aMax := components(a.Min), components(a.Max)
	bMin, bMax := components(b.Min), components(b.Max)

	equal, aInB, bInA := true, true, true
	for i := 0; i < 3; i++ {
		if aMax[i] < bMin[i]-tol || aMin[i] > bMax[i]+tol {
			return RangeDisjoint
		}
		if math.Abs(aMin[i]-bMin[i]) > tol || math.Abs(aMax[i]-bMax[i]) > tol {
			equal = false
		}
		if aMin[i] < bMin[i]-tol || aMax[i] > bMax[i]+tol {
			aInB = false
		}
		if bMin[i] < aMin[i]-tol || bMax[i] > aMax[i]+tol {
			bInA = false
		}
	}
	switch {
	case equal:
		return RangeEqual
	case bInA:
		return RangeFirstContains
	case aInB:
		return RangeOtherContains
	}
	return RangeOverlap
}

// Radius returns the half-extent vector of a box.
func Radius(b sdf.Box3) v3.Vec {
	return b.Max.Sub(b.Min).MulScalar(0.5)
}

// Extend grows b to include other. If ok is false, b is treated as empty
// and other is returned unchanged.
func Extend(b sdf.Box3, ok bool, other sdf.Box3) sdf.Box3 {
	if !ok {
		return other
	}
	return b.Extend(other)
}

// PointBox returns the degenerate box containing only p.
func PointBox(p v3.Vec) sdf.Box3 {
	return sdf.Box3{Min: p, Max: p}
}

// ContainsPoint reports whether p lies in b, boundary included, within tol.
func ContainsPoint(b sdf.Box3, p v3.Vec, tol float64) bool {
	return p.X >= b.Min.X-tol && p.X <= b.Max.X+tol &&
		p.Y >= b.Min.Y-tol && p.Y <= b.Max.Y+tol &&
		p.Z >= b.Min.Z-tol && p.Z <= b.Max.Z+tol
}
