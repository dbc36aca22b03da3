package mapping

import "math"

// Range is a closed scalar interval [Min, Max].
type Range struct {
	Min, Max float64
}

// UnitRange is [0, 1].
var UnitRange = Range{Min: 0, Max: 1}

// Contains reports whether x lies in the interval.
func (r Range) Contains(x float64) bool {
	return x >= r.Min && x <= r.Max
}

// Clamp limits x to the interval.
func (r Range) Clamp(x float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, x))
}

// Wrap maps x periodically into the interval. Values already inside,
// including both endpoints, are returned unchanged.
func (r Range) Wrap(x float64) float64 {
	if r.Contains(x) {
		return x
	}
	w := r.Max - r.Min
	if w <= 0 {
		return r.Min
	}
	return x - math.Floor((x-r.Min)/w)*w
}
