package mapping

import (
	"github.com/chazu/geoflow/pkg/geomerr"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultMaxIters is the retry cap used by the Accept3 constructors.
const DefaultMaxIters = 10000

// Accept3 draws from Source until Cond accepts the sample. After the
// first draw it retries at most MaxIters times, then fails.
type Accept3 struct {
	Source   Vector3
	Cond     Condition
	MaxIters int
}

// NewAccept3 returns a rejection sampler with the default retry cap.
func NewAccept3(src Vector3, cond Condition) *Accept3 {
	return &Accept3{Source: src, Cond: cond, MaxIters: DefaultMaxIters}
}

// NewAcceptLength3 accepts samples whose length lies in r.
func NewAcceptLength3(src Vector3, r Range) *Accept3 {
	return NewAccept3(src, LengthCondition{Range: r})
}

// NewAcceptVolume3 accepts samples that lie inside s.
func NewAcceptVolume3(src Vector3, s Shape) *Accept3 {
	return NewAccept3(src, VolumeCondition{Shape: s})
}

func (a *Accept3) Call(t float64) (v3.Vec, error) {
	if a.Source == nil {
		return v3.Vec{}, geomerr.New("mapping.Accept3", "source not set")
	}
	if a.Cond == nil {
		return v3.Vec{}, geomerr.New("mapping.Accept3", "condition not set")
	}
	for i := 0; i <= max(a.MaxIters, 0); i++ {
		v, err := a.Source.Call(t)
		if err != nil {
			return v3.Vec{}, err
		}
		ok, err := a.Cond.Check(v)
		if err != nil {
			return v3.Vec{}, err
		}
		if ok {
			return v, nil
		}
	}
	return v3.Vec{}, geomerr.New("mapping.Accept3", "no acceptable sample after %d iterations", a.MaxIters)
}
