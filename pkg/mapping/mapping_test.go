package mapping

import (
	"math"
	"testing"

	"github.com/chazu/geoflow/pkg/bounds"
	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter returns a fixed sequence and records how often it was called.
type counter struct {
	calls int
	seq   []v3.Vec
}

func (c *counter) Call(float64) (v3.Vec, error) {
	v := c.seq[min(c.calls, len(c.seq)-1)]
	c.calls++
	return v, nil
}

func TestRange(t *testing.T) {
	r := Range{Min: 0, Max: 1}
	assert.True(t, r.Contains(0))
	assert.True(t, r.Contains(1))
	assert.False(t, r.Contains(1.01))
	assert.Equal(t, 1.0, r.Clamp(3))
	assert.Equal(t, 0.0, r.Clamp(-3))

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{0.25, 0.25},
		{1.25, 0.25},
		{-0.25, 0.75},
		{3, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, r.Wrap(tt.in), 1e-12, "wrap(%v)", tt.in)
	}
	assert.Equal(t, 2.0, Range{Min: 2, Max: 2}.Wrap(5))
}

func TestScalars(t *testing.T) {
	assert.Equal(t, 3.0, Constant{Value: 3}.Call(10))
	assert.Equal(t, 7.0, Linear{Scale: 2, Offset: 1}.Call(3))
	assert.Equal(t, 9.0, Func(func(t float64) float64 { return t * t }).Call(3))

	g := NewGaussian(4, 0)
	assert.Equal(t, 4.0, g.Call(0))
	assert.Equal(t, 4.0, g.Mean())
	assert.Equal(t, 0.0, g.StdDev())
}

func TestGaussianSpread(t *testing.T) {
	g := NewGaussian(10, 1)
	var sum float64
	const n = 2000
	for i := 0; i < n; i++ {
		sum += g.Call(0)
	}
	assert.InDelta(t, 10.0, sum/n, 0.2)
}

func TestCompose3Fallback(t *testing.T) {
	tests := []struct {
		name string
		c    Compose3
		want v3.Vec
	}{
		{"all set", Compose3{X: Constant{1}, Y: Constant{2}, Z: Constant{3}}, v3.Vec{X: 1, Y: 2, Z: 3}},
		{"only x", Compose3{X: Constant{5}}, v3.Vec{X: 5, Y: 5, Z: 5}},
		{"x and y", Compose3{X: Constant{1}, Y: Constant{2}}, v3.Vec{X: 1, Y: 2, Z: 2}},
		{"x and z", Compose3{X: Constant{1}, Z: Constant{3}}, v3.Vec{X: 1, Y: 1, Z: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.c.Call(0.5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := (&Compose3{}).Call(0)
	assert.True(t, geomerr.Is(err))
}

func TestVectorAdapters(t *testing.T) {
	v, err := Constant3{Value: v3.Vec{X: 1}}.Call(9)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{X: 1}, v)

	v, err = Lerp3{A: v3.Vec{}, B: v3.Vec{X: 10, Y: -10}}.Call(0.5)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{X: 5, Y: -5}, v)

	v, err = Func3(func(t float64) v3.Vec { return v3.Vec{Z: t} }).Call(2)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{Z: 2}, v)
}

func TestAccept3EvaluationCap(t *testing.T) {
	src := &counter{seq: []v3.Vec{{X: 1}}}
	a := &Accept3{Source: src, Cond: CondFunc(func(v3.Vec) bool { return false }), MaxIters: 7}
	_, err := a.Call(0)
	assert.True(t, geomerr.Is(err))
	assert.Equal(t, 8, src.calls)
}

func TestAccept3ReturnsFirstAccepted(t *testing.T) {
	src := &counter{seq: []v3.Vec{{X: 5}, {X: 3}, {X: 0.5}, {X: 0.1}}}
	a := NewAcceptLength3(src, Range{Min: 0, Max: 1})
	v, err := a.Call(0)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{X: 0.5}, v)
	assert.Equal(t, 3, src.calls)
}

func TestAccept3Unset(t *testing.T) {
	_, err := (&Accept3{Cond: CondFunc(func(v3.Vec) bool { return true })}).Call(0)
	assert.True(t, geomerr.Is(err))

	_, err = (&Accept3{Source: Constant3{}}).Call(0)
	assert.True(t, geomerr.Is(err))

	_, err = NewAcceptVolume3(Constant3{}, nil).Call(0)
	assert.True(t, geomerr.Is(err))
}

func TestAcceptVolume3(t *testing.T) {
	box := bounds.NewBoxItem(v3.Vec{}, v3.Vec{X: 1, Y: 1, Z: 1}, "ref")
	src := &counter{seq: []v3.Vec{{X: 2}, {X: 0.5, Y: -0.5}}}
	v, err := NewAcceptVolume3(src, box).Call(0)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{X: 0.5, Y: -0.5}, v)

	sphere, err := sdf.Sphere3D(1)
	require.NoError(t, err)
	src = &counter{seq: []v3.Vec{{X: 0.8, Y: 0.8}, {Z: 0.9}}}
	v, err = NewAcceptVolume3(src, SolidShape{SDF: sphere}).Call(0)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{Z: 0.9}, v)
}

func TestLookup3(t *testing.T) {
	l := NewLookup3(Lerp3{A: v3.Vec{}, B: v3.Vec{X: 4}})
	require.NoError(t, l.Update(5))
	require.Equal(t, 5, l.NumEntries())

	first, err := l.Call(0)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{}, first)

	last, err := l.Call(1)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{X: 4}, last)

	mid, err := l.Call(0.5)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{X: 2}, mid)

	clamped, err := l.Call(7)
	require.NoError(t, err)
	assert.Equal(t, last, clamped)

	e, err := l.Entry(1)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{X: 1}, e)
	_, err = l.Entry(5)
	assert.True(t, geomerr.Is(err))
}

func TestLookup3SingleEntrySamplesMidpoint(t *testing.T) {
	l := NewLookup3(Lerp3{A: v3.Vec{}, B: v3.Vec{Y: 2}})
	require.NoError(t, l.Update(1))
	v, err := l.Call(0)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{Y: 1}, v)
}

func TestLookup3Errors(t *testing.T) {
	l := &Lookup3{}
	_, err := l.Call(0.5)
	assert.True(t, geomerr.Is(err))
	assert.True(t, geomerr.Is(l.Update(3)))

	l.AddEntry(v3.Vec{X: 1})
	v, err := l.Call(0.9)
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{X: 1}, v)

	l.Clear()
	_, err = l.Call(0)
	assert.Error(t, err)
}

func TestLookup3NonFiniteParameter(t *testing.T) {
	l := NewLookup3(Lerp3{A: v3.Vec{}, B: v3.Vec{X: 1}})
	require.NoError(t, l.Update(2))

	_, err := l.Call(math.NaN())
	assert.True(t, geomerr.Is(err))

	v, err := l.Call(math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{X: 1}, v)
	v, err = l.Call(math.Inf(-1))
	require.NoError(t, err)
	assert.Equal(t, v3.Vec{}, v)
}

func TestLookup3PropagatesSourceError(t *testing.T) {
	l := NewLookup3(&Compose3{})
	err := l.Update(2)
	assert.True(t, geomerr.Is(err))
	assert.Equal(t, 0, l.NumEntries())
}
