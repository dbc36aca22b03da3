package mapping

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Scalar maps a parameter to a value.
type Scalar interface {
	Call(t float64) float64
}

// Constant always returns Value.
type Constant struct {
	Value float64
}

func (c Constant) Call(float64) float64 { return c.Value }

// Linear returns Scale*t + Offset.
type Linear struct {
	Scale, Offset float64
}

func (l Linear) Call(t float64) float64 { return l.Scale*t + l.Offset }

// Func adapts a plain function.
type Func func(t float64) float64

func (f Func) Call(t float64) float64 { return f(t) }

// Gaussian ignores t and draws from a normal distribution.
type Gaussian struct {
	dist distuv.Normal
}

// NewGaussian returns a generator with the given mean and standard
// deviation.
func NewGaussian(mean, stddev float64) *Gaussian {
	return &Gaussian{dist: distuv.Normal{Mu: mean, Sigma: stddev}}
}

// Mean returns the distribution mean.
func (g *Gaussian) Mean() float64 { return g.dist.Mu }

// StdDev returns the distribution standard deviation.
func (g *Gaussian) StdDev() float64 { return g.dist.Sigma }

func (g *Gaussian) Call(float64) float64 {
	return g.dist.Rand()
}
