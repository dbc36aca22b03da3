package node

import (
	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/chazu/geoflow/pkg/mapping"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// LUTConfig describes a lookup table for CreateLUT. If X is set the
// per-axis scalar mappings are used, otherwise each axis draws from a
// normal distribution with the given Mean and StdDev. If Reference is set
// every sample must lie inside it.
type LUTConfig struct {
	Entries int

	X, Y, Z mapping.Scalar

	Mean, StdDev v3.Vec

	Reference mapping.Shape
	MaxIters  int
}

// CreateLUT builds and fills a lookup table.
func CreateLUT(cfg LUTConfig) (*mapping.Lookup3, error) {
	if cfg.Entries <= 0 {
		return nil, geomerr.New("node.CreateLUT", "entry count must be positive (got %d)", cfg.Entries)
	}
	var src mapping.Vector3
	if cfg.X != nil {
		src = &mapping.Compose3{X: cfg.X, Y: cfg.Y, Z: cfg.Z}
	} else {
		src = &mapping.Compose3{
			X: mapping.NewGaussian(cfg.Mean.X, cfg.StdDev.X),
			Y: mapping.NewGaussian(cfg.Mean.Y, cfg.StdDev.Y),
			Z: mapping.NewGaussian(cfg.Mean.Z, cfg.StdDev.Z),
		}
	}
	if cfg.Reference != nil {
		a := mapping.NewAcceptVolume3(src, cfg.Reference)
		if cfg.MaxIters > 0 {
			a.MaxIters = cfg.MaxIters
		}
		src = a
	}
	lut := mapping.NewLookup3(src)
	if err := lut.Update(cfg.Entries); err != nil {
		return nil, err
	}
	logger.WithField("entries", cfg.Entries).Debug("lookup table created")
	return lut, nil
}
