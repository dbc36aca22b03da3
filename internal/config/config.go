package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Script      string        `envconfig:"SCRIPT" default:"examples/scatter.zy"`
	Items       int           `envconfig:"ITEMS" default:"16"`
	ItemSize    float64       `envconfig:"ITEM_SIZE" default:"1"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	EvalTimeout time.Duration `envconfig:"EVAL_TIMEOUT" default:"5s"`
	MeshCells   int           `envconfig:"MESH_CELLS" default:"200"`
	Tessellate  bool          `envconfig:"TESSELLATE" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("geoflow", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
