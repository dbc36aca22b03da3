package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "examples/scatter.zy", cfg.Script)
	assert.Equal(t, 16, cfg.Items)
	assert.InDelta(t, 1.0, cfg.ItemSize, 1e-12)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.EvalTimeout)
	assert.Equal(t, 200, cfg.MeshCells)
	assert.False(t, cfg.Tessellate)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GEOFLOW_SCRIPT", "/tmp/p.zy")
	t.Setenv("GEOFLOW_ITEMS", "3")
	t.Setenv("GEOFLOW_ITEM_SIZE", "2.5")
	t.Setenv("GEOFLOW_LOG_LEVEL", "debug")
	t.Setenv("GEOFLOW_EVAL_TIMEOUT", "250ms")
	t.Setenv("GEOFLOW_MESH_CELLS", "64")
	t.Setenv("GEOFLOW_TESSELLATE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/p.zy", cfg.Script)
	assert.Equal(t, 3, cfg.Items)
	assert.InDelta(t, 2.5, cfg.ItemSize, 1e-12)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.EvalTimeout)
	assert.Equal(t, 64, cfg.MeshCells)
	assert.True(t, cfg.Tessellate)
}

func TestLoadRejectsBadValue(t *testing.T) {
	t.Setenv("GEOFLOW_ITEMS", "many")
	_, err := Load()
	assert.Error(t, err)
}
