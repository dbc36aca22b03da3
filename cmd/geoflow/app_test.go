package main

import (
	"os"
	"testing"
	"time"

	"github.com/chazu/geoflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(items int) *config.Config {
	return &config.Config{
		Items:       items,
		ItemSize:    1,
		LogLevel:    "info",
		EvalTimeout: 5 * time.Second,
		MeshCells:   40,
	}
}

func requireNoErrors(t *testing.T, result EvalResult) {
	t.Helper()
	for _, e := range result.Errors {
		t.Errorf("error (line %d, node %q): %s", e.Line, e.NodeID, e.Message)
	}
	if len(result.Errors) > 0 {
		t.FailNow()
	}
}

// TestE2EScatterExample exercises the full path: Lisp source -> engine ->
// graph -> run -> realized items, using the bundled example script.
func TestE2EScatterExample(t *testing.T) {
	app := NewApp(testConfig(16))

	source, err := os.ReadFile("../../examples/scatter.zy")
	require.NoError(t, err)

	result := app.Evaluate(string(source))
	requireNoErrors(t, result)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Items, 16)
	assert.Empty(t, result.Meshes, "tessellation is off by default")

	for i, it := range result.Items {
		// Every jitter sample lies inside the 40 unit reference cube and
		// the grid spans 12 units, so no item can stray further.
		for axis := 0; axis < 3; axis++ {
			assert.Less(t, it.Center[axis], 27.0, "item %d", i)
			assert.Greater(t, it.Center[axis], -27.0, "item %d", i)
		}
	}
	assert.Equal(t, "item-0", result.Items[0].Name)
}

func TestE2EEmptySource(t *testing.T) {
	result := NewApp(testConfig(4)).Evaluate("")

	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Items)
	// Slices stay non-nil so JSON serializes [] rather than null.
	assert.NotNil(t, result.Items)
	assert.NotNil(t, result.Meshes)
	assert.NotNil(t, result.Errors)
	assert.NotNil(t, result.Warnings)
}

func TestE2ESyntaxError(t *testing.T) {
	result := NewApp(testConfig(4)).Evaluate("(+ 1 2)\n(chain (source \"items\")")

	require.NotEmpty(t, result.Errors)
	assert.NotEmpty(t, result.Errors[0].Message)
	assert.Empty(t, result.Items)
}

func TestE2EUnknownInput(t *testing.T) {
	result := NewApp(testConfig(4)).Evaluate(`(source "boards")`)

	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "boards")
}

func TestE2EValidationError(t *testing.T) {
	result := NewApp(testConfig(4)).Evaluate(`(scatter :id "s")`)

	require.NotEmpty(t, result.Errors)
	nodes := map[string]bool{}
	for _, e := range result.Errors {
		nodes[e.NodeID] = true
	}
	assert.True(t, nodes["s"], "expected findings on node s, got %v", result.Errors)
	assert.Empty(t, result.Items)
}

func TestE2EOrphanWarning(t *testing.T) {
	source := `
(def a (source "items"))
(def b (normalize a))
(center a :id "orphan")
(sink b)
`
	result := NewApp(testConfig(3)).Evaluate(source)
	requireNoErrors(t, result)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "orphan", result.Warnings[0].NodeID)
	assert.Len(t, result.Items, 3)
}

func TestE2ETessellate(t *testing.T) {
	cfg := testConfig(3)
	cfg.Tessellate = true
	app := NewApp(cfg)

	result := app.Evaluate(`(chain (source "items") (array :rows 1 :columns 3 :cell-width 2))`)
	requireNoErrors(t, result)
	require.Len(t, result.Items, 3)
	require.Len(t, result.Meshes, 3)

	for i, want := range []float64{-2, 0, 2} {
		assert.InDelta(t, want, result.Items[i].Center[0], 1e-9)
		assert.InDelta(t, 1, result.Items[i].Size[0], 1e-9)

		m := result.Meshes[i]
		assert.Len(t, m.Indices, 36, "cuboid %d has 12 triangles", i)
		assert.Len(t, m.Vertices, len(m.Normals))
		assert.NotEmpty(t, m.Color)
		assert.Equal(t, result.Items[i].Name, m.Name)
	}
}

func TestE2ESolidItems(t *testing.T) {
	cfg := testConfig(0)
	cfg.Tessellate = true
	source := `
(chain
  (source (group "g" (sphere :radius 2) (box :size 3 :at (vec3 10 0 0))))
  (center :method :bounds :origin (vec3 0 0 5)))
`
	result := NewApp(cfg).Evaluate(source)
	requireNoErrors(t, result)
	require.Len(t, result.Items, 2)
	require.Len(t, result.Meshes, 2)
	for _, it := range result.Items {
		assert.InDelta(t, 5, it.Center[2], 1e-6)
	}
	for _, m := range result.Meshes {
		assert.NotEmpty(t, m.Indices)
	}
}

func TestE2ERapidEvaluation(t *testing.T) {
	// Sequential calls on the same App reuse the engine and its inputs;
	// each run starts from an untouched copy of the items.
	app := NewApp(testConfig(2))

	sources := []string{
		`(chain (source "items") (array :rows 1 :columns 2 :cell-width 5))`,
		`(+ 1 2)`,
		``,
		`(chain (source "items"`,
		`(chain (source "items") (array :rows 1 :columns 2 :cell-width 5))`,
	}

	var first, last EvalResult
	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked: %v", i, r)
				}
			}()
			result := app.Evaluate(source)
			if i == 0 {
				first = result
			}
			last = result
		}()
	}
	assert.Equal(t, first.Items, last.Items)
}
