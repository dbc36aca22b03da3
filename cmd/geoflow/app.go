package main

import (
	"fmt"

	"github.com/chazu/geoflow/internal/config"
	"github.com/chazu/geoflow/pkg/engine"
	"github.com/chazu/geoflow/pkg/graph"
	"github.com/chazu/geoflow/pkg/kernel"
	"github.com/chazu/geoflow/pkg/kernel/sdfx"
	"github.com/chazu/geoflow/pkg/shape"
	"github.com/chazu/geoflow/pkg/tessellate"
	"github.com/chazu/geoflow/pkg/transform"
	v3 "github.com/deadsy/sdfx/vec/v3"
	log "github.com/sirupsen/logrus"
)

// itemsInput is the engine input name scripts use to reach the generated items.
const itemsInput = "items"

// colorPalette is a default palette used to assign distinct colors to meshes.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App evaluates pipeline scripts over a generated group of items.
type App struct {
	cfg    *config.Config
	engine *engine.Engine
	kernel kernel.Kernel
}

// ItemData is the JSON-serializable summary of one realized item.
type ItemData struct {
	Name   string     `json:"name"`
	Center [3]float64 `json:"center"`
	Size   [3]float64 `json:"size"`
}

// MeshData is the JSON-serializable mesh format.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable evaluation or validation finding.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	NodeID  string `json:"nodeId,omitempty"`
	Message string `json:"message"`
}

// EvalResult is the full result of one script evaluation.
type EvalResult struct {
	Items    []ItemData      `json:"items"`
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates an App whose engine sees cfg.Items cuboids of edge
// cfg.ItemSize under the input name "items".
func NewApp(cfg *config.Config) *App {
	k := sdfx.NewWithCells(cfg.MeshCells)
	return &App{
		cfg: cfg,
		engine: engine.NewEngine(
			engine.WithTimeout(cfg.EvalTimeout),
			engine.WithKernel(k),
			engine.WithInput(itemsInput, makeItems(cfg.Items, cfg.ItemSize)),
		),
		kernel: k,
	}
}

// makeItems returns n cuboids of edge size centered on the origin.
func makeItems(n int, size float64) *transform.Group {
	g := transform.NewGroup(itemsInput)
	for i := 0; i < n; i++ {
		c := shape.NewCuboid(fmt.Sprintf("item-%d", i), v3.Vec{X: size, Y: size, Z: size})
		if err := g.AddItem(c); err != nil {
			log.WithError(err).Warn("skipping item")
		}
	}
	return g
}

// itemName returns the id of a leaf shape.
func itemName(o transform.Object) string {
	switch s := o.(type) {
	case *shape.Mesh:
		return s.ID
	case *shape.Solid:
		return s.ID
	}
	return fmt.Sprint(o)
}

// Evaluate takes Lisp source, runs the pipeline it describes and returns
// the realized items, optional meshes and any errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Items:    []ItemData{},
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a pipeline graph.
	g, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.WithError(err).Error("evaluate failed")
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for _, e := range evalErrs {
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    e.Line,
			Col:     e.Col,
			Message: e.Message,
		})
	}
	if len(result.Errors) > 0 || g.NodeCount() == 0 {
		return result
	}

	// Step 2: Validate the graph. Warnings are reported but do not stop the run.
	findings := graph.Validate(g)
	for _, f := range graph.Warnings(findings) {
		result.Warnings = append(result.Warnings, EvalErrorData{NodeID: f.NodeID, Message: f.Message})
	}
	for _, f := range graph.Errors(findings) {
		result.Errors = append(result.Errors, EvalErrorData{NodeID: f.NodeID, Message: f.Message})
	}
	if len(result.Errors) > 0 {
		return result
	}

	// Step 3: Run the pipeline and realize the sink's output.
	out, err := graph.Run(g)
	if err != nil {
		log.WithError(err).Error("pipeline failed")
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	out.Flatten()
	for _, it := range out.Items() {
		bb := it.Bounds()
		c, s := bb.Center(), bb.Size()
		result.Items = append(result.Items, ItemData{
			Name:   itemName(it),
			Center: [3]float64{c.X, c.Y, c.Z},
			Size:   [3]float64{s.X, s.Y, s.Z},
		})
	}

	if !a.cfg.Tessellate {
		return result
	}

	// Step 4: Tessellate the realized items into triangle meshes.
	meshes, err := tessellate.Tessellate(out, a.kernel)
	if err != nil {
		log.WithError(err).Error("tessellate failed")
		result.Errors = append(result.Errors, EvalErrorData{Message: "tessellation failed: " + err.Error()})
		return result
	}
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}
