package graph

import (
	"fmt"

	"github.com/chazu/geoflow/pkg/node"
	"github.com/google/uuid"
)

// Input names the node and output slot that feed an entry.
type Input struct {
	From   string `json:"from"`
	Output int    `json:"output"`
}

// Entry is a named stage and its inputs.
type Entry struct {
	ID     string     `json:"id"`
	Stage  node.Stage `json:"-"`
	Inputs []Input    `json:"inputs,omitempty"`
}

// Kind returns the stage name, or "none" if the stage is unset.
func (e *Entry) Kind() string {
	if e.Stage == nil {
		return "none"
	}
	return e.Stage.Name()
}

// Graph is a pipeline description. It is produced by script evaluation and
// not mutated by Build or Run.
type Graph struct {
	Entries map[string]*Entry `json:"entries"`
	Sink    string            `json:"sink"`

	order []string
}

// New creates an empty pipeline graph.
func New() *Graph {
	return &Graph{Entries: make(map[string]*Entry)}
}

// Add registers a stage under id. An empty id is replaced by a random one.
// The last added entry becomes the sink unless SetSink is called later.
func (g *Graph) Add(id string, stage node.Stage, inputs ...Input) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := g.Entries[id]; exists {
		return "", fmt.Errorf("graph: node %q already defined", id)
	}
	g.Entries[id] = &Entry{ID: id, Stage: stage, Inputs: inputs}
	g.order = append(g.order, id)
	g.Sink = id
	return id, nil
}

// Connect adds an input to entry to, fed by output slot output of from.
func (g *Graph) Connect(to, from string, output int) error {
	e, ok := g.Entries[to]
	if !ok {
		return fmt.Errorf("graph: no node named %q", to)
	}
	e.Inputs = append(e.Inputs, Input{From: from, Output: output})
	return nil
}

// SetSink selects the entry whose output is the result of Run.
func (g *Graph) SetSink(id string) {
	g.Sink = id
}

// Get returns the entry with the given id, or nil.
func (g *Graph) Get(id string) *Entry {
	return g.Entries[id]
}

// IDs returns entry ids in insertion order.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// NodeCount returns the total number of entries.
func (g *Graph) NodeCount() int {
	return len(g.Entries)
}
