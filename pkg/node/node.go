// Package node implements transform pipeline nodes. A Node pulls groups
// from its inputs into a FIFO input cache, realizes the first group's own
// pending transform, lets its Stage mutate the group's direct items in
// place and publishes the same group on its output.
package node

import (
	"fmt"

	"github.com/chazu/geoflow/pkg/geomerr"
	"github.com/chazu/geoflow/pkg/transform"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("pkg", "node")

// Default slot indices.
const (
	InputSource  = 0
	OutputTarget = 0
)

// Stage mutates the direct items of a realized group.
type Stage interface {
	Name() string
	Apply(g *transform.Group) error
}

// Emitter is implemented by stages that produce their own input.
type Emitter interface {
	Emit() (*transform.Group, error)
}

// Link connects a node input to an output slot of another node.
type Link struct {
	Node   *Node
	Output int
}

// Node runs a Stage over queued groups.
type Node struct {
	ID    string
	Stage Stage

	inputs  []Link
	queue   []*transform.Group
	outputs []*transform.Group
}

// New creates a node. An empty id is replaced by a random one.
func New(id string, stage Stage) *Node {
	if id == "" {
		id = uuid.NewString()
	}
	return &Node{ID: id, Stage: stage}
}

func (n *Node) String() string {
	name := "<nil>"
	if n.Stage != nil {
		name = n.Stage.Name()
	}
	return fmt.Sprintf("Node[%s; %s]", n.ID, name)
}

// AddInput connects output slot outputID of src to the next input.
func (n *Node) AddInput(src *Node, outputID int) error {
	if src == nil {
		return geomerr.New("node.AddInput", "nil source for node %s", n.ID)
	}
	if src == n {
		return geomerr.New("node.AddInput", "node %s cannot feed itself", n.ID)
	}
	n.inputs = append(n.inputs, Link{Node: src, Output: outputID})
	return nil
}

// Inputs returns a copy of the input links.
func (n *Node) Inputs() []Link {
	out := make([]Link, len(n.inputs))
	copy(out, n.inputs)
	return out
}

// NumInputs returns the number of connected inputs.
func (n *Node) NumInputs() int {
	return len(n.inputs)
}

// PushInput queues g for processing.
func (n *Node) PushInput(g *transform.Group) {
	n.queue = append(n.queue, g)
}

// QueueLen returns the number of queued groups.
func (n *Node) QueueLen() int {
	return len(n.queue)
}

// NumOutputs returns the number of output slots filled by the last
// Process call.
func (n *Node) NumOutputs() int {
	return len(n.outputs)
}

// Output returns the group in output slot id.
func (n *Node) Output(id int) (*transform.Group, error) {
	if id < 0 || id >= len(n.outputs) {
		return nil, geomerr.New("node.Output", "node %s: output %d out of range (%d outputs)", n.ID, id, len(n.outputs))
	}
	return n.outputs[id], nil
}

// Update updates all input nodes, queues clones of their outputs and
// processes. Stages that emit their own input queue it first.
func (n *Node) Update() error {
	for _, in := range n.inputs {
		if err := in.Node.Update(); err != nil {
			return err
		}
		g, err := in.Node.Output(in.Output)
		if err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
		n.PushInput(g.CloneGroup())
	}
	if e, ok := n.Stage.(Emitter); ok {
		g, err := e.Emit()
		if err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
		n.PushInput(g)
	}
	return n.Process()
}

// Process takes the first queued group, discards the rest of the queue,
// realizes the group's own pending transform and applies the stage. The
// previous output is dropped first, so a failed run leaves no output.
func (n *Node) Process() error {
	if len(n.queue) == 0 {
		return geomerr.New("node.Process", "node %s: input queue is empty", n.ID)
	}
	if n.Stage == nil {
		return geomerr.New("node.Process", "node %s: stage not set", n.ID)
	}
	g := n.queue[0]
	n.queue = nil
	n.outputs = nil

	g.ApplyTransform(false)
	logger.WithFields(logrus.Fields{
		"node":  n.ID,
		"stage": n.Stage.Name(),
		"items": g.NumItems(),
	}).Debug("process")

	if err := n.Stage.Apply(g); err != nil {
		return fmt.Errorf("node %s (%s): %w", n.ID, n.Stage.Name(), err)
	}
	n.outputs = []*transform.Group{g}
	return nil
}
