package graph

import (
	"errors"
	"fmt"

	"github.com/chazu/geoflow/pkg/node"
	"github.com/chazu/geoflow/pkg/transform"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var logger = logrus.WithField("pkg", "graph")

// Build validates g and creates one connected pipeline node per entry.
// Warnings do not prevent building.
func Build(g *Graph) (map[string]*node.Node, error) {
	findings := Validate(g)
	for _, w := range Warnings(findings) {
		logger.WithField("node", w.NodeID).Debug(w.Message)
	}
	if errs := Errors(findings); len(errs) > 0 {
		return nil, fmt.Errorf("graph: invalid pipeline: %w",
			errors.Join(lo.Map(errs, func(e ValidationError, _ int) error { return e })...))
	}

	nodes := make(map[string]*node.Node, len(g.Entries))
	for _, id := range sortedIDs(g) {
		nodes[id] = node.New(id, g.Entries[id].Stage)
	}
	for _, id := range sortedIDs(g) {
		for _, in := range g.Entries[id].Inputs {
			if err := nodes[id].AddInput(nodes[in.From], in.Output); err != nil {
				return nil, fmt.Errorf("graph: %w", err)
			}
		}
	}
	return nodes, nil
}

// Run builds g, updates the sink and returns its output group.
func Run(g *Graph) (*transform.Group, error) {
	nodes, err := Build(g)
	if err != nil {
		return nil, err
	}
	sink := nodes[g.Sink]
	if err := sink.Update(); err != nil {
		return nil, fmt.Errorf("graph: run: %w", err)
	}
	out, err := sink.Output(node.OutputTarget)
	if err != nil {
		return nil, fmt.Errorf("graph: run: %w", err)
	}
	logger.WithFields(logrus.Fields{"sink": g.Sink, "items": out.NumItems()}).Debug("pipeline complete")
	return out, nil
}
