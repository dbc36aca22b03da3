package graph

import (
	"fmt"
	"slices"

	"github.com/chazu/geoflow/pkg/mapping"
	"github.com/chazu/geoflow/pkg/node"
	"github.com/samber/lo"
)

// ValidationSeverity indicates whether a validation finding blocks
// building the pipeline or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks building
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	NodeID   string             // which node has the problem (empty if graph-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID, e.Message)
}

// Errors returns only the blocking findings.
func Errors(findings []ValidationError) []ValidationError {
	return lo.Filter(findings, func(e ValidationError, _ int) bool {
		return e.Severity == SeverityError
	})
}

// Warnings returns only the advisory findings.
func Warnings(findings []ValidationError) []ValidationError {
	return lo.Filter(findings, func(e ValidationError, _ int) bool {
		return e.Severity == SeverityWarning
	})
}

// Validate runs all checks on the pipeline graph and returns the
// findings. An empty slice means the graph is valid. Validate never
// mutates the graph.
func Validate(g *Graph) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateDAG(g)...)
	errs = append(errs, validateReferences(g)...)
	errs = append(errs, validateSink(g)...)
	errs = append(errs, validateStages(g)...)
	return errs
}

// sortedIDs returns all entry ids in a stable order.
func sortedIDs(g *Graph) []string {
	ids := lo.Keys(g.Entries)
	slices.Sort(ids)
	return ids
}

// validateDAG checks for cycles using DFS with 3-color marking.
// White (0) = unvisited, gray (1) = in current DFS path, black (2) = fully explored.
// If we encounter a gray node during traversal, we have found a cycle.
func validateDAG(g *Graph) []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int) // default zero = white
	var errs []ValidationError

	var visit func(id string) bool // returns true if cycle found
	visit = func(id string) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("cycle detected: node %s is part of a cycle", id),
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray

		e, ok := g.Entries[id]
		if !ok {
			// Dangling reference; handled by validateReferences.
			color[id] = black
			return false
		}

		// Walk input edges upstream.
		for _, in := range e.Inputs {
			if visit(in.From) {
				return true
			}
		}

		color[id] = black
		return false
	}

	for _, id := range sortedIDs(g) {
		if color[id] == white {
			if visit(id) {
				// One cycle error is sufficient; stop early.
				break
			}
		}
	}

	return errs
}

// validateReferences checks that every input names an existing node and
// an existing output slot.
func validateReferences(g *Graph) []ValidationError {
	var errs []ValidationError

	for _, id := range sortedIDs(g) {
		e := g.Entries[id]
		for _, in := range e.Inputs {
			if _, ok := g.Entries[in.From]; !ok {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("input reference %q does not exist", in.From),
					Severity: SeverityError,
				})
				continue
			}
			if in.Output != node.OutputTarget {
				errs = append(errs, ValidationError{
					NodeID:   id,
					Message:  fmt.Sprintf("input from %q uses output slot %d, only slot %d exists", in.From, in.Output, node.OutputTarget),
					Severity: SeverityError,
				})
			}
		}
	}

	return errs
}

// validateSink checks that the sink exists and warns about nodes that do
// not feed it.
func validateSink(g *Graph) []ValidationError {
	if g.Sink == "" {
		return []ValidationError{{Message: "pipeline has no sink", Severity: SeverityError}}
	}
	if _, ok := g.Entries[g.Sink]; !ok {
		return []ValidationError{{
			Message:  fmt.Sprintf("sink %q does not exist", g.Sink),
			Severity: SeverityError,
		}}
	}

	// BFS upstream from the sink.
	reachable := map[string]bool{g.Sink: true}
	queue := []string{g.Sink}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		e := g.Entries[current]
		if e == nil {
			continue
		}
		for _, in := range e.Inputs {
			if !reachable[in.From] {
				reachable[in.From] = true
				queue = append(queue, in.From)
			}
		}
	}

	var errs []ValidationError
	for _, id := range sortedIDs(g) {
		if !reachable[id] {
			errs = append(errs, ValidationError{
				NodeID:   id,
				Message:  fmt.Sprintf("node %q does not feed the sink (orphan)", id),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validateStages checks the stage configuration of every node.
func validateStages(g *Graph) []ValidationError {
	var errs []ValidationError
	add := func(id string, sev ValidationSeverity, format string, args ...any) {
		errs = append(errs, ValidationError{NodeID: id, Message: fmt.Sprintf(format, args...), Severity: sev})
	}

	for _, id := range sortedIDs(g) {
		e := g.Entries[id]
		if e.Stage == nil {
			add(id, SeverityError, "stage not set")
			continue
		}

		_, emits := e.Stage.(node.Emitter)
		switch {
		case emits && len(e.Inputs) > 0:
			add(id, SeverityError, "%s node cannot have inputs", e.Kind())
		case !emits && len(e.Inputs) == 0:
			add(id, SeverityError, "%s node has no inputs", e.Kind())
		case len(e.Inputs) > 1:
			add(id, SeverityWarning, "%d inputs, only the first group is processed", len(e.Inputs))
		}

		switch s := e.Stage.(type) {
		case *node.Source:
			if s.Group == nil {
				add(id, SeverityError, "source group not set")
			}
		case *node.Array:
			if s.Rows <= 0 || s.Columns <= 0 {
				add(id, SeverityError, "array grid must have at least one row and column (got %dx%d)", s.Rows, s.Columns)
			}
		case *node.Scatter:
			if s.OffsetFunc == nil {
				add(id, SeverityError, "scatter offset mapping not set")
			}
			for _, m := range []struct {
				name string
				f    mapping.Vector3
			}{
				{"offset", s.OffsetFunc},
				{"element scale index", s.ElementScaleIndexFunc},
				{"element scale distance", s.ElementScaleDistanceFunc},
			} {
				if msg := checkMapping(m.f); msg != "" {
					add(id, SeverityError, "%s mapping: %s", m.name, msg)
				}
			}
		}
	}

	return errs
}

// checkMapping reports unset sources and references in a vector mapping
// tree. It returns an empty string if the mapping can be evaluated.
func checkMapping(f mapping.Vector3) string {
	switch m := f.(type) {
	case *mapping.Lookup3:
		if m.NumEntries() > 0 {
			return ""
		}
		if m.Source == nil {
			return "lookup table has no source and no entries"
		}
		return checkMapping(m.Source)
	case *mapping.Accept3:
		if m.Source == nil {
			return "rejection sampler has no source"
		}
		if m.Cond == nil {
			return "rejection sampler has no condition"
		}
		if vc, ok := m.Cond.(mapping.VolumeCondition); ok && vc.Shape == nil {
			return "rejection sampler has no reference shape"
		}
		return checkMapping(m.Source)
	case *mapping.Compose3:
		if m.X == nil {
			return "x mapping not set"
		}
	}
	return ""
}
