package engine

import (
	"fmt"

	"github.com/chazu/geoflow/pkg/bounds"
	"github.com/chazu/geoflow/pkg/graph"
	"github.com/chazu/geoflow/pkg/kernel"
	"github.com/chazu/geoflow/pkg/mapping"
	"github.com/chazu/geoflow/pkg/node"
	"github.com/chazu/geoflow/pkg/shape"
	"github.com/chazu/geoflow/pkg/transform"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a v3.Vec.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpObject wraps a geometry object (leaf or group).
type sexpObject struct {
	obj transform.Object
}

func (o *sexpObject) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(object %v)", o.obj)
}
func (o *sexpObject) Type() *zygo.RegisteredType { return nil }

// sexpNodeRef wraps a pipeline node id so it can be passed between builtins.
type sexpNodeRef struct {
	id string
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(node %q)", n.id)
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpMapping wraps a vector mapping.
type sexpMapping struct {
	m mapping.Vector3
}

func (m *sexpMapping) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mapping %T)", m.m)
}
func (m *sexpMapping) Type() *zygo.RegisteredType { return nil }

// sexpScalar wraps a scalar mapping.
type sexpScalar struct {
	s mapping.Scalar
}

func (s *sexpScalar) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(scalar %T)", s.s)
}
func (s *sexpScalar) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Builder state shared by the builtins of one evaluation
// ---------------------------------------------------------------------------

type builder struct {
	g      *graph.Graph
	k      kernel.Kernel
	inputs map[string]*transform.Group
	counts map[string]int
}

// nextID returns kind-N, numbered per kind within one evaluation.
func (b *builder) nextID(kind string) string {
	b.counts[kind]++
	return fmt.Sprintf("%s-%d", kind, b.counts[kind])
}

// addStage registers a stage. Positional arguments are upstream nodes and
// :id overrides the generated node id.
func (b *builder) addStage(kind string, pa kwArgs, stage node.Stage) (zygo.Sexp, error) {
	id := ""
	if err := pa.str("id", &id); err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
	}
	if id == "" {
		id = b.nextID(kind)
	}
	var inputs []graph.Input
	for i, p := range pa.positional {
		from, err := toNodeRef(p)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: input %d: %w", kind, i, err)
		}
		inputs = append(inputs, graph.Input{From: from, Output: node.OutputTarget})
	}
	id, err := b.g.Add(id, stage, inputs...)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
	}
	return &sexpNodeRef{id: id}, nil
}

// addObject wraps a freshly built object and applies the common :at and
// :id keywords.
func (b *builder) addObject(kind string, pa kwArgs, obj transform.Object) (zygo.Sexp, error) {
	var at v3.Vec
	if err := pa.vec("at", &at); err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", kind, err)
	}
	if at != (v3.Vec{}) {
		obj.Translate(at)
	}
	return &sexpObject{obj: obj}, nil
}

// solid wraps a kernel solid as a leaf object.
func (b *builder) solid(kind, id string, s kernel.Solid, err error) (transform.Object, error) {
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = b.nextID(kind)
	}
	return shape.NewSolid(id, b.k, s)
}

// shapeOf returns the containment test of an object. Objects without one
// use their bounding box.
func shapeOf(o transform.Object) mapping.Shape {
	if s, ok := o.(mapping.Shape); ok {
		return s
	}
	return bounds.NewBoxItemFromBounds(o.Bounds(), "")
}

// transformed clones the object in the first argument and applies fn.
func transformed(name string, args []zygo.Sexp, fn func(o transform.Object, rest []zygo.Sexp) error) (zygo.Sexp, error) {
	if len(args) < 2 {
		return zygo.SexpNull, fmt.Errorf("%s requires an object and an argument", name)
	}
	o, err := toObject(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
	}
	c := o.Clone()
	if err := fn(c, args[1:]); err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
	}
	return &sexpObject{obj: c}, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all pipeline DSL builtins into a zygomys
// environment. The builtins populate b.g during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {
	registerGeometry(env, b)
	registerMappings(env, b)
	registerStages(env, b)
}

func registerGeometry(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: v3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (cuboid :size (vec3 1 2 3) :at (vec3 0 0 5) :id "c")
	// -----------------------------------------------------------------------
	env.AddFunction("cuboid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		size := v3.Vec{X: 1, Y: 1, Z: 1}
		id := ""
		if err := firstErr(pa.vec("size", &size), pa.str("id", &id)); err != nil {
			return zygo.SexpNull, fmt.Errorf("cuboid: %w", err)
		}
		if id == "" {
			id = b.nextID("cuboid")
		}
		return b.addObject("cuboid", pa, shape.NewCuboid(id, size))
	})

	// -----------------------------------------------------------------------
	// (octahedron :radius 1)
	// -----------------------------------------------------------------------
	env.AddFunction("octahedron", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		r := 1.0
		id := ""
		if err := firstErr(pa.float("radius", &r), pa.str("id", &id)); err != nil {
			return zygo.SexpNull, fmt.Errorf("octahedron: %w", err)
		}
		if id == "" {
			id = b.nextID("octahedron")
		}
		return b.addObject("octahedron", pa, shape.NewOctahedron(id, r))
	})

	// -----------------------------------------------------------------------
	// (box :size (vec3 1 1 1))  kernel solid
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		size := v3.Vec{X: 1, Y: 1, Z: 1}
		id := ""
		if err := firstErr(pa.vec("size", &size), pa.str("id", &id)); err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		s, err := b.k.Box(size)
		obj, err := b.solid("box", id, s, err)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return b.addObject("box", pa, obj)
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 1)  kernel solid
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		r := 1.0
		id := ""
		if err := firstErr(pa.float("radius", &r), pa.str("id", &id)); err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		s, err := b.k.Sphere(r)
		obj, err := b.solid("sphere", id, s, err)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return b.addObject("sphere", pa, obj)
	})

	// -----------------------------------------------------------------------
	// (cylinder :height 2 :radius 0.5)  kernel solid along Z
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		h, r := 1.0, 0.5
		id := ""
		if err := firstErr(pa.float("height", &h), pa.float("radius", &r), pa.str("id", &id)); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		s, err := b.k.Cylinder(h, r)
		obj, err := b.solid("cylinder", id, s, err)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return b.addObject("cylinder", pa, obj)
	})

	// -----------------------------------------------------------------------
	// (group "name" obj obj ...)  items may also be lists of objects
	// -----------------------------------------------------------------------
	env.AddFunction("group", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("group requires a name argument")
		}
		groupName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("group: name: %w", err)
		}

		g := transform.NewGroup(groupName)
		var add func(i int, s zygo.Sexp) error
		add = func(i int, s zygo.Sexp) error {
			if o, err := toObject(s); err == nil {
				// Items are values in the script; the group owns a copy.
				return g.AddItem(o.Clone())
			}
			items, err := sexpListToSlice(s)
			if err != nil {
				return fmt.Errorf("item %d: expected object or list, got %T (%s)", i, s, s.SexpString(nil))
			}
			for _, it := range items {
				if err := add(i, it); err != nil {
					return err
				}
			}
			return nil
		}
		for i, s := range pa.positional[1:] {
			if err := add(i+1, s); err != nil {
				return zygo.SexpNull, fmt.Errorf("group: %w", err)
			}
		}
		return b.addObject("group", pa, g)
	})

	// -----------------------------------------------------------------------
	// (translate obj (vec3 1 0 0)), (scale obj 2), (rotate obj 90 (vec3 0 0 1))
	// Each returns a transformed copy; the rotation angle is in degrees.
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return transformed("translate", args, func(o transform.Object, rest []zygo.Sexp) error {
			v, err := toVec3(rest[0])
			if err != nil {
				return err
			}
			o.Translate(v)
			return nil
		})
	})
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return transformed("scale", args, func(o transform.Object, rest []zygo.Sexp) error {
			v, err := toVec3(rest[0])
			if err != nil {
				return err
			}
			o.Scale(v)
			return nil
		})
	})
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return transformed("rotate", args, func(o transform.Object, rest []zygo.Sexp) error {
			if len(rest) != 2 {
				return fmt.Errorf("expected angle and axis")
			}
			deg, err := toFloat64(rest[0])
			if err != nil {
				return fmt.Errorf("angle: %w", err)
			}
			axis, err := toVec3(rest[1])
			if err != nil {
				return fmt.Errorf("axis: %w", err)
			}
			o.Rotate(sdf.DtoR(deg), axis)
			return nil
		})
	})
}

func registerMappings(env *zygo.Zlisp, b *builder) {

	// (constant 2)
	env.AddFunction("constant", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("constant requires exactly 1 argument, got %d", len(args))
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("constant: %w", err)
		}
		return &sexpScalar{s: mapping.Constant{Value: f}}, nil
	})

	// (linear :scale 2 :offset 1)
	env.AddFunction("linear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		l := mapping.Linear{Scale: 1}
		if err := firstErr(pa.float("scale", &l.Scale), pa.float("offset", &l.Offset)); err != nil {
			return zygo.SexpNull, fmt.Errorf("linear: %w", err)
		}
		return &sexpScalar{s: l}, nil
	})

	// (gauss :mean 0 :stddev 1)
	env.AddFunction("gauss", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		mean, stddev := 0.0, 1.0
		if err := firstErr(pa.float("mean", &mean), pa.float("stddev", &stddev)); err != nil {
			return zygo.SexpNull, fmt.Errorf("gauss: %w", err)
		}
		return &sexpScalar{s: mapping.NewGaussian(mean, stddev)}, nil
	})

	// (const3 (vec3 1 2 3))
	env.AddFunction("const3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("const3 requires exactly 1 argument, got %d", len(args))
		}
		v, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("const3: %w", err)
		}
		return &sexpMapping{m: mapping.Constant3{Value: v}}, nil
	})

	// (lerp3 (vec3 0 0 0) (vec3 10 0 0))
	env.AddFunction("lerp3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("lerp3 requires exactly 2 arguments, got %d", len(args))
		}
		a, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("lerp3: from: %w", err)
		}
		c, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("lerp3: to: %w", err)
		}
		return &sexpMapping{m: mapping.Lerp3{A: a, B: c}}, nil
	})

	// (compose3 :x (linear :scale 2) :y (constant 0))
	env.AddFunction("compose3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		c := &mapping.Compose3{}
		if err := firstErr(pa.scalar("x", &c.X), pa.scalar("y", &c.Y), pa.scalar("z", &c.Z)); err != nil {
			return zygo.SexpNull, fmt.Errorf("compose3: %w", err)
		}
		return &sexpMapping{m: c}, nil
	})

	// (accept-length m :min 1 :max 2 :max-iters 100)
	env.AddFunction("accept_length", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("accept-length requires a source mapping")
		}
		src, err := toVector3(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("accept-length: source: %w", err)
		}
		r := mapping.Range{Min: 0, Max: 1}
		a := mapping.NewAcceptLength3(src, r)
		if err := firstErr(pa.float("min", &r.Min), pa.float("max", &r.Max), pa.integer("max-iters", &a.MaxIters)); err != nil {
			return zygo.SexpNull, fmt.Errorf("accept-length: %w", err)
		}
		a.Cond = mapping.LengthCondition{Range: r}
		return &sexpMapping{m: a}, nil
	})

	// (accept-volume m obj :max-iters 100)
	env.AddFunction("accept_volume", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("accept-volume requires a source mapping and a reference object")
		}
		src, err := toVector3(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("accept-volume: source: %w", err)
		}
		ref, err := toObject(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("accept-volume: reference: %w", err)
		}
		a := mapping.NewAcceptVolume3(src, shapeOf(ref))
		if err := pa.integer("max-iters", &a.MaxIters); err != nil {
			return zygo.SexpNull, fmt.Errorf("accept-volume: %w", err)
		}
		return &sexpMapping{m: a}, nil
	})

	// (lut :entries 8 :x (linear :scale 10) :inside obj)
	env.AddFunction("lut", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.lut("lut", parseArgs(args), true)
	})

	// (gauss-lut :entries 8 :mean (vec3 0 0 0) :stddev (vec3 1 1 1) :inside obj)
	env.AddFunction("gauss_lut", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.lut("gauss-lut", parseArgs(args), false)
	})
}

// lut builds a lookup table with node.CreateLUT.
func (b *builder) lut(name string, pa kwArgs, scalars bool) (zygo.Sexp, error) {
	cfg := node.LUTConfig{Entries: 16, StdDev: v3.Vec{X: 1, Y: 1, Z: 1}}
	err := firstErr(
		pa.integer("entries", &cfg.Entries),
		pa.integer("max-iters", &cfg.MaxIters),
	)
	if err == nil && scalars {
		err = firstErr(pa.scalar("x", &cfg.X), pa.scalar("y", &cfg.Y), pa.scalar("z", &cfg.Z))
		if err == nil && cfg.X == nil {
			err = fmt.Errorf("x mapping is required")
		}
	}
	if err == nil && !scalars {
		err = firstErr(pa.vec("mean", &cfg.Mean), pa.vec("stddev", &cfg.StdDev))
	}
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
	}
	if v, ok := pa.kw["inside"]; ok {
		ref, err := toObject(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: inside: %w", name, err)
		}
		cfg.Reference = shapeOf(ref)
	}
	l, err := node.CreateLUT(cfg)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
	}
	return &sexpMapping{m: l}, nil
}

func registerStages(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (source "items") names an engine input; (source obj) uses an object.
	// -----------------------------------------------------------------------
	env.AddFunction("source", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("source requires an input name or an object")
		}
		var g *transform.Group
		if o, err := toObject(pa.positional[0]); err == nil {
			if grp, ok := o.AsGroup(); ok {
				g = grp.CloneGroup()
			} else {
				g = transform.NewGroup("source")
				if err := g.AddItem(o.Clone()); err != nil {
					return zygo.SexpNull, fmt.Errorf("source: %w", err)
				}
			}
		} else {
			inputName, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("source: expected input name or object, got %T", pa.positional[0])
			}
			in, ok := b.inputs[inputName]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("source: no input named %q", inputName)
			}
			g = in
		}
		pa.positional = nil
		return b.addStage("source", pa, &node.Source{Group: g})
	})

	// (array [in] :rows 2 :columns 2 :cell-width 10 :cell-height 10 :offset (vec3 0 0 0))
	env.AddFunction("array", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		a := &node.Array{Rows: 1, Columns: 1, CellWidth: 1, CellHeight: 1}
		err := firstErr(
			pa.integer("rows", &a.Rows),
			pa.integer("columns", &a.Columns),
			pa.float("cell-width", &a.CellWidth),
			pa.float("cell-height", &a.CellHeight),
			pa.vec("offset", &a.Offset),
		)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("array: %w", err)
		}
		return b.addStage("array", pa, a)
	})

	// (center [in] :method :bounds :origin (vec3 0 0 0))
	env.AddFunction("center", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		c := &node.Center{Method: transform.CenterBarycenter}
		if err := firstErr(pa.vec("origin", &c.Origin), b.method(pa, &c.Method)); err != nil {
			return zygo.SexpNull, fmt.Errorf("center: %w", err)
		}
		return b.addStage("center", pa, c)
	})

	// (normalize [in])
	env.AddFunction("normalize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return b.addStage("normalize", parseArgs(args), node.Normalize{})
	})

	// (scatter [in] :offset-func m :offset (vec3 ...) ...)
	env.AddFunction("scatter", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		s := node.NewScatter(nil)
		err := firstErr(
			pa.vector3("offset-func", &s.OffsetFunc),
			pa.vec("offset", &s.Offset),
			pa.vec("offset-scale", &s.OffsetScale),
			pa.float("offset-scale-factor", &s.OffsetScaleFactor),
			pa.float("offset-delta-scale-factor", &s.OffsetDeltaScaleFactor),
			pa.float("offset-index-scale", &s.OffsetIndexScale),
			pa.float("offset-index-offset", &s.OffsetIndexOffset),
			pa.scalar("offset-index-func", &s.OffsetIndexFunc),
			pa.vec("element-scale", &s.ElementScale),
			pa.float("element-scale-factor", &s.ElementScaleFactor),
			pa.float("element-delta-scale-factor", &s.ElementDeltaScaleFactor),
			pa.vector3("element-scale-index-func", &s.ElementScaleIndexFunc),
			pa.vector3("element-scale-distance-func", &s.ElementScaleDistanceFunc),
			pa.float("distance-scale", &s.DistanceScale),
			b.method(pa, &s.CenteringMethod),
		)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scatter: %w", err)
		}
		return b.addStage("scatter", pa, s)
	})

	// -----------------------------------------------------------------------
	// (chain a b c) feeds each node without inputs from the previous one and
	// makes the last node the sink.
	// -----------------------------------------------------------------------
	env.AddFunction("chain", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("chain requires at least one node")
		}
		ids := make([]string, len(args))
		for i, a := range args {
			id, err := toNodeRef(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("chain: node %d: %w", i, err)
			}
			ids[i] = id
		}
		for i := 1; i < len(ids); i++ {
			if len(b.g.Get(ids[i]).Inputs) > 0 {
				continue
			}
			if err := b.g.Connect(ids[i], ids[i-1], node.OutputTarget); err != nil {
				return zygo.SexpNull, fmt.Errorf("chain: %w", err)
			}
		}
		b.g.SetSink(ids[len(ids)-1])
		return args[len(args)-1], nil
	})

	// (sink n)
	env.AddFunction("sink", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("sink requires exactly 1 argument, got %d", len(args))
		}
		id, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sink: %w", err)
		}
		b.g.SetSink(id)
		return args[0], nil
	})
}

// method reads the :method keyword into dst.
func (b *builder) method(pa kwArgs, dst *transform.CenteringMethod) error {
	s := ""
	if err := pa.str("method", &s); err != nil || s == "" {
		return err
	}
	m, ok := transform.ParseCenteringMethod(s)
	if !ok {
		return fmt.Errorf("method: invalid centering method %q, expected barycenter, bounds or origin", s)
	}
	*dst = m
	return nil
}
