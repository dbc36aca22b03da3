package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/geoflow/pkg/mapping"
	"github.com/chazu/geoflow/pkg/transform"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toInt extracts an integer from a SexpInt, or a SexpFloat with no
// fractional part.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == float64(int(v.Val)) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3. A plain number n is taken as
// (n, n, n).
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	if f, err := toFloat64(s); err == nil {
		return v3.Vec{X: f, Y: f, Z: f}, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toNodeRef extracts a pipeline node id from a sexpNodeRef.
func toNodeRef(s zygo.Sexp) (string, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return "", fmt.Errorf("expected pipeline node, got %T (%s)", s, s.SexpString(nil))
}

// toObject extracts a geometry object from a sexpObject.
func toObject(s zygo.Sexp) (transform.Object, error) {
	if o, ok := s.(*sexpObject); ok {
		return o.obj, nil
	}
	return nil, fmt.Errorf("expected object, got %T (%s)", s, s.SexpString(nil))
}

// toVector3 extracts a vector mapping. A vec3 is taken as a constant
// mapping.
func toVector3(s zygo.Sexp) (mapping.Vector3, error) {
	switch v := s.(type) {
	case *sexpMapping:
		return v.m, nil
	case *sexpVec3:
		return mapping.Constant3{Value: v.vec}, nil
	}
	return nil, fmt.Errorf("expected vector mapping, got %T (%s)", s, s.SexpString(nil))
}

// toScalar extracts a scalar mapping. A number is taken as a constant.
func toScalar(s zygo.Sexp) (mapping.Scalar, error) {
	if v, ok := s.(*sexpScalar); ok {
		return v.s, nil
	}
	if f, err := toFloat64(s); err == nil {
		return mapping.Constant{Value: f}, nil
	}
	return nil, fmt.Errorf("expected scalar mapping, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Keyword lookup helpers. Each leaves dst unchanged if the keyword is absent.
// ---------------------------------------------------------------------------

func (pa kwArgs) float(key string, dst *float64) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func (pa kwArgs) integer(key string, dst *int) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func (pa kwArgs) str(key string, dst *string) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	s, err := toKeywordString(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = s
	return nil
}

func (pa kwArgs) vec(key string, dst *v3.Vec) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	vec, err := toVec3(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = vec
	return nil
}

func (pa kwArgs) vector3(key string, dst *mapping.Vector3) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	m, err := toVector3(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = m
	return nil
}

func (pa kwArgs) scalar(key string, dst *mapping.Scalar) error {
	v, ok := pa.kw[key]
	if !ok {
		return nil
	}
	m, err := toScalar(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = m
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
