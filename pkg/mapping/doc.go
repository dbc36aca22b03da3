// Package mapping provides parametric functions of a single parameter t.
//
// Scalar mappings return a float64 and are used as index and scale
// modulators. Vector3 mappings return a point and can fail: rejection
// samplers (Accept3) give up after a bounded number of draws and lookup
// tables (Lookup3) fail when empty. All failures are geomerr errors.
package mapping
