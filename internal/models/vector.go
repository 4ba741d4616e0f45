// ABOUTME: Vector arithmetic helpers for embedding vectors
// ABOUTME: Provides dot product and defensive L2 normalization
package models

import "math"

// normEpsilon guards the division in Normalize. Norms below this are
// treated as zero so a degenerate embedding stays a zero vector instead
// of blowing up to huge components.
const normEpsilon = 1e-12

// Dot returns the dot product of a and b. Mismatched lengths score 0
// rather than panicking, mirroring how a dimension mismatch should rank
// nowhere rather than abort a query.
func Dot(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return float32(sum)
}

// Norm returns the Euclidean (L2) norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Normalize scales v in place to unit length. Vectors whose norm is
// effectively zero are left untouched. Already-normalized input passes
// through with only rounding-level change, so it is safe to apply
// unconditionally to generator output.
func Normalize(v []float32) {
	n := Norm(v)
	if n <= normEpsilon {
		return
	}
	inv := 1.0 / n
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
