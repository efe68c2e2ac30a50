// Package fmath provides the float64 tolerance helpers shared by the model
// implementations.
package fmath

import "math"

// Tolerance is the fixed threshold below which two float64 values are
// considered equal. Probabilities and rewards closer than this to zero are
// treated as exactly zero and are never stored in sparse form, so that
// floating point noise cannot produce spurious entries.
const Tolerance = 1e-10

// Equal returns whether a and b are within Tolerance of each other.
func Equal(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}

// IsZero returns whether x is within Tolerance of zero.
func IsZero(x float64) bool {
	return math.Abs(x) <= Tolerance
}

// Sum is
//  var sum float64
//  for _, v := range xs {
//      sum += v
//  }
func Sum(xs []float64) float64 {
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return sum
}
