// Package sampling implements the weighted categorical draw shared by the
// model implementations.
package sampling

import "math/rand"

// Weighted draws an index from a sparse probability row, where indices[k]
// holds the index of the k-th stored entry and values[k] its probability
// mass. The masses are assumed to sum to 1.
//
// The draw walks the entries in stored order, accumulating mass until it
// exceeds a uniform sample in [0, 1). If floating point round-off leaves the
// accumulated mass short of the sample after the last entry, the last entry
// is selected. It returns the selected index and the exact mass used to
// select it.
func Weighted(rng *rand.Rand, indices []int, values []float64) (int, float64) {
	x := rng.Float64()
	var cumProb float64
	for k, p := range values {
		cumProb += p
		if cumProb > x {
			return indices[k], p
		}
	}

	k := len(values) - 1
	return indices[k], values[k]
}
