package sampling

import (
	"math/rand"
	"testing"
)

func TestWeightedSingleEntry(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		idx, p := Weighted(rng, []int{7}, []float64{1.0})
		if idx != 7 || p != 1.0 {
			t.Fatalf("expected (7, 1.0), got (%d, %v)", idx, p)
		}
	}
}

func TestWeightedReturnsSelectionMass(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	indices := []int{2, 5, 9}
	values := []float64{0.2, 0.3, 0.5}

	for i := 0; i < 1000; i++ {
		idx, p := Weighted(rng, indices, values)
		switch idx {
		case 2:
			if p != 0.2 {
				t.Fatalf("index 2: expected mass 0.2, got %v", p)
			}
		case 5:
			if p != 0.3 {
				t.Fatalf("index 5: expected mass 0.3, got %v", p)
			}
		case 9:
			if p != 0.5 {
				t.Fatalf("index 9: expected mass 0.5, got %v", p)
			}
		default:
			t.Fatalf("selected index %d not among the entries", idx)
		}
	}
}

func TestWeightedFrequencies(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	indices := []int{0, 1}
	values := []float64{0.7, 0.3}

	const n = 100000
	counts := make(map[int]int)
	for i := 0; i < n; i++ {
		idx, _ := Weighted(rng, indices, values)
		counts[idx]++
	}

	freq := float64(counts[0]) / n
	if freq < 0.69 || freq > 0.71 {
		t.Errorf("expected index 0 frequency near 0.7, got %v", freq)
	}
}

// Round-off can leave the accumulated mass short of 1; the draw must still
// select some stored entry rather than fall off the end.
func TestWeightedRoundOffFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	indices := []int{3}
	values := []float64{0.25}

	for i := 0; i < 1000; i++ {
		idx, p := Weighted(rng, indices, values)
		if idx != 3 || p != 0.25 {
			t.Fatalf("expected fallback to (3, 0.25), got (%d, %v)", idx, p)
		}
	}
}
