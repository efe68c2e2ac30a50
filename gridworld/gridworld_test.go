package gridworld

import (
	"math"
	"testing"

	"github.com/timpalpant/go-mdp"
)

func TestStateCoords(t *testing.T) {
	w := New(DefaultParams())
	if w.NumStates() != 12 {
		t.Errorf("expected 12 states, got %d", w.NumStates())
	}
	if w.NumActions() != 4 {
		t.Errorf("expected 4 actions, got %d", w.NumActions())
	}

	for s := 0; s < w.NumStates(); s++ {
		x, y := w.Coords(s)
		if got := w.State(x, y); got != s {
			t.Errorf("state %d maps to (%d, %d) and back to %d", s, x, y, got)
		}
	}
}

func TestTransitionProbabilitiesSumToOne(t *testing.T) {
	w := New(DefaultParams())
	for s := 0; s < w.NumStates(); s++ {
		for a := 0; a < w.NumActions(); a++ {
			var sum float64
			for s1 := 0; s1 < w.NumStates(); s1++ {
				p := w.GetTransitionProbability(s, a, s1)
				if p < 0 || p > 1 {
					t.Fatalf("P(%d, %d, %d) = %v out of range", s, a, s1, p)
				}

				sum += p
			}

			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("state %d, action %d sums to %v", s, a, sum)
			}
		}
	}
}

func TestSlipSplit(t *testing.T) {
	params := DefaultParams()
	w := New(params)

	// From the center of the bottom row, moving right succeeds with
	// probability 1 - Slip and slips up or into the bottom wall with
	// probability Slip/2 each.
	s := w.State(1, 0)
	if got := w.GetTransitionProbability(s, int(Right), w.State(2, 0)); got != 1-params.Slip {
		t.Errorf("expected %v, got %v", 1-params.Slip, got)
	}
	if got := w.GetTransitionProbability(s, int(Right), w.State(1, 1)); got != params.Slip/2 {
		t.Errorf("expected %v, got %v", params.Slip/2, got)
	}
	if got := w.GetTransitionProbability(s, int(Right), s); got != params.Slip/2 {
		t.Errorf("expected %v, got %v", params.Slip/2, got)
	}
}

func TestBumpingWallStaysInPlace(t *testing.T) {
	params := DefaultParams()
	w := New(params)

	// Moving left from the bottom-left corner bumps the wall, and the
	// downward slip bumps it too, so both masses stay on the corner.
	want := (1 - params.Slip) + params.Slip/2
	if got := w.GetTransitionProbability(0, int(Left), 0); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := w.GetTransitionProbability(0, int(Left), w.State(0, 1)); got != params.Slip/2 {
		t.Errorf("expected %v, got %v", params.Slip/2, got)
	}
}

func TestGoalIsAbsorbing(t *testing.T) {
	params := DefaultParams()
	w := New(params)

	for a := 0; a < w.NumActions(); a++ {
		if got := w.GetTransitionProbability(params.Goal, a, params.Goal); got != 1.0 {
			t.Errorf("action %d: expected goal self-loop, got %v", a, got)
		}
		if got := w.GetExpectedReward(params.Goal, a, params.Goal); got != 0 {
			t.Errorf("action %d: expected no reward at goal, got %v", a, got)
		}
	}
}

func TestRewards(t *testing.T) {
	params := DefaultParams()
	w := New(params)

	next := w.State(3, 1)
	if got := w.GetExpectedReward(next, int(Up), params.Goal); got != params.GoalReward {
		t.Errorf("expected goal reward %v, got %v", params.GoalReward, got)
	}
	if got := w.GetExpectedReward(0, int(Right), 1); got != params.StepCost {
		t.Errorf("expected step cost %v, got %v", params.StepCost, got)
	}
}

func TestConvertToSparseModel(t *testing.T) {
	params := DefaultParams()
	w := New(params)

	m, err := mdp.NewSparseModelFromModel(w)
	if err != nil {
		t.Fatal(err)
	}

	if m.NumStates() != w.NumStates() || m.NumActions() != w.NumActions() {
		t.Fatalf("expected %d x %d, got %d x %d",
			w.NumStates(), w.NumActions(), m.NumStates(), m.NumActions())
	}

	for s := 0; s < w.NumStates(); s++ {
		for a := 0; a < w.NumActions(); a++ {
			for s1 := 0; s1 < w.NumStates(); s1++ {
				want := w.GetTransitionProbability(s, a, s1)
				if got := m.GetTransitionProbability(s, a, s1); math.Abs(got-want) > 1e-9 {
					t.Errorf("P(%d, %d, %d): expected %v, got %v", s, a, s1, want, got)
				}
			}
		}
	}

	if !m.IsTerminal(params.Goal) {
		t.Error("expected goal state to be terminal")
	}
	if m.IsTerminal(0) {
		t.Error("expected start state not to be terminal")
	}

	// A random walk on the copied model reaches the absorbing goal.
	m.Seed(1)
	s := 0
	for i := 0; i < 10000 && s != params.Goal; i++ {
		s, _ = m.SampleSR(s, i%m.NumActions())
	}

	if s != params.Goal {
		t.Error("random walk never reached the goal")
	}
}
