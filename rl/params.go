package rl

// Params configure a QLearning agent.
type Params struct {
	// LearningRate scales each temporal-difference update.
	LearningRate float64
	// Discount weights future rewards against immediate ones.
	Discount float64
	// Epsilon is the initial probability of taking a uniformly random
	// action instead of the greedy one.
	Epsilon float64
	// MinEpsilon is the floor below which exploration never decays.
	MinEpsilon float64
	// EpsilonDecay is the amount by which Epsilon shrinks per unit of
	// elapsed time.
	EpsilonDecay float64
}

// DefaultParams returns a conservative parameterization that works
// reasonably well on small models.
func DefaultParams() Params {
	return Params{
		LearningRate: 0.1,
		Discount:     0.99,
		Epsilon:      1.0,
		MinEpsilon:   0.1,
		EpsilonDecay: 0.05,
	}
}
