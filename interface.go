// Package mdp implements discrete, time-homogeneous Markov Decision Process
// models with sparse storage, and the stochastic sampling used to produce
// simulated experience for reinforcement learning consumers.
//
// State and action identifiers are non-negative integers in [0, NumStates())
// and [0, NumActions()) respectively; no symbolic naming is provided at this
// layer. All probabilities and rewards are float64.
package mdp

// Model is the minimal capability set of an MDP model: dimensions, a discount
// factor, and per-triple transition probabilities and rewards.
//
// Implementations are free to compute probabilities on demand. Any Model may
// be converted into a storage-backed SparseModel with NewSparseModelFromModel.
type Model interface {
	// NumStates returns the number of states of the world.
	NumStates() int

	// NumActions returns the number of actions available to the agent.
	NumActions() int

	// Discount returns the discount factor applied to future rewards.
	// It is always in [0, 1].
	Discount() float64

	// GetTransitionProbability returns the probability of ending in state s1
	// when performing action a in state s.
	GetTransitionProbability(s, a, s1 int) float64

	// GetExpectedReward returns the reward associated with the (s, a, s1)
	// transition.
	GetExpectedReward(s, a, s1 int) float64
}

// GenerativeModel is a Model that can additionally be sampled for simulated
// experience. It is the contract consumed by learning algorithms: they call
// SampleSR with state-action pairs during each simulated step, and query
// IsTerminal to decide episode boundaries.
type GenerativeModel interface {
	Model

	// SampleSR samples a successor state for the given state-action pair,
	// with probability equal to the probability of that transition in the
	// model, and returns it together with the reward of the sampled
	// transition. Sampling advances the model's private random generator;
	// it has no other side effects.
	SampleSR(s, a int) (s1 int, reward float64)

	// IsTerminal returns whether the given state is terminal: every action
	// leads back to the state itself with certainty.
	IsTerminal(s int) bool
}
