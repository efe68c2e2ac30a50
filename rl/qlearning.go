// Package rl implements model-free reinforcement learning for discrete
// Markov Decision Processes.
//
// The learners only require generative access to the environment: they act,
// observe sampled transitions, and update their estimates, without ever
// enumerating the model's probabilities.
package rl

import (
	"math/rand"
)

// QLearning is a tabular epsilon-greedy Q-learning agent.
//
// An agent is not safe for concurrent use: action selection advances its
// private random generator and updates mutate the Q-table.
type QLearning struct {
	params     Params
	numActions int
	q          [][]float64
	epsilon    float64
	rng        *rand.Rand
}

// New creates an agent for a world with the given dimensions. All Q-values
// start at zero and exploration starts at params.Epsilon.
func New(numStates, numActions int, params Params) *QLearning {
	q := make([][]float64, numStates)
	for s := range q {
		q[s] = make([]float64, numActions)
	}

	return &QLearning{
		params:     params,
		numActions: numActions,
		q:          q,
		epsilon:    params.Epsilon,
		rng:        rand.New(rand.NewSource(rand.Int63())),
	}
}

// GetAction returns the epsilon-greedy action for state s: with probability
// epsilon a uniformly random action, otherwise the greedy one.
func (q *QLearning) GetAction(s int) int {
	if q.rng.Float64() < q.epsilon {
		return q.rng.Intn(q.numActions)
	}

	return q.GetBestAction(s)
}

// GetBestAction returns the action with the highest Q-value in state s. Ties
// break toward the lowest action index.
func (q *QLearning) GetBestAction(s int) int {
	best := 0
	for a := 1; a < q.numActions; a++ {
		if q.q[s][a] > q.q[s][best] {
			best = a
		}
	}

	return best
}

// UpdateQTable applies one temporal-difference update for an observed
// transition from s to s1 under action a yielding reward r.
func (q *QLearning) UpdateQTable(s, a int, r float64, s1 int) {
	target := r + q.params.Discount*q.q[s1][q.GetBestAction(s1)]
	q.q[s][a] += q.params.LearningRate * (target - q.q[s][a])
}

// QValue returns the current value estimate for taking action a in state s.
func (q *QLearning) QValue(s, a int) float64 {
	return q.q[s][a]
}

// UpdateEpsilon decays the exploration rate by dt units of elapsed time,
// never dropping below the configured floor.
func (q *QLearning) UpdateEpsilon(dt float64) {
	q.epsilon -= q.params.EpsilonDecay * dt
	if q.epsilon < q.params.MinEpsilon {
		q.epsilon = q.params.MinEpsilon
	}
}

// Epsilon returns the current exploration rate.
func (q *QLearning) Epsilon() float64 {
	return q.epsilon
}

// Seed reseeds the agent's private random generator.
func (q *QLearning) Seed(seed int64) {
	q.rng.Seed(seed)
}
