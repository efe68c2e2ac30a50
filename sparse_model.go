package mdp

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-mdp/internal/fmath"
	"github.com/timpalpant/go-mdp/internal/sampling"
)

// SparseModel is a Markov Decision Process whose transition and reward
// functions are held in sparse matrices. Access to an individual probability
// is slightly slower than with dense storage, but memory consumption and the
// cost of bulk operations shrink enormously when the number of possible
// transitions is small with respect to the full S x A x S space, which is the
// common case for models of games and environments with local structure.
//
// Transitions are stored as one S x S matrix per action, in which entry
// (s, s1) is the probability of moving from s to s1 under that action; every
// row sums to 1. Rewards are stored as an S x A matrix of expected immediate
// rewards: the probability-weighted sum of the rewards of the individual
// transitions out of (s, a). Per-transition rewards are reconstructed on
// demand by dividing the stored expected reward by the transition
// probability.
//
// Each model owns a private random generator seeded at construction from the
// process-wide source, so concurrent models never share sampling state. A
// model is not safe for concurrent use: sampling advances the generator and
// is therefore a logical write.
type SparseModel struct {
	numStates  int
	numActions int
	discount   float64

	transitions []*SparseMatrix // one S x S matrix per action
	rewards     *SparseMatrix   // S x A expected rewards

	rng *rand.Rand
}

// NewSparseModel constructs a model in which every state transitions back to
// itself with probability 1 under every action, and all rewards are zero.
// The model is immediately valid and sampleable with no further setup.
//
// It fails with ErrInvalidDimensions if numStates or numActions is smaller
// than 1, and with ErrInvalidDiscount if the discount lies outside [0, 1].
func NewSparseModel(numStates, numActions int, discount float64) (*SparseModel, error) {
	if numStates < 1 || numActions < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "S = %d, A = %d", numStates, numActions)
	}

	if err := validateDiscount(discount); err != nil {
		return nil, err
	}

	transitions := make([]*SparseMatrix, numActions)
	for a := range transitions {
		t := NewSparseMatrix(numStates, numStates)
		for s := 0; s < numStates; s++ {
			t.Set(s, s, 1.0)
		}

		transitions[a] = t
	}

	return &SparseModel{
		numStates:   numStates,
		numActions:  numActions,
		discount:    discount,
		transitions: transitions,
		rewards:     NewSparseMatrix(numStates, numActions),
		rng:         rand.New(rand.NewSource(rand.Int63())),
	}, nil
}

// NewSparseModelFromDense copies dense transition and reward functions, both
// indexed [s][a][s1], into sparse form. The transition function is validated:
// every probability must lie in [0, 1] and every row must sum to 1 within
// tolerance. Rewards are aggregated into expected rewards weighted by the
// transition probabilities.
func NewSparseModelFromDense(numStates, numActions int, transitions, rewards [][][]float64, discount float64) (*SparseModel, error) {
	m, err := NewSparseModel(numStates, numActions, discount)
	if err != nil {
		return nil, err
	}

	if err := m.SetTransitionFunction(transitions); err != nil {
		return nil, err
	}

	if err := m.SetRewardFunction(rewards); err != nil {
		return nil, err
	}

	return m, nil
}

// NewSparseModelFromModel copies an arbitrary compatible model into sparse
// storage. A typical use is converting a model that computes probabilities on
// demand into one backed by fast storage, which is feasible whenever S and A
// are not too big to enumerate.
//
// Every (s, a, s1) triple of the source is visited once. Each transition
// probability is validated to lie in [0, 1] and each row of derived
// probabilities to sum to 1 within tolerance; per-triple rewards are
// aggregated into this model's expected-reward convention by weighting them
// with the observed transition probabilities.
func NewSparseModelFromModel(src Model) (*SparseModel, error) {
	S, A := src.NumStates(), src.NumActions()
	if S < 1 || A < 1 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "S = %d, A = %d", S, A)
	}

	if err := validateDiscount(src.Discount()); err != nil {
		return nil, err
	}

	transitions := make([]*SparseMatrix, A)
	for a := range transitions {
		transitions[a] = NewSparseMatrix(S, S)
	}

	rewards := NewSparseMatrix(S, A)
	for s := 0; s < S; s++ {
		for a := 0; a < A; a++ {
			expected := 0.0
			for s1 := 0; s1 < S; s1++ {
				p := src.GetTransitionProbability(s, a, s1)
				if p < 0 || p > 1 {
					return nil, errors.Wrapf(ErrInvalidProbability, "P(%d, %d, %d) = %v", s, a, s1, p)
				}

				transitions[a].Set(s, s1, p)
				if r := src.GetExpectedReward(s, a, s1); !fmath.IsZero(r) {
					expected += r * p
				}
			}

			if sum := transitions[a].Row(s).Sum(); !fmath.Equal(sum, 1.0) {
				return nil, errors.Wrapf(ErrInvalidRowSum, "state %d, action %d sums to %v", s, a, sum)
			}

			rewards.Set(s, a, expected)
		}
	}

	return &SparseModel{
		numStates:   S,
		numActions:  A,
		discount:    src.Discount(),
		transitions: transitions,
		rewards:     rewards,
		rng:         rand.New(rand.NewSource(rand.Int63())),
	}, nil
}

// NewSparseModelUnchecked takes ownership of prebuilt transition and reward
// matrices with no validation at all, avoiding copies and sanity checks when
// the caller has already validated equivalent data elsewhere.
//
// The caller's contract: transitions holds numActions matrices of
// numStates x numStates valid probability rows, and rewards is
// numStates x numActions. Any violation is not detected here and will
// manifest later as inconsistent sampling.
func NewSparseModelUnchecked(numStates, numActions int, transitions []*SparseMatrix, rewards *SparseMatrix, discount float64) *SparseModel {
	return &SparseModel{
		numStates:   numStates,
		numActions:  numActions,
		discount:    discount,
		transitions: transitions,
		rewards:     rewards,
		rng:         rand.New(rand.NewSource(rand.Int63())),
	}
}

// SetDiscount sets a new discount factor, failing with ErrInvalidDiscount if
// it lies outside [0, 1].
func (m *SparseModel) SetDiscount(discount float64) error {
	if err := validateDiscount(discount); err != nil {
		return err
	}

	m.discount = discount
	return nil
}

// SetTransitionFunction replaces the transition function with the dense
// function t, indexed [s][a][s1]. It fails with ErrDimensionMismatch if the
// shape of t does not match the model, with ErrInvalidProbability if any
// value lies outside [0, 1], and with ErrInvalidRowSum if any row does not
// sum to 1 within tolerance. On failure the previously stored transition
// function is retained unchanged.
func (m *SparseModel) SetTransitionFunction(t [][][]float64) error {
	if err := m.checkDenseShape(t); err != nil {
		return err
	}

	for s := range t {
		for a, row := range t[s] {
			for s1, p := range row {
				if p < 0 || p > 1 {
					return errors.Wrapf(ErrInvalidProbability, "P(%d, %d, %d) = %v", s, a, s1, p)
				}
			}

			if sum := fmath.Sum(row); !fmath.Equal(sum, 1.0) {
				return errors.Wrapf(ErrInvalidRowSum, "state %d, action %d sums to %v", s, a, sum)
			}
		}
	}

	transitions := make([]*SparseMatrix, m.numActions)
	for a := range transitions {
		transitions[a] = NewSparseMatrix(m.numStates, m.numStates)
	}

	for s := range t {
		for a, row := range t[s] {
			for s1, p := range row {
				transitions[a].Set(s, s1, p)
			}
		}
	}

	m.transitions = transitions
	return nil
}

// SetTransitionMatrixUnchecked replaces the transition function with the
// given per-action matrices, performing no validation. The caller's contract:
// t holds NumActions() matrices of NumStates() x NumStates() valid
// probability rows. The model takes ownership of t.
func (m *SparseModel) SetTransitionMatrixUnchecked(t []*SparseMatrix) {
	m.transitions = t
}

// SetRewardFunction replaces the reward function with the dense per-triple
// function r, indexed [s][a][s1]. The values are aggregated into expected
// rewards weighted by the currently stored transition probabilities, so when
// a transition replacement and a reward replacement belong together, replace
// the transitions first. Only non-negligible expected rewards are stored.
//
// It fails with ErrDimensionMismatch if the shape of r does not match the
// model; the previously stored rewards are then retained unchanged.
func (m *SparseModel) SetRewardFunction(r [][][]float64) error {
	if err := m.checkDenseShape(r); err != nil {
		return err
	}

	rewards := NewSparseMatrix(m.numStates, m.numActions)
	for s := 0; s < m.numStates; s++ {
		for a := 0; a < m.numActions; a++ {
			row := r[s][a]
			expected := 0.0
			m.transitions[a].Row(s).ForEach(func(s1 int, p float64) {
				expected += row[s1] * p
			})

			rewards.Set(s, a, expected)
		}
	}

	m.rewards = rewards
	return nil
}

// SetRewardMatrixUnchecked replaces the expected reward matrix directly,
// performing no validation. The caller's contract: r is
// NumStates() x NumActions() and already holds expected rewards. The model
// takes ownership of r.
func (m *SparseModel) SetRewardMatrixUnchecked(r *SparseMatrix) {
	m.rewards = r
}

// NumStates returns the number of states of the world.
func (m *SparseModel) NumStates() int {
	return m.numStates
}

// NumActions returns the number of actions available to the agent.
func (m *SparseModel) NumActions() int {
	return m.numActions
}

// Discount returns the currently set discount factor.
func (m *SparseModel) Discount() float64 {
	return m.discount
}

// GetTransitionProbability returns the stored probability of the (s, a, s1)
// transition. Triples without a stored entry have probability zero.
func (m *SparseModel) GetTransitionProbability(s, a, s1 int) float64 {
	return m.transitions[a].At(s, s1)
}

// GetExpectedReward returns the reward of the (s, a, s1) transition,
// reconstructed by dividing the stored expected reward for (s, a) by the
// probability of that particular transition. If the transition has zero
// probability the reward is zero.
func (m *SparseModel) GetExpectedReward(s, a, s1 int) float64 {
	p := m.transitions[a].At(s, s1)
	if p == 0 {
		return 0
	}

	return m.rewards.At(s, a) / p
}

// TransitionMatrix returns the transition matrix for the given action for
// inspection. The returned matrix must not be modified.
func (m *SparseModel) TransitionMatrix(a int) *SparseMatrix {
	return m.transitions[a]
}

// TransitionMatrices returns all per-action transition matrices for
// inspection. The returned matrices must not be modified.
func (m *SparseModel) TransitionMatrices() []*SparseMatrix {
	return m.transitions
}

// RewardMatrix returns the expected reward matrix for inspection. The
// returned matrix must not be modified.
func (m *SparseModel) RewardMatrix() *SparseMatrix {
	return m.rewards
}

// IsTerminal returns whether the given state is terminal, that is, whether
// every action transitions back to the state itself with certainty.
func (m *SparseModel) IsTerminal(s int) bool {
	for a := 0; a < m.numActions; a++ {
		if !fmath.Equal(m.transitions[a].At(s, s), 1.0) {
			return false
		}
	}

	return true
}

// SampleSR samples the model for simulated experience: a successor state
// drawn with probability equal to the stored transition probabilities for
// (s, a), and the reward of the sampled transition. The reward is
// reconstructed by dividing the stored expected reward for (s, a) by the
// exact probability mass used to select the successor, which is never zero
// since only stored entries can be selected.
//
// The only side effect is advancing the model's private random generator.
func (m *SparseModel) SampleSR(s, a int) (int, float64) {
	row := m.transitions[a].Row(s)
	s1, p := sampling.Weighted(m.rng, row.indices, row.values)
	return s1, m.rewards.At(s, a) / p
}

// Seed reseeds the model's private random generator. Two models holding
// identical data and seeded identically produce identical sample sequences
// for identical query sequences.
func (m *SparseModel) Seed(seed int64) {
	m.rng.Seed(seed)
}

func (m *SparseModel) checkDenseShape(d [][][]float64) error {
	if len(d) != m.numStates {
		return errors.Wrapf(ErrDimensionMismatch, "got %d states, model has %d", len(d), m.numStates)
	}

	for s, byAction := range d {
		if len(byAction) != m.numActions {
			return errors.Wrapf(ErrDimensionMismatch, "state %d: got %d actions, model has %d", s, len(byAction), m.numActions)
		}

		for a, row := range byAction {
			if len(row) != m.numStates {
				return errors.Wrapf(ErrDimensionMismatch, "state %d, action %d: got %d successors, model has %d", s, a, len(row), m.numStates)
			}
		}
	}

	return nil
}

func validateDiscount(d float64) error {
	if d < 0 || d > 1 {
		return errors.Wrapf(ErrInvalidDiscount, "discount = %v", d)
	}

	return nil
}
