package rdbmodel

import (
	"fmt"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	rocksdb "github.com/tecbot/gorocksdb"

	"github.com/timpalpant/go-mdp"
	"github.com/timpalpant/go-mdp/internal/fmath"
	"github.com/timpalpant/go-mdp/internal/modelenc"
	"github.com/timpalpant/go-mdp/internal/sampling"
)

// ErrNoModel is returned when opening a database that does not contain model
// metadata, for example one whose population was interrupted.
var ErrNoModel = errors.New("rdbmodel: database contains no model")

const (
	metaKey          = "m"
	transitionPrefix = "t:"
	rewardPrefix     = "r:"
)

// Model is a Markov Decision Process whose matrices live in a RocksDB
// database. It implements mdp.GenerativeModel.
//
// A Model is not safe for concurrent use: queries share a row decode buffer
// and sampling advances the private random generator.
type Model struct {
	params Params
	db     *rocksdb.DB

	numStates  int
	numActions int
	discount   float64

	row modelenc.RowBuffer
	rng *rand.Rand
}

// New opens a model database previously populated with FromModel.
func New(params Params) (*Model, error) {
	db, err := rocksdb.OpenDb(params.Options, params.Path)
	if err != nil {
		return nil, err
	}

	result, err := db.Get(params.ReadOptions, []byte(metaKey))
	if err != nil {
		db.Close()
		return nil, err
	}
	defer result.Free()

	if len(result.Data()) == 0 {
		db.Close()
		return nil, errors.Wrap(ErrNoModel, params.Path)
	}

	numStates, numActions, discount := modelenc.DecodeMeta(result.Data())
	return &Model{
		params:     params,
		db:         db,
		numStates:  numStates,
		numActions: numActions,
		discount:   discount,
		rng:        rand.New(rand.NewSource(rand.Int63())),
	}, nil
}

// FromModel populates a new database with a copy of src and returns a handle
// to it. The copy is validated the same way as an in-memory conversion, but
// only one row is held in memory at a time. Metadata is written last: a
// population that fails partway leaves a database that New refuses to open.
func FromModel(params Params, src mdp.Model) (*Model, error) {
	S, A := src.NumStates(), src.NumActions()
	if S < 1 || A < 1 {
		return nil, errors.Wrapf(mdp.ErrInvalidDimensions, "S = %d, A = %d", S, A)
	}

	discount := src.Discount()
	if discount < 0 || discount > 1 {
		return nil, errors.Wrapf(mdp.ErrInvalidDiscount, "discount = %v", discount)
	}

	db, err := rocksdb.OpenDb(params.Options, params.Path)
	if err != nil {
		return nil, err
	}

	m := &Model{
		params:     params,
		db:         db,
		numStates:  S,
		numActions: A,
		discount:   discount,
		rng:        rand.New(rand.NewSource(rand.Int63())),
	}

	nRows, nRewards := 0, 0
	for s := 0; s < S; s++ {
		for a := 0; a < A; a++ {
			indices := make([]int, 0)
			values := make([]float64, 0)
			expected := 0.0
			sum := 0.0
			for s1 := 0; s1 < S; s1++ {
				p := src.GetTransitionProbability(s, a, s1)
				if p < 0 || p > 1 {
					db.Close()
					return nil, errors.Wrapf(mdp.ErrInvalidProbability, "P(%d, %d, %d) = %v", s, a, s1, p)
				}

				sum += p
				if fmath.IsZero(p) {
					continue
				}

				indices = append(indices, s1)
				values = append(values, p)
				if r := src.GetExpectedReward(s, a, s1); !fmath.IsZero(r) {
					expected += r * p
				}
			}

			if !fmath.Equal(sum, 1.0) {
				db.Close()
				return nil, errors.Wrapf(mdp.ErrInvalidRowSum, "state %d, action %d sums to %v", s, a, sum)
			}

			if err := db.Put(params.WriteOptions, []byte(transitionKey(a, s)), modelenc.EncodeRow(indices, values)); err != nil {
				db.Close()
				return nil, err
			}

			nRows++
			if !fmath.IsZero(expected) {
				if err := db.Put(params.WriteOptions, []byte(rewardKey(s, a)), modelenc.EncodeValue(expected)); err != nil {
					db.Close()
					return nil, err
				}

				nRewards++
			}
		}
	}

	if err := db.Put(params.WriteOptions, []byte(metaKey), modelenc.EncodeMeta(S, A, discount)); err != nil {
		db.Close()
		return nil, err
	}

	glog.V(1).Infof("Copied %d transition rows and %d rewards to %s", nRows, nRewards, params.Path)
	return m, nil
}

// Close implements io.Closer. The database is left on disk and can be
// reopened with New.
func (m *Model) Close() error {
	m.db.Close()
	return nil
}

// NumStates implements mdp.Model.
func (m *Model) NumStates() int {
	return m.numStates
}

// NumActions implements mdp.Model.
func (m *Model) NumActions() int {
	return m.numActions
}

// Discount implements mdp.Model.
func (m *Model) Discount() float64 {
	return m.discount
}

// GetTransitionProbability implements mdp.Model.
func (m *Model) GetTransitionProbability(s, a, s1 int) float64 {
	indices, values := m.getRow(a, s)
	for k, i := range indices {
		if i == s1 {
			return values[k]
		}
	}

	return 0
}

// GetExpectedReward implements mdp.Model. As with the in-memory model, the
// stored expected reward for (s, a) is divided by the probability of the
// particular transition.
func (m *Model) GetExpectedReward(s, a, s1 int) float64 {
	p := m.GetTransitionProbability(s, a, s1)
	if p == 0 {
		return 0
	}

	return m.expectedReward(s, a) / p
}

// IsTerminal implements mdp.GenerativeModel.
func (m *Model) IsTerminal(s int) bool {
	for a := 0; a < m.numActions; a++ {
		indices, values := m.getRow(a, s)
		selfLoop := false
		for k, i := range indices {
			if i == s && fmath.Equal(values[k], 1.0) {
				selfLoop = true
				break
			}
		}

		if !selfLoop {
			return false
		}
	}

	return true
}

// SampleSR implements mdp.GenerativeModel.
func (m *Model) SampleSR(s, a int) (int, float64) {
	indices, values := m.getRow(a, s)
	s1, p := sampling.Weighted(m.rng, indices, values)
	return s1, m.expectedReward(s, a) / p
}

// Seed reseeds the model's private random generator.
func (m *Model) Seed(seed int64) {
	m.rng.Seed(seed)
}

// getRow decodes the transition row for (a, s) into the model's shared
// buffer. The row is valid until the next query.
func (m *Model) getRow(a, s int) ([]int, []float64) {
	result, err := m.db.Get(m.params.ReadOptions, []byte(transitionKey(a, s)))
	if err != nil {
		panic(err)
	}
	defer result.Free()

	if len(result.Data()) == 0 {
		return nil, nil
	}

	modelenc.DecodeRowInto(result.Data(), &m.row)
	return m.row.Indices, m.row.Values
}

func (m *Model) expectedReward(s, a int) float64 {
	result, err := m.db.Get(m.params.ReadOptions, []byte(rewardKey(s, a)))
	if err != nil {
		panic(err)
	}
	defer result.Free()

	if len(result.Data()) == 0 {
		return 0
	}

	return modelenc.DecodeValue(result.Data())
}

func transitionKey(a, s int) string {
	return fmt.Sprintf("%s%d:%d", transitionPrefix, a, s)
}

func rewardKey(s, a int) string {
	return fmt.Sprintf("%s%d:%d", rewardPrefix, s, a)
}
