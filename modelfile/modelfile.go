// Package modelfile loads Markov Decision Process definitions from YAML.
//
// A definition lists the model dimensions, an optional discount factor, and
// the non-zero transitions and rewards:
//
//	states: 3
//	actions: 2
//	discount: 0.95
//	transitions:
//	  - {from: 0, action: 0, to: 1, probability: 0.75}
//	  - {from: 0, action: 0, to: 2, probability: 0.25}
//	rewards:
//	  - {from: 0, action: 0, to: 1, value: 10.0}
//
// Rows with no listed transitions keep the default self-loop with
// probability 1, so absorbing states need not be spelled out. The discount
// defaults to 1 when omitted. Loaded definitions are validated the same way
// as any other model conversion: probabilities must lie in [0, 1] and every
// listed row must sum to 1.
package modelfile

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/timpalpant/go-mdp"
)

// ErrBadReference is returned when an entry references a state or action
// outside the declared dimensions.
var ErrBadReference = errors.New("modelfile: reference out of range")

// ErrDuplicateEntry is returned when two entries describe the same
// transition or reward.
var ErrDuplicateEntry = errors.New("modelfile: duplicate entry")

// Definition is the YAML description of a model.
type Definition struct {
	States      int          `yaml:"states"`
	Actions     int          `yaml:"actions"`
	Discount    *float64     `yaml:"discount"`
	Transitions []Transition `yaml:"transitions"`
	Rewards     []Reward     `yaml:"rewards"`
}

type Transition struct {
	From        int     `yaml:"from"`
	Action      int     `yaml:"action"`
	To          int     `yaml:"to"`
	Probability float64 `yaml:"probability"`
}

type Reward struct {
	From   int     `yaml:"from"`
	Action int     `yaml:"action"`
	To     int     `yaml:"to"`
	Value  float64 `yaml:"value"`
}

// LoadFile loads a model definition from the YAML file at the given path.
func LoadFile(path string) (*mdp.SparseModel, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Load loads a model definition from the given Reader.
func Load(r io.Reader) (*mdp.SparseModel, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse parses a YAML model definition and builds the model it describes.
func Parse(data []byte) (*mdp.SparseModel, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}

	return def.Model()
}

// Model builds the sparse model the definition describes.
func (def *Definition) Model() (*mdp.SparseModel, error) {
	src := definitionModel{
		states:   def.States,
		actions:  def.Actions,
		discount: 1.0,
		t:        make(map[triple]float64, len(def.Transitions)),
		r:        make(map[triple]float64, len(def.Rewards)),
		explicit: make(map[pair]bool),
	}
	if def.Discount != nil {
		src.discount = *def.Discount
	}

	for _, tr := range def.Transitions {
		if !def.inRange(tr.From, tr.Action, tr.To) {
			return nil, errors.Wrapf(ErrBadReference, "transition (%d, %d, %d)", tr.From, tr.Action, tr.To)
		}

		key := triple{tr.From, tr.Action, tr.To}
		if _, ok := src.t[key]; ok {
			return nil, errors.Wrapf(ErrDuplicateEntry, "transition (%d, %d, %d)", tr.From, tr.Action, tr.To)
		}

		src.t[key] = tr.Probability
		src.explicit[pair{tr.From, tr.Action}] = true
	}

	for _, rw := range def.Rewards {
		if !def.inRange(rw.From, rw.Action, rw.To) {
			return nil, errors.Wrapf(ErrBadReference, "reward (%d, %d, %d)", rw.From, rw.Action, rw.To)
		}

		key := triple{rw.From, rw.Action, rw.To}
		if _, ok := src.r[key]; ok {
			return nil, errors.Wrapf(ErrDuplicateEntry, "reward (%d, %d, %d)", rw.From, rw.Action, rw.To)
		}

		src.r[key] = rw.Value
	}

	return mdp.NewSparseModelFromModel(src)
}

func (def *Definition) inRange(s, a, s1 int) bool {
	return s >= 0 && s < def.States &&
		s1 >= 0 && s1 < def.States &&
		a >= 0 && a < def.Actions
}

type triple struct{ s, a, s1 int }

type pair struct{ s, a int }

// definitionModel exposes a Definition as an mdp.Model so the standard
// conversion performs all remaining validation.
type definitionModel struct {
	states   int
	actions  int
	discount float64
	t        map[triple]float64
	r        map[triple]float64
	explicit map[pair]bool
}

func (d definitionModel) NumStates() int    { return d.states }
func (d definitionModel) NumActions() int   { return d.actions }
func (d definitionModel) Discount() float64 { return d.discount }

func (d definitionModel) GetTransitionProbability(s, a, s1 int) float64 {
	if !d.explicit[pair{s, a}] {
		if s1 == s {
			return 1.0
		}

		return 0
	}

	return d.t[triple{s, a, s1}]
}

func (d definitionModel) GetExpectedReward(s, a, s1 int) float64 {
	return d.r[triple{s, a, s1}]
}
