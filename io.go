package mdp

import (
	"encoding/gob"
	"io"
	"math/rand"
)

func LoadSparseModel(r io.Reader) (*SparseModel, error) {
	dec := gob.NewDecoder(r)

	var numStates int
	if err := dec.Decode(&numStates); err != nil {
		return nil, err
	}

	var numActions int
	if err := dec.Decode(&numActions); err != nil {
		return nil, err
	}

	var discount float64
	if err := dec.Decode(&discount); err != nil {
		return nil, err
	}

	transitions := make([]*SparseMatrix, numActions)
	for a := range transitions {
		var t SparseMatrix
		if err := dec.Decode(&t); err != nil {
			return nil, err
		}

		transitions[a] = &t
	}

	var rewards SparseMatrix
	if err := dec.Decode(&rewards); err != nil {
		return nil, err
	}

	return &SparseModel{
		numStates:   numStates,
		numActions:  numActions,
		discount:    discount,
		transitions: transitions,
		rewards:     &rewards,
		rng:         rand.New(rand.NewSource(rand.Int63())),
	}, nil
}

func (m *SparseModel) MarshalTo(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(m.numStates); err != nil {
		return err
	}

	if err := enc.Encode(m.numActions); err != nil {
		return err
	}

	if err := enc.Encode(m.discount); err != nil {
		return err
	}

	for _, t := range m.transitions {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}

	return enc.Encode(m.rewards)
}
