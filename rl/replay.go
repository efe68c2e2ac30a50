package rl

import (
	"bytes"
	"encoding/gob"
	"math/rand"
	"sync"
)

// Transition is one observed step of experience.
type Transition struct {
	S  int
	A  int
	R  float64
	S1 int
}

// ReservoirBuffer is a bounded history of observed transitions. Once the
// buffer's max size is reached, additional transitions are added via
// reservoir sampling, maintaining a uniform subsample of everything
// observed.
//
// It is safe to call Add concurrently from multiple goroutines. GetAll
// copies the stored transitions; Get and Len read under the same lock.
type ReservoirBuffer struct {
	mx          sync.Mutex
	maxSize     int
	transitions []Transition
	n           int
	rng         *lockedRand
}

// NewReservoirBuffer returns an empty buffer with the given max size.
func NewReservoirBuffer(maxSize int) *ReservoirBuffer {
	return &ReservoirBuffer{
		maxSize:     maxSize,
		transitions: make([]Transition, 0, maxSize),
		rng:         newLockedRand(),
	}
}

// Add records one transition.
func (b *ReservoirBuffer) Add(t Transition) {
	b.mx.Lock()
	if b.n < b.maxSize {
		b.transitions = append(b.transitions, t)
		b.n++
		b.mx.Unlock()
		return
	}

	// Rand is slow and at steady-state most transitions are discarded, so
	// draw outside the lock and relock only to store.
	n := b.n
	b.n++
	b.mx.Unlock()

	if m := b.rng.Intn(n); m < b.maxSize {
		b.mx.Lock()
		b.transitions[m] = t
		b.mx.Unlock()
	}
}

// Get returns the stored transition at the given index.
func (b *ReservoirBuffer) Get(idx int) Transition {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.transitions[idx]
}

// Len returns the number of stored transitions.
func (b *ReservoirBuffer) Len() int {
	b.mx.Lock()
	defer b.mx.Unlock()
	return len(b.transitions)
}

// GetAll returns a copy of the stored transitions.
func (b *ReservoirBuffer) GetAll() []Transition {
	b.mx.Lock()
	defer b.mx.Unlock()
	result := make([]Transition, len(b.transitions))
	copy(result, b.transitions)
	return result
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (b *ReservoirBuffer) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(b.maxSize); err != nil {
		return nil, err
	}

	if err := enc.Encode(b.n); err != nil {
		return nil, err
	}

	if err := enc.Encode(b.transitions); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *ReservoirBuffer) UnmarshalBinary(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	if err := dec.Decode(&b.maxSize); err != nil {
		return err
	}

	if err := dec.Decode(&b.n); err != nil {
		return err
	}

	if err := dec.Decode(&b.transitions); err != nil {
		return err
	}

	b.rng = newLockedRand()
	return nil
}

type lockedRand struct {
	mx  sync.Mutex
	rng *rand.Rand
}

func newLockedRand() *lockedRand {
	return &lockedRand{rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (lr *lockedRand) Intn(n int) int {
	lr.mx.Lock()
	result := lr.rng.Intn(n)
	lr.mx.Unlock()
	return result
}
