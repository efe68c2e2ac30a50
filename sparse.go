package mdp

import (
	"bytes"
	"encoding/gob"
	"sort"

	"github.com/timpalpant/go-mdp/internal/fmath"
)

// SparseVector is an ordered sparse mapping from index to value. Absent
// indices are implicitly zero: an entry that is not stored means "this value
// is zero", not "this value is unknown". Values within tolerance of zero are
// never stored, keeping the representation minimal.
type SparseVector struct {
	indices []int
	values  []float64
}

// At returns the value stored at index i, or 0 if no entry is stored.
func (v *SparseVector) At(i int) float64 {
	k := sort.SearchInts(v.indices, i)
	if k < len(v.indices) && v.indices[k] == i {
		return v.values[k]
	}

	return 0
}

// Set stores x at index i, keeping entries sorted by index. Storing a value
// within tolerance of zero removes the entry instead.
func (v *SparseVector) Set(i int, x float64) {
	k := sort.SearchInts(v.indices, i)
	present := k < len(v.indices) && v.indices[k] == i

	if fmath.IsZero(x) {
		if present {
			v.indices = append(v.indices[:k], v.indices[k+1:]...)
			v.values = append(v.values[:k], v.values[k+1:]...)
		}
		return
	}

	if present {
		v.values[k] = x
		return
	}

	v.indices = append(v.indices, 0)
	copy(v.indices[k+1:], v.indices[k:])
	v.indices[k] = i
	v.values = append(v.values, 0)
	copy(v.values[k+1:], v.values[k:])
	v.values[k] = x
}

// NNZ returns the number of stored entries.
func (v *SparseVector) NNZ() int {
	return len(v.indices)
}

// Sum returns the sum of all stored values.
func (v *SparseVector) Sum() float64 {
	return fmath.Sum(v.values)
}

// ForEach calls f for every stored entry, in index order.
func (v *SparseVector) ForEach(f func(i int, x float64)) {
	for k, i := range v.indices {
		f(i, v.values[k])
	}
}

// SparseMatrix is a rows x cols matrix stored as one sparse vector per row.
// Only values distinguishable from zero are stored.
type SparseMatrix struct {
	rows, cols int
	data       []SparseVector
}

// NewSparseMatrix creates an all-zero rows x cols sparse matrix.
func NewSparseMatrix(rows, cols int) *SparseMatrix {
	return &SparseMatrix{
		rows: rows,
		cols: cols,
		data: make([]SparseVector, rows),
	}
}

// Rows returns the number of rows.
func (m *SparseMatrix) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *SparseMatrix) Cols() int {
	return m.cols
}

// At returns the value stored at (i, j), or 0 if no entry is stored.
func (m *SparseMatrix) At(i, j int) float64 {
	return m.data[i].At(j)
}

// Set stores x at (i, j). Storing a value within tolerance of zero removes
// the entry instead.
func (m *SparseMatrix) Set(i, j int, x float64) {
	m.data[i].Set(j, x)
}

// Row returns the i-th row. The returned vector is live: modifying it
// modifies the matrix.
func (m *SparseMatrix) Row(i int) *SparseVector {
	return &m.data[i]
}

// NNZ returns the number of stored entries.
func (m *SparseMatrix) NNZ() int {
	n := 0
	for i := range m.data {
		n += m.data[i].NNZ()
	}

	return n
}

// ForEach calls f for every stored entry, in row-major order.
func (m *SparseMatrix) ForEach(f func(i, j int, x float64)) {
	for i := range m.data {
		row := &m.data[i]
		for k, j := range row.indices {
			f(i, j, row.values[k])
		}
	}
}

// GobEncode implements gob.GobEncoder.
func (m *SparseMatrix) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(m.rows); err != nil {
		return nil, err
	}

	if err := enc.Encode(m.cols); err != nil {
		return nil, err
	}

	for i := range m.data {
		if err := enc.Encode(m.data[i].indices); err != nil {
			return nil, err
		}

		if err := enc.Encode(m.data[i].values); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (m *SparseMatrix) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	if err := dec.Decode(&m.rows); err != nil {
		return err
	}

	if err := dec.Decode(&m.cols); err != nil {
		return err
	}

	m.data = make([]SparseVector, m.rows)
	for i := range m.data {
		if err := dec.Decode(&m.data[i].indices); err != nil {
			return err
		}

		if err := dec.Decode(&m.data[i].values); err != nil {
			return err
		}
	}

	return nil
}
