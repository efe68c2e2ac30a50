package mdp

import (
	"testing"
)

func TestSparseVectorSetAt(t *testing.T) {
	var v SparseVector
	if got := v.At(3); got != 0 {
		t.Errorf("expected 0 for unset index, got %v", got)
	}

	v.Set(3, 0.25)
	v.Set(0, 0.75)
	if got := v.At(3); got != 0.25 {
		t.Errorf("expected 0.25, got %v", got)
	}
	if got := v.At(0); got != 0.75 {
		t.Errorf("expected 0.75, got %v", got)
	}
	if got := v.At(1); got != 0 {
		t.Errorf("expected 0 for unset index, got %v", got)
	}
	if v.NNZ() != 2 {
		t.Errorf("expected 2 stored entries, got %d", v.NNZ())
	}
}

func TestSparseVectorOverwrite(t *testing.T) {
	var v SparseVector
	v.Set(1, 0.5)
	v.Set(1, 0.9)
	if got := v.At(1); got != 0.9 {
		t.Errorf("expected 0.9, got %v", got)
	}
	if v.NNZ() != 1 {
		t.Errorf("expected 1 stored entry, got %d", v.NNZ())
	}
}

func TestSparseVectorDropsNegligible(t *testing.T) {
	var v SparseVector

	// Values indistinguishable from zero are never stored.
	v.Set(0, 1e-12)
	if v.NNZ() != 0 {
		t.Errorf("expected no stored entries, got %d", v.NNZ())
	}

	// Overwriting a stored entry with a negligible value removes it.
	v.Set(0, 0.5)
	v.Set(0, 1e-12)
	if v.NNZ() != 0 {
		t.Errorf("expected entry to be removed, got %d stored", v.NNZ())
	}
	if got := v.At(0); got != 0 {
		t.Errorf("expected 0 after removal, got %v", got)
	}
}

func TestSparseVectorIterationOrder(t *testing.T) {
	var v SparseVector
	v.Set(4, 0.4)
	v.Set(0, 0.1)
	v.Set(2, 0.5)

	var gotIdx []int
	var gotVal []float64
	v.ForEach(func(i int, x float64) {
		gotIdx = append(gotIdx, i)
		gotVal = append(gotVal, x)
	})

	wantIdx := []int{0, 2, 4}
	wantVal := []float64{0.1, 0.5, 0.4}
	for k := range wantIdx {
		if gotIdx[k] != wantIdx[k] || gotVal[k] != wantVal[k] {
			t.Errorf("entry %d: expected (%d, %v), got (%d, %v)",
				k, wantIdx[k], wantVal[k], gotIdx[k], gotVal[k])
		}
	}

	if got := v.Sum(); got != 1.0 {
		t.Errorf("expected sum 1.0, got %v", got)
	}
}

func TestSparseMatrixSetAt(t *testing.T) {
	m := NewSparseMatrix(3, 4)
	if m.Rows() != 3 || m.Cols() != 4 {
		t.Errorf("expected 3 x 4, got %d x %d", m.Rows(), m.Cols())
	}

	m.Set(1, 2, 0.5)
	m.Set(2, 0, 0.25)
	if got := m.At(1, 2); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}
	if got := m.At(0, 0); got != 0 {
		t.Errorf("expected 0 for unset entry, got %v", got)
	}
	if m.NNZ() != 2 {
		t.Errorf("expected 2 stored entries, got %d", m.NNZ())
	}
}

func TestSparseMatrixRowIsLive(t *testing.T) {
	m := NewSparseMatrix(2, 2)
	m.Row(0).Set(1, 0.5)
	if got := m.At(0, 1); got != 0.5 {
		t.Errorf("expected write through row view, got %v", got)
	}
}

func TestSparseMatrixForEach(t *testing.T) {
	m := NewSparseMatrix(2, 3)
	m.Set(0, 2, 1.0)
	m.Set(1, 0, 2.0)
	m.Set(1, 1, 3.0)

	var sum float64
	n := 0
	m.ForEach(func(i, j int, x float64) {
		sum += x
		n++
	})

	if n != 3 {
		t.Errorf("expected 3 entries visited, got %d", n)
	}
	if sum != 6.0 {
		t.Errorf("expected total 6.0, got %v", sum)
	}
}

func TestSparseMatrixGob(t *testing.T) {
	m := NewSparseMatrix(3, 3)
	m.Set(0, 1, 0.5)
	m.Set(2, 2, 1.0)

	data, err := m.GobEncode()
	if err != nil {
		t.Fatal(err)
	}

	var loaded SparseMatrix
	if err := loaded.GobDecode(data); err != nil {
		t.Fatal(err)
	}

	if loaded.Rows() != 3 || loaded.Cols() != 3 {
		t.Errorf("expected 3 x 3, got %d x %d", loaded.Rows(), loaded.Cols())
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if loaded.At(i, j) != m.At(i, j) {
				t.Errorf("entry (%d, %d): expected %v, got %v",
					i, j, m.At(i, j), loaded.At(i, j))
			}
		}
	}
}
