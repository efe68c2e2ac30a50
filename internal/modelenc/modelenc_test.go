package modelenc

import (
	"testing"
)

func TestRowRoundTrip(t *testing.T) {
	indices := []int{0, 3, 1000000}
	values := []float64{0.25, -1.5, 1e-12}

	gotIdx, gotVal := DecodeRow(EncodeRow(indices, values))
	if len(gotIdx) != len(indices) {
		t.Fatalf("expected %d entries, got %d", len(indices), len(gotIdx))
	}

	for k := range indices {
		if gotIdx[k] != indices[k] || gotVal[k] != values[k] {
			t.Errorf("entry %d: expected (%d, %v), got (%d, %v)",
				k, indices[k], values[k], gotIdx[k], gotVal[k])
		}
	}
}

func TestEmptyRow(t *testing.T) {
	gotIdx, gotVal := DecodeRow(EncodeRow(nil, nil))
	if len(gotIdx) != 0 || len(gotVal) != 0 {
		t.Errorf("expected empty row, got %v, %v", gotIdx, gotVal)
	}
}

func TestDecodeRowIntoReusesStorage(t *testing.T) {
	var row RowBuffer
	DecodeRowInto(EncodeRow([]int{1, 2, 3}, []float64{0.2, 0.3, 0.5}), &row)
	if len(row.Indices) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(row.Indices))
	}

	prev := &row.Indices[0]
	DecodeRowInto(EncodeRow([]int{9}, []float64{1.0}), &row)
	if len(row.Indices) != 1 || row.Indices[0] != 9 || row.Values[0] != 1.0 {
		t.Errorf("expected (9, 1.0), got (%v, %v)", row.Indices, row.Values)
	}
	if &row.Indices[0] != prev {
		t.Error("expected the second decode to recycle the buffer's storage")
	}
}

func TestValueRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 1.0, -2.5, 1e-300} {
		if got := DecodeValue(EncodeValue(x)); got != x {
			t.Errorf("expected %v, got %v", x, got)
		}
	}
}

func TestMetaRoundTrip(t *testing.T) {
	s, a, d := DecodeMeta(EncodeMeta(100, 7, 0.95))
	if s != 100 || a != 7 || d != 0.95 {
		t.Errorf("expected (100, 7, 0.95), got (%d, %d, %v)", s, a, d)
	}
}

func TestDecodeRowPanicsOnCorruptData(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic decoding truncated row")
		}
	}()

	buf := EncodeRow([]int{1, 2}, []float64{0.5, 0.5})
	DecodeRow(buf[:len(buf)-4])
}
