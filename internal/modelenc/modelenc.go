// Package modelenc implements the binary encoding of sparse model data
// shared by the disk-backed stores.
//
// Rows are encoded as a uvarint entry count followed by (uvarint index,
// 8-byte little-endian float64) pairs. Scalars are bare 8-byte little-endian
// float64 values. Decoding panics on malformed input: the only writers are
// the stores themselves, so a malformed buffer means the database is corrupt.
package modelenc

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeRow encodes a sparse row of (index, value) entries.
func EncodeRow(indices []int, values []float64) []byte {
	buf := make([]byte, 0, binary.MaxVarintLen64*(len(indices)+1)+8*len(values))
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], uint64(len(indices)))
	buf = append(buf, tmp[:n]...)

	var fb [8]byte
	for k, i := range indices {
		n := binary.PutUvarint(tmp[:], uint64(i))
		buf = append(buf, tmp[:n]...)
		binary.LittleEndian.PutUint64(fb[:], math.Float64bits(values[k]))
		buf = append(buf, fb[:]...)
	}

	return buf
}

// DecodeRow decodes a row encoded with EncodeRow.
func DecodeRow(buf []byte) ([]int, []float64) {
	var row RowBuffer
	DecodeRowInto(buf, &row)
	return row.Indices, row.Values
}

// RowBuffer holds reusable storage for decoded rows, so a query loop does
// not allocate on every decode.
type RowBuffer struct {
	Indices []int
	Values  []float64
}

// DecodeRowInto decodes a row encoded with EncodeRow, recycling the buffer's
// storage. The decoded slices remain valid until the next decode into the
// same buffer.
func DecodeRowInto(buf []byte, row *RowBuffer) {
	count, n := binary.Uvarint(buf)
	if n <= 0 {
		panic(fmt.Errorf("modelenc: error decoding row length: %d", n))
	}

	buf = buf[n:]
	row.Indices = row.Indices[:0]
	row.Values = row.Values[:0]
	for k := 0; k < int(count); k++ {
		i, n := binary.Uvarint(buf)
		if n <= 0 {
			panic(fmt.Errorf("modelenc: error decoding row index %d: %d", k, n))
		}

		buf = buf[n:]
		if len(buf) < 8 {
			panic(fmt.Errorf("modelenc: truncated row value %d: %d bytes left", k, len(buf)))
		}

		row.Indices = append(row.Indices, int(i))
		row.Values = append(row.Values, math.Float64frombits(binary.LittleEndian.Uint64(buf[:8])))
		buf = buf[8:]
	}
}

// EncodeValue encodes a single float64.
func EncodeValue(x float64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
	return buf[:]
}

// DecodeValue decodes a value encoded with EncodeValue.
func DecodeValue(buf []byte) float64 {
	if len(buf) != 8 {
		panic(fmt.Errorf("modelenc: invalid encoded value has len %d", len(buf)))
	}

	return math.Float64frombits(binary.LittleEndian.Uint64(buf))
}

// EncodeMeta encodes the model dimensions and discount factor.
func EncodeMeta(numStates, numActions int, discount float64) []byte {
	var buf [2*binary.MaxVarintLen64 + 8]byte
	n := binary.PutUvarint(buf[:], uint64(numStates))
	n += binary.PutUvarint(buf[n:], uint64(numActions))
	binary.LittleEndian.PutUint64(buf[n:], math.Float64bits(discount))
	return buf[:n+8]
}

// DecodeMeta decodes metadata encoded with EncodeMeta.
func DecodeMeta(buf []byte) (numStates, numActions int, discount float64) {
	s, n := binary.Uvarint(buf)
	if n <= 0 {
		panic(fmt.Errorf("modelenc: error decoding state count: %d", n))
	}

	buf = buf[n:]
	a, n := binary.Uvarint(buf)
	if n <= 0 {
		panic(fmt.Errorf("modelenc: error decoding action count: %d", n))
	}

	buf = buf[n:]
	if len(buf) != 8 {
		panic(fmt.Errorf("modelenc: invalid encoded metadata has %d trailing bytes", len(buf)))
	}

	return int(s), int(a), math.Float64frombits(binary.LittleEndian.Uint64(buf))
}
