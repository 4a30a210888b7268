package webmblock

import (
	"fmt"
	"math/bits"
)

// Vints (EBML variable-length integers) encode an unsigned value in 1
// to 8 bytes. The width is signaled by the position of the first set
// bit of the first byte: 1xxx xxxx is one byte, 01xx xxxx two bytes,
// and so on. The marker bit is cleared and the remaining bits are the
// value, big-endian. Matroska uses vints for track numbers and for the
// size table of EBML-laced frames.

const maxVintWidth = 8

// ReadVint decodes a vint from the start of b. It returns the value and
// the number of bytes consumed.
func ReadVint(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("%w: empty input", ErrVintDecode)
	}
	if b[0] == 0 {
		return 0, 0, fmt.Errorf("%w: no marker bit in first byte", ErrVintDecode)
	}
	w := bits.LeadingZeros8(b[0]) + 1
	if w > len(b) {
		return 0, 0, fmt.Errorf("%w: %d-byte vint in %d bytes of input", ErrVintDecode, w, len(b))
	}
	var v uint64
	for i := 0; i < w; i++ {
		v = v<<8 | uint64(b[i])
	}
	v &^= 1 << (7 * w) // clear the marker bit
	return v, w, nil
}

// WriteVint encodes v as a vint of minimal width. Values of 2^56 or
// more do not fit an 8-byte vint and are rejected.
func WriteVint(v uint64) ([]byte, error) {
	w := vintWidth(v)
	if w > maxVintWidth {
		return nil, fmt.Errorf("%w: value %d exceeds vint range", ErrEncode, v)
	}
	return appendVint(nil, v, w), nil
}

// vintWidth returns the minimal number of bytes needed to encode v,
// which is 9 when v does not fit any vint.
func vintWidth(v uint64) int {
	w := 1
	for v >= 1<<(7*w) && w <= maxVintWidth {
		w++
	}
	return w
}

// appendVint appends v as a vint of exactly w bytes. The caller must
// ensure v fits in 7*w bits.
func appendVint(dst []byte, v uint64, w int) []byte {
	v |= 1 << (7 * w)
	for i := w - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}
