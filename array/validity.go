// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/apache/arrow-go/v18/arrow/bitutil"
)

// validity is an optional nullability bitmap: bit i set means row i is
// valid. A nil *validity means the array has no nulls. The offset
// field makes row slicing O(1): a slice is a window over the same bit
// buffer.
type validity struct {
	bits   []byte
	offset int
	length int
	nulls  int
}

// newValidity wraps a caller-supplied bit buffer, or returns nil if
// bits is nil. Returns a layout error if the buffer is too short for
// length bits.
func newValidity(bits []byte, length int) (*validity, error) {
	if bits == nil {
		return nil, nil
	}
	if need := int(bitutil.BytesForBits(int64(length))); len(bits) < need {
		return nil, layoutErr("validity bitmap has %d bytes, need %d for %d rows",
			len(bits), need, length)
	}
	v := &validity{bits: bits, length: length}
	v.nulls = length - bitutil.CountSetBits(bits, 0, length)
	return v, nil
}

func (v *validity) isValid(i int) bool {
	if v == nil {
		return true
	}
	return bitutil.BitIsSet(v.bits, v.offset+i)
}

func (v *validity) nullCount() int {
	if v == nil {
		return 0
	}
	return v.nulls
}

// slice returns a window over the same bit buffer. O(1) except for the
// null recount, which touches only bitmap bytes, never coordinates.
func (v *validity) slice(offset, length int) *validity {
	if v == nil {
		return nil
	}
	s := &validity{bits: v.bits, offset: v.offset + offset, length: length}
	s.nulls = length - bitutil.CountSetBits(s.bits, s.offset, length)
	if s.nulls == 0 {
		return nil
	}
	return s
}

// exportBits returns the bitmap as bytes starting at bit 0, copying
// only when the window begins at a non-zero bit offset. Returns nil if
// the array has no nulls.
func (v *validity) exportBits() []byte {
	if v == nil {
		return nil
	}
	if v.offset == 0 {
		return v.bits
	}
	if v.offset%8 == 0 {
		return v.bits[v.offset/8:]
	}
	aligned := make([]byte, bitutil.BytesForBits(int64(v.length)))
	bitutil.CopyBitmap(v.bits, v.offset, v.length, aligned, 0)
	return aligned
}

// validityBuilder accumulates a nullability bitmap one row at a time.
type validityBuilder struct {
	bits   []byte
	length int
	nulls  int
}

func newValidityBuilder(capacity int) validityBuilder {
	return validityBuilder{bits: make([]byte, 0, bitutil.BytesForBits(int64(capacity)))}
}

func (b *validityBuilder) reserve(n int) {
	need := int(bitutil.BytesForBits(int64(b.length + n)))
	if need > cap(b.bits) {
		grown := make([]byte, len(b.bits), need)
		copy(grown, b.bits)
		b.bits = grown
	}
}

func (b *validityBuilder) append(valid bool) {
	if b.length>>3 == len(b.bits) {
		b.bits = append(b.bits, 0)
	}
	if valid {
		bitutil.SetBit(b.bits, b.length)
	} else {
		b.nulls++
	}
	b.length++
}

// finish converts the accumulated bits to an immutable validity
// bitmap, or nil if no null was ever appended.
func (b *validityBuilder) finish() *validity {
	if b.nulls == 0 {
		return nil
	}
	return &validity{bits: b.bits, length: b.length, nulls: b.nulls}
}
