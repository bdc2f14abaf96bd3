// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

// Offsets is a non-decreasing sequence of n+1 int32 indices
// partitioning a child buffer into n possibly-empty runs: run i spans
// the child index range [Start(i), End(i)). It is the sole mechanism
// for variable-length nesting in geometry arrays.
//
// Slicing an Offsets is O(1): the result is a window over the same
// index buffer, so its first value is the slice origin in the child
// rather than zero.
type Offsets struct {
	data []int32
}

// NewOffsets validates a raw offset buffer against the length of the
// child it partitions and wraps it. The buffer is untrusted input: a
// short, decreasing, or out-of-range buffer yields a layout error,
// never a panic.
func NewOffsets(data []int32, childLen int) (Offsets, error) {
	if len(data) == 0 {
		return Offsets{}, layoutErr("offset buffer is empty, need at least one offset")
	}
	if data[0] < 0 {
		return Offsets{}, layoutErr("first offset %d is negative", data[0])
	}
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return Offsets{}, layoutErr("offset %d at index %d decreases from %d", data[i], i, data[i-1])
		}
	}
	if last := data[len(data)-1]; int(last) > childLen {
		return Offsets{}, layoutErr("final offset %d exceeds child length %d", last, childLen)
	}
	return Offsets{data: data}, nil
}

// emptyOffsets returns a one-element zero Offsets describing zero
// runs.
func emptyOffsets() Offsets {
	return Offsets{data: []int32{0}}
}

// Len returns the number of runs.
func (o Offsets) Len() int {
	return len(o.data) - 1
}

// Start returns the child index of the first element of run i.
func (o Offsets) Start(i int) int {
	return int(o.data[i])
}

// End returns the child index one past the last element of run i.
func (o Offsets) End(i int) int {
	return int(o.data[i+1])
}

// RunLen returns the number of child elements in run i.
func (o Offsets) RunLen(i int) int {
	return int(o.data[i+1] - o.data[i])
}

// Slice returns the window describing runs [offset, offset+length).
// O(1); the result shares the index buffer. Panics if the window is
// out of bounds.
func (o Offsets) Slice(offset, length int) Offsets {
	if offset < 0 || length < 0 || offset+length > o.Len() {
		fmtPanic("offsets slice [%d, %d+%d) out of range [0, %d)", offset, offset, length, o.Len())
	}
	return Offsets{data: o.data[offset : offset+length+1]}
}

// Values returns the underlying int32 buffer. The caller must not
// mutate it.
func (o Offsets) Values() []int32 {
	return o.data
}

// offsetsBuilder accumulates an offset layer. The zero value is not
// ready for use; call init or newOffsetsBuilder first so the leading
// zero is present.
type offsetsBuilder struct {
	data []int32
}

func newOffsetsBuilder(capacity int) offsetsBuilder {
	b := offsetsBuilder{data: make([]int32, 0, capacity+1)}
	b.data = append(b.data, 0)
	return b
}

// closeRun records that the current nested unit ends at child index
// end. It must be called exactly once per run, after the run's child
// content has been fully pushed.
func (b *offsetsBuilder) closeRun(end int) {
	b.data = append(b.data, int32(end))
}

func (b *offsetsBuilder) length() int {
	return len(b.data) - 1
}

func (b *offsetsBuilder) last() int {
	return int(b.data[len(b.data)-1])
}

func (b *offsetsBuilder) reserve(n int) {
	if need := len(b.data) + n; need > cap(b.data) {
		grown := make([]int32, len(b.data), need)
		copy(grown, b.data)
		b.data = grown
	}
}

// finish converts the accumulated offsets to an immutable Offsets in
// O(1).
func (b *offsetsBuilder) finish() Offsets {
	return Offsets{data: b.data}
}
