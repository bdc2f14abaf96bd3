// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package coord implements the raw coordinate storage shared by every
// geometry array: a flat, fixed-stride buffer of float64 values in one
// of two physical layouts.
//
// An Interleaved buffer stores coordinates consecutively in one slice
// (x0,y0,[z0,[m0]],x1,y1,...). A Separated buffer stores one
// independent equal-length slice per axis. Both layouts slice in O(1)
// without copying coordinates, and both reinterpret to their Arrow
// representation (fixed-size list or struct of floats) without
// copying.
package coord

import (
	"math"

	"github.com/gogama/geoarrow"
)

// Buffer is immutable coordinate storage for a column of coordinates.
// The zero value is an empty Interleaved XY buffer. Buffers are cheap
// to copy: copies share the underlying storage.
type Buffer struct {
	dim       geoarrow.Dimension
	coordType geoarrow.CoordType
	// interleaved holds the flat values when coordType is Interleaved.
	// Invariant: len(interleaved) is divisible by dim.Size().
	interleaved []float64
	// separated holds one slice per axis when coordType is Separated.
	// Invariant: len(separated) == dim.Size() and all slices have
	// equal length.
	separated [][]float64
}

// NewInterleaved creates an Interleaved buffer over a flat value
// slice. The buffer takes no copy; the caller must not mutate data
// afterward. Returns a layout error if len(data) is not divisible by
// the coordinate stride of dim.
func NewInterleaved(data []float64, dim geoarrow.Dimension) (Buffer, error) {
	if len(data)%dim.Size() != 0 {
		return Buffer{}, layoutErr("interleaved %s buffer length %d not divisible by stride %d",
			dim, len(data), dim.Size())
	}
	return Buffer{dim: dim, coordType: geoarrow.Interleaved, interleaved: data}, nil
}

// NewSeparated creates a Separated buffer over per-axis value slices.
// The buffer takes no copy; the caller must not mutate the slices
// afterward. Returns a layout error if the axis count does not match
// the stride of dim or the slices have unequal lengths.
func NewSeparated(axes [][]float64, dim geoarrow.Dimension) (Buffer, error) {
	if len(axes) != dim.Size() {
		return Buffer{}, layoutErr("separated %s buffer has %d axes, need %d",
			dim, len(axes), dim.Size())
	}
	for i := 1; i < len(axes); i++ {
		if len(axes[i]) != len(axes[0]) {
			return Buffer{}, layoutErr("separated %s buffer axis %d length %d != axis 0 length %d",
				dim, i, len(axes[i]), len(axes[0]))
		}
	}
	return Buffer{dim: dim, coordType: geoarrow.Separated, separated: axes}, nil
}

// Dim returns the coordinate dimension.
func (b Buffer) Dim() geoarrow.Dimension { return b.dim }

// CoordType returns the physical layout.
func (b Buffer) CoordType() geoarrow.CoordType { return b.coordType }

// Len returns the number of coordinates in the buffer.
func (b Buffer) Len() int {
	if b.coordType == geoarrow.Separated {
		if len(b.separated) == 0 {
			return 0
		}
		return len(b.separated[0])
	}
	return len(b.interleaved) / b.dim.Size()
}

// Value returns a lightweight view of the i-th coordinate. Panics if
// i is out of range.
func (b Buffer) Value(i int) View {
	if i < 0 || i >= b.Len() {
		fmtPanic("coordinate index %d out of range [0, %d)", i, b.Len())
	}
	v := View{dim: b.dim}
	stride := b.dim.Size()
	if b.coordType == geoarrow.Interleaved {
		copy(v.values[:stride], b.interleaved[i*stride:(i+1)*stride])
	} else {
		for axis := 0; axis < stride; axis++ {
			v.values[axis] = b.separated[axis][i]
		}
	}
	return v
}

// Slice returns a view of the window [offset, offset+length). It is
// O(1) and copies no coordinates: the result shares storage with b.
// Panics if the window is out of bounds.
func (b Buffer) Slice(offset, length int) Buffer {
	if offset < 0 || length < 0 || offset+length > b.Len() {
		fmtPanic("slice [%d, %d+%d) out of range [0, %d)", offset, offset, length, b.Len())
	}
	if b.coordType == geoarrow.Interleaved {
		stride := b.dim.Size()
		b.interleaved = b.interleaved[offset*stride : (offset+length)*stride]
		return b
	}
	axes := make([][]float64, len(b.separated))
	for i := range axes {
		axes[i] = b.separated[i][offset : offset+length]
	}
	b.separated = axes
	return b
}

// OwnedSlice returns a copy of the window [offset, offset+length)
// detached from b's storage. Panics if the window is out of bounds.
func (b Buffer) OwnedSlice(offset, length int) Buffer {
	s := b.Slice(offset, length)
	if s.coordType == geoarrow.Interleaved {
		owned := make([]float64, len(s.interleaved))
		copy(owned, s.interleaved)
		s.interleaved = owned
		return s
	}
	axes := make([][]float64, len(s.separated))
	for i := range axes {
		axes[i] = make([]float64, len(s.separated[i]))
		copy(axes[i], s.separated[i])
	}
	s.separated = axes
	return s
}

// ToCoordType converts the buffer to the given physical layout. If the
// layout already matches, the buffer is returned as is. Otherwise this
// is the one non-O(1) coordinate operation: every coordinate is
// copied.
func (b Buffer) ToCoordType(ct geoarrow.CoordType) Buffer {
	if ct == b.coordType {
		return b
	}
	n, stride := b.Len(), b.dim.Size()
	if ct == geoarrow.Interleaved {
		data := make([]float64, n*stride)
		for i := 0; i < n; i++ {
			for axis := 0; axis < stride; axis++ {
				data[i*stride+axis] = b.separated[axis][i]
			}
		}
		return Buffer{dim: b.dim, coordType: ct, interleaved: data}
	}
	axes := make([][]float64, stride)
	for axis := range axes {
		axes[axis] = make([]float64, n)
		for i := 0; i < n; i++ {
			axes[axis][i] = b.interleaved[i*stride+axis]
		}
	}
	return Buffer{dim: b.dim, coordType: ct, separated: axes}
}

// InterleavedValues returns the flat underlying slice of an
// Interleaved buffer. Panics if the buffer is Separated.
func (b Buffer) InterleavedValues() []float64 {
	if b.coordType != geoarrow.Interleaved {
		textPanic("not an interleaved buffer")
	}
	return b.interleaved
}

// SeparatedValues returns the underlying slice for one axis of a
// Separated buffer. Panics if the buffer is Interleaved or axis is out
// of range.
func (b Buffer) SeparatedValues(axis int) []float64 {
	if b.coordType != geoarrow.Separated {
		textPanic("not a separated buffer")
	}
	if axis < 0 || axis >= len(b.separated) {
		fmtPanic("axis %d out of range [0, %d)", axis, len(b.separated))
	}
	return b.separated[axis]
}

// View is a lightweight read-only view of a single coordinate. It
// implements the geoarrow.Coord interface.
type View struct {
	dim    geoarrow.Dimension
	values [4]float64
}

// NewView creates a View from explicit axis values in storage order
// (x, y, then z and/or m as the dimension requires). Missing trailing
// values are filled with NaN; extra values are ignored.
func NewView(dim geoarrow.Dimension, values ...float64) View {
	v := View{dim: dim}
	for i := 0; i < dim.Size(); i++ {
		if i < len(values) {
			v.values[i] = values[i]
		} else {
			v.values[i] = math.NaN()
		}
	}
	return v
}

// Dim returns the coordinate dimension of the view.
func (v View) Dim() geoarrow.Dimension { return v.dim }

// X returns the coordinate's X value.
func (v View) X() float64 { return v.values[0] }

// Y returns the coordinate's Y value.
func (v View) Y() float64 { return v.values[1] }

// Z returns the coordinate's Z value, or false if the dimension has
// no Z axis.
func (v View) Z() (float64, bool) {
	if v.dim.HasZ() {
		return v.values[2], true
	}
	return 0, false
}

// M returns the coordinate's M value, or false if the dimension has
// no M axis.
func (v View) M() (float64, bool) {
	switch v.dim {
	case geoarrow.XYM:
		return v.values[2], true
	case geoarrow.XYZM:
		return v.values[3], true
	}
	return 0, false
}
