// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package coord

import (
	"math"

	"github.com/gogama/geoarrow"
)

// Builder is the growable counterpart of a Buffer. Push methods append
// one coordinate at a time; Finish converts the accumulated values to
// an immutable Buffer in O(1) without copying.
//
// A Builder pre-sized with NewBuilderWithCapacity never reallocates as
// long as no more than the reserved number of coordinates is pushed.
type Builder struct {
	dim         geoarrow.Dimension
	coordType   geoarrow.CoordType
	interleaved []float64
	separated   [][]float64
}

// NewBuilder creates an empty Builder for the given dimension and
// physical layout.
func NewBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *Builder {
	return NewBuilderWithCapacity(dim, ct, 0)
}

// NewBuilderWithCapacity creates a Builder pre-sized for the given
// number of coordinates.
func NewBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, coords int) *Builder {
	b := &Builder{dim: dim, coordType: ct}
	if ct == geoarrow.Interleaved {
		b.interleaved = make([]float64, 0, coords*dim.Size())
	} else {
		b.separated = make([][]float64, dim.Size())
		for i := range b.separated {
			b.separated[i] = make([]float64, 0, coords)
		}
	}
	return b
}

// Dim returns the coordinate dimension.
func (b *Builder) Dim() geoarrow.Dimension { return b.dim }

// CoordType returns the physical layout.
func (b *Builder) CoordType() geoarrow.CoordType { return b.coordType }

// Len returns the number of coordinates pushed so far.
func (b *Builder) Len() int {
	if b.coordType == geoarrow.Separated {
		return len(b.separated[0])
	}
	return len(b.interleaved) / b.dim.Size()
}

// Cap returns the number of coordinates the builder can hold before
// reallocating.
func (b *Builder) Cap() int {
	if b.coordType == geoarrow.Separated {
		return cap(b.separated[0])
	}
	return cap(b.interleaved) / b.dim.Size()
}

// Reserve ensures space for at least n additional coordinates.
func (b *Builder) Reserve(n int) {
	if b.coordType == geoarrow.Interleaved {
		need := len(b.interleaved) + n*b.dim.Size()
		if need > cap(b.interleaved) {
			grown := make([]float64, len(b.interleaved), need)
			copy(grown, b.interleaved)
			b.interleaved = grown
		}
		return
	}
	for i := range b.separated {
		if need := len(b.separated[i]) + n; need > cap(b.separated[i]) {
			grown := make([]float64, len(b.separated[i]), need)
			copy(grown, b.separated[i])
			b.separated[i] = grown
		}
	}
}

// Push appends one coordinate. Axes the source coordinate does not
// carry but the builder's dimension requires are filled with NaN.
func (b *Builder) Push(c geoarrow.Coord) {
	var values [4]float64
	values[0] = c.X()
	values[1] = c.Y()
	switch b.dim {
	case geoarrow.XYZ:
		values[2] = axisOrNaN(c.Z)
	case geoarrow.XYM:
		values[2] = axisOrNaN(c.M)
	case geoarrow.XYZM:
		values[2] = axisOrNaN(c.Z)
		values[3] = axisOrNaN(c.M)
	}
	b.PushValues(values[:b.dim.Size()]...)
}

// PushValues appends one coordinate from explicit axis values in
// storage order. Panics if the value count does not equal the stride
// of the builder's dimension.
func (b *Builder) PushValues(values ...float64) {
	if len(values) != b.dim.Size() {
		fmtPanic("pushed %d values, %s stride is %d", len(values), b.dim, b.dim.Size())
	}
	if b.coordType == geoarrow.Interleaved {
		b.interleaved = append(b.interleaved, values...)
		return
	}
	for i, v := range values {
		b.separated[i] = append(b.separated[i], v)
	}
}

// PushNaN appends one all-NaN coordinate: the fill for a null slot and
// the sentinel for an empty point.
func (b *Builder) PushNaN() {
	nan := math.NaN()
	switch b.dim.Size() {
	case 2:
		b.PushValues(nan, nan)
	case 3:
		b.PushValues(nan, nan, nan)
	default:
		b.PushValues(nan, nan, nan, nan)
	}
}

// Finish converts the accumulated coordinates to an immutable Buffer.
// It is O(1): the Buffer adopts the builder's storage without copying.
// The builder must not be used afterward.
func (b *Builder) Finish() Buffer {
	return Buffer{
		dim:         b.dim,
		coordType:   b.coordType,
		interleaved: b.interleaved,
		separated:   b.separated,
	}
}

func axisOrNaN(axis func() (float64, bool)) float64 {
	if v, ok := axis(); ok {
		return v
	}
	return math.NaN()
}
