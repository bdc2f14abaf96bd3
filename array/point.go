// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"math"

	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// PointArray is an immutable array of point geometries: one coordinate
// buffer, no offset layers, and an optional nullability bitmap.
//
// Null rows and empty points both occupy one coordinate slot filled
// with NaN, preserving the fixed stride. The validity bitmap is what
// distinguishes a null row from a present-but-empty POINT EMPTY row.
type PointArray struct {
	coords   coord.Buffer
	validity *validity
	meta     geoarrow.Metadata
}

// NewPointArray constructs a point array from untrusted parts. A nil
// validBits means the array has no nulls; otherwise validBits must
// hold at least one bit per coordinate. Returns a layout error on
// mismatch.
func NewPointArray(coords coord.Buffer, validBits []byte) (*PointArray, error) {
	v, err := newValidity(validBits, coords.Len())
	if err != nil {
		return nil, err
	}
	return &PointArray{coords: coords, validity: v}, nil
}

func (a *PointArray) geometryArray() {}

// Type returns the array's full physical type.
func (a *PointArray) Type() geoarrow.Type {
	return geoarrow.NewType(geoarrow.TypePoint, a.coords.Dim(), a.coords.CoordType())
}

// Metadata returns the array's CRS metadata.
func (a *PointArray) Metadata() geoarrow.Metadata { return a.meta }

// WithMetadata returns a copy of the array carrying the given CRS
// metadata. The copy shares all buffers.
func (a *PointArray) WithMetadata(m geoarrow.Metadata) *PointArray {
	c := *a
	c.meta = m
	return &c
}

func (a *PointArray) setMetadata(m geoarrow.Metadata) { a.meta = m }

// Len returns the number of rows, nulls included.
func (a *PointArray) Len() int { return a.coords.Len() }

// NullCount returns the number of null rows.
func (a *PointArray) NullCount() int { return a.validity.nullCount() }

// IsNull reports whether row i is null. Panics if i is out of range.
func (a *PointArray) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return !a.validity.isValid(i)
}

// Coords returns the array's coordinate buffer.
func (a *PointArray) Coords() coord.Buffer { return a.coords }

// Value returns a view of the point at row i. For a null row the view
// is an empty point. Panics if i is out of range.
func (a *PointArray) Value(i int) PointValue {
	checkIndex(i, a.Len())
	return PointValue{view: a.coords.Value(i)}
}

// Geometry returns a view of row i, or nil if the row is null.
func (a *PointArray) Geometry(i int) geoarrow.Geometry {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

// Slice returns the O(1) zero-copy window [offset, offset+length).
// Panics if the window is out of bounds.
func (a *PointArray) Slice(offset, length int) *PointArray {
	checkWindow(offset, length, a.Len())
	return &PointArray{
		coords:   a.coords.Slice(offset, length),
		validity: a.validity.slice(offset, length),
		meta:     a.meta,
	}
}

// ToCoordType converts the array to the given coordinate layout,
// copying every coordinate if the layout differs.
func (a *PointArray) ToCoordType(ct geoarrow.CoordType) *PointArray {
	if ct == a.coords.CoordType() {
		return a
	}
	return &PointArray{coords: a.coords.ToCoordType(ct), validity: a.validity, meta: a.meta}
}

// PointValue is a read-only view of one point. It implements
// geoarrow.Point.
type PointValue struct {
	view coord.View
}

// GeometryType returns geoarrow.TypePoint.
func (v PointValue) GeometryType() geoarrow.GeometryType { return geoarrow.TypePoint }

// Dimension returns the point's coordinate dimension.
func (v PointValue) Dimension() geoarrow.Dimension { return v.view.Dim() }

// Coord returns the point's coordinate and true, or false if the
// point is empty (stored as the NaN sentinel).
func (v PointValue) Coord() (geoarrow.Coord, bool) {
	if math.IsNaN(v.view.X()) {
		return coord.View{}, false
	}
	return v.view, true
}

// PointCapacity counts the buffer lengths a PointBuilder needs: one
// coordinate slot per geometry, nulls included.
type PointCapacity struct {
	Geoms int
}

// AddPoint counts one point. A nil point counts a null row, which
// still occupies a coordinate slot.
func (c *PointCapacity) AddPoint(p geoarrow.Point) {
	c.Geoms++
}

// AddGeometry counts one geometry of any kind representable by a
// point array. A nil geometry counts a null row. Returns an error
// wrapping geoarrow.ErrIncorrectType for other kinds.
func (c *PointCapacity) AddGeometry(g geoarrow.Geometry) error {
	if g == nil {
		c.Geoms++
		return nil
	}
	if _, ok := g.(geoarrow.Point); !ok {
		return typeErr("cannot count %s in point capacity", g.GeometryType())
	}
	c.Geoms++
	return nil
}

// Add returns the sum of two capacities. Capacities are associative:
// counting two sequences separately and summing equals counting their
// concatenation.
func (c PointCapacity) Add(o PointCapacity) PointCapacity {
	return PointCapacity{Geoms: c.Geoms + o.Geoms}
}

// PointBuilder is the mutable counterpart of PointArray.
type PointBuilder struct {
	coords   *coord.Builder
	validity validityBuilder
}

// NewPointBuilder creates an empty builder for the given dimension and
// coordinate layout.
func NewPointBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *PointBuilder {
	return NewPointBuilderWithCapacity(dim, ct, PointCapacity{})
}

// NewPointBuilderWithCapacity creates a builder pre-sized so that
// pushing the sequence counted by c causes no buffer growth.
func NewPointBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, c PointCapacity) *PointBuilder {
	return &PointBuilder{
		coords:   coord.NewBuilderWithCapacity(dim, ct, c.Geoms),
		validity: newValidityBuilder(c.Geoms),
	}
}

// Reserve ensures space for the additional sequence counted by c.
func (b *PointBuilder) Reserve(c PointCapacity) {
	b.coords.Reserve(c.Geoms)
	b.validity.reserve(c.Geoms)
}

// Len returns the number of rows pushed so far.
func (b *PointBuilder) Len() int { return b.coords.Len() }

// Push appends one point. A nil point appends a null row; an empty
// point is stored as the NaN sentinel with the validity bit set.
func (b *PointBuilder) Push(p geoarrow.Point) {
	if p == nil {
		b.PushNull()
		return
	}
	if c, ok := p.Coord(); ok {
		b.coords.Push(c)
	} else {
		b.coords.PushNaN()
	}
	b.validity.append(true)
}

// PushGeometry appends one geometry of any kind representable by a
// point array. A nil geometry appends a null row. Returns an error
// wrapping geoarrow.ErrIncorrectType for other kinds, leaving the
// builder unchanged.
func (b *PointBuilder) PushGeometry(g geoarrow.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	p, ok := g.(geoarrow.Point)
	if !ok {
		return typeErr("cannot push %s into point builder", g.GeometryType())
	}
	b.Push(p)
	return nil
}

// PushNull appends one null row. The row still occupies a NaN-filled
// coordinate slot.
func (b *PointBuilder) PushNull() {
	b.coords.PushNaN()
	b.validity.append(false)
}

// Finish converts the builder to an immutable PointArray. It is
// infallible and O(1): the array adopts the builder's buffers without
// copying. The builder must not be used afterward.
func (b *PointBuilder) Finish() *PointArray {
	return &PointArray{coords: b.coords.Finish(), validity: b.validity.finish()}
}
