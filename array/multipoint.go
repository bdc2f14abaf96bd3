// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// MultiPointArray is an immutable array of multipoint geometries: one
// coordinate buffer and one offset layer partitioning it into rows.
type MultiPointArray struct {
	coords   coord.Buffer
	offsets  Offsets
	validity *validity
	meta     geoarrow.Metadata
}

// NewMultiPointArray constructs a multipoint array from untrusted
// parts. Returns a layout error on any invariant violation.
func NewMultiPointArray(coords coord.Buffer, offsets []int32, validBits []byte) (*MultiPointArray, error) {
	o, err := NewOffsets(offsets, coords.Len())
	if err != nil {
		return nil, err
	}
	v, err := newValidity(validBits, o.Len())
	if err != nil {
		return nil, err
	}
	return &MultiPointArray{coords: coords, offsets: o, validity: v}, nil
}

func (a *MultiPointArray) geometryArray() {}

// Type returns the array's full physical type.
func (a *MultiPointArray) Type() geoarrow.Type {
	return geoarrow.NewType(geoarrow.TypeMultiPoint, a.coords.Dim(), a.coords.CoordType())
}

// Metadata returns the array's CRS metadata.
func (a *MultiPointArray) Metadata() geoarrow.Metadata { return a.meta }

// WithMetadata returns a copy of the array carrying the given CRS
// metadata. The copy shares all buffers.
func (a *MultiPointArray) WithMetadata(m geoarrow.Metadata) *MultiPointArray {
	c := *a
	c.meta = m
	return &c
}

func (a *MultiPointArray) setMetadata(m geoarrow.Metadata) { a.meta = m }

// Len returns the number of rows, nulls included.
func (a *MultiPointArray) Len() int { return a.offsets.Len() }

// NullCount returns the number of null rows.
func (a *MultiPointArray) NullCount() int { return a.validity.nullCount() }

// IsNull reports whether row i is null. Panics if i is out of range.
func (a *MultiPointArray) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return !a.validity.isValid(i)
}

// Coords returns the array's coordinate buffer.
func (a *MultiPointArray) Coords() coord.Buffer { return a.coords }

// Offsets returns the row offset layer.
func (a *MultiPointArray) Offsets() Offsets { return a.offsets }

// Value returns a view of the multipoint at row i. Panics if i is out
// of range.
func (a *MultiPointArray) Value(i int) MultiPointValue {
	checkIndex(i, a.Len())
	return MultiPointValue{coords: a.coords, start: a.offsets.Start(i), end: a.offsets.End(i)}
}

// Geometry returns a view of row i, or nil if the row is null.
func (a *MultiPointArray) Geometry(i int) geoarrow.Geometry {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

// Slice returns the O(1) zero-copy window [offset, offset+length).
// Panics if the window is out of bounds.
func (a *MultiPointArray) Slice(offset, length int) *MultiPointArray {
	checkWindow(offset, length, a.Len())
	return &MultiPointArray{
		coords:   a.coords,
		offsets:  a.offsets.Slice(offset, length),
		validity: a.validity.slice(offset, length),
		meta:     a.meta,
	}
}

// ToCoordType converts the array to the given coordinate layout,
// copying every coordinate if the layout differs.
func (a *MultiPointArray) ToCoordType(ct geoarrow.CoordType) *MultiPointArray {
	if ct == a.coords.CoordType() {
		return a
	}
	c := *a
	c.coords = a.coords.ToCoordType(ct)
	return &c
}

// MultiPointValue is a read-only view of one multipoint. It implements
// geoarrow.MultiPoint.
type MultiPointValue struct {
	coords     coord.Buffer
	start, end int
}

// GeometryType returns geoarrow.TypeMultiPoint.
func (v MultiPointValue) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPoint }

// Dimension returns the multipoint's coordinate dimension.
func (v MultiPointValue) Dimension() geoarrow.Dimension { return v.coords.Dim() }

// NumPoints returns the number of member points.
func (v MultiPointValue) NumPoints() int { return v.end - v.start }

// Point returns the i-th member point. Panics if i is out of range.
func (v MultiPointValue) Point(i int) geoarrow.Point {
	if i < 0 || i >= v.NumPoints() {
		fmtPanic("multipoint member %d out of range [0, %d)", i, v.NumPoints())
	}
	return PointValue{view: v.coords.Value(v.start + i)}
}

// MultiPointCapacity counts the buffer lengths a MultiPointBuilder
// needs.
type MultiPointCapacity struct {
	Coords int
	Geoms  int
}

// AddMultiPoint counts one multipoint. A nil multipoint counts a null
// row.
func (c *MultiPointCapacity) AddMultiPoint(mp geoarrow.MultiPoint) {
	if mp != nil {
		c.Coords += mp.NumPoints()
	}
	c.Geoms++
}

// AddPoint counts one point promoted to a single-member multipoint.
func (c *MultiPointCapacity) AddPoint(p geoarrow.Point) {
	if p != nil {
		if _, ok := p.Coord(); ok {
			c.Coords++
		}
	}
	c.Geoms++
}

// AddGeometry counts one geometry of any kind representable by a
// multipoint array: a multipoint, or a point promoted to a
// single-member multipoint. A nil geometry counts a null row. Returns
// an error wrapping geoarrow.ErrIncorrectType for other kinds.
func (c *MultiPointCapacity) AddGeometry(g geoarrow.Geometry) error {
	switch v := g.(type) {
	case nil:
		c.AddMultiPoint(nil)
	case geoarrow.Point:
		c.AddPoint(v)
	case geoarrow.MultiPoint:
		c.AddMultiPoint(v)
	default:
		return typeErr("cannot count %s in multipoint capacity", g.GeometryType())
	}
	return nil
}

// Add returns the sum of two capacities.
func (c MultiPointCapacity) Add(o MultiPointCapacity) MultiPointCapacity {
	return MultiPointCapacity{Coords: c.Coords + o.Coords, Geoms: c.Geoms + o.Geoms}
}

// MultiPointBuilder is the mutable counterpart of MultiPointArray.
type MultiPointBuilder struct {
	coords   *coord.Builder
	offsets  offsetsBuilder
	validity validityBuilder
}

// NewMultiPointBuilder creates an empty builder for the given
// dimension and coordinate layout.
func NewMultiPointBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *MultiPointBuilder {
	return NewMultiPointBuilderWithCapacity(dim, ct, MultiPointCapacity{})
}

// NewMultiPointBuilderWithCapacity creates a builder pre-sized so that
// pushing the sequence counted by c causes no buffer growth.
func NewMultiPointBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, c MultiPointCapacity) *MultiPointBuilder {
	return &MultiPointBuilder{
		coords:   coord.NewBuilderWithCapacity(dim, ct, c.Coords),
		offsets:  newOffsetsBuilder(c.Geoms),
		validity: newValidityBuilder(c.Geoms),
	}
}

// Reserve ensures space for the additional sequence counted by c.
func (b *MultiPointBuilder) Reserve(c MultiPointCapacity) {
	b.coords.Reserve(c.Coords)
	b.offsets.reserve(c.Geoms)
	b.validity.reserve(c.Geoms)
}

// Len returns the number of rows pushed so far.
func (b *MultiPointBuilder) Len() int { return b.offsets.length() }

// Push appends one multipoint. A nil multipoint appends a null row.
func (b *MultiPointBuilder) Push(mp geoarrow.MultiPoint) {
	if mp == nil {
		b.PushNull()
		return
	}
	for i, n := 0, mp.NumPoints(); i < n; i++ {
		if c, ok := mp.Point(i).Coord(); ok {
			b.coords.Push(c)
		} else {
			b.coords.PushNaN()
		}
	}
	b.offsets.closeRun(b.coords.Len())
	b.validity.append(true)
}

// PushPoint appends one point promoted to a single-member multipoint.
// A nil or empty point appends an empty multipoint row.
func (b *MultiPointBuilder) PushPoint(p geoarrow.Point) {
	if p != nil {
		if c, ok := p.Coord(); ok {
			b.coords.Push(c)
		}
	}
	b.offsets.closeRun(b.coords.Len())
	b.validity.append(true)
}

// PushGeometry appends one geometry of any kind representable by a
// multipoint array. A nil geometry appends a null row. Returns an
// error wrapping geoarrow.ErrIncorrectType for other kinds, leaving
// the builder unchanged.
func (b *MultiPointBuilder) PushGeometry(g geoarrow.Geometry) error {
	switch v := g.(type) {
	case nil:
		b.PushNull()
	case geoarrow.Point:
		b.PushPoint(v)
	case geoarrow.MultiPoint:
		b.Push(v)
	default:
		return typeErr("cannot push %s into multipoint builder", g.GeometryType())
	}
	return nil
}

// PushNull appends one null row.
func (b *MultiPointBuilder) PushNull() {
	b.offsets.closeRun(b.coords.Len())
	b.validity.append(false)
}

// Finish converts the builder to an immutable MultiPointArray. It is
// infallible and O(1). The builder must not be used afterward.
func (b *MultiPointBuilder) Finish() *MultiPointArray {
	return &MultiPointArray{
		coords:   b.coords.Finish(),
		offsets:  b.offsets.finish(),
		validity: b.validity.finish(),
	}
}
