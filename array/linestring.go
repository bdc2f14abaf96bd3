// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// LineStringArray is an immutable array of linestring geometries: one
// coordinate buffer, one offset layer partitioning it into rows, and
// an optional nullability bitmap. A null row is an empty run in the
// offset layer; a present-but-empty linestring is the same empty run
// with the validity bit set.
type LineStringArray struct {
	coords   coord.Buffer
	offsets  Offsets
	validity *validity
	meta     geoarrow.Metadata
}

// NewLineStringArray constructs a linestring array from untrusted
// parts: a coordinate buffer, a raw offset buffer partitioning it, and
// an optional validity bit buffer. Returns a layout error on any
// invariant violation.
func NewLineStringArray(coords coord.Buffer, offsets []int32, validBits []byte) (*LineStringArray, error) {
	o, err := NewOffsets(offsets, coords.Len())
	if err != nil {
		return nil, err
	}
	v, err := newValidity(validBits, o.Len())
	if err != nil {
		return nil, err
	}
	return &LineStringArray{coords: coords, offsets: o, validity: v}, nil
}

func (a *LineStringArray) geometryArray() {}

// Type returns the array's full physical type.
func (a *LineStringArray) Type() geoarrow.Type {
	return geoarrow.NewType(geoarrow.TypeLineString, a.coords.Dim(), a.coords.CoordType())
}

// Metadata returns the array's CRS metadata.
func (a *LineStringArray) Metadata() geoarrow.Metadata { return a.meta }

// WithMetadata returns a copy of the array carrying the given CRS
// metadata. The copy shares all buffers.
func (a *LineStringArray) WithMetadata(m geoarrow.Metadata) *LineStringArray {
	c := *a
	c.meta = m
	return &c
}

func (a *LineStringArray) setMetadata(m geoarrow.Metadata) { a.meta = m }

// Len returns the number of rows, nulls included.
func (a *LineStringArray) Len() int { return a.offsets.Len() }

// NullCount returns the number of null rows.
func (a *LineStringArray) NullCount() int { return a.validity.nullCount() }

// IsNull reports whether row i is null. Panics if i is out of range.
func (a *LineStringArray) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return !a.validity.isValid(i)
}

// Coords returns the array's coordinate buffer. Note that a sliced
// array's coordinate buffer is not re-based; use Offsets to locate
// each row's coordinates.
func (a *LineStringArray) Coords() coord.Buffer { return a.coords }

// Offsets returns the row offset layer.
func (a *LineStringArray) Offsets() Offsets { return a.offsets }

// Value returns a view of the linestring at row i. For a null row the
// view is an empty linestring. Panics if i is out of range.
func (a *LineStringArray) Value(i int) LineStringValue {
	checkIndex(i, a.Len())
	return LineStringValue{coords: a.coords, start: a.offsets.Start(i), end: a.offsets.End(i)}
}

// Geometry returns a view of row i, or nil if the row is null.
func (a *LineStringArray) Geometry(i int) geoarrow.Geometry {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

// Slice returns the O(1) zero-copy window [offset, offset+length).
// Only the offset and validity views are re-based; coordinates are
// untouched. Panics if the window is out of bounds.
func (a *LineStringArray) Slice(offset, length int) *LineStringArray {
	checkWindow(offset, length, a.Len())
	return &LineStringArray{
		coords:   a.coords,
		offsets:  a.offsets.Slice(offset, length),
		validity: a.validity.slice(offset, length),
		meta:     a.meta,
	}
}

// ToCoordType converts the array to the given coordinate layout,
// copying every coordinate if the layout differs.
func (a *LineStringArray) ToCoordType(ct geoarrow.CoordType) *LineStringArray {
	if ct == a.coords.CoordType() {
		return a
	}
	return &LineStringArray{coords: a.coords.ToCoordType(ct), offsets: a.offsets, validity: a.validity, meta: a.meta}
}

// LineStringValue is a read-only view of one linestring. It implements
// geoarrow.LineString.
type LineStringValue struct {
	coords     coord.Buffer
	start, end int
}

// GeometryType returns geoarrow.TypeLineString.
func (v LineStringValue) GeometryType() geoarrow.GeometryType { return geoarrow.TypeLineString }

// Dimension returns the linestring's coordinate dimension.
func (v LineStringValue) Dimension() geoarrow.Dimension { return v.coords.Dim() }

// NumCoords returns the number of coordinates in the linestring.
func (v LineStringValue) NumCoords() int { return v.end - v.start }

// Coord returns the i-th coordinate. Panics if i is out of range.
func (v LineStringValue) Coord(i int) geoarrow.Coord {
	if i < 0 || i >= v.NumCoords() {
		fmtPanic("linestring coordinate %d out of range [0, %d)", i, v.NumCoords())
	}
	return v.coords.Value(v.start + i)
}

// LineStringCapacity counts the buffer lengths a LineStringBuilder
// needs: total coordinates and total geometries, nulls included.
type LineStringCapacity struct {
	Coords int
	Geoms  int
}

// AddLineString counts one linestring. A nil linestring counts a null
// row.
func (c *LineStringCapacity) AddLineString(ls geoarrow.LineString) {
	if ls != nil {
		c.Coords += ls.NumCoords()
	}
	c.Geoms++
}

// AddGeometry counts one geometry of any kind representable by a
// linestring array. A nil geometry counts a null row. Returns an
// error wrapping geoarrow.ErrIncorrectType for other kinds.
func (c *LineStringCapacity) AddGeometry(g geoarrow.Geometry) error {
	if g == nil {
		c.AddLineString(nil)
		return nil
	}
	ls, ok := g.(geoarrow.LineString)
	if !ok {
		return typeErr("cannot count %s in linestring capacity", g.GeometryType())
	}
	c.AddLineString(ls)
	return nil
}

// Add returns the sum of two capacities.
func (c LineStringCapacity) Add(o LineStringCapacity) LineStringCapacity {
	return LineStringCapacity{Coords: c.Coords + o.Coords, Geoms: c.Geoms + o.Geoms}
}

// LineStringBuilder is the mutable counterpart of LineStringArray.
// Push appends one complete linestring at a time: coordinates first,
// then the row's offset, atomically from the caller's point of view.
// There is no way to push a partial row, so the offset-layer
// invariants hold by construction.
type LineStringBuilder struct {
	coords   *coord.Builder
	offsets  offsetsBuilder
	validity validityBuilder
}

// NewLineStringBuilder creates an empty builder for the given
// dimension and coordinate layout.
func NewLineStringBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *LineStringBuilder {
	return NewLineStringBuilderWithCapacity(dim, ct, LineStringCapacity{})
}

// NewLineStringBuilderWithCapacity creates a builder pre-sized so that
// pushing the sequence counted by c causes no buffer growth.
func NewLineStringBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, c LineStringCapacity) *LineStringBuilder {
	return &LineStringBuilder{
		coords:   coord.NewBuilderWithCapacity(dim, ct, c.Coords),
		offsets:  newOffsetsBuilder(c.Geoms),
		validity: newValidityBuilder(c.Geoms),
	}
}

// Reserve ensures space for the additional sequence counted by c.
func (b *LineStringBuilder) Reserve(c LineStringCapacity) {
	b.coords.Reserve(c.Coords)
	b.offsets.reserve(c.Geoms)
	b.validity.reserve(c.Geoms)
}

// Len returns the number of rows pushed so far.
func (b *LineStringBuilder) Len() int { return b.offsets.length() }

// Push appends one linestring. A nil linestring appends a null row.
func (b *LineStringBuilder) Push(ls geoarrow.LineString) {
	if ls == nil {
		b.PushNull()
		return
	}
	for i, n := 0, ls.NumCoords(); i < n; i++ {
		b.coords.Push(ls.Coord(i))
	}
	b.offsets.closeRun(b.coords.Len())
	b.validity.append(true)
}

// PushGeometry appends one geometry of any kind representable by a
// linestring array. A nil geometry appends a null row. Returns an
// error wrapping geoarrow.ErrIncorrectType for other kinds, leaving
// the builder unchanged.
func (b *LineStringBuilder) PushGeometry(g geoarrow.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	ls, ok := g.(geoarrow.LineString)
	if !ok {
		return typeErr("cannot push %s into linestring builder", g.GeometryType())
	}
	b.Push(ls)
	return nil
}

// PushNull appends one null row: an empty run in the offset layer with
// the validity bit clear.
func (b *LineStringBuilder) PushNull() {
	b.offsets.closeRun(b.coords.Len())
	b.validity.append(false)
}

// Finish converts the builder to an immutable LineStringArray. It is
// infallible and O(1). The builder must not be used afterward.
func (b *LineStringBuilder) Finish() *LineStringArray {
	return &LineStringArray{
		coords:   b.coords.Finish(),
		offsets:  b.offsets.finish(),
		validity: b.validity.finish(),
	}
}
