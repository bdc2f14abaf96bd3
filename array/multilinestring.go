// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// MultiLineStringArray is an immutable array of multilinestring
// geometries: one coordinate buffer and two offset layers. The inner
// layer partitions coordinates into linestrings; the outer layer
// partitions linestrings into rows.
type MultiLineStringArray struct {
	coords coord.Buffer
	// partOffsets partitions coords into linestrings. Never
	// re-windowed by slicing.
	partOffsets Offsets
	// geomOffsets partitions linestrings into rows.
	geomOffsets Offsets
	validity    *validity
	meta        geoarrow.Metadata
}

// NewMultiLineStringArray constructs a multilinestring array from
// untrusted parts. Returns a layout error on any invariant violation.
func NewMultiLineStringArray(coords coord.Buffer, partOffsets, geomOffsets []int32, validBits []byte) (*MultiLineStringArray, error) {
	po, err := NewOffsets(partOffsets, coords.Len())
	if err != nil {
		return nil, err
	}
	gOff, err := NewOffsets(geomOffsets, po.Len())
	if err != nil {
		return nil, err
	}
	v, err := newValidity(validBits, gOff.Len())
	if err != nil {
		return nil, err
	}
	return &MultiLineStringArray{coords: coords, partOffsets: po, geomOffsets: gOff, validity: v}, nil
}

func (a *MultiLineStringArray) geometryArray() {}

// Type returns the array's full physical type.
func (a *MultiLineStringArray) Type() geoarrow.Type {
	return geoarrow.NewType(geoarrow.TypeMultiLineString, a.coords.Dim(), a.coords.CoordType())
}

// Metadata returns the array's CRS metadata.
func (a *MultiLineStringArray) Metadata() geoarrow.Metadata { return a.meta }

// WithMetadata returns a copy of the array carrying the given CRS
// metadata. The copy shares all buffers.
func (a *MultiLineStringArray) WithMetadata(m geoarrow.Metadata) *MultiLineStringArray {
	c := *a
	c.meta = m
	return &c
}

func (a *MultiLineStringArray) setMetadata(m geoarrow.Metadata) { a.meta = m }

// Len returns the number of rows, nulls included.
func (a *MultiLineStringArray) Len() int { return a.geomOffsets.Len() }

// NullCount returns the number of null rows.
func (a *MultiLineStringArray) NullCount() int { return a.validity.nullCount() }

// IsNull reports whether row i is null. Panics if i is out of range.
func (a *MultiLineStringArray) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return !a.validity.isValid(i)
}

// Coords returns the array's coordinate buffer.
func (a *MultiLineStringArray) Coords() coord.Buffer { return a.coords }

// PartOffsets returns the inner (linestring to coordinate) offset
// layer.
func (a *MultiLineStringArray) PartOffsets() Offsets { return a.partOffsets }

// GeomOffsets returns the outer (row to linestring) offset layer.
func (a *MultiLineStringArray) GeomOffsets() Offsets { return a.geomOffsets }

// Value returns a view of the multilinestring at row i. Panics if i
// is out of range.
func (a *MultiLineStringArray) Value(i int) MultiLineStringValue {
	checkIndex(i, a.Len())
	return MultiLineStringValue{
		coords:      a.coords,
		partOffsets: a.partOffsets,
		start:       a.geomOffsets.Start(i),
		end:         a.geomOffsets.End(i),
	}
}

// Geometry returns a view of row i, or nil if the row is null.
func (a *MultiLineStringArray) Geometry(i int) geoarrow.Geometry {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

// Slice returns the O(1) zero-copy window [offset, offset+length).
// Panics if the window is out of bounds.
func (a *MultiLineStringArray) Slice(offset, length int) *MultiLineStringArray {
	checkWindow(offset, length, a.Len())
	return &MultiLineStringArray{
		coords:      a.coords,
		partOffsets: a.partOffsets,
		geomOffsets: a.geomOffsets.Slice(offset, length),
		validity:    a.validity.slice(offset, length),
		meta:        a.meta,
	}
}

// ToCoordType converts the array to the given coordinate layout,
// copying every coordinate if the layout differs.
func (a *MultiLineStringArray) ToCoordType(ct geoarrow.CoordType) *MultiLineStringArray {
	if ct == a.coords.CoordType() {
		return a
	}
	c := *a
	c.coords = a.coords.ToCoordType(ct)
	return &c
}

// MultiLineStringValue is a read-only view of one multilinestring. It
// implements geoarrow.MultiLineString.
type MultiLineStringValue struct {
	coords      coord.Buffer
	partOffsets Offsets
	start, end  int
}

// GeometryType returns geoarrow.TypeMultiLineString.
func (v MultiLineStringValue) GeometryType() geoarrow.GeometryType {
	return geoarrow.TypeMultiLineString
}

// Dimension returns the multilinestring's coordinate dimension.
func (v MultiLineStringValue) Dimension() geoarrow.Dimension { return v.coords.Dim() }

// NumLineStrings returns the number of member linestrings.
func (v MultiLineStringValue) NumLineStrings() int { return v.end - v.start }

// LineString returns the i-th member linestring. Panics if i is out
// of range.
func (v MultiLineStringValue) LineString(i int) geoarrow.LineString {
	if i < 0 || i >= v.NumLineStrings() {
		fmtPanic("multilinestring member %d out of range [0, %d)", i, v.NumLineStrings())
	}
	p := v.start + i
	return LineStringValue{coords: v.coords, start: v.partOffsets.Start(p), end: v.partOffsets.End(p)}
}

// MultiLineStringCapacity counts the buffer lengths a
// MultiLineStringBuilder needs.
type MultiLineStringCapacity struct {
	Coords      int
	LineStrings int
	Geoms       int
}

// AddMultiLineString counts one multilinestring. A nil value counts a
// null row.
func (c *MultiLineStringCapacity) AddMultiLineString(mls geoarrow.MultiLineString) {
	if mls != nil {
		c.LineStrings += mls.NumLineStrings()
		for i := 0; i < mls.NumLineStrings(); i++ {
			c.Coords += mls.LineString(i).NumCoords()
		}
	}
	c.Geoms++
}

// AddLineString counts one linestring promoted to a single-member
// multilinestring.
func (c *MultiLineStringCapacity) AddLineString(ls geoarrow.LineString) {
	if ls != nil {
		c.LineStrings++
		c.Coords += ls.NumCoords()
	}
	c.Geoms++
}

// AddGeometry counts one geometry of any kind representable by a
// multilinestring array. A nil geometry counts a null row. Returns an
// error wrapping geoarrow.ErrIncorrectType for other kinds.
func (c *MultiLineStringCapacity) AddGeometry(g geoarrow.Geometry) error {
	switch v := g.(type) {
	case nil:
		c.AddMultiLineString(nil)
	case geoarrow.LineString:
		c.AddLineString(v)
	case geoarrow.MultiLineString:
		c.AddMultiLineString(v)
	default:
		return typeErr("cannot count %s in multilinestring capacity", g.GeometryType())
	}
	return nil
}

// Add returns the sum of two capacities.
func (c MultiLineStringCapacity) Add(o MultiLineStringCapacity) MultiLineStringCapacity {
	return MultiLineStringCapacity{
		Coords:      c.Coords + o.Coords,
		LineStrings: c.LineStrings + o.LineStrings,
		Geoms:       c.Geoms + o.Geoms,
	}
}

// MultiLineStringBuilder is the mutable counterpart of
// MultiLineStringArray. Push appends one complete multilinestring at
// a time, driving both offset layers internally.
type MultiLineStringBuilder struct {
	coords      *coord.Builder
	partOffsets offsetsBuilder
	geomOffsets offsetsBuilder
	validity    validityBuilder
}

// NewMultiLineStringBuilder creates an empty builder for the given
// dimension and coordinate layout.
func NewMultiLineStringBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *MultiLineStringBuilder {
	return NewMultiLineStringBuilderWithCapacity(dim, ct, MultiLineStringCapacity{})
}

// NewMultiLineStringBuilderWithCapacity creates a builder pre-sized so
// that pushing the sequence counted by c causes no buffer growth.
func NewMultiLineStringBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, c MultiLineStringCapacity) *MultiLineStringBuilder {
	return &MultiLineStringBuilder{
		coords:      coord.NewBuilderWithCapacity(dim, ct, c.Coords),
		partOffsets: newOffsetsBuilder(c.LineStrings),
		geomOffsets: newOffsetsBuilder(c.Geoms),
		validity:    newValidityBuilder(c.Geoms),
	}
}

// Reserve ensures space for the additional sequence counted by c.
func (b *MultiLineStringBuilder) Reserve(c MultiLineStringCapacity) {
	b.coords.Reserve(c.Coords)
	b.partOffsets.reserve(c.LineStrings)
	b.geomOffsets.reserve(c.Geoms)
	b.validity.reserve(c.Geoms)
}

// Len returns the number of rows pushed so far.
func (b *MultiLineStringBuilder) Len() int { return b.geomOffsets.length() }

// Push appends one multilinestring. A nil value appends a null row.
func (b *MultiLineStringBuilder) Push(mls geoarrow.MultiLineString) {
	if mls == nil {
		b.PushNull()
		return
	}
	for i, n := 0, mls.NumLineStrings(); i < n; i++ {
		b.pushPart(mls.LineString(i))
	}
	b.geomOffsets.closeRun(b.partOffsets.length())
	b.validity.append(true)
}

// PushLineString appends one linestring promoted to a single-member
// multilinestring. A nil linestring appends an empty row.
func (b *MultiLineStringBuilder) PushLineString(ls geoarrow.LineString) {
	if ls != nil {
		b.pushPart(ls)
	}
	b.geomOffsets.closeRun(b.partOffsets.length())
	b.validity.append(true)
}

// PushGeometry appends one geometry of any kind representable by a
// multilinestring array. A nil geometry appends a null row. Returns
// an error wrapping geoarrow.ErrIncorrectType for other kinds,
// leaving the builder unchanged.
func (b *MultiLineStringBuilder) PushGeometry(g geoarrow.Geometry) error {
	switch v := g.(type) {
	case nil:
		b.PushNull()
	case geoarrow.LineString:
		b.PushLineString(v)
	case geoarrow.MultiLineString:
		b.Push(v)
	default:
		return typeErr("cannot push %s into multilinestring builder", g.GeometryType())
	}
	return nil
}

// PushNull appends one null row.
func (b *MultiLineStringBuilder) PushNull() {
	b.geomOffsets.closeRun(b.partOffsets.length())
	b.validity.append(false)
}

func (b *MultiLineStringBuilder) pushPart(ls geoarrow.LineString) {
	for i, n := 0, ls.NumCoords(); i < n; i++ {
		b.coords.Push(ls.Coord(i))
	}
	b.partOffsets.closeRun(b.coords.Len())
}

// Finish converts the builder to an immutable MultiLineStringArray.
// It is infallible and O(1). The builder must not be used afterward.
func (b *MultiLineStringBuilder) Finish() *MultiLineStringArray {
	return &MultiLineStringArray{
		coords:      b.coords.Finish(),
		partOffsets: b.partOffsets.finish(),
		geomOffsets: b.geomOffsets.finish(),
		validity:    b.validity.finish(),
	}
}
