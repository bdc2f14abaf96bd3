// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// PolygonArray is an immutable array of polygon geometries: one
// coordinate buffer and two offset layers. The inner layer partitions
// coordinates into rings; the outer layer partitions rings into rows,
// with the first ring of each non-empty row being the exterior.
type PolygonArray struct {
	coords coord.Buffer
	// ringOffsets partitions coords into rings. It is never
	// re-windowed by slicing; geomOffsets indexes into it absolutely.
	ringOffsets Offsets
	// geomOffsets partitions rings into rows.
	geomOffsets Offsets
	validity    *validity
	meta        geoarrow.Metadata
}

// NewPolygonArray constructs a polygon array from untrusted parts.
// ringOffsets partitions the coordinate buffer into rings and
// geomOffsets partitions the rings into rows. Returns a layout error
// on any invariant violation.
func NewPolygonArray(coords coord.Buffer, ringOffsets, geomOffsets []int32, validBits []byte) (*PolygonArray, error) {
	ro, err := NewOffsets(ringOffsets, coords.Len())
	if err != nil {
		return nil, err
	}
	gOff, err := NewOffsets(geomOffsets, ro.Len())
	if err != nil {
		return nil, err
	}
	v, err := newValidity(validBits, gOff.Len())
	if err != nil {
		return nil, err
	}
	return &PolygonArray{coords: coords, ringOffsets: ro, geomOffsets: gOff, validity: v}, nil
}

func (a *PolygonArray) geometryArray() {}

// Type returns the array's full physical type.
func (a *PolygonArray) Type() geoarrow.Type {
	return geoarrow.NewType(geoarrow.TypePolygon, a.coords.Dim(), a.coords.CoordType())
}

// Metadata returns the array's CRS metadata.
func (a *PolygonArray) Metadata() geoarrow.Metadata { return a.meta }

// WithMetadata returns a copy of the array carrying the given CRS
// metadata. The copy shares all buffers.
func (a *PolygonArray) WithMetadata(m geoarrow.Metadata) *PolygonArray {
	c := *a
	c.meta = m
	return &c
}

func (a *PolygonArray) setMetadata(m geoarrow.Metadata) { a.meta = m }

// Len returns the number of rows, nulls included.
func (a *PolygonArray) Len() int { return a.geomOffsets.Len() }

// NullCount returns the number of null rows.
func (a *PolygonArray) NullCount() int { return a.validity.nullCount() }

// IsNull reports whether row i is null. Panics if i is out of range.
func (a *PolygonArray) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return !a.validity.isValid(i)
}

// Coords returns the array's coordinate buffer.
func (a *PolygonArray) Coords() coord.Buffer { return a.coords }

// RingOffsets returns the inner (ring to coordinate) offset layer.
func (a *PolygonArray) RingOffsets() Offsets { return a.ringOffsets }

// GeomOffsets returns the outer (row to ring) offset layer.
func (a *PolygonArray) GeomOffsets() Offsets { return a.geomOffsets }

// Value returns a view of the polygon at row i. For a null row the
// view is an empty polygon. Panics if i is out of range.
func (a *PolygonArray) Value(i int) PolygonValue {
	checkIndex(i, a.Len())
	return PolygonValue{
		coords:      a.coords,
		ringOffsets: a.ringOffsets,
		start:       a.geomOffsets.Start(i),
		end:         a.geomOffsets.End(i),
	}
}

// Geometry returns a view of row i, or nil if the row is null.
func (a *PolygonArray) Geometry(i int) geoarrow.Geometry {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

// Slice returns the O(1) zero-copy window [offset, offset+length).
// Panics if the window is out of bounds.
func (a *PolygonArray) Slice(offset, length int) *PolygonArray {
	checkWindow(offset, length, a.Len())
	return &PolygonArray{
		coords:      a.coords,
		ringOffsets: a.ringOffsets,
		geomOffsets: a.geomOffsets.Slice(offset, length),
		validity:    a.validity.slice(offset, length),
		meta:        a.meta,
	}
}

// ToCoordType converts the array to the given coordinate layout,
// copying every coordinate if the layout differs.
func (a *PolygonArray) ToCoordType(ct geoarrow.CoordType) *PolygonArray {
	if ct == a.coords.CoordType() {
		return a
	}
	c := *a
	c.coords = a.coords.ToCoordType(ct)
	return &c
}

// PolygonValue is a read-only view of one polygon. It implements
// geoarrow.Polygon.
type PolygonValue struct {
	coords      coord.Buffer
	ringOffsets Offsets
	start, end  int
}

// GeometryType returns geoarrow.TypePolygon.
func (v PolygonValue) GeometryType() geoarrow.GeometryType { return geoarrow.TypePolygon }

// Dimension returns the polygon's coordinate dimension.
func (v PolygonValue) Dimension() geoarrow.Dimension { return v.coords.Dim() }

// Exterior returns the outer ring and true, or nil and false if the
// polygon is empty.
func (v PolygonValue) Exterior() (geoarrow.LineString, bool) {
	if v.start == v.end {
		return nil, false
	}
	return v.ring(v.start), true
}

// NumInteriors returns the number of interior rings.
func (v PolygonValue) NumInteriors() int {
	if v.start == v.end {
		return 0
	}
	return v.end - v.start - 1
}

// Interior returns the i-th interior ring. Panics if i is out of
// range.
func (v PolygonValue) Interior(i int) geoarrow.LineString {
	if i < 0 || i >= v.NumInteriors() {
		fmtPanic("polygon interior ring %d out of range [0, %d)", i, v.NumInteriors())
	}
	return v.ring(v.start + 1 + i)
}

func (v PolygonValue) ring(r int) LineStringValue {
	return LineStringValue{coords: v.coords, start: v.ringOffsets.Start(r), end: v.ringOffsets.End(r)}
}

// PolygonCapacity counts the buffer lengths a PolygonBuilder needs:
// total coordinates, total rings, and total geometries, nulls
// included.
type PolygonCapacity struct {
	Coords int
	Rings  int
	Geoms  int
}

// AddPolygon counts one polygon. A nil polygon counts a null row.
func (c *PolygonCapacity) AddPolygon(p geoarrow.Polygon) {
	if p != nil {
		if ext, ok := p.Exterior(); ok {
			c.Rings += 1 + p.NumInteriors()
			c.Coords += ext.NumCoords()
			for i := 0; i < p.NumInteriors(); i++ {
				c.Coords += p.Interior(i).NumCoords()
			}
		}
	}
	c.Geoms++
}

// AddGeometry counts one geometry of any kind representable by a
// polygon array: a polygon, or a rect or triangle exposed as its
// degenerate polygon. A nil geometry counts a null row. Returns an
// error wrapping geoarrow.ErrIncorrectType for other kinds.
func (c *PolygonCapacity) AddGeometry(g geoarrow.Geometry) error {
	p, err := asPolygonal(g)
	if err != nil {
		return err
	}
	c.AddPolygon(p)
	return nil
}

// Add returns the sum of two capacities.
func (c PolygonCapacity) Add(o PolygonCapacity) PolygonCapacity {
	return PolygonCapacity{Coords: c.Coords + o.Coords, Rings: c.Rings + o.Rings, Geoms: c.Geoms + o.Geoms}
}

// asPolygonal views any polygon-shaped geometry as a polygon: a
// polygon as itself, a rect or triangle through its degenerate-polygon
// adapter, and nil as nil.
func asPolygonal(g geoarrow.Geometry) (geoarrow.Polygon, error) {
	switch v := g.(type) {
	case nil:
		return nil, nil
	case geoarrow.Polygon:
		return v, nil
	case geoarrow.Rect:
		return geoarrow.RectAsPolygon(v), nil
	case geoarrow.Triangle:
		return geoarrow.TriangleAsPolygon(v), nil
	default:
		return nil, typeErr("cannot view %s as polygon", g.GeometryType())
	}
}

// PolygonBuilder is the mutable counterpart of PolygonArray. Push
// appends one complete polygon at a time, driving both offset layers
// internally; there is no way to push a partial ring or an unclosed
// row.
type PolygonBuilder struct {
	coords      *coord.Builder
	ringOffsets offsetsBuilder
	geomOffsets offsetsBuilder
	validity    validityBuilder
}

// NewPolygonBuilder creates an empty builder for the given dimension
// and coordinate layout.
func NewPolygonBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *PolygonBuilder {
	return NewPolygonBuilderWithCapacity(dim, ct, PolygonCapacity{})
}

// NewPolygonBuilderWithCapacity creates a builder pre-sized so that
// pushing the sequence counted by c causes no buffer growth.
func NewPolygonBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, c PolygonCapacity) *PolygonBuilder {
	return &PolygonBuilder{
		coords:      coord.NewBuilderWithCapacity(dim, ct, c.Coords),
		ringOffsets: newOffsetsBuilder(c.Rings),
		geomOffsets: newOffsetsBuilder(c.Geoms),
		validity:    newValidityBuilder(c.Geoms),
	}
}

// Reserve ensures space for the additional sequence counted by c.
func (b *PolygonBuilder) Reserve(c PolygonCapacity) {
	b.coords.Reserve(c.Coords)
	b.ringOffsets.reserve(c.Rings)
	b.geomOffsets.reserve(c.Geoms)
	b.validity.reserve(c.Geoms)
}

// Len returns the number of rows pushed so far.
func (b *PolygonBuilder) Len() int { return b.geomOffsets.length() }

// Push appends one polygon. A nil polygon appends a null row.
func (b *PolygonBuilder) Push(p geoarrow.Polygon) {
	if p == nil {
		b.PushNull()
		return
	}
	if ext, ok := p.Exterior(); ok {
		b.pushRing(ext)
		for i := 0; i < p.NumInteriors(); i++ {
			b.pushRing(p.Interior(i))
		}
	}
	b.geomOffsets.closeRun(b.ringOffsets.length())
	b.validity.append(true)
}

// PushGeometry appends one geometry of any kind representable by a
// polygon array: a polygon, or a rect or triangle exposed as its
// degenerate polygon. A nil geometry appends a null row. Returns an
// error wrapping geoarrow.ErrIncorrectType for other kinds, leaving
// the builder unchanged.
func (b *PolygonBuilder) PushGeometry(g geoarrow.Geometry) error {
	p, err := asPolygonal(g)
	if err != nil {
		return err
	}
	b.Push(p)
	return nil
}

// PushNull appends one null row.
func (b *PolygonBuilder) PushNull() {
	b.geomOffsets.closeRun(b.ringOffsets.length())
	b.validity.append(false)
}

func (b *PolygonBuilder) pushRing(ring geoarrow.LineString) {
	for i, n := 0, ring.NumCoords(); i < n; i++ {
		b.coords.Push(ring.Coord(i))
	}
	b.ringOffsets.closeRun(b.coords.Len())
}

// Finish converts the builder to an immutable PolygonArray. It is
// infallible and O(1). The builder must not be used afterward.
func (b *PolygonBuilder) Finish() *PolygonArray {
	return &PolygonArray{
		coords:      b.coords.Finish(),
		ringOffsets: b.ringOffsets.finish(),
		geomOffsets: b.geomOffsets.finish(),
		validity:    b.validity.finish(),
	}
}
