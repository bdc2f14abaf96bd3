// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// MultiPolygonArray is an immutable array of multipolygon geometries:
// one coordinate buffer and three offset layers, nesting coordinates
// into rings, rings into polygons, and polygons into rows.
type MultiPolygonArray struct {
	coords coord.Buffer
	// ringOffsets partitions coords into rings. Never re-windowed by
	// slicing.
	ringOffsets Offsets
	// polygonOffsets partitions rings into polygons. Never
	// re-windowed by slicing.
	polygonOffsets Offsets
	// geomOffsets partitions polygons into rows.
	geomOffsets Offsets
	validity    *validity
	meta        geoarrow.Metadata
}

// NewMultiPolygonArray constructs a multipolygon array from untrusted
// parts. Returns a layout error on any invariant violation.
func NewMultiPolygonArray(coords coord.Buffer, ringOffsets, polygonOffsets, geomOffsets []int32, validBits []byte) (*MultiPolygonArray, error) {
	ro, err := NewOffsets(ringOffsets, coords.Len())
	if err != nil {
		return nil, err
	}
	po, err := NewOffsets(polygonOffsets, ro.Len())
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
	return &MultiPolygonArray{
		coords:         coords,
		ringOffsets:    ro,
		polygonOffsets: po,
		geomOffsets:    gOff,
		validity:       v,
	}, nil
}

func (a *MultiPolygonArray) geometryArray() {}

// Type returns the array's full physical type.
func (a *MultiPolygonArray) Type() geoarrow.Type {
	return geoarrow.NewType(geoarrow.TypeMultiPolygon, a.coords.Dim(), a.coords.CoordType())
}

// Metadata returns the array's CRS metadata.
func (a *MultiPolygonArray) Metadata() geoarrow.Metadata { return a.meta }

// WithMetadata returns a copy of the array carrying the given CRS
// metadata. The copy shares all buffers.
func (a *MultiPolygonArray) WithMetadata(m geoarrow.Metadata) *MultiPolygonArray {
	c := *a
	c.meta = m
	return &c
}

func (a *MultiPolygonArray) setMetadata(m geoarrow.Metadata) { a.meta = m }

// Len returns the number of rows, nulls included.
func (a *MultiPolygonArray) Len() int { return a.geomOffsets.Len() }

// NullCount returns the number of null rows.
func (a *MultiPolygonArray) NullCount() int { return a.validity.nullCount() }

// IsNull reports whether row i is null. Panics if i is out of range.
func (a *MultiPolygonArray) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return !a.validity.isValid(i)
}

// Coords returns the array's coordinate buffer.
func (a *MultiPolygonArray) Coords() coord.Buffer { return a.coords }

// RingOffsets returns the innermost (ring to coordinate) offset
// layer.
func (a *MultiPolygonArray) RingOffsets() Offsets { return a.ringOffsets }

// PolygonOffsets returns the middle (polygon to ring) offset layer.
func (a *MultiPolygonArray) PolygonOffsets() Offsets { return a.polygonOffsets }

// GeomOffsets returns the outer (row to polygon) offset layer.
func (a *MultiPolygonArray) GeomOffsets() Offsets { return a.geomOffsets }

// Value returns a view of the multipolygon at row i. Panics if i is
// out of range.
func (a *MultiPolygonArray) Value(i int) MultiPolygonValue {
	checkIndex(i, a.Len())
	return MultiPolygonValue{
		coords:         a.coords,
		ringOffsets:    a.ringOffsets,
		polygonOffsets: a.polygonOffsets,
		start:          a.geomOffsets.Start(i),
		end:            a.geomOffsets.End(i),
	}
}

// Geometry returns a view of row i, or nil if the row is null.
func (a *MultiPolygonArray) Geometry(i int) geoarrow.Geometry {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

// Slice returns the O(1) zero-copy window [offset, offset+length).
// Panics if the window is out of bounds.
func (a *MultiPolygonArray) Slice(offset, length int) *MultiPolygonArray {
	checkWindow(offset, length, a.Len())
	return &MultiPolygonArray{
		coords:         a.coords,
		ringOffsets:    a.ringOffsets,
		polygonOffsets: a.polygonOffsets,
		geomOffsets:    a.geomOffsets.Slice(offset, length),
		validity:       a.validity.slice(offset, length),
		meta:           a.meta,
	}
}

// ToCoordType converts the array to the given coordinate layout,
// copying every coordinate if the layout differs.
func (a *MultiPolygonArray) ToCoordType(ct geoarrow.CoordType) *MultiPolygonArray {
	if ct == a.coords.CoordType() {
		return a
	}
	c := *a
	c.coords = a.coords.ToCoordType(ct)
	return &c
}

// MultiPolygonValue is a read-only view of one multipolygon. It
// implements geoarrow.MultiPolygon.
type MultiPolygonValue struct {
	coords         coord.Buffer
	ringOffsets    Offsets
	polygonOffsets Offsets
	start, end     int
}

// GeometryType returns geoarrow.TypeMultiPolygon.
func (v MultiPolygonValue) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPolygon }

// Dimension returns the multipolygon's coordinate dimension.
func (v MultiPolygonValue) Dimension() geoarrow.Dimension { return v.coords.Dim() }

// NumPolygons returns the number of member polygons.
func (v MultiPolygonValue) NumPolygons() int { return v.end - v.start }

// Polygon returns the i-th member polygon. Panics if i is out of
// range.
func (v MultiPolygonValue) Polygon(i int) geoarrow.Polygon {
	if i < 0 || i >= v.NumPolygons() {
		fmtPanic("multipolygon member %d out of range [0, %d)", i, v.NumPolygons())
	}
	p := v.start + i
	return PolygonValue{
		coords:      v.coords,
		ringOffsets: v.ringOffsets,
		start:       v.polygonOffsets.Start(p),
		end:         v.polygonOffsets.End(p),
	}
}

// MultiPolygonCapacity counts the buffer lengths a
// MultiPolygonBuilder needs.
type MultiPolygonCapacity struct {
	Coords   int
	Rings    int
	Polygons int
	Geoms    int
}

// AddMultiPolygon counts one multipolygon. A nil value counts a null
// row.
func (c *MultiPolygonCapacity) AddMultiPolygon(mp geoarrow.MultiPolygon) {
	if mp != nil {
		c.Polygons += mp.NumPolygons()
		for i := 0; i < mp.NumPolygons(); i++ {
			c.addRings(mp.Polygon(i))
		}
	}
	c.Geoms++
}

// AddPolygon counts one polygon promoted to a single-member
// multipolygon.
func (c *MultiPolygonCapacity) AddPolygon(p geoarrow.Polygon) {
	if p != nil {
		c.Polygons++
		c.addRings(p)
	}
	c.Geoms++
}

func (c *MultiPolygonCapacity) addRings(p geoarrow.Polygon) {
	if ext, ok := p.Exterior(); ok {
		c.Rings += 1 + p.NumInteriors()
		c.Coords += ext.NumCoords()
		for i := 0; i < p.NumInteriors(); i++ {
			c.Coords += p.Interior(i).NumCoords()
		}
	}
}

// AddGeometry counts one geometry of any kind representable by a
// multipolygon array: a multipolygon, or a polygon, rect, or triangle
// promoted to a single-member multipolygon. A nil geometry counts a
// null row. Returns an error wrapping geoarrow.ErrIncorrectType for
// other kinds.
func (c *MultiPolygonCapacity) AddGeometry(g geoarrow.Geometry) error {
	if mp, ok := g.(geoarrow.MultiPolygon); ok {
		c.AddMultiPolygon(mp)
		return nil
	}
	p, err := asPolygonal(g)
	if err != nil {
		return typeErr("cannot count %s in multipolygon capacity", g.GeometryType())
	}
	if p == nil {
		c.AddMultiPolygon(nil)
	} else {
		c.AddPolygon(p)
	}
	return nil
}

// Add returns the sum of two capacities.
func (c MultiPolygonCapacity) Add(o MultiPolygonCapacity) MultiPolygonCapacity {
	return MultiPolygonCapacity{
		Coords:   c.Coords + o.Coords,
		Rings:    c.Rings + o.Rings,
		Polygons: c.Polygons + o.Polygons,
		Geoms:    c.Geoms + o.Geoms,
	}
}

// MultiPolygonBuilder is the mutable counterpart of
// MultiPolygonArray. Push appends one complete multipolygon at a
// time, driving all three offset layers internally.
type MultiPolygonBuilder struct {
	coords         *coord.Builder
	ringOffsets    offsetsBuilder
	polygonOffsets offsetsBuilder
	geomOffsets    offsetsBuilder
	validity       validityBuilder
}

// NewMultiPolygonBuilder creates an empty builder for the given
// dimension and coordinate layout.
func NewMultiPolygonBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *MultiPolygonBuilder {
	return NewMultiPolygonBuilderWithCapacity(dim, ct, MultiPolygonCapacity{})
}

// NewMultiPolygonBuilderWithCapacity creates a builder pre-sized so
// that pushing the sequence counted by c causes no buffer growth.
func NewMultiPolygonBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, c MultiPolygonCapacity) *MultiPolygonBuilder {
	return &MultiPolygonBuilder{
		coords:         coord.NewBuilderWithCapacity(dim, ct, c.Coords),
		ringOffsets:    newOffsetsBuilder(c.Rings),
		polygonOffsets: newOffsetsBuilder(c.Polygons),
		geomOffsets:    newOffsetsBuilder(c.Geoms),
		validity:       newValidityBuilder(c.Geoms),
	}
}

// Reserve ensures space for the additional sequence counted by c.
func (b *MultiPolygonBuilder) Reserve(c MultiPolygonCapacity) {
	b.coords.Reserve(c.Coords)
	b.ringOffsets.reserve(c.Rings)
	b.polygonOffsets.reserve(c.Polygons)
	b.geomOffsets.reserve(c.Geoms)
	b.validity.reserve(c.Geoms)
}

// Len returns the number of rows pushed so far.
func (b *MultiPolygonBuilder) Len() int { return b.geomOffsets.length() }

// Push appends one multipolygon. A nil value appends a null row.
func (b *MultiPolygonBuilder) Push(mp geoarrow.MultiPolygon) {
	if mp == nil {
		b.PushNull()
		return
	}
	for i, n := 0, mp.NumPolygons(); i < n; i++ {
		b.pushPolygon(mp.Polygon(i))
	}
	b.geomOffsets.closeRun(b.polygonOffsets.length())
	b.validity.append(true)
}

// PushPolygon appends one polygon promoted to a single-member
// multipolygon. A nil polygon appends an empty row.
func (b *MultiPolygonBuilder) PushPolygon(p geoarrow.Polygon) {
	if p != nil {
		b.pushPolygon(p)
	}
	b.geomOffsets.closeRun(b.polygonOffsets.length())
	b.validity.append(true)
}

// PushGeometry appends one geometry of any kind representable by a
// multipolygon array. A nil geometry appends a null row. Returns an
// error wrapping geoarrow.ErrIncorrectType for other kinds, leaving
// the builder unchanged.
func (b *MultiPolygonBuilder) PushGeometry(g geoarrow.Geometry) error {
	if mp, ok := g.(geoarrow.MultiPolygon); ok {
		b.Push(mp)
		return nil
	}
	p, err := asPolygonal(g)
	if err != nil {
		return typeErr("cannot push %s into multipolygon builder", g.GeometryType())
	}
	if p == nil {
		b.PushNull()
	} else {
		b.PushPolygon(p)
	}
	return nil
}

// PushNull appends one null row.
func (b *MultiPolygonBuilder) PushNull() {
	b.geomOffsets.closeRun(b.polygonOffsets.length())
	b.validity.append(false)
}

func (b *MultiPolygonBuilder) pushPolygon(p geoarrow.Polygon) {
	if ext, ok := p.Exterior(); ok {
		b.pushRing(ext)
		for i := 0; i < p.NumInteriors(); i++ {
			b.pushRing(p.Interior(i))
		}
	}
	b.polygonOffsets.closeRun(b.ringOffsets.length())
}

func (b *MultiPolygonBuilder) pushRing(ring geoarrow.LineString) {
	for i, n := 0, ring.NumCoords(); i < n; i++ {
		b.coords.Push(ring.Coord(i))
	}
	b.ringOffsets.closeRun(b.coords.Len())
}

// Finish converts the builder to an immutable MultiPolygonArray. It
// is infallible and O(1). The builder must not be used afterward.
func (b *MultiPolygonBuilder) Finish() *MultiPolygonArray {
	return &MultiPolygonArray{
		coords:         b.coords.Finish(),
		ringOffsets:    b.ringOffsets.finish(),
		polygonOffsets: b.polygonOffsets.finish(),
		geomOffsets:    b.geomOffsets.finish(),
		validity:       b.validity.finish(),
	}
}
