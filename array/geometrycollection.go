// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/gogama/geoarrow"
)

// GeometryCollectionArray is an immutable array of geometry
// collections: one offset layer partitioning a mixed child array into
// rows, plus an optional nullability bitmap.
type GeometryCollectionArray struct {
	mixed    *MixedArray
	offsets  Offsets
	validity *validity
	meta     geoarrow.Metadata
}

// NewGeometryCollectionArray constructs a geometry collection array
// from untrusted parts. Returns a layout error on any invariant
// violation.
func NewGeometryCollectionArray(mixed *MixedArray, offsets []int32, validBits []byte) (*GeometryCollectionArray, error) {
	if mixed == nil {
		return nil, layoutErr("geometry collection array requires a mixed child")
	}
	o, err := NewOffsets(offsets, mixed.Len())
	if err != nil {
		return nil, err
	}
	v, err := newValidity(validBits, o.Len())
	if err != nil {
		return nil, err
	}
	return &GeometryCollectionArray{mixed: mixed, offsets: o, validity: v}, nil
}

func (a *GeometryCollectionArray) geometryArray() {}

// Type returns the array's full physical type.
func (a *GeometryCollectionArray) Type() geoarrow.Type {
	return geoarrow.NewType(geoarrow.TypeGeometryCollection, a.mixed.dim, a.mixed.coordType)
}

// Metadata returns the array's CRS metadata.
func (a *GeometryCollectionArray) Metadata() geoarrow.Metadata { return a.meta }

// WithMetadata returns a copy of the array carrying the given CRS
// metadata. The copy shares all buffers.
func (a *GeometryCollectionArray) WithMetadata(m geoarrow.Metadata) *GeometryCollectionArray {
	c := *a
	c.meta = m
	return &c
}

func (a *GeometryCollectionArray) setMetadata(m geoarrow.Metadata) { a.meta = m }

// Len returns the number of rows, nulls included.
func (a *GeometryCollectionArray) Len() int { return a.offsets.Len() }

// NullCount returns the number of null rows.
func (a *GeometryCollectionArray) NullCount() int { return a.validity.nullCount() }

// IsNull reports whether row i is null. Panics if i is out of range.
func (a *GeometryCollectionArray) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return !a.validity.isValid(i)
}

// Mixed returns the mixed child array holding the member geometries
// of every row.
func (a *GeometryCollectionArray) Mixed() *MixedArray { return a.mixed }

// Offsets returns the row offset layer.
func (a *GeometryCollectionArray) Offsets() Offsets { return a.offsets }

// Value returns a view of the collection at row i. Panics if i is out
// of range.
func (a *GeometryCollectionArray) Value(i int) GeometryCollectionValue {
	checkIndex(i, a.Len())
	return GeometryCollectionValue{mixed: a.mixed, start: a.offsets.Start(i), end: a.offsets.End(i)}
}

// Geometry returns a view of row i, or nil if the row is null.
func (a *GeometryCollectionArray) Geometry(i int) geoarrow.Geometry {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

// Slice returns the O(1) zero-copy window [offset, offset+length).
// Panics if the window is out of bounds.
func (a *GeometryCollectionArray) Slice(offset, length int) *GeometryCollectionArray {
	checkWindow(offset, length, a.Len())
	return &GeometryCollectionArray{
		mixed:    a.mixed,
		offsets:  a.offsets.Slice(offset, length),
		validity: a.validity.slice(offset, length),
		meta:     a.meta,
	}
}

// ToCoordType converts the array to the given coordinate layout,
// copying every coordinate if the layout differs.
func (a *GeometryCollectionArray) ToCoordType(ct geoarrow.CoordType) *GeometryCollectionArray {
	if ct == a.mixed.coordType {
		return a
	}
	c := *a
	c.mixed = a.mixed.ToCoordType(ct)
	return &c
}

// GeometryCollectionValue is a read-only view of one geometry
// collection. It implements geoarrow.GeometryCollection.
type GeometryCollectionValue struct {
	mixed      *MixedArray
	start, end int
}

// GeometryType returns geoarrow.TypeGeometryCollection.
func (v GeometryCollectionValue) GeometryType() geoarrow.GeometryType {
	return geoarrow.TypeGeometryCollection
}

// Dimension returns the collection's coordinate dimension.
func (v GeometryCollectionValue) Dimension() geoarrow.Dimension { return v.mixed.dim }

// NumGeometries returns the number of member geometries.
func (v GeometryCollectionValue) NumGeometries() int { return v.end - v.start }

// Geom returns the i-th member geometry. Panics if i is out of range.
func (v GeometryCollectionValue) Geom(i int) geoarrow.Geometry {
	if i < 0 || i >= v.NumGeometries() {
		fmtPanic("collection member %d out of range [0, %d)", i, v.NumGeometries())
	}
	return v.mixed.Value(v.start + i)
}

// GeometryCollectionCapacity counts the buffer lengths a
// GeometryCollectionBuilder needs: a mixed capacity for the members
// plus the row count.
type GeometryCollectionCapacity struct {
	Mixed MixedCapacity
	Geoms int
}

// AddGeometryCollection counts one collection. A nil value counts a
// null row. Returns an error wrapping geoarrow.ErrIncorrectType if a
// member is itself a collection; nesting is not representable.
func (c *GeometryCollectionCapacity) AddGeometryCollection(gc geoarrow.GeometryCollection) error {
	if gc != nil {
		for i := 0; i < gc.NumGeometries(); i++ {
			if err := c.Mixed.AddGeometry(gc.Geom(i)); err != nil {
				return err
			}
		}
	}
	c.Geoms++
	return nil
}

// AddGeometry counts one geometry: a collection as itself, any other
// kind as a single-member collection. A nil geometry counts a null
// row.
func (c *GeometryCollectionCapacity) AddGeometry(g geoarrow.Geometry) error {
	if g == nil {
		return c.AddGeometryCollection(nil)
	}
	if gc, ok := g.(geoarrow.GeometryCollection); ok {
		return c.AddGeometryCollection(gc)
	}
	if err := c.Mixed.AddGeometry(g); err != nil {
		return err
	}
	c.Geoms++
	return nil
}

// Add returns the sum of two capacities.
func (c GeometryCollectionCapacity) Add(o GeometryCollectionCapacity) GeometryCollectionCapacity {
	return GeometryCollectionCapacity{Mixed: c.Mixed.Add(o.Mixed), Geoms: c.Geoms + o.Geoms}
}

// GeometryCollectionBuilder is the mutable counterpart of
// GeometryCollectionArray.
type GeometryCollectionBuilder struct {
	mixed    *MixedBuilder
	offsets  offsetsBuilder
	validity validityBuilder
}

// NewGeometryCollectionBuilder creates an empty builder for the given
// dimension and coordinate layout.
func NewGeometryCollectionBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *GeometryCollectionBuilder {
	return NewGeometryCollectionBuilderWithCapacity(dim, ct, GeometryCollectionCapacity{})
}

// NewGeometryCollectionBuilderWithCapacity creates a builder pre-sized
// so that pushing the sequence counted by c causes no buffer growth.
func NewGeometryCollectionBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, c GeometryCollectionCapacity) *GeometryCollectionBuilder {
	return &GeometryCollectionBuilder{
		mixed:    NewMixedBuilderWithCapacity(dim, ct, c.Mixed),
		offsets:  newOffsetsBuilder(c.Geoms),
		validity: newValidityBuilder(c.Geoms),
	}
}

// Len returns the number of rows pushed so far.
func (b *GeometryCollectionBuilder) Len() int { return b.offsets.length() }

// Push appends one collection. A nil value appends a null row.
// Returns an error wrapping geoarrow.ErrIncorrectType if a member is
// itself a collection; in that case the row is not appended, but
// members pushed before the offending one remain in the child and the
// builder should be discarded.
func (b *GeometryCollectionBuilder) Push(gc geoarrow.GeometryCollection) error {
	if gc == nil {
		b.PushNull()
		return nil
	}
	for i := 0; i < gc.NumGeometries(); i++ {
		if err := b.mixed.Push(gc.Geom(i)); err != nil {
			return err
		}
	}
	b.offsets.closeRun(b.mixed.Len())
	b.validity.append(true)
	return nil
}

// PushGeometry appends one geometry: a collection as itself, any
// other representable kind as a single-member collection. A nil
// geometry appends a null row.
func (b *GeometryCollectionBuilder) PushGeometry(g geoarrow.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	if gc, ok := g.(geoarrow.GeometryCollection); ok {
		return b.Push(gc)
	}
	if err := b.mixed.Push(g); err != nil {
		return err
	}
	b.offsets.closeRun(b.mixed.Len())
	b.validity.append(true)
	return nil
}

// PushNull appends one null row.
func (b *GeometryCollectionBuilder) PushNull() {
	b.offsets.closeRun(b.mixed.Len())
	b.validity.append(false)
}

// Finish converts the builder to an immutable
// GeometryCollectionArray. It is infallible and O(1). The builder
// must not be used afterward.
func (b *GeometryCollectionBuilder) Finish() *GeometryCollectionArray {
	return &GeometryCollectionArray{
		mixed:    b.mixed.Finish(),
		offsets:  b.offsets.finish(),
		validity: b.validity.finish(),
	}
}
