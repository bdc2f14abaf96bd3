// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"math"

	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// RectArray is an immutable array of axis-aligned box geometries,
// stored as two parallel coordinate buffers holding each row's min and
// max corner. Like points, rects have no offset layer: null and empty
// rows occupy NaN-filled slots in both buffers to preserve the fixed
// stride.
type RectArray struct {
	min, max coord.Buffer
	validity *validity
	meta     geoarrow.Metadata
}

// NewRectArray constructs a rect array from untrusted parts. The two
// corner buffers must agree on length, dimension, and layout. Returns
// a layout error on mismatch.
func NewRectArray(min, max coord.Buffer, validBits []byte) (*RectArray, error) {
	if min.Len() != max.Len() {
		return nil, layoutErr("rect corner buffers have lengths %d and %d", min.Len(), max.Len())
	}
	if min.Dim() != max.Dim() {
		return nil, layoutErr("rect corner buffers have dimensions %s and %s", min.Dim(), max.Dim())
	}
	if min.CoordType() != max.CoordType() {
		return nil, layoutErr("rect corner buffers have layouts %s and %s", min.CoordType(), max.CoordType())
	}
	v, err := newValidity(validBits, min.Len())
	if err != nil {
		return nil, err
	}
	return &RectArray{min: min, max: max, validity: v}, nil
}

func (a *RectArray) geometryArray() {}

// Type returns the array's full physical type.
func (a *RectArray) Type() geoarrow.Type {
	return geoarrow.NewType(geoarrow.TypeRect, a.min.Dim(), a.min.CoordType())
}

// Metadata returns the array's CRS metadata.
func (a *RectArray) Metadata() geoarrow.Metadata { return a.meta }

// WithMetadata returns a copy of the array carrying the given CRS
// metadata. The copy shares all buffers.
func (a *RectArray) WithMetadata(m geoarrow.Metadata) *RectArray {
	c := *a
	c.meta = m
	return &c
}

func (a *RectArray) setMetadata(m geoarrow.Metadata) { a.meta = m }

// Len returns the number of rows, nulls included.
func (a *RectArray) Len() int { return a.min.Len() }

// NullCount returns the number of null rows.
func (a *RectArray) NullCount() int { return a.validity.nullCount() }

// IsNull reports whether row i is null. Panics if i is out of range.
func (a *RectArray) IsNull(i int) bool {
	checkIndex(i, a.Len())
	return !a.validity.isValid(i)
}

// MinCoords returns the buffer of min corners.
func (a *RectArray) MinCoords() coord.Buffer { return a.min }

// MaxCoords returns the buffer of max corners.
func (a *RectArray) MaxCoords() coord.Buffer { return a.max }

// Value returns a view of the rect at row i. For a null row the view
// is an empty rect. Panics if i is out of range.
func (a *RectArray) Value(i int) RectValue {
	checkIndex(i, a.Len())
	return RectValue{min: a.min.Value(i), max: a.max.Value(i)}
}

// Geometry returns a view of row i, or nil if the row is null.
func (a *RectArray) Geometry(i int) geoarrow.Geometry {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

// Slice returns the O(1) zero-copy window [offset, offset+length).
// Panics if the window is out of bounds.
func (a *RectArray) Slice(offset, length int) *RectArray {
	checkWindow(offset, length, a.Len())
	return &RectArray{
		min:      a.min.Slice(offset, length),
		max:      a.max.Slice(offset, length),
		validity: a.validity.slice(offset, length),
		meta:     a.meta,
	}
}

// ToCoordType converts the array to the given coordinate layout,
// copying every coordinate if the layout differs.
func (a *RectArray) ToCoordType(ct geoarrow.CoordType) *RectArray {
	if ct == a.min.CoordType() {
		return a
	}
	return &RectArray{min: a.min.ToCoordType(ct), max: a.max.ToCoordType(ct), validity: a.validity, meta: a.meta}
}

// RectValue is a read-only view of one axis-aligned box. It implements
// geoarrow.Rect; use geoarrow.RectAsPolygon to hand it to ring-based
// consumers.
type RectValue struct {
	min, max coord.View
}

// GeometryType returns geoarrow.TypeRect.
func (v RectValue) GeometryType() geoarrow.GeometryType { return geoarrow.TypeRect }

// Dimension returns the rect's coordinate dimension.
func (v RectValue) Dimension() geoarrow.Dimension { return v.min.Dim() }

// Min returns the min corner.
func (v RectValue) Min() geoarrow.Coord { return v.min }

// Max returns the max corner.
func (v RectValue) Max() geoarrow.Coord { return v.max }

// IsEmpty reports whether the rect is the NaN-filled empty sentinel.
func (v RectValue) IsEmpty() bool { return math.IsNaN(v.min.X()) }

// RectCapacity counts the buffer lengths a RectBuilder needs: one slot
// in each corner buffer per geometry, nulls included.
type RectCapacity struct {
	Geoms int
}

// AddRect counts one rect. A nil rect counts a null row.
func (c *RectCapacity) AddRect(r geoarrow.Rect) {
	c.Geoms++
}

// AddGeometry counts one geometry of any kind representable by a rect
// array. A nil geometry counts a null row. Returns an error wrapping
// geoarrow.ErrIncorrectType for other kinds.
func (c *RectCapacity) AddGeometry(g geoarrow.Geometry) error {
	if g != nil {
		if _, ok := g.(geoarrow.Rect); !ok {
			return typeErr("cannot count %s in rect capacity", g.GeometryType())
		}
	}
	c.Geoms++
	return nil
}

// Add returns the sum of two capacities.
func (c RectCapacity) Add(o RectCapacity) RectCapacity {
	return RectCapacity{Geoms: c.Geoms + o.Geoms}
}

// RectBuilder is the mutable counterpart of RectArray.
type RectBuilder struct {
	min, max *coord.Builder
	validity validityBuilder
}

// NewRectBuilder creates an empty builder for the given dimension and
// coordinate layout.
func NewRectBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *RectBuilder {
	return NewRectBuilderWithCapacity(dim, ct, RectCapacity{})
}

// NewRectBuilderWithCapacity creates a builder pre-sized so that
// pushing the sequence counted by c causes no buffer growth.
func NewRectBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, c RectCapacity) *RectBuilder {
	return &RectBuilder{
		min:      coord.NewBuilderWithCapacity(dim, ct, c.Geoms),
		max:      coord.NewBuilderWithCapacity(dim, ct, c.Geoms),
		validity: newValidityBuilder(c.Geoms),
	}
}

// Reserve ensures space for the additional sequence counted by c.
func (b *RectBuilder) Reserve(c RectCapacity) {
	b.min.Reserve(c.Geoms)
	b.max.Reserve(c.Geoms)
	b.validity.reserve(c.Geoms)
}

// Len returns the number of rows pushed so far.
func (b *RectBuilder) Len() int { return b.min.Len() }

// Push appends one rect. A nil rect appends a null row.
func (b *RectBuilder) Push(r geoarrow.Rect) {
	if r == nil {
		b.PushNull()
		return
	}
	b.min.Push(r.Min())
	b.max.Push(r.Max())
	b.validity.append(true)
}

// PushGeometry appends one geometry of any kind representable by a
// rect array. A nil geometry appends a null row. Returns an error
// wrapping geoarrow.ErrIncorrectType for other kinds, leaving the
// builder unchanged.
func (b *RectBuilder) PushGeometry(g geoarrow.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	r, ok := g.(geoarrow.Rect)
	if !ok {
		return typeErr("cannot push %s into rect builder", g.GeometryType())
	}
	b.Push(r)
	return nil
}

// PushNull appends one null row: a NaN-filled slot in both corner
// buffers with the validity bit clear.
func (b *RectBuilder) PushNull() {
	b.min.PushNaN()
	b.max.PushNaN()
	b.validity.append(false)
}

// Finish converts the builder to an immutable RectArray. It is
// infallible and O(1). The builder must not be used afterward.
func (b *RectBuilder) Finish() *RectArray {
	return &RectArray{min: b.min.Finish(), max: b.max.Finish(), validity: b.validity.finish()}
}
