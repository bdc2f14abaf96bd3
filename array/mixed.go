// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/gogama/geoarrow"
)

// MixedArray is an immutable array whose rows may each be any of the
// six simple kinds Point..MultiPolygon. It is stored like an Arrow
// dense union: a per-row int8 type id, a per-row int32 offset into the
// child array of that kind, and one child array per kind, each sized
// only to its own row count.
//
// The type id of a row is its kind's WKB base code 1..6 plus the
// +10/+20/+30 dimension offset, so a 2D polygon row has type id 3 and
// an XYZ polygon row has type id 13.
//
// All children share one dimension and one coordinate layout. A null
// row is a null row of the child it points at.
type MixedArray struct {
	dim       geoarrow.Dimension
	coordType geoarrow.CoordType
	// typeIDs and offsets are parallel, one entry per row. Both are
	// re-windowed by slicing; children are not.
	typeIDs []int8
	offsets []int32

	points           *PointArray
	lineStrings      *LineStringArray
	polygons         *PolygonArray
	multiPoints      *MultiPointArray
	multiLineStrings *MultiLineStringArray
	multiPolygons    *MultiPolygonArray

	nulls int
	meta  geoarrow.Metadata
}

// mixedTypeID returns the dense-union type id for a kind and
// dimension.
func mixedTypeID(t geoarrow.GeometryType, d geoarrow.Dimension) int8 {
	return int8(geoarrow.WKBCode(t, d))
}

// splitMixedTypeID splits a dense-union type id into kind and
// dimension. Returns an error wrapping geoarrow.ErrIncorrectType for
// ids outside the Point..MultiPolygon range.
func splitMixedTypeID(id int8) (geoarrow.GeometryType, geoarrow.Dimension, error) {
	t, d, err := geoarrow.ParseWKBCode(uint32(id))
	if err != nil {
		return 0, 0, err
	}
	if t == geoarrow.TypeGeometryCollection {
		return 0, 0, typeErr("geometry collection rows cannot appear in a mixed array")
	}
	return t, d, nil
}

// NewMixedArray constructs a mixed array from untrusted parts. A nil
// child is treated as empty; every type id must identify a child with
// enough rows, agree with dim, and lie in the Point..MultiPolygon
// range. Returns a layout error on any violation.
func NewMixedArray(dim geoarrow.Dimension, ct geoarrow.CoordType, typeIDs []int8, offsets []int32,
	points *PointArray, lineStrings *LineStringArray, polygons *PolygonArray,
	multiPoints *MultiPointArray, multiLineStrings *MultiLineStringArray,
	multiPolygons *MultiPolygonArray) (*MixedArray, error) {
	if len(typeIDs) != len(offsets) {
		return nil, layoutErr("mixed array has %d type ids but %d offsets", len(typeIDs), len(offsets))
	}
	a := &MixedArray{
		dim:              dim,
		coordType:        ct,
		typeIDs:          typeIDs,
		offsets:          offsets,
		points:           points,
		lineStrings:      lineStrings,
		polygons:         polygons,
		multiPoints:      multiPoints,
		multiLineStrings: multiLineStrings,
		multiPolygons:    multiPolygons,
	}
	for i, id := range typeIDs {
		t, d, err := splitMixedTypeID(id)
		if err != nil {
			return nil, layoutErr("row %d has invalid type id %d", i, id)
		}
		if d != dim {
			return nil, layoutErr("row %d type id %d has dimension %s, array is %s", i, id, d, dim)
		}
		child := a.child(t)
		if child == nil || int(offsets[i]) >= child.Len() || offsets[i] < 0 {
			return nil, layoutErr("row %d offset %d out of range of %s child", i, offsets[i], t)
		}
		if child.IsNull(int(offsets[i])) {
			a.nulls++
		}
	}
	return a, nil
}

// child returns the child array for a simple kind, or nil if absent.
func (a *MixedArray) child(t geoarrow.GeometryType) Array {
	switch t {
	case geoarrow.TypePoint:
		if a.points == nil {
			return nil
		}
		return a.points
	case geoarrow.TypeLineString:
		if a.lineStrings == nil {
			return nil
		}
		return a.lineStrings
	case geoarrow.TypePolygon:
		if a.polygons == nil {
			return nil
		}
		return a.polygons
	case geoarrow.TypeMultiPoint:
		if a.multiPoints == nil {
			return nil
		}
		return a.multiPoints
	case geoarrow.TypeMultiLineString:
		if a.multiLineStrings == nil {
			return nil
		}
		return a.multiLineStrings
	case geoarrow.TypeMultiPolygon:
		if a.multiPolygons == nil {
			return nil
		}
		return a.multiPolygons
	default:
		fmtPanic("no mixed child for %s", t)
		return nil
	}
}

func (a *MixedArray) geometryArray() {}

// Type returns the array's full physical type.
func (a *MixedArray) Type() geoarrow.Type {
	return geoarrow.NewType(geoarrow.TypeMixed, a.dim, a.coordType)
}

// Metadata returns the array's CRS metadata.
func (a *MixedArray) Metadata() geoarrow.Metadata { return a.meta }

// WithMetadata returns a copy of the array carrying the given CRS
// metadata. The copy shares all buffers.
func (a *MixedArray) WithMetadata(m geoarrow.Metadata) *MixedArray {
	c := *a
	c.meta = m
	return &c
}

func (a *MixedArray) setMetadata(m geoarrow.Metadata) { a.meta = m }

// Len returns the number of rows, nulls included.
func (a *MixedArray) Len() int { return len(a.typeIDs) }

// NullCount returns the number of null rows.
func (a *MixedArray) NullCount() int { return a.nulls }

// TypeIDs returns the per-row dense-union type ids. The caller must
// not mutate the slice.
func (a *MixedArray) TypeIDs() []int8 { return a.typeIDs }

// ChildOffsets returns the per-row offsets into the child arrays. The
// caller must not mutate the slice.
func (a *MixedArray) ChildOffsets() []int32 { return a.offsets }

// Child returns the child array holding rows of the given simple
// kind, or nil if the array has none. Returns an error wrapping
// geoarrow.ErrIncorrectType for kinds a mixed array cannot hold.
func (a *MixedArray) Child(t geoarrow.GeometryType) (Array, error) {
	if t < geoarrow.TypePoint || t > geoarrow.TypeMultiPolygon {
		return nil, typeErr("mixed array has no %s child", t)
	}
	return a.child(t), nil
}

// row resolves row i to its child array and child row index.
func (a *MixedArray) row(i int) (Array, int) {
	t, _, err := splitMixedTypeID(a.typeIDs[i])
	if err != nil {
		// Type ids were validated at construction.
		fmtPanic("corrupt type id %d at row %d", a.typeIDs[i], i)
	}
	return a.child(t), int(a.offsets[i])
}

// IsNull reports whether row i is null. Panics if i is out of range.
func (a *MixedArray) IsNull(i int) bool {
	checkIndex(i, a.Len())
	child, j := a.row(i)
	return child.IsNull(j)
}

// Value returns a view of the geometry at row i regardless of its
// null flag. Panics if i is out of range.
func (a *MixedArray) Value(i int) geoarrow.Geometry {
	checkIndex(i, a.Len())
	child, j := a.row(i)
	switch c := child.(type) {
	case *PointArray:
		return c.Value(j)
	case *LineStringArray:
		return c.Value(j)
	case *PolygonArray:
		return c.Value(j)
	case *MultiPointArray:
		return c.Value(j)
	case *MultiLineStringArray:
		return c.Value(j)
	case *MultiPolygonArray:
		return c.Value(j)
	default:
		fmtPanic("unknown mixed child %T", child)
		return nil
	}
}

// Geometry returns a view of row i, or nil if the row is null.
func (a *MixedArray) Geometry(i int) geoarrow.Geometry {
	if a.IsNull(i) {
		return nil
	}
	return a.Value(i)
}

// Slice returns the O(1) zero-copy window [offset, offset+length):
// the type id and offset views are re-windowed, the children are
// shared untouched. Panics if the window is out of bounds.
func (a *MixedArray) Slice(offset, length int) *MixedArray {
	checkWindow(offset, length, a.Len())
	c := *a
	c.typeIDs = a.typeIDs[offset : offset+length]
	c.offsets = a.offsets[offset : offset+length]
	c.nulls = 0
	for i := range c.typeIDs {
		if c.IsNull(i) {
			c.nulls++
		}
	}
	return &c
}

// ToCoordType converts the array to the given coordinate layout,
// copying every coordinate if the layout differs.
func (a *MixedArray) ToCoordType(ct geoarrow.CoordType) *MixedArray {
	if ct == a.coordType {
		return a
	}
	c := *a
	c.coordType = ct
	if a.points != nil {
		c.points = a.points.ToCoordType(ct)
	}
	if a.lineStrings != nil {
		c.lineStrings = a.lineStrings.ToCoordType(ct)
	}
	if a.polygons != nil {
		c.polygons = a.polygons.ToCoordType(ct)
	}
	if a.multiPoints != nil {
		c.multiPoints = a.multiPoints.ToCoordType(ct)
	}
	if a.multiLineStrings != nil {
		c.multiLineStrings = a.multiLineStrings.ToCoordType(ct)
	}
	if a.multiPolygons != nil {
		c.multiPolygons = a.multiPolygons.ToCoordType(ct)
	}
	return &c
}

// MixedCapacity counts the buffer lengths a MixedBuilder needs: one
// per-kind capacity for each child.
type MixedCapacity struct {
	Points           PointCapacity
	LineStrings      LineStringCapacity
	Polygons         PolygonCapacity
	MultiPoints      MultiPointCapacity
	MultiLineStrings MultiLineStringCapacity
	MultiPolygons    MultiPolygonCapacity
}

// Geoms returns the total number of rows counted across all children.
func (c MixedCapacity) Geoms() int {
	return c.Points.Geoms + c.LineStrings.Geoms + c.Polygons.Geoms +
		c.MultiPoints.Geoms + c.MultiLineStrings.Geoms + c.MultiPolygons.Geoms
}

// AddGeometry counts one geometry of any kind representable by a
// mixed array. A nil geometry counts a null row (stored in the point
// child). Returns an error wrapping geoarrow.ErrIncorrectType for
// geometry collections.
func (c *MixedCapacity) AddGeometry(g geoarrow.Geometry) error {
	switch v := g.(type) {
	case nil:
		c.Points.AddPoint(nil)
	case geoarrow.Point:
		c.Points.AddPoint(v)
	case geoarrow.LineString:
		c.LineStrings.AddLineString(v)
	case geoarrow.Polygon:
		c.Polygons.AddPolygon(v)
	case geoarrow.Rect:
		c.Polygons.AddPolygon(geoarrow.RectAsPolygon(v))
	case geoarrow.Triangle:
		c.Polygons.AddPolygon(geoarrow.TriangleAsPolygon(v))
	case geoarrow.MultiPoint:
		c.MultiPoints.AddMultiPoint(v)
	case geoarrow.MultiLineString:
		c.MultiLineStrings.AddMultiLineString(v)
	case geoarrow.MultiPolygon:
		c.MultiPolygons.AddMultiPolygon(v)
	default:
		return typeErr("cannot count %s in mixed capacity", g.GeometryType())
	}
	return nil
}

// Add returns the sum of two capacities.
func (c MixedCapacity) Add(o MixedCapacity) MixedCapacity {
	return MixedCapacity{
		Points:           c.Points.Add(o.Points),
		LineStrings:      c.LineStrings.Add(o.LineStrings),
		Polygons:         c.Polygons.Add(o.Polygons),
		MultiPoints:      c.MultiPoints.Add(o.MultiPoints),
		MultiLineStrings: c.MultiLineStrings.Add(o.MultiLineStrings),
		MultiPolygons:    c.MultiPolygons.Add(o.MultiPolygons),
	}
}

// MixedBuilder is the mutable counterpart of MixedArray.
type MixedBuilder struct {
	dim       geoarrow.Dimension
	coordType geoarrow.CoordType
	typeIDs   []int8
	offsets   []int32

	points           *PointBuilder
	lineStrings      *LineStringBuilder
	polygons         *PolygonBuilder
	multiPoints      *MultiPointBuilder
	multiLineStrings *MultiLineStringBuilder
	multiPolygons    *MultiPolygonBuilder
}

// NewMixedBuilder creates an empty builder for the given dimension and
// coordinate layout.
func NewMixedBuilder(dim geoarrow.Dimension, ct geoarrow.CoordType) *MixedBuilder {
	return NewMixedBuilderWithCapacity(dim, ct, MixedCapacity{})
}

// NewMixedBuilderWithCapacity creates a builder pre-sized so that
// pushing the sequence counted by c causes no buffer growth.
func NewMixedBuilderWithCapacity(dim geoarrow.Dimension, ct geoarrow.CoordType, c MixedCapacity) *MixedBuilder {
	return &MixedBuilder{
		dim:              dim,
		coordType:        ct,
		typeIDs:          make([]int8, 0, c.Geoms()),
		offsets:          make([]int32, 0, c.Geoms()),
		points:           NewPointBuilderWithCapacity(dim, ct, c.Points),
		lineStrings:      NewLineStringBuilderWithCapacity(dim, ct, c.LineStrings),
		polygons:         NewPolygonBuilderWithCapacity(dim, ct, c.Polygons),
		multiPoints:      NewMultiPointBuilderWithCapacity(dim, ct, c.MultiPoints),
		multiLineStrings: NewMultiLineStringBuilderWithCapacity(dim, ct, c.MultiLineStrings),
		multiPolygons:    NewMultiPolygonBuilderWithCapacity(dim, ct, c.MultiPolygons),
	}
}

// Len returns the number of rows pushed so far.
func (b *MixedBuilder) Len() int { return len(b.typeIDs) }

// Push appends one geometry of any kind representable by a mixed
// array: the six simple kinds, plus rects and triangles stored as
// their degenerate polygons. A nil geometry appends a null row.
// Returns an error wrapping geoarrow.ErrIncorrectType for geometry
// collections, leaving the builder unchanged.
func (b *MixedBuilder) Push(g geoarrow.Geometry) error {
	switch v := g.(type) {
	case nil:
		b.PushNull()
	case geoarrow.Point:
		b.mark(geoarrow.TypePoint, b.points.Len())
		b.points.Push(v)
	case geoarrow.LineString:
		b.mark(geoarrow.TypeLineString, b.lineStrings.Len())
		b.lineStrings.Push(v)
	case geoarrow.Polygon:
		b.mark(geoarrow.TypePolygon, b.polygons.Len())
		b.polygons.Push(v)
	case geoarrow.Rect:
		b.mark(geoarrow.TypePolygon, b.polygons.Len())
		b.polygons.Push(geoarrow.RectAsPolygon(v))
	case geoarrow.Triangle:
		b.mark(geoarrow.TypePolygon, b.polygons.Len())
		b.polygons.Push(geoarrow.TriangleAsPolygon(v))
	case geoarrow.MultiPoint:
		b.mark(geoarrow.TypeMultiPoint, b.multiPoints.Len())
		b.multiPoints.Push(v)
	case geoarrow.MultiLineString:
		b.mark(geoarrow.TypeMultiLineString, b.multiLineStrings.Len())
		b.multiLineStrings.Push(v)
	case geoarrow.MultiPolygon:
		b.mark(geoarrow.TypeMultiPolygon, b.multiPolygons.Len())
		b.multiPolygons.Push(v)
	default:
		return typeErr("cannot push %s into mixed builder", g.GeometryType())
	}
	return nil
}

// PushGeometry is an alias for Push, giving MixedBuilder the same
// generic push surface as the single-kind builders.
func (b *MixedBuilder) PushGeometry(g geoarrow.Geometry) error {
	return b.Push(g)
}

// PushNull appends one null row, stored as a null point.
func (b *MixedBuilder) PushNull() {
	b.mark(geoarrow.TypePoint, b.points.Len())
	b.points.PushNull()
}

func (b *MixedBuilder) mark(t geoarrow.GeometryType, childRow int) {
	b.typeIDs = append(b.typeIDs, mixedTypeID(t, b.dim))
	b.offsets = append(b.offsets, int32(childRow))
}

// Finish converts the builder to an immutable MixedArray. It is
// infallible and O(1) beyond the null recount. The builder must not
// be used afterward.
func (b *MixedBuilder) Finish() *MixedArray {
	a := &MixedArray{
		dim:              b.dim,
		coordType:        b.coordType,
		typeIDs:          b.typeIDs,
		offsets:          b.offsets,
		points:           b.points.Finish(),
		lineStrings:      b.lineStrings.Finish(),
		polygons:         b.polygons.Finish(),
		multiPoints:      b.multiPoints.Finish(),
		multiLineStrings: b.multiLineStrings.Finish(),
		multiPolygons:    b.multiPolygons.Finish(),
	}
	a.nulls = a.points.NullCount()
	return a
}
