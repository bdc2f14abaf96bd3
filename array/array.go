// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package array implements immutable, Arrow-compatible geometry
// arrays: one concrete type per geometry kind, each a coordinate
// buffer plus zero or more offset layers plus an optional nullability
// bitmap, together with the Builder and Capacity types used to
// construct them in two passes with exact allocation.
//
// Arrays are immutable after construction and cheap to share: slicing
// re-windows offsets and validity bits and never copies coordinates.
// Concurrent readers need no synchronization.
package array

import (
	"github.com/gogama/geoarrow"
)

// Array is the dynamic, type-erased handle over any concrete geometry
// array kind. The set of implementations is closed: PointArray,
// LineStringArray, PolygonArray, MultiPointArray,
// MultiLineStringArray, MultiPolygonArray, GeometryCollectionArray,
// RectArray, and MixedArray. Kind-agnostic code dispatches with an
// exhaustive type switch over these nine types, or downcasts with the
// As functions, which return an error wrapping
// geoarrow.ErrIncorrectType rather than panicking.
type Array interface {
	// Type returns the array's full physical type: geometry kind,
	// dimension, and coordinate layout.
	Type() geoarrow.Type
	// Metadata returns the array's CRS metadata handle.
	Metadata() geoarrow.Metadata
	// Len returns the number of geometries, nulls included.
	Len() int
	// NullCount returns the number of null geometries.
	NullCount() int
	// IsNull reports whether row i is null. Panics if i is out of
	// range.
	IsNull(i int) bool
	// Geometry returns a read-only view of row i, or nil if the row
	// is null. Panics if i is out of range.
	Geometry(i int) geoarrow.Geometry

	// geometryArray closes the implementation set to this package.
	geometryArray()
}

// NewSlice returns the O(1) zero-copy window [offset, offset+length)
// of any array. Only offset and validity views are re-based;
// coordinates are never copied. Panics if the window is out of
// bounds.
func NewSlice(a Array, offset, length int) Array {
	switch v := a.(type) {
	case *PointArray:
		return v.Slice(offset, length)
	case *LineStringArray:
		return v.Slice(offset, length)
	case *PolygonArray:
		return v.Slice(offset, length)
	case *MultiPointArray:
		return v.Slice(offset, length)
	case *MultiLineStringArray:
		return v.Slice(offset, length)
	case *MultiPolygonArray:
		return v.Slice(offset, length)
	case *GeometryCollectionArray:
		return v.Slice(offset, length)
	case *RectArray:
		return v.Slice(offset, length)
	case *MixedArray:
		return v.Slice(offset, length)
	default:
		fmtPanic("unknown array implementation %T", a)
		return nil
	}
}

// ToCoordType converts any array to the given coordinate layout. If
// the layout already matches, the array is returned unchanged;
// otherwise every coordinate is copied.
func ToCoordType(a Array, ct geoarrow.CoordType) Array {
	switch v := a.(type) {
	case *PointArray:
		return v.ToCoordType(ct)
	case *LineStringArray:
		return v.ToCoordType(ct)
	case *PolygonArray:
		return v.ToCoordType(ct)
	case *MultiPointArray:
		return v.ToCoordType(ct)
	case *MultiLineStringArray:
		return v.ToCoordType(ct)
	case *MultiPolygonArray:
		return v.ToCoordType(ct)
	case *GeometryCollectionArray:
		return v.ToCoordType(ct)
	case *RectArray:
		return v.ToCoordType(ct)
	case *MixedArray:
		return v.ToCoordType(ct)
	default:
		fmtPanic("unknown array implementation %T", a)
		return nil
	}
}

// AsPoint downcasts a dynamic array handle to *PointArray.
func AsPoint(a Array) (*PointArray, error) {
	if v, ok := a.(*PointArray); ok {
		return v, nil
	}
	return nil, typeErr("array is %s, not Point", a.Type().Geometry())
}

// AsLineString downcasts a dynamic array handle to *LineStringArray.
func AsLineString(a Array) (*LineStringArray, error) {
	if v, ok := a.(*LineStringArray); ok {
		return v, nil
	}
	return nil, typeErr("array is %s, not LineString", a.Type().Geometry())
}

// AsPolygon downcasts a dynamic array handle to *PolygonArray.
func AsPolygon(a Array) (*PolygonArray, error) {
	if v, ok := a.(*PolygonArray); ok {
		return v, nil
	}
	return nil, typeErr("array is %s, not Polygon", a.Type().Geometry())
}

// AsMultiPoint downcasts a dynamic array handle to *MultiPointArray.
func AsMultiPoint(a Array) (*MultiPointArray, error) {
	if v, ok := a.(*MultiPointArray); ok {
		return v, nil
	}
	return nil, typeErr("array is %s, not MultiPoint", a.Type().Geometry())
}

// AsMultiLineString downcasts a dynamic array handle to
// *MultiLineStringArray.
func AsMultiLineString(a Array) (*MultiLineStringArray, error) {
	if v, ok := a.(*MultiLineStringArray); ok {
		return v, nil
	}
	return nil, typeErr("array is %s, not MultiLineString", a.Type().Geometry())
}

// AsMultiPolygon downcasts a dynamic array handle to
// *MultiPolygonArray.
func AsMultiPolygon(a Array) (*MultiPolygonArray, error) {
	if v, ok := a.(*MultiPolygonArray); ok {
		return v, nil
	}
	return nil, typeErr("array is %s, not MultiPolygon", a.Type().Geometry())
}

// AsGeometryCollection downcasts a dynamic array handle to
// *GeometryCollectionArray.
func AsGeometryCollection(a Array) (*GeometryCollectionArray, error) {
	if v, ok := a.(*GeometryCollectionArray); ok {
		return v, nil
	}
	return nil, typeErr("array is %s, not GeometryCollection", a.Type().Geometry())
}

// AsRect downcasts a dynamic array handle to *RectArray.
func AsRect(a Array) (*RectArray, error) {
	if v, ok := a.(*RectArray); ok {
		return v, nil
	}
	return nil, typeErr("array is %s, not Rect", a.Type().Geometry())
}

// AsMixed downcasts a dynamic array handle to *MixedArray.
func AsMixed(a Array) (*MixedArray, error) {
	if v, ok := a.(*MixedArray); ok {
		return v, nil
	}
	return nil, typeErr("array is %s, not Mixed", a.Type().Geometry())
}

// checkIndex panics if i is not a valid row index for an array of n
// rows.
func checkIndex(i, n int) {
	if i < 0 || i >= n {
		fmtPanic("row index %d out of range [0, %d)", i, n)
	}
}

// checkWindow panics if [offset, offset+length) is not a valid window
// of an array of n rows.
func checkWindow(offset, length, n int) {
	if offset < 0 || length < 0 || offset+length > n {
		fmtPanic("slice [%d, %d+%d) out of range [0, %d)", offset, offset, length, n)
	}
}
