// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoarrow

// This file defines the read-only geometry accessor interfaces. They
// are the boundary between the columnar core and everything that
// consumes or produces geometries: native array views, WKB views, and
// go-geom adapters all implement them, so algorithms and builders are
// source-agnostic.
//
// All views are lightweight handles borrowing the underlying storage.
// They are valid only while that storage is alive and must not be
// retained across a builder reset.

// Coord is a read-only view of a single coordinate.
//
// Z and M return false for dimensions that do not carry the axis.
type Coord interface {
	X() float64
	Y() float64
	Z() (float64, bool)
	M() (float64, bool)
}

// Geometry is a read-only view of a single geometry value of any
// concrete kind. Downcast with a type switch over the kind interfaces
// (Point, LineString, ...) or consult GeometryType first.
type Geometry interface {
	GeometryType() GeometryType
	Dimension() Dimension
}

// Point is a read-only view of a point geometry.
type Point interface {
	Geometry
	// Coord returns the point's coordinate and true, or a zero view
	// and false if the point is empty. An empty point is stored as
	// all-NaN coordinates; callers comparing points must use this
	// method rather than comparing raw coordinates, because NaN
	// never compares equal to itself.
	Coord() (Coord, bool)
}

// LineString is a read-only view of a linestring geometry.
type LineString interface {
	Geometry
	NumCoords() int
	// Coord returns the i-th coordinate. Panics if i is out of range.
	Coord(i int) Coord
}

// Polygon is a read-only view of a polygon geometry.
type Polygon interface {
	Geometry
	// Exterior returns the outer ring and true, or nil and false if
	// the polygon is empty (has no rings).
	Exterior() (LineString, bool)
	NumInteriors() int
	// Interior returns the i-th inner ring. Panics if i is out of
	// range.
	Interior(i int) LineString
}

// MultiPoint is a read-only view of a multipoint geometry.
type MultiPoint interface {
	Geometry
	NumPoints() int
	Point(i int) Point
}

// MultiLineString is a read-only view of a multilinestring geometry.
type MultiLineString interface {
	Geometry
	NumLineStrings() int
	LineString(i int) LineString
}

// MultiPolygon is a read-only view of a multipolygon geometry.
type MultiPolygon interface {
	Geometry
	NumPolygons() int
	Polygon(i int) Polygon
}

// GeometryCollection is a read-only view of a geometry collection.
type GeometryCollection interface {
	Geometry
	NumGeometries() int
	// Geom returns the i-th member geometry. Panics if i is out of
	// range.
	Geom(i int) Geometry
}

// Rect is a read-only view of an axis-aligned box geometry.
type Rect interface {
	Geometry
	Min() Coord
	Max() Coord
}

// Triangle is a read-only view of a three-corner polygonal geometry.
// No array kind stores triangles directly; the interface exists so
// that triangle-shaped values from external sources can flow into
// ring-based consumers through AsPolygon.
type Triangle interface {
	Geometry
	First() Coord
	Second() Coord
	Third() Coord
}
