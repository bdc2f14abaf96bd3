// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoarrow

import "math"

// CoordEqual reports whether two coordinate views carry identical
// values on every axis both of them have. A coordinate never equals a
// NaN coordinate; use PointEqual to compare points, which handles the
// NaN empty-point sentinel.
func CoordEqual(a, b Coord) bool {
	if a.X() != b.X() || a.Y() != b.Y() {
		return false
	}
	az, aok := a.Z()
	bz, bok := b.Z()
	if aok != bok || (aok && az != bz) {
		return false
	}
	am, aok := a.M()
	bm, bok := b.M()
	if aok != bok || (aok && am != bm) {
		return false
	}
	return true
}

// PointEqual reports whether two point views are equal. Two empty
// points are equal regardless of dimension of their NaN fill; an empty
// point never equals a non-empty one. This special case exists because
// empty points are stored as all-NaN coordinates and NaN never
// compares equal to itself.
func PointEqual(a, b Point) bool {
	ac, aok := a.Coord()
	bc, bok := b.Coord()
	if !aok || !bok {
		return aok == bok
	}
	return CoordEqual(ac, bc)
}

// LineStringEqual reports whether two linestring views carry identical
// coordinate sequences.
func LineStringEqual(a, b LineString) bool {
	if a.NumCoords() != b.NumCoords() {
		return false
	}
	for i := 0; i < a.NumCoords(); i++ {
		if !CoordEqual(a.Coord(i), b.Coord(i)) {
			return false
		}
	}
	return true
}

// PolygonEqual reports whether two polygon views carry identical ring
// structure and coordinates.
func PolygonEqual(a, b Polygon) bool {
	ae, aok := a.Exterior()
	be, bok := b.Exterior()
	if aok != bok {
		return false
	}
	if aok && !LineStringEqual(ae, be) {
		return false
	}
	if a.NumInteriors() != b.NumInteriors() {
		return false
	}
	for i := 0; i < a.NumInteriors(); i++ {
		if !LineStringEqual(a.Interior(i), b.Interior(i)) {
			return false
		}
	}
	return true
}

// RectEqual reports whether two rect views are equal. Two empty rects
// (all-NaN corners) are equal.
func RectEqual(a, b Rect) bool {
	if math.IsNaN(a.Min().X()) || math.IsNaN(b.Min().X()) {
		return math.IsNaN(a.Min().X()) == math.IsNaN(b.Min().X())
	}
	return CoordEqual(a.Min(), b.Min()) && CoordEqual(a.Max(), b.Max())
}

// GeometryEqual reports whether two geometry views of any concrete
// kind are equal: same kind and identical nested structure and
// coordinates, with empty points compared by the PointEqual rule. A
// Rect compares equal to a Polygon carrying its implied ring. A nil
// geometry equals only another nil geometry.
func GeometryEqual(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ar, ok := a.(Rect); ok {
		if br, ok := b.(Rect); ok {
			return RectEqual(ar, br)
		}
		a = RectAsPolygon(ar)
	} else if br, ok := b.(Rect); ok {
		b = RectAsPolygon(br)
	}
	if a.GeometryType() != b.GeometryType() {
		return false
	}
	switch av := a.(type) {
	case Point:
		bv, ok := b.(Point)
		return ok && PointEqual(av, bv)
	case LineString:
		bv, ok := b.(LineString)
		return ok && LineStringEqual(av, bv)
	case Polygon:
		bv, ok := b.(Polygon)
		return ok && PolygonEqual(av, bv)
	case MultiPoint:
		bv, ok := b.(MultiPoint)
		if !ok {
			return false
		}
		if av.NumPoints() != bv.NumPoints() {
			return false
		}
		for i := 0; i < av.NumPoints(); i++ {
			if !PointEqual(av.Point(i), bv.Point(i)) {
				return false
			}
		}
		return true
	case MultiLineString:
		bv, ok := b.(MultiLineString)
		if !ok {
			return false
		}
		if av.NumLineStrings() != bv.NumLineStrings() {
			return false
		}
		for i := 0; i < av.NumLineStrings(); i++ {
			if !LineStringEqual(av.LineString(i), bv.LineString(i)) {
				return false
			}
		}
		return true
	case MultiPolygon:
		bv, ok := b.(MultiPolygon)
		if !ok {
			return false
		}
		if av.NumPolygons() != bv.NumPolygons() {
			return false
		}
		for i := 0; i < av.NumPolygons(); i++ {
			if !PolygonEqual(av.Polygon(i), bv.Polygon(i)) {
				return false
			}
		}
		return true
	case GeometryCollection:
		bv, ok := b.(GeometryCollection)
		if !ok {
			return false
		}
		if av.NumGeometries() != bv.NumGeometries() {
			return false
		}
		for i := 0; i < av.NumGeometries(); i++ {
			if !GeometryEqual(av.Geom(i), bv.Geom(i)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
