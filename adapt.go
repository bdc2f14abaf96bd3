// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoarrow

import "math"

// RectAsPolygon exposes a Rect to ring-based consumers as a degenerate
// polygon: the exterior is the implied closed five-coordinate ring
// visiting the four corners counter-clockwise from (MinX, MinY), and
// there are no interior rings. The adapter is a view; it copies no
// coordinates.
//
// For dimensions carrying Z or M, the Max corner takes its Z/M values
// from Max and every other corner takes them from Min.
func RectAsPolygon(r Rect) Polygon {
	return rectPolygon{r}
}

// TriangleAsPolygon exposes a Triangle to ring-based consumers as a
// degenerate polygon whose exterior is the implied closed
// four-coordinate ring First, Second, Third, First.
func TriangleAsPolygon(t Triangle) Polygon {
	return trianglePolygon{t}
}

type rectPolygon struct {
	r Rect
}

func (p rectPolygon) GeometryType() GeometryType { return TypePolygon }
func (p rectPolygon) Dimension() Dimension       { return p.r.Dimension() }

func (p rectPolygon) Exterior() (LineString, bool) {
	if math.IsNaN(p.r.Min().X()) {
		return nil, false
	}
	return rectRing{p.r}, true
}

func (p rectPolygon) NumInteriors() int { return 0 }

func (p rectPolygon) Interior(i int) LineString {
	fmtPanic("rect polygon has no interior ring %d", i)
	return nil
}

type rectRing struct {
	r Rect
}

func (rr rectRing) GeometryType() GeometryType { return TypeLineString }
func (rr rectRing) Dimension() Dimension       { return rr.r.Dimension() }
func (rr rectRing) NumCoords() int             { return 5 }

func (rr rectRing) Coord(i int) Coord {
	min, max := rr.r.Min(), rr.r.Max()
	switch i {
	case 0, 4:
		return min
	case 1:
		return synthCoord{x: max.X(), y: min.Y(), rest: min}
	case 2:
		return max
	case 3:
		return synthCoord{x: min.X(), y: max.Y(), rest: min}
	default:
		fmtPanic("rect ring coordinate %d out of range [0, 5)", i)
		return nil
	}
}

// synthCoord is a coordinate synthesized from an explicit X/Y pair
// plus a source coordinate supplying any Z/M values.
type synthCoord struct {
	x, y float64
	rest Coord
}

func (c synthCoord) X() float64         { return c.x }
func (c synthCoord) Y() float64         { return c.y }
func (c synthCoord) Z() (float64, bool) { return c.rest.Z() }
func (c synthCoord) M() (float64, bool) { return c.rest.M() }

type trianglePolygon struct {
	t Triangle
}

func (p trianglePolygon) GeometryType() GeometryType { return TypePolygon }
func (p trianglePolygon) Dimension() Dimension       { return p.t.Dimension() }

func (p trianglePolygon) Exterior() (LineString, bool) {
	return triangleRing{p.t}, true
}

func (p trianglePolygon) NumInteriors() int { return 0 }

func (p trianglePolygon) Interior(i int) LineString {
	fmtPanic("triangle polygon has no interior ring %d", i)
	return nil
}

type triangleRing struct {
	t Triangle
}

func (tr triangleRing) GeometryType() GeometryType { return TypeLineString }
func (tr triangleRing) Dimension() Dimension       { return tr.t.Dimension() }
func (tr triangleRing) NumCoords() int             { return 4 }

func (tr triangleRing) Coord(i int) Coord {
	switch i {
	case 0, 3:
		return tr.t.First()
	case 1:
		return tr.t.Second()
	case 2:
		return tr.t.Third()
	default:
		fmtPanic("triangle ring coordinate %d out of range [0, 4)", i)
		return nil
	}
}
