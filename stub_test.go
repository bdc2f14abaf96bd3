// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoarrow

import "math"

// Plain struct implementations of the accessor interfaces, used to
// exercise equality and the degenerate-polygon adapters without
// pulling in the array machinery.

type stubCoord struct {
	x, y float64
	z, m []float64
}

func (c stubCoord) X() float64 { return c.x }
func (c stubCoord) Y() float64 { return c.y }

func (c stubCoord) Z() (float64, bool) {
	if len(c.z) > 0 {
		return c.z[0], true
	}
	return 0, false
}

func (c stubCoord) M() (float64, bool) {
	if len(c.m) > 0 {
		return c.m[0], true
	}
	return 0, false
}

func xy(x, y float64) stubCoord { return stubCoord{x: x, y: y} }

func xyz(x, y, z float64) stubCoord { return stubCoord{x: x, y: y, z: []float64{z}} }

type stubPoint struct {
	dim   Dimension
	coord Coord // nil means empty
}

func (p stubPoint) GeometryType() GeometryType { return TypePoint }
func (p stubPoint) Dimension() Dimension       { return p.dim }

func (p stubPoint) Coord() (Coord, bool) {
	if p.coord == nil {
		return nil, false
	}
	return p.coord, true
}

type stubLine struct {
	dim    Dimension
	coords []Coord
}

func (l stubLine) GeometryType() GeometryType { return TypeLineString }
func (l stubLine) Dimension() Dimension       { return l.dim }
func (l stubLine) NumCoords() int             { return len(l.coords) }
func (l stubLine) Coord(i int) Coord          { return l.coords[i] }

type stubPolygon struct {
	dim   Dimension
	rings [][]Coord
}

func (p stubPolygon) GeometryType() GeometryType { return TypePolygon }
func (p stubPolygon) Dimension() Dimension       { return p.dim }

func (p stubPolygon) Exterior() (LineString, bool) {
	if len(p.rings) == 0 {
		return nil, false
	}
	return stubLine{dim: p.dim, coords: p.rings[0]}, true
}

func (p stubPolygon) NumInteriors() int { return len(p.rings[1:]) }

func (p stubPolygon) Interior(i int) LineString {
	return stubLine{dim: p.dim, coords: p.rings[i+1]}
}

type stubRect struct {
	dim      Dimension
	min, max Coord
}

func (r stubRect) GeometryType() GeometryType { return TypeRect }
func (r stubRect) Dimension() Dimension       { return r.dim }
func (r stubRect) Min() Coord                 { return r.min }
func (r stubRect) Max() Coord                 { return r.max }

func emptyStubRect(dim Dimension) stubRect {
	nan := math.NaN()
	return stubRect{dim: dim, min: xy(nan, nan), max: xy(nan, nan)}
}

type stubTriangle struct {
	dim     Dimension
	a, b, c Coord
}

func (t stubTriangle) GeometryType() GeometryType { return TypePolygon }
func (t stubTriangle) Dimension() Dimension       { return t.dim }
func (t stubTriangle) First() Coord               { return t.a }
func (t stubTriangle) Second() Coord              { return t.b }
func (t stubTriangle) Third() Coord               { return t.c }
