// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"math"

	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// Plain struct implementations of the geometry accessor interfaces,
// used to feed builders without depending on any other producer.

type testPoint struct {
	dim geoarrow.Dimension
	c   geoarrow.Coord // nil means empty
}

func (p testPoint) GeometryType() geoarrow.GeometryType { return geoarrow.TypePoint }
func (p testPoint) Dimension() geoarrow.Dimension       { return p.dim }

func (p testPoint) Coord() (geoarrow.Coord, bool) {
	if p.c == nil {
		return nil, false
	}
	return p.c, true
}

func point(x, y float64) testPoint {
	return testPoint{dim: geoarrow.XY, c: coord.NewView(geoarrow.XY, x, y)}
}

func pointZ(x, y, z float64) testPoint {
	return testPoint{dim: geoarrow.XYZ, c: coord.NewView(geoarrow.XYZ, x, y, z)}
}

func emptyPoint(dim geoarrow.Dimension) testPoint {
	return testPoint{dim: dim}
}

type testLine struct {
	dim    geoarrow.Dimension
	coords []geoarrow.Coord
}

func (l testLine) GeometryType() geoarrow.GeometryType { return geoarrow.TypeLineString }
func (l testLine) Dimension() geoarrow.Dimension       { return l.dim }
func (l testLine) NumCoords() int                      { return len(l.coords) }
func (l testLine) Coord(i int) geoarrow.Coord          { return l.coords[i] }

// line builds an XY linestring from flat x, y pairs.
func line(values ...float64) testLine {
	return testLine{dim: geoarrow.XY, coords: xyCoords(values...)}
}

func xyCoords(values ...float64) []geoarrow.Coord {
	coords := make([]geoarrow.Coord, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		coords = append(coords, coord.NewView(geoarrow.XY, values[i], values[i+1]))
	}
	return coords
}

type testPolygon struct {
	dim   geoarrow.Dimension
	rings []testLine
}

func (p testPolygon) GeometryType() geoarrow.GeometryType { return geoarrow.TypePolygon }
func (p testPolygon) Dimension() geoarrow.Dimension       { return p.dim }

func (p testPolygon) Exterior() (geoarrow.LineString, bool) {
	if len(p.rings) == 0 {
		return nil, false
	}
	return p.rings[0], true
}

func (p testPolygon) NumInteriors() int { return len(p.rings[1:]) }

func (p testPolygon) Interior(i int) geoarrow.LineString { return p.rings[i+1] }

// polygon builds an XY polygon from one flat x, y ring per argument.
func polygon(rings ...[]float64) testPolygon {
	p := testPolygon{dim: geoarrow.XY}
	for _, ring := range rings {
		p.rings = append(p.rings, line(ring...))
	}
	return p
}

type testMultiPoint struct {
	dim    geoarrow.Dimension
	points []geoarrow.Point
}

func (m testMultiPoint) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPoint }
func (m testMultiPoint) Dimension() geoarrow.Dimension       { return m.dim }
func (m testMultiPoint) NumPoints() int                      { return len(m.points) }
func (m testMultiPoint) Point(i int) geoarrow.Point          { return m.points[i] }

type testMultiLine struct {
	dim   geoarrow.Dimension
	lines []geoarrow.LineString
}

func (m testMultiLine) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiLineString }
func (m testMultiLine) Dimension() geoarrow.Dimension       { return m.dim }
func (m testMultiLine) NumLineStrings() int                 { return len(m.lines) }
func (m testMultiLine) LineString(i int) geoarrow.LineString {
	return m.lines[i]
}

type testMultiPolygon struct {
	dim      geoarrow.Dimension
	polygons []geoarrow.Polygon
}

func (m testMultiPolygon) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPolygon }
func (m testMultiPolygon) Dimension() geoarrow.Dimension       { return m.dim }
func (m testMultiPolygon) NumPolygons() int                    { return len(m.polygons) }
func (m testMultiPolygon) Polygon(i int) geoarrow.Polygon      { return m.polygons[i] }

type testCollection struct {
	dim     geoarrow.Dimension
	members []geoarrow.Geometry
}

func (c testCollection) GeometryType() geoarrow.GeometryType {
	return geoarrow.TypeGeometryCollection
}
func (c testCollection) Dimension() geoarrow.Dimension { return c.dim }
func (c testCollection) NumGeometries() int            { return len(c.members) }
func (c testCollection) Geom(i int) geoarrow.Geometry  { return c.members[i] }

type testRect struct {
	dim      geoarrow.Dimension
	min, max geoarrow.Coord
}

func (r testRect) GeometryType() geoarrow.GeometryType { return geoarrow.TypeRect }
func (r testRect) Dimension() geoarrow.Dimension       { return r.dim }
func (r testRect) Min() geoarrow.Coord                 { return r.min }
func (r testRect) Max() geoarrow.Coord                 { return r.max }

func rect(minX, minY, maxX, maxY float64) testRect {
	return testRect{
		dim: geoarrow.XY,
		min: coord.NewView(geoarrow.XY, minX, minY),
		max: coord.NewView(geoarrow.XY, maxX, maxY),
	}
}

func emptyRect(dim geoarrow.Dimension) testRect {
	nan := math.NaN()
	return testRect{
		dim: dim,
		min: coord.NewView(dim, nan, nan, nan, nan),
		max: coord.NewView(dim, nan, nan, nan, nan),
	}
}

// interleavedXY wraps a flat x, y slice as a coordinate buffer, failing
// the construction by panic since test inputs are well formed.
func interleavedXY(values ...float64) coord.Buffer {
	b, err := coord.NewInterleaved(values, geoarrow.XY)
	if err != nil {
		panic(err)
	}
	return b
}
