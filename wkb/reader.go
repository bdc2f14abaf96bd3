// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package wkb reads and writes the Well-Known Binary geometry format.
//
// The reader produces typed views over the raw bytes: a single
// pre-scan records where each nested ring and part begins and how
// many coordinates it holds, and no coordinate is copied or decoded
// until it is accessed. The views implement the geoarrow accessor
// interfaces, so a WKB value can feed any array builder, and any
// array value can be written back out, without either side knowing
// the other's representation.
//
// Values are read in either byte order and written little-endian.
package wkb

import (
	"encoding/binary"
	"math"

	"github.com/gogama/geoarrow"
)

// Geometry is a parsed WKB value: a geometry view plus the exact
// number of bytes it occupied, so a packed sequence of values can be
// parsed without a separate offset table.
type Geometry interface {
	geoarrow.Geometry
	// Size returns the number of bytes the value occupies, header and
	// all nested parts included.
	Size() int
}

// Parse reads one WKB value from the start of data. Trailing bytes
// beyond the value are ignored; Size on the result tells where the
// next value begins. Returns an error wrapping geoarrow.ErrWKB for a
// truncated buffer, an unknown type code, or a malformed member.
func Parse(data []byte) (Geometry, error) {
	d := decoder{data: data}
	return d.geometry()
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) take(n int) ([]byte, error) {
	if n > len(d.data)-d.pos {
		return nil, codecErr("truncated value: need %d bytes at offset %d, have %d",
			n, d.pos, len(d.data)-d.pos)
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) header() (binary.ByteOrder, geoarrow.GeometryType, geoarrow.Dimension, error) {
	b, err := d.take(5)
	if err != nil {
		return nil, 0, 0, err
	}
	var order binary.ByteOrder
	switch b[0] {
	case 0:
		order = binary.BigEndian
	case 1:
		order = binary.LittleEndian
	default:
		return nil, 0, 0, codecErr("invalid byte order flag %d at offset %d", b[0], d.pos-5)
	}
	code := order.Uint32(b[1:])
	t, dim, err := geoarrow.ParseWKBCode(code)
	if err != nil {
		return nil, 0, 0, codecErr("unknown type code %d at offset %d", code, d.pos-4)
	}
	return order, t, dim, nil
}

// count reads a uint32 element count and bounds it by the remaining
// bytes, so a corrupt count cannot drive a huge allocation: every
// counted element occupies at least one byte.
func (d *decoder) count(order binary.ByteOrder, what string) (int, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	n := order.Uint32(b)
	if int64(n) > int64(len(d.data)-d.pos) {
		return 0, codecErr("%s count %d exceeds %d remaining bytes", what, n, len(d.data)-d.pos)
	}
	return int(n), nil
}

func (d *decoder) coords(dim geoarrow.Dimension, n int) ([]byte, error) {
	return d.take(n * dim.Size() * 8)
}

func (d *decoder) geometry() (Geometry, error) {
	start := d.pos
	order, t, dim, err := d.header()
	if err != nil {
		return nil, err
	}
	switch t {
	case geoarrow.TypePoint:
		return d.point(start, order, dim)
	case geoarrow.TypeLineString:
		return d.lineString(start, order, dim)
	case geoarrow.TypePolygon:
		return d.polygon(start, order, dim)
	case geoarrow.TypeMultiPoint:
		return d.multiPoint(start, order, dim)
	case geoarrow.TypeMultiLineString:
		return d.multiLineString(start, order, dim)
	case geoarrow.TypeMultiPolygon:
		return d.multiPolygon(start, order, dim)
	default:
		return d.geometryCollection(start, order, dim)
	}
}

func (d *decoder) point(start int, order binary.ByteOrder, dim geoarrow.Dimension) (Point, error) {
	b, err := d.coords(dim, 1)
	if err != nil {
		return Point{}, err
	}
	return Point{coord: coordView{data: b, order: order, dim: dim}, size: d.pos - start}, nil
}

func (d *decoder) ring(order binary.ByteOrder, dim geoarrow.Dimension, what string) (ring, error) {
	n, err := d.count(order, what)
	if err != nil {
		return ring{}, err
	}
	b, err := d.coords(dim, n)
	if err != nil {
		return ring{}, err
	}
	return ring{data: b, order: order, dim: dim, n: n}, nil
}

func (d *decoder) lineString(start int, order binary.ByteOrder, dim geoarrow.Dimension) (LineString, error) {
	r, err := d.ring(order, dim, "line string coordinate")
	if err != nil {
		return LineString{}, err
	}
	return LineString{ring: r, size: d.pos - start}, nil
}

func (d *decoder) polygon(start int, order binary.ByteOrder, dim geoarrow.Dimension) (Polygon, error) {
	n, err := d.count(order, "polygon ring")
	if err != nil {
		return Polygon{}, err
	}
	rings := make([]ring, n)
	for i := range rings {
		if rings[i], err = d.ring(order, dim, "ring coordinate"); err != nil {
			return Polygon{}, err
		}
	}
	return Polygon{dim: dim, rings: rings, size: d.pos - start}, nil
}

func (d *decoder) member(want geoarrow.GeometryType, i int) (binary.ByteOrder, geoarrow.Dimension, error) {
	order, t, dim, err := d.header()
	if err != nil {
		return nil, 0, err
	}
	if t != want {
		return nil, 0, codecErr("member %d is a %s, want %s", i, t, want)
	}
	return order, dim, nil
}

func (d *decoder) multiPoint(start int, order binary.ByteOrder, dim geoarrow.Dimension) (MultiPoint, error) {
	n, err := d.count(order, "multi point member")
	if err != nil {
		return MultiPoint{}, err
	}
	points := make([]Point, n)
	for i := range points {
		mstart := d.pos
		morder, mdim, err := d.member(geoarrow.TypePoint, i)
		if err != nil {
			return MultiPoint{}, err
		}
		if points[i], err = d.point(mstart, morder, mdim); err != nil {
			return MultiPoint{}, err
		}
	}
	return MultiPoint{dim: dim, points: points, size: d.pos - start}, nil
}

func (d *decoder) multiLineString(start int, order binary.ByteOrder, dim geoarrow.Dimension) (MultiLineString, error) {
	n, err := d.count(order, "multi line string member")
	if err != nil {
		return MultiLineString{}, err
	}
	parts := make([]LineString, n)
	for i := range parts {
		mstart := d.pos
		morder, mdim, err := d.member(geoarrow.TypeLineString, i)
		if err != nil {
			return MultiLineString{}, err
		}
		if parts[i], err = d.lineString(mstart, morder, mdim); err != nil {
			return MultiLineString{}, err
		}
	}
	return MultiLineString{dim: dim, parts: parts, size: d.pos - start}, nil
}

func (d *decoder) multiPolygon(start int, order binary.ByteOrder, dim geoarrow.Dimension) (MultiPolygon, error) {
	n, err := d.count(order, "multi polygon member")
	if err != nil {
		return MultiPolygon{}, err
	}
	polygons := make([]Polygon, n)
	for i := range polygons {
		mstart := d.pos
		morder, mdim, err := d.member(geoarrow.TypePolygon, i)
		if err != nil {
			return MultiPolygon{}, err
		}
		if polygons[i], err = d.polygon(mstart, morder, mdim); err != nil {
			return MultiPolygon{}, err
		}
	}
	return MultiPolygon{dim: dim, polygons: polygons, size: d.pos - start}, nil
}

func (d *decoder) geometryCollection(start int, order binary.ByteOrder, dim geoarrow.Dimension) (GeometryCollection, error) {
	n, err := d.count(order, "collection member")
	if err != nil {
		return GeometryCollection{}, err
	}
	members := make([]Geometry, n)
	for i := range members {
		if members[i], err = d.geometry(); err != nil {
			return GeometryCollection{}, err
		}
	}
	return GeometryCollection{dim: dim, members: members, size: d.pos - start}, nil
}

// coordView reads one coordinate in place. It implements
// geoarrow.Coord.
type coordView struct {
	data  []byte
	order binary.ByteOrder
	dim   geoarrow.Dimension
}

func (c coordView) axis(i int) float64 {
	return math.Float64frombits(c.order.Uint64(c.data[8*i:]))
}

func (c coordView) X() float64 { return c.axis(0) }
func (c coordView) Y() float64 { return c.axis(1) }

func (c coordView) Z() (float64, bool) {
	if !c.dim.HasZ() {
		return 0, false
	}
	return c.axis(2), true
}

func (c coordView) M() (float64, bool) {
	switch c.dim {
	case geoarrow.XYM:
		return c.axis(2), true
	case geoarrow.XYZM:
		return c.axis(3), true
	}
	return 0, false
}

// ring is a run of coordinates read in place. It implements
// geoarrow.LineString and backs both standalone line strings and
// polygon rings.
type ring struct {
	data  []byte
	order binary.ByteOrder
	dim   geoarrow.Dimension
	n     int
}

func (r ring) GeometryType() geoarrow.GeometryType { return geoarrow.TypeLineString }
func (r ring) Dimension() geoarrow.Dimension       { return r.dim }
func (r ring) NumCoords() int                      { return r.n }

func (r ring) Coord(i int) geoarrow.Coord {
	if i < 0 || i >= r.n {
		fmtPanic("coordinate %d out of range [0, %d)", i, r.n)
	}
	stride := r.dim.Size() * 8
	return coordView{data: r.data[i*stride:], order: r.order, dim: r.dim}
}

// Point is a WKB point view. It implements geoarrow.Point; the empty
// point is encoded as all-NaN coordinates.
type Point struct {
	coord coordView
	size  int
}

func (p Point) GeometryType() geoarrow.GeometryType { return geoarrow.TypePoint }
func (p Point) Dimension() geoarrow.Dimension       { return p.coord.dim }
func (p Point) Size() int                           { return p.size }

// Coord returns the point's coordinate, or false if the point is
// empty.
func (p Point) Coord() (geoarrow.Coord, bool) {
	if math.IsNaN(p.coord.X()) {
		return nil, false
	}
	return p.coord, true
}

// LineString is a WKB line string view. It implements
// geoarrow.LineString.
type LineString struct {
	ring
	size int
}

func (l LineString) Size() int { return l.size }

// Polygon is a WKB polygon view. It implements geoarrow.Polygon.
type Polygon struct {
	dim   geoarrow.Dimension
	rings []ring
	size  int
}

func (p Polygon) GeometryType() geoarrow.GeometryType { return geoarrow.TypePolygon }
func (p Polygon) Dimension() geoarrow.Dimension       { return p.dim }
func (p Polygon) Size() int                           { return p.size }

// Exterior returns the outer ring, or false if the polygon is empty.
func (p Polygon) Exterior() (geoarrow.LineString, bool) {
	if len(p.rings) == 0 {
		return nil, false
	}
	return p.rings[0], true
}

func (p Polygon) NumInteriors() int { return max(len(p.rings)-1, 0) }

func (p Polygon) Interior(i int) geoarrow.LineString {
	if i < 0 || i >= p.NumInteriors() {
		fmtPanic("interior ring %d out of range [0, %d)", i, p.NumInteriors())
	}
	return p.rings[i+1]
}

// MultiPoint is a WKB multi point view. It implements
// geoarrow.MultiPoint.
type MultiPoint struct {
	dim    geoarrow.Dimension
	points []Point
	size   int
}

func (m MultiPoint) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPoint }
func (m MultiPoint) Dimension() geoarrow.Dimension       { return m.dim }
func (m MultiPoint) Size() int                           { return m.size }
func (m MultiPoint) NumPoints() int                      { return len(m.points) }

func (m MultiPoint) Point(i int) geoarrow.Point {
	if i < 0 || i >= len(m.points) {
		fmtPanic("member %d out of range [0, %d)", i, len(m.points))
	}
	return m.points[i]
}

// MultiLineString is a WKB multi line string view. It implements
// geoarrow.MultiLineString.
type MultiLineString struct {
	dim   geoarrow.Dimension
	parts []LineString
	size  int
}

func (m MultiLineString) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiLineString }
func (m MultiLineString) Dimension() geoarrow.Dimension       { return m.dim }
func (m MultiLineString) Size() int                           { return m.size }
func (m MultiLineString) NumLineStrings() int                 { return len(m.parts) }

func (m MultiLineString) LineString(i int) geoarrow.LineString {
	if i < 0 || i >= len(m.parts) {
		fmtPanic("member %d out of range [0, %d)", i, len(m.parts))
	}
	return m.parts[i]
}

// MultiPolygon is a WKB multi polygon view. It implements
// geoarrow.MultiPolygon.
type MultiPolygon struct {
	dim      geoarrow.Dimension
	polygons []Polygon
	size     int
}

func (m MultiPolygon) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPolygon }
func (m MultiPolygon) Dimension() geoarrow.Dimension       { return m.dim }
func (m MultiPolygon) Size() int                           { return m.size }
func (m MultiPolygon) NumPolygons() int                    { return len(m.polygons) }

func (m MultiPolygon) Polygon(i int) geoarrow.Polygon {
	if i < 0 || i >= len(m.polygons) {
		fmtPanic("member %d out of range [0, %d)", i, len(m.polygons))
	}
	return m.polygons[i]
}

// GeometryCollection is a WKB geometry collection view. It implements
// geoarrow.GeometryCollection.
type GeometryCollection struct {
	dim     geoarrow.Dimension
	members []Geometry
	size    int
}

func (g GeometryCollection) GeometryType() geoarrow.GeometryType {
	return geoarrow.TypeGeometryCollection
}

func (g GeometryCollection) Dimension() geoarrow.Dimension { return g.dim }
func (g GeometryCollection) Size() int                     { return g.size }
func (g GeometryCollection) NumGeometries() int            { return len(g.members) }

func (g GeometryCollection) Geom(i int) geoarrow.Geometry {
	if i < 0 || i >= len(g.members) {
		fmtPanic("member %d out of range [0, %d)", i, len(g.members))
	}
	return g.members[i]
}
