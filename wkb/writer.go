// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wkb

import (
	"encoding/binary"
	"math"

	"github.com/gogama/geoarrow"
)

const (
	headerSize = 5
	countSize  = 4
)

// Size returns the exact number of bytes Marshal produces for g,
// computed in one pass over the accessor interfaces without writing
// anything. Rects and triangles size as the degenerate polygons they
// serialize to. Returns an error wrapping geoarrow.ErrIncorrectType
// for a nil geometry or a kind WKB cannot represent.
func Size(g geoarrow.Geometry) (int, error) {
	switch v := g.(type) {
	case nil:
		return 0, typeErr("cannot size a nil geometry")
	case geoarrow.Point:
		return headerSize + strideBytes(v), nil
	case geoarrow.LineString:
		return headerSize + countSize + v.NumCoords()*strideBytes(v), nil
	case geoarrow.Polygon:
		return polygonSize(v), nil
	case geoarrow.MultiPoint:
		return headerSize + countSize + v.NumPoints()*(headerSize+strideBytes(v)), nil
	case geoarrow.MultiLineString:
		n := headerSize + countSize
		for i := 0; i < v.NumLineStrings(); i++ {
			l := v.LineString(i)
			n += headerSize + countSize + l.NumCoords()*strideBytes(l)
		}
		return n, nil
	case geoarrow.MultiPolygon:
		n := headerSize + countSize
		for i := 0; i < v.NumPolygons(); i++ {
			n += polygonSize(v.Polygon(i))
		}
		return n, nil
	case geoarrow.GeometryCollection:
		n := headerSize + countSize
		for i := 0; i < v.NumGeometries(); i++ {
			m, err := Size(v.Geom(i))
			if err != nil {
				return 0, err
			}
			n += m
		}
		return n, nil
	case geoarrow.Rect:
		return polygonSize(geoarrow.RectAsPolygon(v)), nil
	case geoarrow.Triangle:
		return polygonSize(geoarrow.TriangleAsPolygon(v)), nil
	default:
		return 0, typeErr("cannot write %s as WKB", g.GeometryType())
	}
}

func strideBytes(g geoarrow.Geometry) int {
	return g.Dimension().Size() * 8
}

func polygonSize(p geoarrow.Polygon) int {
	n := headerSize + countSize
	stride := strideBytes(p)
	if ext, ok := p.Exterior(); ok {
		n += countSize + ext.NumCoords()*stride
		for i := 0; i < p.NumInteriors(); i++ {
			n += countSize + p.Interior(i).NumCoords()*stride
		}
	}
	return n
}

// Marshal serializes g as little-endian WKB in two passes: Size
// first, then one exactly-sized write. Empty geometries are written
// with zero element counts, and an empty point as all-NaN
// coordinates.
func Marshal(g geoarrow.Geometry) ([]byte, error) {
	n, err := Size(g)
	if err != nil {
		return nil, err
	}
	return Append(make([]byte, 0, n), g)
}

// Append serializes g as little-endian WKB onto dst, growing it as
// needed, and returns the extended buffer.
func Append(dst []byte, g geoarrow.Geometry) ([]byte, error) {
	e := encoder{buf: dst}
	if err := e.geometry(g); err != nil {
		return nil, err
	}
	return e.buf, nil
}

type encoder struct {
	buf []byte
}

func (e *encoder) u32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

func (e *encoder) f64(v float64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(v))
}

func (e *encoder) header(t geoarrow.GeometryType, dim geoarrow.Dimension) {
	e.buf = append(e.buf, 1) // little-endian flag
	e.u32(geoarrow.WKBCode(t, dim))
}

func (e *encoder) coord(c geoarrow.Coord, dim geoarrow.Dimension) {
	e.f64(c.X())
	e.f64(c.Y())
	if dim.HasZ() {
		e.f64(axisOrNaN(c.Z))
	}
	if dim.HasM() {
		e.f64(axisOrNaN(c.M))
	}
}

func axisOrNaN(axis func() (float64, bool)) float64 {
	if v, ok := axis(); ok {
		return v
	}
	return math.NaN()
}

func (e *encoder) emptyCoord(dim geoarrow.Dimension) {
	for i := 0; i < dim.Size(); i++ {
		e.f64(math.NaN())
	}
}

func (e *encoder) lineString(l geoarrow.LineString, dim geoarrow.Dimension) {
	e.u32(uint32(l.NumCoords()))
	for i := 0; i < l.NumCoords(); i++ {
		e.coord(l.Coord(i), dim)
	}
}

func (e *encoder) polygon(p geoarrow.Polygon) {
	dim := p.Dimension()
	e.header(geoarrow.TypePolygon, dim)
	ext, ok := p.Exterior()
	if !ok {
		e.u32(0)
		return
	}
	e.u32(uint32(1 + p.NumInteriors()))
	e.lineString(ext, dim)
	for i := 0; i < p.NumInteriors(); i++ {
		e.lineString(p.Interior(i), dim)
	}
}

func (e *encoder) point(p geoarrow.Point) {
	dim := p.Dimension()
	e.header(geoarrow.TypePoint, dim)
	if c, ok := p.Coord(); ok {
		e.coord(c, dim)
	} else {
		e.emptyCoord(dim)
	}
}

func (e *encoder) geometry(g geoarrow.Geometry) error {
	switch v := g.(type) {
	case nil:
		return typeErr("cannot write a nil geometry")
	case geoarrow.Point:
		e.point(v)
	case geoarrow.LineString:
		e.header(geoarrow.TypeLineString, v.Dimension())
		e.lineString(v, v.Dimension())
	case geoarrow.Polygon:
		e.polygon(v)
	case geoarrow.MultiPoint:
		e.header(geoarrow.TypeMultiPoint, v.Dimension())
		e.u32(uint32(v.NumPoints()))
		for i := 0; i < v.NumPoints(); i++ {
			e.point(v.Point(i))
		}
	case geoarrow.MultiLineString:
		dim := v.Dimension()
		e.header(geoarrow.TypeMultiLineString, dim)
		e.u32(uint32(v.NumLineStrings()))
		for i := 0; i < v.NumLineStrings(); i++ {
			l := v.LineString(i)
			e.header(geoarrow.TypeLineString, l.Dimension())
			e.lineString(l, l.Dimension())
		}
	case geoarrow.MultiPolygon:
		e.header(geoarrow.TypeMultiPolygon, v.Dimension())
		e.u32(uint32(v.NumPolygons()))
		for i := 0; i < v.NumPolygons(); i++ {
			e.polygon(v.Polygon(i))
		}
	case geoarrow.GeometryCollection:
		e.header(geoarrow.TypeGeometryCollection, v.Dimension())
		e.u32(uint32(v.NumGeometries()))
		for i := 0; i < v.NumGeometries(); i++ {
			if err := e.geometry(v.Geom(i)); err != nil {
				return err
			}
		}
	case geoarrow.Rect:
		e.polygon(geoarrow.RectAsPolygon(v))
	case geoarrow.Triangle:
		e.polygon(geoarrow.TriangleAsPolygon(v))
	default:
		return typeErr("cannot write %s as WKB", g.GeometryType())
	}
	return nil
}
