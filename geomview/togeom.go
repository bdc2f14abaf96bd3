// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geomview

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/gogama/geoarrow"
)

// ToGeom materializes an accessor value as a go-geom geometry,
// copying every coordinate. Rects and triangles materialize as the
// degenerate polygons their adapters present. Returns an error
// wrapping geoarrow.ErrIncorrectType for a nil geometry or an
// unrepresentable kind.
func ToGeom(g geoarrow.Geometry) (geom.T, error) {
	switch v := g.(type) {
	case nil:
		return nil, typeErr("cannot materialize a nil geometry")
	case geoarrow.Point:
		return toPoint(v), nil
	case geoarrow.LineString:
		return geom.NewLineStringFlat(layout(v.Dimension()), flatLine(v)), nil
	case geoarrow.Polygon:
		return toPolygon(v), nil
	case geoarrow.MultiPoint:
		mp := geom.NewMultiPoint(layout(v.Dimension()))
		for i := 0; i < v.NumPoints(); i++ {
			if err := mp.Push(toPoint(v.Point(i))); err != nil {
				return nil, typeErr("member %d: %v", i, err)
			}
		}
		return mp, nil
	case geoarrow.MultiLineString:
		mls := geom.NewMultiLineString(layout(v.Dimension()))
		for i := 0; i < v.NumLineStrings(); i++ {
			l := v.LineString(i)
			if err := mls.Push(geom.NewLineStringFlat(layout(l.Dimension()), flatLine(l))); err != nil {
				return nil, typeErr("member %d: %v", i, err)
			}
		}
		return mls, nil
	case geoarrow.MultiPolygon:
		mp := geom.NewMultiPolygon(layout(v.Dimension()))
		for i := 0; i < v.NumPolygons(); i++ {
			if err := mp.Push(toPolygon(v.Polygon(i))); err != nil {
				return nil, typeErr("member %d: %v", i, err)
			}
		}
		return mp, nil
	case geoarrow.GeometryCollection:
		gc := geom.NewGeometryCollection()
		for i := 0; i < v.NumGeometries(); i++ {
			m, err := ToGeom(v.Geom(i))
			if err != nil {
				return nil, err
			}
			if err := gc.Push(m); err != nil {
				return nil, typeErr("member %d: %v", i, err)
			}
		}
		return gc, nil
	case geoarrow.Rect:
		return toPolygon(geoarrow.RectAsPolygon(v)), nil
	case geoarrow.Triangle:
		return toPolygon(geoarrow.TriangleAsPolygon(v)), nil
	default:
		return nil, typeErr("cannot materialize %s", g.GeometryType())
	}
}

func layout(dim geoarrow.Dimension) geom.Layout {
	switch dim {
	case geoarrow.XY:
		return geom.XY
	case geoarrow.XYZ:
		return geom.XYZ
	case geoarrow.XYM:
		return geom.XYM
	default:
		return geom.XYZM
	}
}

func toPoint(p geoarrow.Point) *geom.Point {
	c, ok := p.Coord()
	if !ok {
		// Zero flat coordinates is go-geom's empty point.
		return geom.NewPointFlat(layout(p.Dimension()), nil)
	}
	return geom.NewPointFlat(layout(p.Dimension()), coordVals(c, p.Dimension()))
}

func toPolygon(p geoarrow.Polygon) *geom.Polygon {
	dim := p.Dimension()
	var flat []float64
	var ends []int
	if ext, ok := p.Exterior(); ok {
		flat = appendLine(flat, ext, dim)
		ends = append(ends, len(flat))
		for i := 0; i < p.NumInteriors(); i++ {
			flat = appendLine(flat, p.Interior(i), dim)
			ends = append(ends, len(flat))
		}
	}
	return geom.NewPolygonFlat(layout(dim), flat, ends)
}

func flatLine(l geoarrow.LineString) []float64 {
	return appendLine(make([]float64, 0, l.NumCoords()*l.Dimension().Size()), l, l.Dimension())
}

func appendLine(flat []float64, l geoarrow.LineString, dim geoarrow.Dimension) []float64 {
	for i := 0; i < l.NumCoords(); i++ {
		flat = append(flat, coordVals(l.Coord(i), dim)...)
	}
	return flat
}

func coordVals(c geoarrow.Coord, dim geoarrow.Dimension) []float64 {
	vals := make([]float64, 0, dim.Size())
	vals = append(vals, c.X(), c.Y())
	if dim.HasZ() {
		vals = append(vals, axisOrNaN(c.Z))
	}
	if dim.HasM() {
		vals = append(vals, axisOrNaN(c.M))
	}
	return vals
}

func axisOrNaN(axis func() (float64, bool)) float64 {
	if v, ok := axis(); ok {
		return v
	}
	return math.NaN()
}
