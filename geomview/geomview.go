// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package geomview bridges twpayne/go-geom and geoarrow.
//
// Wrap adapts a go-geom geometry as the geoarrow accessor interfaces
// without copying its coordinates, so it can feed any array builder
// push or WKB write. ToGeom goes the other way, materializing any
// accessor value, native array view or WKB view alike, as a go-geom
// object.
package geomview

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/gogama/geoarrow"
)

// Wrap adapts a go-geom geometry to the geoarrow accessor
// interfaces. The view shares the geometry's flat coordinate slice;
// it stays valid only while the underlying geometry is unchanged.
// Returns an error wrapping geoarrow.ErrIncorrectType for an
// unsupported concrete type or coordinate layout.
func Wrap(t geom.T) (geoarrow.Geometry, error) {
	switch g := t.(type) {
	case nil:
		return nil, typeErr("cannot wrap a nil geometry")
	case *geom.Point:
		dim, err := dimension(g.Layout())
		if err != nil {
			return nil, err
		}
		return pointView{flat: g.FlatCoords(), dim: dim}, nil
	case *geom.LineString:
		dim, err := dimension(g.Layout())
		if err != nil {
			return nil, err
		}
		return lineStringView{flat: g.FlatCoords(), dim: dim}, nil
	case *geom.LinearRing:
		dim, err := dimension(g.Layout())
		if err != nil {
			return nil, err
		}
		return lineStringView{flat: g.FlatCoords(), dim: dim}, nil
	case *geom.Polygon:
		dim, err := dimension(g.Layout())
		if err != nil {
			return nil, err
		}
		return polygonView{p: g, dim: dim}, nil
	case *geom.MultiPoint:
		dim, err := dimension(g.Layout())
		if err != nil {
			return nil, err
		}
		return multiPointView{m: g, dim: dim}, nil
	case *geom.MultiLineString:
		dim, err := dimension(g.Layout())
		if err != nil {
			return nil, err
		}
		return multiLineStringView{m: g, dim: dim}, nil
	case *geom.MultiPolygon:
		dim, err := dimension(g.Layout())
		if err != nil {
			return nil, err
		}
		return multiPolygonView{m: g, dim: dim}, nil
	case *geom.GeometryCollection:
		return wrapCollection(g)
	default:
		return nil, typeErr("cannot wrap %T", t)
	}
}

// wrapCollection wraps every member eagerly so an unsupported member
// surfaces here rather than as a panic during traversal. An empty
// collection reports XY.
func wrapCollection(g *geom.GeometryCollection) (geoarrow.Geometry, error) {
	members := make([]geoarrow.Geometry, g.NumGeoms())
	dim := geoarrow.XY
	for i := range members {
		m, err := Wrap(g.Geom(i))
		if err != nil {
			return nil, err
		}
		members[i] = m
		if i == 0 {
			dim = m.Dimension()
		}
	}
	return collectionView{members: members, dim: dim}, nil
}

func dimension(l geom.Layout) (geoarrow.Dimension, error) {
	switch l {
	case geom.XY:
		return geoarrow.XY, nil
	case geom.XYZ:
		return geoarrow.XYZ, nil
	case geom.XYM:
		return geoarrow.XYM, nil
	case geom.XYZM:
		return geoarrow.XYZM, nil
	default:
		return 0, typeErr("unsupported coordinate layout %s", l)
	}
}

// flatCoord reads one coordinate from a flat slice. It implements
// geoarrow.Coord.
type flatCoord struct {
	vals []float64
	dim  geoarrow.Dimension
}

func (c flatCoord) X() float64 { return c.vals[0] }
func (c flatCoord) Y() float64 { return c.vals[1] }

func (c flatCoord) Z() (float64, bool) {
	if !c.dim.HasZ() {
		return 0, false
	}
	return c.vals[2], true
}

func (c flatCoord) M() (float64, bool) {
	switch c.dim {
	case geoarrow.XYM:
		return c.vals[2], true
	case geoarrow.XYZM:
		return c.vals[3], true
	}
	return 0, false
}

type pointView struct {
	flat []float64
	dim  geoarrow.Dimension
}

func (v pointView) GeometryType() geoarrow.GeometryType { return geoarrow.TypePoint }
func (v pointView) Dimension() geoarrow.Dimension       { return v.dim }

// Coord returns the point's coordinate, or false if the point is
// empty. go-geom encodes the empty point as zero flat coordinates;
// the NaN sentinel is accepted too.
func (v pointView) Coord() (geoarrow.Coord, bool) {
	if len(v.flat) == 0 || math.IsNaN(v.flat[0]) {
		return nil, false
	}
	return flatCoord{vals: v.flat, dim: v.dim}, true
}

type lineStringView struct {
	flat []float64
	dim  geoarrow.Dimension
}

func (v lineStringView) GeometryType() geoarrow.GeometryType { return geoarrow.TypeLineString }
func (v lineStringView) Dimension() geoarrow.Dimension       { return v.dim }
func (v lineStringView) NumCoords() int                      { return len(v.flat) / v.dim.Size() }

func (v lineStringView) Coord(i int) geoarrow.Coord {
	if i < 0 || i >= v.NumCoords() {
		fmtPanic("coordinate %d out of range [0, %d)", i, v.NumCoords())
	}
	return flatCoord{vals: v.flat[i*v.dim.Size():], dim: v.dim}
}

type polygonView struct {
	p   *geom.Polygon
	dim geoarrow.Dimension
}

func (v polygonView) GeometryType() geoarrow.GeometryType { return geoarrow.TypePolygon }
func (v polygonView) Dimension() geoarrow.Dimension       { return v.dim }

func (v polygonView) Exterior() (geoarrow.LineString, bool) {
	if v.p.NumLinearRings() == 0 {
		return nil, false
	}
	return lineStringView{flat: v.p.LinearRing(0).FlatCoords(), dim: v.dim}, true
}

func (v polygonView) NumInteriors() int {
	if n := v.p.NumLinearRings(); n > 1 {
		return n - 1
	}
	return 0
}

func (v polygonView) Interior(i int) geoarrow.LineString {
	if i < 0 || i >= v.NumInteriors() {
		fmtPanic("interior ring %d out of range [0, %d)", i, v.NumInteriors())
	}
	return lineStringView{flat: v.p.LinearRing(i + 1).FlatCoords(), dim: v.dim}
}

type multiPointView struct {
	m   *geom.MultiPoint
	dim geoarrow.Dimension
}

func (v multiPointView) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPoint }
func (v multiPointView) Dimension() geoarrow.Dimension       { return v.dim }
func (v multiPointView) NumPoints() int                      { return v.m.NumPoints() }

func (v multiPointView) Point(i int) geoarrow.Point {
	if i < 0 || i >= v.m.NumPoints() {
		fmtPanic("member %d out of range [0, %d)", i, v.m.NumPoints())
	}
	return pointView{flat: v.m.Point(i).FlatCoords(), dim: v.dim}
}

type multiLineStringView struct {
	m   *geom.MultiLineString
	dim geoarrow.Dimension
}

func (v multiLineStringView) GeometryType() geoarrow.GeometryType {
	return geoarrow.TypeMultiLineString
}

func (v multiLineStringView) Dimension() geoarrow.Dimension { return v.dim }
func (v multiLineStringView) NumLineStrings() int           { return v.m.NumLineStrings() }

func (v multiLineStringView) LineString(i int) geoarrow.LineString {
	if i < 0 || i >= v.m.NumLineStrings() {
		fmtPanic("member %d out of range [0, %d)", i, v.m.NumLineStrings())
	}
	return lineStringView{flat: v.m.LineString(i).FlatCoords(), dim: v.dim}
}

type multiPolygonView struct {
	m   *geom.MultiPolygon
	dim geoarrow.Dimension
}

func (v multiPolygonView) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPolygon }
func (v multiPolygonView) Dimension() geoarrow.Dimension       { return v.dim }
func (v multiPolygonView) NumPolygons() int                    { return v.m.NumPolygons() }

func (v multiPolygonView) Polygon(i int) geoarrow.Polygon {
	if i < 0 || i >= v.m.NumPolygons() {
		fmtPanic("member %d out of range [0, %d)", i, v.m.NumPolygons())
	}
	return polygonView{p: v.m.Polygon(i), dim: v.dim}
}

type collectionView struct {
	members []geoarrow.Geometry
	dim     geoarrow.Dimension
}

func (v collectionView) GeometryType() geoarrow.GeometryType {
	return geoarrow.TypeGeometryCollection
}

func (v collectionView) Dimension() geoarrow.Dimension { return v.dim }
func (v collectionView) NumGeometries() int            { return len(v.members) }

func (v collectionView) Geom(i int) geoarrow.Geometry {
	if i < 0 || i >= len(v.members) {
		fmtPanic("member %d out of range [0, %d)", i, len(v.members))
	}
	return v.members[i]
}
