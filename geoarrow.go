// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package geoarrow provides the shared vocabulary for columnar,
// Arrow-compatible geometry arrays: geometry kinds, coordinate
// dimensions, physical coordinate layouts, CRS metadata, and the
// read-only accessor interfaces implemented alike by native array
// views, WKB views, and go-geom adapters.
//
// The concrete array types, builders, and capacity counters live in
// the array subpackage; raw coordinate storage lives in the coord
// subpackage; the WKB codec lives in the wkb subpackage.
package geoarrow

// GeometryType identifies a concrete geometry kind. The values of the
// seven simple kinds equal their WKB type codes (see WKBCode). Rect
// and Mixed are GeoArrow-only kinds with no WKB representation.
type GeometryType uint8

const (
	TypePoint              GeometryType = 1
	TypeLineString         GeometryType = 2
	TypePolygon            GeometryType = 3
	TypeMultiPoint         GeometryType = 4
	TypeMultiLineString    GeometryType = 5
	TypeMultiPolygon       GeometryType = 6
	TypeGeometryCollection GeometryType = 7
	// TypeRect is an axis-aligned bounding box kind. It has no WKB
	// type code.
	TypeRect GeometryType = 8
	// TypeMixed is a dynamic kind whose rows may each be any of the
	// six simple kinds Point..MultiPolygon. It has no WKB type code.
	TypeMixed GeometryType = 9
)

// HasWKBCode reports whether the geometry type has a WKB type code.
func (t GeometryType) HasWKBCode() bool {
	return t >= TypePoint && t <= TypeGeometryCollection
}

// Dimension identifies the coordinate dimension of a geometry or
// geometry array. It fixes the coordinate stride: every coordinate of
// an XY geometry occupies two float64 values, XYZ and XYM three, and
// XYZM four.
type Dimension uint8

const (
	XY Dimension = iota
	XYZ
	XYM
	XYZM
)

// Size returns the number of float64 values per coordinate.
func (d Dimension) Size() int {
	switch d {
	case XY:
		return 2
	case XYZ, XYM:
		return 3
	case XYZM:
		return 4
	default:
		fmtPanic("invalid dimension %d", uint8(d))
		return 0
	}
}

// HasZ reports whether coordinates of this dimension carry a Z value.
func (d Dimension) HasZ() bool {
	return d == XYZ || d == XYZM
}

// HasM reports whether coordinates of this dimension carry an M value.
func (d Dimension) HasM() bool {
	return d == XYM || d == XYZM
}

// wkbOffset is the value added to a base WKB type code (1..7) to mark
// the dimension variant: +10 for Z, +20 for M, +30 for ZM.
func (d Dimension) wkbOffset() uint32 {
	switch d {
	case XY:
		return 0
	case XYZ:
		return 10
	case XYM:
		return 20
	case XYZM:
		return 30
	default:
		fmtPanic("invalid dimension %d", uint8(d))
		return 0
	}
}

// WKBCode returns the WKB type code of a geometry type and dimension
// pair: the base code 1..7 plus the +10/+20/+30 offset for the Z, M,
// and ZM variants. Panics if t has no WKB type code.
func WKBCode(t GeometryType, d Dimension) uint32 {
	if !t.HasWKBCode() {
		fmtPanic("geometry type %s has no WKB type code", t)
	}
	return uint32(t) + d.wkbOffset()
}

// ParseWKBCode splits a WKB type code into its geometry type and
// dimension. Both the compact +10/+20/+30 dimension offsets written by
// this package and the ISO +1000/+2000/+3000 offsets are accepted, so
// WKB produced by other systems can be read. Returns ErrIncorrectType
// for an unknown code.
func ParseWKBCode(code uint32) (GeometryType, Dimension, error) {
	var d Dimension
	switch {
	case code >= 1000:
		switch code / 1000 {
		case 1:
			d = XYZ
		case 2:
			d = XYM
		case 3:
			d = XYZM
		default:
			return 0, 0, fmtErr("unknown WKB type code %d: %w", code, ErrIncorrectType)
		}
		code %= 1000
	case code >= 10:
		switch code / 10 {
		case 1:
			d = XYZ
		case 2:
			d = XYM
		case 3:
			d = XYZM
		default:
			return 0, 0, fmtErr("unknown WKB type code %d: %w", code, ErrIncorrectType)
		}
		code %= 10
	}
	t := GeometryType(code)
	if !t.HasWKBCode() {
		return 0, 0, fmtErr("unknown WKB type code %d: %w", code, ErrIncorrectType)
	}
	return t, d, nil
}

// CoordType identifies the physical layout of a coordinate buffer.
type CoordType uint8

const (
	// Interleaved coordinates are stored in one flat buffer as
	// x0,y0,[z0,[m0]],x1,y1,... with a fixed stride per coordinate.
	Interleaved CoordType = iota
	// Separated coordinates are stored as one independent equal-length
	// buffer per axis.
	Separated
)

// Type bundles the three independent axes that fully describe the
// physical type of a geometry array: geometry kind, dimension, and
// coordinate layout.
type Type struct {
	geometry  GeometryType
	dimension Dimension
	coordType CoordType
}

// NewType creates a Type from its three axes.
func NewType(g GeometryType, d Dimension, c CoordType) Type {
	return Type{geometry: g, dimension: d, coordType: c}
}

// Geometry returns the geometry kind axis.
func (t Type) Geometry() GeometryType { return t.geometry }

// Dimension returns the dimension axis.
func (t Type) Dimension() Dimension { return t.dimension }

// CoordType returns the coordinate layout axis.
func (t Type) CoordType() CoordType { return t.coordType }

// WithCoordType returns a copy of the Type with a different coordinate
// layout axis.
func (t Type) WithCoordType(c CoordType) Type {
	t.coordType = c
	return t
}

// ExtensionName returns the GeoArrow extension type name carried in
// Arrow field metadata for arrays of this type.
func (t Type) ExtensionName() string {
	switch t.geometry {
	case TypePoint:
		return "geoarrow.point"
	case TypeLineString:
		return "geoarrow.linestring"
	case TypePolygon:
		return "geoarrow.polygon"
	case TypeMultiPoint:
		return "geoarrow.multipoint"
	case TypeMultiLineString:
		return "geoarrow.multilinestring"
	case TypeMultiPolygon:
		return "geoarrow.multipolygon"
	case TypeGeometryCollection:
		return "geoarrow.geometrycollection"
	case TypeRect:
		return "geoarrow.box"
	case TypeMixed:
		return "geoarrow.geometry"
	default:
		fmtPanic("invalid geometry type %d", uint8(t.geometry))
		return ""
	}
}
