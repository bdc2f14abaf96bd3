// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoarrow

import "fmt"

func (t GeometryType) String() string {
	switch t {
	case TypePoint:
		return "Point"
	case TypeLineString:
		return "LineString"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypeMultiLineString:
		return "MultiLineString"
	case TypeMultiPolygon:
		return "MultiPolygon"
	case TypeGeometryCollection:
		return "GeometryCollection"
	case TypeRect:
		return "Rect"
	case TypeMixed:
		return "Mixed"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

func (d Dimension) String() string {
	switch d {
	case XY:
		return "XY"
	case XYZ:
		return "XYZ"
	case XYM:
		return "XYM"
	case XYZM:
		return "XYZM"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(d))
	}
}

func (c CoordType) String() string {
	switch c {
	case Interleaved:
		return "Interleaved"
	case Separated:
		return "Separated"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

func (t Type) String() string {
	return fmt.Sprintf("Type{%s,%s,%s}", t.geometry, t.dimension, t.coordType)
}
