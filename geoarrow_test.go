// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoarrow

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWKBCode(t *testing.T) {
	testCases := []struct {
		name     string
		geometry GeometryType
		dim      Dimension
		expected uint32
	}{
		{"Point.XY", TypePoint, XY, 1},
		{"Polygon.XY", TypePolygon, XY, 3},
		{"LineString.XYM", TypeLineString, XYM, 22},
		{"MultiPolygon.XYZ", TypeMultiPolygon, XYZ, 16},
		{"GeometryCollection.XYZM", TypeGeometryCollection, XYZM, 37},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, WKBCode(testCase.geometry, testCase.dim))
		})
	}

	t.Run("Panic", func(t *testing.T) {
		assert.Panics(t, func() { WKBCode(TypeRect, XY) })
		assert.Panics(t, func() { WKBCode(TypeMixed, XY) })
	})
}

func TestParseWKBCode(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		testCases := []struct {
			name     string
			code     uint32
			geometry GeometryType
			dim      Dimension
		}{
			{"Point.XY", 1, TypePoint, XY},
			{"MultiPolygon.XYZ", 16, TypeMultiPolygon, XYZ},
			{"LineString.XYM", 22, TypeLineString, XYM},
			{"GeometryCollection.XYZM", 37, TypeGeometryCollection, XYZM},
			{"ISO.Polygon.XYZ", 1003, TypePolygon, XYZ},
			{"ISO.Point.XYM", 2001, TypePoint, XYM},
			{"ISO.MultiPolygon.XYZM", 3006, TypeMultiPolygon, XYZM},
		}

		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				geometry, dim, err := ParseWKBCode(testCase.code)

				require.NoError(t, err)
				assert.Equal(t, testCase.geometry, geometry)
				assert.Equal(t, testCase.dim, dim)
			})
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, code := range []uint32{0, 8, 9, 18, 40, 999, 1008, 4001} {
			t.Run(strconv.FormatUint(uint64(code), 10), func(t *testing.T) {
				_, _, err := ParseWKBCode(code)

				require.Error(t, err)
				assert.ErrorIs(t, err, ErrIncorrectType)
			})
		}
	})
}

func TestDimension(t *testing.T) {
	testCases := []struct {
		name string
		dim  Dimension
		size int
		hasZ bool
		hasM bool
	}{
		{"XY", XY, 2, false, false},
		{"XYZ", XYZ, 3, true, false},
		{"XYM", XYM, 3, false, true},
		{"XYZM", XYZM, 4, true, true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.size, testCase.dim.Size())
			assert.Equal(t, testCase.hasZ, testCase.dim.HasZ())
			assert.Equal(t, testCase.hasM, testCase.dim.HasM())
		})
	}
}

func TestType(t *testing.T) {
	typ := NewType(TypeLineString, XYZ, Separated)

	assert.Equal(t, TypeLineString, typ.Geometry())
	assert.Equal(t, XYZ, typ.Dimension())
	assert.Equal(t, Separated, typ.CoordType())

	t.Run("WithCoordType", func(t *testing.T) {
		converted := typ.WithCoordType(Interleaved)

		assert.Equal(t, Interleaved, converted.CoordType())
		assert.Equal(t, TypeLineString, converted.Geometry())
		assert.Equal(t, Separated, typ.CoordType())
	})

	t.Run("ExtensionName", func(t *testing.T) {
		testCases := []struct {
			geometry GeometryType
			expected string
		}{
			{TypePoint, "geoarrow.point"},
			{TypeLineString, "geoarrow.linestring"},
			{TypePolygon, "geoarrow.polygon"},
			{TypeMultiPoint, "geoarrow.multipoint"},
			{TypeMultiLineString, "geoarrow.multilinestring"},
			{TypeMultiPolygon, "geoarrow.multipolygon"},
			{TypeGeometryCollection, "geoarrow.geometrycollection"},
			{TypeRect, "geoarrow.box"},
			{TypeMixed, "geoarrow.geometry"},
		}

		for _, testCase := range testCases {
			t.Run(testCase.expected, func(t *testing.T) {
				assert.Equal(t, testCase.expected, NewType(testCase.geometry, XY, Interleaved).ExtensionName())
			})
		}
	})
}
