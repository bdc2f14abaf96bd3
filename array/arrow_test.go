// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/geoarrow"
)

func TestArrowType(t *testing.T) {
	t.Run("PointInterleaved", func(t *testing.T) {
		dt := ArrowType(geoarrow.NewType(geoarrow.TypePoint, geoarrow.XY, geoarrow.Interleaved))

		fsl, ok := dt.(*arrow.FixedSizeListType)
		require.True(t, ok)
		assert.Equal(t, int32(2), fsl.Len())
		assert.Equal(t, "xy", fsl.ElemField().Name)
		assert.Equal(t, arrow.FLOAT64, fsl.Elem().ID())
	})

	t.Run("PointSeparated", func(t *testing.T) {
		dt := ArrowType(geoarrow.NewType(geoarrow.TypePoint, geoarrow.XYZM, geoarrow.Separated))

		st, ok := dt.(*arrow.StructType)
		require.True(t, ok)
		require.Equal(t, 4, st.NumFields())
		assert.Equal(t, "x", st.Field(0).Name)
		assert.Equal(t, "m", st.Field(3).Name)
	})

	t.Run("LineString", func(t *testing.T) {
		dt := ArrowType(geoarrow.NewType(geoarrow.TypeLineString, geoarrow.XY, geoarrow.Interleaved))

		lt, ok := dt.(*arrow.ListType)
		require.True(t, ok)
		assert.Equal(t, "vertices", lt.ElemField().Name)
	})

	t.Run("MultiPolygon", func(t *testing.T) {
		dt := ArrowType(geoarrow.NewType(geoarrow.TypeMultiPolygon, geoarrow.XY, geoarrow.Interleaved))

		outer, ok := dt.(*arrow.ListType)
		require.True(t, ok)
		assert.Equal(t, "polygons", outer.ElemField().Name)
		middle, ok := outer.Elem().(*arrow.ListType)
		require.True(t, ok)
		assert.Equal(t, "rings", middle.ElemField().Name)
		inner, ok := middle.Elem().(*arrow.ListType)
		require.True(t, ok)
		assert.Equal(t, "vertices", inner.ElemField().Name)
	})

	t.Run("Rect", func(t *testing.T) {
		dt := ArrowType(geoarrow.NewType(geoarrow.TypeRect, geoarrow.XYZ, geoarrow.Interleaved))

		st, ok := dt.(*arrow.StructType)
		require.True(t, ok)
		require.Equal(t, 6, st.NumFields())
		assert.Equal(t, "xmin", st.Field(0).Name)
		assert.Equal(t, "zmin", st.Field(2).Name)
		assert.Equal(t, "xmax", st.Field(3).Name)
		assert.Equal(t, "zmax", st.Field(5).Name)
	})

	t.Run("Mixed", func(t *testing.T) {
		dt := ArrowType(geoarrow.NewType(geoarrow.TypeMixed, geoarrow.XYZ, geoarrow.Interleaved))

		du, ok := dt.(*arrow.DenseUnionType)
		require.True(t, ok)
		require.Equal(t, 6, len(du.TypeCodes()))
		assert.Equal(t, arrow.UnionTypeCode(11), du.TypeCodes()[0])
		assert.Equal(t, arrow.UnionTypeCode(16), du.TypeCodes()[5])
		assert.Equal(t, "Point", du.Fields()[0].Name)
		assert.Equal(t, "MultiPolygon", du.Fields()[5].Name)
	})
}

// assertSameRows checks that two arrays agree row by row.
func assertSameRows(t *testing.T, want, got Array) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	require.Equal(t, want.NullCount(), got.NullCount())
	require.Equal(t, want.Type(), got.Type())
	for i := 0; i < want.Len(); i++ {
		w, g := want.Geometry(i), got.Geometry(i)
		if w == nil {
			assert.Nil(t, g, "row %d", i)
			continue
		}
		require.NotNil(t, g, "row %d", i)
		assert.True(t, geoarrow.GeometryEqual(w, g), "row %d", i)
	}
}

func roundTrip(t *testing.T, a Array) Array {
	t.Helper()
	field, arr := ToArrow(a)
	defer arr.Release()
	back, err := FromArrow(field, arr)
	require.NoError(t, err)
	return back
}

func TestArrowRoundTrip(t *testing.T) {
	t.Run("Point", func(t *testing.T) {
		b := NewPointBuilder(geoarrow.XY, geoarrow.Interleaved)
		b.Push(point(1, 2))
		b.PushNull()
		b.Push(emptyPoint(geoarrow.XY))
		a := b.Finish()

		assertSameRows(t, a, roundTrip(t, a))
	})

	t.Run("PointSeparated", func(t *testing.T) {
		b := NewPointBuilder(geoarrow.XYZ, geoarrow.Separated)
		b.Push(pointZ(1, 2, 3))
		b.Push(pointZ(4, 5, 6))
		a := b.Finish()

		assertSameRows(t, a, roundTrip(t, a))
	})

	t.Run("LineString", func(t *testing.T) {
		b := NewLineStringBuilder(geoarrow.XY, geoarrow.Interleaved)
		b.Push(line(0, 0, 3, 4))
		b.PushNull()
		b.Push(line())
		a := b.Finish()

		assertSameRows(t, a, roundTrip(t, a))
	})

	t.Run("Polygon", func(t *testing.T) {
		b := NewPolygonBuilder(geoarrow.XY, geoarrow.Interleaved)
		b.Push(polygon(
			[]float64{0, 0, 10, 0, 10, 10, 0, 0},
			[]float64{1, 1, 2, 1, 2, 2, 1, 1},
		))
		b.PushNull()
		a := b.Finish()

		assertSameRows(t, a, roundTrip(t, a))
	})

	t.Run("MultiPoint", func(t *testing.T) {
		b := NewMultiPointBuilder(geoarrow.XY, geoarrow.Interleaved)
		b.Push(testMultiPoint{dim: geoarrow.XY, points: []geoarrow.Point{point(1, 2), point(3, 4)}})
		b.PushNull()
		a := b.Finish()

		assertSameRows(t, a, roundTrip(t, a))
	})

	t.Run("MultiLineString", func(t *testing.T) {
		b := NewMultiLineStringBuilder(geoarrow.XY, geoarrow.Interleaved)
		b.Push(testMultiLine{dim: geoarrow.XY, lines: []geoarrow.LineString{
			line(0, 0, 1, 1),
			line(5, 5, 6, 6, 7, 7),
		}})
		b.PushNull()
		a := b.Finish()

		assertSameRows(t, a, roundTrip(t, a))
	})

	t.Run("MultiPolygon", func(t *testing.T) {
		b := NewMultiPolygonBuilder(geoarrow.XY, geoarrow.Interleaved)
		b.Push(testMultiPolygon{dim: geoarrow.XY, polygons: []geoarrow.Polygon{
			polygon([]float64{0, 0, 4, 0, 4, 4, 0, 0}, []float64{1, 1, 2, 1, 1, 1}),
			polygon([]float64{10, 10, 12, 10, 11, 12, 10, 10}),
		}})
		b.PushNull()
		a := b.Finish()

		assertSameRows(t, a, roundTrip(t, a))
	})

	t.Run("Rect", func(t *testing.T) {
		b := NewRectBuilder(geoarrow.XY, geoarrow.Interleaved)
		b.Push(rect(0, 0, 2, 3))
		b.PushNull()
		a := b.Finish()

		back := roundTrip(t, a)

		// Box storage is struct-encoded, so the layout comes back
		// separated.
		require.Equal(t, 2, back.Len())
		assert.Equal(t, geoarrow.Separated, back.Type().CoordType())
		r, err := AsRect(back)
		require.NoError(t, err)
		assert.Equal(t, 2.0, r.Value(0).Max().X())
		assert.True(t, back.IsNull(1))
	})

	t.Run("Mixed", func(t *testing.T) {
		b := NewMixedBuilder(geoarrow.XY, geoarrow.Interleaved)
		require.NoError(t, b.Push(point(1, 2)))
		require.NoError(t, b.Push(line(0, 0, 1, 1)))
		require.NoError(t, b.Push(nil))
		a := b.Finish()

		back := roundTrip(t, a)

		assertSameRows(t, a, back)
		m, err := AsMixed(back)
		require.NoError(t, err)
		assert.Equal(t, []int8{1, 2, 1}, m.TypeIDs())
	})

	t.Run("GeometryCollection", func(t *testing.T) {
		b := NewGeometryCollectionBuilder(geoarrow.XY, geoarrow.Interleaved)
		require.NoError(t, b.Push(testCollection{dim: geoarrow.XY, members: []geoarrow.Geometry{
			point(1, 2),
			line(0, 0, 1, 1),
		}}))
		b.PushNull()
		a := b.Finish()

		assertSameRows(t, a, roundTrip(t, a))
	})

	t.Run("SlicedPoint", func(t *testing.T) {
		b := NewPointBuilder(geoarrow.XY, geoarrow.Interleaved)
		for i := 0; i < 6; i++ {
			if i == 3 {
				b.PushNull()
			} else {
				b.Push(point(float64(i), 0))
			}
		}
		// A mid-byte window forces the validity bitmap realign copy.
		a := b.Finish().Slice(2, 3)

		assertSameRows(t, a, roundTrip(t, a))
	})

	t.Run("SlicedLineString", func(t *testing.T) {
		b := NewLineStringBuilder(geoarrow.XY, geoarrow.Interleaved)
		b.Push(line(0, 0, 1, 1))
		b.Push(line(2, 2, 3, 3))
		b.Push(line(4, 4, 5, 5, 6, 6))
		a := b.Finish().Slice(1, 2)

		assertSameRows(t, a, roundTrip(t, a))
	})
}

func TestArrowField(t *testing.T) {
	b := NewPointBuilder(geoarrow.XY, geoarrow.Interleaved)
	b.Push(point(1, 2))
	a := b.Finish()

	t.Run("ExtensionName", func(t *testing.T) {
		field, arr := ToArrow(a)
		defer arr.Release()

		assert.Equal(t, "geometry", field.Name)
		assert.True(t, field.Nullable)
		assert.Equal(t, "geoarrow.point", metadataValue(field.Metadata, ExtensionNameKey))
		assert.Equal(t, -1, field.Metadata.FindKey(ExtensionMetadataKey))
	})

	t.Run("ExtensionMetadata", func(t *testing.T) {
		m := geoarrow.Metadata{CRS: "EPSG:4326", CRSType: geoarrow.CRSTypeAuthorityCode}
		field, arr := ToArrow(a.WithMetadata(m))
		defer arr.Release()

		serialized := metadataValue(field.Metadata, ExtensionMetadataKey)
		require.NotEmpty(t, serialized)
		parsed, err := geoarrow.ParseMetadata(serialized)
		require.NoError(t, err)
		assert.Equal(t, m, parsed)

		back, err := FromArrow(field, arr)
		require.NoError(t, err)
		assert.Equal(t, m, back.Metadata())
	})
}

func TestFromArrowErrors(t *testing.T) {
	b := NewPointBuilder(geoarrow.XY, geoarrow.Interleaved)
	b.Push(point(1, 2))
	a := b.Finish()
	field, arr := ToArrow(a)
	defer arr.Release()

	t.Run("NoExtensionName", func(t *testing.T) {
		bare := field
		bare.Metadata = arrow.Metadata{}

		_, err := FromArrow(bare, arr)
		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
	})

	t.Run("UnknownExtensionName", func(t *testing.T) {
		wrong := field
		wrong.Metadata = arrow.NewMetadata([]string{ExtensionNameKey}, []string{"geoarrow.wkb"})

		_, err := FromArrow(wrong, arr)
		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
	})

	t.Run("StorageMismatch", func(t *testing.T) {
		wrong := field
		wrong.Metadata = arrow.NewMetadata([]string{ExtensionNameKey}, []string{"geoarrow.linestring"})

		_, err := FromArrow(wrong, arr)
		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrLayout)
	})

	t.Run("BadMetadata", func(t *testing.T) {
		bad := field
		bad.Metadata = arrow.NewMetadata(
			[]string{ExtensionNameKey, ExtensionMetadataKey},
			[]string{"geoarrow.point", "{"})

		_, err := FromArrow(bad, arr)
		assert.Error(t, err)
	})
}

func TestStreamErrno(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"Nil", nil, 0},
		{"IncorrectType", typeErr("no such kind"), ErrnoENOSYS},
		{"Layout", layoutErr("bad buffer"), ErrnoEINVAL},
		{"Other", errors.New("boom"), ErrnoEINVAL},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, StreamErrno(testCase.err))
		})
	}
}
