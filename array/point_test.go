// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"testing"

	"github.com/gogama/geoarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointBuilder(t *testing.T) {
	b := NewPointBuilder(geoarrow.XY, geoarrow.Interleaved)
	b.Push(point(1, 2))
	b.Push(emptyPoint(geoarrow.XY))
	b.PushNull()
	b.Push(point(3, 4))

	a := b.Finish()

	require.Equal(t, 4, a.Len())
	assert.Equal(t, 1, a.NullCount())
	assert.Equal(t, geoarrow.NewType(geoarrow.TypePoint, geoarrow.XY, geoarrow.Interleaved), a.Type())

	t.Run("Values", func(t *testing.T) {
		c, ok := a.Value(0).Coord()
		require.True(t, ok)
		assert.Equal(t, 1.0, c.X())
		assert.Equal(t, 2.0, c.Y())

		_, ok = a.Value(1).Coord()
		assert.False(t, ok, "empty point has no coordinate")
		assert.False(t, a.IsNull(1), "empty point is not null")

		assert.True(t, a.IsNull(2))
		assert.Nil(t, a.Geometry(2))
		_, ok = a.Value(2).Coord()
		assert.False(t, ok, "null row views as an empty point")

		g := a.Geometry(3)
		require.NotNil(t, g)
		assert.Equal(t, geoarrow.TypePoint, g.GeometryType())
	})

	t.Run("IndexPanics", func(t *testing.T) {
		assert.Panics(t, func() { a.Value(4) })
		assert.Panics(t, func() { a.IsNull(-1) })
	})
}

func TestPointBuilderPushGeometry(t *testing.T) {
	b := NewPointBuilder(geoarrow.XY, geoarrow.Interleaved)

	require.NoError(t, b.PushGeometry(point(1, 2)))
	require.NoError(t, b.PushGeometry(nil))

	err := b.PushGeometry(line(0, 0, 1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
	assert.Equal(t, 2, b.Len(), "failed push leaves the builder unchanged")
}

func TestNewPointArray(t *testing.T) {
	coords := interleavedXY(1, 2, 3, 4, 5, 6)

	t.Run("NoNulls", func(t *testing.T) {
		a, err := NewPointArray(coords, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, a.Len())
		assert.Zero(t, a.NullCount())
	})

	t.Run("WithBitmap", func(t *testing.T) {
		a, err := NewPointArray(coords, []byte{0b101})

		require.NoError(t, err)
		assert.Equal(t, 1, a.NullCount())
		assert.True(t, a.IsNull(1))
	})

	t.Run("ShortBitmap", func(t *testing.T) {
		long := interleavedXY(make([]float64, 2*9)...)
		_, err := NewPointArray(long, []byte{0xff})

		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrLayout)
	})
}

func TestPointArraySlice(t *testing.T) {
	b := NewPointBuilder(geoarrow.XY, geoarrow.Interleaved)
	for i := 0; i < 5; i++ {
		if i == 3 {
			b.PushNull()
		} else {
			b.Push(point(float64(i), 0))
		}
	}
	a := b.Finish()

	s := a.Slice(2, 2)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.NullCount())
	c, ok := s.Value(0).Coord()
	require.True(t, ok)
	assert.Equal(t, 2.0, c.X())
	assert.True(t, s.IsNull(1))

	t.Run("NullFree", func(t *testing.T) {
		s := a.Slice(0, 3)

		assert.Zero(t, s.NullCount())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		assert.Panics(t, func() { a.Slice(4, 2) })
	})
}

func TestPointArrayToCoordType(t *testing.T) {
	b := NewPointBuilder(geoarrow.XYZ, geoarrow.Interleaved)
	b.Push(pointZ(1, 2, 3))
	a := b.Finish()

	same := a.ToCoordType(geoarrow.Interleaved)
	assert.Same(t, a, same)

	sep := a.ToCoordType(geoarrow.Separated)
	require.Equal(t, geoarrow.Separated, sep.Type().CoordType())
	c, ok := sep.Value(0).Coord()
	require.True(t, ok)
	z, ok := c.Z()
	require.True(t, ok)
	assert.Equal(t, 3.0, z)
}

func TestPointCapacity(t *testing.T) {
	var c PointCapacity
	c.AddPoint(point(1, 2))
	c.AddPoint(nil)
	require.NoError(t, c.AddGeometry(emptyPoint(geoarrow.XY)))

	assert.Equal(t, 3, c.Geoms)
	assert.Equal(t, PointCapacity{Geoms: 5}, c.Add(PointCapacity{Geoms: 2}))

	err := c.AddGeometry(rect(0, 0, 1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}

func TestPointMetadata(t *testing.T) {
	b := NewPointBuilder(geoarrow.XY, geoarrow.Interleaved)
	b.Push(point(1, 2))
	a := b.Finish()

	m := geoarrow.Metadata{CRS: "EPSG:4326", CRSType: geoarrow.CRSTypeAuthorityCode}
	tagged := a.WithMetadata(m)

	assert.Equal(t, m, tagged.Metadata())
	assert.Zero(t, a.Metadata(), "original array is unchanged")
	assert.Equal(t, m, tagged.Slice(0, 1).Metadata(), "slices carry metadata")
}
