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

func TestRectBuilder(t *testing.T) {
	b := NewRectBuilder(geoarrow.XY, geoarrow.Separated)
	b.Push(rect(0, 0, 2, 3))
	b.PushNull()
	b.Push(emptyRect(geoarrow.XY))

	a := b.Finish()

	require.Equal(t, 3, a.Len())
	assert.Equal(t, 1, a.NullCount())
	assert.Equal(t, geoarrow.NewType(geoarrow.TypeRect, geoarrow.XY, geoarrow.Separated), a.Type())

	t.Run("Values", func(t *testing.T) {
		v := a.Value(0)
		assert.Equal(t, 0.0, v.Min().X())
		assert.Equal(t, 2.0, v.Max().X())
		assert.Equal(t, 3.0, v.Max().Y())
		assert.False(t, v.IsEmpty())

		assert.True(t, a.IsNull(1))
		assert.Nil(t, a.Geometry(1))
		assert.True(t, a.Value(1).IsEmpty(), "null row views as the empty sentinel")

		assert.False(t, a.IsNull(2))
		assert.True(t, a.Value(2).IsEmpty())
	})

	t.Run("Slice", func(t *testing.T) {
		s := a.Slice(1, 2)

		require.Equal(t, 2, s.Len())
		assert.Equal(t, 1, s.NullCount())
		assert.True(t, s.IsNull(0))
		assert.True(t, s.Value(1).IsEmpty())
	})

	t.Run("ToCoordType", func(t *testing.T) {
		il := a.ToCoordType(geoarrow.Interleaved)

		require.Equal(t, geoarrow.Interleaved, il.Type().CoordType())
		assert.Equal(t, 2.0, il.Value(0).Max().X())
		assert.Same(t, a, a.ToCoordType(geoarrow.Separated))
	})
}

func TestRectPushGeometry(t *testing.T) {
	b := NewRectBuilder(geoarrow.XY, geoarrow.Interleaved)

	require.NoError(t, b.PushGeometry(rect(1, 1, 2, 2)))
	require.NoError(t, b.PushGeometry(nil))

	err := b.PushGeometry(point(1, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
	assert.Equal(t, 2, b.Len())
}

func TestNewRectArray(t *testing.T) {
	min := interleavedXY(0, 0, 5, 5)
	max := interleavedXY(2, 3, 6, 6)

	t.Run("Valid", func(t *testing.T) {
		a, err := NewRectArray(min, max, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, a.Len())
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := NewRectArray(min, interleavedXY(2, 3), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrLayout)
	})

	t.Run("LayoutMismatch", func(t *testing.T) {
		sep := min.ToCoordType(geoarrow.Separated)
		_, err := NewRectArray(min, sep, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrLayout)
	})
}
