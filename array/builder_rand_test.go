// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/geoarrow"
)

// Randomized push sequences mixing values, empty runs, and nulls,
// checking the offset chain each builder leaves behind: every layer
// starts at zero, never decreases, and its final value equals the
// child length.

const (
	randRows = 200
	randSeed = 0x5eed
)

func assertOffsetChain(t *testing.T, o Offsets, childLen int) {
	t.Helper()
	values := o.Values()
	require.NotEmpty(t, values)
	assert.Equal(t, int32(0), values[0])
	for i := 1; i < len(values); i++ {
		assert.LessOrEqual(t, values[i-1], values[i])
	}
	assert.Equal(t, int32(childLen), values[len(values)-1])
}

func randCoords(rng *rand.Rand, n int) []float64 {
	flat := make([]float64, 2*n)
	for i := range flat {
		flat[i] = rng.NormFloat64()
	}
	return flat
}

// randLine is empty roughly one time in four.
func randLine(rng *rand.Rand) testLine {
	return line(randCoords(rng, rng.Intn(4))...)
}

func randPolygon(rng *rand.Rand) testPolygon {
	rings := make([][]float64, rng.Intn(3))
	for i := range rings {
		rings[i] = randCoords(rng, 3+rng.Intn(3))
	}
	return polygon(rings...)
}

func randPoint(rng *rand.Rand) testPoint {
	if rng.Intn(4) == 0 {
		return emptyPoint(geoarrow.XY)
	}
	return point(rng.NormFloat64(), rng.NormFloat64())
}

func TestLineStringBuilderRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	b := NewLineStringBuilder(geoarrow.XY, geoarrow.Interleaved)

	nulls := 0
	for i := 0; i < randRows; i++ {
		if rng.Intn(5) == 0 {
			b.PushNull()
			nulls++
			continue
		}
		b.Push(randLine(rng))
	}
	a := b.Finish()

	require.Equal(t, randRows, a.Len())
	assert.Equal(t, nulls, a.NullCount())
	assertOffsetChain(t, a.Offsets(), a.Coords().Len())
}

func TestPolygonBuilderRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	b := NewPolygonBuilder(geoarrow.XY, geoarrow.Interleaved)

	nulls := 0
	for i := 0; i < randRows; i++ {
		if rng.Intn(5) == 0 {
			b.PushNull()
			nulls++
			continue
		}
		b.Push(randPolygon(rng))
	}
	a := b.Finish()

	require.Equal(t, randRows, a.Len())
	assert.Equal(t, nulls, a.NullCount())
	assertOffsetChain(t, a.RingOffsets(), a.Coords().Len())
	assertOffsetChain(t, a.GeomOffsets(), len(a.RingOffsets().Values())-1)
}

func TestMultiPointBuilderRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	b := NewMultiPointBuilder(geoarrow.XY, geoarrow.Interleaved)

	nulls := 0
	for i := 0; i < randRows; i++ {
		switch rng.Intn(5) {
		case 0:
			b.PushNull()
			nulls++
		case 1:
			b.PushPoint(randPoint(rng))
		default:
			points := make([]geoarrow.Point, rng.Intn(4))
			for j := range points {
				points[j] = randPoint(rng)
			}
			b.Push(testMultiPoint{dim: geoarrow.XY, points: points})
		}
	}
	a := b.Finish()

	require.Equal(t, randRows, a.Len())
	assert.Equal(t, nulls, a.NullCount())
	assertOffsetChain(t, a.Offsets(), a.Coords().Len())
}

func TestMultiLineStringBuilderRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	b := NewMultiLineStringBuilder(geoarrow.XY, geoarrow.Interleaved)

	nulls := 0
	for i := 0; i < randRows; i++ {
		switch rng.Intn(5) {
		case 0:
			b.PushNull()
			nulls++
		case 1:
			b.PushLineString(randLine(rng))
		default:
			lines := make([]geoarrow.LineString, rng.Intn(4))
			for j := range lines {
				lines[j] = randLine(rng)
			}
			b.Push(testMultiLine{dim: geoarrow.XY, lines: lines})
		}
	}
	a := b.Finish()

	require.Equal(t, randRows, a.Len())
	assert.Equal(t, nulls, a.NullCount())
	assertOffsetChain(t, a.PartOffsets(), a.Coords().Len())
	assertOffsetChain(t, a.GeomOffsets(), len(a.PartOffsets().Values())-1)
}

func TestMultiPolygonBuilderRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	b := NewMultiPolygonBuilder(geoarrow.XY, geoarrow.Interleaved)

	nulls := 0
	for i := 0; i < randRows; i++ {
		switch rng.Intn(5) {
		case 0:
			b.PushNull()
			nulls++
		case 1:
			b.PushPolygon(randPolygon(rng))
		default:
			polygons := make([]geoarrow.Polygon, rng.Intn(3))
			for j := range polygons {
				polygons[j] = randPolygon(rng)
			}
			b.Push(testMultiPolygon{dim: geoarrow.XY, polygons: polygons})
		}
	}
	a := b.Finish()

	require.Equal(t, randRows, a.Len())
	assert.Equal(t, nulls, a.NullCount())
	assertOffsetChain(t, a.RingOffsets(), a.Coords().Len())
	assertOffsetChain(t, a.PolygonOffsets(), len(a.RingOffsets().Values())-1)
	assertOffsetChain(t, a.GeomOffsets(), len(a.PolygonOffsets().Values())-1)
}

func TestGeometryCollectionBuilderRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	b := NewGeometryCollectionBuilder(geoarrow.XY, geoarrow.Interleaved)

	nulls := 0
	for i := 0; i < randRows; i++ {
		if rng.Intn(5) == 0 {
			b.PushNull()
			nulls++
			continue
		}
		members := make([]geoarrow.Geometry, rng.Intn(4))
		for j := range members {
			switch rng.Intn(3) {
			case 0:
				members[j] = randPoint(rng)
			case 1:
				members[j] = randLine(rng)
			default:
				members[j] = randPolygon(rng)
			}
		}
		require.NoError(t, b.Push(testCollection{dim: geoarrow.XY, members: members}))
	}
	a := b.Finish()

	require.Equal(t, randRows, a.Len())
	assert.Equal(t, nulls, a.NullCount())
	assertOffsetChain(t, a.Offsets(), a.Mixed().Len())
}
