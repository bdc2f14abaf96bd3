// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wkb

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// Plain struct implementations of the accessor interfaces, used as
// marshal inputs.

type testPoint struct {
	dim geoarrow.Dimension
	c   geoarrow.Coord // nil means empty
}

func (p testPoint) GeometryType() geoarrow.GeometryType { return geoarrow.TypePoint }
func (p testPoint) Dimension() geoarrow.Dimension       { return p.dim }

func (p testPoint) Coord() (geoarrow.Coord, bool) {
	if p.c == nil {
		return nil, false
	}
	return p.c, true
}

func point(x, y float64) testPoint {
	return testPoint{dim: geoarrow.XY, c: coord.NewView(geoarrow.XY, x, y)}
}

func pointDim(dim geoarrow.Dimension, values ...float64) testPoint {
	return testPoint{dim: dim, c: coord.NewView(dim, values...)}
}

type testLine struct {
	dim    geoarrow.Dimension
	coords []geoarrow.Coord
}

func (l testLine) GeometryType() geoarrow.GeometryType { return geoarrow.TypeLineString }
func (l testLine) Dimension() geoarrow.Dimension       { return l.dim }
func (l testLine) NumCoords() int                      { return len(l.coords) }
func (l testLine) Coord(i int) geoarrow.Coord          { return l.coords[i] }

func line(values ...float64) testLine {
	l := testLine{dim: geoarrow.XY}
	for i := 0; i+1 < len(values); i += 2 {
		l.coords = append(l.coords, coord.NewView(geoarrow.XY, values[i], values[i+1]))
	}
	return l
}

type testPolygon struct {
	dim   geoarrow.Dimension
	rings []testLine
}

func (p testPolygon) GeometryType() geoarrow.GeometryType { return geoarrow.TypePolygon }
func (p testPolygon) Dimension() geoarrow.Dimension       { return p.dim }

func (p testPolygon) Exterior() (geoarrow.LineString, bool) {
	if len(p.rings) == 0 {
		return nil, false
	}
	return p.rings[0], true
}

func (p testPolygon) NumInteriors() int {
	if len(p.rings) == 0 {
		return 0
	}
	return len(p.rings) - 1
}
func (p testPolygon) Interior(i int) geoarrow.LineString { return p.rings[i+1] }

func polygon(rings ...[]float64) testPolygon {
	p := testPolygon{dim: geoarrow.XY}
	for _, ring := range rings {
		p.rings = append(p.rings, line(ring...))
	}
	return p
}

type testMultiPoint struct {
	dim    geoarrow.Dimension
	points []geoarrow.Point
}

func (m testMultiPoint) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPoint }
func (m testMultiPoint) Dimension() geoarrow.Dimension       { return m.dim }
func (m testMultiPoint) NumPoints() int                      { return len(m.points) }
func (m testMultiPoint) Point(i int) geoarrow.Point          { return m.points[i] }

type testMultiLine struct {
	dim   geoarrow.Dimension
	lines []geoarrow.LineString
}

func (m testMultiLine) GeometryType() geoarrow.GeometryType  { return geoarrow.TypeMultiLineString }
func (m testMultiLine) Dimension() geoarrow.Dimension        { return m.dim }
func (m testMultiLine) NumLineStrings() int                  { return len(m.lines) }
func (m testMultiLine) LineString(i int) geoarrow.LineString { return m.lines[i] }

type testMultiPolygon struct {
	dim      geoarrow.Dimension
	polygons []geoarrow.Polygon
}

func (m testMultiPolygon) GeometryType() geoarrow.GeometryType { return geoarrow.TypeMultiPolygon }
func (m testMultiPolygon) Dimension() geoarrow.Dimension       { return m.dim }
func (m testMultiPolygon) NumPolygons() int                    { return len(m.polygons) }
func (m testMultiPolygon) Polygon(i int) geoarrow.Polygon      { return m.polygons[i] }

type testCollection struct {
	dim     geoarrow.Dimension
	members []geoarrow.Geometry
}

func (c testCollection) GeometryType() geoarrow.GeometryType {
	return geoarrow.TypeGeometryCollection
}
func (c testCollection) Dimension() geoarrow.Dimension { return c.dim }
func (c testCollection) NumGeometries() int            { return len(c.members) }
func (c testCollection) Geom(i int) geoarrow.Geometry  { return c.members[i] }

type testRect struct {
	dim      geoarrow.Dimension
	min, max geoarrow.Coord
}

func (r testRect) GeometryType() geoarrow.GeometryType { return geoarrow.TypeRect }
func (r testRect) Dimension() geoarrow.Dimension       { return r.dim }
func (r testRect) Min() geoarrow.Coord                 { return r.min }
func (r testRect) Max() geoarrow.Coord                 { return r.max }

func TestMarshalPoint(t *testing.T) {
	data, err := Marshal(point(1, 2))
	require.NoError(t, err)

	expected := []byte{1, 1, 0, 0, 0}
	expected = binary.LittleEndian.AppendUint64(expected, math.Float64bits(1))
	expected = binary.LittleEndian.AppendUint64(expected, math.Float64bits(2))
	assert.Equal(t, expected, data)
}

func TestMarshalEmptyPoint(t *testing.T) {
	data, err := Marshal(testPoint{dim: geoarrow.XY})
	require.NoError(t, err)

	require.Len(t, data, 21)
	x := math.Float64frombits(binary.LittleEndian.Uint64(data[5:]))
	assert.True(t, math.IsNaN(x), "empty point writes NaN coordinates")

	g, err := Parse(data)
	require.NoError(t, err)
	p, ok := g.(Point)
	require.True(t, ok)
	_, ok = p.Coord()
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	square := []float64{0, 0, 4, 0, 4, 4, 0, 4, 0, 0}
	hole := []float64{1, 1, 2, 1, 2, 2, 1, 1}

	testCases := []struct {
		name  string
		input geoarrow.Geometry
	}{
		{"Point", point(1, 2)},
		{"Point.XYZ", pointDim(geoarrow.XYZ, 1, 2, 3)},
		{"Point.XYM", pointDim(geoarrow.XYM, 1, 2, 3)},
		{"Point.XYZM", pointDim(geoarrow.XYZM, 1, 2, 3, 4)},
		{"LineString", line(0, 0, 3, 4, 5, 6)},
		{"LineString.Empty", line()},
		{"Polygon", polygon(square, hole)},
		{"Polygon.Empty", polygon()},
		{"MultiPoint", testMultiPoint{dim: geoarrow.XY, points: []geoarrow.Point{
			point(1, 2), testPoint{dim: geoarrow.XY}, point(3, 4),
		}}},
		{"MultiPoint.Empty", testMultiPoint{dim: geoarrow.XY}},
		{"MultiLineString", testMultiLine{dim: geoarrow.XY, lines: []geoarrow.LineString{
			line(0, 0, 1, 1), line(5, 5, 6, 6, 7, 7),
		}}},
		{"MultiPolygon", testMultiPolygon{dim: geoarrow.XY, polygons: []geoarrow.Polygon{
			polygon(square, hole), polygon(),
		}}},
		{"GeometryCollection", testCollection{dim: geoarrow.XY, members: []geoarrow.Geometry{
			point(1, 2), line(0, 0, 1, 1), polygon(square),
		}}},
		{"GeometryCollection.Empty", testCollection{dim: geoarrow.XY}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			data, err := Marshal(testCase.input)
			require.NoError(t, err)

			n, err := Size(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, n, len(data), "Size must match the marshaled length")

			g, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, len(data), g.Size())
			assert.True(t, geoarrow.GeometryEqual(testCase.input, g))
		})
	}
}

func TestMarshalRect(t *testing.T) {
	r := testRect{
		dim: geoarrow.XY,
		min: coord.NewView(geoarrow.XY, 0, 0),
		max: coord.NewView(geoarrow.XY, 2, 3),
	}

	data, err := Marshal(r)
	require.NoError(t, err)

	g, err := Parse(data)
	require.NoError(t, err)
	p, ok := g.(Polygon)
	require.True(t, ok, "rects serialize as polygons")
	ext, ok := p.Exterior()
	require.True(t, ok)
	assert.Equal(t, 5, ext.NumCoords())
	assert.True(t, geoarrow.GeometryEqual(geoarrow.RectAsPolygon(r), p))
}

func TestMarshalNil(t *testing.T) {
	_, err := Marshal(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)

	_, err = Size(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}

func TestParseBigEndian(t *testing.T) {
	data := []byte{0}
	data = binary.BigEndian.AppendUint32(data, 1)
	data = binary.BigEndian.AppendUint64(data, math.Float64bits(1.5))
	data = binary.BigEndian.AppendUint64(data, math.Float64bits(-2.5))

	g, err := Parse(data)
	require.NoError(t, err)

	p, ok := g.(Point)
	require.True(t, ok)
	c, ok := p.Coord()
	require.True(t, ok)
	assert.Equal(t, 1.5, c.X())
	assert.Equal(t, -2.5, c.Y())
}

func TestParseISOCode(t *testing.T) {
	// ISO 2001 is an XYM point; the writer emits the compact +20 form
	// but the reader accepts both.
	data := []byte{1}
	data = binary.LittleEndian.AppendUint32(data, 2001)
	for _, v := range []float64{1, 2, 3} {
		data = binary.LittleEndian.AppendUint64(data, math.Float64bits(v))
	}

	g, err := Parse(data)
	require.NoError(t, err)

	require.Equal(t, geoarrow.XYM, g.Dimension())
	p, ok := g.(Point)
	require.True(t, ok)
	c, ok := p.Coord()
	require.True(t, ok)
	m, ok := c.M()
	require.True(t, ok)
	assert.Equal(t, 3.0, m)
}

func TestParseSequence(t *testing.T) {
	data, err := Marshal(point(1, 2))
	require.NoError(t, err)
	data, err = Append(data, line(0, 0, 1, 1))
	require.NoError(t, err)

	first, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, geoarrow.TypePoint, first.GeometryType())

	second, err := Parse(data[first.Size():])
	require.NoError(t, err)
	assert.Equal(t, geoarrow.TypeLineString, second.GeometryType())
	assert.Equal(t, len(data), first.Size()+second.Size())
}

func TestParseErrors(t *testing.T) {
	valid, err := Marshal(line(0, 0, 1, 1))
	require.NoError(t, err)

	t.Run("Truncated", func(t *testing.T) {
		for _, n := range []int{0, 1, 4, 8, len(valid) - 1} {
			_, err := Parse(valid[:n])

			require.Error(t, err, "length %d", n)
			assert.ErrorIs(t, err, geoarrow.ErrWKB, "length %d", n)
		}
	})

	t.Run("BadOrderFlag", func(t *testing.T) {
		data := append([]byte{2}, valid[1:]...)

		_, err := Parse(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrWKB)
	})

	t.Run("UnknownTypeCode", func(t *testing.T) {
		data := []byte{1}
		data = binary.LittleEndian.AppendUint32(data, 8)

		_, err := Parse(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrWKB)
	})

	t.Run("CorruptCount", func(t *testing.T) {
		// A count far beyond the remaining bytes must fail before any
		// allocation.
		data := []byte{1}
		data = binary.LittleEndian.AppendUint32(data, 2) // line string
		data = binary.LittleEndian.AppendUint32(data, math.MaxUint32)

		_, err := Parse(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrWKB)
	})

	t.Run("WrongMemberKind", func(t *testing.T) {
		// A multi point whose single member is a line string.
		data := []byte{1}
		data = binary.LittleEndian.AppendUint32(data, 4)
		data = binary.LittleEndian.AppendUint32(data, 1)
		member, err := Marshal(line(0, 0, 1, 1))
		require.NoError(t, err)
		data = append(data, member...)

		_, err = Parse(data)
		require.Error(t, err)
		assert.ErrorIs(t, err, geoarrow.ErrWKB)
	})
}

func TestParsedViews(t *testing.T) {
	square := []float64{0, 0, 4, 0, 4, 4, 0, 0}
	hole := []float64{1, 1, 2, 1, 1, 1}
	data, err := Marshal(polygon(square, hole))
	require.NoError(t, err)

	g, err := Parse(data)
	require.NoError(t, err)
	p, ok := g.(Polygon)
	require.True(t, ok)

	ext, ok := p.Exterior()
	require.True(t, ok)
	assert.Equal(t, 4, ext.NumCoords())
	assert.Equal(t, 4.0, ext.Coord(1).X())
	assert.Panics(t, func() { ext.Coord(4) })

	require.Equal(t, 1, p.NumInteriors())
	assert.Equal(t, 2.0, p.Interior(0).Coord(1).X())
	assert.Panics(t, func() { p.Interior(1) })
}
