// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"github.com/gogama/geoarrow"
)

// Chunked is an ordered sequence of same-type arrays viewed as one
// logical array. It is the unit of parallelism for construction: each
// worker builds one complete immutable chunk, and Concat merges the
// chunks afterward with a single exactly-sized allocation.
type Chunked struct {
	typ    geoarrow.Type
	chunks []Array
}

// NewChunked wraps a non-empty list of chunks, which must all carry
// the same physical type. Returns an error wrapping
// geoarrow.ErrIncorrectType on a type mismatch.
func NewChunked(chunks []Array) (*Chunked, error) {
	if len(chunks) == 0 {
		return nil, textErr("chunked array requires at least one chunk")
	}
	t := chunks[0].Type()
	for i, c := range chunks[1:] {
		if c.Type() != t {
			return nil, typeErr("chunk %d has type %s, chunk 0 has %s", i+1, c.Type(), t)
		}
	}
	return &Chunked{typ: t, chunks: chunks}, nil
}

// Type returns the common physical type of every chunk.
func (c *Chunked) Type() geoarrow.Type { return c.typ }

// NumChunks returns the number of chunks.
func (c *Chunked) NumChunks() int { return len(c.chunks) }

// Chunk returns the i-th chunk. Panics if i is out of range.
func (c *Chunked) Chunk(i int) Array {
	if i < 0 || i >= len(c.chunks) {
		fmtPanic("chunk index %d out of range [0, %d)", i, len(c.chunks))
	}
	return c.chunks[i]
}

// Len returns the total number of rows across all chunks.
func (c *Chunked) Len() int {
	n := 0
	for _, ch := range c.chunks {
		n += ch.Len()
	}
	return n
}

// NullCount returns the total number of null rows across all chunks.
func (c *Chunked) NullCount() int {
	n := 0
	for _, ch := range c.chunks {
		n += ch.NullCount()
	}
	return n
}

// Geometry returns a view of logical row i, resolving it to the chunk
// that holds it. Panics if i is out of range.
func (c *Chunked) Geometry(i int) geoarrow.Geometry {
	checkIndex(i, c.Len())
	for _, ch := range c.chunks {
		if i < ch.Len() {
			return ch.Geometry(i)
		}
		i -= ch.Len()
	}
	// Unreachable: checkIndex bounds i.
	return nil
}

// Concat merges all chunks into one array of the same type. It is the
// canonical two-pass construction: each chunk is walked once into a
// per-chunk capacity, the capacities are summed, and one exactly-sized
// builder is filled from every chunk in order.
func (c *Chunked) Concat() (Array, error) {
	dim, ct := c.typ.Dimension(), c.typ.CoordType()
	switch c.typ.Geometry() {
	case geoarrow.TypePoint:
		var total PointCapacity
		for _, ch := range c.chunks {
			var cc PointCapacity
			if err := addAll(ch, cc.AddGeometry); err != nil {
				return nil, err
			}
			total = total.Add(cc)
		}
		b := NewPointBuilderWithCapacity(dim, ct, total)
		if err := pushAll(c.chunks, b.PushGeometry); err != nil {
			return nil, err
		}
		return b.Finish(), nil
	case geoarrow.TypeLineString:
		var total LineStringCapacity
		for _, ch := range c.chunks {
			var cc LineStringCapacity
			if err := addAll(ch, cc.AddGeometry); err != nil {
				return nil, err
			}
			total = total.Add(cc)
		}
		b := NewLineStringBuilderWithCapacity(dim, ct, total)
		if err := pushAll(c.chunks, b.PushGeometry); err != nil {
			return nil, err
		}
		return b.Finish(), nil
	case geoarrow.TypePolygon:
		var total PolygonCapacity
		for _, ch := range c.chunks {
			var cc PolygonCapacity
			if err := addAll(ch, cc.AddGeometry); err != nil {
				return nil, err
			}
			total = total.Add(cc)
		}
		b := NewPolygonBuilderWithCapacity(dim, ct, total)
		if err := pushAll(c.chunks, b.PushGeometry); err != nil {
			return nil, err
		}
		return b.Finish(), nil
	case geoarrow.TypeMultiPoint:
		var total MultiPointCapacity
		for _, ch := range c.chunks {
			var cc MultiPointCapacity
			if err := addAll(ch, cc.AddGeometry); err != nil {
				return nil, err
			}
			total = total.Add(cc)
		}
		b := NewMultiPointBuilderWithCapacity(dim, ct, total)
		if err := pushAll(c.chunks, b.PushGeometry); err != nil {
			return nil, err
		}
		return b.Finish(), nil
	case geoarrow.TypeMultiLineString:
		var total MultiLineStringCapacity
		for _, ch := range c.chunks {
			var cc MultiLineStringCapacity
			if err := addAll(ch, cc.AddGeometry); err != nil {
				return nil, err
			}
			total = total.Add(cc)
		}
		b := NewMultiLineStringBuilderWithCapacity(dim, ct, total)
		if err := pushAll(c.chunks, b.PushGeometry); err != nil {
			return nil, err
		}
		return b.Finish(), nil
	case geoarrow.TypeMultiPolygon:
		var total MultiPolygonCapacity
		for _, ch := range c.chunks {
			var cc MultiPolygonCapacity
			if err := addAll(ch, cc.AddGeometry); err != nil {
				return nil, err
			}
			total = total.Add(cc)
		}
		b := NewMultiPolygonBuilderWithCapacity(dim, ct, total)
		if err := pushAll(c.chunks, b.PushGeometry); err != nil {
			return nil, err
		}
		return b.Finish(), nil
	case geoarrow.TypeGeometryCollection:
		var total GeometryCollectionCapacity
		for _, ch := range c.chunks {
			var cc GeometryCollectionCapacity
			if err := addAll(ch, cc.AddGeometry); err != nil {
				return nil, err
			}
			total = total.Add(cc)
		}
		b := NewGeometryCollectionBuilderWithCapacity(dim, ct, total)
		if err := pushAll(c.chunks, b.PushGeometry); err != nil {
			return nil, err
		}
		return b.Finish(), nil
	case geoarrow.TypeRect:
		var total RectCapacity
		for _, ch := range c.chunks {
			var cc RectCapacity
			if err := addAll(ch, cc.AddGeometry); err != nil {
				return nil, err
			}
			total = total.Add(cc)
		}
		b := NewRectBuilderWithCapacity(dim, ct, total)
		if err := pushAll(c.chunks, b.PushGeometry); err != nil {
			return nil, err
		}
		return b.Finish(), nil
	case geoarrow.TypeMixed:
		var total MixedCapacity
		for _, ch := range c.chunks {
			var cc MixedCapacity
			if err := addAll(ch, cc.AddGeometry); err != nil {
				return nil, err
			}
			total = total.Add(cc)
		}
		b := NewMixedBuilderWithCapacity(dim, ct, total)
		if err := pushAll(c.chunks, b.PushGeometry); err != nil {
			return nil, err
		}
		return b.Finish(), nil
	default:
		fmtPanic("unknown geometry type %s", c.typ.Geometry())
		return nil, nil
	}
}

// addAll feeds every row of one chunk to a capacity add function.
func addAll(ch Array, add func(geoarrow.Geometry) error) error {
	for i, n := 0, ch.Len(); i < n; i++ {
		if err := add(ch.Geometry(i)); err != nil {
			return err
		}
	}
	return nil
}

// pushAll feeds every row of every chunk to a builder push function.
func pushAll(chunks []Array, push func(geoarrow.Geometry) error) error {
	for _, ch := range chunks {
		for i, n := 0, ch.Len(); i < n; i++ {
			if err := push(ch.Geometry(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
