// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"errors"

	"github.com/apache/arrow-go/v18/arrow"
	arrowarray "github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/gogama/geoarrow"
	"github.com/gogama/geoarrow/coord"
)

// Field metadata keys defined by the Arrow extension type mechanism.
const (
	ExtensionNameKey     = "ARROW:extension:name"
	ExtensionMetadataKey = "ARROW:extension:metadata"
)

// POSIX-style error codes used by the Arrow C stream last_error
// contract. A stream implementation maps every error it surfaces to
// one of these before handing it across the ABI.
const (
	ErrnoEIO    = 5
	ErrnoENOMEM = 12
	ErrnoEINVAL = 22
	ErrnoENOSYS = 78
)

// StreamErrno maps an error from this package to the code a C stream
// implementation must report: 0 for nil, ErrnoENOSYS for an
// unsupported geometry kind, ErrnoEINVAL for everything else.
// Allocation and I/O failures happen outside this package; a stream
// implementation reports those as ErrnoENOMEM and ErrnoEIO itself.
func StreamErrno(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, geoarrow.ErrIncorrectType):
		return ErrnoENOSYS
	default:
		return ErrnoEINVAL
	}
}

// simpleKinds lists the dense union children of a mixed array, in
// wire order.
var simpleKinds = [...]geoarrow.GeometryType{
	geoarrow.TypePoint,
	geoarrow.TypeLineString,
	geoarrow.TypePolygon,
	geoarrow.TypeMultiPoint,
	geoarrow.TypeMultiLineString,
	geoarrow.TypeMultiPolygon,
}

// ArrowType returns the Arrow storage type for a geometry array type:
// FixedSizeList or Struct coordinates, one level of List nesting per
// offset layer, a Struct of corner axes for boxes, and a dense union
// for mixed geometries. Box storage is always struct-encoded, so the
// coordinate layout does not affect it.
func ArrowType(t geoarrow.Type) arrow.DataType {
	dim, ct := t.Dimension(), t.CoordType()
	switch t.Geometry() {
	case geoarrow.TypePoint:
		return coordArrowType(dim, ct)
	case geoarrow.TypeLineString:
		return arrow.ListOfField(arrow.Field{Name: "vertices", Type: coordArrowType(dim, ct)})
	case geoarrow.TypePolygon:
		rings := arrow.ListOfField(arrow.Field{Name: "vertices", Type: coordArrowType(dim, ct)})
		return arrow.ListOfField(arrow.Field{Name: "rings", Type: rings})
	case geoarrow.TypeMultiPoint:
		return arrow.ListOfField(arrow.Field{Name: "points", Type: coordArrowType(dim, ct)})
	case geoarrow.TypeMultiLineString:
		lines := arrow.ListOfField(arrow.Field{Name: "vertices", Type: coordArrowType(dim, ct)})
		return arrow.ListOfField(arrow.Field{Name: "linestrings", Type: lines})
	case geoarrow.TypeMultiPolygon:
		rings := arrow.ListOfField(arrow.Field{Name: "vertices", Type: coordArrowType(dim, ct)})
		polygons := arrow.ListOfField(arrow.Field{Name: "rings", Type: rings})
		return arrow.ListOfField(arrow.Field{Name: "polygons", Type: polygons})
	case geoarrow.TypeGeometryCollection:
		return arrow.ListOfField(arrow.Field{Name: "geometries", Type: mixedArrowType(dim, ct)})
	case geoarrow.TypeRect:
		return rectArrowType(dim)
	case geoarrow.TypeMixed:
		return mixedArrowType(dim, ct)
	default:
		fmtPanic("unknown geometry type %s", t.Geometry())
		return nil
	}
}

func coordArrowType(dim geoarrow.Dimension, ct geoarrow.CoordType) arrow.DataType {
	if ct == geoarrow.Interleaved {
		return arrow.FixedSizeListOfField(int32(dim.Size()),
			arrow.Field{Name: interleavedName(dim), Type: arrow.PrimitiveTypes.Float64})
	}
	axes := axisNames(dim)
	fields := make([]arrow.Field, len(axes))
	for i, name := range axes {
		fields[i] = arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64}
	}
	return arrow.StructOf(fields...)
}

func rectArrowType(dim geoarrow.Dimension) arrow.DataType {
	names := rectFieldNames(dim)
	fields := make([]arrow.Field, len(names))
	for i, name := range names {
		fields[i] = arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64}
	}
	return arrow.StructOf(fields...)
}

func mixedArrowType(dim geoarrow.Dimension, ct geoarrow.CoordType) arrow.DataType {
	fields := make([]arrow.Field, len(simpleKinds))
	codes := make([]arrow.UnionTypeCode, len(simpleKinds))
	for i, t := range simpleKinds {
		fields[i] = arrow.Field{
			Name:     t.String(),
			Type:     ArrowType(geoarrow.NewType(t, dim, ct)),
			Nullable: true,
		}
		codes[i] = arrow.UnionTypeCode(mixedTypeID(t, dim))
	}
	return arrow.DenseUnionOf(fields, codes)
}

func interleavedName(dim geoarrow.Dimension) string {
	switch dim {
	case geoarrow.XY:
		return "xy"
	case geoarrow.XYZ:
		return "xyz"
	case geoarrow.XYM:
		return "xym"
	default:
		return "xyzm"
	}
}

func axisNames(dim geoarrow.Dimension) []string {
	switch dim {
	case geoarrow.XY:
		return []string{"x", "y"}
	case geoarrow.XYZ:
		return []string{"x", "y", "z"}
	case geoarrow.XYM:
		return []string{"x", "y", "m"}
	default:
		return []string{"x", "y", "z", "m"}
	}
}

func rectFieldNames(dim geoarrow.Dimension) []string {
	axes := axisNames(dim)
	names := make([]string, 0, 2*len(axes))
	for _, a := range axes {
		names = append(names, a+"min")
	}
	for _, a := range axes {
		names = append(names, a+"max")
	}
	return names
}

// ToArrow converts an array to its Arrow representation: a field
// carrying the GeoArrow extension name and metadata, and an Arrow
// array sharing the geometry array's buffers. Coordinate, offset, and
// type-id buffers are reinterpreted, never copied; the two exceptions
// are a validity bitmap sliced to a mid-byte bit offset, and the
// corner buffers of an interleaved rect array, which convert to the
// struct-encoded box layout.
func ToArrow(a Array) (arrow.Field, arrow.Array) {
	data := arrowData(a)
	defer data.Release()
	return arrowField(a), arrowarray.MakeFromData(data)
}

func arrowField(a Array) arrow.Field {
	keys := []string{ExtensionNameKey}
	values := []string{a.Type().ExtensionName()}
	if a.Metadata() != (geoarrow.Metadata{}) {
		keys = append(keys, ExtensionMetadataKey)
		values = append(values, a.Metadata().Serialize())
	}
	return arrow.Field{
		Name:     "geometry",
		Type:     ArrowType(a.Type()),
		Nullable: true,
		Metadata: arrow.NewMetadata(keys, values),
	}
}

func arrowData(a Array) arrow.ArrayData {
	switch c := a.(type) {
	case *PointArray:
		return coordData(c.coords, c.validity)
	case *LineStringArray:
		return listCoordData(ArrowType(c.Type()), c.coords, c.offsets, c.validity)
	case *MultiPointArray:
		return listCoordData(ArrowType(c.Type()), c.coords, c.offsets, c.validity)
	case *PolygonArray:
		return nestedListData(ArrowType(c.Type()), c.coords, c.geomOffsets, c.validity, c.ringOffsets)
	case *MultiLineStringArray:
		return nestedListData(ArrowType(c.Type()), c.coords, c.geomOffsets, c.validity, c.partOffsets)
	case *MultiPolygonArray:
		return nestedListData(ArrowType(c.Type()), c.coords, c.geomOffsets, c.validity, c.polygonOffsets, c.ringOffsets)
	case *RectArray:
		return rectData(c)
	case *MixedArray:
		return mixedData(c)
	case *GeometryCollectionArray:
		dt := ArrowType(c.Type())
		child := mixedData(c.mixed)
		return arrowarray.NewData(dt, c.Len(),
			[]*memory.Buffer{bitsBuffer(c.validity), int32Buffer(c.offsets.Values())},
			[]arrow.ArrayData{child}, c.validity.nullCount(), 0)
	default:
		fmtPanic("unknown array type %T", a)
		return nil
	}
}

// coordData builds the FixedSizeList or Struct coordinate storage.
// The validity bitmap, if any, attaches at this level for point
// arrays; nested kinds pass nil.
func coordData(b coord.Buffer, v *validity) arrow.ArrayData {
	dt := coordArrowType(b.Dim(), b.CoordType())
	if b.CoordType() == geoarrow.Interleaved {
		vals := b.InterleavedValues()
		return arrowarray.NewData(dt, b.Len(),
			[]*memory.Buffer{bitsBuffer(v)},
			[]arrow.ArrayData{float64Data(vals)}, v.nullCount(), 0)
	}
	children := make([]arrow.ArrayData, b.Dim().Size())
	for axis := range children {
		children[axis] = float64Data(b.SeparatedValues(axis))
	}
	return arrowarray.NewData(dt, b.Len(), []*memory.Buffer{bitsBuffer(v)}, children, v.nullCount(), 0)
}

// listCoordData builds a single-level List over coordinate storage,
// the shape shared by line string and multi point arrays.
func listCoordData(dt arrow.DataType, coords coord.Buffer, offsets Offsets, v *validity) arrow.ArrayData {
	return arrowarray.NewData(dt, offsets.Len(),
		[]*memory.Buffer{bitsBuffer(v), int32Buffer(offsets.Values())},
		[]arrow.ArrayData{coordData(coords, nil)}, v.nullCount(), 0)
}

// nestedListData builds a multi-level List over coordinate storage.
// inner holds the offset layers from the innermost outward; only the
// outermost layer carries the validity bitmap. The inner layers are
// full buffers even on a sliced array, so only the outer offsets are
// windowed.
func nestedListData(dt arrow.DataType, coords coord.Buffer, outer Offsets, v *validity, inner ...Offsets) arrow.ArrayData {
	// The type of layer inner[i] is the (i+1)-th list element type of
	// dt: inner[0] sits just inside the outer layer, inner[len-1] is
	// innermost.
	types := make([]*arrow.ListType, len(inner))
	elem := dt.(*arrow.ListType).Elem()
	for i := range inner {
		types[i] = elem.(*arrow.ListType)
		elem = types[i].Elem()
	}
	data := coordData(coords, nil)
	for i := len(inner) - 1; i >= 0; i-- {
		data = arrowarray.NewData(types[i], inner[i].Len(),
			[]*memory.Buffer{nil, int32Buffer(inner[i].Values())},
			[]arrow.ArrayData{data}, 0, 0)
	}
	return arrowarray.NewData(dt, outer.Len(),
		[]*memory.Buffer{bitsBuffer(v), int32Buffer(outer.Values())},
		[]arrow.ArrayData{data}, v.nullCount(), 0)
}

func rectData(a *RectArray) arrow.ArrayData {
	// Box storage is a struct of corner axes; interleaved corner
	// buffers convert on export.
	min := a.min.ToCoordType(geoarrow.Separated)
	max := a.max.ToCoordType(geoarrow.Separated)
	size := min.Dim().Size()
	children := make([]arrow.ArrayData, 2*size)
	for axis := 0; axis < size; axis++ {
		children[axis] = float64Data(min.SeparatedValues(axis))
		children[size+axis] = float64Data(max.SeparatedValues(axis))
	}
	return arrowarray.NewData(rectArrowType(min.Dim()), a.Len(),
		[]*memory.Buffer{bitsBuffer(a.validity)}, children, a.validity.nullCount(), 0)
}

func mixedData(a *MixedArray) arrow.ArrayData {
	dt := mixedArrowType(a.dim, a.coordType)
	children := make([]arrow.ArrayData, len(simpleKinds))
	for i, t := range simpleKinds {
		c := a.child(t)
		if c == nil {
			c = emptySimple(t, a.dim, a.coordType)
		}
		children[i] = arrowData(c)
	}
	// Dense unions carry no top-level validity; null rows are null
	// rows of the child they point at.
	return arrowarray.NewData(dt, a.Len(),
		[]*memory.Buffer{nil, int8Buffer(a.typeIDs), int32Buffer(a.offsets)},
		children, 0, 0)
}

// emptySimple returns a zero-row array of a simple kind, used to fill
// absent dense union children on export.
func emptySimple(t geoarrow.GeometryType, dim geoarrow.Dimension, ct geoarrow.CoordType) Array {
	switch t {
	case geoarrow.TypePoint:
		return NewPointBuilder(dim, ct).Finish()
	case geoarrow.TypeLineString:
		return NewLineStringBuilder(dim, ct).Finish()
	case geoarrow.TypePolygon:
		return NewPolygonBuilder(dim, ct).Finish()
	case geoarrow.TypeMultiPoint:
		return NewMultiPointBuilder(dim, ct).Finish()
	case geoarrow.TypeMultiLineString:
		return NewMultiLineStringBuilder(dim, ct).Finish()
	case geoarrow.TypeMultiPolygon:
		return NewMultiPolygonBuilder(dim, ct).Finish()
	default:
		fmtPanic("no simple child for geometry type %s", t)
		return nil
	}
}

func float64Data(vals []float64) arrow.ArrayData {
	return arrowarray.NewData(arrow.PrimitiveTypes.Float64, len(vals),
		[]*memory.Buffer{nil, float64Buffer(vals)}, nil, 0, 0)
}

func float64Buffer(vals []float64) *memory.Buffer {
	return memory.NewBufferBytes(arrow.Float64Traits.CastToBytes(vals))
}

func int32Buffer(vals []int32) *memory.Buffer {
	return memory.NewBufferBytes(arrow.Int32Traits.CastToBytes(vals))
}

func int8Buffer(vals []int8) *memory.Buffer {
	return memory.NewBufferBytes(arrow.Int8Traits.CastToBytes(vals))
}

func bitsBuffer(v *validity) *memory.Buffer {
	bits := v.exportBits()
	if bits == nil {
		return nil
	}
	return memory.NewBufferBytes(bits)
}

// FromArrow converts an Arrow field and array back to a geometry
// array. The field must carry a GeoArrow extension name; the array is
// untrusted and every buffer invariant is re-validated, so a
// malformed import surfaces an error wrapping geoarrow.ErrLayout
// rather than corrupt indexing later. Buffers are shared with the
// input wherever the storage matches, the same cases as ToArrow.
func FromArrow(field arrow.Field, arr arrow.Array) (Array, error) {
	name := metadataValue(field.Metadata, ExtensionNameKey)
	if name == "" {
		return nil, typeErr("field %q carries no GeoArrow extension name", field.Name)
	}
	meta, err := geoarrow.ParseMetadata(metadataValue(field.Metadata, ExtensionMetadataKey))
	if err != nil {
		return nil, err
	}
	data := arr.Data()
	switch name {
	case "geoarrow.point":
		a, err := importPoint(data)
		return withMeta(a, meta, err)
	case "geoarrow.linestring":
		a, err := importLineString(data)
		return withMeta(a, meta, err)
	case "geoarrow.polygon":
		a, err := importPolygon(data)
		return withMeta(a, meta, err)
	case "geoarrow.multipoint":
		a, err := importMultiPoint(data)
		return withMeta(a, meta, err)
	case "geoarrow.multilinestring":
		a, err := importMultiLineString(data)
		return withMeta(a, meta, err)
	case "geoarrow.multipolygon":
		a, err := importMultiPolygon(data)
		return withMeta(a, meta, err)
	case "geoarrow.geometrycollection":
		a, err := importGeometryCollection(data)
		return withMeta(a, meta, err)
	case "geoarrow.box":
		a, err := importRect(data)
		return withMeta(a, meta, err)
	case "geoarrow.geometry":
		a, err := importMixed(data)
		return withMeta(a, meta, err)
	default:
		return nil, typeErr("unknown GeoArrow extension name %q", name)
	}
}

func metadataValue(md arrow.Metadata, key string) string {
	if i := md.FindKey(key); i >= 0 {
		return md.Values()[i]
	}
	return ""
}

// metaHolder is satisfied by every concrete array type; it lets
// FromArrow attach parsed metadata without a nine-way switch.
type metaHolder interface {
	Array
	setMetadata(m geoarrow.Metadata)
}

func withMeta(a Array, meta geoarrow.Metadata, err error) (Array, error) {
	if err != nil {
		return nil, err
	}
	if meta != (geoarrow.Metadata{}) {
		a.(metaHolder).setMetadata(meta)
	}
	return a, nil
}

func importPoint(data arrow.ArrayData) (*PointArray, error) {
	coords, err := importCoords(data)
	if err != nil {
		return nil, err
	}
	return NewPointArray(coords, bitsFromData(data))
}

func importLineString(data arrow.ArrayData) (*LineStringArray, error) {
	offsets, child, err := listParts(data, "line string geometry")
	if err != nil {
		return nil, err
	}
	if err := requireNoNulls(child, "line string vertices"); err != nil {
		return nil, err
	}
	coords, err := importCoords(child)
	if err != nil {
		return nil, err
	}
	return NewLineStringArray(coords, offsets, bitsFromData(data))
}

func importMultiPoint(data arrow.ArrayData) (*MultiPointArray, error) {
	offsets, child, err := listParts(data, "multi point geometry")
	if err != nil {
		return nil, err
	}
	if err := requireNoNulls(child, "multi point members"); err != nil {
		return nil, err
	}
	coords, err := importCoords(child)
	if err != nil {
		return nil, err
	}
	return NewMultiPointArray(coords, offsets, bitsFromData(data))
}

func importPolygon(data arrow.ArrayData) (*PolygonArray, error) {
	geomOffsets, rings, err := listParts(data, "polygon geometry")
	if err != nil {
		return nil, err
	}
	if err := requireNoNulls(rings, "polygon rings"); err != nil {
		return nil, err
	}
	ringOffsets, vertices, err := listParts(rings, "polygon rings")
	if err != nil {
		return nil, err
	}
	if err := requireNoNulls(vertices, "polygon vertices"); err != nil {
		return nil, err
	}
	coords, err := importCoords(vertices)
	if err != nil {
		return nil, err
	}
	return NewPolygonArray(coords, ringOffsets, geomOffsets, bitsFromData(data))
}

func importMultiLineString(data arrow.ArrayData) (*MultiLineStringArray, error) {
	geomOffsets, lines, err := listParts(data, "multi line string geometry")
	if err != nil {
		return nil, err
	}
	if err := requireNoNulls(lines, "multi line string members"); err != nil {
		return nil, err
	}
	partOffsets, vertices, err := listParts(lines, "multi line string members")
	if err != nil {
		return nil, err
	}
	if err := requireNoNulls(vertices, "multi line string vertices"); err != nil {
		return nil, err
	}
	coords, err := importCoords(vertices)
	if err != nil {
		return nil, err
	}
	return NewMultiLineStringArray(coords, partOffsets, geomOffsets, bitsFromData(data))
}

func importMultiPolygon(data arrow.ArrayData) (*MultiPolygonArray, error) {
	geomOffsets, polygons, err := listParts(data, "multi polygon geometry")
	if err != nil {
		return nil, err
	}
	if err := requireNoNulls(polygons, "multi polygon members"); err != nil {
		return nil, err
	}
	polygonOffsets, rings, err := listParts(polygons, "multi polygon members")
	if err != nil {
		return nil, err
	}
	if err := requireNoNulls(rings, "multi polygon rings"); err != nil {
		return nil, err
	}
	ringOffsets, vertices, err := listParts(rings, "multi polygon rings")
	if err != nil {
		return nil, err
	}
	if err := requireNoNulls(vertices, "multi polygon vertices"); err != nil {
		return nil, err
	}
	coords, err := importCoords(vertices)
	if err != nil {
		return nil, err
	}
	return NewMultiPolygonArray(coords, ringOffsets, polygonOffsets, geomOffsets, bitsFromData(data))
}

func importGeometryCollection(data arrow.ArrayData) (*GeometryCollectionArray, error) {
	offsets, child, err := listParts(data, "geometry collection")
	if err != nil {
		return nil, err
	}
	mixed, err := importMixed(child)
	if err != nil {
		return nil, err
	}
	return NewGeometryCollectionArray(mixed, offsets, bitsFromData(data))
}

func importRect(data arrow.ArrayData) (*RectArray, error) {
	dt, ok := data.DataType().(*arrow.StructType)
	if !ok {
		return nil, layoutErr("box storage must be a struct, got %s", data.DataType())
	}
	dim, err := rectDim(dt)
	if err != nil {
		return nil, err
	}
	size := dim.Size()
	minAxes := make([][]float64, size)
	maxAxes := make([][]float64, size)
	for axis := 0; axis < size; axis++ {
		if minAxes[axis], err = float64Values(data.Children()[axis], data.Offset(), data.Len(), "box min corner"); err != nil {
			return nil, err
		}
		if maxAxes[axis], err = float64Values(data.Children()[size+axis], data.Offset(), data.Len(), "box max corner"); err != nil {
			return nil, err
		}
	}
	min, err := coord.NewSeparated(minAxes, dim)
	if err != nil {
		return nil, err
	}
	max, err := coord.NewSeparated(maxAxes, dim)
	if err != nil {
		return nil, err
	}
	return NewRectArray(min, max, bitsFromData(data))
}

func rectDim(dt *arrow.StructType) (geoarrow.Dimension, error) {
	for _, dim := range []geoarrow.Dimension{geoarrow.XY, geoarrow.XYZ, geoarrow.XYM, geoarrow.XYZM} {
		names := rectFieldNames(dim)
		if dt.NumFields() != len(names) {
			continue
		}
		match := true
		for i, name := range names {
			if dt.Field(i).Name != name {
				match = false
				break
			}
		}
		if match {
			return dim, nil
		}
	}
	return 0, layoutErr("struct fields do not form a box layout: %s", dt)
}

func importMixed(data arrow.ArrayData) (*MixedArray, error) {
	dt, ok := data.DataType().(*arrow.DenseUnionType)
	if !ok {
		return nil, layoutErr("mixed geometry storage must be a dense union, got %s", data.DataType())
	}
	codes := dt.TypeCodes()
	if len(codes) == 0 {
		return nil, layoutErr("dense union has no children")
	}
	var (
		dim              geoarrow.Dimension
		ct               geoarrow.CoordType
		points           *PointArray
		lineStrings      *LineStringArray
		polygons         *PolygonArray
		multiPoints      *MultiPointArray
		multiLineStrings *MultiLineStringArray
		multiPolygons    *MultiPolygonArray
	)
	for i, code := range codes {
		t, d, err := splitMixedTypeID(int8(code))
		if err != nil {
			return nil, layoutErr("dense union type code %d is not a geometry code", code)
		}
		child := data.Children()[i]
		var imported Array
		switch t {
		case geoarrow.TypePoint:
			points, err = importPoint(child)
			imported = points
		case geoarrow.TypeLineString:
			lineStrings, err = importLineString(child)
			imported = lineStrings
		case geoarrow.TypePolygon:
			polygons, err = importPolygon(child)
			imported = polygons
		case geoarrow.TypeMultiPoint:
			multiPoints, err = importMultiPoint(child)
			imported = multiPoints
		case geoarrow.TypeMultiLineString:
			multiLineStrings, err = importMultiLineString(child)
			imported = multiLineStrings
		case geoarrow.TypeMultiPolygon:
			multiPolygons, err = importMultiPolygon(child)
			imported = multiPolygons
		}
		if err != nil {
			return nil, err
		}
		ctype := imported.Type()
		if ctype.Dimension() != d {
			return nil, layoutErr("dense union child %d stores %s coordinates, type code %d says %s",
				i, ctype.Dimension(), code, d)
		}
		if i == 0 {
			dim, ct = d, ctype.CoordType()
			continue
		}
		if d != dim {
			return nil, layoutErr("dense union mixes dimensions %s and %s", dim, d)
		}
		if ctype.CoordType() != ct {
			return nil, layoutErr("dense union mixes coordinate layouts %s and %s", ct, ctype.CoordType())
		}
	}
	ids, err := int8Values(data, "dense union type ids")
	if err != nil {
		return nil, err
	}
	offsets, err := int32Values(data, 2, "dense union offsets")
	if err != nil {
		return nil, err
	}
	return NewMixedArray(dim, ct, ids, offsets, points, lineStrings, polygons,
		multiPoints, multiLineStrings, multiPolygons)
}

// importCoords converts FixedSizeList or Struct coordinate storage to
// a coordinate buffer, sharing the float64 buffers.
func importCoords(data arrow.ArrayData) (coord.Buffer, error) {
	switch dt := data.DataType().(type) {
	case *arrow.FixedSizeListType:
		dim, err := interleavedDim(dt)
		if err != nil {
			return coord.Buffer{}, err
		}
		size := dim.Size()
		if int(dt.Len()) != size {
			return coord.Buffer{}, layoutErr("fixed size list of %d does not hold %s coordinates", dt.Len(), dim)
		}
		vals, err := float64Values(data.Children()[0], data.Offset()*size, data.Len()*size, "coordinate values")
		if err != nil {
			return coord.Buffer{}, err
		}
		return coord.NewInterleaved(vals, dim)
	case *arrow.StructType:
		dim, err := separatedDim(dt)
		if err != nil {
			return coord.Buffer{}, err
		}
		axes := make([][]float64, dim.Size())
		for axis := range axes {
			if axes[axis], err = float64Values(data.Children()[axis], data.Offset(), data.Len(), "coordinate values"); err != nil {
				return coord.Buffer{}, err
			}
		}
		return coord.NewSeparated(axes, dim)
	default:
		return coord.Buffer{}, layoutErr("coordinate storage must be a fixed size list or struct, got %s", data.DataType())
	}
}

func interleavedDim(dt *arrow.FixedSizeListType) (geoarrow.Dimension, error) {
	switch dt.ElemField().Name {
	case "xy":
		return geoarrow.XY, nil
	case "xyz":
		return geoarrow.XYZ, nil
	case "xym":
		return geoarrow.XYM, nil
	case "xyzm":
		return geoarrow.XYZM, nil
	}
	// Unnamed child: fall back to the list size. Size 3 is ambiguous
	// between XYZ and XYM; XYZ is the conventional reading.
	switch dt.Len() {
	case 2:
		return geoarrow.XY, nil
	case 3:
		return geoarrow.XYZ, nil
	case 4:
		return geoarrow.XYZM, nil
	}
	return 0, layoutErr("fixed size list of %d is not a coordinate layout", dt.Len())
}

func separatedDim(dt *arrow.StructType) (geoarrow.Dimension, error) {
	for _, dim := range []geoarrow.Dimension{geoarrow.XY, geoarrow.XYZ, geoarrow.XYM, geoarrow.XYZM} {
		names := axisNames(dim)
		if dt.NumFields() != len(names) {
			continue
		}
		match := true
		for i, name := range names {
			if dt.Field(i).Name != name {
				match = false
				break
			}
		}
		if match {
			return dim, nil
		}
	}
	return 0, layoutErr("struct fields do not form a coordinate layout: %s", dt)
}

// listParts windows a List's offsets to its logical rows and returns
// them with the child data. The window keeps offset values absolute
// into the child, so a sliced input imports without copying.
func listParts(data arrow.ArrayData, what string) ([]int32, arrow.ArrayData, error) {
	if _, ok := data.DataType().(*arrow.ListType); !ok {
		return nil, nil, layoutErr("%s storage must be a list, got %s", what, data.DataType())
	}
	offsets, err := int32Values(data, 1, what+" offsets")
	if err != nil {
		return nil, nil, err
	}
	return offsets, data.Children()[0], nil
}

func requireNoNulls(data arrow.ArrayData, what string) error {
	if data.NullN() > 0 {
		return layoutErr("%s must not contain nulls, found %d", what, data.NullN())
	}
	return nil
}

func float64Values(data arrow.ArrayData, shift, n int, what string) ([]float64, error) {
	if data.DataType().ID() != arrow.FLOAT64 {
		return nil, layoutErr("%s must be float64, got %s", what, data.DataType())
	}
	var vals []float64
	if buf := data.Buffers()[1]; buf != nil {
		vals = arrow.Float64Traits.CastFromBytes(buf.Bytes())
	}
	start := data.Offset() + shift
	if start+n > len(vals) {
		return nil, layoutErr("%s buffer has %d values, need %d", what, len(vals), start+n)
	}
	return vals[start : start+n], nil
}

// int32Values windows buffer i of a list or union to the logical
// rows, including the trailing offset for lists (buffer index 1).
func int32Values(data arrow.ArrayData, i int, what string) ([]int32, error) {
	var vals []int32
	if buf := data.Buffers()[i]; buf != nil {
		vals = arrow.Int32Traits.CastFromBytes(buf.Bytes())
	}
	n := data.Len()
	if i == 1 {
		// List offsets carry one extra entry; an empty list may omit
		// the buffer entirely.
		if len(vals) == 0 && n == 0 {
			return []int32{0}, nil
		}
		n++
	}
	start := data.Offset()
	if start+n > len(vals) {
		return nil, layoutErr("%s buffer has %d values, need %d", what, len(vals), start+n)
	}
	return vals[start : start+n], nil
}

func int8Values(data arrow.ArrayData, what string) ([]int8, error) {
	var vals []int8
	if buf := data.Buffers()[1]; buf != nil {
		vals = arrow.Int8Traits.CastFromBytes(buf.Bytes())
	}
	start, n := data.Offset(), data.Len()
	if start+n > len(vals) {
		return nil, layoutErr("%s buffer has %d values, need %d", what, len(vals), start+n)
	}
	return vals[start : start+n], nil
}

func bitsFromData(data arrow.ArrayData) []byte {
	buf := data.Buffers()[0]
	if buf == nil || data.NullN() == 0 {
		return nil
	}
	bits := buf.Bytes()
	if data.Offset()%8 == 0 {
		return bits[data.Offset()/8:]
	}
	aligned := make([]byte, bitutil.BytesForBits(int64(data.Len())))
	bitutil.CopyBitmap(bits, data.Offset(), data.Len(), aligned, 0)
	return aligned
}
