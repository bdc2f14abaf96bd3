// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoarrow

import (
	"encoding/json"
)

// CRSType identifies the encoding of the Metadata CRS value.
type CRSType string

const (
	CRSTypeProjJSON      CRSType = "projjson"
	CRSTypeWKT2          CRSType = "wkt2:2019"
	CRSTypeAuthorityCode CRSType = "authority_code"
	CRSTypeSRID          CRSType = "srid"
)

// Edges identifies the interpretation of edges between coordinates.
// An absent value means planar edges.
type Edges string

const (
	EdgesSpherical Edges = "spherical"
)

// Metadata is the GeoArrow extension metadata carried as field-level
// metadata next to a geometry array: the coordinate reference system
// and the edge interpretation. The zero value means unknown CRS and
// planar edges, and serializes to an empty JSON object.
type Metadata struct {
	CRS     string  `json:"crs,omitempty"`
	CRSType CRSType `json:"crs_type,omitempty"`
	Edges   Edges   `json:"edges,omitempty"`
}

// Serialize encodes the metadata as the JSON object stored under the
// ARROW:extension:metadata field metadata key.
func (m Metadata) Serialize() string {
	b, err := json.Marshal(m)
	if err != nil {
		// Marshaling a struct of strings cannot fail.
		fmtPanic("metadata marshal: %v", err)
	}
	return string(b)
}

// ParseMetadata decodes the JSON object stored under the
// ARROW:extension:metadata field metadata key. An empty string decodes
// to the zero Metadata.
func ParseMetadata(s string) (Metadata, error) {
	var m Metadata
	if s == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return Metadata{}, wrapErr("malformed extension metadata", err)
	}
	switch m.Edges {
	case "", EdgesSpherical:
	default:
		return Metadata{}, fmtErr("unknown edges value %q", m.Edges)
	}
	return m, nil
}
