// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package wkb

import (
	"fmt"

	"github.com/gogama/geoarrow"
)

const packageName = "geoarrow/wkb: "

// codecErr reports malformed WKB input. The returned error wraps
// geoarrow.ErrWKB.
func codecErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format+": %w", append(a, geoarrow.ErrWKB)...)
}

// typeErr reports a geometry kind WKB cannot represent. The returned
// error wraps geoarrow.ErrIncorrectType.
func typeErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format+": %w", append(a, geoarrow.ErrIncorrectType)...)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
