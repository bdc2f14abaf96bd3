// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geomview

import (
	"fmt"

	"github.com/gogama/geoarrow"
)

const packageName = "geoarrow/geomview: "

// typeErr reports a geometry or layout that cannot cross the go-geom
// boundary. The returned error wraps geoarrow.ErrIncorrectType.
func typeErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format+": %w", append(a, geoarrow.ErrIncorrectType)...)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
