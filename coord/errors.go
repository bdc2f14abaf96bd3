// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package coord

import (
	"fmt"

	"github.com/gogama/geoarrow"
)

const packageName = "geoarrow/coord: "

// layoutErr reports a malformed buffer layout. The result wraps
// geoarrow.ErrLayout so callers can classify it with errors.Is.
func layoutErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format+": %w", append(a, geoarrow.ErrLayout)...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
