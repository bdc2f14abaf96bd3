// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package array

import (
	"errors"
	"fmt"

	"github.com/gogama/geoarrow"
)

const packageName = "geoarrow/array: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format, a...)
}

// layoutErr reports a malformed buffer invariant detected while
// constructing an array from untrusted input. The result wraps
// geoarrow.ErrLayout.
func layoutErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format+": %w", append(a, geoarrow.ErrLayout)...)
}

// typeErr reports a downcast, capacity add, or builder push against an
// incompatible geometry kind or dimension. The result wraps
// geoarrow.ErrIncorrectType.
func typeErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format+": %w", append(a, geoarrow.ErrIncorrectType)...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
