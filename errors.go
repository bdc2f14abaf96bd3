// Copyright 2025 The geoarrow (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geoarrow

import (
	"errors"
	"fmt"
)

var (
	// ErrLayout is wrapped by every error reported for a malformed
	// buffer invariant: mismatched lengths, stride mismatch, or wrong
	// dimensionality detected while constructing an array from
	// untrusted input.
	ErrLayout = errors.New("geoarrow: invalid layout")
	// ErrIncorrectType is wrapped by every error reported when a
	// downcast, capacity add, or builder push is invoked against an
	// incompatible geometry kind or dimension.
	ErrIncorrectType = errors.New("geoarrow: incorrect geometry type")
	// ErrWKB is wrapped by every error reported for malformed WKB
	// input: a truncated buffer or an unknown type code.
	ErrWKB = errors.New("geoarrow: invalid WKB")
)

const packageName = "geoarrow: "

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format, a...)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
