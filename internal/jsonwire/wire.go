// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonwire implements stateless functionality for handling JSON text.
//
// Raw string bodies are exposed as a [Span], which may be backed by
// a single slice or by a chain of slices split at arbitrary offsets
// (including within a multi-byte UTF-8 sequence or a \uXXXX escape).
// Everything above this package is unaware of where those splits occur.
package jsonwire

import "errors"

var (
	// ErrInvalidUTF8 reports the presence of invalid UTF-8 while quoting.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 within string")

	// ErrLengthOverflow reports that the scratch space needed to
	// compare a string exceeds the maximum length of any slice.
	ErrLengthOverflow = errors.New("maximum decoded length overflows the maximum span length")
)
