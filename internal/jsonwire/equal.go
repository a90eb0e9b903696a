// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import (
	"bytes"
	"math"
	"math/bits"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"

	"github.com/go-json-experiment/jsontoken/internal/bufpools"
)

// stackScratchSize is the largest scratch buffer kept on the stack.
// Larger buffers come from bufpools. The value only affects performance.
const stackScratchSize = 256

// maxUTF8PerUTF16 is the most UTF-8 bytes a single UTF-16 code unit needs.
// A surrogate pair needs 4 bytes for 2 units, which is within the bound.
const maxUTF8PerUTF16 = 3

// maxSpanLen is the maximum length of any scratch buffer.
var maxSpanLen = math.MaxInt

// SetMaxSpanLen overrides the maximum scratch length until restore is called.
// It exists so that tests can exercise ErrLengthOverflow without
// allocating inputs near the size of the address space.
// It is not safe to call concurrently with any comparison in this package,
// so tests that use it must not run in parallel.
func SetMaxSpanLen(n int) (restore func()) {
	prev := maxSpanLen
	maxSpanLen = n
	return func() { maxSpanLen = prev }
}

// scratchLen computes n*perUnit, reporting ErrLengthOverflow if the
// result cannot be represented or exceeds the maximum span length.
func scratchLen(n, perUnit int) (int, error) {
	hi, lo := bits.Mul64(uint64(n), uint64(perUnit))
	if hi != 0 {
		return 0, ErrLengthOverflow
	}
	m, err := safecast.Conv[int](lo)
	if err != nil || m > maxSpanLen {
		return 0, ErrLengthOverflow
	}
	return m, nil
}

// EqualUTF8 reports whether the decoded content of the raw string body s
// equals want, where escaped reports whether s contains any escape sequences.
//
// Candidates that cannot match by length alone are rejected before any
// decoding takes place. Otherwise, an escaped span is decoded into scratch
// space and compared byte for byte.
func EqualUTF8(s Span, escaped bool, want []byte) (bool, error) {
	if !escaped {
		return s.Equal(want), nil
	}
	// Decoding never lengthens the input.
	if len(want) > s.Len() {
		return false, nil
	}
	n, err := scratchLen(s.Len(), 1)
	if err != nil {
		return false, err
	}
	var arr [stackScratchSize]byte
	scratch := arr[:0]
	if n > len(arr) {
		heap := bufpools.Get(n)
		defer bufpools.Put(heap)
		scratch = heap
	}
	r := s.Reader()
	got := AppendUnquote(scratch, &r)
	return bytes.Equal(got, want), nil
}

// EqualUTF16 reports whether the decoded content of the raw string body s
// equals the UTF-16 text want.
//
// A candidate with an unpaired surrogate never equals anything,
// since decoded JSON strings are always well-formed.
func EqualUTF16(s Span, escaped bool, want []uint16) (bool, error) {
	n, raw := len(want), s.Len()
	if escaped {
		// Each unit needs at least one byte once decoded,
		// and decoding never lengthens the input.
		if n > raw {
			return false, nil
		}
	} else if raw < n || uint64(raw) > maxUTF8PerUTF16*uint64(n) {
		return false, nil
	}

	m, err := scratchLen(n, maxUTF8PerUTF16)
	if err != nil {
		return false, err
	}
	var arr [stackScratchSize]byte
	scratch := arr[:0]
	if m > len(arr) {
		heap := bufpools.Get(m)
		defer bufpools.Put(heap)
		scratch = heap
	}
	b, ok := appendUTF16AsUTF8(scratch, want)
	if !ok {
		return false, nil
	}
	return EqualUTF8(s, escaped, b)
}

// appendUTF16AsUTF8 transcodes src into dst.
// It reports false if src contains an unpaired surrogate.
func appendUTF16AsUTF8(dst []byte, src []uint16) ([]byte, bool) {
	for i := 0; i < len(src); i++ {
		r := rune(src[i])
		switch {
		case r < utf8.RuneSelf:
			dst = append(dst, byte(r))
			continue
		case utf16.IsSurrogate(r):
			if r >= 0xdc00 || i+1 == len(src) {
				return dst, false
			}
			if r = utf16.DecodeRune(r, rune(src[i+1])); r == utf8.RuneError {
				return dst, false
			}
			i++
		}
		dst = utf8.AppendRune(dst, r)
	}
	return dst, true
}
