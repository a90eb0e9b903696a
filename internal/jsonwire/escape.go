// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import "unicode/utf8"

// Validity of this checked in TestEscapeRunesTables.
var escapeCanonical = EscapeRunes{
	asciiCache: [...]int8{
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1,
		00, 00, -1, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, -1, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
		00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00, 00,
	},
}

// EscapeRunes reports whether a rune must be escaped.
type EscapeRunes struct {
	// asciiCache is a cache of whether an ASCII character must be escaped,
	// where 0 means not escaped, -1 escapes with the short sequence (e.g., \n),
	// and +1 escapes with the \uXXXX sequence.
	asciiCache [utf8.RuneSelf]int8

	escapeFunc func(rune) bool // arbitrary runes that need escaping; may be nil
}

// MakeEscapeRunes constructs an escape table that escapes
// what JSON requires plus every rune that fn reports true for.
func MakeEscapeRunes(fn func(rune) bool) *EscapeRunes {
	if fn == nil {
		return &escapeCanonical
	}
	return makeEscapeRunesSlow(fn)
}

func makeEscapeRunesSlow(fn func(rune) bool) *EscapeRunes {
	e := EscapeRunes{escapeFunc: fn}

	// Escape characters that are required by JSON.
	for i := 0; i < ' '; i++ {
		e.asciiCache[i] = -1
	}
	e.asciiCache['\\'] = -1
	e.asciiCache['"'] = -1

	// Escape characters specified by the user-provided function.
	if e.escapeFunc != nil {
		for r := range e.asciiCache[:] {
			if e.asciiCache[r] == 0 && e.escapeFunc(rune(r)) {
				e.asciiCache[r] = +1
			}
		}
	}

	return &e
}

// IsCanonical reports whether this uses canonical escaping,
// which is the minimal amount of escaping to produce a valid JSON string.
func (e *EscapeRunes) IsCanonical() bool { return e.escapeFunc == nil }

// needEscapeASCII reports whether c must be escaped.
// It assumes c < utf8.RuneSelf.
func (e *EscapeRunes) needEscapeASCII(c byte) bool {
	return e.asciiCache[c] != 0
}

// needEscapeASCIIAsUTF16 reports whether c must be escaped using a \uXXXX sequence.
func (e *EscapeRunes) needEscapeASCIIAsUTF16(c byte) bool {
	return e.asciiCache[c] > 0
}

// needEscapeRune reports whether r must be escaped.
// It assumes r >= utf8.RuneSelf.
func (e *EscapeRunes) needEscapeRune(r rune) bool {
	return e.escapeFunc != nil && e.escapeFunc(r)
}
