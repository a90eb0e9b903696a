// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"

	"github.com/go-json-experiment/jsontoken/internal/jsonwire"
)

type candidateForm uint8

const (
	formUTF8 candidateForm = iota
	formUTF16
	formText
)

// Candidate is decoded text to compare against the text of a JSON string.
// It is always taken literally: escape sequences within a candidate
// are not interpreted, so the candidate `\u0061` is six characters long, not one.
//
// The zero value is the empty UTF-8 text.
// Nil and empty candidates of every form are the same empty text.
type Candidate struct {
	form  candidateForm
	utf8  []byte
	utf16 []uint16
	text  mem.RO
}

// UTF8 constructs a candidate from UTF-8 encoded bytes.
// The bytes are compared verbatim, so invalid UTF-8 never equals
// the text of a JSON string that decodes to valid UTF-8.
func UTF8(b []byte) Candidate {
	return Candidate{form: formUTF8, utf8: b}
}

// UTF16 constructs a candidate from UTF-16 code units.
// A candidate with an unpaired surrogate equals no JSON string.
func UTF16(u []uint16) Candidate {
	return Candidate{form: formUTF16, utf16: u}
}

// Text constructs a candidate from a read-only view of UTF-8 text.
// The text is compared by code point, so text with invalid UTF-8
// equals no JSON string.
func Text(t mem.RO) Candidate {
	return Candidate{form: formText, text: t}
}

// String constructs a text candidate from s.
func String(s string) Candidate {
	return Text(mem.S(s))
}

// stackUnits is the largest number of UTF-16 code units
// transcoded into a stack array when comparing a text candidate.
const stackUnits = 128

// equalText reports whether the string body s equals the text t.
// The text is transcoded into UTF-16 code units and compared as such.
func equalText(s jsonwire.Span, escaped bool, t mem.RO) (bool, error) {
	n, ok := countUTF16(t)
	if !ok {
		return false, nil
	}
	var arr [stackUnits]uint16
	units := arr[:0]
	if n > len(arr) {
		units = make([]uint16, 0, n)
	}
	units = appendTextAsUTF16(units, t)
	return jsonwire.EqualUTF16(s, escaped, units)
}

// countUTF16 reports the number of UTF-16 code units needed for t
// and whether t is valid UTF-8.
func countUTF16(t mem.RO) (n int, ok bool) {
	for t.Len() > 0 {
		r, size := mem.DecodeRune(t)
		if r == utf8.RuneError && size == 1 {
			return 0, false
		}
		n += utf16.RuneLen(r)
		t = t.SliceFrom(size)
	}
	return n, true
}

// appendTextAsUTF16 appends the UTF-16 encoding of the valid UTF-8 text t.
func appendTextAsUTF16(dst []uint16, t mem.RO) []uint16 {
	for t.Len() > 0 {
		r, size := mem.DecodeRune(t)
		dst = utf16.AppendRune(dst, r)
		t = t.SliceFrom(size)
	}
	return dst
}
