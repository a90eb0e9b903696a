// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import (
	"unicode/utf16"
	"unicode/utf8"
)

// AppendUnquote appends the decoded form of the raw JSON string body
// read from r to dst and returns the extended buffer.
//
// The input must already be known to be a valid JSON string body
// (as verified by the tokenizer); malformed escapes are not reported.
// Escape sequences may be split across chunks in any way.
//
// A high surrogate immediately followed by a low surrogate, either as a
// \uXXXX escape or as the literal 3-byte encoding of the surrogate,
// decodes as a single code point. Every other surrogate escape decodes
// as the Unicode replacement character (U+FFFD).
//
// The decoded output is never longer than the raw input, so a dst with
// r's remaining length in spare capacity never needs to grow.
func AppendUnquote(dst []byte, r *ChunkReader) []byte {
	for {
		if b := r.readVerbatim(); len(b) > 0 {
			dst = append(dst, b...)
			continue
		}
		if _, ok := r.ReadByte(); !ok {
			return dst
		}
		// The byte just read is a backslash.
		c, _ := r.ReadByte()
		switch c {
		case '"', '\\', '/':
			dst = append(dst, c)
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			v1 := rune(r.readHex())
			if utf16.IsSurrogate(v1) && v1 < 0xdc00 {
				if v2, ok := r.readLowSurrogate(); ok {
					dst = utf8.AppendRune(dst, utf16.DecodeRune(v1, v2))
					continue
				}
			}
			// utf8.AppendRune encodes any lone surrogate as utf8.RuneError.
			dst = utf8.AppendRune(dst, v1)
		}
	}
}

// readHex consumes four hexadecimal digits.
func (r *ChunkReader) readHex() uint16 {
	var v uint16
	for range 4 {
		c, _ := r.ReadByte()
		v = v<<4 | uint16(hexValue(c))
	}
	return v
}

// readLowSurrogate consumes a low surrogate if one comes next,
// otherwise it leaves the read position unchanged.
func (r *ChunkReader) readLowSurrogate() (rune, bool) {
	saved := *r
	switch c, _ := r.ReadByte(); c {
	case '\\':
		if c, _ := r.ReadByte(); c == 'u' {
			if v := rune(r.readHex()); 0xdc00 <= v && v <= 0xdfff {
				return v, true
			}
		}
	case 0xed:
		// The generalized UTF-8 encoding of U+DC00 to U+DFFF.
		c1, _ := r.ReadByte()
		c2, _ := r.ReadByte()
		if 0xb0 <= c1 && c1 <= 0xbf && 0x80 <= c2 && c2 <= 0xbf {
			return 0xd000 | rune(c1&0x3f)<<6 | rune(c2&0x3f), true
		}
	}
	*r = saved
	return 0, false
}

func hexValue(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsHex reports whether c is a hexadecimal digit.
func IsHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
