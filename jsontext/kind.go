// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import "github.com/go-json-experiment/jsontoken/internal/jsonwire"

// Kind represents each possible JSON token kind with a single byte,
// which is conveniently the first byte of that kind's grammar
// with the restriction that numbers always be represented with '0'
// and object names with ':':
//
//	• 'n': null
//	• 'f': false
//	• 't': true
//	• '"': string
//	• ':': object name (a string in name position)
//	• '0': number
//	• '{': object start
//	• '}': object end
//	• '[': array start
//	• ']': array end
//	• '/': comment
//
// The zero kind means that there is no current token.
type Kind byte

const (
	KindNone         Kind = 0
	KindNull         Kind = 'n'
	KindFalse        Kind = 'f'
	KindTrue         Kind = 't'
	KindString       Kind = '"'
	KindPropertyName Kind = ':'
	KindNumber       Kind = '0'
	KindStartObject  Kind = '{'
	KindEndObject    Kind = '}'
	KindStartArray   Kind = '['
	KindEndArray     Kind = ']'
	KindComment      Kind = '/'
)

// String prints the kind in a humanly readable fashion.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case 'n':
		return "null"
	case 'f':
		return "false"
	case 't':
		return "true"
	case '"':
		return "string"
	case ':':
		return "property name"
	case '0':
		return "number"
	case '{':
		return "{"
	case '}':
		return "}"
	case '[':
		return "["
	case ']':
		return "]"
	case '/':
		return "comment"
	default:
		return "<invalid jsontext.Kind: " + jsonwire.QuoteRune(string(k)) + ">"
	}
}

// hasText reports whether tokens of this kind carry string text.
func (k Kind) hasText() bool {
	return k == KindString || k == KindPropertyName
}
