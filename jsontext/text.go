// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsontext implements syntactic processing of JSON text
// held in memory, with an emphasis on comparing the text of
// JSON strings without decoding them into new allocations.
//
// A [Reader] tokenizes JSON text that is either one contiguous slice
// or a sequence of segments split at arbitrary offsets,
// including within a multi-byte UTF-8 sequence or an escape sequence.
// After reading a string or object name, [Reader.ValueTextEquals] reports
// whether its decoded text equals a [Candidate], which may be
// UTF-8 bytes, UTF-16 code units, or read-only text.
//
// # Equality
//
// Equality is defined on decoded text. The JSON string "name"
// equals the candidate "name", but not a candidate that itself contains
// the characters of an escape sequence.
//
// Candidates whose length rules out a match are rejected without
// looking at the content of the string. Otherwise, strings without
// escape sequences are compared in place, while strings with escape
// sequences are decoded into scratch space that lives on the stack
// for short strings and comes from a pool for long ones.
//
// An unpaired surrogate escape such as "\ud800" decodes as the
// Unicode replacement character, U+FFFD. A UTF-16 candidate with an
// unpaired surrogate equals no JSON string, since decoded text is
// always well-formed.
//
// # Errors
//
// Comparing the text of a token that is not a string or object name
// reports an error matching [ErrInvalidState], which includes the states
// before the first token and after the last one. A string whose scratch
// space would exceed the maximum length of a slice reports
// [ErrLengthOverflow]. A mismatch is never an error.
//
// All errors returned by this package match [Error] according to errors.Is.
package jsontext
