// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"io"
	"strconv"

	"github.com/go-json-experiment/jsontoken/internal/jsonwire"
)

const errorPrefix = "jsontext: "

// Error matches errors returned by this package according to errors.Is.
const Error = jsonError("jsontext error")

type jsonError string

func (e jsonError) Error() string        { return string(e) }
func (e jsonError) Is(target error) bool { return e == target || target == Error }

const (
	// ErrInvalidState matches errors reporting that the current token
	// does not carry text, which includes having no current token at all.
	ErrInvalidState = jsonError(errorPrefix + "current token is not a string or object name")

	// ErrLengthOverflow reports that comparing the current token would
	// need scratch space beyond the maximum length of any slice.
	ErrLengthOverflow = jsonError(errorPrefix + "maximum decoded length overflows the maximum span length")
)

// InvalidStateError reports an attempt to compare the text of a token
// that does not carry text.
type InvalidStateError struct {
	// Kind is the kind of the current token, or KindNone if there is none.
	Kind Kind
}

func (e *InvalidStateError) Error() string {
	if e.Kind == KindNone {
		return errorPrefix + "cannot compare text without a current token"
	}
	return errorPrefix + "cannot compare text of a " + e.Kind.String() + " token"
}

func (e *InvalidStateError) Is(target error) bool {
	return e == target || target == ErrInvalidState || target == Error
}

// SyntacticError is a description of a syntactic error that occurred when
// reading JSON text.
//
// The contents of this error as produced by this package may change over time.
type SyntacticError struct {
	// ByteOffset indicates that an error occurred after processing
	// ByteOffset bytes of the logical input.
	ByteOffset int64

	// Err is the underlying error, which is io.ErrUnexpectedEOF
	// if the input ended prematurely. It may be nil.
	Err error

	str string
}

func (e *SyntacticError) Error() string {
	s := e.str
	if e.Err != nil {
		if s != "" {
			s += ": "
		}
		s += e.Err.Error()
	}
	return errorPrefix + s + " after offset " + strconv.FormatInt(e.ByteOffset, 10)
}
func (e *SyntacticError) Unwrap() error        { return e.Err }
func (e *SyntacticError) Is(target error) bool { return e == target || target == Error }
func (e *SyntacticError) withOffset(pos int64) error {
	return &SyntacticError{ByteOffset: pos, Err: e.Err, str: e.str}
}

var errUnexpectedEOF = &SyntacticError{Err: io.ErrUnexpectedEOF}

func newInvalidCharacterError[Bytes ~[]byte | ~string](prefix Bytes, where string) *SyntacticError {
	return &SyntacticError{str: "invalid character " + jsonwire.QuoteRune(prefix) + " " + where}
}

func newInvalidEscapeSequenceError(what string) *SyntacticError {
	return &SyntacticError{str: "invalid escape sequence " + strconv.Quote(what) + " within string"}
}
