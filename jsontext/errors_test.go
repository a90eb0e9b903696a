// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"errors"
	"io"
	"strings"
	"testing"
)

const (
	someGlobalError  = jsonError("some global error")
	otherGlobalError = jsonError("other global error alt")
)

var (
	someInvalidStateError  = &InvalidStateError{Kind: KindNumber}
	otherInvalidStateError = &InvalidStateError{Kind: KindNumber}
	someSyntacticError     = &SyntacticError{str: "some syntactic error"}
	otherSyntacticError    = &SyntacticError{str: "other syntactic error"}
	someWrappedEOFError    = &SyntacticError{Err: io.ErrUnexpectedEOF}
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		err    error
		target error
		want   bool
	}{
		// Top-level Error should match itself (identity).
		{Error, Error, true},

		// All sub-error values should match the top-level Error value.
		{someGlobalError, Error, true},
		{ErrInvalidState, Error, true},
		{ErrLengthOverflow, Error, true},
		{someInvalidStateError, Error, true},
		{someSyntacticError, Error, true},
		{someWrappedEOFError, Error, true},

		// Top-level Error should not match any other sub-error value.
		{Error, someGlobalError, false},
		{Error, ErrInvalidState, false},
		{Error, someInvalidStateError, false},
		{Error, someSyntacticError, false},

		// Sub-error values should match itself (identity).
		{someGlobalError, someGlobalError, true},
		{someInvalidStateError, someInvalidStateError, true},
		{someSyntacticError, someSyntacticError, true},

		// Every InvalidStateError matches ErrInvalidState, but not the reverse.
		{someInvalidStateError, ErrInvalidState, true},
		{&InvalidStateError{}, ErrInvalidState, true},
		{ErrInvalidState, someInvalidStateError, false},
		{someInvalidStateError, ErrLengthOverflow, false},

		// Sub-error values should not match each other.
		{someGlobalError, someInvalidStateError, false},
		{someInvalidStateError, someSyntacticError, false},
		{someSyntacticError, someGlobalError, false},
		{ErrInvalidState, ErrLengthOverflow, false},
		{someSyntacticError, ErrInvalidState, false},

		// Sub-error values should not match other error values of same type.
		{someGlobalError, otherGlobalError, false},
		{someInvalidStateError, otherInvalidStateError, false},
		{someSyntacticError, otherSyntacticError, false},

		// Wrapped errors are reachable through Unwrap.
		{someWrappedEOFError, io.ErrUnexpectedEOF, true},
		{someSyntacticError, io.ErrUnexpectedEOF, false},

		// Error should not match any other random error.
		{Error, nil, false},
		{nil, Error, false},
		{io.ErrShortWrite, Error, false},
		{Error, io.ErrShortWrite, false},
	}

	for _, tt := range tests {
		got := errors.Is(tt.err, tt.target)
		if got != tt.want {
			t.Errorf("errors.Is(%#v, %#v) = %v, want %v", tt.err, tt.target, got, tt.want)
		}
		// If the type supports the Is method,
		// it should behave the same way if called directly.
		if iserr, ok := tt.err.(interface{ Is(error) bool }); ok && tt.target != io.ErrUnexpectedEOF {
			got := iserr.Is(tt.target)
			if got != tt.want {
				t.Errorf("%#v.Is(%#v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&InvalidStateError{}, "jsontext: cannot compare text without a current token"},
		{&InvalidStateError{Kind: KindStartObject}, "jsontext: cannot compare text of a { token"},
		{errMissingComma.withOffset(7), "jsontext: missing character ',' after object or array value after offset 7"},
		{errUnexpectedEOF.withOffset(3), "jsontext: unexpected EOF after offset 3"},
		{newInvalidCharacterError("\xff", "at start of value").withOffset(0), `jsontext: invalid character '\xff' at start of value after offset 0`},
		{newInvalidEscapeSequenceError(`\x`).withOffset(1), `jsontext: invalid escape sequence "\\x" within string after offset 1`},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if !strings.HasPrefix(tt.err.Error(), errorPrefix) {
			t.Errorf("Error() = %q, want prefix %q", tt.err.Error(), errorPrefix)
		}
	}
}
