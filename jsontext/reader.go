// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"io"
	"slices"
	"strconv"

	"github.com/go-json-experiment/jsontoken/internal/jsonopts"
	"github.com/go-json-experiment/jsontoken/internal/jsonwire"
)

// Reader is a tokenizer for JSON text held in memory.
//
// The text is either a single slice ([NewReader]) or a sequence of
// segments ([NewSequenceReader]) whose concatenation is the logical input.
// Segments may be split at any offset. Every offset reported by a Reader,
// including [SyntacticError.ByteOffset], is relative to the logical input.
//
// For example, the following JSON value:
//
//	{"name":"value","list":[null,false,true,3.14159]}
//
// is read as the following sequence of token kinds:
//
//	{ : " : [ n f t 0 ] }
//
// where ':' marks object names and '"' marks string values.
//
// The current token remains valid until the next call to [Reader.ReadToken].
// A Reader borrows the input and never modifies it.
// It is not safe for concurrent use.
type Reader struct {
	segs [][]byte // non-empty segments of the input
	si   int      // index of the segment holding the next byte
	i    int      // offset of the next byte within segs[si]
	base int64    // logical offset of segs[si][0]

	opts  jsonopts.Struct
	state stateMachine

	delim    byte  // pending ',' or ':' that precedes the next token
	delimPos int64 // logical offset of delim

	// The current token.
	kind       Kind
	escaped    bool
	start, end mark // raw token including any quotes
	vstart     mark // value text; the body of a string without quotes
	vend       mark

	chunks [][]byte // reused storage for chunked spans
	err    error    // sticky error, which may be io.EOF
}

// mark is a position in the input.
type mark struct {
	si, i int
	pos   int64
}

// NewReader constructs a Reader over the JSON text in b.
func NewReader(b []byte, opts ...Options) *Reader {
	return NewSequenceReader([][]byte{b}, opts...)
}

// NewSequenceReader constructs a Reader over the JSON text formed by
// concatenating segs. Empty segments are ignored.
// Neither segs nor its elements may be modified while the Reader is in use.
func NewSequenceReader(segs [][]byte, opts ...Options) *Reader {
	r := new(Reader)
	for _, seg := range segs {
		if len(seg) > 0 {
			r.segs = append(r.segs, seg)
		}
	}
	r.opts.Join(opts...)
	r.state.init()
	return r
}

// Kind reports the kind of the current token.
// It is KindNone before the first token, after the last token,
// and after any error.
func (r *Reader) Kind() Kind {
	return r.kind
}

// ValueIsEscaped reports whether the current token is a string
// or object name that contains any escape sequences.
func (r *Reader) ValueIsEscaped() bool {
	return r.escaped
}

// TokenStart reports the logical offset of the first byte of the current token.
func (r *Reader) TokenStart() int64 {
	return r.start.pos
}

// BytesConsumed reports the number of bytes of the logical input
// consumed so far, which is the offset just past the current token.
func (r *Reader) BytesConsumed() int64 {
	return r.pos()
}

// Depth reports the number of objects and arrays
// that enclose the position just after the current token.
func (r *Reader) Depth() int {
	return r.state.depth() - 1
}

// ReadToken advances to the next token and reports its kind.
// It returns io.EOF once the input is exhausted.
// Errors are sticky: once ReadToken fails, it reports the same error again.
func (r *Reader) ReadToken() (Kind, error) {
	if r.err != nil {
		return KindNone, r.err
	}
	r.kind, r.escaped = KindNone, false
	k, err := r.readToken()
	if err != nil {
		r.err = err
		return KindNone, err
	}
	r.kind = k
	return k, nil
}

func (r *Reader) readToken() (Kind, error) {
	for {
		r.skipSpace()
		c, ok := r.peek()
		if !ok {
			return KindNone, r.checkEOF()
		}
		r.start = r.mark()

		var next Kind
		switch {
		case c == ',' || c == ':':
			if r.delim != 0 {
				return KindNone, newInvalidCharacterError([]byte{c}, "after "+strconv.QuoteRune(rune(r.delim))).withOffset(r.start.pos)
			}
			r.delim, r.delimPos = c, r.start.pos
			r.advance()
			continue
		case c == '/':
			if r.opts.CommentHandling == CommentsDisallow {
				return KindNone, newInvalidCharacterError([]byte{c}, "at start of value").withOffset(r.start.pos)
			}
			if err := r.consumeComment(); err != nil {
				return KindNone, err
			}
			if r.opts.CommentHandling == CommentsSkip {
				continue
			}
			r.setValueToRaw()
			return KindComment, nil
		case c == 'n' || c == 'f' || c == 't' || c == '{' || c == '}' || c == '[' || c == ']':
			next = Kind(c)
		case c == '"':
			next = r.state.nextStringKind()
		case c == '-' || ('0' <= c && c <= '9'):
			next = KindNumber
		default:
			return KindNone, newInvalidCharacterError(r.segs[r.si][r.i:], "at start of value").withOffset(r.start.pos)
		}

		if err := r.state.checkDelim(r.delim, next); err != nil {
			pos := r.start.pos
			if r.delim != 0 {
				pos = r.delimPos
			}
			return KindNone, syntaxErrorAt(err, pos)
		}
		r.delim = 0

		if err := r.consumeToken(next); err != nil {
			return KindNone, err
		}
		if err := r.appendState(next); err != nil {
			return KindNone, syntaxErrorAt(err, r.start.pos)
		}
		return next, nil
	}
}

// consumeToken consumes a token of kind k starting at the current position.
func (r *Reader) consumeToken(k Kind) (err error) {
	switch k {
	case KindNull:
		err = r.consumeLiteral("null")
	case KindFalse:
		err = r.consumeLiteral("false")
	case KindTrue:
		err = r.consumeLiteral("true")
	case KindNumber:
		err = r.consumeNumber()
	case KindString, KindPropertyName:
		err = r.consumeString()
	default:
		r.advance()
	}
	if err != nil {
		return err
	}
	if k != KindString && k != KindPropertyName {
		r.setValueToRaw()
	}
	r.end = r.mark()
	return nil
}

// appendState records a token of kind k in the state machine.
func (r *Reader) appendState(k Kind) error {
	switch k {
	case KindNull, KindFalse, KindTrue:
		return r.state.appendLiteral()
	case KindNumber:
		return r.state.appendNumber()
	case KindString, KindPropertyName:
		return r.state.appendString()
	case KindStartObject:
		return r.state.pushObject(r.opts.Depth())
	case KindEndObject:
		return r.state.popObject()
	case KindStartArray:
		return r.state.pushArray(r.opts.Depth())
	default:
		return r.state.popArray()
	}
}

// checkEOF reports the error for reaching the end of the input.
func (r *Reader) checkEOF() error {
	switch {
	case r.state.depth() > 1:
		return errUnexpectedEOF.withOffset(r.pos())
	case r.delim != 0:
		return newInvalidCharacterError([]byte{r.delim}, "at end of input").withOffset(r.delimPos)
	}
	return io.EOF
}

// syntaxErrorAt sets the offset of a state machine error.
func syntaxErrorAt(err error, pos int64) error {
	if err, ok := err.(*SyntacticError); ok {
		return err.withOffset(pos)
	}
	return err
}

func (r *Reader) pos() int64 {
	return r.base + int64(r.i)
}

func (r *Reader) mark() mark {
	return mark{r.si, r.i, r.pos()}
}

// peek returns the next byte without consuming it.
// It reports false at the end of the input.
func (r *Reader) peek() (byte, bool) {
	if r.si == len(r.segs) {
		return 0, false
	}
	return r.segs[r.si][r.i], true
}

// advance consumes the next byte, which must exist.
func (r *Reader) advance() {
	r.i++
	if r.i == len(r.segs[r.si]) {
		r.base += int64(r.i)
		r.si++
		r.i = 0
	}
}

func (r *Reader) skipSpace() {
	for {
		switch c, _ := r.peek(); c {
		case ' ', '\t', '\r', '\n':
			r.advance()
		default:
			return
		}
	}
}

// setValueToRaw marks the whole raw token as the value text,
// ending at the current position.
func (r *Reader) setValueToRaw() {
	r.vstart, r.vend = r.start, r.mark()
	r.end = r.vend
}

// span returns a view of the input between start and end.
// A chunked span uses r.chunks and is valid until the next call.
func (r *Reader) span(start, end mark) jsonwire.Span {
	if start.si == end.si {
		return jsonwire.SingleSpan(r.segs[start.si][start.i:end.i])
	}
	r.chunks = append(r.chunks[:0], r.segs[start.si][start.i:])
	for si := start.si + 1; si < end.si; si++ {
		r.chunks = append(r.chunks, r.segs[si])
	}
	if end.si < len(r.segs) {
		r.chunks = append(r.chunks, r.segs[end.si][:end.i])
	}
	return jsonwire.ChunkedSpan(r.chunks, int(end.pos-start.pos))
}

// consumeLiteral consumes the JSON literal lit.
func (r *Reader) consumeLiteral(lit string) error {
	for i := 0; i < len(lit); i++ {
		c, ok := r.peek()
		if !ok {
			return errUnexpectedEOF.withOffset(r.pos())
		}
		if c != lit[i] {
			return newInvalidCharacterError([]byte{c}, "within literal "+lit+" (expecting "+strconv.QuoteRune(rune(lit[i]))+")").withOffset(r.pos())
		}
		r.advance()
	}
	return r.checkTokenEnd("literal " + lit)
}

// consumeNumber consumes a JSON number per RFC 8259, section 6.
func (r *Reader) consumeNumber() error {
	if c, _ := r.peek(); c == '-' {
		r.advance()
	}
	switch c, ok := r.peek(); {
	case !ok:
		return errUnexpectedEOF.withOffset(r.pos())
	case c == '0':
		r.advance()
	case '1' <= c && c <= '9':
		r.consumeDigits()
	default:
		return newInvalidCharacterError([]byte{c}, "within number (expecting digit)").withOffset(r.pos())
	}
	if c, _ := r.peek(); c == '.' {
		r.advance()
		if err := r.consumeRequiredDigits(); err != nil {
			return err
		}
	}
	if c, _ := r.peek(); c == 'e' || c == 'E' {
		r.advance()
		if c, _ := r.peek(); c == '+' || c == '-' {
			r.advance()
		}
		if err := r.consumeRequiredDigits(); err != nil {
			return err
		}
	}
	return r.checkTokenEnd("number")
}

func (r *Reader) consumeDigits() {
	for {
		if c, ok := r.peek(); !ok || c < '0' || '9' < c {
			return
		}
		r.advance()
	}
}

func (r *Reader) consumeRequiredDigits() error {
	switch c, ok := r.peek(); {
	case !ok:
		return errUnexpectedEOF.withOffset(r.pos())
	case c < '0' || '9' < c:
		return newInvalidCharacterError([]byte{c}, "within number (expecting digit)").withOffset(r.pos())
	}
	r.consumeDigits()
	return nil
}

// checkTokenEnd reports an error if a literal or number
// runs directly into characters that could continue it.
func (r *Reader) checkTokenEnd(what string) error {
	switch c, _ := r.peek(); {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '.', c == '+', c == '-':
		return newInvalidCharacterError([]byte{c}, "after "+what).withOffset(r.pos())
	}
	return nil
}

// consumeString consumes a JSON string per RFC 8259, section 7,
// recording its body as the value text.
// Bytes at or above utf8.RuneSelf are passed through unvalidated.
func (r *Reader) consumeString() error {
	r.advance()
	r.vstart = r.mark()
	for {
		c, ok := r.peek()
		switch {
		case !ok:
			return errUnexpectedEOF.withOffset(r.pos())
		case c == '"':
			r.vend = r.mark()
			r.advance()
			return nil
		case c == '\\':
			r.escaped = true
			if err := r.consumeEscape(); err != nil {
				return err
			}
		case c < ' ':
			return newInvalidCharacterError([]byte{c}, "within string (expecting non-control character)").withOffset(r.pos())
		default:
			r.advance()
		}
	}
}

// consumeEscape consumes one escape sequence starting at a backslash.
func (r *Reader) consumeEscape() error {
	pos := r.pos()
	r.advance()
	c, ok := r.peek()
	if !ok {
		return errUnexpectedEOF.withOffset(r.pos())
	}
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		r.advance()
		return nil
	case 'u':
		r.advance()
		seq := append(make([]byte, 0, 6), '\\', 'u')
		for range 4 {
			c, ok := r.peek()
			if !ok {
				return errUnexpectedEOF.withOffset(r.pos())
			}
			seq = append(seq, c)
			if !jsonwire.IsHex(c) {
				return newInvalidEscapeSequenceError(string(seq)).withOffset(pos)
			}
			r.advance()
		}
		return nil
	default:
		return newInvalidEscapeSequenceError(string([]byte{'\\', c})).withOffset(pos)
	}
}

// consumeComment consumes a line or block comment starting at a slash.
// A line comment ends before the newline that terminates it.
func (r *Reader) consumeComment() error {
	r.advance()
	switch c, ok := r.peek(); {
	case !ok:
		return errUnexpectedEOF.withOffset(r.pos())
	case c == '/':
		r.advance()
		for c, ok := r.peek(); ok && c != '\n'; c, ok = r.peek() {
			r.advance()
		}
		return nil
	case c == '*':
		r.advance()
		for {
			c, ok := r.peek()
			if !ok {
				return errUnexpectedEOF.withOffset(r.pos())
			}
			r.advance()
			if c == '*' {
				if c, _ := r.peek(); c == '/' {
					r.advance()
					return nil
				}
			}
		}
	default:
		return newInvalidCharacterError([]byte{c}, "within comment (expecting '/' or '*')").withOffset(r.pos())
	}
}

// ValueTextEquals reports whether the decoded text of the current
// string or object name equals the candidate.
//
// It reports an error matching [ErrInvalidState] if the current token
// is of any other kind or if there is no current token,
// and [ErrLengthOverflow] if the comparison needs scratch space
// beyond the maximum length of a slice. A mismatch is not an error.
//
// It does not allocate when the string and candidate are short.
func (r *Reader) ValueTextEquals(c Candidate) (bool, error) {
	if !r.kind.hasText() {
		return false, &InvalidStateError{Kind: r.kind}
	}
	s := r.span(r.vstart, r.vend)
	var eq bool
	var err error
	switch c.form {
	case formUTF8:
		eq, err = jsonwire.EqualUTF8(s, r.escaped, c.utf8)
	case formUTF16:
		eq, err = jsonwire.EqualUTF16(s, r.escaped, c.utf16)
	default:
		eq, err = equalText(s, r.escaped, c.text)
	}
	if err == jsonwire.ErrLengthOverflow {
		return false, ErrLengthOverflow
	}
	return eq, err
}

// ValueTextEqualsBytes is equivalent to r.ValueTextEquals(UTF8(b)).
func (r *Reader) ValueTextEqualsBytes(b []byte) (bool, error) {
	return r.ValueTextEquals(UTF8(b))
}

// ValueTextEqualsUTF16 is equivalent to r.ValueTextEquals(UTF16(u)).
func (r *Reader) ValueTextEqualsUTF16(u []uint16) (bool, error) {
	return r.ValueTextEquals(UTF16(u))
}

// ValueTextEqualsString is equivalent to r.ValueTextEquals(String(s)).
func (r *Reader) ValueTextEqualsString(s string) (bool, error) {
	return r.ValueTextEquals(String(s))
}

// AppendValueText appends the decoded text of the current
// string or object name to dst.
// It reports an error matching [ErrInvalidState] for any other token.
func (r *Reader) AppendValueText(dst []byte) ([]byte, error) {
	if !r.kind.hasText() {
		return dst, &InvalidStateError{Kind: r.kind}
	}
	s := r.span(r.vstart, r.vend)
	rd := s.Reader()
	return jsonwire.AppendUnquote(dst, &rd), nil
}

// AppendRawValue appends the raw bytes of the current token to dst,
// including the quotes of a string and any escape sequences within it.
// It reports an error matching [ErrInvalidState] if there is no current token.
func (r *Reader) AppendRawValue(dst []byte) ([]byte, error) {
	if r.kind == KindNone {
		return dst, &InvalidStateError{Kind: r.kind}
	}
	s := r.span(r.start, r.end)
	n := len(dst)
	dst = slices.Grow(dst, s.Len())[:n+s.Len()]
	s.CopyTo(dst[n:])
	return dst, nil
}
