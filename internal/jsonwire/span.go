// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import "bytes"

// Span is the raw body of a JSON string (without the surrounding quotes)
// as it appears in the input. It borrows the input buffers and
// is only valid until the tokenizer that produced it advances.
//
// The zero value is an empty, single-slice span.
type Span struct {
	single []byte   // used only if chunks is nil
	chunks [][]byte // may contain empty chunks
	n      int
}

// SingleSpan constructs a Span backed by one contiguous slice.
func SingleSpan(b []byte) Span {
	return Span{single: b, n: len(b)}
}

// ChunkedSpan constructs a Span whose content is the concatenation of chunks.
// The total length n must equal the sum of the chunk lengths.
// The chunks slice is retained, not copied.
func ChunkedSpan(chunks [][]byte, n int) Span {
	if chunks == nil {
		return Span{}
	}
	return Span{chunks: chunks, n: n}
}

// Len reports the number of raw bytes in the span.
func (s Span) Len() int { return s.n }

// IsSingle reports whether the span is backed by one contiguous slice.
func (s Span) IsSingle() bool { return s.chunks == nil }

// Single returns the content of a single-slice span.
// It panics if the span is chunked.
func (s Span) Single() []byte {
	if !s.IsSingle() {
		panic("jsonwire: Single called on a chunked Span")
	}
	return s.single
}

// CopyTo copies the content of the span into dst and returns dst[:s.Len()].
// The length of dst must be at least s.Len().
func (s Span) CopyTo(dst []byte) []byte {
	if s.IsSingle() {
		return dst[:copy(dst, s.single)]
	}
	var n int
	for _, c := range s.chunks {
		n += copy(dst[n:], c)
	}
	return dst[:n]
}

// Equal reports whether the raw content of the span equals b.
// It never copies the span.
func (s Span) Equal(b []byte) bool {
	if s.n != len(b) {
		return false
	}
	if s.IsSingle() {
		return bytes.Equal(s.single, b)
	}
	r := s.Reader()
	for c := r.Next(); len(c) > 0; c = r.Next() {
		if !bytes.Equal(c, b[:len(c)]) {
			return false
		}
		b = b[len(c):]
	}
	return true
}

// Reader returns a ChunkReader positioned at the start of the span.
func (s Span) Reader() ChunkReader {
	if s.IsSingle() {
		return ChunkReader{cur: s.single}
	}
	return ChunkReader{rest: s.chunks}
}

// ChunkReader reads the content of a Span one byte or one chunk at a time,
// transparently crossing chunk boundaries.
//
// A ChunkReader is a small value: copying it saves the read position and
// assigning the copy back restores it, which provides arbitrary lookahead.
type ChunkReader struct {
	cur  []byte   // unread portion of the current chunk
	rest [][]byte // chunks after cur
}

// fill ensures cur is non-empty, reporting false at the end of the span.
func (r *ChunkReader) fill() bool {
	for len(r.cur) == 0 {
		if len(r.rest) == 0 {
			return false
		}
		r.cur, r.rest = r.rest[0], r.rest[1:]
	}
	return true
}

// ReadByte reads the next byte.
// It reports false at the end of the span.
func (r *ChunkReader) ReadByte() (byte, bool) {
	if !r.fill() {
		return 0, false
	}
	c := r.cur[0]
	r.cur = r.cur[1:]
	return c, true
}

// Peek returns the next byte without consuming it.
func (r *ChunkReader) Peek() (byte, bool) {
	if !r.fill() {
		return 0, false
	}
	return r.cur[0], true
}

// Next consumes and returns the remainder of the current chunk.
// It returns nil at the end of the span.
func (r *ChunkReader) Next() []byte {
	if !r.fill() {
		return nil
	}
	c := r.cur
	r.cur = nil
	return c
}

// readVerbatim consumes and returns the bytes of the current chunk
// that precede the next backslash. It returns an empty slice if the
// next byte is a backslash or the span is exhausted.
func (r *ChunkReader) readVerbatim() []byte {
	if !r.fill() {
		return nil
	}
	i := bytes.IndexByte(r.cur, '\\')
	if i < 0 {
		i = len(r.cur)
	}
	b := r.cur[:i]
	r.cur = r.cur[i:]
	return b
}
