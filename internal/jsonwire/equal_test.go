// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/go-json-experiment/jsontoken/internal/jsontest"
)

var equalTestdata = []struct {
	name jsontest.CaseName
	in   string // raw string body without quotes
	want string
	eq   bool
}{
	{jsontest.Name("EmptyEmpty"), ``, "", true},
	{jsontest.Name("EmptyName"), ``, "name", false},
	{jsontest.Name("NameEmpty"), `name`, "", false},
	{jsontest.Name("Name"), `name`, "name", true},
	{jsontest.Name("NameLonger"), `name`, "namee", false},
	{jsontest.Name("NameShorter"), `name`, "nam", false},
	{jsontest.Name("EscapedName"), `na\u006de`, "name", true},
	{jsontest.Name("EscapedNameLonger"), `na\u006de`, "namee", false},
	{jsontest.Name("EscapedNameEmpty"), `na\u006de`, "", false},
	{jsontest.Name("EscapeSyntaxIsLiteral"), `na\u006de`, `na\u006de`, false},
	{jsontest.Name("EscapeSyntaxIsLiteralVerbatim"), `name`, `na\u006de`, false},
	{jsontest.Name("EscapedQuote"), `My name is \"Ahson\"`, `My name is "Ahson"`, true},
	{jsontest.Name("MismatchMultiSegment"), `Hi, \"Ahson\"!`, `Hello, "Ahson"`, false},
	{jsontest.Name("SameLengthPrefix"), `aaabbb`, "aaaaaa", false},
	{jsontest.Name("SameLengthSuffix"), `bbbaaa`, "aaaaaa", false},
	{jsontest.Name("TooSmallEscaped"), `\u0061\u0061`, "a", false},
	{jsontest.Name("TooSmallVerbatim"), `aaaaaaaaaaaa`, "a", false},
	{jsontest.Name("TooLargeEscaped"), `\u0061\u0061`, "aaaaaaaaaaaaa", false},
	{jsontest.Name("TooLargeVerbatim"), `aaaaaaaaaaaa`, "aaaaaaaaaaaaa", false},
	{jsontest.Name("EscapedLast"), `aaaaaa\u0061`, "aaaaaaa", true},
	{jsontest.Name("Multibyte"), `h\u00e9llo`, "héllo", true},
	{jsontest.Name("MultibyteVerbatim"), "héllo", "héllo", true},
	{jsontest.Name("SurrogatePair"), `\ud83d\ude00`, "\U0001f600", true},
	{jsontest.Name("SurrogatePairVerbatim"), "\U0001f600", "\U0001f600", true},
	{jsontest.Name("LoneSurrogateIsReplaced"), `\ud800`, "\ufffd", true},
	{jsontest.Name("LoneSurrogateNotEmpty"), `\ud800`, "", false},
	{jsontest.Name("Controls"), `\b\f\n\r\t`, "\b\f\n\r\t", true},
}

func TestEqualUTF8(t *testing.T) {
	for _, tt := range equalTestdata {
		t.Run(tt.name.Name, func(t *testing.T) {
			in := []byte(tt.in)
			escaped := bytes.IndexByte(in, '\\') >= 0
			for _, seg := range append(jsontest.Segmentations(in), jsontest.EverySplit(in)...) {
				for _, span := range spansOf(seg) {
					got, err := EqualUTF8(span, escaped, []byte(tt.want))
					if err != nil {
						t.Fatalf("%s: %s: EqualUTF8 error: %v", tt.name.Where, seg.Name, err)
					}
					if got != tt.eq {
						t.Fatalf("%s: %s: EqualUTF8(%q, %q) = %v, want %v", tt.name.Where, seg.Name, tt.in, tt.want, got, tt.eq)
					}
				}
			}
		})
	}
}

func TestEqualUTF16(t *testing.T) {
	for _, tt := range equalTestdata {
		t.Run(tt.name.Name, func(t *testing.T) {
			in := []byte(tt.in)
			escaped := bytes.IndexByte(in, '\\') >= 0
			want := utf16.Encode([]rune(tt.want))
			for _, seg := range append(jsontest.Segmentations(in), jsontest.EverySplit(in)...) {
				for _, span := range spansOf(seg) {
					got, err := EqualUTF16(span, escaped, want)
					if err != nil {
						t.Fatalf("%s: %s: EqualUTF16 error: %v", tt.name.Where, seg.Name, err)
					}
					if got != tt.eq {
						t.Fatalf("%s: %s: EqualUTF16(%q, %q) = %v, want %v", tt.name.Where, seg.Name, tt.in, tt.want, got, tt.eq)
					}
				}
			}
		})
	}
}

func TestEqualUTF16InvalidCandidate(t *testing.T) {
	tests := []struct {
		in   string
		want []uint16
	}{
		{`hello`, []uint16{0xdc01}},
		{`hello`, []uint16{0xd801}},
		{`\ud800`, []uint16{0xd800}},
		{`\udc00`, []uint16{0xdc00}},
		{`a\ud83d\ude00`, []uint16{'a', 0xde00, 0xd83d}},
		{`\ud83d\ude00a`, []uint16{0xd83d, 'a'}},
		{"\ufffd", []uint16{0xdc00}},
	}
	for _, tt := range tests {
		in := []byte(tt.in)
		escaped := bytes.IndexByte(in, '\\') >= 0
		for _, seg := range jsontest.Segmentations(in) {
			got, err := EqualUTF16(ChunkedSpan(seg.Segments, len(in)), escaped, tt.want)
			if got || err != nil {
				t.Errorf("%s: EqualUTF16(%q, %#x) = (%v, %v), want (false, nil)", seg.Name, tt.in, tt.want, got, err)
			}
		}
	}
}

// TestEqualLarge uses tokens beyond the stack scratch size so that
// decoding uses pooled buffers.
func TestEqualLarge(t *testing.T) {
	const escapedA = `\u0061`
	want := strings.Repeat("a", 320-len(escapedA)+1)
	wantUTF16 := utf16.Encode([]rune(want))
	for i := 0; i <= 320-len(escapedA); i++ {
		in := []byte(strings.Repeat("a", i) + escapedA + strings.Repeat("a", 320-len(escapedA)-i))
		for _, seg := range []jsontest.Segmentation{
			{Name: "Contiguous", Segments: [][]byte{in}},
			{Name: "Bytewise", Segments: jsontest.SplitEvery(in, 1)},
		} {
			span := ChunkedSpan(seg.Segments, len(in))
			if got, err := EqualUTF8(span, true, []byte(want)); !got || err != nil {
				t.Fatalf("%s: EqualUTF8 with escape at %d = (%v, %v), want (true, nil)", seg.Name, i, got, err)
			}
			if got, err := EqualUTF16(span, true, wantUTF16); !got || err != nil {
				t.Fatalf("%s: EqualUTF16 with escape at %d = (%v, %v), want (true, nil)", seg.Name, i, got, err)
			}

			// Changing any byte near the escape must cause a mismatch.
			for _, j := range []int{i - 1, i, i + 1} {
				if j < 0 || j >= len(want) {
					continue
				}
				other := []byte(want)
				other[j] = 'b'
				if got, err := EqualUTF8(span, true, other); got || err != nil {
					t.Fatalf("%s: EqualUTF8 with escape at %d and 'b' at %d = (%v, %v), want (false, nil)", seg.Name, i, j, got, err)
				}
				if got, err := EqualUTF16(span, true, utf16.Encode([]rune(string(other)))); got || err != nil {
					t.Fatalf("%s: EqualUTF16 with escape at %d and 'b' at %d = (%v, %v), want (false, nil)", seg.Name, i, j, got, err)
				}
			}
		}
	}
}

func TestScratchLen(t *testing.T) {
	tests := []struct {
		n, perUnit int
		want       int
		wantErr    error
	}{
		{0, 3, 0, nil},
		{100, 3, 300, nil},
		{math.MaxInt, 1, math.MaxInt, nil},
		{math.MaxInt / 3, 3, math.MaxInt / 3 * 3, nil},
		{math.MaxInt/3 + 1, 3, 0, ErrLengthOverflow},
		{math.MaxInt, 3, 0, ErrLengthOverflow},
	}
	for _, tt := range tests {
		got, err := scratchLen(tt.n, tt.perUnit)
		if got != tt.want || !errors.Is(err, tt.wantErr) {
			t.Errorf("scratchLen(%d, %d) = (%d, %v), want (%d, %v)", tt.n, tt.perUnit, got, err, tt.want, tt.wantErr)
		}
	}
}

// TestLengthOverflow lowers the maximum span length so that
// the overflow path can be reached with small inputs.
func TestLengthOverflow(t *testing.T) {
	defer SetMaxSpanLen(8)()

	verbatim := SingleSpan([]byte(`aaaaaaaaaaaa`))
	escaped := SingleSpan([]byte(`\u0061\u0061`))
	as := func(n int) []uint16 { return utf16.Encode([]rune(strings.Repeat("a", n))) }

	tests := []struct {
		name    string
		call    func() (bool, error)
		wantErr error
	}{
		// Candidates rejected by length never reach the scratch computation.
		{"UTF8/VerbatimTooLong", func() (bool, error) { return EqualUTF8(verbatim, false, bytes.Repeat([]byte("a"), 13)) }, nil},
		{"UTF8/EscapedTooLong", func() (bool, error) { return EqualUTF8(escaped, true, bytes.Repeat([]byte("a"), 13)) }, nil},
		{"UTF16/VerbatimTooLong", func() (bool, error) { return EqualUTF16(verbatim, false, as(13)) }, nil},
		{"UTF16/VerbatimHuge", func() (bool, error) { return EqualUTF16(verbatim, false, as(1000)) }, nil},
		{"UTF16/VerbatimTooShort", func() (bool, error) { return EqualUTF16(verbatim, false, as(3)) }, nil},
		{"UTF16/EscapedTooLong", func() (bool, error) { return EqualUTF16(escaped, true, as(13)) }, nil},

		// Verbatim UTF-8 comparison needs no scratch space at all.
		{"UTF8/VerbatimSameLength", func() (bool, error) { return EqualUTF8(verbatim, false, bytes.Repeat([]byte("a"), 12)) }, nil},

		// Everything else needs scratch space larger than the maximum.
		{"UTF8/Escaped", func() (bool, error) { return EqualUTF8(escaped, true, []byte("aa")) }, ErrLengthOverflow},
		{"UTF16/Verbatim", func() (bool, error) { return EqualUTF16(verbatim, false, as(12)) }, ErrLengthOverflow},
		{"UTF16/Escaped", func() (bool, error) { return EqualUTF16(escaped, true, as(3)) }, ErrLengthOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got && err != nil {
				t.Fatalf("reported equality alongside error %v", err)
			}
		})
	}
}

func TestEqualAllocations(t *testing.T) {
	if testing.CoverMode() != "" {
		t.Skip("coverage mode breaks the compiler optimization this depends on")
	}
	in := []byte(`conne\u0063tion\u0049d`)
	want := []byte("connectionId")
	wantUTF16 := utf16.Encode([]rune("connectionId"))
	chunked := ChunkedSpan(jsontest.SplitEvery(in, 3), len(in))
	for _, span := range []Span{SingleSpan(in), chunked} {
		got := int(testing.AllocsPerRun(10, func() {
			if ok, _ := EqualUTF8(span, true, want); !ok {
				panic("never executed")
			}
			if ok, _ := EqualUTF16(span, true, wantUTF16); !ok {
				panic("never executed")
			}
		}))
		if got > 0 {
			t.Errorf("equality check allocated %d times, want 0", got)
		}
	}
}
