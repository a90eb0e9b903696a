// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontest

import (
	"math/rand"
	"strconv"
)

// Segmentation is one way of splitting an input into segments.
type Segmentation struct {
	Name     string
	Segments [][]byte
}

// Join returns the concatenation of all segments.
func (s Segmentation) Join() []byte {
	var b []byte
	for _, seg := range s.Segments {
		b = append(b, seg...)
	}
	return b
}

// SplitEvery splits b into consecutive segments of n bytes.
// The last segment may be shorter.
func SplitEvery(b []byte, n int) [][]byte {
	var segs [][]byte
	for len(b) > n {
		segs = append(segs, b[:n:n])
		b = b[n:]
	}
	return append(segs, b)
}

// SplitAt splits b at each of the ascending offsets.
// Repeated offsets produce empty segments.
func SplitAt(b []byte, offsets ...int) [][]byte {
	var segs [][]byte
	var prev int
	for _, off := range offsets {
		segs = append(segs, b[prev:off:off])
		prev = off
	}
	return append(segs, b[prev:])
}

// SplitRandom splits b at random offsets chosen by rn,
// occasionally inserting empty segments.
func SplitRandom(rn *rand.Rand, b []byte) [][]byte {
	var offsets []int
	for i := 0; i <= len(b); i++ {
		switch rn.Intn(8) {
		case 0:
			offsets = append(offsets, i)
		case 1:
			offsets = append(offsets, i, i)
		}
	}
	return SplitAt(b, offsets...)
}

// Segmentations returns several splits of b:
// a single segment, one byte per segment, two halves,
// and a few random splits that include empty segments.
// Every segmentation copies b into fresh segments so that
// reading past the end of a segment cannot see its neighbor.
func Segmentations(b []byte) []Segmentation {
	segs := []Segmentation{
		{"Contiguous", [][]byte{b}},
		{"Bytewise", SplitEvery(b, 1)},
		{"Halves", SplitAt(b, len(b)/2)},
	}
	for seed := int64(0); seed < 3; seed++ {
		rn := rand.New(rand.NewSource(seed))
		segs = append(segs, Segmentation{"Random" + strconv.FormatInt(seed, 10), SplitRandom(rn, b)})
	}
	for i := range segs {
		segs[i].Segments = isolate(segs[i].Segments)
	}
	return segs
}

func isolate(segs [][]byte) [][]byte {
	out := make([][]byte, len(segs))
	for i, seg := range segs {
		out[i] = append([]byte(nil), seg...)
	}
	return out
}

// EverySplit returns every way of splitting b into two segments,
// including the splits that leave one side empty.
func EverySplit(b []byte) []Segmentation {
	var segs []Segmentation
	for i := 0; i <= len(b); i++ {
		segs = append(segs, Segmentation{"Split" + strconv.Itoa(i), isolate(SplitAt(b, i))})
	}
	return segs
}
