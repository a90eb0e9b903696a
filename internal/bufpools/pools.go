// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bufpools pools the heap scratch buffers used to decode
// JSON strings that are too large for a stack-allocated array.
package bufpools

import (
	"math/bits"
	"sync"
)

const (
	minPooledShift = 12 // minimum shift size of buffer to pool
	numPools       = bits.UintSize - minPooledShift
)

// You cannot put a []byte into a pool without it allocating every time
// just to store the slice header. Thus, we have a second pool
// just to cache the use of slice headers.
var sliceHeaderPool = sync.Pool{New: func() any { return new([]byte) }}

// bufferPools is a list of buffer pools.
// Each pool manages buffers of capacity within [1<<shift : 2<<shift),
// where shift is (minPooledShift+index).
var bufferPools [numPools]sync.Pool

// Get acquires an empty buffer with enough capacity to hold n bytes.
// The unused buffer content is not guaranteed to be zeroed.
func Get(n int) []byte {
	if n < 1<<minPooledShift {
		n = 1 << minPooledShift
	}
	shift := bits.Len(uint(n - 1))
	if p, _ := bufferPools[shift-minPooledShift].Get().(*[]byte); p != nil {
		b := (*p)[:0]
		*p = nil
		sliceHeaderPool.Put(p)
		return b
	}
	return make([]byte, 0, 1<<shift)
}

// Put releases a buffer back to the pools.
// The slice need not be originally retrieved by [Get],
// but the caller must relinquish ownership of the slice.
func Put(b []byte) {
	if cap(b) < 1<<minPooledShift {
		return
	}
	p := sliceHeaderPool.Get().(*[]byte)
	*p = b
	// A buffer is only pooled where every Get from that pool is satisfied,
	// so round the capacity down to a power of two.
	shift := bits.Len(uint(cap(b))) - 1
	bufferPools[shift-minPooledShift].Put(p)
}
