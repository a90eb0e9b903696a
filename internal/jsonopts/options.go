// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonopts holds the option values shared by the jsontext Reader.
package jsonopts

import "github.com/go-json-experiment/jsontoken/internal"

// Options is the common options type exposed by the jsontext package.
// It is implemented by each individual option value and by [Struct].
type Options interface {
	// JSONOptions is exported so related json packages can call it.
	JSONOptions(internal.NotForPublicUse)
}

// DefaultMaxDepth is the maximum nesting depth used when none is specified.
const DefaultMaxDepth = 10000

// CommentHandling specifies how a Reader treats JSON comments,
// which are not part of RFC 8259 but are common in configuration files.
type CommentHandling uint8

const (
	// CommentsDisallow reports a syntactic error for any comment.
	CommentsDisallow CommentHandling = iota
	// CommentsSkip silently discards comments.
	CommentsSkip
	// CommentsAllow reports each comment as a separate token.
	CommentsAllow
)

func (CommentHandling) JSONOptions(internal.NotForPublicUse) {}

// MaxDepth limits the nesting depth of JSON objects and arrays.
// Non-positive values select [DefaultMaxDepth].
type MaxDepth int

func (MaxDepth) JSONOptions(internal.NotForPublicUse) {}

// presence bits for Struct fields.
const (
	hasCommentHandling uint8 = 1 << iota
	hasMaxDepth
)

// Struct is the combination of all options in struct form.
// The zero value uses the default for every option.
type Struct struct {
	present uint8

	CommentHandling CommentHandling
	MaxDepth        int
}

func (*Struct) JSONOptions(internal.NotForPublicUse) {}

// Join merges opts into dst, where later options take precedence.
func (dst *Struct) Join(opts ...Options) {
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case *Struct:
			if opt.present&hasCommentHandling != 0 {
				dst.CommentHandling = opt.CommentHandling
			}
			if opt.present&hasMaxDepth != 0 {
				dst.MaxDepth = opt.MaxDepth
			}
			dst.present |= opt.present
		case CommentHandling:
			dst.CommentHandling = opt
			dst.present |= hasCommentHandling
		case MaxDepth:
			dst.MaxDepth = int(opt)
			dst.present |= hasMaxDepth
		default:
			panic("unknown option type")
		}
	}
}

// Depth reports the effective maximum nesting depth.
func (s *Struct) Depth() int {
	if s.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return s.MaxDepth
}
