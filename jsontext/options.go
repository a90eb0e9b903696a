// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import "github.com/go-json-experiment/jsontoken/internal/jsonopts"

// Options configures [NewReader] and [NewSequenceReader] with specific
// features and behaviors. Options are constructed by the functions
// in this package and may be joined by passing several of them.
// Later options take precedence over earlier ones.
//
// Options that do not affect a particular operation are ignored.
type Options = jsonopts.Options

// CommentHandling specifies how a [Reader] treats comments.
// JSON comments are either line comments ("//" until the end of the line)
// or block comments ("/*" until "*/").
type CommentHandling = jsonopts.CommentHandling

const (
	// CommentsDisallow reports any comment as a syntactic error.
	// This is the default.
	CommentsDisallow = jsonopts.CommentsDisallow
	// CommentsSkip treats comments as whitespace.
	CommentsSkip = jsonopts.CommentsSkip
	// CommentsAllow reports each comment as a [KindComment] token.
	CommentsAllow = jsonopts.CommentsAllow
)

// WithCommentHandling specifies how comments are handled.
func WithCommentHandling(h CommentHandling) Options {
	return h
}

// MaxDepth limits how deeply objects and arrays may nest.
// Exceeding the limit is reported as a syntactic error.
// A non-positive depth selects the default limit of 10000.
func MaxDepth(n int) Options {
	return jsonopts.MaxDepth(n)
}
