// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"errors"
	"io"
)

// ErrInvalidSeek is returned by ByteCounter.Seek when the resulting
// offset would be negative.
var ErrInvalidSeek = errors.New("rpodlib: invalid seek offset")

// ByteCounter is a discard sink that tracks how many bytes have been
// written to it. It implements io.Writer and io.Seeker so it can stand
// in for a real file when only the resulting size (or offset) matters,
// grounded on original_source's util.rs ByteCounter.
//
// fixup.go does not use ByteCounter internally (lengths are computed
// structurally in O(n), per §9), but it is exposed for tests and
// callers that want to cross-check FixLengths against a real Emit.
type ByteCounter struct {
	n   int64
	end int64 // furthest offset any Write has reached
}

// Write discards b and advances the counter by len(b).
func (c *ByteCounter) Write(b []byte) (int, error) {
	c.n += int64(len(b))
	if c.n > c.end {
		c.end = c.n
	}
	return len(b), nil
}

// Seek repositions the counter the way a real file would, without
// retaining any content at the new offset.
func (c *ByteCounter) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = c.n + offset
	case io.SeekEnd:
		next = c.end + offset
	default:
		return 0, errors.New("rpodlib: invalid whence")
	}
	if next < 0 {
		return 0, ErrInvalidSeek
	}
	c.n = next
	return c.n, nil
}

// Len reports the current offset. Without intervening seeks this is the
// number of bytes written so far.
func (c *ByteCounter) Len() int64 { return c.n }
