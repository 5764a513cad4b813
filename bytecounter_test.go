// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"bytes"
	"io"
	"testing"
)

func TestByteCounterMatchesRealEmit(t *testing.T) {
	m := newSampleMaster("counted")
	FixLengths(m)

	var buf bytes.Buffer
	if err := Emit(&buf, m); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	var bc ByteCounter
	if err := Emit(&bc, m); err != nil {
		t.Fatalf("Emit into ByteCounter: %v", err)
	}

	if bc.Len() != int64(buf.Len()) {
		t.Fatalf("ByteCounter.Len() = %d, want %d", bc.Len(), buf.Len())
	}
}

func TestByteCounterSeek(t *testing.T) {
	var c ByteCounter
	c.Write(make([]byte, 10))

	if n, err := c.Seek(5, io.SeekStart); err != nil || n != 5 {
		t.Fatalf("Seek(5, SeekStart) = %d, %v", n, err)
	}
	if n, err := c.Seek(3, io.SeekCurrent); err != nil || n != 8 {
		t.Fatalf("Seek(3, SeekCurrent) = %d, %v", n, err)
	}
	if n, err := c.Seek(-20, io.SeekCurrent); err == nil {
		t.Fatalf("Seek to negative offset succeeded, got %d", n)
	}
}
