// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"encoding/binary"
	"io"
)

// cursor reads sequentially through an in-memory record buffer, tracking
// the absolute byte offset so parse failures can report where in the
// input they occurred (§7 requires ShortRead/LengthMismatch errors to
// carry a position).
type cursor struct {
	data []byte
	pos  int
}

func newCursor(b []byte) *cursor {
	return &cursor{data: b}
}

func (c *cursor) offset() int { return c.pos }

func (c *cursor) remaining() int { return len(c.data) - c.pos }

func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || n > c.remaining() {
		return nil, ErrShortRead
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// bytes returns a copy of the next n bytes so the returned slice stays
// valid even if the underlying buffer is later reused.
func (c *cursor) bytes(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	cp := make([]byte, n)
	copy(cp, b)
	return cp, nil
}

func (c *cursor) skip(n int) error {
	_, err := c.take(n)
	return err
}

func (c *cursor) u8() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) array4() ([4]byte, error) {
	var a [4]byte
	b, err := c.take(4)
	if err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}

// writeU8/writeU16/writeU32/writeU64 write little-endian integers to w,
// mirroring the read side above. encoding/binary.Write is avoided for
// the hot path (most fields) because it reflects on its argument; a
// direct byte-slice write keeps Emit linear without per-field
// allocation, the same trade the teacher makes by hand-rolling
// readUint32LittleEndian instead of calling binary.Read per field.

func writeU8(w io.Writer, v byte) error {
	_, err := w.Write([]byte{v})
	return err
}

func writeU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeU64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func writeBytes(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

func writeZero(w io.Writer, n int) error {
	if n <= 0 {
		return nil
	}
	return writeBytes(w, make([]byte, n))
}
