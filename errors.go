// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions carrying no offset-specific payload.
var (
	// ErrUnknownMagic is returned when a 4-byte tag is not one of the
	// recognized record magics.
	ErrUnknownMagic = errors.New("rpodlib: unknown magic tag")

	// ErrBadDiscriminant is returned when an mhsd list_type or mhod
	// data_type value is outside the supported variant set.
	ErrBadDiscriminant = errors.New("rpodlib: bad discriminant")

	// ErrShortRead is returned when the input is exhausted before a
	// record boundary is reached.
	ErrShortRead = errors.New("rpodlib: short read")

	// ErrLengthMismatch is returned when a record's stored header_len
	// (or len) is smaller than the fixed fields of its kind. Parsers do
	// not compare a record's len with the bytes its children consume.
	ErrLengthMismatch = errors.New("rpodlib: length mismatch")

	// ErrTrailingBytes reports bytes left before a record's declared
	// end once its children are consumed. No parser in this package
	// returns it, since none performs that comparison.
	ErrTrailingBytes = errors.New("rpodlib: trailing bytes")

	// ErrMalformedString is returned when a UTF-16 payload has an odd
	// byte length or fails to decode.
	ErrMalformedString = errors.New("rpodlib: malformed string")

	// ErrCountOverflow is returned when a declared child count implies
	// more bytes than remain in the input.
	ErrCountOverflow = errors.New("rpodlib: count overflow")

	// ErrHashMismatch is returned by VerifyHash58 when the stored hash58
	// digest does not match the recomputed one.
	ErrHashMismatch = errors.New("rpodlib: hash58 mismatch")

	// ErrBadFirmwareID is returned when a firmware identifier is not
	// 16 hex characters.
	ErrBadFirmwareID = errors.New("rpodlib: firmware id must be 16 hex characters")

	// ErrChildTypeMismatch is returned by SetChildren when the
	// supplied records are not of the type a record's single child
	// list accepts.
	ErrChildTypeMismatch = errors.New("rpodlib: child type mismatch")
)

// ParseError reports a parse failure together with the byte offset (from
// the start of the buffer passed to Parse) at which it occurred.
type ParseError struct {
	Offset int
	Magic  string // magic tag being parsed, if known
	Err    error
}

func (e *ParseError) Error() string {
	if e.Magic != "" {
		return fmt.Sprintf("rpodlib: parse error at offset %d (in %q): %v", e.Offset, e.Magic, e.Err)
	}
	return fmt.Sprintf("rpodlib: parse error at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrf(offset int, magic string, err error) error {
	return &ParseError{Offset: offset, Magic: magic, Err: err}
}
