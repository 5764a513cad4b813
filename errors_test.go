// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"errors"
	"testing"
)

func TestParseErrorUnwrap(t *testing.T) {
	err := parseErrf(12, "mhit", ErrShortRead)
	if !errors.Is(err, ErrShortRead) {
		t.Fatalf("errors.Is(err, ErrShortRead) = false, want true")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("errors.As failed to extract *ParseError")
	}
	if pe.Offset != 12 || pe.Magic != "mhit" {
		t.Fatalf("ParseError = %+v, want Offset=12 Magic=mhit", pe)
	}
}

func TestParseErrorMessageWithoutMagic(t *testing.T) {
	err := parseErrf(0, "", ErrUnknownMagic)
	want := "rpodlib: parse error at offset 0: rpodlib: unknown magic tag"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
