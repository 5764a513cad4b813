// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// utf16Codec is shared by every record (iTunesDB mhod string payloads,
// the Artwork discriminant-3 ithmb filename) that stores text as
// UTF-16LE. Built on golang.org/x/text rather than a hand-rolled
// surrogate-pair decoder.
var utf16Codec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeUTF16LE converts a raw UTF-16LE byte string to a Go string. An
// odd-length input can never have been valid UTF-16 and is reported as
// ErrMalformedString rather than silently truncated.
func decodeUTF16LE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", ErrMalformedString
	}
	out, _, err := transform.Bytes(utf16Codec.NewDecoder(), b)
	if err != nil {
		return "", ErrMalformedString
	}
	return string(out), nil
}

// encodeUTF16LE converts a Go string to raw UTF-16LE bytes.
func encodeUTF16LE(s string) ([]byte, error) {
	out, _, err := transform.Bytes(utf16Codec.NewEncoder(), []byte(s))
	if err != nil {
		return nil, ErrMalformedString
	}
	return out, nil
}
