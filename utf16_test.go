// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import "testing"

func TestUTF16RoundTrip(t *testing.T) {
	tests := []string{
		"",
		"hello",
		"naïve café",
		"日本語のタイトル",
		"😀 emoji title",
	}
	for _, s := range tests {
		enc, err := encodeUTF16LE(s)
		if err != nil {
			t.Fatalf("encodeUTF16LE(%q): %v", s, err)
		}
		dec, err := decodeUTF16LE(enc)
		if err != nil {
			t.Fatalf("decodeUTF16LE(%q encoded): %v", s, err)
		}
		if dec != s {
			t.Fatalf("round trip mismatch: got %q, want %q", dec, s)
		}
	}
}

func TestDecodeUTF16OddLength(t *testing.T) {
	if _, err := decodeUTF16LE([]byte{1, 2, 3}); err != ErrMalformedString {
		t.Fatalf("decodeUTF16LE of odd-length input: got %v, want %v", err, ErrMalformedString)
	}
}
