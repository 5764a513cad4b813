// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"bytes"
	"testing"
)

func TestDataObjectPayloadVariantsRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload DataObjectPayload
	}{
		{"utf16", &UTF16StringPayload{Type: DataArtist, Position: 3, Text: "the artist"}},
		{"url", &URLPayload{Type: DataPodcastEnclosureURL, URL: "http://example.com/ep.mp3"}},
		{"blob", &BlobPayload{Type: 17, Raw: []byte{1, 2, 3, 4, 5}}}, // 17 is neither a UTF-16 nor a URL discriminant
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &DataObject{HdrExtra: make([]byte, 8), Payload: tt.payload}
			FixLengths(d)

			var buf bytes.Buffer
			if err := Emit(&buf, d); err != nil {
				t.Fatalf("Emit: %v", err)
			}

			got, err := parseDataObjectITunes(newCursor(buf.Bytes()))
			if err != nil {
				t.Fatalf("parseDataObjectITunes: %v", err)
			}
			if got.Payload.discType() != tt.payload.discType() {
				t.Fatalf("discType = %v, want %v", got.Payload.discType(), tt.payload.discType())
			}

			var buf2 bytes.Buffer
			FixLengths(got)
			if err := Emit(&buf2, got); err != nil {
				t.Fatalf("re-Emit: %v", err)
			}
			if d := Diff(buf.Bytes(), buf2.Bytes()); d != nil {
				t.Fatalf("mhod round trip not byte-identical: %v", d)
			}
		})
	}
}

func TestUTF16PayloadReservedAndTailRoundTrip(t *testing.T) {
	payload := &UTF16StringPayload{
		Type:     DataComment,
		Position: 1,
		Reserved: [8]byte{1, 2, 3, 4, 5, 6, 7, 8},
		Text:     "a comment",
		Tail:     []byte{9, 9, 9},
	}
	d := &DataObject{HdrExtra: make([]byte, 8), Payload: payload}
	FixLengths(d)

	var buf bytes.Buffer
	if err := Emit(&buf, d); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	got, err := parseDataObjectITunes(newCursor(buf.Bytes()))
	if err != nil {
		t.Fatalf("parseDataObjectITunes: %v", err)
	}
	gotPayload, ok := got.Payload.(*UTF16StringPayload)
	if !ok {
		t.Fatalf("got %T, want *UTF16StringPayload", got.Payload)
	}
	if gotPayload.Reserved != payload.Reserved {
		t.Fatalf("Reserved = %v, want %v", gotPayload.Reserved, payload.Reserved)
	}
	if !bytes.Equal(gotPayload.Tail, payload.Tail) {
		t.Fatalf("Tail = %v, want %v", gotPayload.Tail, payload.Tail)
	}

	var buf2 bytes.Buffer
	FixLengths(got)
	if err := Emit(&buf2, got); err != nil {
		t.Fatalf("re-Emit: %v", err)
	}
	if d := Diff(buf.Bytes(), buf2.Bytes()); d != nil {
		t.Fatalf("mhod with reserved/trailing bytes not byte-identical: %v", d)
	}
}

func TestDecodeUTF16PayloadOverflow(t *testing.T) {
	// Claims a 100-byte string but only supplies the 16-byte prefix.
	payload := make([]byte, 16)
	payload[4] = 100
	if _, err := decodeUTF16Payload(DataTitle, payload); err != ErrCountOverflow {
		t.Fatalf("decodeUTF16Payload with an overlong count: got %v, want ErrCountOverflow", err)
	}
}

func TestParseDataObjectHeaderLengthMismatch(t *testing.T) {
	var buf bytes.Buffer
	writeBytes(&buf, []byte(MagicDataObject))
	writeU32(&buf, 10) // hdrLen < 16 is invalid
	writeU32(&buf, 10)
	writeU32(&buf, 1)
	if _, err := parseDataObjectITunes(newCursor(buf.Bytes())); err == nil {
		t.Fatalf("expected an error parsing an mhod with hdrLen < 16")
	}
}
