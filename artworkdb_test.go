// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"bytes"
	"testing"
)

func newSampleArtworkMaster() *ArtworkMaster {
	holder := &ArtworkHolder{CorrelationID: 7, Tail: []byte("ArtworkDB.ithmb")}
	info := &ImageInfo{
		CorrelationID: 7,
		ImageFormat:   [4]byte{'J', 'P', 'E', 'G'},
		Width:         100,
		Height:        100,
		DataObjects: []*DataObject{
			{HdrExtra: make([]byte, 8), Payload: &NestedPayload{Type: ArtDataMhafHolder, Nested: holder}},
		},
	}
	item := &ImageItem{
		ID:                1,
		TrackPersistentID: 0xABCD,
		ImageSize:         4096,
		Tail:              make([]byte, headerLenImageItem-76),
		DataObjects: []*DataObject{
			{HdrExtra: make([]byte, 8), Payload: &NestedPayload{Type: ArtDataImageMeta, Nested: info}},
			{HdrExtra: make([]byte, 8), Payload: &UTF16StringPayload{Type: ArtDataIthmbFilename, Text: ":iPod_Control:Artwork:F1026_1.ithmb"}},
		},
	}
	list := &List{MagicTag: MagicImageList, HdrLen: headerLenList, Entries: []Record{item}}
	lc := &ListContainer{HdrLen: headerLenListContainer, ListType: ArtListTypeImages, List: list}
	m := NewArtworkMaster()
	m.DataSets = []*ListContainer{lc}
	return m
}

func TestArtworkDBRoundTrip(t *testing.T) {
	m := newSampleArtworkMaster()
	FixLengths(m)

	var buf bytes.Buffer
	if err := Emit(&buf, m); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	got, err := ParseArtworkDB(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseArtworkDB: %v", err)
	}
	FixLengths(got)

	var buf2 bytes.Buffer
	if err := Emit(&buf2, got); err != nil {
		t.Fatalf("re-Emit: %v", err)
	}
	if d := Diff(buf.Bytes(), buf2.Bytes()); d != nil {
		t.Fatalf("ArtworkDB round trip not byte-identical: %v", d)
	}
}

func TestArtworkDBNestedPayloadIsAChild(t *testing.T) {
	m := newSampleArtworkMaster()
	FixLengths(m)

	item := m.DataSets[0].List.Entries[0].(*ImageItem)
	metaObj := item.DataObjects[0]
	if len(metaObj.Children()) != 1 {
		t.Fatalf("ArtDataImageMeta data object should expose its nested mhni as a child, got %d children", len(metaObj.Children()))
	}
	info, ok := metaObj.Children()[0].(*ImageInfo)
	if !ok {
		t.Fatalf("nested child is %T, want *ImageInfo", metaObj.Children()[0])
	}

	holderObj := info.DataObjects[0]
	if len(holderObj.Children()) != 1 {
		t.Fatalf("ArtDataMhafHolder data object should expose its nested mhaf as a child")
	}
	if _, ok := holderObj.Children()[0].(*ArtworkHolder); !ok {
		t.Fatalf("nested child is %T, want *ArtworkHolder", holderObj.Children()[0])
	}

	// The nested record's size must be counted in the owning
	// DataObject's length, never folded into inlineBytes (§9).
	if metaObj.inlineBytes() != 0 {
		t.Fatalf("NestedPayload DataObject reported non-zero inlineBytes: %d", metaObj.inlineBytes())
	}
	if metaObj.Len() <= metaObj.HeaderLen() {
		t.Fatalf("metaObj.Len() = %d should exceed its header (%d) once the nested mhni is counted", metaObj.Len(), metaObj.HeaderLen())
	}
}

// TestImageItemLengthConsistency guards against the real-header case
// (hdrLen == headerLenImageItem) silently dropping the gap between the
// modeled fields and the full on-disk header.
func TestImageItemLengthConsistency(t *testing.T) {
	item := &ImageItem{
		ID:        2,
		ImageSize: 1024,
		Tail:      make([]byte, headerLenImageItem-76),
		DataObjects: []*DataObject{
			{HdrExtra: make([]byte, 8), Payload: &UTF16StringPayload{Type: ArtDataIthmbFilename, Text: "F1.ithmb"}},
		},
	}
	FixLengths(item)

	var buf bytes.Buffer
	if err := Emit(&buf, item); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if got, want := uint32(buf.Len()), item.Len(); got != want {
		t.Fatalf("emitted %d bytes, Len() reports %d", got, want)
	}

	c := newCursor(buf.Bytes())
	got, err := parseRecord(c)
	if err != nil {
		t.Fatalf("parseRecord: %v", err)
	}
	parsed, ok := got.(*ImageItem)
	if !ok {
		t.Fatalf("got %T, want *ImageItem", got)
	}
	if parsed.HeaderLen() != headerLenImageItem {
		t.Fatalf("HeaderLen() = %d, want %d", parsed.HeaderLen(), headerLenImageItem)
	}

	var buf2 bytes.Buffer
	FixLengths(parsed)
	if err := Emit(&buf2, parsed); err != nil {
		t.Fatalf("re-Emit: %v", err)
	}
	if d := Diff(buf.Bytes(), buf2.Bytes()); d != nil {
		t.Fatalf("round trip not byte-identical: %v", d)
	}
}

func TestImageSizeDupMirrorsImageSize(t *testing.T) {
	m := newSampleArtworkMaster()
	FixLengths(m)

	var buf bytes.Buffer
	if err := Emit(&buf, m); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	got, err := ParseArtworkDB(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseArtworkDB: %v", err)
	}
	item := got.DataSets[0].List.Entries[0].(*ImageItem)
	if item.ImageSize != 4096 {
		t.Fatalf("ImageSize = %d, want 4096", item.ImageSize)
	}
	if item.imageSizeDup() != item.ImageSize {
		t.Fatalf("imageSizeDup() = %d, want %d", item.imageSizeDup(), item.ImageSize)
	}
}
