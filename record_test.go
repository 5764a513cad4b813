// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"bytes"
	"testing"
)

// newSampleTrack builds a minimal but structurally complete track item
// carrying a single Title mhod.
func newSampleTrack(title string) *TrackItem {
	return &TrackItem{
		UniqueID: 1,
		FileType: [4]byte{'M', 'P', '3', ' '},
		Middle:   make([]byte, 84),
		Tail:     make([]byte, headerLenTrack-120),
		DataObjects: []*DataObject{
			{
				HdrExtra: make([]byte, 8),
				Payload:  &UTF16StringPayload{Type: DataTitle, Text: title},
			},
		},
	}
}

func newSampleMaster(title string) *Master {
	m := NewMaster()
	list := &List{MagicTag: MagicTrackList, HdrLen: headerLenList, Entries: []Record{newSampleTrack(title)}}
	lc := &ListContainer{HdrLen: headerLenListContainer, ListType: ListTypeTracks, List: list}
	m.DataSets = []*ListContainer{lc}
	return m
}

func TestRoundTripEquality(t *testing.T) {
	m := newSampleMaster("a sample title")
	FixLengths(m)

	var buf bytes.Buffer
	if err := Emit(&buf, m); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	got, err := ParseITunesDB(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseITunesDB: %v", err)
	}

	var buf2 bytes.Buffer
	FixLengths(got)
	if err := Emit(&buf2, got); err != nil {
		t.Fatalf("re-Emit: %v", err)
	}

	if d := Diff(buf.Bytes(), buf2.Bytes()); d != nil {
		t.Fatalf("round trip not byte-identical: %v", d)
	}
}

func TestLengthConsistency(t *testing.T) {
	m := newSampleMaster("length check")
	FixLengths(m)

	var buf bytes.Buffer
	if err := Emit(&buf, m); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if got, want := uint32(buf.Len()), m.Len(); got != want {
		t.Fatalf("emitted %d bytes, Len() reports %d", got, want)
	}
}

func TestCountsMatchLists(t *testing.T) {
	m := newSampleMaster("counts")
	FixLengths(m)

	var buf bytes.Buffer
	if err := Emit(&buf, m); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	got, err := ParseITunesDB(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseITunesDB: %v", err)
	}
	if len(got.DataSets) != 1 {
		t.Fatalf("want 1 data set, got %d", len(got.DataSets))
	}
	list := got.DataSets[0].List
	if len(list.Entries) != 1 {
		t.Fatalf("want 1 track, got %d", len(list.Entries))
	}
	track, ok := list.Entries[0].(*TrackItem)
	if !ok {
		t.Fatalf("entry is %T, want *TrackItem", list.Entries[0])
	}
	if len(track.DataObjects) != 1 {
		t.Fatalf("want 1 data object, got %d", len(track.DataObjects))
	}
}

func TestFixupIdempotence(t *testing.T) {
	m := newSampleMaster("idempotent")
	first := FixLengths(m)
	second := FixLengths(m)
	if first != second {
		t.Fatalf("FixLengths not idempotent: %d then %d", first, second)
	}
}

func TestEditPropagatesLengths(t *testing.T) {
	m := newSampleMaster("short")
	before := FixLengths(m)

	track := m.DataSets[0].List.Entries[0].(*TrackItem)
	track.DataObjects[0].Payload.(*UTF16StringPayload).Text = "a considerably longer replacement title"

	after := FixLengths(m)
	if after <= before {
		t.Fatalf("expected length to grow after widening a string payload: before=%d after=%d", before, after)
	}
	if got, want := m.Len(), after; got != want {
		t.Fatalf("Master.Len() = %d, want %d", got, want)
	}
}

func TestUnknownTagPreservation(t *testing.T) {
	m := newSampleMaster("unknown tag")
	FixLengths(m)

	var buf bytes.Buffer
	if err := Emit(&buf, m); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	// Splice an unrecognized 16-byte record in after the mhbd's
	// children, simulating a future format extension this module has
	// never heard of.
	extra := []byte{'z', 'z', 'z', 'z', 16, 0, 0, 0, 16, 0, 0, 0, 1, 2, 3, 4}
	full := append(append([]byte{}, buf.Bytes()...), extra...)

	c := newCursor(full)
	rec, err := parseRecord(c)
	if err != nil {
		t.Fatalf("parseRecord: %v", err)
	}
	if _, ok := rec.(*Master); !ok {
		t.Fatalf("got %T, want *Master", rec)
	}

	raw, err := parseRawRecord(c, "zzzz")
	if err != nil {
		t.Fatalf("parseRawRecord: %v", err)
	}
	if raw.Tag != "zzzz" || !bytes.Equal(raw.Payload, []byte{1, 2, 3, 4}) {
		t.Fatalf("unexpected RawRecord: %+v", raw)
	}

	var out bytes.Buffer
	if err := raw.emit(&out); err != nil {
		t.Fatalf("RawRecord.emit: %v", err)
	}
	if !bytes.Equal(out.Bytes(), extra) {
		t.Fatalf("RawRecord did not round-trip: got % x want % x", out.Bytes(), extra)
	}
}

// newSampleAlbumItem builds an mhia carrying a real on-disk-sized
// header gap (Tail), mirroring newSampleTrack's use of headerLenTrack.
func newSampleAlbumItem() *AlbumItem {
	return &AlbumItem{
		Unk10:      7,
		AlbumID:    42,
		ExtraArtID: 99,
		Tail:       make([]byte, headerLenAlbumItem-32),
		DataObjects: []*DataObject{
			{HdrExtra: make([]byte, 8), Payload: &UTF16StringPayload{Type: DataAlbum, Text: "an album"}},
		},
	}
}

func newSamplePlaylistItem() *PlaylistItem {
	return &PlaylistItem{
		TrackID: 1,
		Tail:    make([]byte, headerLenPlaylistItem-48),
	}
}

func newSamplePlaylist() *Playlist {
	return &Playlist{
		IsMaster:  1,
		SortOrder: 1,
		Tail:      make([]byte, headerLenPlaylist-60),
		DataObjects: []*DataObject{
			{HdrExtra: make([]byte, 8), Payload: &UTF16StringPayload{Type: DataTitle, Text: "Library"}},
		},
		Entries: []*PlaylistItem{newSamplePlaylistItem()},
	}
}

// TestPaddedRecordsRoundTrip covers the three record kinds whose header
// is wider than the fields this module models by name (mhia, mhyp,
// mhip): each must round-trip a full-size header and report Len()
// consistent with the bytes Emit actually writes.
func TestPaddedRecordsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{"AlbumItem", newSampleAlbumItem()},
		{"Playlist", newSamplePlaylist()},
		{"PlaylistItem", newSamplePlaylistItem()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			FixLengths(tt.rec)

			var buf bytes.Buffer
			if err := Emit(&buf, tt.rec); err != nil {
				t.Fatalf("Emit: %v", err)
			}
			if got, want := uint32(buf.Len()), tt.rec.Len(); got != want {
				t.Fatalf("emitted %d bytes, Len() reports %d", got, want)
			}

			c := newCursor(buf.Bytes())
			got, err := parseRecord(c)
			if err != nil {
				t.Fatalf("parseRecord: %v", err)
			}

			var buf2 bytes.Buffer
			FixLengths(got)
			if err := Emit(&buf2, got); err != nil {
				t.Fatalf("re-Emit: %v", err)
			}
			if d := Diff(buf.Bytes(), buf2.Bytes()); d != nil {
				t.Fatalf("round trip not byte-identical: %v", d)
			}
		})
	}
}

func TestTruncationDetection(t *testing.T) {
	m := newSampleMaster("truncated")
	FixLengths(m)

	var buf bytes.Buffer
	if err := Emit(&buf, m); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	truncated := buf.Bytes()[:buf.Len()-10]
	if _, err := ParseITunesDB(truncated); err == nil {
		t.Fatalf("expected an error parsing a truncated file")
	}
}
