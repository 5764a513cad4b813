// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"io"
)

// Record is implemented by every node in an iTunesDB or ArtworkDB
// record tree: the master record, list containers, lists, items, and
// data objects. Children are always returned and accepted in stored
// order.
type Record interface {
	// Magic is the record's 4-byte ASCII tag, e.g. "mhit".
	Magic() string

	// HeaderLen is the number of bytes from the start of the magic tag
	// to the first byte of this record's children (or, for a leaf
	// mhod, to the first byte of its payload).
	HeaderLen() uint32

	// Len is the total size in bytes of this record, including its
	// header and every descendant. It is only meaningful after
	// FixLengths has run, or immediately after Parse.
	Len() uint32

	// Children returns this record's immediate children in stored
	// order. For records with more than one stored list (Playlist has
	// data objects then entries), the lists are concatenated in that
	// documented order.
	Children() []Record

	// SetChildren replaces this record's children. Implementations
	// that store more than one typed list partition the slice by
	// concrete type and return ErrChildTypeMismatch for anything that
	// doesn't belong to one of their lists.
	SetChildren([]Record) error

	setLen(uint32)
	inlineBytes() uint32
	emit(w io.Writer) error
}

// peekMagic returns the 4-byte tag at c's current position without
// consuming it.
func peekMagic(c *cursor) (string, error) {
	if c.remaining() < 4 {
		return "", ErrShortRead
	}
	return string(c.data[c.pos : c.pos+4]), nil
}

// parseRecord dispatches on the magic tag at c's current position and
// parses exactly one record (header, inline fields, and children).
func parseRecord(c *cursor) (Record, error) {
	magic, err := peekMagic(c)
	if err != nil {
		return nil, err
	}
	switch magic {
	case MagicMaster:
		return parseMaster(c)
	case MagicListContainer:
		return parseListContainer(c)
	case MagicTrackList, MagicPlaylistList, MagicAlbumList, MagicImageList, MagicFileList:
		return parseList(c, magic)
	case MagicTrack:
		return parseTrackItem(c)
	case MagicAlbumItem:
		return parseAlbumItem(c)
	case MagicPlaylist:
		return parsePlaylist(c)
	case MagicPlaylistItem:
		return parsePlaylistItem(c)
	case MagicDataObject:
		return parseDataObjectITunes(c)
	case MagicArtworkMaster:
		return parseArtworkMaster(c)
	case MagicImageItem:
		return parseImageItem(c)
	case MagicImageInfo:
		return parseImageInfo(c)
	case MagicImageFile:
		return parseImageFile(c)
	case MagicArtworkHolder:
		return parseArtworkHolder(c)
	default:
		return parseRawRecord(c, magic)
	}
}

// RawRecord preserves a record whose magic is not one of the known
// tags. It is never produced for a recognized tag — it only appears
// when a file contains a tag this module doesn't model, so that tag
// survives an unmodified round trip instead of aborting the parse
// (§8 "unknown tag preservation").
type RawRecord struct {
	Tag     string
	HdrLen  uint32
	RecLen  uint32
	Payload []byte // everything from byte 12 (after magic+header_len+len) to RecLen
}

func parseRawRecord(c *cursor, magic string) (*RawRecord, error) {
	start := c.offset()
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, magic, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), magic, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), magic, err)
	}
	if recLen < 12 {
		return nil, parseErrf(start, magic, ErrLengthMismatch)
	}
	payload, err := c.bytes(int(recLen - 12))
	if err != nil {
		return nil, parseErrf(c.offset(), magic, ErrShortRead)
	}
	return &RawRecord{Tag: magic, HdrLen: hdrLen, RecLen: recLen, Payload: payload}, nil
}

func (r *RawRecord) Magic() string         { return r.Tag }
func (r *RawRecord) HeaderLen() uint32     { return r.HdrLen }
func (r *RawRecord) Len() uint32           { return r.RecLen }
func (r *RawRecord) Children() []Record    { return nil }
func (r *RawRecord) setLen(n uint32)       { r.RecLen = n }
// inlineBytes is chosen so that HeaderLen()+inlineBytes() (modulo 2^32)
// is the 12+len(Payload) bytes emit writes, whatever HdrLen holds.
func (r *RawRecord) inlineBytes() uint32 { return 12 + uint32(len(r.Payload)) - r.HdrLen }

func (r *RawRecord) SetChildren(children []Record) error {
	if len(children) != 0 {
		return ErrChildTypeMismatch
	}
	return nil
}

func (r *RawRecord) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(r.Tag)); err != nil {
		return err
	}
	if err := writeU32(w, r.HdrLen); err != nil {
		return err
	}
	if err := writeU32(w, r.RecLen); err != nil {
		return err
	}
	return writeBytes(w, r.Payload)
}

// Emit serializes r (and its descendants) to w exactly as currently
// stored. Callers that have mutated the tree must call FixLengths
// first so length fields are consistent (§4.2); Emit itself never
// recomputes them.
func Emit(w io.Writer, r Record) error {
	return r.emit(w)
}

// ParseITunesDB parses a complete iTunesDB file image rooted at an mhbd
// record.
func ParseITunesDB(data []byte) (*Master, error) {
	c := newCursor(data)
	rec, err := parseRecord(c)
	if err != nil {
		return nil, err
	}
	m, ok := rec.(*Master)
	if !ok {
		return nil, parseErrf(0, rec.Magic(), ErrUnknownMagic)
	}
	return m, nil
}

// ParseArtworkDB parses a complete ArtworkDB file image rooted at an
// mhfd record.
func ParseArtworkDB(data []byte) (*ArtworkMaster, error) {
	c := newCursor(data)
	rec, err := parseRecord(c)
	if err != nil {
		return nil, err
	}
	m, ok := rec.(*ArtworkMaster)
	if !ok {
		return nil, parseErrf(0, rec.Magic(), ErrUnknownMagic)
	}
	return m, nil
}
