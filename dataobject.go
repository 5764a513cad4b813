// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"encoding/binary"
	"io"
)

// DataObject is the universal mhod leaf shared by both databases: a
// 24-byte header (magic, header_len, len, a discriminant, and 8
// reserved bytes) followed by a variant payload. The discriminant is
// never stored as an independent field — it is always read off
// whichever concrete DataObjectPayload is attached, so there is no way
// for a caller to set a payload and a mismatched discriminant (§9).
type DataObject struct {
	HdrExtra []byte // bytes between the discriminant and the payload, normally 8 zero bytes; preserved verbatim for forward compatibility
	Payload  DataObjectPayload
	recLen   uint32
}

// DataObjectPayload is implemented by every mhod payload variant.
type DataObjectPayload interface {
	discType() dataType
	payloadBytes() ([]byte, error)
}

// UTF16StringPayload covers iTunesDB mhod discriminants 1-9, 12-14, 18,
// 22, 39 and the ArtworkDB ithmb-filename discriminant (3): a 16-byte
// prefix (position, byte-length, two reserved words) followed by
// UTF-16LE text. Reserved and Tail preserve the two reserved words at
// payload[8:16] and any bytes written past the string itself, so a
// record with non-zero values there still round-trips byte-exactly.
type UTF16StringPayload struct {
	Type     dataType
	Position uint32
	Reserved [8]byte
	Text     string
	Tail     []byte
}

func (p *UTF16StringPayload) discType() dataType { return p.Type }

func (p *UTF16StringPayload) payloadBytes() ([]byte, error) {
	enc, err := encodeUTF16LE(p.Text)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 16+len(enc)+len(p.Tail))
	binary.LittleEndian.PutUint32(buf[0:4], p.Position)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(enc)))
	copy(buf[8:16], p.Reserved[:])
	copy(buf[16:], enc)
	copy(buf[16+len(enc):], p.Tail)
	return buf, nil
}

// URLPayload covers the two podcast discriminants (15, 16) whose text
// is UTF-8, not UTF-16, and whose length is implicit (everything left
// in the record after an 8-byte reserved prefix).
type URLPayload struct {
	Type dataType
	URL  string
}

func (p *URLPayload) discType() dataType { return p.Type }

func (p *URLPayload) payloadBytes() ([]byte, error) {
	buf := make([]byte, 8+len(p.URL))
	copy(buf[8:], p.URL)
	return buf, nil
}

// BlobPayload covers every discriminant this module does not interpret
// semantically (smart-playlist rule blobs, chapter data, album-list
// cross references, and anything unrecognized). Bytes are kept and
// re-emitted verbatim.
type BlobPayload struct {
	Type dataType
	Raw  []byte
}

func (p *BlobPayload) discType() dataType        { return p.Type }
func (p *BlobPayload) payloadBytes() ([]byte, error) { return p.Raw, nil }

// NestedPayload covers the two ArtworkDB mhod discriminants whose
// "payload" is a full nested record rather than a byte blob:
// discriminant 2 wraps an mhni ImageInfo, discriminant 6 wraps an mhaf
// ArtworkHolder. Its size is not counted in inlineBytes — the nested
// record is a genuine child, summed by FixLengths like any other.
type NestedPayload struct {
	Type   dataType
	Nested Record
}

func (p *NestedPayload) discType() dataType          { return p.Type }
func (p *NestedPayload) payloadBytes() ([]byte, error) { return nil, nil }

func (d *DataObject) Magic() string     { return MagicDataObject }
func (d *DataObject) HeaderLen() uint32 { return 16 + uint32(len(d.HdrExtra)) }
func (d *DataObject) Len() uint32       { return d.recLen }
func (d *DataObject) setLen(n uint32)   { d.recLen = n }

func (d *DataObject) Children() []Record {
	if np, ok := d.Payload.(*NestedPayload); ok && np.Nested != nil {
		return []Record{np.Nested}
	}
	return nil
}

func (d *DataObject) SetChildren(children []Record) error {
	np, ok := d.Payload.(*NestedPayload)
	if !ok {
		if len(children) != 0 {
			return ErrChildTypeMismatch
		}
		return nil
	}
	if len(children) != 1 {
		return ErrChildTypeMismatch
	}
	np.Nested = children[0]
	return nil
}

func (d *DataObject) inlineBytes() uint32 {
	if _, ok := d.Payload.(*NestedPayload); ok {
		return 0
	}
	b, err := d.Payload.payloadBytes()
	if err != nil {
		return 0
	}
	return uint32(len(b))
}

func (d *DataObject) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicDataObject)); err != nil {
		return err
	}
	if err := writeU32(w, d.HeaderLen()); err != nil {
		return err
	}
	if err := writeU32(w, d.Len()); err != nil {
		return err
	}
	if err := writeU32(w, uint32(d.Payload.discType())); err != nil {
		return err
	}
	if err := writeBytes(w, d.HdrExtra); err != nil {
		return err
	}
	if np, ok := d.Payload.(*NestedPayload); ok {
		return np.Nested.emit(w)
	}
	b, err := d.Payload.payloadBytes()
	if err != nil {
		return err
	}
	return writeBytes(w, b)
}

// parseDataObjectHeader reads the generic mhod framing common to both
// databases and returns the header extra bytes plus the raw payload
// slice; callers interpret the payload according to which tree they're
// in (iTunesDB and ArtworkDB reuse the same numeric discriminants for
// different meanings).
func parseDataObjectHeader(c *cursor) (extra []byte, dt dataType, payload []byte, err error) {
	start := c.offset()
	if err = c.skip(4); err != nil {
		return nil, 0, nil, parseErrf(start, MagicDataObject, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, 0, nil, parseErrf(c.offset(), MagicDataObject, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, 0, nil, parseErrf(c.offset(), MagicDataObject, err)
	}
	dtU32, err := c.u32()
	if err != nil {
		return nil, 0, nil, parseErrf(c.offset(), MagicDataObject, err)
	}
	if hdrLen < 16 || recLen < hdrLen {
		return nil, 0, nil, parseErrf(start, MagicDataObject, ErrLengthMismatch)
	}
	extra, err = c.bytes(int(hdrLen - 16))
	if err != nil {
		return nil, 0, nil, parseErrf(c.offset(), MagicDataObject, ErrShortRead)
	}
	payload, err = c.bytes(int(recLen - hdrLen))
	if err != nil {
		return nil, 0, nil, parseErrf(c.offset(), MagicDataObject, ErrShortRead)
	}
	return extra, dataType(dtU32), payload, nil
}

func decodeUTF16Payload(dt dataType, payload []byte) (*UTF16StringPayload, error) {
	if len(payload) < 16 {
		return nil, ErrShortRead
	}
	position := binary.LittleEndian.Uint32(payload[0:4])
	strLen := binary.LittleEndian.Uint32(payload[4:8])
	if int(16+strLen) > len(payload) {
		return nil, ErrCountOverflow
	}
	text, err := decodeUTF16LE(payload[16 : 16+strLen])
	if err != nil {
		return nil, err
	}
	p := &UTF16StringPayload{Type: dt, Position: position, Text: text}
	copy(p.Reserved[:], payload[8:16])
	if tail := payload[16+strLen:]; len(tail) > 0 {
		p.Tail = append([]byte(nil), tail...)
	}
	return p, nil
}

// parseDataObjectITunes parses one mhod as it appears inside the
// iTunesDB record tree (Track, AlbumItem, Playlist, PlaylistItem).
func parseDataObjectITunes(c *cursor) (*DataObject, error) {
	recStart := c.offset()
	extra, dt, payload, err := parseDataObjectHeader(c)
	if err != nil {
		return nil, err
	}
	var p DataObjectPayload
	switch {
	case utf16DataTypes[dt]:
		p, err = decodeUTF16Payload(dt, payload)
		if err != nil {
			return nil, parseErrf(recStart, MagicDataObject, err)
		}
	case urlDataTypes[dt]:
		if len(payload) < 8 {
			return nil, parseErrf(recStart, MagicDataObject, ErrShortRead)
		}
		p = &URLPayload{Type: dt, URL: string(payload[8:])}
	default:
		p = &BlobPayload{Type: dt, Raw: payload}
	}
	d := &DataObject{HdrExtra: extra, Payload: p}
	d.setLen(uint32(16 + len(extra) + len(payload)))
	return d, nil
}

// parseDataObjectArtwork parses one mhod as it appears inside the
// ArtworkDB record tree (ImageItem, ImageInfo).
func parseDataObjectArtwork(c *cursor) (*DataObject, error) {
	recStart := c.offset()
	extra, dt, payload, err := parseDataObjectHeader(c)
	if err != nil {
		return nil, err
	}
	var p DataObjectPayload
	switch dt {
	case ArtDataIthmbFilename:
		p, err = decodeUTF16Payload(dt, payload)
		if err != nil {
			return nil, parseErrf(recStart, MagicDataObject, err)
		}
	case ArtDataImageMeta:
		nested, err := parseImageInfo(newCursor(payload))
		if err != nil {
			return nil, err
		}
		p = &NestedPayload{Type: dt, Nested: nested}
	case ArtDataMhafHolder:
		nested, err := parseArtworkHolder(newCursor(payload))
		if err != nil {
			return nil, err
		}
		p = &NestedPayload{Type: dt, Nested: nested}
	default:
		p = &BlobPayload{Type: dt, Raw: payload}
	}
	d := &DataObject{HdrExtra: extra, Payload: p}
	if _, ok := p.(*NestedPayload); ok {
		d.setLen(16 + uint32(len(extra)) + p.(*NestedPayload).Nested.Len())
	} else {
		d.setLen(uint32(16 + len(extra) + len(payload)))
	}
	return d, nil
}
