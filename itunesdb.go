// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"io"
)

// Master is the mhbd root record of an iTunesDB file. hash58
// canonicalizes the 32 bytes at 0x58..0x78 (Hash, TimezoneOffset, Unk70
// and the first 6 bytes of SecondaryHash; the rest of SecondaryHash is
// hashed as stored); DatabaseID is the 8-byte device-id window zeroed
// alongside them.
type Master struct {
	HdrLen uint32 // preserved from parse; defaults to 244 for new records

	Unk0C         uint32
	Version       uint32
	DatabaseID    uint64 // device-id window, 0x18..0x20
	Unk20         uint16
	HashingScheme uint16
	Unk24         uint64
	Unk2C         uint32
	Unk30         uint16
	Padding32     [20]byte
	Lang          uint16
	PersistentID  uint64
	Unk50         uint32
	Unk54         uint32
	Hash          [20]byte // hash58 window, 0x58..0x6C
	TimezoneOffset int32
	Unk70         uint16
	SecondaryHash [46]byte // unregenerated secondary window, 0x72..0xA0
	UnkA0         uint32
	AudioLang     uint16
	SubtitleLang  uint16
	Pad76         [76]byte

	Extra []byte // forward-compat bytes beyond the 244-byte constant

	DataSets []*ListContainer

	recLen uint32
}

// NewMaster returns an empty Master with the standard 244-byte header
// and default (zeroed) payload, ready to have DataSets appended.
func NewMaster() *Master {
	return &Master{HdrLen: headerLenMaster}
}

func (m *Master) Magic() string     { return MagicMaster }
func (m *Master) HeaderLen() uint32 { return m.HdrLen }
func (m *Master) Len() uint32       { return m.recLen }
func (m *Master) setLen(n uint32)   { m.recLen = n }
func (m *Master) inlineBytes() uint32 { return 0 }

func (m *Master) Children() []Record {
	out := make([]Record, len(m.DataSets))
	for i, d := range m.DataSets {
		out[i] = d
	}
	return out
}

func (m *Master) SetChildren(children []Record) error {
	sets := make([]*ListContainer, len(children))
	for i, c := range children {
		lc, ok := c.(*ListContainer)
		if !ok {
			return ErrChildTypeMismatch
		}
		sets[i] = lc
	}
	m.DataSets = sets
	return nil
}

func parseMaster(c *cursor) (*Master, error) {
	start := c.offset()
	m := &Master{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicMaster, err)
	}
	var err error
	if m.HdrLen, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.HdrLen < headerLenMaster {
		return nil, parseErrf(start, MagicMaster, ErrLengthMismatch)
	}
	if m.Unk0C, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.Version, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	dataSetCount, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.DatabaseID, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.Unk20, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.HashingScheme, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.Unk24, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.Unk2C, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.Unk30, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	pad32, err := c.bytes(20)
	if err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	copy(m.Padding32[:], pad32)
	if m.Lang, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.PersistentID, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.Unk50, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.Unk54, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	hash, err := c.bytes(20)
	if err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	copy(m.Hash[:], hash)
	tz, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	m.TimezoneOffset = int32(tz)
	if m.Unk70, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	sh, err := c.bytes(46)
	if err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	copy(m.SecondaryHash[:], sh)
	if m.UnkA0, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.AudioLang, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	if m.SubtitleLang, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	pad76, err := c.bytes(76)
	if err != nil {
		return nil, parseErrf(c.offset(), MagicMaster, err)
	}
	copy(m.Pad76[:], pad76)

	if extra := int(m.HdrLen) - headerLenMaster; extra > 0 {
		if m.Extra, err = c.bytes(extra); err != nil {
			return nil, parseErrf(c.offset(), MagicMaster, ErrShortRead)
		}
	}

	m.DataSets = make([]*ListContainer, 0, dataSetCount)
	for i := uint32(0); i < dataSetCount; i++ {
		ds, err := parseListContainer(c)
		if err != nil {
			return nil, err
		}
		m.DataSets = append(m.DataSets, ds)
	}
	m.setLen(recLen)
	return m, nil
}

func (m *Master) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicMaster)); err != nil {
		return err
	}
	if err := writeU32(w, m.HdrLen); err != nil {
		return err
	}
	if err := writeU32(w, m.Len()); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk0C); err != nil {
		return err
	}
	if err := writeU32(w, m.Version); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(m.DataSets))); err != nil {
		return err
	}
	if err := writeU64(w, m.DatabaseID); err != nil {
		return err
	}
	if err := writeU16(w, m.Unk20); err != nil {
		return err
	}
	if err := writeU16(w, m.HashingScheme); err != nil {
		return err
	}
	if err := writeU64(w, m.Unk24); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk2C); err != nil {
		return err
	}
	if err := writeU16(w, m.Unk30); err != nil {
		return err
	}
	if err := writeBytes(w, m.Padding32[:]); err != nil {
		return err
	}
	if err := writeU16(w, m.Lang); err != nil {
		return err
	}
	if err := writeU64(w, m.PersistentID); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk50); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk54); err != nil {
		return err
	}
	if err := writeBytes(w, m.Hash[:]); err != nil {
		return err
	}
	if err := writeU32(w, uint32(m.TimezoneOffset)); err != nil {
		return err
	}
	if err := writeU16(w, m.Unk70); err != nil {
		return err
	}
	if err := writeBytes(w, m.SecondaryHash[:]); err != nil {
		return err
	}
	if err := writeU32(w, m.UnkA0); err != nil {
		return err
	}
	if err := writeU16(w, m.AudioLang); err != nil {
		return err
	}
	if err := writeU16(w, m.SubtitleLang); err != nil {
		return err
	}
	if err := writeBytes(w, m.Pad76[:]); err != nil {
		return err
	}
	if err := writeBytes(w, m.Extra); err != nil {
		return err
	}
	for _, ds := range m.DataSets {
		if err := ds.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// ListContainer is the mhsd record: a typed wrapper around exactly one
// List. ListType is always the stored field, never inferred from the
// nested list's magic — list_type 3 (podcasts) wraps the same mhlp
// magic as list_type 2 (playlists) and list_type 5 (smart playlists).
type ListContainer struct {
	HdrLen   uint32
	ListType listType
	List     *List

	recLen uint32
}

func (l *ListContainer) Magic() string       { return MagicListContainer }
func (l *ListContainer) HeaderLen() uint32   { return l.HdrLen }
func (l *ListContainer) Len() uint32         { return l.recLen }
func (l *ListContainer) setLen(n uint32)     { l.recLen = n }
func (l *ListContainer) inlineBytes() uint32 { return 0 }
func (l *ListContainer) Children() []Record  { return []Record{l.List} }

func (l *ListContainer) SetChildren(children []Record) error {
	if len(children) != 1 {
		return ErrChildTypeMismatch
	}
	list, ok := children[0].(*List)
	if !ok {
		return ErrChildTypeMismatch
	}
	l.List = list
	return nil
}

func parseListContainer(c *cursor) (*ListContainer, error) {
	start := c.offset()
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicListContainer, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicListContainer, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicListContainer, err)
	}
	ltU32, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicListContainer, err)
	}
	if hdrLen < 16 {
		return nil, parseErrf(start, MagicListContainer, ErrLengthMismatch)
	}
	if err := c.skip(int(hdrLen - 16)); err != nil {
		return nil, parseErrf(c.offset(), MagicListContainer, ErrShortRead)
	}
	listMagic, err := peekMagic(c)
	if err != nil {
		return nil, parseErrf(c.offset(), MagicListContainer, err)
	}
	list, err := parseList(c, listMagic)
	if err != nil {
		return nil, err
	}
	lc := &ListContainer{HdrLen: hdrLen, ListType: listType(ltU32), List: list}
	lc.setLen(recLen)
	return lc, nil
}

func (l *ListContainer) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicListContainer)); err != nil {
		return err
	}
	if err := writeU32(w, l.HdrLen); err != nil {
		return err
	}
	if err := writeU32(w, l.Len()); err != nil {
		return err
	}
	if err := writeU32(w, uint32(l.ListType)); err != nil {
		return err
	}
	if err := writeZero(w, int(l.HdrLen)-16); err != nil {
		return err
	}
	return l.List.emit(w)
}

// List is the untyped mhlt/mhlp/mhla record: a header_len and child
// count with no len field of its own (unlike every other record in
// this tree, the on-disk list containers never stored one). Entries
// are stored in the same Record slice regardless of whether they are
// Track, Playlist (each holding its own PlaylistItem entries), Album,
// ImageItem or ImageFile items; the enclosing ListContainer.ListType
// says which.
type List struct {
	MagicTag string
	HdrLen   uint32
	Entries  []Record

	recLen uint32 // logical size for bookkeeping; not written to disk
}

func (l *List) Magic() string       { return l.MagicTag }
func (l *List) HeaderLen() uint32   { return l.HdrLen }
func (l *List) Len() uint32         { return l.recLen }
func (l *List) setLen(n uint32)     { l.recLen = n }
func (l *List) inlineBytes() uint32 { return 0 }
func (l *List) Children() []Record  { return l.Entries }

func (l *List) SetChildren(children []Record) error {
	l.Entries = children
	return nil
}

func parseList(c *cursor, magic string) (*List, error) {
	start := c.offset()
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, magic, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), magic, err)
	}
	count, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), magic, err)
	}
	if hdrLen < 12 {
		return nil, parseErrf(start, magic, ErrLengthMismatch)
	}
	if err := c.skip(int(hdrLen - 12)); err != nil {
		return nil, parseErrf(c.offset(), magic, ErrShortRead)
	}
	l := &List{MagicTag: magic, HdrLen: hdrLen}
	l.Entries = make([]Record, 0, count)
	for i := uint32(0); i < count; i++ {
		entryMagic, err := peekMagic(c)
		if err != nil {
			return nil, parseErrf(c.offset(), magic, err)
		}
		var entry Record
		switch entryMagic {
		case MagicTrack:
			entry, err = parseTrackItem(c)
		case MagicPlaylist:
			entry, err = parsePlaylist(c)
		case MagicAlbumItem:
			entry, err = parseAlbumItem(c)
		case MagicImageItem:
			entry, err = parseImageItem(c)
		case MagicImageFile:
			entry, err = parseImageFile(c)
		default:
			entry, err = parseRawRecord(c, entryMagic)
		}
		if err != nil {
			return nil, err
		}
		l.Entries = append(l.Entries, entry)
	}
	return l, nil
}

func (l *List) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(l.MagicTag)); err != nil {
		return err
	}
	if err := writeU32(w, l.HdrLen); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(l.Entries))); err != nil {
		return err
	}
	if err := writeZero(w, int(l.HdrLen)-12); err != nil {
		return err
	}
	for _, e := range l.Entries {
		if err := e.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// TrackItem is the mhit record. Its header carries roughly eighty
// semantic fields (duration, bitrate, play counts, gapless markers,
// and more) this module has no reason to interpret — per §1's explicit
// non-goal, only UniqueID, Visible, FileType (it is discussed directly
// in §9's open questions) and PersistentID are singled out, and
// everything else is preserved verbatim as Middle/Tail.
type TrackItem struct {
	UniqueID uint32
	Visible  uint32
	FileType [4]byte // raw on-disk bytes, no endian conversion (§9)
	Middle   []byte  // vbr_flag .. bookmark_ms, 84 bytes
	PersistentID uint64
	Tail     []byte // everything after persistent_id; its length alone tracks header_len, so a file with a longer or shorter mhit header than the 624-byte constant round-trips unchanged

	DataObjects []*DataObject

	recLen uint32
}

func (t *TrackItem) Magic() string       { return MagicTrack }
func (t *TrackItem) HeaderLen() uint32 {
	return 120 + uint32(len(t.Tail))
}
func (t *TrackItem) Len() uint32         { return t.recLen }
func (t *TrackItem) setLen(n uint32)     { t.recLen = n }
func (t *TrackItem) inlineBytes() uint32 { return 0 }

func (t *TrackItem) Children() []Record {
	out := make([]Record, len(t.DataObjects))
	for i, d := range t.DataObjects {
		out[i] = d
	}
	return out
}

func (t *TrackItem) SetChildren(children []Record) error {
	objs := make([]*DataObject, len(children))
	for i, c := range children {
		d, ok := c.(*DataObject)
		if !ok {
			return ErrChildTypeMismatch
		}
		objs[i] = d
	}
	t.DataObjects = objs
	return nil
}

func parseTrackItem(c *cursor) (*TrackItem, error) {
	start := c.offset()
	t := &TrackItem{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicTrack, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicTrack, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicTrack, err)
	}
	count, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicTrack, err)
	}
	if hdrLen < 120 {
		return nil, parseErrf(start, MagicTrack, ErrLengthMismatch)
	}
	if t.UniqueID, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicTrack, err)
	}
	if t.Visible, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicTrack, err)
	}
	if t.FileType, err = c.array4(); err != nil {
		return nil, parseErrf(c.offset(), MagicTrack, err)
	}
	if t.Middle, err = c.bytes(84); err != nil {
		return nil, parseErrf(c.offset(), MagicTrack, err)
	}
	if t.PersistentID, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicTrack, err)
	}
	tailLen := int(hdrLen) - 120
	if t.Tail, err = c.bytes(tailLen); err != nil {
		return nil, parseErrf(c.offset(), MagicTrack, ErrShortRead)
	}
	t.DataObjects = make([]*DataObject, 0, count)
	for i := uint32(0); i < count; i++ {
		d, err := parseDataObjectITunes(c)
		if err != nil {
			return nil, err
		}
		t.DataObjects = append(t.DataObjects, d)
	}
	t.setLen(recLen)
	return t, nil
}

func (t *TrackItem) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicTrack)); err != nil {
		return err
	}
	if err := writeU32(w, t.HeaderLen()); err != nil {
		return err
	}
	if err := writeU32(w, t.Len()); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(t.DataObjects))); err != nil {
		return err
	}
	if err := writeU32(w, t.UniqueID); err != nil {
		return err
	}
	if err := writeU32(w, t.Visible); err != nil {
		return err
	}
	if err := writeBytes(w, t.FileType[:]); err != nil {
		return err
	}
	if err := writeBytes(w, t.Middle); err != nil {
		return err
	}
	if err := writeU64(w, t.PersistentID); err != nil {
		return err
	}
	if err := writeBytes(w, t.Tail); err != nil {
		return err
	}
	for _, d := range t.DataObjects {
		if err := d.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// AlbumItem is the mhia record. Tail covers everything after
// ExtraArtID; its length alone tracks header_len, mirroring
// TrackItem.Tail.
type AlbumItem struct {
	Unk10       uint32
	AlbumID     uint32
	ExtraArtID  uint64
	Tail        []byte
	DataObjects []*DataObject

	recLen uint32
}

func (a *AlbumItem) Magic() string     { return MagicAlbumItem }
func (a *AlbumItem) HeaderLen() uint32 { return 32 + uint32(len(a.Tail)) }
func (a *AlbumItem) Len() uint32         { return a.recLen }
func (a *AlbumItem) setLen(n uint32)     { a.recLen = n }
func (a *AlbumItem) inlineBytes() uint32 { return 0 }

func (a *AlbumItem) Children() []Record {
	out := make([]Record, len(a.DataObjects))
	for i, d := range a.DataObjects {
		out[i] = d
	}
	return out
}

func (a *AlbumItem) SetChildren(children []Record) error {
	objs := make([]*DataObject, len(children))
	for i, c := range children {
		d, ok := c.(*DataObject)
		if !ok {
			return ErrChildTypeMismatch
		}
		objs[i] = d
	}
	a.DataObjects = objs
	return nil
}

func parseAlbumItem(c *cursor) (*AlbumItem, error) {
	start := c.offset()
	a := &AlbumItem{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicAlbumItem, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicAlbumItem, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicAlbumItem, err)
	}
	count, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicAlbumItem, err)
	}
	if a.Unk10, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicAlbumItem, err)
	}
	if a.AlbumID, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicAlbumItem, err)
	}
	if a.ExtraArtID, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicAlbumItem, err)
	}
	tailLen := int(hdrLen) - 32
	if a.Tail, err = c.bytes(tailLen); err != nil {
		return nil, parseErrf(c.offset(), MagicAlbumItem, ErrShortRead)
	}
	a.DataObjects = make([]*DataObject, 0, count)
	for i := uint32(0); i < count; i++ {
		d, err := parseDataObjectITunes(c)
		if err != nil {
			return nil, err
		}
		a.DataObjects = append(a.DataObjects, d)
	}
	a.setLen(recLen)
	return a, nil
}

func (a *AlbumItem) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicAlbumItem)); err != nil {
		return err
	}
	if err := writeU32(w, a.HeaderLen()); err != nil {
		return err
	}
	if err := writeU32(w, a.Len()); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(a.DataObjects))); err != nil {
		return err
	}
	if err := writeU32(w, a.Unk10); err != nil {
		return err
	}
	if err := writeU32(w, a.AlbumID); err != nil {
		return err
	}
	if err := writeU64(w, a.ExtraArtID); err != nil {
		return err
	}
	if err := writeBytes(w, a.Tail); err != nil {
		return err
	}
	for _, d := range a.DataObjects {
		if err := d.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// Playlist is the mhyp record. It stores two child lists in sequence:
// data objects (playlist name, etc.) then entries (mhip). Children()
// concatenates them in that documented order (§4.5); SetChildren
// partitions back by concrete type.
type Playlist struct {
	Unk10      uint64
	IsMaster   uint8
	Unk19      [3]byte
	Timestamp  uint32
	PersistentID uint64
	Unk28      uint32
	StringMhodCount uint16
	Unk32      uint16
	PodcastFlag uint8
	Unk39      [3]byte
	SortOrder  uint32
	Tail       []byte // everything after sort_order; length alone tracks header_len

	DataObjects []*DataObject
	Entries     []*PlaylistItem

	recLen uint32
}

func (p *Playlist) Magic() string     { return MagicPlaylist }
func (p *Playlist) HeaderLen() uint32 { return 60 + uint32(len(p.Tail)) }
func (p *Playlist) Len() uint32         { return p.recLen }
func (p *Playlist) setLen(n uint32)     { p.recLen = n }
func (p *Playlist) inlineBytes() uint32 { return 0 }

func (p *Playlist) Children() []Record {
	out := make([]Record, 0, len(p.DataObjects)+len(p.Entries))
	for _, d := range p.DataObjects {
		out = append(out, d)
	}
	for _, e := range p.Entries {
		out = append(out, e)
	}
	return out
}

func (p *Playlist) SetChildren(children []Record) error {
	var objs []*DataObject
	var entries []*PlaylistItem
	for _, c := range children {
		switch v := c.(type) {
		case *DataObject:
			objs = append(objs, v)
		case *PlaylistItem:
			entries = append(entries, v)
		default:
			return ErrChildTypeMismatch
		}
	}
	p.DataObjects = objs
	p.Entries = entries
	return nil
}

func parsePlaylist(c *cursor) (*Playlist, error) {
	start := c.offset()
	p := &Playlist{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicPlaylist, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	dataObjCount, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	entryCount, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	if p.Unk10, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	isMaster, err := c.u8()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	p.IsMaster = isMaster
	unk19, err := c.bytes(3)
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	copy(p.Unk19[:], unk19)
	if p.Timestamp, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	if p.PersistentID, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	if p.Unk28, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	if p.StringMhodCount, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	if p.Unk32, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	podcastFlag, err := c.u8()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	p.PodcastFlag = podcastFlag
	unk39, err := c.bytes(3)
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	copy(p.Unk39[:], unk39)
	if p.SortOrder, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, err)
	}
	tailLen := int(hdrLen) - 60
	if p.Tail, err = c.bytes(tailLen); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylist, ErrShortRead)
	}
	p.DataObjects = make([]*DataObject, 0, dataObjCount)
	for i := uint32(0); i < dataObjCount; i++ {
		d, err := parseDataObjectITunes(c)
		if err != nil {
			return nil, err
		}
		p.DataObjects = append(p.DataObjects, d)
	}
	p.Entries = make([]*PlaylistItem, 0, entryCount)
	for i := uint32(0); i < entryCount; i++ {
		e, err := parsePlaylistItem(c)
		if err != nil {
			return nil, err
		}
		p.Entries = append(p.Entries, e)
	}
	p.setLen(recLen)
	return p, nil
}

func (p *Playlist) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicPlaylist)); err != nil {
		return err
	}
	if err := writeU32(w, p.HeaderLen()); err != nil {
		return err
	}
	if err := writeU32(w, p.Len()); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(p.DataObjects))); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(p.Entries))); err != nil {
		return err
	}
	if err := writeU64(w, p.Unk10); err != nil {
		return err
	}
	if err := writeU8(w, p.IsMaster); err != nil {
		return err
	}
	if err := writeBytes(w, p.Unk19[:]); err != nil {
		return err
	}
	if err := writeU32(w, p.Timestamp); err != nil {
		return err
	}
	if err := writeU64(w, p.PersistentID); err != nil {
		return err
	}
	if err := writeU32(w, p.Unk28); err != nil {
		return err
	}
	if err := writeU16(w, p.StringMhodCount); err != nil {
		return err
	}
	if err := writeU16(w, p.Unk32); err != nil {
		return err
	}
	if err := writeU8(w, p.PodcastFlag); err != nil {
		return err
	}
	if err := writeBytes(w, p.Unk39[:]); err != nil {
		return err
	}
	if err := writeU32(w, p.SortOrder); err != nil {
		return err
	}
	if err := writeBytes(w, p.Tail); err != nil {
		return err
	}
	for _, d := range p.DataObjects {
		if err := d.emit(w); err != nil {
			return err
		}
	}
	for _, e := range p.Entries {
		if err := e.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// PlaylistItem is the mhip record, one entry inside a Playlist.
type PlaylistItem struct {
	Unk10        uint32
	GroupID      uint32
	TrackID      uint32
	Timestamp    uint32
	PodcastGroupingFlag uint32
	Unk24        uint32
	Unk28        uint32
	Unk2C        uint32
	Tail         []byte // everything after Unk2C; length alone tracks header_len

	DataObjects []*DataObject

	recLen uint32
}

func (p *PlaylistItem) Magic() string     { return MagicPlaylistItem }
func (p *PlaylistItem) HeaderLen() uint32 { return 48 + uint32(len(p.Tail)) }
func (p *PlaylistItem) Len() uint32         { return p.recLen }
func (p *PlaylistItem) setLen(n uint32)     { p.recLen = n }
func (p *PlaylistItem) inlineBytes() uint32 { return 0 }

func (p *PlaylistItem) Children() []Record {
	out := make([]Record, len(p.DataObjects))
	for i, d := range p.DataObjects {
		out[i] = d
	}
	return out
}

func (p *PlaylistItem) SetChildren(children []Record) error {
	objs := make([]*DataObject, len(children))
	for i, c := range children {
		d, ok := c.(*DataObject)
		if !ok {
			return ErrChildTypeMismatch
		}
		objs[i] = d
	}
	p.DataObjects = objs
	return nil
}

func parsePlaylistItem(c *cursor) (*PlaylistItem, error) {
	start := c.offset()
	p := &PlaylistItem{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicPlaylistItem, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	count, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	if p.Unk10, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	if p.GroupID, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	if p.TrackID, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	if p.Timestamp, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	if p.PodcastGroupingFlag, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	if p.Unk24, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	if p.Unk28, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	if p.Unk2C, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, err)
	}
	tailLen := int(hdrLen) - 48
	if p.Tail, err = c.bytes(tailLen); err != nil {
		return nil, parseErrf(c.offset(), MagicPlaylistItem, ErrShortRead)
	}
	p.DataObjects = make([]*DataObject, 0, count)
	for i := uint32(0); i < count; i++ {
		d, err := parseDataObjectITunes(c)
		if err != nil {
			return nil, err
		}
		p.DataObjects = append(p.DataObjects, d)
	}
	p.setLen(recLen)
	return p, nil
}

func (p *PlaylistItem) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicPlaylistItem)); err != nil {
		return err
	}
	if err := writeU32(w, p.HeaderLen()); err != nil {
		return err
	}
	if err := writeU32(w, p.Len()); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(p.DataObjects))); err != nil {
		return err
	}
	if err := writeU32(w, p.Unk10); err != nil {
		return err
	}
	if err := writeU32(w, p.GroupID); err != nil {
		return err
	}
	if err := writeU32(w, p.TrackID); err != nil {
		return err
	}
	if err := writeU32(w, p.Timestamp); err != nil {
		return err
	}
	if err := writeU32(w, p.PodcastGroupingFlag); err != nil {
		return err
	}
	if err := writeU32(w, p.Unk24); err != nil {
		return err
	}
	if err := writeU32(w, p.Unk28); err != nil {
		return err
	}
	if err := writeU32(w, p.Unk2C); err != nil {
		return err
	}
	if err := writeBytes(w, p.Tail); err != nil {
		return err
	}
	for _, d := range p.DataObjects {
		if err := d.emit(w); err != nil {
			return err
		}
	}
	return nil
}
