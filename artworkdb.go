// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import "io"

// ArtworkMaster is the mhfd root record of an ArtworkDB file.
// NextMhiiID is the only field this module has any functional need to
// expose (it is the next identifier a caller minting a new ImageItem
// should use); everything else is preserved verbatim.
type ArtworkMaster struct {
	Unk0C      uint32
	Unk10      uint32
	Unk18      uint32
	NextMhiiID uint32
	Unk20      uint64
	Unk28      uint64
	Unk30      uint32
	Unk34      uint32
	Unk38      uint32
	Unk3C      uint32
	Unk40      uint32
	Pad64      [64]byte

	DataSets []*ListContainer

	recLen uint32
}

func NewArtworkMaster() *ArtworkMaster { return &ArtworkMaster{} }

func (m *ArtworkMaster) Magic() string       { return MagicArtworkMaster }
func (m *ArtworkMaster) HeaderLen() uint32   { return headerLenArtworkMaster }
func (m *ArtworkMaster) Len() uint32         { return m.recLen }
func (m *ArtworkMaster) setLen(n uint32)     { m.recLen = n }
func (m *ArtworkMaster) inlineBytes() uint32 { return 0 }

func (m *ArtworkMaster) Children() []Record {
	out := make([]Record, len(m.DataSets))
	for i, d := range m.DataSets {
		out[i] = d
	}
	return out
}

func (m *ArtworkMaster) SetChildren(children []Record) error {
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

func parseArtworkMaster(c *cursor) (*ArtworkMaster, error) {
	start := c.offset()
	m := &ArtworkMaster{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicArtworkMaster, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk0C, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk10, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	dataSetCount, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk18, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.NextMhiiID, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk20, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk28, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk30, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk34, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk38, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk3C, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	if m.Unk40, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	pad, err := c.bytes(64)
	if err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkMaster, err)
	}
	copy(m.Pad64[:], pad)
	if hdrLen > headerLenArtworkMaster {
		if err := c.skip(int(hdrLen - headerLenArtworkMaster)); err != nil {
			return nil, parseErrf(c.offset(), MagicArtworkMaster, ErrShortRead)
		}
	} else if hdrLen < headerLenArtworkMaster {
		return nil, parseErrf(start, MagicArtworkMaster, ErrLengthMismatch)
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

func (m *ArtworkMaster) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicArtworkMaster)); err != nil {
		return err
	}
	if err := writeU32(w, headerLenArtworkMaster); err != nil {
		return err
	}
	if err := writeU32(w, m.Len()); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk0C); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk10); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(m.DataSets))); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk18); err != nil {
		return err
	}
	if err := writeU32(w, m.NextMhiiID); err != nil {
		return err
	}
	if err := writeU64(w, m.Unk20); err != nil {
		return err
	}
	if err := writeU64(w, m.Unk28); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk30); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk34); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk38); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk3C); err != nil {
		return err
	}
	if err := writeU32(w, m.Unk40); err != nil {
		return err
	}
	if err := writeBytes(w, m.Pad64[:]); err != nil {
		return err
	}
	for _, ds := range m.DataSets {
		if err := ds.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// ImageItem is the mhii record. ImageSize is stored once; the on-disk
// format repeats it a second time immediately afterwards (the rust
// source's image_size_dup) purely as a historical duplicate field —
// rather than carry two fields that could drift apart, this module
// treats the duplicate as a computed view derived from ImageSize at
// emit time (§9).
type ImageItem struct {
	ID                    uint32
	TrackPersistentID     uint64
	Unk1C                 uint32
	Rating                uint32
	Unk24                 uint32
	ImageCreationHFS      uint32
	ImageExifCreationHFS  uint32
	ImageSize             uint32
	Unk34, Unk38, Unk3C, Unk40, Unk44 uint32
	Tail                  []byte // everything after image_size_dup; length alone tracks header_len

	DataObjects []*DataObject

	recLen uint32
}

func (i *ImageItem) Magic() string     { return MagicImageItem }
func (i *ImageItem) HeaderLen() uint32 { return 76 + uint32(len(i.Tail)) }
func (i *ImageItem) Len() uint32         { return i.recLen }
func (i *ImageItem) setLen(n uint32)     { i.recLen = n }
func (i *ImageItem) inlineBytes() uint32 { return 0 }

// imageSizeDup is the computed duplicate of ImageSize written
// immediately after it on disk.
func (i *ImageItem) imageSizeDup() uint32 { return i.ImageSize }

func (i *ImageItem) Children() []Record {
	out := make([]Record, len(i.DataObjects))
	for j, d := range i.DataObjects {
		out[j] = d
	}
	return out
}

func (i *ImageItem) SetChildren(children []Record) error {
	objs := make([]*DataObject, len(children))
	for j, c := range children {
		d, ok := c.(*DataObject)
		if !ok {
			return ErrChildTypeMismatch
		}
		objs[j] = d
	}
	i.DataObjects = objs
	return nil
}

func parseImageItem(c *cursor) (*ImageItem, error) {
	start := c.offset()
	i := &ImageItem{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicImageItem, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	count, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	if i.ID, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	if i.TrackPersistentID, err = c.u64(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	if i.Unk1C, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	if i.Rating, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	if i.Unk24, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	if i.ImageCreationHFS, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	if i.ImageExifCreationHFS, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	if i.ImageSize, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	for _, f := range []*uint32{&i.Unk34, &i.Unk38, &i.Unk3C, &i.Unk40, &i.Unk44} {
		if *f, err = c.u32(); err != nil {
			return nil, parseErrf(c.offset(), MagicImageItem, err)
		}
	}
	if _, err := c.u32(); err != nil { // image_size_dup, discarded: recomputed at emit
		return nil, parseErrf(c.offset(), MagicImageItem, err)
	}
	tailLen := int(hdrLen) - 76
	if i.Tail, err = c.bytes(tailLen); err != nil {
		return nil, parseErrf(c.offset(), MagicImageItem, ErrShortRead)
	}
	i.DataObjects = make([]*DataObject, 0, count)
	for n := uint32(0); n < count; n++ {
		d, err := parseDataObjectArtwork(c)
		if err != nil {
			return nil, err
		}
		i.DataObjects = append(i.DataObjects, d)
	}
	i.setLen(recLen)
	return i, nil
}

func (i *ImageItem) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicImageItem)); err != nil {
		return err
	}
	if err := writeU32(w, i.HeaderLen()); err != nil {
		return err
	}
	if err := writeU32(w, i.Len()); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(i.DataObjects))); err != nil {
		return err
	}
	if err := writeU32(w, i.ID); err != nil {
		return err
	}
	if err := writeU64(w, i.TrackPersistentID); err != nil {
		return err
	}
	if err := writeU32(w, i.Unk1C); err != nil {
		return err
	}
	if err := writeU32(w, i.Rating); err != nil {
		return err
	}
	if err := writeU32(w, i.Unk24); err != nil {
		return err
	}
	if err := writeU32(w, i.ImageCreationHFS); err != nil {
		return err
	}
	if err := writeU32(w, i.ImageExifCreationHFS); err != nil {
		return err
	}
	if err := writeU32(w, i.ImageSize); err != nil {
		return err
	}
	for _, v := range []uint32{i.Unk34, i.Unk38, i.Unk3C, i.Unk40, i.Unk44} {
		if err := writeU32(w, v); err != nil {
			return err
		}
	}
	if err := writeU32(w, i.imageSizeDup()); err != nil {
		return err
	}
	if err := writeBytes(w, i.Tail); err != nil {
		return err
	}
	for _, d := range i.DataObjects {
		if err := d.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// ImageInfo is the mhni record: one per rendered size variant of an
// image, embedded as the payload of an ArtDataImageMeta mhod inside an
// ImageItem's data objects.
type ImageInfo struct {
	CorrelationID uint32
	ImageFormat   [4]byte
	Unk18         uint32
	Width         uint16
	Height        uint16
	Unk20         uint32
	Unk24         uint32
	Unk28         uint32
	Unk2C         uint32
	Unk30         uint32
	Pad           [24]byte

	DataObjects []*DataObject

	recLen uint32
}

func (n *ImageInfo) Magic() string       { return MagicImageInfo }
func (n *ImageInfo) HeaderLen() uint32   { return headerLenImageInfo }
func (n *ImageInfo) Len() uint32         { return n.recLen }
func (n *ImageInfo) setLen(v uint32)     { n.recLen = v }
func (n *ImageInfo) inlineBytes() uint32 { return 0 }

func (n *ImageInfo) Children() []Record {
	out := make([]Record, len(n.DataObjects))
	for i, d := range n.DataObjects {
		out[i] = d
	}
	return out
}

func (n *ImageInfo) SetChildren(children []Record) error {
	objs := make([]*DataObject, len(children))
	for i, c := range children {
		d, ok := c.(*DataObject)
		if !ok {
			return ErrChildTypeMismatch
		}
		objs[i] = d
	}
	n.DataObjects = objs
	return nil
}

func parseImageInfo(c *cursor) (*ImageInfo, error) {
	start := c.offset()
	n := &ImageInfo{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicImageInfo, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageInfo, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageInfo, err)
	}
	count, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageInfo, err)
	}
	if n.CorrelationID, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageInfo, err)
	}
	if n.ImageFormat, err = c.array4(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageInfo, err)
	}
	if n.Unk18, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageInfo, err)
	}
	if n.Width, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageInfo, err)
	}
	if n.Height, err = c.u16(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageInfo, err)
	}
	for _, f := range []*uint32{&n.Unk20, &n.Unk24, &n.Unk28, &n.Unk2C, &n.Unk30} {
		if *f, err = c.u32(); err != nil {
			return nil, parseErrf(c.offset(), MagicImageInfo, err)
		}
	}
	pad, err := c.bytes(24)
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageInfo, err)
	}
	copy(n.Pad[:], pad)
	if hdrLen > headerLenImageInfo {
		if err := c.skip(int(hdrLen - headerLenImageInfo)); err != nil {
			return nil, parseErrf(c.offset(), MagicImageInfo, ErrShortRead)
		}
	} else if hdrLen < headerLenImageInfo {
		return nil, parseErrf(start, MagicImageInfo, ErrLengthMismatch)
	}
	n.DataObjects = make([]*DataObject, 0, count)
	for i := uint32(0); i < count; i++ {
		d, err := parseDataObjectArtwork(c)
		if err != nil {
			return nil, err
		}
		n.DataObjects = append(n.DataObjects, d)
	}
	n.setLen(recLen)
	return n, nil
}

func (n *ImageInfo) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicImageInfo)); err != nil {
		return err
	}
	if err := writeU32(w, headerLenImageInfo); err != nil {
		return err
	}
	if err := writeU32(w, n.Len()); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(n.DataObjects))); err != nil {
		return err
	}
	if err := writeU32(w, n.CorrelationID); err != nil {
		return err
	}
	if err := writeBytes(w, n.ImageFormat[:]); err != nil {
		return err
	}
	if err := writeU32(w, n.Unk18); err != nil {
		return err
	}
	if err := writeU16(w, n.Width); err != nil {
		return err
	}
	if err := writeU16(w, n.Height); err != nil {
		return err
	}
	for _, v := range []uint32{n.Unk20, n.Unk24, n.Unk28, n.Unk2C, n.Unk30} {
		if err := writeU32(w, v); err != nil {
			return err
		}
	}
	if err := writeBytes(w, n.Pad[:]); err != nil {
		return err
	}
	for _, d := range n.DataObjects {
		if err := d.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// ImageFile is the mhif record, referencing the .ithmb file holding a
// size variant's raw pixel data. Only CorrelationID is singled out;
// the remainder of its header is preserved verbatim.
type ImageFile struct {
	CorrelationID uint32
	Tail          []byte // everything after CorrelationID to the end of the header

	DataObjects []*DataObject

	recLen uint32
}

func (f *ImageFile) Magic() string       { return MagicImageFile }
func (f *ImageFile) HeaderLen() uint32   { return 16 + 4 + uint32(len(f.Tail)) }
func (f *ImageFile) Len() uint32         { return f.recLen }
func (f *ImageFile) setLen(v uint32)     { f.recLen = v }
func (f *ImageFile) inlineBytes() uint32 { return 0 }

func (f *ImageFile) Children() []Record {
	out := make([]Record, len(f.DataObjects))
	for i, d := range f.DataObjects {
		out[i] = d
	}
	return out
}

func (f *ImageFile) SetChildren(children []Record) error {
	objs := make([]*DataObject, len(children))
	for i, c := range children {
		d, ok := c.(*DataObject)
		if !ok {
			return ErrChildTypeMismatch
		}
		objs[i] = d
	}
	f.DataObjects = objs
	return nil
}

func parseImageFile(c *cursor) (*ImageFile, error) {
	start := c.offset()
	f := &ImageFile{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicImageFile, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageFile, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageFile, err)
	}
	count, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicImageFile, err)
	}
	if f.CorrelationID, err = c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicImageFile, err)
	}
	if hdrLen < 20 {
		return nil, parseErrf(start, MagicImageFile, ErrLengthMismatch)
	}
	if f.Tail, err = c.bytes(int(hdrLen - 20)); err != nil {
		return nil, parseErrf(c.offset(), MagicImageFile, ErrShortRead)
	}
	f.DataObjects = make([]*DataObject, 0, count)
	for i := uint32(0); i < count; i++ {
		d, err := parseDataObjectArtwork(c)
		if err != nil {
			return nil, err
		}
		f.DataObjects = append(f.DataObjects, d)
	}
	f.setLen(recLen)
	return f, nil
}

func (f *ImageFile) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicImageFile)); err != nil {
		return err
	}
	if err := writeU32(w, f.HeaderLen()); err != nil {
		return err
	}
	if err := writeU32(w, f.Len()); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(f.DataObjects))); err != nil {
		return err
	}
	if err := writeU32(w, f.CorrelationID); err != nil {
		return err
	}
	if err := writeBytes(w, f.Tail); err != nil {
		return err
	}
	for _, d := range f.DataObjects {
		if err := d.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// ArtworkHolder is the mhaf record, the innermost wrapper an
// ArtDataMhafHolder mhod's payload holds (a reference to one physical
// .ithmb/.artwork file on the device).
type ArtworkHolder struct {
	CorrelationID uint32
	Tail          []byte

	recLen uint32
}

func (a *ArtworkHolder) Magic() string       { return MagicArtworkHolder }
func (a *ArtworkHolder) HeaderLen() uint32   { return 16 }
func (a *ArtworkHolder) Len() uint32         { return a.recLen }
func (a *ArtworkHolder) setLen(v uint32)     { a.recLen = v }
func (a *ArtworkHolder) inlineBytes() uint32 { return uint32(len(a.Tail)) }
func (a *ArtworkHolder) Children() []Record  { return nil }

func (a *ArtworkHolder) SetChildren(children []Record) error {
	if len(children) != 0 {
		return ErrChildTypeMismatch
	}
	return nil
}

func parseArtworkHolder(c *cursor) (*ArtworkHolder, error) {
	start := c.offset()
	a := &ArtworkHolder{}
	if err := c.skip(4); err != nil {
		return nil, parseErrf(start, MagicArtworkHolder, err)
	}
	hdrLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkHolder, err)
	}
	recLen, err := c.u32()
	if err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkHolder, err)
	}
	if f, err := c.u32(); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkHolder, err)
	} else {
		a.CorrelationID = f
	}
	if hdrLen < 16 || recLen < 16 {
		return nil, parseErrf(start, MagicArtworkHolder, ErrLengthMismatch)
	}
	if a.Tail, err = c.bytes(int(recLen - 16)); err != nil {
		return nil, parseErrf(c.offset(), MagicArtworkHolder, ErrShortRead)
	}
	a.setLen(recLen)
	return a, nil
}

func (a *ArtworkHolder) emit(w io.Writer) error {
	if err := writeBytes(w, []byte(MagicArtworkHolder)); err != nil {
		return err
	}
	if err := writeU32(w, 16); err != nil {
		return err
	}
	if err := writeU32(w, a.Len()); err != nil {
		return err
	}
	if err := writeU32(w, a.CorrelationID); err != nil {
		return err
	}
	return writeBytes(w, a.Tail)
}
