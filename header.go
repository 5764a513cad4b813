// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpodlib parses, edits and re-emits the on-device database files
// (iTunesDB and ArtworkDB) used by a legacy portable media player: a
// tagged-tree binary codec, a length/count reconciliation pass, and a
// device-bound checksum.
//
// The package does not discover or mount devices, parse the device's
// system-info XML descriptor, ingest track files, rasterize artwork, or
// model a user-facing library — it only round-trips the two on-disk
// record trees.
package rpodlib

// Magic tags identifying each record kind. Every record in both
// databases begins with one of these 4 ASCII bytes.
const (
	MagicMaster         = "mhbd" // iTunesDB master record
	MagicListContainer  = "mhsd" // dataset/list container (both databases)
	MagicTrackList      = "mhlt" // list_type 1
	MagicPlaylistList   = "mhlp" // list_type 2 (playlists), 3 (podcasts) and 5 (smart playlists)
	MagicAlbumList      = "mhla" // list_type 4 (iTunesDB) / 2 (ArtworkDB)
	MagicTrack          = "mhit" // track item
	MagicAlbumItem      = "mhia" // album item
	MagicPlaylist       = "mhyp" // playlist
	MagicPlaylistItem   = "mhip" // playlist entry
	MagicDataObject     = "mhod" // data object leaf (both databases)
	MagicArtworkMaster  = "mhfd" // ArtworkDB master record
	MagicImageList      = "mhli" // ArtworkDB list_type 1
	MagicFileList       = "mhlf" // ArtworkDB list_type 3
	MagicImageItem      = "mhii" // artwork image item
	MagicImageInfo      = "mhni" // artwork image info (per-size variant)
	MagicImageFile      = "mhif" // artwork image file
	MagicArtworkHolder  = "mhaf" // artwork file holder
)

// Fixed header sizes: the number of bytes from the start of the magic
// tag to the first byte of a record's children (or, for mhod, to the
// first byte of its payload). These are the standard on-disk sizes.
// mhit, mhia, mhyp, mhip, mhii and mhif derive the header_len they emit
// from their named fields plus their Tail, so for those kinds the
// constants serve as the Tail sizes of records built in tests; a header_len read
// from a file is preserved as-is, even when it differs, so unknown
// trailing header bytes survive a round trip untouched.
const (
	headerLenMaster        = 244
	headerLenListContainer = 96
	headerLenList          = 92
	headerLenTrack         = 624
	headerLenAlbumItem     = 88
	headerLenPlaylist      = 184
	headerLenPlaylistItem  = 76
	headerLenDataObject    = 24
	headerLenArtworkMaster = 132
	headerLenImageItem     = 152
	headerLenImageInfo     = 76
	headerLenImageFile     = 112
	headerLenArtworkHolder = 88
)

// listType discriminates the payload of an mhsd (list container) record.
// iTunesDB and ArtworkDB use disjoint discriminant spaces inside the
// same mhsd/mhlp/mhla magic tags, so the discriminant is always kept as
// the record's own stored field rather than inferred from the nested
// list's magic (dataset.rs pre_asserts on list_type before magic, and
// list_type 3 and 5 both wrap an mhlp list in iTunesDB).
type listType uint32

// iTunesDB mhsd discriminants.
const (
	ListTypeTracks        listType = 1
	ListTypePlaylists     listType = 2
	ListTypePodcasts      listType = 3
	ListTypeAlbums        listType = 4
	ListTypeSmartPlaylist listType = 5
)

// ArtworkDB mhsd discriminants.
const (
	ArtListTypeImages listType = 1
	ArtListTypeAlbums listType = 2
	ArtListTypeFiles  listType = 3
)

// dataType discriminates the payload of an mhod (data object) record.
type dataType uint32

// iTunesDB mhod discriminants carrying a UTF-16LE string.
const (
	DataTitle              dataType = 1
	DataLocation           dataType = 2
	DataAlbum              dataType = 3
	DataArtist             dataType = 4
	DataGenre              dataType = 5
	DataFiletype           dataType = 6
	DataEQSetting          dataType = 7
	DataComment            dataType = 8
	DataCategory           dataType = 9
	DataComposer           dataType = 12
	DataGrouping           dataType = 13
	DataDescriptionText    dataType = 14
	DataPodcastEnclosureURL dataType = 15 // UTF-8, not UTF-16
	DataPodcastRSSURL      dataType = 16 // UTF-8, not UTF-16
	DataSubtitle           dataType = 18
	DataTVShow             dataType = 22
	DataCopyright          dataType = 39
)

// Artwork mhod discriminants.
const (
	ArtDataImageMeta     dataType = 2 // nested mhni record
	ArtDataIthmbFilename dataType = 3 // UTF-16LE string
	ArtDataMhafHolder    dataType = 6 // nested mhaf record
)

// utf16DataTypes holds every iTunesDB mhod discriminant whose payload is
// a UTF-16LE string with the generic 16-byte prefix.
var utf16DataTypes = map[dataType]bool{
	DataTitle: true, DataLocation: true, DataAlbum: true, DataArtist: true,
	DataGenre: true, DataFiletype: true, DataEQSetting: true, DataComment: true,
	DataCategory: true, DataComposer: true, DataGrouping: true, DataDescriptionText: true,
	DataSubtitle: true, DataTVShow: true, DataCopyright: true,
}

// urlDataTypes holds the two discriminants whose payload is a UTF-8 URL
// blob rather than a UTF-16LE string.
var urlDataTypes = map[dataType]bool{
	DataPodcastEnclosureURL: true, DataPodcastRSSURL: true,
}
