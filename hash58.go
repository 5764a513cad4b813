// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"io"
)

// hash58 canonicalization windows, both measured from the start of the
// serialized iTunesDB (the mhbd record always begins at offset 0).
//
// The digest occupies the first 20 bytes of the 32-byte window at
// 0x58; the remaining 12 bytes (timezone_offset, two reserved bytes,
// and the first 6 bytes of the secondary hash window) are zeroed for
// hashing and stay zero on write-back, since timezone is
// environment-dependent and must not affect whether a database
// verifies. The secondary hash window beyond that overlap (0x78..0xA0)
// is left untouched, per §9 — no algorithm for it is characterized
// here.
const (
	hash58WindowOffset = 0x58
	hash58WindowLen    = 0x20
	hash58DigestLen    = 20
	deviceIDOffset     = 0x18
	deviceIDLen        = 8
)

// DecodeFWID validates and decodes a 16-hex-character firmware
// identifier (as found in the device's system-info descriptor) into
// its 8 raw bytes.
func DecodeFWID(s string) ([8]byte, error) {
	var out [8]byte
	if len(s) != 16 {
		return out, ErrBadFirmwareID
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, ErrBadFirmwareID
	}
	copy(out[:], b)
	return out, nil
}

// canonicalize returns a copy of dbBytes with both hash58 windows
// zeroed, ready to be hashed.
func canonicalize(dbBytes []byte) ([]byte, error) {
	if len(dbBytes) < hash58WindowOffset+hash58WindowLen {
		return nil, ErrShortRead
	}
	buf := make([]byte, len(dbBytes))
	copy(buf, dbBytes)
	for i := 0; i < hash58WindowLen; i++ {
		buf[hash58WindowOffset+i] = 0
	}
	for i := 0; i < deviceIDLen; i++ {
		buf[deviceIDOffset+i] = 0
	}
	return buf, nil
}

// hash58Digest computes the keyed digest over the canonicalized bytes
// of a serialized iTunesDB. fwidBytes is the 8-byte firmware key
// decoded by DecodeFWID; this is the "vetted routine" the checksum
// contract permits treating as a black box (§4.3) — realized here with
// HMAC-SHA1, the same primitive the teacher reaches for directly in
// hash.go and sum.go.
func hash58Digest(fwidBytes [8]byte, dbBytes []byte) ([]byte, error) {
	canon, err := canonicalize(dbBytes)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(sha1.New, fwidBytes[:])
	mac.Write(canon)
	return mac.Sum(nil), nil
}

// GenerateHash58 computes the 20-byte hash58 digest for a serialized
// iTunesDB and the device's firmware identifier.
func GenerateHash58(fwid string, dbBytes []byte) ([]byte, error) {
	fwidBytes, err := DecodeFWID(fwid)
	if err != nil {
		return nil, err
	}
	return hash58Digest(fwidBytes, dbBytes)
}

// VerifyHash58 recomputes the digest over dbBytes and compares it,
// constant-time, against whatever is currently stored at the hash
// window.
func VerifyHash58(fwid string, dbBytes []byte) error {
	if len(dbBytes) < hash58WindowOffset+hash58DigestLen {
		return ErrShortRead
	}
	stored := dbBytes[hash58WindowOffset : hash58WindowOffset+hash58DigestLen]
	got, err := GenerateHash58(fwid, dbBytes)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(stored, got) != 1 {
		return ErrHashMismatch
	}
	return nil
}

// RegenerateHash58 recomputes and writes the hash58 digest (and,
// optionally, the device-id window) directly into dbBytes, which must
// already hold a fully fixed-up, serialized iTunesDB. deviceID is
// written verbatim to 0x18..0x20; pass the zero value to leave it
// zeroed, matching §4.3's write-back contract.
func RegenerateHash58(dbBytes []byte, fwid string, deviceID [8]byte) error {
	fwidBytes, err := DecodeFWID(fwid)
	if err != nil {
		return err
	}
	digest, err := hash58Digest(fwidBytes, dbBytes)
	if err != nil {
		return err
	}
	for i := 0; i < hash58WindowLen; i++ {
		dbBytes[hash58WindowOffset+i] = 0
	}
	copy(dbBytes[hash58WindowOffset:hash58WindowOffset+hash58DigestLen], digest)
	copy(dbBytes[deviceIDOffset:deviceIDOffset+deviceIDLen], deviceID[:])
	return nil
}

// WriteOption configures WriteITunesDB.
type WriteOption func(*writeOptions)

type writeOptions struct {
	deviceID [8]byte
}

// WithDeviceID sets the 8-byte device-id window written alongside the
// hash58 digest. Omitting it leaves the window zeroed.
func WithDeviceID(id [8]byte) WriteOption {
	return func(o *writeOptions) { o.deviceID = id }
}

// WriteITunesDB fixes up m's lengths, serializes it, regenerates its
// hash58 digest for fwid, and writes the result to w. This is the
// single entry point a caller editing a database normally wants:
// Emit/FixLengths/RegenerateHash58 are exposed separately for callers
// that need finer control (e.g. ArtworkDB, which carries no checksum).
func WriteITunesDB(w io.Writer, m *Master, fwid string, opts ...WriteOption) error {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}
	FixLengths(m)
	var buf bytes.Buffer
	if err := Emit(&buf, m); err != nil {
		return err
	}
	data := buf.Bytes()
	if err := RegenerateHash58(data, fwid, o.deviceID); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
