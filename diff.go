// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

import "fmt"

// ByteDiff describes the first point of divergence between two byte
// slices, along with a short context window around it.
type ByteDiff struct {
	Offset int
	Want   []byte
	Got    []byte
}

func (d *ByteDiff) Error() string {
	return fmt.Sprintf("rpodlib: byte mismatch at offset %d: want % x, got % x", d.Offset, d.Want, d.Got)
}

// Diff compares two byte slices and reports the first differing byte,
// if any, with up to 8 bytes of surrounding context on each side. It
// exists for round-trip development and tests (§2's "diff utility") —
// the core parse/emit/fixup/hash paths never call it.
func Diff(want, got []byte) *ByteDiff {
	n := len(want)
	if len(got) < n {
		n = len(got)
	}
	for i := 0; i < n; i++ {
		if want[i] != got[i] {
			return contextDiff(want, got, i)
		}
	}
	if len(want) != len(got) {
		return contextDiff(want, got, n)
	}
	return nil
}

func contextDiff(want, got []byte, at int) *ByteDiff {
	const window = 8
	lo := at - window
	if lo < 0 {
		lo = 0
	}
	hiWant := at + window + 1
	if hiWant > len(want) {
		hiWant = len(want)
	}
	hiGot := at + window + 1
	if hiGot > len(got) {
		hiGot = len(got)
	}
	return &ByteDiff{Offset: at, Want: want[lo:hiWant], Got: got[lo:hiGot]}
}
