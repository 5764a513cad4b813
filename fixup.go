// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpodlib

// FixLengths recomputes r's len field, and every descendant's, from
// the bottom up: each record's size is its header plus the sum of its
// (already-fixed) children's sizes plus any inline payload bytes of
// its own (non-zero only for mhod leaves, mhaf holders and unrecognized
// RawRecords). Every record in this tree
// stores its children contiguously immediately after its header, so
// this sum is exactly the record's total size — no byte is ever
// written twice and no subtree is ever re-serialized to measure it,
// which keeps the whole pass O(n) in the number of records rather than
// the O(n²) a naive "serialize each ancestor to measure it" pass would
// cost (§9).
//
// Call FixLengths after any edit (inserting/removing a child,
// replacing a string payload with one of a different length) and
// before Emit; Emit never recomputes lengths itself.
func FixLengths(r Record) uint32 {
	var sum uint32
	for _, child := range r.Children() {
		sum += FixLengths(child)
	}
	total := r.HeaderLen() + sum + r.inlineBytes()
	r.setLen(total)
	return total
}
