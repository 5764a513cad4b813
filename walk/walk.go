// Package walk provides a read-only and mutable visitor over an
// rpodlib record tree, the way idiomatic-mp4's Walk/WalkFunc visits an
// MP4 atom tree: a function is called once per node with the chain of
// ancestors leading to it, and returning an error from the function
// stops the walk early.
//
// The walker never interprets mhod payloads itself — consumers match
// on whatever discriminant or concrete type they care about — and it
// never recomputes length fields; callers that mutate the tree must
// call rpodlib.FixLengths before re-emitting it.
package walk

import "github.com/gnome-child/rpodlib"

// WalkFunc is called once for each record visited, with ancestors
// ordered root-first (ancestors[0] is always the tree's root).
type WalkFunc func(ancestors []rpodlib.Record, r rpodlib.Record) error

// Walk visits root and every descendant, depth-first, in stored child
// order, calling fn on each. It stops and returns the first error fn
// returns.
func Walk(root rpodlib.Record, fn WalkFunc) error {
	return walk(nil, root, fn)
}

func walk(ancestors []rpodlib.Record, r rpodlib.Record, fn WalkFunc) error {
	if err := fn(ancestors, r); err != nil {
		return err
	}
	childAncestors := append(append([]rpodlib.Record{}, ancestors...), r)
	for _, c := range r.Children() {
		if err := walk(childAncestors, c, fn); err != nil {
			return err
		}
	}
	return nil
}

// MutableWalker supports structural edits (insert/remove a child)
// without the caller having to hand-roll slice surgery against
// Record.Children()/SetChildren(). It does not track "dirty" state
// beyond the edit itself; the caller is responsible for calling
// rpodlib.FixLengths on the root once editing is done.
type MutableWalker struct{}

// InsertChild inserts child at index among r's current children,
// shifting later children back by one.
func (MutableWalker) InsertChild(r rpodlib.Record, index int, child rpodlib.Record) error {
	children := r.Children()
	if index < 0 || index > len(children) {
		return rpodlib.ErrChildTypeMismatch
	}
	next := make([]rpodlib.Record, 0, len(children)+1)
	next = append(next, children[:index]...)
	next = append(next, child)
	next = append(next, children[index:]...)
	return r.SetChildren(next)
}

// RemoveChild removes the child at index among r's current children.
func (MutableWalker) RemoveChild(r rpodlib.Record, index int) error {
	children := r.Children()
	if index < 0 || index >= len(children) {
		return rpodlib.ErrChildTypeMismatch
	}
	next := make([]rpodlib.Record, 0, len(children)-1)
	next = append(next, children[:index]...)
	next = append(next, children[index+1:]...)
	return r.SetChildren(next)
}
