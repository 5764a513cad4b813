package walk

import (
	"testing"

	"github.com/gnome-child/rpodlib"
)

func buildTree() *rpodlib.Master {
	m := rpodlib.NewMaster()
	m.DataSets = []*rpodlib.ListContainer{
		{ListType: 1, List: &rpodlib.List{MagicTag: rpodlib.MagicTrackList}},
	}
	return m
}

func TestWalkVisitsEveryNode(t *testing.T) {
	m := buildTree()
	var visited []string
	var depths []int
	err := Walk(m, func(ancestors []rpodlib.Record, r rpodlib.Record) error {
		visited = append(visited, r.Magic())
		depths = append(depths, len(ancestors))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{rpodlib.MagicMaster, rpodlib.MagicListContainer, rpodlib.MagicTrackList}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
	if depths[0] != 0 || depths[1] != 1 || depths[2] != 2 {
		t.Fatalf("unexpected ancestor depths: %v", depths)
	}
}

func TestWalkStopsOnError(t *testing.T) {
	m := buildTree()
	sentinel := rpodlib.ErrChildTypeMismatch
	calls := 0
	err := Walk(m, func(ancestors []rpodlib.Record, r rpodlib.Record) error {
		calls++
		if r.Magic() == rpodlib.MagicListContainer {
			return sentinel
		}
		return nil
	})
	if err != sentinel {
		t.Fatalf("Walk error = %v, want %v", err, sentinel)
	}
	if calls != 2 {
		t.Fatalf("fn called %d times, want 2 (stopping at mhsd)", calls)
	}
}

func TestMutableWalkerInsertRemove(t *testing.T) {
	list := &rpodlib.List{MagicTag: rpodlib.MagicTrackList}
	var w MutableWalker

	track := &rpodlib.TrackItem{UniqueID: 42}
	if err := w.InsertChild(list, 0, track); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}
	if len(list.Entries) != 1 {
		t.Fatalf("want 1 entry after insert, got %d", len(list.Entries))
	}

	if err := w.RemoveChild(list, 0); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if len(list.Entries) != 0 {
		t.Fatalf("want 0 entries after remove, got %d", len(list.Entries))
	}
}

func TestMutableWalkerInsertOutOfRange(t *testing.T) {
	list := &rpodlib.List{MagicTag: rpodlib.MagicTrackList}
	var w MutableWalker
	if err := w.InsertChild(list, 5, &rpodlib.TrackItem{}); err == nil {
		t.Fatalf("expected an error inserting at an out-of-range index")
	}
}
