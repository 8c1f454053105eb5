package layout

import (
	"testing"

	"boardlens.ai/internal/scan/geom"
)

func TestSequence_ReadingOrderRows(t *testing.T) {
	insts := []Instance{
		anchorAt(200, 102), // same row as the next one, further right
		anchorAt(0, 100),
		anchorAt(0, 200), // second row
	}
	f := Build(insts)
	got := f.Sequence()

	wantIdx := []int{1, 0, 2}
	wantGroup := []int{1, 2, 3}
	if len(got) != 3 {
		t.Fatalf("entries: got %d want 3", len(got))
	}
	for i := range got {
		if got[i].Idx != wantIdx[i] || got[i].Group != wantGroup[i] {
			t.Fatalf("entry %d: got (%d,%d) want (%d,%d)", i, got[i].Idx, got[i].Group, wantIdx[i], wantGroup[i])
		}
	}
}

func TestSequence_TreeTraversalOrder(t *testing.T) {
	insts := []Instance{
		anchorAt(100, 100),
		leafAt(111, 100), // right
		leafAt(100, 115), // bottom
		leafAt(100, 85),  // top
		leafAt(89, 100),  // left
	}
	f := Build(insts)
	got := f.Sequence()

	// Anchor, then top, left, right, bottom.
	want := []int{0, 3, 4, 1, 2}
	for i := range want {
		if got[i].Idx != want[i] {
			t.Fatalf("position %d: got %d want %d", i, got[i].Idx, want[i])
		}
		if got[i].Group != 1 {
			t.Fatalf("position %d: group %d want 1", i, got[i].Group)
		}
	}
}

func TestSequence_SideSortNearestFirst(t *testing.T) {
	insts := []Instance{
		anchorAt(100, 100),
		leafAt(111, 100), // gap 1
		leafAt(122, 100), // chained, gap 12 from the anchor
		leafAt(133, 100),
	}
	f := Build(insts)
	got := f.Sequence()
	want := []int{0, 1, 2, 3}
	for i := range want {
		if got[i].Idx != want[i] {
			t.Fatalf("position %d: got %d want %d", i, got[i].Idx, want[i])
		}
	}
}

func TestSequence_UnattachedLastWithoutGroup(t *testing.T) {
	insts := []Instance{
		leafAt(500, 500), // unattached, listed first in input
		anchorAt(100, 100),
		leafAt(111, 100),
	}
	f := Build(insts)
	got := f.Sequence()

	if len(got) != 3 {
		t.Fatalf("entries: got %d", len(got))
	}
	if got[0].Idx != 1 || got[1].Idx != 2 {
		t.Fatalf("tree members first: got %v", got)
	}
	if got[2].Idx != 0 || got[2].Group != 0 {
		t.Fatalf("unattached must come last with no group: got %+v", got[2])
	}
}

func TestSequence_NoAnchorsKeepsInputOrder(t *testing.T) {
	insts := []Instance{leafAt(50, 0), leafAt(0, 0), leafAt(25, 0)}
	// Spread apart so nothing clusters.
	insts[0].Box = geom.NewBox(100, 0, 110, 14)
	insts[2].Box = geom.NewBox(200, 0, 210, 14)
	f := Build(insts)
	got := f.Sequence()
	for i := range insts {
		if got[i].Idx != i || got[i].Group != 0 {
			t.Fatalf("entry %d: got %+v", i, got[i])
		}
	}
}
