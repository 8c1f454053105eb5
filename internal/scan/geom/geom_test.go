package geom

import "testing"

func TestOverlapAxis(t *testing.T) {
	a := NewBox(0, 0, 10, 4)
	b := NewBox(6, 2, 16, 6)

	if got := OverlapAxis(a, b, AxisX); got != 4 {
		t.Fatalf("x overlap: got %v want 4", got)
	}
	if got := OverlapAxis(a, b, AxisY); got != 2 {
		t.Fatalf("y overlap: got %v want 2", got)
	}
}

func TestOverlapAxis_DisjointFloorsAtZero(t *testing.T) {
	a := NewBox(0, 0, 1, 1)
	b := NewBox(5, 5, 6, 6)

	if got := OverlapAxis(a, b, AxisX); got != 0 {
		t.Fatalf("disjoint x: got %v want 0", got)
	}
	if got := OverlapAxis(b, a, AxisY); got != 0 {
		t.Fatalf("disjoint y: got %v want 0", got)
	}
}

func TestOverlapAxis_Touching(t *testing.T) {
	a := NewBox(0, 0, 1, 1)
	b := NewBox(1, 0, 2, 1)
	if got := OverlapAxis(a, b, AxisX); got != 0 {
		t.Fatalf("touching edges: got %v want 0", got)
	}
}

func TestNewBox_Derived(t *testing.T) {
	b := NewBox(1, 2, 5, 10)
	if b.CX != 3 || b.CY != 6 {
		t.Fatalf("center: got (%v,%v)", b.CX, b.CY)
	}
	if b.W != 4 || b.H != 8 {
		t.Fatalf("size: got (%v,%v)", b.W, b.H)
	}
}
