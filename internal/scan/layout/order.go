package layout

import "sort"

// Ordered pairs an arena index with its structure group in reading order.
// Group is 1-based; 0 means the instance is unattached.
type Ordered struct {
	Idx   int
	Group int
}

// Sequence emits every instance exactly once in display order: trees in
// reading order (rows top to bottom, left to right within a row), and within
// a tree the anchor followed by its top, left, right and bottom attachments.
// Unattached instances come last, in input order.
func (f *Forest) Sequence() []Ordered {
	out := make([]Ordered, 0, len(f.Instances))

	order := f.treeReadingOrder()
	for rank, t := range order {
		group := rank + 1
		tree := &f.Trees[t]
		out = append(out, Ordered{Idx: tree.Anchor, Group: group})
		for _, s := range []Side{SideTop, SideLeft, SideRight, SideBottom} {
			for _, i := range f.sortSide(tree, s) {
				out = append(out, Ordered{Idx: i, Group: group})
			}
		}
	}
	for i := range f.Instances {
		if f.place[i].tree < 0 {
			out = append(out, Ordered{Idx: i})
		}
	}
	return out
}

// treeReadingOrder sorts trees row-then-column. Two trees share a row when
// their anchors' top edges differ by less than half the average anchor
// height.
func (f *Forest) treeReadingOrder() []int {
	n := len(f.Trees)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if n == 0 {
		return order
	}

	avgH := 0.0
	for t := range f.Trees {
		avgH += f.Instances[f.Trees[t].Anchor].Box.H
	}
	avgH /= float64(n)

	top := func(t int) float64 { return f.Instances[f.Trees[t].Anchor].Box.Y1 }
	left := func(t int) float64 { return f.Instances[f.Trees[t].Anchor].Box.X1 }

	sort.SliceStable(order, func(a, b int) bool { return top(order[a]) < top(order[b]) })

	// Assign row numbers walking down the sorted list, then sort rows
	// left-to-right.
	row := make(map[int]int, n)
	rowRef, curRow := top(order[0]), 0
	for _, t := range order {
		if top(t)-rowRef >= avgH/2 {
			curRow++
			rowRef = top(t)
		}
		row[t] = curRow
	}
	sort.SliceStable(order, func(a, b int) bool {
		ta, tb := order[a], order[b]
		if row[ta] != row[tb] {
			return row[ta] < row[tb]
		}
		return left(ta) < left(tb)
	})
	return order
}

// sortSide orders one attachment list nearest-the-anchor first with an
// axis-appropriate secondary key. Attachments that fail the geometric
// re-check (pulled in by chain expansion past the anchor's own extent) keep
// their attachment order and follow the sorted ones.
func (f *Forest) sortSide(tree *Tree, s Side) []int {
	anchor := f.Instances[tree.Anchor].Box
	members := tree.Sides[s]

	var pass, fail []int
	for _, i := range members {
		b := f.Instances[i].Box
		onSide := false
		switch s {
		case SideTop:
			onSide = b.CY < anchor.CY
		case SideBottom:
			onSide = b.CY > anchor.CY
		case SideLeft:
			onSide = b.CX < anchor.CX
		case SideRight:
			onSide = b.CX > anchor.CX
		}
		if onSide {
			pass = append(pass, i)
		} else {
			fail = append(fail, i)
		}
	}

	dist := func(i int) float64 {
		b := f.Instances[i].Box
		switch s {
		case SideTop:
			return anchor.Y1 - b.Y2
		case SideBottom:
			return b.Y1 - anchor.Y2
		case SideLeft:
			return anchor.X1 - b.X2
		default:
			return b.X1 - anchor.X2
		}
	}
	second := func(i int) float64 {
		b := f.Instances[i].Box
		if s == SideTop || s == SideBottom {
			return b.X1
		}
		return b.Y1
	}
	sort.SliceStable(pass, func(a, b int) bool {
		da, db := dist(pass[a]), dist(pass[b])
		if da != db {
			return da < db
		}
		return second(pass[a]) < second(pass[b])
	})
	return append(pass, fail...)
}
