package layout

import (
	"boardlens.ai/internal/scan/geom"
)

// Tree is one anchor card plus up to four attachment lists. Members are arena
// indices into the owning Forest.
type Tree struct {
	Anchor int
	Sides  [4][]int
}

// Full reports whether every side holds at least one attachment.
func (t *Tree) Full() bool {
	for s := range t.Sides {
		if len(t.Sides[s]) == 0 {
			return false
		}
	}
	return true
}

// Forest is one player's reconstructed board: the instance arena, the trees
// built from it, and the inverse placement index. Instances not reachable
// from any tree stay in the arena as unattached; they are never dropped.
type Forest struct {
	Instances []Instance
	Trees     []Tree

	place []placement // parallel to Instances
}

type placement struct {
	tree   int // -1 when unattached
	side   Side
	anchor bool
}

// OwnerTree returns the index of the tree the instance belongs to (as anchor
// or attachment), or -1.
func (f *Forest) OwnerTree(i int) int {
	return f.place[i].tree
}

// OwnerSide returns the side the instance is attached on. ok is false for
// anchors and unattached instances.
func (f *Forest) OwnerSide(i int) (Side, bool) {
	p := f.place[i]
	if p.tree < 0 || p.anchor {
		return 0, false
	}
	return p.side, true
}

func (f *Forest) IsAnchor(i int) bool {
	return f.place[i].anchor
}

// sideCandidate checks whether box b qualifies as a neighbor of base on the
// given side. Phase 1 requires b's center to sit on the correct side of
// base's center; phase 2 chains only require the near edges to touch, which
// the gap tolerance check already enforces.
func sideCandidate(b, base geom.Box, side Side, checkCenter bool) (gap, perp float64, ok bool) {
	vertical := side == SideTop || side == SideBottom

	var minPerp float64
	if vertical {
		perp = geom.OverlapAxis(b, base, geom.AxisX)
		minPerp = minf(b.W, base.W)
	} else {
		perp = geom.OverlapAxis(b, base, geom.AxisY)
		minPerp = minf(b.H, base.H)
	}
	if perp < geom.MinPerpOverlapRatio*minPerp {
		return 0, 0, false
	}

	switch side {
	case SideTop:
		gap = base.Y1 - b.Y2
	case SideBottom:
		gap = b.Y1 - base.Y2
	case SideLeft:
		gap = base.X1 - b.X2
	case SideRight:
		gap = b.X1 - base.X2
	}
	if gap < -geom.SideOverlapTolerance {
		return 0, 0, false
	}
	if gap < 0 {
		gap = 0
	}

	if checkCenter {
		switch side {
		case SideTop:
			ok = b.CY < base.CY
		case SideBottom:
			ok = b.CY > base.CY
		case SideLeft:
			ok = b.CX < base.CX
		case SideRight:
			ok = b.CX > base.CX
		}
		if !ok {
			return 0, 0, false
		}
	}

	var maxSize float64
	if vertical {
		maxSize = maxf(b.H, base.H)
	} else {
		maxSize = maxf(b.W, base.W)
	}
	if gap > geom.MaxSideGapRatio*maxSize {
		return 0, 0, false
	}
	return gap, perp, true
}

// Build clusters the instances into trees. Phase 1 attaches each non-anchor
// to the nearest qualifying anchor side; phase 2 grows each side outward into
// a chain, pulling in still-unattached instances adjacent to any box already
// in the chain.
func Build(instances []Instance) *Forest {
	f := &Forest{
		Instances: instances,
		place:     make([]placement, len(instances)),
	}
	for i := range f.place {
		f.place[i].tree = -1
	}

	for i := range instances {
		if instances[i].isAnchor() {
			f.place[i] = placement{tree: len(f.Trees), anchor: true}
			f.Trees = append(f.Trees, Tree{Anchor: i})
		}
	}

	// Phase 1: direct placement against tree anchors.
	for i := range instances {
		if instances[i].isAnchor() {
			continue
		}
		bestTree, bestSide := -1, SideTop
		bestGap, bestPerp := 0.0, 0.0
		for t := range f.Trees {
			anchorBox := instances[f.Trees[t].Anchor].Box
			for s := SideTop; s <= SideRight; s++ {
				gap, perp, ok := sideCandidate(instances[i].Box, anchorBox, s, true)
				if !ok {
					continue
				}
				if bestTree < 0 || gap < bestGap || (gap == bestGap && perp > bestPerp) {
					bestTree, bestSide, bestGap, bestPerp = t, s, gap, perp
				}
			}
		}
		if bestTree >= 0 {
			f.attach(i, bestTree, bestSide)
		}
	}

	// Phase 2: chain expansion along each side.
	for t := range f.Trees {
		for s := SideTop; s <= SideRight; s++ {
			f.expandSide(t, s)
		}
	}
	return f
}

func (f *Forest) attach(i, tree int, side Side) {
	f.Trees[tree].Sides[side] = append(f.Trees[tree].Sides[side], i)
	f.place[i] = placement{tree: tree, side: side}
}

// expandSide repeatedly scans the unattached pool for instances directly
// adjacent to any box already in the side's chain. Each round attaches every
// qualifier within AdjacentEpsilon of the round's minimum distance, then the
// chain grows and the scan restarts.
func (f *Forest) expandSide(tree int, side Side) {
	chain := []geom.Box{f.Instances[f.Trees[tree].Anchor].Box}
	for _, m := range f.Trees[tree].Sides[side] {
		chain = append(chain, f.Instances[m].Box)
	}

	for {
		type hit struct {
			idx int
			gap float64
		}
		var hits []hit
		minGap := 0.0
		for i := range f.Instances {
			if f.place[i].tree >= 0 {
				continue
			}
			best, found := 0.0, false
			for _, base := range chain {
				gap, _, ok := sideCandidate(f.Instances[i].Box, base, side, false)
				if !ok {
					continue
				}
				if !found || gap < best {
					best, found = gap, true
				}
			}
			if !found {
				continue
			}
			if len(hits) == 0 || best < minGap {
				minGap = best
			}
			hits = append(hits, hit{idx: i, gap: best})
		}
		if len(hits) == 0 {
			return
		}
		grew := false
		for _, h := range hits {
			if h.gap <= minGap+geom.AdjacentEpsilon {
				f.attach(h.idx, tree, side)
				chain = append(chain, f.Instances[h.idx].Box)
				grew = true
			}
		}
		if !grew {
			return
		}
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
