package score

// Table dedup: the uniqueness-counting variant used by table rules. Matches
// are packed first-fit into bins such that no bin holds two instances sharing
// an entity id; an instance's count is the size of the largest bin other than
// its own. The own-bin exclusion is part of the scoring contract and the
// tests pin it down.

import "boardlens.ai/internal/scan/layout"

type dedupeBins struct {
	bins  [][]int
	binOf map[int]int
}

// tableDedup computes (once per definition family and player) the bin packing
// of that family's matches, then answers for the given instance. Later
// instances of the same family reuse the first grouping; that lazy sharing is
// part of the contract.
func (ev *evaluator) tableDedup(p *playerState, defID string, self int, matches []int) int {
	b := ev.dedupe[defID]
	if b == nil {
		b = packBins(p.forest, matches)
		ev.dedupe[defID] = b
	}

	own, found := b.binOf[self]
	if !found {
		if len(b.bins) == 0 {
			return 0
		}
		return len(b.bins[0])
	}
	if own == 0 {
		if len(b.bins) < 2 {
			return 0
		}
		return len(b.bins[1])
	}
	return len(b.bins[0])
}

// packBins places each match, in match order, into the first bin not already
// holding its entity id. Bin sizes are non-increasing by construction.
func packBins(f *layout.Forest, matches []int) *dedupeBins {
	b := &dedupeBins{binOf: map[int]int{}}
	type idSet = map[string]bool
	var ids []idSet
	for _, m := range matches {
		id := f.Instances[m].EntityID
		placed := false
		for bi := range b.bins {
			if !ids[bi][id] {
				b.bins[bi] = append(b.bins[bi], m)
				ids[bi][id] = true
				b.binOf[m] = bi
				placed = true
				break
			}
		}
		if !placed {
			b.bins = append(b.bins, []int{m})
			ids = append(ids, idSet{id: true})
			b.binOf[m] = len(b.bins) - 1
		}
	}
	return b
}
