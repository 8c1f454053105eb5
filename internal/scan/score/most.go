package score

import "boardlens.ai/internal/game/cards"

// mostCache resolves cross-player "most" races. For every distinct condition
// key it computes each player's match count over that player's whole layout
// (never a tree/spot/positional scope) and remembers the set of players at
// the maximum. Built fresh inside every Score call.
type mostCache struct {
	players []*playerState
	entries map[string]mostEntry
}

type mostEntry struct {
	max     int
	winners map[int]bool
}

func newMostCache(players []*playerState) *mostCache {
	return &mostCache{players: players, entries: map[string]mostEntry{}}
}

func (m *mostCache) isWinner(cond *cards.Condition, player int) bool {
	key := cond.MostKey()
	e, ok := m.entries[key]
	if !ok {
		e = m.compute(cond)
		m.entries[key] = e
	}
	return e.winners[player]
}

func (m *mostCache) compute(cond *cards.Condition) mostEntry {
	// The whole-layout pool has no self instance, so the same-symbol
	// qualifier cannot bind here; it still distinguishes the cache key.
	flat := *cond
	flat.SameTreeSymbol = false

	e := mostEntry{winners: map[int]bool{}}
	counts := make([]int, len(m.players))
	for pi, p := range m.players {
		var matches []int
		for i := range p.forest.Instances {
			if matchesCond(&p.forest.Instances[i], "", &flat) {
				matches = append(matches, i)
			}
		}
		if cond.Unique {
			counts[pi] = distinctNonJoker(p.forest, matches, &flat)
		} else {
			counts[pi] = len(matches)
		}
		if counts[pi] > e.max {
			e.max = counts[pi]
		}
	}
	if e.max == 0 {
		return e
	}
	for pi, c := range counts {
		if c == e.max {
			e.winners[pi] = true
		}
	}
	return e
}
