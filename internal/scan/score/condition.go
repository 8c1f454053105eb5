package score

import (
	"boardlens.ai/internal/game/cards"
	"boardlens.ai/internal/scan/geom"
	"boardlens.ai/internal/scan/layout"
)

// evaluator carries the per-player scoring state for one Score call: the
// shared most cache and this player's table-dedup groupings, keyed by
// definition id.
type evaluator struct {
	players []*playerState
	most    *mostCache
	dedupe  map[string]*dedupeBins
}

// countMatches resolves a condition for one instance into a match count.
func (ev *evaluator) countMatches(p *playerState, self int, cond *cards.Condition, rule *cards.ScoreRule, defID string) int {
	if cond.Most && !ev.most.isWinner(cond, p.index) {
		return 0
	}

	if cond.FullTree {
		t := p.forest.OwnerTree(self)
		if t >= 0 && p.forest.Trees[t].Full() {
			return 1
		}
		return 0
	}

	pool := poolFor(p.forest, self, cond)
	selfInst := &p.forest.Instances[self]
	var matches []int
	for _, i := range pool {
		if matchesCond(&p.forest.Instances[i], selfInst.Symbol, cond) {
			matches = append(matches, i)
		}
	}

	if cond.Unique && rule != nil && rule.Kind == cards.RuleTable {
		return ev.tableDedup(p, defID, self, matches)
	}
	if cond.Unique {
		return distinctNonJoker(p.forest, matches, cond)
	}
	return len(matches)
}

// poolFor picks the candidate instances a condition's filters run against.
func poolFor(f *layout.Forest, self int, cond *cards.Condition) []int {
	switch {
	case cond.SameTree:
		t := f.OwnerTree(self)
		if t < 0 {
			return nil
		}
		tree := &f.Trees[t]
		var pool []int
		for s := range tree.Sides {
			pool = append(pool, tree.Sides[s]...)
		}
		if tree.Anchor != self {
			pool = append(pool, tree.Anchor)
		}
		return pool

	case cond.SameSpot:
		t := f.OwnerTree(self)
		side, ok := f.OwnerSide(self)
		if t < 0 || !ok {
			return nil
		}
		return f.Trees[t].Sides[side]

	case cond.Position == "below":
		selfBox := f.Instances[self].Box
		var pool []int
		for i := range f.Instances {
			b := f.Instances[i].Box
			if b.Y1 >= selfBox.Y2 && geom.OverlapAxis(b, selfBox, geom.AxisX) > 0 {
				pool = append(pool, i)
			}
		}
		return pool

	default:
		pool := make([]int, len(f.Instances))
		for i := range pool {
			pool[i] = i
		}
		return pool
	}
}

// matchesCond applies the condition's filters to one instance. A joker whose
// declared type equals the condition's type matches unconditionally; anything
// else must satisfy every filter that is set.
func matchesCond(inst *layout.Instance, selfSymbol string, cond *cards.Condition) bool {
	if isJokerMatch(inst, cond) {
		return true
	}
	if len(cond.Names) > 0 && !containsStr(cond.Names, inst.EntityID) {
		return false
	}
	if len(cond.Tags) > 0 {
		if inst.Def == nil || !anyTag(inst.Def, cond.Tags) {
			return false
		}
	}
	if cond.Type != "" {
		if inst.Def == nil || inst.Def.Type != cond.Type {
			return false
		}
	}
	if cond.SameTreeSymbol && inst.Symbol != selfSymbol {
		return false
	}
	return true
}

func isJokerMatch(inst *layout.Instance, cond *cards.Condition) bool {
	return inst.Def != nil && inst.Def.Joker != "" && cond.Type != "" && inst.Def.Joker == cond.Type
}

func distinctNonJoker(f *layout.Forest, matches []int, cond *cards.Condition) int {
	seen := map[string]bool{}
	for _, i := range matches {
		inst := &f.Instances[i]
		if isJokerMatch(inst, cond) {
			continue
		}
		seen[inst.EntityID] = true
	}
	return len(seen)
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func anyTag(d *cards.Def, tags []string) bool {
	for _, t := range tags {
		if d.HasTag(t) {
			return true
		}
	}
	return false
}
