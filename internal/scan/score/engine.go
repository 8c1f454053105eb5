package score

import (
	"strings"

	"boardlens.ai/internal/game/cards"
)

// scoreInstance maps one instance's rule and match count to points plus the
// explanation shown next to the card. The wording comes from the phrase
// table and is pinned by the fixture tests.
func (s *Scorer) scoreInstance(ev *evaluator, p *playerState, self int) (int, string) {
	inst := &p.forest.Instances[self]
	if inst.Def == nil || inst.Def.Rule == nil {
		return 0, s.phrases.Get("score.no_effect")
	}
	rule := inst.Def.Rule

	count := 0
	if rule.Cond != nil {
		count = ev.countMatches(p, self, rule.Cond, rule, inst.Def.ID)
	}

	switch rule.Kind {
	case cards.RuleFixed:
		if rule.Cond == nil {
			return rule.Amount, s.phrases.Format("score.fixed_plain", rule.Amount)
		}
		need := rule.MinMatches()
		if count >= need {
			return rule.Amount, s.phrases.Format("score.fixed", rule.Amount, s.describe(rule.Cond))
		}
		return 0, s.phrases.Format("score.not_met", need, s.describe(rule.Cond))

	case cards.RuleMultiplication:
		if rule.Cond == nil {
			return 0, s.phrases.Get("score.no_effect")
		}
		eff := count
		if rule.HasMin && count < rule.Min {
			eff = 0
		}
		pts := rule.Amount * eff
		return pts, s.phrases.Format("score.mult", pts, rule.Amount, eff, s.describe(rule.Cond))

	case cards.RuleTable:
		if rule.Cond == nil {
			return 0, s.phrases.Get("score.no_effect")
		}
		idx := count - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(rule.Table) {
			idx = len(rule.Table) - 1
		}
		pts := rule.Table[idx]
		return pts, s.phrases.Format("score.table", pts, count, s.describe(rule.Cond))
	}
	return 0, s.phrases.Get("score.no_effect")
}

// describe renders a condition's target and scope for explanation strings:
// modifier prefixes, the id or tag list, then the scope suffix.
func (s *Scorer) describe(cond *cards.Condition) string {
	if cond.FullTree {
		return s.phrases.Get("desc.full_structure")
	}

	var b strings.Builder
	if cond.Unique {
		b.WriteString(s.phrases.Get("mod.unique"))
	}
	if cond.Most {
		b.WriteString(s.phrases.Get("mod.most"))
	}

	switch {
	case len(cond.Names) > 0:
		b.WriteString(strings.Join(cond.Names, "/"))
	case len(cond.Tags) > 0:
		b.WriteString(strings.Join(cond.Tags, "/"))
	case cond.Type != "":
		b.WriteString(cond.Type)
	default:
		b.WriteString(s.phrases.Get("desc.any"))
	}

	switch {
	case cond.SameTree:
		b.WriteString(s.phrases.Get("scope.same_structure"))
	case cond.SameSpot:
		b.WriteString(s.phrases.Get("scope.same_spot"))
	case cond.Position == "below":
		b.WriteString(s.phrases.Get("scope.below"))
	}
	if cond.SameTreeSymbol {
		b.WriteString(s.phrases.Get("scope.same_symbol"))
	}
	return b.String()
}
