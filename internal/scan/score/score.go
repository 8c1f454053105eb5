// Package score evaluates card score rules against reconstructed board
// layouts. One Score call is fully deterministic given its input and shares
// no state with any other call: the cross-player "most" cache and the table
// dedup groupings live in a per-call context and die with it.
package score

import (
	"boardlens.ai/internal/game/cards"
	"boardlens.ai/internal/i18n"
	"boardlens.ai/internal/protocol"
	"boardlens.ai/internal/scan/geom"
	"boardlens.ai/internal/scan/layout"
)

type Scorer struct {
	cat     *cards.Catalog
	phrases *i18n.Table
}

func NewScorer(cat *cards.Catalog, phrases *i18n.Table) *Scorer {
	if phrases == nil {
		phrases = i18n.Default()
	}
	return &Scorer{cat: cat, phrases: phrases}
}

// playerState is one player's layout plus its position in the run.
type playerState struct {
	index  int
	name   string
	forest *layout.Forest
}

// Score runs the whole pipeline: build every player's forest, then score
// every player against the shared most cache, then sequence each player's
// cards for display. The two passes are load-bearing: a later player's
// layout can decide an earlier player's "most" points, so no player's result
// is final until all forests exist.
func (s *Scorer) Score(req *protocol.ScanRequest) *protocol.ScanResult {
	players := make([]*playerState, len(req.Players))
	for pi, rp := range req.Players {
		dets := make([]layout.Detection, len(rp.Cards))
		for ci, c := range rp.Cards {
			dets[ci] = layout.Detection{
				Label: c.Label,
				Box:   geom.NewBox(c.Box.X1, c.Box.Y1, c.Box.X2, c.Box.Y2),
			}
		}
		players[pi] = &playerState{
			index:  pi,
			name:   rp.Name,
			forest: layout.Build(layout.Resolve(dets, s.cat)),
		}
	}

	most := newMostCache(players)

	out := &protocol.ScanResult{
		Type:          protocol.TypeResult,
		CatalogDigest: s.cat.Digest,
		Players:       make([]protocol.PlayerScore, len(players)),
	}
	for pi, p := range players {
		ev := &evaluator{players: players, most: most, dedupe: map[string]*dedupeBins{}}

		points := make([]int, len(p.forest.Instances))
		reasons := make([]string, len(p.forest.Instances))
		for i := range p.forest.Instances {
			points[i], reasons[i] = s.scoreInstance(ev, p, i)
		}

		ps := protocol.PlayerScore{Name: p.name}
		for _, o := range p.forest.Sequence() {
			inst := &p.forest.Instances[o.Idx]
			entry := protocol.CardScore{
				Label:  inst.Label,
				Title:  inst.EntityID,
				Points: points[o.Idx],
				Reason: reasons[o.Idx],
			}
			if o.Group > 0 {
				entry.Group = s.phrases.Format("group.structure", o.Group)
			}
			ps.Cards = append(ps.Cards, entry)
			ps.Total += points[o.Idx]
		}
		out.Players[pi] = ps
	}
	return out
}
