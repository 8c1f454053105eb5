// Package layout reconstructs a player's board from detected card boxes: it
// resolves labels into typed instances, clusters them into anchor structures
// with four directional attachment lists, and orders the result for display.
package layout

import (
	"strings"

	"boardlens.ai/internal/game/cards"
	"boardlens.ai/internal/scan/geom"
)

type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "?"
}

// Detection is one detected card as handed over by the recognizer: an opaque
// "<entityId>:<attachmentSymbol>" label and its bounding box.
type Detection struct {
	Label string
	Box   geom.Box
}

// Instance is one resolved card. Identity is the index into the forest's
// arena; it stays stable across build, score and ordering.
type Instance struct {
	Label    string
	Box      geom.Box
	EntityID string
	Symbol   string
	Def      *cards.Def // nil when the entity id is unknown
}

// Resolve parses detections into instances. A label without a separator is
// not an error: that detection is silently dropped. Unknown entity ids still
// resolve, just with a nil definition.
func Resolve(dets []Detection, cat *cards.Catalog) []Instance {
	out := make([]Instance, 0, len(dets))
	for _, d := range dets {
		id, sym, ok := strings.Cut(d.Label, ":")
		if !ok {
			continue
		}
		out = append(out, Instance{
			Label:    d.Label,
			Box:      d.Box,
			EntityID: id,
			Symbol:   sym,
			Def:      cat.Lookup(id),
		})
	}
	return out
}

func (in *Instance) isAnchor() bool {
	return in.Def != nil && in.Def.HasTag(cards.AnchorTag)
}
