package layout

import (
	"testing"

	"boardlens.ai/internal/game/cards"
	"boardlens.ai/internal/scan/geom"
)

func testCatalog() *cards.Catalog {
	return &cards.Catalog{ByID: map[string]*cards.Def{
		"lodge": {ID: "lodge", Tags: []string{cards.AnchorTag, "building"}, Type: "building"},
		"fox":   {ID: "fox", Tags: []string{"critter"}, Type: "critter"},
	}}
}

func TestResolve(t *testing.T) {
	cat := testCatalog()
	dets := []Detection{
		{Label: "lodge:a1", Box: geom.NewBox(0, 0, 10, 14)},
		{Label: "fox:b2", Box: geom.NewBox(20, 0, 30, 14)},
		{Label: "nolabel", Box: geom.NewBox(40, 0, 50, 14)},
		{Label: "ghost:c3", Box: geom.NewBox(60, 0, 70, 14)},
	}

	got := Resolve(dets, cat)
	if len(got) != 3 {
		t.Fatalf("instances: got %d want 3 (separator-less label must drop)", len(got))
	}
	if got[0].EntityID != "lodge" || got[0].Symbol != "a1" {
		t.Fatalf("parse: got %q %q", got[0].EntityID, got[0].Symbol)
	}
	if got[0].Def == nil || got[1].Def == nil {
		t.Fatalf("known ids must resolve definitions")
	}
	if got[2].EntityID != "ghost" || got[2].Def != nil {
		t.Fatalf("unknown id: got def %+v", got[2].Def)
	}
}

func TestResolve_SymbolKeepsLaterSeparators(t *testing.T) {
	cat := testCatalog()
	got := Resolve([]Detection{{Label: "fox:x:y", Box: geom.NewBox(0, 0, 1, 1)}}, cat)
	if len(got) != 1 || got[0].EntityID != "fox" || got[0].Symbol != "x:y" {
		t.Fatalf("split at first separator only: got %+v", got)
	}
}
