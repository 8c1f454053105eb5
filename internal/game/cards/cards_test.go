package cards

import (
	"os"
	"path/filepath"
	"testing"
)

const schemaPath = "../../../schemas/cards.schema.json"

func TestLoad_PackagedCatalog(t *testing.T) {
	cat, err := Load("../../../configs/cards.json", schemaPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.ByID) == 0 || cat.Digest == "" {
		t.Fatalf("catalog: %d defs digest=%q", len(cat.ByID), cat.Digest)
	}

	if !cat.IsAnchor("lodge") {
		t.Fatalf("lodge must be an anchor")
	}
	if cat.IsAnchor("fox") {
		t.Fatalf("fox must not be an anchor")
	}
	if cat.IsAnchor("nope") {
		t.Fatalf("unknown ids are never anchors")
	}

	fox := cat.Lookup("fox")
	if fox == nil || fox.Rule == nil || fox.Rule.Kind != RuleTable {
		t.Fatalf("fox rule: %+v", fox)
	}
	if len(fox.Rule.Table) != 4 || fox.Rule.Table[3] != 10 {
		t.Fatalf("fox table: %v", fox.Rule.Table)
	}

	wisp := cat.Lookup("wisp")
	if wisp == nil || wisp.Joker != "critter" {
		t.Fatalf("wisp joker: %+v", wisp)
	}
	if grove := cat.Lookup("grove"); grove.Rule.Kind != RuleMultiplication || grove.Rule.Amount != 3 {
		t.Fatalf("grove rule: %+v", grove.Rule)
	}
}

func writeTemp(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cards.json")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_RejectsSchemaViolation(t *testing.T) {
	p := writeTemp(t, `[{"id":"x","score":{"type":"bogus","amount":1}}]`)
	if _, err := Load(p, schemaPath); err == nil {
		t.Fatalf("unknown score type must fail")
	}
}

func TestLoad_RejectsDuplicateIDs(t *testing.T) {
	p := writeTemp(t, `[{"id":"x"},{"id":"x"}]`)
	if _, err := Load(p, schemaPath); err == nil {
		t.Fatalf("duplicate ids must fail")
	}
}

func TestLoad_AmountShapes(t *testing.T) {
	p := writeTemp(t, `[
	  {"id":"a","score":{"type":"fixed","amount":7}},
	  {"id":"b","score":{"type":"table","amount":[2,4],"condition":{"tag":["t"]}}}
	]`)
	cat, err := Load(p, schemaPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if a := cat.Lookup("a"); a.Rule.Kind != RuleFixed || a.Rule.Amount != 7 {
		t.Fatalf("scalar amount: %+v", a.Rule)
	}
	if b := cat.Lookup("b"); b.Rule.Kind != RuleTable || len(b.Rule.Table) != 2 {
		t.Fatalf("table amount: %+v", b.Rule)
	}
}

func TestScoreRule_MinMatchesDefaultsToOne(t *testing.T) {
	r := &ScoreRule{Kind: RuleFixed, Amount: 1}
	if r.MinMatches() != 1 {
		t.Fatalf("default min: got %d", r.MinMatches())
	}
	r.Min, r.HasMin = 3, true
	if r.MinMatches() != 3 {
		t.Fatalf("explicit min: got %d", r.MinMatches())
	}
}
