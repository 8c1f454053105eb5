package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_KnownPhrases(t *testing.T) {
	tab := Default()
	if got := tab.Get("score.no_effect"); got != "no effect" {
		t.Fatalf("no_effect: %q", got)
	}
	if got := tab.Format("group.structure", 3); got != "Structure 3" {
		t.Fatalf("group: %q", got)
	}
	if got := tab.Format("score.mult", 12, 3, 4, "critters"); got != "12 points (3 × 4 critters)" {
		t.Fatalf("mult: %q", got)
	}
}

func writeLocale(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "de.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_OverlaysOnDefaults(t *testing.T) {
	tab, err := Load(writeLocale(t, "score.no_effect: kein Effekt\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := tab.Get("score.no_effect"); got != "kein Effekt" {
		t.Fatalf("override: %q", got)
	}
	// everything else keeps the default wording
	if got := tab.Format("group.structure", 1); got != "Structure 1" {
		t.Fatalf("fallthrough: %q", got)
	}
}

func TestLoad_RejectsUnknownKey(t *testing.T) {
	if _, err := Load(writeLocale(t, "score.no_efect: typo\n")); err == nil {
		t.Fatalf("unknown key must fail")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file must fail")
	}
}
