// Package i18n holds the phrase table the score engine builds its explanation
// strings from. The English table is compiled in and is the wording contract
// the fixture tests pin down; a locale yaml file may override individual
// phrases.
package i18n

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var english = map[string]string{
	"score.no_effect":   "no effect",
	"score.fixed_plain": "%d points",
	"score.fixed":       "%d points (%s)",
	"score.not_met":     "0 points (condition not met: needs %d %s)",
	"score.mult":        "%d points (%d × %d %s)",
	"score.table":       "%d points (%d %s)",

	"desc.any":            "matching cards",
	"desc.full_structure": "complete structure",
	"mod.unique":          "distinct ",
	"mod.most":            "most ",
	"scope.same_structure": " in this structure",
	"scope.same_spot":      " on this side",
	"scope.same_symbol":    " with this symbol",
	"scope.below":          " below",

	"group.structure": "Structure %d",
}

type Table struct {
	phrases map[string]string
}

// Default returns the compiled-in English table.
func Default() *Table {
	return &Table{phrases: english}
}

// Load reads a locale yaml file of key: phrase pairs and layers it over the
// defaults. Unknown keys are rejected so a typo in a locale file fails at
// startup instead of silently falling back.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var over map[string]string
	if err := yaml.Unmarshal(raw, &over); err != nil {
		return nil, fmt.Errorf("locale %s: %w", path, err)
	}
	merged := make(map[string]string, len(english))
	for k, v := range english {
		merged[k] = v
	}
	for k, v := range over {
		if _, ok := english[k]; !ok {
			return nil, fmt.Errorf("locale %s: unknown phrase key %q", path, k)
		}
		merged[k] = v
	}
	return &Table{phrases: merged}, nil
}

func (t *Table) Get(key string) string {
	return t.phrases[key]
}

func (t *Table) Format(key string, args ...any) string {
	return fmt.Sprintf(t.phrases[key], args...)
}
