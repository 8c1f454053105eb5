// Package cards loads the static card-definition catalog. The catalog is read
// once at startup and is immutable for the life of the process; a malformed
// document is a fatal setup error, not something scoring recovers from.
package cards

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// AnchorTag marks entity ids whose cards root a structure on the board.
const AnchorTag = "structure"

type RuleKind int

const (
	RuleFixed RuleKind = iota + 1
	RuleMultiplication
	RuleTable
)

func (k RuleKind) String() string {
	switch k {
	case RuleFixed:
		return "fixed"
	case RuleMultiplication:
		return "multiplication"
	case RuleTable:
		return "table"
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// Condition is the declarative filter a score rule counts matches against.
type Condition struct {
	Names []string `json:"name,omitempty"`
	Tags  []string `json:"tag,omitempty"`
	Type  string   `json:"type,omitempty"`

	Unique         bool   `json:"unique,omitempty"`
	SameTree       bool   `json:"sameTree,omitempty"`
	SameTreeSymbol bool   `json:"sameTreeSymbol,omitempty"`
	FullTree       bool   `json:"fullTree,omitempty"`
	Most           bool   `json:"most,omitempty"`
	SameSpot       bool   `json:"sameSpot,omitempty"`
	Position       string `json:"position,omitempty"`
}

// MostKey canonicalizes the parts of a condition that identify one
// cross-player "most" race. Two rules with the same key compete over the same
// quantity and share one winner set per scoring run.
func (c *Condition) MostKey() string {
	names := append([]string(nil), c.Names...)
	tags := append([]string(nil), c.Tags...)
	sort.Strings(names)
	sort.Strings(tags)
	return strings.Join([]string{
		strings.Join(names, ","),
		strings.Join(tags, ","),
		fmt.Sprintf("u=%t", c.Unique),
		fmt.Sprintf("s=%t", c.SameTreeSymbol),
	}, "|")
}

// ScoreRule is the tagged form of a definition's scoring rule. The scalar vs.
// sequence shape of the document's "amount" is resolved here, at load time.
type ScoreRule struct {
	Kind   RuleKind
	Amount int
	Table  []int
	Min    int
	HasMin bool
	Cond   *Condition
}

// MinMatches is the threshold a conditional rule must reach, defaulting to 1.
func (r *ScoreRule) MinMatches() int {
	if r.HasMin {
		return r.Min
	}
	return 1
}

type Def struct {
	ID    string
	Tags  []string
	Type  string
	Joker string
	Rule  *ScoreRule
}

func (d *Def) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type Catalog struct {
	ByID   map[string]*Def
	Digest string
}

// Lookup returns nil for unknown ids; callers treat that as a card with no
// effect, never an error.
func (c *Catalog) Lookup(id string) *Def {
	return c.ByID[id]
}

func (c *Catalog) IsAnchor(id string) bool {
	d := c.ByID[id]
	return d != nil && d.HasTag(AnchorTag)
}

// Wire form of one definition. "amount" stays raw until the rule kind is
// known because the document encodes tables as arrays and everything else as
// a scalar.
type defJSON struct {
	ID    string     `json:"id"`
	Tags  []string   `json:"tags,omitempty"`
	Type  string     `json:"type,omitempty"`
	Joker string     `json:"joker,omitempty"`
	Score *scoreJSON `json:"score,omitempty"`
}

type scoreJSON struct {
	Type      string          `json:"type"`
	Amount    json.RawMessage `json:"amount"`
	Min       *int            `json:"min,omitempty"`
	Condition *Condition      `json:"condition,omitempty"`
}

// Load reads and validates the card catalog. schemaPath points at the JSON
// schema the document must satisfy; any violation is returned as an error and
// callers treat it as fatal.
func Load(path, schemaPath string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	schema, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("cards schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("cards.json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("cards.json: %w", err)
	}

	var defs []defJSON
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("cards.json: %w", err)
	}

	out := &Catalog{
		ByID:   make(map[string]*Def, len(defs)),
		Digest: sha256Hex(raw),
	}
	for _, dj := range defs {
		if dj.ID == "" {
			return nil, fmt.Errorf("cards.json: empty id")
		}
		if _, dup := out.ByID[dj.ID]; dup {
			return nil, fmt.Errorf("cards.json: duplicate id %q", dj.ID)
		}
		d := &Def{
			ID:    dj.ID,
			Tags:  dj.Tags,
			Type:  dj.Type,
			Joker: dj.Joker,
		}
		if dj.Score != nil {
			rule, err := parseRule(dj.ID, dj.Score)
			if err != nil {
				return nil, err
			}
			d.Rule = rule
		}
		out.ByID[d.ID] = d
	}
	return out, nil
}

func parseRule(id string, sj *scoreJSON) (*ScoreRule, error) {
	r := &ScoreRule{Cond: sj.Condition}
	if sj.Min != nil {
		r.Min = *sj.Min
		r.HasMin = true
	}
	switch sj.Type {
	case "fixed":
		r.Kind = RuleFixed
	case "multiplication":
		r.Kind = RuleMultiplication
	case "table":
		r.Kind = RuleTable
	default:
		return nil, fmt.Errorf("cards.json: %s: unknown score type %q", id, sj.Type)
	}

	if r.Kind == RuleTable {
		if err := json.Unmarshal(sj.Amount, &r.Table); err != nil {
			return nil, fmt.Errorf("cards.json: %s: table amount: %w", id, err)
		}
		if len(r.Table) == 0 {
			return nil, fmt.Errorf("cards.json: %s: empty table", id)
		}
		return r, nil
	}
	if err := json.Unmarshal(sj.Amount, &r.Amount); err != nil {
		return nil, fmt.Errorf("cards.json: %s: amount: %w", id, err)
	}
	return r, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
