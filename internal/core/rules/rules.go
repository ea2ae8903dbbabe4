// Package rules loads the discernment rule table from the embedded rules.yaml.
// The table is immutable after Load and safe for unlimited concurrent readers
package rules

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed rules.yaml
var embedded []byte

// Category partitions rules by the kind of concern they encode
type Category string

// Closed category set
const (
	CategoryTheology Category = "theology"
	CategoryEthics   Category = "ethics"
	CategoryContent  Category = "content"
)

// Rule is one configured discernment rule
type Rule struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    Category `yaml:"category"`
	Weight      int      `yaml:"weight"`
	Anchors     []string `yaml:"anchors"`
}

type rawDoc struct {
	Rules []Rule `yaml:"rules"`
}

// Table is the ordered, indexed rule set
type Table struct {
	rules []Rule
	byID  map[string]int
}

// Load parses the embedded rules.yaml and validates its shape.
// Unknown document fields are tolerated; structural problems are not
func Load() (*Table, error) {
	var doc rawDoc
	if err := yaml.Unmarshal(embedded, &doc); err != nil {
		return nil, fmt.Errorf("rules: parse rules.yaml: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rules: rules.yaml has no rules")
	}

	t := &Table{
		rules: doc.Rules,
		byID:  make(map[string]int, len(doc.Rules)),
	}
	for i, r := range doc.Rules {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, fmt.Errorf("rules: rule %d has empty id", i)
		}
		if _, dup := t.byID[id]; dup {
			return nil, fmt.Errorf("rules: duplicate rule id %q", id)
		}
		switch r.Category {
		case CategoryTheology, CategoryEthics, CategoryContent:
		default:
			return nil, fmt.Errorf("rules: rule %q has unknown category %q", id, r.Category)
		}
		if len(r.Anchors) == 0 {
			return nil, fmt.Errorf("rules: rule %q has no scripture anchors", id)
		}
		for _, a := range r.Anchors {
			if strings.TrimSpace(a) == "" {
				return nil, fmt.Errorf("rules: rule %q has a blank anchor", id)
			}
		}
		t.byID[id] = i
	}
	return t, nil
}

// All returns the rules in document order. Callers must not mutate the slice
func (t *Table) All() []Rule { return t.rules }

// Get returns the rule with the given id
func (t *Table) Get(id string) (Rule, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Rule{}, false
	}
	return t.rules[i], true
}

// Has reports whether id is present
func (t *Table) Has(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// Len returns the number of rules
func (t *Table) Len() int { return len(t.rules) }
