// Package score maps a signal bundle and the rule table to a discernment
// score. Scoring is pure and deterministic: same bundle + same table means
// the same total and the same ordered hits
package score

import (
	"fmt"
	"strings"

	"discernio/internal/core/rules"
	"discernio/internal/core/signals"
)

const (
	neutral  = 50
	minTotal = 0
	maxTotal = 100
)

// Hit records one rule that fired
type Hit struct {
	RuleID string   `json:"ruleId"`
	Weight int      `json:"weight"`
	Refs   []string `json:"refs"`
	Reason string   `json:"reason,omitempty"`
}

// Result is a scored bundle before or after calibration
type Result struct {
	Total int   `json:"total"`
	Hits  []Hit `json:"hits"`
}

// predicate tests whether a rule applies to a bundle and, when it does,
// returns the matched terms worth naming in the reason (may be empty)
type predicate func(b signals.Bundle) (bool, []string)

// predicates is the single id-to-test table. Adding a rule means one entry
// here plus one document entry in rules.yaml
var predicates = map[string]predicate{
	"explicit-language": func(b signals.Bundle) (bool, []string) {
		return len(b.Explicit.Language) > 0, b.Explicit.Language
	},
	"explicit-sexual": func(b signals.Bundle) (bool, []string) {
		return len(b.Explicit.Sexual) > 0, b.Explicit.Sexual
	},
	"explicit-violence": func(b signals.Bundle) (bool, []string) {
		return len(b.Explicit.Violence) > 0, b.Explicit.Violence
	},
	"substance-abuse": func(b signals.Bundle) (bool, []string) {
		return len(b.Explicit.Substances) > 0, b.Explicit.Substances
	},
	"occult-practices": func(b signals.Bundle) (bool, []string) {
		return len(b.Explicit.Occult) > 0, b.Explicit.Occult
	},
	"blasphemy": func(b signals.Bundle) (bool, []string) {
		return len(b.Blasphemy) > 0, b.Blasphemy
	},
	"self-harm": func(b signals.Bundle) (bool, []string) {
		return len(b.SelfHarm) > 0, b.SelfHarm
	},
	"false-gospel": func(b signals.Bundle) (bool, []string) {
		return b.HasClaim("works-based salvation") || b.HasClaim("all paths lead to god"), nil
	},
	"idolatry-materialism": func(b signals.Bundle) (bool, []string) {
		return b.HasClaim("idolatry") || b.HasTheme("idolatry") || b.HasTheme("materialism"), nil
	},
	"worship": func(b signals.Bundle) (bool, []string) {
		return b.HasTheme(signals.ThemeWorship), nil
	},
	"repentance-hope": func(b signals.Bundle) (bool, []string) {
		return b.HasTheme(signals.ThemeRepentanceHope), nil
	},
	"salvation-by-grace": func(b signals.Bundle) (bool, []string) {
		return b.HasClaim("salvation by grace") || b.HasTheme("grace"), nil
	},
	"deity-of-christ": func(b signals.Bundle) (bool, []string) {
		return b.HasClaim("deity of christ") || b.HasTheme("christ deity"), nil
	},
}

// static reasons per rule id, templated with matched terms when available
var reasons = map[string]string{
	"explicit-language":    "Detected profanity / coarse talk",
	"explicit-sexual":      "Detected sexualized terms / objectification",
	"explicit-violence":    "Detected violent / graphic terms",
	"substance-abuse":      "Detected intoxication / drug abuse terms",
	"occult-practices":     "Detected witchcraft/divination/demonic references",
	"blasphemy":            "Detected irreverent/profane use of God's name or of Christ",
	"self-harm":            "Detected self-harm / suicide language",
	"false-gospel":         "Detected contradictions to salvation by grace",
	"idolatry-materialism": "Detected idolatry/greed as ultimate good",
	"worship":              "Detected worship/reverence toward God",
	"repentance-hope":      "Detected repentance/hope centered on Christ",
	"salvation-by-grace":   "Affirms salvation by grace alone",
	"deity-of-christ":      "Affirms Jesus' full deity",
}

// Scorer evaluates the predicate table against the rule table
type Scorer struct {
	table *rules.Table
}

// New wires the scorer to a loaded rule table. Every id the predicate table
// references must exist in the table; an incomplete table is a startup error,
// not something to limp along with
func New(t *rules.Table) (*Scorer, error) {
	if t == nil {
		return nil, fmt.Errorf("score: nil rule table")
	}
	for id := range predicates {
		if !t.Has(id) {
			return nil, fmt.Errorf("score: rule table is missing required rule %q", id)
		}
	}
	return &Scorer{table: t}, nil
}

// Score evaluates every rule in table order. No early exit: multiple rules
// may fire, and a bundle with no firing rules keeps the neutral total
func (s *Scorer) Score(b signals.Bundle) Result {
	total := neutral
	hits := make([]Hit, 0, 4)

	for _, r := range s.table.All() {
		p, ok := predicates[r.ID]
		if !ok {
			continue // configured rule without a predicate never fires
		}
		fired, terms := p(b)
		if !fired {
			continue
		}

		reason := reasons[r.ID]
		if reason == "" {
			reason = r.Description
		}
		if len(terms) > 0 {
			reason = reason + ": " + strings.Join(terms, ", ")
		}

		refs := make([]string, len(r.Anchors))
		copy(refs, r.Anchors)

		hits = append(hits, Hit{
			RuleID: r.ID,
			Weight: r.Weight,
			Refs:   refs,
			Reason: reason,
		})
		total += r.Weight
	}

	return Result{Total: clamp(total, minTotal, maxTotal), Hits: hits}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
