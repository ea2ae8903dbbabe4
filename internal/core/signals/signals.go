// Package signals turns raw lyric or synopsis text into one structured
// Bundle consumed by the scorer. Both extractor variants populate the same
// shape so downstream code never guesses at optional fields
package signals

import (
	"regexp"
	"strings"

	"discernio/internal/core/lexicon"
	"discernio/internal/core/normalize"
)

// Theme identifiers derived from the lyric lexicon
const (
	ThemeWorship        = "worship"
	ThemeRepentanceHope = "repentance-hope"
)

// Explicit maps content categories to the literal terms that matched.
// Slices are always non-nil; empty means no matches
type Explicit struct {
	Language   []string `json:"language"`
	Sexual     []string `json:"sexual"`
	Violence   []string `json:"violence"`
	Substances []string `json:"substances"`
	Occult     []string `json:"occult"`
}

// Bundle is the extraction result for one input text
type Bundle struct {
	Explicit  Explicit `json:"explicit"`
	Blasphemy []string `json:"blasphemy"`
	SelfHarm  []string `json:"selfharm"`
	Themes    []string `json:"themes"`
	Claims    []string `json:"claims"`
	BibleRefs []string `json:"bibleRefs"`
}

// Empty returns a Bundle with every collection allocated and empty
func Empty() Bundle {
	return Bundle{
		Explicit: Explicit{
			Language:   []string{},
			Sexual:     []string{},
			Violence:   []string{},
			Substances: []string{},
			Occult:     []string{},
		},
		Blasphemy: []string{},
		SelfHarm:  []string{},
		Themes:    []string{},
		Claims:    []string{},
		BibleRefs: []string{},
	}
}

// HasTheme reports whether id is present in Themes
func (b Bundle) HasTheme(id string) bool {
	for _, t := range b.Themes {
		if t == id {
			return true
		}
	}
	return false
}

// HasClaim reports whether any claim contains needle
func (b Bundle) HasClaim(needle string) bool {
	for _, c := range b.Claims {
		if strings.Contains(c, needle) {
			return true
		}
	}
	return false
}

// Extractor applies the lexicon to input text. Safe for concurrent use
type Extractor struct {
	n *normalize.Normalizer
}

// NewExtractor constructs an Extractor
func NewExtractor() *Extractor {
	return &Extractor{n: normalize.New()}
}

// FromLyrics extracts lyric-specific signals. Normalization runs internally,
// so already normalized input yields the same result
func (e *Extractor) FromLyrics(raw string) Bundle {
	text := e.n.Normalize(raw)
	b := Empty()

	b.Explicit.Language = lexicon.MatchAny(lexicon.Lyrics.Profanity, text)
	b.Explicit.Sexual = lexicon.MatchAny(lexicon.Lyrics.Sexual, text)
	b.Explicit.Violence = lexicon.MatchAny(lexicon.Lyrics.Violence, text)
	b.Explicit.Substances = lexicon.MatchAny(lexicon.Lyrics.Substances, text)
	b.Explicit.Occult = lexicon.MatchAny(lexicon.Lyrics.Occult, text)
	b.Blasphemy = lexicon.MatchAny(lexicon.Lyrics.Blasphemy, text)
	b.SelfHarm = lexicon.MatchAny(lexicon.Lyrics.SelfHarm, text)

	if len(lexicon.MatchAny(lexicon.Lyrics.Worship, text)) > 0 {
		b.Themes = append(b.Themes, ThemeWorship)
	}
	if len(lexicon.MatchAny(lexicon.Lyrics.Repentance, text)) > 0 {
		b.Themes = append(b.Themes, ThemeRepentanceHope)
	}

	return b
}

// synopsis keyword families, smaller than the lyric lexicon because
// synopses describe content rather than quote it

var themeKeywords = []string{
	"redemption", "forgiveness", "sacrifice", "love", "faith", "hope",
	"compassion", "justice", "mercy", "grace", "family", "friendship",
	"courage", "betrayal", "revenge",
}

var languageKeywords = []string{"profanity", "cursing", "foul language", "expletive"}

var sexualKeywords = []string{"nudity", "sexual content", "sex scene", "intimate scene", "suggestive"}

var violenceKeywords = []string{"violence", "graphic violence", "gore", "bloody", "brutal", "killing"}

var occultKeywords = []string{
	"witchcraft", "sorcery", "magic", "divination", "seance",
	"demon", "demonic", "occult", "necromancy", "spell",
}

// citation form: optional numeric book prefix, capitalized book, chapter:verse(-verse)
var bibleRefRe = regexp.MustCompile(`\b(?:[1-3]\s+)?[A-Z][a-z]+\s+\d+:\d+(?:-\d+)?\b`)

// FromSynopsis extracts signals from general free text such as a plot
// synopsis: open-vocabulary themes, coarse explicit keyword families,
// doctrinal claims via keyword co-occurrence, and literal scripture citations.
// Citations are scanned on the raw input because the pattern depends on
// capitalized book names
func (e *Extractor) FromSynopsis(raw string) Bundle {
	lower := strings.ToLower(raw)
	b := Empty()

	for _, kw := range themeKeywords {
		if strings.Contains(lower, kw) {
			b.Themes = append(b.Themes, kw)
		}
	}

	b.Explicit.Language = containsAll(lower, languageKeywords)
	b.Explicit.Sexual = containsAll(lower, sexualKeywords)
	b.Explicit.Violence = containsAll(lower, violenceKeywords)
	b.Explicit.Occult = containsAll(lower, occultKeywords)

	if strings.Contains(lower, "works") && strings.Contains(lower, "salvation") {
		b.Claims = append(b.Claims, "works-based salvation")
	}
	if strings.Contains(lower, "all paths") || strings.Contains(lower, "all religions") {
		b.Claims = append(b.Claims, "all paths lead to god")
	}
	if strings.Contains(lower, "jesus") &&
		(strings.Contains(lower, "teacher") || strings.Contains(lower, "prophet")) {
		b.Claims = append(b.Claims, "jesus is just a teacher")
	}

	for _, m := range bibleRefRe.FindAllString(raw, -1) {
		b.BibleRefs = append(b.BibleRefs, m)
	}

	return b
}

func containsAll(lower string, keywords []string) []string {
	out := []string{}
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			out = append(out, kw)
		}
	}
	return out
}
