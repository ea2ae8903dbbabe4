// Package lexicon holds the per-category pattern sets applied to normalized lyric text.
// All patterns are compiled once at package init; matching never allocates a regexp
package lexicon

import (
	"regexp"
	"strings"
)

// word wraps a pattern in word boundaries, case insensitive
func word(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + expr + `\b`)
}

// Fuzz builds an obfuscation tolerant pattern for a single target word.
// Each letter may be followed by up to two non-alphanumeric filler characters,
// which catches spellings like "f*u.c-k". Deliberately unanchored: boundaries
// would defeat the point when the word is wrapped in punctuation
func Fuzz(target string) *regexp.Regexp {
	var b strings.Builder
	for _, ch := range target {
		b.WriteByte('[')
		b.WriteRune(ch)
		b.WriteString(`][^a-zA-Z0-9]{0,2}`)
	}
	return regexp.MustCompile(`(?i)` + b.String())
}

// Set groups the lyric pattern lists by category.
// A category is satisfied by matching ANY member; order only decides which
// literal match text is reported first
type Set struct {
	Profanity  []*regexp.Regexp
	Sexual     []*regexp.Regexp
	Violence   []*regexp.Regexp
	Substances []*regexp.Regexp
	Occult     []*regexp.Regexp
	Blasphemy  []*regexp.Regexp
	SelfHarm   []*regexp.Regexp
	Worship    []*regexp.Regexp
	Repentance []*regexp.Regexp
}

// Lyrics is the process-wide lyric lexicon, read-only after init
var Lyrics = Set{
	Profanity: []*regexp.Regexp{
		Fuzz("fuck"),
		// censored forms like "f***" or "f@#$ing" keep only the first letter
		regexp.MustCompile(`(?i)\bf[*@#$%!]{2,}\w*`),
		word(`god[\W_]*damn(ed)?`),
		word(`motherf\w*`),
		word(`shit(t?y|head|talk)?`),
		word(`bi+ch(es|y)?`),
		word(`ass(hole|hat)?`),
		word(`di+ck(head)?`),
		word(`pu(ssy|zzy)`),
		word(`cunt`),
		word(`slag|slut|whore`),
		word(`prick`),
	},
	Sexual: []*regexp.Regexp{
		word(`(naked|nud(e|ity)|strip(per|ping)?|orgy|porno?|onlyfans)`),
		word(`(twerk(ing)?|grind(ing)?|booty|thot)`),
		word(`(sex(ual)?|hook[\W_]*up|one[\W_]*night|bedroom)`),
	},
	Violence: []*regexp.Regexp{
		word(`(kill|murder|stab|shoot|shooter|gun|glock|uzi|ak-?47|blood|gore)`),
		word(`(beating|beat\s+up|assault|rob|robbery)`),
	},
	Substances: []*regexp.Regexp{
		word(`(drunk|wasted|blackout|hangover)`),
		word(`(weed|blunt|bong|marijuana|cannabis|dope)`),
		word(`(coke|cocaine|heroin|meth|ketamine|mdma|ecstasy|molly)`),
		word(`(xan(ax)?|perk|percocet|codeine|lean|sizzurp)`),
	},
	Occult: []*regexp.Regexp{
		word(`(witch(craft)?|sorcer(y|er)|magick?|tarot|ouija)`),
		word(`(demon(ic)?|devil|satan|lucifer|possess(ed|ion)?)`),
		word(`(seance|divination|astrology|horoscope)`),
	},
	Blasphemy: []*regexp.Regexp{
		// coarse interjection use of the name
		word(`jesus (christ|h christ)`),
		word(`christ almighty`),
		word(`(jesus|christ|god)\s+(fucking|fuck|damn)`),
	},
	SelfHarm: []*regexp.Regexp{
		word(`(kill myself|end my life|suicide|overdose|od\b|cut my (wrists|arms))`),
	},
	Worship: []*regexp.Regexp{
		// direct praise toward God
		word(`(praise|worship|adore|magnify|glorify|exalt|bless)\b\s+(you|him|god|the lord|jesus|christ)`),
		word(`(hallelujah|hosanna)`),
		// thanksgiving directed at a deity name
		word(`(thank|thanks|thankful)\b.*\b(god|jesus|lord|christ)`),
		// "God is good / you are holy"
		word(`(god|jesus|lord|christ)\b.*\b(is|you're|you are)\b.*\b(good|faithful|holy|worthy|mighty|awesome)`),
		word(`(god|jesus|lord|christ)\b.*\b(got|has)\s+my\s+back`),
		word(`(god|jesus|lord|christ)\b.*\b(with\s+me|for\s+me|by\s+my\s+side)`),
		// repeated "holy ... holy"
		word(`holy\b.*\bholy`),
	},
	Repentance: []*regexp.Regexp{
		word(`(repent|turn\s+away|confess|confession)`),
		word(`(grace|mercy)\b.*\b(through|in)\b.*\b(christ|jesus)`),
		word(`hope\b.*\b(christ|jesus|the lord)`),
	},
}

// MatchAny applies every pattern and returns the deduplicated literal match
// texts in pattern order. Returns an empty slice when nothing matches; never errors
func MatchAny(patterns []*regexp.Regexp, text string) []string {
	out := make([]string, 0, 2)
	seen := make(map[string]struct{}, 2)
	for _, re := range patterns {
		m := re.FindString(text)
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
