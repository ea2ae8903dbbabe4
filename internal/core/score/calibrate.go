package score

// Rule ids whose presence in the hit list marks the work as carrying serious
// negative content, and ones that mark clear redemptive content. Calibrate
// classifies hits by id so reweighting the table does not shift the bands
var negativeIDs = map[string]struct{}{
	"explicit-language":    {},
	"explicit-sexual":      {},
	"explicit-violence":    {},
	"substance-abuse":      {},
	"occult-practices":     {},
	"blasphemy":            {},
	"self-harm":            {},
	"false-gospel":         {},
	"idolatry-materialism": {},
}

var positiveIDs = map[string]struct{}{
	"worship":            {},
	"repentance-hope":    {},
	"salvation-by-grace": {},
	"deity-of-christ":    {},
}

// Calibrate forces the raw total into bands that match how a reviewer would
// read the hit list. Negative hits dominate: any serious negative caps the
// score low regardless of redemptive signals. With only positive hits the
// score is floored high. With no hits at all the score stays mid-band
func Calibrate(r Result) Result {
	var neg, pos int
	for _, h := range r.Hits {
		if _, ok := negativeIDs[h.RuleID]; ok {
			neg++
			continue
		}
		if _, ok := positiveIDs[h.RuleID]; ok {
			pos++
		}
	}

	total := r.Total
	switch {
	case neg > 0:
		ceiling := 35 - 5*(neg-1)
		if ceiling < 15 {
			ceiling = 15
		}
		if total > ceiling {
			total = ceiling
		}
	case pos > 0:
		bonus := pos - 1
		if bonus > 2 {
			bonus = 2
		}
		floor := 80 + bonus*5
		if total < floor {
			total = floor
		}
		if total > maxTotal {
			total = maxTotal
		}
	default:
		total = clamp(total, 35, 75)
	}

	return Result{Total: total, Hits: r.Hits}
}
