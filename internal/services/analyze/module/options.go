package module

import "discernio/internal/platform/config"

// Options holds configuration settings for the analyze module
type Options struct {
	MusixmatchKey string
	CacheTTLDays  int
	Translation   string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("ANALYZE_")
	return Options{
		MusixmatchKey: af.MayString("MUSIXMATCH_KEY", ""),
		CacheTTLDays:  af.MayInt("CACHE_TTL_DAYS", 90),
		Translation:   af.MayString("TRANSLATION", "WEB"),
	}
}
