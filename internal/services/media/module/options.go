package module

import "discernio/internal/platform/config"

// Options holds configuration settings for the media module
type Options struct {
	OpenAIKey   string
	OpenAIModel string
	TMDBKey     string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	mf := cfg.Prefix("MEDIA_")
	return Options{
		OpenAIKey:   mf.MayString("OPENAI_KEY", ""),
		OpenAIModel: mf.MayString("OPENAI_MODEL", "gpt-4o"),
		TMDBKey:     mf.MayString("TMDB_KEY", ""),
	}
}
