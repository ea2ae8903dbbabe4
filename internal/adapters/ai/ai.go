// Package ai calls a chat-completion endpoint to produce a discernment
// assessment for non-song media. The client always returns a well formed
// Analysis: missing key, transport failure, and malformed model output all
// degrade to documented fallback payloads
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"discernio/internal/platform/logger"
)

const (
	baseURLDefault = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"
	defaultTimeout = 60 * time.Second

	systemPrompt = "You are a careful, concise Christian media discernment assistant. " +
		"You speak with truth and grace."

	unavailableAnalysis = "AI service is unavailable right now."
	errorAnalysis       = "We encountered an issue while generating a full discernment analysis " +
		"for this title. Please try again later, or use prayerful wisdom and biblical principles " +
		"as you decide whether to watch or read this content."
)

// Alternative is one suggested substitute title
type Alternative struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// Analysis is the model's assessment of one media item
type Analysis struct {
	DiscernmentScore int           `json:"discernmentScore"`
	FaithAnalysis    string        `json:"faithAnalysis"`
	Tags             []string      `json:"tags"`
	VerseText        string        `json:"verseText"`
	VerseReference   string        `json:"verseReference"`
	Alternatives     []Alternative `json:"alternatives"`
}

// Request describes the media item being assessed
type Request struct {
	Title       string
	MediaType   string
	ReleaseYear string
	Overview    string
}

// Options configures the Client
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is a minimal chat-completions client
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a client. An empty API key is allowed; Analyze then
// short-circuits to the unavailable fallback without any network call
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("ai"),
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool { return c.opts.APIKey != "" }

func fallback(analysis string, tags []string) Analysis {
	return Analysis{
		DiscernmentScore: 50,
		FaithAnalysis:    analysis,
		Tags:             tags,
		Alternatives:     []Alternative{},
	}
}

// buildPrompt assembles the user message. Books get publication phrasing,
// everything else gets release phrasing
func buildPrompt(r Request) string {
	isBook := r.MediaType == "book"

	var ctx strings.Builder
	fmt.Fprintf(&ctx, "%q (a %s", r.Title, r.MediaType)
	if r.ReleaseYear != "" {
		verb := "released"
		if isBook {
			verb = "published"
		}
		fmt.Fprintf(&ctx, ", %s %s", verb, r.ReleaseYear)
	}
	ctx.WriteString(")")
	if r.Overview != "" {
		label := "Plot Summary"
		if isBook {
			label = "Synopsis"
		}
		fmt.Fprintf(&ctx, "\n\n%s: %s", label, r.Overview)
	}

	return strings.TrimSpace(fmt.Sprintf(`
You are a Christian media discernment expert. Analyze %s and provide
a concise assessment from a biblical worldview.

Return your answer as **valid JSON** ONLY, with this exact shape:

{
  "discernmentScore": <number 0-100>,
  "faithAnalysis": "<2 short paragraphs, max 4-5 sentences total>",
  "tags": ["<short tag>", "..."],
  "verseText": "<Bible verse text, NLT>",
  "verseReference": "<Book chapter:verse (NLT)>",
  "alternatives": [
    { "title": "<title>", "reason": "<1 short sentence (max 15 words)>" },
    { "title": "<title>", "reason": "<1 short sentence (max 15 words)>" },
    { "title": "<title>", "reason": "<1 short sentence (max 15 words)>" }
  ]
}

Scoring guide:
- 85-100: Faith-safe / uplifting / aligns with Christian values
- 65-84: Mixed / some concerns / use caution
- 0-64: Significant concern / not recommended for believers

In "faithAnalysis":
- Briefly highlight any occult, sexual, violent, or anti-biblical content.
- Then give clear, pastoral guidance for Christians (no fear-mongering).
`, ctx.String()))
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat respFormat    `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// model output decoded loosely so partial or junk-typed fields degrade to
// defaults instead of failing the whole payload
type rawAnalysis struct {
	DiscernmentScore *json.Number  `json:"discernmentScore"`
	FaithAnalysis    string        `json:"faithAnalysis"`
	Tags             []string      `json:"tags"`
	VerseText        string        `json:"verseText"`
	VerseReference   string        `json:"verseReference"`
	Alternatives     []Alternative `json:"alternatives"`
}

// Analyze assesses one media item. It never returns an error; every failure
// mode maps to a fallback Analysis the caller can render
func (c *Client) Analyze(ctx context.Context, r Request) Analysis {
	if !c.Configured() {
		return fallback(unavailableAnalysis, []string{"service-unavailable"})
	}
	if r.MediaType == "" {
		r.MediaType = "movie"
	}

	c.log.Info().
		Str("title", r.Title).
		Str("media_type", r.MediaType).
		Msg("analyzing media")

	body, err := json.Marshal(chatRequest{
		Model: c.opts.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(r)},
		},
		ResponseFormat: respFormat{Type: "json_object"},
	})
	if err != nil {
		return fallback(errorAnalysis, []string{"analysis-error"})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return fallback(errorAnalysis, []string{"analysis-error"})
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("chat completion transport error")
		return fallback(errorAnalysis, []string{"analysis-error"})
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn().Int("status", resp.StatusCode).Str("body", string(tail)).Msg("chat completion rejected")
		return fallback(errorAnalysis, []string{"analysis-error"})
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil || len(cr.Choices) == 0 {
		c.log.Warn().Err(err).Msg("chat completion decode failed")
		return fallback(errorAnalysis, []string{"analysis-error"})
	}

	var raw rawAnalysis
	content := strings.TrimSpace(cr.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		c.log.Warn().Err(err).Msg("model returned malformed analysis json")
		return fallback(errorAnalysis, []string{"analysis-error"})
	}

	out := Analysis{
		DiscernmentScore: 50,
		FaithAnalysis:    raw.FaithAnalysis,
		Tags:             raw.Tags,
		VerseText:        raw.VerseText,
		VerseReference:   raw.VerseReference,
		Alternatives:     raw.Alternatives,
	}
	if raw.DiscernmentScore != nil {
		if f, err := raw.DiscernmentScore.Float64(); err == nil {
			out.DiscernmentScore = int(f)
		}
	}
	if out.FaithAnalysis == "" {
		out.FaithAnalysis = "No analysis was provided."
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Alternatives == nil {
		out.Alternatives = []Alternative{}
	}
	return out
}
