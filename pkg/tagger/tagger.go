// Package tagger implements AI-assisted tag inference for drafts: a
// generative model is asked for tags, the rule-based enrichment layer fills
// in around the answer, and a deterministic heuristic substitutes whenever no
// usable model output can be obtained. Remote failures never escape as hard
// errors; only input validation does.
package tagger

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/neurosnap/sentences/english"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"cardkeep/internal/enrich"
	"cardkeep/internal/models"
)

// Model labels for the heuristic paths. Real model labels are the candidate
// id (SDK path), "rest:<id>" (HTTP path) or "openai:<id>".
const (
	ModelHeuristicForce    = "heuristic:force"
	ModelHeuristicFallback = "heuristic:fallback"
	ModelHeuristicError    = "heuristic:error"
)

// defaultModels are tried after the configured model, deduplicated.
var defaultModels = []string{"gemini-2.0-flash", "gemini-1.5-flash"}

const (
	maxTitleRunes = 2000
	maxNoteRunes  = 8000
	minInputRunes = 3
)

// Config holds the tagging client configuration. Zero values get sensible
// defaults in NewClient.
type Config struct {
	GoogleAPIKey string
	Model        string // preferred candidate, tried before the defaults
	OpenAIAPIKey string // optional last-resort backend
	OpenAIModel  string
	MinTags      int
	MaxTags      int
	Endpoint     string // Generative Language REST base, overridable in tests
	HTTPClient   *http.Client
}

// Options are per-call flags.
type Options struct {
	Trace          bool // include the raw model text in the result
	ForceHeuristic bool // debug mode: skip all remote calls
}

// Client runs the tagging state machine. It is stateless across calls; the
// backend list is fixed at construction and evaluated in order.
type Client struct {
	cfg      Config
	backends []Backend
	credErr  string // why the backend list is empty, when it is
}

// NewClient builds a tagging client from the configuration.
func NewClient(cfg Config) *Client {
	if cfg.MinTags <= 0 {
		cfg.MinTags = enrich.DefaultMinTags
	}
	if cfg.MaxTags < cfg.MinTags {
		cfg.MaxTags = enrich.DefaultMaxTags
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultRESTEndpoint
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = openai.GPT4oMini
	}
	c := &Client{cfg: cfg}
	c.backends = c.buildBackends()
	return c
}

// buildBackends expands the candidate models into an ordered list of
// (backend, transport) attempts: SDK then REST per candidate, then the
// optional OpenAI-compatible backend. Gemini candidates are only built when
// the Google key passes the structural check, so a missing or malformed key
// never blocks the OpenAI attempt. First success wins; the loop in Generate
// never fans out.
func (c *Client) buildBackends() []Backend {
	var out []Backend
	key := strings.TrimSpace(c.cfg.GoogleAPIKey)
	switch {
	case key == "":
		c.credErr = "no API key configured; set GEMINI_API_KEY"
	case !looksLikeGoogleKey(key):
		c.credErr = "API key failed format check"
	default:
		seen := make(map[string]struct{})
		for _, m := range append([]string{c.cfg.Model}, defaultModels...) {
			m = strings.TrimSpace(m)
			if m == "" {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out,
				&sdkBackend{apiKey: key, model: m},
				&restBackend{apiKey: key, model: m, endpoint: c.cfg.Endpoint, client: c.cfg.HTTPClient},
			)
		}
	}
	if c.cfg.OpenAIAPIKey != "" {
		out = append(out, &openaiBackend{model: c.cfg.OpenAIModel, client: openai.NewClient(c.cfg.OpenAIAPIKey)})
	}
	return out
}

// Generate runs one tagging attempt for the draft. Input validation failures
// are the only hard errors; every remote or parse failure degrades into a
// heuristic TagResult with Fallback set.
func (c *Client) Generate(ctx context.Context, d models.Draft, opts Options) (res models.TagResult, err error) {
	if verr := validateDraft(d); verr != nil {
		return models.TagResult{}, verr
	}

	ec := enrich.ContextFor(d)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("tagging panicked, substituting heuristic result: %v", r)
			res = c.heuristic(d, ec, ModelHeuristicError, fmt.Sprintf("panic: %v", r))
			err = nil
		}
	}()

	if opts.ForceHeuristic {
		return c.heuristic(d, ec, ModelHeuristicForce, ""), nil
	}

	if len(c.backends) == 0 {
		return c.heuristic(d, ec, ModelHeuristicFallback, c.credErr), nil
	}

	prompt := buildPrompt(d)
	var lastErr error
	for _, b := range c.backends {
		text, berr := b.Generate(ctx, prompt)
		if berr != nil {
			lastErr = fmt.Errorf("%s: %w", b.Label(), berr)
			log.Debugf("backend %s failed: %v", b.Label(), berr)
			continue
		}
		p, perr := parsePayload(text)
		if perr != nil {
			lastErr = fmt.Errorf("%s: %w", b.Label(), perr)
			log.Debugf("backend %s returned unparseable output: %v", b.Label(), perr)
			continue
		}

		// A successful parse terminates the loop even when the model
		// supplied no tags: the enrichment layer stands in alone and the
		// result is marked as a fallback.
		r := models.TagResult{
			Tags:       enrich.Enrich(p.Tags, ec, c.cfg.MinTags, c.cfg.MaxTags),
			Summary:    p.Summary,
			Confidence: p.Confidence,
			Model:      b.Label(),
			Fallback:   len(p.Tags) == 0,
		}
		if r.Summary == "" {
			r.Summary = summaryFor(d)
		}
		if !(r.Confidence > 0 && r.Confidence <= 1) {
			r.Confidence = 0.7
		}
		if opts.Trace {
			r.Raw = text
		}
		return r, nil
	}

	msg := "all model backends exhausted"
	if lastErr != nil {
		msg = lastErr.Error()
	}
	log.Warnf("tagging fell back to heuristic: %s", msg)
	return c.heuristic(d, ec, ModelHeuristicFallback, msg), nil
}

// heuristic builds the degraded-but-valid result used on every non-model path.
func (c *Client) heuristic(d models.Draft, ec enrich.Context, model, errMsg string) models.TagResult {
	return models.TagResult{
		Tags:       enrich.Enrich(nil, ec, c.cfg.MinTags, c.cfg.MaxTags),
		Summary:    summaryFor(d),
		Confidence: 0.6,
		Model:      model,
		Fallback:   true,
		Error:      errMsg,
	}
}

// validateDraft checks the too-short precondition before the size limits, so
// whitespace-padded input reads as too short rather than too large.
func validateDraft(d models.Draft) error {
	title := strings.TrimSpace(d.Title)
	note := strings.TrimSpace(d.Note)
	if utf8.RuneCountInString(title)+utf8.RuneCountInString(note) < minInputRunes {
		return models.ErrInputTooShort
	}
	if utf8.RuneCountInString(d.Title) > maxTitleRunes || utf8.RuneCountInString(d.Note) > maxNoteRunes {
		return models.ErrInputTooLarge
	}
	return nil
}

// looksLikeGoogleKey is a cheap structural check; Gemini API keys carry an
// AIza prefix.
func looksLikeGoogleKey(key string) bool {
	return strings.HasPrefix(key, "AIza") && len(key) >= 30
}

// sentenceTokenizer carries the embedded English training data; a bare
// sentences.NewSentenceTokenizer(nil) panics on first Tokenize.
var sentenceTokenizer, _ = english.NewSentenceTokenizer(nil)

// summaryFor is the summary default when the model supplies none: the title,
// or for title-less drafts the lead sentence of the note. It must never
// panic; the recover path in Generate relies on it.
func summaryFor(d models.Draft) string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	note := strings.TrimSpace(d.Note)
	if note == "" {
		return ""
	}
	if i := strings.Index(note, "。"); i >= 0 {
		return note[:i+len("。")]
	}
	if sentenceTokenizer != nil {
		if ss := sentenceTokenizer.Tokenize(note); len(ss) > 0 {
			return strings.TrimSpace(ss[0].Text)
		}
	}
	return note
}
