// Package voice turns a voice request into playable audio by walking an
// ordered chain of speech providers.
package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"lingomap/pkg/audio"
	"lingomap/pkg/cache"
	"lingomap/pkg/dialect"
	"lingomap/pkg/model"
	"lingomap/pkg/tracker"
	"lingomap/pkg/tts"
)

// Caller errors. These are returned before any provider is contacted.
var (
	ErrEmptyText       = errors.New("text is empty")
	ErrTextTooLong     = errors.New("text is too long")
	ErrUnknownLanguage = errors.New("unknown language")
)

// User-facing messages for unsuccessful results.
const (
	MsgExhausted = "Voice sample unavailable: no speech provider could read this text right now."
	MsgCancelled = "Voice request was cancelled."
)

const (
	defaultTimeout = 15 * time.Second
	defaultMaxText = 500
)

// Catalog finds language records.
type Catalog interface {
	ByID(id string) (*model.LanguageRecord, bool)
}

// Config wires a Chain.
type Config struct {
	Providers       []tts.Provider // fallback order
	Rules           *dialect.Rules
	Catalog         Catalog
	Store           *AudioStore
	Cache           cache.Cacher     // optional
	Tracker         *tracker.Tracker // optional
	ProviderTimeout time.Duration
	MaxTextLength   int
}

// Chain runs voice requests through the providers in order.
type Chain struct {
	providers []tts.Provider
	rules     *dialect.Rules
	catalog   Catalog
	store     *AudioStore
	cache     cache.Cacher
	tracker   *tracker.Tracker
	timeout   time.Duration
	maxText   int
}

// New creates a Chain.
func New(cfg Config) (*Chain, error) {
	if cfg.Rules == nil {
		return nil, fmt.Errorf("voice chain needs dialect rules")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("voice chain needs a catalog")
	}
	c := &Chain{
		providers: cfg.Providers,
		rules:     cfg.Rules,
		catalog:   cfg.Catalog,
		store:     cfg.Store,
		cache:     cfg.Cache,
		tracker:   cfg.Tracker,
		timeout:   cfg.ProviderTimeout,
		maxText:   cfg.MaxTextLength,
	}
	if c.store == nil {
		c.store = NewAudioStore(0)
	}
	if c.cache == nil {
		c.cache = cache.Nop{}
	}
	if c.tracker == nil {
		c.tracker = tracker.New()
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxText <= 0 {
		c.maxText = defaultMaxText
	}
	return c, nil
}

// Store returns the audio store results point into.
func (c *Chain) Store() *AudioStore {
	return c.store
}

// Providers returns the configured providers in fallback order.
func (c *Chain) Providers() []tts.Provider {
	return append([]tts.Provider(nil), c.providers...)
}

// plan is a request with every dialect lookup already applied.
type plan struct {
	lang, dialect string
	text          string
	locale        string
	prosody       model.Prosody
}

// prepare validates req and resolves its text, locale and prosody.
func (c *Chain) prepare(req model.VoiceRequest) (plan, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return plan{}, ErrEmptyText
	}
	if n := utf8.RuneCountInString(text); n > c.maxText {
		return plan{}, fmt.Errorf("%w: %d characters, limit %d", ErrTextTooLong, n, c.maxText)
	}
	rec, ok := c.catalog.ByID(req.LanguageID)
	if !ok {
		return plan{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, req.LanguageID)
	}

	lang, dia := rec.ID, req.DialectName
	return plan{
		lang:    lang,
		dialect: dia,
		text:    c.rules.ResolveText(lang, dia, text),
		locale:  c.rules.ResolveLocale(lang, dia),
		prosody: c.rules.ResolveProsody(lang, dia, req.Tuning),
	}, nil
}

// Validate reports the caller error Speak would return for req, if any.
func (c *Chain) Validate(req model.VoiceRequest) error {
	_, err := c.prepare(req)
	return err
}

// Speak synthesizes req with the first provider that succeeds. The only
// errors returned are caller errors; provider trouble ends up in the result.
func (c *Chain) Speak(ctx context.Context, req model.VoiceRequest) (model.VoiceResult, error) {
	p, err := c.prepare(req)
	if err != nil {
		return model.VoiceResult{}, err
	}

	res := model.VoiceResult{
		ProviderUsed: model.ProviderNone,
		Locale:       p.locale,
		ResolvedText: p.text,
		Prosody:      &p.prosody,
	}

	for _, prov := range Order(c.providers, req.RequestedProvider) {
		if ctx.Err() != nil {
			res.ErrorMessage = MsgCancelled
			return res, nil
		}

		name := prov.Name()
		if !prov.Available(ctx) {
			slog.Debug("Voice provider unavailable, skipping", "provider", name)
			c.tracker.TrackSkip(name)
			continue
		}

		treq := tts.Request{
			Text:    p.text,
			Locale:  p.locale,
			Voice:   c.rules.ResolveVoice(p.lang, p.dialect, prov.Kind()),
			Prosody: p.prosody,
		}

		clip, info, err := c.attempt(ctx, prov, treq)
		if err != nil {
			if ctx.Err() != nil {
				res.ErrorMessage = MsgCancelled
				return res, nil
			}
			slog.Warn("Voice provider failed, trying next", "provider", name, "locale", p.locale, "error", err)
			continue
		}

		res.Succeeded = true
		res.ProviderUsed = prov.Kind()
		res.AudioHandle = c.store.Put(clip.Data, info.Format, name)
		res.Format = info.Format
		res.Duration = info.Duration
		slog.Info("Voice sample ready", "provider", name, "lang", p.lang, "dialect", p.dialect, "duration", info.Duration)
		return res, nil
	}

	res.ErrorMessage = MsgExhausted
	slog.Warn("All voice providers exhausted", "lang", p.lang, "dialect", p.dialect)
	return res, nil
}

// attempt makes one bounded call to prov, consulting the cache first. The
// returned audio has been verified as decodable.
func (c *Chain) attempt(ctx context.Context, prov tts.Provider, req tts.Request) (*tts.Audio, audio.Info, error) {
	name := prov.Name()
	key := cache.Key(name, req.Locale, req.Voice, req.Prosody.Rate, req.Prosody.Pitch, req.Prosody.Volume, req.Text)

	if e, hit := c.cache.Get(ctx, key); hit {
		if info, err := audio.Probe(e.Data); err == nil {
			c.tracker.TrackCacheHit(name)
			return &tts.Audio{Data: e.Data, Format: info.Format}, info, nil
		}
	}
	c.tracker.TrackCacheMiss(name)

	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	out, err := prov.Synthesize(actx, req)
	took := time.Since(start)
	if err == nil && out == nil {
		err = tts.NewProviderError(name, 0, errors.New("no audio returned"))
	}
	if err == nil {
		var info audio.Info
		if info, err = audio.Probe(out.Data); err == nil {
			c.tracker.TrackAPISuccess(name, took)
			tts.Log(name, req.Locale, req.Text, 200, nil)
			if cerr := c.cache.Set(ctx, key, name, cache.Entry{Data: out.Data, Format: info.Format}); cerr != nil {
				slog.Warn("Failed to cache voice sample", "provider", name, "error", cerr)
			}
			return out, info, nil
		}
		err = tts.NewProviderError(name, 0, fmt.Errorf("undecodable audio: %w", err))
	}

	if ctx.Err() == nil {
		c.tracker.TrackAPIFailure(name, err)
		tts.Log(name, req.Locale, req.Text, tts.StatusCode(err), err)
	}
	return nil, audio.Info{}, err
}

// Outcome pairs a compared request with its result.
type Outcome struct {
	Request model.VoiceRequest `json:"request"`
	Result  model.VoiceResult  `json:"result"`
	Error   string             `json:"error,omitempty"`
}

// Compare runs each request independently and concurrently. Outcomes keep
// the input order.
func (c *Chain) Compare(ctx context.Context, reqs []model.VoiceRequest) []Outcome {
	out := make([]Outcome, len(reqs))
	var wg sync.WaitGroup
	for i, r := range reqs {
		i, r := i, r
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Speak(ctx, r)
			out[i] = Outcome{Request: r, Result: res}
			if err != nil {
				out[i].Error = err.Error()
			}
		}()
	}
	wg.Wait()
	return out
}
