// Package dialect resolves dialect-specific text, locale, voice and prosody.
package dialect

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"lingomap/pkg/lookup"
	"lingomap/pkg/model"
)

// Prosody bounds accepted by every provider in the chain.
const (
	MinRate  = 0.25
	MaxRate  = 4.0
	MinPitch = -20.0
	MaxPitch = 20.0
)

// ruleSet is an ordered substitution list compiled into a single-pass replacer,
// so replaced text is never matched again.
type ruleSet struct {
	subs     []Substitution
	replacer *strings.Replacer
}

func compile(subs []Substitution) *ruleSet {
	ordered := make([]Substitution, 0, len(subs))
	for _, s := range subs {
		if s.From == "" || s.From == s.To {
			continue
		}
		ordered = append(ordered, s)
	}
	// longest source first, then lexical
	sort.SliceStable(ordered, func(i, j int) bool {
		li, lj := len([]rune(ordered[i].From)), len([]rune(ordered[j].From))
		if li != lj {
			return li > lj
		}
		return ordered[i].From < ordered[j].From
	})

	pairs := make([]string, 0, 2*len(ordered))
	for _, s := range ordered {
		pairs = append(pairs, s.From, s.To)
	}
	return &ruleSet{subs: ordered, replacer: strings.NewReplacer(pairs...)}
}

// Rules holds the per-dialect customization tables. It is immutable after
// construction and safe for concurrent use.
type Rules struct {
	text    *lookup.Table[*ruleSet]
	locales *lookup.Table[string]
	prosody *lookup.Table[model.Prosody]
	voices  map[model.ProviderKind]*lookup.Table[string]
}

// New builds the bundled tables. defaultLocale terminates locale resolution
// and must be a valid BCP-47 tag; invalid input falls back to en-US.
func New(defaultLocale string) *Rules {
	def := canonical(defaultLocale)
	if def == "" {
		def = "en-US"
	}

	text := lookup.New[*ruleSet](nil).
		Alias("Shanghainese", compile(shanghainese)).
		Alias("Sichuanese", compile(sichuanese)).
		Language("jpn", compile(japaneseReadings))

	locales := lookup.New(def)
	for lang, loc := range languageLocales {
		locales.Language(lang, loc)
	}
	for _, p := range dialectLocales {
		locales.Exact(p.lang, p.dialect, p.locale)
	}
	for d, loc := range aliasLocales {
		locales.Alias(d, loc)
	}

	prosody := lookup.New(model.DefaultProsody)
	for d, p := range prosodyByDialect {
		prosody.Alias(d, p)
	}

	google := lookup.New("")
	for lang, v := range googleLanguageVoices {
		google.Language(lang, v)
	}
	for d, v := range googleDialectVoices {
		google.Alias(d, v)
	}

	return &Rules{
		text:    text,
		locales: locales,
		prosody: prosody,
		voices: map[model.ProviderKind]*lookup.Table[string]{
			model.ProviderCloudA: google,
		},
	}
}

// ResolveText applies the dialect's vocabulary substitutions. Text without
// rules passes through unchanged.
func (r *Rules) ResolveText(lang, dialect, text string) string {
	rs, _ := r.text.Resolve(lang, dialect)
	if rs == nil {
		return text
	}
	return rs.replacer.Replace(text)
}

// Substitutions lists the ordered rules that apply to a language/dialect.
func (r *Rules) Substitutions(lang, dialect string) []Substitution {
	rs, _ := r.text.Resolve(lang, dialect)
	if rs == nil {
		return nil
	}
	out := make([]Substitution, len(rs.subs))
	copy(out, rs.subs)
	return out
}

// ResolveLocale returns a BCP-47 locale for the pair. It never returns "".
func (r *Rules) ResolveLocale(lang, dialect string) string {
	loc, _ := r.locales.Resolve(lang, dialect)
	if c := canonical(loc); c != "" {
		return c
	}
	return r.locales.Default()
}

// ResolveVoice returns a provider-specific voice name, or "" to let the
// provider choose from the locale.
func (r *Rules) ResolveVoice(lang, dialect string, kind model.ProviderKind) string {
	t, ok := r.voices[kind]
	if !ok {
		return ""
	}
	v, _ := t.Resolve(lang, dialect)
	return v
}

// ResolveProsody returns the dialect's prosody with override applied field
// by field. Explicit override values win.
func (r *Rules) ResolveProsody(lang, dialect string, override *model.VoiceTuning) model.Prosody {
	p, _ := r.prosody.Resolve(lang, dialect)
	if override != nil {
		if override.Rate != nil {
			p.Rate = *override.Rate
		}
		if override.Pitch != nil {
			p.Pitch = *override.Pitch
		}
		if override.Volume != nil {
			p.Volume = *override.Volume
		}
	}
	return clampProsody(p)
}

func clampProsody(p model.Prosody) model.Prosody {
	p.Rate = clamp(p.Rate, MinRate, MaxRate)
	p.Pitch = clamp(p.Pitch, MinPitch, MaxPitch)
	p.Volume = clamp(p.Volume, 0, 1)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// canonical normalizes casing of a locale tag, keeping the original subtags
// so provider-specific codes like "cmn-CN" survive. Invalid tags yield "".
func canonical(tag string) string {
	t, err := language.Raw.Parse(strings.TrimSpace(tag))
	if err != nil || t == language.Und {
		return ""
	}
	return t.String()
}

// BaseLanguage returns the ISO 639-1 code for a locale where one exists,
// folding macrolanguage members like "cmn" into "zh".
func BaseLanguage(locale string) string {
	t, err := language.Raw.Parse(locale)
	if err != nil {
		return ""
	}
	base, _ := language.Macro.Make(t.String()).Base()
	return base.String()
}
