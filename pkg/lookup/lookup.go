// Package lookup implements the layered fallback used for locale, voice,
// prosody and map color-key resolution.
package lookup

import "strings"

// Layer reports which layer satisfied a lookup.
type Layer int

// Lookup layers, most specific first.
const (
	LayerExact Layer = iota
	LayerAlias
	LayerLanguage
	LayerDefault
)

func (l Layer) String() string {
	switch l {
	case LayerExact:
		return "exact"
	case LayerAlias:
		return "alias"
	case LayerLanguage:
		return "language"
	default:
		return "default"
	}
}

// Table resolves a value for a (language, dialect) pair through four layers:
// exact pair, dialect alias, language default and a global default.
// Keys are case-insensitive. A Table is not safe for concurrent mutation but
// may be read concurrently once built.
type Table[V any] struct {
	exact    map[string]V
	alias    map[string]V
	language map[string]V
	def      V
}

// New returns a Table whose last layer yields def.
func New[V any](def V) *Table[V] {
	return &Table[V]{
		exact:    make(map[string]V),
		alias:    make(map[string]V),
		language: make(map[string]V),
		def:      def,
	}
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func pairKey(lang, dialect string) string {
	return norm(lang) + "\x00" + norm(dialect)
}

// Exact registers a value for one language/dialect pair.
func (t *Table[V]) Exact(lang, dialect string, v V) *Table[V] {
	t.exact[pairKey(lang, dialect)] = v
	return t
}

// Alias registers a value for a dialect name regardless of language.
func (t *Table[V]) Alias(dialect string, v V) *Table[V] {
	t.alias[norm(dialect)] = v
	return t
}

// Language registers the default value for a language.
func (t *Table[V]) Language(lang string, v V) *Table[V] {
	t.language[norm(lang)] = v
	return t
}

// Default returns the global default.
func (t *Table[V]) Default() V {
	return t.def
}

// Resolve walks the layers and always returns a value.
func (t *Table[V]) Resolve(lang, dialect string) (V, Layer) {
	if dialect != "" {
		if v, ok := t.exact[pairKey(lang, dialect)]; ok {
			return v, LayerExact
		}
		if v, ok := t.alias[norm(dialect)]; ok {
			return v, LayerAlias
		}
	}
	if v, ok := t.language[norm(lang)]; ok {
		return v, LayerLanguage
	}
	return t.def, LayerDefault
}

// Ancestors returns the deepest non-empty value in levels, which are ordered
// shallowest first. The second result is its index, or -1 if all are empty.
func Ancestors(levels ...string) (string, int) {
	for i := len(levels) - 1; i >= 0; i-- {
		if strings.TrimSpace(levels[i]) != "" {
			return levels[i], i
		}
	}
	return "", -1
}
