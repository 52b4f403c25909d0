package model

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Level is a depth in the six-level language taxonomy.
type Level int

// Taxonomy levels, shallowest first.
const (
	LevelFamily Level = iota
	LevelBranch
	LevelGroup
	LevelSubgroup
	LevelLanguage
	LevelDialect
)

// Levels lists every taxonomy level from family to dialect.
var Levels = []Level{LevelFamily, LevelBranch, LevelGroup, LevelSubgroup, LevelLanguage, LevelDialect}

var levelNames = [...]string{"family", "branch", "group", "subgroup", "language", "dialect"}

func (l Level) String() string {
	if l < LevelFamily || l > LevelDialect {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLevel resolves a level name such as "branch".
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == s {
			return Level(i), true
		}
	}
	return LevelFamily, false
}

// Taxonomy is the classification of a language. Only Family is mandatory;
// any deeper level may be missing.
type Taxonomy struct {
	Family   string `json:"family"`
	Branch   string `json:"branch,omitempty"`
	Group    string `json:"group,omitempty"`
	Subgroup string `json:"subgroup,omitempty"`
	Language string `json:"language,omitempty"`
	Dialect  string `json:"dialect,omitempty"`
}

// At returns the raw value at level l, possibly empty.
func (t *Taxonomy) At(l Level) string {
	switch l {
	case LevelFamily:
		return t.Family
	case LevelBranch:
		return t.Branch
	case LevelGroup:
		return t.Group
	case LevelSubgroup:
		return t.Subgroup
	case LevelLanguage:
		return t.Language
	case LevelDialect:
		return t.Dialect
	}
	return ""
}

// Path returns the values from family down to l, inclusive.
func (t *Taxonomy) Path(l Level) []string {
	if l > LevelDialect {
		l = LevelDialect
	}
	out := make([]string, 0, int(l)+1)
	for _, lv := range Levels[:l+1] {
		out = append(out, t.At(lv))
	}
	return out
}

// DialectVariant is a named regional or social form of a language.
type DialectVariant struct {
	Name          string `json:"name"`
	Region        string `json:"region,omitempty"`
	SampleText    string `json:"sampleText,omitempty"`
	Description   string `json:"description,omitempty"`
	VoiceModelKey string `json:"voiceModelKey,omitempty"`
}

// LanguageRecord is one catalogue entry. Records are immutable once loaded.
type LanguageRecord struct {
	ID               string           `json:"id"`
	DisplayName      string           `json:"displayName"`
	Taxonomy         Taxonomy         `json:"taxonomy"`
	Countries        []string         `json:"countries,omitempty"` // ISO alpha-2, first is the primary country
	TotalSpeakers    *int64           `json:"totalSpeakers,omitempty"`
	Center           *orb.Point       `json:"center,omitempty"` // [lon, lat]
	DefaultAudioText string           `json:"defaultAudioText,omitempty"`
	Dialects         []DialectVariant `json:"dialects,omitempty"`
}

// Speakers returns TotalSpeakers, treating a missing count as zero.
func (r *LanguageRecord) Speakers() int64 {
	if r.TotalSpeakers == nil {
		return 0
	}
	return *r.TotalSpeakers
}

// SpokenIn reports whether the record lists country code cc.
func (r *LanguageRecord) SpokenIn(cc string) bool {
	for _, c := range r.Countries {
		if strings.EqualFold(c, cc) {
			return true
		}
	}
	return false
}

// PrimaryCountry returns the first listed country, or "".
func (r *LanguageRecord) PrimaryCountry() string {
	if len(r.Countries) == 0 {
		return ""
	}
	return r.Countries[0]
}

// Dialect finds a variant by name.
func (r *LanguageRecord) Dialect(name string) (DialectVariant, bool) {
	for _, d := range r.Dialects {
		if d.Name == name {
			return d, true
		}
	}
	return DialectVariant{}, false
}

// VariantKey returns the stable per-variant key: VoiceModelKey, else the
// positional index within the record.
func VariantKey(d DialectVariant, index int) string {
	if d.VoiceModelKey != "" {
		return d.VoiceModelKey
	}
	return "variant-" + strconv.Itoa(index)
}
