package model

// Filter is the hierarchical taxonomy filter. A level only counts when every
// shallower level is also set; values after the first gap are ignored.
type Filter struct {
	Family   string `json:"family,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Group    string `json:"group,omitempty"`
	Subgroup string `json:"subgroup,omitempty"`
	Language string `json:"language,omitempty"`
	Dialect  string `json:"dialect,omitempty"`
}

// At returns the raw filter value at level l.
func (f Filter) At(l Level) string {
	t := Taxonomy(f)
	return t.At(l)
}

// Active returns the contiguous set levels starting at family.
func (f Filter) Active() []Level {
	var out []Level
	for _, l := range Levels {
		if f.At(l) == "" {
			break
		}
		out = append(out, l)
	}
	return out
}

// IsActive reports whether at least the family level is set.
func (f Filter) IsActive() bool {
	return f.Family != ""
}

// Matches reports whether r satisfies every active level exactly.
// At the dialect level either the record's dialect label or one of its
// variant names may match.
func (f Filter) Matches(r *LanguageRecord) bool {
	for _, l := range f.Active() {
		want := f.At(l)
		if r.Taxonomy.At(l) == want {
			continue
		}
		if l == LevelDialect {
			if _, ok := r.Dialect(want); ok {
				continue
			}
		}
		return false
	}
	return true
}
