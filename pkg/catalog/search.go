package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"lingomap/pkg/model"
)

// fold case-folds s. Casers carry state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// searchEntry caches the folded searchable fields of one record.
type searchEntry struct {
	id     string
	name   string
	fields []string // folded
	labels []string // original spelling, parallel to fields
}

func buildIndex(records []model.LanguageRecord) []searchEntry {
	idx := make([]searchEntry, len(records))
	for i := range records {
		r := &records[i]
		var labels []string
		add := func(s string) {
			if strings.TrimSpace(s) != "" {
				labels = append(labels, s)
			}
		}
		add(r.DisplayName)
		add(r.ID)
		for _, l := range model.Levels {
			add(r.Taxonomy.At(l))
		}
		for _, cc := range r.Countries {
			add(cc)
		}
		for _, d := range r.Dialects {
			add(d.Name)
			add(d.Region)
		}

		fields := make([]string, len(labels))
		for j, l := range labels {
			fields[j] = fold(l)
		}
		idx[i] = searchEntry{id: fold(r.ID), name: fold(r.DisplayName), fields: fields, labels: labels}
	}
	return idx
}

// Match is one search hit.
type Match struct {
	Record  *model.LanguageRecord `json:"record"`
	Field   string                `json:"matchedOn"`
	ranking int
}

const (
	rankExact = iota
	rankPrefix
	rankContains
)

// Search returns records where any field contains query, case-insensitively.
// Exact id or name matches rank first, then name prefixes, then the rest in
// dataset order. limit <= 0 means no limit. A blank query matches nothing.
func (c *Catalog) Search(query string, limit int) []Match {
	q := fold(query)
	if q == "" {
		return nil
	}

	var out []Match
	for i, e := range c.index {
		rank := -1
		field := ""
		switch {
		case e.id == q || e.name == q:
			rank, field = rankExact, c.records[i].DisplayName
		case strings.HasPrefix(e.name, q):
			rank, field = rankPrefix, c.records[i].DisplayName
		default:
			for j, f := range e.fields {
				if strings.Contains(f, q) {
					rank, field = rankContains, e.labels[j]
					break
				}
			}
		}
		if rank < 0 {
			continue
		}
		out = append(out, Match{Record: &c.records[i], Field: field, ranking: rank})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].ranking < out[b].ranking
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Suggest returns distinct field values starting with prefix, shortest first
// and then alphabetical.
func (c *Catalog) Suggest(prefix string, limit int) []string {
	p := fold(prefix)
	if p == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, e := range c.index {
		for j, f := range e.fields {
			if !strings.HasPrefix(f, p) || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, e.labels[j])
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		la, lb := len([]rune(out[a])), len([]rune(out[b]))
		if la != lb {
			return la < lb
		}
		return out[a] < out[b]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Filter returns the records satisfying every active level of f, in dataset order.
func (c *Catalog) Filter(f model.Filter) []*model.LanguageRecord {
	var out []*model.LanguageRecord
	for i := range c.records {
		if f.Matches(&c.records[i]) {
			out = append(out, &c.records[i])
		}
	}
	return out
}

// FilterOptions returns the distinct non-empty values at level among the
// records matching f, sorted. It drives cascading filter selectors.
// Dialect options include variant names.
func (c *Catalog) FilterOptions(f model.Filter, level model.Level) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, r := range c.Filter(f) {
		add(r.Taxonomy.At(level))
		if level == model.LevelDialect {
			for _, d := range r.Dialects {
				add(d.Name)
			}
		}
	}
	sort.Strings(out)
	return out
}
