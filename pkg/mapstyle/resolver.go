// Package mapstyle colors map regions by language taxonomy.
package mapstyle

import (
	"sort"
	"strings"

	"lingomap/pkg/lookup"
	"lingomap/pkg/model"
)

// Status tells why a region got its style.
type Status string

const (
	StatusStyled   Status = "styled"
	StatusNoData   Status = "no-data"  // no language known for the region
	StatusExcluded Status = "excluded" // languages known, none pass the filter
)

// Placeholder keys, always listed last in legends.
const (
	KeyOther        = "Other"
	KeyUnclassified = "Unclassified"
)

// Options holds the non-palette parts of a region style.
type Options struct {
	FillOpacity   float64
	MutedOpacity  float64
	StrokeColor   string
	StrokeWeight  float64
	ExcludedColor string
	NoDataColor   string
}

// DefaultOptions matches the default map config.
func DefaultOptions() Options {
	return Options{
		FillOpacity:   0.7,
		MutedOpacity:  0.15,
		StrokeColor:   "#ffffff",
		StrokeWeight:  0.5,
		ExcludedColor: "#9e9e9e",
		NoDataColor:   "#e0e0e0",
	}
}

// RegionStyle is the resolved style of one region.
type RegionStyle struct {
	Code         string      `json:"code"`
	Status       Status      `json:"status"`
	ColorKey     string      `json:"colorKey,omitempty"`
	Depth        model.Level `json:"-"`
	DepthName    string      `json:"depth"`
	FillColor    string      `json:"fillColor"`
	FillOpacity  float64     `json:"fillOpacity"`
	StrokeColor  string      `json:"strokeColor"`
	StrokeWeight float64     `json:"strokeWeight"`
	Primary      string      `json:"primary,omitempty"`   // language ID
	Languages    []string    `json:"languages,omitempty"` // candidate IDs after filtering
	Fallback     bool        `json:"fallback,omitempty"`  // resolved from the static country table
}

// Source provides language records.
type Source interface {
	All() []model.LanguageRecord
	InCountry(cc string) []*model.LanguageRecord
}

// Resolver computes region styles and legends. It is safe for concurrent use.
type Resolver struct {
	src  Source
	opts Options
}

// NewResolver creates a resolver over src. A nil src behaves as an empty dataset.
func NewResolver(src Source, opts Options) *Resolver {
	return &Resolver{src: src, opts: opts}
}

// DisplayDepth returns the deepest contiguously set filter level, or family.
func DisplayDepth(f model.Filter) model.Level {
	active := f.Active()
	if len(active) == 0 {
		return model.LevelFamily
	}
	return active[len(active)-1]
}

// Region styles a region at the filter's display depth.
func (r *Resolver) Region(code string, f model.Filter) RegionStyle {
	return r.RegionAtDepth(code, f, DisplayDepth(f))
}

// RegionAtDepth styles a region at an explicit depth.
func (r *Resolver) RegionAtDepth(code string, f model.Filter, depth model.Level) RegionStyle {
	code = strings.ToUpper(strings.TrimSpace(code))
	depth = clampDepth(depth)
	rs := RegionStyle{
		Code:         code,
		Depth:        depth,
		DepthName:    depth.String(),
		StrokeColor:  r.opts.StrokeColor,
		StrokeWeight: r.opts.StrokeWeight,
	}

	candidates, fromFallback := r.candidates(code)
	if len(candidates) == 0 {
		rs.Status = StatusNoData
		rs.FillColor = r.opts.NoDataColor
		rs.FillOpacity = r.opts.MutedOpacity
		return rs
	}
	rs.Fallback = fromFallback

	if f.IsActive() {
		var kept []*model.LanguageRecord
		for _, rec := range candidates {
			if f.Matches(rec) {
				kept = append(kept, rec)
			}
		}
		if len(kept) == 0 {
			rs.Status = StatusExcluded
			rs.FillColor = r.opts.ExcludedColor
			rs.FillOpacity = r.opts.MutedOpacity
			return rs
		}
		candidates = kept
	}

	primary := Primary(candidates)
	key := ColorKey(primary, depth, f)

	rs.Status = StatusStyled
	rs.Primary = primary.ID
	rs.ColorKey = key
	rs.FillColor = Color(key)
	rs.FillOpacity = r.opts.FillOpacity
	for _, rec := range candidates {
		rs.Languages = append(rs.Languages, rec.ID)
	}
	return rs
}

// candidates returns the records for code, consulting the static table
// when a non-empty catalogue has none for it. An empty catalogue has no data
// anywhere.
func (r *Resolver) candidates(code string) ([]*model.LanguageRecord, bool) {
	if code == "" || r.src == nil || len(r.src.All()) == 0 {
		return nil, false
	}
	if recs := r.src.InCountry(code); len(recs) > 0 {
		return recs, false
	}
	stubs, ok := fallbackCountries[code]
	if !ok {
		return nil, false
	}
	out := make([]*model.LanguageRecord, len(stubs))
	for i := range stubs {
		out[i] = &stubs[i]
	}
	return out, true
}

// Primary returns the record with the most speakers. Ties keep input order.
// recs must not be empty.
func Primary(recs []*model.LanguageRecord) *model.LanguageRecord {
	sorted := make([]*model.LanguageRecord, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Speakers() > sorted[j].Speakers()
	})
	return sorted[0]
}

// ColorKey reads rec's taxonomy at depth, falling back to shallower levels.
// At the dialect depth a variant named by the filter counts as the record's
// dialect.
func ColorKey(rec *model.LanguageRecord, depth model.Level, f model.Filter) string {
	depth = clampDepth(depth)
	path := rec.Taxonomy.Path(depth)
	if depth == model.LevelDialect && path[len(path)-1] == "" && f.Dialect != "" {
		if _, ok := rec.Dialect(f.Dialect); ok {
			path[len(path)-1] = f.Dialect
		}
	}
	if key, idx := lookup.Ancestors(path...); idx >= 0 {
		return strings.TrimSpace(key)
	}
	return KeyUnclassified
}

func clampDepth(l model.Level) model.Level {
	if l < model.LevelFamily {
		return model.LevelFamily
	}
	if l > model.LevelDialect {
		return model.LevelDialect
	}
	return l
}
