package mapstyle

import (
	"sort"

	"lingomap/pkg/model"
)

// LegendRow is one legend entry.
type LegendRow struct {
	Key   string `json:"key"`
	Color string `json:"color"`
	Count int    `json:"count"` // matching records with this key
}

// Legend lists the color keys in use for a filter state.
type Legend struct {
	Title string      `json:"title"`
	Depth string      `json:"depth"`
	Path  []string    `json:"path,omitempty"` // active filter values
	Keys  []string    `json:"keys"`
	Rows  []LegendRow `json:"rows"`
}

// Legend builds the legend at the filter's display depth.
func (r *Resolver) Legend(f model.Filter) Legend {
	return r.LegendAtDepth(f, DisplayDepth(f))
}

// LegendAtDepth builds the legend at an explicit depth across every record
// matching f.
func (r *Resolver) LegendAtDepth(f model.Filter, depth model.Level) Legend {
	depth = clampDepth(depth)
	lg := Legend{
		Title: legendTitle(depth),
		Depth: depth.String(),
		Keys:  []string{},
		Rows:  []LegendRow{},
	}
	for _, l := range f.Active() {
		lg.Path = append(lg.Path, f.At(l))
	}
	if r.src == nil {
		return lg
	}

	counts := make(map[string]int)
	all := r.src.All()
	for i := range all {
		rec := &all[i]
		if f.IsActive() && !f.Matches(rec) {
			continue
		}
		counts[ColorKey(rec, depth, f)]++
	}

	lg.Keys = SortKeys(counts)
	for _, k := range lg.Keys {
		lg.Rows = append(lg.Rows, LegendRow{Key: k, Color: Color(k), Count: counts[k]})
	}
	return lg
}

// SortKeys returns the keys sorted, with placeholder keys last.
func SortKeys[V any](set map[string]V) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := placeholderRank(keys[i]), placeholderRank(keys[j])
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func placeholderRank(k string) int {
	switch k {
	case KeyOther:
		return 1
	case KeyUnclassified:
		return 2
	}
	return 0
}

func legendTitle(depth model.Level) string {
	return "Languages by " + depth.String()
}
