package api

import (
	"net/http"
	"strconv"

	"lingomap/pkg/catalog"
	"lingomap/pkg/model"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 200
)

// LanguageHandler serves catalogue lookups.
type LanguageHandler struct {
	cat *catalog.Catalog
}

// NewLanguageHandler creates a new LanguageHandler.
func NewLanguageHandler(cat *catalog.Catalog) *LanguageHandler {
	return &LanguageHandler{cat: cat}
}

// LanguageResponse is a record plus its effective dialect variants.
type LanguageResponse struct {
	*model.LanguageRecord
	Variants []VariantDTO `json:"variants"`
}

// VariantDTO is one playable dialect variant.
type VariantDTO struct {
	model.DialectVariant
	Key string `json:"key"`
}

// SearchResponse lists search hits.
type SearchResponse struct {
	Query   string          `json:"query"`
	Total   int             `json:"total"`
	Results []catalog.Match `json:"results"`
}

// HandleSearch handles GET /api/languages?q=&limit=
func (h *LanguageHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	results := h.cat.Search(q, limit)
	if results == nil {
		results = []catalog.Match{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Query: q, Total: len(results), Results: results})
}

// HandleGet handles GET /api/languages/{id}
func (h *LanguageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.cat.ByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown language")
		return
	}
	resp := LanguageResponse{LanguageRecord: rec}
	for i, d := range catalog.EffectiveDialects(rec) {
		resp.Variants = append(resp.Variants, VariantDTO{DialectVariant: d, Key: model.VariantKey(d, i)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSuggest handles GET /api/suggest?q=
func (h *LanguageHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	out := h.cat.Suggest(r.URL.Query().Get("q"), limit)
	if out == nil {
		out = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}

// FilterOptionsResponse lists the choices for the next filter selector.
type FilterOptionsResponse struct {
	Level   string       `json:"level"`
	Filter  model.Filter `json:"filter"`
	Options []string     `json:"options"`
	Count   int          `json:"count"` // records matching the filter
}

// HandleFilters handles GET /api/filters?family=..&level=branch
// Without a level it returns the options one level below the active filter.
func (h *LanguageHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	level := model.Level(len(f.Active()))
	if level > model.LevelDialect {
		level = model.LevelDialect
	}
	if raw := r.URL.Query().Get("level"); raw != "" {
		l, ok := model.ParseLevel(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown level")
			return
		}
		level = l
	}

	opts := h.cat.FilterOptions(f, level)
	if opts == nil {
		opts = []string{}
	}
	writeJSON(w, http.StatusOK, FilterOptionsResponse{
		Level:   level.String(),
		Filter:  f,
		Options: opts,
		Count:   len(h.cat.Filter(f)),
	})
}

func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultSearchLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	if n == 0 || n > maxSearchLimit {
		n = maxSearchLimit
	}
	return n, true
}

// parseFilter reads the taxonomy filter from query parameters.
func parseFilter(r *http.Request) model.Filter {
	q := r.URL.Query()
	return model.Filter{
		Family:   q.Get("family"),
		Branch:   q.Get("branch"),
		Group:    q.Get("group"),
		Subgroup: q.Get("subgroup"),
		Language: q.Get("language"),
		Dialect:  q.Get("dialect"),
	}
}
