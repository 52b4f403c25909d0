package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"lingomap/pkg/geo"
	"lingomap/pkg/mapstyle"
	"lingomap/pkg/model"
)

// MapHandler serves region styles, legends and point lookups.
type MapHandler struct {
	res     *mapstyle.Resolver
	snap    *mapstyle.Snapshotter
	regions *geo.RegionService // nil without boundary data
	loc     *geo.Locator       // nil without boundary data
	rings   int
}

// NewMapHandler creates a new MapHandler. regions and loc may be nil.
func NewMapHandler(res *mapstyle.Resolver, snap *mapstyle.Snapshotter, regions *geo.RegionService, loc *geo.Locator, rings int) *MapHandler {
	return &MapHandler{res: res, snap: snap, regions: regions, loc: loc, rings: rings}
}

// depthFor returns the explicit depth query parameter, or the filter's display depth.
func depthFor(r *http.Request, f model.Filter) (model.Level, bool) {
	raw := r.URL.Query().Get("depth")
	if raw == "" {
		return mapstyle.DisplayDepth(f), true
	}
	return model.ParseLevel(raw)
}

// RegionResponse is a region style with its display name.
type RegionResponse struct {
	mapstyle.RegionStyle
	Name string `json:"name,omitempty"`
}

// HandleRegion handles GET /api/map/regions/{code}
func (h *MapHandler) HandleRegion(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	depth, ok := depthFor(r, f)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown depth")
		return
	}
	rs := h.res.RegionAtDepth(r.PathValue("code"), f, depth)
	resp := RegionResponse{RegionStyle: rs}
	if h.regions != nil {
		resp.Name = h.regions.RegionName(rs.Code)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleLegend handles GET /api/map/legend
func (h *MapHandler) HandleLegend(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	depth, ok := depthFor(r, f)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown depth")
		return
	}
	writeJSON(w, http.StatusOK, h.res.LegendAtDepth(f, depth))
}

// HandleView handles POST /api/map/view. The latest filter wins; a request
// overtaken by a newer one answers 409.
func (h *MapHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	var f model.Filter
	if !decodeBody(w, r, &f) {
		return
	}
	view, ok := h.snap.Apply(f)
	if !ok {
		writeError(w, http.StatusConflict, "superseded by a newer filter")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleLatestView handles GET /api/map/view
func (h *MapHandler) HandleLatestView(w http.ResponseWriter, r *http.Request) {
	view := h.snap.Latest()
	if view == nil {
		view, _ = h.snap.Apply(model.Filter{})
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleGeoJSON handles GET /api/map/geojson
func (h *MapHandler) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	if h.regions == nil {
		writeError(w, http.StatusServiceUnavailable, "region boundaries not loaded")
		return
	}
	fc, err := h.regions.Collection()
	if err != nil {
		slog.Error("Failed to copy region collection", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load regions")
		return
	}
	h.res.StyleFeatures(fc, parseFilter(r))

	data, err := fc.MarshalJSON()
	if err != nil {
		slog.Error("Failed to encode region collection", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to encode regions")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if _, err := w.Write(data); err != nil {
		slog.Error("Failed to write geojson response", "error", err)
	}
}

// PointResponse answers a map click.
type PointResponse struct {
	geo.RegionResult
	Style *mapstyle.RegionStyle `json:"style,omitempty"`
}

// HandleAt handles GET /api/map/at?lat=&lon=
func (h *MapHandler) HandleAt(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := parseLatLon(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lat/lon")
		return
	}
	if h.regions == nil {
		writeError(w, http.StatusServiceUnavailable, "region boundaries not loaded")
		return
	}
	resp := PointResponse{RegionResult: h.regions.RegionAt(lat, lon)}
	if resp.Code != "" {
		rs := h.res.Region(resp.Code, parseFilter(r))
		resp.Style = &rs
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleNearby handles GET /api/map/nearby?lat=&lon=&rings=
func (h *MapHandler) HandleNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := parseLatLon(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lat/lon")
		return
	}
	rings := h.rings
	if raw := r.URL.Query().Get("rings"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid rings")
			return
		}
		rings = n
	}
	if h.loc == nil {
		writeError(w, http.StatusServiceUnavailable, "nearby index not loaded")
		return
	}
	out, err := h.loc.Nearby(lat, lon, rings)
	if errors.Is(err, geo.ErrInvalidRings) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Warn("Nearby lookup failed", "lat", lat, "lon", lon, "error", err)
		writeError(w, http.StatusBadRequest, "invalid coordinates")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func parseLatLon(r *http.Request) (lat, lon float64, ok bool) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}
