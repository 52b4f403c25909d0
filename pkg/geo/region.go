package geo

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"lingomap/pkg/logging"
)

// Coastal waters threshold (12 nautical miles).
const TerritorialWatersM = 12 * 1852

// Zone constants
const (
	ZoneLand        = "land"
	ZoneTerritorial = "territorial"
	ZoneNone        = "none"
)

// maxCacheEntries bounds the lookup cache; it is cleared when full.
const maxCacheEntries = 4096

// RegionResult is the answer to a point lookup.
type RegionResult struct {
	Code      string  `json:"code,omitempty"` // ISO 3166-1 alpha-2
	Name      string  `json:"name,omitempty"`
	Zone      string  `json:"zone"`
	DistanceM float64 `json:"distanceM"` // distance to the nearest border, 0 on land
}

// RegionService provides region boundary lookups over a GeoJSON FeatureCollection.
type RegionService struct {
	raw      []byte
	features []*geojson.Feature
	byCode   map[string]*geojson.Feature
	codes    []string

	mu    sync.RWMutex
	cache map[string]RegionResult
}

// NewRegionService loads region boundaries from a GeoJSON file.
func NewRegionService(path string) (*RegionService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read regions GeoJSON: %w", err)
	}
	return NewRegionServiceFromData(data)
}

// NewRegionServiceFromData parses region boundaries. Features without a
// usable alpha-2 code are ignored.
func NewRegionServiceFromData(data []byte) (*RegionService, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regions GeoJSON: %w", err)
	}

	s := &RegionService{
		raw:    data,
		byCode: make(map[string]*geojson.Feature, len(fc.Features)),
		cache:  make(map[string]RegionResult),
	}
	for _, f := range fc.Features {
		code := getISOCode(f.Properties)
		if code == "" || f.Geometry == nil {
			continue
		}
		s.features = append(s.features, f)
		if _, dup := s.byCode[code]; !dup {
			s.byCode[code] = f
			s.codes = append(s.codes, code)
		}
	}
	sort.Strings(s.codes)

	slog.Info("RegionService: Loaded region boundaries", "features", len(s.features), "codes", len(s.codes))
	return s, nil
}

// Codes returns the sorted region codes.
func (s *RegionService) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// RegionName returns the display name for a code, or "".
func (s *RegionService) RegionName(code string) string {
	if f, ok := s.byCode[code]; ok {
		return getName(f.Properties)
	}
	return ""
}

// Bound returns the bounding box of a region.
func (s *RegionService) Bound(code string) (orb.Bound, bool) {
	f, ok := s.byCode[code]
	if !ok {
		return orb.Bound{}, false
	}
	return f.Geometry.Bound(), true
}

// Collection returns a fresh copy of the regions. Callers may mutate it.
func (s *RegionService) Collection() (*geojson.FeatureCollection, error) {
	return geojson.UnmarshalFeatureCollection(s.raw)
}

// RegionAt returns the region at the given coordinates.
// Results are cached using ~1km (0.01 degree) quantization.
func (s *RegionService) RegionAt(lat, lon float64) RegionResult {
	key := fmt.Sprintf("%.2f,%.2f", lat, lon)

	s.mu.RLock()
	if r, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return r
	}
	s.mu.RUnlock()

	result := s.lookup(lat, lon)
	logging.TraceDefault("Region lookup", "lat", lat, "lon", lon, "code", result.Code, "zone", result.Zone)

	s.mu.Lock()
	if len(s.cache) >= maxCacheEntries {
		s.cache = make(map[string]RegionResult)
	}
	s.cache[key] = result
	s.mu.Unlock()
	return result
}

// ResetCache clears all entries from the cache.
func (s *RegionService) ResetCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]RegionResult)
}

func (s *RegionService) lookup(lat, lon float64) RegionResult {
	point := orb.Point{lon, lat}

	for _, f := range s.features {
		if f.Geometry.Bound().Contains(point) && containsPoint(f.Geometry, point) {
			return RegionResult{Code: getISOCode(f.Properties), Name: getName(f.Properties), Zone: ZoneLand}
		}
	}

	// over water: attribute coastal clicks to the nearest region
	best := RegionResult{Zone: ZoneNone}
	minDist := math.MaxFloat64
	for _, f := range s.features {
		if !orbgeo.BoundPad(f.Geometry.Bound(), TerritorialWatersM).Contains(point) {
			continue
		}
		c, ok := closestPoint(f.Geometry, point)
		if !ok {
			continue
		}
		if d := Distance(point, c); d < minDist {
			minDist = d
			best = RegionResult{
				Code:      getISOCode(f.Properties),
				Name:      getName(f.Properties),
				Zone:      ZoneTerritorial,
				DistanceM: d,
			}
		}
	}
	if minDist > TerritorialWatersM {
		return RegionResult{Zone: ZoneNone}
	}
	return best
}
