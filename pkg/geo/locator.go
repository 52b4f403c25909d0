package geo

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/paulmach/orb"
	"github.com/uber/h3-go/v4"

	"lingomap/pkg/model"
)

// MaxRings caps the neighborhood size of a Nearby query.
const MaxRings = 10

// ErrInvalidRings is returned for a negative or oversized ring count.
var ErrInvalidRings = errors.New("ring count out of range")

// NearbyLanguage is one Nearby hit.
type NearbyLanguage struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Center      orb.Point `json:"center"`
	DistanceM   float64   `json:"distanceM"`
}

type located struct {
	id     string
	name   string
	center orb.Point
}

// Locator indexes language centers into H3 cells.
type Locator struct {
	res   int
	cells map[h3.Cell][]located
}

// NewLocator indexes every record with a resolvable center at H3 resolution res.
// regions may be nil; records without an explicit center are then skipped.
func NewLocator(records []model.LanguageRecord, regions *RegionService, res int) (*Locator, error) {
	l := &Locator{res: res, cells: make(map[h3.Cell][]located)}
	skipped := 0
	for i := range records {
		rec := &records[i]
		center, ok := CenterOf(rec, regions)
		if !ok {
			skipped++
			continue
		}
		cell, err := h3.LatLngToCell(h3.NewLatLng(center.Lat(), center.Lon()), res)
		if err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", rec.ID, err)
		}
		l.cells[cell] = append(l.cells[cell], located{id: rec.ID, name: rec.DisplayName, center: center})
	}
	slog.Debug("Locator: Indexed language centers", "cells", len(l.cells), "skipped", skipped, "resolution", res)
	return l, nil
}

// Nearby returns the languages centered within k rings of the cell holding
// (lat, lon), closest first.
func (l *Locator) Nearby(lat, lon float64, k int) ([]NearbyLanguage, error) {
	if k < 0 || k > MaxRings {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRings, k)
	}
	origin, err := h3.LatLngToCell(h3.NewLatLng(lat, lon), l.res)
	if err != nil {
		return nil, fmt.Errorf("failed to locate point: %w", err)
	}
	disk, err := h3.GridDisk(origin, k)
	if err != nil {
		return nil, fmt.Errorf("failed to expand neighborhood: %w", err)
	}

	here := orb.Point{lon, lat}
	out := []NearbyLanguage{}
	for _, c := range disk {
		for _, loc := range l.cells[c] {
			out = append(out, NearbyLanguage{
				ID:          loc.id,
				DisplayName: loc.name,
				Center:      loc.center,
				DistanceM:   Distance(here, loc.center),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceM != out[j].DistanceM {
			return out[i].DistanceM < out[j].DistanceM
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CenterOf returns the record's center, or the bound center of its primary
// country.
func CenterOf(rec *model.LanguageRecord, regions *RegionService) (orb.Point, bool) {
	if rec.Center != nil {
		return *rec.Center, true
	}
	if regions == nil {
		return orb.Point{}, false
	}
	b, ok := regions.Bound(rec.PrimaryCountry())
	if !ok {
		return orb.Point{}, false
	}
	return b.Center(), true
}
