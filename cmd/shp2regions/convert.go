package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

var (
	codeFields = []string{"ISO_A2", "ISO_A2_EH", "WB_A2"}
	nameFields = []string{"NAME", "ADMIN", "NAME_LONG"}
)

// run converts the shapefile and returns the number of regions written.
// Shapes without a usable two-letter code are dropped.
func run(inputPath, outputPath string, tolerance float64) (int, error) {
	shape, err := shp.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shape.Close()

	fields := shape.Fields()
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[strings.ToUpper(f.String())] = i
	}

	fc := geojson.NewFeatureCollection()
	skipped := 0
	for shape.Next() {
		n, p := shape.Shape()

		poly, ok := p.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		code := firstAttr(shape, n, index, codeFields, validCode)
		if code == "" {
			skipped++
			continue
		}

		var geometry orb.Geometry = convertPolygon(poly)
		if tolerance > 0 {
			geometry = simplify.DouglasPeucker(tolerance).Simplify(geometry)
		}

		f := geojson.NewFeature(geometry)
		f.Properties["iso_a2"] = code
		f.Properties["name"] = firstAttr(shape, n, index, nameFields, func(s string) bool { return s != "" })
		fc.Append(f)
	}
	if err := shape.Err(); err != nil {
		return 0, fmt.Errorf("error iterating shapes: %w", err)
	}
	if skipped > 0 {
		log.Printf("Skipped %d shapes without polygon geometry or ISO code", skipped)
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write output file: %w", err)
	}
	return len(fc.Features), nil
}

func firstAttr(r *shp.Reader, row int, index map[string]int, names []string, ok func(string) bool) string {
	for _, name := range names {
		i, found := index[name]
		if !found {
			continue
		}
		v := strings.TrimSpace(r.ReadAttribute(row, i))
		if ok(v) {
			return v
		}
	}
	return ""
}

// validCode accepts two ASCII letters. Natural Earth uses "-99" for none.
func validCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, c := range s {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// convertPolygon splits shapefile parts into polygons. Clockwise rings are
// outer boundaries; counter-clockwise rings are holes of the outer ring that
// contains them.
func convertPolygon(s *shp.Polygon) orb.MultiPolygon {
	var mp orb.MultiPolygon
	var holes []orb.Ring

	for i := 0; i < int(s.NumParts); i++ {
		start := s.Parts[i]
		end := s.NumPoints
		if i < int(s.NumParts)-1 {
			end = s.Parts[i+1]
		}

		var ring orb.Ring
		for j := start; j < end; j++ {
			ring = append(ring, orb.Point{s.Points[j].X, s.Points[j].Y})
		}
		if len(ring) < 4 {
			continue
		}
		if ring.Orientation() == orb.CCW {
			holes = append(holes, ring)
			continue
		}
		mp = append(mp, orb.Polygon{ring})
	}

	for _, h := range holes {
		placed := false
		for i := range mp {
			if planar.RingContains(mp[i][0], h[0]) {
				mp[i] = append(mp[i], h)
				placed = true
				break
			}
		}
		if !placed {
			// orphan: treat as an outer ring with the wrong winding
			mp = append(mp, orb.Polygon{h})
		}
	}
	return mp
}
