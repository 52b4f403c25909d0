package geo

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

func containsPoint(geom orb.Geometry, point orb.Point) bool {
	switch g := geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, point)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, point)
	}
	return false
}

// closestPoint returns the boundary point of geom nearest to p. Nearness is
// planar in degrees, which is good enough within territorial waters.
func closestPoint(geom orb.Geometry, p orb.Point) (orb.Point, bool) {
	var best orb.Point
	bestD := math.MaxFloat64
	found := false

	visit := func(r orb.Ring) {
		for i := 0; i+1 < len(r); i++ {
			c := projectOnSegment(p, r[i], r[i+1])
			if d := planar.DistanceSquared(p, c); d < bestD {
				best, bestD, found = c, d, true
			}
		}
	}
	switch g := geom.(type) {
	case orb.Polygon:
		for _, r := range g {
			visit(r)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, r := range poly {
				visit(r)
			}
		}
	}
	return best, found
}

func projectOnSegment(p, a, b orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	if dx == 0 && dy == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}

// getISOCode extracts the ISO alpha-2 code. Natural Earth has -99 for some
// territories (e.g. France, Kosovo) and keeps the usable code in ISO_A2_EH.
func getISOCode(props geojson.Properties) string {
	for _, key := range []string{"iso_a2", "ISO_A2", "iso_a2_eh", "ISO_A2_EH"} {
		code := strings.ToUpper(strings.TrimSpace(props.MustString(key, "")))
		if len(code) == 2 {
			return code
		}
	}
	return ""
}

func getName(props geojson.Properties) string {
	for _, key := range []string{"name", "NAME", "name_en", "NAME_EN"} {
		if n := props.MustString(key, ""); n != "" {
			return n
		}
	}
	return ""
}
