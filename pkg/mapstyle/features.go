package mapstyle

import (
	"strings"

	"github.com/paulmach/orb/geojson"

	"lingomap/pkg/model"
)

// CodeOf returns a feature's ISO alpha-2 code. Natural Earth marks some
// countries "-99" in iso_a2 and keeps the usable code in iso_a2_eh.
func CodeOf(f *geojson.Feature) string {
	for _, key := range []string{"iso_a2", "ISO_A2", "iso_a2_eh", "ISO_A2_EH"} {
		code := strings.ToUpper(strings.TrimSpace(f.Properties.MustString(key, "")))
		if len(code) == 2 {
			return code
		}
	}
	return ""
}

// StyleFeatures writes style properties onto every feature of fc in place
// and returns fc. Features without a code are styled as no data.
func (r *Resolver) StyleFeatures(fc *geojson.FeatureCollection, f model.Filter) *geojson.FeatureCollection {
	if fc == nil {
		return nil
	}
	depth := DisplayDepth(f)
	for _, feat := range fc.Features {
		if feat.Properties == nil {
			feat.Properties = geojson.Properties{}
		}
		rs := r.RegionAtDepth(CodeOf(feat), f, depth)
		feat.Properties["fillColor"] = rs.FillColor
		feat.Properties["fillOpacity"] = rs.FillOpacity
		feat.Properties["strokeColor"] = rs.StrokeColor
		feat.Properties["strokeWeight"] = rs.StrokeWeight
		feat.Properties["status"] = string(rs.Status)
		if rs.ColorKey != "" {
			feat.Properties["colorKey"] = rs.ColorKey
		} else {
			delete(feat.Properties, "colorKey")
		}
	}
	return fc
}
