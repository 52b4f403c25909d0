// Package geo answers map questions: which region lies under a point and
// which languages are centered nearby. Points are orb [lon, lat] pairs.
package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b orb.Point) float64 {
	return orbgeo.DistanceHaversine(a, b)
}
