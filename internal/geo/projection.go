package geo

import (
	"fmt"
	"math"

	"github.com/genradar/genradar/pkg/core"
)

// EarthRadiusMeters is the IUGG mean earth radius.
const EarthRadiusMeters = 6371008.8

// Projector expresses target relative to center.
type Projector func(center, target core.Point) core.ProjectedPoint

// Project is the default projector.
var Project Projector = Spherical

// Spherical uses the great-circle initial bearing and the haversine distance.
// Coincident points project to distance 0, bearing 0.
func Spherical(center, target core.Point) core.ProjectedPoint {
	pp := core.ProjectedPoint{Point: target}
	if center.SameLocation(target) {
		return pp
	}

	lat1 := toRadians(center.Latitude())
	lat2 := toRadians(target.Latitude())
	deltaLat := lat2 - lat1
	deltaLon := toRadians(target.Longitude() - center.Longitude())

	u := math.Sin(deltaLat / 2)
	v := math.Sin(deltaLon / 2)
	c1 := math.Cos(lat1)
	c2 := math.Cos(lat2)
	a := u*u + v*v*c1*c2
	pp.DistanceMeters = EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	y := math.Sin(deltaLon) * c2
	x := c1*math.Sin(lat2) - math.Sin(lat1)*c2*math.Cos(deltaLon)
	pp.BearingDegrees = NormalizeHeading(toDegrees(math.Atan2(y, x)))
	return pp
}

// Mercator measures bearing and distance on the EPSG:3857 plane.
// Planar distance is scaled back to ground meters at the mean latitude,
// which keeps it close to Spherical for radar-sized ranges.
func Mercator(center, target core.Point) core.ProjectedPoint {
	pp := core.ProjectedPoint{Point: target}
	if center.SameLocation(target) {
		return pp
	}

	x1, y1 := webMercator(center.Longitude(), center.Latitude())
	x2, y2 := webMercator(target.Longitude(), target.Latitude())
	dx, dy := x2-x1, y2-y1

	midLat := toRadians((center.Latitude() + target.Latitude()) / 2)
	pp.DistanceMeters = math.Hypot(dx, dy) * math.Cos(midLat)
	pp.BearingDegrees = NormalizeHeading(toDegrees(math.Atan2(dx, dy)))
	return pp
}

// ProjectorByName resolves a configured projection name.
func ProjectorByName(name string) (Projector, error) {
	switch name {
	case "", "spherical":
		return Spherical, nil
	case "mercator":
		return Mercator, nil
	default:
		return nil, &core.ConfigError{Field: "projection", Reason: fmt.Sprintf("unknown projection %q", name)}
	}
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }
