package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/genradar/genradar/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// Points are kept in EPSG:4326 (X = longitude, Y = latitude, Z = altitude).
// Planar work happens in EPSG:3857, converted on demand.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// PointFromString parses "long,lat" or "long,lat,elev" into a point with the given label, radius and color.
func PointFromString(label, coords string, radius float32, color core.Color) (core.Point, error) {
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) < 2 {
		return core.Point{}, ErrInvalidCoordinates
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[0]), 64)
	if err != nil {
		return core.Point{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[1]), 64)
	if err != nil {
		return core.Point{}, ErrInvalidCoordinates
	}
	var elev float64
	if len(coordsSplit) > 2 {
		elev, err = strconv.ParseFloat(strings.TrimSpace(coordsSplit[2]), 64)
		if err != nil {
			return core.Point{}, ErrInvalidCoordinates
		}
	}
	if err := ValidateLatLon(lat, long); err != nil {
		return core.Point{}, err
	}
	return core.NewPoint(label, lat, long, elev, radius, color), nil
}

// ValidateLatLon checks that latitude and longitude are finite and within WGS84 bounds.
func ValidateLatLon(lat, lon float64) error {
	if !(lat >= -90 && lat <= 90) {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinates, lat)
	}
	if !(lon >= -180 && lon <= 180) {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinates, lon)
	}
	return nil
}

// ToGeometry converts a point to a 3D geom.Point in EPSG:4326.
func ToGeometry(p core.Point) geom.Point {
	return geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: p.Longitude(), Y: p.Latitude()},
			Z:    p.Altitude(),
			Type: geom.CoordinatesType(geom.DimXYZ),
		},
	)
}

// ToWebMercator converts a point to a 2D geom.Point in EPSG:3857.
func ToWebMercator(p core.Point) geom.Point {
	x, y := webMercator(p.Longitude(), p.Latitude())
	return geom.NewPoint(geom.Coordinates{XY: geom.XY{X: x, Y: y}})
}

var to3857 = wgs84.EPSG().Transform(4326, 3857)

func webMercator(longitude, latitude float64) (x, y float64) {
	x, y, _ = to3857(longitude, latitude, 0)
	return x, y
}
