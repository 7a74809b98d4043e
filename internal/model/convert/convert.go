// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"fmt"

	"github.com/genradar/genradar/internal/geo"
	"github.com/genradar/genradar/internal/model"
	"github.com/genradar/genradar/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// CenterOrdinal is the ordinal stored on a set's center row.
const CenterOrdinal = -1

// CoreToPointRecord converts a core.Point to a GORM model.PointRecord.
func CoreToPointRecord(p core.Point, ordinal int, isCenter bool) model.PointRecord {
	merc, _ := geo.ToWebMercator(p).XY()
	return model.PointRecord{
		Ordinal:   ordinal,
		IsCenter:  isCenter,
		Label:     p.Label(),
		Latitude:  p.Latitude(),
		Longitude: p.Longitude(),
		Altitude:  p.Altitude(),
		MercatorX: merc.X,
		MercatorY: merc.Y,
		Location:  geo.ToGeometry(p).AsBinary(),
		Radius:    p.Radius(),
		Color:     datatypes.NewJSONType(p.Color()),
	}
}

// PointRecordToCore converts a GORM model.PointRecord back to a core.Point.
// Latitude and longitude columns are authoritative; Location is not read.
func PointRecordToCore(r model.PointRecord) core.Point {
	return core.NewPoint(r.Label, r.Latitude, r.Longitude, r.Altitude, r.Radius, r.Color.Data())
}

// LocationOf decodes a record's WKB location.
func LocationOf(r model.PointRecord) (geom.Point, error) {
	g, err := geom.UnmarshalWKB(r.Location)
	if err != nil {
		return geom.Point{}, fmt.Errorf("decoding location of %q: %w", r.Label, err)
	}
	pt, ok := g.AsPoint()
	if !ok {
		return geom.Point{}, fmt.Errorf("location of %q is a %s, not a point", r.Label, g.Type())
	}
	return pt, nil
}

// CoreToPointSet builds a set with its center first, followed by the points in order.
func CoreToPointSet(name string, center core.Point, points []core.Point) model.PointSet {
	records := make([]model.PointRecord, 0, len(points)+1)
	records = append(records, CoreToPointRecord(center, CenterOrdinal, true))
	for i, p := range points {
		records = append(records, CoreToPointRecord(p, i, false))
	}
	return model.PointSet{Name: name, Points: records}
}

// PointSetToCore splits a stored set into its center and ordered points.
// Records are expected in ordinal order.
func PointSetToCore(s model.PointSet) (center core.Point, points []core.Point, err error) {
	found := false
	for _, r := range s.Points {
		if r.IsCenter {
			center = PointRecordToCore(r)
			found = true
			continue
		}
		points = append(points, PointRecordToCore(r))
	}
	if !found {
		return core.Point{}, nil, fmt.Errorf("point set %q has no center", s.Name)
	}
	return center, points, nil
}
