package geo

import (
	"encoding/json"
	"fmt"

	"github.com/genradar/genradar/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// ParseTrack parses a JSON array of [long,lat] pairs into a geom.LineString.
// Input format: "[[x1,y1],[x2,y2],...]"
func ParseTrack(input string) (geom.LineString, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(input), &coords); err != nil {
		return geom.LineString{}, fmt.Errorf("failed to parse track JSON: %w", err)
	}

	if len(coords) < 2 {
		return geom.LineString{}, fmt.Errorf("track must have at least 2 points, got %d", len(coords))
	}

	flatCoords := make([]float64, 0, len(coords)*2)
	for i, coord := range coords {
		if len(coord) < 2 {
			return geom.LineString{}, fmt.Errorf("coordinate %d has insufficient values", i)
		}
		if err := ValidateLatLon(coord[1], coord[0]); err != nil {
			return geom.LineString{}, fmt.Errorf("coordinate %d: %w", i, err)
		}
		flatCoords = append(flatCoords, coord[0], coord[1])
	}

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// TrackPoints returns the vertices of a track as points labelled with label.
func TrackPoints(label string, track geom.LineString) []core.Point {
	seq := track.Coordinates()
	points := make([]core.Point, 0, seq.Length())
	for i := 0; i < seq.Length(); i++ {
		c := seq.Get(i)
		points = append(points, core.NewPoint(label, c.Y, c.X, 0, 0, core.Transparent))
	}
	return points
}
