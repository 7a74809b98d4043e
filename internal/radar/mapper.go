// Package radar places projected points inside a circular viewport.
package radar

import (
	"fmt"
	"math"

	"github.com/genradar/genradar/pkg/core"
)

// Map places pp in a viewport of the given radius centered at (radius, radius).
// Bearing 0 points up. Points farther than maxDistanceMeters sit on the rim.
func Map(pp core.ProjectedPoint, viewportRadiusPx float32, maxDistanceMeters float64) core.ScreenPoint {
	return place(pp, pp.BearingDegrees, viewportRadiusPx, viewportRadiusPx, viewportRadiusPx, maxDistanceMeters)
}

// Mapper binds a viewport and range so points can be placed under a heading offset.
type Mapper struct {
	viewport          core.Viewport
	maxDistanceMeters float64
}

// NewMapper validates the viewport and range.
func NewMapper(viewport core.Viewport, maxDistanceMeters float64) (*Mapper, error) {
	if err := viewport.Validate(); err != nil {
		return nil, err
	}
	if !(maxDistanceMeters > 0) || math.IsInf(maxDistanceMeters, 0) {
		return nil, &core.ConfigError{Field: "maxDistanceMeters", Reason: fmt.Sprintf("must be positive and finite, got %v", maxDistanceMeters)}
	}
	return &Mapper{viewport: viewport, maxDistanceMeters: maxDistanceMeters}, nil
}

func (m *Mapper) Viewport() core.Viewport     { return m.viewport }
func (m *Mapper) MaxDistanceMeters() float64 { return m.maxDistanceMeters }

// Scale returns pixels per meter.
func (m *Mapper) Scale() float64 {
	return float64(m.viewport.Radius()) / m.maxDistanceMeters
}

// Map places pp rotated by offsetDegrees, the direction the device faces.
// A point straight ahead of the device is drawn at the top.
func (m *Mapper) Map(pp core.ProjectedPoint, offsetDegrees float64) core.ScreenPoint {
	cx, cy := m.viewport.Center()
	return place(pp, pp.BearingDegrees-offsetDegrees, cx, cy, m.viewport.Radius(), m.maxDistanceMeters)
}

// MapAll places every point in order.
func (m *Mapper) MapAll(projected []core.ProjectedPoint, offsetDegrees float64) []core.ScreenPoint {
	out := make([]core.ScreenPoint, len(projected))
	for i, pp := range projected {
		out[i] = m.Map(pp, offsetDegrees)
	}
	return out
}

func place(pp core.ProjectedPoint, angleDegrees float64, cx, cy, radius float32, maxDistanceMeters float64) core.ScreenPoint {
	r := float64(radius)
	radial := pp.DistanceMeters * r / maxDistanceMeters
	clamped := radial > r
	if clamped {
		radial = r
	}

	theta := angleDegrees * math.Pi / 180
	return core.ScreenPoint{
		Label:   pp.Point.Label(),
		X:       cx + float32(radial*math.Sin(theta)),
		Y:       cy - float32(radial*math.Cos(theta)),
		Visible: true,
		Clamped: clamped,
	}
}
