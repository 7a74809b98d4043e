// pkg/core/point.go
package core

import (
	"fmt"
	"math"
	"strconv"
)

// Point is a point of interest placed on the radar.
// Fields are unexported so a Point cannot change after construction.
type Point struct {
	label     string
	latitude  float64
	longitude float64
	altitude  float64
	radius    float32
	color     Color
}

// NewPoint creates a point of interest.
// Altitude is carried along but not used by the projection.
func NewPoint(label string, latitude, longitude, altitude float64, radius float32, color Color) Point {
	return Point{
		label:     label,
		latitude:  latitude,
		longitude: longitude,
		altitude:  altitude,
		radius:    radius,
		color:     color,
	}
}

func (p Point) Label() string      { return p.label }
func (p Point) Latitude() float64  { return p.latitude }
func (p Point) Longitude() float64 { return p.longitude }
func (p Point) Altitude() float64  { return p.altitude }
func (p Point) Radius() float32    { return p.radius }
func (p Point) Color() Color       { return p.color }

// Key identifies a point for deduplication: label plus exact coordinates.
func (p Point) Key() string {
	return p.label + "|" + strconv.FormatFloat(p.latitude, 'g', -1, 64) +
		"|" + strconv.FormatFloat(p.longitude, 'g', -1, 64)
}

// SameLocation reports whether both points share latitude and longitude.
func (p Point) SameLocation(o Point) bool {
	return p.latitude == o.latitude && p.longitude == o.longitude
}

func (p Point) String() string {
	return fmt.Sprintf("%s (%f, %f)", p.label, p.latitude, p.longitude)
}

// ProjectedPoint is a point expressed relative to the radar center.
type ProjectedPoint struct {
	Point          Point
	BearingDegrees float64 // [0,360), clockwise from north
	DistanceMeters float64
}

// ScreenPoint is a projected point placed inside the viewport.
type ScreenPoint struct {
	Label   string
	X       float32
	Y       float32
	Visible bool
	Clamped bool // beyond max distance, drawn on the rim
}

// Viewport is the radar's drawing area in logical pixels.
type Viewport struct {
	Width  float32
	Height float32
}

// Radius returns the radius of the circle inscribed in the viewport.
func (v Viewport) Radius() float32 {
	return min(v.Width, v.Height) / 2
}

// Center returns the viewport center.
func (v Viewport) Center() (x, y float32) {
	return v.Width / 2, v.Height / 2
}

// Validate returns a ConfigError for dimensions that are not positive and finite.
func (v Viewport) Validate() error {
	if !validSide(v.Width) {
		return &ConfigError{Field: "width", Reason: fmt.Sprintf("must be positive and finite, got %v", v.Width)}
	}
	if !validSide(v.Height) {
		return &ConfigError{Field: "height", Reason: fmt.Sprintf("must be positive and finite, got %v", v.Height)}
	}
	return nil
}

// NaN fails every comparison, so test for the valid range.
func validSide(f float32) bool {
	return f > 0 && !math.IsInf(float64(f), 1)
}
