// Package fixture loads points of interest from YAML files.
package fixture

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/genradar/genradar/internal/geo"
	"github.com/genradar/genradar/pkg/core"
	"gopkg.in/yaml.v3"
)

// DefaultRadius is used for entries without a radius.
const DefaultRadius float32 = 1.2

// Entry is one point as written in a fixture file.
type Entry struct {
	Label     string  `yaml:"label"`
	Latitude  float64 `yaml:"lat"`
	Longitude float64 `yaml:"lon"`
	Altitude  float64 `yaml:"alt,omitempty"`
	// Coords is "long,lat[,alt]" and takes precedence over lat/lon/alt.
	Coords    string  `yaml:"coords,omitempty"`
	Radius    float32 `yaml:"radius,omitempty"`
	// Color is a name (blue, red, ...) or an ARGB hex value like "#ff0000ff".
	Color     string  `yaml:"color,omitempty"`
}

// File is the document layout of a fixture.
type File struct {
	Name   string  `yaml:"name"`
	Center Entry   `yaml:"center"`
	Points []Entry `yaml:"points"`
}

// Fixture is a parsed point set.
type Fixture struct {
	Name   string
	Center core.Point
	Points []core.Point
}

// Load reads and parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes fixture YAML.
func Parse(data []byte) (*Fixture, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	// the center is invisible unless a color is given
	center, err := f.Center.toPoint(core.Transparent)
	if err != nil {
		return nil, fmt.Errorf("center: %w", err)
	}

	out := &Fixture{Name: f.Name, Center: center, Points: make([]core.Point, 0, len(f.Points))}
	for i, e := range f.Points {
		p, err := e.toPoint(core.Blue)
		if err != nil {
			return nil, fmt.Errorf("point %d (%s): %w", i, e.Label, err)
		}
		out.Points = append(out.Points, p)
	}
	return out, nil
}

// Marshal writes a point set back to YAML.
func Marshal(name string, center core.Point, points []core.Point) ([]byte, error) {
	f := File{Name: name, Center: fromPoint(center)}
	for _, p := range points {
		f.Points = append(f.Points, fromPoint(p))
	}
	return yaml.Marshal(f)
}

func (e Entry) toPoint(defaultColor core.Color) (core.Point, error) {
	col := defaultColor
	if e.Color != "" {
		c, err := ParseColor(e.Color)
		if err != nil {
			return core.Point{}, err
		}
		col = c
	}

	radius := e.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}

	if e.Coords != "" {
		return geo.PointFromString(e.Label, e.Coords, radius, col)
	}
	if err := geo.ValidateLatLon(e.Latitude, e.Longitude); err != nil {
		return core.Point{}, err
	}
	return core.NewPoint(e.Label, e.Latitude, e.Longitude, e.Altitude, radius, col), nil
}

func fromPoint(p core.Point) Entry {
	return Entry{
		Label:     p.Label(),
		Latitude:  p.Latitude(),
		Longitude: p.Longitude(),
		Altitude:  p.Altitude(),
		Radius:    p.Radius(),
		Color:     p.Color().String(),
	}
}

var namedColors = map[string]core.Color{
	"transparent": core.Transparent,
	"black":       core.Black,
	"white":       core.White,
	"red":         core.Red,
	"green":       core.Green,
	"blue":        core.Blue,
}

// ParseColor accepts a color name or "#AARRGGBB" / "#RRGGBB" hex.
func ParseColor(s string) (core.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return core.Color{}, fmt.Errorf("unknown color %q", s)
	}
	switch len(hex) {
	case 6:
		v |= 0xff000000
	case 8:
	default:
		return core.Color{}, fmt.Errorf("unknown color %q", s)
	}
	return core.ColorFromARGB(uint32(v)), nil
}
