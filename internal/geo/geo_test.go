package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/genradar/genradar/pkg/core"
)

func TestPointFromString_ValidWithElevation(t *testing.T) {
	p, err := PointFromString("IMCB", "72.991315,33.688210,50.0", 1.2, core.Blue)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Longitude() != 72.991315 {
		t.Errorf("expected longitude=72.991315, got %f", p.Longitude())
	}
	if p.Latitude() != 33.688210 {
		t.Errorf("expected latitude=33.688210, got %f", p.Latitude())
	}
	if p.Altitude() != 50.0 {
		t.Errorf("expected altitude=50.0, got %f", p.Altitude())
	}
	if p.Label() != "IMCB" || p.Color() != core.Blue || p.Radius() != 1.2 {
		t.Errorf("label, color or radius not carried over: %v", p)
	}
}

func TestPointFromString_ValidWithoutElevation(t *testing.T) {
	p, err := PointFromString("x", " 72.5 , 33.5 ", 1, core.Red)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Longitude() != 72.5 || p.Latitude() != 33.5 {
		t.Errorf("unexpected coordinates: %v", p)
	}
	if p.Altitude() != 0 {
		t.Errorf("expected altitude=0, got %f", p.Altitude())
	}
}

func TestPointFromString_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		coords string
	}{
		{"too few components", "72.5"},
		{"empty string", ""},
		{"invalid longitude", "abc,33.5"},
		{"invalid latitude", "72.5,xyz"},
		{"invalid elevation", "72.5,33.5,high"},
		{"latitude out of range", "72.5,91"},
		{"longitude out of range", "181,33.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PointFromString("x", tt.coords, 1, core.Blue)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}
}

func TestToGeometry(t *testing.T) {
	p := core.NewPoint("x", 33.5, 72.5, 10, 1, core.Blue)
	g := ToGeometry(p)

	coords, ok := g.Coordinates()
	if !ok {
		t.Fatal("expected valid coordinates")
	}
	if coords.X != 72.5 || coords.Y != 33.5 || coords.Z != 10 {
		t.Errorf("unexpected coordinates %+v", coords)
	}
}

func TestToWebMercator_Origin(t *testing.T) {
	g := ToWebMercator(core.NewPoint("origin", 0, 0, 0, 0, core.Transparent))

	coords, ok := g.Coordinates()
	if !ok {
		t.Fatal("expected valid coordinates")
	}
	if coords.X != 0 || coords.Y != 0 {
		t.Errorf("expected origin to map to (0,0), got %+v", coords.XY)
	}
}

func TestToWebMercator_Hemispheres(t *testing.T) {
	ne, _ := ToWebMercator(core.NewPoint("ne", 10, 10, 0, 0, core.Transparent)).Coordinates()
	sw, _ := ToWebMercator(core.NewPoint("sw", -30, -45, 0, 0, core.Transparent)).Coordinates()

	if ne.X <= 0 || ne.Y <= 0 {
		t.Errorf("expected positive X/Y for north-east point, got %+v", ne.XY)
	}
	if sw.X >= 0 || sw.Y >= 0 {
		t.Errorf("expected negative X/Y for south-west point, got %+v", sw.XY)
	}
}

func TestValidateLatLon_NonFinite(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
	}{
		{"nan latitude", math.NaN(), 72.99},
		{"nan longitude", 33.68, math.NaN()},
		{"inf latitude", math.Inf(1), 72.99},
		{"negative inf longitude", 33.68, math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLatLon(tt.lat, tt.lon)
			if !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}

	if err := ValidateLatLon(33.68, 72.99); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
