package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/genradar/genradar/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const islamabad = `
name: islamabad
center:
  label: Center Point
  lat: 33.683232
  lon: 72.988972
points:
  - label: IMCB
    lat: 33.688210
    lon: 72.991315
  - label: Sadar police Station
    lat: 33.691424
    lon: 72.970287
    radius: 2.5
    color: red
  - label: Shifa medical Center
    lat: 33.683836
    lon: 72.986573
    color: "#8000ff00"
  - label: UnKnown
    coords: "72.991315,33.684854,540"
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(islamabad))
	require.NoError(t, err)

	assert.Equal(t, "islamabad", f.Name)
	assert.Equal(t, "Center Point", f.Center.Label())
	assert.Equal(t, core.Transparent, f.Center.Color())
	require.Len(t, f.Points, 4)

	assert.Equal(t, core.Blue, f.Points[0].Color())
	assert.Equal(t, DefaultRadius, f.Points[0].Radius())
	assert.InDelta(t, 33.688210, f.Points[0].Latitude(), 1e-9)

	assert.Equal(t, core.Red, f.Points[1].Color())
	assert.Equal(t, float32(2.5), f.Points[1].Radius())

	assert.Equal(t, core.Color{G: 0xff, A: 0x80}, f.Points[2].Color())

	assert.Equal(t, "UnKnown", f.Points[3].Label())
	assert.InDelta(t, 33.684854, f.Points[3].Latitude(), 1e-9)
	assert.InDelta(t, 72.991315, f.Points[3].Longitude(), 1e-9)
	assert.Equal(t, 540.0, f.Points[3].Altitude())
	assert.Equal(t, core.Blue, f.Points[3].Color())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "center: [\n"},
		{"center latitude", "center: {lat: 91, lon: 0}"},
		{"point longitude", "center: {lat: 0, lon: 0}\npoints:\n  - {label: x, lat: 0, lon: 200}"},
		{"nan latitude", "center: {lat: .nan, lon: 0}"},
		{"bad coords", "center: {lat: 0, lon: 0}\npoints:\n  - {label: x, coords: \"72.99\"}"},
		{"coords out of range", "center: {lat: 0, lon: 0}\npoints:\n  - {label: x, coords: \"72.99,95\"}"},
		{"unknown color", "center: {lat: 0, lon: 0}\npoints:\n  - {label: x, lat: 0, lon: 0, color: mauve}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want core.Color
	}{
		{"Blue", core.Blue},
		{"transparent", core.Transparent},
		{"#ff00ff", core.Color{R: 0xff, B: 0xff, A: 0xff}},
		{"0x11223344", core.Color{A: 0x11, R: 0x22, G: 0x33, B: 0x44}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseColor("#12345")
	assert.Error(t, err)
}

func TestLoadAndMarshal(t *testing.T) {
	center := core.NewPoint("c", 1, 2, 0, 1, core.Transparent)
	points := []core.Point{core.NewPoint("p", 1.5, 2.5, 10, 3, core.Green)}

	data, err := Marshal("roundtrip", center, points)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "set.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip", f.Name)
	assert.Equal(t, center, f.Center)
	assert.Equal(t, points, f.Points)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
