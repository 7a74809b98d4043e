package main

import (
	"bytes"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/internal/sensor"
	"github.com/genradar/genradar/pkg/core"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) {
	t.Helper()
	viper.Reset()
	config.SetDefaults()
	viper.Set("storage.memory.outputDir", t.TempDir())

	Logger = slog.Default()
	StorageLogger = zerolog.Nop()
	t.Cleanup(func() {
		if storageBackend != nil {
			_ = storageBackend.Close()
			storageBackend = nil
		}
		viper.Reset()
	})
}

func TestDemoPoints(t *testing.T) {
	points := demoPoints()
	require.Len(t, points, 7)
	assert.Equal(t, demoCenter, points[0])
	assert.Equal(t, core.Transparent, points[0].Color())
	for _, p := range points[1:] {
		assert.Equal(t, core.Blue, p.Color(), p.Label())
		assert.Equal(t, float32(poiRadius), p.Radius())
	}
}

func TestRenderSet(t *testing.T) {
	setupTest(t)
	out := filepath.Join(t.TempDir(), "frames", "demo.png")

	require.NoError(t, runRender([]string{out, "45"}))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120*frameScale, img.Bounds().Dx())
}

func TestRenderArgs(t *testing.T) {
	setupTest(t)
	assert.Error(t, runRender(nil))
	assert.Error(t, runRender([]string{filepath.Join(t.TempDir(), "x.png"), "north"}))
	assert.Error(t, runFixture([]string{"only-one"}))
}

func TestRunFixture(t *testing.T) {
	setupTest(t)
	dir := t.TempDir()
	yml := filepath.Join(dir, "set.yaml")
	require.NoError(t, os.WriteFile(yml, []byte(`
center: {label: c, lat: 33.683232, lon: 72.988972}
points:
  - {label: IMCB, lat: 33.688210, lon: 72.991315}
`), 0o644))

	out := filepath.Join(dir, "set.png")
	require.NoError(t, runFixture([]string{yml, out}))
	assert.FileExists(t, out)
}

func TestSeedAndList(t *testing.T) {
	setupTest(t)

	require.NoError(t, runSeed([]string{"demo"}))
	center, points, err := storageBackend.LoadSet("demo")
	require.NoError(t, err)
	assert.Equal(t, demoCenter.Label(), center.Label())
	assert.Len(t, points, len(demoPoints()))
	require.NoError(t, storageBackend.Close())
	storageBackend = nil

	// the memory backend reloads its exports
	require.NoError(t, runList(nil))
	names, err := storageBackend.ListSets()
	require.NoError(t, err)
	assert.Equal(t, []string{"demo"}, names)

	require.NoError(t, runList([]string{"demo"}))
	assert.Error(t, runList([]string{"missing"}))
}

func TestLocationSource(t *testing.T) {
	rc := config.RadarConfig{}
	src, err := locationSource(rc)
	require.NoError(t, err)
	assert.Nil(t, src, "fixed center without followLocation")

	rc.FollowLocation = true
	src, err = locationSource(rc)
	require.NoError(t, err)
	walk, ok := src.(sensor.SimulatedWalk)
	require.True(t, ok)
	assert.Equal(t, 4, walk.Track.Coordinates().Length())

	rc.Track = "[[72.99,33.68]]"
	_, err = locationSource(rc)
	assert.Error(t, err)
}

func TestNewView_FollowsConfiguredTrack(t *testing.T) {
	setupTest(t)
	viper.Set("radar.followLocation", true)
	viper.Set("radar.trackRateHz", 50)
	viper.Set("radar.track", "[[72.991315,33.688210],[72.991315,33.688210]]")

	location, err := locationSource(config.GetRadarConfig())
	require.NoError(t, err)
	v, err := newView(sensor.Unavailable{}, location)
	require.NoError(t, err)
	require.NoError(t, v.InitAndUpdateWithPoints(&demoCenter, demoPoints()))
	require.NoError(t, v.RegisterListeners())
	defer v.UnregisterListeners()

	assert.Eventually(t, func() bool {
		c, _ := v.Center()
		return c.Latitude() == 33.688210
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPrintScreen(t *testing.T) {
	var buf bytes.Buffer
	printScreen(&buf, 45, []core.ScreenPoint{
		{Label: "IMCB", X: 73, Y: 27, Visible: true},
		{Label: "Sadar police Station", X: 10, Y: 20, Visible: true, Clamped: true},
	})

	out := buf.String()
	assert.Contains(t, out, "Northeast")
	assert.Contains(t, out, "IMCB")
	assert.Contains(t, out, "Sadar police Station")
	assert.Contains(t, out, "(rim)")
}
