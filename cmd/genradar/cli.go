package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/internal/fixture"
	"github.com/genradar/genradar/internal/geo"
	"github.com/genradar/genradar/internal/host"
	"github.com/genradar/genradar/internal/logging"
	"github.com/genradar/genradar/internal/render"
	"github.com/genradar/genradar/internal/sensor"
	"github.com/genradar/genradar/internal/storage"
	"github.com/genradar/genradar/internal/view"
	"github.com/genradar/genradar/pkg/core"
)

// frameScale is the pixel density used for PNG output.
const frameScale = 3

func viewConfig(rc config.RadarConfig) view.Config {
	return view.Config{
		Viewport:           core.Viewport{Width: rc.Width, Height: rc.Height},
		MaxDistanceMeters:  rc.MaxDistanceMeters,
		Smoothing:          rc.Smoothing,
		DeclinationDegrees: rc.DeclinationDegrees,
		Projection:         rc.Projection,
		FollowLocation:     rc.FollowLocation,
	}
}

// demoTrack walks from the center toward IMCB and back.
const demoTrack = `[[72.988972,33.683232],[72.989900,33.685200],[72.991315,33.688210],[72.989900,33.685200]]`

// locationSource returns the simulated GPS for radar.followLocation, or nil when
// the center stays fixed.
func locationSource(rc config.RadarConfig) (sensor.LocationSource, error) {
	if !rc.FollowLocation {
		return nil, nil
	}
	raw := rc.Track
	if raw == "" {
		raw = demoTrack
	}
	track, err := geo.ParseTrack(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing radar.track: %w", err)
	}
	return sensor.SimulatedWalk{RateHz: rc.TrackRateHz, Track: track}, nil
}

func newView(heading sensor.HeadingSource, location sensor.LocationSource) (*view.View, error) {
	deps := view.Dependencies{
		Heading:          heading,
		Location:         location,
		Logger:           Logger,
		DispatcherLogger: logging.NewDispatcherLogger(StorageLogger),
	}
	if recorder != nil {
		deps.Recorder = recorder
	}
	return view.New(viewConfig(config.GetRadarConfig()), deps)
}

// runDemo drives the example screen with a simulated compass until the
// duration passes or the process is interrupted.
func runDemo(args []string) error {
	duration := 10 * time.Second
	if len(args) > 0 {
		secs, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", args[0], err)
		}
		duration = time.Duration(secs) * time.Second
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	initTelemetry(ctx)

	location, err := locationSource(config.GetRadarConfig())
	if err != nil {
		return err
	}
	v, err := newView(sensor.SimulatedCompass{RateHz: 10, TurnDegPerSec: 15, JitterDeg: 2}, location)
	if err != nil {
		return err
	}
	activeView.Store(v)
	defer activeView.Store(nil)

	passes := 0
	v.OnUpdate(func([]core.ScreenPoint) { passes++ })

	screen := host.NewScreen(v, Logger)
	if err := screen.OnCreate(demoCenter, demoPoints()); err != nil {
		return err
	}
	if err := screen.OnResume(); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			printScreen(os.Stdout, v.Offset(), v.ScreenPoints())
		}
	}

	screen.OnPause()
	Logger.Info("Demo finished", "passes", passes, "offset", v.Offset())
	return nil
}

func printScreen(w io.Writer, offset float64, points []core.ScreenPoint) {
	fmt.Fprintf(w, "offset %6.1f° %s\n", offset, geo.Compass(offset))
	for _, p := range points {
		mark := ""
		if p.Clamped {
			mark = " (rim)"
		}
		fmt.Fprintf(w, "  %-24s x=%6.1f y=%6.1f%s\n", p.Label, p.X, p.Y, mark)
	}
}

// renderSet runs one pass over a point set at a fixed heading and writes it as PNG.
func renderSet(path string, heading float64, center core.Point, points []core.Point) error {
	compass := sensor.NewManual()
	v, err := newView(compass, nil)
	if err != nil {
		return err
	}
	if err := v.InitAndUpdateWithPoints(&center, points); err != nil {
		return err
	}
	if err := v.RegisterListeners(); err != nil {
		return err
	}
	compass.PushHeading(heading)
	v.UnregisterListeners()

	img, err := render.RenderFrame(render.Frame{
		Viewport:      v.Viewport(),
		Points:        v.Points(),
		Screen:        v.ScreenPoints(),
		OffsetDegrees: v.Offset(),
		Scale:         frameScale,
	})
	if err != nil {
		return err
	}

	path, err = outputPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := render.WritePNG(f, img); err != nil {
		return err
	}
	Logger.Info("Frame rendered", "path", path, "heading", heading, "points", len(points))
	return nil
}

func runRender(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("render needs an output path")
	}
	heading := 0.0
	if len(args) > 1 {
		h, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid heading %q: %w", args[1], err)
		}
		heading = h
	}
	return renderSet(args[0], heading, demoCenter, demoPoints())
}

func runFixture(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("fixture needs a YAML file and an output path")
	}
	fx, err := fixture.Load(args[0])
	if err != nil {
		return err
	}
	return renderSet(args[1], 0, fx.Center, fx.Points)
}

func runSeed(args []string) error {
	name := demoSetName
	if len(args) > 0 {
		name = args[0]
	}
	if err := initStorage(); err != nil {
		return err
	}
	if err := storageBackend.SaveSet(name, demoCenter, demoPoints()); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	if exp, ok := storageBackend.(storage.Exportable); ok && exp.GetExportedFilePath() != "" {
		Logger.Info("Point set exported", "path", exp.GetExportedFilePath())
	}
	fmt.Printf("saved %s (%d points)\n", name, len(demoPoints()))
	return nil
}

func runList(args []string) error {
	if err := initStorage(); err != nil {
		return err
	}
	if len(args) == 0 {
		names, err := storageBackend.ListSets()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}

	center, points, err := storageBackend.LoadSet(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}
	fmt.Printf("center %s\n", center)
	for _, p := range points {
		fmt.Printf("  %s %s r=%.1f\n", p, p.Color(), p.Radius())
	}
	return nil
}
