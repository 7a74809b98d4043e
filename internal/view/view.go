// Package view owns a radar session: the point set, the current heading
// offset, and the sensor subscriptions that drive recomputation.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/genradar/genradar/internal/cache"
	"github.com/genradar/genradar/internal/dispatcher"
	"github.com/genradar/genradar/internal/geo"
	"github.com/genradar/genradar/internal/orientation"
	"github.com/genradar/genradar/internal/radar"
	"github.com/genradar/genradar/internal/sensor"
	"github.com/genradar/genradar/pkg/core"
	"go.opentelemetry.io/otel/metric"
)

// Config holds the radar settings.
type Config struct {
	Viewport           core.Viewport
	MaxDistanceMeters  float64
	Smoothing          float64
	DeclinationDegrees float64
	Projection         string
	FollowLocation     bool
}

// Recorder receives every completed pass.
type Recorder interface {
	RecordPass(offsetDegrees float64, screen []core.ScreenPoint)
}

// Dependencies are the collaborators of a View. Nil sources mean the sensor is absent.
type Dependencies struct {
	Heading          sensor.HeadingSource
	Location         sensor.LocationSource
	Logger           *slog.Logger
	DispatcherLogger dispatcher.Logger
	Recorder         Recorder
}

// View is one radar session. Sensor callbacks may arrive on any goroutine;
// the view applies them one at a time in arrival order.
type View struct {
	cfg      Config
	deps     Dependencies
	log      *slog.Logger
	project  geo.Projector
	mapper   *radar.Mapper
	tracker  *orientation.Tracker
	events   *dispatcher.Dispatcher
	passes   metric.Int64Counter
	pointSet *cache.PointSet

	mu         sync.Mutex
	center     *core.Point
	projected  []core.ProjectedPoint
	screen     []core.ScreenPoint
	subs       []sensor.Subscription
	registered bool
	listeners  []func([]core.ScreenPoint)

	// snapshots for log context, readable without mu
	stateSnap atomic.Int32
	countSnap atomic.Int32
}

// New validates cfg and creates an unregistered view with no points.
func New(cfg Config, deps Dependencies) (*View, error) {
	mapper, err := radar.NewMapper(cfg.Viewport, cfg.MaxDistanceMeters)
	if err != nil {
		return nil, err
	}
	tracker, err := orientation.New(cfg.Smoothing, cfg.DeclinationDegrees)
	if err != nil {
		return nil, err
	}
	project, err := geo.ProjectorByName(cfg.Projection)
	if err != nil {
		return nil, err
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	dlog := deps.DispatcherLogger
	if dlog == nil {
		dlog = slogAdapter{log}
	}

	events, err := dispatcher.New(dlog)
	if err != nil {
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}
	passes, err := meter().Int64Counter(
		"radar.passes",
		metric.WithDescription("Total projection and mapping passes"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pass counter: %w", err)
	}

	v := &View{
		cfg:      cfg,
		deps:     deps,
		log:      log,
		project:  project,
		mapper:   mapper,
		tracker:  tracker,
		events:   events,
		passes:   passes,
		pointSet: cache.NewPointSet(),
	}
	events.Register(dispatcher.KindHeading, v.handleHeading, dispatcher.DropStale())
	events.Register(dispatcher.KindLocation, v.handleLocation, dispatcher.DropStale(), dispatcher.Logged())
	return v, nil
}

// InitAndUpdateWithPoints replaces the point set and runs the first pass.
// Points are deduplicated by label and coordinates; the last duplicate wins.
func (v *View) InitAndUpdateWithPoints(center *core.Point, points []core.Point) error {
	if center == nil {
		return &core.ConfigError{Field: "center", Reason: "must not be nil"}
	}
	if err := geo.ValidateLatLon(center.Latitude(), center.Longitude()); err != nil {
		return &core.ConfigError{Field: "center", Reason: err.Error()}
	}
	for i, p := range points {
		if err := geo.ValidateLatLon(p.Latitude(), p.Longitude()); err != nil {
			return &core.ConfigError{Field: fmt.Sprintf("points[%d]", i), Reason: err.Error()}
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.pointSet.Reset()
	if replaced := v.pointSet.Add(points...); replaced > 0 {
		v.log.Debug("Dropped duplicate points", "replaced", replaced)
	}
	c := *center
	v.center = &c
	v.countSnap.Store(int32(v.pointSet.Len()))
	v.reproject()
	v.pass()

	v.log.Info("Radar initialized", "center", c.String(), "points", v.pointSet.Len())
	return nil
}

// RegisterListeners subscribes to the heading feed (and the location feed
// when FollowLocation is set). Calling it while registered is a no-op.
// A missing heading sensor is not an error: the radar stays north-up.
// If a subscription fails, everything acquired so far is released.
func (v *View) RegisterListeners() error {
	release, err := v.register()
	// Cancel outside the lock, see UnregisterListeners.
	for _, s := range release {
		s.Cancel()
	}
	return err
}

func (v *View) register() (release []sensor.Subscription, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.registered {
		return nil, nil
	}

	v.tracker.Register()
	var acquired []sensor.Subscription
	fail := func(err error) ([]sensor.Subscription, error) {
		v.tracker.Unregister()
		return acquired, err
	}

	sub, err := subscribeHeading(v.deps.Heading, v.onHeading)
	switch {
	case errors.Is(err, core.ErrSensorUnavailable):
		v.log.Warn("No heading sensor, falling back to north-up", "error", err)
		v.tracker.Fallback()
	case err != nil:
		return fail(fmt.Errorf("subscribing to heading: %w", err))
	default:
		acquired = append(acquired, sub)
	}

	if v.cfg.FollowLocation {
		sub, err := subscribeLocation(v.deps.Location, v.onLocation)
		switch {
		case errors.Is(err, core.ErrSensorUnavailable):
			v.log.Warn("No location sensor, keeping fixed center", "error", err)
		case err != nil:
			return fail(fmt.Errorf("subscribing to location: %w", err))
		default:
			acquired = append(acquired, sub)
		}
	}

	v.subs = acquired
	v.registered = true
	v.stateSnap.Store(int32(v.tracker.State()))
	v.log.Debug("Listeners registered", "subscriptions", len(acquired), "northUp", v.tracker.FallingBack())
	v.pass()
	return nil, nil
}

// UnregisterListeners cancels every subscription. No sensor reading is
// applied after it returns. Safe to call when not registered.
func (v *View) UnregisterListeners() {
	v.mu.Lock()
	subs := v.subs
	v.subs = nil
	wasRegistered := v.registered
	v.registered = false
	v.tracker.Unregister()
	v.events.Reset()
	v.stateSnap.Store(int32(v.tracker.State()))
	v.mu.Unlock()

	// Cancel outside the lock: a feed goroutine may be blocked on mu
	// inside a callback, and Cancel waits for it to exit.
	for _, s := range subs {
		s.Cancel()
	}
	if wasRegistered {
		v.log.Debug("Listeners unregistered", "subscriptions", len(subs))
	}
}

// Start is RegisterListeners for hosts with start/stop lifecycles.
func (v *View) Start() error { return v.RegisterListeners() }

// Stop is UnregisterListeners for hosts with start/stop lifecycles.
func (v *View) Stop() { v.UnregisterListeners() }

// Update re-runs projection and mapping with the latest offset and returns a copy of the result.
func (v *View) Update() []core.ScreenPoint {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pass()
	return v.screenCopy()
}

// Resize changes the viewport, for hosts that learn their container size after init.
func (v *View) Resize(width, height float32) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	mapper, err := radar.NewMapper(core.Viewport{Width: width, Height: height}, v.cfg.MaxDistanceMeters)
	if err != nil {
		return err
	}
	v.mapper = mapper
	v.cfg.Viewport = mapper.Viewport()
	v.pass()
	return nil
}

// OnUpdate adds a listener called with a copy of the screen points after every pass.
// Listeners run with the view locked and must not call back into the view.
func (v *View) OnUpdate(fn func([]core.ScreenPoint)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// ScreenPoints returns a copy of the last pass.
func (v *View) ScreenPoints() []core.ScreenPoint {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.screenCopy()
}

// Projected returns a copy of the projected points.
func (v *View) Projected() []core.ProjectedPoint {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]core.ProjectedPoint, len(v.projected))
	copy(out, v.projected)
	return out
}

// Points returns a copy of the deduplicated point set.
func (v *View) Points() []core.Point {
	return v.pointSet.Points()
}

// Center returns the projection origin, or false before initialization.
func (v *View) Center() (core.Point, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.center == nil {
		return core.Point{}, false
	}
	return *v.center, true
}

// Offset returns the heading offset used by the next pass.
func (v *View) Offset() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tracker.CurrentOffset()
}

// State returns the orientation tracker state.
func (v *View) State() orientation.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tracker.State()
}

// Viewport returns the current viewport.
func (v *View) Viewport() core.Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mapper.Viewport()
}

// ContextAttrs describes the session for log records. It never blocks on the view.
func (v *View) ContextAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("radar.state", orientation.State(v.stateSnap.Load()).String()),
		slog.Int("radar.points", int(v.countSnap.Load())),
	}
}

func (v *View) onHeading(degrees float64) {
	v.deliver(dispatcher.Event{Kind: dispatcher.KindHeading, Heading: degrees, Timestamp: time.Now()})
}

func (v *View) onLocation(p core.Point) {
	v.deliver(dispatcher.Event{Kind: dispatcher.KindLocation, Location: p, Timestamp: time.Now()})
}

func (v *View) deliver(e dispatcher.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.registered {
		return
	}
	if err := v.events.Dispatch(e); err != nil {
		if errors.Is(err, core.ErrTransientReading) {
			v.log.Debug("Ignoring sensor reading", "kind", e.Kind, "error", err)
			return
		}
		v.log.Warn("Sensor event failed", "kind", e.Kind, "error", err)
	}
}

// handleHeading and handleLocation run under mu via deliver.
func (v *View) handleHeading(e dispatcher.Event) error {
	if err := v.tracker.OnHeadingChanged(e.Heading); err != nil {
		return err
	}
	v.stateSnap.Store(int32(v.tracker.State()))
	v.pass()
	return nil
}

func (v *View) handleLocation(e dispatcher.Event) error {
	if v.center == nil {
		return nil
	}
	if err := geo.ValidateLatLon(e.Location.Latitude(), e.Location.Longitude()); err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransientReading, err)
	}
	c := core.NewPoint(v.center.Label(), e.Location.Latitude(), e.Location.Longitude(),
		e.Location.Altitude(), v.center.Radius(), v.center.Color())
	v.center = &c
	v.reproject()
	v.pass()
	return nil
}

func (v *View) reproject() {
	points := v.pointSet.Points()
	v.projected = make([]core.ProjectedPoint, len(points))
	for i, p := range points {
		v.projected[i] = v.project(*v.center, p)
	}
}

func (v *View) pass() {
	if v.center == nil {
		return
	}
	offset := v.tracker.CurrentOffset()
	v.screen = v.mapper.MapAll(v.projected, offset)
	v.passes.Add(context.Background(), 1)

	if v.deps.Recorder != nil {
		v.deps.Recorder.RecordPass(offset, v.screenCopy())
	}
	for _, fn := range v.listeners {
		fn(v.screenCopy())
	}
}

func (v *View) screenCopy() []core.ScreenPoint {
	out := make([]core.ScreenPoint, len(v.screen))
	copy(out, v.screen)
	return out
}

func subscribeHeading(src sensor.HeadingSource, fn sensor.HeadingFunc) (sensor.Subscription, error) {
	if src == nil {
		return nil, core.ErrSensorUnavailable
	}
	return src.SubscribeHeading(fn)
}

func subscribeLocation(src sensor.LocationSource, fn sensor.LocationFunc) (sensor.Subscription, error) {
	if src == nil {
		return nil, core.ErrSensorUnavailable
	}
	return src.SubscribeLocation(fn)
}
