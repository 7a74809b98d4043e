package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/genradar/genradar/pkg/core"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event kinds delivered by sensor feeds.
const (
	KindHeading  = "heading"
	KindLocation = "location"
)

// Event is one sensor reading routed to the radar.
type Event struct {
	Kind      string
	Heading   float64
	Location  core.Point
	Timestamp time.Time
}

// HandlerFunc processes an event.
type HandlerFunc func(Event) error

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	dropStale bool
	logged    bool
}

// DropStale discards events timestamped before the last one handled for the same kind,
// so a late reading never overrides a newer one.
func DropStale() Option {
	return func(c *config) {
		c.dropStale = true
	}
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Dispatcher routes events to registered handlers on the caller's goroutine.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   Logger

	// OTEL metrics
	processed metric.Int64Counter
	dropped   metric.Int64Counter
	failed    metric.Int64Counter

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		lastSeen: make(map[string]time.Time),
		logger:   logger,
	}

	m := meter()

	var err error

	d.processed, err = m.Int64Counter(
		"radar.events.processed",
		metric.WithDescription("Total sensor events processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	d.dropped, err = m.Int64Counter(
		"radar.events.dropped",
		metric.WithDescription("Total sensor events dropped as stale"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	d.failed, err = m.Int64Counter(
		"radar.events.failed",
		metric.WithDescription("Total sensor events rejected by their handler"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given kind with optional configuration.
func (d *Dispatcher) Register(kind string, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := d.withMetrics(kind, h)

	if cfg.dropStale {
		handler = d.withStaleFilter(kind, handler)
	}

	if cfg.logged {
		handler = d.withLogging(kind, handler)
	}

	d.handlers[kind] = handler
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(e Event) error {
	h, ok := d.handlers[e.Kind]
	if !ok {
		return fmt.Errorf("unknown event kind: %s", e.Kind)
	}
	return h(e)
}

// HasHandler returns true if a handler is registered for the kind.
func (d *Dispatcher) HasHandler(kind string) bool {
	_, ok := d.handlers[kind]
	return ok
}

// Reset forgets stale-filter timestamps, used when a new session starts.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastSeen = make(map[string]time.Time)
}

func (d *Dispatcher) withMetrics(kind string, h HandlerFunc) HandlerFunc {
	kindAttr := metric.WithAttributes(attribute.String("kind", kind))
	return func(e Event) error {
		err := h(e)
		if err != nil {
			d.failed.Add(context.Background(), 1, kindAttr)
		} else {
			d.processed.Add(context.Background(), 1, kindAttr)
		}
		return err
	}
}

func (d *Dispatcher) withStaleFilter(kind string, h HandlerFunc) HandlerFunc {
	kindAttr := metric.WithAttributes(attribute.String("kind", kind))
	return func(e Event) error {
		d.mu.Lock()
		last, seen := d.lastSeen[kind]
		if seen && !e.Timestamp.IsZero() && e.Timestamp.Before(last) {
			d.mu.Unlock()
			d.dropped.Add(context.Background(), 1, kindAttr)
			return nil
		}
		if !e.Timestamp.IsZero() {
			d.lastSeen[kind] = e.Timestamp
		}
		d.mu.Unlock()
		return h(e)
	}
}

func (d *Dispatcher) withLogging(kind string, h HandlerFunc) HandlerFunc {
	return func(e Event) error {
		start := time.Now()
		d.logger.Debug("handling event", "kind", kind)

		err := h(e)

		if err != nil {
			d.logger.Error("event failed", "kind", kind, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("event complete", "kind", kind, "duration", time.Since(start))
		}

		return err
	}
}
