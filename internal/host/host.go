// Package host adapts a radar view to a screen with create/resume/pause callbacks.
package host

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/genradar/genradar/pkg/core"
)

// ErrNotCreated is returned by OnResume before a successful OnCreate.
var ErrNotCreated = errors.New("screen not created")

// Radar is the part of a view a screen drives.
type Radar interface {
	InitAndUpdateWithPoints(center *core.Point, points []core.Point) error
	RegisterListeners() error
	UnregisterListeners()
}

// Screen forwards lifecycle callbacks to a radar. Listeners are registered
// once per resume and released once per pause.
type Screen struct {
	radar Radar
	log   *slog.Logger

	mu      sync.Mutex
	created bool
	resumed bool
}

// NewScreen creates a screen around r. A nil logger uses slog.Default.
func NewScreen(r Radar, log *slog.Logger) *Screen {
	if log == nil {
		log = slog.Default()
	}
	return &Screen{radar: r, log: log}
}

// OnCreate hands the point set to the radar.
func (s *Screen) OnCreate(center core.Point, points []core.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.radar.InitAndUpdateWithPoints(&center, points); err != nil {
		return fmt.Errorf("initializing radar: %w", err)
	}
	s.created = true
	return nil
}

// OnResume registers the radar listeners. Resuming twice without a pause does nothing.
func (s *Screen) OnResume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.created {
		return ErrNotCreated
	}
	if s.resumed {
		return nil
	}
	if err := s.radar.RegisterListeners(); err != nil {
		return fmt.Errorf("registering radar listeners: %w", err)
	}
	s.resumed = true
	s.log.Debug("Screen resumed")
	return nil
}

// OnPause releases the radar listeners.
func (s *Screen) OnPause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.resumed {
		return
	}
	s.radar.UnregisterListeners()
	s.resumed = false
	s.log.Debug("Screen paused")
}

// Resumed reports whether the screen is between OnResume and OnPause.
func (s *Screen) Resumed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumed
}
