// Package orientation smooths raw heading readings into a radar rotation offset.
package orientation

import (
	"fmt"
	"math"

	"github.com/genradar/genradar/internal/geo"
	"github.com/genradar/genradar/pkg/core"
)

// State is the tracker's registration state.
type State int

const (
	Unregistered State = iota
	RegisteredIdle
	RegisteredActive
)

func (s State) String() string {
	switch s {
	case Unregistered:
		return "unregistered"
	case RegisteredIdle:
		return "registered-idle"
	case RegisteredActive:
		return "registered-active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Tracker low-pass filters heading readings with an exponential moving average.
// It is not safe for concurrent use; the owning view serializes access.
type Tracker struct {
	smoothing   float64
	declination float64

	state    State
	smoothed float64
	fallback bool
}

// New creates an unregistered tracker.
// smoothing must be in (0,1]; 1 disables smoothing.
// declinationDegrees is added to every reading to turn magnetic heading into true heading.
func New(smoothing, declinationDegrees float64) (*Tracker, error) {
	if !(smoothing > 0 && smoothing <= 1) {
		return nil, &core.ConfigError{Field: "smoothing", Reason: fmt.Sprintf("must be in (0,1], got %v", smoothing)}
	}
	if math.IsNaN(declinationDegrees) || math.IsInf(declinationDegrees, 0) {
		return nil, &core.ConfigError{Field: "declinationDegrees", Reason: "must be finite"}
	}
	return &Tracker{smoothing: smoothing, declination: declinationDegrees}, nil
}

// Register moves Unregistered to RegisteredIdle. It is a no-op otherwise.
func (t *Tracker) Register() {
	if t.state == Unregistered {
		t.state = RegisteredIdle
	}
}

// Unregister returns to Unregistered and discards smoothing state.
func (t *Tracker) Unregister() {
	t.state = Unregistered
	t.smoothed = 0
	t.fallback = false
}

// Fallback pins the offset to north-up until the next Unregister.
// Used when no heading source is available.
func (t *Tracker) Fallback() {
	t.smoothed = 0
	t.fallback = true
}

// FallingBack reports whether the tracker is pinned to north-up.
func (t *Tracker) FallingBack() bool { return t.fallback }

// State returns the registration state.
func (t *Tracker) State() State { return t.state }

// OnHeadingChanged feeds one raw reading in degrees.
// Readings while unregistered or falling back are dropped.
// Non-finite readings return ErrTransientReading and leave the offset untouched.
func (t *Tracker) OnHeadingChanged(newHeadingDegrees float64) error {
	if math.IsNaN(newHeadingDegrees) || math.IsInf(newHeadingDegrees, 0) {
		return fmt.Errorf("%w: heading %v", core.ErrTransientReading, newHeadingDegrees)
	}
	if t.state == Unregistered || t.fallback {
		return nil
	}

	heading := geo.NormalizeHeading(newHeadingDegrees + t.declination)
	if t.state == RegisteredIdle {
		t.smoothed = heading
		t.state = RegisteredActive
		return nil
	}

	t.smoothed = geo.NormalizeHeading(t.smoothed + t.smoothing*geo.SignedTurn(t.smoothed, heading))
	return nil
}

// CurrentOffset returns the smoothed heading, or 0 (north-up) before the first reading.
func (t *Tracker) CurrentOffset() float64 {
	if t.state != RegisteredActive {
		return 0
	}
	return t.smoothed
}
