// Package sensor defines the heading and location feeds a radar subscribes to.
package sensor

import (
	"sync"

	"github.com/genradar/genradar/pkg/core"
)

// Subscription is an active feed registration.
// Cancel is idempotent; once it returns the callback is never invoked again.
type Subscription interface {
	Cancel()
}

// HeadingFunc receives a raw heading in degrees clockwise from north.
type HeadingFunc func(degrees float64)

// LocationFunc receives a new device position.
type LocationFunc func(p core.Point)

// HeadingSource delivers compass headings.
type HeadingSource interface {
	SubscribeHeading(fn HeadingFunc) (Subscription, error)
}

// LocationSource delivers device positions.
type LocationSource interface {
	SubscribeLocation(fn LocationFunc) (Subscription, error)
}

// Unavailable is a source for devices without the sensor.
type Unavailable struct{}

func (Unavailable) SubscribeHeading(HeadingFunc) (Subscription, error) {
	return nil, core.ErrSensorUnavailable
}

func (Unavailable) SubscribeLocation(LocationFunc) (Subscription, error) {
	return nil, core.ErrSensorUnavailable
}

// cancelFunc adapts a function to Subscription, running it at most once.
type cancelFunc struct {
	once sync.Once
	fn   func()
}

func (c *cancelFunc) Cancel() {
	c.once.Do(c.fn)
}

func newSubscription(fn func()) Subscription {
	return &cancelFunc{fn: fn}
}
