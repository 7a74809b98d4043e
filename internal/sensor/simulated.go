package sensor

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/genradar/genradar/internal/geo"
	"github.com/genradar/genradar/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// SimulatedCompass emits a slowly turning heading with noise, like a phone
// rotated by hand. Each subscription runs its own ticker goroutine.
type SimulatedCompass struct {
	RateHz        int
	TurnDegPerSec float64
	JitterDeg     float64
	Start         float64
}

func (c SimulatedCompass) SubscribeHeading(fn HeadingFunc) (Subscription, error) {
	rate := c.RateHz
	if rate <= 0 {
		rate = 10
	}
	interval := time.Second / time.Duration(rate)
	step := c.TurnDegPerSec / float64(rate)

	heading := c.Start
	return run(interval, func() {
		jitter := (rand.Float64()*2 - 1) * c.JitterDeg
		fn(geo.NormalizeHeading(heading + jitter))
		heading += step
	}), nil
}

// SimulatedWalk emits positions along a track, one vertex per tick,
// looping back to the start at the end.
type SimulatedWalk struct {
	RateHz int
	Track  geom.LineString
}

func (w SimulatedWalk) SubscribeLocation(fn LocationFunc) (Subscription, error) {
	points := geo.TrackPoints("device", w.Track)
	if len(points) == 0 {
		return nil, core.ErrSensorUnavailable
	}
	rate := w.RateHz
	if rate <= 0 {
		rate = 1
	}

	i := 0
	return run(time.Second/time.Duration(rate), func() {
		fn(points[i])
		i = (i + 1) % len(points)
	}), nil
}

// run calls tick on every interval until the returned subscription is cancelled.
// Cancel waits for the goroutine to exit.
func run(interval time.Duration, tick func()) Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// a tick racing with cancel must not fire
				if ctx.Err() != nil {
					return
				}
				tick()
			}
		}
	}()

	return newSubscription(func() {
		cancel()
		wg.Wait()
	})
}
