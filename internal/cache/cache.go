package cache

import (
	"sync"

	"github.com/genradar/genradar/pkg/core"
)

// PointSet holds radar points deduplicated by label and coordinates.
// A repeated key replaces the stored point but keeps its original position in the order.
type PointSet struct {
	m      sync.Mutex
	order  []string
	points map[string]core.Point
}

func NewPointSet() *PointSet {
	return &PointSet{
		points: make(map[string]core.Point),
	}
}

// Reset drops every point.
func (c *PointSet) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.order = nil
	c.points = make(map[string]core.Point)
}

// Add stores points; the last write for a key wins.
// It returns how many of the given points replaced an existing entry.
func (c *PointSet) Add(points ...core.Point) (replaced int) {
	c.m.Lock()
	defer c.m.Unlock()
	for _, p := range points {
		key := p.Key()
		if _, ok := c.points[key]; ok {
			replaced++
		} else {
			c.order = append(c.order, key)
		}
		c.points[key] = p
	}
	return replaced
}

// Get looks a point up by its key.
func (c *PointSet) Get(key string) (core.Point, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	p, ok := c.points[key]
	return p, ok
}

// Len returns the number of distinct points.
func (c *PointSet) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.order)
}

// Points returns a copy of the points in first-seen order.
func (c *PointSet) Points() []core.Point {
	c.m.Lock()
	defer c.m.Unlock()
	out := make([]core.Point, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.points[key])
	}
	return out
}
