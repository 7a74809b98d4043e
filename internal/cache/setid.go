package cache

import "sync"

// SetIDCache maps point set names to their database IDs.
type SetIDCache struct {
	mu  sync.RWMutex
	ids map[string]uint
}

// NewSetIDCache creates a new SetIDCache
func NewSetIDCache() *SetIDCache {
	return &SetIDCache{
		ids: make(map[string]uint),
	}
}

// Get retrieves a set ID by name
func (c *SetIDCache) Get(name string) (uint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.ids[name]
	return id, ok
}

// Set stores a set ID by name
func (c *SetIDCache) Set(name string, id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[name] = id
}

// Delete removes a set by name
func (c *SetIDCache) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.ids, name)
}

// Reset clears the cache
func (c *SetIDCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = make(map[string]uint)
}
