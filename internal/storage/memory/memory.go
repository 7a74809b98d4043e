// Package memory keeps point sets in memory and mirrors each one to a JSON file.
package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/pkg/core"
)

type record struct {
	center core.Point
	points []core.Point
}

// Backend stores point sets in memory and exports them to JSON
type Backend struct {
	cfg  config.MemoryConfig
	sets map[string]record

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend. With an empty OutputDir nothing is written to disk.
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:  cfg,
		sets: make(map[string]record),
	}
}

// Init loads previously exported sets from OutputDir.
func (b *Backend) Init() error {
	if b.cfg.OutputDir == "" {
		return nil
	}
	loaded, err := loadExports(b.cfg.OutputDir)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for name, r := range loaded {
		b.sets[name] = r
	}
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// SaveSet stores copies of the points and exports the set.
func (b *Backend) SaveSet(name string, center core.Point, points []core.Point) error {
	if name == "" {
		return fmt.Errorf("point set name must not be empty")
	}
	r := record{center: center, points: append([]core.Point(nil), points...)}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.sets[name] = r
	if b.cfg.OutputDir == "" {
		return nil
	}
	return b.exportJSON(name, r)
}

// LoadSet returns copies of a stored set.
func (b *Backend) LoadSet(name string) (core.Point, []core.Point, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.sets[name]
	if !ok {
		return core.Point{}, nil, fmt.Errorf("%w: %s", core.ErrPointSetNotFound, name)
	}
	return r.center, append([]core.Point(nil), r.points...), nil
}

// ListSets returns set names in ascending order.
func (b *Backend) ListSets() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.sets))
	for name := range b.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DeleteSet forgets a set and removes its export file.
func (b *Backend) DeleteSet(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.sets[name]; !ok {
		return fmt.Errorf("%w: %s", core.ErrPointSetNotFound, name)
	}
	delete(b.sets, name)
	if b.cfg.OutputDir == "" {
		return nil
	}
	return removeExports(b.cfg.OutputDir, name)
}

// GetExportedFilePath returns the file written by the last SaveSet.
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
