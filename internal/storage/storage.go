// Package storage persists named point sets: a radar center plus its points of interest.
package storage

import "github.com/genradar/genradar/pkg/core"

// ErrSetNotFound is returned by LoadSet and DeleteSet for unknown names.
var ErrSetNotFound = core.ErrPointSetNotFound

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveSet creates or replaces the set called name. Point order is kept.
	SaveSet(name string, center core.Point, points []core.Point) error
	LoadSet(name string) (center core.Point, points []core.Point, err error)
	// ListSets returns set names in ascending order.
	ListSets() ([]string, error)
	DeleteSet(name string) error
}

// Exportable is an optional interface for backends that write each saved
// set to a file.
type Exportable interface {
	GetExportedFilePath() string
}
