// Package sqlitestorage implements the storage.Backend interface on a SQLite file.
// It wraps the GORM backend; the SQLite-specific parts are opening the
// database and taking snapshots with VACUUM INTO.
package sqlitestorage

import (
	"fmt"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/internal/database"
	gormstorage "github.com/genradar/genradar/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	cfg config.SQLiteConfig
	log zerolog.Logger
}

// New creates a SQLite backend. An empty path keeps the database in memory.
// The file is opened by Init.
func New(cfg config.SQLiteConfig, log zerolog.Logger) *Backend {
	return &Backend{cfg: cfg, log: log}
}

// Init opens the database and migrates the schema.
func (b *Backend) Init() error {
	db, err := database.OpenSQLite(b.cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open SQLite DB: %w", err)
	}
	if b.cfg.Path == "" {
		b.log.Info().Msg("Using in-memory SQLite DB")
	} else {
		b.log.Info().Str("path", b.cfg.Path).Msg("Using SQLite DB")
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{DB: db, Logger: b.log})
	return b.Backend.Init()
}

// Close closes the database if Init succeeded.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	return b.Backend.Close()
}

// Snapshot writes a consistent copy of the database to path.
func (b *Backend) Snapshot(path string) error {
	if b.Backend == nil {
		return fmt.Errorf("sqlite backend not initialized")
	}
	return database.DumpSQLite(b.DB(), path)
}
