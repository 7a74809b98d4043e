// Package postgres implements the storage.Backend interface on PostgreSQL.
// It wraps the GORM backend and owns the connection setup.
package postgres

import (
	"fmt"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/internal/database"
	gormstorage "github.com/genradar/genradar/internal/storage/gorm"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the Postgres storage backend.
type Dependencies struct {
	Config config.PostgresConfig
	Logger zerolog.Logger
	// DB skips connecting when set.
	DB *gorm.DB
}

// Backend wraps the GORM backend for Postgres.
type Backend struct {
	*gormstorage.Backend
	deps Dependencies
}

// New creates a new Postgres storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// Init connects (unless a DB was injected) and migrates the schema.
func (b *Backend) Init() error {
	db := b.deps.DB
	if db == nil {
		var err error
		db, err = database.OpenPostgres(b.deps.Config)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres at %s:%s: %w", b.deps.Config.Host, b.deps.Config.Port, err)
		}
		b.deps.Logger.Info().Str("host", b.deps.Config.Host).Str("database", b.deps.Config.Database).Msg("Connected to database")
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{DB: db, Logger: b.deps.Logger})
	return b.Backend.Init()
}

// Close closes the connection pool if Init succeeded.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	return b.Backend.Close()
}
