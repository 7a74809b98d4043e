package storage

import (
	"fmt"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/internal/storage/memory"
	"github.com/genradar/genradar/internal/storage/postgres"
	sqlitestorage "github.com/genradar/genradar/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// NewBackend creates a storage backend based on configuration.
// The backend is not initialized; call Init before use.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(postgres.Dependencies{Config: cfg.Postgres, Logger: log}), nil
	case "sqlite":
		return sqlitestorage.New(cfg.SQLite, log), nil
	case "memory", "":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
