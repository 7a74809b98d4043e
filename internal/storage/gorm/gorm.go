// Package gormstorage implements the storage.Backend interface on top of any GORM dialect.
// The sqlite and postgres backends embed it and only differ in how they connect.
package gormstorage

import (
	"errors"
	"fmt"
	"time"

	"github.com/genradar/genradar/internal/cache"
	"github.com/genradar/genradar/internal/database"
	"github.com/genradar/genradar/internal/model"
	"github.com/genradar/genradar/internal/model/convert"
	"github.com/genradar/genradar/pkg/core"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger zerolog.Logger
	IDs    *cache.SetIDCache // optional
}

// Backend implements storage.Backend with GORM.
type Backend struct {
	deps Dependencies
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.IDs == nil {
		deps.IDs = cache.NewSetIDCache()
	}
	return &Backend{deps: deps}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB { return b.deps.DB }

// Init runs schema migration.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("gorm backend has no database")
	}
	b.deps.Logger.Info().Str("dialect", b.deps.DB.Name()).Msg("Migrating schema")
	return database.Migrate(b.deps.DB)
}

// Close closes the underlying connection pool.
func (b *Backend) Close() error {
	if b.deps.DB == nil {
		return nil
	}
	b.deps.IDs.Reset()
	sqlDB, err := b.deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}

// SaveSet replaces the records of an existing set, or creates it, in one transaction.
func (b *Backend) SaveSet(name string, center core.Point, points []core.Point) error {
	set := convert.CoreToPointSet(name, center, points)

	err := b.deps.DB.Transaction(func(tx *gorm.DB) error {
		id, err := b.setID(tx, name)
		switch {
		case errors.Is(err, core.ErrPointSetNotFound):
			if err := tx.Create(&set).Error; err != nil {
				return fmt.Errorf("creating point set: %w", err)
			}
			id = set.ID
		case err != nil:
			return err
		default:
			if err := tx.Where("point_set_id = ?", id).Delete(&model.PointRecord{}).Error; err != nil {
				return fmt.Errorf("clearing points: %w", err)
			}
			for i := range set.Points {
				set.Points[i].PointSetID = id
			}
			if err := tx.Create(&set.Points).Error; err != nil {
				return fmt.Errorf("inserting points: %w", err)
			}
			if err := tx.Model(&model.PointSet{}).Where("id = ?", id).Update("updated_at", time.Now()).Error; err != nil {
				return fmt.Errorf("touching point set: %w", err)
			}
		}
		b.deps.IDs.Set(name, id)
		return nil
	})
	if err != nil {
		// the cached id may belong to a rolled back insert
		b.deps.IDs.Delete(name)
		return err
	}

	b.deps.Logger.Debug().Str("set", name).Int("points", len(points)).Msg("Saved point set")
	return nil
}

// LoadSet reads a set with its points in saved order.
func (b *Backend) LoadSet(name string) (core.Point, []core.Point, error) {
	var set model.PointSet
	err := b.deps.DB.
		Preload("Points", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal ASC") }).
		Where("name = ?", name).
		First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Point{}, nil, fmt.Errorf("%w: %s", core.ErrPointSetNotFound, name)
	}
	if err != nil {
		return core.Point{}, nil, fmt.Errorf("loading point set %s: %w", name, err)
	}
	b.deps.IDs.Set(name, set.ID)
	return convert.PointSetToCore(set)
}

// ListSets returns set names in ascending order.
func (b *Backend) ListSets() ([]string, error) {
	var names []string
	if err := b.deps.DB.Model(&model.PointSet{}).Order("name ASC").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("listing point sets: %w", err)
	}
	return names, nil
}

// DeleteSet removes a set and its points.
func (b *Backend) DeleteSet(name string) error {
	return b.deps.DB.Transaction(func(tx *gorm.DB) error {
		id, err := b.setID(tx, name)
		if err != nil {
			return err
		}
		if err := tx.Where("point_set_id = ?", id).Delete(&model.PointRecord{}).Error; err != nil {
			return fmt.Errorf("deleting points: %w", err)
		}
		if err := tx.Delete(&model.PointSet{}, id).Error; err != nil {
			return fmt.Errorf("deleting point set: %w", err)
		}
		b.deps.IDs.Delete(name)
		return nil
	})
}

// setID resolves a set name, consulting the cache first.
func (b *Backend) setID(tx *gorm.DB, name string) (uint, error) {
	if id, ok := b.deps.IDs.Get(name); ok {
		return id, nil
	}
	var set model.PointSet
	err := tx.Select("id").Where("name = ?", name).First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: %s", core.ErrPointSetNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up point set %s: %w", name, err)
	}
	b.deps.IDs.Set(name, set.ID)
	return set.ID, nil
}
