package database

import (
	"path/filepath"
	"testing"

	"github.com/genradar/genradar/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite_InMemoryMigrate(t *testing.T) {
	db, err := OpenSQLite("")
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&model.PointSet{}))
	assert.True(t, db.Migrator().HasTable(&model.PointRecord{}))
}

func TestOpenSQLite_InMemoryIsPrivate(t *testing.T) {
	a, err := OpenSQLite("")
	require.NoError(t, err)
	b, err := OpenSQLite("")
	require.NoError(t, err)

	require.NoError(t, Migrate(a))
	assert.False(t, b.Migrator().HasTable(&model.PointSet{}))
}

func TestDumpSQLite(t *testing.T) {
	db, err := OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.Create(&model.PointSet{Name: "demo"}).Error)

	path := filepath.Join(t.TempDir(), "dump.db")
	require.NoError(t, DumpSQLite(db, path))
	// a second dump replaces the first
	require.NoError(t, DumpSQLite(db, path))

	disk, err := OpenSQLite(path)
	require.NoError(t, err)
	var count int64
	require.NoError(t, disk.Model(&model.PointSet{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDumpSQLite_NoPath(t *testing.T) {
	db, err := OpenSQLite("")
	require.NoError(t, err)
	assert.Error(t, DumpSQLite(db, ""))
}
