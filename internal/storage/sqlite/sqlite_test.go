package sqlitestorage

import (
	"path/filepath"
	"testing"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/pkg/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	center = core.NewPoint("Center Point", 33.683232, 72.988972, 0, 1.2, core.Transparent)
	imcb   = core.NewPoint("IMCB", 33.688210, 72.991315, 0, 1.2, core.Blue)
)

func TestBackend_FilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radar.db")

	b := New(config.SQLiteConfig{Path: path}, zerolog.Nop())
	require.NoError(t, b.Init())
	require.NoError(t, b.SaveSet("islamabad", center, []core.Point{imcb}))
	require.NoError(t, b.Close())

	reopened := New(config.SQLiteConfig{Path: path}, zerolog.Nop())
	require.NoError(t, reopened.Init())
	t.Cleanup(func() { _ = reopened.Close() })

	gotCenter, points, err := reopened.LoadSet("islamabad")
	require.NoError(t, err)
	assert.Equal(t, center, gotCenter)
	assert.Equal(t, []core.Point{imcb}, points)
}

func TestBackend_Snapshot(t *testing.T) {
	b := New(config.SQLiteConfig{}, zerolog.Nop())
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	require.NoError(t, b.SaveSet("islamabad", center, []core.Point{imcb}))

	path := filepath.Join(t.TempDir(), "snapshot.db")
	require.NoError(t, b.Snapshot(path))

	snap := New(config.SQLiteConfig{Path: path}, zerolog.Nop())
	require.NoError(t, snap.Init())
	t.Cleanup(func() { _ = snap.Close() })
	names, err := snap.ListSets()
	require.NoError(t, err)
	assert.Equal(t, []string{"islamabad"}, names)
}

func TestBackend_NotInitialized(t *testing.T) {
	b := New(config.SQLiteConfig{}, zerolog.Nop())
	assert.NoError(t, b.Close())
	assert.Error(t, b.Snapshot(filepath.Join(t.TempDir(), "x.db")))
}
