package memory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	center = core.NewPoint("Center Point", 33.683232, 72.988972, 0, 1.2, core.Transparent)
	imcb   = core.NewPoint("IMCB", 33.688210, 72.991315, 0, 1.2, core.Blue)
	police = core.NewPoint("Sadar police Station", 33.691424, 72.970287, 0, 1.2, core.Blue)
)

func TestBackend_InMemoryOnly(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())

	points := []core.Point{imcb, police}
	require.NoError(t, b.SaveSet("islamabad", center, points))
	points[0] = police // caller mutation must not leak in

	gotCenter, got, err := b.LoadSet("islamabad")
	require.NoError(t, err)
	assert.Equal(t, center, gotCenter)
	assert.Equal(t, []core.Point{imcb, police}, got)
	assert.Empty(t, b.GetExportedFilePath())
}

func TestBackend_SaveSetEmptyName(t *testing.T) {
	b := New(config.MemoryConfig{})
	assert.Error(t, b.SaveSet("", center, nil))
}

func TestBackend_NotFound(t *testing.T) {
	b := New(config.MemoryConfig{})

	_, _, err := b.LoadSet("x")
	assert.True(t, errors.Is(err, core.ErrPointSetNotFound))
	assert.True(t, errors.Is(b.DeleteSet("x"), core.ErrPointSetNotFound))
}

func TestBackend_ListSetsSorted(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.SaveSet("b", center, nil))
	require.NoError(t, b.SaveSet("a", center, nil))
	require.NoError(t, b.SaveSet("c", center, nil))

	names, err := b.ListSets()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestBackend_ExportAndReload(t *testing.T) {
	for _, compress := range []bool{false, true} {
		name := "plain"
		if compress {
			name = "gzip"
		}
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "sets")
			cfg := config.MemoryConfig{OutputDir: dir, CompressOutput: compress}

			b := New(cfg)
			require.NoError(t, b.Init())
			require.NoError(t, b.SaveSet("Islamabad: F-8", center, []core.Point{imcb, police}))

			path := b.GetExportedFilePath()
			if compress {
				assert.Equal(t, filepath.Join(dir, "Islamabad__F-8.json.gz"), path)
			} else {
				assert.Equal(t, filepath.Join(dir, "Islamabad__F-8.json"), path)
			}
			assert.FileExists(t, path)

			reloaded := New(cfg)
			require.NoError(t, reloaded.Init())
			gotCenter, got, err := reloaded.LoadSet("Islamabad: F-8")
			require.NoError(t, err)
			assert.Equal(t, center, gotCenter)
			assert.Equal(t, []core.Point{imcb, police}, got)
		})
	}
}

func TestBackend_ResaveSwitchesFormat(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, New(config.MemoryConfig{OutputDir: dir}).SaveSet("demo", center, nil))

	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})
	require.NoError(t, b.SaveSet("demo", center, []core.Point{imcb}))

	assert.NoFileExists(t, filepath.Join(dir, "demo.json"))
	assert.FileExists(t, filepath.Join(dir, "demo.json.gz"))
}

func TestBackend_DeleteRemovesExport(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir})
	require.NoError(t, b.SaveSet("demo", center, []core.Point{imcb}))

	require.NoError(t, b.DeleteSet("demo"))
	assert.NoFileExists(t, filepath.Join(dir, "demo.json"))
}

func TestInit_MissingDir(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: filepath.Join(t.TempDir(), "absent")})
	require.NoError(t, b.Init())

	names, err := b.ListSets()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestInit_CorruptExport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	err := New(config.MemoryConfig{OutputDir: dir}).Init()
	assert.ErrorContains(t, err, "bad.json")
}
