package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name    string
		logsDir string
		appName string
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "logs",
			appName: "genradar",
			want:    filepath.Join("logs", "genradar.20260212_213836.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./logs",
			appName: "genradar",
			want:    filepath.Join(".", "logs", "genradar.20260212_213836.log"),
		},
		{
			name:    "absolute path",
			logsDir: filepath.Join("/var", "log", "genradar"),
			appName: "genradar",
			want:    filepath.Join("/var", "log", "genradar", "genradar.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.appName, sessionStart)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRotatingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genradar.log")

	w := NewRotatingFile(path, 0, 2)
	t.Cleanup(func() { w.Close() })

	assert.Equal(t, 32, w.MaxSize)
	assert.Equal(t, 2, w.MaxBackups)

	_, err := w.Write([]byte("radar up\n"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestNewGraylogWriter_BadAddress(t *testing.T) {
	_, err := NewGraylogWriter("not an address")
	assert.Error(t, err)
}
