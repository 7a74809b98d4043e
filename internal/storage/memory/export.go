package memory

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/genradar/genradar/internal/model"
	"github.com/genradar/genradar/internal/model/convert"
)

const (
	extJSON = ".json"
	extGzip = ".json.gz"
)

// fileStem makes a set name safe to use as a file name.
func fileStem(name string) string {
	r := strings.NewReplacer(" ", "_", ":", "_", "/", "_", `\`, "_")
	return r.Replace(name)
}

// exportJSON writes one set, replacing any earlier export of it.
func (b *Backend) exportJSON(name string, r record) error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := removeExports(b.cfg.OutputDir, name); err != nil {
		return err
	}

	ext := extJSON
	if b.cfg.CompressOutput {
		ext = extGzip
	}
	outputPath := filepath.Join(b.cfg.OutputDir, fileStem(name)+ext)

	data := convert.CoreToPointSet(name, r.center, r.points)
	if err := writeExport(outputPath, data, b.cfg.CompressOutput); err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func writeExport(path string, data model.PointSet, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	if compress {
		gzWriter := gzip.NewWriter(f)
		defer gzWriter.Close()
		w = gzWriter
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func readExport(path string) (model.PointSet, error) {
	var data model.PointSet

	f, err := os.Open(path)
	if err != nil {
		return data, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, extGzip) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return data, fmt.Errorf("reading %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return data, fmt.Errorf("decoding %s: %w", path, err)
	}
	return data, nil
}

// loadExports reads every export in dir. A missing dir holds no sets.
func loadExports(dir string) (map[string]record, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading export directory: %w", err)
	}

	sets := make(map[string]record)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !(strings.HasSuffix(name, extJSON) || strings.HasSuffix(name, extGzip)) {
			continue
		}
		data, err := readExport(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		center, points, err := convert.PointSetToCore(data)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
		sets[data.Name] = record{center: center, points: points}
	}
	return sets, nil
}

func removeExports(dir, name string) error {
	for _, ext := range []string{extJSON, extGzip} {
		err := os.Remove(filepath.Join(dir, fileStem(name)+ext))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing old export: %w", err)
		}
	}
	return nil
}
