package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/internal/logging"
	intOtel "github.com/genradar/genradar/internal/otel"
	"github.com/genradar/genradar/internal/storage"
	"github.com/genradar/genradar/internal/telemetry"
	"github.com/genradar/genradar/internal/view"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// BuildDate can be set at build time via ldflags
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"

	AppName string = "genradar"
)

var (
	// ConfigDir holds genradar.cfg.json. Overridden by GENRADAR_CONFIG_DIR.
	ConfigDir string = "."

	// LogFilePath is the rotating session log; empty when logging to stdout.
	LogFilePath string

	SessionStartTime time.Time = time.Now()

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// StorageLogger is the zerolog logger handed to storage and telemetry
	StorageLogger zerolog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	// activeView is the running radar, read by the log context provider
	activeView atomic.Pointer[view.View]

	storageBackend storage.Backend
	recorder       *telemetry.Recorder

	closers []io.Closer
)

func setup() {
	var err error

	if dir := os.Getenv("GENRADAR_CONFIG_DIR"); dir != "" {
		ConfigDir = dir
	}

	SlogManager = logging.NewSlogManager()

	if err = config.Load(ConfigDir); err != nil {
		config.SetDefaults()
		SlogManager.Setup(config.GetString("logLevel"), logging.Outputs{})
		Logger = SlogManager.Logger()
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	}

	logCfg := config.GetLoggingConfig()
	var out logging.Outputs

	var logWriter io.Writer = os.Stdout
	if logCfg.Dir != "" {
		if err := os.MkdirAll(logCfg.Dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logs dir: %v\n", err)
		} else {
			LogFilePath = logging.LogFilePath(logCfg.Dir, AppName, SessionStartTime)
			file := logging.NewRotatingFile(LogFilePath, logCfg.MaxSizeMB, logCfg.MaxBackups)
			closers = append(closers, file)
			out.File = file
			logWriter = file
		}
	}

	if logCfg.GraylogEnabled {
		gw, err := logging.NewGraylogWriter(logCfg.GraylogAddress)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to Graylog at %s: %v\n", logCfg.GraylogAddress, err)
		} else {
			out.Graylog = gw
		}
	}

	otelCfg := config.GetOTelConfig()
	OTelProvider, err = intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    logWriter,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize OTel provider: %v\n", err)
		OTelProvider, _ = intOtel.New(intOtel.Config{})
	}
	var otelLogProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		otelLogProvider = OTelProvider.LoggerProvider()
	}
	out.Provider = otelLogProvider

	out.Context = func() []slog.Attr {
		if v := activeView.Load(); v != nil {
			return v.ContextAttrs()
		}
		return nil
	}

	SlogManager.Setup(logCfg.Level, out)
	Logger = SlogManager.Logger()
	if LogFilePath != "" {
		Logger.Info("Logging to file", "path", LogFilePath)
	}

	StorageLogger = logging.NewZerolog(logWriter, logCfg.Level)
}

func initStorage() error {
	cfg := config.GetStorageConfig()
	backend, err := storage.NewBackend(cfg, StorageLogger)
	if err != nil {
		return fmt.Errorf("creating storage backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initializing %s storage: %w", cfg.Type, err)
	}
	storageBackend = backend
	Logger.Info("Storage initialized", "type", cfg.Type)
	return nil
}

func initTelemetry(ctx context.Context) {
	cfg := config.GetTelemetryConfig()
	if !cfg.Enabled {
		return
	}
	r, err := telemetry.Connect(ctx, cfg, StorageLogger)
	if err != nil {
		Logger.Error("Failed to set up telemetry", "error", err)
		return
	}
	r.Start(ctx)
	recorder = r
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if recorder != nil {
		if err := recorder.Close(ctx); err != nil {
			Logger.Error("Failed to close telemetry", "error", err)
		}
	}
	if storageBackend != nil {
		if err := storageBackend.Close(); err != nil {
			Logger.Error("Failed to close storage", "error", err)
		}
	}

	if OTelProvider != nil && OTelProvider.Enabled() {
		if counts, err := OTelProvider.Collect(ctx); err == nil {
			for name, n := range counts {
				Logger.Info("Metric", "name", name, "value", n)
			}
		}
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "OTel shutdown failed: %v\n", err)
		}
	}
	if SlogManager != nil {
		_ = SlogManager.Flush(ctx)
	}
	for _, c := range closers {
		_ = c.Close()
	}
}

func usage() {
	fmt.Printf(`%s %s (built %s)

usage:
  %[1]s [demo [seconds]]             run the example screen with a simulated compass
  %[1]s render <out.png> [heading]   render the example points to a PNG
  %[1]s seed [name]                  store the example points as a named set
  %[1]s list [name]                  list stored sets, or the points of one set
  %[1]s fixture <file.yaml> <out.png> render a YAML fixture to a PNG
`, AppName, Version, BuildDate)
}

func main() {
	args := os.Args[1:]
	cmd := "demo"
	if len(args) > 0 {
		cmd = strings.ToLower(args[0])
		args = args[1:]
	}
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		usage()
		return
	}

	setup()
	defer shutdown()
	Logger.Info("Starting up...", "version", Version, "command", cmd)

	var err error
	switch cmd {
	case "demo":
		err = runDemo(args)
	case "render":
		err = runRender(args)
	case "seed":
		err = runSeed(args)
	case "list":
		err = runList(args)
	case "fixture":
		err = runFixture(args)
	default:
		usage()
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		Logger.Error("Command failed", "command", cmd, "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		shutdown()
		os.Exit(1)
	}
}

func outputPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("no output path provided")
	}
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	return p, nil
}
