package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "genradar.cfg.json"

// RadarConfig holds the radar view settings.
type RadarConfig struct {
	Width              float32 `json:"width" mapstructure:"width"`
	Height             float32 `json:"height" mapstructure:"height"`
	MaxDistanceMeters  float64 `json:"maxDistanceMeters" mapstructure:"maxDistanceMeters"`
	Smoothing          float64 `json:"smoothing" mapstructure:"smoothing"`
	DeclinationDegrees float64 `json:"declinationDegrees" mapstructure:"declinationDegrees"`
	Projection         string  `json:"projection" mapstructure:"projection"`
	FollowLocation     bool    `json:"followLocation" mapstructure:"followLocation"`
	// Track is a JSON array of [long,lat] pairs walked by the simulated GPS.
	Track              string  `json:"track" mapstructure:"track"`
	TrackRateHz        int     `json:"trackRateHz" mapstructure:"trackRateHz"`
}

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite storage backend settings.
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// PostgresConfig holds the connection settings under "db".
type PostgresConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// DSN returns a libpq keyword/value connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Username, c.Password, c.Database)
}

// StorageConfig selects and configures the point set store.
type StorageConfig struct {
	Type     string
	Memory   MemoryConfig
	SQLite   SQLiteConfig
	Postgres PostgresConfig
}

// TelemetryConfig holds InfluxDB settings for pass samples.
type TelemetryConfig struct {
	Enabled       bool
	URL           string
	Token         string
	Org           string
	Bucket        string
	FlushInterval time.Duration
	BufferSize    int
	BackupDir     string
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// LoggingConfig holds log sink settings.
type LoggingConfig struct {
	Level          string
	Dir            string
	MaxSizeMB      int
	MaxBackups     int
	GraylogEnabled bool
	GraylogAddress string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// SetDefaults registers every default. Load calls it; callers running
// without a config file call it directly.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("logging.maxSizeMB", 32)
	viper.SetDefault("logging.maxBackups", 3)

	viper.SetDefault("radar.width", 120)
	viper.SetDefault("radar.height", 120)
	viper.SetDefault("radar.maxDistanceMeters", 1000)
	viper.SetDefault("radar.smoothing", 0.25)
	viper.SetDefault("radar.declinationDegrees", 0)
	viper.SetDefault("radar.projection", "spherical")
	viper.SetDefault("radar.followLocation", false)
	viper.SetDefault("radar.track", "")
	viper.SetDefault("radar.trackRateHz", 1)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./pointsets")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "./genradar.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "genradar")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "genradar")
	viper.SetDefault("influx.bucket", "radar")
	viper.SetDefault("influx.flushInterval", "2s")
	viper.SetDefault("influx.bufferSize", 1024)
	viper.SetDefault("influx.backupDir", "./telemetry")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "genradar")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetRadarConfig returns the radar section.
func GetRadarConfig() RadarConfig {
	return RadarConfig{
		Width:              float32(viper.GetFloat64("radar.width")),
		Height:             float32(viper.GetFloat64("radar.height")),
		MaxDistanceMeters:  viper.GetFloat64("radar.maxDistanceMeters"),
		Smoothing:          viper.GetFloat64("radar.smoothing"),
		DeclinationDegrees: viper.GetFloat64("radar.declinationDegrees"),
		Projection:         viper.GetString("radar.projection"),
		FollowLocation:     viper.GetBool("radar.followLocation"),
		Track:              viper.GetString("radar.track"),
		TrackRateHz:        viper.GetInt("radar.trackRateHz"),
	}
}

// GetStorageConfig returns the storage section plus the postgres "db" section.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetTelemetryConfig returns the influx section.
func GetTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled: viper.GetBool("influx.enabled"),
		URL: fmt.Sprintf("%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port")),
		Token:         viper.GetString("influx.token"),
		Org:           viper.GetString("influx.org"),
		Bucket:        viper.GetString("influx.bucket"),
		FlushInterval: viper.GetDuration("influx.flushInterval"),
		BufferSize:    viper.GetInt("influx.bufferSize"),
		BackupDir:     viper.GetString("influx.backupDir"),
	}
}

// GetOTelConfig returns the otel section.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetLoggingConfig returns log level, directory and sink settings.
func GetLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:          viper.GetString("logLevel"),
		Dir:            viper.GetString("logsDir"),
		MaxSizeMB:      viper.GetInt("logging.maxSizeMB"),
		MaxBackups:     viper.GetInt("logging.maxBackups"),
		GraylogEnabled: viper.GetBool("graylog.enabled"),
		GraylogAddress: viper.GetString("graylog.address"),
	}
}
