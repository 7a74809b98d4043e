// Package telemetry records radar passes as InfluxDB points. When InfluxDB is
// unreachable the points go to a gzipped line protocol backup file instead.
package telemetry

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/genradar/genradar/internal/config"
	"github.com/genradar/genradar/internal/queue"
	"github.com/genradar/genradar/pkg/core"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"
)

// Measurement is the InfluxDB measurement name for pass samples.
const Measurement = "radar_pass"

// Sample summarizes one projection and mapping pass.
type Sample struct {
	Time          time.Time
	OffsetDegrees float64
	Points        int
	Clamped       int
}

// pointWriter is satisfied by influxdb2 api.WriteAPIBlocking.
type pointWriter interface {
	WritePoint(ctx context.Context, point ...*influxdb2_write.Point) error
}

// Options configures a Recorder.
type Options struct {
	BufferSize    int
	FlushInterval time.Duration
	Tags          map[string]string
	Logger        zerolog.Logger
}

// Recorder buffers samples and writes them in batches. RecordPass never blocks
// on I/O; when the buffer is full the oldest samples are dropped.
type Recorder struct {
	writer pointWriter
	backup io.Writer
	closer []io.Closer
	client influxdb2.Client

	buf  *queue.Ring[Sample]
	opts Options
	log  zerolog.Logger

	flushMu sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	now     func() time.Time
}

// New creates a recorder writing to w, falling back to backup when w is nil or
// a write fails. Either may be nil.
func New(w pointWriter, backup io.Writer, opts Options) *Recorder {
	if opts.BufferSize <= 0 {
		opts.BufferSize = 1024
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 2 * time.Second
	}
	return &Recorder{
		writer: w,
		backup: backup,
		buf:    queue.New[Sample](opts.BufferSize),
		opts:   opts,
		log:    opts.Logger,
		now:    time.Now,
	}
}

// Connect builds a recorder from configuration. It pings InfluxDB and makes
// sure the org and bucket exist; if that fails it records to a backup file in
// cfg.BackupDir.
func Connect(ctx context.Context, cfg config.TelemetryConfig, log zerolog.Logger) (*Recorder, error) {
	opts := Options{
		BufferSize:    cfg.BufferSize,
		FlushInterval: cfg.FlushInterval,
		Logger:        log,
	}

	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetBatchSize(500))

	running, err := client.Ping(ctx)
	if err == nil && running {
		if err := ensureBucket(ctx, client, cfg.Org, cfg.Bucket, log); err != nil {
			client.Close()
			return nil, err
		}
		r := New(client.WriteAPIBlocking(cfg.Org, cfg.Bucket), nil, opts)
		r.client = client
		log.Info().Str("url", cfg.URL).Str("bucket", cfg.Bucket).Msg("InfluxDB client initialized")
		return r, nil
	}
	client.Close()

	path := filepath.Join(cfg.BackupDir, fmt.Sprintf("radar_%s.lp.gz", time.Now().UTC().Format("20060102_150405")))
	log.Warn().Err(err).Str("backupPath", path).Msg("InfluxDB unreachable, writing to backup file")

	if err := os.MkdirAll(cfg.BackupDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating backup directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("error creating backup file: %w", err)
	}
	gz := gzip.NewWriter(file)

	r := New(nil, gz, opts)
	r.closer = []io.Closer{gz, file}
	return r, nil
}

func ensureBucket(ctx context.Context, client influxdb2.Client, orgName, bucket string, log zerolog.Logger) error {
	org, err := client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		log.Info().Str("org", orgName).Msg("Organization not found, creating")
		org, err = client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			return fmt.Errorf("creating organization %s: %w", orgName, err)
		}
	}

	if _, err := client.BucketsAPI().FindBucketByName(ctx, bucket); err == nil {
		return nil
	}
	log.Info().Str("bucket", bucket).Msg("Bucket not found, creating")
	rule := domain.RetentionRuleTypeExpire
	_, err = client.BucketsAPI().CreateBucketWithName(ctx, org, bucket, domain.RetentionRule{
		Type:         &rule,
		EverySeconds: 60 * 60 * 24 * 30, // 30 days
	})
	if err != nil {
		return fmt.Errorf("creating bucket %s: %w", bucket, err)
	}
	return nil
}

// RecordPass buffers one sample.
func (r *Recorder) RecordPass(offsetDegrees float64, screen []core.ScreenPoint) {
	s := Sample{Time: r.now(), OffsetDegrees: offsetDegrees, Points: len(screen)}
	for _, sp := range screen {
		if sp.Clamped {
			s.Clamped++
		}
	}
	if n := r.buf.Push(s); n > 0 {
		r.log.Debug().Int("evicted", n).Msg("Telemetry buffer full")
	}
}

// Pending returns the number of buffered samples.
func (r *Recorder) Pending() int { return r.buf.Len() }

// Start flushes on every FlushInterval until Close.
func (r *Recorder) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.opts.FlushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.Flush(ctx); err != nil {
					r.log.Error().Err(err).Msg("Telemetry flush failed")
				}
			}
		}
	}()
}

// Flush writes every buffered sample.
func (r *Recorder) Flush(ctx context.Context) error {
	r.flushMu.Lock()
	defer r.flushMu.Unlock()

	samples := r.buf.Drain()
	if len(samples) == 0 {
		return nil
	}
	points := make([]*influxdb2_write.Point, len(samples))
	for i, s := range samples {
		points[i] = r.toPoint(s)
	}

	if r.writer != nil {
		err := r.writer.WritePoint(ctx, points...)
		if err == nil {
			r.log.Debug().Int("points", len(points)).Msg("Wrote telemetry")
			return nil
		}
		if r.backup == nil {
			return fmt.Errorf("writing %d points to InfluxDB: %w", len(points), err)
		}
		r.log.Warn().Err(err).Msg("InfluxDB write failed, using backup")
	}
	return r.writeBackup(points)
}

func (r *Recorder) writeBackup(points []*influxdb2_write.Point) error {
	if r.backup == nil {
		return fmt.Errorf("no InfluxDB writer and no backup writer")
	}
	for _, p := range points {
		line := influxdb2_write.PointToLineProtocol(p, time.Nanosecond)
		if _, err := io.WriteString(r.backup, line+"\n"); err != nil {
			return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
		}
	}
	return nil
}

func (r *Recorder) toPoint(s Sample) *influxdb2_write.Point {
	p := influxdb2_write.NewPointWithMeasurement(Measurement).
		AddField("offset_deg", s.OffsetDegrees).
		AddField("points", s.Points).
		AddField("clamped", s.Clamped).
		SetTime(s.Time)
	for k, v := range r.opts.Tags {
		p.AddTag(k, v)
	}
	return p
}

// Close stops the flush loop, writes what is left and releases the client and backup file.
func (r *Recorder) Close(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
		r.wg.Wait()
	}
	err := r.Flush(ctx)
	for _, c := range r.closer {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if r.client != nil {
		r.client.Close()
	}
	return err
}
