package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/jittakal/batchetl/pkg/storage"
)

// Ensure implementation satisfies interface at compile time.
var _ storage.Writer = (*GCSWriter)(nil)

// GCSConfig contains Google Cloud Storage configuration.
type GCSConfig struct {
	Bucket               string
	ProjectID            string
	CredentialsFile      string
	CredentialsJSON      string
	Endpoint             string
	UseDefaultCredential bool
}

// GCSWriter implements storage.Writer for Google Cloud Storage. It supports
// multiple authentication methods (service account file, JSON, default
// credentials).
type GCSWriter struct {
	client  *gcstorage.Client
	bucket  string
	logger  *slog.Logger
	metrics MetricsCollector
}

// NewGCSWriter creates a new Google Cloud Storage artifact writer.
func NewGCSWriter(cfg GCSConfig, logger *slog.Logger, metrics MetricsCollector) (*GCSWriter, error) {
	ctx := context.Background()

	var clientOpts []option.ClientOption
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}

	if cfg.UseDefaultCredential {
		logger.Info("using default GCP credentials")
	} else if cfg.CredentialsJSON != "" {
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
		logger.Info("using GCP credentials from JSON string")
	} else if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
		logger.Info("using GCP credentials from file", "file", cfg.CredentialsFile)
	} else {
		logger.Info("no explicit credentials provided, using default GCP credentials")
	}

	client, err := gcstorage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	logger.Info("GCS writer created",
		"bucket", cfg.Bucket,
		"project_id", cfg.ProjectID,
	)

	return &GCSWriter{
		client:  client,
		bucket:  cfg.Bucket,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Write uploads the artifact to the configured bucket. The path may be a
// plain object name or a gs://bucket/name URI; uploading to the same name
// replaces the prior object.
func (w *GCSWriter) Write(ctx context.Context, data []byte, path string) (int64, error) {
	startTime := time.Now()

	name := objectKey(path, "gs://")

	objWriter := w.client.Bucket(w.bucket).Object(name).NewWriter(ctx)
	if _, err := io.Copy(objWriter, bytes.NewReader(data)); err != nil {
		objWriter.Close()
		if w.metrics != nil {
			w.metrics.IncStorageErrors("gcs", "upload")
		}
		return 0, fmt.Errorf("failed to upload to GCS: %w", err)
	}
	if err := objWriter.Close(); err != nil {
		if w.metrics != nil {
			w.metrics.IncStorageErrors("gcs", "close")
		}
		return 0, fmt.Errorf("failed to finalize GCS upload: %w", err)
	}

	w.logger.Info("wrote artifact to GCS",
		"bucket", w.bucket,
		"object", name,
		"size_bytes", len(data),
		"total_duration_ms", time.Since(startTime).Milliseconds(),
	)

	if w.metrics != nil {
		w.metrics.SetArtifactSize(float64(len(data)))
	}
	return int64(len(data)), nil
}

// Close closes the GCS client.
func (w *GCSWriter) Close() error {
	return w.client.Close()
}
