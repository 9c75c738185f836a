package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jittakal/batchetl/pkg/storage"
)

// Ensure implementation satisfies interface at compile time.
var _ storage.Writer = (*S3Writer)(nil)

// S3Config contains AWS S3 configuration.
type S3Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	UsePathStyle bool
	SSEEnabled   bool
	SSEKMSKeyID  string
}

// S3Writer implements storage.Writer for AWS S3. It uploads the artifact with
// optional server-side encryption (SSE).
type S3Writer struct {
	client      *s3.Client
	uploader    *manager.Uploader
	bucket      string
	sseEnabled  bool
	sseKMSKeyID string
	logger      *slog.Logger
	metrics     MetricsCollector
}

// NewS3Writer creates a new S3 artifact writer.
func NewS3Writer(cfg S3Config, logger *slog.Logger, metrics MetricsCollector) (*S3Writer, error) {
	ctx := context.Background()
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	uploader := manager.NewUploader(s3Client)

	logger.Info("S3 writer created",
		"bucket", cfg.Bucket,
		"region", cfg.Region,
		"sse_enabled", cfg.SSEEnabled,
	)

	return &S3Writer{
		client:      s3Client,
		uploader:    uploader,
		bucket:      cfg.Bucket,
		sseEnabled:  cfg.SSEEnabled,
		sseKMSKeyID: cfg.SSEKMSKeyID,
		logger:      logger,
		metrics:     metrics,
	}, nil
}

// Write uploads the artifact to the configured bucket. The path may be a
// plain key or an s3://bucket/key URI; uploading to the same key replaces the
// prior object.
func (w *S3Writer) Write(ctx context.Context, data []byte, path string) (int64, error) {
	startTime := time.Now()

	key := objectKey(path, "s3://")

	uploadInput := &s3.PutObjectInput{
		Bucket: aws.String(w.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if w.sseEnabled {
		if w.sseKMSKeyID != "" {
			uploadInput.ServerSideEncryption = types.ServerSideEncryptionAwsKms
			uploadInput.SSEKMSKeyId = aws.String(w.sseKMSKeyID)
		} else {
			uploadInput.ServerSideEncryption = types.ServerSideEncryptionAes256
		}
	}

	result, err := w.uploader.Upload(ctx, uploadInput)
	if err != nil {
		if w.metrics != nil {
			w.metrics.IncStorageErrors("s3", "upload")
		}
		return 0, fmt.Errorf("failed to upload to S3: %w", err)
	}

	w.logger.Info("wrote artifact to S3",
		"bucket", w.bucket,
		"key", key,
		"size_bytes", len(data),
		"location", result.Location,
		"total_duration_ms", time.Since(startTime).Milliseconds(),
	)

	if w.metrics != nil {
		w.metrics.SetArtifactSize(float64(len(data)))
	}
	return int64(len(data)), nil
}

// Close closes the S3 writer.
func (w *S3Writer) Close() error {
	return nil
}

// objectKey strips a scheme://bucket/ prefix from path, leaving the object
// key. Paths without the scheme pass through unchanged.
func objectKey(path string, scheme string) string {
	key := path
	if strings.HasPrefix(path, scheme) {
		trimmed := strings.TrimPrefix(path, scheme)
		parts := strings.SplitN(trimmed, "/", 2)
		if len(parts) == 2 {
			key = parts[1]
		} else {
			key = ""
		}
	}
	return strings.TrimPrefix(key, "/")
}
