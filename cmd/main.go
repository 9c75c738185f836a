package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jittakal/batchetl/internal/audit"
	"github.com/jittakal/batchetl/internal/config"
	"github.com/jittakal/batchetl/internal/decoder"
	"github.com/jittakal/batchetl/internal/encoder"
	apperrors "github.com/jittakal/batchetl/internal/errors"
	"github.com/jittakal/batchetl/internal/extract"
	"github.com/jittakal/batchetl/internal/load"
	"github.com/jittakal/batchetl/internal/observability"
	"github.com/jittakal/batchetl/internal/pipeline"
	"github.com/jittakal/batchetl/internal/storage"
	"github.com/jittakal/batchetl/internal/transform"
	"github.com/jittakal/batchetl/pkg/record"
	pkgstorage "github.com/jittakal/batchetl/pkg/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

func run() error {
	// Parse command-line flags
	configPath := flag.String("config", "", "path to configuration file")
	inputDir := flag.String("input", "", "input directory (overrides config)")
	outputPath := flag.String("output", "", "output artifact path (overrides config)")
	auditLogPath := flag.String("audit-log", "", "audit log path (overrides config)")
	flag.Parse()

	// Load configuration
	// Priority: CLI flag > CONFIG_PATH env var > default path
	var cfgPath string
	if *configPath != "" {
		cfgPath = *configPath
	} else if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		cfgPath = envPath
	} else {
		cfgPath = "config/application.yaml"
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flag overrides
	if *inputDir != "" {
		cfg.Pipeline.InputDir = *inputDir
	}
	if *outputPath != "" {
		cfg.Pipeline.OutputPath = *outputPath
	}
	if *auditLogPath != "" {
		cfg.Audit.LogFile = *auditLogPath
	}

	// Initialize observability
	logger := observability.NewLogger(observability.LoggingConfig{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
		Output: cfg.Observability.Logging.Output,
	})
	logger.Info("starting batch etl pipeline",
		"version", cfg.Application.Version,
		"environment", cfg.Application.Environment,
		"input_dir", cfg.Pipeline.InputDir,
		"output_path", cfg.Pipeline.OutputPath,
	)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	// Open audit log; one handle per run, shared by every stage
	auditLog, err := audit.Open(cfg.Audit.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() {
		if err := auditLog.Close(); err != nil {
			logger.Error("failed to close audit log", "error", err)
		}
	}()

	// Initialize output encoder
	encoderFactory := encoder.NewFactory(record.FileFormat(cfg.Storage.Format), cfg.Storage.Compression)
	enc, err := encoderFactory.CreateEncoder()
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}

	// Create storage writer based on backend
	var writer pkgstorage.Writer
	switch cfg.Storage.Backend {
	case "file":
		writer = storage.NewFileWriter(logger, metrics)
	case "s3":
		writer, err = storage.NewS3Writer(storage.S3Config{
			Bucket:       cfg.Storage.S3.Bucket,
			Region:       cfg.Storage.S3.Region,
			Endpoint:     cfg.Storage.S3.Endpoint,
			UsePathStyle: cfg.Storage.S3.UsePathStyle,
			SSEEnabled:   cfg.Storage.S3.SSEEnabled,
			SSEKMSKeyID:  cfg.Storage.S3.SSEKMSKeyID,
		}, logger, metrics)
		if err != nil {
			return fmt.Errorf("failed to create S3 writer: %w", err)
		}
	case "gcs":
		writer, err = storage.NewGCSWriter(storage.GCSConfig{
			Bucket:               cfg.Storage.GCS.Bucket,
			ProjectID:            cfg.Storage.GCS.ProjectID,
			CredentialsFile:      cfg.Storage.GCS.CredentialsFile,
			CredentialsJSON:      os.Getenv("GCP_CREDENTIALS_JSON"),
			UseDefaultCredential: cfg.Storage.GCS.UseDefaultCredential,
		}, logger, metrics)
		if err != nil {
			return fmt.Errorf("failed to create GCS writer: %w", err)
		}
	case "azure":
		writer, err = storage.NewAzureWriter(storage.AzureConfig{
			AccountName:   cfg.Storage.Azure.AccountName,
			AccountKey:    os.Getenv("AZURE_STORAGE_ACCOUNT_KEY"),
			ContainerName: cfg.Storage.Azure.Container,
			Endpoint:      cfg.Storage.Azure.Endpoint,
		}, logger, metrics)
		if err != nil {
			return fmt.Errorf("failed to create Azure Blob writer: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s (supported: file, s3, gcs, azure)", apperrors.ErrUnsupportedBackend, cfg.Storage.Backend)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("failed to close storage writer", "error", err)
		}
	}()

	// Assemble the pipeline
	p := pipeline.New(
		extract.New(decoder.NewFactory(), auditLog, logger, metrics),
		transform.New(auditLog, logger),
		load.New(enc, writer, cfg.Storage.Backend, auditLog, logger, metrics),
		logger,
		metrics,
	)

	rowCount, err := p.Run(context.Background(), cfg.Pipeline.InputDir, cfg.Pipeline.OutputPath)
	if err != nil {
		return err
	}

	logger.Info("run finished", "rows_written", rowCount)

	// Write the metrics snapshot; a one-shot run has no scrape window
	if cfg.Observability.Metrics.Enabled && cfg.Observability.Metrics.SnapshotFile != "" {
		if err := writeMetricsSnapshot(registry, cfg.Observability.Metrics.SnapshotFile); err != nil {
			logger.Warn("failed to write metrics snapshot", "error", err)
		}
	}

	return nil
}

func writeMetricsSnapshot(registry *prometheus.Registry, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics snapshot file: %w", err)
	}
	defer file.Close()
	return observability.WriteSnapshot(registry, file)
}
