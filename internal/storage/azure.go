package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/jittakal/batchetl/pkg/storage"
)

// Ensure implementation satisfies interface at compile time.
var _ storage.Writer = (*AzureWriter)(nil)

// AzureConfig contains Azure Blob Storage configuration.
type AzureConfig struct {
	AccountName   string
	AccountKey    string
	ContainerName string
	Endpoint      string
}

// AzureWriter implements storage.Writer for Azure Blob Storage using access
// key authentication.
type AzureWriter struct {
	client        *azblob.Client
	containerName string
	logger        *slog.Logger
	metrics       MetricsCollector
}

// NewAzureWriter creates a new Azure Blob artifact writer.
func NewAzureWriter(cfg AzureConfig, logger *slog.Logger, metrics MetricsCollector) (*AzureWriter, error) {
	var connectionString string
	if cfg.Endpoint != "" {
		connectionString = fmt.Sprintf("DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=%s;BlobEndpoint=%s",
			cfg.AccountName, cfg.AccountKey, cfg.Endpoint)
	} else {
		connectionString = fmt.Sprintf("DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=%s;EndpointSuffix=core.windows.net",
			cfg.AccountName, cfg.AccountKey)
	}

	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %w", err)
	}

	logger.Info("Azure writer created",
		"container", cfg.ContainerName,
		"account", cfg.AccountName,
	)

	return &AzureWriter{
		client:        client,
		containerName: cfg.ContainerName,
		logger:        logger,
		metrics:       metrics,
	}, nil
}

// Write uploads the artifact to the configured container. The path may be a
// plain blob name or a wasbs://container/name URI; uploading to the same name
// replaces the prior blob.
func (w *AzureWriter) Write(ctx context.Context, data []byte, path string) (int64, error) {
	startTime := time.Now()

	name := objectKey(path, "wasbs://")

	if _, err := w.client.UploadBuffer(ctx, w.containerName, name, data, nil); err != nil {
		if w.metrics != nil {
			w.metrics.IncStorageErrors("azure", "upload")
		}
		return 0, fmt.Errorf("failed to upload to Azure Blob: %w", err)
	}

	w.logger.Info("wrote artifact to Azure Blob",
		"container", w.containerName,
		"blob", name,
		"size_bytes", len(data),
		"total_duration_ms", time.Since(startTime).Milliseconds(),
	)

	if w.metrics != nil {
		w.metrics.SetArtifactSize(float64(len(data)))
	}
	return int64(len(data)), nil
}

// Close closes the Azure writer.
func (w *AzureWriter) Close() error {
	return nil
}
