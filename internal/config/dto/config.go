package dto

// PipelineConfig is the root configuration structure.
type PipelineConfig struct {
	Application   ApplicationInfo     `mapstructure:"application"`
	Pipeline      PipelineSettings    `mapstructure:"pipeline"`
	Audit         AuditConfig         `mapstructure:"audit"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ApplicationInfo contains application metadata.
type ApplicationInfo struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// PipelineSettings contains the run's input and output locations.
type PipelineSettings struct {
	InputDir   string `mapstructure:"input_dir"`
	OutputPath string `mapstructure:"output_path"`
}

// AuditConfig contains audit log configuration.
type AuditConfig struct {
	LogFile string `mapstructure:"log_file"`
}

// StorageConfig contains output storage configuration.
type StorageConfig struct {
	Backend     string      `mapstructure:"backend"`
	Format      string      `mapstructure:"format"`
	Compression string      `mapstructure:"compression"`
	S3          S3Config    `mapstructure:"s3"`
	GCS         GCSConfig   `mapstructure:"gcs"`
	Azure       AzureConfig `mapstructure:"azure"`
}

// S3Config contains AWS S3 backend configuration.
type S3Config struct {
	Bucket       string `mapstructure:"bucket"`
	Region       string `mapstructure:"region"`
	Endpoint     string `mapstructure:"endpoint"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
	SSEEnabled   bool   `mapstructure:"sse_enabled"`
	SSEKMSKeyID  string `mapstructure:"sse_kms_key_id"`
}

// GCSConfig contains Google Cloud Storage backend configuration.
type GCSConfig struct {
	Bucket               string `mapstructure:"bucket"`
	ProjectID            string `mapstructure:"project_id"`
	CredentialsFile      string `mapstructure:"credentials_file"`
	UseDefaultCredential bool   `mapstructure:"use_default_credential"`
}

// AzureConfig contains Azure Blob Storage backend configuration.
type AzureConfig struct {
	AccountName string `mapstructure:"account_name"`
	Container   string `mapstructure:"container"`
	Endpoint    string `mapstructure:"endpoint"`
}

// ObservabilityConfig contains logging and metrics configuration.
type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig contains metrics configuration. SnapshotFile receives the
// gathered metrics in Prometheus text format at the end of the run.
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SnapshotFile string `mapstructure:"snapshot_file"`
}
