// Package config handles loading and managing mapper configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the mapper.
type Config struct {
	Country string        `yaml:"country"`
	Scoring ScoringConfig `yaml:"scoring"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Storage StorageConfig `yaml:"storage"`
	Store   StoreConfig   `yaml:"store"`
}

// ScoringConfig overrides the scoring formula constants. Zero values
// fall back to the contract defaults.
type ScoringConfig struct {
	SpeedWeight     float64 `yaml:"speed_weight"`
	LatencyWeight   float64 `yaml:"latency_weight"`
	StabilityWeight float64 `yaml:"stability_weight"`
	DownloadTarget  float64 `yaml:"download_target_mbps"`
	UploadTarget    float64 `yaml:"upload_target_mbps"`
}

// IngestConfig controls batch ingestion behavior.
type IngestConfig struct {
	Verbose     bool `yaml:"verbose"`
	Parallelism int  `yaml:"parallelism"`
}

// StorageConfig selects the blob storage backend for archived datasets
// and export bundles.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "local", "s3", "gcs"
	BaseDir string `yaml:"base_dir"`

	S3Bucket   string `yaml:"s3_bucket"`
	S3Region   string `yaml:"s3_region"`
	S3Endpoint string `yaml:"s3_endpoint"`

	GCSBucket string `yaml:"gcs_bucket"`
}

// StoreConfig points at the Postgres system of record. An empty DSN
// disables the database store and the CLI works file-to-file.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Country: "BR",
		Ingest: IngestConfig{
			Parallelism: 1,
		},
		Storage: StorageConfig{
			Backend: "local",
			BaseDir: "data/storage",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .ruralmapper/config.yaml in the given
// directory and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".ruralmapper", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
