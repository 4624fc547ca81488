package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ruralmapper/ruralmapper/internal/storage"
	"github.com/ruralmapper/ruralmapper/pkg/config"
)

// loadConfig finds and loads the nearest config file, falling back to
// defaults when none exists or parsing fails.
func loadConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfgFile := config.FindConfigFile(cwd)
	if cfgFile == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// openStorage builds the blob storage client selected by config.
func openStorage(ctx context.Context, cfg *config.Config) (storage.Client, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		return storage.NewLocal(cfg.Storage.BaseDir), nil
	case "s3":
		return storage.NewS3(ctx, storage.S3Config{
			Bucket:   cfg.Storage.S3Bucket,
			Region:   cfg.Storage.S3Region,
			Endpoint: cfg.Storage.S3Endpoint,
		})
	case "gcs":
		return storage.NewGCS(ctx, cfg.Storage.GCSBucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
