// Package storage abstracts blob storage for archived datasets and
// export bundles.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Client abstracts blob storage for dataset archives and export files.
type Client interface {
	PutDataset(ctx context.Context, country, datasetID string, data []byte) error
	GetDataset(ctx context.Context, country, datasetID string) ([]byte, error)
	PutExport(ctx context.Context, country, name string, data []byte) error
	GetExport(ctx context.Context, country, name string) ([]byte, error)
}

// Local implements Client using the local filesystem.
// Useful for development and testing.
type Local struct {
	BaseDir string
}

// NewLocal creates a Local client rooted at the given directory.
func NewLocal(baseDir string) *Local {
	return &Local{BaseDir: baseDir}
}

func (s *Local) path(country, kind, id string) string {
	return filepath.Join(s.BaseDir, country, kind, id+".json")
}

func (s *Local) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutDataset stores a dataset archive.
func (s *Local) PutDataset(ctx context.Context, country, datasetID string, data []byte) error {
	return s.put(s.path(country, "datasets", datasetID), data)
}

// GetDataset retrieves a dataset archive.
func (s *Local) GetDataset(ctx context.Context, country, datasetID string) ([]byte, error) {
	return os.ReadFile(s.path(country, "datasets", datasetID))
}

// PutExport stores an export file.
func (s *Local) PutExport(ctx context.Context, country, name string, data []byte) error {
	return s.put(s.path(country, "exports", name), data)
}

// GetExport retrieves an export file.
func (s *Local) GetExport(ctx context.Context, country, name string) ([]byte, error) {
	return os.ReadFile(s.path(country, "exports", name))
}
