package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCS implements Client using Google Cloud Storage.
type GCS struct {
	client *gcs.Client
	bucket string
}

// NewGCS creates a GCS-backed Client.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (s *GCS) key(country, kind, id string) string {
	return country + "/" + kind + "/" + id + ".json"
}

func (s *GCS) put(ctx context.Context, key string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (s *GCS) get(ctx context.Context, key string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (s *GCS) PutDataset(ctx context.Context, country, datasetID string, data []byte) error {
	return s.put(ctx, s.key(country, "datasets", datasetID), data)
}

func (s *GCS) GetDataset(ctx context.Context, country, datasetID string) ([]byte, error) {
	return s.get(ctx, s.key(country, "datasets", datasetID))
}

func (s *GCS) PutExport(ctx context.Context, country, name string, data []byte) error {
	return s.put(ctx, s.key(country, "exports", name), data)
}

func (s *GCS) GetExport(ctx context.Context, country, name string) ([]byte, error) {
	return s.get(ctx, s.key(country, "exports", name))
}
