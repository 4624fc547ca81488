package connectivity_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

func sampleDataset() *connectivity.Dataset {
	return &connectivity.Dataset{
		Points: []connectivity.Point{
			{
				ID:        "pt-1",
				Latitude:  -15.7801,
				Longitude: -47.9292,
				Provider:  "Starlink",
				Tags:      []string{"unverified-provider"},
				Timestamp: time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
				SpeedTest: connectivity.SpeedTest{
					DownloadMbps:  165.4,
					UploadMbps:    22.8,
					LatencyMs:     28.5,
					JitterMs:      3.2,
					PacketLossPct: 0.1,
					Stability:     92.6,
				},
				Quality: connectivity.QualityScore{
					SpeedScore:     98.35,
					LatencyScore:   89.375,
					StabilityScore: 92.6,
					OverallScore:   93.9325,
					Rating:         connectivity.RatingExcellent,
				},
			},
		},
		SavedAt:   time.Date(2026, 8, 15, 11, 0, 0, 0, time.UTC),
		Source:    "field_survey.csv",
		CountryID: "BR",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dataset.json")

	want := sampleDataset()
	if err := connectivity.SaveDataset(path, want); err != nil {
		t.Fatalf("SaveDataset() error: %v", err)
	}

	got, err := connectivity.LoadDataset(path)
	if err != nil {
		t.Fatalf("LoadDataset() error: %v", err)
	}

	// Scores round-trip exactly; nothing is recomputed on load.
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := connectivity.LoadDataset(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadDatasetCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := connectivity.SaveDataset(path, sampleDataset()); err != nil {
		t.Fatal(err)
	}
	// Truncate to something unparseable.
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := connectivity.LoadDataset(path); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestBackupDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.json")
	if err := connectivity.SaveDataset(path, sampleDataset()); err != nil {
		t.Fatal(err)
	}

	backup, err := connectivity.BackupDataset(path)
	if err != nil {
		t.Fatalf("BackupDataset() error: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(backup), "dataset_backup_") {
		t.Errorf("backup name = %q, want dataset_backup_ prefix", filepath.Base(backup))
	}
	if !strings.HasSuffix(backup, ".json") {
		t.Errorf("backup name = %q, want .json suffix", backup)
	}

	got, err := connectivity.LoadDataset(backup)
	if err != nil {
		t.Fatalf("loading backup: %v", err)
	}
	if len(got.Points) != 1 {
		t.Errorf("backup has %d points, want 1", len(got.Points))
	}
}

func TestBackupDatasetMissingSource(t *testing.T) {
	if _, err := connectivity.BackupDataset(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing source file")
	}
}
