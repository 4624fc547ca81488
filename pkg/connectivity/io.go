package connectivity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SaveDataset writes a dataset to disk as JSON.
func SaveDataset(path string, ds *Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for dataset: %w", err)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	return nil
}

// LoadDataset reads a dataset from disk. Scores are taken as serialized,
// never recomputed, so a save/load round trip reproduces quality values
// exactly.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("unmarshaling dataset: %w", err)
	}

	return &ds, nil
}

// BackupDataset copies the dataset file to a timestamped sibling and
// returns the backup path.
func BackupDataset(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading dataset for backup: %w", err)
	}

	ext := filepath.Ext(path)
	stem := path[:len(path)-len(ext)]
	backup := fmt.Sprintf("%s_backup_%s%s", stem, time.Now().Format("20060102_150405"), ext)

	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}

	return backup, nil
}
