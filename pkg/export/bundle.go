package export

import (
	"time"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

// Metadata heads every export file so consumers can verify provenance
// and format compatibility.
type Metadata struct {
	ExportedAt    time.Time `json:"export_timestamp"`
	Source        string    `json:"source"`
	TotalPoints   int       `json:"total_points"`
	FormatVersion string    `json:"format_version"`
	Purpose       string    `json:"purpose"`
}

const (
	sourceName    = "Rural Connectivity Mapper"
	formatVersion = "1.0"
)

// FailoverExport is the complete failover simulator input document.
type FailoverExport struct {
	Metadata Metadata         `json:"metadata"`
	Points   []FailoverRecord `json:"connectivity_points"`
}

// SuitabilityExport is the complete field-deployment document.
type SuitabilityExport struct {
	Metadata Metadata            `json:"metadata"`
	Layer    []SuitabilityRecord `json:"connectivity_layer"`
}

// Manifest summarizes an export bundle: what was produced, for whom, and
// the quality distribution of the underlying dataset.
type Manifest struct {
	Ecosystem    string                      `json:"ecosystem"`
	Version      string                      `json:"version"`
	CreatedAt    time.Time                   `json:"created"`
	TotalPoints  int                         `json:"total_points"`
	Providers    []string                    `json:"providers"`
	Distribution map[connectivity.Rating]int `json:"quality_distribution"`
	Files        map[string]string           `json:"files"`
}

// BuildFailoverExport transforms every point for the failover consumer.
func BuildFailoverExport(points []connectivity.Point, now time.Time) FailoverExport {
	records := make([]FailoverRecord, 0, len(points))
	for _, p := range points {
		records = append(records, ToFailoverRecord(p))
	}
	return FailoverExport{
		Metadata: Metadata{
			ExportedAt:    now,
			Source:        sourceName,
			TotalPoints:   len(points),
			FormatVersion: formatVersion,
			Purpose:       "failover_testing",
		},
		Points: records,
	}
}

// BuildSuitabilityExport transforms every point for the deployment
// dashboard consumer.
func BuildSuitabilityExport(points []connectivity.Point, now time.Time) SuitabilityExport {
	records := make([]SuitabilityRecord, 0, len(points))
	for _, p := range points {
		records = append(records, ToSuitabilityRecord(p))
	}
	return SuitabilityExport{
		Metadata: Metadata{
			ExportedAt:    now,
			Source:        sourceName,
			TotalPoints:   len(points),
			FormatVersion: formatVersion,
			Purpose:       "field_deployment_layer",
		},
		Layer: records,
	}
}

// BuildManifest summarizes a bundle containing the given files.
func BuildManifest(ds *connectivity.Dataset, files map[string]string, now time.Time) Manifest {
	return Manifest{
		Ecosystem:    sourceName,
		Version:      "1.0.0",
		CreatedAt:    now,
		TotalPoints:  len(ds.Points),
		Providers:    ds.Providers(),
		Distribution: ds.RatingCounts(),
		Files:        files,
	}
}
