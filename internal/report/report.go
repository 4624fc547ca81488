// Package report renders datasets, ingestion summaries, and trend
// reports for external consumers: JSON and CSV files for machines, text
// for humans.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
	"github.com/ruralmapper/ruralmapper/pkg/trends"
)

// csvPointRow is the flattened CSV projection of one point. Map
// renderers additionally key off latitude/longitude/rating for marker
// placement, so those columns are part of the output contract.
type csvPointRow struct {
	ID             string  `csv:"id"`
	Latitude       float64 `csv:"latitude"`
	Longitude      float64 `csv:"longitude"`
	Provider       string  `csv:"provider"`
	Timestamp      string  `csv:"timestamp"`
	DownloadMbps   float64 `csv:"download_mbps"`
	UploadMbps     float64 `csv:"upload_mbps"`
	LatencyMs      float64 `csv:"latency_ms"`
	JitterMs       float64 `csv:"jitter_ms"`
	PacketLossPct  float64 `csv:"packet_loss_pct"`
	Stability      float64 `csv:"stability"`
	SpeedScore     float64 `csv:"speed_score"`
	LatencyScore   float64 `csv:"latency_score"`
	StabilityScore float64 `csv:"stability_score"`
	OverallScore   float64 `csv:"overall_score"`
	Rating         string  `csv:"rating"`
}

// WriteJSON writes the dataset as an indented JSON report.
func WriteJSON(path string, ds *connectivity.Dataset) error {
	return writeFile(path, func() ([]byte, error) {
		return json.MarshalIndent(ds, "", "  ")
	})
}

// WriteCSV writes the dataset as a flat CSV report.
func WriteCSV(path string, ds *connectivity.Dataset) error {
	return writeFile(path, func() ([]byte, error) {
		rows := make([]csvPointRow, 0, len(ds.Points))
		for _, p := range ds.Points {
			rows = append(rows, csvPointRow{
				ID:             p.ID,
				Latitude:       p.Latitude,
				Longitude:      p.Longitude,
				Provider:       p.Provider,
				Timestamp:      p.Timestamp.Format(time.RFC3339),
				DownloadMbps:   p.SpeedTest.DownloadMbps,
				UploadMbps:     p.SpeedTest.UploadMbps,
				LatencyMs:      p.SpeedTest.LatencyMs,
				JitterMs:       p.SpeedTest.JitterMs,
				PacketLossPct:  p.SpeedTest.PacketLossPct,
				Stability:      p.SpeedTest.Stability,
				SpeedScore:     p.Quality.SpeedScore,
				LatencyScore:   p.Quality.LatencyScore,
				StabilityScore: p.Quality.StabilityScore,
				OverallScore:   p.Quality.OverallScore,
				Rating:         string(p.Quality.Rating),
			})
		}
		return csvutil.Marshal(rows)
	})
}

// WriteText writes a human-readable dataset summary.
func WriteText(path string, ds *connectivity.Dataset, report *trends.Report) error {
	return writeFile(path, func() ([]byte, error) {
		var b strings.Builder
		fmt.Fprintf(&b, "Rural Connectivity Report\n")
		fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(&b, "Total points: %d\n\n", len(ds.Points))

		counts := ds.RatingCounts()
		fmt.Fprintf(&b, "Quality distribution:\n")
		for _, rating := range []connectivity.Rating{
			connectivity.RatingExcellent, connectivity.RatingGood,
			connectivity.RatingFair, connectivity.RatingPoor,
		} {
			fmt.Fprintf(&b, "  %-10s %d\n", rating+":", counts[rating])
		}
		fmt.Fprintln(&b)

		if report != nil && !report.Empty {
			fmt.Fprintf(&b, "Averages: quality %.1f, download %.1f Mbps, upload %.1f Mbps, latency %.1f ms\n\n",
				report.Totals.MeanOverall, report.Totals.MeanDownload,
				report.Totals.MeanUpload, report.Totals.MeanLatency)

			fmt.Fprintf(&b, "Providers:\n")
			for _, ps := range report.Providers {
				fmt.Fprintf(&b, "  %-20s %3d points, avg quality %.1f\n", ps.Provider, ps.Count, ps.MeanOverall)
			}
			fmt.Fprintln(&b)

			fmt.Fprintf(&b, "Insights:\n")
			for _, insight := range report.Insights {
				fmt.Fprintf(&b, "  - %s\n", insight)
			}
		}

		return []byte(b.String()), nil
	})
}

// WriteBundle writes the failover and suitability exports plus a
// manifest into dir, returning the manifest path.
func WriteBundle(dir string, failover, suitability, manifest any) (string, error) {
	files := map[string]any{
		"hybrid_simulator_input.json":  failover,
		"deployment_connectivity.json": suitability,
		"ecosystem_manifest.json":      manifest,
	}
	for name, doc := range files {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling %s: %w", name, err)
		}
		if err := writeBytes(filepath.Join(dir, name), data); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "ecosystem_manifest.json"), nil
}

func writeFile(path string, marshal func() ([]byte, error)) error {
	data, err := marshal()
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return writeBytes(path, data)
}

func writeBytes(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
