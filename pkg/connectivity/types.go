// Package connectivity defines the core data model for the rural
// connectivity mapper. These types are the shared vocabulary across all
// pipeline stages.
package connectivity

import "time"

// Rating is the discrete quality tier derived from an overall score.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
)

// RatingFromScore maps an overall score to a rating tier.
func RatingFromScore(overall float64) Rating {
	switch {
	case overall >= 80:
		return RatingExcellent
	case overall >= 60:
		return RatingGood
	case overall >= 40:
		return RatingFair
	default:
		return RatingPoor
	}
}

// SpeedTest holds a normalized network measurement. All numeric fields
// are finite and non-negative once a record has passed validation;
// PacketLossPct is additionally bounded to 100.
type SpeedTest struct {
	DownloadMbps  float64 `json:"download_mbps"`
	UploadMbps    float64 `json:"upload_mbps"`
	LatencyMs     float64 `json:"latency_ms"`
	JitterMs      float64 `json:"jitter_ms"`
	PacketLossPct float64 `json:"packet_loss_pct"`

	// Stability is computed by the scoring engine from jitter and packet
	// loss, stored here and reused as the stability score. Not settable
	// from input.
	Stability float64 `json:"stability"`
}

// QualityScore is the composite quality assessment for one SpeedTest.
// Immutable once computed; recomputed wholesale when the source
// measurement changes, never patched field-by-field.
type QualityScore struct {
	SpeedScore     float64 `json:"speed_score"`
	LatencyScore   float64 `json:"latency_score"`
	StabilityScore float64 `json:"stability_score"`
	OverallScore   float64 `json:"overall_score"`
	Rating         Rating  `json:"rating"`
}

// Point represents a geographic location with one scored measurement.
// A Point exclusively owns its SpeedTest and QualityScore.
type Point struct {
	ID        string       `json:"id"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Provider  string       `json:"provider"`
	Tags      []string     `json:"tags,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
	SpeedTest SpeedTest    `json:"speed_test"`
	Quality   QualityScore `json:"quality_score"`
}

// Dataset is a persisted collection of points. The pipeline treats it as
// an externally-owned collection passed in and returned, never as global
// state.
type Dataset struct {
	Points    []Point   `json:"points"`
	SavedAt   time.Time `json:"saved_at"`
	Source    string    `json:"source,omitempty"`
	CountryID string    `json:"country,omitempty"`
}

// Providers returns the set of unique provider names in the dataset.
func (d *Dataset) Providers() []string {
	seen := make(map[string]bool)
	var providers []string
	for _, p := range d.Points {
		if !seen[p.Provider] {
			seen[p.Provider] = true
			providers = append(providers, p.Provider)
		}
	}
	return providers
}

// RatingCounts returns the number of points per rating tier.
func (d *Dataset) RatingCounts() map[Rating]int {
	counts := make(map[Rating]int)
	for _, p := range d.Points {
		counts[p.Quality.Rating]++
	}
	return counts
}

// Remove deletes the point with the given id and reports whether it was
// present. Points are removed only by explicit deletion.
func (d *Dataset) Remove(id string) bool {
	for i, p := range d.Points {
		if p.ID == id {
			d.Points = append(d.Points[:i], d.Points[i+1:]...)
			return true
		}
	}
	return false
}
