package config

import "github.com/ruralmapper/ruralmapper/pkg/scoring"

// Weights merges the scoring overrides onto the contract defaults. Zero
// values keep the defaults so a partial config never silently zeroes a
// formula constant.
func (c *Config) Weights() scoring.Weights {
	w := scoring.Defaults()
	if c.Scoring.SpeedWeight != 0 {
		w.SpeedWeight = c.Scoring.SpeedWeight
	}
	if c.Scoring.LatencyWeight != 0 {
		w.LatencyWeight = c.Scoring.LatencyWeight
	}
	if c.Scoring.StabilityWeight != 0 {
		w.StabilityWeight = c.Scoring.StabilityWeight
	}
	if c.Scoring.DownloadTarget != 0 {
		w.DownloadTargetMbps = c.Scoring.DownloadTarget
	}
	if c.Scoring.UploadTarget != 0 {
		w.UploadTargetMbps = c.Scoring.UploadTarget
	}
	return w
}
