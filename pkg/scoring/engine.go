// Package scoring implements the connectivity quality scoring engine.
// It evaluates normalized speed-test measurements and produces clamped,
// reproducible component and overall scores.
package scoring

import (
	"fmt"
	"math"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

// Engine computes quality scores from speed-test measurements.
// Scoring is deterministic and performs no I/O: identical input always
// yields bit-identical output.
type Engine struct {
	weights Weights
}

// NewEngine creates a scoring engine with the given weights.
func NewEngine(w Weights) *Engine {
	return &Engine{weights: w}
}

// NewDefaultEngine creates a scoring engine with the contract weights.
func NewDefaultEngine() *Engine {
	return NewEngine(Defaults())
}

// Score computes the quality score for a measurement. The stability
// value is derived from jitter and packet loss, written back to the
// SpeedTest, and reused as the stability score component.
//
// Score operates on already-validated data: non-finite or negative
// inputs are invariant violations from an upstream bug, and panic
// rather than degrade into a default score.
func (e *Engine) Score(st *connectivity.SpeedTest) connectivity.QualityScore {
	mustBeValid(st)
	w := e.weights

	speedScore := clamp(((st.DownloadMbps/w.DownloadTargetMbps)+(st.UploadMbps/w.UploadTargetMbps))/2*100, 0, 100)
	latencyScore := clamp(100-(st.LatencyMs-w.LatencyBaseMs)*w.LatencyFalloffPerMs, 0, 100)
	stability := clamp(100-(st.JitterMs*w.JitterPenaltyPerMs+st.PacketLossPct*w.PacketLossPenaltyPerPct), 0, 100)

	st.Stability = stability

	overall := clamp(speedScore*w.SpeedWeight+latencyScore*w.LatencyWeight+stability*w.StabilityWeight, 0, 100)

	return connectivity.QualityScore{
		SpeedScore:     speedScore,
		LatencyScore:   latencyScore,
		StabilityScore: stability,
		OverallScore:   overall,
		Rating:         connectivity.RatingFromScore(overall),
	}
}

// Rescore recomputes the quality score for a point in place. The score
// is replaced wholesale, never patched.
func (e *Engine) Rescore(p *connectivity.Point) {
	p.Quality = e.Score(&p.SpeedTest)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// mustBeValid is the loud invariant check for data that should have been
// rejected by validation.
func mustBeValid(st *connectivity.SpeedTest) {
	fields := []struct {
		name  string
		value float64
	}{
		{"download_mbps", st.DownloadMbps},
		{"upload_mbps", st.UploadMbps},
		{"latency_ms", st.LatencyMs},
		{"jitter_ms", st.JitterMs},
		{"packet_loss_pct", st.PacketLossPct},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			panic(fmt.Sprintf("scoring: invariant violation: %s = %v slipped past validation", f.name, f.value))
		}
	}
	if st.PacketLossPct > 100 {
		panic(fmt.Sprintf("scoring: invariant violation: packet_loss_pct = %v slipped past validation", st.PacketLossPct))
	}
}
