package scoring

// Weights holds the scoring formula constants. The defaults are the
// published contract for downstream consumers; overriding them changes
// every derived score in the pipeline.
type Weights struct {
	// Component weights for the overall score. Should sum to 1.
	SpeedWeight     float64
	LatencyWeight   float64
	StabilityWeight float64

	// Speed normalization against Starlink-class service targets.
	DownloadTargetMbps float64
	UploadTargetMbps   float64

	// Latency scoring: full marks at or below the base, falling linearly
	// above it.
	LatencyBaseMs       float64
	LatencyFalloffPerMs float64

	// Stability penalties per unit of jitter and packet loss.
	JitterPenaltyPerMs      float64
	PacketLossPenaltyPerPct float64
}

// Defaults returns the contract scoring weights.
func Defaults() Weights {
	return Weights{
		SpeedWeight:     0.40,
		LatencyWeight:   0.30,
		StabilityWeight: 0.30,

		DownloadTargetMbps: 200,
		UploadTargetMbps:   20,

		LatencyBaseMs:       20,
		LatencyFalloffPerMs: 1.25,

		JitterPenaltyPerMs:      2,
		PacketLossPenaltyPerPct: 10,
	}
}
