package export

import "github.com/ruralmapper/ruralmapper/pkg/connectivity"

// recommendRule pairs a threshold predicate with the advisory string it
// contributes to a suitability record. Rules run in a fixed order so the
// recommendation list is deterministic per point.
type recommendRule struct {
	applies func(connectivity.Point) bool
	message string
}

var recommendRules = []recommendRule{
	{
		applies: func(p connectivity.Point) bool { return p.Quality.OverallScore >= 80 },
		message: "excellent connectivity, suitable for all deployment automation systems",
	},
	{
		applies: func(p connectivity.Point) bool {
			return p.Quality.OverallScore >= 60 && p.Quality.OverallScore < 80
		},
		message: "good connectivity, suitable for most field applications",
	},
	{
		applies: func(p connectivity.Point) bool {
			return p.Quality.OverallScore >= 40 && p.Quality.OverallScore < 60
		},
		message: "fair connectivity, basic IoT and monitoring supported",
	},
	{
		applies: func(p connectivity.Point) bool { return p.Quality.OverallScore < 40 },
		message: "poor connectivity, consider upgrading or adding a backup connection",
	},
	{
		applies: func(p connectivity.Point) bool {
			return p.SpeedTest.DownloadMbps >= 50 && p.SpeedTest.LatencyMs < 50
		},
		message: "ideal for precision operations and autonomous equipment",
	},
	{
		applies: func(p connectivity.Point) bool { return p.SpeedTest.DownloadMbps >= 25 },
		message: "supports video monitoring and remote surveillance",
	},
	{
		applies: func(p connectivity.Point) bool {
			return p.SpeedTest.LatencyMs < 100 && p.Quality.StabilityScore >= 70
		},
		message: "suitable for real-time sensor networks",
	},
	{
		applies: func(p connectivity.Point) bool { return p.Quality.StabilityScore < 70 },
		message: "consider improving connection stability for critical operations",
	},
	{
		applies: func(p connectivity.Point) bool { return p.SpeedTest.LatencyMs > 100 },
		message: "high latency may impact real-time control systems",
	},
}

func recommendations(p connectivity.Point) []string {
	var messages []string
	for _, rule := range recommendRules {
		if rule.applies(p) {
			messages = append(messages, rule.message)
		}
	}
	return messages
}
