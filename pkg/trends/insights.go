package trends

import "fmt"

// insightRule pairs a predicate over computed aggregates with the
// message it emits. Rules are evaluated in order; the same aggregates
// always yield the same insight set.
type insightRule struct {
	applies func(*Report) bool
	message func(*Report) string
}

var insightRules = []insightRule{
	{
		applies: func(r *Report) bool { return r.Totals.MeanOverall >= 80 },
		message: func(r *Report) string {
			return "overall connectivity quality is excellent across all points"
		},
	},
	{
		applies: func(r *Report) bool { return r.Totals.MeanOverall >= 60 && r.Totals.MeanOverall < 80 },
		message: func(r *Report) string {
			return "overall connectivity quality is good with room for improvement"
		},
	},
	{
		applies: func(r *Report) bool { return r.Totals.MeanOverall < 60 },
		message: func(r *Report) string {
			return "overall connectivity quality needs significant improvement"
		},
	},
	{
		applies: func(r *Report) bool { return r.Totals.MeanOverall < 50 },
		message: func(r *Report) string {
			return "average quality below 50 indicates widespread service degradation"
		},
	},
	{
		applies: func(r *Report) bool { return r.Totals.MeanDownload >= 100 },
		message: func(r *Report) string {
			return "download speeds meet Starlink-class target expectations"
		},
	},
	{
		applies: func(r *Report) bool { return r.Totals.MeanDownload >= 50 && r.Totals.MeanDownload < 100 },
		message: func(r *Report) string {
			return "download speeds are acceptable but below optimal targets"
		},
	},
	{
		applies: func(r *Report) bool { return r.Totals.MeanDownload < 50 },
		message: func(r *Report) string {
			return "download speeds are below target thresholds"
		},
	},
	{
		applies: func(r *Report) bool { return r.Totals.MeanLatency <= 40 },
		message: func(r *Report) string {
			return "latency is within satellite service target range"
		},
	},
	{
		applies: func(r *Report) bool { return r.Totals.MeanLatency > 40 },
		message: func(r *Report) string {
			return "latency exceeds target thresholds and needs optimization"
		},
	},
	{
		applies: func(r *Report) bool { return bestProvider(r) != nil },
		message: func(r *Report) string {
			best := bestProvider(r)
			return fmt.Sprintf("%s shows the best average quality score (%.1f/100)", best.Provider, best.MeanOverall)
		},
	},
}

func insights(r *Report) []string {
	var messages []string
	for _, rule := range insightRules {
		if rule.applies(r) {
			messages = append(messages, rule.message(r))
		}
	}
	return messages
}

// bestProvider returns the provider with the highest mean overall score,
// or nil when fewer than two providers are present. Ties resolve to the
// lexically first provider because Providers is sorted.
func bestProvider(r *Report) *ProviderStats {
	if len(r.Providers) < 2 {
		return nil
	}
	best := &r.Providers[0]
	for i := range r.Providers {
		if r.Providers[i].MeanOverall > best.MeanOverall {
			best = &r.Providers[i]
		}
	}
	return best
}
