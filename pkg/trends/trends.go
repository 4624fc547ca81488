// Package trends derives temporal and per-provider analytics from a set
// of scored connectivity points.
package trends

import (
	"sort"
	"time"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

// BucketFunc maps a measurement timestamp to its grouping key. Keys sort
// lexically in chronological order.
type BucketFunc func(time.Time) string

// ByCalendarDay is the default bucketing: the date component of the
// timestamp as stored, timezone-naive.
func ByCalendarDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// BucketStats holds the aggregates for one time bucket.
type BucketStats struct {
	Bucket       string  `json:"bucket"`
	Count        int     `json:"count"`
	MeanOverall  float64 `json:"mean_overall_score"`
	MinOverall   float64 `json:"min_overall_score"`
	MaxOverall   float64 `json:"max_overall_score"`
	MeanDownload float64 `json:"mean_download_mbps"`
	MeanUpload   float64 `json:"mean_upload_mbps"`
	MeanLatency  float64 `json:"mean_latency_ms"`
}

// ProviderStats holds per-provider aggregates across the whole set.
type ProviderStats struct {
	Provider     string  `json:"provider"`
	Count        int     `json:"count"`
	MeanOverall  float64 `json:"mean_overall_score"`
	MeanDownload float64 `json:"mean_download_mbps"`
	MeanUpload   float64 `json:"mean_upload_mbps"`
	MeanLatency  float64 `json:"mean_latency_ms"`
}

// Totals is the global trend summary across all points.
type Totals struct {
	MeanOverall  float64 `json:"mean_overall_score"`
	MinOverall   float64 `json:"min_overall_score"`
	MaxOverall   float64 `json:"max_overall_score"`
	MeanDownload float64 `json:"mean_download_mbps"`
	MeanUpload   float64 `json:"mean_upload_mbps"`
	MeanLatency  float64 `json:"mean_latency_ms"`
}

// DateRange describes the span of bucket keys present in the input.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Days  int    `json:"days"`
}

// Report is the complete output of trend analysis. Empty input yields a
// report explicitly marked empty, never an error.
type Report struct {
	Empty       bool            `json:"empty"`
	TotalPoints int             `json:"total_points"`
	Range       DateRange       `json:"date_range"`
	Buckets     []BucketStats   `json:"buckets"`
	Totals      Totals          `json:"totals"`
	Providers   []ProviderStats `json:"providers"`
	Insights    []string        `json:"insights"`
}

// Analyzer groups points into time buckets and computes aggregates.
type Analyzer struct {
	bucket BucketFunc
}

// NewAnalyzer creates an analyzer with the given bucketing; nil selects
// calendar-day grouping.
func NewAnalyzer(bucket BucketFunc) *Analyzer {
	if bucket == nil {
		bucket = ByCalendarDay
	}
	return &Analyzer{bucket: bucket}
}

// Analyze computes the trend report for a set of points. It never
// mutates its input, and identical input always yields an identical
// report, insights included.
func (a *Analyzer) Analyze(points []connectivity.Point) *Report {
	if len(points) == 0 {
		return &Report{Empty: true, Insights: []string{"no data available for trend analysis"}}
	}

	report := &Report{TotalPoints: len(points)}

	byBucket := make(map[string][]connectivity.Point)
	for _, p := range points {
		key := a.bucket(p.Timestamp)
		byBucket[key] = append(byBucket[key], p)
	}

	keys := make([]string, 0, len(byBucket))
	for key := range byBucket {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		report.Buckets = append(report.Buckets, bucketStats(key, byBucket[key]))
	}
	report.Range = DateRange{Start: keys[0], End: keys[len(keys)-1], Days: len(keys)}
	report.Totals = totals(points)
	report.Providers = providerStats(points)
	report.Insights = insights(report)

	return report
}

func bucketStats(key string, points []connectivity.Point) BucketStats {
	stats := BucketStats{Bucket: key, Count: len(points)}
	stats.MinOverall = points[0].Quality.OverallScore
	stats.MaxOverall = points[0].Quality.OverallScore

	for _, p := range points {
		overall := p.Quality.OverallScore
		stats.MeanOverall += overall
		if overall < stats.MinOverall {
			stats.MinOverall = overall
		}
		if overall > stats.MaxOverall {
			stats.MaxOverall = overall
		}
		stats.MeanDownload += p.SpeedTest.DownloadMbps
		stats.MeanUpload += p.SpeedTest.UploadMbps
		stats.MeanLatency += p.SpeedTest.LatencyMs
	}

	n := float64(len(points))
	stats.MeanOverall /= n
	stats.MeanDownload /= n
	stats.MeanUpload /= n
	stats.MeanLatency /= n
	return stats
}

func totals(points []connectivity.Point) Totals {
	t := Totals{
		MinOverall: points[0].Quality.OverallScore,
		MaxOverall: points[0].Quality.OverallScore,
	}
	for _, p := range points {
		overall := p.Quality.OverallScore
		t.MeanOverall += overall
		if overall < t.MinOverall {
			t.MinOverall = overall
		}
		if overall > t.MaxOverall {
			t.MaxOverall = overall
		}
		t.MeanDownload += p.SpeedTest.DownloadMbps
		t.MeanUpload += p.SpeedTest.UploadMbps
		t.MeanLatency += p.SpeedTest.LatencyMs
	}
	n := float64(len(points))
	t.MeanOverall /= n
	t.MeanDownload /= n
	t.MeanUpload /= n
	t.MeanLatency /= n
	return t
}

func providerStats(points []connectivity.Point) []ProviderStats {
	byProvider := make(map[string]*ProviderStats)
	var order []string
	for _, p := range points {
		stats, ok := byProvider[p.Provider]
		if !ok {
			stats = &ProviderStats{Provider: p.Provider}
			byProvider[p.Provider] = stats
			order = append(order, p.Provider)
		}
		stats.Count++
		stats.MeanOverall += p.Quality.OverallScore
		stats.MeanDownload += p.SpeedTest.DownloadMbps
		stats.MeanUpload += p.SpeedTest.UploadMbps
		stats.MeanLatency += p.SpeedTest.LatencyMs
	}

	sort.Strings(order)
	result := make([]ProviderStats, 0, len(order))
	for _, provider := range order {
		stats := byProvider[provider]
		n := float64(stats.Count)
		stats.MeanOverall /= n
		stats.MeanDownload /= n
		stats.MeanUpload /= n
		stats.MeanLatency /= n
		result = append(result, *stats)
	}
	return result
}
