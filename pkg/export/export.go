// Package export maps scored connectivity points into the schemas
// consumed by the failover simulator and the field-deployment dashboard.
// The field names and boolean threshold semantics are a compatibility
// contract with those systems and must not be renamed casually.
package export

import (
	"time"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

// Location carries the coordinates of an exported point.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Metrics is the raw measurement block shared by both export schemas.
type Metrics struct {
	SignalQuality  float64 `json:"signal_quality"`
	LatencyMs      float64 `json:"latency_ms"`
	DownloadMbps   float64 `json:"download_mbps"`
	UploadMbps     float64 `json:"upload_mbps"`
	StabilityScore float64 `json:"stability_score"`
	JitterMs       float64 `json:"jitter_ms"`
	PacketLossPct  float64 `json:"packet_loss_pct"`
}

// QualityBreakdown mirrors the component scores for consumers that want
// more than the overall number.
type QualityBreakdown struct {
	OverallScore   float64             `json:"overall_score"`
	SpeedScore     float64             `json:"speed_score"`
	LatencyScore   float64             `json:"latency_score"`
	StabilityScore float64             `json:"stability_score"`
	Rating         connectivity.Rating `json:"rating"`
}

// FailoverIndicators are the boolean suitability flags for failover
// scenario testing.
type FailoverIndicators struct {
	ConnectionReliable bool `json:"connection_reliable"`
	LowLatency         bool `json:"low_latency"`
	StableConnection   bool `json:"stable_connection"`
	RecommendedPrimary bool `json:"recommended_primary"`
}

// FailoverRecord is one point in the failover simulator input schema.
type FailoverRecord struct {
	PointID    string             `json:"point_id"`
	Location   Location           `json:"location"`
	Provider   string             `json:"provider"`
	Timestamp  time.Time          `json:"timestamp"`
	Metrics    Metrics            `json:"metrics"`
	Quality    QualityBreakdown   `json:"quality_breakdown"`
	Indicators FailoverIndicators `json:"failover_indicators"`
}

// DeploymentFlags are the boolean capability flags for field-deployment
// planning.
type DeploymentFlags struct {
	IoTSensorsSupported      bool `json:"iot_sensors_supported"`
	VideoMonitoringSupported bool `json:"video_monitoring_supported"`
	RealTimeControlSupported bool `json:"real_time_control_supported"`
	DataAnalyticsSupported   bool `json:"data_analytics_supported"`
}

// ConnectivityStatus summarizes operational fitness for dashboards.
type ConnectivityStatus struct {
	QualityRating connectivity.Rating `json:"quality_rating"`
	QualityScore  float64             `json:"quality_score"`
	IsOperational bool                `json:"is_operational"`
	IsOptimal     bool                `json:"is_optimal"`
}

// SuitabilityRecord is one point in the field-deployment schema.
type SuitabilityRecord struct {
	LocationID      string             `json:"location_id"`
	Coordinates     Location           `json:"coordinates"`
	Provider        string             `json:"isp_provider"`
	MeasurementTime time.Time          `json:"measurement_time"`
	Status          ConnectivityStatus `json:"connectivity_status"`
	Metrics         Metrics            `json:"network_performance"`
	Suitability     DeploymentFlags    `json:"suitability"`
	Recommendations []string           `json:"recommendations"`
}

// ToFailoverRecord transforms a point for failover testing. Pure and
// total: any valid point transforms, there is no rejection path.
func ToFailoverRecord(p connectivity.Point) FailoverRecord {
	return FailoverRecord{
		PointID:   p.ID,
		Location:  Location{Latitude: p.Latitude, Longitude: p.Longitude},
		Provider:  p.Provider,
		Timestamp: p.Timestamp,
		Metrics:   metrics(p),
		Quality:   breakdown(p),
		Indicators: FailoverIndicators{
			ConnectionReliable: p.Quality.OverallScore >= 60,
			LowLatency:         p.SpeedTest.LatencyMs < 100,
			StableConnection:   p.Quality.StabilityScore >= 70,
			RecommendedPrimary: p.Quality.OverallScore >= 80,
		},
	}
}

// ToSuitabilityRecord transforms a point for field-deployment planning.
// Pure and total.
func ToSuitabilityRecord(p connectivity.Point) SuitabilityRecord {
	overall := p.Quality.OverallScore
	latency := p.SpeedTest.LatencyMs
	download := p.SpeedTest.DownloadMbps

	return SuitabilityRecord{
		LocationID:      p.ID,
		Coordinates:     Location{Latitude: p.Latitude, Longitude: p.Longitude},
		Provider:        p.Provider,
		MeasurementTime: p.Timestamp,
		Status: ConnectivityStatus{
			QualityRating: p.Quality.Rating,
			QualityScore:  overall,
			IsOperational: overall >= 40,
			IsOptimal:     overall >= 80,
		},
		Metrics: metrics(p),
		Suitability: DeploymentFlags{
			IoTSensorsSupported:      latency < 200 && overall >= 40,
			VideoMonitoringSupported: download >= 25 && overall >= 60,
			RealTimeControlSupported: latency < 50 && overall >= 80,
			DataAnalyticsSupported:   download >= 10 && overall >= 40,
		},
		Recommendations: recommendations(p),
	}
}

func metrics(p connectivity.Point) Metrics {
	return Metrics{
		SignalQuality:  p.Quality.OverallScore,
		LatencyMs:      p.SpeedTest.LatencyMs,
		DownloadMbps:   p.SpeedTest.DownloadMbps,
		UploadMbps:     p.SpeedTest.UploadMbps,
		StabilityScore: p.SpeedTest.Stability,
		JitterMs:       p.SpeedTest.JitterMs,
		PacketLossPct:  p.SpeedTest.PacketLossPct,
	}
}

func breakdown(p connectivity.Point) QualityBreakdown {
	return QualityBreakdown{
		OverallScore:   p.Quality.OverallScore,
		SpeedScore:     p.Quality.SpeedScore,
		LatencyScore:   p.Quality.LatencyScore,
		StabilityScore: p.Quality.StabilityScore,
		Rating:         p.Quality.Rating,
	}
}
