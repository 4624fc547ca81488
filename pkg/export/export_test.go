package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
	"github.com/ruralmapper/ruralmapper/pkg/export"
)

func samplePoint() connectivity.Point {
	return connectivity.Point{
		ID:        "pt-1",
		Latitude:  -15.78,
		Longitude: -47.92,
		Provider:  "Starlink",
		Timestamp: time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
		SpeedTest: connectivity.SpeedTest{
			DownloadMbps:  30,
			UploadMbps:    8,
			LatencyMs:     40,
			JitterMs:      5,
			PacketLossPct: 1,
			Stability:     80,
		},
		Quality: connectivity.QualityScore{
			SpeedScore:     50,
			LatencyScore:   75,
			StabilityScore: 80,
			OverallScore:   65,
			Rating:         connectivity.RatingGood,
		},
	}
}

func TestToFailoverRecord(t *testing.T) {
	rec := export.ToFailoverRecord(samplePoint())

	if rec.PointID != "pt-1" || rec.Provider != "Starlink" {
		t.Errorf("identity fields = %q/%q", rec.PointID, rec.Provider)
	}
	if rec.Location.Latitude != -15.78 {
		t.Errorf("Latitude = %v, want -15.78", rec.Location.Latitude)
	}
	if rec.Metrics.SignalQuality != 65 {
		t.Errorf("SignalQuality = %v, want overall score 65", rec.Metrics.SignalQuality)
	}
	if rec.Quality.Rating != connectivity.RatingGood {
		t.Errorf("Rating = %q, want Good", rec.Quality.Rating)
	}

	ind := rec.Indicators
	if !ind.ConnectionReliable {
		t.Error("ConnectionReliable = false at overall 65, want true")
	}
	if !ind.LowLatency {
		t.Error("LowLatency = false at 40ms, want true")
	}
	if !ind.StableConnection {
		t.Error("StableConnection = false at stability 80, want true")
	}
	if ind.RecommendedPrimary {
		t.Error("RecommendedPrimary = true at overall 65, want false")
	}
}

func TestFailoverIndicatorBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*connectivity.Point)
		check  func(t *testing.T, ind export.FailoverIndicators)
	}{
		{
			name:   "overall exactly 60 is reliable",
			mutate: func(p *connectivity.Point) { p.Quality.OverallScore = 60 },
			check: func(t *testing.T, ind export.FailoverIndicators) {
				if !ind.ConnectionReliable {
					t.Error("ConnectionReliable = false at exactly 60, want true")
				}
			},
		},
		{
			name:   "latency exactly 100 is not low",
			mutate: func(p *connectivity.Point) { p.SpeedTest.LatencyMs = 100 },
			check: func(t *testing.T, ind export.FailoverIndicators) {
				if ind.LowLatency {
					t.Error("LowLatency = true at exactly 100ms, want false")
				}
			},
		},
		{
			name:   "stability exactly 70 is stable",
			mutate: func(p *connectivity.Point) { p.Quality.StabilityScore = 70 },
			check: func(t *testing.T, ind export.FailoverIndicators) {
				if !ind.StableConnection {
					t.Error("StableConnection = false at exactly 70, want true")
				}
			},
		},
		{
			name:   "overall exactly 80 is recommended primary",
			mutate: func(p *connectivity.Point) { p.Quality.OverallScore = 80 },
			check: func(t *testing.T, ind export.FailoverIndicators) {
				if !ind.RecommendedPrimary {
					t.Error("RecommendedPrimary = false at exactly 80, want true")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePoint()
			tt.mutate(&p)
			tt.check(t, export.ToFailoverRecord(p).Indicators)
		})
	}
}

func TestToSuitabilityRecord(t *testing.T) {
	rec := export.ToSuitabilityRecord(samplePoint())

	if rec.LocationID != "pt-1" {
		t.Errorf("LocationID = %q, want pt-1", rec.LocationID)
	}
	if !rec.Status.IsOperational || rec.Status.IsOptimal {
		t.Errorf("Status = %+v, want operational but not optimal at overall 65", rec.Status)
	}

	// download 30, latency 40, overall 65
	flags := rec.Suitability
	if !flags.IoTSensorsSupported {
		t.Error("IoTSensorsSupported = false, want true")
	}
	if !flags.VideoMonitoringSupported {
		t.Error("VideoMonitoringSupported = false at 30 Mbps and overall 65, want true")
	}
	if flags.RealTimeControlSupported {
		t.Error("RealTimeControlSupported = true at overall 65, want false")
	}
	if !flags.DataAnalyticsSupported {
		t.Error("DataAnalyticsSupported = false, want true")
	}
}

func TestSuitabilityFlagBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*connectivity.Point)
		check  func(t *testing.T, flags export.DeploymentFlags)
	}{
		{
			name:   "latency exactly 200 rules out IoT",
			mutate: func(p *connectivity.Point) { p.SpeedTest.LatencyMs = 200 },
			check: func(t *testing.T, flags export.DeploymentFlags) {
				if flags.IoTSensorsSupported {
					t.Error("IoTSensorsSupported = true at exactly 200ms, want false")
				}
			},
		},
		{
			name:   "download exactly 25 supports video",
			mutate: func(p *connectivity.Point) { p.SpeedTest.DownloadMbps = 25 },
			check: func(t *testing.T, flags export.DeploymentFlags) {
				if !flags.VideoMonitoringSupported {
					t.Error("VideoMonitoringSupported = false at exactly 25 Mbps, want true")
				}
			},
		},
		{
			name: "real-time needs latency below 50 and overall at least 80",
			mutate: func(p *connectivity.Point) {
				p.SpeedTest.LatencyMs = 49
				p.Quality.OverallScore = 80
			},
			check: func(t *testing.T, flags export.DeploymentFlags) {
				if !flags.RealTimeControlSupported {
					t.Error("RealTimeControlSupported = false at 49ms/80, want true")
				}
			},
		},
		{
			name: "latency exactly 50 rules out real-time",
			mutate: func(p *connectivity.Point) {
				p.SpeedTest.LatencyMs = 50
				p.Quality.OverallScore = 90
			},
			check: func(t *testing.T, flags export.DeploymentFlags) {
				if flags.RealTimeControlSupported {
					t.Error("RealTimeControlSupported = true at exactly 50ms, want false")
				}
			},
		},
		{
			name: "overall below 40 rules out analytics",
			mutate: func(p *connectivity.Point) {
				p.Quality.OverallScore = 39.9
			},
			check: func(t *testing.T, flags export.DeploymentFlags) {
				if flags.DataAnalyticsSupported {
					t.Error("DataAnalyticsSupported = true below overall 40, want false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePoint()
			tt.mutate(&p)
			tt.check(t, export.ToSuitabilityRecord(p).Suitability)
		})
	}
}

func TestRecommendationsAreOrderedAndDeterministic(t *testing.T) {
	p := samplePoint()
	first := export.ToSuitabilityRecord(p).Recommendations
	second := export.ToSuitabilityRecord(p).Recommendations

	if len(first) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	if strings.Join(first, "|") != strings.Join(second, "|") {
		t.Errorf("recommendations differ between runs: %v vs %v", first, second)
	}

	// Overall 65 leads with the good-connectivity advisory.
	if !strings.Contains(first[0], "good connectivity") {
		t.Errorf("first recommendation = %q, want the good-connectivity advisory", first[0])
	}
}

func TestBuildFailoverExportMetadata(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	doc := export.BuildFailoverExport([]connectivity.Point{samplePoint()}, now)

	if doc.Metadata.TotalPoints != 1 {
		t.Errorf("TotalPoints = %d, want 1", doc.Metadata.TotalPoints)
	}
	if doc.Metadata.Purpose != "failover_testing" {
		t.Errorf("Purpose = %q, want failover_testing", doc.Metadata.Purpose)
	}
	if !doc.Metadata.ExportedAt.Equal(now) {
		t.Errorf("ExportedAt = %v, want %v", doc.Metadata.ExportedAt, now)
	}
	if len(doc.Points) != 1 {
		t.Errorf("got %d points, want 1", len(doc.Points))
	}
}

func TestBuildSuitabilityExportMetadata(t *testing.T) {
	now := time.Now().UTC()
	doc := export.BuildSuitabilityExport([]connectivity.Point{samplePoint(), samplePoint()}, now)

	if doc.Metadata.Purpose != "field_deployment_layer" {
		t.Errorf("Purpose = %q, want field_deployment_layer", doc.Metadata.Purpose)
	}
	if len(doc.Layer) != 2 {
		t.Errorf("got %d layer records, want 2", len(doc.Layer))
	}
}

func TestBuildManifest(t *testing.T) {
	now := time.Now().UTC()
	ds := &connectivity.Dataset{Points: []connectivity.Point{samplePoint()}}
	files := map[string]string{"failover": "hybrid_simulator_input.json"}

	manifest := export.BuildManifest(ds, files, now)

	if manifest.TotalPoints != 1 {
		t.Errorf("TotalPoints = %d, want 1", manifest.TotalPoints)
	}
	if manifest.Distribution[connectivity.RatingGood] != 1 {
		t.Errorf("Distribution = %v, want one Good point", manifest.Distribution)
	}
	if len(manifest.Providers) != 1 || manifest.Providers[0] != "Starlink" {
		t.Errorf("Providers = %v, want [Starlink]", manifest.Providers)
	}
	if manifest.Files["failover"] != "hybrid_simulator_input.json" {
		t.Errorf("Files = %v", manifest.Files)
	}
}

func TestExportsHandleEmptyInput(t *testing.T) {
	now := time.Now().UTC()

	failover := export.BuildFailoverExport(nil, now)
	if failover.Metadata.TotalPoints != 0 || len(failover.Points) != 0 {
		t.Errorf("empty failover export = %+v", failover)
	}

	suitability := export.BuildSuitabilityExport(nil, now)
	if suitability.Metadata.TotalPoints != 0 || len(suitability.Layer) != 0 {
		t.Errorf("empty suitability export = %+v", suitability)
	}
}
