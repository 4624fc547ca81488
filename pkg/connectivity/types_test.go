package connectivity_test

import (
	"testing"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

func TestRatingFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  connectivity.Rating
	}{
		{100, connectivity.RatingExcellent},
		{80, connectivity.RatingExcellent},
		{79.999, connectivity.RatingGood},
		{60, connectivity.RatingGood},
		{59.999, connectivity.RatingFair},
		{40, connectivity.RatingFair},
		{39.999, connectivity.RatingPoor},
		{0, connectivity.RatingPoor},
	}

	for _, tt := range tests {
		if got := connectivity.RatingFromScore(tt.score); got != tt.want {
			t.Errorf("RatingFromScore(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestDatasetProviders(t *testing.T) {
	ds := &connectivity.Dataset{Points: []connectivity.Point{
		{ID: "a", Provider: "Starlink"},
		{ID: "b", Provider: "Vivo"},
		{ID: "c", Provider: "Starlink"},
	}}

	providers := ds.Providers()
	if len(providers) != 2 {
		t.Fatalf("got %d providers, want 2", len(providers))
	}
	if providers[0] != "Starlink" || providers[1] != "Vivo" {
		t.Errorf("providers = %v, want first-seen order", providers)
	}
}

func TestDatasetRatingCounts(t *testing.T) {
	ds := &connectivity.Dataset{Points: []connectivity.Point{
		{Quality: connectivity.QualityScore{Rating: connectivity.RatingGood}},
		{Quality: connectivity.QualityScore{Rating: connectivity.RatingGood}},
		{Quality: connectivity.QualityScore{Rating: connectivity.RatingPoor}},
	}}

	counts := ds.RatingCounts()
	if counts[connectivity.RatingGood] != 2 || counts[connectivity.RatingPoor] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if counts[connectivity.RatingExcellent] != 0 {
		t.Errorf("Excellent = %d, want 0", counts[connectivity.RatingExcellent])
	}
}

func TestDatasetRemove(t *testing.T) {
	ds := &connectivity.Dataset{Points: []connectivity.Point{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}}

	if !ds.Remove("b") {
		t.Fatal("Remove(b) = false, want true")
	}
	if len(ds.Points) != 2 || ds.Points[0].ID != "a" || ds.Points[1].ID != "c" {
		t.Errorf("points after removal = %v", ds.Points)
	}

	if ds.Remove("missing") {
		t.Error("Remove(missing) = true, want false")
	}
	if len(ds.Points) != 2 {
		t.Errorf("failed removal changed the dataset: %v", ds.Points)
	}
}
