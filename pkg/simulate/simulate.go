// Package simulate models the effect of infrastructure upgrades on
// existing quality scores.
package simulate

import (
	"math"
	"math/rand"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

// Factor bounds for the uniform per-point improvement draw: a simulated
// upgrade improves scores by 15-25%.
const (
	MinImprovement = 1.15
	MaxImprovement = 1.25
)

// Engine applies upgrade simulations. The random source is injectable so
// callers can supply a fixed seed and assert exact output.
type Engine struct {
	seed   int64
	seeded bool
}

// NewEngine creates a simulation engine with non-deterministic draws.
func NewEngine() *Engine {
	return &Engine{}
}

// NewSeededEngine creates a simulation engine whose output is exactly
// reproducible for a given seed.
func NewSeededEngine(seed int64) *Engine {
	return &Engine{seed: seed, seeded: true}
}

// Upgrade returns new points with simulated post-upgrade scores; the
// originals are untouched. Each point's improvement factor is drawn from
// an independent per-point source derived from the seed and the point's
// position, so results do not depend on evaluation order.
func (e *Engine) Upgrade(points []connectivity.Point) []connectivity.Point {
	if len(points) == 0 {
		return nil
	}

	upgraded := make([]connectivity.Point, len(points))
	for i, p := range points {
		upgraded[i] = e.upgradePoint(p, int64(i))
	}
	return upgraded
}

func (e *Engine) upgradePoint(p connectivity.Point, position int64) connectivity.Point {
	factor := MinImprovement + e.draw(position)*(MaxImprovement-MinImprovement)

	q := p.Quality
	q.OverallScore = clamp(q.OverallScore * factor)
	q.SpeedScore = clamp(q.SpeedScore * factor)
	q.LatencyScore = clamp(q.LatencyScore * factor)
	q.StabilityScore = clamp(q.StabilityScore * factor)
	q.Rating = connectivity.RatingFromScore(q.OverallScore)

	// Tags are copied so the upgraded point shares nothing mutable with
	// the original.
	upgraded := p
	upgraded.Tags = append([]string(nil), p.Tags...)
	upgraded.Quality = q
	return upgraded
}

// draw returns a uniform value in [0, 1) from a source independent of
// every other point's.
func (e *Engine) draw(position int64) float64 {
	if e.seeded {
		mixed := uint64(e.seed) ^ uint64(position+1)*0x9e3779b97f4a7c15
		return rand.New(rand.NewSource(int64(mixed))).Float64()
	}
	return rand.Float64()
}

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
