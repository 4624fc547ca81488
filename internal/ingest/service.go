// Package ingest orchestrates the measurement pipeline: validation,
// scoring, and assembly of accepted connectivity points.
package ingest

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
	"github.com/ruralmapper/ruralmapper/pkg/scoring"
	"github.com/ruralmapper/ruralmapper/pkg/validate"
)

// Summary aggregates the outcome of one ingestion run. It is the primary
// observable side effect besides the returned lists and is deterministic
// for deterministic input.
type Summary struct {
	Total    int                         `json:"total"`
	Accepted int                         `json:"accepted"`
	Rejected int                         `json:"rejected"`
	ByReason map[validate.ReasonCode]int `json:"by_reason"`
}

// Result is the full outcome of one batch ingestion. Accepted points and
// rejections are both ordered by original row index regardless of how
// the batch was executed.
type Result struct {
	Accepted []connectivity.Point `json:"accepted"`
	Rejected []validate.Rejection `json:"rejected"`
	Summary  Summary              `json:"summary"`
}

// Service drives the validator over a batch and scores accepted records.
type Service struct {
	validator *validate.Validator
	engine    *scoring.Engine

	// Workers bounds parallel validation. Values below 2 run the batch
	// sequentially. Records are independent, so parallel execution only
	// changes timing; results are merged by row index.
	Workers int

	// newID is injectable for tests; defaults to uuid generation.
	newID func() string
}

// NewService creates an ingest Service.
func NewService(validator *validate.Validator, engine *scoring.Engine) *Service {
	return &Service{
		validator: validator,
		engine:    engine,
		newID:     uuid.NewString,
	}
}

// rowOutcome is the per-row result before the order-stable merge.
type rowOutcome struct {
	point      *connectivity.Point
	rejections []validate.Rejection
}

// Ingest processes raw records independently and in input order. One
// record's rejection never affects another's acceptance; validation
// failures are batch-recoverable, so Ingest always returns a (possibly
// empty) accepted list plus full rejection detail.
func (s *Service) Ingest(records []validate.RawRecord) *Result {
	outcomes := make([]rowOutcome, len(records))

	process := func(i int) {
		fields, rejections := s.validator.Validate(records[i], i)
		if fields == nil {
			outcomes[i] = rowOutcome{rejections: rejections}
			return
		}
		point := s.buildPoint(fields)
		outcomes[i] = rowOutcome{point: &point}
	}

	if s.Workers > 1 && len(records) > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, s.Workers)
		for i := range records {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				process(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range records {
			process(i)
		}
	}

	result := &Result{
		Summary: Summary{
			Total:    len(records),
			ByReason: make(map[validate.ReasonCode]int),
		},
	}
	for _, outcome := range outcomes {
		if outcome.point != nil {
			result.Accepted = append(result.Accepted, *outcome.point)
			result.Summary.Accepted++
			continue
		}
		result.Rejected = append(result.Rejected, outcome.rejections...)
		result.Summary.Rejected++
		result.Summary.ByReason[outcome.rejections[0].Reason]++
	}

	return result
}

// buildPoint assembles a scored connectivity point from normalized
// fields, assigning a freshly generated unique id.
func (s *Service) buildPoint(fields *validate.Fields) connectivity.Point {
	st := connectivity.SpeedTest{
		DownloadMbps:  fields.DownloadMbps,
		UploadMbps:    fields.UploadMbps,
		LatencyMs:     fields.LatencyMs,
		JitterMs:      fields.JitterMs,
		PacketLossPct: fields.PacketLossPct,
	}
	quality := s.engine.Score(&st)

	point := connectivity.Point{
		ID:        s.newID(),
		Latitude:  fields.Latitude,
		Longitude: fields.Longitude,
		Provider:  fields.Provider,
		Timestamp: fields.Timestamp,
		SpeedTest: st,
		Quality:   quality,
	}
	if !fields.ProviderKnown {
		point.Tags = append(point.Tags, "unverified-provider")
	}
	return point
}
