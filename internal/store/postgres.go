// Package store persists the connectivity point set in Postgres. The
// database is the system of record between pipeline runs; the pipeline
// itself only ever sees plain point collections.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

// Store reads and writes the persisted point set.
type Store struct {
	db *sql.DB
}

// New creates a Store on an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SavePoints inserts a batch of points under the given country code.
// Re-inserting an existing id replaces the row wholesale, matching the
// recompute-never-patch lifecycle of quality scores.
func (s *Store) SavePoints(ctx context.Context, country string, points []connectivity.Point) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, p := range points {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO points (
				id, country, latitude, longitude, provider, tags, measured_at,
				download_mbps, upload_mbps, latency_ms, jitter_ms, packet_loss_pct, stability,
				speed_score, latency_score, stability_score, overall_score, rating
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
			ON CONFLICT (id) DO UPDATE SET
				latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude,
				provider = EXCLUDED.provider,
				tags = EXCLUDED.tags,
				measured_at = EXCLUDED.measured_at,
				download_mbps = EXCLUDED.download_mbps,
				upload_mbps = EXCLUDED.upload_mbps,
				latency_ms = EXCLUDED.latency_ms,
				jitter_ms = EXCLUDED.jitter_ms,
				packet_loss_pct = EXCLUDED.packet_loss_pct,
				stability = EXCLUDED.stability,
				speed_score = EXCLUDED.speed_score,
				latency_score = EXCLUDED.latency_score,
				stability_score = EXCLUDED.stability_score,
				overall_score = EXCLUDED.overall_score,
				rating = EXCLUDED.rating`,
			p.ID, country, p.Latitude, p.Longitude, p.Provider, pq.Array(p.Tags), p.Timestamp,
			p.SpeedTest.DownloadMbps, p.SpeedTest.UploadMbps, p.SpeedTest.LatencyMs,
			p.SpeedTest.JitterMs, p.SpeedTest.PacketLossPct, p.SpeedTest.Stability,
			p.Quality.SpeedScore, p.Quality.LatencyScore, p.Quality.StabilityScore,
			p.Quality.OverallScore, string(p.Quality.Rating),
		)
		if err != nil {
			return fmt.Errorf("insert point %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// ListPoints returns every persisted point for a country, ordered by
// measurement time.
func (s *Store) ListPoints(ctx context.Context, country string) ([]connectivity.Point, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, latitude, longitude, provider, tags, measured_at,
			download_mbps, upload_mbps, latency_ms, jitter_ms, packet_loss_pct, stability,
			speed_score, latency_score, stability_score, overall_score, rating
		 FROM points WHERE country = $1 ORDER BY measured_at, id`,
		country,
	)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	defer rows.Close()

	var points []connectivity.Point
	for rows.Next() {
		var p connectivity.Point
		var rating string
		var tags pq.StringArray
		err := rows.Scan(
			&p.ID, &p.Latitude, &p.Longitude, &p.Provider, &tags, &p.Timestamp,
			&p.SpeedTest.DownloadMbps, &p.SpeedTest.UploadMbps, &p.SpeedTest.LatencyMs,
			&p.SpeedTest.JitterMs, &p.SpeedTest.PacketLossPct, &p.SpeedTest.Stability,
			&p.Quality.SpeedScore, &p.Quality.LatencyScore, &p.Quality.StabilityScore,
			&p.Quality.OverallScore, &rating,
		)
		if err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		p.Tags = []string(tags)
		p.Quality.Rating = connectivity.Rating(rating)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points: %w", err)
	}
	return points, nil
}

// DeletePoint removes a point by id and reports whether a row existed.
// Points leave the record set only through explicit deletion.
func (s *Store) DeletePoint(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM points WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete point %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete point %s: %w", id, err)
	}
	return n > 0, nil
}

// CountByRating returns the persisted rating distribution for a country.
func (s *Store) CountByRating(ctx context.Context, country string) (map[connectivity.Rating]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rating, count(*) FROM points WHERE country = $1 GROUP BY rating`,
		country,
	)
	if err != nil {
		return nil, fmt.Errorf("count by rating: %w", err)
	}
	defer rows.Close()

	counts := make(map[connectivity.Rating]int)
	for rows.Next() {
		var rating string
		var n int
		if err := rows.Scan(&rating, &n); err != nil {
			return nil, fmt.Errorf("scan rating count: %w", err)
		}
		counts[connectivity.Rating(rating)] = n
	}
	return counts, rows.Err()
}
