// Package stats implements read-only dashboard aggregation queries.
// It never writes, so it sits outside the review concurrency discussion.
package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nkowaokwu/igbo-api-admin-sub002/internal/adapter/postgres"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// Repo provides dashboard statistics backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new stats repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const countRecordedSQL = `
SELECT count(*)
FROM pronunciations p
WHERE p.speaker_id = $1
  AND p.review
  AND (SELECT count(*) FROM ballots b
       WHERE b.subject_type = 'PRONUNCIATION' AND b.subject_id = p.id AND b.vote = 'DENY') <= 1`

const countMergedByMonthSQL = `
SELECT to_char(date_trunc('month', s.updated_at), 'YYYY-MM') AS month, count(*)
FROM pronunciations p
JOIN suggestions s ON p.suggestion_id = s.id
WHERE p.speaker_id = $1 AND s.merged_id IS NOT NULL
GROUP BY month
ORDER BY month`

const countTranslationsSQL = `SELECT count(*) FROM translations WHERE author_id = $1`

// CountRecorded counts the user's audible pronunciations still open for
// review with at most one denial.
func (r *Repo) CountRecorded(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := querier.QueryRow(ctx, countRecordedSQL, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recorded: %w", err)
	}
	return n, nil
}

// CountMergedByMonth counts the user's recordings on merged documents,
// bucketed by the document's update month.
func (r *Repo) CountMergedByMonth(ctx context.Context, userID uuid.UUID) ([]domain.MonthCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countMergedByMonthSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("count merged by month: %w", err)
	}
	defer rows.Close()

	var result []domain.MonthCount
	for rows.Next() {
		var mc domain.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("scan month count: %w", err)
		}
		result = append(result, mc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count merged by month: %w", err)
	}

	if result == nil {
		result = []domain.MonthCount{}
	}
	return result, nil
}

// CountTranslations counts translations the user authored.
func (r *Repo) CountTranslations(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := querier.QueryRow(ctx, countTranslationsSQL, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count translations: %w", err)
	}
	return n, nil
}
