// Package ballot implements the review ballot repository using PostgreSQL.
//
// A ballot is one row per (subject, voter). Casting a vote is a single
// upsert and withdrawing one is a single delete, so concurrent reviewers
// on the same pronunciation touch disjoint rows and never overwrite each
// other — there is no read-modify-write of a vote set anywhere.
package ballot

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/nkowaokwu/igbo-api-admin-sub002/internal/adapter/postgres"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/domain"
)

// Repo provides ballot persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new ballot repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Cast records the voter's verdict on a subject. Re-casting the same vote
// is a no-op; casting the opposite vote flips the existing row, which is
// what moves a caller from denials to approvals (and back) atomically.
func (r *Repo) Cast(ctx context.Context, subject domain.BallotSubject, subjectID, voterID uuid.UUID, vote domain.VoteValue) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx,
		`INSERT INTO ballots (subject_type, subject_id, voter_id, vote)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (subject_type, subject_id, voter_id)
		 DO UPDATE SET vote = EXCLUDED.vote, voted_at = now()
		 WHERE ballots.vote IS DISTINCT FROM EXCLUDED.vote`,
		string(subject), subjectID, voterID, string(vote))
	if err != nil {
		return postgres.MapError(err, "ballot", subjectID)
	}
	return nil
}

// Withdraw removes the voter's ballot on a subject. Not an error if no
// ballot exists.
func (r *Repo) Withdraw(ctx context.Context, subject domain.BallotSubject, subjectID, voterID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx,
		`DELETE FROM ballots
		 WHERE subject_type = $1 AND subject_id = $2 AND voter_id = $3`,
		string(subject), subjectID, voterID)
	if err != nil {
		return postgres.MapError(err, "ballot", subjectID)
	}
	return nil
}

// GetBySubject returns all ballots on one subject, oldest first.
func (r *Repo) GetBySubject(ctx context.Context, subject domain.BallotSubject, subjectID uuid.UUID) ([]domain.Ballot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx,
		`SELECT subject_type, subject_id, voter_id, vote, voted_at
		 FROM ballots
		 WHERE subject_type = $1 AND subject_id = $2
		 ORDER BY voted_at`,
		string(subject), subjectID)
	if err != nil {
		return nil, postgres.MapError(err, "ballot", subjectID)
	}
	defer rows.Close()

	var result []domain.Ballot
	for rows.Next() {
		var (
			b           domain.Ballot
			subjectType string
			vote        string
		)
		if err := rows.Scan(&subjectType, &b.SubjectID, &b.VoterID, &vote, &b.VotedAt); err != nil {
			return nil, postgres.MapError(err, "ballot", subjectID)
		}
		b.Subject = domain.BallotSubject(subjectType)
		b.Vote = domain.VoteValue(vote)
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "ballot", subjectID)
	}

	if result == nil {
		result = []domain.Ballot{}
	}
	return result, nil
}
