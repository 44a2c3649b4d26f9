package repository

import (
	"context"
	"errors"
	"fmt"

	"talent-be/internal/domain"
	"talent-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type PostgresVoteRepository struct {
	db *database.PostgresDB
}

func NewVoteRepository(db *database.PostgresDB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// consumeQuotaQuery is the check-and-act core of the quota enforcer: the
// conditional upsert takes a row lock on the (voter, competition, day) key,
// so two concurrent requests can never both pass the cap. No row returned
// means the allowance is used up.
const consumeQuotaQuery = `
	INSERT INTO free_vote_quota (voter_identity, competition_id, vote_day, used)
	VALUES ($1, $2, $3, 1)
	ON CONFLICT (voter_identity, competition_id, vote_day)
	DO UPDATE SET used = free_vote_quota.used + 1
	WHERE free_vote_quota.used < $4
	RETURNING used
`

const insertVoteQuery = `
	INSERT INTO votes (vote_id, competition_id, contestant_id, source, voter_identity, quantity, transaction_id, vote_day)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8)
	RETURNING id, created_at
`

// RecordFreeVote appends a free-vote event with the quota consumed in the
// same transaction. A denied attempt writes nothing, including the quota row
// bump.
func (r *PostgresVoteRepository) RecordFreeVote(ctx context.Context, event *domain.VoteEvent, cap int) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var used int
	err = tx.QueryRow(ctx, consumeQuotaQuery,
		event.VoterIdentity,
		event.CompetitionID,
		event.VoteDay,
		cap,
	).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrQuotaExceeded
	}
	if err != nil {
		return fmt.Errorf("failed to consume free vote quota: %w", err)
	}

	err = tx.QueryRow(ctx, insertVoteQuery,
		event.VoteID,
		event.CompetitionID,
		event.ContestantID,
		event.Source,
		event.VoterIdentity,
		event.Quantity,
		event.TransactionID,
		event.VoteDay,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append free vote: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit free vote: %w", err)
	}
	return nil
}

// RecordInPersonVote appends a QR-scan event. In-person votes are exempt
// from the daily cap and carry no online voter identity.
func (r *PostgresVoteRepository) RecordInPersonVote(ctx context.Context, event *domain.VoteEvent) error {
	err := r.db.Pool.QueryRow(ctx, insertVoteQuery,
		event.VoteID,
		event.CompetitionID,
		event.ContestantID,
		event.Source,
		event.VoterIdentity,
		event.Quantity,
		event.TransactionID,
		event.VoteDay,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append in-person vote: %w", err)
	}
	return nil
}

// GetBreakdown sums ledger quantities per channel for a competition
func (r *PostgresVoteRepository) GetBreakdown(ctx context.Context, competitionID string) (int, int, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE source IN ('online_free', 'online_purchased')), 0),
			COALESCE(SUM(quantity) FILTER (WHERE source = 'in_person_qr'), 0)
		FROM votes
		WHERE competition_id = $1
	`

	var online, inPerson int
	err := r.db.ReadPool.QueryRow(ctx, query, competitionID).Scan(&online, &inPerson)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get vote breakdown: %w", err)
	}
	return online, inPerson, nil
}

// GetContestantTallies returns per-contestant channel counts for approved
// contestants, with applied_at for the leaderboard tiebreak
func (r *PostgresVoteRepository) GetContestantTallies(ctx context.Context, competitionID string) ([]domain.ContestantTally, error) {
	query := `
		SELECT c.id, c.name,
		       COALESCE(SUM(v.quantity) FILTER (WHERE v.source IN ('online_free', 'online_purchased')), 0),
		       COALESCE(SUM(v.quantity) FILTER (WHERE v.source = 'in_person_qr'), 0),
		       c.applied_at
		FROM contestants c
		LEFT JOIN votes v ON v.contestant_id = c.id
		WHERE c.competition_id = $1 AND c.application_status = 'approved'
		GROUP BY c.id, c.name, c.applied_at
	`

	rows, err := r.db.ReadPool.Query(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contestant tallies: %w", err)
	}
	defer rows.Close()

	var tallies []domain.ContestantTally
	for rows.Next() {
		var t domain.ContestantTally
		if err := rows.Scan(&t.ContestantID, &t.Name, &t.OnlineVotes, &t.InPerson, &t.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contestant tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contestant tallies: %w", err)
	}

	return tallies, nil
}

// PurchasedVoteCount sums purchased-vote ledger quantities for the
// settlement cross-check
func (r *PostgresVoteRepository) PurchasedVoteCount(ctx context.Context, competitionID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM votes
		WHERE competition_id = $1 AND source = 'online_purchased'
	`

	var count int
	if err := r.db.ReadPool.QueryRow(ctx, query, competitionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count purchased votes: %w", err)
	}
	return count, nil
}
