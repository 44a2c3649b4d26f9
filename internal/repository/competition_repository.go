package repository

import (
	"context"
	"errors"
	"fmt"

	"talent-be/internal/domain"
	"talent-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type PostgresCompetitionRepository struct {
	db *database.PostgresDB
}

func NewCompetitionRepository(db *database.PostgresDB) *PostgresCompetitionRepository {
	return &PostgresCompetitionRepository{db: db}
}

// Create persists a new competition
func (r *PostgresCompetitionRepository) Create(ctx context.Context, competition *domain.Competition) error {
	query := `
		INSERT INTO competitions (
			id, name, category, status, owner_id, start_date, end_date,
			max_votes_per_day, online_vote_weight, in_person_only,
			expected_contestants, tier_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, '')::uuid)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		competition.ID,
		competition.Name,
		competition.Category,
		competition.Status,
		competition.OwnerID,
		competition.StartDate,
		competition.EndDate,
		competition.MaxVotesPerDay,
		competition.OnlineVoteWeight,
		competition.InPersonOnly,
		competition.ExpectedContestants,
		competition.TierID,
	).Scan(&competition.CreatedAt, &competition.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create competition: %w", err)
	}
	return nil
}

// GetByID retrieves a competition, nil if absent
func (r *PostgresCompetitionRepository) GetByID(ctx context.Context, id string) (*domain.Competition, error) {
	query := `
		SELECT id, name, category, status, owner_id, start_date, end_date,
		       max_votes_per_day, online_vote_weight, in_person_only,
		       expected_contestants, COALESCE(tier_id::text, ''), created_at, updated_at
		FROM competitions
		WHERE id = $1
	`

	var c domain.Competition
	err := r.db.ReadPool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Category,
		&c.Status,
		&c.OwnerID,
		&c.StartDate,
		&c.EndDate,
		&c.MaxVotesPerDay,
		&c.OnlineVoteWeight,
		&c.InPersonOnly,
		&c.ExpectedContestants,
		&c.TierID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}

	return &c, nil
}

// UpdateStatus changes the lifecycle status
func (r *PostgresCompetitionRepository) UpdateStatus(ctx context.Context, id string, status domain.CompetitionStatus) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE competitions SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to update competition status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompetitionNotFound
	}
	return nil
}

// UpdateTier rebinds the hosting tier. Refused once any purchase has been
// settled, to keep past settlements auditable against a single tier.
func (r *PostgresCompetitionRepository) UpdateTier(ctx context.Context, id, tierID string) error {
	query := `
		UPDATE competitions
		SET tier_id = $2, updated_at = now()
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM purchases WHERE competition_id = $1)
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, tierID)
	if err != nil {
		return fmt.Errorf("failed to update competition tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing competition from a locked tier
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrCompetitionNotFound
		}
		return domain.ErrTierLocked
	}
	return nil
}

// Delete removes a competition. Contestants, votes, purchases and quota rows
// cascade via foreign keys.
func (r *PostgresCompetitionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM competitions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete competition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCompetitionNotFound
	}
	return nil
}

// GetTier retrieves a hosting tier, nil if absent
func (r *PostgresCompetitionRepository) GetTier(ctx context.Context, tierID string) (*domain.HostingTier, error) {
	query := `
		SELECT id, name, price_cents, max_contestants, revenue_share_percent
		FROM hosting_tiers
		WHERE id = $1
	`

	var t domain.HostingTier
	err := r.db.ReadPool.QueryRow(ctx, query, tierID).Scan(
		&t.ID,
		&t.Name,
		&t.PriceCents,
		&t.MaxContestants,
		&t.RevenueSharePercent,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hosting tier: %w", err)
	}

	return &t, nil
}
