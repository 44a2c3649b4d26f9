package repository

import (
	"context"
	"errors"
	"fmt"

	"talent-be/internal/domain"
	"talent-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type PostgresContestantRepository struct {
	db *database.PostgresDB
}

func NewContestantRepository(db *database.PostgresDB) *PostgresContestantRepository {
	return &PostgresContestantRepository{db: db}
}

// Create persists a contestant entry
func (r *PostgresContestantRepository) Create(ctx context.Context, contestant *domain.Contestant) error {
	query := `
		INSERT INTO contestants (id, competition_id, talent_profile_id, name, application_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING applied_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		contestant.ID,
		contestant.CompetitionID,
		contestant.TalentProfileID,
		contestant.Name,
		contestant.ApplicationStatus,
	).Scan(&contestant.AppliedAt, &contestant.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create contestant: %w", err)
	}
	return nil
}

// GetByID retrieves a contestant, nil if absent
func (r *PostgresContestantRepository) GetByID(ctx context.Context, id string) (*domain.Contestant, error) {
	query := `
		SELECT id, competition_id, talent_profile_id, name, application_status, applied_at, updated_at
		FROM contestants
		WHERE id = $1
	`

	var c domain.Contestant
	err := r.db.ReadPool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.CompetitionID,
		&c.TalentProfileID,
		&c.Name,
		&c.ApplicationStatus,
		&c.AppliedAt,
		&c.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contestant: %w", err)
	}

	return &c, nil
}

// UpdateStatus changes the approval status
func (r *PostgresContestantRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE contestants SET application_status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to update contestant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContestantNotFound
	}
	return nil
}

// ListByCompetition lists contestants of a competition, application order
func (r *PostgresContestantRepository) ListByCompetition(ctx context.Context, competitionID string) ([]domain.Contestant, error) {
	query := `
		SELECT id, competition_id, talent_profile_id, name, application_status, applied_at, updated_at
		FROM contestants
		WHERE competition_id = $1
		ORDER BY applied_at ASC, id ASC
	`

	rows, err := r.db.ReadPool.Query(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contestants: %w", err)
	}
	defer rows.Close()

	var contestants []domain.Contestant
	for rows.Next() {
		var c domain.Contestant
		if err := rows.Scan(&c.ID, &c.CompetitionID, &c.TalentProfileID, &c.Name, &c.ApplicationStatus, &c.AppliedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contestant: %w", err)
		}
		contestants = append(contestants, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contestants: %w", err)
	}

	return contestants, nil
}
