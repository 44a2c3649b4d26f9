package repository

import (
	"context"
	"errors"
	"fmt"

	"talent-be/internal/domain"
	"talent-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type PostgresSubmissionRepository struct {
	db *database.PostgresDB
}

func NewSubmissionRepository(db *database.PostgresDB) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{db: db}
}

// Create persists a submission
func (r *PostgresSubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	query := `
		INSERT INTO submissions (
			id, kind, competition_id, full_name, email, status,
			nomination_status, nominator_name, nominator_email, non_profit,
			amount_paid_cents, transaction_id
		)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11, NULLIF($12, ''))
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		submission.ID,
		submission.Kind,
		submission.CompetitionID,
		submission.FullName,
		submission.Email,
		submission.Status,
		submission.NominationStatus,
		submission.NominatorName,
		submission.NominatorEmail,
		submission.NonProfit,
		submission.AmountPaidCents,
		submission.TransactionID,
	).Scan(&submission.CreatedAt, &submission.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

// GetByID retrieves a submission, nil if absent
func (r *PostgresSubmissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	query := `
		SELECT id, kind, COALESCE(competition_id::text, ''), full_name, email, status,
		       COALESCE(nomination_status, ''), COALESCE(nominator_name, ''),
		       COALESCE(nominator_email, ''), non_profit, amount_paid_cents,
		       COALESCE(transaction_id, ''), created_at, updated_at
		FROM submissions
		WHERE id = $1
	`

	var s domain.Submission
	err := r.db.ReadPool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Kind,
		&s.CompetitionID,
		&s.FullName,
		&s.Email,
		&s.Status,
		&s.NominationStatus,
		&s.NominatorName,
		&s.NominatorEmail,
		&s.NonProfit,
		&s.AmountPaidCents,
		&s.TransactionID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return &s, nil
}

// UpdateStatus changes the approval status
func (r *PostgresSubmissionRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE submissions SET status = $2, updated_at = now() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

// UpdateNominationStatus changes a nomination's outcome
func (r *PostgresSubmissionRepository) UpdateNominationStatus(ctx context.Context, id string, status domain.NominationStatus) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE submissions SET nomination_status = $2, updated_at = now() WHERE id = $1 AND kind = 'nomination'`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to update nomination status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}
