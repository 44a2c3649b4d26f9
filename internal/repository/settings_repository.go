package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"talent-be/internal/domain"
	"talent-be/pkg/database"
)

type PostgresSettingsRepository struct {
	db *database.PostgresDB
}

func NewSettingsRepository(db *database.PostgresDB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// Get loads the settings singleton row
func (r *PostgresSettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT sales_tax_percent, free_votes_per_day, vote_price_cents,
		       platform_fee_percent, nomination_fee_cents, entry_fee_cents,
		       vote_packages, updated_at
		FROM platform_settings
		WHERE id = 1
	`

	var (
		s        domain.Settings
		packages []byte
	)
	err := r.db.ReadPool.QueryRow(ctx, query).Scan(
		&s.SalesTaxPercent,
		&s.FreeVotesPerDay,
		&s.VotePriceCents,
		&s.PlatformFeePercent,
		&s.NominationFeeCents,
		&s.EntryFeeCents,
		&packages,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get platform settings: %w", err)
	}

	if len(packages) > 0 {
		if err := json.Unmarshal(packages, &s.VotePackages); err != nil {
			return nil, fmt.Errorf("failed to decode vote packages: %w", err)
		}
	}

	return &s, nil
}

// Update applies a partial settings change and returns the new snapshot
func (r *PostgresSettingsRepository) Update(ctx context.Context, req *domain.UpdateSettingsRequest) (*domain.Settings, error) {
	var packages []byte
	if req.VotePackages != nil {
		var err error
		packages, err = json.Marshal(req.VotePackages)
		if err != nil {
			return nil, fmt.Errorf("failed to encode vote packages: %w", err)
		}
	}

	query := `
		UPDATE platform_settings SET
			sales_tax_percent    = COALESCE($1, sales_tax_percent),
			free_votes_per_day   = COALESCE($2, free_votes_per_day),
			vote_price_cents     = COALESCE($3, vote_price_cents),
			platform_fee_percent = COALESCE($4, platform_fee_percent),
			nomination_fee_cents = COALESCE($5, nomination_fee_cents),
			entry_fee_cents      = COALESCE($6, entry_fee_cents),
			vote_packages        = COALESCE($7, vote_packages),
			updated_at           = now()
		WHERE id = 1
	`

	_, err := r.db.Pool.Exec(ctx, query,
		req.SalesTaxPercent,
		req.FreeVotesPerDay,
		req.VotePriceCents,
		req.PlatformFeePercent,
		req.NominationFeeCents,
		req.EntryFeeCents,
		packages,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update platform settings: %w", err)
	}

	return r.Get(ctx)
}
