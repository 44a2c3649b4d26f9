package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-be/internal/domain"
	"talent-be/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostgresPurchaseRepository struct {
	db *database.PostgresDB
}

func NewPurchaseRepository(db *database.PostgresDB) *PostgresPurchaseRepository {
	return &PostgresPurchaseRepository{db: db}
}

// Credit records the purchase and appends its purchased-vote ledger event in
// one transaction. The unique constraint on transaction_id makes webhook
// redelivery safe: a replay inserts nothing and reports
// domain.ErrDuplicateTransaction.
func (r *PostgresPurchaseRepository) Credit(ctx context.Context, purchase *domain.Purchase) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin purchase transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertPurchase := `
		INSERT INTO purchases (transaction_id, competition_id, contestant_id, vote_count, bonus_votes, amount_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (transaction_id) DO NOTHING
		RETURNING id, purchased_at
	`

	err = tx.QueryRow(ctx, insertPurchase,
		purchase.TransactionID,
		purchase.CompetitionID,
		purchase.ContestantID,
		purchase.VoteCount,
		purchase.BonusVotes,
		purchase.AmountCents,
	).Scan(&purchase.ID, &purchase.PurchasedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrDuplicateTransaction
	}
	if err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}

	var (
		ledgerID   int64
		creditedAt time.Time
	)
	err = tx.QueryRow(ctx, insertVoteQuery,
		uuid.NewString(),
		purchase.CompetitionID,
		purchase.ContestantID,
		domain.VoteSourceOnlinePurchased,
		"",
		purchase.CreditedVotes(),
		purchase.TransactionID,
		purchase.PurchasedAt.UTC().Format("2006-01-02"),
	).Scan(&ledgerID, &creditedAt)
	if err != nil {
		return fmt.Errorf("failed to credit purchased votes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit purchase: %w", err)
	}
	return nil
}

// GetTotals aggregates settled purchases for a competition
func (r *PostgresPurchaseRepository) GetTotals(ctx context.Context, competitionID string) (*domain.PurchaseTotals, error) {
	query := `
		SELECT COALESCE(SUM(amount_cents), 0),
		       COUNT(*),
		       COALESCE(SUM(vote_count + bonus_votes), 0)
		FROM purchases
		WHERE competition_id = $1
	`

	var totals domain.PurchaseTotals
	err := r.db.ReadPool.QueryRow(ctx, query, competitionID).Scan(
		&totals.GrossRevenueCents,
		&totals.TotalPurchases,
		&totals.PurchasedVotes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase totals: %w", err)
	}
	return &totals, nil
}
