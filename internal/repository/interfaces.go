package repository

import (
	"context"

	"talent-be/internal/domain"
)

// CompetitionRepository defines competition and hosting-tier data operations
type CompetitionRepository interface {
	// Create persists a new competition
	Create(ctx context.Context, competition *domain.Competition) error

	// GetByID retrieves a competition, nil if absent
	GetByID(ctx context.Context, id string) (*domain.Competition, error)

	// UpdateStatus changes the lifecycle status
	UpdateStatus(ctx context.Context, id string, status domain.CompetitionStatus) error

	// UpdateTier rebinds the hosting tier; fails with ErrTierLocked when any
	// purchase has been settled against the competition
	UpdateTier(ctx context.Context, id, tierID string) error

	// Delete removes a competition; contestants, votes, purchases and quota
	// rows cascade
	Delete(ctx context.Context, id string) error

	// GetTier retrieves a hosting tier, nil if absent
	GetTier(ctx context.Context, tierID string) (*domain.HostingTier, error)
}

// ContestantRepository defines contestant entry data operations
type ContestantRepository interface {
	// Create persists a contestant entry
	Create(ctx context.Context, contestant *domain.Contestant) error

	// GetByID retrieves a contestant, nil if absent
	GetByID(ctx context.Context, id string) (*domain.Contestant, error)

	// UpdateStatus changes the approval status
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error

	// ListByCompetition lists contestants of a competition
	ListByCompetition(ctx context.Context, competitionID string) ([]domain.Contestant, error)
}

// VoteRepository defines the append-only vote ledger operations
type VoteRepository interface {
	// RecordFreeVote appends a free-vote event, enforcing the daily cap
	// atomically with the append. Returns domain.ErrQuotaExceeded when the
	// voter's allowance for (competition, day) is used up.
	RecordFreeVote(ctx context.Context, event *domain.VoteEvent, cap int) error

	// RecordInPersonVote appends an in-person event; no quota applies
	RecordInPersonVote(ctx context.Context, event *domain.VoteEvent) error

	// GetBreakdown sums ledger quantities per channel for a competition
	GetBreakdown(ctx context.Context, competitionID string) (online, inPerson int, err error)

	// GetContestantTallies returns per-contestant channel counts for
	// approved contestants of a competition
	GetContestantTallies(ctx context.Context, competitionID string) ([]domain.ContestantTally, error)

	// PurchasedVoteCount sums purchased-vote quantities in the ledger, used
	// for the settlement cross-check
	PurchasedVoteCount(ctx context.Context, competitionID string) (int, error)
}

// PurchaseRepository defines purchase settlement operations
type PurchaseRepository interface {
	// Credit atomically records the purchase and appends its purchased-vote
	// ledger event. Returns domain.ErrDuplicateTransaction when the
	// transaction ID was settled before; nothing is written in that case.
	Credit(ctx context.Context, purchase *domain.Purchase) error

	// GetTotals aggregates settled purchases for a competition
	GetTotals(ctx context.Context, competitionID string) (*domain.PurchaseTotals, error)
}

// SubmissionRepository defines join/host/nomination submission operations
type SubmissionRepository interface {
	// Create persists a submission
	Create(ctx context.Context, submission *domain.Submission) error

	// GetByID retrieves a submission, nil if absent
	GetByID(ctx context.Context, id string) (*domain.Submission, error)

	// UpdateStatus changes the approval status
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error

	// UpdateNominationStatus changes a nomination's outcome
	UpdateNominationStatus(ctx context.Context, id string, status domain.NominationStatus) error
}

// SettingsRepository defines platform settings access
type SettingsRepository interface {
	// Get loads the settings singleton
	Get(ctx context.Context) (*domain.Settings, error)

	// Update applies a partial settings change and returns the new snapshot
	Update(ctx context.Context, req *domain.UpdateSettingsRequest) (*domain.Settings, error)
}
