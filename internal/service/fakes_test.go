package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"talent-be/internal/domain"
	"talent-be/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"
)

// newTestRedis spins up a miniredis-backed client
func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create redis client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

type fakeCompetitionRepo struct {
	competitions map[string]*domain.Competition
	tiers        map[string]*domain.HostingTier
	tierLocked   bool
}

func newFakeCompetitionRepo() *fakeCompetitionRepo {
	return &fakeCompetitionRepo{
		competitions: make(map[string]*domain.Competition),
		tiers:        make(map[string]*domain.HostingTier),
	}
}

func (f *fakeCompetitionRepo) Create(ctx context.Context, competition *domain.Competition) error {
	f.competitions[competition.ID] = competition
	return nil
}

func (f *fakeCompetitionRepo) GetByID(ctx context.Context, id string) (*domain.Competition, error) {
	return f.competitions[id], nil
}

func (f *fakeCompetitionRepo) UpdateStatus(ctx context.Context, id string, status domain.CompetitionStatus) error {
	c, ok := f.competitions[id]
	if !ok {
		return domain.ErrCompetitionNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeCompetitionRepo) UpdateTier(ctx context.Context, id, tierID string) error {
	c, ok := f.competitions[id]
	if !ok {
		return domain.ErrCompetitionNotFound
	}
	if f.tierLocked {
		return domain.ErrTierLocked
	}
	c.TierID = tierID
	return nil
}

func (f *fakeCompetitionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.competitions[id]; !ok {
		return domain.ErrCompetitionNotFound
	}
	delete(f.competitions, id)
	return nil
}

func (f *fakeCompetitionRepo) GetTier(ctx context.Context, tierID string) (*domain.HostingTier, error) {
	return f.tiers[tierID], nil
}

type fakeContestantRepo struct {
	contestants map[string]*domain.Contestant
}

func newFakeContestantRepo() *fakeContestantRepo {
	return &fakeContestantRepo{contestants: make(map[string]*domain.Contestant)}
}

func (f *fakeContestantRepo) Create(ctx context.Context, contestant *domain.Contestant) error {
	f.contestants[contestant.ID] = contestant
	return nil
}

func (f *fakeContestantRepo) GetByID(ctx context.Context, id string) (*domain.Contestant, error) {
	return f.contestants[id], nil
}

func (f *fakeContestantRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	c, ok := f.contestants[id]
	if !ok {
		return domain.ErrContestantNotFound
	}
	c.ApplicationStatus = status
	return nil
}

func (f *fakeContestantRepo) ListByCompetition(ctx context.Context, competitionID string) ([]domain.Contestant, error) {
	var out []domain.Contestant
	for _, c := range f.contestants {
		if c.CompetitionID == competitionID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeVoteRepo struct {
	events  []domain.VoteEvent
	quota   map[string]int
	tallies []domain.ContestantTally
}

func newFakeVoteRepo() *fakeVoteRepo {
	return &fakeVoteRepo{quota: make(map[string]int)}
}

func quotaKey(e *domain.VoteEvent) string {
	return fmt.Sprintf("%s|%s|%s", e.VoterIdentity, e.CompetitionID, e.VoteDay)
}

func (f *fakeVoteRepo) RecordFreeVote(ctx context.Context, event *domain.VoteEvent, cap int) error {
	key := quotaKey(event)
	if f.quota[key] >= cap {
		return domain.ErrQuotaExceeded
	}
	f.quota[key]++
	event.CreatedAt = time.Now().UTC()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeVoteRepo) RecordInPersonVote(ctx context.Context, event *domain.VoteEvent) error {
	event.CreatedAt = time.Now().UTC()
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeVoteRepo) GetBreakdown(ctx context.Context, competitionID string) (int, int, error) {
	var online, inPerson int
	for _, e := range f.events {
		if e.CompetitionID != competitionID {
			continue
		}
		if e.Source.Online() {
			online += e.Quantity
		} else {
			inPerson += e.Quantity
		}
	}
	return online, inPerson, nil
}

func (f *fakeVoteRepo) GetContestantTallies(ctx context.Context, competitionID string) ([]domain.ContestantTally, error) {
	return f.tallies, nil
}

func (f *fakeVoteRepo) PurchasedVoteCount(ctx context.Context, competitionID string) (int, error) {
	var total int
	for _, e := range f.events {
		if e.CompetitionID == competitionID && e.Source == domain.VoteSourceOnlinePurchased {
			total += e.Quantity
		}
	}
	return total, nil
}

type fakePurchaseRepo struct {
	purchases map[string]*domain.Purchase
	votes     *fakeVoteRepo
}

func newFakePurchaseRepo(votes *fakeVoteRepo) *fakePurchaseRepo {
	return &fakePurchaseRepo{
		purchases: make(map[string]*domain.Purchase),
		votes:     votes,
	}
}

func (f *fakePurchaseRepo) Credit(ctx context.Context, purchase *domain.Purchase) error {
	if _, ok := f.purchases[purchase.TransactionID]; ok {
		return domain.ErrDuplicateTransaction
	}
	purchase.PurchasedAt = time.Now().UTC()
	f.purchases[purchase.TransactionID] = purchase
	f.votes.events = append(f.votes.events, domain.VoteEvent{
		VoteID:        "purchase-" + purchase.TransactionID,
		CompetitionID: purchase.CompetitionID,
		ContestantID:  purchase.ContestantID,
		Source:        domain.VoteSourceOnlinePurchased,
		Quantity:      purchase.CreditedVotes(),
		TransactionID: purchase.TransactionID,
		VoteDay:       purchase.PurchasedAt.Format("2006-01-02"),
		CreatedAt:     purchase.PurchasedAt,
	})
	return nil
}

func (f *fakePurchaseRepo) GetTotals(ctx context.Context, competitionID string) (*domain.PurchaseTotals, error) {
	totals := &domain.PurchaseTotals{}
	for _, p := range f.purchases {
		if p.CompetitionID != competitionID {
			continue
		}
		totals.GrossRevenueCents += p.AmountCents
		totals.TotalPurchases++
		totals.PurchasedVotes += p.CreditedVotes()
	}
	return totals, nil
}

type fakeSubmissionRepo struct {
	submissions map[string]*domain.Submission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[string]*domain.Submission)}
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *domain.Submission) error {
	submission.CreatedAt = time.Now().UTC()
	f.submissions[submission.ID] = submission
	return nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	return f.submissions[id], nil
}

func (f *fakeSubmissionRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	s, ok := f.submissions[id]
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeSubmissionRepo) UpdateNominationStatus(ctx context.Context, id string, status domain.NominationStatus) error {
	s, ok := f.submissions[id]
	if !ok {
		return domain.ErrSubmissionNotFound
	}
	s.NominationStatus = status
	return nil
}

type fakeSettingsRepo struct {
	settings *domain.Settings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, req *domain.UpdateSettingsRequest) (*domain.Settings, error) {
	if req.SalesTaxPercent != nil {
		f.settings.SalesTaxPercent = *req.SalesTaxPercent
	}
	if req.FreeVotesPerDay != nil {
		f.settings.FreeVotesPerDay = *req.FreeVotesPerDay
	}
	if req.VotePriceCents != nil {
		f.settings.VotePriceCents = *req.VotePriceCents
	}
	if req.PlatformFeePercent != nil {
		f.settings.PlatformFeePercent = *req.PlatformFeePercent
	}
	if req.NominationFeeCents != nil {
		f.settings.NominationFeeCents = *req.NominationFeeCents
	}
	if req.EntryFeeCents != nil {
		f.settings.EntryFeeCents = *req.EntryFeeCents
	}
	if req.VotePackages != nil {
		f.settings.VotePackages = req.VotePackages
	}
	f.settings.UpdatedAt = time.Now().UTC()
	return f.settings, nil
}

type fakeGateway struct {
	declined bool
	charges  []int64
}

func (f *fakeGateway) Charge(ctx context.Context, token string, amountCents int64) (*domain.ChargeResult, error) {
	if f.declined {
		return nil, fmt.Errorf("charge rejected: %w", domain.ErrPaymentDeclined)
	}
	f.charges = append(f.charges, amountCents)
	return &domain.ChargeResult{
		TransactionID: fmt.Sprintf("txn-%d", len(f.charges)),
		AmountCents:   amountCents,
		Message:       "succeeded",
	}, nil
}
