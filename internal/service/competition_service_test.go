package service

import (
	"context"
	"testing"

	"talent-be/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type competitionFixture struct {
	service         *CompetitionService
	competitionRepo *fakeCompetitionRepo
	contestantRepo  *fakeContestantRepo
	settingsRepo    *fakeSettingsRepo
}

func newCompetitionFixture(t *testing.T) *competitionFixture {
	t.Helper()

	competitionRepo := newFakeCompetitionRepo()
	competitionRepo.tiers["tier-1"] = &domain.HostingTier{ID: "tier-1", Name: "Standard", RevenueSharePercent: 35}
	contestantRepo := newFakeContestantRepo()
	settingsRepo := &fakeSettingsRepo{settings: &domain.Settings{FreeVotesPerDay: 3, PlatformFeePercent: 30}}

	return &competitionFixture{
		service: NewCompetitionService(competitionRepo, contestantRepo, settingsRepo,
			NewCacheService(nil, zap.NewNop()), zap.NewNop()),
		competitionRepo: competitionRepo,
		contestantRepo:  contestantRepo,
		settingsRepo:    settingsRepo,
	}
}

func TestCreateCompetition(t *testing.T) {
	f := newCompetitionFixture(t)
	claims := &domain.AuthClaims{Subject: "host-1", Role: domain.RoleHost}

	competition, err := f.service.Create(context.Background(), claims, &domain.CreateCompetitionRequest{
		Name:   "Winter Showcase",
		TierID: "tier-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, competition.ID)
	assert.Equal(t, domain.CompetitionDraft, competition.Status)
	assert.Equal(t, "host-1", competition.OwnerID)
	assert.Equal(t, 100, competition.OnlineVoteWeight) // defaults to full weight
}

func TestCreateCompetitionValidation(t *testing.T) {
	f := newCompetitionFixture(t)
	claims := &domain.AuthClaims{Subject: "host-1", Role: domain.RoleHost}
	ctx := context.Background()

	_, err := f.service.Create(ctx, claims, &domain.CreateCompetitionRequest{})
	assert.Error(t, err, "name is required")

	_, err = f.service.Create(ctx, claims, &domain.CreateCompetitionRequest{
		Name:             "Bad Weight",
		OnlineVoteWeight: 101,
	})
	assert.Error(t, err)

	_, err = f.service.Create(ctx, claims, &domain.CreateCompetitionRequest{
		Name:   "Missing Tier",
		TierID: "tier-missing",
	})
	assert.Error(t, err)
}

func TestUpdateCompetitionStatus(t *testing.T) {
	f := newCompetitionFixture(t)
	f.competitionRepo.competitions["comp-1"] = &domain.Competition{ID: "comp-1", Status: domain.CompetitionDraft}

	err := f.service.UpdateStatus(context.Background(), "comp-1",
		&domain.UpdateCompetitionStatusRequest{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, domain.CompetitionActive, f.competitionRepo.competitions["comp-1"].Status)

	err = f.service.UpdateStatus(context.Background(), "comp-1",
		&domain.UpdateCompetitionStatusRequest{Status: "bogus"})
	assert.Error(t, err)
}

func TestUpdateTierLockedAfterPurchases(t *testing.T) {
	f := newCompetitionFixture(t)
	f.competitionRepo.competitions["comp-1"] = &domain.Competition{ID: "comp-1", TierID: "tier-1"}
	f.competitionRepo.tiers["tier-2"] = &domain.HostingTier{ID: "tier-2", Name: "Premium", RevenueSharePercent: 50}
	f.competitionRepo.tierLocked = true

	err := f.service.UpdateTier(context.Background(), "comp-1", "tier-2")
	assert.ErrorIs(t, err, domain.ErrTierLocked)
	assert.Equal(t, "tier-1", f.competitionRepo.competitions["comp-1"].TierID)
}

func TestAddContestantAndStatus(t *testing.T) {
	f := newCompetitionFixture(t)
	f.competitionRepo.competitions["comp-1"] = &domain.Competition{ID: "comp-1"}
	ctx := context.Background()

	contestant, err := f.service.AddContestant(ctx, &domain.AddContestantRequest{
		CompetitionID:   "comp-1",
		TalentProfileID: "talent-9",
		Name:            "Singer",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPending, contestant.ApplicationStatus)

	err = f.service.UpdateContestantStatus(ctx, contestant.ID,
		&domain.UpdateContestantStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationApproved, f.contestantRepo.contestants[contestant.ID].ApplicationStatus)

	err = f.service.UpdateContestantStatus(ctx, "missing",
		&domain.UpdateContestantStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, domain.ErrContestantNotFound)
}

func TestUpdateSettings(t *testing.T) {
	f := newCompetitionFixture(t)
	ctx := context.Background()

	tax := 8
	settings, err := f.service.UpdateSettings(ctx, &domain.UpdateSettingsRequest{SalesTaxPercent: &tax})
	require.NoError(t, err)
	assert.Equal(t, 8, settings.SalesTaxPercent)
	assert.Equal(t, 3, settings.FreeVotesPerDay) // untouched fields keep their values

	bad := 101
	_, err = f.service.UpdateSettings(ctx, &domain.UpdateSettingsRequest{SalesTaxPercent: &bad})
	assert.Error(t, err)

	negative := -1
	_, err = f.service.UpdateSettings(ctx, &domain.UpdateSettingsRequest{FreeVotesPerDay: &negative})
	assert.Error(t, err)
}
