package service

import (
	"context"
	"testing"
	"time"

	"talent-be/internal/domain"
	"talent-be/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type votingFixture struct {
	service         *VotingService
	voteRepo        *fakeVoteRepo
	competitionRepo *fakeCompetitionRepo
	contestantRepo  *fakeContestantRepo
	settingsRepo    *fakeSettingsRepo
}

// newVotingFixture builds a voting service over an active competition with
// one approved contestant. Redis is optional.
func newVotingFixture(t *testing.T, withRedis bool) *votingFixture {
	t.Helper()

	competitionRepo := newFakeCompetitionRepo()
	competitionRepo.competitions["comp-1"] = &domain.Competition{
		ID:               "comp-1",
		Name:             "Summer Talent Show",
		Status:           domain.CompetitionActive,
		OnlineVoteWeight: 100,
		MaxVotesPerDay:   2,
	}

	contestantRepo := newFakeContestantRepo()
	contestantRepo.contestants["cont-1"] = &domain.Contestant{
		ID:                "cont-1",
		CompetitionID:     "comp-1",
		Name:              "Dancer",
		ApplicationStatus: domain.ApplicationApproved,
		AppliedAt:         time.Now().UTC().Add(-time.Hour),
	}

	settingsRepo := &fakeSettingsRepo{settings: &domain.Settings{
		SalesTaxPercent:    5,
		FreeVotesPerDay:    3,
		PlatformFeePercent: 30,
	}}

	voteRepo := newFakeVoteRepo()

	var redisClient *redis.Client
	if withRedis {
		redisClient, _ = newTestRedis(t)
	}

	return &votingFixture{
		service:         NewVotingService(voteRepo, competitionRepo, contestantRepo, settingsRepo, redisClient, zap.NewNop()),
		voteRepo:        voteRepo,
		competitionRepo: competitionRepo,
		contestantRepo:  contestantRepo,
		settingsRepo:    settingsRepo,
	}
}

func TestCastVoteFreeVoteRecorded(t *testing.T) {
	f := newVotingFixture(t, false)

	resp, err := f.service.CastVote(context.Background(), &domain.CastVoteRequest{
		CompetitionID: "comp-1",
		ContestantID:  "cont-1",
		Source:        "online_free",
		VoterIdentity: "voter@example.com",
	})

	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.False(t, resp.Duplicate)
	assert.NotEmpty(t, resp.VoteID)

	require.Len(t, f.voteRepo.events, 1)
	event := f.voteRepo.events[0]
	assert.Equal(t, domain.VoteSourceOnlineFree, event.Source)
	assert.Equal(t, 1, event.Quantity)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), event.VoteDay)
}

func TestCastVoteQuotaEnforced(t *testing.T) {
	f := newVotingFixture(t, false)
	ctx := context.Background()

	req := &domain.CastVoteRequest{
		CompetitionID: "comp-1",
		ContestantID:  "cont-1",
		Source:        "online_free",
		VoterIdentity: "voter@example.com",
	}

	// Competition caps free votes at 2 per day
	for i := 0; i < 2; i++ {
		_, err := f.service.CastVote(ctx, req)
		require.NoError(t, err)
	}

	_, err := f.service.CastVote(ctx, req)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	// Denied attempt must not reach the ledger
	assert.Len(t, f.voteRepo.events, 2)

	// A different voter still has their own allowance
	other := *req
	other.VoterIdentity = "other@example.com"
	_, err = f.service.CastVote(ctx, &other)
	assert.NoError(t, err)
}

func TestCastVoteReplayAbsorbed(t *testing.T) {
	f := newVotingFixture(t, true)
	ctx := context.Background()

	req := &domain.CastVoteRequest{
		CompetitionID: "comp-1",
		ContestantID:  "cont-1",
		Source:        "online_free",
		VoterIdentity: "voter@example.com",
	}

	first, err := f.service.CastVote(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.Accepted)
	assert.False(t, first.Duplicate)

	// Same voter, same minute bucket: the retry is acknowledged but not
	// appended again
	second, err := f.service.CastVote(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Accepted)
	assert.True(t, second.Duplicate)

	assert.Len(t, f.voteRepo.events, 1)
}

func TestCastVoteInPersonBypassesQuota(t *testing.T) {
	f := newVotingFixture(t, false)
	ctx := context.Background()

	req := &domain.CastVoteRequest{
		CompetitionID: "comp-1",
		ContestantID:  "cont-1",
		Source:        "in_person_qr",
	}

	// Well past the free-vote cap
	for i := 0; i < 5; i++ {
		resp, err := f.service.CastVote(ctx, req)
		require.NoError(t, err)
		assert.True(t, resp.Accepted)
	}

	assert.Len(t, f.voteRepo.events, 5)
}

func TestCastVoteRejectsPurchasedSource(t *testing.T) {
	f := newVotingFixture(t, false)

	_, err := f.service.CastVote(context.Background(), &domain.CastVoteRequest{
		CompetitionID: "comp-1",
		ContestantID:  "cont-1",
		Source:        "online_purchased",
		VoterIdentity: "voter@example.com",
	})

	assert.Error(t, err)
	assert.Empty(t, f.voteRepo.events)
}

func TestCastVoteValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *votingFixture, req *domain.CastVoteRequest)
		wantErr error
	}{
		{
			name: "unknown competition",
			mutate: func(f *votingFixture, req *domain.CastVoteRequest) {
				req.CompetitionID = "missing"
			},
			wantErr: domain.ErrCompetitionNotFound,
		},
		{
			name: "draft competition rejects votes",
			mutate: func(f *votingFixture, req *domain.CastVoteRequest) {
				f.competitionRepo.competitions["comp-1"].Status = domain.CompetitionDraft
			},
			wantErr: domain.ErrCompetitionClosed,
		},
		{
			name: "completed competition rejects votes",
			mutate: func(f *votingFixture, req *domain.CastVoteRequest) {
				f.competitionRepo.competitions["comp-1"].Status = domain.CompetitionCompleted
			},
			wantErr: domain.ErrCompetitionClosed,
		},
		{
			name: "in-person-only competition rejects online votes",
			mutate: func(f *votingFixture, req *domain.CastVoteRequest) {
				f.competitionRepo.competitions["comp-1"].InPersonOnly = true
			},
			wantErr: domain.ErrCompetitionClosed,
		},
		{
			name: "pending contestant cannot receive votes",
			mutate: func(f *votingFixture, req *domain.CastVoteRequest) {
				f.contestantRepo.contestants["cont-1"].ApplicationStatus = domain.ApplicationPending
			},
			wantErr: domain.ErrInvalidContestant,
		},
		{
			name: "contestant from another competition",
			mutate: func(f *votingFixture, req *domain.CastVoteRequest) {
				f.contestantRepo.contestants["cont-1"].CompetitionID = "comp-other"
			},
			wantErr: domain.ErrInvalidContestant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newVotingFixture(t, false)
			req := &domain.CastVoteRequest{
				CompetitionID: "comp-1",
				ContestantID:  "cont-1",
				Source:        "online_free",
				VoterIdentity: "voter@example.com",
			}
			tt.mutate(f, req)

			_, err := f.service.CastVote(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.voteRepo.events)
		})
	}
}

func TestGetBreakdown(t *testing.T) {
	f := newVotingFixture(t, false)
	ctx := context.Background()

	f.voteRepo.events = []domain.VoteEvent{
		{CompetitionID: "comp-1", Source: domain.VoteSourceOnlineFree, Quantity: 1},
		{CompetitionID: "comp-1", Source: domain.VoteSourceOnlinePurchased, Quantity: 12},
		{CompetitionID: "comp-1", Source: domain.VoteSourceInPersonQR, Quantity: 1},
		{CompetitionID: "comp-other", Source: domain.VoteSourceOnlineFree, Quantity: 1},
	}

	breakdown, err := f.service.GetBreakdown(ctx, "comp-1")
	require.NoError(t, err)

	assert.Equal(t, 13, breakdown.Online)
	assert.Equal(t, 1, breakdown.InPerson)
	assert.Equal(t, 14, breakdown.Total)
	assert.Equal(t, 100, breakdown.OnlineVoteWeight)
}

func TestGetLeaderboardUsesCompetitionWeight(t *testing.T) {
	f := newVotingFixture(t, false)
	f.competitionRepo.competitions["comp-1"].OnlineVoteWeight = 50

	f.voteRepo.tallies = []domain.ContestantTally{
		{ContestantID: "cont-1", Name: "Dancer", OnlineVotes: 10, InPerson: 1},
	}

	lb, err := f.service.GetLeaderboard(context.Background(), "comp-1")
	require.NoError(t, err)
	require.Len(t, lb.Entries, 1)
	assert.InDelta(t, 6.0, lb.Entries[0].WeightedVotes, 1e-9)
	assert.Equal(t, 50, lb.OnlineVoteWeight)
}
