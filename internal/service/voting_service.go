package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talent-be/internal/domain"
	"talent-be/internal/repository"
	"talent-be/pkg/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	voteDayFormat      = "2006-01-02"
	replayBucketFormat = "200601021504" // Minute buckets for free-vote replay detection
)

// VotingService owns vote ingestion and the tally read models. The ledger
// is the single source of truth; breakdown and leaderboard are always
// recomputed from it, never the other way around.
type VotingService struct {
	voteRepo        repository.VoteRepository
	competitionRepo repository.CompetitionRepository
	contestantRepo  repository.ContestantRepository
	settingsRepo    repository.SettingsRepository
	redis           *redis.Client
	cacheService    *CacheService
	logger          *zap.Logger
}

func NewVotingService(
	voteRepo repository.VoteRepository,
	competitionRepo repository.CompetitionRepository,
	contestantRepo repository.ContestantRepository,
	settingsRepo repository.SettingsRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *VotingService {
	return &VotingService{
		voteRepo:        voteRepo,
		competitionRepo: competitionRepo,
		contestantRepo:  contestantRepo,
		settingsRepo:    settingsRepo,
		redis:           redisClient,
		cacheService:    NewCacheService(redisClient, logger),
		logger:          logger,
	}
}

// CastVote validates and appends a single vote event. Free votes pass the
// quota enforcer; in-person votes bypass it. Purchased votes never enter
// here, they are credited exclusively through settlement.
func (s *VotingService) CastVote(ctx context.Context, req *domain.CastVoteRequest) (*domain.CastVoteResponse, error) {
	source, err := domain.ParseVoteSource(req.Source)
	if err != nil {
		return nil, err
	}
	if source == domain.VoteSourceOnlinePurchased {
		return nil, fmt.Errorf("purchased votes are credited through purchase settlement")
	}
	if source == domain.VoteSourceOnlineFree && req.VoterIdentity == "" {
		return nil, fmt.Errorf("online votes require a voter identity")
	}

	competition, err := s.cacheService.GetCompetitionWithCache(ctx, req.CompetitionID, s.competitionRepo.GetByID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}
	if competition == nil {
		return nil, domain.ErrCompetitionNotFound
	}
	if competition.Status != domain.CompetitionActive {
		return nil, domain.ErrCompetitionClosed
	}
	if competition.InPersonOnly && source.Online() {
		return nil, domain.ErrCompetitionClosed
	}

	contestant, err := s.contestantRepo.GetByID(ctx, req.ContestantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contestant: %w", err)
	}
	if contestant == nil || contestant.CompetitionID != competition.ID ||
		contestant.ApplicationStatus != domain.ApplicationApproved {
		return nil, domain.ErrInvalidContestant
	}

	now := time.Now().UTC()
	event := &domain.VoteEvent{
		VoteID:        uuid.NewString(),
		CompetitionID: competition.ID,
		ContestantID:  contestant.ID,
		Source:        source,
		VoterIdentity: req.VoterIdentity,
		Quantity:      1,
		VoteDay:       now.Format(voteDayFormat),
	}

	if source == domain.VoteSourceInPersonQR {
		if err := s.voteRepo.RecordInPersonVote(ctx, event); err != nil {
			return nil, fmt.Errorf("failed to record in-person vote: %w", err)
		}
		s.cacheService.InvalidateTallies(ctx, competition.ID)
		return &domain.CastVoteResponse{Accepted: true, VoteID: event.VoteID, Timestamp: event.CreatedAt}, nil
	}

	return s.castFreeVote(ctx, competition, event, now)
}

// castFreeVote runs the quota-enforced free-vote path
func (s *VotingService) castFreeVote(ctx context.Context, competition *domain.Competition, event *domain.VoteEvent, now time.Time) (*domain.CastVoteResponse, error) {
	settings, err := s.cacheService.GetSettingsWithCache(ctx, s.settingsRepo.Get)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings snapshot: %w", err)
	}

	dailyCap := competition.FreeVoteCap(settings)
	if dailyCap <= 0 {
		return nil, domain.ErrQuotaExceeded
	}

	// Fast-path reject on the quota mirror; the database stays authoritative
	if s.redis != nil {
		quotaKey := s.redis.KeyBuilder.KeyQuotaUsed(competition.ID, event.VoterIdentity, event.VoteDay)
		if used, err := s.redis.GetInt(ctx, quotaKey); err == nil && used >= int64(dailyCap) {
			return nil, domain.ErrQuotaExceeded
		}
	}

	// Absorb network-level duplicates of the same request
	replayKey := ""
	if s.redis != nil {
		replayKey = s.redis.KeyBuilder.KeyVoteReplay(competition.ID, event.VoterIdentity, now.Format(replayBucketFormat))
		acquired, err := s.redis.SetNX(ctx, replayKey, event.VoteID, redis.TTLVoteReplay)
		if err == nil && !acquired {
			s.logger.Debug("Replayed free vote absorbed",
				zap.String("competition_id", competition.ID))
			return &domain.CastVoteResponse{Accepted: true, Duplicate: true, Timestamp: now}, nil
		}
	}

	if err := s.voteRepo.RecordFreeVote(ctx, event, dailyCap); err != nil {
		// A denied attempt must stay retryable, so drop the replay lock
		// before reporting the failure
		if replayKey != "" {
			_ = s.redis.Delete(ctx, replayKey)
		}
		if err == domain.ErrQuotaExceeded {
			s.logger.Debug("Free vote denied by quota",
				zap.String("competition_id", competition.ID),
				zap.Int("cap", dailyCap))
			return nil, domain.ErrQuotaExceeded
		}
		return nil, fmt.Errorf("failed to record free vote: %w", err)
	}

	if s.redis != nil {
		quotaKey := s.redis.KeyBuilder.KeyQuotaUsed(competition.ID, event.VoterIdentity, event.VoteDay)
		if _, err := s.redis.IncrWithTTL(ctx, quotaKey, redis.TTLQuotaMirror); err != nil {
			s.logger.Warn("Failed to update quota mirror", zap.Error(err))
		}
	}
	s.cacheService.InvalidateTallies(ctx, competition.ID)

	s.logger.Info("Vote recorded",
		zap.String("competition_id", competition.ID),
		zap.String("contestant_id", event.ContestantID),
		zap.String("source", string(event.Source)))

	return &domain.CastVoteResponse{Accepted: true, VoteID: event.VoteID, Timestamp: event.CreatedAt}, nil
}

// GetBreakdown returns the per-channel vote breakdown for a competition
func (s *VotingService) GetBreakdown(ctx context.Context, competitionID string) (*domain.VoteBreakdown, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, s.redis.KeyBuilder.KeyBreakdown(competitionID)); err == nil && cached != "" {
			var breakdown domain.VoteBreakdown
			if err := json.Unmarshal([]byte(cached), &breakdown); err == nil {
				return &breakdown, nil
			}
		}
	}

	competition, err := s.cacheService.GetCompetitionWithCache(ctx, competitionID, s.competitionRepo.GetByID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}
	if competition == nil {
		return nil, domain.ErrCompetitionNotFound
	}

	online, inPerson, err := s.voteRepo.GetBreakdown(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote breakdown: %w", err)
	}

	breakdown := &domain.VoteBreakdown{
		CompetitionID:    competitionID,
		Online:           online,
		InPerson:         inPerson,
		Total:            online + inPerson,
		OnlineVoteWeight: competition.OnlineVoteWeight,
		LastUpdate:       time.Now().UTC(),
	}

	if s.redis != nil {
		if data, err := json.Marshal(breakdown); err == nil {
			_ = s.redis.Set(ctx, s.redis.KeyBuilder.KeyBreakdown(competitionID), string(data), redis.TTLTally)
		}
	}

	return breakdown, nil
}

// GetLeaderboard returns the ranked, weighted leaderboard for a competition
func (s *VotingService) GetLeaderboard(ctx context.Context, competitionID string) (*domain.Leaderboard, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, s.redis.KeyBuilder.KeyLeaderboard(competitionID)); err == nil && cached != "" {
			var leaderboard domain.Leaderboard
			if err := json.Unmarshal([]byte(cached), &leaderboard); err == nil {
				return &leaderboard, nil
			}
		}
	}

	competition, err := s.cacheService.GetCompetitionWithCache(ctx, competitionID, s.competitionRepo.GetByID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}
	if competition == nil {
		return nil, domain.ErrCompetitionNotFound
	}

	tallies, err := s.voteRepo.GetContestantTallies(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contestant tallies: %w", err)
	}

	leaderboard := buildLeaderboard(competition, tallies, time.Now().UTC())

	if s.redis != nil {
		if data, err := json.Marshal(leaderboard); err == nil {
			_ = s.redis.Set(ctx, s.redis.KeyBuilder.KeyLeaderboard(competitionID), string(data), redis.TTLTally)
		}
	}

	return leaderboard, nil
}
