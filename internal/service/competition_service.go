package service

import (
	"context"
	"fmt"

	"talent-be/internal/domain"
	"talent-be/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompetitionService owns competition lifecycle, contestant management and
// the platform settings surface.
type CompetitionService struct {
	competitionRepo repository.CompetitionRepository
	contestantRepo  repository.ContestantRepository
	settingsRepo    repository.SettingsRepository
	cacheService    *CacheService
	logger          *zap.Logger
}

func NewCompetitionService(
	competitionRepo repository.CompetitionRepository,
	contestantRepo repository.ContestantRepository,
	settingsRepo repository.SettingsRepository,
	cacheService *CacheService,
	logger *zap.Logger,
) *CompetitionService {
	return &CompetitionService{
		competitionRepo: competitionRepo,
		contestantRepo:  contestantRepo,
		settingsRepo:    settingsRepo,
		cacheService:    cacheService,
		logger:          logger,
	}
}

// Create registers a new competition in draft status, owned by the caller
func (s *CompetitionService) Create(ctx context.Context, claims *domain.AuthClaims, req *domain.CreateCompetitionRequest) (*domain.Competition, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("competition name is required")
	}
	weight := req.OnlineVoteWeight
	if weight == 0 {
		weight = 100
	}
	if weight < 1 || weight > 100 {
		return nil, fmt.Errorf("online vote weight must be between 1 and 100")
	}
	if req.MaxVotesPerDay < 0 {
		return nil, fmt.Errorf("max votes per day cannot be negative")
	}
	if req.TierID != "" {
		tier, err := s.competitionRepo.GetTier(ctx, req.TierID)
		if err != nil {
			return nil, fmt.Errorf("failed to get hosting tier: %w", err)
		}
		if tier == nil {
			return nil, fmt.Errorf("hosting tier %s does not exist", req.TierID)
		}
	}

	competition := &domain.Competition{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Category:            req.Category,
		Status:              domain.CompetitionDraft,
		OwnerID:             claims.Subject,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		MaxVotesPerDay:      req.MaxVotesPerDay,
		OnlineVoteWeight:    weight,
		InPersonOnly:        req.InPersonOnly,
		ExpectedContestants: req.ExpectedContestants,
		TierID:              req.TierID,
	}

	if err := s.competitionRepo.Create(ctx, competition); err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}

	s.logger.Info("Competition created",
		zap.String("competition_id", competition.ID),
		zap.String("owner_id", competition.OwnerID))
	return competition, nil
}

// Get retrieves a competition through the cache
func (s *CompetitionService) Get(ctx context.Context, id string) (*domain.Competition, error) {
	competition, err := s.cacheService.GetCompetitionWithCache(ctx, id, s.competitionRepo.GetByID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}
	if competition == nil {
		return nil, domain.ErrCompetitionNotFound
	}
	return competition, nil
}

// UpdateStatus moves a competition through its lifecycle
func (s *CompetitionService) UpdateStatus(ctx context.Context, id string, req *domain.UpdateCompetitionStatusRequest) error {
	status, err := domain.ParseCompetitionStatus(req.Status)
	if err != nil {
		return err
	}

	if err := s.competitionRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.cacheService.InvalidateCompetition(ctx, id)
	s.logger.Info("Competition status updated",
		zap.String("competition_id", id),
		zap.String("status", string(status)))
	return nil
}

// UpdateTier rebinds the hosting tier. Fails with ErrTierLocked once any
// purchase has been settled against the competition.
func (s *CompetitionService) UpdateTier(ctx context.Context, id, tierID string) error {
	tier, err := s.competitionRepo.GetTier(ctx, tierID)
	if err != nil {
		return fmt.Errorf("failed to get hosting tier: %w", err)
	}
	if tier == nil {
		return fmt.Errorf("hosting tier %s does not exist", tierID)
	}

	if err := s.competitionRepo.UpdateTier(ctx, id, tierID); err != nil {
		return err
	}

	s.cacheService.InvalidateCompetition(ctx, id)
	s.cacheService.InvalidateRevenue(ctx, id)
	s.logger.Info("Competition tier updated",
		zap.String("competition_id", id),
		zap.String("tier_id", tierID))
	return nil
}

// Delete removes a competition and everything hanging off it
func (s *CompetitionService) Delete(ctx context.Context, id string) error {
	if err := s.competitionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cacheService.InvalidateCompetition(ctx, id)
	s.cacheService.InvalidateTallies(ctx, id)
	s.cacheService.InvalidateRevenue(ctx, id)
	s.logger.Info("Competition deleted", zap.String("competition_id", id))
	return nil
}

// AddContestant assigns an approved talent profile to a competition
func (s *CompetitionService) AddContestant(ctx context.Context, req *domain.AddContestantRequest) (*domain.Contestant, error) {
	if req.TalentProfileID == "" || req.Name == "" {
		return nil, fmt.Errorf("talent profile ID and name are required")
	}
	if _, err := s.Get(ctx, req.CompetitionID); err != nil {
		return nil, err
	}

	contestant := &domain.Contestant{
		ID:                uuid.NewString(),
		CompetitionID:     req.CompetitionID,
		TalentProfileID:   req.TalentProfileID,
		Name:              req.Name,
		ApplicationStatus: domain.ApplicationPending,
	}

	if err := s.contestantRepo.Create(ctx, contestant); err != nil {
		return nil, fmt.Errorf("failed to create contestant: %w", err)
	}

	s.logger.Info("Contestant added",
		zap.String("contestant_id", contestant.ID),
		zap.String("competition_id", req.CompetitionID))
	return contestant, nil
}

// ListContestants lists a competition's contestants
func (s *CompetitionService) ListContestants(ctx context.Context, competitionID string) ([]domain.Contestant, error) {
	if _, err := s.Get(ctx, competitionID); err != nil {
		return nil, err
	}
	contestants, err := s.contestantRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contestants: %w", err)
	}
	return contestants, nil
}

// UpdateContestantStatus changes a contestant's approval state. Rejecting a
// contestant hides them from tallies without touching the ledger.
func (s *CompetitionService) UpdateContestantStatus(ctx context.Context, id string, req *domain.UpdateContestantStatusRequest) error {
	status, err := domain.ParseApplicationStatus(req.Status)
	if err != nil {
		return err
	}

	contestant, err := s.contestantRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get contestant: %w", err)
	}
	if contestant == nil {
		return domain.ErrContestantNotFound
	}

	if err := s.contestantRepo.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update contestant status: %w", err)
	}

	s.cacheService.InvalidateTallies(ctx, contestant.CompetitionID)
	s.logger.Info("Contestant status updated",
		zap.String("contestant_id", id),
		zap.String("status", string(status)))
	return nil
}

// GetSettings returns the platform settings snapshot
func (s *CompetitionService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.cacheService.GetSettingsWithCache(ctx, s.settingsRepo.Get)
}

// UpdateSettings applies a partial settings change. Calculations already in
// flight keep their snapshot; the next request sees the new values.
func (s *CompetitionService) UpdateSettings(ctx context.Context, req *domain.UpdateSettingsRequest) (*domain.Settings, error) {
	if req.SalesTaxPercent != nil && (*req.SalesTaxPercent < 0 || *req.SalesTaxPercent > 100) {
		return nil, fmt.Errorf("sales tax percent must be between 0 and 100")
	}
	if req.PlatformFeePercent != nil && (*req.PlatformFeePercent < 0 || *req.PlatformFeePercent > 100) {
		return nil, fmt.Errorf("platform fee percent must be between 0 and 100")
	}
	if req.FreeVotesPerDay != nil && *req.FreeVotesPerDay < 0 {
		return nil, fmt.Errorf("free votes per day cannot be negative")
	}

	settings, err := s.settingsRepo.Update(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.cacheService.InvalidateSettings(ctx)
	s.logger.Info("Platform settings updated")
	return settings, nil
}
