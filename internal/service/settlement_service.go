package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"talent-be/internal/domain"
	"talent-be/internal/repository"
	"talent-be/pkg/redis"

	"go.uber.org/zap"
)

// SettlementService reconciles money: it credits settled purchases into the
// vote ledger and produces the revenue split between host, platform and tax.
type SettlementService struct {
	purchaseRepo    repository.PurchaseRepository
	voteRepo        repository.VoteRepository
	competitionRepo repository.CompetitionRepository
	contestantRepo  repository.ContestantRepository
	settingsRepo    repository.SettingsRepository
	redis           *redis.Client
	cacheService    *CacheService
	logger          *zap.Logger
}

func NewSettlementService(
	purchaseRepo repository.PurchaseRepository,
	voteRepo repository.VoteRepository,
	competitionRepo repository.CompetitionRepository,
	contestantRepo repository.ContestantRepository,
	settingsRepo repository.SettingsRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		purchaseRepo:    purchaseRepo,
		voteRepo:        voteRepo,
		competitionRepo: competitionRepo,
		contestantRepo:  contestantRepo,
		settingsRepo:    settingsRepo,
		redis:           redisClient,
		cacheService:    NewCacheService(redisClient, logger),
		logger:          logger,
	}
}

// CreditPurchase settles a confirmed payment: it records the purchase and
// credits voteCount+bonusVotes purchased votes atomically. Replays of the
// same transaction ID are absorbed as a success-no-op; payment webhooks
// redeliver and must stay safe to retry.
func (s *SettlementService) CreditPurchase(ctx context.Context, req *domain.SettlePurchaseRequest) (*domain.SettlePurchaseResponse, error) {
	if req.TransactionID == "" {
		return nil, fmt.Errorf("transaction ID is required")
	}
	if req.VoteCount <= 0 {
		return nil, fmt.Errorf("vote count must be positive")
	}
	if req.BonusVotes < 0 {
		return nil, fmt.Errorf("bonus votes cannot be negative")
	}
	if req.AmountCents < 0 {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	competition, err := s.cacheService.GetCompetitionWithCache(ctx, req.CompetitionID, s.competitionRepo.GetByID)
	if err != nil {
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}
	if competition == nil {
		return nil, domain.ErrCompetitionNotFound
	}

	contestant, err := s.contestantRepo.GetByID(ctx, req.ContestantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contestant: %w", err)
	}
	if contestant == nil || contestant.CompetitionID != competition.ID ||
		contestant.ApplicationStatus != domain.ApplicationApproved {
		return nil, domain.ErrInvalidContestant
	}

	purchase := &domain.Purchase{
		TransactionID: req.TransactionID,
		CompetitionID: req.CompetitionID,
		ContestantID:  req.ContestantID,
		VoteCount:     req.VoteCount,
		BonusVotes:    req.BonusVotes,
		AmountCents:   req.AmountCents,
	}

	if err := s.purchaseRepo.Credit(ctx, purchase); err != nil {
		if err == domain.ErrDuplicateTransaction {
			s.logger.Info("Duplicate purchase settlement absorbed",
				zap.String("transaction_id", req.TransactionID),
				zap.String("competition_id", req.CompetitionID))
			return &domain.SettlePurchaseResponse{
				Accepted:       true,
				AlreadySettled: true,
				TransactionID:  req.TransactionID,
			}, nil
		}
		return nil, fmt.Errorf("failed to credit purchase: %w", err)
	}

	s.cacheService.InvalidateTallies(ctx, req.CompetitionID)
	s.cacheService.InvalidateRevenue(ctx, req.CompetitionID)

	s.logger.Info("Purchase settled",
		zap.String("transaction_id", req.TransactionID),
		zap.String("competition_id", req.CompetitionID),
		zap.Int("credited_votes", purchase.CreditedVotes()),
		zap.Int64("amount_cents", purchase.AmountCents))

	return &domain.SettlePurchaseResponse{
		Accepted:      true,
		CreditedVotes: purchase.CreditedVotes(),
		TransactionID: req.TransactionID,
	}, nil
}

// GetRevenueReport builds the reconciled money view for a competition. The
// purchased-vote cross-check between ledger and purchase records must hold;
// a mismatch is surfaced for manual reconciliation, never corrected here.
func (s *SettlementService) GetRevenueReport(ctx context.Context, competitionID string) (*domain.RevenueReport, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, s.redis.KeyBuilder.KeyRevenueReport(competitionID)); err == nil && cached != "" {
			var report domain.RevenueReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return &report, nil
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

	settings, err := s.cacheService.GetSettingsWithCache(ctx, s.settingsRepo.Get)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings snapshot: %w", err)
	}

	var tier *domain.HostingTier
	if competition.TierID != "" {
		tier, err = s.competitionRepo.GetTier(ctx, competition.TierID)
		if err != nil {
			return nil, fmt.Errorf("failed to get hosting tier: %w", err)
		}
	}

	totals, err := s.purchaseRepo.GetTotals(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase totals: %w", err)
	}

	ledgerPurchased, err := s.voteRepo.PurchasedVoteCount(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count purchased votes: %w", err)
	}
	if ledgerPurchased != totals.PurchasedVotes {
		s.logger.Error("Settlement cross-check failed",
			zap.String("competition_id", competitionID),
			zap.Int("ledger_purchased_votes", ledgerPurchased),
			zap.Int("settled_purchased_votes", totals.PurchasedVotes))
		return nil, domain.ErrSettlementMismatch
	}

	online, inPerson, err := s.voteRepo.GetBreakdown(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote breakdown: %w", err)
	}

	split := splitRevenue(totals.GrossRevenueCents, settings.SalesTaxPercent, tier, settings)

	report := &domain.RevenueReport{
		CompetitionID:       competitionID,
		GrossRevenueCents:   totals.GrossRevenueCents,
		TaxCents:            split.TaxCents,
		NetRevenueCents:     split.NetCents,
		HostShareCents:      split.HostShareCents,
		PlatformShareCents:  split.PlatformShareCents,
		SalesTaxPercent:     settings.SalesTaxPercent,
		RevenueSharePercent: split.SharePercent,
		TotalVotes:          online + inPerson,
		TotalPurchasedVotes: totals.PurchasedVotes,
		TotalPurchases:      totals.TotalPurchases,
		LastUpdate:          time.Now().UTC(),
	}

	if s.redis != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = s.redis.Set(ctx, s.redis.KeyBuilder.KeyRevenueReport(competitionID), string(data), redis.TTLRevenue)
		}
	}

	return report, nil
}
