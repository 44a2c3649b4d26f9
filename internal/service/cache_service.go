package service

import (
	"context"
	"encoding/json"

	"talent-be/internal/domain"
	"talent-be/pkg/redis"

	"go.uber.org/zap"
)

// CacheService centralizes cache-aside reads and invalidation for the
// tally/settlement read paths. All methods degrade to the fallback when
// Redis is not configured; caching failures never fail the request.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// GetCompetitionWithCache reads a competition through the cache
func (c *CacheService) GetCompetitionWithCache(ctx context.Context, competitionID string,
	fallback func(ctx context.Context, id string) (*domain.Competition, error)) (*domain.Competition, error) {

	if c.redis == nil {
		return fallback(ctx, competitionID)
	}

	key := c.redis.KeyBuilder.KeyCompetition(competitionID)
	if cached, err := c.redis.Get(ctx, key); err == nil && cached != "" {
		var competition domain.Competition
		if err := json.Unmarshal([]byte(cached), &competition); err == nil {
			return &competition, nil
		}
	}

	competition, err := fallback(ctx, competitionID)
	if err != nil || competition == nil {
		return competition, err
	}

	if data, err := json.Marshal(competition); err == nil {
		if err := c.redis.Set(ctx, key, string(data), redis.TTLCompetition); err != nil {
			c.logger.Warn("Failed to cache competition",
				zap.String("competition_id", competitionID),
				zap.Error(err))
		}
	}

	return competition, nil
}

// GetSettingsWithCache reads the platform settings snapshot through the
// cache. Callers treat the returned snapshot as immutable for the duration
// of their calculation.
func (c *CacheService) GetSettingsWithCache(ctx context.Context,
	fallback func(ctx context.Context) (*domain.Settings, error)) (*domain.Settings, error) {

	if c.redis == nil {
		return fallback(ctx)
	}

	key := c.redis.KeyBuilder.KeySettings()
	if cached, err := c.redis.Get(ctx, key); err == nil && cached != "" {
		var settings domain.Settings
		if err := json.Unmarshal([]byte(cached), &settings); err == nil {
			return &settings, nil
		}
	}

	settings, err := fallback(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(settings); err == nil {
		if err := c.redis.Set(ctx, key, string(data), redis.TTLSettings); err != nil {
			c.logger.Warn("Failed to cache settings", zap.Error(err))
		}
	}

	return settings, nil
}

// InvalidateCompetition drops a competition's cached snapshot
func (c *CacheService) InvalidateCompetition(ctx context.Context, competitionID string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyCompetition(competitionID)); err != nil {
		c.logger.Warn("Failed to invalidate competition cache",
			zap.String("competition_id", competitionID),
			zap.Error(err))
	}
}

// InvalidateTallies drops the breakdown and leaderboard caches after a write
// to the vote ledger
func (c *CacheService) InvalidateTallies(ctx context.Context, competitionID string) {
	if c.redis == nil {
		return
	}
	err := c.redis.Delete(ctx,
		c.redis.KeyBuilder.KeyBreakdown(competitionID),
		c.redis.KeyBuilder.KeyLeaderboard(competitionID),
	)
	if err != nil {
		c.logger.Warn("Failed to invalidate tally caches",
			zap.String("competition_id", competitionID),
			zap.Error(err))
	}
}

// InvalidateRevenue drops the revenue report cache after a settlement
func (c *CacheService) InvalidateRevenue(ctx context.Context, competitionID string) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyRevenueReport(competitionID)); err != nil {
		c.logger.Warn("Failed to invalidate revenue cache",
			zap.String("competition_id", competitionID),
			zap.Error(err))
	}
}

// InvalidateSettings drops the settings snapshot cache after an admin edit
func (c *CacheService) InvalidateSettings(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeySettings()); err != nil {
		c.logger.Warn("Failed to invalidate settings cache", zap.Error(err))
	}
}
