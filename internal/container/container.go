package container

import (
	"talent-be/internal/config"
	"talent-be/internal/service"
	"talent-be/internal/service/auth"
	"talent-be/internal/service/payment"
	"talent-be/pkg/logger"
	"talent-be/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Services    *service.Services
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	authService := auth.NewService(cfg.JWTSecret, logger)
	gateway := payment.NewGateway(cfg.PaymentGatewayURL, cfg.PaymentGatewayKey, logger)

	services := &service.Services{
		Auth:    authService,
		Gateway: gateway,
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		RedisClient: redisClient,
		Services:    services,
	}, nil
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

// GetPaymentGateway returns the payment gateway client
func (c *Container) GetPaymentGateway() service.PaymentGateway {
	return c.Services.Gateway
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// GetCacheService returns a cache service instance bound to the container's
// Redis client; the cache degrades to fallbacks when Redis is absent
func (c *Container) GetCacheService() *service.CacheService {
	return service.NewCacheService(c.RedisClient, c.Logger.Logger)
}
