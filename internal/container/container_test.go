package container

import (
	"testing"

	"talent-be/internal/config"
	"talent-be/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectRedis bool
	}{
		{
			name: "Container without Redis configured",
			config: &config.Config{
				Environment: "test",
				RedisURL:    "",
				JWTSecret:   "test-secret",
			},
			expectRedis: false,
		},
		{
			name: "Container with invalid Redis URL",
			config: &config.Config{
				Environment: "test",
				RedisURL:    "invalid://redis-url",
				JWTSecret:   "test-secret",
			},
			// Redis initialization fails but container creation succeeds
			expectRedis: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config, logger.NewNop())
			require.NoError(t, err)
			require.NotNil(t, c)

			assert.Equal(t, tt.expectRedis, c.HasRedis())
			assert.NotNil(t, c.GetAuthService())
			assert.NotNil(t, c.GetPaymentGateway())
			assert.NotNil(t, c.GetCacheService())
			assert.Equal(t, tt.config, c.GetConfig())
		})
	}
}
