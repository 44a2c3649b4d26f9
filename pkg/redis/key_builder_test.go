package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyBuilderPrefix(t *testing.T) {
	tests := []struct {
		environment string
		wantPrefix  string
	}{
		{environment: "production", wantPrefix: "prod"},
		{environment: "development", wantPrefix: "staging"},
		{environment: "staging", wantPrefix: "staging"},
		{environment: "test", wantPrefix: "staging"},
		{environment: "", wantPrefix: "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.wantPrefix, kb.GetPrefix())
		})
	}
}

func TestKeyBuilderKeys(t *testing.T) {
	kb := NewKeyBuilder("production")

	assert.Equal(t, "prod:tally:competition:comp-1", kb.KeyCompetition("comp-1"))
	assert.Equal(t, "prod:tally:breakdown:comp-1", kb.KeyBreakdown("comp-1"))
	assert.Equal(t, "prod:tally:leaderboard:comp-1", kb.KeyLeaderboard("comp-1"))
	assert.Equal(t, "prod:settle:revenue:comp-1", kb.KeyRevenueReport("comp-1"))
	assert.Equal(t, "prod:quota:comp-1:voter@example.com:2026-09-01", kb.KeyQuotaUsed("comp-1", "voter@example.com", "2026-09-01"))
	assert.Equal(t, "prod:idem:vote:comp-1:voter@example.com:202609011200", kb.KeyVoteReplay("comp-1", "voter@example.com", "202609011200"))
	assert.Equal(t, "prod:settings:platform", kb.KeySettings())
}

func TestKeyCustom(t *testing.T) {
	kb := NewKeyBuilder("test")
	assert.Equal(t, "staging:custom:a:1", kb.KeyCustom("custom:%s:%d", "a", 1))
}
