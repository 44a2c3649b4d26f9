package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Tally key builders

func (kb *KeyBuilder) KeyCompetition(competitionID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyCompetition, competitionID))
}

func (kb *KeyBuilder) KeyBreakdown(competitionID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyBreakdown, competitionID))
}

func (kb *KeyBuilder) KeyLeaderboard(competitionID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyLeaderboard, competitionID))
}

func (kb *KeyBuilder) KeyRevenueReport(competitionID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyRevenueReport, competitionID))
}

// Quota and idempotency key builders

func (kb *KeyBuilder) KeyQuotaUsed(competitionID, voterIdentity, day string) string {
	return kb.BuildKey(fmt.Sprintf(KeyQuotaUsed, competitionID, voterIdentity, day))
}

func (kb *KeyBuilder) KeyVoteReplay(competitionID, voterIdentity, bucket string) string {
	return kb.BuildKey(fmt.Sprintf(KeyVoteReplay, competitionID, voterIdentity, bucket))
}

func (kb *KeyBuilder) KeySettings() string {
	return kb.BuildKey(KeySettings)
}

// KeyCustom builds a key from an arbitrary pattern
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	key := fmt.Sprintf(pattern, args...)
	return kb.BuildKey(key)
}
