package domain

import (
	"fmt"
	"time"
)

// VoteSource identifies the channel a vote arrived through. It is a closed
// enum; unknown strings are rejected at the boundary.
type VoteSource string

const (
	VoteSourceOnlineFree      VoteSource = "online_free"
	VoteSourceOnlinePurchased VoteSource = "online_purchased"
	VoteSourceInPersonQR      VoteSource = "in_person_qr"
)

// ParseVoteSource validates a raw source string
func ParseVoteSource(s string) (VoteSource, error) {
	switch VoteSource(s) {
	case VoteSourceOnlineFree, VoteSourceOnlinePurchased, VoteSourceInPersonQR:
		return VoteSource(s), nil
	}
	return "", fmt.Errorf("unknown vote source %q", s)
}

// Online reports whether the source counts toward the online channel
func (s VoteSource) Online() bool {
	return s == VoteSourceOnlineFree || s == VoteSourceOnlinePurchased
}

// VoteEvent is an immutable ledger fact. Free and in-person votes carry
// Quantity 1; a settled purchase appends a single event whose Quantity is
// voteCount+bonusVotes, tied back to the purchase via TransactionID.
type VoteEvent struct {
	ID            int64      `json:"id"`
	VoteID        string     `json:"vote_id"`
	CompetitionID string     `json:"competition_id"`
	ContestantID  string     `json:"contestant_id"`
	Source        VoteSource `json:"source"`
	VoterIdentity string     `json:"voter_identity,omitempty"`
	Quantity      int        `json:"quantity"`
	TransactionID string     `json:"transaction_id,omitempty"`
	VoteDay       string     `json:"vote_day"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CastVoteRequest is the vote ingestion payload
type CastVoteRequest struct {
	CompetitionID string `json:"competition_id"`
	ContestantID  string `json:"contestant_id"`
	Source        string `json:"source"`
	VoterIdentity string `json:"voter_identity"`
}

// CastVoteResponse acknowledges a vote. Duplicate is set when a replayed
// free-vote request was absorbed as a no-op.
type CastVoteResponse struct {
	Accepted  bool      `json:"accepted"`
	Duplicate bool      `json:"duplicate,omitempty"`
	VoteID    string    `json:"vote_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// VoteBreakdown is the per-competition channel breakdown
type VoteBreakdown struct {
	CompetitionID    string    `json:"competition_id"`
	Online           int       `json:"online"`
	InPerson         int       `json:"in_person"`
	Total            int       `json:"total"`
	OnlineVoteWeight int       `json:"online_vote_weight"`
	LastUpdate       time.Time `json:"last_update"`
}

// ContestantTally is a contestant's raw per-channel counts as read from the
// ledger, before weighting
type ContestantTally struct {
	ContestantID string    `json:"contestant_id"`
	Name         string    `json:"name"`
	OnlineVotes  int       `json:"online_votes"`
	InPerson     int       `json:"in_person_votes"`
	AppliedAt    time.Time `json:"applied_at"`
}

// LeaderboardEntry is a ranked, weighted contestant result
type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	ContestantID   string  `json:"contestant_id"`
	Name           string  `json:"name"`
	OnlineVotes    int     `json:"online_votes"`
	InPersonVotes  int     `json:"in_person_votes"`
	WeightedVotes  float64 `json:"weighted_votes"`
	VotePercentage float64 `json:"vote_percentage"`
}

// Leaderboard is the full ranked list for a competition
type Leaderboard struct {
	CompetitionID      string             `json:"competition_id"`
	OnlineVoteWeight   int                `json:"online_vote_weight"`
	TotalWeightedVotes float64            `json:"total_weighted_votes"`
	Entries            []LeaderboardEntry `json:"entries"`
	LastUpdate         time.Time          `json:"last_update"`
}
