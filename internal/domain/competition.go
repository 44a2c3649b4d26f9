package domain

import (
	"fmt"
	"time"
)

// CompetitionStatus is the competition lifecycle state
type CompetitionStatus string

const (
	CompetitionDraft     CompetitionStatus = "draft"
	CompetitionActive    CompetitionStatus = "active"
	CompetitionCompleted CompetitionStatus = "completed"
)

// ParseCompetitionStatus validates a raw status string
func ParseCompetitionStatus(s string) (CompetitionStatus, error) {
	switch CompetitionStatus(s) {
	case CompetitionDraft, CompetitionActive, CompetitionCompleted:
		return CompetitionStatus(s), nil
	}
	return "", fmt.Errorf("unknown competition status %q", s)
}

// Competition is a single talent competition. StartDate/EndDate are nil
// while "to be determined". OnlineVoteWeight scales the online channel's
// contribution to ranking, never the number of votes that can be logged.
type Competition struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Category            string            `json:"category"`
	Status              CompetitionStatus `json:"status"`
	OwnerID             string            `json:"owner_id"`
	StartDate           *time.Time        `json:"start_date,omitempty"`
	EndDate             *time.Time        `json:"end_date,omitempty"`
	MaxVotesPerDay      int               `json:"max_votes_per_day"` // 0 = use platform default
	OnlineVoteWeight    int               `json:"online_vote_weight"`
	InPersonOnly        bool              `json:"in_person_only"`
	ExpectedContestants int               `json:"expected_contestants"`
	TierID              string            `json:"tier_id,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// FreeVoteCap resolves the daily free-vote cap against the platform default
func (c *Competition) FreeVoteCap(settings *Settings) int {
	if c.MaxVotesPerDay > 0 {
		return c.MaxVotesPerDay
	}
	return settings.FreeVotesPerDay
}

// HostingTier is the pricing/revenue-share contract a competition is bound
// to. Immutable once votes have been sold against it.
type HostingTier struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	PriceCents          int64  `json:"price_cents"`
	MaxContestants      int    `json:"max_contestants"`
	RevenueSharePercent int    `json:"revenue_share_percent"`
}

// CreateCompetitionRequest is the admin/host competition creation payload
type CreateCompetitionRequest struct {
	Name                string     `json:"name"`
	Category            string     `json:"category"`
	StartDate           *time.Time `json:"start_date,omitempty"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	MaxVotesPerDay      int        `json:"max_votes_per_day"`
	OnlineVoteWeight    int        `json:"online_vote_weight"`
	InPersonOnly        bool       `json:"in_person_only"`
	ExpectedContestants int        `json:"expected_contestants"`
	TierID              string     `json:"tier_id,omitempty"`
}

// UpdateCompetitionStatusRequest changes the lifecycle status
type UpdateCompetitionStatusRequest struct {
	Status string `json:"status"`
}
