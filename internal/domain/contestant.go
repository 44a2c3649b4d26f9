package domain

import (
	"fmt"
	"time"
)

// ApplicationStatus is the admin-controlled approval state of a contestant
// entry or a join/host submission
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// ParseApplicationStatus validates a raw status string
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return ApplicationStatus(s), nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// Contestant is an entry in exactly one competition. Only approved
// contestants may accumulate votes. AppliedAt is the leaderboard tiebreak.
type Contestant struct {
	ID                string            `json:"id"`
	CompetitionID     string            `json:"competition_id"`
	TalentProfileID   string            `json:"talent_profile_id"`
	Name              string            `json:"name"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
	AppliedAt         time.Time         `json:"applied_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// AddContestantRequest is the admin contestant assignment payload
type AddContestantRequest struct {
	CompetitionID   string `json:"competition_id"`
	TalentProfileID string `json:"talent_profile_id"`
	Name            string `json:"name"`
}

// UpdateContestantStatusRequest changes a contestant's approval state
type UpdateContestantStatusRequest struct {
	Status string `json:"status"`
}
