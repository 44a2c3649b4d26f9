package domain

import (
	"fmt"
	"time"
)

// SubmissionKind distinguishes the intake forms
type SubmissionKind string

const (
	SubmissionJoin       SubmissionKind = "join"
	SubmissionHost       SubmissionKind = "host"
	SubmissionNomination SubmissionKind = "nomination"
)

// NominationStatus tracks the nominee's outcome, independent of the
// admin-controlled approval status
type NominationStatus string

const (
	NominationPending       NominationStatus = "pending"
	NominationJoined        NominationStatus = "joined"
	NominationUnsure        NominationStatus = "unsure"
	NominationNotInterested NominationStatus = "not_interested"
)

// ParseNominationStatus validates a raw nomination status string
func ParseNominationStatus(s string) (NominationStatus, error) {
	switch NominationStatus(s) {
	case NominationPending, NominationJoined, NominationUnsure, NominationNotInterested:
		return NominationStatus(s), nil
	}
	return "", fmt.Errorf("unknown nomination status %q", s)
}

// Submission is a join/host intake record. Nominations additionally carry a
// nominator identity and an outcome status. A submission exists only after
// any required fee has been charged successfully.
type Submission struct {
	ID               string            `json:"id"`
	Kind             SubmissionKind    `json:"kind"`
	CompetitionID    string            `json:"competition_id,omitempty"`
	FullName         string            `json:"full_name"`
	Email            string            `json:"email"`
	Status           ApplicationStatus `json:"status"`
	NominationStatus NominationStatus  `json:"nomination_status,omitempty"`
	NominatorName    string            `json:"nominator_name,omitempty"`
	NominatorEmail   string            `json:"nominator_email,omitempty"`
	NonProfit        bool              `json:"non_profit"`
	AmountPaidCents  int64             `json:"amount_paid_cents"`
	TransactionID    string            `json:"transaction_id,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// JoinApplicationRequest is the join/host intake payload. PaymentToken is
// required when the platform charges an entry fee.
type JoinApplicationRequest struct {
	Kind          string `json:"kind"`
	CompetitionID string `json:"competition_id,omitempty"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	NonProfit     bool   `json:"non_profit"`
	PaymentToken  string `json:"payment_token,omitempty"`
}

// NominationRequest proposes someone else as a contestant
type NominationRequest struct {
	CompetitionID  string `json:"competition_id"`
	NomineeName    string `json:"nominee_name"`
	NomineeEmail   string `json:"nominee_email"`
	NominatorName  string `json:"nominator_name"`
	NominatorEmail string `json:"nominator_email"`
	NonProfit      bool   `json:"non_profit"`
	PaymentToken   string `json:"payment_token,omitempty"`
}

// SubmissionResponse acknowledges a persisted submission
type SubmissionResponse struct {
	SubmissionID    string    `json:"submission_id"`
	Status          string    `json:"status"`
	AmountPaidCents int64     `json:"amount_paid_cents"`
	TransactionID   string    `json:"transaction_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// UpdateSubmissionStatusRequest changes the approval status
type UpdateSubmissionStatusRequest struct {
	Status string `json:"status"`
}

// UpdateNominationOutcomeRequest changes the nomination outcome
type UpdateNominationOutcomeRequest struct {
	Outcome string `json:"outcome"`
}
