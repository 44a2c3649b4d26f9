package domain

import "errors"

// Engine-level sentinel errors. Handlers map these onto the HTTP error
// envelope; services wrap them with context via fmt.Errorf and %w.
var (
	// ErrCompetitionNotFound is returned when a competition does not exist
	ErrCompetitionNotFound = errors.New("competition not found")

	// ErrContestantNotFound is returned when a contestant does not exist
	ErrContestantNotFound = errors.New("contestant not found")

	// ErrSubmissionNotFound is returned when a submission does not exist
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrInvalidContestant is returned when a vote targets a contestant that
	// is not approved in the competition
	ErrInvalidContestant = errors.New("contestant is not approved for this competition")

	// ErrCompetitionClosed is returned when voting is not open for the
	// requested vote source
	ErrCompetitionClosed = errors.New("competition is not open for voting")

	// ErrQuotaExceeded is returned when a voter has used up the daily
	// free-vote allowance for a competition
	ErrQuotaExceeded = errors.New("daily free vote quota exceeded")

	// ErrDuplicateTransaction is returned by the repository when a purchase
	// transaction ID has already been settled. Services treat it as a
	// success-no-op for webhook retry safety.
	ErrDuplicateTransaction = errors.New("transaction already settled")

	// ErrTierLocked is returned when changing a competition's hosting tier
	// after votes have been sold against it
	ErrTierLocked = errors.New("hosting tier is locked once purchases are settled")

	// ErrSettlementMismatch indicates the purchased-vote cross-check between
	// the ledger and the purchase records failed. Requires manual
	// reconciliation, never silent correction.
	ErrSettlementMismatch = errors.New("purchased vote count does not match settled purchases")

	// ErrInvalidTransition is returned for a status change the workflow
	// state machine does not permit
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrPaymentRequired is returned when a fee-bearing submission arrives
	// without a payment token
	ErrPaymentRequired = errors.New("payment token required")

	// ErrPaymentDeclined is returned when the gateway rejects a charge
	ErrPaymentDeclined = errors.New("payment declined")
)
