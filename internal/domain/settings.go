package domain

import "time"

// VotePackage is a purchasable bundle offered to voters
type VotePackage struct {
	Votes      int   `json:"votes"`
	BonusVotes int   `json:"bonus_votes"`
	PriceCents int64 `json:"price_cents"`
}

// Settings is the admin-editable platform configuration. Calculations
// receive an immutable snapshot loaded once per request so a concurrent
// settings edit can never produce a torn read mid-calculation.
type Settings struct {
	SalesTaxPercent    int           `json:"sales_tax_percent"`
	FreeVotesPerDay    int           `json:"free_votes_per_day"`
	VotePriceCents     int64         `json:"vote_price_cents"`
	PlatformFeePercent int           `json:"platform_fee_percent"`
	NominationFeeCents int64         `json:"nomination_fee_cents"`
	EntryFeeCents      int64         `json:"entry_fee_cents"`
	VotePackages       []VotePackage `json:"vote_packages"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// UpdateSettingsRequest is the admin settings payload
type UpdateSettingsRequest struct {
	SalesTaxPercent    *int          `json:"sales_tax_percent,omitempty"`
	FreeVotesPerDay    *int          `json:"free_votes_per_day,omitempty"`
	VotePriceCents     *int64        `json:"vote_price_cents,omitempty"`
	PlatformFeePercent *int          `json:"platform_fee_percent,omitempty"`
	NominationFeeCents *int64        `json:"nomination_fee_cents,omitempty"`
	EntryFeeCents      *int64        `json:"entry_fee_cents,omitempty"`
	VotePackages       []VotePackage `json:"vote_packages,omitempty"`
}
