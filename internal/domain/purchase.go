package domain

import "time"

// Purchase is a settled vote-purchase transaction. AmountCents is the gross
// amount charged; VoteCount+BonusVotes online-purchased votes were credited
// atomically with this record.
type Purchase struct {
	ID            int64     `json:"id"`
	TransactionID string    `json:"transaction_id"`
	CompetitionID string    `json:"competition_id"`
	ContestantID  string    `json:"contestant_id"`
	VoteCount     int       `json:"vote_count"`
	BonusVotes    int       `json:"bonus_votes"`
	AmountCents   int64     `json:"amount_cents"`
	PurchasedAt   time.Time `json:"purchased_at"`
}

// CreditedVotes is the number of ledger votes the purchase carries
func (p *Purchase) CreditedVotes() int {
	return p.VoteCount + p.BonusVotes
}

// SettlePurchaseRequest is the payment-callback settlement payload.
// Idempotent on TransactionID.
type SettlePurchaseRequest struct {
	TransactionID string `json:"transaction_id"`
	CompetitionID string `json:"competition_id"`
	ContestantID  string `json:"contestant_id"`
	VoteCount     int    `json:"vote_count"`
	BonusVotes    int    `json:"bonus_votes"`
	AmountCents   int64  `json:"amount_cents"`
}

// SettlePurchaseResponse acknowledges a settlement. AlreadySettled is set
// when the transaction had been credited before; the retry is absorbed.
type SettlePurchaseResponse struct {
	Accepted       bool   `json:"accepted"`
	AlreadySettled bool   `json:"already_settled,omitempty"`
	CreditedVotes  int    `json:"credited_votes"`
	TransactionID  string `json:"transaction_id"`
}

// PurchaseTotals are the aggregate purchase figures for a competition
type PurchaseTotals struct {
	GrossRevenueCents int64 `json:"gross_revenue_cents"`
	TotalPurchases    int   `json:"total_purchases"`
	PurchasedVotes    int   `json:"purchased_votes"`
}

// RevenueReport is the reconciled money view of a competition. The identity
// GrossRevenueCents == TaxCents + HostShareCents + PlatformShareCents holds
// exactly, in cents.
type RevenueReport struct {
	CompetitionID       string    `json:"competition_id"`
	GrossRevenueCents   int64     `json:"total_revenue_cents"`
	TaxCents            int64     `json:"tax_cents"`
	NetRevenueCents     int64     `json:"net_revenue_cents"`
	HostShareCents      int64     `json:"host_share_cents"`
	PlatformShareCents  int64     `json:"platform_share_cents"`
	SalesTaxPercent     int       `json:"sales_tax_percent"`
	RevenueSharePercent int       `json:"revenue_share_percent"`
	TotalVotes          int       `json:"total_votes"`
	TotalPurchasedVotes int       `json:"total_purchased_votes"`
	TotalPurchases      int       `json:"total_purchases"`
	LastUpdate          time.Time `json:"last_update"`
}
