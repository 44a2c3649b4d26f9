package domain

// ChargeResult is the gateway's confirmation for a settled charge. The
// engine never sees card data; the token is opaque and single-use.
type ChargeResult struct {
	TransactionID string `json:"transaction_id"`
	AmountCents   int64  `json:"amount_cents"`
	Message       string `json:"message,omitempty"`
}
