package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"talent-be/internal/domain"
	"talent-be/pkg/logger"
)

// Gateway is an HTTP client for the card-tokenization gateway. The gateway
// holds the card data; this client only ever sends an opaque token and an
// amount.
type Gateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewGateway creates a new payment gateway client
func NewGateway(baseURL, apiKey string, logger *logger.Logger) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type chargeRequest struct {
	Token       string `json:"token"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type chargeResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	AmountCents   int64  `json:"amount_cents"`
	Message       string `json:"message"`
}

// Charge exchanges a payment token for a charge confirmation. Any error,
// including timeout or cancellation, means no money moved and the caller
// must not persist anything.
func (g *Gateway) Charge(ctx context.Context, token string, amountCents int64) (*domain.ChargeResult, error) {
	payload, err := json.Marshal(chargeRequest{
		Token:       token,
		AmountCents: amountCents,
		Currency:    "usd",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode charge request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/charges", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.WithError(err).Error("Charge request failed")
		return nil, fmt.Errorf("charge request failed: %w", err)
	}
	defer resp.Body.Close()

	var body chargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode charge response: %w", err)
	}

	g.logger.WithFields(map[string]interface{}{
		"status_code": resp.StatusCode,
		"status":      body.Status,
		"duration":    time.Since(start).String(),
	}).Debug("Charge response received")

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: %s", domain.ErrPaymentDeclined, body.Message)
	}
	if body.Status != "succeeded" {
		return nil, fmt.Errorf("%w: %s", domain.ErrPaymentDeclined, body.Message)
	}

	return &domain.ChargeResult{
		TransactionID: body.TransactionID,
		AmountCents:   body.AmountCents,
		Message:       body.Message,
	}, nil
}
