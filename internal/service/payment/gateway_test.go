package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"talent-be/internal/domain"
	"talent-be/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeSucceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/charges", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tok_visa", req["token"])
		assert.EqualValues(t, 1500, req["amount_cents"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transaction_id": "txn-abc",
			"status":         "succeeded",
			"amount_cents":   1500,
		})
	}))
	defer server.Close()

	gateway := NewGateway(server.URL, "test-key", logger.NewNop())

	result, err := gateway.Charge(context.Background(), "tok_visa", 1500)
	require.NoError(t, err)
	assert.Equal(t, "txn-abc", result.TransactionID)
	assert.Equal(t, int64(1500), result.AmountCents)
}

func TestChargeDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "declined",
			"message": "insufficient funds",
		})
	}))
	defer server.Close()

	gateway := NewGateway(server.URL, "test-key", logger.NewNop())

	_, err := gateway.Charge(context.Background(), "tok_declined", 1500)
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestChargeNonSucceededStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "pending_review",
			"message": "manual review required",
		})
	}))
	defer server.Close()

	gateway := NewGateway(server.URL, "test-key", logger.NewNop())

	_, err := gateway.Charge(context.Background(), "tok_visa", 1500)
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
}

func TestChargeServerUnreachable(t *testing.T) {
	gateway := NewGateway("http://127.0.0.1:1", "test-key", logger.NewNop())

	_, err := gateway.Charge(context.Background(), "tok_visa", 1500)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPaymentDeclined)
}
