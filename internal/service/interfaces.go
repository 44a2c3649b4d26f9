package service

import (
	"context"

	"talent-be/internal/domain"
)

// AuthService defines the interface for admin/host authentication
type AuthService interface {
	// ValidateToken validates a bearer token and returns auth claims
	ValidateToken(ctx context.Context, token string) (*domain.AuthClaims, error)
}

// PaymentGateway is the external card-tokenization collaborator. The engine
// exchanges a previously obtained token plus an amount for a charge
// confirmation; a returned error means nothing was charged and nothing may
// be persisted.
type PaymentGateway interface {
	// Charge settles a payment token for the given amount
	Charge(ctx context.Context, token string, amountCents int64) (*domain.ChargeResult, error)
}

// Services aggregates the externally provided service interfaces
type Services struct {
	Auth    AuthService
	Gateway PaymentGateway
}
