package auth

import (
	"context"
	"fmt"

	"talent-be/internal/domain"
	"talent-be/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// Service validates HS256 bearer tokens for the admin/host surface
type Service struct {
	secret []byte
	logger *logger.Logger
}

// NewService creates a new auth service
func NewService(jwtSecret string, logger *logger.Logger) *Service {
	return &Service{
		secret: []byte(jwtSecret),
		logger: logger,
	}
}

// ValidateToken validates a JWT and returns the caller's claims
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*domain.AuthClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}

	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)
	if role != domain.RoleAdmin && role != domain.RoleHost {
		return nil, fmt.Errorf("unknown role %q", roleStr)
	}

	email, _ := claims["email"].(string)

	s.logger.WithFields(map[string]interface{}{
		"subject": sub,
		"role":    roleStr,
	}).Debug("Token validated")

	return &domain.AuthClaims{
		Subject: sub,
		Email:   email,
		Role:    role,
	}, nil
}
