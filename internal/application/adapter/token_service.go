// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the claims contained in an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	ExpiresAt time.Time
}

// TokenService defines the interface for access token validation.
// Tokens are issued by the identity service; this service only verifies them.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
