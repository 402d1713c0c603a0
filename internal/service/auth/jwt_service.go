package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
//
// Tokens are stateless: validity is determined solely by signature and
// expiry. There is no revocation or refresh mechanism; a token remains
// valid for its full lifetime once issued. That is an accepted tradeoff
// for this service, not an oversight.
type JWTService interface {
	// GenerateToken creates a signed JWT access token carrying the user's
	// identity claims (ID, email, display name, role).
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified payload of an identity token.
// It is an immutable value produced by ValidateToken; handlers pass it
// down the call chain and never mutate it.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Email is the user's email address at issuance time.
	Email string `json:"email,omitempty"`

	// FullName is the user's display name at issuance time.
	FullName string `json:"name,omitempty"`

	// Role is the user's authorization level at issuance time.
	Role domain.Role `json:"role,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}
