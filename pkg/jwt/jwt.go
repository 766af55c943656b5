package jwt

import (
	"context"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims of a gateway API token
type TokenClaims struct {
	ClientID  string   `json:"client_id"`
	Scopes    []string `json:"scopes,omitempty"`
	TokenType string   `json:"token_type"`
	jwt.RegisteredClaims
}

// HasScope reports whether the token grants scope.
func (c *TokenClaims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// RevocationStore remembers revoked token ids until the tokens expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
