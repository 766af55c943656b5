package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const (
	// Token types
	TokenTypeAccess = "access"

	// Issuer
	DefaultIssuer = "afterbuy-service"

	DefaultAccessTokenExpiry = time.Hour
)

var (
	ErrAccessTokenSecretRequired = errors.New("access token secret is required")
	ErrInvalidToken              = errors.New("invalid token")
	ErrInvalidTokenType          = errors.New("invalid token type")
	ErrTokenRevoked              = errors.New("token has been revoked")
	ErrNoStoreConfigured         = errors.New("no revocation store configured")
)

// JWTClient defines the interface for JWT token operations
type JWTClient interface {
	GenerateAccessToken(clientID string, scopes ...string) (string, error)
	ValidateAccessToken(ctx context.Context, tokenString string) (*TokenClaims, error)
	RevokeToken(ctx context.Context, tokenString string) error
	GetTokenExpiration(tokenString string) (time.Time, error)
	GetAccessTokenExpiry() time.Duration
	GetConfig() TokenConfig
}

// Client represents a JWT client that handles token operations
type Client struct {
	config TokenConfig
	store  RevocationStore
	now    func() time.Time
}

// New creates a new JWT client with the provided options
func New(opts ...Option) (JWTClient, error) {
	config := TokenConfig{
		AccessTokenExpiry: DefaultAccessTokenExpiry,
		Issuer:            DefaultIssuer,
	}

	for _, opt := range opts {
		opt(&config)
	}

	if config.AccessTokenSecret == "" {
		return nil, ErrAccessTokenSecretRequired
	}

	return &Client{
		config: config,
		now:    time.Now,
	}, nil
}

// NewWithRevocation creates a client that checks and records revoked tokens in store
func NewWithRevocation(store RevocationStore, opts ...Option) (JWTClient, error) {
	client, err := New(opts...)
	if err != nil {
		return nil, err
	}

	c := client.(*Client)
	c.store = store
	return client, nil
}

// GenerateAccessToken issues a signed token for an API client
func (c *Client) GenerateAccessToken(clientID string, scopes ...string) (string, error) {
	now := c.now()
	claims := TokenClaims{
		ClientID:  clientID,
		Scopes:    scopes,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    c.config.Issuer,
			ID:        ulid.Make().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.config.AccessTokenSecret))
}

// ValidateAccessToken checks signature, expiry, issuer, type and revocation
func (c *Client) ValidateAccessToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims, err := c.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if c.store != nil && claims.ID != "" {
		revoked, err := c.store.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// RevokeToken marks a valid token as revoked until it expires
func (c *Client) RevokeToken(ctx context.Context, tokenString string) error {
	if c.store == nil {
		return ErrNoStoreConfigured
	}

	claims, err := c.parse(tokenString)
	if err != nil {
		return err
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return fmt.Errorf("%w: token has no id or expiry", ErrInvalidToken)
	}

	return c.store.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (c *Client) parse(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(c.config.AccessTokenSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.config.Issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

// GetTokenExpiration returns the expiry of a token signed by this client,
// even when it has already expired
func (c *Client) GetTokenExpiration(tokenString string) (time.Time, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(c.config.AccessTokenSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("token has no expiration")
	}
	return claims.ExpiresAt.Time, nil
}

// GetAccessTokenExpiry returns the lifetime of issued tokens
func (c *Client) GetAccessTokenExpiry() time.Duration {
	return c.config.AccessTokenExpiry
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() TokenConfig {
	return c.config
}
