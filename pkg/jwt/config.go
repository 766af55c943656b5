package jwt

import (
	"time"
)

// TokenConfig holds the configuration for JWT tokens
type TokenConfig struct {
	AccessTokenSecret string        `mapstructure:"access_token_secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_token_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// Options converts the config into client options, skipping zero values
func (config TokenConfig) Options() []Option {
	opts := []Option{
		WithAccessTokenSecret(config.AccessTokenSecret),
	}
	if config.AccessTokenExpiry > 0 {
		opts = append(opts, WithAccessTokenExpiry(config.AccessTokenExpiry))
	}
	if config.Issuer != "" {
		opts = append(opts, WithIssuer(config.Issuer))
	}
	return opts
}

// NewWithConfig creates a new JWT client from a config struct
func NewWithConfig(config TokenConfig) (JWTClient, error) {
	return New(config.Options()...)
}
