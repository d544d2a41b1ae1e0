package config

import (
	"fmt"
)

// DefaultJWTExpirationHours is the lifetime of tokens minted by JWTService.GenerateToken
const DefaultJWTExpirationHours = 24

// JWTConfig holds configuration for validating identity-provider tokens.
type JWTConfig struct {
	Secret          string
	Issuer          string
	ExpirationHours int
}

// JWT returns the token configuration, or nil when publish auth is disabled.
func (c *Config) JWT() (*JWTConfig, error) {
	if c.AuthJWTSecret == "" {
		return nil, nil
	}
	return NewJWTConfig(c.AuthJWTSecret, c.AuthJWTIssuer, DefaultJWTExpirationHours)
}

// NewJWTConfig creates and validates a JWT configuration.
func NewJWTConfig(secret, issuer string, expirationHours int) (*JWTConfig, error) {
	config := &JWTConfig{
		Secret:          secret,
		Issuer:          issuer,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET cannot be empty")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT expiration must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
