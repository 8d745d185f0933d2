package jwtclaims

import (
	"crypto/rsa"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultCookieName is the cookie the web client keeps its access token in
const DefaultCookieName = "token"

// algorithmValidator holds signing key and method for a specific algorithm
type algorithmValidator struct {
	signingKey    interface{}       // []byte for HS256, *rsa.PublicKey for RS256
	signingMethod jwt.SigningMethod // jwt.SigningMethodHS256 or jwt.SigningMethodRS256
}

// Config holds immutable settings shared by Codec and Verifier
type Config struct {
	validators       map[string]algorithmValidator
	clockSkewLeeway  time.Duration
	permissiveExpiry bool
	cookieName       string
	requiredClaims   []string
	logger           *slog.Logger
	now              func() time.Time
}

// ConfigOption is a functional option for Config
type ConfigOption func(*Config) error

// NewConfig creates a new immutable configuration with the given options.
// The zero-option config is what the decode helpers use: strict expiry, no skew,
// diagnostics to slog.Default().
func NewConfig(opts ...ConfigOption) (*Config, error) {
	cfg := &Config{
		validators: make(map[string]algorithmValidator),
		cookieName: DefaultCookieName,
		logger:     slog.Default(),
		now:        time.Now,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, NewTokenError(ErrConfigError, "configuration error", err)
		}
	}

	for alg, validator := range cfg.validators {
		if alg == "none" || alg == "None" || alg == "NONE" {
			return nil, NewTokenError(ErrConfigError, "none algorithm is prohibited", nil)
		}
		if validator.signingKey == nil || validator.signingMethod == nil {
			return nil, NewTokenError(ErrConfigError, fmt.Sprintf("validator for %s is incomplete", alg), nil)
		}
	}

	return cfg, nil
}

// WithHS256 configures HMAC-SHA256 verification with the given secret
func WithHS256(secret []byte) ConfigOption {
	return func(c *Config) error {
		if len(secret) < 32 {
			return fmt.Errorf("HS256 secret must be at least 32 bytes (256 bits), got %d bytes", len(secret))
		}
		c.validators["HS256"] = algorithmValidator{
			signingKey:    secret,
			signingMethod: jwt.SigningMethodHS256,
		}
		return nil
	}
}

// WithRS256 configures RSA-SHA256 verification with the given public key
func WithRS256(publicKey *rsa.PublicKey) ConfigOption {
	return func(c *Config) error {
		if publicKey == nil {
			return fmt.Errorf("RS256 public key cannot be nil")
		}
		c.validators["RS256"] = algorithmValidator{
			signingKey:    publicKey,
			signingMethod: jwt.SigningMethodRS256,
		}
		return nil
	}
}

// WithRS256PEM is WithRS256 for a PEM-encoded public key
func WithRS256PEM(pemBytes []byte) ConfigOption {
	return func(c *Config) error {
		key, err := ParseRSAPublicKeyFromPEM(pemBytes)
		if err != nil {
			return err
		}
		return WithRS256(key)(c)
	}
}

// WithClockSkew sets the tolerance added to exp before it is compared with now
func WithClockSkew(skew time.Duration) ConfigOption {
	return func(c *Config) error {
		if skew < 0 {
			return fmt.Errorf("clock skew must be non-negative, got %v", skew)
		}
		c.clockSkewLeeway = skew
		return nil
	}
}

// WithPermissiveExpiry makes a token without an exp claim count as unexpired.
// This matches what the old web client did and is off by default.
func WithPermissiveExpiry() ConfigOption {
	return func(c *Config) error {
		c.permissiveExpiry = true
		return nil
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) ConfigOption {
	return func(c *Config) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		c.now = now
		return nil
	}
}

// WithCookie sets the cookie consulted when no Authorization header is present.
// An empty name disables the cookie fallback.
func WithCookie(cookieName string) ConfigOption {
	return func(c *Config) error {
		c.cookieName = cookieName
		return nil
	}
}

// WithLogger sets the structured logger for diagnostics. nil disables logging.
func WithLogger(logger *slog.Logger) ConfigOption {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}

// WithRequiredClaims specifies claim names that must be present for Verify to succeed
func WithRequiredClaims(claims ...string) ConfigOption {
	return func(c *Config) error {
		c.requiredClaims = append(c.requiredClaims, claims...)
		return nil
	}
}

// AvailableAlgorithms returns a sorted list of configured algorithm names
func (c *Config) AvailableAlgorithms() []string {
	algs := make([]string, 0, len(c.validators))
	for alg := range c.validators {
		algs = append(algs, alg)
	}
	sort.Strings(algs)
	return algs
}

func (c *Config) getValidator(alg string) (algorithmValidator, bool) {
	validator, exists := c.validators[alg]
	return validator, exists
}

func (c *Config) ClockSkewLeeway() time.Duration {
	return c.clockSkewLeeway
}

func (c *Config) PermissiveExpiry() bool {
	return c.permissiveExpiry
}

func (c *Config) CookieName() string {
	return c.cookieName
}

func (c *Config) RequiredClaims() []string {
	return c.requiredClaims
}

func (c *Config) Logger() *slog.Logger {
	return c.logger
}

// Now returns the current time according to the configured clock
func (c *Config) Now() time.Time {
	return c.now()
}
